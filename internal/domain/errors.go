package domain

import "fmt"

// RetrievalKind is the closed set of retrieval failure causes. The provider's
// own error vocabulary is looser than this; connector adapters are responsible
// for mapping responses onto it.
type RetrievalKind string

const (
	RetrievalNotFound     RetrievalKind = "not_found"
	RetrievalUnauthorized RetrievalKind = "unauthorized"
	RetrievalUnreachable  RetrievalKind = "unreachable"
	RetrievalTimeout      RetrievalKind = "timeout"
)

// RetrievalError is a typed retrieval failure carrying enough context for the
// caller to render a specific message (a missing record is not a connectivity
// problem).
type RetrievalError struct {
	Kind       RetrievalKind
	Identifier string
	Err        error
}

func (e *RetrievalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("retrieve %q: %s: %v", e.Identifier, e.Kind, e.Err)
	}
	return fmt.Sprintf("retrieve %q: %s", e.Identifier, e.Kind)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// ExportError wraps a rendering failure for one target format. A failed
// export never corrupts an artifact already produced in the other format.
type ExportError struct {
	Format string // "pdf" or "csv"
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Format, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
