package domain

import "context"

// PropertyClient fetches a raw provider payload for one identifier. Lookup
// returns a *RetrievalError on any non-success outcome.
type PropertyClient interface {
	Lookup(ctx context.Context, identifier string, kind InputKind) (map[string]any, error)
}

// TextCompleter produces a completion for a prompt. A nil TextCompleter is a
// valid configuration: memo composition then always uses the template path.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
