package domain

// MemoProvenance records how a memo was produced so callers can render
// AI-generated and templated memos distinctly.
type MemoProvenance string

const (
	ProvenanceAI       MemoProvenance = "ai"
	ProvenanceFallback MemoProvenance = "fallback"
)

// SectionTitles is the fixed section set every memo carries, in render order.
var SectionTitles = []string{
	"Executive Summary",
	"Ownership Analysis",
	"Valuation Insights",
	"Legal & Zoning Considerations",
	"Recommendations",
}

type MemoSection struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Memo is the narrative research artifact derived from a ParcelRecord.
// Immutable after composition.
type Memo struct {
	Sections   []MemoSection  `json:"sections"`
	Provenance MemoProvenance `json:"provenance"`
	// FallbackReason explains why the generative service was not used.
	// Empty for AI-generated memos.
	FallbackReason string `json:"fallback_reason,omitempty"`
}
