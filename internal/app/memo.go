package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"parcel_research/internal/adapters/observability"
	"parcel_research/internal/domain"
)

// MemoComposer turns a ParcelRecord into a multi-section research memo. With
// a completer it asks the generative service for the fixed section set; when
// the service is absent, errs, times out, or replies off-format, it
// synthesizes the same sections from the record alone. Compose never fails.
type MemoComposer struct {
	completer domain.TextCompleter // nil forces the template path
	timeout   time.Duration
}

func NewMemoComposer(c domain.TextCompleter, timeout time.Duration) *MemoComposer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &MemoComposer{completer: c, timeout: timeout}
}

// completion is the tagged outcome of a generative-text attempt: either text
// or an unavailability reason, never both.
type completion struct {
	text        string
	unavailable string
}

func (c *MemoComposer) Compose(ctx context.Context, p domain.ParcelRecord) domain.Memo {
	out := c.attempt(ctx, p)
	if out.unavailable != "" {
		if c.completer != nil {
			log.Warn().Str("apn", p.APN).Str("reason", out.unavailable).Msg("memo fallback")
		}
		observability.ObserveMemo("fallback")
		return domain.Memo{
			Sections:       fallbackSections(p),
			Provenance:     domain.ProvenanceFallback,
			FallbackReason: out.unavailable,
		}
	}

	sections, ok := parseSections(out.text)
	if !ok {
		log.Warn().Str("apn", p.APN).Msg("completion missing required sections, using fallback memo")
		observability.ObserveMemo("fallback")
		return domain.Memo{
			Sections:       fallbackSections(p),
			Provenance:     domain.ProvenanceFallback,
			FallbackReason: "completion missing required sections",
		}
	}
	observability.ObserveMemo("ai")
	return domain.Memo{Sections: sections, Provenance: domain.ProvenanceAI}
}

func (c *MemoComposer) attempt(ctx context.Context, p domain.ParcelRecord) completion {
	if c.completer == nil {
		return completion{unavailable: "no generative-text credential configured"}
	}
	cctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	text, err := c.completer.Complete(cctx, BuildPrompt(p))
	if err != nil {
		return completion{unavailable: err.Error()}
	}
	return completion{text: text}
}

// BuildPrompt is deterministic for a given record: every field appears under
// a labeled heading, and the required section titles are spelled out so the
// reply can be parsed by heading.
func BuildPrompt(p domain.ParcelRecord) string {
	var b strings.Builder
	b.WriteString("You are a commercial real estate analyst. Given this property data, ")
	b.WriteString("write a concise one-page research memo. Cite data fields explicitly ")
	b.WriteString("and do not invent facts that are not present in the data.\n\n")
	b.WriteString("Property Data:\n")
	fmt.Fprintf(&b, "- APN: %s\n", p.APN)
	fmt.Fprintf(&b, "- Owner: %s\n", p.Owner)
	fmt.Fprintf(&b, "- Mailing Address: %s\n", p.MailingAddress)
	fmt.Fprintf(&b, "- Parcel Size: %s\n", p.ParcelSize)
	fmt.Fprintf(&b, "- Legal Description: %s\n", p.LegalDescription)
	fmt.Fprintf(&b, "- Valuation: %s\n", p.Valuation)
	fmt.Fprintf(&b, "- Sale Date: %s\n", orNoSale(p.SaleDate))
	fmt.Fprintf(&b, "- Sale Price: %s\n", orNoSalePrice(p.SalePrice))
	fmt.Fprintf(&b, "- Zoning: %s\n", p.Zoning)
	fmt.Fprintf(&b, "- Source: %s\n", p.SourceURL)
	b.WriteString("\nFormat the memo in markdown with exactly these five sections, ")
	b.WriteString("each introduced by a level-2 heading, in this order:\n")
	for _, t := range domain.SectionTitles {
		fmt.Fprintf(&b, "## %s\n", t)
	}
	return b.String()
}

// parseSections splits a completion on the requested level-2 headings. All
// five must be present for the reply to count.
func parseSections(text string) ([]domain.MemoSection, bool) {
	sections := make([]domain.MemoSection, 0, len(domain.SectionTitles))
	for i, title := range domain.SectionTitles {
		start := strings.Index(text, "## "+title)
		if start < 0 {
			return nil, false
		}
		body := text[start+len("## "+title):]
		if i+1 < len(domain.SectionTitles) {
			if end := strings.Index(body, "## "+domain.SectionTitles[i+1]); end >= 0 {
				body = body[:end]
			}
		}
		sections = append(sections, domain.MemoSection{
			Title: title,
			Body:  strings.TrimSpace(body),
		})
	}
	return sections, true
}

// fallbackSections restates record fields as narrative. No facts are invented
// beyond what the record carries.
func fallbackSections(p domain.ParcelRecord) []domain.MemoSection {
	sale := "No recent sale is on record."
	if p.SaleDate != nil && p.SalePrice != nil {
		sale = fmt.Sprintf("The most recent recorded sale closed on %s for %s.", *p.SaleDate, formatCurrency(*p.SalePrice))
	} else if p.SaleDate != nil {
		sale = fmt.Sprintf("The most recent recorded sale closed on %s; no sale price is on record.", *p.SaleDate)
	} else if p.SalePrice != nil {
		sale = fmt.Sprintf("A sale price of %s is on record without a sale date.", formatCurrency(*p.SalePrice))
	}

	return []domain.MemoSection{
		{
			Title: domain.SectionTitles[0],
			Body: fmt.Sprintf(
				"This memo summarizes the ownership record for parcel %s. The registered owner is %s and the assessed valuation on file is %s. Source: %s.",
				p.APN, p.Owner, p.Valuation, p.SourceURL),
		},
		{
			Title: domain.SectionTitles[1],
			Body: fmt.Sprintf(
				"The parcel is held by %s with a mailing address of %s. %s",
				p.Owner, p.MailingAddress, sale),
		},
		{
			Title: domain.SectionTitles[2],
			Body: fmt.Sprintf(
				"The valuation on file is %s for a parcel of %s. %s",
				p.Valuation, p.ParcelSize, sale),
		},
		{
			Title: domain.SectionTitles[3],
			Body: fmt.Sprintf(
				"The parcel is zoned %s. Legal description of record: %s.",
				p.Zoning, p.LegalDescription),
		},
		{
			Title: domain.SectionTitles[4],
			Body: "Verify ownership and encumbrances against the county record before relying on this summary. " +
				"Confirm current zoning with the local authority, and obtain a title search prior to any transaction.",
		},
	}
}

func orNoSale(s *string) string {
	if s == nil {
		return "No recent sale data"
	}
	return *s
}

func orNoSalePrice(n *int64) string {
	if n == nil {
		return "No recent sale data"
	}
	return formatCurrency(*n)
}
