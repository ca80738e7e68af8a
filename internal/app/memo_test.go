package app_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parcel_research/internal/app"
	"parcel_research/internal/domain"
)

// ---- fakes ----

type fakeCompleter struct {
	reply string
	err   error
	calls int
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func demoRecord(t *testing.T) domain.ParcelRecord {
	t.Helper()
	return app.Normalize(app.DemoPayload("123-45-678", domain.InputAPN), "123-45-678", domain.InputAPN)
}

func wellFormedReply() string {
	var b strings.Builder
	for _, title := range domain.SectionTitles {
		fmt.Fprintf(&b, "## %s\nAnalysis for %s goes here.\n\n", title, title)
	}
	return b.String()
}

// ---- tests ----

func TestCompose_NoCompleterUsesDeterministicFallback(t *testing.T) {
	c := app.NewMemoComposer(nil, time.Second)
	rec := demoRecord(t)

	m1 := c.Compose(context.Background(), rec)
	m2 := c.Compose(context.Background(), rec)

	assert.Equal(t, domain.ProvenanceFallback, m1.Provenance)
	assert.NotEmpty(t, m1.FallbackReason)
	require.Len(t, m1.Sections, len(domain.SectionTitles))
	for i, s := range m1.Sections {
		assert.Equal(t, domain.SectionTitles[i], s.Title)
		assert.NotEmpty(t, s.Body)
	}
	assert.Equal(t, m1, m2, "fallback memo must be deterministic for the same record")
}

func TestCompose_FallbackRestatesRecordFields(t *testing.T) {
	c := app.NewMemoComposer(nil, time.Second)
	m := c.Compose(context.Background(), demoRecord(t))

	joined := ""
	for _, s := range m.Sections {
		joined += s.Body + "\n"
	}
	assert.Contains(t, joined, "DEMO PROPERTY LLC")
	assert.Contains(t, joined, "123-45-678")
	assert.Contains(t, joined, "$2,500,000")
	assert.Contains(t, joined, "C-2 (Commercial)")
	assert.Contains(t, joined, "2023-06-15")
}

func TestCompose_ServiceErrorFallsBackWithoutRaising(t *testing.T) {
	fc := &fakeCompleter{err: errors.New("boom")}
	c := app.NewMemoComposer(fc, time.Second)

	m := c.Compose(context.Background(), demoRecord(t))

	assert.Equal(t, 1, fc.calls)
	assert.Equal(t, domain.ProvenanceFallback, m.Provenance)
	assert.Contains(t, m.FallbackReason, "boom")
	assert.Len(t, m.Sections, len(domain.SectionTitles))
}

func TestCompose_WellFormedReplyParsedAsAI(t *testing.T) {
	fc := &fakeCompleter{reply: wellFormedReply()}
	c := app.NewMemoComposer(fc, time.Second)

	m := c.Compose(context.Background(), demoRecord(t))

	assert.Equal(t, domain.ProvenanceAI, m.Provenance)
	assert.Empty(t, m.FallbackReason)
	require.Len(t, m.Sections, len(domain.SectionTitles))
	for i, s := range m.Sections {
		assert.Equal(t, domain.SectionTitles[i], s.Title)
		assert.Contains(t, s.Body, "Analysis for")
		assert.NotContains(t, s.Body, "##")
	}
}

func TestCompose_ReplyMissingSectionsFallsBack(t *testing.T) {
	fc := &fakeCompleter{reply: "## Executive Summary\nonly one section"}
	c := app.NewMemoComposer(fc, time.Second)

	m := c.Compose(context.Background(), demoRecord(t))

	assert.Equal(t, domain.ProvenanceFallback, m.Provenance)
	assert.Contains(t, m.FallbackReason, "missing required sections")
}

func TestBuildPrompt_DeterministicAndComplete(t *testing.T) {
	rec := demoRecord(t)
	p1 := app.BuildPrompt(rec)
	p2 := app.BuildPrompt(rec)
	assert.Equal(t, p1, p2)

	for _, want := range []string{
		rec.Owner, rec.MailingAddress, rec.APN, rec.ParcelSize,
		rec.LegalDescription, rec.Valuation, rec.Zoning, rec.SourceURL,
		*rec.SaleDate,
	} {
		assert.Contains(t, p1, want)
	}
	for _, title := range domain.SectionTitles {
		assert.Contains(t, p1, "## "+title)
	}
}
