package export_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parcel_research/internal/adapters/export"
	"parcel_research/internal/app"
	"parcel_research/internal/domain"
)

func sampleRecord() domain.ParcelRecord {
	return app.Normalize(app.DemoPayload("123-45-678", domain.InputAPN), "123-45-678", domain.InputAPN)
}

func TestToCSV_RoundTrips(t *testing.T) {
	rec := sampleRecord()

	b, err := export.ToCSV(rec)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(b)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.FieldNames, rows[0])

	got := map[string]string{}
	for i, name := range rows[0] {
		got[name] = rows[1][i]
	}
	assert.Equal(t, rec.Owner, got["owner"])
	assert.Equal(t, rec.MailingAddress, got["mailing_address"])
	assert.Equal(t, rec.APN, got["apn"])
	assert.Equal(t, rec.ParcelSize, got["parcel_size"])
	assert.Equal(t, rec.LegalDescription, got["legal_description"])
	assert.Equal(t, rec.Valuation, got["valuation"])
	assert.Equal(t, *rec.SaleDate, got["sale_date"])
	assert.Equal(t, "2400000", got["sale_price"])
	assert.Equal(t, rec.Zoning, got["zoning"])
	assert.Equal(t, rec.SourceURL, got["source_url"])
}

func TestToCSV_NilOptionalsRenderEmpty(t *testing.T) {
	rec := app.Normalize(map[string]any{}, "123-45-678", domain.InputAPN)
	require.Nil(t, rec.SaleDate)
	require.Nil(t, rec.SalePrice)

	b, err := export.ToCSV(rec)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(b)).ReadAll()
	require.NoError(t, err)
	got := map[string]string{}
	for i, name := range rows[0] {
		got[name] = rows[1][i]
	}
	assert.Equal(t, "", got["sale_date"])
	assert.Equal(t, "", got["sale_price"])
}

func TestToPDF_WithMemo(t *testing.T) {
	rec := sampleRecord()
	memo := app.NewMemoComposer(nil, time.Second).Compose(context.Background(), rec)

	b, err := export.ToPDF(rec, &memo)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")), "output must be a PDF document")
	assert.Greater(t, len(b), 1000)
}

func TestToPDF_NilMemoProducesTableOnlyDocument(t *testing.T) {
	rec := sampleRecord()

	b, err := export.ToPDF(rec, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))

	withMemo, err := export.ToPDF(rec, &domain.Memo{
		Sections:   []domain.MemoSection{{Title: "Executive Summary", Body: "A body."}},
		Provenance: domain.ProvenanceFallback,
	})
	require.NoError(t, err)
	assert.Greater(t, len(withMemo), len(b), "memo content should grow the document")
}

func TestExportsAreIndependent(t *testing.T) {
	rec := sampleRecord()

	pdfBytes, err := export.ToPDF(rec, nil)
	require.NoError(t, err)

	csvBytes, err := export.ToCSV(rec)
	require.NoError(t, err)

	// both artifacts remain intact and distinct
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF")))
	assert.True(t, bytes.HasPrefix(csvBytes, []byte("owner,")))
}
