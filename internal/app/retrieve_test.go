package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parcel_research/internal/app"
	"parcel_research/internal/domain"
)

// ---- fakes ----

type fakeClient struct {
	payload map[string]any
	err     error
	calls   int
}

func (f *fakeClient) Lookup(ctx context.Context, identifier string, kind domain.InputKind) (map[string]any, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

// ---- tests ----

func TestRetrieve_DemoModeSkipsConnector(t *testing.T) {
	fc := &fakeClient{err: &domain.RetrievalError{Kind: domain.RetrievalUnreachable}}
	s := app.NewResearchService(fc)

	rec, raw, err := s.Retrieve(context.Background(), "123-45-678", domain.ModeDemo, domain.InputAPN)

	require.NoError(t, err)
	assert.Equal(t, 0, fc.calls, "demo mode must not touch the network")
	assert.Equal(t, "123-45-678", rec.APN)
	assert.NotNil(t, raw)
	require.NotNil(t, rec.SaleDate)
	require.NotNil(t, rec.SalePrice)
}

func TestRetrieve_LiveSuccessNormalizes(t *testing.T) {
	fc := &fakeClient{payload: map[string]any{
		"owner":      "ACME HOLDINGS LLC",
		"assessorID": "205-03-224",
		"zoning":     "C-1",
	}}
	s := app.NewResearchService(fc)

	rec, raw, err := s.Retrieve(context.Background(), "301 W Jefferson St, Phoenix, AZ 85003", domain.ModeLive, domain.InputAddress)

	require.NoError(t, err)
	assert.Equal(t, 1, fc.calls)
	assert.Equal(t, "ACME HOLDINGS LLC", rec.Owner)
	assert.Equal(t, "205-03-224", rec.APN)
	assert.Equal(t, "C-1", rec.Zoning)
	assert.Equal(t, domain.PlaceholderNotAvailable, rec.Valuation)
	assert.Equal(t, fc.payload, raw)
}

func TestRetrieve_NotFoundSurfacesTypedError(t *testing.T) {
	fc := &fakeClient{err: &domain.RetrievalError{Kind: domain.RetrievalNotFound, Identifier: "999-99-999"}}
	s := app.NewResearchService(fc)

	rec, raw, err := s.Retrieve(context.Background(), "999-99-999", domain.ModeLive, domain.InputAPN)

	var re *domain.RetrievalError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, domain.RetrievalNotFound, re.Kind)
	assert.Equal(t, domain.ParcelRecord{}, rec, "no record is constructed on failure")
	assert.Nil(t, raw)
}

func TestRetrieve_EmptyIdentifierRejected(t *testing.T) {
	fc := &fakeClient{}
	s := app.NewResearchService(fc)

	_, _, err := s.Retrieve(context.Background(), "   ", domain.ModeLive, domain.InputAPN)

	var re *domain.RetrievalError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 0, fc.calls)
}
