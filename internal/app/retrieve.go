package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"parcel_research/internal/domain"
)

// ResearchService drives the retrieval side of the pipeline: pick the live
// connector or the demo fixture, then run the payload through Normalize. The
// raw payload is returned alongside the record for inspection surfaces.
type ResearchService struct {
	client domain.PropertyClient
}

func NewResearchService(c domain.PropertyClient) *ResearchService {
	return &ResearchService{client: c}
}

// Retrieve fetches and normalizes one property. Demo mode never touches the
// network and takes the exact same normalization path as live data. No
// retries happen here; the caller owns retry policy.
func (s *ResearchService) Retrieve(ctx context.Context, identifier string, mode domain.Mode, kind domain.InputKind) (domain.ParcelRecord, map[string]any, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return domain.ParcelRecord{}, nil, &domain.RetrievalError{
			Kind: domain.RetrievalNotFound, Identifier: identifier,
			Err: fmt.Errorf("empty identifier"),
		}
	}

	var raw map[string]any
	if mode == domain.ModeDemo {
		raw = DemoPayload(identifier, kind)
	} else {
		var err error
		raw, err = s.client.Lookup(ctx, identifier, kind)
		if err != nil {
			log.Warn().Str("identifier", identifier).Str("kind", string(kind)).Err(err).Msg("lookup failed")
			return domain.ParcelRecord{}, nil, err
		}
	}

	rec := Normalize(raw, identifier, kind)
	log.Info().
		Str("identifier", identifier).
		Str("mode", string(mode)).
		Str("apn", rec.APN).
		Msg("parcel retrieved")
	return rec, raw, nil
}
