// internal/adapters/rentcast/client.go
package rentcast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"parcel_research/internal/adapters/observability"
	"parcel_research/internal/domain"
)

// Client talks to the RentCast property-records API. Lookups are single-shot:
// retry and backoff policy belongs to the caller, not here.
type Client struct {
	base string
	hc   *http.Client
	key  string
}

func New(base, key string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: timeout},
		key:  key,
	}
}

// Lookup fetches the raw provider payload for one identifier. Every failure
// is returned as a *domain.RetrievalError so callers can tell a missing
// record from a connectivity problem.
func (c *Client) Lookup(ctx context.Context, identifier string, kind domain.InputKind) (map[string]any, error) {
	q := url.Values{}
	switch kind {
	case domain.InputAPN:
		q.Set("parcel_number", identifier)
	default:
		q.Set("address", identifier)
	}
	u := fmt.Sprintf("%s/properties?%s", c.base, q.Encode())

	start := time.Now()
	raw, err := c.get(ctx, u, identifier)
	status := http.StatusOK
	if err != nil {
		status = statusLabel(err)
	}
	observability.ObserveExternal("rentcast", "properties", status, time.Since(start))
	return raw, err
}

func (c *Client) get(ctx context.Context, u, identifier string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, retrievalErr(domain.RetrievalUnreachable, identifier, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", c.key)
	req.Header.Set("User-Agent", "parcel-research/1.0")

	resp, err := c.hc.Do(req)
	if err != nil {
		kind := domain.RetrievalUnreachable
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			kind = domain.RetrievalTimeout
		}
		return nil, retrievalErr(kind, identifier, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var body any
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, retrievalErr(domain.RetrievalUnreachable, identifier, fmt.Errorf("decode body: %w", err))
		}
		prop, ok := firstProperty(body)
		if !ok {
			return nil, retrievalErr(domain.RetrievalNotFound, identifier, nil)
		}
		return prop, nil

	case http.StatusNotFound:
		return nil, retrievalErr(domain.RetrievalNotFound, identifier, nil)

	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, retrievalErr(domain.RetrievalUnauthorized, identifier, fmt.Errorf("remote %d", resp.StatusCode))

	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, retrievalErr(domain.RetrievalUnreachable, identifier,
			fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b))))
	}
}

// firstProperty unwraps the two body shapes the provider is known to return:
// a bare array of property objects, or {"properties": [...]}.
func firstProperty(body any) (map[string]any, bool) {
	switch v := body.(type) {
	case []any:
		if len(v) > 0 {
			if m, ok := v[0].(map[string]any); ok {
				return m, true
			}
		}
	case map[string]any:
		if list, ok := v["properties"].([]any); ok && len(list) > 0 {
			if m, ok := list[0].(map[string]any); ok {
				return m, true
			}
		}
	}
	return nil, false
}

func retrievalErr(kind domain.RetrievalKind, identifier string, err error) *domain.RetrievalError {
	return &domain.RetrievalError{Kind: kind, Identifier: identifier, Err: err}
}

func isTimeout(err error) bool {
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}

func statusLabel(err error) int {
	var re *domain.RetrievalError
	if !errors.As(err, &re) {
		return 0
	}
	switch re.Kind {
	case domain.RetrievalNotFound:
		return http.StatusNotFound
	case domain.RetrievalUnauthorized:
		return http.StatusUnauthorized
	case domain.RetrievalTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
