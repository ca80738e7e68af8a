// Package gemini adapts the Google GenAI SDK to the TextCompleter port.
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"

	"parcel_research/internal/adapters/observability"
)

const (
	temperature     = 0.3
	maxOutputTokens = 1500
)

type Completer struct {
	client *genai.Client
	model  string
}

// New builds a Completer against the Gemini API backend. The caller decides
// what to do when no API key is configured; this constructor requires one.
func New(ctx context.Context, apiKey, model string) (*Completer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	cl, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	return &Completer{client: cl, model: model}, nil
}

func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](temperature),
		MaxOutputTokens: maxOutputTokens,
	})
	status := http.StatusOK
	if err != nil {
		status = 0
	}
	observability.ObserveExternal("gemini", "generate_content", status, time.Since(start))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: empty completion")
	}
	return text, nil
}
