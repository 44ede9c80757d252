package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Generation error taxonomy surfaced to the relay pipeline. Callers only ever
// need to distinguish "the backend could not answer" from "the backend answered
// garbage"; everything finer-grained stays wrapped underneath.
var (
	ErrBackendUnavailable = errors.New("generation backend unavailable")
	ErrMalformedResponse  = errors.New("malformed generation response")
)

// Generator issues single-turn completions against a provider and normalizes
// all failures into the two-kind error taxonomy above.
type Generator struct {
	provider Provider
	model    string
}

// NewGenerator creates a Generator bound to the given provider and model.
func NewGenerator(provider Provider, model string) *Generator {
	return &Generator{
		provider: provider,
		model:    model,
	}
}

// Generate sends prompt as a single user-role message and returns the reply
// text. Transport and provider failures (including context timeouts) surface
// as ErrBackendUnavailable; a response without reply text surfaces as
// ErrMalformedResponse. No retries happen at this layer.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.provider.Complete(ctx, CompletionRequest{
		Model: g.model,
		Messages: []Message{
			{Role: RoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return "", fmt.Errorf("%w: empty reply from %s", ErrMalformedResponse, g.provider.Name())
	}

	return resp.Content, nil
}
