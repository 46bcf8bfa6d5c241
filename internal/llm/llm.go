package llm

import (
	"context"
	"errors"
)

// Completer sends a single prompt to a text-completion model and returns the
// raw response text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned when no provider credential is present.
var ErrNotConfigured = errors.New("no AI provider configured")

// PlaceholderClient stands in for a provider when none is configured so the
// server can still start and serve reads.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}
