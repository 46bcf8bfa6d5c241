package extract

import (
	"context"
	"errors"
	"fmt"
	"time"

	"summarizer-backend/internal/llm"
	"summarizer-backend/internal/shared/telemetry"
)

// Extractor asks a language model for a structured summary of text.
type Extractor struct {
	LLM llm.Completer
}

// Extract builds the prompt, calls the model once and parses its answer.
func (e *Extractor) Extract(ctx context.Context, text string) (Result, error) {
	if e == nil || e.LLM == nil {
		return Result{}, llm.ErrNotConfigured
	}

	start := time.Now()
	raw, err := e.LLM.Complete(ctx, BuildPrompt(text))
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) || errors.Is(err, context.Canceled) {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("%w: %v", ErrCompletion, err)
	}

	res, via, err := parse(raw)
	if err != nil {
		telemetry.Warn("extract.parse_failed", map[string]any{
			"error":        err,
			"response_len": len(raw),
		})
		return Result{}, err
	}
	telemetry.Info("extract.parsed", map[string]any{
		"attempt":     via,
		"key_points":  len(res.KeyPoints),
		"tags":        len(res.Tags),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return res, nil
}
