package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"summarizer-backend/internal/llm"
	"summarizer-backend/internal/shared/telemetry"
)

// chatAPI is the subset of the go-openai client used here.
type chatAPI interface {
	CreateChatCompletion(ctx context.Context, request goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error)
}

// Client implements llm.Completer against any OpenAI-compatible chat
// completions endpoint (Groq, OpenRouter, OpenAI).
type Client struct {
	api      chatAPI
	provider string
	model    string
}

// NewClient constructs a client for the selected provider. A zero timeout
// leaves calls bounded only by the caller's context.
func NewClient(p llm.Provider, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(p.APIKey) == "" {
		return nil, llm.ErrNotConfigured
	}
	if strings.TrimSpace(p.Model) == "" {
		return nil, fmt.Errorf("model is required for provider %s", p.Name)
	}
	cfg := goopenai.DefaultConfig(p.APIKey)
	if p.BaseURL != "" {
		cfg.BaseURL = p.BaseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &Client{
		api:      goopenai.NewClientWithConfig(cfg),
		provider: p.Name,
		model:    p.Model,
	}, nil
}

// Complete sends prompt as a single user message and returns the first choice.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		var apiErr *goopenai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%s http status %d: %s", c.provider, apiErr.HTTPStatusCode, apiErr.Message)
		}
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", fmt.Errorf("%s request timeout: %w", c.provider, err)
		}
		return "", fmt.Errorf("%s request: %w", c.provider, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s response missing choices", c.provider)
	}

	telemetry.Info("llm.response", map[string]any{
		"provider":          c.provider,
		"model":             c.model,
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
		"total_tokens":      resp.Usage.TotalTokens,
		"duration_ms":       time.Since(start).Milliseconds(),
	})
	return resp.Choices[0].Message.Content, nil
}

var _ llm.Completer = (*Client)(nil)
