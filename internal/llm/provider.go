package llm

import "strings"

// Provider identifies an OpenAI-compatible endpoint and the model to call on it.
type Provider struct {
	Name    string
	APIKey  string
	BaseURL string
	Model   string
}

type providerSpec struct {
	name    string
	envKey  string
	baseURL string
	model   string
}

// providers is checked in order; the first one with a credential wins.
var providers = []providerSpec{
	{name: "groq", envKey: "GROQ_API_KEY", baseURL: "https://api.groq.com/openai/v1", model: "llama-3.3-70b-versatile"},
	{name: "openrouter", envKey: "OPENROUTER_API_KEY", baseURL: "https://openrouter.ai/api/v1", model: "mistralai/mistral-small-3.2-24b-instruct:free"},
	{name: "openai", envKey: "OPENAI_API_KEY", model: "gpt-3.5-turbo"},
}

// SelectProvider picks the first provider whose API key lookup returns a
// non-empty value. LLM_MODEL, when set, replaces the provider's default model.
// An empty BaseURL means the client library default.
func SelectProvider(lookup func(string) string) (Provider, error) {
	for _, spec := range providers {
		key := strings.TrimSpace(lookup(spec.envKey))
		if key == "" {
			continue
		}
		model := spec.model
		if override := strings.TrimSpace(lookup("LLM_MODEL")); override != "" {
			model = override
		}
		return Provider{
			Name:    spec.name,
			APIKey:  key,
			BaseURL: spec.baseURL,
			Model:   model,
		}, nil
	}
	return Provider{}, ErrNotConfigured
}

// WithModel wraps lookup so LLM_MODEL resolves to model when model is set.
// Config loads LLM_MODEL once and passes it here.
func WithModel(lookup func(string) string, model string) func(string) string {
	model = strings.TrimSpace(model)
	return func(key string) string {
		if key == "LLM_MODEL" && model != "" {
			return model
		}
		return lookup(key)
	}
}
