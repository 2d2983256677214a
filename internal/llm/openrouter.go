package llm

import (
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	openRouterAppTitle       = "Pathfinder"
)

// OpenRouterProvider reuses the OpenAI client against OpenRouter's
// compatible API and tags every request with the app title.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider builds a provider from cfg. Model IDs such as
// "anthropic/claude-3-haiku" are passed through unchanged.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter: api key is required")
	}
	cc := openai.DefaultConfig(cfg.APIKey)
	cc.BaseURL = defaultOpenRouterBaseURL
	if cfg.BaseURL != "" {
		cc.BaseURL = cfg.BaseURL
	}
	cc.HTTPClient = &http.Client{Transport: titleTransport{next: http.DefaultTransport}}
	return &OpenRouterProvider{OpenAIProvider: newOpenAIWithClientConfig(cc, cfg.Model)}, nil
}

type titleTransport struct {
	next http.RoundTripper
}

func (t titleTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("X-Title", openRouterAppTitle)
	return t.next.RoundTrip(r)
}
