// Package responder turns user text into reply text.
//
// A Provider is chosen once at startup: the mock provider when any
// credential is missing, the OpenAI provider otherwise. Callers go through
// Generator and never look at the mock flag themselves.
package responder

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/alekspetrov/tgassistant/internal/config"
	"github.com/alekspetrov/tgassistant/internal/logging"
)

// ErrEmptyCompletion is returned when the model answers with no choices.
var ErrEmptyCompletion = errors.New("model returned no choices")

// Provider produces a completion for a single user message.
type Provider interface {
	Name() string
	Complete(ctx context.Context, text string) (string, error)
}

// MockProvider answers locally without any network access.
type MockProvider struct{}

// Name returns the provider name
func (MockProvider) Name() string { return "mock" }

// Complete formats a canned reply embedding text verbatim.
func (MockProvider) Complete(_ context.Context, text string) (string, error) {
	return fmt.Sprintf("🤖 [Mock AI] You said: '%s'. Here's what I think: sounds interesting!", text), nil
}

// OpenAIProvider calls the OpenAI chat-completion endpoint.
type OpenAIProvider struct {
	client       *openai.Client
	model        string
	systemPrompt string
}

// OpenAIOptions configures an OpenAIProvider.
type OpenAIOptions struct {
	APIKey       string
	Model        string
	SystemPrompt string
	BaseURL      string       // empty uses the public API
	HTTPClient   *http.Client // nil uses a client with a 90s timeout
}

// NewOpenAIProvider creates a provider backed by go-openai.
func NewOpenAIProvider(opts OpenAIOptions) *OpenAIProvider {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	if opts.HTTPClient != nil {
		cfg.HTTPClient = opts.HTTPClient
	} else {
		cfg.HTTPClient = &http.Client{Timeout: 90 * time.Second}
	}

	model := opts.Model
	if model == "" {
		model = config.DefaultModel
	}
	prompt := opts.SystemPrompt
	if prompt == "" {
		prompt = config.DefaultSystemPrompt
	}

	return &OpenAIProvider{
		client:       openai.NewClientWithConfig(cfg),
		model:        model,
		systemPrompt: prompt,
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string { return "openai" }

// Complete sends the system prompt plus text as the only user message and
// returns the first choice verbatim.
func (p *OpenAIProvider) Complete(ctx context.Context, text string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	logging.WithComponent("responder").Debug("Completion received",
		"model", resp.Model,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)

	return resp.Choices[0].Message.Content, nil
}

// NewProvider selects the provider for cfg. Mock mode never creates a
// network client.
func NewProvider(cfg *config.Config) Provider {
	if cfg.Mock() {
		return MockProvider{}
	}
	s := cfg.Settings
	if s == nil {
		s = config.DefaultSettings()
	}
	return NewOpenAIProvider(OpenAIOptions{
		APIKey:       cfg.Credentials.OpenAIAPIKey,
		Model:        s.Model,
		SystemPrompt: s.SystemPrompt,
		BaseURL:      s.BaseURL,
	})
}
