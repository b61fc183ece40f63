// Package llm adapts OpenAI-compatible chat-completion backends to the
// core.Provider port. One adapter type covers every configured backend; only
// the base URL, model and credentials differ.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/avenirlabs/scorecard-ai/internal/core"
)

// Config configures one OpenAI-compatible backend.
type Config struct {
	Name        string
	BaseURL     string // empty means the library default (api.openai.com)
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// Adapter implements core.Provider over an OpenAI-compatible HTTP API.
type Adapter struct {
	name    string
	client  *openai.Client
	model   string
	maxTok  int
	temp    float32
	timeout time.Duration
}

// New creates an adapter from configuration.
func New(cfg Config) (*Adapter, error) {
	if cfg.Name == "" {
		return nil, core.ErrValidation("PROVIDER_NAME", "provider name is required")
	}
	if cfg.Model == "" {
		return nil, core.ErrValidation("PROVIDER_MODEL", fmt.Sprintf("provider %s has no model configured", cfg.Name))
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	maxTok := cfg.MaxTokens
	if maxTok <= 0 {
		maxTok = 4096
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	return &Adapter{
		name:    cfg.Name,
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		maxTok:  maxTok,
		temp:    cfg.Temperature,
		timeout: timeout,
	}, nil
}

// Name returns the configured provider name.
func (a *Adapter) Name() string { return a.name }

// Ping probes the backend with a list-models call. Cheap, authenticated, and
// enough to tell "reachable with valid credentials" from everything else.
func (a *Adapter) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	if _, err := a.client.ListModels(ctx); err != nil {
		return core.ErrProviderUnavailable(a.name, "availability probe failed").WithCause(err)
	}
	return nil
}

// GenerateNextQuestion requests a JSON-formatted chat completion and parses
// it into the structured next-question contract.
func (a *Adapter) GenerateNextQuestion(ctx context.Context, systemPrompt, userPrompt string) (*core.NextQuestion, error) {
	content, err := a.chat(ctx, systemPrompt, userPrompt, true)
	if err != nil {
		return nil, err
	}

	var next core.NextQuestion
	if err := json.Unmarshal([]byte(ExtractJSON(content)), &next); err != nil {
		// The backend answered, but not with the JSON the contract
		// requires. A proxy error page is the classic case here.
		return nil, core.ErrBadResponse("PARSE_JSON",
			fmt.Sprintf("provider %s returned non-JSON next-question content", a.name)).
			WithCause(err).
			WithDetail("content_prefix", prefix(content, 120))
	}
	if err := next.Validate(); err != nil {
		return nil, err
	}
	return &next, nil
}

// GenerateReport requests the full markdown report.
func (a *Adapter) GenerateReport(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	content, err := a.chat(ctx, systemPrompt, userPrompt, false)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(content) == "" {
		return "", core.ErrBadResponse("EMPTY_REPORT", fmt.Sprintf("provider %s returned an empty report", a.name))
	}
	return content, nil
}

func (a *Adapter) chat(ctx context.Context, systemPrompt, userPrompt string, wantJSON bool) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: a.temp,
		MaxTokens:   a.maxTok,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	}
	if wantJSON {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil && wantJSON && isUnsupportedResponseFormat(err) {
		// Some compatible backends reject response_format outright.
		// Re-issue without the hint; the JSON parse below still guards.
		req.ResponseFormat = nil
		resp, err = a.client.CreateChatCompletion(ctx, req)
	}
	if err != nil {
		return "", core.ErrProviderUnavailable(a.name, "chat completion failed").WithCause(err)
	}
	if len(resp.Choices) == 0 {
		return "", core.ErrBadResponse("NO_CHOICES", fmt.Sprintf("provider %s returned no choices", a.name))
	}
	return resp.Choices[0].Message.Content, nil
}

func isUnsupportedResponseFormat(err error) bool {
	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	msg := strings.ToLower(apiErr.Message)
	return strings.Contains(msg, "response_format") &&
		(strings.Contains(msg, "not supported") || strings.Contains(msg, "invalid parameter"))
}

// ExtractJSON strips a markdown code fence when the model wraps its JSON in
// one despite instructions.
func ExtractJSON(content string) string {
	if strings.Contains(content, "```json") {
		start := strings.Index(content, "```json") + len("```json")
		end := strings.LastIndex(content, "```")
		if end > start {
			content = content[start:end]
		}
	} else if strings.Contains(content, "```") {
		start := strings.Index(content, "```") + len("```")
		end := strings.LastIndex(content, "```")
		if end > start {
			content = content[start:end]
		}
	}
	return strings.TrimSpace(content)
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

var _ core.Provider = (*Adapter)(nil)
