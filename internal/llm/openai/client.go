package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"resume-optimizer/internal/llm"
	"resume-optimizer/internal/shared/telemetry"
)

// DefaultBaseURL is the public OpenAI API root.
const DefaultBaseURL = "https://api.openai.com/v1"

// Client implements llm.Completer using OpenAI Chat Completions.
type Client struct {
	model string
	http  *resty.Client
}

// NewClient constructs a new OpenAI client. An empty baseURL uses DefaultBaseURL.
func NewClient(apiKey, model, baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	http := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	return &Client{model: model, http: http}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model               string          `json:"model"`
	Messages            []chatMessage   `json:"messages"`
	Temperature         *float32        `json:"temperature,omitempty"`
	MaxTokens           int             `json:"max_tokens,omitempty"`
	MaxCompletionTokens int             `json:"max_completion_tokens,omitempty"`
	ResponseFormat      *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// Complete sends one chat completion and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	body := chatRequest{Model: c.model}
	if strings.TrimSpace(req.System) != "" {
		body.Messages = append(body.Messages, chatMessage{Role: "system", Content: req.System})
	}
	body.Messages = append(body.Messages, chatMessage{Role: "user", Content: req.User})
	if req.JSON {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	// gpt-5 models only accept the default temperature and renamed the token limit.
	if isGPT5(c.model) {
		body.MaxCompletionTokens = req.MaxTokens
	} else {
		temp := req.Temperature
		body.Temperature = &temp
		body.MaxTokens = req.MaxTokens
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post("/chat/completions")
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("openai request timeout: %w", err)
		}
		return "", fmt.Errorf("openai request: %w", err)
	}

	raw := resp.String()
	if msg := gjson.Get(raw, "error.message"); msg.Exists() || resp.IsError() {
		return "", &llm.StatusError{Provider: "openai", Code: resp.StatusCode(), Message: msg.String()}
	}

	content := gjson.Get(raw, "choices.0.message.content")
	if !content.Exists() {
		return "", fmt.Errorf("openai response missing choices")
	}
	text := strings.TrimSpace(content.String())
	if text == "" {
		return "", fmt.Errorf("openai response empty content")
	}

	logUsage(c.model, raw)
	return text, nil
}

func logUsage(model, raw string) {
	usage := gjson.Get(raw, "usage")
	fields := map[string]any{"model": model}
	if usage.Exists() {
		fields["prompt_tokens"] = usage.Get("prompt_tokens").Int()
		fields["completion_tokens"] = usage.Get("completion_tokens").Int()
		fields["total_tokens"] = usage.Get("total_tokens").Int()
	}
	telemetry.Info("llm.response", fields)
}

func isGPT5(model string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(model)), "gpt-5")
}

var _ llm.Completer = (*Client)(nil)
