package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultEndpoint is the OpenAI chat completions endpoint.
const DefaultEndpoint = "https://api.openai.com/v1/chat/completions"

// Config holds chat completion client configuration
type Config struct {
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Usage reports token consumption for a completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Completion is the part of a chat completion response callers care about.
type Completion struct {
	ID      string
	Model   string
	Content string
	Usage   *Usage
}

// Client calls an OpenAI-compatible chat completions API.
type Client struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage *Usage `json:"usage"`
}

// NewClient builds a client from configuration.
func NewClient(config *Config, logger *slog.Logger) *Client {
	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		endpoint: endpoint,
		apiKey:   config.APIKey,
		model:    config.Model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Complete sends a chat completion request. When jsonOnly is set, the request
// asks the model for a strict JSON object response; some models reject that
// mode, which surfaces as an error the caller can fall back from.
func (c *Client) Complete(ctx context.Context, messages []Message, jsonOnly bool) (*Completion, error) {
	if c.apiKey == "" || c.model == "" {
		return nil, fmt.Errorf("chat client misconfigured")
	}

	reqBody := chatRequest{
		Model:    c.model,
		Messages: messages,
	}
	if jsonOnly {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal chat payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("chat completion %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("chat response has no choices")
	}

	completion := &Completion{
		ID:      parsed.ID,
		Model:   parsed.Model,
		Content: parsed.Choices[0].Message.Content,
		Usage:   parsed.Usage,
	}

	if c.logger != nil && completion.Usage != nil {
		c.logger.Debug("Chat completion usage",
			slog.String("request_id", completion.ID),
			slog.String("model", completion.Model),
			slog.Int("prompt_tokens", completion.Usage.PromptTokens),
			slog.Int("completion_tokens", completion.Usage.CompletionTokens),
			slog.Int("total_tokens", completion.Usage.TotalTokens),
		)
	}

	return completion, nil
}
