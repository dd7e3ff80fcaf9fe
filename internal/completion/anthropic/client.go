// Package anthropic implements port.CompletionProvider against the Anthropic
// Messages API.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"chainsight/internal/config"
	"chainsight/internal/domain"
)

const (
	apiURL       = "https://api.anthropic.com/v1/messages"
	apiVersion   = "2023-06-01"
	providerName = "anthropic"

	pingMaxTokens = 100
	pingPrompt    = "Please respond with 'API test successful'"
)

// Client calls the Anthropic Messages API with fixed sampling parameters:
// bounded output length and low temperature, favoring consistent response
// structure over creative variation.
type Client struct {
	apiKey      string
	model       string
	pingModel   string
	maxTokens   int
	temperature float64
	endpoint    string
	client      *http.Client
}

// NewClient creates a completion client from the analyzer config.
func NewClient(cfg *config.AnalyzerConfig) *Client {
	return newClient(cfg, apiURL)
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint
// (for testing).
func NewClientWithEndpoint(cfg *config.AnalyzerConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.AnalyzerConfig, endpoint string) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4000
	}
	return &Client{
		apiKey:      cfg.APIKey,
		model:       cfg.ModelForMode(),
		pingModel:   cfg.PingModel,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
		endpoint:    endpoint,
		client:      &http.Client{Timeout: timeout},
	}
}

// Model reports the model identifier Complete uses.
func (c *Client) Model() string {
	return c.model
}

// Complete sends the system instruction and prompt and returns the first
// content block's text.
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"model":      c.model,
		"max_tokens": c.maxTokens,
		"system":     system,
		"messages": []map[string]interface{}{
			{"role": "user", "content": prompt},
		},
		"temperature": c.temperature,
	}
	return c.send(ctx, reqBody)
}

// Ping issues the fixed connectivity probe against the lightweight model
// tier.
func (c *Client) Ping(ctx context.Context) (string, error) {
	reqBody := map[string]interface{}{
		"model":      c.pingModel,
		"max_tokens": pingMaxTokens,
		"messages": []map[string]interface{}{
			{"role": "user", "content": pingPrompt},
		},
	}
	return c.send(ctx, reqBody)
}

func (c *Client) send(ctx context.Context, reqBody map[string]interface{}) (string, error) {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &domain.ProviderError{
			Provider: providerName,
			Type:     "transport_error",
			Message:  err.Error(),
			Err:      err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", providerError(resp.StatusCode, respBody)
	}

	return extractText(respBody)
}

// apiResponse models the Anthropic Messages API response.
type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

// apiError models the Anthropic API error envelope.
type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func extractText(body []byte) (string, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(resp.Content) == 0 {
		return "", fmt.Errorf("empty response from API")
	}
	return resp.Content[0].Text, nil
}

// providerError decodes the API error envelope into a ProviderError with
// enough diagnostic context to display to an operator.
func providerError(status int, body []byte) *domain.ProviderError {
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return &domain.ProviderError{
			Provider:   providerName,
			Type:       e.Error.Type,
			Message:    e.Error.Message,
			StatusCode: status,
		}
	}
	return &domain.ProviderError{
		Provider:   providerName,
		Type:       "api_error",
		Message:    truncate(string(body), 500),
		StatusCode: status,
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
