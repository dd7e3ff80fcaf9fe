package anthropic_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainsight/internal/completion/anthropic"
	"chainsight/internal/config"
	"chainsight/internal/domain"
)

func testConfig() *config.AnalyzerConfig {
	return &config.AnalyzerConfig{
		APIKey:           "test-api-key",
		Mode:             "detailed",
		DetailedModel:    "claude-3-opus-20240229",
		LightweightModel: "claude-3-haiku-20240307",
		PingModel:        "claude-3-haiku-20240307",
		MaxTokens:        4000,
		Temperature:      0.2,
		TimeoutSecs:      30,
	}
}

func completionResponse(text string) map[string]interface{} {
	return map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "text": text},
		},
		"stop_reason": "end_turn",
	}
}

func TestClient_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "claude-3-opus-20240229", reqBody["model"])
		assert.Equal(t, float64(4000), reqBody["max_tokens"])
		assert.Equal(t, 0.2, reqBody["temperature"])
		assert.Equal(t, "system instruction", reqBody["system"])

		messages := reqBody["messages"].([]interface{})
		require.Len(t, messages, 1)
		msg := messages[0].(map[string]interface{})
		assert.Equal(t, "user", msg["role"])
		assert.Equal(t, "analyze this", msg["content"])

		_ = json.NewEncoder(w).Encode(completionResponse("1. KEY INSIGHTS: all good."))
	}))
	defer server.Close()

	client := anthropic.NewClientWithEndpoint(testConfig(), server.URL)
	text, err := client.Complete(context.Background(), "system instruction", "analyze this")

	require.NoError(t, err)
	assert.Equal(t, "1. KEY INSIGHTS: all good.", text)
}

func TestClient_Complete_LightweightModeUsesSmallerModel(t *testing.T) {
	cfg := testConfig()
	cfg.Mode = "lightweight"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "claude-3-haiku-20240307", reqBody["model"])
		_ = json.NewEncoder(w).Encode(completionResponse("ok"))
	}))
	defer server.Close()

	client := anthropic.NewClientWithEndpoint(cfg, server.URL)
	assert.Equal(t, "claude-3-haiku-20240307", client.Model())

	_, err := client.Complete(context.Background(), "s", "p")
	require.NoError(t, err)
}

func TestClient_Complete_APIErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer server.Close()

	client := anthropic.NewClientWithEndpoint(testConfig(), server.URL)
	_, err := client.Complete(context.Background(), "s", "p")

	var provErr *domain.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusUnauthorized, provErr.StatusCode)
	assert.Equal(t, "authentication_error", provErr.Type)
	assert.Equal(t, "invalid x-api-key", provErr.Message)
}

func TestClient_Complete_NonJSONErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream gone"))
	}))
	defer server.Close()

	client := anthropic.NewClientWithEndpoint(testConfig(), server.URL)
	_, err := client.Complete(context.Background(), "s", "p")

	var provErr *domain.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusBadGateway, provErr.StatusCode)
	assert.Contains(t, provErr.Message, "upstream gone")
}

func TestClient_Complete_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := anthropic.NewClientWithEndpoint(testConfig(), server.URL)
	_, err := client.Complete(context.Background(), "s", "p")

	var provErr *domain.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Zero(t, provErr.StatusCode)
	assert.Equal(t, "transport_error", provErr.Type)
}

func TestClient_Complete_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[],"stop_reason":"end_turn"}`))
	}))
	defer server.Close()

	client := anthropic.NewClientWithEndpoint(testConfig(), server.URL)
	_, err := client.Complete(context.Background(), "s", "p")

	require.Error(t, err)
	assert.False(t, errors.As(err, new(*domain.ProviderError)))
}

func TestClient_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "claude-3-haiku-20240307", reqBody["model"])
		assert.Equal(t, float64(100), reqBody["max_tokens"])
		_, hasSystem := reqBody["system"]
		assert.False(t, hasSystem)

		_ = json.NewEncoder(w).Encode(completionResponse("API test successful"))
	}))
	defer server.Close()

	client := anthropic.NewClientWithEndpoint(testConfig(), server.URL)
	text, err := client.Ping(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "API test successful", text)
}
