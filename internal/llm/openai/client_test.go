package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-optimizer/internal/llm"
)

func TestIsGPT5(t *testing.T) {
	tests := []struct {
		name  string
		model string
		want  bool
	}{
		{name: "gpt5", model: "gpt-5", want: true},
		{name: "gpt5 variant", model: "gpt-5-mini", want: true},
		{name: "gpt5 uppercase", model: " GPT-5o ", want: true},
		{name: "gpt4", model: "gpt-4o", want: false},
		{name: "empty", model: "", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := isGPT5(tt.model); got != tt.want {
				t.Fatalf("isGPT5(%q) = %v, want %v", tt.model, got, tt.want)
			}
		})
	}
}

func TestNewClientRequiresKeyAndModel(t *testing.T) {
	_, err := NewClient("", "gpt-4o-mini", "", time.Second)
	require.Error(t, err)
	_, err = NewClient("key", " ", "", time.Second)
	require.Error(t, err)
}

func TestCompleteSendsRequestAndReturnsContent(t *testing.T) {
	var payload map[string]any
	var auth, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		auth = r.Header.Get("Authorization")
		path = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  {\"score\":80}  "}}],"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`))
	}))
	defer server.Close()

	client, err := NewClient("test-key", "gpt-4o-mini", server.URL, 5*time.Second)
	require.NoError(t, err)

	out, err := client.Complete(context.Background(), llm.Request{
		System:      "sys",
		User:        "hello",
		Temperature: 0.2,
		MaxTokens:   1500,
		JSON:        true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"score":80}`, out)
	assert.Equal(t, "Bearer test-key", auth)
	assert.Equal(t, "/chat/completions", path)
	assert.Equal(t, "gpt-4o-mini", payload["model"])
	assert.InDelta(t, 0.2, payload["temperature"], 0.0001)
	assert.EqualValues(t, 1500, payload["max_tokens"])
	assert.Equal(t, map[string]any{"type": "json_object"}, payload["response_format"])

	messages, ok := payload["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "hello", messages[1].(map[string]any)["content"])
}

func TestCompleteOmitsTemperatureForGPT5(t *testing.T) {
	var payload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		_ = json.NewDecoder(r.Body).Decode(&payload)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{}"}}]}`))
	}))
	defer server.Close()

	client, err := NewClient("test-key", "gpt-5-mini", server.URL, 5*time.Second)
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), llm.Request{User: "hi", Temperature: 0.2, MaxTokens: 500})
	require.NoError(t, err)
	_, hasTemp := payload["temperature"]
	assert.False(t, hasTemp)
	assert.EqualValues(t, 500, payload["max_completion_tokens"])
	_, hasMax := payload["max_tokens"]
	assert.False(t, hasMax)
}

func TestCompleteProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"requests"}}`))
	}))
	defer server.Close()

	client, err := NewClient("test-key", "gpt-4o-mini", server.URL, 5*time.Second)
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), llm.Request{User: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Rate limit reached")
}

func TestCompleteMissingChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client, err := NewClient("test-key", "gpt-4o-mini", server.URL, 5*time.Second)
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), llm.Request{User: "hi"})
	require.Error(t, err)
}

func TestCompleteHonorsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{}"}}]}`))
	}))
	defer server.Close()

	client, err := NewClient("test-key", "gpt-4o-mini", server.URL, 20*time.Millisecond)
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), llm.Request{User: "hi"})
	require.Error(t, err)
}
