package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vynal-docs/vynal/internal/core/ports/driven"
)

func TestNew_Defaults(t *testing.T) {
	c := New(Config{})
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, DefaultModel, c.ModelName())
	assert.Equal(t, DefaultTimeout, c.http.Timeout)
	assert.NoError(t, c.Close())
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c := New(Config{BaseURL: "http://gpu-box:11434/"})
	assert.Equal(t, "http://gpu-box:11434", c.baseURL)
}

func TestGenerate_SuggestionRequest(t *testing.T) {
	var got completionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(completionResponse{Response: " {\"suggestions\":[]}\n", Done: true})
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL, Model: "mistral"})
	out, err := c.Generate(context.Background(), "map Nom client", driven.GenerateOptions{
		MaxTokens:   50,
		Temperature: 0.1,
		JSON:        true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"suggestions":[]}`, out)

	assert.Equal(t, "mistral", got.Model)
	assert.Equal(t, "map Nom client", got.Prompt)
	assert.False(t, got.Stream)
	assert.Equal(t, "json", got.Format)
	require.NotNil(t, got.Options)
	assert.Equal(t, 50, got.Options.NumPredict)
	assert.InDelta(t, 0.1, got.Options.Temperature, 1e-9)
}

func TestGenerate_OmitsUnsetOptions(t *testing.T) {
	var raw map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_ = json.NewEncoder(w).Encode(completionResponse{Response: "ok"})
	}))
	defer server.Close()

	_, err := New(Config{BaseURL: server.URL}).Generate(context.Background(), "p", driven.GenerateOptions{})
	require.NoError(t, err)

	assert.NotContains(t, raw, "options")
	assert.NotContains(t, raw, "format")
}

func TestGenerate_ErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"json error", `{"error":"model \"mistral\" not found, try pulling it first"}`, `model "mistral" not found`},
		{"plain text", "upstream gone", "upstream gone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := New(Config{BaseURL: server.URL}).Generate(context.Background(), "p", driven.GenerateOptions{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "status 404")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGenerate_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	_, err := New(Config{BaseURL: server.URL}).Generate(context.Background(), "p", driven.GenerateOptions{})
	assert.ErrorContains(t, err, "decoding /api/generate response")
}

func TestGenerate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{BaseURL: "http://127.0.0.1:1"}).Generate(ctx, "p", driven.GenerateOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" && r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`{"models":[]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	assert.NoError(t, New(Config{BaseURL: server.URL}).Ping(context.Background()))
}

func TestPing_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	assert.ErrorContains(t, New(Config{BaseURL: server.URL}).Ping(context.Background()), "status 503")
}
