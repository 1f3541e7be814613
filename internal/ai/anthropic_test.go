package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amishk599/tailor/internal/model"
)

func makeTestServer(t *testing.T, statusCode int, body any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		if err := json.NewEncoder(w).Encode(body); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func anthropicBody(texts ...string) map[string]any {
	blocks := make([]map[string]string, 0, len(texts))
	for _, txt := range texts {
		blocks = append(blocks, map[string]string{"type": "text", "text": txt})
	}
	return map[string]any{"content": blocks}
}

func testAnthropicProvider(srv *httptest.Server) *AnthropicProvider {
	return &AnthropicProvider{
		baseURL:    srv.URL,
		apiKey:     "test-key",
		model:      "claude-sonnet-4-0",
		httpClient: srv.Client(),
	}
}

func TestAnthropicComplete_Success(t *testing.T) {
	srv := makeTestServer(t, http.StatusOK, anthropicBody("first ", "second"))

	got, err := testAnthropicProvider(srv).Complete(context.Background(), Request{Prompt: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "first second" {
		t.Errorf("got %q, want concatenated text blocks", got)
	}
}

func TestAnthropicComplete_RateLimited(t *testing.T) {
	srv := makeTestServer(t, http.StatusTooManyRequests, map[string]string{"error": "rate limited"})

	_, err := testAnthropicProvider(srv).Complete(context.Background(), Request{Prompt: "hello"})
	var provErr *model.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("error = %v, want ProviderError", err)
	}
	if provErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", provErr.StatusCode)
	}
}

func TestAnthropicComplete_EmptyContent(t *testing.T) {
	srv := makeTestServer(t, http.StatusOK, anthropicBody())

	_, err := testAnthropicProvider(srv).Complete(context.Background(), Request{Prompt: "hello"})
	if !errors.Is(err, model.ErrEmptyResult) {
		t.Fatalf("error = %v, want ErrEmptyResult", err)
	}
}

func TestAnthropicComplete_SetsHeaders(t *testing.T) {
	var gotKey, gotVersion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicBody("ok"))
	}))
	t.Cleanup(srv.Close)

	if _, err := testAnthropicProvider(srv).Complete(context.Background(), Request{Prompt: "hello"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "test-key" {
		t.Errorf("x-api-key = %q", gotKey)
	}
	if gotVersion != anthropicAPIVersion {
		t.Errorf("anthropic-version = %q", gotVersion)
	}
}
