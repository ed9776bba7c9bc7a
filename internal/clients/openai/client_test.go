package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yungbote/studyplan-backend/internal/platform/logger"
)

func newTestClient(t *testing.T, h http.HandlerFunc, timeout time.Duration) Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(logger.Nop(), Config{APIKey: "sk-test", BaseURL: srv.URL, Model: "test-model", Timeout: timeout})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestChatJSONSendsBothTurns(t *testing.T) {
	var got chatRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("missing bearer token")
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"ok\":true}"}}]}`))
	}, time.Second)

	out, err := c.ChatJSON(context.Background(), "sys", "usr")
	if err != nil {
		t.Fatalf("ChatJSON: %v", err)
	}
	if out != `{"ok":true}` {
		t.Fatalf("ChatJSON: unexpected content %q", out)
	}
	if got.Model != "test-model" || len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "usr" {
		t.Fatalf("unexpected request body: %+v", got)
	}
	if got.ResponseFormat.Type != "json_object" {
		t.Fatalf("expected json_object response format, got %q", got.ResponseFormat.Type)
	}
}

func TestChatJSONSurfacesHTTPErrorsWithoutRetry(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"slow down"}`))
	}, time.Second)

	_, err := c.ChatJSON(context.Background(), "sys", "usr")
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected HTTPError 429, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one attempt, got %d", calls)
	}
}

func TestChatJSONTimesOut(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, 50*time.Millisecond)

	if _, err := c.ChatJSON(context.Background(), "sys", "usr"); err == nil {
		t.Fatalf("expected timeout error")
	}
}

func TestChatJSONRejectsEmptyChoices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}, time.Second)
	if _, err := c.ChatJSON(context.Background(), "sys", "usr"); err == nil {
		t.Fatalf("expected error for empty choices")
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(logger.Nop(), Config{}); err == nil {
		t.Fatalf("expected missing key error")
	}
}
