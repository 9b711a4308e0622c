package model

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"

	inkerr "github.com/inkwell-ai/inkwell/pkg/errors"
	"github.com/inkwell-ai/inkwell/pkg/logging"
)

func newTestClient(baseURL string) *Client {
	logger := logging.NewWriterLogger(io.Discard)
	return NewClientWithOptions("test-key", baseURL, "test-model", logger, ClientOptions{
		RateLimit: rate.Inf,
	})
}

func completionBody(content string) string {
	resp := chatResponse{
		ID:    "cmpl-1",
		Model: "test-model",
		Choices: []choice{
			{Message: Message{Role: "assistant", Content: content}},
		},
		Usage: Usage{PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestCompleteSuccess(t *testing.T) {
	var gotAuth, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Messages) != 2 {
			t.Errorf("messages = %d, want system + user", len(req.Messages))
		}

		w.Write([]byte(completionBody("a reflective entry")))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.Complete(context.Background(), Request{
		Task:   TaskEntry,
		System: "You are a journaling assistant.",
		Prompt: "Expand this note.",
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	if result.Content != "a reflective entry" {
		t.Errorf("content = %q", result.Content)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID header missing")
	}
	if result.RequestID == 0 {
		t.Error("result should carry correlation ID")
	}
	if result.Usage.TotalTokens != 30 {
		t.Errorf("usage total = %d, want 30", result.Usage.TotalTokens)
	}
}

func TestCorrelationIDsStrictlyIncrease(t *testing.T) {
	client := newTestClient("http://unused")

	prev := client.NextRequestID()
	for i := 0; i < 100; i++ {
		next := client.NextRequestID()
		if next <= prev {
			t.Fatalf("id %d not greater than %d", next, prev)
		}
		prev = next
	}
}

func TestCompleteProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Complete(context.Background(), Request{Task: TaskEntry, Prompt: "hi"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !inkerr.IsCode(err, inkerr.ErrCodeModelAPIError) {
		t.Errorf("code = %q, want MODEL_API_ERROR", inkerr.GetCode(err))
	}
	if !inkerr.IsRetryable(err) {
		t.Error("provider errors should be retryable")
	}
}

func TestCompleteMalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty_choices", `{"id":"x","choices":[]}`},
		{"empty_content", `{"id":"x","choices":[{"message":{"role":"assistant","content":""}}]}`},
		{"not_json", `<html>gateway error</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(server.URL)
			_, err := client.Complete(context.Background(), Request{Task: TaskEntry, Prompt: "hi"})
			if err == nil {
				t.Fatal("expected error")
			}
			if !inkerr.IsCode(err, inkerr.ErrCodeModelMalformed) {
				t.Errorf("code = %q, want MODEL_MALFORMED", inkerr.GetCode(err))
			}
			if inkerr.IsRetryable(err) {
				t.Error("malformed responses must not be retryable")
			}
		})
	}
}

func TestCompleteTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(completionBody("too late")))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Complete(context.Background(), Request{
		Task:    TaskTitle,
		Prompt:  "hi",
		Timeout: 20 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("expected timeout")
	}
	if !inkerr.IsCode(err, inkerr.ErrCodeModelTimeout) {
		t.Errorf("code = %q, want MODEL_TIMEOUT", inkerr.GetCode(err))
	}
	if !inkerr.IsRetryable(err) {
		t.Error("timeouts should be retryable")
	}
}
