package model

import (
	"context"
	"testing"
	"time"

	inkerr "github.com/inkwell-ai/inkwell/pkg/errors"
)

func fastPolicy(attempts int) RetryPolicy {
	return RetryPolicy{MaxAttempts: attempts, InitialBackoff: time.Millisecond, Multiplier: 2.0}
}

type scriptedCompleter struct {
	results []func() (*Result, error)
	calls   int
}

func (s *scriptedCompleter) Complete(ctx context.Context, req Request) (*Result, error) {
	idx := s.calls
	s.calls++
	if idx >= len(s.results) {
		idx = len(s.results) - 1
	}
	return s.results[idx]()
}

func retryableErr() (*Result, error) {
	return nil, inkerr.New(inkerr.ErrCodeModelTransport, "conn reset").WithRetryable(true)
}

func malformedErr() (*Result, error) {
	return nil, inkerr.New(inkerr.ErrCodeModelMalformed, "no choices")
}

func okResult() (*Result, error) {
	return &Result{Content: "ok"}, nil
}

func TestPolicyForTask(t *testing.T) {
	if got := PolicyForTask(TaskTitle).MaxAttempts; got != 2 {
		t.Errorf("title attempts = %d, want 2", got)
	}
	for _, task := range []Task{TaskEntry, TaskInsights, TaskBiography} {
		if got := PolicyForTask(task).MaxAttempts; got != 3 {
			t.Errorf("%s attempts = %d, want 3", task, got)
		}
	}
}

func TestRetrySucceedsAfterTransientFailure(t *testing.T) {
	fake := &scriptedCompleter{results: []func() (*Result, error){retryableErr, okResult}}

	result, err := CompleteWithRetryPolicy(context.Background(), fake, Request{Task: TaskEntry}, fastPolicy(3))
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if result.Content != "ok" {
		t.Errorf("content = %q", result.Content)
	}
	if fake.calls != 2 {
		t.Errorf("calls = %d, want 2", fake.calls)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	fake := &scriptedCompleter{results: []func() (*Result, error){retryableErr}}

	_, err := CompleteWithRetryPolicy(context.Background(), fake, Request{Task: TaskEntry}, fastPolicy(3))
	if err == nil {
		t.Fatal("expected error")
	}
	if fake.calls != 3 {
		t.Errorf("calls = %d, want 3", fake.calls)
	}
}

func TestRetryTitleGetsTwoAttempts(t *testing.T) {
	fake := &scriptedCompleter{results: []func() (*Result, error){retryableErr}}

	_, err := CompleteWithRetryPolicy(context.Background(), fake, Request{Task: TaskTitle}, fastPolicy(PolicyForTask(TaskTitle).MaxAttempts))
	if err == nil {
		t.Fatal("expected error")
	}
	if fake.calls != 2 {
		t.Errorf("calls = %d, want 2", fake.calls)
	}
}

func TestRetryStopsOnMalformed(t *testing.T) {
	fake := &scriptedCompleter{results: []func() (*Result, error){malformedErr}}

	_, err := CompleteWithRetryPolicy(context.Background(), fake, Request{Task: TaskEntry}, fastPolicy(3))
	if err == nil {
		t.Fatal("expected error")
	}
	if fake.calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry on malformed)", fake.calls)
	}
}
