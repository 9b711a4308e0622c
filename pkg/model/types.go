package model

import (
	"context"
	"time"
)

// Task identifies which pipeline task a completion serves. Used for
// metrics labels, per-task timeouts, and retry policies.
type Task string

const (
	TaskEntry     Task = "entry"
	TaskTitle     Task = "title"
	TaskSummary   Task = "summary"
	TaskInsights  Task = "insights"
	TaskBiography Task = "biography"
	TaskChat      Task = "chat"
	TaskCompile   Task = "compile"
)

// Message represents a chat message
type Message struct {
	Role    string `json:"role"` // user, assistant, system
	Content string `json:"content"`
}

// Request is a single completion request against the provider
type Request struct {
	Task        Task
	System      string
	Prompt      string
	Messages    []Message // when set, sent verbatim instead of System/Prompt
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Result is a successful completion
type Result struct {
	Content   string
	RequestID int64
	Model     string
	Usage     Usage
	Latency   time.Duration
}

// Completer is the interface the pipeline depends on. The concrete
// Client talks to an OpenAI-compatible endpoint; tests substitute fakes.
type Completer interface {
	Complete(ctx context.Context, req Request) (*Result, error)
}

// chatRequest is the wire format of a chat completion request
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Stream      bool      `json:"stream"`
}

// chatResponse is the wire format of a chat completion response
type chatResponse struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []choice `json:"choices"`
	Usage   Usage    `json:"usage"`
	Error   *apiError `json:"error,omitempty"`
}

type choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    any    `json:"code"`
}

// Usage represents token usage for a completion
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
