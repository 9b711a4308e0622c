package model

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	inkerr "github.com/inkwell-ai/inkwell/pkg/errors"
	"github.com/inkwell-ai/inkwell/pkg/logging"
)

const (
	defaultTimeout = 2 * time.Minute

	// Conservative limit to stay under free-tier provider quotas
	defaultRateLimit = rate.Limit(2)
	defaultBurstSize = 5
)

// DefaultTransport returns an http.Transport with tuned connection pool settings.
func DefaultTransport() *http.Transport {
	return &http.Transport{
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		MaxConnsPerHost:       50,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}
}

// Client talks to an OpenAI-compatible chat completion endpoint.
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	httpClient  *http.Client
	transport   *LoggingTransport
	rateLimiter *rate.Limiter
	logger      *logging.Logger

	// correlation counter, strictly increasing per process. Seeded with
	// startup millis so IDs from successive runs do not collide in logs.
	counter atomic.Int64
}

// ClientOptions configures optional client behavior
type ClientOptions struct {
	NetworkLogsEnabled bool
	NetworkLogDir      string
	RateLimit          rate.Limit
	Burst              int
}

// NewClient creates a client for the given endpoint and model
func NewClient(apiKey, baseURL, modelID string, logger *logging.Logger) *Client {
	return NewClientWithOptions(apiKey, baseURL, modelID, logger, ClientOptions{})
}

func NewClientWithOptions(apiKey, baseURL, modelID string, logger *logging.Logger, opts ClientOptions) *Client {
	transport := NewLoggingTransport(DefaultTransport(), opts.NetworkLogDir, opts.NetworkLogsEnabled)

	limit := opts.RateLimit
	if limit == 0 {
		limit = defaultRateLimit
	}
	burst := opts.Burst
	if burst == 0 {
		burst = defaultBurstSize
	}

	c := &Client{
		apiKey:      apiKey,
		baseURL:     baseURL,
		model:       modelID,
		transport:   transport,
		rateLimiter: rate.NewLimiter(limit, burst),
		logger:      logger,
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: transport,
		},
	}
	c.counter.Store(time.Now().UnixMilli())
	return c
}

// NextRequestID returns the next correlation identifier.
func (c *Client) NextRequestID() int64 {
	return c.counter.Add(1)
}

// Complete executes a single completion request. Every call gets a fresh
// correlation ID carried on the X-Request-ID header and every log line
// for the call.
func (c *Client) Complete(ctx context.Context, req Request) (*Result, error) {
	requestID := c.NextRequestID()
	rlog := c.logger.WithRequest(requestID)

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		mapped := c.mapError(err, req.Task, requestID)
		rlog.Error(logging.CategoryModel, "rate_limit_wait", mapped.Error(), map[string]any{"task": string(req.Task)})
		return nil, mapped
	}

	messages := req.Messages
	if len(messages) == 0 {
		if req.System != "" {
			messages = append(messages, Message{Role: "system", Content: req.System})
		}
		messages = append(messages, Message{Role: "user", Content: req.Prompt})
	}

	wireReq := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	start := time.Now()
	resp, err := c.invoke(ctx, wireReq, requestID)
	latency := time.Since(start)
	requestLatency.WithLabelValues(string(req.Task)).Observe(latency.Seconds())

	if err != nil {
		mapped := c.mapError(err, req.Task, requestID)
		requestsTotal.WithLabelValues(string(req.Task), string(inkerr.GetCode(mapped))).Inc()
		rlog.Error(logging.CategoryModel, "completion_failed", mapped.Error(), map[string]any{
			"task":       string(req.Task),
			"latency_ms": latency.Milliseconds(),
		})
		return nil, mapped
	}

	content, err := extractContent(resp)
	if err != nil {
		mapped := c.mapError(err, req.Task, requestID)
		requestsTotal.WithLabelValues(string(req.Task), string(inkerr.GetCode(mapped))).Inc()
		rlog.Error(logging.CategoryModel, "completion_malformed", mapped.Error(), map[string]any{
			"task":       string(req.Task),
			"latency_ms": latency.Milliseconds(),
		})
		return nil, mapped
	}

	requestsTotal.WithLabelValues(string(req.Task), "ok").Inc()
	tokensUsed.WithLabelValues(string(req.Task), "prompt").Add(float64(resp.Usage.PromptTokens))
	tokensUsed.WithLabelValues(string(req.Task), "completion").Add(float64(resp.Usage.CompletionTokens))
	rlog.Info(logging.CategoryModel, "completion_ok", "", map[string]any{
		"task":              string(req.Task),
		"latency_ms":        latency.Milliseconds(),
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
	})

	return &Result{
		Content:   content,
		RequestID: requestID,
		Model:     resp.Model,
		Usage:     resp.Usage,
		Latency:   latency,
	}, nil
}

func (c *Client) invoke(ctx context.Context, req chatRequest, requestID int64) (*chatResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", strconv.FormatInt(requestID, 10))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &statusError{status: resp.StatusCode, body: string(respBody)}
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, &decodeError{err: err}
	}
	if chatResp.Error != nil {
		return nil, &statusError{status: resp.StatusCode, body: chatResp.Error.Message}
	}

	return &chatResp, nil
}

func extractContent(resp *chatResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", &decodeError{err: fmt.Errorf("response has no choices")}
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", &decodeError{err: fmt.Errorf("response content is empty")}
	}
	return content, nil
}

type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("provider returned %d: %s", e.status, e.body)
}

type decodeError struct {
	err error
}

func (e *decodeError) Error() string {
	return fmt.Sprintf("malformed response: %v", e.err)
}

func (e *decodeError) Unwrap() error { return e.err }

// mapError classifies provider failures into the structured taxonomy.
// Timeouts, transport failures, and provider-side errors are retryable;
// malformed payloads are not.
func (c *Client) mapError(err error, task Task, requestID int64) error {
	ctxKV := func(e *inkerr.Error) *inkerr.Error {
		return e.WithContext("task", string(task)).WithContext("request_id", requestID)
	}

	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
		return ctxKV(inkerr.Wrap(err, inkerr.ErrCodeModelTimeout, "completion deadline exceeded").WithRetryable(true))
	}

	var se *statusError
	if stderrors.As(err, &se) {
		return ctxKV(inkerr.Wrap(err, inkerr.ErrCodeModelAPIError, "provider rejected request").
			WithContext("status", se.status).
			WithRetryable(true))
	}

	var de *decodeError
	if stderrors.As(err, &de) {
		return ctxKV(inkerr.Wrap(err, inkerr.ErrCodeModelMalformed, "provider response unusable"))
	}

	return ctxKV(inkerr.Wrap(err, inkerr.ErrCodeModelTransport, "provider unreachable").WithRetryable(true))
}

// Close releases client resources
func (c *Client) Close() error {
	if c.transport != nil {
		return c.transport.Close()
	}
	return nil
}
