package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Category represents the subsystem generating the log
type Category string

const (
	CategoryModel    Category = "model"
	CategoryTask     Category = "task"
	CategoryCache    Category = "cache"
	CategoryStorage  Category = "storage"
	CategoryGateway  Category = "gateway"
	CategoryChat     Category = "chat"
	CategoryCompiler Category = "compiler"
)

// Event represents a structured log event
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     Level          `json:"level"`
	Category  Category       `json:"category"`
	EventType string         `json:"type"`
	RequestID int64          `json:"request_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	Message   string         `json:"message,omitempty"`
}

// Logger writes structured events as JSON lines. Errors are mirrored to a
// dedicated error log so provider failures can be audited without replaying
// the main stream.
type Logger struct {
	out       io.Writer
	errorFile *os.File
	mainFile  *os.File
	mu        sync.Mutex
	minLevel  Level
}

// NewLogger creates a logger writing to <baseDir>/inkwell.jsonl and
// <baseDir>/errors.jsonl.
func NewLogger(baseDir string) (*Logger, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	mainFile, err := os.OpenFile(
		filepath.Join(baseDir, "inkwell.jsonl"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND,
		0o644,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}

	errorFile, err := os.OpenFile(
		filepath.Join(baseDir, "errors.jsonl"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND,
		0o644,
	)
	if err != nil {
		mainFile.Close()
		return nil, fmt.Errorf("failed to open error log: %w", err)
	}

	return &Logger{
		out:       mainFile,
		mainFile:  mainFile,
		errorFile: errorFile,
		minLevel:  LevelInfo,
	}, nil
}

// NewWriterLogger creates a logger writing to an arbitrary writer. Used by
// tests and by the CLI when logging to stderr.
func NewWriterLogger(w io.Writer) *Logger {
	return &Logger{out: w, minLevel: LevelInfo}
}

// SetMinLevel sets the minimum log level
func (l *Logger) SetMinLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minLevel = level
}

// Log writes an event to the appropriate destinations
func (l *Logger) Log(event Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if !l.shouldLog(event.Level) {
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	data = append(data, '\n')

	if l.out != nil {
		if _, err := l.out.Write(data); err != nil {
			return fmt.Errorf("failed to write log: %w", err)
		}
	}

	if event.Level == LevelError && l.errorFile != nil {
		if _, err := l.errorFile.Write(data); err != nil {
			return fmt.Errorf("failed to write error log: %w", err)
		}
	}

	return nil
}

func (l *Logger) shouldLog(level Level) bool {
	levels := map[Level]int{
		LevelDebug: 0,
		LevelInfo:  1,
		LevelWarn:  2,
		LevelError: 3,
	}
	return levels[level] >= levels[l.minLevel]
}

// Debug logs a debug event
func (l *Logger) Debug(category Category, eventType string, message string, details map[string]any) error {
	return l.Log(Event{Level: LevelDebug, Category: category, EventType: eventType, Message: message, Details: details})
}

// Info logs an info event
func (l *Logger) Info(category Category, eventType string, message string, details map[string]any) error {
	return l.Log(Event{Level: LevelInfo, Category: category, EventType: eventType, Message: message, Details: details})
}

// Warn logs a warning event
func (l *Logger) Warn(category Category, eventType string, message string, details map[string]any) error {
	return l.Log(Event{Level: LevelWarn, Category: category, EventType: eventType, Message: message, Details: details})
}

// Error logs an error event
func (l *Logger) Error(category Category, eventType string, message string, details map[string]any) error {
	return l.Log(Event{Level: LevelError, Category: category, EventType: eventType, Message: message, Details: details})
}

// WithRequest returns a helper bound to a correlation identifier. Every
// model call carries one; all lines for the call share it.
func (l *Logger) WithRequest(requestID int64) *RequestLogger {
	return &RequestLogger{logger: l, requestID: requestID}
}

// RequestLogger tags every event with a request correlation ID.
type RequestLogger struct {
	logger    *Logger
	requestID int64
}

// Info logs an info event tagged with the request ID
func (r *RequestLogger) Info(category Category, eventType string, message string, details map[string]any) error {
	return r.logger.Log(Event{Level: LevelInfo, Category: category, EventType: eventType, Message: message, Details: details, RequestID: r.requestID})
}

// Error logs an error event tagged with the request ID
func (r *RequestLogger) Error(category Category, eventType string, message string, details map[string]any) error {
	return r.logger.Log(Event{Level: LevelError, Category: category, EventType: eventType, Message: message, Details: details, RequestID: r.requestID})
}

// Close closes the underlying log files
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var errs []error
	if l.mainFile != nil {
		if err := l.mainFile.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if l.errorFile != nil {
		if err := l.errorFile.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing log files: %v", errs)
	}
	return nil
}
