// Package orchestrator sequences the content pipeline tasks: prompt
// building, model calls with retry, extraction, and persistence. Each
// operation degrades to a deterministic fallback when the provider is
// unavailable so callers always receive a usable record.
package orchestrator

import (
	"context"
	"time"

	"github.com/inkwell-ai/inkwell/pkg/cache"
	"github.com/inkwell-ai/inkwell/pkg/chat"
	"github.com/inkwell-ai/inkwell/pkg/config"
	"github.com/inkwell-ai/inkwell/pkg/journal"
	"github.com/inkwell-ai/inkwell/pkg/logging"
	"github.com/inkwell-ai/inkwell/pkg/model"
)

// Store is the persistence surface the pipeline needs. The sqlite
// store implements it; tests use in-memory fakes.
type Store interface {
	// RecentEntries returns up to limit entries, newest first.
	RecentEntries(ctx context.Context, ownerID int64, limit int) ([]journal.Entry, error)
	// EntriesBetween returns up to limit entries in a period, oldest first.
	// Nil bounds leave that side of the period open.
	EntriesBetween(ctx context.Context, ownerID int64, start, end *time.Time, limit int) ([]journal.Entry, error)

	UpdateEntrySummary(ctx context.Context, entryID int64, summary string, at time.Time) error
	AddSummaryVersion(ctx context.Context, entryID int64, summary string) error

	ListInsights(ctx context.Context, ownerID int64) ([]journal.Insight, error)
	ReplaceInsights(ctx context.Context, ownerID int64, insights []journal.Insight) error

	// LatestBiography returns the most recently updated biography, or
	// nil when the owner has none.
	LatestBiography(ctx context.Context, ownerID int64) (*journal.Biography, error)
	// BiographyForPeriod returns the biography matching the exact
	// period bounds, or nil when absent.
	BiographyForPeriod(ctx context.Context, ownerID int64, start, end *time.Time) (*journal.Biography, error)
	SaveBiography(ctx context.Context, bio *journal.Biography) error
}

// Orchestrator coordinates the pipeline components.
type Orchestrator struct {
	completer model.Completer
	cache     *cache.Store
	store     Store
	cfg       *config.Config
	logger    *logging.Logger

	// now is swappable for tests
	now func() time.Time
}

// New wires an orchestrator from its components.
func New(completer model.Completer, responseCache *cache.Store, store Store, cfg *config.Config, logger *logging.Logger) *Orchestrator {
	return &Orchestrator{
		completer: completer,
		cache:     responseCache,
		store:     store,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// ChatTurn advances a guided conversation by one user message.
func (o *Orchestrator) ChatTurn(history []chat.Message, message, mode string) chat.TurnResult {
	result := chat.Turn(history, message, chat.NormalizeMode(mode), o.now())
	o.logger.Info(logging.CategoryChat, "chat_turn", "processed chat turn", map[string]any{
		"mode":     mode,
		"finalize": result.Finalize,
	})
	return result
}
