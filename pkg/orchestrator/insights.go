package orchestrator

import (
	"context"

	inkerr "github.com/inkwell-ai/inkwell/pkg/errors"
	"github.com/inkwell-ai/inkwell/pkg/extract"
	"github.com/inkwell-ai/inkwell/pkg/journal"
	"github.com/inkwell-ai/inkwell/pkg/logging"
	"github.com/inkwell-ai/inkwell/pkg/model"
	"github.com/inkwell-ai/inkwell/pkg/prompts"
)

// GenerateInsights analyzes recent entries and replaces the owner's
// stored insights with a fresh batch. An unparseable model response is
// a no-op: existing insights survive and no error is returned. Owners
// without entries get an empty batch without a model call.
func (o *Orchestrator) GenerateInsights(ctx context.Context, ownerID int64) ([]journal.Insight, error) {
	entries, err := o.store.RecentEntries(ctx, ownerID, o.cfg.Limits.MaxEntriesForInsights)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	prompt := prompts.Insights(entrySamples(entries))
	res, err := model.CompleteWithRetry(ctx, o.completer, model.Request{
		Task:        model.TaskInsights,
		System:      prompt.System,
		Prompt:      prompt.User,
		Temperature: prompt.Temperature,
		MaxTokens:   prompt.MaxTokens,
		Timeout:     o.cfg.Timeouts.Insight,
	})
	if err != nil {
		return nil, err
	}

	payload, err := extract.Insights(res.Content)
	if err != nil {
		if inkerr.IsCode(err, inkerr.ErrCodeExtractFailed) {
			o.logger.Warn(logging.CategoryTask, "insights_unparseable", "keeping previous insights", map[string]any{
				"owner_id":   ownerID,
				"request_id": res.RequestID,
			})
			return nil, nil
		}
		return nil, err
	}

	insights := buildInsights(ownerID, payload)
	if err := o.store.ReplaceInsights(ctx, ownerID, insights); err != nil {
		return nil, err
	}

	o.logger.Info(logging.CategoryTask, "insights_generated", "replaced stored insights", map[string]any{
		"owner_id": ownerID,
		"count":    len(insights),
	})
	return insights, nil
}

func buildInsights(ownerID int64, payload *extract.InsightPayload) []journal.Insight {
	var insights []journal.Insight
	for _, p := range payload.Patterns {
		insights = append(insights, journal.Insight{
			OwnerID: ownerID,
			Kind:    "pattern",
			Title:   p.Title,
			Content: p.Description,
		})
	}
	for _, s := range payload.Suggestions {
		insights = append(insights, journal.Insight{
			OwnerID: ownerID,
			Kind:    "suggestion",
			Title:   s.Title,
			Content: s.Description,
		})
	}
	if payload.MoodAnalysis.Title != "" || payload.MoodAnalysis.Description != "" {
		insights = append(insights, journal.Insight{
			OwnerID: ownerID,
			Kind:    "mood_analysis",
			Title:   payload.MoodAnalysis.Title,
			Content: payload.MoodAnalysis.Description,
		})
	}
	return insights
}

func entrySamples(entries []journal.Entry) []prompts.EntrySample {
	samples := make([]prompts.EntrySample, 0, len(entries))
	for _, e := range entries {
		samples = append(samples, prompts.EntrySample{
			Date:    e.CreatedAt,
			Title:   e.Title,
			Content: e.Content,
			Mood:    e.Mood,
			Tags:    e.Tags,
		})
	}
	return samples
}
