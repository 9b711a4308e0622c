package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/inkwell-ai/inkwell/pkg/cache"
	"github.com/inkwell-ai/inkwell/pkg/journal"
	"github.com/inkwell-ai/inkwell/pkg/logging"
	"github.com/inkwell-ai/inkwell/pkg/model"
	"github.com/inkwell-ai/inkwell/pkg/prompts"
)

const photoParagraph = "\n\nI captured a special moment in a photo today. Looking at it now brings back the feelings and memories of that moment."

const summaryFallback = "Unable to generate summary at this time."

// EntryRequest asks the pipeline to expand a brief note into an entry.
type EntryRequest struct {
	Note        string
	OwnerID     int64
	Preferences *prompts.Preferences
	HasPhoto    bool
}

// EntryResult is a generated entry ready for the editor form.
type EntryResult struct {
	Title          string  `json:"title"`
	Entry          string  `json:"entry"`
	Error          string  `json:"error,omitempty"`
	Fallback       bool    `json:"fallback,omitempty"`
	CacheHit       bool    `json:"cache_hit"`
	GenerationTime float64 `json:"generation_time"`
}

// GenerateEntry expands a note into a full entry plus a dated title.
// Identical requests are served from the cache; photo requests bypass
// it because the photo paragraph makes each result unique to the day.
// Provider failures yield a fallback record that is never cached.
func (o *Orchestrator) GenerateEntry(ctx context.Context, req EntryRequest) EntryResult {
	start := o.now()
	personalized := req.Preferences != nil
	fingerprint := cache.Fingerprint(string(model.TaskEntry), req.Note, req.OwnerID, personalized, req.HasPhoto)

	if !req.HasPhoto {
		if payload, ok := o.cache.Get(fingerprint); ok {
			var result EntryResult
			if err := json.Unmarshal(payload, &result); err == nil {
				result.CacheHit = true
				result.GenerationTime = o.now().Sub(start).Seconds()
				return result
			}
		}
	}

	var prompt prompts.Prompt
	if personalized {
		prompt = prompts.PersonalizedEntry(req.Note, *req.Preferences)
	} else {
		prompt = prompts.Entry(req.Note, start)
	}

	res, err := model.CompleteWithRetry(ctx, o.completer, model.Request{
		Task:        model.TaskEntry,
		System:      prompt.System,
		Prompt:      prompt.User,
		Temperature: prompt.Temperature,
		MaxTokens:   prompt.MaxTokens,
		Timeout:     o.cfg.Timeouts.Entry,
	})
	if err != nil {
		o.logger.Error(logging.CategoryTask, "entry_fallback", "entry generation failed", map[string]any{
			"error": err.Error(),
		})
		return EntryResult{
			Title:          "Journal Entry - " + start.Format("January 02, 2006"),
			Entry:          fallbackEntryBody(req.Note),
			Error:          fmt.Sprintf("Failed to generate journal entry: %s", err.Error()),
			Fallback:       true,
			GenerationTime: o.now().Sub(start).Seconds(),
		}
	}

	content := res.Content
	if req.HasPhoto {
		content += photoParagraph
	}

	title := o.generateTitle(ctx, content)
	result := EntryResult{
		Title: title + " - " + start.Format("January 02, 2006"),
		Entry: content,
	}

	if !req.HasPhoto {
		if payload, err := json.Marshal(result); err == nil {
			o.cache.Put(fingerprint, payload)
		}
	}

	result.GenerationTime = o.now().Sub(start).Seconds()
	o.logger.Info(logging.CategoryTask, "entry_generated", "generated journal entry", map[string]any{
		"owner_id":     req.OwnerID,
		"personalized": personalized,
		"has_photo":    req.HasPhoto,
		"request_id":   res.RequestID,
	})
	return result
}

// generateTitle asks for a short title; a failed call degrades to a
// generic title rather than failing the whole entry.
func (o *Orchestrator) generateTitle(ctx context.Context, entry string) string {
	prompt := prompts.Title(entry)
	res, err := model.CompleteWithRetry(ctx, o.completer, model.Request{
		Task:        model.TaskTitle,
		System:      prompt.System,
		Prompt:      prompt.User,
		Temperature: prompt.Temperature,
		MaxTokens:   prompt.MaxTokens,
		Timeout:     o.cfg.Timeouts.Title,
	})
	if err != nil {
		o.logger.Error(logging.CategoryTask, "title_fallback", "title generation failed", map[string]any{
			"error": err.Error(),
		})
		if words := strings.Fields(entry); len(words) > 0 {
			if len(words) > 5 {
				words = words[:5]
			}
			return strings.Join(words, " ") + "..."
		}
		return "Journal Entry"
	}
	return cleanTitle(res.Content)
}

// SummarizeEntry generates a fresh summary for a stored entry. On
// success the existing summary is archived as a version before the new
// one is written, so regeneration never loses history. On failure
// nothing is persisted; the caller gets a placeholder string and the
// stored summary stays as it was.
func (o *Orchestrator) SummarizeEntry(ctx context.Context, entry *journal.Entry) (string, error) {
	prompt := prompts.Summary(entry.Title, entry.CreatedAt, entry.Content)
	res, err := model.CompleteWithRetry(ctx, o.completer, model.Request{
		Task:        model.TaskSummary,
		System:      prompt.System,
		Prompt:      prompt.User,
		Temperature: prompt.Temperature,
		MaxTokens:   prompt.MaxTokens,
		Timeout:     o.cfg.Timeouts.Entry,
	})
	if err != nil {
		o.logger.Error(logging.CategoryTask, "summary_fallback", "summary generation failed", map[string]any{
			"entry_id": entry.ID,
			"error":    err.Error(),
		})
		return summaryFallback, nil
	}

	if entry.Summary != "" {
		if verr := o.store.AddSummaryVersion(ctx, entry.ID, entry.Summary); verr != nil {
			return "", verr
		}
	}

	at := o.now()
	if serr := o.store.UpdateEntrySummary(ctx, entry.ID, res.Content, at); serr != nil {
		return "", serr
	}

	entry.Summary = res.Content
	entry.SummaryGeneratedAt = &at
	return res.Content, nil
}

func fallbackEntryBody(note string) string {
	if runes := []rune(note); len(runes) > 50 {
		note = string(runes[:50])
	}
	return "Today I " + note + "..."
}

// cleanTitle strips quotes and whitespace models wrap titles in.
func cleanTitle(title string) string {
	title = strings.TrimSpace(title)
	for len(title) >= 2 {
		first, last := title[0], title[len(title)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			title = strings.TrimSpace(title[1 : len(title)-1])
			continue
		}
		break
	}
	return title
}
