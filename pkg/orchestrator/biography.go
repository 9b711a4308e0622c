package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	inkerr "github.com/inkwell-ai/inkwell/pkg/errors"
	"github.com/inkwell-ai/inkwell/pkg/extract"
	"github.com/inkwell-ai/inkwell/pkg/journal"
	"github.com/inkwell-ai/inkwell/pkg/logging"
	"github.com/inkwell-ai/inkwell/pkg/model"
	"github.com/inkwell-ai/inkwell/pkg/prompts"
)

const (
	noEntriesForBiography = "Add more journal entries to generate your biography. Your life story will be crafted based on your journaling history."
	biographyUnavailable  = "Unable to generate your biography at this time. Please try again later."
)

// GeneratePeriodBiography writes a first-person narrative over a date
// range and upserts the biography keyed by that exact period.
func (o *Orchestrator) GeneratePeriodBiography(ctx context.Context, ownerID int64, start, end time.Time) (*journal.Biography, error) {
	entries, err := o.store.EntriesBetween(ctx, ownerID, &start, &end, o.cfg.Limits.MaxEntriesForBiography)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, inkerr.New(inkerr.ErrCodeInvalidInput, "no entries in the requested period").
			WithContext("owner_id", ownerID)
	}

	period := fmt.Sprintf("from %s to %s", start.Format("January 2006"), end.Format("January 2006"))
	prompt := prompts.PeriodBiography(entrySamples(entries), period)
	res, err := o.completeBiography(ctx, prompt)
	if err != nil {
		return nil, err
	}

	bio, err := o.store.BiographyForPeriod(ctx, ownerID, &start, &end)
	if err != nil {
		return nil, err
	}
	if bio == nil {
		bio = &journal.Biography{
			OwnerID:     ownerID,
			PeriodStart: &start,
			PeriodEnd:   &end,
		}
	}
	bio.Title = "My Life Story " + period
	bio.Content = res.Content

	if err := o.store.SaveBiography(ctx, bio); err != nil {
		return nil, err
	}

	o.logger.Info(logging.CategoryTask, "biography_generated", "generated period biography", map[string]any{
		"owner_id": ownerID,
		"period":   period,
	})
	return bio, nil
}

// GenerateLifeStory writes a third-person biography from recent entries
// and stored insights. A non-empty chapter scopes the narrative to one
// life area and updates only that chapter; otherwise the full narrative
// is saved and auto-classified into the standard chapters. Failures
// return a reader-facing message instead of an error.
func (o *Orchestrator) GenerateLifeStory(ctx context.Context, ownerID int64, chapter, chapterDescription string) (string, error) {
	entries, err := o.store.RecentEntries(ctx, ownerID, o.cfg.Limits.MaxEntriesForInsights)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return noEntriesForBiography, nil
	}

	insights, err := o.store.ListInsights(ctx, ownerID)
	if err != nil {
		return "", err
	}
	insightTexts := make([]string, 0, len(insights))
	for _, in := range insights {
		insightTexts = append(insightTexts, fmt.Sprintf("%s: %s", in.Title, in.Content))
	}

	prompt := prompts.LifeStory(entrySamples(entries), insightTexts, chapter, chapterDescription)
	res, err := o.completeBiography(ctx, prompt)
	if err != nil {
		o.logger.Error(logging.CategoryTask, "biography_fallback", "life story generation failed", map[string]any{
			"owner_id": ownerID,
			"chapter":  chapter,
			"error":    err.Error(),
		})
		if chapter != "" {
			return fmt.Sprintf("Unable to generate the '%s' chapter at this time. Please try again later.", chapter), nil
		}
		return biographyUnavailable, nil
	}

	bio, err := o.store.LatestBiography(ctx, ownerID)
	if err != nil {
		return "", err
	}
	if bio == nil {
		now := o.now()
		fiveYearsAgo := now.AddDate(-5, 0, 0)
		bio = &journal.Biography{
			OwnerID:     ownerID,
			Title:       "My Life Story",
			PeriodStart: &fiveYearsAgo,
			PeriodEnd:   &now,
		}
	}
	if bio.ChaptersData == nil {
		bio.ChaptersData = make(map[string]any)
	}

	if chapter != "" {
		bio.ChaptersData[extract.CanonicalKey(chapter)] = extract.Section{
			Title:       chapter,
			Content:     res.Content,
			LastUpdated: o.now().Format(time.RFC3339),
		}
	} else {
		bio.Content = res.Content
		for key, section := range o.classifyChapters(ctx, res.Content) {
			bio.ChaptersData[key] = section
		}
	}

	if err := o.store.SaveBiography(ctx, bio); err != nil {
		return "", err
	}
	return res.Content, nil
}

// classifyChapters splits a biography into the standard chapters. A
// failed classification returns nothing; the narrative itself is
// already saved.
func (o *Orchestrator) classifyChapters(ctx context.Context, biography string) map[string]extract.Section {
	prompt := prompts.ChapterClassification(biography)
	res, err := o.completeBiography(ctx, prompt)
	if err != nil {
		o.logger.Warn(logging.CategoryTask, "chapter_classification_failed", "skipping chapter split", map[string]any{
			"error": err.Error(),
		})
		return nil
	}

	sections, err := extract.Sections(res.Content, prompts.StandardChapters, o.now())
	if err != nil {
		o.logger.Warn(logging.CategoryTask, "chapter_classification_unparseable", "skipping chapter split", nil)
		return nil
	}

	for key, section := range sections {
		if section.Title == "" {
			section.Title = titleForChapterKey(key)
			sections[key] = section
		}
	}
	return sections
}

func (o *Orchestrator) completeBiography(ctx context.Context, prompt prompts.Prompt) (*model.Result, error) {
	return model.CompleteWithRetry(ctx, o.completer, model.Request{
		Task:        model.TaskBiography,
		System:      prompt.System,
		Prompt:      prompt.User,
		Temperature: prompt.Temperature,
		MaxTokens:   prompt.MaxTokens,
		Timeout:     o.cfg.Timeouts.Biography,
	})
}

var chapterTitleCaser = cases.Title(language.English)

func titleForChapterKey(key string) string {
	for _, title := range prompts.StandardChapters {
		if extract.CanonicalKey(title) == key {
			return title
		}
	}
	return chapterTitleCaser.String(strings.ReplaceAll(key, "_", " "))
}
