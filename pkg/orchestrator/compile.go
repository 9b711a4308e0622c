package orchestrator

import (
	"context"

	"github.com/inkwell-ai/inkwell/pkg/compiler"
	"github.com/inkwell-ai/inkwell/pkg/journal"
	"github.com/inkwell-ai/inkwell/pkg/logging"
	"github.com/inkwell-ai/inkwell/pkg/model"
	"github.com/inkwell-ai/inkwell/pkg/prompts"
)

// CompileResult pairs the proposed journal structure with the analysis
// that produced it.
type CompileResult struct {
	Analysis  compiler.Analysis `json:"analysis"`
	Structure compiler.Structure `json:"structure"`
}

// CompileJournal analyzes an entry set and builds a publishable
// structure. The ai method asks the model to propose chapters and falls
// back to an even split when the proposal is unusable; thematic and
// chronological structures are computed locally.
func (o *Orchestrator) CompileJournal(ctx context.Context, entries []journal.Entry, method, journalType string) CompileResult {
	analysis := compiler.Analyze(entries)

	var structure compiler.Structure
	switch method {
	case "ai":
		structure = o.aiStructure(ctx, entries, analysis, journalType)
	default:
		structure = compiler.FallbackStructure(entries, method, journalType)
		// Requested directly, so the grouping is not a fallback
		structure.Fallback = false
	}

	compiler.Finalize(&structure, entries, analysis.Quality)

	o.logger.Info(logging.CategoryCompiler, "journal_compiled", "built journal structure", map[string]any{
		"method":   method,
		"entries":  len(entries),
		"chapters": len(structure.Chapters),
		"fallback": structure.Fallback,
	})
	return CompileResult{Analysis: analysis, Structure: structure}
}

// ApplyEnhancements runs the requested AI extras over a built
// structure. Each enhancement tolerates its own failure; whatever
// succeeds is recorded in the structure's enhancement list.
func (o *Orchestrator) ApplyEnhancements(ctx context.Context, structure *compiler.Structure, enhancements []string) {
	chapterTitles := make([]string, 0, len(structure.Chapters))
	for _, c := range structure.Chapters {
		chapterTitles = append(chapterTitles, c.Title)
	}

	var applied []string
	for _, name := range enhancements {
		ok := false
		switch name {
		case "chapter_introductions":
			ok = true
			for i := range structure.Chapters {
				c := &structure.Chapters[i]
				intro, err := o.completeEnhancement(ctx, prompts.ChapterIntroduction(c.Title, c.Description))
				if err != nil {
					o.logger.Warn(logging.CategoryCompiler, "enhancement_failed", "chapter introduction failed", map[string]any{
						"chapter": c.Title, "error": err.Error(),
					})
					ok = false
					continue
				}
				c.Introduction = intro
			}
		case "reflection_questions":
			if text, err := o.completeEnhancement(ctx, prompts.ReflectionQuestions(structure.JournalType)); err == nil {
				structure.ReflectionQuestions = text
				ok = true
			} else {
				o.logger.Warn(logging.CategoryCompiler, "enhancement_failed", "reflection questions failed", map[string]any{"error": err.Error()})
			}
		case "thematic_connections":
			if text, err := o.completeEnhancement(ctx, prompts.ThematicConnections(structure.Title, chapterTitles)); err == nil {
				structure.ThematicConnections = text
				ok = true
			} else {
				o.logger.Warn(logging.CategoryCompiler, "enhancement_failed", "thematic connections failed", map[string]any{"error": err.Error()})
			}
		case "readers_guide":
			if text, err := o.completeEnhancement(ctx, prompts.ReadersGuide(structure.Title, structure.Description, structure.JournalType)); err == nil {
				structure.ReadersGuide = text
				ok = true
			} else {
				o.logger.Warn(logging.CategoryCompiler, "enhancement_failed", "readers guide failed", map[string]any{"error": err.Error()})
			}
		case "marketing_copy":
			if text, err := o.completeEnhancement(ctx, prompts.MarketingCopy(structure.Title, structure.Description, structure.JournalType)); err == nil {
				structure.MarketingCopy = text
				ok = true
			} else {
				o.logger.Warn(logging.CategoryCompiler, "enhancement_failed", "marketing copy failed", map[string]any{"error": err.Error()})
			}
		}
		if ok {
			applied = append(applied, name)
		}
	}
	structure.Enhancements = applied
}

func (o *Orchestrator) completeEnhancement(ctx context.Context, prompt prompts.Prompt) (string, error) {
	res, err := model.CompleteWithRetry(ctx, o.completer, model.Request{
		Task:        model.TaskCompile,
		System:      prompt.System,
		Prompt:      prompt.User,
		Temperature: prompt.Temperature,
		MaxTokens:   prompt.MaxTokens,
		Timeout:     o.cfg.Timeouts.Entry,
	})
	if err != nil {
		return "", err
	}
	return res.Content, nil
}

func (o *Orchestrator) aiStructure(ctx context.Context, entries []journal.Entry, analysis compiler.Analysis, journalType string) compiler.Structure {
	themes := make([]string, 0, len(analysis.Themes))
	for _, t := range analysis.Themes {
		themes = append(themes, t.Name)
	}

	prompt := prompts.JournalStructure("ai", journalType, len(entries), themes, analysis.WritingPatterns.WritingFrequency)
	res, err := model.CompleteWithRetry(ctx, o.completer, model.Request{
		Task:        model.TaskCompile,
		System:      prompt.System,
		Prompt:      prompt.User,
		Temperature: prompt.Temperature,
		MaxTokens:   prompt.MaxTokens,
		Timeout:     o.cfg.Timeouts.Biography,
	})
	if err != nil {
		o.logger.Error(logging.CategoryCompiler, "structure_fallback", "structure generation failed", map[string]any{
			"error": err.Error(),
		})
		return compiler.FallbackStructure(entries, "ai", journalType)
	}

	structure, err := compiler.ParseStructure(res.Content, "ai", journalType)
	if err != nil {
		o.logger.Warn(logging.CategoryCompiler, "structure_unparseable", "falling back to even chapters", map[string]any{
			"request_id": res.RequestID,
		})
		return compiler.FallbackStructure(entries, "ai", journalType)
	}

	compiler.DistributeEntries(&structure, entries)
	return structure
}
