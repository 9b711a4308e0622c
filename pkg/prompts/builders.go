package prompts

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	journalSystem   = "You are a helpful journal assistant that transforms brief notes into thoughtful diary entries."
	writingSystem   = "You are a helpful writing assistant."
	biographySystem = "You are a skilled biographer who creates compelling life narratives based on journal entries."
	organizerSystem = "You are an expert at analyzing and organizing biographies into thematic chapters."

	titleExcerptLimit     = 300
	insightContentLimit   = 200
	biographyContentLimit = 500
	sampleContentLimit    = 300

	// promptTokenBudget caps how much entry context the multi-entry
	// prompts carry; builders drop samples until the estimate fits.
	promptTokenBudget = 6000
)

// Entry builds the prompt that expands a brief note into a full entry.
func Entry(note string, now time.Time) Prompt {
	today := now.Format("January 2, 2006")
	user := fmt.Sprintf(`Transform the following daily activities into a reflective, well-written journal entry.
Add emotional depth, insights, and reflection while staying true to the events mentioned.

Today's date: %s

User's activities: %s

Write the entry in first person as if the user wrote it themselves, with a thoughtful, introspective tone.
Include paragraphs for readability and natural flow.`, today, note)

	return Prompt{System: journalSystem, User: user, Temperature: 0.7, MaxTokens: 800}
}

// PersonalizedEntry builds the entry prompt with a style guide derived
// from the writer's preferences.
func PersonalizedEntry(note string, prefs Preferences) Prompt {
	user := fmt.Sprintf(`Transform the following daily activities into a reflective, well-written journal entry.
Add emotional depth, insights, and reflection while staying true to the events mentioned.

User's activities: %s

Style guide: %s

Write the entry in first person as if the user wrote it themselves.
Include paragraphs for readability and natural flow.`, note, StyleGuide(prefs))

	return Prompt{System: journalSystem, User: user, Temperature: 0.7, MaxTokens: 800}
}

// Title builds the title prompt from the first part of a generated entry.
func Title(entry string) Prompt {
	excerpt := truncate(entry, titleExcerptLimit)
	user := fmt.Sprintf(`Create a short, engaging title for this journal entry:

%s...

The title should be 5-7 words maximum, reflecting the main themes or feelings in the entry.`, excerpt)

	return Prompt{System: writingSystem, User: user, Temperature: 0.7, MaxTokens: 30}
}

// Summary builds the psychological summary prompt for a single entry.
func Summary(title string, date time.Time, content string) Prompt {
	user := fmt.Sprintf(`Analyze this diary entry and provide a thoughtful summary with insights about the person's feelings,
motivations, and patterns. Identify any notable themes or emotional states:

Title: %s
Date: %s
Content: %s

Format your response as a brief summary (2-3 paragraphs) focused on psychological insights.`,
		title, date.Format("2006-01-02"), content)

	return Prompt{System: writingSystem, User: user, Temperature: 0.7, MaxTokens: 1000}
}

// Insights builds the pattern-analysis prompt over recent entries.
// Responses are requested as JSON so the extractor can parse them.
// Samples arrive newest first; the oldest are dropped if the prompt
// would exceed the token budget.
func Insights(samples []EntrySample) Prompt {
	p := insightsPrompt(samples)
	for len(samples) > 1 && EstimatePromptTokens(p) > promptTokenBudget {
		samples = samples[:len(samples)-1]
		p = insightsPrompt(samples)
	}
	return p
}

func insightsPrompt(samples []EntrySample) Prompt {
	var blocks []string
	for i, s := range samples {
		blocks = append(blocks, fmt.Sprintf("Entry %d:\nTitle: %s\nDate: %s\nContent: %s...",
			i+1, s.Title, s.Date.Format("2006-01-02"), truncate(s.Content, insightContentLimit)))
	}

	user := fmt.Sprintf(`Based on these diary entries, identify patterns, make observations about mood trends,
and suggest personal growth opportunities. Focus on:

1. Recurring themes or concerns
2. Mood patterns
3. Potential areas for personal development
4. Notable achievements or progress

%s

Format your response as JSON with the following structure:
{
    "patterns": [
        {"title": "Pattern title", "description": "Description of pattern"}
    ],
    "suggestions": [
        {"title": "Suggestion title", "description": "Description of suggestion"}
    ],
    "mood_analysis": {"title": "Mood Analysis", "description": "Overall mood analysis"}
}`, strings.Join(blocks, "\n\n"))

	return Prompt{System: writingSystem, User: user, Temperature: 0.7, MaxTokens: 1000}
}

// PeriodBiography builds the first-person narrative prompt for a date
// range. Samples must be ordered oldest first; the earliest are dropped
// if the prompt would exceed the token budget.
func PeriodBiography(samples []EntrySample, periodDescription string) Prompt {
	p := periodBiographyPrompt(samples, periodDescription)
	for len(samples) > 1 && EstimatePromptTokens(p) > promptTokenBudget {
		samples = samples[1:]
		p = periodBiographyPrompt(samples, periodDescription)
	}
	return p
}

func periodBiographyPrompt(samples []EntrySample, periodDescription string) Prompt {
	var blocks []string
	for i, s := range samples {
		blocks = append(blocks, fmt.Sprintf("Entry %d:\nTitle: %s\nDate: %s\nContent: %s...",
			i+1, s.Title, s.Date.Format("2006-01-02"), truncate(s.Content, biographyContentLimit)))
	}

	user := fmt.Sprintf(`Write a cohesive, first-person biography based on these diary entries %s.
Craft a narrative that captures the person's experiences, growth, and significant events.
Use a personal, reflective tone as if the person is telling their own life story.

%s

Write the biography as a thoughtful, introspective personal narrative with natural transitions
between events and themes. Use the first person perspective. Make it emotionally resonant and
capture the person's voice based on their diary entries.

The biography should be divided into clear paragraphs and should be around 500-800 words.`,
		periodDescription, strings.Join(blocks, "\n\n"))

	return Prompt{System: writingSystem, User: user, Temperature: 0.7, MaxTokens: 1000}
}

// LifeStory builds the third-person biography prompt from entry samples
// and prior insights. A non-empty chapter scopes the narrative to one
// area of the writer's life. Samples arrive newest first; the oldest
// are dropped if the prompt would exceed the token budget.
func LifeStory(samples []EntrySample, insights []string, chapter, chapterDescription string) Prompt {
	p := lifeStoryPrompt(samples, insights, chapter, chapterDescription)
	for len(samples) > 1 && EstimatePromptTokens(p) > promptTokenBudget {
		samples = samples[:len(samples)-1]
		p = lifeStoryPrompt(samples, insights, chapter, chapterDescription)
	}
	return p
}

func lifeStoryPrompt(samples []EntrySample, insights []string, chapter, chapterDescription string) Prompt {
	type sampleJSON struct {
		Date    string `json:"date"`
		Title   string `json:"title"`
		Content string `json:"content"`
		Mood    string `json:"mood,omitempty"`
		Tags    string `json:"tags,omitempty"`
	}

	var rows []sampleJSON
	for _, s := range samples {
		content := s.Content
		if len(content) > sampleContentLimit {
			content = content[:sampleContentLimit] + "..."
		}
		rows = append(rows, sampleJSON{
			Date:    s.Date.Format("2006-01-02"),
			Title:   s.Title,
			Content: content,
			Mood:    s.Mood,
			Tags:    strings.Join(s.Tags, ", "),
		})
	}
	entriesText, _ := json.MarshalIndent(rows, "", "  ")

	insightsText := "No insights available yet."
	if len(insights) > 0 {
		insightsText = strings.Join(insights, "\n")
	}

	chapterContent := ""
	if chapter != "" {
		if chapterDescription != "" {
			chapterContent = fmt.Sprintf(`Focus on generating content for the chapter: %q
Chapter description: %s

This should be a cohesive section focusing specifically on this area of the user's life.`, chapter, chapterDescription)
		} else {
			chapterContent = fmt.Sprintf(`Focus on generating content for the chapter: %q
This should be a cohesive section focusing specifically on this area of the user's life.`, chapter)
		}
	}

	user := fmt.Sprintf(`Generate a thoughtful, biographical narrative based on the user's journal entries.

USER'S JOURNAL ENTRIES (sample):
%s

USER'S INSIGHTS:
%s

%s

Guidelines:
1. Write in third person, as if this is a biography about the person's life
2. Maintain a respectful, reflective tone
3. Extract themes, patterns, and significant events from their entries
4. Create a coherent narrative that captures their personality and experiences
5. Avoid inventing major life events not supported by the entries
6. Use elegant, thoughtful language appropriate for a biographical work
7. Organize content into meaningful paragraphs with good flow
8. Length should be approximately 800-1200 words`, entriesText, insightsText, chapterContent)

	return Prompt{System: biographySystem, User: user, Temperature: 0.7, MaxTokens: 1500}
}

// StandardChapters lists the life chapter categories a biography gets
// classified into, in presentation order.
var StandardChapters = []string{
	"Childhood",
	"Education",
	"Career",
	"Relationships",
	"Personal Growth",
	"Recent Years",
}

// ChapterClassification builds the prompt that splits a biography into
// the standard chapters. Lower temperature keeps the output parseable.
func ChapterClassification(biography string) Prompt {
	user := fmt.Sprintf(`I have a biography text that needs to be separated into the following chapters:

%s

Please read the biography and extract content relevant to each chapter.
For each chapter, return only the content that belongs to that specific chapter.

Format the response as JSON with the following structure:
{
    "childhood": { "content": "extracted content for childhood chapter here" },
    "education": { "content": "extracted content for education chapter here" },
    "career": { "content": "extracted content for career chapter here" },
    "relationships": { "content": "extracted content for relationships chapter here" },
    "personal_growth": { "content": "extracted content for personal growth chapter here" },
    "recent_years": { "content": "extracted content for recent years chapter here" }
}

Here is the biography to classify:

%s`, strings.Join(StandardChapters, ", "), biography)

	return Prompt{System: organizerSystem, User: user, Temperature: 0.3, MaxTokens: 1500}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
