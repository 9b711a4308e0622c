package prompts

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestEntryPromptIncludesDateAndNote(t *testing.T) {
	now := time.Date(2025, time.March, 7, 10, 0, 0, 0, time.UTC)
	p := Entry("went hiking with Sam", now)

	if !strings.Contains(p.User, "March 7, 2025") {
		t.Error("prompt should include today's date")
	}
	if !strings.Contains(p.User, "went hiking with Sam") {
		t.Error("prompt should include the note")
	}
	if p.MaxTokens != 800 {
		t.Errorf("max tokens = %d, want 800", p.MaxTokens)
	}
	if p.System == "" {
		t.Error("system message missing")
	}
}

func TestTitlePromptTruncatesEntry(t *testing.T) {
	entry := strings.Repeat("a", 500)
	p := Title(entry)

	if strings.Contains(p.User, strings.Repeat("a", 301)) {
		t.Error("excerpt should stop at 300 chars")
	}
	if !strings.Contains(p.User, strings.Repeat("a", 300)) {
		t.Error("excerpt should include first 300 chars")
	}
	if p.MaxTokens != 30 {
		t.Errorf("max tokens = %d, want 30", p.MaxTokens)
	}
}

func TestStyleGuideDefaults(t *testing.T) {
	guide := StyleGuide(DefaultPreferences())

	wantClauses := []string{
		"Write in a thoughtful, introspective tone with personal insights. ",
		"Balance both positive and challenging aspects of experiences. ",
		"Use moderately sophisticated language accessible to most readers. ",
		"Occasionally include metaphors or analogies to illustrate points. ",
		"End with 1-2 thoughtful reflective questions related to the events. ",
	}
	for _, clause := range wantClauses {
		if !strings.Contains(guide, clause) {
			t.Errorf("default style guide missing clause %q", clause)
		}
	}
	if strings.Contains(guide, "emphasize these areas") {
		t.Error("empty focus areas should not produce a clause")
	}
}

func TestStyleGuideAxes(t *testing.T) {
	tests := []struct {
		name  string
		prefs Preferences
		want  string
	}{
		{
			"poetic_style",
			Preferences{WritingStyle: "poetic"},
			"Include poetic language, metaphors, and a flowing, rhythmic writing style. ",
		},
		{
			"growth_tone",
			Preferences{Tone: "growth"},
			"Focus on lessons learned and personal growth opportunities. ",
		},
		{
			"focus_areas",
			Preferences{FocusAreas: []string{"work", "family"}},
			"When relevant, emphasize these areas: work, family. ",
		},
		{
			"frequent_metaphors",
			Preferences{MetaphorFrequency: "frequent"},
			"Frequently incorporate metaphors and analogies throughout the entry. ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StyleGuide(tt.prefs); !strings.Contains(got, tt.want) {
				t.Errorf("StyleGuide() = %q, missing %q", got, tt.want)
			}
		})
	}
}

func TestStyleGuideUnknownValuesIgnored(t *testing.T) {
	guide := StyleGuide(Preferences{WritingStyle: "sarcastic", Tone: "gloomy"})
	if guide != "" {
		t.Errorf("unknown axis values should contribute nothing, got %q", guide)
	}
}

func TestInsightsPromptNumbersEntries(t *testing.T) {
	samples := []EntrySample{
		{Title: "First", Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Content: "content one"},
		{Title: "Second", Date: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), Content: "content two"},
	}
	p := Insights(samples)

	if !strings.Contains(p.User, "Entry 1:") || !strings.Contains(p.User, "Entry 2:") {
		t.Error("entries should be numbered")
	}
	if !strings.Contains(p.User, `"patterns"`) || !strings.Contains(p.User, `"mood_analysis"`) {
		t.Error("prompt should request the JSON schema")
	}
}

func TestInsightsPromptDropsOldestOverBudget(t *testing.T) {
	content := strings.Repeat("a long stretch of journal writing ", 20)
	var samples []EntrySample
	for i := 0; i < 400; i++ {
		samples = append(samples, EntrySample{
			Title:   fmt.Sprintf("Sample %d", i+1),
			Date:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			Content: content,
		})
	}

	p := Insights(samples)
	if got := EstimatePromptTokens(p); got > promptTokenBudget {
		t.Errorf("prompt estimate = %d, want <= %d", got, promptTokenBudget)
	}
	if !strings.Contains(p.User, "Sample 1\n") {
		t.Error("newest sample must survive trimming")
	}
	if strings.Contains(p.User, "Sample 400\n") {
		t.Error("oldest sample should have been dropped")
	}
}

func TestPeriodBiographyPromptDropsEarliestOverBudget(t *testing.T) {
	content := strings.Repeat("a long stretch of journal writing ", 30)
	var samples []EntrySample
	for i := 0; i < 300; i++ {
		samples = append(samples, EntrySample{
			Title:   fmt.Sprintf("Milestone %d", i+1),
			Date:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Content: content,
		})
	}

	p := PeriodBiography(samples, "from January 2024 to October 2024")
	if got := EstimatePromptTokens(p); got > promptTokenBudget {
		t.Errorf("prompt estimate = %d, want <= %d", got, promptTokenBudget)
	}
	if !strings.Contains(p.User, "Milestone 300\n") {
		t.Error("latest sample must survive trimming")
	}
	if strings.Contains(p.User, "Milestone 1\n") {
		t.Error("earliest sample should have been dropped")
	}
}

func TestLifeStoryChapterScoping(t *testing.T) {
	samples := []EntrySample{{Title: "T", Date: time.Now(), Content: "c"}}

	scoped := LifeStory(samples, nil, "Career", "")
	if !strings.Contains(scoped.User, `"Career"`) {
		t.Error("chapter name should appear in prompt")
	}

	full := LifeStory(samples, nil, "", "")
	if strings.Contains(full.User, "Focus on generating content for the chapter") {
		t.Error("unscoped prompt should not mention a chapter")
	}
	if !strings.Contains(full.User, "No insights available yet.") {
		t.Error("missing insights placeholder")
	}
}

func TestChapterClassificationListsStandardChapters(t *testing.T) {
	p := ChapterClassification("a life in text")

	for _, chapter := range StandardChapters {
		if !strings.Contains(p.User, chapter) {
			t.Errorf("prompt missing chapter %q", chapter)
		}
	}
	if p.Temperature != 0.3 {
		t.Errorf("temperature = %v, want 0.3 for deterministic output", p.Temperature)
	}
}

func TestEstimateTokens(t *testing.T) {
	if got := EstimateTokens(""); got != 0 {
		t.Errorf("empty text = %d tokens, want 0", got)
	}
	short := EstimateTokens("hello world")
	long := EstimateTokens(strings.Repeat("hello world ", 50))
	if long <= short {
		t.Error("longer text should estimate more tokens")
	}
}
