package compiler

import (
	"strings"
	"testing"
	"time"

	"github.com/inkwell-ai/inkwell/pkg/journal"
)

func makeEntries(n int, daysApart int, tags []string, moods []string) []journal.Entry {
	start := time.Date(2025, 1, 6, 19, 30, 0, 0, time.UTC)
	entries := make([]journal.Entry, 0, n)
	for i := 0; i < n; i++ {
		e := journal.Entry{
			ID:        int64(i + 1),
			Title:     "Entry",
			Content:   strings.TrimSpace(strings.Repeat("word ", 150)),
			CreatedAt: start.AddDate(0, 0, i*daysApart),
		}
		if len(tags) > 0 {
			e.Tags = []string{tags[i%len(tags)]}
		}
		if len(moods) > 0 {
			e.Mood = moods[i%len(moods)]
		}
		entries = append(entries, e)
	}
	return entries
}

func TestAnalyzeBasics(t *testing.T) {
	entries := makeEntries(10, 3, []string{"work", "health"}, []string{"happy", "happy", "calm"})
	analysis := Analyze(entries)

	if analysis.TotalEntries != 10 {
		t.Errorf("total = %d", analysis.TotalEntries)
	}
	if analysis.DateRange == nil || analysis.DateRange.DurationDays != 28 {
		t.Errorf("date range = %+v, want 28 days", analysis.DateRange)
	}
	if analysis.MoodDistribution.DominantMood != "happy" {
		t.Errorf("dominant mood = %q", analysis.MoodDistribution.DominantMood)
	}
	if analysis.WritingPatterns.PreferredWritingTime != "evening" {
		t.Errorf("preferred time = %q", analysis.WritingPatterns.PreferredWritingTime)
	}
}

func TestWritingFrequencyClasses(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		daysApart int
		want      string
	}{
		{"daily", 10, 1, "daily"},
		{"regular", 10, 2, "regular"},
		{"weekly", 10, 7, "weekly"},
		{"occasional", 4, 30, "occasional"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := makeEntries(tt.count, tt.daysApart, nil, nil)
			if got := writingFrequency(entries); got != tt.want {
				t.Errorf("frequency = %q, want %q", got, tt.want)
			}
		})
	}

	if got := writingFrequency(makeEntries(1, 1, nil, nil)); got != "insufficient_data" {
		t.Errorf("single entry frequency = %q", got)
	}
}

func TestStoryArcsRequireFiveOccurrences(t *testing.T) {
	// 12 entries alternating work/health: 6 of each, both arcs qualify
	entries := makeEntries(12, 1, []string{"work", "health"}, nil)
	arcs := identifyStoryArcs(entries)

	if len(arcs) != 2 {
		t.Fatalf("arcs = %d, want 2", len(arcs))
	}
	if arcs[0].Title != "Health Journey" && arcs[0].Title != "Work Journey" {
		t.Errorf("arc title = %q", arcs[0].Title)
	}

	// 4 occurrences is below the arc threshold
	few := makeEntries(4, 1, []string{"work"}, nil)
	if arcs := identifyStoryArcs(few); len(arcs) != 0 {
		t.Errorf("arcs = %d, want 0 below threshold", len(arcs))
	}
}

func TestRecommendOrdersByScore(t *testing.T) {
	entries := makeEntries(20, 1, []string{"work", "health", "travel", "food", "friends"}, []string{"happy"})
	recs := Recommend(Analyze(entries))

	if len(recs) != 3 {
		t.Fatalf("recommendations = %d, want 3", len(recs))
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].Score > recs[i-1].Score {
			t.Error("recommendations must be sorted best first")
		}
	}
	for _, r := range recs {
		if r.Score < 0 || r.Score > 100 {
			t.Errorf("%s score = %d out of range", r.Method, r.Score)
		}
	}
}

func TestThematicFallbackStructure(t *testing.T) {
	entries := makeEntries(8, 1, []string{"work", "health"}, nil)
	s := FallbackStructure(entries, "thematic", "growth")

	if !s.Fallback {
		t.Error("fallback flag not set")
	}
	if len(s.Chapters) != 2 {
		t.Fatalf("chapters = %d, want 2", len(s.Chapters))
	}
	for _, ch := range s.Chapters {
		if !strings.HasSuffix(ch.Title, "Chronicles") {
			t.Errorf("chapter title = %q", ch.Title)
		}
		if ch.EntryCount < 2 {
			t.Errorf("chapter %q has %d entries, want >= 2", ch.Title, ch.EntryCount)
		}
	}
}

func TestChronologicalFallbackStructure(t *testing.T) {
	entries := []journal.Entry{
		{ID: 1, CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 3, CreatedAt: time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)},
	}
	s := FallbackStructure(entries, "chronological", "memoir")

	if len(s.Chapters) != 2 {
		t.Fatalf("chapters = %d, want 2", len(s.Chapters))
	}
	if s.Chapters[0].Title != "Chapter: Q1 2024" {
		t.Errorf("first chapter = %q", s.Chapters[0].Title)
	}
	if s.Chapters[1].Title != "Chapter: Q4 2024" {
		t.Errorf("second chapter = %q", s.Chapters[1].Title)
	}
}

func TestDistributeEntriesEvenly(t *testing.T) {
	entries := makeEntries(10, 1, nil, nil)
	s := Structure{Chapters: []Chapter{{Title: "One"}, {Title: "Two"}, {Title: "Three"}}}

	DistributeEntries(&s, entries)

	if s.Chapters[0].EntryCount != 3 || s.Chapters[1].EntryCount != 3 {
		t.Errorf("counts = %d/%d, want 3/3", s.Chapters[0].EntryCount, s.Chapters[1].EntryCount)
	}
	// Last chapter takes the remainder
	if s.Chapters[2].EntryCount != 4 {
		t.Errorf("last chapter = %d, want 4", s.Chapters[2].EntryCount)
	}

	total := 0
	for _, ch := range s.Chapters {
		total += len(ch.EntryIDs)
	}
	if total != 10 {
		t.Errorf("distributed %d entries, want 10", total)
	}
}

func TestSuggestedPriceOnLadder(t *testing.T) {
	ladder := map[float64]bool{2.99: true, 4.99: true, 7.99: true, 12.99: true, 19.99: true, 24.99: true}

	cases := []struct {
		quality, words, chapters, enhancements int
	}{
		{0, 0, 0, 0},
		{50, 3000, 3, 0},
		{80, 12000, 6, 2},
		{100, 50000, 10, 4},
		{30, 500, 1, 0},
	}
	for _, c := range cases {
		price := SuggestedPrice(c.quality, c.words, c.chapters, c.enhancements)
		if !ladder[price] {
			t.Errorf("SuggestedPrice(%+v) = %v, not on ladder", c, price)
		}
	}

	// Baseline inputs land on 7.99: 4.99 * 1.0 * 1.0 * 1.0 rounds up
	if got := SuggestedPrice(50, 3000, 3, 0); got != 7.99 {
		t.Errorf("baseline price = %v, want 7.99", got)
	}
}

func TestParseStructure(t *testing.T) {
	text := "```json\n" + `{
		"title": "Seasons of Change",
		"description": "A year of growth",
		"chapters": [
			{"title": "Winter", "description": "Cold starts", "theme": "reflection", "estimated_entries": 5}
		],
		"target_audience": "Journalers",
		"unique_selling_points": ["authentic voice"]
	}` + "\n```"

	s, err := ParseStructure(text, "ai", "growth")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.Title != "Seasons of Change" || len(s.Chapters) != 1 {
		t.Errorf("structure = %+v", s)
	}
	if s.Chapters[0].Theme != "reflection" {
		t.Errorf("chapter theme = %q", s.Chapters[0].Theme)
	}
}

func TestParseStructureIncomplete(t *testing.T) {
	if _, err := ParseStructure(`{"title": "x"}`, "ai", "growth"); err == nil {
		t.Error("missing chapters should fail")
	}
	if _, err := ParseStructure("not json", "ai", "growth"); err == nil {
		t.Error("non-JSON should fail")
	}
}
