package journal

import (
	"strings"
	"testing"
	"time"
)

func entryWithWords(n int) Entry {
	return Entry{Content: strings.TrimSpace(strings.Repeat("word ", n))}
}

func TestEntryQuality(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  int
	}{
		{"empty", Entry{}, 0},
		{"short_body_only", entryWithWords(60), 10},
		{"medium_body", entryWithWords(150), 30},
		{"long_body", entryWithWords(300), 40},
		{
			"full_marks",
			Entry{
				Content:    strings.TrimSpace(strings.Repeat("word ", 300)),
				Mood:       "content",
				Tags:       []string{"work"},
				Title:      "A day",
				MediaCount: 2,
			},
			95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EntryQuality(tt.entry); got != tt.want {
				t.Errorf("EntryQuality() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestQualityMonotonic(t *testing.T) {
	base := Entry{Content: strings.Repeat("word ", 120), Title: "T"}
	richer := base
	richer.Mood = "happy"
	richer.Tags = []string{"health"}
	richer.Content += strings.Repeat("more ", 200)

	if EntryQuality(richer) < EntryQuality(base) {
		t.Error("adding content, mood, and tags must not lower quality")
	}
}

func TestIsPublishable(t *testing.T) {
	long := strings.Repeat("a", 120)

	tests := []struct {
		name  string
		entry Entry
		want  bool
	}{
		{"ok", Entry{Title: "T", Content: long}, true},
		{"short_body", Entry{Title: "T", Content: "too short"}, false},
		{"no_title", Entry{Content: long}, false},
		{"already_published", Entry{Title: "T", Content: long, Published: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPublishable(tt.entry); got != tt.want {
				t.Errorf("IsPublishable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreCollection(t *testing.T) {
	// 12 entries averaging 220 words, 8 distinct tags, 4 distinct moods,
	// spread over 60 days.
	start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	tags := []string{"work", "family", "health", "food", "travel", "learning", "friends", "goals"}
	moods := []string{"happy", "content", "anxious", "calm"}

	var entries []Entry
	for i := 0; i < 12; i++ {
		entries = append(entries, Entry{
			Content:   strings.TrimSpace(strings.Repeat("word ", 220)),
			Tags:      []string{tags[i%len(tags)], tags[(i+1)%len(tags)]},
			Mood:      moods[i%len(moods)],
			CreatedAt: start.AddDate(0, 0, i*5),
		})
	}

	q := ScoreCollection(entries)

	// length 30, consistency 20 (12 entries / 55 days), diversity
	// min(25, (8+4)*2)=24, engagement 20 (all entries carry metadata)
	if q.Score < 70 {
		t.Errorf("score = %d, want >= 70", q.Score)
	}
	if q.Rating != "good" && q.Rating != "excellent" {
		t.Errorf("rating = %q, want at least good", q.Rating)
	}
	if len(q.Factors) != 4 {
		t.Errorf("factors = %d, want 4", len(q.Factors))
	}
}

func TestScoreCollectionEmpty(t *testing.T) {
	q := ScoreCollection(nil)
	if q.Score != 0 || q.Rating != "needs_improvement" {
		t.Errorf("empty collection = %+v", q)
	}
}

func TestRatingLabel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{90, "excellent"}, {85, "excellent"},
		{75, "good"}, {70, "good"},
		{55, "fair"}, {50, "fair"},
		{40, "needs_improvement"}, {0, "needs_improvement"},
	}
	for _, tt := range tests {
		if got := RatingLabel(tt.score); got != tt.want {
			t.Errorf("RatingLabel(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
