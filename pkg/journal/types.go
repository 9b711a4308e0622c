package journal

import (
	"strings"
	"time"
)

// Entry is a single journal entry
type Entry struct {
	ID                 int64      `json:"id"`
	OwnerID            int64      `json:"owner_id,omitempty"`
	Title              string     `json:"title"`
	Content            string     `json:"content"`
	Mood               string     `json:"mood,omitempty"`
	Tags               []string   `json:"tags,omitempty"`
	Summary            string     `json:"summary,omitempty"`
	SummaryGeneratedAt *time.Time `json:"summary_generated_at,omitempty"`
	WordCount          int        `json:"word_count"`
	MediaCount         int        `json:"media_count,omitempty"`
	Published          bool       `json:"published"`
	Encrypted          bool       `json:"encrypted,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// CountWords counts whitespace-separated words in a body.
func CountWords(content string) int {
	return len(strings.Fields(content))
}

// Insight is a generated observation about a writer's entries
type Insight struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Kind      string    `json:"kind"` // pattern, suggestion, mood_analysis
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Biography is a generated life narrative over a time period
type Biography struct {
	ID           int64          `json:"id"`
	OwnerID      int64          `json:"owner_id"`
	Title        string         `json:"title"`
	Content      string         `json:"content"`
	PeriodStart  *time.Time     `json:"period_start,omitempty"`
	PeriodEnd    *time.Time     `json:"period_end,omitempty"`
	ChaptersData map[string]any `json:"chapters_data,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// SummaryVersion preserves a prior summary before regeneration
type SummaryVersion struct {
	ID        int64     `json:"id"`
	EntryID   int64     `json:"entry_id"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}
