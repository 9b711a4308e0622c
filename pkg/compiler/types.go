package compiler

import (
	"time"

	"github.com/inkwell-ai/inkwell/pkg/journal"
)

// DateRange spans the oldest and newest entry in a set
type DateRange struct {
	Start        time.Time `json:"start_date"`
	End          time.Time `json:"end_date"`
	DurationDays int       `json:"duration_days"`
}

// Theme is a tag or mood acting as a proxy theme, with how often it occurs
type Theme struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

// MoodCount is one slice of the mood distribution
type MoodCount struct {
	Mood       string  `json:"mood"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Emoji      string  `json:"emoji"`
}

// MoodDistribution summarizes moods across a set of entries
type MoodDistribution struct {
	Distribution []MoodCount `json:"distribution"`
	DominantMood string      `json:"dominant_mood,omitempty"`
}

// WritingPatterns describes how the writer writes
type WritingPatterns struct {
	AverageLength        int    `json:"average_length"`
	TotalWords           int    `json:"total_words"`
	LengthConsistency    string `json:"length_consistency"`
	PreferredWritingTime string `json:"preferred_writing_time"`
	WritingFrequency     string `json:"writing_frequency"`
}

// StoryArc is a thematic grouping strong enough to carry a chapter
type StoryArc struct {
	Type       string `json:"type"`
	Title      string `json:"title"`
	EntryCount int    `json:"entry_count"`
	Theme      string `json:"theme"`
}

// Marketability estimates how a compiled journal would fare as a listing
type Marketability struct {
	Score      int      `json:"score"`
	Factors    []string `json:"factors"`
	Potential  string   `json:"potential"`
	PriceRange [2]float64 `json:"suggested_price_range"`
}

// Analysis is the full pre-compilation analysis of an entry set
type Analysis struct {
	TotalEntries     int                       `json:"total_entries"`
	DateRange        *DateRange                `json:"date_range,omitempty"`
	Themes           []Theme                   `json:"themes"`
	MoodDistribution MoodDistribution          `json:"mood_distribution"`
	WritingPatterns  WritingPatterns           `json:"writing_patterns"`
	StoryArcs        []StoryArc                `json:"story_arcs"`
	Quality          journal.CollectionQuality `json:"quality_score"`
	Marketability    Marketability             `json:"marketability"`
}

// Recommendation scores one compilation method for an entry set
type Recommendation struct {
	Method      string   `json:"method"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Score       int      `json:"score"`
	Pros        []string `json:"pros"`
	BestFor     string   `json:"best_for"`
}

// Chapter is one chapter of a compiled journal structure
type Chapter struct {
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Theme            string  `json:"theme,omitempty"`
	EstimatedEntries int     `json:"estimated_entries,omitempty"`
	EntryCount       int     `json:"entry_count"`
	EntryIDs         []int64 `json:"entry_ids"`
	Introduction     string  `json:"ai_introduction,omitempty"`
}

// Structure is a complete compiled journal layout
type Structure struct {
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Chapters            []Chapter `json:"chapters"`
	CompilationMethod   string    `json:"compilation_method"`
	JournalType         string    `json:"journal_type"`
	TargetAudience      string    `json:"target_audience,omitempty"`
	UniqueSellingPoints []string  `json:"unique_selling_points,omitempty"`
	Enhancements        []string  `json:"ai_enhancements,omitempty"`
	EstimatedLength     int       `json:"estimated_length"`
	SuggestedPrice      float64   `json:"suggested_price"`
	Fallback            bool      `json:"fallback,omitempty"`
	ReflectionQuestions string    `json:"reflection_questions,omitempty"`
	ThematicConnections string    `json:"thematic_connections,omitempty"`
	ReadersGuide        string    `json:"readers_guide,omitempty"`
	MarketingCopy       string    `json:"marketing_copy,omitempty"`
}
