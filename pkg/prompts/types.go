package prompts

import "time"

// Prompt is a fully built prompt ready to send to the model.
type Prompt struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// EntrySample is a compact view of a stored entry used when many
// entries feed a single prompt.
type EntrySample struct {
	Date    time.Time
	Title   string
	Content string
	Mood    string
	Tags    []string
}

// Preferences capture a writer's personalization settings. Zero values
// are not meaningful; use DefaultPreferences for anonymous writers.
type Preferences struct {
	WritingStyle       string   `json:"writing_style"`
	Tone               string   `json:"tone"`
	FocusAreas         []string `json:"focus_areas,omitempty"`
	LanguageComplexity string   `json:"language_complexity"`
	IncludeQuestions   bool     `json:"include_questions"`
	MetaphorFrequency  string   `json:"metaphor_frequency"`
}

// DefaultPreferences returns the settings applied to anonymous writers
// and to accounts that never customized their profile.
func DefaultPreferences() Preferences {
	return Preferences{
		WritingStyle:       "reflective",
		Tone:               "balanced",
		FocusAreas:         nil,
		LanguageComplexity: "moderate",
		IncludeQuestions:   true,
		MetaphorFrequency:  "occasional",
	}
}
