package journal

import (
	"fmt"
)

// EntryQuality scores a single entry from 0 to 100 based on length,
// mood, tags, title, and attached media.
func EntryQuality(e Entry) int {
	score := 0

	words := e.WordCount
	if words == 0 {
		words = CountWords(e.Content)
	}
	switch {
	case words >= 300:
		score += 40
	case words >= 150:
		score += 30
	case words >= 100:
		score += 20
	case words >= 50:
		score += 10
	}

	if e.Mood != "" {
		score += 20
	}
	if len(e.Tags) > 0 {
		score += 20
	}
	if e.Title != "" {
		score += 10
	}
	if e.MediaCount > 0 {
		score += 5
	}

	return score
}

// IsPublishable reports whether an entry can go to the marketplace.
func IsPublishable(e Entry) bool {
	return len(e.Content) >= 100 && e.Title != "" && !e.Published
}

// CollectionQuality describes how a set of entries scores as a
// compilation candidate.
type CollectionQuality struct {
	Score   int      `json:"score"`
	Factors []string `json:"factors"`
	Rating  string   `json:"rating"`
}

// ScoreCollection scores a set of entries on length, consistency,
// diversity, and metadata completeness.
func ScoreCollection(entries []Entry) CollectionQuality {
	if len(entries) == 0 {
		return CollectionQuality{Rating: "needs_improvement"}
	}

	score := 0
	var factors []string

	// Length factor (30%)
	totalWords := 0
	for _, e := range entries {
		words := e.WordCount
		if words == 0 {
			words = CountWords(e.Content)
		}
		totalWords += words
	}
	avgLength := float64(totalWords) / float64(len(entries))

	var lengthScore int
	switch {
	case avgLength >= 200:
		lengthScore = 30
	case avgLength >= 100:
		lengthScore = 25
	case avgLength >= 50:
		lengthScore = 20
	default:
		lengthScore = 10
	}
	score += lengthScore
	factors = append(factors, fmt.Sprintf("Average length: %d words", int(avgLength)))

	// Consistency factor (25%)
	consistencyScore := 10
	if days := spanDays(entries); days > 0 {
		consistency := float64(len(entries)) / float64(days)
		switch {
		case consistency >= 0.5:
			consistencyScore = 25
		case consistency >= 0.2:
			consistencyScore = 20
		case consistency >= 0.1:
			consistencyScore = 15
		}
	}
	score += consistencyScore
	factors = append(factors, fmt.Sprintf("Writing consistency: %d/25", consistencyScore))

	// Diversity factor (25%)
	uniqueTags := make(map[string]bool)
	uniqueMoods := make(map[string]bool)
	for _, e := range entries {
		for _, tag := range e.Tags {
			uniqueTags[tag] = true
		}
		if e.Mood != "" {
			uniqueMoods[e.Mood] = true
		}
	}
	diversityScore := (len(uniqueTags) + len(uniqueMoods)) * 2
	if diversityScore > 25 {
		diversityScore = 25
	}
	score += diversityScore
	factors = append(factors, fmt.Sprintf("Content diversity: %d themes, %d moods", len(uniqueTags), len(uniqueMoods)))

	// Engagement factor (20%)
	withTags, withMood := 0, 0
	for _, e := range entries {
		if len(e.Tags) > 0 {
			withTags++
		}
		if e.Mood != "" {
			withMood++
		}
	}
	engagementRatio := float64(withTags+withMood) / float64(len(entries)*2)
	engagementScore := int(engagementRatio * 20)
	score += engagementScore
	factors = append(factors, fmt.Sprintf("Metadata completeness: %d%%", int(engagementRatio*100)))

	if score > 100 {
		score = 100
	}

	return CollectionQuality{
		Score:   score,
		Factors: factors,
		Rating:  RatingLabel(score),
	}
}

// RatingLabel maps a quality score to its label.
func RatingLabel(score int) string {
	switch {
	case score >= 85:
		return "excellent"
	case score >= 70:
		return "good"
	case score >= 50:
		return "fair"
	default:
		return "needs_improvement"
	}
}

// spanDays is the whole number of days between the oldest and newest
// entry in the set.
func spanDays(entries []Entry) int {
	if len(entries) == 0 {
		return 0
	}
	earliest, latest := entries[0].CreatedAt, entries[0].CreatedAt
	for _, e := range entries[1:] {
		if e.CreatedAt.Before(earliest) {
			earliest = e.CreatedAt
		}
		if e.CreatedAt.After(latest) {
			latest = e.CreatedAt
		}
	}
	return int(latest.Sub(earliest).Hours() / 24)
}
