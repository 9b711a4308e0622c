package compiler

import "sort"

// Recommend scores each compilation method against the analysis and
// returns them best first.
func Recommend(analysis Analysis) []Recommendation {
	recommendations := []Recommendation{
		{
			Method:      "ai",
			Title:       "AI Smart Compilation",
			Description: "Let AI analyze your entries and create the optimal journal structure",
			Score:       aiSuitability(analysis),
			Pros: []string{
				"Automatically identifies the best themes and story arcs",
				"Creates compelling chapter structures",
				"Optimizes for reader engagement",
			},
			BestFor: "Diverse entries with multiple themes and rich content",
		},
		{
			Method:      "thematic",
			Title:       "Thematic Collection",
			Description: "Organize entries around specific themes and topics",
			Score:       thematicSuitability(analysis),
			Pros: []string{
				"Clear, focused narrative around specific topics",
				"Easy for readers to find relevant content",
				"Great for specialized interests",
			},
			BestFor: "Entries with strong, consistent themes",
		},
		{
			Method:      "chronological",
			Title:       "Timeline Journey",
			Description: "Create a chronological narrative of your experiences",
			Score:       chronologicalSuitability(analysis),
			Pros: []string{
				"Natural story progression over time",
				"Shows personal growth and change",
				"Easy to follow narrative flow",
			},
			BestFor: "Consistent journaling over a specific time period",
		},
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})
	return recommendations
}

func aiSuitability(analysis Analysis) int {
	score := 50.0

	qualityBonus := float64(analysis.Quality.Score) * 0.25
	if qualityBonus > 25 {
		qualityBonus = 25
	}
	score += qualityBonus

	if len(analysis.Themes) >= 5 {
		score += 15
	} else if len(analysis.Themes) >= 3 {
		score += 10
	}

	arcBonus := len(analysis.StoryArcs) * 2
	if arcBonus > 10 {
		arcBonus = 10
	}
	score += float64(arcBonus)

	return capScore(int(score))
}

func thematicSuitability(analysis Analysis) int {
	score := 40.0

	if len(analysis.Themes) == 0 {
		return int(score)
	}

	topPercentage := analysis.Themes[0].Percentage
	switch {
	case topPercentage >= 30:
		score += 30
	case topPercentage >= 20:
		score += 20
	case topPercentage >= 15:
		score += 15
	}

	strongThemes := 0
	for _, theme := range analysis.Themes {
		if theme.Percentage >= 15 {
			strongThemes++
		}
	}
	strongBonus := strongThemes * 5
	if strongBonus > 20 {
		strongBonus = 20
	}
	score += float64(strongBonus)

	qualityBonus := float64(analysis.Quality.Score) * 0.1
	if qualityBonus > 10 {
		qualityBonus = 10
	}
	score += qualityBonus

	return capScore(int(score))
}

func chronologicalSuitability(analysis Analysis) int {
	score := 45

	if analysis.DateRange != nil {
		duration := analysis.DateRange.DurationDays
		switch {
		case duration >= 30 && duration <= 365:
			score += 25
		case duration < 30:
			score += 10
		default:
			score += 15
		}
	}

	frequencyScores := map[string]int{
		"daily":      20,
		"regular":    15,
		"weekly":     10,
		"occasional": 5,
	}
	if bonus, ok := frequencyScores[analysis.WritingPatterns.WritingFrequency]; ok {
		score += bonus
	} else {
		score += 5
	}

	arcBonus := len(analysis.StoryArcs) * 3
	if arcBonus > 10 {
		arcBonus = 10
	}
	score += arcBonus

	return capScore(score)
}

func capScore(score int) int {
	if score > 100 {
		return 100
	}
	return score
}
