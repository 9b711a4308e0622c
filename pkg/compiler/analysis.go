package compiler

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/inkwell-ai/inkwell/pkg/journal"
)

var titleCaser = cases.Title(language.English)

const (
	maxThemes    = 12
	minArcSize   = 5
	maxStoryArcs = 6
)

// Analyze runs the full pre-compilation analysis over an entry set.
func Analyze(entries []journal.Entry) Analysis {
	analysis := Analysis{
		TotalEntries:     len(entries),
		DateRange:        dateRange(entries),
		Themes:           extractThemes(entries),
		MoodDistribution: analyzeMoods(entries),
		WritingPatterns:  analyzeWritingPatterns(entries),
		StoryArcs:        identifyStoryArcs(entries),
		Quality:          journal.ScoreCollection(entries),
	}
	analysis.Marketability = assessMarketability(analysis)
	return analysis
}

func dateRange(entries []journal.Entry) *DateRange {
	if len(entries) == 0 {
		return nil
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
	return &DateRange{
		Start:        earliest,
		End:          latest,
		DurationDays: int(latest.Sub(earliest).Hours()/24) + 1,
	}
}

// extractThemes counts tags and moods as proxy themes, top 12.
func extractThemes(entries []journal.Entry) []Theme {
	counts := make(map[string]int)
	for _, e := range entries {
		for _, tag := range e.Tags {
			counts[tag]++
		}
		if e.Mood != "" {
			counts[strings.ToLower(e.Mood)]++
		}
	}

	themes := make([]Theme, 0, len(counts))
	for name, count := range counts {
		themes = append(themes, Theme{
			Name:       name,
			Count:      count,
			Percentage: round1(float64(count) / float64(len(entries)) * 100),
			Color:      journal.TagColor(name),
		})
	}
	sort.Slice(themes, func(i, j int) bool {
		if themes[i].Count != themes[j].Count {
			return themes[i].Count > themes[j].Count
		}
		return themes[i].Name < themes[j].Name
	})

	if len(themes) > maxThemes {
		themes = themes[:maxThemes]
	}
	return themes
}

func analyzeMoods(entries []journal.Entry) MoodDistribution {
	counts := make(map[string]int)
	for _, e := range entries {
		if e.Mood != "" {
			counts[e.Mood]++
		}
	}

	dist := make([]MoodCount, 0, len(counts))
	for mood, count := range counts {
		dist = append(dist, MoodCount{
			Mood:       mood,
			Count:      count,
			Percentage: round1(float64(count) / float64(len(entries)) * 100),
			Emoji:      journal.MoodEmoji(mood),
		})
	}
	sort.Slice(dist, func(i, j int) bool {
		if dist[i].Count != dist[j].Count {
			return dist[i].Count > dist[j].Count
		}
		return dist[i].Mood < dist[j].Mood
	})

	result := MoodDistribution{Distribution: dist}
	if len(dist) > 0 {
		result.DominantMood = dist[0].Mood
	}
	return result
}

func analyzeWritingPatterns(entries []journal.Entry) WritingPatterns {
	if len(entries) == 0 {
		return WritingPatterns{PreferredWritingTime: "evening", WritingFrequency: "insufficient_data"}
	}

	totalWords := 0
	minWords, maxWords := math.MaxInt, 0
	timeBuckets := make(map[string]int)

	for _, e := range entries {
		words := e.WordCount
		if words == 0 {
			words = journal.CountWords(e.Content)
		}
		totalWords += words
		if words < minWords {
			minWords = words
		}
		if words > maxWords {
			maxWords = words
		}

		hour := e.CreatedAt.Hour()
		switch {
		case hour >= 6 && hour < 12:
			timeBuckets["morning"]++
		case hour >= 12 && hour < 18:
			timeBuckets["afternoon"]++
		case hour >= 18 && hour < 22:
			timeBuckets["evening"]++
		default:
			timeBuckets["night"]++
		}
	}

	avgWords := totalWords / len(entries)

	consistency := "medium"
	if maxWords-minWords < avgWords {
		consistency = "high"
	}

	preferred := "evening"
	best := 0
	for _, bucket := range []string{"morning", "afternoon", "evening", "night"} {
		if timeBuckets[bucket] > best {
			best = timeBuckets[bucket]
			preferred = bucket
		}
	}

	return WritingPatterns{
		AverageLength:        avgWords,
		TotalWords:           totalWords,
		LengthConsistency:    consistency,
		PreferredWritingTime: preferred,
		WritingFrequency:     writingFrequency(entries),
	}
}

func writingFrequency(entries []journal.Entry) string {
	if len(entries) < 2 {
		return "insufficient_data"
	}
	dr := dateRange(entries)
	if dr == nil || dr.DurationDays == 0 {
		return "insufficient_data"
	}

	perDay := float64(len(entries)) / float64(dr.DurationDays)
	switch {
	case perDay >= 0.8:
		return "daily"
	case perDay >= 0.4:
		return "regular"
	case perDay >= 0.1:
		return "weekly"
	default:
		return "occasional"
	}
}

// identifyStoryArcs finds themes strong enough to carry a chapter.
func identifyStoryArcs(entries []journal.Entry) []StoryArc {
	themeCounts := make(map[string]int)
	for _, e := range entries {
		for _, tag := range e.Tags {
			themeCounts[tag]++
		}
	}

	var arcs []StoryArc
	for theme, count := range themeCounts {
		if count >= minArcSize {
			arcs = append(arcs, StoryArc{
				Type:       "theme",
				Title:      titleCaser.String(theme) + " Journey",
				EntryCount: count,
				Theme:      theme,
			})
		}
	}
	sort.Slice(arcs, func(i, j int) bool {
		if arcs[i].EntryCount != arcs[j].EntryCount {
			return arcs[i].EntryCount > arcs[j].EntryCount
		}
		return arcs[i].Theme < arcs[j].Theme
	})

	if len(arcs) > maxStoryArcs {
		arcs = arcs[:maxStoryArcs]
	}
	return arcs
}

var popularThemes = []string{"travel", "growth", "relationships", "career", "health", "creativity"}

func assessMarketability(analysis Analysis) Marketability {
	score := 0
	var factors []string

	themeNames := make(map[string]bool)
	for _, theme := range analysis.Themes {
		themeNames[strings.ToLower(theme.Name)] = true
	}
	popularCount := 0
	for _, theme := range popularThemes {
		if themeNames[theme] {
			popularCount++
		}
	}
	themeAppeal := popularCount * 6
	if themeAppeal > 30 {
		themeAppeal = 30
	}
	score += themeAppeal
	factors = append(factors, fmt.Sprintf("Popular themes: %d/6", popularCount))

	qualityAppeal := 5
	if analysis.Quality.Score >= 70 {
		qualityAppeal = 25
	} else if analysis.Quality.Score >= 50 {
		qualityAppeal = 15
	}
	score += qualityAppeal
	factors = append(factors, fmt.Sprintf("Content quality: %s", analysis.Quality.Rating))

	storyAppeal := len(analysis.StoryArcs) * 5
	if storyAppeal > 25 {
		storyAppeal = 25
	}
	score += storyAppeal
	factors = append(factors, fmt.Sprintf("Story arcs: %d", len(analysis.StoryArcs)))

	// Base score for personal authentic content
	score += 20
	factors = append(factors, "Authentic personal narrative")

	potential := "developing"
	priceRange := [2]float64{0.99, 6.99}
	if score >= 75 {
		potential = "high"
		priceRange = [2]float64{4.99, 19.99}
	} else if score >= 50 {
		potential = "medium"
		priceRange = [2]float64{4.99, 12.99}
	}

	return Marketability{
		Score:      score,
		Factors:    factors,
		Potential:  potential,
		PriceRange: priceRange,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
