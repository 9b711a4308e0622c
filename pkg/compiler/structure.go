package compiler

import (
	"fmt"
	"sort"

	"github.com/inkwell-ai/inkwell/pkg/journal"
)

// FallbackStructure builds a deterministic structure when the model
// cannot produce one. Each method has its own grouping rule.
func FallbackStructure(entries []journal.Entry, method, journalType string) Structure {
	var chapters []Chapter

	switch method {
	case "thematic":
		chapters = thematicChapters(entries)
	case "chronological":
		chapters = chronologicalChapters(entries)
	default:
		chapters = evenChapters(entries)
	}

	return Structure{
		Title:             fmt.Sprintf("My %s Journal", titleCaser.String(journalType)),
		Description:       "A personal journey of growth and reflection",
		Chapters:          chapters,
		CompilationMethod: method,
		JournalType:       journalType,
		Fallback:          true,
	}
}

// thematicChapters groups entries by tag; groups of at least two become
// chapters. Untagged entries gather under a reflections chapter.
func thematicChapters(entries []journal.Entry) []Chapter {
	groups := make(map[string][]int64)
	for _, e := range entries {
		if len(e.Tags) == 0 {
			groups["reflections"] = append(groups["reflections"], e.ID)
			continue
		}
		for _, tag := range e.Tags {
			groups[tag] = append(groups[tag], e.ID)
		}
	}

	var chapters []Chapter
	for theme, ids := range groups {
		if len(ids) < 2 {
			continue
		}
		chapters = append(chapters, Chapter{
			Title:       fmt.Sprintf("%s Chronicles", titleCaser.String(theme)),
			Description: fmt.Sprintf("Exploring the theme of %s", theme),
			Theme:       theme,
			EntryCount:  len(ids),
			EntryIDs:    ids,
		})
	}
	sort.Slice(chapters, func(i, j int) bool {
		if chapters[i].EntryCount != chapters[j].EntryCount {
			return chapters[i].EntryCount > chapters[j].EntryCount
		}
		return chapters[i].Theme < chapters[j].Theme
	})
	return chapters
}

// chronologicalChapters groups entries into quarter buckets.
func chronologicalChapters(entries []journal.Entry) []Chapter {
	type bucket struct {
		year    int
		quarter int
	}
	groups := make(map[bucket][]int64)
	for _, e := range entries {
		b := bucket{
			year:    e.CreatedAt.Year(),
			quarter: (int(e.CreatedAt.Month())-1)/3 + 1,
		}
		groups[b] = append(groups[b], e.ID)
	}

	buckets := make([]bucket, 0, len(groups))
	for b := range groups {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].year != buckets[j].year {
			return buckets[i].year < buckets[j].year
		}
		return buckets[i].quarter < buckets[j].quarter
	})

	var chapters []Chapter
	for _, b := range buckets {
		period := fmt.Sprintf("Q%d %d", b.quarter, b.year)
		chapters = append(chapters, Chapter{
			Title:       fmt.Sprintf("Chapter: %s", period),
			Description: fmt.Sprintf("Journey through %s", period),
			EntryCount:  len(groups[b]),
			EntryIDs:    groups[b],
		})
	}
	return chapters
}

// evenChapters splits entries into roughly four chronological chunks.
func evenChapters(entries []journal.Entry) []Chapter {
	ordered := make([]journal.Entry, len(entries))
	copy(ordered, entries)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	chunkSize := len(ordered) / 4
	if chunkSize < 3 {
		chunkSize = 3
	}

	var chapters []Chapter
	for i := 0; i < len(ordered); i += chunkSize {
		end := i + chunkSize
		if end > len(ordered) {
			end = len(ordered)
		}
		ids := make([]int64, 0, end-i)
		for _, e := range ordered[i:end] {
			ids = append(ids, e.ID)
		}
		chapters = append(chapters, Chapter{
			Title:       fmt.Sprintf("Chapter %d: The Journey Continues", len(chapters)+1),
			Description: "A collection of personal reflections and experiences",
			EntryCount:  len(ids),
			EntryIDs:    ids,
		})
	}
	return chapters
}

// DistributeEntries assigns entries to chapters as evenly as possible
// in order; the last chapter takes the remainder. Used when the model
// proposed chapters without concrete entry assignments.
func DistributeEntries(structure *Structure, entries []journal.Entry) {
	if len(structure.Chapters) == 0 || len(entries) == 0 {
		return
	}

	ordered := make([]journal.Entry, len(entries))
	copy(ordered, entries)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	perChapter := len(ordered) / len(structure.Chapters)
	if perChapter == 0 {
		perChapter = 1
	}

	idx := 0
	for c := range structure.Chapters {
		end := idx + perChapter
		if c == len(structure.Chapters)-1 || end > len(ordered) {
			end = len(ordered)
		}
		ids := make([]int64, 0, end-idx)
		for _, e := range ordered[idx:end] {
			ids = append(ids, e.ID)
		}
		structure.Chapters[c].EntryIDs = ids
		structure.Chapters[c].EntryCount = len(ids)
		idx = end
		if idx >= len(ordered) {
			// Remaining chapters get no entries
			for rest := c + 1; rest < len(structure.Chapters); rest++ {
				structure.Chapters[rest].EntryIDs = nil
				structure.Chapters[rest].EntryCount = 0
			}
			break
		}
	}
}

// Finalize fills derived fields: total length and suggested price.
func Finalize(structure *Structure, entries []journal.Entry, quality journal.CollectionQuality) {
	totalWords := 0
	for _, e := range entries {
		words := e.WordCount
		if words == 0 {
			words = journal.CountWords(e.Content)
		}
		totalWords += words
	}
	structure.EstimatedLength = totalWords
	structure.SuggestedPrice = SuggestedPrice(quality.Score, totalWords, len(structure.Chapters), len(structure.Enhancements))
}

// priceLadder holds the allowed marketplace price points.
var priceLadder = []float64{2.99, 4.99, 7.99, 12.99, 19.99, 24.99}

// SuggestedPrice prices a compiled journal from quality, length,
// chapter count, and enhancements, snapped to the price ladder.
func SuggestedPrice(qualityScore, estimatedWords, chapterCount, enhancementCount int) float64 {
	const basePrice = 4.99

	qualityMultiplier := 1 + float64(qualityScore-50)/100

	lengthMultiplier := 1.0
	if estimatedWords > 10000 {
		lengthMultiplier = 1.5
	} else if estimatedWords > 5000 {
		lengthMultiplier = 1.2
	}

	chapterMultiplier := 1 + float64(chapterCount-3)*0.1
	enhancementMultiplier := 1 + float64(enhancementCount)*0.15

	price := basePrice * qualityMultiplier * lengthMultiplier * chapterMultiplier * enhancementMultiplier

	for _, point := range priceLadder {
		if price < point {
			return point
		}
	}
	return priceLadder[len(priceLadder)-1]
}
