package journal

import (
	"sort"
	"strings"
)

// topicKeywords maps each topic tag to the keywords that trigger it.
var topicKeywords = map[string][]string{
	"work":       {"work", "job", "career", "office", "meeting", "project", "boss", "colleague"},
	"family":     {"family", "parents", "mom", "dad", "children", "kids", "brother", "sister"},
	"health":     {"health", "workout", "exercise", "doctor", "fitness", "gym", "running"},
	"food":       {"food", "dinner", "lunch", "breakfast", "meal", "cooking", "restaurant"},
	"travel":     {"travel", "trip", "vacation", "journey", "flight", "hotel"},
	"learning":   {"learning", "study", "read", "book", "class", "course"},
	"friends":    {"friend", "social", "party", "hangout", "gathering"},
	"goals":      {"goal", "plan", "future", "aspiration", "dream", "objective"},
	"reflection": {"reflection", "thinking", "contemplation", "introspection", "mindfulness"},
}

// AutoTags derives tags from an entry body by keyword scan. The mood,
// when present, always becomes a tag. Output is sorted for stable
// storage and tests.
func AutoTags(content, mood string) []string {
	seen := make(map[string]bool)
	contentLower := strings.ToLower(content)

	for topic, keywords := range topicKeywords {
		for _, keyword := range keywords {
			if strings.Contains(contentLower, keyword) {
				seen[topic] = true
				break
			}
		}
	}

	if mood != "" {
		seen[strings.ToLower(mood)] = true
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// NormalizeTag canonicalizes a user-supplied tag name.
func NormalizeTag(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
