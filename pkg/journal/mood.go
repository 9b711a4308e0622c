package journal

import "strings"

var moodEmoji = map[string]string{
	"happy":     "😊",
	"sad":       "😢",
	"angry":     "😡",
	"excited":   "😃",
	"content":   "😌",
	"anxious":   "😰",
	"stressed":  "😖",
	"relaxed":   "😎",
	"proud":     "🥳",
	"motivated": "💪",
	"grateful":  "🙏",
	"hopeful":   "✨",
}

// MoodEmoji returns the emoji for a mood, or a neutral face for
// unrecognized moods.
func MoodEmoji(mood string) string {
	if emoji, ok := moodEmoji[strings.ToLower(mood)]; ok {
		return emoji
	}
	return "😐"
}

var moodValues = map[string]int{
	"very sad":     1,
	"sad":          2,
	"disappointed": 3,
	"anxious":      4,
	"neutral":      5,
	"calm":         6,
	"content":      7,
	"happy":        8,
	"excited":      9,
	"ecstatic":     10,
}

// MoodNumeric converts a mood to a 1-10 scale for charting. Unknown
// moods map to neutral.
func MoodNumeric(mood string) int {
	if v, ok := moodValues[strings.ToLower(mood)]; ok {
		return v
	}
	return 5
}

var tagColors = []string{
	"indigo-600", "blue-500", "sky-500", "cyan-500", "teal-500",
	"emerald-500", "green-500", "lime-500", "yellow-500", "amber-500",
	"orange-500", "red-500", "rose-500", "fuchsia-500", "purple-500",
	"violet-500",
}

// TagColor picks a stable display color for a tag name.
func TagColor(name string) string {
	sum := 0
	for _, c := range name {
		sum += int(c)
	}
	return tagColors[sum%len(tagColors)]
}
