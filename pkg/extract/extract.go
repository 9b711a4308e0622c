package extract

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"
	"unicode"

	inkerr "github.com/inkwell-ai/inkwell/pkg/errors"
)

var fencedBlock = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")

// JSONBlock pulls the JSON payload out of model output. Models wrap
// JSON in fenced code blocks or prose; try the fence first, then the
// outermost braces, then give up and return the text as-is.
func JSONBlock(text string) string {
	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}

	return text
}

// Object extracts and parses a JSON object from model output.
func Object(text string) (map[string]any, error) {
	block := JSONBlock(text)

	var obj map[string]any
	if err := json.Unmarshal([]byte(block), &obj); err != nil {
		return nil, inkerr.Wrap(err, inkerr.ErrCodeExtractFailed, "response contains no parseable JSON object").
			WithContext("text_length", len(text))
	}
	return obj, nil
}

// TitledItem is a title/description pair in an insight payload
type TitledItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// InsightPayload is the structured result of insight generation
type InsightPayload struct {
	Patterns     []TitledItem `json:"patterns"`
	Suggestions  []TitledItem `json:"suggestions"`
	MoodAnalysis TitledItem   `json:"mood_analysis"`
}

// Insights extracts the insight payload from model output.
func Insights(text string) (*InsightPayload, error) {
	block := JSONBlock(text)

	var payload InsightPayload
	if err := json.Unmarshal([]byte(block), &payload); err != nil {
		return nil, inkerr.Wrap(err, inkerr.ErrCodeExtractFailed, "insight response is not valid JSON").
			WithContext("text_length", len(text))
	}
	return &payload, nil
}

// Section is one classified chapter of a biography
type Section struct {
	Title       string `json:"title,omitempty"`
	Content     string `json:"content"`
	LastUpdated string `json:"last_updated"`
}

// Sections extracts chapter content keyed by canonical chapter names.
// Models vary the key spelling, so each canonical name is matched
// against several variants. Values that are bare strings or oddly
// shaped objects are coerced into proper sections. Every returned
// section is stamped with the current time.
func Sections(text string, chapterTitles []string, now time.Time) (map[string]Section, error) {
	obj, err := Object(text)
	if err != nil {
		return nil, err
	}

	stamp := now.Format(time.RFC3339)
	result := make(map[string]Section)

	for _, title := range chapterTitles {
		key := CanonicalKey(title)

		raw, ok := lookupVariant(obj, title, key)
		if !ok {
			continue
		}

		section := coerceSection(raw)
		section.LastUpdated = stamp
		result[key] = section
	}

	return result, nil
}

// CanonicalKey converts a chapter title into its storage key. CamelCase
// titles split at case boundaries so PersonalGrowth and "Personal Growth"
// map to the same key.
func CanonicalKey(title string) string {
	var b strings.Builder
	var prev rune
	for i, r := range title {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(prev) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
		prev = r
	}
	key := b.String()
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	return key
}

func lookupVariant(obj map[string]any, title, key string) (any, bool) {
	for _, candidate := range []string{key, strings.ToLower(title), title} {
		if v, ok := obj[candidate]; ok {
			return v, true
		}
	}
	// Last resort: normalize every key in the object and compare
	for k, v := range obj {
		if CanonicalKey(k) == key {
			return v, true
		}
	}
	return nil, false
}

func coerceSection(raw any) Section {
	switch v := raw.(type) {
	case map[string]any:
		section := Section{}
		if content, ok := v["content"].(string); ok {
			section.Content = content
		} else {
			data, _ := json.Marshal(v)
			section.Content = string(data)
		}
		if title, ok := v["title"].(string); ok {
			section.Title = title
		}
		return section
	case string:
		return Section{Content: v}
	default:
		data, _ := json.Marshal(v)
		return Section{Content: string(data)}
	}
}
