package prompts

import (
	"fmt"
	"strings"
)

// JournalStructure builds the prompt that asks the model to design a
// compiled journal. Responses are requested as JSON so the extractor
// can parse them; on failure the compiler falls back to a deterministic
// structure.
func JournalStructure(method, journalType string, entryCount int, themes []string, frequency string) Prompt {
	themeList := "none identified yet"
	if len(themes) > 0 {
		themeList = strings.Join(themes, ", ")
	}

	user := fmt.Sprintf(`Design a compelling published journal from %d personal diary entries.

Compilation method: %s
Journal type: %s
Dominant themes: %s
Writing frequency: %s

Propose a structure that groups the entries into chapters a reader would
want to follow. Keep chapter counts between 3 and 8.

Format your response as JSON with the following structure:
{
    "title": "Journal title",
    "description": "One-paragraph description for the marketplace listing",
    "chapters": [
        {"title": "Chapter title", "description": "What this chapter covers", "theme": "dominant theme", "estimated_entries": 4}
    ],
    "target_audience": "Who would enjoy reading this",
    "unique_selling_points": ["point one", "point two"]
}`, entryCount, method, journalType, themeList, frequency)

	return Prompt{System: writingSystem, User: user, Temperature: 0.7, MaxTokens: 1000}
}
