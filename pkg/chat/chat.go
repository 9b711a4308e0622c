// Package chat runs the guided journaling conversation. Turns are
// template driven so the flow works without a model call; the finalize
// step folds the accumulated user messages into a journal entry.
package chat

import (
	"fmt"
	"strings"
	"time"
)

const (
	minMessagesToFinalize = 2
	maxUserMessages       = 4
	finalizeLength        = 300
	maxEntryTags          = 5
)

// Message is a single conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// EntryDraft is the journal entry produced when a conversation ends.
type EntryDraft struct {
	Title string   `json:"title"`
	Entry string   `json:"entry"`
	Mood  string   `json:"mood"`
	Tags  []string `json:"tags"`
}

// TurnResult is the outcome of processing one user message.
type TurnResult struct {
	Type        string      `json:"type"`
	AIMessage   string      `json:"ai_message"`
	Finalize    bool        `json:"should_switch_to_form"`
	Suggestions []string    `json:"conversation_suggestions,omitempty"`
	Entry       *EntryDraft `json:"journal_entry,omitempty"`
}

// Turn processes a new user message against the conversation so far.
// The decision to finalize depends on how many user messages exist once
// the new one is counted and on their combined length.
func Turn(history []Message, message string, mode Mode, now time.Time) TurnResult {
	userMessages := collectUserMessages(history)
	userMessages = append(userMessages, message)
	total := len(userMessages)

	combined := strings.Join(userMessages, "\n\n")

	finalize := false
	switch {
	case total < minMessagesToFinalize:
		finalize = false
	case total >= maxUserMessages:
		finalize = true
	default:
		finalize = len(combined) > finalizeLength
	}

	if finalize {
		draft := BuildEntry(userMessages, mode, now)
		return TurnResult{
			Type:      "journal_entry",
			AIMessage: "I've created a personalized journal entry based on our conversation!",
			Finalize:  true,
			Entry:     &draft,
		}
	}

	turn := total - 1
	return TurnResult{
		Type:        "conversation",
		AIMessage:   conversationResponse(turn, mode),
		Finalize:    false,
		Suggestions: suggestionsFor(turn, mode),
	}
}

// BuildEntry turns the user side of a conversation into an entry draft.
func BuildEntry(userMessages []string, mode Mode, now time.Time) EntryDraft {
	combined := strings.Join(userMessages, "\n\n")
	body := entryBodies[mode]

	return EntryDraft{
		Title: fmt.Sprintf("%s - %s", entryTitles[mode], now.Format("January 02")),
		Entry: body.lead + combined + body.tail,
		Mood:  "content",
		Tags:  ExtractTags(combined),
	}
}

// ExtractTags scans conversation text for topic keywords, capped at five.
func ExtractTags(content string) []string {
	lower := strings.ToLower(content)
	var tags []string
	for _, class := range tagKeywords {
		for _, keyword := range class.keywords {
			if strings.Contains(lower, keyword) {
				tags = append(tags, class.tag)
				break
			}
		}
		if len(tags) == maxEntryTags {
			break
		}
	}
	return tags
}

// conversationResponse picks the reply for a zero-based turn index. The
// first turn uses mode-specific openers, the second a follow-up, and
// later turns acknowledge depth. Selection rotates by index so replays
// of the same conversation produce the same transcript.
func conversationResponse(turn int, mode Mode) string {
	switch turn {
	case 0:
		pool := firstResponses[mode]
		return pool[turn%len(pool)]
	case 1:
		return followUpResponses[turn%len(followUpResponses)]
	default:
		return deeperResponses[turn%len(deeperResponses)]
	}
}

// suggestionsFor returns three prompts rotated by turn index.
func suggestionsFor(turn int, mode Mode) []string {
	pool := modeSuggestions[mode]
	out := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		out = append(out, pool[(turn+i)%len(pool)])
	}
	return out
}

func collectUserMessages(history []Message) []string {
	var out []string
	for _, m := range history {
		if m.Role == "user" {
			out = append(out, m.Content)
		}
	}
	return out
}
