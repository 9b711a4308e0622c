package prompts

import (
	"fmt"
	"strings"
)

// ChapterIntroduction builds the prompt for a short chapter opener.
func ChapterIntroduction(chapterTitle, chapterDescription string) Prompt {
	user := fmt.Sprintf(`Write a brief, engaging introduction for a journal chapter.

Chapter title: %s
Chapter description: %s

The introduction should be 2-3 sentences that set the tone for the chapter
and invite the reader in. Write in a warm, reflective voice.`, chapterTitle, chapterDescription)

	return Prompt{System: writingSystem, User: user, Temperature: 0.7, MaxTokens: 200}
}

// ReflectionQuestions builds the prompt for end-of-journal reader
// questions tailored to the journal type.
func ReflectionQuestions(journalType string) Prompt {
	user := fmt.Sprintf(`Create 5 thoughtful reflection questions for readers of a %s journal.

The questions should encourage readers to connect the journal's themes to
their own lives. Number each question on its own line.`, journalType)

	return Prompt{System: writingSystem, User: user, Temperature: 0.7, MaxTokens: 400}
}

// ThematicConnections builds the prompt that ties chapter themes
// together for the reader.
func ThematicConnections(title string, chapterTitles []string) Prompt {
	user := fmt.Sprintf(`Describe the thematic connections running through this compiled journal.

Journal title: %s
Chapters:
%s

Write 1-2 paragraphs showing how the chapters relate to each other and
what larger narrative they form together.`, title, "- "+strings.Join(chapterTitles, "\n- "))

	return Prompt{System: writingSystem, User: user, Temperature: 0.7, MaxTokens: 500}
}

// ReadersGuide builds the prompt for a marketplace reader's guide.
func ReadersGuide(title, description, journalType string) Prompt {
	user := fmt.Sprintf(`Write a short reader's guide for this compiled journal.

Title: %s
Description: %s
Type: %s

Cover who the journal is for, how to read it, and what readers can expect
to take away. Keep it to 2-3 paragraphs.`, title, description, journalType)

	return Prompt{System: writingSystem, User: user, Temperature: 0.7, MaxTokens: 600}
}

// MarketingCopy builds the prompt for marketplace promotional copy.
func MarketingCopy(title, description, journalType string) Prompt {
	user := fmt.Sprintf(`Create marketing copy for this journal:
Title: %s
Description: %s
Type: %s

Generate:
1. A compelling tagline (10-15 words)
2. A short description for marketplace (50-80 words)
3. A social media post (with hashtags)
4. An email subject line

Make it engaging and authentic.`, title, description, journalType)

	return Prompt{System: writingSystem, User: user, Temperature: 0.7, MaxTokens: 600}
}

// MarketabilityAssessment builds the prompt for a qualitative market
// read on a compiled journal.
func MarketabilityAssessment(title, journalType string, themes []string, entryCount int) Prompt {
	user := fmt.Sprintf(`Assess the market appeal of this compiled journal.

Title: %s
Type: %s
Entry count: %d
Main themes: %s

Describe the likely audience, the journal's strongest selling points, and
one improvement that would broaden its appeal. Keep it to 2 paragraphs.`,
		title, journalType, entryCount, strings.Join(themes, ", "))

	return Prompt{System: writingSystem, User: user, Temperature: 0.7, MaxTokens: 500}
}
