package prompts

import "strings"

// StyleGuide renders preference axes into prompt clauses. Each axis
// contributes exactly one clause; unknown values contribute nothing.
func StyleGuide(p Preferences) string {
	var sb strings.Builder

	switch p.WritingStyle {
	case "reflective":
		sb.WriteString("Write in a thoughtful, introspective tone with personal insights. ")
	case "analytical":
		sb.WriteString("Write in a logical, analytical tone with observations about patterns and causes. ")
	case "creative":
		sb.WriteString("Write in a creative, expressive tone with vivid descriptions and imagery. ")
	case "concise":
		sb.WriteString("Write concisely and to the point, focusing on key events and feelings. ")
	case "detailed":
		sb.WriteString("Include rich details and thorough descriptions of events, feelings, and surroundings. ")
	case "poetic":
		sb.WriteString("Include poetic language, metaphors, and a flowing, rhythmic writing style. ")
	case "humorous":
		sb.WriteString("Incorporate gentle humor and a lighthearted tone where appropriate. ")
	}

	switch p.Tone {
	case "positive":
		sb.WriteString("Emphasize positive aspects and silver linings in events. ")
	case "balanced":
		sb.WriteString("Balance both positive and challenging aspects of experiences. ")
	case "realistic":
		sb.WriteString("Take a realistic, pragmatic approach to describing events. ")
	case "growth":
		sb.WriteString("Focus on lessons learned and personal growth opportunities. ")
	}

	if len(p.FocusAreas) > 0 {
		sb.WriteString("When relevant, emphasize these areas: ")
		sb.WriteString(strings.Join(p.FocusAreas, ", "))
		sb.WriteString(". ")
	}

	switch p.LanguageComplexity {
	case "simple":
		sb.WriteString("Use simple, clear language avoiding complex vocabulary. ")
	case "moderate":
		sb.WriteString("Use moderately sophisticated language accessible to most readers. ")
	case "advanced":
		sb.WriteString("Use rich, sophisticated vocabulary and complex sentence structures. ")
	}

	switch p.MetaphorFrequency {
	case "minimal":
		sb.WriteString("Use metaphors and analogies sparingly. ")
	case "occasional":
		sb.WriteString("Occasionally include metaphors or analogies to illustrate points. ")
	case "frequent":
		sb.WriteString("Frequently incorporate metaphors and analogies throughout the entry. ")
	}

	if p.IncludeQuestions {
		sb.WriteString("End with 1-2 thoughtful reflective questions related to the events. ")
	}

	return sb.String()
}
