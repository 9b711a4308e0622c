package prompts

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

// EstimateTokens estimates how many tokens a prompt will consume. Falls
// back to a chars/4 heuristic if the encoding is unavailable.
func EstimateTokens(text string) int {
	encodingOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			encoding = enc
		}
	})

	if encoding == nil {
		return len(text) / 4
	}
	return len(encoding.Encode(text, nil, nil))
}

// EstimatePromptTokens estimates the token footprint of a full prompt
// including the system message.
func EstimatePromptTokens(p Prompt) int {
	return EstimateTokens(p.System) + EstimateTokens(p.User)
}
