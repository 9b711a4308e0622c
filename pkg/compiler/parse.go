package compiler

import (
	"encoding/json"

	inkerr "github.com/inkwell-ai/inkwell/pkg/errors"
	"github.com/inkwell-ai/inkwell/pkg/extract"
)

// ParseStructure parses a model-proposed journal structure. A missing
// title, description, or chapter list is treated as a parse failure so
// the caller can fall back to a deterministic structure.
func ParseStructure(text, method, journalType string) (Structure, error) {
	block := extract.JSONBlock(text)

	var wire struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Chapters    []struct {
			Title            string `json:"title"`
			Description      string `json:"description"`
			Theme            string `json:"theme"`
			EstimatedEntries int    `json:"estimated_entries"`
		} `json:"chapters"`
		TargetAudience      string   `json:"target_audience"`
		UniqueSellingPoints []string `json:"unique_selling_points"`
	}
	if err := json.Unmarshal([]byte(block), &wire); err != nil {
		return Structure{}, inkerr.Wrap(err, inkerr.ErrCodeExtractFailed, "structure response is not valid JSON")
	}

	if wire.Title == "" || wire.Description == "" || len(wire.Chapters) == 0 {
		return Structure{}, inkerr.New(inkerr.ErrCodeExtractFailed, "structure response is incomplete").
			WithContext("has_title", wire.Title != "").
			WithContext("chapters", len(wire.Chapters))
	}

	structure := Structure{
		Title:               wire.Title,
		Description:         wire.Description,
		CompilationMethod:   method,
		JournalType:         journalType,
		TargetAudience:      wire.TargetAudience,
		UniqueSellingPoints: wire.UniqueSellingPoints,
	}
	for _, ch := range wire.Chapters {
		structure.Chapters = append(structure.Chapters, Chapter{
			Title:            ch.Title,
			Description:      ch.Description,
			Theme:            ch.Theme,
			EstimatedEntries: ch.EstimatedEntries,
		})
	}
	return structure, nil
}
