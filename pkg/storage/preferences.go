package storage

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/inkwell-ai/inkwell/pkg/prompts"
)

// GetPreferences returns the owner's personalization settings, falling
// back to the defaults when nothing was saved yet.
func (s *Store) GetPreferences(ctx context.Context, ownerID int64) (prompts.Preferences, error) {
	if s == nil || s.db == nil {
		return prompts.Preferences{}, ErrStoreClosed
	}

	row := s.db.QueryRowContext(ctx, `
        SELECT writing_style, tone, focus_areas, language_complexity, include_questions, metaphor_frequency
        FROM preferences WHERE owner_id = ?
    `, ownerID)

	var prefs prompts.Preferences
	var focusAreas string
	err := row.Scan(&prefs.WritingStyle, &prefs.Tone, &focusAreas,
		&prefs.LanguageComplexity, &prefs.IncludeQuestions, &prefs.MetaphorFrequency)
	if err == sql.ErrNoRows {
		return prompts.DefaultPreferences(), nil
	}
	if err != nil {
		return prompts.Preferences{}, err
	}

	if focusAreas != "" {
		if err := json.Unmarshal([]byte(focusAreas), &prefs.FocusAreas); err != nil {
			return prompts.Preferences{}, err
		}
	}
	return prefs, nil
}

// SavePreferences upserts the owner's personalization settings.
func (s *Store) SavePreferences(ctx context.Context, ownerID int64, prefs prompts.Preferences) error {
	if s == nil || s.db == nil {
		return ErrStoreClosed
	}

	focusAreas, err := json.Marshal(orEmptyList(prefs.FocusAreas))
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
        INSERT INTO preferences (owner_id, writing_style, tone, focus_areas, language_complexity, include_questions, metaphor_frequency)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(owner_id) DO UPDATE SET
            writing_style = excluded.writing_style,
            tone = excluded.tone,
            focus_areas = excluded.focus_areas,
            language_complexity = excluded.language_complexity,
            include_questions = excluded.include_questions,
            metaphor_frequency = excluded.metaphor_frequency
    `, ownerID, prefs.WritingStyle, prefs.Tone, string(focusAreas),
		prefs.LanguageComplexity, prefs.IncludeQuestions, prefs.MetaphorFrequency)
	return err
}

func orEmptyList(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
