package storage

import (
	"context"
	"database/sql"
	"time"
)

// UserStats summarizes a writer's activity for the dashboard.
type UserStats struct {
	TotalEntries     int        `json:"total_entries"`
	TotalWords       int        `json:"total_words"`
	AvgWordsPerEntry int        `json:"avg_words_per_entry"`
	FirstEntryDate   *time.Time `json:"first_entry_date,omitempty"`
	LastEntryDate    *time.Time `json:"last_entry_date,omitempty"`
	WritingStreak    int        `json:"writing_streak"`
	EntriesThisMonth int        `json:"entries_this_month"`
	MostUsedMood     string     `json:"most_used_mood,omitempty"`
	FavoriteTags     []string   `json:"favorite_tags"`
}

// UserStats computes entry counts, streak and favorites for an owner.
func (s *Store) UserStats(ctx context.Context, ownerID int64, now time.Time) (*UserStats, error) {
	if s == nil || s.db == nil {
		return nil, ErrStoreClosed
	}

	stats := &UserStats{FavoriteTags: []string{}}

	err := s.db.QueryRowContext(ctx, `
        SELECT COUNT(id), COALESCE(SUM(word_count), 0)
        FROM entries WHERE owner_id = ?
    `, ownerID).Scan(&stats.TotalEntries, &stats.TotalWords)
	if err != nil {
		return nil, err
	}
	if stats.TotalEntries > 0 {
		stats.AvgWordsPerEntry = stats.TotalWords / stats.TotalEntries
	}

	// MIN/MAX aggregates come back untyped from the driver, so the
	// boundary timestamps are read with ORDER BY instead.
	first, err := s.boundaryEntryTime(ctx, ownerID, "ASC")
	if err != nil {
		return nil, err
	}
	stats.FirstEntryDate = first
	last, err := s.boundaryEntryTime(ctx, ownerID, "DESC")
	if err != nil {
		return nil, err
	}
	stats.LastEntryDate = last

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	err = s.db.QueryRowContext(ctx, `
        SELECT COUNT(id) FROM entries WHERE owner_id = ? AND created_at >= ?
    `, ownerID, monthStart).Scan(&stats.EntriesThisMonth)
	if err != nil {
		return nil, err
	}

	var mood sql.NullString
	err = s.db.QueryRowContext(ctx, `
        SELECT mood FROM entries WHERE owner_id = ? AND mood != ''
        GROUP BY mood ORDER BY COUNT(*) DESC LIMIT 1
    `, ownerID).Scan(&mood)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if mood.Valid {
		stats.MostUsedMood = mood.String
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT name FROM tags WHERE owner_id = ? AND usage_count > 0
        ORDER BY usage_count DESC, name ASC LIMIT 5
    `, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		stats.FavoriteTags = append(stats.FavoriteTags, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	streak, err := s.writingStreak(ctx, ownerID, now)
	if err != nil {
		return nil, err
	}
	stats.WritingStreak = streak
	return stats, nil
}

func (s *Store) boundaryEntryTime(ctx context.Context, ownerID int64, direction string) (*time.Time, error) {
	var ts time.Time
	err := s.db.QueryRowContext(ctx, `
        SELECT created_at FROM entries WHERE owner_id = ?
        ORDER BY created_at `+direction+` LIMIT 1
    `, ownerID).Scan(&ts)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// writingStreak counts consecutive writing days ending today or
// yesterday. A gap before today breaks the streak to zero.
func (s *Store) writingStreak(ctx context.Context, ownerID int64, now time.Time) (int, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT created_at FROM entries WHERE owner_id = ? ORDER BY created_at DESC
    `, ownerID)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	// Collapse timestamps to distinct UTC days, newest first.
	seen := make(map[string]bool)
	var days []string
	for rows.Next() {
		var ts time.Time
		if err := rows.Scan(&ts); err != nil {
			return 0, err
		}
		day := ts.UTC().Format("2006-01-02")
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	if len(days) == 0 {
		return 0, nil
	}

	today := now.UTC().Format("2006-01-02")
	yesterday := now.UTC().AddDate(0, 0, -1).Format("2006-01-02")
	if days[0] != today && days[0] != yesterday {
		return 0, nil
	}

	streak := 1
	current, err := time.Parse("2006-01-02", days[0])
	if err != nil {
		return 0, err
	}
	for _, day := range days[1:] {
		expected := current.AddDate(0, 0, -1).Format("2006-01-02")
		if day != expected {
			break
		}
		streak++
		current = current.AddDate(0, 0, -1)
	}
	return streak, nil
}
