package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/inkwell-ai/inkwell/pkg/journal"
)

// LatestBiography returns the owner's most recently updated biography,
// or nil when none exists.
func (s *Store) LatestBiography(ctx context.Context, ownerID int64) (*journal.Biography, error) {
	if s == nil || s.db == nil {
		return nil, ErrStoreClosed
	}
	row := s.db.QueryRowContext(ctx, `
        SELECT id, owner_id, title, content, period_start, period_end, chapters_data, created_at, updated_at
        FROM biographies WHERE owner_id = ? ORDER BY updated_at DESC, id DESC LIMIT 1
    `, ownerID)
	return scanBiography(row)
}

// BiographyForPeriod returns the biography keyed by exact period
// bounds, or nil when absent. Nil bounds match rows with NULL bounds.
func (s *Store) BiographyForPeriod(ctx context.Context, ownerID int64, start, end *time.Time) (*journal.Biography, error) {
	if s == nil || s.db == nil {
		return nil, ErrStoreClosed
	}

	query := `
        SELECT id, owner_id, title, content, period_start, period_end, chapters_data, created_at, updated_at
        FROM biographies WHERE owner_id = ?`
	args := []any{ownerID}

	if start != nil {
		query += ` AND period_start = ?`
		args = append(args, start.UTC())
	} else {
		query += ` AND period_start IS NULL`
	}
	if end != nil {
		query += ` AND period_end = ?`
		args = append(args, end.UTC())
	} else {
		query += ` AND period_end IS NULL`
	}
	query += ` LIMIT 1`

	return scanBiography(s.db.QueryRowContext(ctx, query, args...))
}

// SaveBiography inserts or updates a biography. Rows with an ID update
// in place; new rows get their ID filled in.
func (s *Store) SaveBiography(ctx context.Context, bio *journal.Biography) error {
	if s == nil || s.db == nil {
		return ErrStoreClosed
	}

	chapters, err := json.Marshal(orEmptyChapters(bio.ChaptersData))
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	bio.UpdatedAt = now

	if bio.ID != 0 {
		_, err := s.db.ExecContext(ctx, `
            UPDATE biographies
            SET title = ?, content = ?, period_start = ?, period_end = ?, chapters_data = ?, updated_at = ?
            WHERE id = ? AND owner_id = ?
        `, bio.Title, bio.Content, nullableTime(bio.PeriodStart), nullableTime(bio.PeriodEnd),
			string(chapters), now, bio.ID, bio.OwnerID)
		if err != nil {
			return err
		}
		s.notify(newEvent(EventBiographySaved, bio.OwnerID, bio.ID, nil))
		return nil
	}

	bio.CreatedAt = now
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO biographies (owner_id, title, content, period_start, period_end, chapters_data, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `, bio.OwnerID, bio.Title, bio.Content, nullableTime(bio.PeriodStart), nullableTime(bio.PeriodEnd),
		string(chapters), now, now)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	bio.ID = id

	s.notify(newEvent(EventBiographySaved, bio.OwnerID, bio.ID, nil))
	return nil
}

func scanBiography(row *sql.Row) (*journal.Biography, error) {
	var bio journal.Biography
	var start, end sql.NullTime
	var chapters string
	if err := row.Scan(&bio.ID, &bio.OwnerID, &bio.Title, &bio.Content, &start, &end,
		&chapters, &bio.CreatedAt, &bio.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if start.Valid {
		t := start.Time
		bio.PeriodStart = &t
	}
	if end.Valid {
		t := end.Time
		bio.PeriodEnd = &t
	}
	if chapters != "" {
		if err := json.Unmarshal([]byte(chapters), &bio.ChaptersData); err != nil {
			return nil, err
		}
	}
	return &bio, nil
}

func orEmptyChapters(data map[string]any) map[string]any {
	if data == nil {
		return map[string]any{}
	}
	return data
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}
