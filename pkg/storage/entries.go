package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/inkwell-ai/inkwell/pkg/journal"
)

// CreateEntry inserts an entry and its tags. The word count is always
// recomputed from the body so stored counts never drift.
func (s *Store) CreateEntry(ctx context.Context, entry *journal.Entry) error {
	if s == nil || s.db == nil {
		return ErrStoreClosed
	}

	now := time.Now().UTC()
	entry.WordCount = journal.CountWords(entry.Content)
	entry.CreatedAt = pickTime(entry.CreatedAt, now)
	entry.UpdatedAt = now

	res, err := s.db.ExecContext(ctx, `
        INSERT INTO entries (owner_id, title, content, mood, summary, word_count, media_count, published, encrypted, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, entry.OwnerID, entry.Title, entry.Content, entry.Mood, entry.Summary,
		entry.WordCount, entry.MediaCount, entry.Published, entry.Encrypted,
		entry.CreatedAt.UTC(), entry.UpdatedAt)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	entry.ID = id

	if len(entry.Tags) > 0 {
		if err := s.SetEntryTags(ctx, entry.ID, entry.OwnerID, entry.Tags); err != nil {
			return err
		}
	}

	s.notify(newEvent(EventEntryCreated, entry.OwnerID, entry.ID, nil))
	return nil
}

// UpdateEntry rewrites an entry's editable fields and retags it.
func (s *Store) UpdateEntry(ctx context.Context, entry *journal.Entry) error {
	if s == nil || s.db == nil {
		return ErrStoreClosed
	}

	entry.WordCount = journal.CountWords(entry.Content)
	entry.UpdatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
        UPDATE entries
        SET title = ?, content = ?, mood = ?, word_count = ?, media_count = ?, published = ?, updated_at = ?
        WHERE id = ? AND owner_id = ?
    `, entry.Title, entry.Content, entry.Mood, entry.WordCount, entry.MediaCount,
		entry.Published, entry.UpdatedAt, entry.ID, entry.OwnerID)
	if err != nil {
		return err
	}

	if err := s.SetEntryTags(ctx, entry.ID, entry.OwnerID, entry.Tags); err != nil {
		return err
	}

	s.notify(newEvent(EventEntryUpdated, entry.OwnerID, entry.ID, nil))
	return nil
}

// GetEntry loads a single entry with its tags, or nil when absent.
func (s *Store) GetEntry(ctx context.Context, ownerID, entryID int64) (*journal.Entry, error) {
	if s == nil || s.db == nil {
		return nil, ErrStoreClosed
	}

	row := s.db.QueryRowContext(ctx, `
        SELECT id, owner_id, title, content, mood, summary, summary_generated_at,
               word_count, media_count, published, encrypted, created_at, updated_at
        FROM entries WHERE id = ? AND owner_id = ?
    `, entryID, ownerID)

	entry, err := scanEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	tags, err := s.entryTags(ctx, entry.ID)
	if err != nil {
		return nil, err
	}
	entry.Tags = tags
	return entry, nil
}

// RecentEntries returns up to limit entries, newest first.
func (s *Store) RecentEntries(ctx context.Context, ownerID int64, limit int) ([]journal.Entry, error) {
	return s.listEntries(ctx, `
        SELECT id, owner_id, title, content, mood, summary, summary_generated_at,
               word_count, media_count, published, encrypted, created_at, updated_at
        FROM entries WHERE owner_id = ?
        ORDER BY created_at DESC LIMIT ?
    `, ownerID, limit)
}

// EntriesBetween returns up to limit entries inside a period, oldest
// first. Nil bounds leave that side open.
func (s *Store) EntriesBetween(ctx context.Context, ownerID int64, start, end *time.Time, limit int) ([]journal.Entry, error) {
	query := `
        SELECT id, owner_id, title, content, mood, summary, summary_generated_at,
               word_count, media_count, published, encrypted, created_at, updated_at
        FROM entries WHERE owner_id = ?`
	args := []any{ownerID}

	if start != nil {
		query += ` AND created_at >= ?`
		args = append(args, start.UTC())
	}
	if end != nil {
		query += ` AND created_at <= ?`
		args = append(args, end.UTC())
	}
	query += ` ORDER BY created_at ASC LIMIT ?`
	args = append(args, limit)

	return s.listEntries(ctx, query, args...)
}

// EntriesByIDs returns the owner's entries matching ids, oldest first.
func (s *Store) EntriesByIDs(ctx context.Context, ownerID int64, ids []int64) ([]journal.Entry, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
        SELECT id, owner_id, title, content, mood, summary, summary_generated_at,
               word_count, media_count, published, encrypted, created_at, updated_at
        FROM entries WHERE owner_id = ? AND id IN (`
	args := []any{ownerID}
	for i, id := range ids {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += `) ORDER BY created_at ASC`

	return s.listEntries(ctx, query, args...)
}

// DeleteEntry removes an entry; tags and versions cascade.
func (s *Store) DeleteEntry(ctx context.Context, ownerID, entryID int64) error {
	if s == nil || s.db == nil {
		return ErrStoreClosed
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ? AND owner_id = ?`, entryID, ownerID)
	if err != nil {
		return err
	}
	s.notify(newEvent(EventEntryDeleted, ownerID, entryID, nil))
	return nil
}

// UpdateEntrySummary stores a fresh summary and its generation time.
func (s *Store) UpdateEntrySummary(ctx context.Context, entryID int64, summary string, at time.Time) error {
	if s == nil || s.db == nil {
		return ErrStoreClosed
	}
	_, err := s.db.ExecContext(ctx, `
        UPDATE entries SET summary = ?, summary_generated_at = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
    `, summary, at.UTC(), entryID)
	if err != nil {
		return err
	}
	s.notify(newEvent(EventSummarySaved, 0, entryID, nil))
	return nil
}

// AddSummaryVersion archives a summary before it gets replaced.
func (s *Store) AddSummaryVersion(ctx context.Context, entryID int64, summary string) error {
	if s == nil || s.db == nil {
		return ErrStoreClosed
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO summary_versions (entry_id, summary) VALUES (?, ?)
    `, entryID, summary)
	return err
}

// ListSummaryVersions returns archived summaries, newest first.
func (s *Store) ListSummaryVersions(ctx context.Context, entryID int64) ([]journal.SummaryVersion, error) {
	if s == nil || s.db == nil {
		return nil, ErrStoreClosed
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, entry_id, summary, created_at FROM summary_versions
        WHERE entry_id = ? ORDER BY created_at DESC, id DESC
    `, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []journal.SummaryVersion
	for rows.Next() {
		var v journal.SummaryVersion
		if err := rows.Scan(&v.ID, &v.EntryID, &v.Summary, &v.CreatedAt); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func (s *Store) listEntries(ctx context.Context, query string, args ...any) ([]journal.Entry, error) {
	if s == nil || s.db == nil {
		return nil, ErrStoreClosed
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []journal.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range entries {
		tags, err := s.entryTags(ctx, entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Tags = tags
	}
	return entries, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*journal.Entry, error) {
	var entry journal.Entry
	var summaryAt sql.NullTime
	if err := row.Scan(&entry.ID, &entry.OwnerID, &entry.Title, &entry.Content, &entry.Mood,
		&entry.Summary, &summaryAt, &entry.WordCount, &entry.MediaCount,
		&entry.Published, &entry.Encrypted, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
		return nil, err
	}
	if summaryAt.Valid {
		t := summaryAt.Time
		entry.SummaryGeneratedAt = &t
	}
	return &entry, nil
}

func pickTime(t, fallback time.Time) time.Time {
	if t.IsZero() {
		return fallback
	}
	return t
}
