package storage

import (
	"context"

	"github.com/inkwell-ai/inkwell/pkg/journal"
)

// Tag is a named topic with a usage count over the owner's entries.
type Tag struct {
	ID         int64  `json:"id"`
	OwnerID    int64  `json:"owner_id"`
	Name       string `json:"name"`
	UsageCount int    `json:"usage_count"`
}

// SetEntryTags replaces an entry's tag set. Tags are created on first
// use and usage counts are recomputed from the join table, so calling
// this twice with the same set changes nothing.
func (s *Store) SetEntryTags(ctx context.Context, entryID, ownerID int64, tags []string) error {
	if s == nil || s.db == nil {
		return ErrStoreClosed
	}
	return withBusyRetry(func() error {
		return s.setEntryTags(ctx, entryID, ownerID, tags)
	})
}

func (s *Store) setEntryTags(ctx context.Context, entryID, ownerID int64, tags []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entry_tags WHERE entry_id = ?`, entryID); err != nil {
		return err
	}

	seen := make(map[string]bool)
	for _, raw := range tags {
		name := journal.NormalizeTag(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		if _, err := tx.ExecContext(ctx, `
            INSERT INTO tags (owner_id, name) VALUES (?, ?)
            ON CONFLICT(owner_id, name) DO NOTHING
        `, ownerID, name); err != nil {
			return err
		}

		var tagID int64
		if err := tx.QueryRowContext(ctx, `SELECT id FROM tags WHERE owner_id = ? AND name = ?`, ownerID, name).Scan(&tagID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
            INSERT INTO entry_tags (entry_id, tag_id) VALUES (?, ?)
            ON CONFLICT(entry_id, tag_id) DO NOTHING
        `, entryID, tagID); err != nil {
			return err
		}
	}

	// Recompute counts for every tag the owner has; stale rows from
	// removed tags drop to zero.
	if _, err := tx.ExecContext(ctx, `
        UPDATE tags SET usage_count = (
            SELECT COUNT(1) FROM entry_tags WHERE entry_tags.tag_id = tags.id
        ) WHERE owner_id = ?
    `, ownerID); err != nil {
		return err
	}

	return tx.Commit()
}

// ListTags returns the owner's tags ordered by usage.
func (s *Store) ListTags(ctx context.Context, ownerID int64) ([]Tag, error) {
	if s == nil || s.db == nil {
		return nil, ErrStoreClosed
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, owner_id, name, usage_count FROM tags
        WHERE owner_id = ? ORDER BY usage_count DESC, name ASC
    `, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Name, &t.UsageCount); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (s *Store) entryTags(ctx context.Context, entryID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT t.name FROM tags t
        JOIN entry_tags et ON et.tag_id = t.id
        WHERE et.entry_id = ? ORDER BY t.name ASC
    `, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
