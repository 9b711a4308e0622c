package storage

import (
	"context"

	"github.com/inkwell-ai/inkwell/pkg/journal"
)

// ListInsights returns the owner's stored insights, oldest first.
func (s *Store) ListInsights(ctx context.Context, ownerID int64) ([]journal.Insight, error) {
	if s == nil || s.db == nil {
		return nil, ErrStoreClosed
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, owner_id, kind, title, content, created_at
        FROM insights WHERE owner_id = ? ORDER BY id ASC
    `, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var insights []journal.Insight
	for rows.Next() {
		var in journal.Insight
		if err := rows.Scan(&in.ID, &in.OwnerID, &in.Kind, &in.Title, &in.Content, &in.CreatedAt); err != nil {
			return nil, err
		}
		insights = append(insights, in)
	}
	return insights, rows.Err()
}

// ReplaceInsights swaps the owner's insight batch atomically. The old
// batch is deleted and the new one inserted in one transaction, so
// readers never observe a mix of generations.
func (s *Store) ReplaceInsights(ctx context.Context, ownerID int64, insights []journal.Insight) error {
	if s == nil || s.db == nil {
		return ErrStoreClosed
	}
	if err := withBusyRetry(func() error {
		return s.replaceInsights(ctx, ownerID, insights)
	}); err != nil {
		return err
	}

	s.notify(newEvent(EventInsightsReplaced, ownerID, nil, len(insights)))
	return nil
}

func (s *Store) replaceInsights(ctx context.Context, ownerID int64, insights []journal.Insight) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM insights WHERE owner_id = ?`, ownerID); err != nil {
		return err
	}

	for i := range insights {
		res, err := tx.ExecContext(ctx, `
            INSERT INTO insights (owner_id, kind, title, content) VALUES (?, ?, ?, ?)
        `, ownerID, insights[i].Kind, insights[i].Title, insights[i].Content)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		insights[i].ID = id
		insights[i].OwnerID = ownerID
	}

	return tx.Commit()
}
