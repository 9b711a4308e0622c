package storage

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
)

// AnonymousEntries returns the drafts saved by a browser session before
// signup, keyed by draft ID. Early versions stored a bare list; those
// are converted to a map with fresh IDs on read and written back.
func (s *Store) AnonymousEntries(ctx context.Context, sessionID string) (map[string]json.RawMessage, error) {
	if s == nil || s.db == nil {
		return nil, ErrStoreClosed
	}

	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT entries FROM anonymous_sessions WHERE id = ?`, sessionID).Scan(&raw)
	if err == sql.ErrNoRows {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, err
	}

	entries := map[string]json.RawMessage{}
	if raw == "" {
		return entries, nil
	}
	if err := json.Unmarshal([]byte(raw), &entries); err == nil {
		return entries, nil
	}

	// Legacy list format
	var list []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, err
	}
	for _, item := range list {
		entries[uuid.NewString()] = item
	}
	if err := s.writeAnonymousEntries(ctx, sessionID, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SaveAnonymousEntry stores one draft under a session, creating the
// session row on first use.
func (s *Store) SaveAnonymousEntry(ctx context.Context, sessionID, draftID string, payload json.RawMessage) error {
	if s == nil || s.db == nil {
		return ErrStoreClosed
	}

	entries, err := s.AnonymousEntries(ctx, sessionID)
	if err != nil {
		return err
	}
	entries[draftID] = payload
	return s.writeAnonymousEntries(ctx, sessionID, entries)
}

// DeleteAnonymousSession drops a session and its drafts, typically
// after the drafts were claimed by a new account.
func (s *Store) DeleteAnonymousSession(ctx context.Context, sessionID string) error {
	if s == nil || s.db == nil {
		return ErrStoreClosed
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM anonymous_sessions WHERE id = ?`, sessionID)
	return err
}

func (s *Store) writeAnonymousEntries(ctx context.Context, sessionID string, entries map[string]json.RawMessage) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO anonymous_sessions (id, entries) VALUES (?, ?)
        ON CONFLICT(id) DO UPDATE SET entries = excluded.entries, updated_at = CURRENT_TIMESTAMP
    `, sessionID, string(data))
	return err
}
