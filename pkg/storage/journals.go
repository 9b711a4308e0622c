package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/inkwell-ai/inkwell/pkg/compiler"
)

// CompiledJournal is a stored compilation result.
type CompiledJournal struct {
	ID             int64              `json:"id"`
	OwnerID        int64              `json:"owner_id"`
	Title          string             `json:"title"`
	Method         string             `json:"method"`
	JournalType    string             `json:"journal_type"`
	Structure      compiler.Structure `json:"structure"`
	SuggestedPrice float64            `json:"suggested_price"`
	CreatedAt      time.Time          `json:"created_at"`
}

// SaveCompiledJournal persists a compilation result.
func (s *Store) SaveCompiledJournal(ctx context.Context, cj *CompiledJournal) error {
	if s == nil || s.db == nil {
		return ErrStoreClosed
	}

	structure, err := json.Marshal(cj.Structure)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
        INSERT INTO compiled_journals (owner_id, title, method, journal_type, structure, suggested_price)
        VALUES (?, ?, ?, ?, ?, ?)
    `, cj.OwnerID, cj.Title, cj.Method, cj.JournalType, string(structure), cj.SuggestedPrice)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	cj.ID = id

	s.notify(newEvent(EventJournalCompiled, cj.OwnerID, cj.ID, nil))
	return nil
}

// GetCompiledJournal loads one compilation, or nil when absent.
func (s *Store) GetCompiledJournal(ctx context.Context, ownerID, journalID int64) (*CompiledJournal, error) {
	if s == nil || s.db == nil {
		return nil, ErrStoreClosed
	}

	row := s.db.QueryRowContext(ctx, `
        SELECT id, owner_id, title, method, journal_type, structure, suggested_price, created_at
        FROM compiled_journals WHERE id = ? AND owner_id = ?
    `, journalID, ownerID)

	var cj CompiledJournal
	var structure string
	if err := row.Scan(&cj.ID, &cj.OwnerID, &cj.Title, &cj.Method, &cj.JournalType,
		&structure, &cj.SuggestedPrice, &cj.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(structure), &cj.Structure); err != nil {
		return nil, err
	}
	return &cj, nil
}

// ListCompiledJournals returns the owner's compilations, newest first.
func (s *Store) ListCompiledJournals(ctx context.Context, ownerID int64) ([]CompiledJournal, error) {
	if s == nil || s.db == nil {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT id, owner_id, title, method, journal_type, structure, suggested_price, created_at
        FROM compiled_journals WHERE owner_id = ? ORDER BY created_at DESC, id DESC
    `, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var journals []CompiledJournal
	for rows.Next() {
		var cj CompiledJournal
		var structure string
		if err := rows.Scan(&cj.ID, &cj.OwnerID, &cj.Title, &cj.Method, &cj.JournalType,
			&structure, &cj.SuggestedPrice, &cj.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(structure), &cj.Structure); err != nil {
			return nil, err
		}
		journals = append(journals, cj)
	}
	return journals, rows.Err()
}
