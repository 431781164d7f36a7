package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// MainDocumentKey is the single-user document row.
const MainDocumentKey = "main"

// StateDocument is one stored revision of the history blob.
type StateDocument struct {
	Key      string
	Document []byte
	Revision string
	SavedAt  time.Time
}

// StateRepo persists the full history document. Every save overwrites the
// entire row; there are no partial updates.
type StateRepo struct {
	db *sql.DB
}

func NewStateRepo(db *sql.DB) *StateRepo {
	return &StateRepo{db: db}
}

// Get returns the stored document, or nil when nothing was saved yet.
func (r *StateRepo) Get(ctx context.Context) (*StateDocument, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, document, revision, saved_at
		FROM state_documents
		WHERE key = ?
	`, MainDocumentKey)

	var doc StateDocument
	var raw string
	if err := row.Scan(&doc.Key, &raw, &doc.Revision, &doc.SavedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("state get: %w", err)
	}
	doc.Document = []byte(raw)
	return &doc, nil
}

// Replace overwrites the stored document with a new revision.
func (r *StateRepo) Replace(ctx context.Context, document []byte, revision string, savedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO state_documents (key, document, revision, saved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			document = excluded.document,
			revision = excluded.revision,
			saved_at = excluded.saved_at
	`, MainDocumentKey, string(document), revision, savedAt)
	if err != nil {
		return fmt.Errorf("state replace: %w", err)
	}
	return nil
}
