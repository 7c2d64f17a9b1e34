package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"radicaltutor/internal/database"
)

// ErrDocumentNotFound is returned when no document is stored under a key
var ErrDocumentNotFound = errors.New("session document not found")

// SessionDocumentRepository stores serialized session documents by key
type SessionDocumentRepository struct {
	db database.DBTX
}

// NewSessionDocumentRepository creates a new session document repository
func NewSessionDocumentRepository(db database.DBTX) *SessionDocumentRepository {
	return &SessionDocumentRepository{db: db}
}

// Get retrieves the raw document stored under key
func (r *SessionDocumentRepository) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT document FROM session_documents WHERE doc_key = ?`

	var document string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}

	return []byte(document), nil
}

// Put inserts or replaces the document stored under key
func (r *SessionDocumentRepository) Put(ctx context.Context, key string, document []byte) error {
	query := r.db.GetDialect().UpsertSessionDocumentQuery()
	_, err := r.db.ExecContext(ctx, query, key, string(document), time.Now().UTC())
	return err
}

// Delete removes the document stored under key
func (r *SessionDocumentRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM session_documents WHERE doc_key = ?`
	_, err := r.db.ExecContext(ctx, query, key)
	return err
}
