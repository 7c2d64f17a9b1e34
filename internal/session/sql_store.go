package session

import (
	"context"
	"errors"
	"fmt"

	"radicaltutor/internal/models"
	"radicaltutor/internal/repository"
)

// SQLStore keeps the session document as a JSON blob in session_documents
type SQLStore struct {
	repo *repository.SessionDocumentRepository
	key  string
}

// NewSQLStore creates a database-backed store for the document under key
func NewSQLStore(repo *repository.SessionDocumentRepository, key string) *SQLStore {
	return &SQLStore{repo: repo, key: key}
}

func (s *SQLStore) Name() string {
	return "sql:" + s.key
}

func (s *SQLStore) Load(ctx context.Context) (*models.SessionState, error) {
	data, err := s.repo.Get(ctx, s.key)
	if errors.Is(err, repository.ErrDocumentNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session document: %w", err)
	}
	return decode(data)
}

func (s *SQLStore) Save(ctx context.Context, state *models.SessionState) error {
	data, err := encode(state)
	if err != nil {
		return err
	}
	if err := s.repo.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to save session document: %w", err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context) error {
	return s.repo.Delete(ctx, s.key)
}
