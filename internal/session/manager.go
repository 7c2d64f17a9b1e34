package session

import (
	"context"
	"errors"
	"log"
	"sync"

	"radicaltutor/internal/models"
)

// Manager owns the session document. Every read-modify-write cycle runs
// under one exclusive lock, so concurrent requests cannot lose updates.
type Manager struct {
	store Store
	mu    sync.Mutex
}

// NewManager creates a manager over a store
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Store returns the underlying store
func (m *Manager) Store() Store {
	return m.store
}

// View returns the current document without saving it. A missing or
// corrupt document yields a fresh default document.
func (m *Manager) View(ctx context.Context) (*models.SessionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(ctx)
}

// Update loads the document, applies fn and saves the whole document. When
// fn returns an error nothing is saved and the error is returned.
func (m *Manager) Update(ctx context.Context, fn func(*models.SessionState) error) (*models.SessionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	if err := fn(state); err != nil {
		return nil, err
	}

	if err := m.store.Save(ctx, state); err != nil {
		return nil, err
	}

	return state, nil
}

func (m *Manager) load(ctx context.Context) (*models.SessionState, error) {
	state, err := m.store.Load(ctx)
	switch {
	case err == nil:
		return state, nil
	case errors.Is(err, ErrNotFound):
		return models.NewSessionState(), nil
	case errors.Is(err, ErrCorrupt):
		log.Printf("Warning: session document in %s is corrupt, starting a new session: %v", m.store.Name(), err)
		return models.NewSessionState(), nil
	default:
		return nil, err
	}
}

// Replace overwrites the stored document with state
func (m *Manager) Replace(ctx context.Context, state *models.SessionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	state.Normalize()
	return m.store.Save(ctx, state)
}

// Reset deletes the stored document; the next load starts a new session
func (m *Manager) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Delete(ctx)
}
