package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"radicaltutor/internal/models"
)

var (
	// ErrNotFound is returned by a Store when no document has been saved yet
	ErrNotFound = errors.New("session document not found")
	// ErrCorrupt is returned by a Store when the saved document cannot be parsed
	ErrCorrupt = errors.New("session document corrupt")
)

// Store persists the single session document. Save always replaces the
// whole document; there is no partial update.
type Store interface {
	Load(ctx context.Context) (*models.SessionState, error)
	Save(ctx context.Context, state *models.SessionState) error
	Delete(ctx context.Context) error
	Name() string
}

func encode(state *models.SessionState) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(state); err != nil {
		return nil, fmt.Errorf("failed to encode session document: %w", err)
	}
	return buf.Bytes(), nil
}

func decode(data []byte) (*models.SessionState, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrCorrupt)
	}

	var state models.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	state.Normalize()
	return &state, nil
}
