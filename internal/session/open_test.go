package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"radicaltutor/internal/config"
)

func TestOpenStoreFile(t *testing.T) {
	cfg := &config.Config{StoreBackend: "file", SessionFile: filepath.Join(t.TempDir(), "user_data.json")}

	store, closer, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	defer closer.Close()

	assert.IsType(t, &FileStore{}, store)
}

func TestOpenStoreSQLite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	cfg := &config.Config{
		StoreBackend: "sqlite",
		DatabasePath: filepath.Join(t.TempDir(), "tutor.db"),
		SessionKey:   "default",
	}

	store, closer, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, "sql:default", store.Name())
	testStoreContract(t, store)
}

func TestOpenStoreUnknownBackend(t *testing.T) {
	_, _, err := OpenStore(context.Background(), &config.Config{StoreBackend: "cassandra"})
	assert.Error(t, err)
}
