package session

import (
	"context"
	"fmt"
	"io"
	"log"

	"radicaltutor/internal/config"
	"radicaltutor/internal/database"
	"radicaltutor/internal/repository"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

var nopCloser = closerFunc(func() error { return nil })

// OpenStore builds the store selected by cfg.StoreBackend. The returned
// closer releases the database or Redis connection behind the store.
func OpenStore(ctx context.Context, cfg *config.Config) (Store, io.Closer, error) {
	switch cfg.StoreBackend {
	case "file", "":
		return NewFileStore(cfg.SessionFile), nopCloser, nil

	case "redis":
		client, err := NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Session documents stored in redis at %s", cfg.RedisAddr)
		return NewRedisStore(client, cfg.SessionKey), client, nil

	default:
		db, err := database.Open(cfg.StoreBackend, cfg.DatabasePath, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := db.RunMigrations(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Printf("Session documents stored in %s database", cfg.StoreBackend)
		return NewSQLStore(repository.NewSessionDocumentRepository(db), cfg.SessionKey), db, nil
	}
}
