package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds application configuration
type Config struct {
	ServerPort string `env:"PORT" envDefault:"5001"`

	// Content
	CatalogPath  string `env:"CATALOG_PATH" envDefault:"./data/radicals.json"`
	WatchCatalog bool   `env:"WATCH_CATALOG" envDefault:"true"`
	LessonParts  int    `env:"LESSON_PARTS" envDefault:"2"`

	// Session document storage
	StoreBackend string `env:"STORE_BACKEND" envDefault:"file"`
	SessionFile  string `env:"SESSION_FILE" envDefault:"./user_data.json"`
	SessionKey   string `env:"SESSION_KEY" envDefault:"default"`
	DatabasePath string `env:"DB_PATH" envDefault:"./radicaltutor.db"`
	DatabaseURL  string `env:"DATABASE_URL"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Presentation
	TemplatesPath   string `env:"TEMPLATES_PATH"`
	StaticFilesPath string `env:"STATIC_PATH" envDefault:"./static"`
	AudioEnabled    bool   `env:"AUDIO_ENABLED" envDefault:"false"`
	AudioLang       string `env:"AUDIO_LANG" envDefault:"zh-CN"`

	// Submission throttling
	RateLimit  int           `env:"RATE_LIMIT" envDefault:"60"`
	RateWindow time.Duration `env:"RATE_WINDOW" envDefault:"1m"`
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the rest of the application cannot honour
func (c *Config) Validate() error {
	if c.LessonParts != 1 && c.LessonParts != 2 {
		return fmt.Errorf("LESSON_PARTS must be 1 or 2, got %d", c.LessonParts)
	}
	switch c.StoreBackend {
	case "file", "sqlite", "sqlite3", "postgres", "postgresql", "mysql", "redis":
	default:
		return fmt.Errorf("unsupported store backend: %s", c.StoreBackend)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("RATE_LIMIT must not be negative, got %d", c.RateLimit)
	}
	return nil
}
