package database

import (
	"strings"
	"testing"
)

func TestDialectDriverNames(t *testing.T) {
	tests := []struct {
		name       string
		dialect    Dialect
		driver     string
		migrations string
	}{
		{name: "SQLite", dialect: NewSQLiteDialect(), driver: "sqlite3", migrations: "sqlite"},
		{name: "PostgreSQL", dialect: NewPostgresDialect(), driver: "postgres", migrations: "postgres"},
		{name: "MySQL", dialect: NewMySQLDialect(), driver: "mysql", migrations: "mysql"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.DriverName(); got != tt.driver {
				t.Errorf("DriverName() = %v, want %v", got, tt.driver)
			}
			if got := tt.dialect.MigrationsSubdir(); got != tt.migrations {
				t.Errorf("MigrationsSubdir() = %v, want %v", got, tt.migrations)
			}
		})
	}
}

func TestDialectDSN(t *testing.T) {
	cfg := DialectConfig{Path: "./tutor.db", URL: "postgres://localhost/tutor"}

	if got := NewSQLiteDialect().DSN(cfg); got != cfg.Path {
		t.Errorf("SQLite DSN() = %v, want %v", got, cfg.Path)
	}
	if got := NewPostgresDialect().DSN(cfg); got != cfg.URL {
		t.Errorf("PostgreSQL DSN() = %v, want %v", got, cfg.URL)
	}
	if got := NewMySQLDialect().DSN(cfg); got != cfg.URL {
		t.Errorf("MySQL DSN() = %v, want %v", got, cfg.URL)
	}
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT document FROM session_documents WHERE doc_key = ?",
			expected: "SELECT document FROM session_documents WHERE doc_key = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT document FROM session_documents WHERE doc_key = ?",
			expected: "SELECT document FROM session_documents WHERE doc_key = $1",
		},
		{
			name:     "PostgreSQL multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "INSERT INTO session_documents (doc_key, document, updated_at) VALUES (?, ?, ?)",
			expected: "INSERT INTO session_documents (doc_key, document, updated_at) VALUES ($1, $2, $3)",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "DELETE FROM session_documents WHERE doc_key = ?",
			expected: "DELETE FROM session_documents WHERE doc_key = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.RewriteQuery(tt.query)
			if result != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestUpsertSessionDocumentQueryTakesThreeArguments(t *testing.T) {
	for _, dialect := range []Dialect{NewSQLiteDialect(), NewPostgresDialect(), NewMySQLDialect()} {
		query := dialect.UpsertSessionDocumentQuery()
		if got := strings.Count(query, "?"); got != 3 {
			t.Errorf("%s upsert has %d placeholders, want 3", dialect.DriverName(), got)
		}
		if !strings.Contains(query, "session_documents") {
			t.Errorf("%s upsert does not target session_documents", dialect.DriverName())
		}
	}
}

func TestEmbeddedMigrationsExistForEveryDialect(t *testing.T) {
	for _, dialect := range []Dialect{NewSQLiteDialect(), NewPostgresDialect(), NewMySQLDialect()} {
		entries, err := migrationFiles.ReadDir("migrations/" + dialect.MigrationsSubdir())
		if err != nil {
			t.Fatalf("%s: %v", dialect.MigrationsSubdir(), err)
		}
		if len(entries) == 0 {
			t.Errorf("%s has no migrations", dialect.MigrationsSubdir())
		}
	}
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	if _, err := Open("oracle", "", ""); err == nil {
		t.Error("Open() should reject an unknown backend")
	}
}
