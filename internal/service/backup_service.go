package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"radicaltutor/internal/models"
	"radicaltutor/internal/session"
)

// BackupVersion is the format version written into exports
const BackupVersion = "1.0"

// BackupData represents a complete backup of the session document
type BackupData struct {
	Version    string               `json:"version"`
	ExportedAt time.Time            `json:"exported_at"`
	Backend    string               `json:"backend"`
	Session    *models.SessionState `json:"session"`
}

// BackupService exports and restores the session document
type BackupService struct {
	sessions *session.Manager
}

// NewBackupService creates a new backup service
func NewBackupService(sessions *session.Manager) *BackupService {
	return &BackupService{sessions: sessions}
}

// Export writes a backup of the session document to a file
func (s *BackupService) Export(ctx context.Context, outputPath string) error {
	log.Println("Starting session export...")

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	backup, err := s.ExportToWriter(ctx, file)
	if err != nil {
		return err
	}

	log.Printf("Session exported successfully to %s", outputPath)
	log.Printf("Exported: %d learning events, %d quiz answers, %d practice answers",
		len(backup.Session.Learning), len(backup.Session.QuizAnswers), len(backup.Session.PracticeAnswers))
	return nil
}

// ExportToWriter writes a backup of the session document to w
func (s *BackupService) ExportToWriter(ctx context.Context, w io.Writer) (*BackupData, error) {
	state, err := s.sessions.View(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	backup := &BackupData{
		Version:    BackupVersion,
		ExportedAt: time.Now().UTC(),
		Backend:    s.sessions.Store().Name(),
		Session:    state,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(backup); err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return backup, nil
}

// Import restores the session document from a backup file
func (s *BackupService) Import(ctx context.Context, inputPath string) error {
	log.Printf("Starting session import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(ctx, file)
}

// ImportFromReader restores the session document from a backup reader
func (s *BackupService) ImportFromReader(ctx context.Context, reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Session == nil {
		return errors.New("backup contains no session document")
	}

	log.Printf("Backup version: %s, exported at: %s from %s", backup.Version, backup.ExportedAt, backup.Backend)

	if err := s.sessions.Replace(ctx, backup.Session); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	log.Println("Session import completed successfully")
	return nil
}

// Reset deletes the session document
func (s *BackupService) Reset(ctx context.Context) error {
	if err := s.sessions.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset session: %w", err)
	}
	log.Println("Session document deleted")
	return nil
}
