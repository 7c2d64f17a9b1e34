// Package audio generates pronunciation clips for radicals using a
// text-to-speech endpoint and keeps them in the static audio directory.
package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"radicaltutor/internal/models"
)

// DefaultBaseURL is the Google Translate TTS endpoint (free, no API key needed)
const DefaultBaseURL = "https://translate.google.com/translate_tts"

const ttsRequestTimeout = 10 * time.Second

// URLPrefix is where the generated files are served from
const URLPrefix = "/static/audio/"

// TTSService provides text-to-speech functionality
type TTSService struct {
	audioDir string
	lang     string
	baseURL  string
	client   *http.Client
}

// Option configures a TTSService
type Option func(*TTSService)

// WithBaseURL points the service at a different TTS endpoint
func WithBaseURL(baseURL string) Option {
	return func(s *TTSService) { s.baseURL = baseURL }
}

// WithHTTPClient replaces the HTTP client used for fetching audio
func WithHTTPClient(client *http.Client) Option {
	return func(s *TTSService) { s.client = client }
}

// NewTTSService creates a new TTS service writing into audioDir
func NewTTSService(audioDir, lang string, opts ...Option) *TTSService {
	s := &TTSService{
		audioDir: audioDir,
		lang:     lang,
		baseURL:  DefaultBaseURL,
		client:   &http.Client{Timeout: ttsRequestTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FileName returns the file name used for a radical glyph.
// Code points keep the name ASCII regardless of the glyph.
func FileName(glyph string) string {
	var b strings.Builder
	b.WriteString("radical")
	for _, r := range strings.TrimSpace(glyph) {
		fmt.Fprintf(&b, "_%x", r)
	}
	b.WriteString(".mp3")
	return b.String()
}

// URL returns the public path of a glyph's clip, or "" when it has not been generated
func (s *TTSService) URL(glyph string) string {
	if !s.Exists(glyph) {
		return ""
	}
	return URLPrefix + FileName(glyph)
}

// Exists reports whether the clip for glyph is on disk
func (s *TTSService) Exists(glyph string) bool {
	_, err := os.Stat(filepath.Join(s.audioDir, FileName(glyph)))
	return err == nil
}

// GenerateAudioFile converts a glyph to speech and saves it as MP3.
// Returns the filename (not full path) on success.
func (s *TTSService) GenerateAudioFile(ctx context.Context, glyph string) (string, error) {
	glyph = strings.TrimSpace(glyph)
	if glyph == "" {
		return "", errors.New("empty text")
	}

	filename := FileName(glyph)
	path := filepath.Join(s.audioDir, filename)

	// Existing clips are reused
	if _, err := os.Stat(path); err == nil {
		return filename, nil
	}

	if err := os.MkdirAll(s.audioDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create audio directory: %w", err)
	}

	if err := s.fetch(ctx, glyph, path); err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}

	return filename, nil
}

// fetch downloads the spoken text into outputPath
func (s *TTSService) fetch(ctx context.Context, text, outputPath string) error {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", s.lang)
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len([]rune(text))))

	ctx, cancel := context.WithTimeout(ctx, ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Set user agent (required by Google)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	// Write to a temp file first so a failed download never leaves a partial clip
	tmp, err := os.CreateTemp(filepath.Dir(outputPath), ".audio-*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	return os.Rename(tmp.Name(), outputPath)
}

// GenerateMissing generates clips for every radical that has none yet.
// Failures are collected and generation continues with the next radical.
func (s *TTSService) GenerateMissing(ctx context.Context, radicals []models.Radical) (int, error) {
	var (
		generated int
		errs      []error
	)
	for _, radical := range radicals {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		if strings.TrimSpace(radical.Radical) == "" || s.Exists(radical.Radical) {
			continue
		}
		if _, err := s.GenerateAudioFile(ctx, radical.Radical); err != nil {
			errs = append(errs, fmt.Errorf("radical %q: %w", radical.Radical, err))
			continue
		}
		generated++
	}
	return generated, errors.Join(errs...)
}

// CleanupOrphaned removes clips that no longer belong to any radical
func (s *TTSService) CleanupOrphaned(radicals []models.Radical) (int, error) {
	files, err := s.GetAllAudioFiles()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}

	keep := make(map[string]bool, len(radicals))
	for _, radical := range radicals {
		keep[FileName(radical.Radical)] = true
	}

	removed := 0
	for _, file := range files {
		if keep[file] || !strings.HasPrefix(file, "radical") {
			continue
		}
		if err := s.DeleteAudioFile(file); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// DeleteAudioFile removes an audio file
func (s *TTSService) DeleteAudioFile(filename string) error {
	err := os.Remove(filepath.Join(s.audioDir, filename))
	if errors.Is(err, os.ErrNotExist) {
		return nil // Already deleted
	}
	return err
}

// GetAllAudioFiles returns a list of all MP3 files in the audio directory
func (s *TTSService) GetAllAudioFiles() ([]string, error) {
	files, err := os.ReadDir(s.audioDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio directory: %w", err)
	}

	var audioFiles []string
	for _, file := range files {
		if !file.IsDir() && filepath.Ext(file.Name()) == ".mp3" {
			audioFiles = append(audioFiles, file.Name())
		}
	}

	return audioFiles, nil
}
