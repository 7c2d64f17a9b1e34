package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"radicaltutor/internal/audio"
	"radicaltutor/internal/config"
	"radicaltutor/internal/content"
	"radicaltutor/internal/handlers"
	"radicaltutor/internal/metrics"
	"radicaltutor/internal/security"
	"radicaltutor/internal/service"
	"radicaltutor/internal/session"
	"radicaltutor/internal/templates"
)

func main() {
	// Optional .env file for local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Content catalog
	catalog := content.NewStore(cfg.CatalogPath)
	if cfg.WatchCatalog {
		if err := catalog.Watch(ctx); err != nil {
			log.Printf("Warning: catalog hot reload disabled: %v", err)
		}
	}

	// Session document storage
	store, closer, err := session.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open session store: %v", err)
	}
	defer closer.Close()
	log.Printf("Session store: %s", store.Name())

	// Load templates
	tmpl, err := templates.Load(cfg.TemplatesPath)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}
	log.Println("Templates loaded successfully")

	// Pronunciation audio
	var audioSource handlers.AudioSource
	if cfg.AudioEnabled {
		tts := audio.NewTTSService(filepath.Join(cfg.StaticFilesPath, "audio"), cfg.AudioLang)
		audioSource = tts
		go generateAudio(ctx, tts, catalog)
	}

	// Initialize services and handlers
	tutorService := service.NewTutorService(catalog, session.NewManager(store), cfg.LessonParts)
	tutorHandler := handlers.NewTutorHandler(tutorService, tmpl, audioSource)

	limiter := security.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	go limiter.Cleanup(ctx, time.Hour)

	// Setup routes
	mux := http.NewServeMux()
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /healthz", handlers.Healthz)
	tutorHandler.Routes(mux, limiter.Limit)

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	log.Println("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}

// generateAudio fills in missing pronunciation clips and removes stale ones
func generateAudio(ctx context.Context, tts *audio.TTSService, catalog *content.Store) {
	radicals := catalog.Catalog().Radicals

	generated, err := tts.GenerateMissing(ctx, radicals)
	if err != nil {
		log.Printf("Warning: Failed to generate some audio files: %v", err)
	}
	if generated > 0 {
		log.Printf("Generated %d audio files", generated)
	}

	removed, err := tts.CleanupOrphaned(radicals)
	if err != nil {
		log.Printf("Warning: Failed to cleanup orphaned audio files: %v", err)
	}
	if removed > 0 {
		log.Printf("Removed %d orphaned audio files", removed)
	}
}
