package main

import (
	"context"
	_ "embed"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"humata-ai/internal/config"
	"humata-ai/internal/extract"
	"humata-ai/internal/http"
	"humata-ai/internal/llm"
	"humata-ai/internal/ocr"
	"humata-ai/internal/retry"
	"humata-ai/internal/service"
	"humata-ai/internal/storage"
	"humata-ai/internal/vision"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API forwards Arabic chat messages and uploaded files to a reasoning model.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Humata AI API
//   description: |
//     Chat orchestration API. Text is extracted from attached PDFs, Word documents,
//     text files and images before the conversation is sent to the reasoning model.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

//go:embed index.html
var indexHTML []byte

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	if cfg.ReasoningAPIKey == "" {
		slog.Warn("GROQ_API_KEY is not set; chat requests will fail until it is configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Image strategy: remote vision model when a key is configured, local OCR otherwise
	var imageExtractor extract.ImageTextExtractor
	if cfg.VisionEnabled() {
		visionClient := vision.NewClient(cfg.VisionBaseURL, cfg.VisionAPIKey, cfg.VisionModel)
		imageExtractor = extract.NewVisionImageExtractor(visionClient, retry.Policy{
			MaxRetries: cfg.VisionMaxRetries,
			Backoff:    retry.Linear(cfg.VisionRetryStep),
		})
		slog.Info("Image strategy selected", "strategy", extract.StrategyVision, "model", cfg.VisionModel)
	} else {
		imageExtractor = extract.NewOCRImageExtractor(ocr.NewTesseract(cfg.OCRLanguages))
		slog.Info("Image strategy selected", "strategy", extract.StrategyOCR, "languages", cfg.OCRLanguages)
	}

	var dispatcherOpts []extract.Option
	deps := &http.Deps{
		ReasoningConfigured: cfg.ReasoningAPIKey != "",
		ImageStrategy:       imageExtractor.Strategy(),
		UploadDir:           cfg.UploadDir,
		MaxUploadBytes:      cfg.MaxUploadBytes,
		IndexHTML:           indexHTML,
	}

	// Optional extraction cache
	if cfg.CacheEnabled() {
		db, err := storage.New(cfg.ExtractionCachePath)
		if err != nil {
			log.Fatalf("Failed to open extraction cache: %v", err)
		}
		defer func() {
			_ = db.Close()
		}()

		if err := storage.Migrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		slog.Info("Extraction cache initialized", "path", cfg.ExtractionCachePath)

		extractionRepo := storage.NewExtractionRepo(db)
		dispatcherOpts = append(dispatcherOpts, extract.WithCache(extractionRepo))
		deps.Cache = extractionRepo

		// Prune stale entries in background after startup
		go func() {
			cutoff := time.Now().Add(-cfg.ExtractionCacheMaxAge)
			removed, err := extractionRepo.PruneOlderThan(ctx, cutoff)
			if err != nil {
				slog.Error("Extraction cache pruning failed", "error", err)
				return
			}
			slog.Info("Extraction cache pruned", "removed", removed, "max_age", cfg.ExtractionCacheMaxAge)
		}()
	}

	dispatcher := extract.NewDispatcher(imageExtractor, dispatcherOpts...)

	// Create reasoning client (external service layer)
	reasoningClient := llm.NewClient(cfg.ReasoningBaseURL, cfg.ReasoningAPIKey, cfg.ReasoningModel)

	deps.ChatService = service.NewChatService(reasoningClient, dispatcher, service.ChatSettings{
		APIKey:           cfg.ReasoningAPIKey,
		Model:            cfg.ReasoningModel,
		MaxTokens:        cfg.ReasoningMaxTokens,
		Temperature:      cfg.ReasoningTemperature,
		Retry:            service.DefaultChatRetryPolicy(cfg.ChatMaxRetries, cfg.ChatRetryDelay),
		PlainTextReplies: cfg.PlainTextReplies,
	})
	deps.FileService = service.NewFileService()
	deps.StatusService = service.NewStatusService(cfg.ReasoningAPIKey, cfg.VisionAPIKey)

	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	server := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		slog.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("API server shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting API server", "addr", addr)
	slog.Debug("Reasoning configuration", "base_url", cfg.ReasoningBaseURL, "model", cfg.ReasoningModel)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		log.Fatalf("API server failed to start: %v", err)
	}
	<-shutdownDone
}
