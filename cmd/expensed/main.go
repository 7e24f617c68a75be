// expensed watches a receipts directory, runs every new file through the
// OCR -> LLM -> validate -> persist pipeline, and keeps running until
// interrupted.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/expenselens/expense-tracker/internal/common"
	"github.com/expenselens/expense-tracker/internal/core"
	coreasync "github.com/expenselens/expense-tracker/internal/core/async"
	"github.com/expenselens/expense-tracker/internal/extraction"
	"github.com/expenselens/expense-tracker/internal/ingest"
	"github.com/expenselens/expense-tracker/internal/llm"
	"github.com/expenselens/expense-tracker/internal/llm/gemini"
	"github.com/expenselens/expense-tracker/internal/llm/openai"
	"github.com/expenselens/expense-tracker/internal/ocr"
	"github.com/expenselens/expense-tracker/internal/receipts"
	repo "github.com/expenselens/expense-tracker/internal/repository"
	"github.com/expenselens/expense-tracker/internal/services/ingestion"
	"github.com/expenselens/expense-tracker/internal/services/users"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	entc, pool, err := repo.Open(ctx, repo.Config{
		DSN:              cfg.Database.DSN,
		SQLitePath:       cfg.Database.SQLitePath,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer repo.Close(entc, pool, logger)

	if err := repo.HealthCheck(ctx, pool, 5*time.Second, logger); err != nil {
		logger.Error("database health check failed", "error", err)
		os.Exit(1)
	}
	if cfg.Database.SQLitePath != "" {
		if err := repo.Migrate(ctx, entc, logger); err != nil {
			os.Exit(1)
		}
	}

	usersRepo := repo.NewUserRepository(entc, logger)
	receiptsRepo := repo.NewReceiptRepository(entc, logger)
	filesRepo := repo.NewReceiptFileRepository(entc, logger)

	userSvc := users.NewService(usersRepo, logger)
	owner, err := userSvc.GetOrCreate(ctx, cfg.Ingest.DefaultUser)
	if err != nil {
		logger.Error("failed to resolve user", "name", cfg.Ingest.DefaultUser, "error", err)
		os.Exit(1)
	}

	textExtractor := ocr.NewExtractor(ocr.Config{
		TessdataDir:         cfg.OCR.TessdataDir,
		TesseractLang:       cfg.OCR.TesseractLang,
		DPI:                 cfg.OCR.DPI,
		MaxPages:            cfg.OCR.MaxPages,
		EnableTSVConfidence: cfg.OCR.EnableTSVConfidence,
	}, logger)

	var extractor llm.ReceiptExtractor
	switch cfg.LLM.Provider {
	case "gemini":
		extractor, err = gemini.NewClient(ctx, cfg.LLM.Model, logger)
		if err != nil {
			logger.Error("failed to create gemini client", "error", err)
			os.Exit(1)
		}
	default:
		extractor = openai.NewClient(openai.Config{
			Model:       cfg.LLM.Model,
			APIKey:      cfg.LLM.APIKey,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
	}

	validator := extraction.NewValidator(logger)
	detector := receipts.NewDetector(receiptsRepo, logger)
	materializer := receipts.NewMaterializer(receiptsRepo, detector, logger)
	processor := core.NewProcessor(logger, textExtractor, extractor, validator, materializer)

	queue := coreasync.NewProcessorQueue(processor, logger,
		coreasync.WithWorkers(cfg.Ingest.Workers),
		coreasync.WithQueueSize(cfg.Ingest.QueueSize),
		coreasync.WithProcessTimeout(cfg.Ingest.ProcessLimit),
	)

	ingestor := ingest.NewFSIngestor(usersRepo, filesRepo, logger)
	ingestSvc := ingestion.NewService(ingestor, usersRepo, queue, logger)

	events, watchErrs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       []string{cfg.Ingest.WatchDir},
		InitialScan: true,
		Debounce:    500 * time.Millisecond,
	}, logger)
	if err != nil {
		logger.Error("failed to start watcher", "dir", cfg.Ingest.WatchDir, "error", err)
		os.Exit(1)
	}

	logger.Info("expensed running",
		"watch_dir", cfg.Ingest.WatchDir,
		"user", owner.Name,
		"workers", cfg.Ingest.Workers,
		"llm_provider", cfg.LLM.Provider,
	)

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			queue.Shutdown(shutdownCtx)
			cancel()
			return
		case err, ok := <-watchErrs:
			if ok && err != nil {
				logger.Error("watcher error", "error", err)
			}
		case path, ok := <-events:
			if !ok {
				continue
			}
			if _, err := ingestSvc.IngestFile(ctx, ingestion.FileIngestRequest{
				UserID:         owner.ID.String(),
				Path:           path,
				SkipDuplicates: true,
			}); err != nil {
				logger.Error("ingest failed", "path", path, "error", err)
			}
		}
	}
}
