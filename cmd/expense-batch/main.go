// expense-batch processes a directory of receipt files in one pass and
// writes the results to an XLSX workbook. With -inmem the whole run is
// self-contained: nothing survives but the spreadsheet.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/expenselens/expense-tracker/internal/common"
	"github.com/expenselens/expense-tracker/internal/core"
	"github.com/expenselens/expense-tracker/internal/export"
	"github.com/expenselens/expense-tracker/internal/extraction"
	"github.com/expenselens/expense-tracker/internal/ingest"
	"github.com/expenselens/expense-tracker/internal/llm"
	"github.com/expenselens/expense-tracker/internal/llm/gemini"
	"github.com/expenselens/expense-tracker/internal/llm/openai"
	"github.com/expenselens/expense-tracker/internal/ocr"
	"github.com/expenselens/expense-tracker/internal/receipts"
	repo "github.com/expenselens/expense-tracker/internal/repository"
	"github.com/expenselens/expense-tracker/internal/services/users"
)

func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		inmem    = flag.Bool("inmem", false, "use in-memory SQLite database")
		dir      = flag.String("dir", "", "directory to process receipts from (required)")
		out      = flag.String("out", "", "output XLSX file path (optional, defaults to parent directory)")
		fromStr  = flag.String("from", "", "from date YYYY-MM-DD")
		toStr    = flag.String("to", "", "to date YYYY-MM-DD")
		userName = flag.String("user", "default", "owner name for the processed receipts")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "expenses.xlsx")
	}

	var from, to *time.Time
	if *fromStr != "" {
		parsed, err := time.Parse("2006-01-02", *fromStr)
		if err != nil {
			printError("Error: invalid --from date format, use YYYY-MM-DD: %v\n", err)
			os.Exit(1)
		}
		from = &parsed
	}
	if *toStr != "" {
		parsed, err := time.Parse("2006-01-02", *toStr)
		if err != nil {
			printError("Error: invalid --to date format, use YYYY-MM-DD: %v\n", err)
			os.Exit(1)
		}
		to = &parsed
	}

	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()
	cfg := common.LoadConfig()

	dbCfg := repo.Config{
		DSN:              cfg.Database.DSN,
		SQLitePath:       cfg.Database.SQLitePath,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}
	if *inmem {
		dbCfg.SQLitePath = ":memory:"
	}
	if dbCfg.DSN == "" && dbCfg.SQLitePath == "" {
		printError("Error: set DB_URL or SQLITE_PATH, or pass --inmem\n")
		os.Exit(1)
	}

	entc, pool, err := repo.Open(ctx, dbCfg, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer repo.Close(entc, pool, logger)

	if dbCfg.SQLitePath != "" {
		if err := repo.Migrate(ctx, entc, logger); err != nil {
			os.Exit(1)
		}
	}

	usersRepo := repo.NewUserRepository(entc, logger)
	receiptsRepo := repo.NewReceiptRepository(entc, logger)
	filesRepo := repo.NewReceiptFileRepository(entc, logger)

	owner, err := users.NewService(usersRepo, logger).GetOrCreate(ctx, *userName)
	if err != nil {
		logger.Error("failed to resolve user", "name", *userName, "error", err)
		os.Exit(1)
	}
	logger.Info("using user", "id", owner.ID, "name", owner.Name)

	textExtractor := ocr.NewExtractor(ocr.Config{
		TessdataDir:         cfg.OCR.TessdataDir,
		TesseractLang:       cfg.OCR.TesseractLang,
		DPI:                 cfg.OCR.DPI,
		MaxPages:            cfg.OCR.MaxPages,
		EnableTSVConfidence: cfg.OCR.EnableTSVConfidence,
	}, logger)

	var receiptExtractor llm.ReceiptExtractor
	switch cfg.LLM.Provider {
	case "gemini":
		receiptExtractor, err = gemini.NewClient(ctx, cfg.LLM.Model, logger)
		if err != nil {
			logger.Error("failed to create gemini client", "error", err)
			os.Exit(1)
		}
	default:
		receiptExtractor = openai.NewClient(openai.Config{
			Model:       cfg.LLM.Model,
			APIKey:      cfg.LLM.APIKey,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
	}

	validator := extraction.NewValidator(logger)
	detector := receipts.NewDetector(receiptsRepo, logger)
	materializer := receipts.NewMaterializer(receiptsRepo, detector, logger)
	processor := core.NewProcessor(logger, textExtractor, receiptExtractor, validator, materializer)

	ingestor := ingest.NewFSIngestor(usersRepo, filesRepo, logger)

	logger.Info("starting ingestion", "dir", *dir, "user", owner.ID)
	results, stats, err := ingestor.IngestDirectory(ctx, owner.ID, *dir, true)
	if err != nil {
		logger.Error("failed to ingest directory", "error", err)
		os.Exit(1)
	}
	logger.Info("ingestion complete",
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"deduplicated", stats.Deduplicated,
	)

	processed := 0
	duplicates := 0
	failures := 0
	for _, r := range results {
		if r.Err != "" || r.Deduplicated {
			continue
		}
		if _, err := processor.ProcessFile(ctx, owner.ID, r.SourcePath); err != nil {
			var dup *receipts.DuplicateError
			if errors.As(err, &dup) {
				logger.Info("skipped duplicate receipt", "path", r.SourcePath, "existing_id", dup.Existing.ID)
				duplicates++
				continue
			}
			logger.Error("failed to process file", "path", r.SourcePath, "error", err)
			failures++
			continue
		}
		processed++
	}

	logger.Info("exporting to XLSX", "output", *out)
	xlsxBytes, err := export.NewService(receiptsRepo, logger).ExportReceiptsXLSX(ctx, owner.ID, from, to)
	if err != nil {
		logger.Error("failed to export receipts", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, xlsxBytes, 0o644); err != nil {
		logger.Error("failed to write output file", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Files ingested: %d\n", stats.Succeeded)
	fmt.Printf("- Files processed: %d\n", processed)
	fmt.Printf("- Duplicates rejected: %d\n", duplicates)
	fmt.Printf("- Failures: %d\n", failures)
	fmt.Printf("- Output: %s\n", *out)
}
