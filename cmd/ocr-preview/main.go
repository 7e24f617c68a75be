// ocr-preview runs the OCR stage against a single file and prints the
// decoded text and confidence, without touching a database or an LLM.
// Useful for checking tesseract/poppler setup before running the
// pipeline.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/expenselens/expense-tracker/internal/ocr"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "ocr-preview <file>")
		os.Exit(2)
	}
	path := os.Args[1]

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	extractor := ocr.NewExtractor(ocr.Config{
		TessdataDir:         os.Getenv("TESSDATA_PREFIX"),
		EnableTSVConfidence: true,
	}, logger)

	res, err := extractor.Extract(ctx, path)
	if err != nil {
		logger.Error("extraction failed", "path", path, "error", err)
		os.Exit(1)
	}

	logger.Info("extraction complete",
		"method", res.Method,
		"pages", res.Pages,
		"confidence", res.Confidence,
		"warnings", len(res.Warnings),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	fmt.Println(res.Text)
}
