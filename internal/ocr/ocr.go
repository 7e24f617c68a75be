// Package ocr extracts text from receipt images and PDFs using external
// tools (tesseract, pdftotext, pdftoppm) behind a stubable Runner.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/expenselens/expense-tracker/constants"
)

// ErrUnsupportedFormat rejects anything outside {jpeg, png, pdf} before
// any tool runs. Never retried.
var ErrUnsupportedFormat = errors.New("unsupported file format")

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "eng"
	DPI           int    // rasterization DPI for scanned PDFs, default 300
	MaxPages      int    // 0 = no limit

	TessdataDir         string
	EnableTSVConfidence bool

	PSM int // e.g., 6 is good for uniform block of text
	OEM int // 1 = LSTM; leave 0 to use default

	// RetryDelay sits between the two attempts at a transient tool
	// failure. Default 2s.
	RetryDelay time.Duration
}

type ExtractionResult struct {
	Text       string
	Pages      int
	SourceType string // constants.PDF | constants.IMAGE
	Method     string // "pdf-text" | "pdf-ocr" | "image-ocr"
	Language   string
	Duration   time.Duration
	Warnings   []string
	Confidence float64 // 0..1
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	return &Extractor{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// Extract picks a strategy based on file extension. Transient tool
// failures get exactly one retry after a fixed delay; a rejected format
// fails immediately.
func (e *Extractor) Extract(ctx context.Context, path string) (ExtractionResult, error) {
	ext := constants.NormalizeExt(filepath.Ext(path))
	format := constants.MapExtToFormat(ext)
	if format == "" {
		e.logger.Error("ocr.unsupported_extension", "extension", ext, "path", path)
		return ExtractionResult{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	res, err := e.extractOnce(ctx, path, format)
	if err == nil {
		return res, nil
	}

	e.logger.Warn("ocr.retrying", "path", path, "error", err, "delay", e.cfg.RetryDelay)
	select {
	case <-ctx.Done():
		return res, ctx.Err()
	case <-time.After(e.cfg.RetryDelay):
	}
	return e.extractOnce(ctx, path, format)
}

func (e *Extractor) extractOnce(ctx context.Context, path, format string) (ExtractionResult, error) {
	start := time.Now()
	e.logger.Debug("ocr.extract.start", "path", path, "format", format)

	var res ExtractionResult
	var err error
	switch format {
	case constants.PDF:
		res, err = e.extractPDF(ctx, path)
	case constants.IMAGE:
		res, err = e.extractImage(ctx, path)
	}
	res.Duration = time.Since(start)
	if err != nil {
		return res, err
	}

	e.logger.Debug("ocr.extract.ok",
		"path", path,
		"method", res.Method,
		"pages", res.Pages,
		"confidence", res.Confidence,
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
