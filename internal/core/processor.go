// Package core wires the receipt pipeline end to end: OCR text extract,
// LLM field extraction, validation, and materialization into storage.
package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/expenselens/expense-tracker/constants"
	"github.com/expenselens/expense-tracker/internal/common"
	"github.com/expenselens/expense-tracker/internal/entity"
	"github.com/expenselens/expense-tracker/internal/extraction"
	"github.com/expenselens/expense-tracker/internal/llm"
	"github.com/expenselens/expense-tracker/internal/ocr"
	"github.com/expenselens/expense-tracker/internal/receipts"
)

// TextExtractor is the slice of the OCR package the pipeline needs.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (ocr.ExtractionResult, error)
}

// ReceiptMaterializer persists a validated extraction.
type ReceiptMaterializer interface {
	Materialize(ctx context.Context, userID uuid.UUID, v *extraction.ValidatedExtraction, ocrConfidence *float64) ([]*entity.Receipt, error)
}

// Processor coordinates OCR, LLM parse, validation, and persistence for
// one source file. Any stage failing means zero rows are written.
type Processor struct {
	logger       *slog.Logger
	ocr          TextExtractor
	llm          llm.ReceiptExtractor
	validator    *extraction.Validator
	materializer ReceiptMaterializer
}

func NewProcessor(
	logger *slog.Logger,
	textExtractor TextExtractor,
	receiptExtractor llm.ReceiptExtractor,
	validator *extraction.Validator,
	materializer ReceiptMaterializer,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger:       logger,
		ocr:          textExtractor,
		llm:          receiptExtractor,
		validator:    validator,
		materializer: materializer,
	}
}

// ProcessFile runs the full pipeline for one file and returns the
// persisted rows. A *receipts.DuplicateError comes back unwrapped so
// callers can treat it as a user-facing rejection rather than a fault.
func (p *Processor) ProcessFile(ctx context.Context, userID uuid.UUID, path string) ([]*entity.Receipt, error) {
	logger := p.logger
	if tid := common.RequestIDFromContext(ctx); tid != "" {
		logger = logger.With("trace_id", tid)
	}

	ocrRes, err := p.ocr.Extract(ctx, path)
	if err != nil {
		logger.Error("processor.ocr.failed", "user_id", userID, "path", path, "error", err)
		return nil, fmt.Errorf("ocr: %w", err)
	}
	logger.Debug("processor.ocr.ok",
		"path", path,
		"method", ocrRes.Method,
		"pages", ocrRes.Pages,
		"confidence", ocrRes.Confidence,
	)

	raw, rawJSON, err := p.llm.ExtractReceipt(ctx, llm.ExtractRequest{
		OCRText:       ocrRes.Text,
		OCRConfidence: ocrRes.Confidence,
		FilenameHint:  filepath.Base(path),
	})
	if err != nil {
		logger.Error("processor.extract.failed", "user_id", userID, "path", path, "error", err)
		return nil, fmt.Errorf("llm extract: %w", err)
	}
	logger.Debug("processor.extract.ok", "path", path, "raw_bytes", len(rawJSON))

	validated, err := p.validator.Validate(raw)
	if err != nil {
		logger.Warn("processor.validate.rejected", "user_id", userID, "path", path, "error", err)
		return nil, fmt.Errorf("validate: %w", err)
	}

	// The review threshold applies to scanned images only: a PDF text
	// layer is exact and its heuristic score means nothing.
	var conf *float64
	if ocrRes.SourceType == constants.IMAGE {
		c := ocrRes.Confidence
		conf = &c
	}

	rows, err := p.materializer.Materialize(ctx, userID, validated, conf)
	if err != nil {
		var dup *receipts.DuplicateError
		if errors.As(err, &dup) {
			logger.Info("processor.duplicate_rejected",
				"user_id", userID,
				"path", path,
				"existing_id", dup.Existing.ID,
			)
			return nil, err
		}
		logger.Error("processor.materialize.failed", "user_id", userID, "path", path, "error", err)
		return nil, fmt.Errorf("materialize: %w", err)
	}

	logger.Info("processor.done",
		"user_id", userID,
		"path", path,
		"store", validated.StoreName,
		"rows", len(rows),
	)
	return rows, nil
}
