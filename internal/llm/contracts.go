package llm

import (
	"context"

	"github.com/expenselens/expense-tracker/internal/extraction"
)

// ExtractRequest carries everything a provider needs to turn OCR text
// into a structured extraction.
type ExtractRequest struct {
	OCRText       string
	OCRConfidence float64 // 0..1; 0 when the OCR step reported none
	FilenameHint  string
}

// ReceiptExtractor is the interface the pipeline depends on. Providers
// return the decoded extraction plus the raw (sanitized) JSON for audit
// logging; the raw bytes are returned even on failure when available.
type ReceiptExtractor interface {
	ExtractReceipt(ctx context.Context, req ExtractRequest) (*extraction.RawExtraction, []byte, error)
}
