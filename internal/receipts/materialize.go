package receipts

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/expenselens/expense-tracker/constants"
	"github.com/expenselens/expense-tracker/internal/entity"
	"github.com/expenselens/expense-tracker/internal/extraction"
)

// DuplicateError is a business-rule rejection, not a system fault: the
// user already saved this receipt. No rows are created.
type DuplicateError struct {
	Existing *entity.Receipt
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate receipt: matches existing record %s (%s, %s)",
		e.Existing.ID, e.Existing.StoreName, e.Existing.ReceiptDate.Format("2006-01-02"))
}

// Materializer turns a validated extraction into persisted records, one
// per category line of the physical receipt.
type Materializer struct {
	store    ReceiptStore
	detector *Detector
	logger   *slog.Logger
}

func NewMaterializer(store ReceiptStore, detector *Detector, logger *slog.Logger) *Materializer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Materializer{store: store, detector: detector, logger: logger}
}

// Materialize runs the duplicate check once for the whole receipt, then
// creates one record per category entry. On a duplicate it fails hard
// with *DuplicateError before inserting anything: creating some category
// rows and not others would leave an inconsistent aggregate.
//
// ocrConfidence is nil when the OCR provider reported none; a present
// value below the review threshold flags every row for review, as does
// the review flag already carried by the extraction.
func (m *Materializer) Materialize(ctx context.Context, userID uuid.UUID, v *extraction.ValidatedExtraction, ocrConfidence *float64) ([]*entity.Receipt, error) {
	dup, err := m.detector.FindDuplicate(ctx, userID, v.StoreName, v.ReceiptDate, v.Total)
	if err != nil {
		return nil, fmt.Errorf("duplicate check: %w", err)
	}
	if dup != nil {
		return nil, &DuplicateError{Existing: dup}
	}

	needsReview := v.NeedsReview
	if ocrConfidence != nil && *ocrConfidence < constants.ImageConfidenceThreshold {
		needsReview = true
	}
	status := constants.StatusCompleted
	if needsReview {
		status = constants.StatusNeedsReview
	}

	recs := make([]*entity.Receipt, 0, len(v.Categories))
	for _, c := range v.Categories {
		subtotal, tax := c.Subtotal, c.Tax
		if len(v.Categories) == 1 {
			// single-category receipt: the receipt-level amounts apply
			if subtotal == nil {
				subtotal = v.Subtotal
			}
			if tax == nil {
				tax = v.Tax
			}
		}
		recs = append(recs, &entity.Receipt{
			ID:            uuid.New(),
			UserID:        userID,
			StoreName:     v.StoreName,
			ReceiptDate:   v.ReceiptDate,
			Category:      c.Category,
			PaymentMethod: v.PaymentMethod,
			Subtotal:      subtotal,
			Tax:           tax,
			Total:         c.Total,
			Status:        status,
			NeedsReview:   needsReview,
		})
	}

	saved, err := m.store.CreateBatch(ctx, recs)
	if err != nil {
		return nil, fmt.Errorf("create receipt rows: %w", err)
	}

	m.logger.Info("receipts.materialized",
		"user_id", userID,
		"store", v.StoreName,
		"date", v.ReceiptDate.Format("2006-01-02"),
		"rows", len(saved),
		"status", string(status),
		"needs_review", needsReview,
	)
	return saved, nil
}
