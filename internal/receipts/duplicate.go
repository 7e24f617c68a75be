package receipts

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/expenselens/expense-tracker/internal/entity"
)

// DuplicateTolerance is the absolute drift allowed between a candidate
// total and the summed total of an existing same-day, same-store group.
// Wider than the extraction reconciliation tolerance: two independent
// OCR+LLM passes over the same paper receipt round differently.
const DuplicateTolerance = 0.05

// Detector answers "has this user already saved this receipt?".
type Detector struct {
	store  ReceiptStore
	logger *slog.Logger
}

func NewDetector(store ReceiptStore, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{store: store, logger: logger}
}

// FindDuplicate looks for an existing record matching (user, store, date,
// total). Existing rows are grouped by their own normalized store name
// and each group's totals are summed before comparing — a stored receipt
// that was split into several category rows must be matched against its
// aggregate, not row by row. Returns the first member of the matching
// group, or nil when there is no duplicate.
func (d *Detector) FindDuplicate(ctx context.Context, userID uuid.UUID, storeName string, date time.Time, total float64) (*entity.Receipt, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24*time.Hour - time.Millisecond)

	existing, err := d.store.ListByDay(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("list same-day receipts: %w", err)
	}
	if len(existing) == 0 {
		return nil, nil
	}

	want := NormalizeStoreName(storeName)

	// Group by normalized store name, preserving first-seen order.
	type group struct {
		first *entity.Receipt
		sum   float64
	}
	var order []string
	groups := make(map[string]*group)
	for _, rec := range existing {
		key := NormalizeStoreName(rec.StoreName)
		g, ok := groups[key]
		if !ok {
			g = &group{first: rec}
			groups[key] = g
			order = append(order, key)
		}
		g.sum += rec.Total
	}

	for _, key := range order {
		if key != want {
			continue
		}
		g := groups[key]
		if math.Abs(g.sum-total) < DuplicateTolerance {
			d.logger.Info("receipts.duplicate_found",
				"user_id", userID,
				"store", want,
				"date", dayStart.Format("2006-01-02"),
				"group_sum", g.sum,
				"candidate_total", total,
			)
			return g.first, nil
		}
	}
	return nil, nil
}
