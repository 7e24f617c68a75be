// Package receipts holds the persistence-facing half of the pipeline:
// duplicate detection against already-stored records and materializing a
// validated extraction into one row per category line.
package receipts

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/expenselens/expense-tracker/internal/entity"
)

// ReceiptStore is the slice of the repository this package needs.
type ReceiptStore interface {
	// ListByDay returns all of a user's records whose receipt date falls
	// inside [dayStart, dayEnd].
	ListByDay(ctx context.Context, userID uuid.UUID, dayStart, dayEnd time.Time) ([]*entity.Receipt, error)
	// CreateBatch persists the given records and returns them with
	// storage-assigned timestamps.
	CreateBatch(ctx context.Context, recs []*entity.Receipt) ([]*entity.Receipt, error)
}

// NormalizeStoreName produces the comparison form of a store name: upper
// case, single internal spaces, leading "THE " dropped. This form is
// never persisted; stored names stay exactly as extracted.
func NormalizeStoreName(name string) string {
	s := strings.ToUpper(strings.TrimSpace(name))
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimPrefix(s, "THE ")
}
