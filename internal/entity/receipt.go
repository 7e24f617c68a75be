package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/expenselens/expense-tracker/constants"
)

// Receipt represents one persisted category line of a physical receipt.
// A receipt with three category breakdowns is stored as three rows sharing
// (user_id, store_name, receipt_date); that grouping is derived at read
// time, never stored as a foreign key.
type Receipt struct {
	ID            uuid.UUID               `json:"id"`
	UserID        uuid.UUID               `json:"user_id"`
	StoreName     string                  `json:"store_name"`
	ReceiptDate   time.Time               `json:"receipt_date"` // date-only, midnight UTC
	Category      string                  `json:"category"`     // free-form label, uppercased
	PaymentMethod *constants.PaymentMethod `json:"payment_method,omitempty"`
	Subtotal      *float64                `json:"subtotal,omitempty"`
	Tax           *float64                `json:"tax,omitempty"`
	Total         float64                 `json:"total"`
	Status        constants.ReceiptStatus `json:"status"`
	NeedsReview   bool                    `json:"needs_review"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}
