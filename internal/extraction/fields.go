// Package extraction turns the LLM's raw JSON into a validated,
// self-consistent receipt extraction. The LLM response is untrusted
// input: it goes through a sanitize pass, a JSON-Schema gate, and the
// ordered field/reconciliation checks in Validate before any field is
// believed.
package extraction

import (
	"time"

	"github.com/expenselens/expense-tracker/constants"
)

// RawExtraction is the JSON contract with the LLM. Field names are the
// wire format; treat them as fixed.
type RawExtraction struct {
	Store            RawStore      `json:"store"`
	ReceiptDate      string        `json:"receiptDate"`
	PaymentMethod    string        `json:"paymentMethod,omitempty"`
	Totals           RawTotals     `json:"totals"`
	CategoryReceipts []RawCategory `json:"categoryReceipts"`
	NeedsReview      bool          `json:"needsReview,omitempty"`
}

type RawStore struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// RawTotals carries the receipt-level amounts. Total is a pointer so a
// missing field is distinguishable from 0.00.
type RawTotals struct {
	Subtotal *float64 `json:"subtotal,omitempty"`
	Tax      *float64 `json:"tax,omitempty"`
	Total    *float64 `json:"total"`
}

type RawCategory struct {
	Category string   `json:"category"`
	Total    *float64 `json:"total"`
	Subtotal *float64 `json:"subtotal,omitempty"`
	Tax      *float64 `json:"tax,omitempty"`
}

// ValidatedExtraction is the trustworthy form: date canonicalized,
// labels trimmed and uppercased, payment method coerced onto the enum.
type ValidatedExtraction struct {
	StoreName     string
	StorePhone    string
	ReceiptDate   time.Time // date-only, midnight UTC
	DateParsed    bool      // false = fell open to today; flag for review
	PaymentMethod *constants.PaymentMethod
	Subtotal      *float64
	Tax           *float64
	Total         float64
	Categories    []ValidatedCategory
	NeedsReview   bool
}

type ValidatedCategory struct {
	Category string // uppercased
	Total    float64
	Subtotal *float64
	Tax      *float64
}
