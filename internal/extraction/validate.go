package extraction

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/expenselens/expense-tracker/constants"
	"github.com/expenselens/expense-tracker/internal/dates"
)

// TotalTolerance is the absolute drift allowed between the sum of the
// category totals and the receipt grand total. Distinct from the wider
// duplicate-detection tolerance, which absorbs drift across independent
// passes over the same receipt; this one is internal consistency of a
// single extraction.
const TotalTolerance = 0.01

// Extraction-shape errors, surfaced to the user as a single "could not
// parse receipt" failure. Never retried: the LLM is deterministic enough
// that re-asking with the same prompt rarely helps.
var (
	ErrMissingStoreName     = errors.New("missing store name")
	ErrMissingTotal         = errors.New("missing receipt total")
	ErrMissingDate          = errors.New("missing receipt date")
	ErrMissingCategories    = errors.New("missing category breakdown")
	ErrInvalidCategoryEntry = errors.New("invalid category entry")
)

// MismatchError reports a category sum that does not reconcile to the
// grand total. Both sums are carried for diagnostics.
type MismatchError struct {
	CategorySum float64
	GrandTotal  float64
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("category totals %.2f do not reconcile to grand total %.2f (tolerance %.2f)",
		e.CategorySum, e.GrandTotal, TotalTolerance)
}

// Validator enforces the structural and numeric invariants on a raw
// extraction before anything is persisted.
type Validator struct {
	logger *slog.Logger
	now    func() time.Time
}

type ValidatorOption func(*Validator)

// WithClock overrides the clock used for the fail-open date fallback.
func WithClock(now func() time.Time) ValidatorOption {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

func NewValidator(logger *slog.Logger, opts ...ValidatorOption) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	v := &Validator{logger: logger, now: time.Now}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Validate runs the checks in order, short-circuiting on the first
// failure:
//
//  1. store.name present and non-blank
//  2. totals.total present
//  3. receiptDate present (non-empty string)
//  4. categoryReceipts non-empty
//  5. every entry has a non-blank category and a total
//  6. category totals sum to totals.total within TotalTolerance
//
// A receiptDate that is present but unparseable is NOT an error: the
// date falls open to today and the result is flagged for review.
func (v *Validator) Validate(raw *RawExtraction) (*ValidatedExtraction, error) {
	if strings.TrimSpace(raw.Store.Name) == "" {
		return nil, ErrMissingStoreName
	}
	if raw.Totals.Total == nil {
		return nil, ErrMissingTotal
	}
	if strings.TrimSpace(raw.ReceiptDate) == "" {
		return nil, ErrMissingDate
	}
	if len(raw.CategoryReceipts) == 0 {
		return nil, ErrMissingCategories
	}

	cats := make([]ValidatedCategory, 0, len(raw.CategoryReceipts))
	var sum float64
	for i, c := range raw.CategoryReceipts {
		label := strings.TrimSpace(c.Category)
		if label == "" || c.Total == nil {
			return nil, fmt.Errorf("%w: entry %d", ErrInvalidCategoryEntry, i)
		}
		cats = append(cats, ValidatedCategory{
			Category: strings.ToUpper(label),
			Total:    *c.Total,
			Subtotal: c.Subtotal,
			Tax:      c.Tax,
		})
		sum += *c.Total
	}

	if math.Abs(sum-*raw.Totals.Total) > TotalTolerance {
		return nil, &MismatchError{CategorySum: sum, GrandTotal: *raw.Totals.Total}
	}

	receiptDate, parsed := dates.Normalize(raw.ReceiptDate, v.now())
	if !parsed {
		v.logger.Warn("extraction.date_unparseable", "receipt_date", raw.ReceiptDate)
	}

	out := &ValidatedExtraction{
		StoreName:   strings.TrimSpace(raw.Store.Name),
		StorePhone:  strings.TrimSpace(raw.Store.Phone),
		ReceiptDate: receiptDate,
		DateParsed:  parsed,
		Subtotal:    raw.Totals.Subtotal,
		Tax:         raw.Totals.Tax,
		Total:       *raw.Totals.Total,
		Categories:  cats,
		NeedsReview: raw.NeedsReview || !parsed,
	}
	if pm, ok := constants.CanonicalizePayment(raw.PaymentMethod); ok {
		out.PaymentMethod = &pm
	}
	return out, nil
}
