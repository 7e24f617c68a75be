package extraction

import (
	"errors"
	"testing"
	"time"

	"github.com/expenselens/expense-tracker/constants"
)

func f64(v float64) *float64 { return &v }

func fixedClock() ValidatorOption {
	return WithClock(func() time.Time {
		return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	})
}

func validRaw() *RawExtraction {
	return &RawExtraction{
		Store:       RawStore{Name: "COSTCO"},
		ReceiptDate: "2025/11/21 12:52:58",
		Totals:      RawTotals{Total: f64(12.40), Subtotal: f64(11.48), Tax: f64(0.92)},
		CategoryReceipts: []RawCategory{
			{Category: "grocery", Total: f64(12.40)},
		},
	}
}

func TestValidateSuccess(t *testing.T) {
	v := NewValidator(nil, fixedClock())

	got, err := v.Validate(validRaw())
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got.StoreName != "COSTCO" {
		t.Errorf("StoreName = %q", got.StoreName)
	}
	want := time.Date(2025, 11, 21, 0, 0, 0, 0, time.UTC)
	if !got.ReceiptDate.Equal(want) {
		t.Errorf("ReceiptDate = %s, want 2025-11-21", got.ReceiptDate.Format("2006-01-02"))
	}
	if !got.DateParsed {
		t.Error("DateParsed = false, want true")
	}
	if len(got.Categories) != 1 || got.Categories[0].Category != "GROCERY" {
		t.Errorf("Categories = %+v, want one entry GROCERY", got.Categories)
	}
	if got.NeedsReview {
		t.Error("NeedsReview = true, want false")
	}
}

func TestValidateCheckOrder(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RawExtraction)
		wantErr error
	}{
		{
			name:    "blank store name",
			mutate:  func(r *RawExtraction) { r.Store.Name = "   " },
			wantErr: ErrMissingStoreName,
		},
		{
			name:    "missing total",
			mutate:  func(r *RawExtraction) { r.Totals.Total = nil },
			wantErr: ErrMissingTotal,
		},
		{
			name:    "missing date",
			mutate:  func(r *RawExtraction) { r.ReceiptDate = "" },
			wantErr: ErrMissingDate,
		},
		{
			name:    "empty categories",
			mutate:  func(r *RawExtraction) { r.CategoryReceipts = nil },
			wantErr: ErrMissingCategories,
		},
		{
			name: "blank category label",
			mutate: func(r *RawExtraction) {
				r.CategoryReceipts[0].Category = "  "
			},
			wantErr: ErrInvalidCategoryEntry,
		},
		{
			name: "category entry without total",
			mutate: func(r *RawExtraction) {
				r.CategoryReceipts[0].Total = nil
			},
			wantErr: ErrInvalidCategoryEntry,
		},
		{
			// store name check fires before the total check
			name: "store name wins over missing total",
			mutate: func(r *RawExtraction) {
				r.Store.Name = ""
				r.Totals.Total = nil
			},
			wantErr: ErrMissingStoreName,
		},
	}

	v := NewValidator(nil, fixedClock())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.mutate(raw)
			_, err := v.Validate(raw)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateReconciliation(t *testing.T) {
	v := NewValidator(nil, fixedClock())

	tests := []struct {
		name       string
		total      float64
		categories []float64
		wantOK     bool
	}{
		{name: "exact", total: 50, categories: []float64{30, 20}, wantOK: true},
		{name: "within tolerance", total: 50.01, categories: []float64{30, 20}, wantOK: true},
		{name: "just outside tolerance", total: 50.02, categories: []float64{30, 20}, wantOK: false},
		{name: "grossly off", total: 100, categories: []float64{30, 20}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			raw.Totals.Total = f64(tt.total)
			raw.CategoryReceipts = nil
			for _, c := range tt.categories {
				raw.CategoryReceipts = append(raw.CategoryReceipts, RawCategory{Category: "X", Total: f64(c)})
			}
			_, err := v.Validate(raw)
			if tt.wantOK && err != nil {
				t.Fatalf("Validate() error = %v, want nil", err)
			}
			if !tt.wantOK {
				var mm *MismatchError
				if !errors.As(err, &mm) {
					t.Fatalf("Validate() error = %v, want *MismatchError", err)
				}
				if mm.GrandTotal != tt.total {
					t.Errorf("GrandTotal = %v, want %v", mm.GrandTotal, tt.total)
				}
			}
		})
	}
}

func TestValidateUnparseableDateFallsOpen(t *testing.T) {
	v := NewValidator(nil, fixedClock())
	raw := validRaw()
	raw.ReceiptDate = "sometime last week"

	got, err := v.Validate(raw)
	if err != nil {
		t.Fatalf("Validate() error = %v, want nil (fail-open)", err)
	}
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	if !got.ReceiptDate.Equal(today) {
		t.Errorf("ReceiptDate = %s, want today", got.ReceiptDate.Format("2006-01-02"))
	}
	if got.DateParsed {
		t.Error("DateParsed = true, want false")
	}
	if !got.NeedsReview {
		t.Error("NeedsReview = false, want true")
	}
}

func TestValidatePaymentMethod(t *testing.T) {
	tests := []struct {
		input string
		want  constants.PaymentMethod
		set   bool
	}{
		{input: "card", want: constants.PaymentCard, set: true},
		{input: "CASH", want: constants.PaymentCash, set: true},
		{input: "visa", want: constants.PaymentCard, set: true},
		{input: "carrier pigeon", want: constants.PaymentOther, set: true},
		{input: "", set: false},
	}

	v := NewValidator(nil, fixedClock())
	for _, tt := range tests {
		t.Run("input="+tt.input, func(t *testing.T) {
			raw := validRaw()
			raw.PaymentMethod = tt.input
			got, err := v.Validate(raw)
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if tt.set {
				if got.PaymentMethod == nil || *got.PaymentMethod != tt.want {
					t.Errorf("PaymentMethod = %v, want %s", got.PaymentMethod, tt.want)
				}
			} else if got.PaymentMethod != nil {
				t.Errorf("PaymentMethod = %v, want absent", *got.PaymentMethod)
			}
		})
	}
}

func TestValidateKeepsLLMReviewFlag(t *testing.T) {
	v := NewValidator(nil, fixedClock())
	raw := validRaw()
	raw.NeedsReview = true
	got, err := v.Validate(raw)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !got.NeedsReview {
		t.Error("NeedsReview = false, want true when the LLM flagged it")
	}
}
