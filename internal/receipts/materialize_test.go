package receipts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/expenselens/expense-tracker/constants"
	"github.com/expenselens/expense-tracker/internal/entity"
	"github.com/expenselens/expense-tracker/internal/extraction"
)

func validatedExtraction() *extraction.ValidatedExtraction {
	sub, tax := 11.48, 0.92
	return &extraction.ValidatedExtraction{
		StoreName:   "COSTCO",
		ReceiptDate: time.Date(2025, 11, 21, 0, 0, 0, 0, time.UTC),
		DateParsed:  true,
		Subtotal:    &sub,
		Tax:         &tax,
		Total:       12.40,
		Categories: []extraction.ValidatedCategory{
			{Category: "GROCERY", Total: 12.40},
		},
	}
}

func newMaterializer(store *fakeStore) *Materializer {
	return NewMaterializer(store, NewDetector(store, nil), nil)
}

func TestMaterializeSingleCategory(t *testing.T) {
	store := &fakeStore{}
	m := newMaterializer(store)

	conf := 0.95
	recs, err := m.Materialize(context.Background(), userA, validatedExtraction(), &conf)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	r := recs[0]
	if r.Category != "GROCERY" {
		t.Errorf("Category = %q", r.Category)
	}
	if r.Status != constants.StatusCompleted {
		t.Errorf("Status = %s, want COMPLETED", r.Status)
	}
	if r.NeedsReview {
		t.Error("NeedsReview = true, want false")
	}
	if r.Subtotal == nil || *r.Subtotal != 11.48 {
		t.Errorf("Subtotal = %v, want receipt-level 11.48", r.Subtotal)
	}
	if r.Total != 12.40 {
		t.Errorf("Total = %v, want 12.40", r.Total)
	}
}

func TestMaterializeOneRowPerCategory(t *testing.T) {
	store := &fakeStore{}
	m := newMaterializer(store)

	v := validatedExtraction()
	v.Total = 50
	v.Categories = []extraction.ValidatedCategory{
		{Category: "GROCERY", Total: 30},
		{Category: "PHARMACY", Total: 15},
		{Category: "HOUSEHOLD", Total: 5},
	}

	recs, err := m.Materialize(context.Background(), userA, v, nil)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}
	var sum float64
	for _, r := range recs {
		sum += r.Total
		if r.StoreName != "COSTCO" || !r.ReceiptDate.Equal(v.ReceiptDate) {
			t.Errorf("row %s does not share store/date", r.ID)
		}
		// multi-category rows never inherit the receipt-level amounts
		if r.Subtotal != nil || r.Tax != nil {
			t.Errorf("row %s inherited receipt-level subtotal/tax", r.ID)
		}
	}
	if sum != 50 {
		t.Errorf("rows sum to %v, want 50", sum)
	}
}

func TestMaterializeReviewPolicy(t *testing.T) {
	lowConf, highConf := 0.5, 0.95
	tests := []struct {
		name       string
		llmFlag    bool
		confidence *float64
		wantReview bool
	}{
		{name: "clean", llmFlag: false, confidence: &highConf, wantReview: false},
		{name: "llm flagged", llmFlag: true, confidence: &highConf, wantReview: true},
		{name: "low ocr confidence", llmFlag: false, confidence: &lowConf, wantReview: true},
		{name: "no confidence reported", llmFlag: false, confidence: nil, wantReview: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			m := newMaterializer(store)
			v := validatedExtraction()
			v.NeedsReview = tt.llmFlag

			recs, err := m.Materialize(context.Background(), userA, v, tt.confidence)
			if err != nil {
				t.Fatalf("Materialize() error = %v", err)
			}
			r := recs[0]
			if r.NeedsReview != tt.wantReview {
				t.Errorf("NeedsReview = %v, want %v", r.NeedsReview, tt.wantReview)
			}
			wantStatus := constants.StatusCompleted
			if tt.wantReview {
				wantStatus = constants.StatusNeedsReview
			}
			if r.Status != wantStatus {
				t.Errorf("Status = %s, want %s", r.Status, wantStatus)
			}
		})
	}
}

// The duplicate check runs once for the aggregate, before any insert:
// on a duplicate the store must have received zero insert calls.
func TestMaterializeDuplicateIsHardStop(t *testing.T) {
	store := &fakeStore{records: []*entity.Receipt{
		storedReceipt(userA, "Costco", time.Date(2025, 11, 21, 0, 0, 0, 0, time.UTC), 12.40),
	}}
	m := newMaterializer(store)

	v := validatedExtraction()
	v.Categories = []extraction.ValidatedCategory{
		{Category: "GROCERY", Total: 6.40},
		{Category: "PHARMACY", Total: 4.00},
		{Category: "HOUSEHOLD", Total: 2.00},
	}

	_, err := m.Materialize(context.Background(), userA, v, nil)
	var dup *DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("Materialize() error = %v, want *DuplicateError", err)
	}
	if dup.Existing == nil || dup.Existing.StoreName != "Costco" {
		t.Errorf("DuplicateError.Existing = %+v", dup.Existing)
	}
	if store.inserts != 0 {
		t.Errorf("store received %d inserts, want 0", store.inserts)
	}
}

func TestMaterializeStoreNamePersistedVerbatim(t *testing.T) {
	store := &fakeStore{}
	m := newMaterializer(store)
	v := validatedExtraction()
	v.StoreName = "The Corner Shop"

	recs, err := m.Materialize(context.Background(), userA, v, nil)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if recs[0].StoreName != "The Corner Shop" {
		t.Errorf("StoreName = %q, want the extracted form, not the normalized one", recs[0].StoreName)
	}
}
