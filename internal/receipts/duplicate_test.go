package receipts

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/expenselens/expense-tracker/constants"
	"github.com/expenselens/expense-tracker/internal/entity"
)

// fakeStore is an in-memory ReceiptStore that counts inserts.
type fakeStore struct {
	records []*entity.Receipt
	inserts int
	listErr error
}

func (f *fakeStore) ListByDay(_ context.Context, userID uuid.UUID, dayStart, dayEnd time.Time) ([]*entity.Receipt, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*entity.Receipt
	for _, r := range f.records {
		if r.UserID == userID && !r.ReceiptDate.Before(dayStart) && !r.ReceiptDate.After(dayEnd) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateBatch(_ context.Context, recs []*entity.Receipt) ([]*entity.Receipt, error) {
	f.inserts += len(recs)
	f.records = append(f.records, recs...)
	return recs, nil
}

var (
	userA = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	jan15 = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
)

func storedReceipt(user uuid.UUID, store string, date time.Time, total float64) *entity.Receipt {
	return &entity.Receipt{
		ID:          uuid.New(),
		UserID:      user,
		StoreName:   store,
		ReceiptDate: date,
		Category:    "GROCERY",
		Total:       total,
		Status:      constants.StatusCompleted,
	}
}

func TestNormalizeStoreName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Walmart", "WALMART"},
		{"  the walmart  ", "WALMART"},
		{"THE   HOME   DEPOT", "HOME DEPOT"},
		{"Trader Joe's", "TRADER JOE'S"},
		{"THE", "THE"}, // bare article is left alone
	}
	for _, tt := range tests {
		if got := NormalizeStoreName(tt.in); got != tt.want {
			t.Errorf("NormalizeStoreName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// A stored receipt split across several category rows (and name
// variants) must be matched against its summed aggregate.
func TestFindDuplicateGroupsBeforeSumming(t *testing.T) {
	store := &fakeStore{records: []*entity.Receipt{
		storedReceipt(userA, "WALMART", jan15, 50),
		storedReceipt(userA, "THE WALMART", jan15, 30),
	}}
	d := NewDetector(store, nil)

	dup, err := d.FindDuplicate(context.Background(), userA, "Walmart", jan15, 80.02)
	if err != nil {
		t.Fatalf("FindDuplicate() error = %v", err)
	}
	if dup == nil {
		t.Fatal("candidate 80.02 against group sum 80 should be a duplicate")
	}

	dup, err = d.FindDuplicate(context.Background(), userA, "Walmart", jan15, 90)
	if err != nil {
		t.Fatalf("FindDuplicate() error = %v", err)
	}
	if dup != nil {
		t.Errorf("candidate 90 against group sum 80 reported duplicate %v", dup.ID)
	}
}

func TestFindDuplicateScoping(t *testing.T) {
	userB := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	store := &fakeStore{records: []*entity.Receipt{
		storedReceipt(userA, "WALMART", jan15, 80),
		storedReceipt(userA, "TARGET", jan15, 80),
		storedReceipt(userB, "COSTCO", jan15, 80),
		storedReceipt(userA, "COSTCO", jan15.AddDate(0, 0, -1), 80),
	}}
	d := NewDetector(store, nil)

	tests := []struct {
		name      string
		user      uuid.UUID
		storeName string
		date      time.Time
		total     float64
		wantDup   bool
	}{
		{name: "same user same store same day", user: userA, storeName: "walmart", date: jan15, total: 80, wantDup: true},
		{name: "different store name", user: userA, storeName: "Kroger", date: jan15, total: 80, wantDup: false},
		{name: "other user's record does not match", user: userA, storeName: "Costco", date: jan15, total: 80, wantDup: false},
		{name: "previous day does not match", user: userA, storeName: "Costco", date: jan15, total: 80, wantDup: false},
		// 80.05 itself rounds down in float64 (80.0499…) and would
		// compare inside the window, so test just past it.
		{name: "outside tolerance", user: userA, storeName: "Target", date: jan15, total: 80.06, wantDup: false},
		{name: "just inside tolerance", user: userA, storeName: "Target", date: jan15, total: 80.04, wantDup: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dup, err := d.FindDuplicate(context.Background(), tt.user, tt.storeName, tt.date, tt.total)
			if err != nil {
				t.Fatalf("FindDuplicate() error = %v", err)
			}
			if (dup != nil) != tt.wantDup {
				t.Errorf("FindDuplicate() = %v, wantDup %v", dup, tt.wantDup)
			}
		})
	}
}

func TestFindDuplicateEmptyDay(t *testing.T) {
	d := NewDetector(&fakeStore{}, nil)
	dup, err := d.FindDuplicate(context.Background(), userA, "Walmart", jan15, 10)
	if err != nil {
		t.Fatalf("FindDuplicate() error = %v", err)
	}
	if dup != nil {
		t.Errorf("empty day reported duplicate %v", dup.ID)
	}
}
