package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/expenselens/expense-tracker/constants"
	"github.com/expenselens/expense-tracker/internal/entity"
)

type fakeLister struct {
	recs []*entity.Receipt
	from *time.Time
	to   *time.Time
}

func (f *fakeLister) ListReceipts(_ context.Context, _ uuid.UUID, from, to *time.Time) ([]*entity.Receipt, error) {
	f.from, f.to = from, to
	return f.recs, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExportGroupsCategoryRowsIntoReceipts(t *testing.T) {
	v := 10.0
	recs := []*entity.Receipt{
		{StoreName: "COSTCO", ReceiptDate: day(2025, 3, 2), Category: "GROCERIES", Total: 30.38, Status: constants.StatusCompleted},
		{StoreName: "COSTCO", ReceiptDate: day(2025, 3, 2), Category: "HOUSEHOLD", Total: 24.00, Status: constants.StatusCompleted},
		{StoreName: "WALMART", ReceiptDate: day(2025, 3, 2), Category: "GROCERIES", Total: 12.00, Subtotal: &v, Status: constants.StatusNeedsReview, NeedsReview: true},
	}
	svc := NewService(&fakeLister{recs: recs}, nil)

	out, err := svc.ExportReceiptsXLSX(context.Background(), uuid.New(), nil, nil)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows("Receipts")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want header + 3", len(rows))
	}
	// both COSTCO rows share one receipt number, WALMART gets the next
	if rows[1][0] != "1" || rows[2][0] != "1" {
		t.Fatalf("same-store same-day rows should share a receipt number: %v %v", rows[1][0], rows[2][0])
	}
	if rows[3][0] != "2" {
		t.Fatalf("new store should start a new receipt number, got %v", rows[3][0])
	}
	if rows[3][9] != "yes" {
		t.Fatalf("needs-review flag missing: %v", rows[3])
	}
}

func TestExportDateWindowDefaults(t *testing.T) {
	lister := &fakeLister{}
	svc := NewService(lister, nil)

	from := time.Date(2025, 1, 15, 13, 45, 0, 0, time.Local)
	if _, err := svc.ExportReceiptsXLSX(context.Background(), uuid.New(), &from, nil); err != nil {
		t.Fatal(err)
	}
	if lister.from == nil || !lister.from.Equal(day(2025, 1, 15)) {
		t.Fatalf("from should be truncated to midnight UTC, got %v", lister.from)
	}
	if lister.to == nil {
		t.Fatal("open-ended from should default to today")
	}
}
