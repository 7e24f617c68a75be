// Package export renders stored receipt rows into spreadsheet form.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/expenselens/expense-tracker/internal/entity"
	"github.com/expenselens/expense-tracker/internal/receipts"
)

// ReceiptLister is the slice of the repository this package needs.
type ReceiptLister interface {
	ListReceipts(ctx context.Context, userID uuid.UUID, fromDate, toDate *time.Time) ([]*entity.Receipt, error)
}

// Service produces XLSX bytes for exports.
type Service struct {
	receipts ReceiptLister
	logger   *slog.Logger
}

func NewService(lister ReceiptLister, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{receipts: lister, logger: logger}
}

// ExportReceiptsXLSX returns an XLSX workbook (as bytes) for the given
// user and date window.
// If only from is provided -> from..today (inclusive).
// If only to is provided   -> beginning..to (inclusive).
// If neither is provided   -> all receipts for the user.
//
// Rows belonging to the same physical receipt (same store and calendar
// day, split across categories) share a receipt number so the grouping
// survives into the sheet.
func (s *Service) ExportReceiptsXLSX(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	// Normalize dates (date-only, UTC)
	var fromDate, toDate *time.Time
	if from != nil {
		f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
		fromDate = &f
	}
	if to != nil {
		t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
		toDate = &t
	}
	if fromDate != nil && toDate == nil {
		today := time.Now().UTC()
		t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		toDate = &t
	}

	recs, err := s.receipts.ListReceipts(ctx, userID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("query receipts: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Receipts"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Receipt #",
		"Date",
		"Store",
		"Category",
		"Subtotal",
		"Tax",
		"Amount",
		"Payment",
		"Status",
		"Needs Review",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	receiptNo := 0
	lastKey := ""
	for _, r := range recs {
		key := receipts.NormalizeStoreName(r.StoreName) + "|" + r.ReceiptDate.Format("2006-01-02")
		if key != lastKey {
			receiptNo++
			lastKey = key
		}

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, receiptNo)
		if !r.ReceiptDate.IsZero() {
			write(2, r.ReceiptDate.Format("2006-01-02"))
		} else {
			write(2, "")
		}
		write(3, r.StoreName)
		write(4, r.Category)
		if r.Subtotal != nil {
			write(5, fmt.Sprintf("%.2f", *r.Subtotal))
		}
		if r.Tax != nil {
			write(6, fmt.Sprintf("%.2f", *r.Tax))
		}
		write(7, fmt.Sprintf("%.2f", r.Total))
		if r.PaymentMethod != nil {
			write(8, string(*r.PaymentMethod))
		}
		write(9, string(r.Status))
		if r.NeedsReview {
			write(10, "yes")
		}

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "B", "B", 14) // date
	_ = f.SetColWidth(sheet, "C", "C", 28) // store
	_ = f.SetColWidth(sheet, "D", "D", 22) // category
	_ = f.SetColWidth(sheet, "E", "G", 12) // amounts
	_ = f.SetColWidth(sheet, "H", "J", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"user_id", userID.String(),
		"rows", len(recs),
		"receipts", receiptNo,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
