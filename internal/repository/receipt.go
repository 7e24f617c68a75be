package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/expenselens/expense-tracker/gen/ent"
	"github.com/expenselens/expense-tracker/gen/ent/receipt"
	"github.com/expenselens/expense-tracker/internal/entity"
)

// ReceiptRepository persists and queries receipt rows. It satisfies
// receipts.ReceiptStore so the detection and materialization logic never
// sees Ent types.
type ReceiptRepository interface {
	ListByDay(ctx context.Context, userID uuid.UUID, dayStart, dayEnd time.Time) ([]*entity.Receipt, error)
	CreateBatch(ctx context.Context, recs []*entity.Receipt) ([]*entity.Receipt, error)
	ListReceipts(ctx context.Context, userID uuid.UUID, fromDate, toDate *time.Time) ([]*entity.Receipt, error)
}

type receiptRepository struct {
	client *ent.Client
	logger *slog.Logger
}

func NewReceiptRepository(client *ent.Client, logger *slog.Logger) ReceiptRepository {
	return &receiptRepository{
		client: client,
		logger: logger,
	}
}

func (r *receiptRepository) ListByDay(ctx context.Context, userID uuid.UUID, dayStart, dayEnd time.Time) ([]*entity.Receipt, error) {
	recs, err := r.client.Receipt.Query().
		Where(
			receipt.UserID(userID),
			receipt.ReceiptDateGTE(dayStart),
			receipt.ReceiptDateLTE(dayEnd),
		).
		Order(receipt.ByCreatedAt()).
		All(ctx)
	if err != nil {
		r.logger.Error("db.receipts.list_by_day_failed", "user_id", userID, "error", err)
		return nil, err
	}

	result := make([]*entity.Receipt, len(recs))
	for i, rec := range recs {
		result[i] = toReceipt(rec)
	}
	return result, nil
}

func (r *receiptRepository) CreateBatch(ctx context.Context, recs []*entity.Receipt) ([]*entity.Receipt, error) {
	builders := make([]*ent.ReceiptCreate, len(recs))
	for i, rec := range recs {
		b := r.client.Receipt.Create().
			SetUserID(rec.UserID).
			SetStoreName(rec.StoreName).
			SetReceiptDate(rec.ReceiptDate).
			SetCategory(rec.Category).
			SetNillableSubtotal(rec.Subtotal).
			SetNillableTax(rec.Tax).
			SetTotal(rec.Total).
			SetStatus(string(rec.Status)).
			SetNeedsReview(rec.NeedsReview)
		if rec.PaymentMethod != nil {
			b = b.SetPaymentMethod(string(*rec.PaymentMethod))
		}
		builders[i] = b
	}

	rows, err := r.client.Receipt.CreateBulk(builders...).Save(ctx)
	if err != nil {
		r.logger.Error("db.receipts.create_batch_failed", "count", len(recs), "error", err)
		return nil, err
	}

	result := make([]*entity.Receipt, len(rows))
	for i, row := range rows {
		result[i] = toReceipt(row)
	}
	return result, nil
}

func (r *receiptRepository) ListReceipts(ctx context.Context, userID uuid.UUID, fromDate, toDate *time.Time) ([]*entity.Receipt, error) {
	q := r.client.Receipt.Query().Where(receipt.UserID(userID))
	if fromDate != nil {
		q = q.Where(receipt.ReceiptDateGTE(*fromDate))
	}
	if toDate != nil {
		q = q.Where(receipt.ReceiptDateLTE(*toDate))
	}
	recs, err := q.Order(receipt.ByReceiptDate(), receipt.ByCreatedAt()).All(ctx)
	if err != nil {
		r.logger.Error("db.receipts.list_failed", "user_id", userID, "error", err)
		return nil, err
	}

	result := make([]*entity.Receipt, len(recs))
	for i, rec := range recs {
		result[i] = toReceipt(rec)
	}
	return result, nil
}
