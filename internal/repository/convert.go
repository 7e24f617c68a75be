package repository

import (
	"github.com/expenselens/expense-tracker/constants"
	"github.com/expenselens/expense-tracker/gen/ent"
	"github.com/expenselens/expense-tracker/internal/entity"
)

func toReceipt(e *ent.Receipt) *entity.Receipt {
	var pm *constants.PaymentMethod
	if e.PaymentMethod != nil {
		m := constants.PaymentMethod(*e.PaymentMethod)
		pm = &m
	}
	return &entity.Receipt{
		ID:            e.ID,
		UserID:        e.UserID,
		StoreName:     e.StoreName,
		ReceiptDate:   e.ReceiptDate,
		Category:      e.Category,
		PaymentMethod: pm,
		Subtotal:      e.Subtotal,
		Tax:           e.Tax,
		Total:         e.Total,
		Status:        constants.ReceiptStatus(e.Status),
		NeedsReview:   e.NeedsReview,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func toUser(e *ent.User) *entity.User {
	return &entity.User{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toReceiptFile(e *ent.ReceiptFile) *entity.ReceiptFile {
	return &entity.ReceiptFile{
		ID:          e.ID,
		UserID:      e.UserID,
		SourcePath:  e.SourcePath,
		ContentHash: e.ContentHash,
		Filename:    e.Filename,
		FileExt:     e.FileExt,
		FileSize:    int64(e.FileSize),
		UploadedAt:  e.UploadedAt,
	}
}
