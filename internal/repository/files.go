package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/expenselens/expense-tracker/gen/ent"
	entfile "github.com/expenselens/expense-tracker/gen/ent/receiptfile"
	"github.com/expenselens/expense-tracker/internal/entity"
)

type ReceiptFileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ReceiptFile, error)
	GetByUserAndHash(ctx context.Context, userID uuid.UUID, hash []byte) (*entity.ReceiptFile, error)
	// UpsertByHash records a source file unless the same bytes were already
	// ingested for this user. The bool reports whether the file was seen
	// before.
	UpsertByHash(ctx context.Context, userID uuid.UUID, sourcePath, filename, ext string, size int64, hash []byte, uploadedAt time.Time) (*entity.ReceiptFile, bool, error)
}

type receiptFileRepo struct {
	client *ent.Client
	logger *slog.Logger
}

func NewReceiptFileRepository(client *ent.Client, logger *slog.Logger) ReceiptFileRepository {
	return &receiptFileRepo{
		client: client,
		logger: logger,
	}
}

func (r *receiptFileRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.ReceiptFile, error) {
	row, err := r.client.ReceiptFile.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toReceiptFile(row), nil
}

func (r *receiptFileRepo) GetByUserAndHash(ctx context.Context, userID uuid.UUID, hash []byte) (*entity.ReceiptFile, error) {
	row, err := r.client.ReceiptFile.Query().
		Where(
			entfile.UserID(userID),
			entfile.ContentHash(hash),
		).Only(ctx)
	if err != nil {
		return nil, err
	}
	return toReceiptFile(row), nil
}

func (r *receiptFileRepo) UpsertByHash(ctx context.Context, userID uuid.UUID, sourcePath, filename, ext string, size int64, hash []byte, uploadedAt time.Time) (*entity.ReceiptFile, bool, error) {
	if existing, err := r.GetByUserAndHash(ctx, userID, hash); err == nil {
		return existing, true, nil
	} else if !ent.IsNotFound(err) {
		r.logger.Error("db.files.lookup_failed", "user_id", userID, "source_path", sourcePath, "error", err)
		return nil, false, err
	}

	row, err := r.client.ReceiptFile.Create().
		SetUserID(userID).
		SetSourcePath(sourcePath).
		SetFilename(filename).
		SetFileExt(ext).
		SetFileSize(int(size)).
		SetContentHash(hash).
		SetUploadedAt(uploadedAt).
		Save(ctx)
	if err != nil {
		r.logger.Error("db.files.create_failed", "user_id", userID, "source_path", sourcePath, "filename", filename, "error", err)
		return nil, false, err
	}
	return toReceiptFile(row), false, nil
}
