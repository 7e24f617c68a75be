package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReceiptFile is an uploaded or ingested source file, keyed by content
// hash so re-ingesting the same bytes is a no-op.
type ReceiptFile struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	SourcePath  string    `json:"source_path"`
	ContentHash []byte    `json:"content_hash"`
	Filename    string    `json:"filename"`
	FileExt     string    `json:"file_ext"`
	FileSize    int64     `json:"file_size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
