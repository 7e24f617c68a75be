// Package ingest discovers receipt source files on the local filesystem,
// dedupes them by content hash, and records them for processing.
package ingest

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/expenselens/expense-tracker/constants"
)

// ErrUnsupportedExt marks a path whose extension is outside the allowed
// upload formats; callers treat it as a bad argument, not a fault.
var ErrUnsupportedExt = errors.New("unsupported file extension")

// IngestionResult is the per-file ingest outcome.
type IngestionResult struct {
	SourcePath   string
	FileID       uuid.UUID
	Deduplicated bool
	HashHex      string
	FileExt      string
	UploadedAt   time.Time
	Err          string
}

// DirStats summarizes a directory ingest.
type DirStats struct {
	Scanned      uint32
	Matched      uint32
	Succeeded    uint32
	Deduplicated uint32
	Failed       uint32
}

// Ingestor is the behavior callers depend on.
type Ingestor interface {
	IngestPath(ctx context.Context, userID uuid.UUID, path string) (IngestionResult, error)
	IngestDirectory(ctx context.Context, userID uuid.UUID, root string, skipHidden bool) ([]IngestionResult, DirStats, error)
}

// AllowedExt checks if a file extension is in the allowed set (pdf/jpg/jpeg/png).
func AllowedExt(ext string) bool {
	ext = constants.NormalizeExt(ext)
	_, ok := constants.AllowedExtensions[ext]
	return ok
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".")
}
