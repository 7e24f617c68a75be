package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/expenselens/expense-tracker/constants"
	"github.com/expenselens/expense-tracker/internal/common"
	"github.com/expenselens/expense-tracker/internal/repository"
)

// FSIngestor reads from the local filesystem.
type FSIngestor struct {
	users  repository.UserRepository
	files  repository.ReceiptFileRepository
	logger *slog.Logger
}

func NewFSIngestor(users repository.UserRepository, files repository.ReceiptFileRepository, logger *slog.Logger) *FSIngestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &FSIngestor{users: users, files: files, logger: logger}
}

func (i *FSIngestor) IngestPath(ctx context.Context, userID uuid.UUID, path string) (IngestionResult, error) {
	var out IngestionResult

	abs, err := filepath.Abs(path)
	if err != nil {
		return out, fmt.Errorf("abs path: %w", err)
	}

	ext := constants.NormalizeExt(filepath.Ext(abs))
	if ext == "" || !AllowedExt(ext) {
		return out, fmt.Errorf("%w: %q", ErrUnsupportedExt, ext)
	}

	exists, err := i.users.Exists(ctx, userID)
	if err != nil {
		return out, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return out, fmt.Errorf("user %s: %w", userID, common.ErrNotFound)
	}

	f, err := os.Open(abs)
	if err != nil {
		return out, fmt.Errorf("open: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			i.logger.Warn("ingest.close_failed", "path", abs, "error", cerr)
		}
	}()

	h := sha256.New()
	size, err := io.Copy(h, f)
	if err != nil {
		return out, fmt.Errorf("hash: %w", err)
	}
	sum := h.Sum(nil)
	now := time.Now().UTC()

	row, dedup, err := i.files.UpsertByHash(ctx, userID, abs, filepath.Base(abs), ext, size, sum, now)
	if err != nil {
		return out, err
	}

	if dedup {
		i.logger.Info("ingest.deduplicated", "path", abs, "file_id", row.ID)
	} else {
		i.logger.Info("ingest.recorded", "path", abs, "file_id", row.ID, "bytes", size)
	}

	out = IngestionResult{
		SourcePath:   row.SourcePath,
		FileID:       row.ID,
		Deduplicated: dedup,
		HashHex:      hex.EncodeToString(sum),
		FileExt:      row.FileExt,
		UploadedAt:   row.UploadedAt,
	}
	return out, nil
}

// IngestDirectory walks root, skips hidden entries if requested, and
// calls IngestPath for each matching file. Per-file failures are
// recorded and do not stop the walk.
func (i *FSIngestor) IngestDirectory(
	ctx context.Context,
	userID uuid.UUID,
	root string,
	skipHidden bool,
) ([]IngestionResult, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root_path is required")
	}

	var results []IngestionResult
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			results = append(results, IngestionResult{SourcePath: path, Err: walkErr.Error()})
			stats.Failed++
			return nil
		}
		if skipHidden && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := constants.NormalizeExt(filepath.Ext(path))
		if !AllowedExt(ext) {
			return nil
		}
		stats.Matched++

		r, err := i.IngestPath(ctx, userID, path)
		if err != nil {
			results = append(results, IngestionResult{SourcePath: path, Err: err.Error()})
			stats.Failed++
			return nil
		}

		results = append(results, r)
		stats.Succeeded++
		if r.Deduplicated {
			stats.Deduplicated++
		}
		return nil
	})

	if err != nil {
		return results, stats, fmt.Errorf("walk: %w", err)
	}
	i.logger.Info("ingest.directory_done",
		"root", root,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"deduplicated", stats.Deduplicated,
		"failed", stats.Failed,
	)
	return results, stats, nil
}
