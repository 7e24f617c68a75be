package ingestion

import (
	"context"
	"errors"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/expenselens/expense-tracker/internal/async"
	"github.com/expenselens/expense-tracker/internal/common"
	"github.com/expenselens/expense-tracker/internal/ingest"
	"github.com/expenselens/expense-tracker/internal/repository"
)

// Service handles ingestion business logic: record the file, then hand
// it to the processing queue unless it deduplicated.
type Service struct {
	ingestor ingest.Ingestor
	userRepo repository.UserRepository
	queue    async.Queue
	logger   *slog.Logger
}

// NewService creates a new ingestion service.
func NewService(ing ingest.Ingestor, users repository.UserRepository, q async.Queue, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		ingestor: ing,
		userRepo: users,
		queue:    q,
		logger:   logger,
	}
}

// FileIngestRequest represents file ingestion parameters.
type FileIngestRequest struct {
	UserID         string
	Path           string
	SkipDuplicates bool
}

// DirectoryIngestResult represents directory ingestion results.
type DirectoryIngestResult struct {
	Statistics ingest.DirStats
	Results    []ingest.IngestionResult
}

// IngestFile ingests a single file and enqueues it for processing.
func (s *Service) IngestFile(ctx context.Context, req FileIngestRequest) (ingest.IngestionResult, error) {
	userID, err := uuid.Parse(strings.TrimSpace(req.UserID))
	if err != nil {
		s.logger.Error("ingestion.bad_user_id", "user_id", req.UserID, "error", err)
		return ingest.IngestionResult{}, common.InvalidArgumentError("user_id must be a UUID")
	}

	path := strings.TrimSpace(req.Path)
	if path == "" {
		s.logger.Error("ingestion.missing_path", "user_id", userID)
		return ingest.IngestionResult{}, common.InvalidArgumentError("path is required")
	}

	ctx = s.tag(ctx, userID)
	s.logger.Info("ingestion.file_start",
		"user_id", userID, "path", path, "trace_id", common.RequestIDFromContext(ctx))
	r, err := s.ingestor.IngestPath(ctx, userID, path)
	if err != nil {
		return ingest.IngestionResult{}, classifyIngestErr(err)
	}

	if err := s.enqueue(ctx, userID, &r, req.SkipDuplicates); err != nil {
		return r, err
	}
	return r, nil
}

// DirectoryIngestRequest represents directory ingestion parameters.
type DirectoryIngestRequest struct {
	UserID         string
	RootPath       string
	SkipHidden     bool
	SkipDuplicates bool
}

// IngestDirectory ingests all matching files under a directory and
// enqueues each for processing.
func (s *Service) IngestDirectory(ctx context.Context, req DirectoryIngestRequest) (*DirectoryIngestResult, error) {
	userID, err := uuid.Parse(strings.TrimSpace(req.UserID))
	if err != nil {
		s.logger.Error("ingestion.bad_user_id", "user_id", req.UserID, "error", err)
		return nil, common.InvalidArgumentError("user_id must be a UUID")
	}

	root := strings.TrimSpace(req.RootPath)
	if root == "" {
		s.logger.Error("ingestion.missing_root", "user_id", userID)
		return nil, common.InvalidArgumentError("root_path is required")
	}

	ctx = s.tag(ctx, userID)
	s.logger.Info("ingestion.directory_start",
		"user_id", userID, "root", root, "skip_hidden", req.SkipHidden,
		"trace_id", common.RequestIDFromContext(ctx))
	results, stats, err := s.ingestor.IngestDirectory(ctx, userID, root, req.SkipHidden)
	if err != nil {
		return nil, common.InternalErrorf("ingest directory: %v", err)
	}

	for i := range results {
		if err := s.enqueue(ctx, userID, &results[i], req.SkipDuplicates); err != nil {
			s.logger.Error("ingestion.enqueue_failed", "path", results[i].SourcePath, "error", err)
		}
	}

	return &DirectoryIngestResult{
		Statistics: stats,
		Results:    results,
	}, nil
}

func (s *Service) enqueue(ctx context.Context, userID uuid.UUID, r *ingest.IngestionResult, skipDuplicates bool) error {
	if r.Err != "" || r.FileID == uuid.Nil {
		return nil
	}
	if r.Deduplicated && skipDuplicates {
		s.logger.Info("ingestion.skip_duplicate", "file_id", r.FileID, "path", r.SourcePath)
		return nil
	}

	return s.queue.Enqueue(ctx, async.Job{
		FileID:      r.FileID,
		UserID:      userID,
		Path:        r.SourcePath,
		Force:       !skipDuplicates && r.Deduplicated,
		SubmittedAt: time.Now(),
		TraceID:     common.RequestIDFromContext(ctx),
	})
}

// tag stamps the request context with a fresh trace id and the caller's
// user id; the ids follow the job through the queue into worker logs.
func (s *Service) tag(ctx context.Context, userID uuid.UUID) context.Context {
	ctx = common.WithRequestID(ctx, uuid.NewString())
	return common.WithUserID(ctx, userID.String())
}

// classifyIngestErr separates caller mistakes (bad extension, unknown
// user) from infrastructure faults so IO errors do not surface as
// InvalidArgument.
func classifyIngestErr(err error) error {
	switch {
	case errors.Is(err, ingest.ErrUnsupportedExt):
		return common.InvalidArgumentErrorf("ingest: %v", err)
	case errors.Is(err, common.ErrNotFound):
		return common.NotFoundError(err.Error())
	default:
		return common.InternalErrorf("ingest: %v", err)
	}
}
