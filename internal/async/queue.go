package async

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Job is one ingested file waiting for the pipeline. Path is the local
// source file; FileID is the ingest record when the file came through
// the dedupe step.
type Job struct {
	FileID      uuid.UUID
	UserID      uuid.UUID
	Path        string
	Force       bool // enqueue even if deduplicated
	SubmittedAt time.Time
	TraceID     string
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}
