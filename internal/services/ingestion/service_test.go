package ingestion

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/expenselens/expense-tracker/internal/async"
	"github.com/expenselens/expense-tracker/internal/common"
	"github.com/expenselens/expense-tracker/internal/ingest"
)

type fakeIngestor struct {
	result ingest.IngestionResult
	err    error
}

func (f *fakeIngestor) IngestPath(_ context.Context, _ uuid.UUID, path string) (ingest.IngestionResult, error) {
	if f.err != nil {
		return ingest.IngestionResult{}, f.err
	}
	r := f.result
	r.SourcePath = path
	return r, nil
}

func (f *fakeIngestor) IngestDirectory(ctx context.Context, userID uuid.UUID, root string, _ bool) ([]ingest.IngestionResult, ingest.DirStats, error) {
	r, _ := f.IngestPath(ctx, userID, root+"/one.pdf")
	return []ingest.IngestionResult{r}, ingest.DirStats{Scanned: 1, Matched: 1, Succeeded: 1}, nil
}

type fakeQueue struct{ jobs []async.Job }

func (q *fakeQueue) Enqueue(_ context.Context, j async.Job) error {
	q.jobs = append(q.jobs, j)
	return nil
}
func (q *fakeQueue) Shutdown(context.Context) {}

func TestIngestFileEnqueuesJob(t *testing.T) {
	userID := uuid.New()
	fileID := uuid.New()
	q := &fakeQueue{}
	svc := NewService(&fakeIngestor{result: ingest.IngestionResult{FileID: fileID}}, nil, q, nil)

	r, err := svc.IngestFile(context.Background(), FileIngestRequest{
		UserID: userID.String(),
		Path:   "/in/a.pdf",
	})
	if err != nil {
		t.Fatalf("IngestFile: %v", err)
	}
	if r.FileID != fileID {
		t.Fatalf("file id = %s", r.FileID)
	}
	if len(q.jobs) != 1 || q.jobs[0].UserID != userID || q.jobs[0].Path != "/in/a.pdf" {
		t.Fatalf("job not enqueued correctly: %+v", q.jobs)
	}
	if q.jobs[0].TraceID == "" {
		t.Fatal("enqueued job is missing a trace id")
	}
}

// IO faults must surface as Internal; only caller mistakes map to
// InvalidArgument or NotFound.
func TestIngestFileErrorCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode codes.Code
	}{
		{
			name:     "permission error is internal",
			err:      fmt.Errorf("open: permission denied"),
			wantCode: codes.Internal,
		},
		{
			name:     "unknown user is not found",
			err:      fmt.Errorf("user x: %w", common.ErrNotFound),
			wantCode: codes.NotFound,
		},
		{
			name:     "bad extension is invalid argument",
			err:      fmt.Errorf("%w: %q", ingest.ErrUnsupportedExt, ".txt"),
			wantCode: codes.InvalidArgument,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeIngestor{err: tt.err}, nil, &fakeQueue{}, nil)
			_, err := svc.IngestFile(context.Background(), FileIngestRequest{
				UserID: uuid.New().String(),
				Path:   "/in/a.pdf",
			})
			if got := status.Code(err); got != tt.wantCode {
				t.Errorf("status code = %v, want %v (err %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestIngestFileRejectsBadUserID(t *testing.T) {
	svc := NewService(&fakeIngestor{}, nil, &fakeQueue{}, nil)
	if _, err := svc.IngestFile(context.Background(), FileIngestRequest{UserID: "nope", Path: "/x.pdf"}); err == nil {
		t.Fatal("expected invalid-argument error")
	}
}

func TestDuplicateSkippedWhenRequested(t *testing.T) {
	q := &fakeQueue{}
	svc := NewService(&fakeIngestor{result: ingest.IngestionResult{FileID: uuid.New(), Deduplicated: true}}, nil, q, nil)

	_, err := svc.IngestFile(context.Background(), FileIngestRequest{
		UserID:         uuid.New().String(),
		Path:           "/in/a.pdf",
		SkipDuplicates: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(q.jobs) != 0 {
		t.Fatalf("duplicate should not be enqueued when skipping, got %d jobs", len(q.jobs))
	}
}

func TestDuplicateForcedWhenNotSkipping(t *testing.T) {
	q := &fakeQueue{}
	svc := NewService(&fakeIngestor{result: ingest.IngestionResult{FileID: uuid.New(), Deduplicated: true}}, nil, q, nil)

	if _, err := svc.IngestFile(context.Background(), FileIngestRequest{
		UserID: uuid.New().String(),
		Path:   "/in/a.pdf",
	}); err != nil {
		t.Fatal(err)
	}
	if len(q.jobs) != 1 || !q.jobs[0].Force {
		t.Fatalf("re-ingested duplicate should enqueue with Force, got %+v", q.jobs)
	}
}
