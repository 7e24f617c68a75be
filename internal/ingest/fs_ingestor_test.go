package ingest

import (
	"context"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/expenselens/expense-tracker/internal/common"
	"github.com/expenselens/expense-tracker/internal/entity"
)

type fakeUsers struct{ known map[uuid.UUID]bool }

func (f *fakeUsers) GetByID(context.Context, uuid.UUID) (*entity.User, error) { return nil, nil }
func (f *fakeUsers) GetOrCreateByName(context.Context, string) (*entity.User, error) {
	return nil, nil
}
func (f *fakeUsers) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return f.known[id], nil
}

type fakeFiles struct {
	byHash map[string]*entity.ReceiptFile
}

func (f *fakeFiles) GetByID(context.Context, uuid.UUID) (*entity.ReceiptFile, error) {
	return nil, nil
}
func (f *fakeFiles) GetByUserAndHash(context.Context, uuid.UUID, []byte) (*entity.ReceiptFile, error) {
	return nil, nil
}
func (f *fakeFiles) UpsertByHash(_ context.Context, userID uuid.UUID, sourcePath, filename, ext string, size int64, hash []byte, uploadedAt time.Time) (*entity.ReceiptFile, bool, error) {
	key := hex.EncodeToString(hash)
	if row, ok := f.byHash[key]; ok {
		return row, true, nil
	}
	row := &entity.ReceiptFile{
		ID:          uuid.New(),
		UserID:      userID,
		SourcePath:  sourcePath,
		ContentHash: hash,
		Filename:    filename,
		FileExt:     ext,
		FileSize:    size,
		UploadedAt:  uploadedAt,
	}
	if f.byHash == nil {
		f.byHash = map[string]*entity.ReceiptFile{}
	}
	f.byHash[key] = row
	return row, false, nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestIngestPathRejectsUnknownExtension(t *testing.T) {
	userID := uuid.New()
	ing := NewFSIngestor(&fakeUsers{known: map[uuid.UUID]bool{userID: true}}, &fakeFiles{}, nil)

	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "not a receipt")

	if _, err := ing.IngestPath(context.Background(), userID, path); !errors.Is(err, ErrUnsupportedExt) {
		t.Fatalf("error = %v, want ErrUnsupportedExt", err)
	}
}

func TestIngestPathRejectsUnknownUser(t *testing.T) {
	ing := NewFSIngestor(&fakeUsers{}, &fakeFiles{}, nil)
	path := writeFile(t, t.TempDir(), "r.pdf", "%PDF-1.4")

	if _, err := ing.IngestPath(context.Background(), uuid.New(), path); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestIngestPathDedupesByContent(t *testing.T) {
	userID := uuid.New()
	files := &fakeFiles{}
	ing := NewFSIngestor(&fakeUsers{known: map[uuid.UUID]bool{userID: true}}, files, nil)

	dir := t.TempDir()
	a := writeFile(t, dir, "a.pdf", "same bytes")
	b := writeFile(t, dir, "b.pdf", "same bytes")

	r1, err := ing.IngestPath(context.Background(), userID, a)
	if err != nil {
		t.Fatal(err)
	}
	if r1.Deduplicated {
		t.Fatal("first ingest must not be a dedupe")
	}

	r2, err := ing.IngestPath(context.Background(), userID, b)
	if err != nil {
		t.Fatal(err)
	}
	if !r2.Deduplicated {
		t.Fatal("same content under a new name should dedupe")
	}
	if r2.FileID != r1.FileID {
		t.Fatalf("dedupe should return the original record, got %s vs %s", r2.FileID, r1.FileID)
	}
}

func TestIngestDirectoryStats(t *testing.T) {
	userID := uuid.New()
	ing := NewFSIngestor(&fakeUsers{known: map[uuid.UUID]bool{userID: true}}, &fakeFiles{}, nil)

	dir := t.TempDir()
	writeFile(t, dir, "one.pdf", "pdf one")
	writeFile(t, dir, "two.jpg", "jpg two")
	writeFile(t, dir, "skip.txt", "ignored")
	writeFile(t, dir, ".hidden.pdf", "hidden")

	results, stats, err := ing.IngestDirectory(context.Background(), userID, dir, true)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Matched != 2 || stats.Succeeded != 2 || stats.Failed != 0 {
		t.Fatalf("stats = %+v", stats)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
}
