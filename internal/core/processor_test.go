package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/expenselens/expense-tracker/constants"
	"github.com/expenselens/expense-tracker/internal/entity"
	"github.com/expenselens/expense-tracker/internal/extraction"
	"github.com/expenselens/expense-tracker/internal/llm"
	"github.com/expenselens/expense-tracker/internal/ocr"
	"github.com/expenselens/expense-tracker/internal/receipts"
)

func f64(v float64) *float64 { return &v }

type stubOCR struct {
	res ocr.ExtractionResult
	err error
}

func (s stubOCR) Extract(context.Context, string) (ocr.ExtractionResult, error) {
	return s.res, s.err
}

type stubLLM struct {
	raw *extraction.RawExtraction
	err error
	req llm.ExtractRequest
}

func (s *stubLLM) ExtractReceipt(_ context.Context, req llm.ExtractRequest) (*extraction.RawExtraction, []byte, error) {
	s.req = req
	return s.raw, []byte("{}"), s.err
}

type spyMaterializer struct {
	calls  int
	conf   *float64
	rows   []*entity.Receipt
	err    error
	gotVal *extraction.ValidatedExtraction
}

func (s *spyMaterializer) Materialize(_ context.Context, _ uuid.UUID, v *extraction.ValidatedExtraction, conf *float64) ([]*entity.Receipt, error) {
	s.calls++
	s.conf = conf
	s.gotVal = v
	return s.rows, s.err
}

// costcoRaw is a typical multi-category warehouse receipt.
func costcoRaw() *extraction.RawExtraction {
	return &extraction.RawExtraction{
		Store:         extraction.RawStore{Name: "Costco Wholesale"},
		ReceiptDate:   "2025-03-02",
		PaymentMethod: "VISA",
		Totals:        extraction.RawTotals{Subtotal: f64(50.00), Tax: f64(4.38), Total: f64(54.38)},
		CategoryReceipts: []extraction.RawCategory{
			{Category: "groceries", Total: f64(30.38)},
			{Category: "household", Total: f64(24.00)},
		},
	}
}

func TestProcessFileHappyPath(t *testing.T) {
	mat := &spyMaterializer{rows: []*entity.Receipt{{}, {}}}
	p := NewProcessor(nil,
		stubOCR{res: ocr.ExtractionResult{Text: "COSTCO ...", SourceType: constants.PDF, Confidence: 0.4}},
		&stubLLM{raw: costcoRaw()},
		extraction.NewValidator(nil),
		mat,
	)

	rows, err := p.ProcessFile(context.Background(), uuid.New(), "/in/costco.pdf")
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if mat.conf != nil {
		t.Fatalf("pdf confidence must not gate review, got %v", *mat.conf)
	}
	if mat.gotVal.StoreName != "Costco Wholesale" {
		t.Fatalf("store = %q", mat.gotVal.StoreName)
	}
	wantDate := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	if !mat.gotVal.ReceiptDate.Equal(wantDate) {
		t.Fatalf("date = %v, want %v", mat.gotVal.ReceiptDate, wantDate)
	}
}

func TestProcessFilePassesImageConfidence(t *testing.T) {
	mat := &spyMaterializer{}
	p := NewProcessor(nil,
		stubOCR{res: ocr.ExtractionResult{Text: "x", SourceType: constants.IMAGE, Confidence: 0.55}},
		&stubLLM{raw: costcoRaw()},
		extraction.NewValidator(nil),
		mat,
	)

	if _, err := p.ProcessFile(context.Background(), uuid.New(), "/in/blurry.jpg"); err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if mat.conf == nil || *mat.conf != 0.55 {
		t.Fatalf("image confidence should reach the materializer, got %v", mat.conf)
	}
}

func TestProcessFileOCRFailureWritesNothing(t *testing.T) {
	mat := &spyMaterializer{}
	p := NewProcessor(nil,
		stubOCR{err: errors.New("tesseract: exit status 1")},
		&stubLLM{raw: costcoRaw()},
		extraction.NewValidator(nil),
		mat,
	)

	if _, err := p.ProcessFile(context.Background(), uuid.New(), "/in/x.png"); err == nil {
		t.Fatal("expected error")
	}
	if mat.calls != 0 {
		t.Fatalf("materializer ran after OCR failure")
	}
}

func TestProcessFileValidationFailureWritesNothing(t *testing.T) {
	raw := costcoRaw()
	raw.Store.Name = " " // rejected before any insert
	mat := &spyMaterializer{}
	p := NewProcessor(nil,
		stubOCR{res: ocr.ExtractionResult{Text: "x", SourceType: constants.PDF}},
		&stubLLM{raw: raw},
		extraction.NewValidator(nil),
		mat,
	)

	_, err := p.ProcessFile(context.Background(), uuid.New(), "/in/x.pdf")
	if !errors.Is(err, extraction.ErrMissingStoreName) {
		t.Fatalf("err = %v, want ErrMissingStoreName", err)
	}
	if mat.calls != 0 {
		t.Fatalf("materializer ran after validation failure")
	}
}

func TestProcessFileSurfacesDuplicate(t *testing.T) {
	existing := &entity.Receipt{ID: uuid.New(), StoreName: "COSTCO", ReceiptDate: time.Now()}
	mat := &spyMaterializer{err: &receipts.DuplicateError{Existing: existing}}
	p := NewProcessor(nil,
		stubOCR{res: ocr.ExtractionResult{Text: "x", SourceType: constants.PDF}},
		&stubLLM{raw: costcoRaw()},
		extraction.NewValidator(nil),
		mat,
	)

	_, err := p.ProcessFile(context.Background(), uuid.New(), "/in/x.pdf")
	var dup *receipts.DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("err = %v, want *DuplicateError", err)
	}
	if dup.Existing.ID != existing.ID {
		t.Fatalf("wrong existing record surfaced")
	}
}

func TestProcessFileForwardsOCRTextToLLM(t *testing.T) {
	l := &stubLLM{raw: costcoRaw()}
	p := NewProcessor(nil,
		stubOCR{res: ocr.ExtractionResult{Text: "COSTCO WHOLESALE\nTOTAL 54.38", SourceType: constants.IMAGE, Confidence: 0.9}},
		l,
		extraction.NewValidator(nil),
		&spyMaterializer{},
	)

	if _, err := p.ProcessFile(context.Background(), uuid.New(), "/in/receipt-2025.jpg"); err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if l.req.OCRText == "" || l.req.OCRConfidence != 0.9 {
		t.Fatalf("request not populated: %+v", l.req)
	}
	if l.req.FilenameHint != "receipt-2025.jpg" {
		t.Fatalf("filename hint = %q", l.req.FilenameHint)
	}
}
