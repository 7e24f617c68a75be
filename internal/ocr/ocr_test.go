package ocr

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// stubRunner scripts the outputs of external commands per binary name.
type stubRunner struct {
	calls   []string
	outputs map[string][]byte
	fail    map[string]int // remaining failures per binary
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.calls = append(s.calls, name)
	if s.fail[name] > 0 {
		s.fail[name]--
		return nil, []byte("boom"), errors.New("exit status 1")
	}
	return s.outputs[name], nil, nil
}

func newTestExtractor(r Runner) *Extractor {
	e := NewExtractor(Config{RetryDelay: time.Millisecond}, nil)
	e.runner = r
	return e
}

func TestExtractRejectsUnknownExtension(t *testing.T) {
	r := &stubRunner{}
	e := newTestExtractor(r)

	_, err := e.Extract(context.Background(), "receipt.heic")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
	if len(r.calls) != 0 {
		t.Fatalf("no external tool should run for a rejected format, got %v", r.calls)
	}
}

func TestExtractImageHappyPath(t *testing.T) {
	r := &stubRunner{outputs: map[string][]byte{
		"tesseract": []byte("WALMART\r\nTOTAL   $12.34\r\n01/15/2025\n"),
	}}
	e := newTestExtractor(r)

	res, err := e.Extract(context.Background(), "receipt.jpg")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if res.Method != "image-ocr" || res.Pages != 1 {
		t.Fatalf("method=%q pages=%d", res.Method, res.Pages)
	}
	if strings.Contains(res.Text, "\r") || strings.Contains(res.Text, "  ") {
		t.Fatalf("text not normalized: %q", res.Text)
	}
	if res.Confidence <= 0.5 {
		t.Fatalf("receipt-like text should score above base, got %v", res.Confidence)
	}
}

func TestExtractRetriesOnceOnTransientFailure(t *testing.T) {
	r := &stubRunner{
		outputs: map[string][]byte{"tesseract": []byte("TOTAL 9.99")},
		fail:    map[string]int{"tesseract": 1},
	}
	e := newTestExtractor(r)

	res, err := e.Extract(context.Background(), "receipt.png")
	if err != nil {
		t.Fatalf("second attempt should succeed: %v", err)
	}
	if len(r.calls) != 2 {
		t.Fatalf("expected exactly one retry, got %d calls", len(r.calls))
	}
	if res.Text != "TOTAL 9.99" {
		t.Fatalf("text = %q", res.Text)
	}
}

func TestExtractGivesUpAfterSecondFailure(t *testing.T) {
	r := &stubRunner{fail: map[string]int{"tesseract": 2}}
	e := newTestExtractor(r)

	if _, err := e.Extract(context.Background(), "receipt.png"); err == nil {
		t.Fatal("expected error after both attempts fail")
	}
	if len(r.calls) != 2 {
		t.Fatalf("expected two attempts, got %d", len(r.calls))
	}
}

func TestExtractPDFUsesEmbeddedTextLayer(t *testing.T) {
	body := "COSTCO WHOLESALE\nMEMBER 111\nSUBTOTAL 50.00\nTAX 4.38\nTOTAL 54.38\n2025-03-02\n"
	r := &stubRunner{outputs: map[string][]byte{
		"pdftotext": []byte(body),
	}}
	e := newTestExtractor(r)

	res, err := e.Extract(context.Background(), "receipt.pdf")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if res.Method != "pdf-text" {
		t.Fatalf("method = %q, want pdf-text", res.Method)
	}
	for _, c := range r.calls {
		if c == "pdftoppm" || c == "tesseract" {
			t.Fatalf("should not rasterize when a text layer exists, calls=%v", r.calls)
		}
	}
}

func TestExtractPDFFallsBackToOCRWhenTextLayerEmpty(t *testing.T) {
	r := &stubRunner{outputs: map[string][]byte{
		"pdftotext": []byte("  \n"),
		"pdftoppm":  nil,
	}}
	e := newTestExtractor(r)

	// pdftoppm writes no PNGs into the stubbed temp dir, so the fallback
	// itself fails; we only assert the fallback was attempted.
	_, err := e.Extract(context.Background(), "receipt.pdf")
	if err == nil {
		t.Fatal("expected error when no pages render")
	}
	var sawPpm bool
	for _, c := range r.calls {
		if c == "pdftoppm" {
			sawPpm = true
		}
	}
	if !sawPpm {
		t.Fatalf("expected pdftoppm fallback, calls=%v", r.calls)
	}
}

func TestNormalize(t *testing.T) {
	in := "A\r\nB\t\tC\n\n\n\nD   E  \n____\nF"
	got := Normalize(reBoxNoise.ReplaceAllString(in, ""))
	if strings.Contains(got, "\r") || strings.Contains(got, "\t") {
		t.Fatalf("control chars survived: %q", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Fatalf("blank runs not collapsed: %q", got)
	}
	if strings.Contains(got, "05") {
		t.Fatalf("unexpected content: %q", got)
	}
}

func TestTesseractTSVConfidence(t *testing.T) {
	tsv := strings.Join([]string{
		"level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext",
		"5\t1\t1\t1\t1\t1\t0\t0\t10\t10\t80\tWALMART",
		"5\t1\t1\t1\t1\t2\t0\t0\t10\t10\t60\tTOTAL",
		"5\t1\t1\t1\t1\t3\t0\t0\t10\t10\t-1\t",
		// numeric word text (a price) must never be read as a confidence
		"5\t1\t1\t1\t1\t4\t0\t0\t10\t10\t-1\t12.34",
		"",
	}, "\n")
	r := &stubRunner{outputs: map[string][]byte{"tesseract": []byte(tsv)}}
	e := newTestExtractor(r)

	conf, _, err := e.tesseractTSVConfidence(context.Background(), "x.png")
	if err != nil {
		t.Fatalf("tsv confidence: %v", err)
	}
	if conf < 0.69 || conf > 0.71 {
		t.Fatalf("mean of 80 and 60 should be 0.70, got %v", conf)
	}
}

func TestHeuristicConfidence(t *testing.T) {
	if c := heuristicConfidence(""); c != 0.2 {
		t.Fatalf("empty text base = %v, want 0.2", c)
	}
	rich := "STORE 01/15/2025 $ TOTAL 12.34 " + strings.Repeat("x", 130)
	if c := heuristicConfidence(rich); c < 0.75 {
		t.Fatalf("rich receipt text should score high, got %v", c)
	}
}
