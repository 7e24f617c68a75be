package llm

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestBuildUserPromptIncludesHintAndText(t *testing.T) {
	got := BuildUserPrompt(ExtractRequest{
		OCRText:      "WALMART\nTOTAL 12.34",
		FilenameHint: "walmart-2025-03-02.pdf",
	})
	if !strings.Contains(got, "Filename: walmart-2025-03-02.pdf") {
		t.Errorf("prompt missing filename hint:\n%s", got)
	}
	if !strings.Contains(got, "TOTAL 12.34") {
		t.Errorf("prompt missing OCR text:\n%s", got)
	}
}

func TestBuildUserPromptTruncatesLongOCR(t *testing.T) {
	got := BuildUserPrompt(ExtractRequest{OCRText: strings.Repeat("x", 10_000)})
	if !strings.Contains(got, "(truncated)") {
		t.Fatal("expected truncation marker for oversized OCR text")
	}
	if len(got) > 4000 {
		t.Errorf("prompt length = %d, want capped near 3k", len(got))
	}
}

func TestSchemaJSONIsValidJSON(t *testing.T) {
	var decoded map[string]any
	if err := json.Unmarshal([]byte(SchemaJSON()), &decoded); err != nil {
		t.Fatalf("schema does not parse: %v", err)
	}
	props, ok := decoded["properties"].(map[string]any)
	if !ok {
		t.Fatal("schema missing properties object")
	}
	for _, key := range []string{"store", "receiptDate", "totals", "categoryReceipts"} {
		if _, ok := props[key]; !ok {
			t.Errorf("schema missing property %q", key)
		}
	}
}

func TestBuildSystemPromptMentionsContractRules(t *testing.T) {
	got := BuildSystemPrompt()
	for _, want := range []string{"JSON Schema", "categoryReceipts", "YYYY-MM-DD", "needsReview"} {
		if !strings.Contains(got, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}
