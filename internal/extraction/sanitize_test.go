package extraction

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNormalizeAndSanitizeJSON(t *testing.T) {
	raw := []byte("```json\n" + `{
		"store": "The Corner Shop",
		"date": "21/06/2024",
		"payment_method": "card",
		"total": "12.40",
		"categories": [
			{"category": " grocery ", "total": "8.40"},
			{"category": "household", "total": 4.0, "tax": null}
		],
		"model_notes": "extracted with high confidence"
	}` + "\n```")

	out, dropped, err := NormalizeAndSanitizeJSON(raw, nil)
	if err != nil {
		t.Fatalf("NormalizeAndSanitizeJSON() error = %v", err)
	}

	var got RawExtraction
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal sanitized: %v", err)
	}
	if got.Store.Name != "The Corner Shop" {
		t.Errorf("Store.Name = %q", got.Store.Name)
	}
	if got.ReceiptDate != "21/06/2024" {
		t.Errorf("ReceiptDate = %q", got.ReceiptDate)
	}
	if got.PaymentMethod != "card" {
		t.Errorf("PaymentMethod = %q", got.PaymentMethod)
	}
	if got.Totals.Total == nil || *got.Totals.Total != 12.40 {
		t.Errorf("Totals.Total = %v, want 12.40", got.Totals.Total)
	}
	if len(got.CategoryReceipts) != 2 {
		t.Fatalf("CategoryReceipts = %d entries, want 2", len(got.CategoryReceipts))
	}
	if got.CategoryReceipts[0].Category != "grocery" {
		t.Errorf("category[0] = %q, want trimmed %q", got.CategoryReceipts[0].Category, "grocery")
	}
	if got.CategoryReceipts[0].Total == nil || *got.CategoryReceipts[0].Total != 8.40 {
		t.Errorf("category[0].Total = %v, want 8.40", got.CategoryReceipts[0].Total)
	}
	if got.CategoryReceipts[1].Tax != nil {
		t.Errorf("category[1].Tax = %v, want dropped null", *got.CategoryReceipts[1].Tax)
	}

	// the unknown key must have been removed
	if strings.Contains(string(out), "model_notes") {
		t.Error("unknown key model_notes survived sanitize")
	}
	if len(dropped) == 0 {
		t.Error("expected dropped keys to be reported")
	}
}

func TestSanitizedOutputPassesSchema(t *testing.T) {
	raw := []byte(`{
		"store": {"name": "COSTCO"},
		"receiptDate": "2025-11-21",
		"totals": {"total": "12.40", "subtotal": 11.48, "tax": "0.92"},
		"categoryReceipts": [{"category": "grocery", "total": "12.40"}],
		"confidence": 0.93
	}`)

	out, _, err := NormalizeAndSanitizeJSON(raw, nil)
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}
	if err := ValidateJSONAgainstSchema(BuildExtractionJSONSchema(), out); err != nil {
		t.Fatalf("sanitized output rejected by schema: %v", err)
	}
}

func TestSchemaRejectsMissingRequired(t *testing.T) {
	schema := BuildExtractionJSONSchema()
	tests := []struct {
		name string
		doc  string
	}{
		{name: "no store", doc: `{"receiptDate":"x","totals":{"total":1},"categoryReceipts":[{"category":"A","total":1}]}`},
		{name: "no total", doc: `{"store":{"name":"A"},"receiptDate":"x","totals":{},"categoryReceipts":[{"category":"A","total":1}]}`},
		{name: "empty categories", doc: `{"store":{"name":"A"},"receiptDate":"x","totals":{"total":1},"categoryReceipts":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateJSONAgainstSchema(schema, []byte(tt.doc)); err == nil {
				t.Error("schema accepted invalid document")
			}
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "json fence", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "bare fence", in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "no fence", in: `{"a":1}`, want: `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(StripCodeFences([]byte(tt.in))); got != tt.want {
				t.Errorf("StripCodeFences() = %q, want %q", got, tt.want)
			}
		})
	}
}
