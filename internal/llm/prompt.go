package llm

import (
	"encoding/json"
	"strings"

	"github.com/expenselens/expense-tracker/internal/extraction"
)

// BuildSystemPrompt composes the system message: output contract, the
// worked examples the validator relies on downstream, and date-format
// guidance mirrored from the date normalizer's heuristics.
func BuildSystemPrompt() string {
	parts := []string{
		"You are a receipts parser. Return ONLY JSON that matches the provided JSON Schema.",
		"Break the receipt into one categoryReceipts entry per spending category; the category totals MUST sum to totals.total.",

		// Store-name vs slogan: receipts print taglines above the actual name.
		"The store name is the business name, never the slogan. Example: a header reading " +
			`"SAVE MONEY. LIVE BETTER." above "WALMART" has store.name "WALMART".`,

		// Product-code stripping.
		"Ignore product codes, SKUs, and barcode digits when reading line items. " +
			`Example: "0070847811169 MONSTER ENERGY 3.48" is the item "MONSTER ENERGY" at 3.48.`,

		// Insurance vs patient-paid on pharmacy receipts.
		"On pharmacy receipts showing both an insurance-paid amount and a patient-paid amount, " +
			"totals.total is what the patient actually paid. " +
			`Example: "INSURANCE PAID 45.00 / PATIENT PAY 10.00" has totals.total 10.00.`,

		// Date guidance, mirroring the normalizer's resolution rules.
		"Prefer emitting receiptDate as YYYY-MM-DD. When the printed date is a two-digit triad, " +
			"use any out-of-range component to disambiguate: a first number above 12 with a valid month " +
			"and day after it means year/month/day; a first number above 12 otherwise means day/month/year; " +
			"a second number above 12 means month/day/year. If every number could be a month, read it as day/month/year.",

		"Use paymentMethod when the tender is visible (card, cash, etc.).",
		"Set needsReview true when the text is too degraded to read amounts confidently.",
		"Never output null. If a field is not present, omit it.",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt packages the OCR text plus a filename hint, capped so a
// pathological OCR dump cannot blow up the request.
func BuildUserPrompt(req ExtractRequest) string {
	var b strings.Builder
	if f := strings.TrimSpace(req.FilenameHint); f != "" {
		b.WriteString("Filename: ")
		b.WriteString(f)
		b.WriteString("\n")
	}
	b.WriteString("\nOCR text (first ~3k chars):\n")
	ocr := strings.TrimSpace(req.OCRText)
	if len(ocr) > 3000 {
		b.WriteString(ocr[:3000])
		b.WriteString("\n…(truncated)")
	} else {
		b.WriteString(ocr)
	}
	b.WriteString("\n\nReturn ONLY JSON that matches the provided schema.")
	return b.String()
}

// SchemaJSON renders the extraction schema for embedding in a prompt.
func SchemaJSON() string {
	b, _ := json.MarshalIndent(extraction.BuildExtractionJSONSchema(), "", "  ")
	return string(b)
}
