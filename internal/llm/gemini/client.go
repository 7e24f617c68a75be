// Package gemini implements llm.ReceiptExtractor on Google's GenAI API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/expenselens/expense-tracker/internal/extraction"
	"github.com/expenselens/expense-tracker/internal/llm"
)

const DefaultModel = "gemini-2.0-flash"

type Client struct {
	client *genai.Client
	model  string
	log    *slog.Logger
}

// NewClient creates a GenAI-backed extractor. Credentials come from the
// environment (GEMINI_API_KEY / application default credentials), the
// same way the SDK resolves them everywhere else.
func NewClient(ctx context.Context, model string, logger *slog.Logger) (*Client, error) {
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{client: client, model: model, log: logger}, nil
}

// ExtractReceipt sends the prompt and schema as a single user turn and
// runs the response through the same sanitize/schema/decode gate as the
// other providers.
func (c *Client) ExtractReceipt(ctx context.Context, req llm.ExtractRequest) (*extraction.RawExtraction, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"model", c.model,
		"text_len", len(req.OCRText),
		"ocr_confidence", req.OCRConfidence,
	)

	prompt := llm.BuildSystemPrompt() +
		"\n\nJSON Schema:\n" + llm.SchemaJSON() +
		"\n\n" + llm.BuildUserPrompt(req)

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, nil, fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		c.log.Error("llm.extract.empty_response", "req_id", rid)
		return nil, nil, fmt.Errorf("empty response from model")
	}

	cleaned, dropped, err := extraction.NormalizeAndSanitizeJSON([]byte(text), c.log)
	if err != nil {
		c.log.Error("llm.extract.sanitize_failed", "req_id", rid, "error", err)
		return nil, []byte(text), fmt.Errorf("sanitize response: %w", err)
	}
	if len(dropped) > 0 {
		c.log.Warn("llm.extract.sanitize_applied", "req_id", rid, "dropped", dropped)
	}

	if err := extraction.ValidateJSONAgainstSchema(extraction.BuildExtractionJSONSchema(), cleaned); err != nil {
		c.log.Error("llm.extract.schema_validation_failed", "req_id", rid, "error", err, "content", string(cleaned))
		return nil, cleaned, fmt.Errorf("schema validation failed: %w", err)
	}

	var out extraction.RawExtraction
	if err := json.Unmarshal(cleaned, &out); err != nil {
		c.log.Error("llm.extract.unmarshal_failed", "req_id", rid, "error", err)
		return nil, cleaned, fmt.Errorf("unmarshal extraction: %w", err)
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"store", out.Store.Name,
		"date", out.ReceiptDate,
		"categories", len(out.CategoryReceipts),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return &out, cleaned, nil
}
