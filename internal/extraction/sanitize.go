package extraction

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"strconv"
	"strings"
)

// NormalizeAndSanitizeJSON
// - Strips markdown code fences around the JSON body
// - Renames known synonyms (date -> receiptDate, categories -> categoryReceipts)
// - Wraps a bare store string into {"name": ...}
// - Coerces string -> number for money fields, drops null/empty optionals
// - Removes unknown keys (strict additionalProperties = false friendliness)
func NormalizeAndSanitizeJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(StripCodeFences(raw), &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	dropped := make([]string, 0, 8)
	renamed := func(from, to string) {
		if v, ok := m[from]; ok {
			// don't overwrite existing value if already present
			if _, exists := m[to]; !exists {
				m[to] = v
			}
			delete(m, from)
			dropped = append(dropped, from+"->"+to)
		}
	}

	// 1) rename synonyms to our schema
	renamed("date", "receiptDate")
	renamed("receipt_date", "receiptDate")
	renamed("payment_method", "paymentMethod")
	renamed("categories", "categoryReceipts")
	renamed("category_receipts", "categoryReceipts")
	renamed("needs_review", "needsReview")

	// 2) a bare merchant string instead of the store object
	switch s := m["store"].(type) {
	case string:
		m["store"] = map[string]any{"name": strings.TrimSpace(s)}
		dropped = append(dropped, "store(wrapped)")
	case nil:
		if name, ok := m["storeName"].(string); ok {
			m["store"] = map[string]any{"name": strings.TrimSpace(name)}
			delete(m, "storeName")
			dropped = append(dropped, "storeName->store.name")
		}
	}

	// 3) a top-level total instead of the totals object
	if _, hasTotals := m["totals"]; !hasTotals {
		if v, ok := m["total"]; ok {
			m["totals"] = map[string]any{"total": v}
			delete(m, "total")
			dropped = append(dropped, "total->totals.total")
		}
	}

	// 4) money coercion inside totals and each category entry
	if totals, ok := m["totals"].(map[string]any); ok {
		coerceMoneyFields(totals, []string{"subtotal", "tax", "total"}, "totals.", &dropped)
	}
	if cats, ok := m["categoryReceipts"].([]any); ok {
		for i, c := range cats {
			entry, ok := c.(map[string]any)
			if !ok {
				continue
			}
			prefix := fmt.Sprintf("categoryReceipts[%d].", i)
			coerceMoneyFields(entry, []string{"subtotal", "tax", "total"}, prefix, &dropped)
			if v, ok := entry["category"].(string); ok {
				entry["category"] = strings.TrimSpace(v)
			}
		}
	}

	// 5) needsReview sometimes arrives as a string
	if v, ok := m["needsReview"].(string); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			m["needsReview"] = b
		} else {
			delete(m, "needsReview")
			dropped = append(dropped, "needsReview(type)")
		}
	}

	// 6) remove unknown top-level keys
	allowed := map[string]struct{}{
		"store": {}, "receiptDate": {}, "paymentMethod": {},
		"totals": {}, "categoryReceipts": {}, "needsReview": {},
	}
	for k := range maps.Clone(m) {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
		}
	}

	// 7) trim obvious strings
	if store, ok := m["store"].(map[string]any); ok {
		for _, k := range []string{"name", "phone"} {
			if v, ok := store[k].(string); ok {
				s := strings.TrimSpace(v)
				if s == "" {
					delete(store, k)
					dropped = append(dropped, "store."+k+"(empty)")
				} else {
					store[k] = s
				}
			}
		}
	}
	for _, k := range []string{"receiptDate", "paymentMethod"} {
		if v, ok := m[k].(string); ok {
			s := strings.TrimSpace(v)
			if s == "" {
				delete(m, k)
				dropped = append(dropped, k+"(empty)")
			} else {
				m[k] = s
			}
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Warn("extraction.sanitize", "dropped", dropped)
	}
	return out, dropped, nil
}

// coerceMoneyFields normalizes the money-ish keys of obj in place:
// numeric strings parse to numbers, null and unparseable values drop.
func coerceMoneyFields(obj map[string]any, keys []string, prefix string, dropped *[]string) {
	for _, k := range keys {
		v, ok := obj[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case float64:
			// already a number
		case string:
			s := strings.TrimSpace(strings.TrimPrefix(t, "$"))
			s = strings.ReplaceAll(s, ",", "")
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				obj[k] = f
				*dropped = append(*dropped, prefix+k+"(string)")
			} else {
				delete(obj, k)
				*dropped = append(*dropped, prefix+k+"(unparseable)")
			}
		case nil:
			delete(obj, k)
			*dropped = append(*dropped, prefix+k+"(null)")
		default:
			delete(obj, k)
			*dropped = append(*dropped, prefix+k+"(type)")
		}
	}
}

// StripCodeFences removes a surrounding markdown fence, with or without
// a language tag, returning the inner body.
func StripCodeFences(raw []byte) []byte {
	s := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(s, "```") {
		return raw
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		// drop the language tag line ("json", "JSON", or empty)
		first := strings.TrimSpace(s[:idx])
		if first == "" || strings.EqualFold(first, "json") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return []byte(strings.TrimSpace(s))
}
