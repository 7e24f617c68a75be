// Package dates turns the date strings found on receipts into canonical
// calendar dates. Receipts show dates in wildly inconsistent formats and
// OCR often truncates digits, so parsing is deliberately fail-open: a
// date we cannot make sense of becomes "today" plus a signal the caller
// should flag the receipt for review.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reISO       = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	reYearFirst = regexp.MustCompile(`^(\d{4})[/-](\d{1,2})[/-](\d{1,2})(?:[ T].*)?$`)
	reTriad     = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{1,2})$`)
	reYearLast  = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})(?:[ T].*)?$`)
	reMonthName = regexp.MustCompile(`^([A-Za-z]{3,9})\.? (\d{1,2}),? (\d{4})$`)
)

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// fallback layouts for anything the positional rules miss
var genericLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2 January 2006",
	"02 Jan 2006",
	"2006.01.02",
}

// Normalize resolves an arbitrary receipt date string to a calendar date
// (midnight UTC, no time component). The second return value reports
// whether the input actually parsed; when false the result is today's
// date and the caller should mark the receipt for review. Normalize
// never fails: a malformed date must not block an otherwise valid
// receipt from being saved.
func Normalize(input string, now time.Time) (time.Time, bool) {
	s := strings.TrimSpace(input)
	today := midnight(now)
	if s == "" {
		return today, false
	}

	// 1. Already ISO.
	if m := reISO.FindStringSubmatch(s); m != nil {
		if d, ok := makeDate(atoi(m[1]), atoi(m[2]), atoi(m[3])); ok {
			return d, true
		}
		return today, false
	}

	// 2. YYYY/MM/DD, optionally with a trailing timestamp.
	if m := reYearFirst.FindStringSubmatch(s); m != nil {
		if d, ok := makeDate(atoi(m[1]), atoi(m[2]), atoi(m[3])); ok {
			return d, true
		}
		return today, false
	}

	// 3. Two-digit triad: disambiguate by which component is out of range.
	if m := reTriad.FindStringSubmatch(s); m != nil {
		a, b, c := atoi(m[1]), atoi(m[2]), atoi(m[3])
		var y, mo, da int
		switch {
		case b >= 1 && b <= 12 && c >= 1 && c <= 31 && a > 12:
			// YY/MM/DD: first number can't be a month or a day-of-month pair start
			y, mo, da = expandYear(a), b, c
		case a > 12 && b >= 1 && b <= 12:
			// DD/MM/YY
			y, mo, da = expandYear(c), b, a
		case b > 12 && a >= 1 && a <= 12:
			// MM/DD/YY
			y, mo, da = expandYear(c), a, b
		default:
			// All three plausible as months: assume DD/MM/YY.
			// Regional assumption inherited from the original layout; do not "fix".
			y, mo, da = expandYear(c), b, a
		}
		if d, ok := makeDate(y, mo, da); ok {
			return d, true
		}
		return today, false
	}

	// 4/5. Four-digit year last: MM/DD/YYYY when the first number fits a
	// month, otherwise DD/MM/YYYY.
	if m := reYearLast.FindStringSubmatch(s); m != nil {
		a, b, y := atoi(m[1]), atoi(m[2]), atoi(m[3])
		mo, da := a, b
		if a > 12 {
			mo, da = b, a
		}
		if d, ok := makeDate(y, mo, da); ok {
			return d, true
		}
		return today, false
	}

	// 6. English month names, prefix-matched ("Jun" matches "June").
	if m := reMonthName.FindStringSubmatch(s); m != nil {
		if mo, ok := monthByPrefix(m[1]); ok {
			if d, ok := makeDate(atoi(m[3]), mo, atoi(m[2])); ok {
				return d, true
			}
		}
		return today, false
	}

	// 7. Generic layouts as a last resort.
	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return midnight(t), true
		}
	}

	// 8. Give up: today, flagged.
	return today, false
}

// expandYear widens a two-digit year: 0-40 land in the 2000s, 41-99 in
// the 1900s.
func expandYear(v int) int {
	if v <= 40 {
		return 2000 + v
	}
	return 1900 + v
}

func monthByPrefix(name string) (int, bool) {
	p := strings.ToLower(name)
	for i, full := range monthNames {
		if strings.HasPrefix(full, p) {
			return i + 1, true
		}
	}
	return 0, false
}

// makeDate builds a date-only time and rejects impossible components
// (month 13, Feb 30) instead of letting time.Date roll them over.
func makeDate(y, mo, da int) (time.Time, bool) {
	if mo < 1 || mo > 12 || da < 1 || da > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(mo), da, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != mo || t.Day() != da {
		return time.Time{}, false
	}
	return t, true
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
