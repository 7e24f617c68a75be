package dates

import (
	"testing"
	"time"
)

var testNow = time.Date(2024, 6, 15, 13, 45, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   time.Time
		parsed bool
	}{
		{
			name:   "iso date verbatim",
			input:  "2024-01-15",
			want:   date(2024, 1, 15),
			parsed: true,
		},
		{
			name:   "slash year first with timestamp",
			input:  "2025/11/21 12:52:58",
			want:   date(2025, 11, 21),
			parsed: true,
		},
		{
			name:   "triad year first by out-of-range first number",
			input:  "26/01/08",
			want:   date(2026, 1, 8),
			parsed: true,
		},
		{
			name:   "triad fully ambiguous defaults to dd/mm/yy",
			input:  "08/01/26",
			want:   date(2026, 1, 8),
			parsed: true,
		},
		{
			name:   "triad mm/dd/yy by out-of-range second number",
			input:  "01/26/08",
			want:   date(2008, 1, 26),
			parsed: true,
		},
		{
			name:   "triad dd/mm/yy by out-of-range first number",
			input:  "25/03/99",
			want:   date(1999, 3, 25),
			parsed: true,
		},
		{
			name:   "mm/dd/yyyy",
			input:  "03/14/2023",
			want:   date(2023, 3, 14),
			parsed: true,
		},
		{
			name:   "dd/mm/yyyy when first number exceeds twelve",
			input:  "25/03/2023",
			want:   date(2023, 3, 25),
			parsed: true,
		},
		{
			name:   "full month name",
			input:  "June 5, 2024",
			want:   date(2024, 6, 5),
			parsed: true,
		},
		{
			name:   "abbreviated month name without comma",
			input:  "Jun 5 2024",
			want:   date(2024, 6, 5),
			parsed: true,
		},
		{
			name:   "generic rfc3339",
			input:  "2024-02-03T10:30:00Z",
			want:   date(2024, 2, 3),
			parsed: true,
		},
		{
			name:   "garbage falls open to today",
			input:  "garbage-not-a-date",
			want:   date(2024, 6, 15),
			parsed: false,
		},
		{
			name:   "empty falls open to today",
			input:  "",
			want:   date(2024, 6, 15),
			parsed: false,
		},
		{
			name:   "impossible calendar date falls open",
			input:  "2023-02-30",
			want:   date(2024, 6, 15),
			parsed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, parsed := Normalize(tt.input, testNow)
			if !got.Equal(tt.want) {
				t.Errorf("Normalize(%q) = %s, want %s", tt.input, got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
			if parsed != tt.parsed {
				t.Errorf("Normalize(%q) parsed = %v, want %v", tt.input, parsed, tt.parsed)
			}
		})
	}
}

// Every ISO-formatted date in 1900..2099 must round-trip unchanged.
func TestNormalizeISORoundTrip(t *testing.T) {
	start := date(1900, 1, 1)
	end := date(2099, 12, 31)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		got, parsed := Normalize(d.Format("2006-01-02"), testNow)
		if !parsed || !got.Equal(d) {
			t.Fatalf("round-trip failed for %s: got %s (parsed=%v)", d.Format("2006-01-02"), got.Format("2006-01-02"), parsed)
		}
	}
}

func TestExpandYear(t *testing.T) {
	cases := map[int]int{0: 2000, 8: 2008, 40: 2040, 41: 1941, 99: 1999}
	for in, want := range cases {
		if got := expandYear(in); got != want {
			t.Errorf("expandYear(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestNormalizeNeverPanics(t *testing.T) {
	inputs := []string{"//", "99/99/99", "13/13/13", "0/0/0", "Monthuary 5, 2024", "2024-1-1-1"}
	for _, in := range inputs {
		got, _ := Normalize(in, testNow)
		if got.IsZero() {
			t.Errorf("Normalize(%q) returned zero time", in)
		}
	}
}
