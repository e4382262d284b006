package ticket

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestParseDate_SlashFormat(t *testing.T) {
	got, ok := ParseDate("25/12/2023")
	if !ok {
		t.Fatalf("ParseDate(\"25/12/2023\") not ok")
	}
	if !got.Equal(date(2023, time.December, 25)) {
		t.Errorf("ParseDate(\"25/12/2023\") = %v, want 2023-12-25", got)
	}
}

func TestParseDate_ISOFormat(t *testing.T) {
	got, ok := ParseDate("2023-12-25")
	if !ok {
		t.Fatalf("ParseDate(\"2023-12-25\") not ok")
	}
	if !got.Equal(date(2023, time.December, 25)) {
		t.Errorf("ParseDate(\"2023-12-25\") = %v, want 2023-12-25", got)
	}
}

func TestParseDate_SlashAndISOAgree(t *testing.T) {
	slash, ok1 := ParseDate("25/12/2023")
	iso, ok2 := ParseDate("2023-12-25")
	if !ok1 || !ok2 {
		t.Fatalf("both formats should parse")
	}
	if !slash.Equal(iso) {
		t.Errorf("25/12/2023 (%v) != 2023-12-25 (%v)", slash, iso)
	}
}

func TestParseDate_TimePortionIgnored(t *testing.T) {
	got, ok := ParseDate("2023-12-25 14:30:00")
	if !ok {
		t.Fatalf("date-with-time should parse")
	}
	if !got.Equal(date(2023, time.December, 25)) {
		t.Errorf("time portion not truncated: got %v", got)
	}
}

func TestParseDate_LiteralYear(t *testing.T) {
	// Two-digit years are used verbatim, no century windowing.
	got, ok := ParseDate("5/3/99")
	if !ok {
		t.Fatalf("5/3/99 should parse")
	}
	if got.Year() != 99 {
		t.Errorf("year = %d, want literal 99", got.Year())
	}
}

func TestParseDate_Unparseable(t *testing.T) {
	for _, s := range []string{"", "   ", "not-a-date", "12/2023", "a/b/c", "1/2/3/4"} {
		if _, ok := ParseDate(s); ok {
			t.Errorf("ParseDate(%q) ok, want unparseable", s)
		}
	}
}

func TestElapsedDays(t *testing.T) {
	now := date(2024, time.June, 15)

	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"two days apart", "01/01/2024", "03/01/2024", 2},
		{"same day", "01/01/2024", "01/01/2024", 0},
		{"end before start clamps", "03/01/2024", "01/01/2024", 0},
		{"unparseable start", "", "01/01/2024", 0},
		{"unparseable end", "01/01/2024", "garbage", 0},
		{"mixed formats", "2024-01-01", "03/01/2024", 2},
		{"open ticket falls back to now", "10/06/2024", "", 5},
		{"open ticket unparseable start", "nope", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ElapsedDays(tt.start, tt.end, now); got != tt.want {
				t.Errorf("ElapsedDays(%q, %q) = %d, want %d", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestElapsedDays_NowTimeOfDayIgnored(t *testing.T) {
	// The calculation counts midnights, not 24h periods from the fetch time.
	now := time.Date(2024, time.June, 15, 23, 59, 0, 0, time.Local)
	if got := ElapsedDays("14/06/2024", "", now); got != 1 {
		t.Errorf("ElapsedDays = %d, want 1", got)
	}
}
