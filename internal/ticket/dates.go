package ticket

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDate parses a cell value into a calendar date at local midnight.
//
// Values containing a "/" are read as day/month/year with the year taken
// verbatim (no two-digit windowing). Anything else goes through a generic
// calendar parse that accepts ISO dates and common date-with-time strings;
// any time-of-day portion is discarded.
//
// The second return value is false when the input cannot be parsed.
// Malformed input never produces an error.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if strings.Contains(s, "/") {
		parts := strings.Split(s, "/")
		if len(parts) != 3 {
			return time.Time{}, false
		}
		day, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		month, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		year, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err1 != nil || err2 != nil || err3 != nil {
			return time.Time{}, false
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), true
	}

	t, err := dateparse.ParseLocal(s)
	if err != nil {
		return time.Time{}, false
	}
	return truncateToMidnight(t), true
}

// truncateToMidnight strips the time-of-day component.
func truncateToMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ElapsedDays returns the whole days elapsed between a start date and an
// end date, floored and clamped to zero. An empty endText means the ticket
// is still open and now is used instead. An unparseable start or end
// yields 0 rather than an error, so bad rows still render.
func ElapsedDays(startText, endText string, now time.Time) int {
	start, ok := ParseDate(startText)
	if !ok {
		return 0
	}

	end := truncateToMidnight(now)
	if strings.TrimSpace(endText) != "" {
		var okEnd bool
		end, okEnd = ParseDate(endText)
		if !okEnd {
			return 0
		}
	}

	days := int(end.Sub(start).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
