package ops

import (
	"fmt"
	"strings"

	"github.com/avaldes/peticiones/internal/errors"
	"github.com/avaldes/peticiones/internal/ticket"
)

// Status selects which tickets are visible.
type Status string

const (
	StatusAll      Status = "all"
	StatusAnswered Status = "answered"
	StatusPending  Status = "pending"
)

// ParseStatus maps user input onto a Status. Empty input means all.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case "", StatusAll:
		return StatusAll, nil
	case StatusAnswered:
		return StatusAnswered, nil
	case StatusPending:
		return StatusPending, nil
	default:
		return "", errors.NewInvalidRequest(fmt.Sprintf("unknown status %q (expected all, answered, or pending)", s))
	}
}

// Criteria is the transient filter state: free-text query plus status.
type Criteria struct {
	Query  string `json:"query"`
	Status Status `json:"status"`
}

// Filter returns the order-preserving subsequence of rows matching both the
// text query and the status selector. Pure function of its inputs.
func Filter(rows []ticket.Row, criteria Criteria) []ticket.Row {
	out := make([]ticket.Row, 0, len(rows))
	for _, row := range rows {
		if !row.Matches(criteria.Query) {
			continue
		}
		switch criteria.Status {
		case StatusAnswered:
			if !row.Answered() {
				continue
			}
		case StatusPending:
			if row.Answered() {
				continue
			}
		}
		out = append(out, row)
	}
	return out
}
