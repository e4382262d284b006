package ops

import (
	"time"

	"github.com/avaldes/peticiones/internal/ticket"
)

// StatsOutput summarizes the loaded dataset.
type StatsOutput struct {
	Total       int     `json:"total"`
	Answered    int     `json:"answered"`
	Pending     int     `json:"pending"`
	MeanElapsed float64 `json:"mean_elapsed_days"`
	MaxElapsed  int     `json:"max_elapsed_days"`
}

// ComputeStats counts answered vs pending tickets and aggregates elapsed
// days. Rows without a parseable start date contribute to the counts but
// are excluded from the elapsed aggregates, so one bad cell does not skew
// the mean toward zero.
func ComputeStats(rows []ticket.Row, now time.Time) StatsOutput {
	out := StatsOutput{Total: len(rows)}

	sum, dated := 0, 0
	for _, row := range rows {
		if row.Answered() {
			out.Answered++
		} else {
			out.Pending++
		}

		if _, ok := ticket.ParseDate(row.StartDate()); !ok {
			continue
		}
		days := row.Elapsed(now)
		sum += days
		dated++
		if days > out.MaxElapsed {
			out.MaxElapsed = days
		}
	}

	if dated > 0 {
		out.MeanElapsed = float64(sum) / float64(dated)
	}
	return out
}
