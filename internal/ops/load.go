package ops

import (
	"context"
	"encoding/csv"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/avaldes/peticiones/internal/config"
	"github.com/avaldes/peticiones/internal/errors"
	"github.com/avaldes/peticiones/internal/ticket"
)

// LoadOutput is one immutable snapshot of the remote sheet.
type LoadOutput struct {
	// SnapshotID is a fresh ULID per load; it makes the last-writer-wins
	// replacement of the current dataset observable.
	SnapshotID string       `json:"snapshot_id"`
	FetchedAt  time.Time    `json:"fetched_at"`
	Rows       []ticket.Row `json:"rows"`
}

// Load fetches the configured CSV endpoint, tokenizes the body, and re-keys
// every row through the header normalizer. One attempt, no retry, no cache.
// Failures map onto the CONFIG/NETWORK/PARSE taxonomy; a nil error means a
// complete, internally consistent snapshot.
func Load(ctx context.Context, client *http.Client, cfg *config.Config) (*LoadOutput, error) {
	endpoint := strings.TrimSpace(cfg.CSVURL)
	if endpoint == "" {
		loadsTotal.WithLabelValues("config").Inc()
		return nil, errors.NewConfigMissing()
	}

	if client == nil {
		client = &http.Client{Timeout: cfg.HTTPTimeout()}
	}

	start := time.Now()
	defer func() { loadDuration.Observe(time.Since(start).Seconds()) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		loadsTotal.WithLabelValues("network").Inc()
		return nil, errors.NewNetwork(0, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		loadsTotal.WithLabelValues("network").Inc()
		return nil, errors.NewNetwork(0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		loadsTotal.WithLabelValues("network").Inc()
		return nil, errors.NewNetwork(resp.StatusCode, nil)
	}

	// The CSV tokenizer is a collaborator: its errors propagate verbatim.
	// Ragged records pass through; short rows read as empty lookups.
	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		loadsTotal.WithLabelValues("parse").Inc()
		return nil, errors.NewParse(err)
	}

	out := &LoadOutput{
		SnapshotID: ulid.Make().String(),
		FetchedAt:  time.Now(),
	}
	if len(records) > 0 {
		out.Rows = ticket.NormalizeRows(records[0], records[1:])
	}

	loadsTotal.WithLabelValues("ok").Inc()
	rowsLoaded.Set(float64(len(out.Rows)))
	return out, nil
}
