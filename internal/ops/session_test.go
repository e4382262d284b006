package ops

import (
	"context"
	"maps"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/avaldes/peticiones/internal/config"
	"github.com/avaldes/peticiones/internal/errors"
)

func TestSession_EmptyBeforeFirstLoad(t *testing.T) {
	s := NewSession(nil, &config.Config{})

	if s.Snapshot() != nil {
		t.Errorf("Snapshot() should be nil before first load")
	}
	if len(s.Visible()) != 0 {
		t.Errorf("Visible() should be empty before first load")
	}
	if s.LastError() != nil {
		t.Errorf("LastError() should be nil before first load")
	}
}

func TestSession_ReloadReplacesSnapshot(t *testing.T) {
	body := sampleCSV
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	s := NewSession(srv.Client(), &config.Config{CSVURL: srv.URL})

	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	first := s.Snapshot()
	if len(first.Rows) != 3 {
		t.Fatalf("len(Rows) = %d, want 3", len(first.Rows))
	}

	mu.Lock()
	body = "Petición,Respondida\núnica,no\n"
	mu.Unlock()

	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	second := s.Snapshot()

	// Whole-slot replacement: the later load wins and gets a later ULID.
	if len(second.Rows) != 1 {
		t.Errorf("len(Rows) = %d, want 1 after reload", len(second.Rows))
	}
	if second.SnapshotID <= first.SnapshotID {
		t.Errorf("snapshot IDs should be monotonically ordered: %s then %s", first.SnapshotID, second.SnapshotID)
	}
}

func TestSession_FailedReloadKeepsPreviousSnapshot(t *testing.T) {
	fail := false
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	s := NewSession(srv.Client(), &config.Config{CSVURL: srv.URL})
	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	mu.Lock()
	fail = true
	mu.Unlock()

	err := s.Reload(context.Background())
	if !errors.Is(err, errors.ErrNetwork) {
		t.Fatalf("Reload() error = %v, want NETWORK", err)
	}

	// Filter controls keep operating over the previously loaded dataset.
	if len(s.Rows()) != 3 {
		t.Errorf("previous snapshot should survive a failed reload")
	}
	if s.LastError() == nil {
		t.Errorf("LastError() should record the failure")
	}

	mu.Lock()
	fail = false
	mu.Unlock()

	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if s.LastError() != nil {
		t.Errorf("a successful reload should clear LastError()")
	}
}

func TestSession_CriteriaDriveVisible(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	s := NewSession(srv.Client(), &config.Config{CSVURL: srv.URL})
	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	if got := s.Criteria(); got.Status != StatusAll {
		t.Fatalf("default status = %q, want all", got.Status)
	}

	s.SetCriteria(Criteria{Status: StatusPending})
	visible := s.Visible()
	if len(visible) != 2 {
		t.Fatalf("Visible() = %d rows, want 2 pending", len(visible))
	}

	s.SetCriteria(Criteria{Query: "Pérez", Status: StatusPending})
	visible = s.Visible()
	if len(visible) != 1 {
		t.Fatalf("Visible() = %d rows, want 1", len(visible))
	}
	if visible[0].Assignee() != "Pérez" {
		t.Errorf("Assignee() = %q", visible[0].Assignee())
	}
}

func TestSession_ViewIsConsistentUnderReload(t *testing.T) {
	bodies := [2]string{sampleCSV, "Petición,Respondida\núnica,no\n"}
	var (
		mu   sync.Mutex
		turn int
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		_, _ = w.Write([]byte(bodies[turn%2]))
		turn++
	}))
	defer srv.Close()

	s := NewSession(srv.Client(), &config.Config{CSVURL: srv.URL})
	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	s.SetCriteria(Criteria{Status: StatusPending})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			_ = s.Reload(context.Background())
		}
	}()

	// The filtered rows must be an order-preserving subsequence of the
	// snapshot they were read with, even while reloads swap the slot.
	for alive := true; alive; {
		select {
		case <-done:
			alive = false
		default:
		}
		snap, visible := s.View()
		if snap == nil {
			continue
		}
		pos := 0
		for _, row := range visible {
			for pos < len(snap.Rows) && !maps.Equal(snap.Rows[pos], row) {
				pos++
			}
			if pos == len(snap.Rows) {
				t.Fatalf("filtered row %v is not part of snapshot %s", row, snap.SnapshotID)
			}
			pos++
		}
	}
}
