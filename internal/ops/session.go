package ops

import (
	"context"
	"net/http"
	"sync"

	"github.com/avaldes/peticiones/internal/config"
	"github.com/avaldes/peticiones/internal/ticket"
)

// Session owns the single "current dataset" slot and the current filter
// criteria for the long-running surfaces (web UI, MCP server). The CLI
// creates a throwaway one per invocation.
//
// Reload fetches without holding the lock, so overlapping reloads are
// allowed and the last one to resolve wins; the snapshot ULID records
// which one that was. Readers always see a whole snapshot, never a
// partially replaced one.
type Session struct {
	client *http.Client
	cfg    *config.Config

	mu       sync.RWMutex
	snap     *LoadOutput
	criteria Criteria
	loadErr  error
}

// NewSession creates a Session. A nil client gets a default one sized by
// the configured fetch timeout.
func NewSession(client *http.Client, cfg *config.Config) *Session {
	if client == nil {
		client = &http.Client{Timeout: cfg.HTTPTimeout()}
	}
	return &Session{
		client:   client,
		cfg:      cfg,
		criteria: Criteria{Status: StatusAll},
	}
}

// Reload fetches a fresh snapshot and replaces the slot. On failure the
// error is recorded for the banner and the previous snapshot, if any,
// stays visible so the filter controls keep working over it.
func (s *Session) Reload(ctx context.Context) error {
	out, err := Load(ctx, s.client, s.cfg)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.loadErr = err
		return err
	}
	s.snap = out
	s.loadErr = nil
	return nil
}

// Snapshot returns the current snapshot, or nil before the first
// successful load.
func (s *Session) Snapshot() *LoadOutput {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Rows returns the rows of the current snapshot (empty before first load).
func (s *Session) Rows() []ticket.Row {
	if snap := s.Snapshot(); snap != nil {
		return snap.Rows
	}
	return nil
}

// LastError returns the most recent load error, cleared by a successful
// reload.
func (s *Session) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// SetCriteria replaces the current filter criteria.
func (s *Session) SetCriteria(c Criteria) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.Status == "" {
		c.Status = StatusAll
	}
	s.criteria = c
}

// Criteria returns the current filter criteria.
func (s *Session) Criteria() Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria
}

// Visible applies the current criteria to the current snapshot.
func (s *Session) Visible() []ticket.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil
	}
	return Filter(s.snap.Rows, s.criteria)
}

// View returns the current snapshot together with its filtered rows,
// read under one lock. Callers that need both must use this instead of
// Snapshot+Visible: a reload landing between two separate reads would
// leave the filtered rows pointing into the wrong snapshot.
func (s *Session) View() (*LoadOutput, []ticket.Row) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil, nil
	}
	return s.snap, Filter(s.snap.Rows, s.criteria)
}
