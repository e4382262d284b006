package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/avaldes/peticiones/internal/config"
	"github.com/avaldes/peticiones/internal/errors"
	"github.com/avaldes/peticiones/internal/ops"
	"github.com/avaldes/peticiones/internal/ticket"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	session  *ops.Session
	cfg      *config.Config
	renderer *Renderer

	// now is overridable in tests; defaults to time.Now.
	now func() time.Time
}

// clock returns the handler's time source.
func (h *Handlers) clock() time.Time {
	if h.now != nil {
		return h.now()
	}
	return time.Now()
}

// RowView is one table row with its derived display columns.
type RowView struct {
	Index      int
	Request    string
	Assignee   string
	Date       string
	Answered   bool
	AnswerDate string
	Elapsed    int
}

// buildRowViews derives the display columns for each visible row. The
// filtered rows are an order-preserving subsequence of the snapshot, so a
// two-pointer scan recovers each row's snapshot index for the detail link.
func buildRowViews(all, visible []ticket.Row, now time.Time) []RowView {
	views := make([]RowView, 0, len(visible))
	pos := 0
	for _, row := range visible {
		for pos < len(all) && !sameRow(all[pos], row) {
			pos++
		}
		idx := pos
		if pos < len(all) {
			pos++
		}
		views = append(views, RowView{
			Index:      idx,
			Request:    row.Request(),
			Assignee:   row.Assignee(),
			Date:       row.StartDate(),
			Answered:   row.Answered(),
			AnswerDate: row.AnswerDate(),
			Elapsed:    row.Elapsed(now),
		})
	}
	return views
}

// sameRow compares two rows by identity of contents.
func sameRow(a, b ticket.Row) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

// HandleList handles GET /tickets — the filterable six-column table.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	status, err := ops.ParseStatus(r.URL.Query().Get("status"))
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.session.SetCriteria(ops.Criteria{Query: query, Status: status})

	// One consistent read: the filtered rows must be a subsequence of the
	// same snapshot buildRowViews scans for detail-link indices.
	snap, visible := h.session.View()
	var rows []ticket.Row
	if snap != nil {
		rows = snap.Rows
	}
	now := h.clock()

	data := ListPageData{
		PageData: PageData{
			Title:   "Tickets",
			Version: h.renderer.version,
			Nav:     "tickets",
		},
		Items:  buildRowViews(rows, visible, now),
		Count:  len(visible),
		Total:  len(rows),
		Query:  query,
		Status: string(status),
	}
	if snap != nil {
		data.FetchedAt = snap.FetchedAt
		data.SnapshotID = snap.SnapshotID
	}
	if loadErr := h.session.LastError(); loadErr != nil {
		data.LoadError = loadErr.Error()
	}

	// The live-filter script targets #results (keystroke or selector
	// change); return just the results fragment
	if r.Header.Get("HX-Target") == "results" {
		h.renderer.renderBlock(w, http.StatusOK, "list", "ticket-results", data)
		return
	}

	h.renderer.renderPage(w, r, "list", data)
}

// HandleDetail handles GET /tickets/{idx} — one ticket with its request
// text rendered as markdown.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(r.PathValue("idx"))
	if err != nil || idx < 0 {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("ticket index must be a non-negative integer"))
		return
	}

	rows := h.session.Rows()
	if idx >= len(rows) {
		h.renderer.renderError(w, r, errors.NewNotFound("ticket "+strconv.Itoa(idx)))
		return
	}
	row := rows[idx]
	now := h.clock()

	h.renderer.renderPage(w, r, "detail", DetailPageData{
		PageData: PageData{
			Title:   "Ticket",
			Version: h.renderer.version,
			Nav:     "tickets",
		},
		Row: RowView{
			Index:      idx,
			Request:    row.Request(),
			Assignee:   row.Assignee(),
			Date:       row.StartDate(),
			Answered:   row.Answered(),
			AnswerDate: row.AnswerDate(),
			Elapsed:    row.Elapsed(now),
		},
		RenderedHTML: renderMarkdown(row.Request()),
	})
}

// HandleReload handles POST /tickets/reload — one fetch attempt, then back
// to the table. Load failures surface as the banner, not as an error page.
func (h *Handlers) HandleReload(w http.ResponseWriter, r *http.Request) {
	// A failed load is recorded in the session and shown as the banner
	// after redirect, not as an error page.
	_ = h.session.Reload(r.Context())
	http.Redirect(w, r, "/tickets", http.StatusSeeOther)
}
