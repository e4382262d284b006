package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/avaldes/peticiones/internal/config"
	"github.com/avaldes/peticiones/internal/errors"
	"github.com/avaldes/peticiones/internal/ops"
)

// List limits
const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	session *ops.Session
	cfg     *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(session *ops.Session, cfg *config.Config) *Handlers {
	return &Handlers{session: session, cfg: cfg}
}

// ListRequest represents the arguments for tickets_list.
type ListRequest struct {
	Query  string `json:"query,omitempty"`
	Status string `json:"status,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

// ListItem is one row in a tickets_list result.
type ListItem struct {
	Request     string `json:"request"`
	Assignee    string `json:"assignee"`
	Date        string `json:"date"`
	Answered    bool   `json:"answered"`
	AnswerDate  string `json:"answer_date,omitempty"`
	ElapsedDays int    `json:"elapsed_days"`
}

// ListResult is the payload of a tickets_list call.
type ListResult struct {
	Items      []ListItem `json:"items"`
	Count      int        `json:"count"`
	Total      int        `json:"total"`
	Truncated  bool       `json:"truncated,omitempty"`
	SnapshotID string     `json:"snapshot_id,omitempty"`
}

// ReloadResult is the payload of a tickets_reload call.
type ReloadResult struct {
	SnapshotID string `json:"snapshot_id"`
	Rows       int    `json:"rows"`
	FetchedAt  string `json:"fetched_at"`
}

// HandleList handles the tickets_list tool call. The dataset is loaded
// lazily: a session that has never loaded fetches once here.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	status, err := ops.ParseStatus(input.Status)
	if err != nil {
		return errorResult(err), nil
	}

	if err := h.ensureLoaded(ctx); err != nil {
		return errorResult(err), nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	rows := h.session.Rows()
	visible := ops.Filter(rows, ops.Criteria{Query: input.Query, Status: status})
	now := time.Now()

	result := ListResult{
		Count: len(visible),
		Total: len(rows),
	}
	if snap := h.session.Snapshot(); snap != nil {
		result.SnapshotID = snap.SnapshotID
	}

	if len(visible) > limit {
		visible = visible[:limit]
		result.Truncated = true
	}
	result.Items = make([]ListItem, len(visible))
	for i, row := range visible {
		result.Items[i] = ListItem{
			Request:     row.Request(),
			Assignee:    row.Assignee(),
			Date:        row.StartDate(),
			Answered:    row.Answered(),
			AnswerDate:  row.AnswerDate(),
			ElapsedDays: row.Elapsed(now),
		}
	}

	return successResult(result)
}

// HandleStats handles the tickets_stats tool call.
func (h *Handlers) HandleStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.ensureLoaded(ctx); err != nil {
		return errorResult(err), nil
	}

	return successResult(ops.ComputeStats(h.session.Rows(), time.Now()))
}

// HandleReload handles the tickets_reload tool call.
func (h *Handlers) HandleReload(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.session.Reload(ctx); err != nil {
		return errorResult(err), nil
	}

	snap := h.session.Snapshot()
	return successResult(ReloadResult{
		SnapshotID: snap.SnapshotID,
		Rows:       len(snap.Rows),
		FetchedAt:  snap.FetchedAt.Format(time.RFC3339),
	})
}

// ensureLoaded performs the initial fetch for read tools on a fresh session.
func (h *Handlers) ensureLoaded(ctx context.Context) error {
	if h.session.Snapshot() != nil {
		return nil
	}
	return h.session.Reload(ctx)
}

// decode unmarshals MCP request arguments into a typed struct without
// unsafe type assertions.
func decode[T any](req mcp.CallToolRequest) (T, error) {
	var result T
	b, err := json.Marshal(req.GetArguments())
	if err != nil {
		return result, fmt.Errorf("marshal args: %w", err)
	}
	if err := json.Unmarshal(b, &result); err != nil {
		return result, fmt.Errorf("unmarshal args: %w", err)
	}
	return result, nil
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if lErr, ok := err.(*errors.LoadError); ok {
		errorObj := map[string]any{
			"code":    lErr.Code,
			"message": lErr.Message,
			"status":  lErr.Status,
		}
		// Internal error details stay server-side to avoid leaking paths
		// or transport internals.
		if lErr.Code != errors.ErrInternal && lErr.Details != nil {
			if code, ok := lErr.Details["status_code"]; ok {
				errorObj["details"] = map[string]any{"status_code": code}
			}
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
