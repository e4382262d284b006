package mcp

import "github.com/mark3labs/mcp-go/mcp"

var listToolDef = mcp.NewTool("tickets_list",
	mcp.WithDescription("List the loaded request tickets, optionally filtered by a free-text query and an answered/pending status selector. Returns the visible rows with derived elapsed days."),
	mcp.WithString("query",
		mcp.Description("Case-insensitive substring matched against every field of a row"),
	),
	mcp.WithString("status",
		mcp.Description("Status selector"),
		mcp.Enum("all", "answered", "pending"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum rows to return (default 50, max 200)"),
	),
)

var statsToolDef = mcp.NewTool("tickets_stats",
	mcp.WithDescription("Summarize the loaded dataset: total, answered and pending counts, mean and max elapsed days."),
)

var reloadToolDef = mcp.NewTool("tickets_reload",
	mcp.WithDescription("Fetch a fresh snapshot from the configured CSV endpoint and replace the current dataset. Returns the new snapshot id and row count."),
)
