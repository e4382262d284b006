package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/avaldes/peticiones/internal/config"
	"github.com/avaldes/peticiones/internal/errors"
	"github.com/avaldes/peticiones/internal/ops"
	"github.com/avaldes/peticiones/internal/ticket"
	"github.com/avaldes/peticiones/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "peticiones",
		Usage:   "Request-ticket table over a remote CSV sheet",
		Version: Version,
		Commands: []*cli.Command{
			listCmd(cfg),
			statsCmd(cfg),
			serveCmd(cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// listCmd creates the list command. Each invocation is one fetch: the CLI
// holds no dataset between runs.
func listCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Fetch the sheet and print the filtered ticket table",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Case-insensitive substring matched against every field"},
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Value: "all", Usage: "Status selector: all|answered|pending"},
			&cli.BoolFlag{Name: "json", Usage: "Print rows as JSON instead of a table"},
		},
		Action: func(c *cli.Context) error {
			status, err := ops.ParseStatus(c.String("status"))
			if err != nil {
				return outputError(err)
			}

			out, err := ops.Load(c.Context, nil, cfg)
			if err != nil {
				return outputError(err)
			}

			visible := ops.Filter(out.Rows, ops.Criteria{Query: c.String("query"), Status: status})
			now := time.Now()

			if c.Bool("json") {
				return outputJSON(map[string]any{
					"snapshot_id": out.SnapshotID,
					"count":       len(visible),
					"total":       len(out.Rows),
					"rows":        visible,
				})
			}

			printTable(visible, now)
			fmt.Printf("%d of %d tickets\n", len(visible), len(out.Rows))
			return nil
		},
	}
}

// statsCmd creates the stats command.
func statsCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Fetch the sheet and print dataset counts",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Print stats as JSON"},
		},
		Action: func(c *cli.Context) error {
			out, err := ops.Load(c.Context, nil, cfg)
			if err != nil {
				return outputError(err)
			}

			stats := ops.ComputeStats(out.Rows, time.Now())
			if c.Bool("json") {
				return outputJSON(stats)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "total\t%d\n", stats.Total)
			fmt.Fprintf(w, "answered\t%d\n", stats.Answered)
			fmt.Fprintf(w, "pending\t%d\n", stats.Pending)
			fmt.Fprintf(w, "mean elapsed\t%.1f days\n", stats.MeanElapsed)
			fmt.Fprintf(w, "max elapsed\t%s\n", elapsedLabel(stats.MaxElapsed))
			return w.Flush()
		},
	}
}

// serveCmd creates the serve command for the web UI.
func serveCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Usage: "Listen address (default from config)"},
			&cli.IntFlag{Name: "port", Usage: "Listen port (default from config)"},
		},
		Action: func(c *cli.Context) error {
			bind := cfg.Bind
			if b := c.String("bind"); b != "" {
				bind = b
			}
			port := cfg.Port
			if p := c.Int("port"); p != 0 {
				port = p
			}

			session := ops.NewSession(nil, cfg)
			srv := web.NewServer(session, cfg, Version, bind, port)
			return web.Run(srv, session)
		},
	}
}

// printTable writes the six-column ticket table to stdout.
func printTable(rows []ticket.Row, now time.Time) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "REQUEST\tASSIGNEE\tDATE\tANSWERED\tANSWER DATE\tELAPSED")
	for _, row := range rows {
		answered := "✗"
		if row.Answered() {
			answered = "✓"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			row.Request(), row.Assignee(), row.StartDate(),
			answered, row.AnswerDate(), elapsedLabel(row.Elapsed(now)))
	}
	_ = w.Flush()
}

// elapsedLabel formats an elapsed-days value with its unit, singular for 1.
func elapsedLabel(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if lErr, ok := err.(*errors.LoadError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", lErr.Code, lErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
