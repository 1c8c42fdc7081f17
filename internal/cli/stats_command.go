package cli

import (
	"context"
	"encoding/json"
)

// StatsCommand prints aggregate statistics
type StatsCommand struct {
	app    *App
	asJSON bool
}

// NewStatsCommand creates a new stats command handler
func NewStatsCommand(app *App, asJSON bool) *StatsCommand {
	return &StatsCommand{app: app, asJSON: asJSON}
}

// Execute prints the statistics of the full collection
func (c *StatsCommand) Execute(ctx context.Context, args []string) error {
	stats := c.app.engine.Stats()
	if c.asJSON {
		enc := json.NewEncoder(c.app.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(stats); err != nil {
			return err
		}
	} else {
		c.app.renderer.Stats(stats)
	}
	return c.app.failed("load tasks")
}
