package cli

import (
	"context"
	"fmt"
)

// CompleteCommand marks tasks completed
type CompleteCommand struct {
	app *App
}

// NewCompleteCommand creates a new complete command handler
func NewCompleteCommand(app *App) *CompleteCommand {
	return &CompleteCommand{app: app}
}

// Execute completes every task id given
func (c *CompleteCommand) Execute(ctx context.Context, args []string) error {
	for _, arg := range args {
		id, err := parseTaskID(arg)
		if err != nil {
			return err
		}
		before := c.app.notifier.Count()
		c.app.engine.CompleteTask(ctx, id)
		if c.app.notifier.Count() == before {
			fmt.Fprintf(c.app.out, "Completed #%d\n", id)
		}
	}
	return c.app.failed("complete task")
}
