package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// DeleteCommand removes tasks
type DeleteCommand struct {
	app   *App
	in    io.Reader
	force bool
}

// NewDeleteCommand creates a new delete command handler. Without force it asks
// for confirmation on in.
func NewDeleteCommand(app *App, in io.Reader, force bool) *DeleteCommand {
	return &DeleteCommand{app: app, in: in, force: force}
}

// Execute deletes every task id given
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	reader := bufio.NewReader(c.in)
	for _, arg := range args {
		id, err := parseTaskID(arg)
		if err != nil {
			return err
		}

		if !c.force {
			label := fmt.Sprintf("#%d", id)
			if task, err := c.app.findTask(id); err == nil {
				label = fmt.Sprintf("#%d %q", id, task.Title)
			}
			fmt.Fprintf(c.app.out, "Delete %s? [y/N]: ", label)
			answer, _ := reader.ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				fmt.Fprintln(c.app.out, "Delete cancelled.")
				continue
			}
		}

		before := c.app.notifier.Count()
		c.app.engine.DeleteTask(ctx, id)
		if c.app.notifier.Count() == before {
			fmt.Fprintf(c.app.out, "Deleted #%d\n", id)
		}
	}
	return c.app.failed("delete task")
}
