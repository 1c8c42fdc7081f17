package cli

import (
	"context"
	"strings"

	"taskboard/internal/domain"
)

// AddOptions holds the optional attributes of a new task
type AddOptions struct {
	Priority string
	Category string
	DueDate  string
}

// AddCommand creates a task
type AddCommand struct {
	app  *App
	opts AddOptions
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App, opts AddOptions) *AddCommand {
	return &AddCommand{app: app, opts: opts}
}

// Execute creates a task titled by the joined arguments
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	e := c.app.engine
	draft := e.NewDraft(strings.Join(args, " "))
	if c.opts.Priority != "" {
		draft.Priority = domain.Priority(strings.ToLower(c.opts.Priority))
	}
	if c.opts.Category != "" {
		draft.Category = domain.Category(strings.ToLower(c.opts.Category))
	}
	draft.DueDate = c.opts.DueDate

	before := c.app.notifier.Count()
	if err := e.AddTask(ctx, draft); err != nil {
		if c.app.notifier.Count() > before {
			return c.app.failed("add task")
		}
		return err
	}

	task, ok := newestWithTitle(e.Snapshot(), strings.TrimSpace(draft.Title))
	if ok {
		c.app.renderer.Task("Added", task)
	}
	return c.app.failed("add task")
}

// newestWithTitle finds the most recently created task with title
func newestWithTitle(tasks []domain.Task, title string) (domain.Task, bool) {
	var found domain.Task
	ok := false
	for _, t := range tasks {
		if t.Title != title {
			continue
		}
		if !ok || t.CreatedAt.After(found.CreatedAt) || (t.CreatedAt.Equal(found.CreatedAt) && t.ID > found.ID) {
			found, ok = t, true
		}
	}
	return found, ok
}
