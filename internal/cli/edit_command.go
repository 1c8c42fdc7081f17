package cli

import (
	"context"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
)

// EditOptions holds the fields to change; nil means unchanged
type EditOptions struct {
	Title     *string
	Priority  *string
	Category  *string
	DueDate   *string
	ClearDue  bool
	Completed *bool
}

// EditCommand updates a task
type EditCommand struct {
	app  *App
	opts EditOptions
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App, opts EditOptions) *EditCommand {
	return &EditCommand{app: app, opts: opts}
}

// Execute applies the options to the task id in args[0]. Remaining
// arguments, if any, become the new title.
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("id", "", "a task id is required")
	}
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	patch := c.patch(args[1:])
	if patch.IsEmpty() {
		return errors.NewInvalidInputError("edit", "", "nothing to change")
	}

	e := c.app.engine
	before := c.app.notifier.Count()
	if err := e.UpdateTask(ctx, id, patch); err != nil {
		if c.app.notifier.Count() > before {
			return c.app.failed("update task")
		}
		return err
	}

	if task, err := c.app.findTask(id); err == nil {
		c.app.renderer.Task("Updated", task)
	}
	return c.app.failed("update task")
}

func (c *EditCommand) patch(titleArgs []string) domain.Patch {
	var patch domain.Patch

	if c.opts.Title != nil {
		patch.Title = c.opts.Title
	} else if len(titleArgs) > 0 {
		title := strings.Join(titleArgs, " ")
		patch.Title = &title
	}
	if c.opts.Priority != nil {
		p := domain.Priority(strings.ToLower(*c.opts.Priority))
		patch.Priority = &p
	}
	if c.opts.Category != nil {
		cat := domain.Category(strings.ToLower(*c.opts.Category))
		patch.Category = &cat
	}
	if c.opts.ClearDue {
		empty := ""
		patch.DueDate = &empty
	} else if c.opts.DueDate != nil {
		patch.DueDate = c.opts.DueDate
	}
	patch.Completed = c.opts.Completed

	return patch
}
