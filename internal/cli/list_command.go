package cli

import (
	"context"
	"strings"

	"taskboard/internal/domain"
)

// ListOptions selects the view shown by the list command
type ListOptions struct {
	Status   string
	Category string
	Sort     string
}

// ListCommand prints the filtered and sorted task view
type ListCommand struct {
	app  *App
	opts ListOptions
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App, opts ListOptions) *ListCommand {
	return &ListCommand{app: app, opts: opts}
}

// Execute runs the list command. Arguments form the search query.
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	params := domain.DefaultViewParams()
	params.Query = strings.Join(args, " ")
	if c.opts.Status != "" {
		params.Status = domain.StatusFilter(strings.ToLower(c.opts.Status))
	}
	if c.opts.Category != "" {
		params.Category = domain.CategoryFilter(strings.ToLower(c.opts.Category))
	}
	if c.opts.Sort != "" {
		params.Sort = domain.SortKey(strings.ToLower(c.opts.Sort))
	}

	e := c.app.engine
	if err := e.SetViewParams(params); err != nil {
		return err
	}

	c.app.renderer.Tasks(e.Tasks(), timeNow())
	c.app.renderer.StatsLine(e.Stats())
	return c.app.failed("list tasks")
}
