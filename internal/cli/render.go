package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/domain"
)

// Renderer prints tasks and statistics
type Renderer struct {
	out     io.Writer
	display config.DisplayConfig
}

// NewRenderer creates a renderer honouring the display configuration
func NewRenderer(out io.Writer, display config.DisplayConfig) *Renderer {
	return &Renderer{out: out, display: display}
}

// Tasks prints one row per task
func (r *Renderer) Tasks(tasks []domain.Task, now time.Time) {
	if len(tasks) == 0 {
		fmt.Fprintln(r.out, "No tasks found")
		return
	}

	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDONE\tTITLE\tPRIORITY\tCATEGORY\tDUE")
	for _, task := range tasks {
		done := "[ ]"
		if task.Completed {
			done = "[x]"
		}
		category := task.Category.Label()
		if r.display.ShowIcons {
			category = task.Category.Icon() + " " + category
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			task.ID, done, task.Title, task.Priority.Label(), category, r.due(task, now))
	}
	w.Flush()
}

// Task prints a single task summary line
func (r *Renderer) Task(prefix string, task domain.Task) {
	fmt.Fprintf(r.out, "%s #%d: %s (%s, %s)\n", prefix, task.ID, task.Title, task.Priority.Label(), task.Category.Label())
}

// Stats prints the aggregate statistics
func (r *Renderer) Stats(stats domain.Stats) {
	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Total:\t%d\n", stats.Total)
	fmt.Fprintf(w, "Active:\t%d\n", stats.Active)
	fmt.Fprintf(w, "Completed:\t%d\n", stats.Completed)
	fmt.Fprintf(w, "High priority:\t%d\n", stats.HighPriority)
	fmt.Fprintf(w, "Overdue:\t%d\n", stats.Overdue)
	w.Flush()
}

// StatsLine prints the statistics on one line
func (r *Renderer) StatsLine(stats domain.Stats) {
	fmt.Fprintf(r.out, "%d total, %d active, %d completed, %d high priority, %d overdue\n",
		stats.Total, stats.Active, stats.Completed, stats.HighPriority, stats.Overdue)
}

func (r *Renderer) due(task domain.Task, now time.Time) string {
	if !task.HasDueDate() {
		return "-"
	}
	due := formatDate(task.DueDate, r.display.DateFormat)
	if !task.Completed && task.IsOverdue(now) {
		due += " (overdue)"
	}
	return due
}

// formatDate renders a canonical date with layout, falling back to the default display form
func formatDate(canonical, layout string) string {
	if layout == "" || layout == domain.DisplayDateLayout {
		if s := domain.FormatDateForDisplay(canonical); s != "" {
			return s
		}
		return canonical
	}
	t, err := time.Parse(domain.CanonicalDateLayout, canonical)
	if err != nil {
		return canonical
	}
	return t.Format(layout)
}
