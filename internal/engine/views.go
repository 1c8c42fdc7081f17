package engine

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"taskboard/internal/domain"
)

// FilteredAndSorted returns the tasks matching params in display order,
// comparing titles with English collation.
func FilteredAndSorted(tasks []domain.Task, params domain.ViewParams) []domain.Task {
	return FilteredAndSortedIn(tasks, params, language.English)
}

// FilteredAndSortedIn is FilteredAndSorted with titles collated for locale.
// The input slice is never modified.
func FilteredAndSortedIn(tasks []domain.Task, params domain.ViewParams, locale language.Tag) []domain.Task {
	query := strings.ToLower(params.Query)
	status := params.Status
	if status == "" {
		status = domain.StatusAll
	}
	category := params.Category
	if category == "" {
		category = domain.CategoryAll
	}

	result := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		task = task.Normalize()
		if query != "" && !strings.Contains(strings.ToLower(task.Title), query) {
			continue
		}
		if !status.Matches(task.Completed) {
			continue
		}
		if !category.Matches(task.Category) {
			continue
		}
		result = append(result, task)
	}

	switch params.Sort {
	case domain.SortByPriority:
		slices.SortStableFunc(result, func(a, b domain.Task) int {
			return a.Priority.Rank() - b.Priority.Rank()
		})
	case domain.SortByTitle:
		// Collators keep internal buffers, so each call gets its own
		c := collate.New(locale)
		slices.SortStableFunc(result, func(a, b domain.Task) int {
			return c.CompareString(a.Title, b.Title)
		})
	default:
		slices.SortStableFunc(result, func(a, b domain.Task) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}

	return result
}

// Statistics aggregates the full collection as of now
func Statistics(tasks []domain.Task, now time.Time) domain.Stats {
	var stats domain.Stats
	stats.Total = len(tasks)
	for _, task := range tasks {
		task = task.Normalize()
		if task.Completed {
			stats.Completed++
			continue
		}
		if task.Priority == domain.PriorityHigh {
			stats.HighPriority++
		}
		if task.IsOverdue(now) {
			stats.Overdue++
		}
	}
	stats.Active = stats.Total - stats.Completed
	return stats
}
