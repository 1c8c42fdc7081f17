package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"taskboard/internal/domain"
)

var baseTime = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func titles(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func sampleTasks() []domain.Task {
	return []domain.Task{
		{ID: 1, Title: "Write report", CreatedAt: baseTime.Add(-3 * time.Hour), Priority: domain.PriorityHigh, Category: domain.CategoryWork},
		{ID: 2, Title: "buy milk", CreatedAt: baseTime.Add(-2 * time.Hour), Priority: domain.PriorityLow, Category: domain.CategoryShopping, Completed: true},
		{ID: 3, Title: "Gym", CreatedAt: baseTime.Add(-1 * time.Hour), Category: domain.CategoryHealth},
		{ID: 4, Title: "Buy bread", CreatedAt: baseTime, Priority: domain.PriorityMedium, Category: domain.CategoryShopping},
		{ID: 5, Title: "untitled idea", CreatedAt: baseTime.Add(-4 * time.Hour)},
	}
}

func TestFilteredAndSorted(t *testing.T) {
	tests := []struct {
		name   string
		params domain.ViewParams
		want   []string
	}{
		{
			name:   "default newest first",
			params: domain.DefaultViewParams(),
			want:   []string{"Buy bread", "Gym", "buy milk", "Write report", "untitled idea"},
		},
		{
			name:   "query is case insensitive",
			params: domain.ViewParams{Query: "BUY", Status: domain.StatusAll, Category: domain.CategoryAll, Sort: domain.SortByDate},
			want:   []string{"Buy bread", "buy milk"},
		},
		{
			name:   "active only",
			params: domain.ViewParams{Status: domain.StatusActive, Category: domain.CategoryAll, Sort: domain.SortByDate},
			want:   []string{"Buy bread", "Gym", "Write report", "untitled idea"},
		},
		{
			name:   "completed only",
			params: domain.ViewParams{Status: domain.StatusCompleted, Category: domain.CategoryAll, Sort: domain.SortByDate},
			want:   []string{"buy milk"},
		},
		{
			name:   "defaulted category matches personal",
			params: domain.ViewParams{Status: domain.StatusAll, Category: domain.FilterFor(domain.CategoryPersonal), Sort: domain.SortByDate},
			want:   []string{"untitled idea"},
		},
		{
			name:   "priority rank with stable ties",
			params: domain.ViewParams{Status: domain.StatusAll, Category: domain.CategoryAll, Sort: domain.SortByPriority},
			want:   []string{"Write report", "Gym", "Buy bread", "untitled idea", "buy milk"},
		},
		{
			name:   "title collation ignores case at first level",
			params: domain.ViewParams{Status: domain.StatusAll, Category: domain.CategoryAll, Sort: domain.SortByTitle},
			want:   []string{"Buy bread", "buy milk", "Gym", "untitled idea", "Write report"},
		},
		{
			name:   "zero params behave as all",
			params: domain.ViewParams{},
			want:   []string{"Buy bread", "Gym", "buy milk", "Write report", "untitled idea"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(FilteredAndSorted(sampleTasks(), tt.params)))
		})
	}
}

func TestFilteredAndSortedDoesNotReorderInput(t *testing.T) {
	tasks := sampleTasks()
	before := titles(tasks)

	params := domain.ViewParams{Sort: domain.SortByTitle}
	first := FilteredAndSorted(tasks, params)
	second := FilteredAndSorted(tasks, params)

	assert.Equal(t, before, titles(tasks))
	assert.Equal(t, first, second)
}

func TestSortByDateNewestFirst(t *testing.T) {
	tasks := []domain.Task{
		{ID: 1, Title: "T1", CreatedAt: baseTime},
		{ID: 2, Title: "T2", CreatedAt: baseTime.Add(time.Second)},
	}
	assert.Equal(t, []string{"T2", "T1"}, titles(FilteredAndSorted(tasks, domain.DefaultViewParams())))
}

func TestSortByPriority(t *testing.T) {
	tasks := []domain.Task{
		{ID: 1, Title: "low", Priority: domain.PriorityLow},
		{ID: 2, Title: "high", Priority: domain.PriorityHigh},
		{ID: 3, Title: "medium", Priority: domain.PriorityMedium},
	}
	params := domain.ViewParams{Sort: domain.SortByPriority}
	assert.Equal(t, []string{"high", "medium", "low"}, titles(FilteredAndSorted(tasks, params)))
}

func TestSortByTitleLocale(t *testing.T) {
	tasks := []domain.Task{
		{ID: 1, Title: "zebra"},
		{ID: 2, Title: "Äpfel"},
		{ID: 3, Title: "apple"},
	}
	params := domain.ViewParams{Sort: domain.SortByTitle}
	got := titles(FilteredAndSortedIn(tasks, params, language.German))
	assert.Equal(t, "zebra", got[2])
}

func TestStatistics(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
	tasks := []domain.Task{
		{ID: 1, Title: "high active", Priority: domain.PriorityHigh, DueDate: "2024-03-14"},
		{ID: 2, Title: "high done", Priority: domain.PriorityHigh, Completed: true, DueDate: "2024-03-01"},
		{ID: 3, Title: "defaulted"},
		{ID: 4, Title: "due today", DueDate: "2024-03-15"},
		{ID: 5, Title: "due tomorrow", Priority: domain.PriorityLow, DueDate: "2024-03-16"},
	}

	assert.Equal(t, domain.Stats{
		Total:        5,
		Completed:    1,
		Active:       4,
		HighPriority: 1,
		Overdue:      1,
	}, Statistics(tasks, now))
}

func TestStatisticsEmpty(t *testing.T) {
	assert.Equal(t, domain.Stats{}, Statistics(nil, baseTime))
}
