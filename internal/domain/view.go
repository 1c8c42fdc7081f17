package domain

// StatusFilter selects tasks by completion state.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

// IsValid reports whether f is a known status filter.
func (f StatusFilter) IsValid() bool {
	return f == StatusAll || f == StatusActive || f == StatusCompleted
}

// Matches reports whether a task with the given completion state passes the filter.
func (f StatusFilter) Matches(completed bool) bool {
	switch f {
	case StatusActive:
		return !completed
	case StatusCompleted:
		return completed
	default:
		return true
	}
}

// CategoryFilter is either CategoryAll or one Category.
type CategoryFilter string

// CategoryAll disables category filtering.
const CategoryAll CategoryFilter = "all"

// FilterFor builds a filter selecting a single category.
func FilterFor(c Category) CategoryFilter {
	return CategoryFilter(c)
}

// IsValid reports whether f is "all" or a known category.
func (f CategoryFilter) IsValid() bool {
	return f == CategoryAll || Category(f).IsValid()
}

// Matches reports whether a (defaulted) category passes the filter.
func (f CategoryFilter) Matches(c Category) bool {
	return f == CategoryAll || Category(f) == c
}

// SortKey selects the ordering of the derived task view.
type SortKey string

const (
	SortByDate     SortKey = "date"
	SortByPriority SortKey = "priority"
	SortByTitle    SortKey = "title"
)

// IsValid reports whether k is a known sort key.
func (k SortKey) IsValid() bool {
	return k == SortByDate || k == SortByPriority || k == SortByTitle
}

// ViewParams holds the ephemeral parameters of the derived task view.
type ViewParams struct {
	Query    string
	Status   StatusFilter
	Category CategoryFilter
	Sort     SortKey
}

// DefaultViewParams shows every task, newest first.
func DefaultViewParams() ViewParams {
	return ViewParams{
		Status:   StatusAll,
		Category: CategoryAll,
		Sort:     SortByDate,
	}
}

// Stats is the aggregate record derived from the full task collection.
type Stats struct {
	Total        int `json:"total"`
	Completed    int `json:"completed"`
	Active       int `json:"active"`
	HighPriority int `json:"high_priority"`
	Overdue      int `json:"overdue"`
}
