package domain

import (
	"strings"
	"time"
)

// Priority is the urgency of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// DefaultPriority applies to tasks that carry no priority.
const DefaultPriority = PriorityMedium

// Priorities lists every priority in rank order.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// IsValid reports whether p is one of the known priorities.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank orders priorities: high=0, medium=1, low=2. Unknown values rank as the default.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

// Label returns the human readable name.
func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "High Priority"
	case PriorityLow:
		return "Low Priority"
	default:
		return "Medium Priority"
	}
}

// ParsePriority converts free text into a Priority, falling back to the default.
func ParsePriority(s string) Priority {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p.IsValid() {
		return p
	}
	return DefaultPriority
}

// Category groups tasks by area of life.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryShopping Category = "shopping"
	CategoryHealth   Category = "health"
	CategoryOther    Category = "other"
)

// DefaultCategory applies to tasks that carry no category.
const DefaultCategory = CategoryPersonal

// Categories lists every category.
var Categories = []Category{CategoryWork, CategoryPersonal, CategoryShopping, CategoryHealth, CategoryOther}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryShopping, CategoryHealth, CategoryOther:
		return true
	}
	return false
}

// Label returns the human readable name. Unknown values read as the default.
func (c Category) Label() string {
	switch c {
	case CategoryWork:
		return "Work"
	case CategoryShopping:
		return "Shopping"
	case CategoryHealth:
		return "Health"
	case CategoryOther:
		return "Other"
	default:
		return "Personal"
	}
}

// Icon returns a short glyph used when rendering the category.
func (c Category) Icon() string {
	switch c {
	case CategoryWork:
		return "💼"
	case CategoryPersonal:
		return "👤"
	case CategoryShopping:
		return "🛒"
	case CategoryHealth:
		return "💪"
	default:
		return "📌"
	}
}

// ParseCategory converts free text into a Category, falling back to the default.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c.IsValid() {
		return c
	}
	return DefaultCategory
}

// Task represents a persisted to-do item.
// Priority and Category are always set once a Task has passed through Normalize.
type Task struct {
	ID        int64
	Title     string
	Completed bool
	CreatedAt time.Time
	Priority  Priority
	Category  Category
	DueDate   string // canonical YYYY-MM-DD, empty when there is no due date
}

// Normalize returns a copy with missing or unknown priority and category defaulted.
func (t Task) Normalize() Task {
	if !t.Priority.IsValid() {
		t.Priority = DefaultPriority
	}
	if !t.Category.IsValid() {
		t.Category = DefaultCategory
	}
	return t
}

// HasDueDate reports whether the task carries a due date.
func (t Task) HasDueDate() bool {
	return t.DueDate != ""
}

// IsOverdue applies the overdue predicate to the task's due date.
// Completion is not considered; callers combine it with !Completed.
func (t Task) IsOverdue(now time.Time) bool {
	return IsOverdue(t.DueDate, now)
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	return t.ID > 0 && strings.TrimSpace(t.Title) != ""
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}

// Draft carries the fields a user supplies when creating a task.
// Empty Priority, Category or DueDate mean "not supplied".
type Draft struct {
	Title    string
	Priority Priority
	Category Category
	DueDate  string
}

// Patch carries the subset of fields to change on an existing task.
// A nil field is left untouched.
type Patch struct {
	Title     *string
	Priority  *Priority
	Category  *Category
	DueDate   *string
	Completed *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Priority == nil && p.Category == nil && p.DueDate == nil && p.Completed == nil
}

// TitlePatch builds a patch that only renames a task.
func TitlePatch(title string) Patch {
	return Patch{Title: &title}
}
