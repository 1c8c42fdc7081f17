package sqlite

import (
	"database/sql"
	"time"
)

// Task is a row of the tasks table. Attribute columns are nullable since
// they were added after the table was first created.
type Task struct {
	ID        int64
	Title     string
	Completed bool
	Priority  sql.NullString
	Category  sql.NullString
	DueDate   sql.NullString
	CreatedAt time.Time
}

// TaskUpdate holds the columns to change; nil fields are left untouched
type TaskUpdate struct {
	Title     *string
	Completed *bool
	Priority  *string
	Category  *string
	DueDate   *string
}

// IsEmpty reports whether the update changes nothing
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Completed == nil && u.Priority == nil && u.Category == nil && u.DueDate == nil
}
