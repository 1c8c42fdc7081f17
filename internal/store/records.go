package store

import (
	"taskboard/internal/domain"
	"taskboard/internal/errors"
	"taskboard/internal/gateway"
	"taskboard/internal/repository/sqlite"
	"taskboard/internal/validation"
)

// createTaskRequest is the body of POST /{collection}
type createTaskRequest struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Priority  string `json:"priority"`
	Category  string `json:"category"`
	DueDate   string `json:"due_date"`
}

// updateTaskRequest is the body of PUT /{collection}/:id; absent fields are untouched
type updateTaskRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
	Priority  *string `json:"priority"`
	Category  *string `json:"category"`
	DueDate   *string `json:"due_date"`
}

func toRecord(t *sqlite.Task) gateway.WireTask {
	return gateway.WireTask{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		CreatedAt: gateway.WireTime(t.CreatedAt),
		Priority:  t.Priority.String,
		Category:  t.Category.String,
		DueDate:   t.DueDate.String,
	}
}

func toRecords(tasks []*sqlite.Task) []gateway.WireTask {
	records := make([]gateway.WireTask, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, toRecord(t))
	}
	return records
}

// newTask validates a create request and builds the row to insert
func newTask(v *validation.TaskValidator, req createTaskRequest) (*sqlite.Task, error) {
	draft := domain.Draft{
		Title:    req.Title,
		Priority: domain.Priority(req.Priority),
		Category: domain.Category(req.Category),
	}
	ve := validation.NewValidationError()
	ve.Merge(v.ValidateDraft(draft))
	ve.Merge(v.ValidateDueDate(req.DueDate))
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	title, _ := v.GetValidTitle(req.Title)
	due, _ := domain.CanonicalDate(req.DueDate)

	return &sqlite.Task{
		Title:     title,
		Completed: req.Completed,
		Priority:  sqlite.NullableString(req.Priority),
		Category:  sqlite.NullableString(req.Category),
		DueDate:   sqlite.NullableString(due),
	}, nil
}

// newUpdate validates an update request and builds the column changes
func newUpdate(v *validation.TaskValidator, id int64, req updateTaskRequest) (sqlite.TaskUpdate, error) {
	patch := domain.Patch{Title: req.Title, Completed: req.Completed}
	if req.Priority != nil {
		p := domain.Priority(*req.Priority)
		patch.Priority = &p
	}
	if req.Category != nil {
		c := domain.Category(*req.Category)
		patch.Category = &c
	}
	ve := validation.NewValidationError()
	ve.Merge(v.ValidatePatch(id, patch))
	if req.DueDate != nil {
		ve.Merge(v.ValidateDueDate(*req.DueDate))
	}
	if err := ve.OrNil(); err != nil {
		return sqlite.TaskUpdate{}, err
	}
	if patch.IsEmpty() && req.DueDate == nil {
		return sqlite.TaskUpdate{}, errors.NewInvalidInputError("body", nil, "no fields to update")
	}

	update := sqlite.TaskUpdate{
		Completed: req.Completed,
		Priority:  req.Priority,
		Category:  req.Category,
	}
	if req.Title != nil {
		title, _ := v.GetValidTitle(*req.Title)
		update.Title = &title
	}
	if req.DueDate != nil {
		due, _ := domain.CanonicalDate(*req.DueDate)
		update.DueDate = &due
	}
	return update, nil
}
