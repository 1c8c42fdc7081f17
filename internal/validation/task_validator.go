package validation

import (
	"strings"

	"taskboard/internal/config"
	"taskboard/internal/domain"
)

// TaskValidator validates task drafts, patches, ids and view parameters
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithConfig creates a task validator honouring configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateTitle validates a task title for creation or update
func (tv *TaskValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()

	trimmed := tv.validator.TrimAndValidateString(title)
	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("title")
		return validationError
	}

	if !tv.validator.IsValidTitleLength(trimmed) {
		validationError.AddInvalidLengthError("title", trimmed, tv.validator.TitleMaxLength())
	}

	return validationError.OrNil()
}

// ValidateDraft validates a task before it is created.
// A due date that does not parse is not an error here; the gateway drops it.
func (tv *TaskValidator) ValidateDraft(draft domain.Draft) error {
	validationError := NewValidationError()

	validationError.Merge(tv.ValidateTitle(draft.Title))
	tv.validateEnums(validationError, draft.Priority, draft.Category)

	return validationError.OrNil()
}

// ValidatePatch validates a partial update. Only supplied fields are checked.
func (tv *TaskValidator) ValidatePatch(id int64, patch domain.Patch) error {
	validationError := NewValidationError()

	if !tv.validator.IsValidTaskID(id) {
		validationError.AddInvalidValueError("task_id", id, "must be a positive integer")
	}
	if patch.Title != nil {
		validationError.Merge(tv.ValidateTitle(*patch.Title))
	}

	var priority domain.Priority
	if patch.Priority != nil {
		priority = *patch.Priority
	}
	var category domain.Category
	if patch.Category != nil {
		category = *patch.Category
	}
	tv.validateEnums(validationError, priority, category)

	return validationError.OrNil()
}

// ValidateDueDate rejects a non-blank due date that no accepted layout can read.
// Blank means "no due date".
func (tv *TaskValidator) ValidateDueDate(due string) error {
	if strings.TrimSpace(due) == "" || domain.IsValidDate(due) {
		return nil
	}
	validationError := NewValidationError()
	validationError.AddInvalidFormatError("due_date", due, domain.CanonicalDateLayout)
	return validationError
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id int64) error {
	if !tv.validator.IsValidTaskID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("task_id", id, "must be a positive integer")
		return validationError
	}
	return nil
}

// ValidateViewParams validates the filter and sort selection of the task view
func (tv *TaskValidator) ValidateViewParams(params domain.ViewParams) error {
	validationError := NewValidationError()

	if !params.Status.IsValid() {
		validationError.AddInvalidValueError("status", params.Status, "must be one of all, active, completed")
	}
	if !params.Category.IsValid() {
		validationError.AddInvalidValueError("category", params.Category, "must be all or a known category")
	}
	if !params.Sort.IsValid() {
		validationError.AddInvalidValueError("sort", params.Sort, "must be one of date, priority, title")
	}

	return validationError.OrNil()
}

// GetValidTitle returns a cleaned title if valid
func (tv *TaskValidator) GetValidTitle(title string) (string, error) {
	if err := tv.ValidateTitle(title); err != nil {
		return "", err
	}
	return tv.validator.TrimAndValidateString(title), nil
}

func (tv *TaskValidator) validateEnums(ve *ValidationError, priority domain.Priority, category domain.Category) {
	if !tv.validator.IsValidPriority(priority) {
		ve.AddInvalidValueError("priority", priority, "must be one of high, medium, low")
	}
	if !tv.validator.IsValidCategory(category) {
		ve.AddInvalidValueError("category", category, "must be one of work, personal, shopping, health, other")
	}
}
