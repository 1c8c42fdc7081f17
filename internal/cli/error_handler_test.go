package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "taskboard/internal/errors"
	"taskboard/internal/validation"
)

func titleRequired() error {
	ve := validation.NewValidationError()
	ve.AddRequiredError("title")
	return ve
}

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "field validation error",
			operation: "add task",
			err:       titleRequired(),
			expected:  "failed to add task: title is required",
		},
		{
			name:      "wrapped field validation error",
			operation: "add task",
			err:       fmt.Errorf("draft: %w", titleRequired()),
			expected:  "failed to add task: title is required",
		},
		{
			name:      "remote error",
			operation: "update task",
			err:       apperrors.NewRemoteError("modify task", "task is locked"),
			expected:  "failed to update task: The task service reported an error: task is locked",
		},
		{
			name:      "transport error",
			operation: "list tasks",
			err:       apperrors.NewTransportError("GET tasks", errors.New("refused")),
			expected:  "failed to list tasks: Could not reach the task service. Please try again later.",
		},
		{
			name:      "regular error",
			operation: "process",
			err:       errors.New("regular error"),
			expected:  "failed to process: regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, eh.Handle(tt.operation, tt.err), tt.expected)
		})
	}
}

func TestErrorHandler_HandleSimple(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "validation", err: titleRequired(), expected: "title is required"},
		{name: "not found", err: apperrors.NewNotFoundError("task", "3"), expected: "task not found: 3"},
		{name: "invalid input", err: apperrors.NewInvalidInputError("id", "x", "must be a positive integer"), expected: "invalid input for id: must be a positive integer"},
		{name: "regular", err: errors.New("regular error"), expected: "regular error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, eh.HandleSimple(tt.err), tt.expected)
		})
	}
}

func TestErrorHandler_Classification(t *testing.T) {
	eh := NewErrorHandler()

	remote := apperrors.NewRemoteError("list tasks", "db down")
	transport := apperrors.NewTransportError("GET tasks", nil)

	assert.True(t, eh.IsValidationError(titleRequired()))
	assert.True(t, eh.IsValidationError(apperrors.NewValidationError("bad", nil)))
	assert.False(t, eh.IsValidationError(remote))

	assert.True(t, eh.IsRemoteError(remote))
	assert.False(t, eh.IsRemoteError(transport))
	assert.True(t, eh.IsTransportError(transport))

	assert.Equal(t, "REMOTE_ERROR", eh.GetErrorCode(remote))
	assert.Equal(t, "UNKNOWN_ERROR", eh.GetErrorCode(errors.New("x")))
}
