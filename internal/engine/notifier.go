package engine

import (
	"taskboard/internal/errors"
	"taskboard/internal/logging"
)

// Notifier surfaces user-visible failure notices
type Notifier interface {
	Notify(operation string, err error)
}

// NotifierFunc adapts a function to the Notifier interface
type NotifierFunc func(operation string, err error)

// Notify calls f(operation, err)
func (f NotifierFunc) Notify(operation string, err error) {
	f(operation, err)
}

// LogNotifier writes notices through the logging package
type LogNotifier struct{}

// Notify logs the user-facing message for err
func (LogNotifier) Notify(operation string, err error) {
	logging.Errorf("%s: %s", operation, errors.GetUserMessage(err))
}
