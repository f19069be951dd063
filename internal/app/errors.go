package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrAlreadyRunning indicates Run was called on a running application.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNotTerminal indicates stdin or stdout is not a terminal.
	ErrNotTerminal = errors.New("not a terminal")
)

// InitError reports a failure while setting up a component before the
// editor loop starts: the terminal, the log file or the editor itself.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// ComponentError represents an error from a specific component.
type ComponentError struct {
	Component string // Component name (e.g., "editor", "terminal")
	Action    string // Action being performed
	Err       error  // Underlying error
}

// NewComponentError creates a new ComponentError.
func NewComponentError(component, action string, err error) *ComponentError {
	return &ComponentError{
		Component: component,
		Action:    action,
		Err:       err,
	}
}

func (e *ComponentError) Error() string {
	if e == nil {
		return ""
	}

	switch {
	case e.Action != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Component, e.Action, e.Err)
	case e.Action != "":
		return fmt.Sprintf("%s: %s", e.Component, e.Action)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Component, e.Err)
	default:
		return e.Component
	}
}

func (e *ComponentError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// RecoveredPanicError wraps a panic value as an error.
// Error includes the stack, so it belongs in the log file rather than on
// the terminal.
type RecoveredPanicError struct {
	Value any
	Stack string
}

// NewRecoveredPanicError creates a new RecoveredPanicError.
func NewRecoveredPanicError(value any, stack string) *RecoveredPanicError {
	return &RecoveredPanicError{
		Value: value,
		Stack: stack,
	}
}

func (e *RecoveredPanicError) Error() string {
	if e == nil {
		return ""
	}
	if e.Stack != "" {
		return fmt.Sprintf("panic: %v\n%s", e.Value, e.Stack)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Summary returns the panic value without the stack.
func (e *RecoveredPanicError) Summary() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorList collects the errors of a teardown sequence.
// It is not safe for concurrent use.
type ErrorList struct {
	errors []error
}

// Add adds an error to the list. Nil errors are ignored.
func (e *ErrorList) Add(err error) {
	if err != nil {
		e.errors = append(e.errors, err)
	}
}

// Len returns the number of errors.
func (e *ErrorList) Len() int {
	if e == nil {
		return 0
	}
	return len(e.errors)
}

// Error returns a combined error message.
func (e *ErrorList) Error() string {
	switch e.Len() {
	case 0:
		return ""
	case 1:
		return e.errors[0].Error()
	default:
		return fmt.Sprintf("%d errors: first: %v", len(e.errors), e.errors[0])
	}
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *ErrorList) Unwrap() []error {
	if e == nil {
		return nil
	}
	return e.errors
}

// AsError returns nil if there are no errors, otherwise the list itself.
func (e *ErrorList) AsError() error {
	if e.Len() == 0 {
		return nil
	}
	return e
}
