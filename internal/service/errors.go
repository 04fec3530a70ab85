// Package service implements the application operations behind the HTTP
// handlers: validation, even-split arithmetic, and storage orchestration.
package service

import "fmt"

// ValidationError reports a missing or malformed request field.
// The API layer renders it as HTTP 400.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Validationf builds a ValidationError with a formatted message.
func Validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a referenced entity that does not exist.
// The API layer renders it as HTTP 404.
type NotFoundError struct {
	msg string
}

func (e *NotFoundError) Error() string { return e.msg }

// NotFoundf builds a NotFoundError with a formatted message.
func NotFoundf(format string, args ...any) error {
	return &NotFoundError{msg: fmt.Sprintf(format, args...)}
}
