package service

import "errors"

// ValidationError carries the rule-specific message for one rejected field.
// Always recoverable; the delivery layer renders it as a 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ErrInvalidCredentials is the single authentication error kind. The wrapped
// detail distinguishes unknown email from a wrong password, but callers must
// branch on the kind, not the message.
var ErrInvalidCredentials = errors.New("invalid credentials")
