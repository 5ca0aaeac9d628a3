package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDuplicate is returned by a store when a unique key is taken.
	ErrDuplicate = errors.New("duplicate")
)

// ValidationError reports a payload that breaks a required-field or enum rule.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

func Invalid(field, msg string) error { return &ValidationError{Field: field, Msg: msg} }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
