package errdef

import (
	"errors"
	"fmt"
	"strings"
)

func NewForbidden(format string, a ...any) error {
	return forbidden{fmt.Errorf(format, a...)}
}

type forbidden struct{ error }

func IsForbidden(err error) bool {
	var e forbidden
	return errors.As(err, &e)
}

func NewBadRequest(format string, a ...any) error {
	return badRequest{fmt.Errorf(format, a...)}
}

type badRequest struct{ error }

func IsBadRequest(err error) bool {
	var e badRequest
	return errors.As(err, &e)
}

func NewDuplicated(format string, a ...any) error {
	return duplicated{fmt.Errorf(format, a...)}
}

type duplicated struct{ error }

func IsDuplicated(err error) bool {
	var e duplicated
	return errors.As(err, &e)
}

func NewUnauthorized(format string, a ...any) error {
	return unauthorized{fmt.Errorf(format, a...)}
}

type unauthorized struct{ error }

func IsUnauthorized(err error) bool {
	var e unauthorized
	return errors.As(err, &e)
}

// NewNotFound creates an error representing a resource that could not be found.
func NewNotFound(format string, a ...any) error {
	return notFound{fmt.Errorf(format, a...)}
}

type notFound struct{ error }

// IsNotFound returns true if err is an error representing a resource that could not be found and false otherwise.
func IsNotFound(err error) bool {
	var e notFound
	return errors.As(err, &e)
}

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidation creates an error carrying per-field validation failures.
func NewValidation(fields []FieldError) error {
	return validation{fields: fields}
}

type validation struct {
	fields []FieldError
}

func (v validation) Error() string {
	messages := make([]string, len(v.fields))
	for i, f := range v.fields {
		messages[i] = f.Message
	}
	return strings.Join(messages, "; ")
}

// AsValidation returns the field errors carried by err if it is a validation error.
func AsValidation(err error) ([]FieldError, bool) {
	var e validation
	if errors.As(err, &e) {
		return e.fields, true
	}
	return nil, false
}
