package store

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when an identifier does not resolve.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// AlreadyExistsError is returned when an insert collides with an existing
// identifier.
type AlreadyExistsError struct {
	Entity string
	ID     string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Entity, e.ID)
}

// ValidationError is returned when a required cross-reference or field value
// does not hold up.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsAlreadyExists reports whether err is an AlreadyExistsError.
func IsAlreadyExists(err error) bool {
	var ae *AlreadyExistsError
	return errors.As(err, &ae)
}
