package mutation

import (
	"errors"
	"fmt"

	"github.com/invmock/invmock/pkg/store"
)

// InvalidTransitionError rejects an invoice status update that would move
// backward through the lifecycle.
type InvalidTransitionError struct {
	From store.InvoiceStatus
	To   store.InvoiceStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move invoice status from %s back to %s", e.From, e.To)
}

// NotEligibleForDeletionError rejects a delete attempted outside the
// permitted status set for the document's type.
type NotEligibleForDeletionError struct {
	Entity string
	ID     string
	Status string
}

func (e *NotEligibleForDeletionError) Error() string {
	return fmt.Sprintf("%s %q cannot be deleted at status %s", e.Entity, e.ID, e.Status)
}

// IsInvalidTransition reports whether err is an InvalidTransitionError.
func IsInvalidTransition(err error) bool {
	var e *InvalidTransitionError
	return errors.As(err, &e)
}

// IsNotEligibleForDeletion reports whether err is a
// NotEligibleForDeletionError.
func IsNotEligibleForDeletion(err error) bool {
	var e *NotEligibleForDeletionError
	return errors.As(err, &e)
}
