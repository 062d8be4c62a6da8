package services

import (
	"errors"
	"fmt"

	"github.com/shashiranjanraj/crm/app/models"
)

// ValidationError carries a user-facing message for a rejected input.
type ValidationError = models.ValidationError

// ErrDuplicateEmail is returned when a customer's email is already taken.
var ErrDuplicateEmail = errors.New("Email already exists")

const (
	msgNoProducts = "At least one product must be selected"
	msgInternal   = "internal error"
)

// NotFoundError reports a referenced row that does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s does not exist", e.Entity, e.ID)
}

// IsUserError reports whether err's message is meant for API callers as-is.
func IsUserError(err error) bool {
	var verr *ValidationError
	var nf *NotFoundError
	return errors.As(err, &verr) || errors.As(err, &nf) || errors.Is(err, ErrDuplicateEmail)
}
