package service

import (
	"errors"

	"github.com/mmeshcher/shops-admin/internal/validation"
)

var (
	ErrNotFound   = errors.New("shop not found")
	ErrNotCreated = errors.New("shop not created")
	ErrNotUpdated = errors.New("shop not updated")
	ErrNotDeleted = errors.New("shop not deleted")
)

type ValidationError = validation.ValidationError

// Cause returns the storage error wrapped into a persistence failure, or err
// itself when there is nothing underneath.
func Cause(err error) error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs := joined.Unwrap()
		if len(errs) > 1 {
			return errs[len(errs)-1]
		}
	}
	return err
}
