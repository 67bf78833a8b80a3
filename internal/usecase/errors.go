package usecase

import (
	"errors"
	"fmt"

	"github.com/ivlev/moneta/internal/domain"
)

// wrapPersistence marks a backing-store error as a persistence failure.
// Errors already in the domain taxonomy pass through untouched so the
// caller can still discriminate them.
func wrapPersistence(err error) error {
	if err == nil || domain.IsDomainError(err) {
		return err
	}

	return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
}

// isNotFound reports whether err is a lookup miss rather than a real
// failure.
func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrAccountNotFound) || errors.Is(err, domain.ErrOperationNotFound)
}
