package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrStorageUnavailable reports that the store could not be opened, configured or migrated.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrStorageIO reports that a statement failed after the store was opened.
	ErrStorageIO = errors.New("storage i/o error")
	// ErrNotFound reports that an operation targeted a row that does not exist.
	ErrNotFound = errors.New("not found")
)

// IOError wraps a failed statement so callers can match it with errors.Is(err, ErrStorageIO).
// gorm.ErrRecordNotFound is translated to ErrNotFound.
func IOError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorageIO, err)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}
