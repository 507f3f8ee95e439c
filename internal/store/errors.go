package store

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// ErrNotFound indicates the requested record (or parent) does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateNumber indicates a write violated the unique constraint
// on (level, parent_id, seq): some sibling already holds the number.
var ErrDuplicateNumber = errors.New("sequence number already in use")

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateNumber reports whether err is (or wraps) ErrDuplicateNumber.
func IsDuplicateNumber(err error) bool {
	return errors.Is(err, ErrDuplicateNumber)
}

// IsBusy reports whether err is a SQLite lock-contention error
// (SQLITE_BUSY / SQLITE_LOCKED). Safe to retry the whole transaction.
func IsBusy(err error) bool {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		return serr.Code == sqlite3.ErrBusy || serr.Code == sqlite3.ErrLocked
	}
	return false
}

// mapConstraint translates SQLite unique-constraint violations into
// ErrDuplicateNumber so callers never match on driver error strings.
// Other errors pass through unchanged.
func mapConstraint(err error) error {
	if err == nil {
		return nil
	}
	var serr sqlite3.Error
	if errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return fmt.Errorf("%w: %v", ErrDuplicateNumber, err)
	}
	return err
}
