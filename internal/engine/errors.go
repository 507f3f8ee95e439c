package engine

import (
	"errors"
	"fmt"

	"github.com/scribehq/outline/internal/hierarchy"
)

// MutationError represents a rejected or failed mutation request.
//
// Rejections carry the precise arithmetic reason (expected next
// number, valid occupied range) so the caller can correct its request
// without guessing.
type MutationError struct {
	// Code identifies the error category.
	Code MutationErrorCode

	// Message is a human-readable description.
	Message string

	// Level is the hierarchy level of the affected group.
	Level hierarchy.Level

	// ParentID identifies the affected sibling group, when known.
	ParentID string

	// Err is the underlying store error, if any.
	Err error
}

// MutationErrorCode categorizes mutation errors.
type MutationErrorCode string

const (
	// ErrCodeIllogicalNumber indicates the requested number is outside
	// the valid range implied by the current group size. Rejected
	// before any write.
	ErrCodeIllogicalNumber MutationErrorCode = "ILLOGICAL_NUMBER"

	// ErrCodeDuplicateNumber indicates a store-level uniqueness
	// violation survived the two-phase write, i.e. a concurrent
	// conflicting transaction. The transaction was rolled back;
	// safe to retry.
	ErrCodeDuplicateNumber MutationErrorCode = "DUPLICATE_NUMBER"

	// ErrCodeNotFound indicates the referenced parent or record does
	// not exist. No transaction was opened.
	ErrCodeNotFound MutationErrorCode = "NOT_FOUND"

	// ErrCodeTransactionFailure indicates a store I/O or commit
	// failure. The transaction was rolled back; no partial state is
	// visible, so retrying is safe.
	ErrCodeTransactionFailure MutationErrorCode = "TRANSACTION_FAILURE"
)

// Error implements the error interface.
func (e *MutationError) Error() string {
	if e.ParentID != "" {
		return fmt.Sprintf("%s: %s (level=%s, parent=%s)", e.Code, e.Message, e.Level, e.ParentID)
	}
	return fmt.Sprintf("%s: %s (level=%s)", e.Code, e.Message, e.Level)
}

// Unwrap returns the underlying store error, if any.
func (e *MutationError) Unwrap() error {
	return e.Err
}

// IsIllogicalNumber returns true if the error is an illogical-number
// rejection. Uses errors.As to handle wrapped errors.
func IsIllogicalNumber(err error) bool {
	var me *MutationError
	if errors.As(err, &me) {
		return me.Code == ErrCodeIllogicalNumber
	}
	return false
}

// IsConflict returns true if the error is a retryable concurrent
// conflict (duplicate number surfaced despite the two-phase write).
func IsConflict(err error) bool {
	var me *MutationError
	if errors.As(err, &me) {
		return me.Code == ErrCodeDuplicateNumber
	}
	return false
}

// IsNotFound returns true if the error is a missing parent or record.
func IsNotFound(err error) bool {
	var me *MutationError
	if errors.As(err, &me) {
		return me.Code == ErrCodeNotFound
	}
	return false
}

// newIllogicalInsertError rejects an insert whose number is not the
// next available slot. Names the group's actual current size.
func newIllogicalInsertError(level hierarchy.Level, parentID string, requested, size int) *MutationError {
	return &MutationError{
		Code:     ErrCodeIllogicalNumber,
		Message:  fmt.Sprintf("insert at number %d rejected: group has %d records, next number is %d", requested, size, size+1),
		Level:    level,
		ParentID: parentID,
	}
}

// newIllogicalMoveError rejects a move whose target is not an occupied
// slot. Names the valid occupied range.
func newIllogicalMoveError(level hierarchy.Level, parentID string, requested, size int) *MutationError {
	return &MutationError{
		Code:     ErrCodeIllogicalNumber,
		Message:  fmt.Sprintf("move to number %d rejected: occupied range is 1..%d", requested, size),
		Level:    level,
		ParentID: parentID,
	}
}

// newIllogicalReorderError rejects a bulk reorder that is not a
// bijection onto currently occupied slots.
func newIllogicalReorderError(level hierarchy.Level, parentID, reason string) *MutationError {
	return &MutationError{
		Code:     ErrCodeIllogicalNumber,
		Message:  fmt.Sprintf("bulk reorder rejected: %s", reason),
		Level:    level,
		ParentID: parentID,
	}
}

// newNotFoundError reports a missing parent or record.
func newNotFoundError(level hierarchy.Level, id string) *MutationError {
	return &MutationError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s %q does not exist", level, id),
		Level:   level,
	}
}

// newConflictError reports a concurrent conflict that exhausted the
// retry budget. The transaction was rolled back.
func newConflictError(level hierarchy.Level, parentID string, err error) *MutationError {
	return &MutationError{
		Code:     ErrCodeDuplicateNumber,
		Message:  "concurrent mutation conflict, retry the request",
		Level:    level,
		ParentID: parentID,
		Err:      err,
	}
}

// newTransactionError reports a store failure mid-transaction.
func newTransactionError(level hierarchy.Level, parentID string, err error) *MutationError {
	return &MutationError{
		Code:     ErrCodeTransactionFailure,
		Message:  fmt.Sprintf("transaction failed: %v", err),
		Level:    level,
		ParentID: parentID,
		Err:      err,
	}
}
