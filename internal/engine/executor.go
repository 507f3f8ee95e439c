package engine

import (
	"context"
	"errors"

	"github.com/scribehq/outline/internal/hierarchy"
	"github.com/scribehq/outline/internal/store"
)

// numberOffset shifts records out of the live numbering range during
// the first pass of a plan. It must exceed any plausible sibling-group
// size: an offset number may never collide with a live one.
const numberOffset = 10000

// txPhase names the point inside a transaction at which the test hook
// fires. Production code never sets a hook.
type txPhase string

const (
	phaseAfterOffset txPhase = "after-offset"
	phaseAfterFinal  txPhase = "after-final"
)

// txHook lets tests inject a transaction-wide consistency check
// between the executor's passes.
type txHook func(ctx context.Context, phase txPhase, tx *store.Tx) error

// applyPlan executes a reassignment plan inside the given transaction
// using the two-phase offset strategy.
//
// The store checks uniqueness per statement, so applying the plan
// directly can collide with a number another planned record has not
// yet vacated (renumbering A 2→3 before B leaves 3). Instead:
//
//	pass 1: every planned record moves to Old + numberOffset. Offset
//	        numbers cannot collide with each other (the Old numbers
//	        are unique) nor with untouched siblings (all below the
//	        offset range), so pass order is irrelevant.
//	pass 2: every planned record moves to its final number. All
//	        participants vacated the live range in pass 1, so no
//	        write collides with another planned write or with an
//	        untouched sibling.
//
// Correctness is a property of the two-phase structure, not of any
// careful write ordering. A failure at any point aborts the enclosing
// transaction; the caller rolls back.
func (e *Engine) applyPlan(ctx context.Context, tx *store.Tx, level hierarchy.Level, plan []Reassignment) error {
	if len(plan) == 0 {
		return nil
	}

	for _, r := range plan {
		if err := tx.UpdateNumber(ctx, level, r.ID, r.Old+numberOffset); err != nil {
			return err
		}
	}
	if err := e.fireHook(ctx, phaseAfterOffset, tx); err != nil {
		return err
	}

	for _, r := range plan {
		if err := tx.UpdateNumber(ctx, level, r.ID, r.New); err != nil {
			return err
		}
	}
	return e.fireHook(ctx, phaseAfterFinal, tx)
}

func (e *Engine) fireHook(ctx context.Context, phase txPhase, tx *store.Tx) error {
	if e.hook == nil {
		return nil
	}
	return e.hook(ctx, phase, tx)
}

// runMutation runs one attempt of a mutation inside a transaction and
// retries the whole cycle from a fresh snapshot on concurrent
// conflicts (duplicate-number or lock contention). Validation errors
// and not-found errors are returned as-is; other store errors become
// transaction failures. attempt receives a live transaction and must
// do its own fresh reads inside it.
func (e *Engine) runMutation(ctx context.Context, level hierarchy.Level, parentID string, attempt func(tx *store.Tx) error) error {
	var lastErr error
	for i := 0; i < e.maxAttempts; i++ {
		err := e.attemptOnce(ctx, attempt)
		if err == nil {
			return nil
		}

		var me *MutationError
		if errors.As(err, &me) {
			return me
		}
		if store.IsNotFound(err) {
			// The record vanished between snapshot and write: a
			// concurrent delete won. Not retryable into success.
			return &MutationError{
				Code:     ErrCodeNotFound,
				Message:  "record was removed by a concurrent mutation",
				Level:    level,
				ParentID: parentID,
				Err:      err,
			}
		}
		if store.IsDuplicateNumber(err) || store.IsBusy(err) {
			lastErr = err
			continue
		}
		return newTransactionError(level, parentID, err)
	}
	return newConflictError(level, parentID, lastErr)
}

// attemptOnce wraps one attempt in a transaction with rollback on any
// failure, so a partial offset-only state is never observable outside
// the transaction.
func (e *Engine) attemptOnce(ctx context.Context, attempt func(tx *store.Tx) error) error {
	tx, err := e.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback() // No-op if committed

	if err := attempt(tx); err != nil {
		return err
	}
	return tx.Commit()
}
