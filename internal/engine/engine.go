package engine

import (
	"context"
	"fmt"

	"github.com/scribehq/outline/internal/hierarchy"
	"github.com/scribehq/outline/internal/store"
)

// DefaultMaxAttempts bounds how often a mutation is retried from a
// fresh snapshot after a concurrent conflict.
const DefaultMaxAttempts = 3

// Engine is the ordered-sibling sequencing engine.
//
// It owns every sequence-number mutation: records are inserted,
// deleted, moved, and bulk-reordered exclusively through it, so the
// dense-numbering invariant (numbers in a group of size N are exactly
// 1..N) holds at every boundary between transactions.
//
// Thread-safety: all methods are safe for concurrent use. Mutations
// against the same sibling group serialize on the store's
// transaction isolation; mutations against disjoint groups never
// contend on anything but the connection.
type Engine struct {
	store       *store.Store
	idGen       IDGenerator
	notifier    Notifier
	cache       CacheInvalidator
	maxAttempts int
	hook        txHook // test-only consistency probe
}

// Option configures an Engine.
type Option func(*Engine)

// WithNotifier wires the post-commit broadcast collaborator.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithCacheInvalidator wires the post-commit cache collaborator.
func WithCacheInvalidator(c CacheInvalidator) Option {
	return func(e *Engine) { e.cache = c }
}

// WithIDGenerator overrides the record id generator (for testing).
func WithIDGenerator(g IDGenerator) Option {
	return func(e *Engine) { e.idGen = g }
}

// WithMaxAttempts overrides the conflict retry budget.
func WithMaxAttempts(n int) Option {
	return func(e *Engine) { e.maxAttempts = n }
}

// withTxHook installs a transaction-phase probe. Test-only.
func withTxHook(h txHook) Option {
	return func(e *Engine) { e.hook = h }
}

// New creates an Engine over the given store.
// Defaults: UUIDv7 record ids, LogNotifier, no cache invalidator.
func New(s *store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:       s,
		idGen:       UUIDv7Generator{},
		notifier:    LogNotifier{},
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Insert creates a record at the requested number.
//
// The number must be the logical next slot (current group size + 1);
// anything else is rejected with the group's actual size, never
// silently corrected. No existing sibling is touched.
func (e *Engine) Insert(ctx context.Context, level hierarchy.Level, parentID string, number int, payload hierarchy.Payload) (string, error) {
	if err := e.checkParent(ctx, level, parentID); err != nil {
		return "", err
	}

	id := e.idGen.Generate()
	rec := hierarchy.Record{
		ID:       id,
		Level:    level,
		ParentID: parentID,
		Number:   number,
		Title:    payload.Normalize().Title,
		Body:     payload.Body,
	}

	err := e.runMutation(ctx, level, parentID, func(tx *store.Tx) error {
		siblings, err := tx.ListSiblings(ctx, level, parentID)
		if err != nil {
			return err
		}
		if err := validateInsert(level, parentID, len(siblings), number); err != nil {
			return err
		}
		return tx.CreateRecord(ctx, rec)
	})
	if err != nil {
		return "", err
	}

	e.notify(ctx, ChangeEvent{Level: level, ParentID: parentID, Action: ActionCreated, AffectedCount: 1})
	return id, nil
}

// Delete removes a record and its whole subtree, then compacts the
// record's sibling group: every sibling numbered above the vacated
// slot shifts down by one. Siblings below it are untouched.
func (e *Engine) Delete(ctx context.Context, level hierarchy.Level, id string) error {
	rec, err := e.getRecord(ctx, level, id)
	if err != nil {
		return err
	}

	var affected int
	err = e.runMutation(ctx, level, rec.ParentID, func(tx *store.Tx) error {
		siblings, err := tx.ListSiblings(ctx, level, rec.ParentID)
		if err != nil {
			return err
		}
		number, ok := findNumber(siblings, id)
		if !ok {
			return newNotFoundError(level, id)
		}

		removed, err := deleteSubtree(ctx, tx, level, id)
		if err != nil {
			return err
		}

		plan := planDelete(siblings, number)
		if err := e.applyPlan(ctx, tx, level, plan); err != nil {
			return err
		}
		affected = removed + len(plan)
		return nil
	})
	if err != nil {
		return err
	}

	e.notify(ctx, ChangeEvent{Level: level, ParentID: rec.ParentID, Action: ActionDeleted, AffectedCount: affected})
	return nil
}

// Move repositions a single record to the requested number, rotating
// the sub-range between its old and new slots by one. The target must
// be an occupied slot (1..group size).
func (e *Engine) Move(ctx context.Context, level hierarchy.Level, id string, number int) error {
	rec, err := e.getRecord(ctx, level, id)
	if err != nil {
		return err
	}

	var affected int
	err = e.runMutation(ctx, level, rec.ParentID, func(tx *store.Tx) error {
		siblings, err := tx.ListSiblings(ctx, level, rec.ParentID)
		if err != nil {
			return err
		}
		current, ok := findNumber(siblings, id)
		if !ok {
			return newNotFoundError(level, id)
		}
		if err := validateMove(level, rec.ParentID, len(siblings), current, number); err != nil {
			return err
		}

		plan := planMove(siblings, id, current, number)
		if err := e.applyPlan(ctx, tx, level, plan); err != nil {
			return err
		}
		affected = len(plan)
		return nil
	})
	if err != nil {
		return err
	}

	e.notify(ctx, ChangeEvent{Level: level, ParentID: rec.ParentID, Action: ActionMoved, AffectedCount: affected})
	return nil
}

// Reorder applies an arbitrary permutation to a subset of a sibling
// group. The assignments must name distinct group members and their
// target numbers must be a bijection onto the slots that subset
// currently occupies. The whole subset is rewritten in one two-phase
// transaction.
func (e *Engine) Reorder(ctx context.Context, level hierarchy.Level, parentID string, assignments []Assignment) error {
	if err := e.checkParent(ctx, level, parentID); err != nil {
		return err
	}

	var affected int
	err := e.runMutation(ctx, level, parentID, func(tx *store.Tx) error {
		siblings, err := tx.ListSiblings(ctx, level, parentID)
		if err != nil {
			return err
		}
		if err := validateReorder(level, parentID, siblings, assignments); err != nil {
			return err
		}

		plan := planReorder(siblings, assignments)
		if err := e.applyPlan(ctx, tx, level, plan); err != nil {
			return err
		}
		affected = len(plan)
		return nil
	})
	if err != nil {
		return err
	}

	e.notify(ctx, ChangeEvent{Level: level, ParentID: parentID, Action: ActionReordered, AffectedCount: affected})
	return nil
}

// checkParent verifies the target sibling group can exist: Parts live
// under the reserved root parent, every other level under an existing
// record one level up. Runs before any transaction is opened.
func (e *Engine) checkParent(ctx context.Context, level hierarchy.Level, parentID string) error {
	if !level.Valid() {
		return &MutationError{
			Code:    ErrCodeNotFound,
			Message: fmt.Sprintf("unknown hierarchy level %d", int(level)),
			Level:   level,
		}
	}

	parentLevel, ok := level.Parent()
	if !ok {
		if parentID != hierarchy.RootParent {
			return &MutationError{
				Code:    ErrCodeNotFound,
				Message: fmt.Sprintf("parts have no parent record, got parent %q", parentID),
				Level:   level,
			}
		}
		return nil
	}

	if _, err := e.store.GetRecord(ctx, parentLevel, parentID); err != nil {
		if store.IsNotFound(err) {
			return newNotFoundError(parentLevel, parentID)
		}
		return newTransactionError(level, parentID, err)
	}
	return nil
}

// getRecord is the pre-transaction existence check for delete/move.
func (e *Engine) getRecord(ctx context.Context, level hierarchy.Level, id string) (hierarchy.Record, error) {
	if !level.Valid() {
		return hierarchy.Record{}, &MutationError{
			Code:    ErrCodeNotFound,
			Message: fmt.Sprintf("unknown hierarchy level %d", int(level)),
			Level:   level,
		}
	}
	rec, err := e.store.GetRecord(ctx, level, id)
	if err != nil {
		if store.IsNotFound(err) {
			return hierarchy.Record{}, newNotFoundError(level, id)
		}
		return hierarchy.Record{}, newTransactionError(level, id, err)
	}
	return rec, nil
}

// deleteSubtree removes a record and all its descendants, bottom-up,
// inside the given transaction. Descendant sibling groups vanish
// whole, so they need no renumbering. Returns the number of records
// removed.
func deleteSubtree(ctx context.Context, tx *store.Tx, level hierarchy.Level, id string) (int, error) {
	removed := 1
	if childLevel, ok := level.Child(); ok {
		children, err := tx.ListChildren(ctx, childLevel, id)
		if err != nil {
			return 0, err
		}
		for _, child := range children {
			n, err := deleteSubtree(ctx, tx, childLevel, child.ID)
			if err != nil {
				return 0, err
			}
			removed += n
		}
	}

	if err := tx.DeleteRecord(ctx, level, id); err != nil {
		return 0, err
	}
	return removed, nil
}

// findNumber looks up a record's current number in a sibling snapshot.
func findNumber(siblings []hierarchy.Sibling, id string) (int, bool) {
	for _, sib := range siblings {
		if sib.ID == id {
			return sib.Number, true
		}
	}
	return 0, false
}
