package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/scribehq/outline/internal/hierarchy"
)

// Tx is a multi-statement atomic transaction over outline records.
//
// The engine performs every mutation (record creation, deletion, and
// all renumbering passes) inside one Tx, so the group is observed
// either fully pre-mutation or fully post-mutation, never partially
// renumbered. Rollback after Commit is a no-op, so `defer tx.Rollback()`
// is always safe.
type Tx struct {
	tx *sql.Tx
}

// Begin starts a transaction.
func (s *Store) Begin(ctx context.Context) (*Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// Commit commits the transaction.
func (t *Tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Rollback aborts the transaction. No-op if already committed.
func (t *Tx) Rollback() error {
	err := t.tx.Rollback()
	if err == sql.ErrTxDone {
		return nil
	}
	return err
}

// ListSiblings returns a fresh ordered snapshot of the sibling group
// as seen inside this transaction, including this transaction's own
// uncommitted writes.
func (t *Tx) ListSiblings(ctx context.Context, level hierarchy.Level, parentID string) ([]hierarchy.Sibling, error) {
	return listSiblings(ctx, t.tx, level, parentID)
}

// ListChildren returns the full child records under (level, parentID)
// as seen inside this transaction.
func (t *Tx) ListChildren(ctx context.Context, level hierarchy.Level, parentID string) ([]hierarchy.Record, error) {
	return listChildren(ctx, t.tx, level, parentID)
}

// GetRecord returns the record as seen inside this transaction.
func (t *Tx) GetRecord(ctx context.Context, level hierarchy.Level, id string) (hierarchy.Record, error) {
	return getRecord(ctx, t.tx, level, id)
}

// CreateRecord inserts a new record. Returns ErrDuplicateNumber if a
// sibling already holds rec.Number.
func (t *Tx) CreateRecord(ctx context.Context, rec hierarchy.Record) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO records (id, level, parent_id, seq, title, body)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.ID, int(rec.Level), rec.ParentID, rec.Number, rec.Title, rec.Body)
	if err != nil {
		return fmt.Errorf("create record: %w", mapConstraint(err))
	}
	return nil
}

// UpdateNumber rewrites a record's sequence number. Returns
// ErrDuplicateNumber if a sibling already holds newNumber, and
// ErrNotFound if the record does not exist.
func (t *Tx) UpdateNumber(ctx context.Context, level hierarchy.Level, id string, newNumber int) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE records SET seq = ? WHERE level = ? AND id = ?
	`, newNumber, int(level), id)
	if err != nil {
		return fmt.Errorf("update number: %w", mapConstraint(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update number: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update number: %s %q: %w", level, id, ErrNotFound)
	}
	return nil
}

// DeleteRecord removes a record. Returns ErrNotFound if it does not
// exist.
func (t *Tx) DeleteRecord(ctx context.Context, level hierarchy.Level, id string) error {
	res, err := t.tx.ExecContext(ctx, `
		DELETE FROM records WHERE level = ? AND id = ?
	`, int(level), id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete record: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete record: %s %q: %w", level, id, ErrNotFound)
	}
	return nil
}
