package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/scribehq/outline/internal/hierarchy"
)

// ListSiblings returns the sibling group under (level, parentID),
// ordered ascending by sequence number. Returns an empty slice (not
// nil) for an empty group.
func (s *Store) ListSiblings(ctx context.Context, level hierarchy.Level, parentID string) ([]hierarchy.Sibling, error) {
	return listSiblings(ctx, s.db, level, parentID)
}

// CountSiblings returns the size of the sibling group under
// (level, parentID).
func (s *Store) CountSiblings(ctx context.Context, level hierarchy.Level, parentID string) (int, error) {
	return countSiblings(ctx, s.db, level, parentID)
}

// GetRecord returns the record with the given id at the given level.
// Returns ErrNotFound if no such record exists.
func (s *Store) GetRecord(ctx context.Context, level hierarchy.Level, id string) (hierarchy.Record, error) {
	return getRecord(ctx, s.db, level, id)
}

// ListChildren returns the full records under (level, parentID),
// ordered ascending by sequence number.
func (s *Store) ListChildren(ctx context.Context, level hierarchy.Level, parentID string) ([]hierarchy.Record, error) {
	return listChildren(ctx, s.db, level, parentID)
}

// querier is satisfied by both *sql.DB and *sql.Tx, so the read
// helpers serve plain reads and fresh in-transaction snapshots alike.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func listSiblings(ctx context.Context, q querier, level hierarchy.Level, parentID string) ([]hierarchy.Sibling, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, seq FROM records
		WHERE level = ? AND parent_id = ?
		ORDER BY seq ASC
	`, int(level), parentID)
	if err != nil {
		return nil, fmt.Errorf("query siblings: %w", err)
	}
	defer rows.Close()

	siblings := []hierarchy.Sibling{}
	for rows.Next() {
		var sib hierarchy.Sibling
		if err := rows.Scan(&sib.ID, &sib.Number); err != nil {
			return nil, fmt.Errorf("scan sibling: %w", err)
		}
		siblings = append(siblings, sib)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate siblings: %w", err)
	}

	return siblings, nil
}

func countSiblings(ctx context.Context, q querier, level hierarchy.Level, parentID string) (int, error) {
	var count int
	err := q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM records
		WHERE level = ? AND parent_id = ?
	`, int(level), parentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count siblings: %w", err)
	}
	return count, nil
}

func getRecord(ctx context.Context, q querier, level hierarchy.Level, id string) (hierarchy.Record, error) {
	var rec hierarchy.Record
	var lvl int
	err := q.QueryRowContext(ctx, `
		SELECT id, level, parent_id, seq, title, body FROM records
		WHERE level = ? AND id = ?
	`, int(level), id).Scan(&rec.ID, &lvl, &rec.ParentID, &rec.Number, &rec.Title, &rec.Body)
	if err == sql.ErrNoRows {
		return hierarchy.Record{}, fmt.Errorf("%s %q: %w", level, id, ErrNotFound)
	}
	if err != nil {
		return hierarchy.Record{}, fmt.Errorf("get record: %w", err)
	}
	rec.Level = hierarchy.Level(lvl)
	return rec, nil
}

func listChildren(ctx context.Context, q querier, level hierarchy.Level, parentID string) ([]hierarchy.Record, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, level, parent_id, seq, title, body FROM records
		WHERE level = ? AND parent_id = ?
		ORDER BY seq ASC
	`, int(level), parentID)
	if err != nil {
		return nil, fmt.Errorf("query children: %w", err)
	}
	defer rows.Close()

	records := []hierarchy.Record{}
	for rows.Next() {
		var rec hierarchy.Record
		var lvl int
		if err := rows.Scan(&rec.ID, &lvl, &rec.ParentID, &rec.Number, &rec.Title, &rec.Body); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.Level = hierarchy.Level(lvl)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate children: %w", err)
	}

	return records, nil
}
