package engine

import (
	"context"

	"github.com/scribehq/outline/internal/hierarchy"
)

// Node is one record in a materialized outline tree, children ordered
// by sequence number.
type Node struct {
	Record   hierarchy.Record
	Children []*Node
}

// Tree materializes the whole outline, top-down, each sibling group
// ordered by number. Read-only; uses no transaction, so a concurrent
// mutation may be reflected wholly or not at all per group, but never
// as a partially renumbered group.
func (e *Engine) Tree(ctx context.Context) ([]*Node, error) {
	return e.subtree(ctx, hierarchy.Part, hierarchy.RootParent)
}

// Subtree materializes the outline below one parent.
func (e *Engine) Subtree(ctx context.Context, level hierarchy.Level, parentID string) ([]*Node, error) {
	if err := e.checkParent(ctx, level, parentID); err != nil {
		return nil, err
	}
	return e.subtree(ctx, level, parentID)
}

func (e *Engine) subtree(ctx context.Context, level hierarchy.Level, parentID string) ([]*Node, error) {
	records, err := e.store.ListChildren(ctx, level, parentID)
	if err != nil {
		return nil, newTransactionError(level, parentID, err)
	}

	nodes := make([]*Node, 0, len(records))
	for _, rec := range records {
		node := &Node{Record: rec}
		if childLevel, ok := level.Child(); ok {
			children, err := e.subtree(ctx, childLevel, rec.ID)
			if err != nil {
				return nil, err
			}
			node.Children = children
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// Get returns a single record. Exposed for callers that resolve ids
// (e.g. the CLI) without reaching into the store directly.
func (e *Engine) Get(ctx context.Context, level hierarchy.Level, id string) (hierarchy.Record, error) {
	return e.getRecord(ctx, level, id)
}

// Siblings returns the ordered sibling group under a parent.
func (e *Engine) Siblings(ctx context.Context, level hierarchy.Level, parentID string) ([]hierarchy.Sibling, error) {
	siblings, err := e.store.ListSiblings(ctx, level, parentID)
	if err != nil {
		return nil, newTransactionError(level, parentID, err)
	}
	return siblings, nil
}
