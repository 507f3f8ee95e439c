package engine

import (
	"context"
	"log/slog"

	"github.com/scribehq/outline/internal/hierarchy"
)

// Action names the mutation kind in a change event.
type Action string

const (
	ActionCreated   Action = "created"
	ActionDeleted   Action = "deleted"
	ActionMoved     Action = "moved"
	ActionReordered Action = "reordered"
)

// ChangeEvent describes a committed mutation to downstream consumers.
// AffectedCount is the number of records whose row changed, the
// created/deleted record included.
type ChangeEvent struct {
	Level         hierarchy.Level
	ParentID      string
	Action        Action
	AffectedCount int
}

// Notifier receives change events after a successful commit. The
// broadcast transport behind it is out of scope here; the engine only
// guarantees the call happens post-commit and that a failing notifier
// never turns a committed mutation into an error.
type Notifier interface {
	Notify(ctx context.Context, ev ChangeEvent) error
}

// CacheInvalidator is told which parent's materialized structure is
// stale after a commit. Same best-effort contract as Notifier.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, level hierarchy.Level, parentID string) error
}

// LogNotifier is the default Notifier: it logs the event and nothing
// else. Useful on its own for debugging and as the fallback when no
// broadcast collaborator is wired.
type LogNotifier struct{}

// Notify implements Notifier.
func (LogNotifier) Notify(_ context.Context, ev ChangeEvent) error {
	slog.Info("outline changed",
		"action", string(ev.Action),
		"level", ev.Level.String(),
		"parent", ev.ParentID,
		"affected", ev.AffectedCount,
	)
	return nil
}

// notify fans the event out to the notifier and cache collaborators.
// Post-commit and best-effort: failures are logged, never propagated,
// because the renumbering is already durable.
func (e *Engine) notify(ctx context.Context, ev ChangeEvent) {
	if e.notifier != nil {
		if err := e.notifier.Notify(ctx, ev); err != nil {
			slog.Warn("change notification failed",
				"action", string(ev.Action),
				"level", ev.Level.String(),
				"parent", ev.ParentID,
				"error", err,
			)
		}
	}
	if e.cache != nil {
		if err := e.cache.Invalidate(ctx, ev.Level, ev.ParentID); err != nil {
			slog.Warn("cache invalidation failed",
				"level", ev.Level.String(),
				"parent", ev.ParentID,
				"error", err,
			)
		}
	}
}
