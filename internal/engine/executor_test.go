package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribehq/outline/internal/hierarchy"
	"github.com/scribehq/outline/internal/store"
)

// TestTwoPhaseWriteConsistency drives a full 5-item permutation and
// probes the transaction between the executor's passes:
//
//	after the offset pass every planned number sits above numberOffset
//	after the final pass the numbers are exactly 1..5, no duplicates
func TestTwoPhaseWriteConsistency(t *testing.T) {
	ctx := context.Background()
	var offsetSeen, finalSeen bool

	var eng *Engine
	hook := func(ctx context.Context, phase txPhase, tx *store.Tx) error {
		siblings, err := tx.ListSiblings(ctx, hierarchy.Part, hierarchy.RootParent)
		if err != nil {
			return err
		}
		switch phase {
		case phaseAfterOffset:
			offsetSeen = true
			for _, sib := range siblings {
				assert.Greater(t, sib.Number, numberOffset,
					"offset pass must move every planned record out of the live range")
			}
		case phaseAfterFinal:
			finalSeen = true
			used := make(map[int]bool)
			for _, sib := range siblings {
				assert.False(t, used[sib.Number], "duplicate number %d after final pass", sib.Number)
				used[sib.Number] = true
				assert.GreaterOrEqual(t, sib.Number, 1)
				assert.LessOrEqual(t, sib.Number, 5)
			}
		}
		return nil
	}

	eng, _ = setupTestEngine(t, withTxHook(hook))
	ids := insertN(t, eng, hierarchy.Part, hierarchy.RootParent, 5)

	// Every id moves.
	require.NoError(t, eng.Reorder(ctx, hierarchy.Part, hierarchy.RootParent, []Assignment{
		{ids[0], 2}, {ids[1], 3}, {ids[2], 4}, {ids[3], 5}, {ids[4], 1},
	}))

	assert.True(t, offsetSeen, "hook must observe the offset pass")
	assert.True(t, finalSeen, "hook must observe the final pass")
}

// TestMidPassFailureRollsBackEverything simulates a failure between
// the offset and final passes. The group must be observed fully
// pre-mutation afterwards - a partial offset-only state never escapes
// the transaction.
func TestMidPassFailureRollsBackEverything(t *testing.T) {
	hook := func(_ context.Context, phase txPhase, _ *store.Tx) error {
		if phase == phaseAfterOffset {
			return fmt.Errorf("injected failure between passes")
		}
		return nil
	}

	eng, s := setupTestEngine(t, withTxHook(hook), WithMaxAttempts(1))
	ids := insertN(t, eng, hierarchy.Part, hierarchy.RootParent, 4)
	before := numbersByID(t, s, hierarchy.Part, hierarchy.RootParent)

	err := eng.Move(context.Background(), hierarchy.Part, ids[3], 1)
	require.Error(t, err)

	var me *MutationError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, ErrCodeTransactionFailure, me.Code)

	assert.Equal(t, before, numbersByID(t, s, hierarchy.Part, hierarchy.RootParent))
	assertDense(t, s, hierarchy.Part, hierarchy.RootParent)
}

// TestInsertSkipsTwoPhase verifies inserts never renumber siblings:
// the hook must not fire because there is no plan to apply.
func TestInsertSkipsTwoPhase(t *testing.T) {
	var fired bool
	hook := func(context.Context, txPhase, *store.Tx) error {
		fired = true
		return nil
	}

	eng, _ := setupTestEngine(t, withTxHook(hook))
	insertN(t, eng, hierarchy.Part, hierarchy.RootParent, 3)

	assert.False(t, fired, "insert must not renumber any sibling")
}

// TestDeleteOfLastSkipsTwoPhase: deleting the highest slot yields an
// empty plan, so no renumbering pass runs.
func TestDeleteOfLastSkipsTwoPhase(t *testing.T) {
	var fired bool
	hook := func(context.Context, txPhase, *store.Tx) error {
		fired = true
		return nil
	}

	eng, _ := setupTestEngine(t, withTxHook(hook))
	ids := insertN(t, eng, hierarchy.Part, hierarchy.RootParent, 3)

	require.NoError(t, eng.Delete(context.Background(), hierarchy.Part, ids[2]))
	assert.False(t, fired)
}

// TestConflictErrorAfterRetriesExhausted: a hook that keeps producing
// duplicate-number failures exhausts the retry budget and surfaces a
// retryable conflict.
func TestConflictErrorAfterRetriesExhausted(t *testing.T) {
	attempts := 0
	hook := func(ctx context.Context, phase txPhase, tx *store.Tx) error {
		if phase != phaseAfterOffset {
			return nil
		}
		attempts++
		// Park a colliding row so the final pass hits the unique
		// index, as a concurrent writer would.
		return tx.CreateRecord(ctx, hierarchy.Record{
			ID:       fmt.Sprintf("squatter-%d", attempts),
			Level:    hierarchy.Part,
			ParentID: hierarchy.RootParent,
			Number:   1,
			Title:    "Squatter",
		})
	}

	eng, s := setupTestEngine(t, withTxHook(hook), WithMaxAttempts(2))
	ids := insertN(t, eng, hierarchy.Part, hierarchy.RootParent, 3)
	before := numbersByID(t, s, hierarchy.Part, hierarchy.RootParent)

	err := eng.Move(context.Background(), hierarchy.Part, ids[2], 1)
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.Equal(t, 2, attempts, "the whole operation retries from a fresh read")

	// Rolled back on every attempt.
	assert.Equal(t, before, numbersByID(t, s, hierarchy.Part, hierarchy.RootParent))
}
