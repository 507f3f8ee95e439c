package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribehq/outline/internal/hierarchy"
)

func TestTxRollbackLeavesNothing(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.CreateRecord(ctx, hierarchy.Record{
		ID: "p1", Level: hierarchy.Part, ParentID: hierarchy.RootParent, Number: 1, Title: "One",
	}))
	require.NoError(t, tx.Rollback())

	count, err := s.CountSiblings(ctx, hierarchy.Part, hierarchy.RootParent)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestTxRollbackAfterCommitIsNoop(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.CreateRecord(ctx, hierarchy.Record{
		ID: "p1", Level: hierarchy.Part, ParentID: hierarchy.RootParent, Number: 1, Title: "One",
	}))
	require.NoError(t, tx.Commit())
	assert.NoError(t, tx.Rollback())

	count, err := s.CountSiblings(ctx, hierarchy.Part, hierarchy.RootParent)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestTxSeesOwnWrites(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	require.NoError(t, tx.CreateRecord(ctx, hierarchy.Record{
		ID: "p1", Level: hierarchy.Part, ParentID: hierarchy.RootParent, Number: 1, Title: "One",
	}))

	siblings, err := tx.ListSiblings(ctx, hierarchy.Part, hierarchy.RootParent)
	require.NoError(t, err)
	assert.Equal(t, []hierarchy.Sibling{{ID: "p1", Number: 1}}, siblings)
}

func TestUpdateNumber(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	mustCreate(t, s, hierarchy.Record{ID: "c1", Level: hierarchy.Chapter, ParentID: "p1", Number: 1, Title: "A"})

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.UpdateNumber(ctx, hierarchy.Chapter, "c1", 5))
	require.NoError(t, tx.Commit())

	rec, err := s.GetRecord(ctx, hierarchy.Chapter, "c1")
	require.NoError(t, err)
	assert.Equal(t, 5, rec.Number)
}

func TestUpdateNumberNotFound(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	err = tx.UpdateNumber(ctx, hierarchy.Chapter, "ghost", 1)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestUpdateNumberDuplicate(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	mustCreate(t, s, hierarchy.Record{ID: "c1", Level: hierarchy.Chapter, ParentID: "p1", Number: 1, Title: "A"})
	mustCreate(t, s, hierarchy.Record{ID: "c2", Level: hierarchy.Chapter, ParentID: "p1", Number: 2, Title: "B"})

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	// Uniqueness is checked per statement, not at commit: moving c2
	// onto c1's number fails immediately.
	err = tx.UpdateNumber(ctx, hierarchy.Chapter, "c2", 1)
	require.Error(t, err)
	assert.True(t, IsDuplicateNumber(err))
}

func TestDeleteRecord(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	mustCreate(t, s, hierarchy.Record{ID: "n1", Level: hierarchy.Notion, ParentID: "para1", Number: 1, Title: "N"})

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.DeleteRecord(ctx, hierarchy.Notion, "n1"))
	require.NoError(t, tx.Commit())

	_, err = s.GetRecord(ctx, hierarchy.Notion, "n1")
	assert.True(t, IsNotFound(err))
}

func TestDeleteRecordNotFound(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	err = tx.DeleteRecord(ctx, hierarchy.Notion, "ghost")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}
