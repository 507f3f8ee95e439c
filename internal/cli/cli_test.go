package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/scribehq/outline/internal/engine"
	"github.com/scribehq/outline/internal/hierarchy"
	"github.com/scribehq/outline/internal/store"
)

// newTestDB returns the path of a fresh database file.
func newTestDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "outline.db")
}

// seedOutline builds a small outline directly through the engine and
// returns the ids it created, keyed by title.
func seedOutline(t *testing.T, dbPath string) map[string]string {
	t.Helper()
	ctx := context.Background()

	s, err := store.Open(dbPath)
	require.NoError(t, err)
	defer s.Close()
	eng := engine.New(s)

	ids := make(map[string]string)
	insert := func(level hierarchy.Level, parentID string, number int, title string) {
		id, err := eng.Insert(ctx, level, parentID, number, hierarchy.Payload{Title: title})
		require.NoError(t, err)
		ids[title] = id
	}

	insert(hierarchy.Part, hierarchy.RootParent, 1, "The Beginning")
	insert(hierarchy.Part, hierarchy.RootParent, 2, "The Middle")
	insert(hierarchy.Chapter, ids["The Beginning"], 1, "Origins")
	insert(hierarchy.Chapter, ids["The Beginning"], 2, "Departures")
	insert(hierarchy.Paragraph, ids["Origins"], 1, "First Steps")
	insert(hierarchy.Notion, ids["First Steps"], 1, "A Spark")

	return ids
}

// runCommand executes a subcommand with the given args and returns
// its output.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
