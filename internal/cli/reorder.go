package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scribehq/outline/internal/engine"
	"github.com/scribehq/outline/internal/hierarchy"
)

// ReorderOptions holds flags for the reorder command.
type ReorderOptions struct {
	*RootOptions
	Parent string
}

// NewReorderCommand creates the reorder command.
func NewReorderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReorderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "reorder <level> <id=number>...",
		Short: "Apply a permutation to a subset of a sibling group",
		Long: `Renumber several records of one sibling group in a single atomic
transaction. The target numbers must be a permutation of the slots the
named records currently occupy - the group stays densely numbered.

Example:
  outline reorder chapter a1b2=3 c3d4=1 e5f6=2 --db book.db --parent <part-id>`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReorder(opts, args[0], args[1:], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Parent, "parent", "", "parent record id (omit for parts)")

	return cmd
}

func runReorder(opts *ReorderOptions, levelName string, pairs []string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	level, err := hierarchy.ParseLevel(levelName)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid level", err)
	}

	assignments, err := parseAssignments(pairs)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid assignment", err)
	}

	eng, cleanup, err := openEngine(opts.RootOptions)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := eng.Reorder(cmd.Context(), level, opts.Parent, assignments); err != nil {
		return out.MutationFailure(err)
	}

	if opts.Format == "json" {
		return out.Success(map[string]interface{}{
			"level":      level.String(),
			"reassigned": len(assignments),
		})
	}
	return out.Success(fmt.Sprintf("✓ reordered %d %ss", len(assignments), level))
}

// parseAssignments converts "id=number" arguments into engine
// assignments.
func parseAssignments(pairs []string) ([]engine.Assignment, error) {
	assignments := make([]engine.Assignment, 0, len(pairs))
	for _, pair := range pairs {
		id, numberPart, ok := strings.Cut(pair, "=")
		if !ok || id == "" {
			return nil, fmt.Errorf("expected id=number, got %q", pair)
		}
		number, err := strconv.Atoi(numberPart)
		if err != nil {
			return nil, fmt.Errorf("expected id=number, got %q: %w", pair, err)
		}
		assignments = append(assignments, engine.Assignment{ID: id, Number: number})
	}
	return assignments, nil
}
