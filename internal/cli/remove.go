package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scribehq/outline/internal/hierarchy"
)

// NewRemoveCommand creates the rm command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <level> <id>",
		Short: "Delete a record and its subtree, compacting its group",
		Long: `Delete a record, its whole subtree, and close the numbering gap:
every sibling numbered above the deleted slot shifts down by one.

Example:
  outline rm notion <notion-id> --db book.db`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runRemove(opts *RootOptions, levelName, id string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	level, err := hierarchy.ParseLevel(levelName)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid level", err)
	}

	eng, cleanup, err := openEngine(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := eng.Delete(cmd.Context(), level, id); err != nil {
		return out.MutationFailure(err)
	}

	if opts.Format == "json" {
		return out.Success(map[string]interface{}{
			"id":    id,
			"level": level.String(),
		})
	}
	return out.Success(fmt.Sprintf("✓ deleted %s %s", level, id))
}
