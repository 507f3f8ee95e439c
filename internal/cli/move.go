package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/scribehq/outline/internal/hierarchy"
)

// NewMoveCommand creates the mv command.
func NewMoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mv <level> <id> <number>",
		Short: "Move a record to an occupied slot in its group",
		Long: `Reposition a record within its sibling group. The target must be an
occupied slot (1..group size); the records between the old and new
slots rotate by one.

Example:
  outline mv chapter <chapter-id> 2 --db book.db`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMove(rootOpts, args[0], args[1], args[2], cmd)
		},
	}

	return cmd
}

func runMove(opts *RootOptions, levelName, id, numberArg string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	level, err := hierarchy.ParseLevel(levelName)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid level", err)
	}
	number, err := strconv.Atoi(numberArg)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("invalid number %q", numberArg), err)
	}

	eng, cleanup, err := openEngine(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := eng.Move(cmd.Context(), level, id, number); err != nil {
		return out.MutationFailure(err)
	}

	if opts.Format == "json" {
		return out.Success(map[string]interface{}{
			"id":     id,
			"level":  level.String(),
			"number": number,
		})
	}
	return out.Success(fmt.Sprintf("✓ moved %s %s to number %d", level, id, number))
}
