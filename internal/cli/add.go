package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scribehq/outline/internal/hierarchy"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Parent string
	Number int
	Body   string
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <level> <title>",
		Short: "Insert a record at the next available number",
		Long: `Insert a record into a sibling group.

The engine accepts only the logical next number (group size + 1).
Without --number the command reads the current group size and submits
size+1; with --number the given value is submitted as-is and rejected
if it is not the next slot.

Example:
  outline add part "Foundations" --db book.db
  outline add chapter "Types" --db book.db --parent <part-id>`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Parent, "parent", "", "parent record id (omit for parts)")
	cmd.Flags().IntVar(&opts.Number, "number", 0, "sequence number (default: next available)")
	cmd.Flags().StringVar(&opts.Body, "body", "", "record body text")

	return cmd
}

func runAdd(opts *AddOptions, levelName, title string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	level, err := hierarchy.ParseLevel(levelName)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid level", err)
	}

	eng, cleanup, err := openEngine(opts.RootOptions)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	number := opts.Number
	if number == 0 {
		siblings, err := eng.Siblings(ctx, level, opts.Parent)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read sibling group", err)
		}
		number = len(siblings) + 1
	}

	id, err := eng.Insert(ctx, level, opts.Parent, number, hierarchy.Payload{Title: title, Body: opts.Body})
	if err != nil {
		return out.MutationFailure(err)
	}

	if opts.Format == "json" {
		return out.Success(map[string]interface{}{
			"id":     id,
			"level":  level.String(),
			"number": number,
		})
	}
	return out.Success(fmt.Sprintf("✓ created %s %d: %s (%s)", level, number, title, id))
}
