package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scribehq/outline/internal/engine"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the outline tree",
		Long: `Print the whole outline, each sibling group ordered by sequence
number. Text output indents two spaces per level; JSON output nests
children.

Example:
  outline show --db book.db
  outline show --db book.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, cmd)
		},
	}

	return cmd
}

func runShow(opts *RootOptions, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	eng, cleanup, err := openEngine(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	tree, err := eng.Tree(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read outline", err)
	}

	if opts.Format == "json" {
		return out.Success(toJSONNodes(tree))
	}

	if len(tree) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "(empty outline)")
		return nil
	}
	renderTree(cmd.OutOrStdout(), tree, 0)
	return nil
}

// renderTree writes the text rendering: two-space indent per level,
// "number. title" per record.
func renderTree(w io.Writer, nodes []*engine.Node, depth int) {
	for _, node := range nodes {
		fmt.Fprintf(w, "%s%d. %s\n", strings.Repeat("  ", depth), node.Record.Number, node.Record.Title)
		renderTree(w, node.Children, depth+1)
	}
}

// jsonNode is the JSON shape of a tree node.
type jsonNode struct {
	ID       string     `json:"id"`
	Level    string     `json:"level"`
	Number   int        `json:"number"`
	Title    string     `json:"title"`
	Body     string     `json:"body,omitempty"`
	Children []jsonNode `json:"children,omitempty"`
}

func toJSONNodes(nodes []*engine.Node) []jsonNode {
	out := make([]jsonNode, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, jsonNode{
			ID:       node.Record.ID,
			Level:    node.Record.Level.String(),
			Number:   node.Record.Number,
			Title:    node.Record.Title,
			Body:     node.Record.Body,
			Children: toJSONNodes(node.Children),
		})
	}
	return out
}
