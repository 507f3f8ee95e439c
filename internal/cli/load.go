package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scribehq/outline/internal/engine"
	"github.com/scribehq/outline/internal/hierarchy"
)

// NewLoadCommand creates the load command.
func NewLoadCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <file.yaml>",
		Short: "Import a YAML outline into the database",
		Long: `Create all records of a YAML outline document through the engine.
Sibling order in the file becomes the sequence numbering. Records are
appended after any the database already holds.

Example:
  outline load book.yaml --db book.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runLoad(opts *RootOptions, path string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	doc, err := LoadOutlineDocument(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load outline", err)
	}

	eng, cleanup, err := openEngine(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	created, err := importDocument(cmd.Context(), eng, doc)
	if err != nil {
		return out.MutationFailure(err)
	}

	if opts.Format == "json" {
		return out.Success(map[string]interface{}{
			"file":    path,
			"created": created,
		})
	}
	return out.Success(fmt.Sprintf("✓ imported %d records from %s", created, path))
}

// importDocument creates every record of the document through the
// engine, depth-first, appending each sibling at the group's next
// number.
func importDocument(ctx context.Context, eng *engine.Engine, doc *OutlineDocument) (int, error) {
	created := 0

	nextNumber := func(level hierarchy.Level, parentID string) (int, error) {
		siblings, err := eng.Siblings(ctx, level, parentID)
		if err != nil {
			return 0, err
		}
		return len(siblings) + 1, nil
	}

	for _, part := range doc.Parts {
		n, err := nextNumber(hierarchy.Part, hierarchy.RootParent)
		if err != nil {
			return created, err
		}
		partID, err := eng.Insert(ctx, hierarchy.Part, hierarchy.RootParent, n, hierarchy.Payload{Title: part.Title, Body: part.Body})
		if err != nil {
			return created, err
		}
		created++

		for ci, chapter := range part.Chapters {
			chapterID, err := eng.Insert(ctx, hierarchy.Chapter, partID, ci+1, hierarchy.Payload{Title: chapter.Title, Body: chapter.Body})
			if err != nil {
				return created, err
			}
			created++

			for gi, paragraph := range chapter.Paragraphs {
				paragraphID, err := eng.Insert(ctx, hierarchy.Paragraph, chapterID, gi+1, hierarchy.Payload{Title: paragraph.Title, Body: paragraph.Body})
				if err != nil {
					return created, err
				}
				created++

				for ni, notion := range paragraph.Notions {
					if _, err := eng.Insert(ctx, hierarchy.Notion, paragraphID, ni+1, hierarchy.Payload{Title: notion.Title, Body: notion.Body}); err != nil {
						return created, err
					}
					created++
				}
			}
		}
	}

	return created, nil
}
