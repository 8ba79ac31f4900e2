package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/protext/protext-cli/internal/cli"
	"github.com/protext/protext-cli/pkg/files"
	"github.com/protext/protext-cli/pkg/search"
)

// NewReplaceCommand creates the replace command
func NewReplaceCommand() *cobra.Command {
	var (
		flags  searchFlags
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "replace <file> <term> <replacement>",
		Short: "Replace every occurrence of a term in a file",
		Long: `Replace all occurrences of a term and write the file back.

The term and the replacement are both taken literally. The same matching
rules as 'protext find' apply.

Examples:
  # Replace and confirm
  protext replace notes.txt colour color

  # Preview the result without writing
  protext replace notes.txt colour color --dry-run

  # No questions asked
  protext replace notes.txt Cat Dog --match-case --whole-word --yes`,
		Args: cobra.ExactArgs(3),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateSearchTerm(args[1]); err != nil {
				return err
			}
			return cli.ValidateFilePath(args[0])
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(args[1], args[2])

			doc, err := files.ReadDocument(args[0])
			if err != nil {
				return err
			}

			count := search.CountAll(doc.Text, opts)
			text, changed := search.ReplaceAll(doc.Text, opts)
			if !changed {
				cli.PrintInfo(cmd.OutOrStdout(), "No instances found.")
				return nil
			}

			if dryRun {
				fmt.Fprint(cmd.OutOrStdout(), text)
				return nil
			}

			ok, err := cli.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
				fmt.Sprintf("Replace %d occurrence(s) of %q in %s?", count, opts.Find, doc.FileName), false)
			if err != nil {
				return fmt.Errorf("failed to read confirmation: %w", err)
			}
			if !ok {
				cli.PrintInfo(cmd.OutOrStdout(), "Replace cancelled")
				return nil
			}

			doc.SetText(text)
			if err := files.WriteDocument(doc); err != nil {
				return err
			}
			cli.PrintSuccess(cmd.OutOrStdout(), "Replaced %d occurrence(s) in %s", count, doc.FileName)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the result instead of writing the file")
	return cmd
}
