package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/protext/protext-cli/internal/cli"
	"github.com/protext/protext-cli/pkg/ai"
	"github.com/protext/protext-cli/pkg/files"
)

// NewAICommand creates the ai command
func NewAICommand(cc *cli.CommandContext) *cobra.Command {
	var (
		write    bool
		language string
	)

	cmd := &cobra.Command{
		Use:   "ai <summarize|paraphrase|expand|grammar|run> [file]",
		Short: "Run an AI action on a file or stdin",
		Long: `Send text to the model and print the result.

Actions:
  summarize   - a concise summary of the text
  paraphrase  - the text reworded
  expand      - the text with more detail
  grammar     - the text with grammar and spelling corrections
  run         - the predicted output of the code

Without a file the text is read from stdin. With --write the file is
replaced by the result (not available for run).

Examples:
  protext ai summarize notes.txt
  cat draft.md | protext ai paraphrase
  protext ai grammar letter.txt --write
  protext ai run script.py`,
		Args: cobra.RangeArgs(1, 2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			kind, err := ai.ParseKind(args[0])
			if err != nil {
				return err
			}
			if write && (len(args) < 2 || args[1] == "-") {
				return fmt.Errorf("--write needs a file argument")
			}
			if write && kind == ai.KindRunCode {
				return fmt.Errorf("--write cannot be used with run")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := ai.ParseKind(args[0])
			path := ""
			if len(args) == 2 {
				path = args[1]
			}

			text, err := cli.ReadInput(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}

			d, err := cc.Dispatcher()
			if err != nil {
				return err
			}

			if kind == ai.KindRunCode {
				if language == "" && path != "" {
					language = string(files.SyntaxForPath(path))
				}
				return runCodeAction(cmd, d, text, language)
			}

			res, err := d.Do(contextOf(cmd), kind, text)
			if err != nil {
				return aiError(kind, err)
			}

			if kind == ai.KindGrammar && !res.CorrectionsProposed {
				cli.PrintInfo(cmd.ErrOrStderr(), "No corrections found.")
				if !write {
					fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(text, "\n"))
				}
				return nil
			}

			if write {
				doc, err := files.ReadDocument(path)
				if err != nil {
					return err
				}
				doc.SetText(res.Text)
				if err := files.WriteDocument(doc); err != nil {
					return err
				}
				cli.PrintSuccess(cmd.OutOrStdout(), "AI %s: %s has been updated.", kind.Title(), doc.FileName)
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), res.Text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, "Replace the file with the result")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Language of the code for run (default: from the file extension)")
	return cmd
}

func runCodeAction(cmd *cobra.Command, d *ai.Dispatcher, code, language string) error {
	if err := d.Begin(ai.KindRunCode, code); err != nil {
		return aiError(ai.KindRunCode, err)
	}
	out, err := d.RunCode(contextOf(cmd), code, language)
	if err != nil {
		return aiError(ai.KindRunCode, err)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	if out != "" && !strings.HasSuffix(out, "\n") {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}

// aiError turns dispatcher errors into the messages the editor shows.
func aiError(kind ai.Kind, err error) error {
	if errors.Is(err, ai.ErrEmptyBuffer) {
		return fmt.Errorf("%s: the input is empty", kind.EmptyMessage())
	}
	return fmt.Errorf("%s: %w", strings.TrimSuffix(kind.FailureMessage(), "."), err)
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
