package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/protext/protext-cli/internal/cli"
	"github.com/protext/protext-cli/pkg/models"
	"github.com/protext/protext-cli/pkg/search"
	"github.com/protext/protext-cli/pkg/utils"
)

// FindResultOutput represents the formatted find results
type FindResultOutput struct {
	File    string            `json:"file" yaml:"file"`
	Term    string            `json:"term" yaml:"term"`
	Count   int               `json:"count" yaml:"count"`
	Matches []FindMatchOutput `json:"matches" yaml:"matches"`
}

// FindMatchOutput is one match with its 1-based position.
type FindMatchOutput struct {
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
	Offset int    `json:"offset" yaml:"offset"`
	Text   string `json:"text" yaml:"text"`
}

// searchFlags are shared by find and replace.
type searchFlags struct {
	matchCase bool
	wholeWord bool
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.matchCase, "match-case", "c", false, "Match case")
	cmd.Flags().BoolVarP(&f.wholeWord, "whole-word", "w", false, "Match whole words only")
}

func (f *searchFlags) options(find, replace string) models.FindOptions {
	return models.FindOptions{Find: find, Replace: replace, MatchCase: f.matchCase, WholeWord: f.wholeWord}
}

// NewFindCommand creates the find command
func NewFindCommand() *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "find <file> <term>",
		Short: "List the occurrences of a term in a file",
		Long: `Search a file the way the editor's Find dialog does.

Matching is case-insensitive unless --match-case is given. With --whole-word
a match must be bounded by whitespace, punctuation or the ends of the text.

Examples:
  # Every "todo", whatever the case
  protext find notes.txt todo

  # Only the word "Cat"
  protext find story.md Cat --match-case --whole-word

  # As JSON
  protext find notes.txt todo -o json`,
		Args: cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateSearchTerm(args[1]); err != nil {
				return err
			}
			return cli.ValidateFilePath(args[0])
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd, args[0], flags.options(args[1], ""))
		},
	}

	flags.register(cmd)
	return cmd
}

func runFind(cmd *cobra.Command, path string, opts models.FindOptions) error {
	text, err := cli.ReadInput(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	result := FindResultOutput{File: path, Term: opts.Find, Matches: []FindMatchOutput{}}
	lines := strings.Split(text, "\n")
	for _, offset := range search.Matches(text, opts) {
		line, col := utils.CursorLineCol(text, offset)
		result.Matches = append(result.Matches, FindMatchOutput{
			Line:   line,
			Column: col,
			Offset: offset,
			Text:   strings.TrimRight(lines[line-1], "\r"),
		})
	}
	result.Count = len(result.Matches)

	outputFormat, _ := cmd.Flags().GetString("output")
	if cli.IsStructured(outputFormat) {
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	}

	if result.Count == 0 {
		cli.PrintInfo(cmd.OutOrStdout(), "Cannot find %q", opts.Find)
		return nil
	}

	table := cli.NewTableFormatter(cmd.OutOrStdout())
	for _, m := range result.Matches {
		table.Row(fmt.Sprintf("%d:%d", m.Line, m.Column), cli.TruncateString(m.Text, 100))
	}
	table.Flush()
	return nil
}
