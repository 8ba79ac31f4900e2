package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/protext/protext-cli/internal/cli"
	"github.com/protext/protext-cli/pkg/utils"
)

// StatsOutput is what the stats command reports.
type StatsOutput struct {
	File       string `json:"file" yaml:"file"`
	Lines      int    `json:"lines" yaml:"lines"`
	Words      int    `json:"words" yaml:"words"`
	Characters int    `json:"characters" yaml:"characters"`
	Bytes      int    `json:"bytes" yaml:"bytes"`
	Tokens     int    `json:"tokens" yaml:"tokens"`
}

// NewStatsCommand creates the stats command
func NewStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [file]",
		Short: "Count the lines, words and characters of a file",
		Long: `Count lines, words and characters the way the editor's status bar does,
plus an estimate of the tokens the text costs when sent to the model.

Without a file the text is read from stdin.

Examples:
  protext stats notes.txt
  protext stats notes.txt -o json
  echo "hello world" | protext stats`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			text, err := cli.ReadInput(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}

			stats := StatsOutput{
				File:       path,
				Lines:      utils.CountLines(text),
				Words:      utils.CountWords(text),
				Characters: utils.CountChars(text),
				Bytes:      len(text),
				Tokens:     utils.EstimateTokens(text),
			}
			if stats.File == "" {
				stats.File = "-"
			}

			outputFormat, _ := cmd.Flags().GetString("output")
			if cli.IsStructured(outputFormat) {
				return cli.OutputResults(cmd.OutOrStdout(), outputFormat, stats)
			}

			table := cli.NewTableFormatter(cmd.OutOrStdout())
			table.Row("File:", stats.File)
			table.Row("Lines:", strconv.Itoa(stats.Lines))
			table.Row("Words:", strconv.Itoa(stats.Words))
			table.Row("Characters:", strconv.Itoa(stats.Characters))
			table.Row("Size:", cli.FormatBytes(int64(stats.Bytes)))
			table.Row("Tokens:", utils.FormatTokenCount(stats.Tokens))
			table.Flush()
			return nil
		},
	}
}
