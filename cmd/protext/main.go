package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/protext/protext-cli/cmd/commands"
	"github.com/protext/protext-cli/internal/cli"
	"github.com/protext/protext-cli/pkg/files"
	"github.com/protext/protext-cli/pkg/models"
	"github.com/protext/protext-cli/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	cc = cli.NewCommandContext()

	configPath   string
	outputFormat string
	quietFlag    bool
	noColorFlag  bool
	yesFlag      bool
)

var rootCmd = &cobra.Command{
	Use:   "protext [file]",
	Short: "Terminal text and code editor with AI-assisted writing",
	Long: `ProText is a menu-driven text and code editor for the terminal. Its AI menu
summarizes, paraphrases, expands and proofreads the text, generates code and
images, and predicts the output of code. The same actions are available as
subcommands for scripting.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		files.SettingsPathOverride = configPath
		cli.SetGlobalFlags(quietFlag, noColorFlag, yesFlag)
		if err := cli.ValidateOutputFormat(outputFormat); err != nil {
			return err
		}
		cc.OpenLog()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		cc.Close()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := cc.LoadSettings()
		if err != nil {
			return err
		}

		doc := models.NewDocument()
		if len(args) == 1 {
			doc, err = openDocument(args[0])
			if err != nil {
				return err
			}
			if lang := files.SyntaxForPath(doc.Path); lang != models.SyntaxNone {
				settings.Editor.SyntaxLanguage = lang
			}
		}

		dispatcher, aiErr := cc.Dispatcher()
		if aiErr != nil {
			cc.Logger.Warn("AI actions unavailable", "error", aiErr)
		}

		app := tui.NewApp(tui.AppConfig{
			Settings:     settings,
			Document:     doc,
			Dispatcher:   dispatcher,
			AIError:      aiErr,
			Logger:       cc.Logger,
			Version:      version,
			SaveSettings: files.WriteSettings,
		})
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("failed to start the terminal user interface: %w", err)
		}
		return nil
	},
}

// openDocument reads path, or starts an empty document that will be saved
// there when the file does not exist yet.
func openDocument(path string) (*models.Document, error) {
	doc, err := files.ReadDocument(path)
	if err == nil {
		if !tui.Fits(doc.Text) {
			return nil, fmt.Errorf("%s has more than %d lines, which the editor cannot hold", path, tui.MaxLines)
		}
		return doc, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	abs, absErr := filepath.Abs(path)
	if absErr != nil {
		abs = path
	}
	return &models.Document{FileName: filepath.Base(abs), Path: abs, IsSaved: true}, nil
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default settings file",
	Long:  `Creates settings.yaml with the default settings unless a settings file already exists`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, created, err := files.InitSettings()
		if err != nil {
			return fmt.Errorf("failed to initialize settings: %w", err)
		}
		if !created {
			cli.PrintInfo(cmd.OutOrStdout(), "Settings already exist at %s", path)
			return nil
		}
		cli.PrintSuccess(cmd.OutOrStdout(), "Created %s", path)
		fmt.Fprintln(cmd.OutOrStdout(), "\nSet ai.api_key there, or export GEMINI_API_KEY, to enable the AI menu.")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ProText",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ProText version %s\n", version)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Settings file (default: $XDG_CONFIG_HOME/protext/settings.yaml)")
	flags.StringVar(&cc.LogLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flags.StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json or yaml")
	flags.BoolVarP(&quietFlag, "quiet", "q", false, "Suppress informational messages")
	flags.BoolVar(&noColorFlag, "no-color", false, "Plain text status markers")
	flags.BoolVarP(&yesFlag, "yes", "y", false, "Answer yes to confirmations")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewFindCommand())
	rootCmd.AddCommand(commands.NewReplaceCommand())
	rootCmd.AddCommand(commands.NewStatsCommand())
	rootCmd.AddCommand(commands.NewAICommand(cc))
	rootCmd.AddCommand(commands.NewGenerateCommand(cc))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
