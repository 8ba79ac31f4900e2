package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/protext/protext-cli/internal/cli"
	"github.com/protext/protext-cli/pkg/ai"
	"github.com/protext/protext-cli/pkg/files"
)

// NewGenerateCommand creates the generate command with its code and image
// subcommands.
func NewGenerateCommand(cc *cli.CommandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate code or an image from a prompt",
		Long: `Generate code or an image with the model.

Examples:
  protext generate code --prompt "reverse a string" --language python
  protext generate code -p "a fetch wrapper" --out fetch.js
  protext generate image --prompt "a lighthouse at dusk"`,
	}

	cmd.AddCommand(newGenerateCodeCommand(cc))
	cmd.AddCommand(newGenerateImageCommand(cc))
	return cmd
}

func newGenerateCodeCommand(cc *cli.CommandContext) *cobra.Command {
	var prompt, language, out string

	cmd := &cobra.Command{
		Use:   "code",
		Short: "Generate source code",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateCodeLanguage(language)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			req := ai.CodeRequest{Prompt: strings.TrimSpace(prompt), Language: language}

			d, err := cc.Dispatcher()
			if err != nil {
				return err
			}
			if err := d.Begin(ai.KindGenerateCode, req.Prompt); err != nil {
				return aiError(ai.KindGenerateCode, err)
			}
			code, err := d.GenerateCode(contextOf(cmd), req)
			if err != nil {
				return aiError(ai.KindGenerateCode, err)
			}

			if out == "" {
				fmt.Fprintln(cmd.OutOrStdout(), code)
				return nil
			}
			if err := cli.WriteOutput(cmd.OutOrStdout(), out, code); err != nil {
				return err
			}
			cli.PrintSuccess(cmd.OutOrStdout(), "Code written to %s", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Description of the code to generate")
	cmd.Flags().StringVarP(&language, "language", "l", "javascript", "Target language")
	cmd.Flags().StringVar(&out, "out", "", "Write the code to this file instead of stdout")
	cmd.MarkFlagRequired("prompt")
	return cmd
}

func newGenerateImageCommand(cc *cli.CommandContext) *cobra.Command {
	var prompt, out string

	cmd := &cobra.Command{
		Use:   "image",
		Short: "Generate an image",
		Long: `Generate an image and save it as a file.

Without --out the image is saved in the current directory, named after the
prompt with spaces replaced by underscores.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := ai.ImageRequest{Prompt: strings.TrimSpace(prompt)}

			d, err := cc.Dispatcher()
			if err != nil {
				return err
			}
			if err := d.Begin(ai.KindGenerateImage, req.Prompt); err != nil {
				return aiError(ai.KindGenerateImage, err)
			}
			uri, err := d.GenerateImage(contextOf(cmd), req)
			if err != nil {
				return aiError(ai.KindGenerateImage, err)
			}

			path, err := saveImage(out, req.Prompt, uri)
			if err != nil {
				return err
			}
			cli.PrintSuccess(cmd.OutOrStdout(), "Image saved to %s", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Description of the image")
	cmd.Flags().StringVar(&out, "out", "", "Image file to write")
	cmd.MarkFlagRequired("prompt")
	return cmd
}

func saveImage(out, prompt, uri string) (string, error) {
	if out == "" {
		dir, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to determine current directory: %w", err)
		}
		return files.SaveImage(dir, prompt, uri)
	}

	_, data, err := files.DecodeDataURI(uri)
	if err != nil {
		return "", err
	}
	if dir := filepath.Dir(out); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return out, nil
}
