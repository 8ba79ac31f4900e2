package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/protext/protext-cli/pkg/models"
)

var outputFormats = []string{string(FormatText), string(FormatJSON), string(FormatYAML)}

// ValidateFilePath checks that path names an existing regular file.
func ValidateFilePath(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	info, err := os.Stat(abs)
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("path does not exist: %s", abs)
	case err != nil:
		return fmt.Errorf("error accessing path: %w", err)
	case info.IsDir():
		return fmt.Errorf("path is a directory, expected file: %s", abs)
	}
	return nil
}

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	if slices.Contains(outputFormats, format) {
		return nil
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// ValidateCodeLanguage checks a language offered by code generation.
func ValidateCodeLanguage(lang string) error {
	if slices.Contains(models.CodeLanguages, lang) {
		return nil
	}
	return fmt.Errorf("invalid language: %s (must be one of: %v)", lang, models.CodeLanguages)
}

// ValidateSearchTerm rejects an empty term.
func ValidateSearchTerm(term string) error {
	if term == "" {
		return fmt.Errorf("search term cannot be empty")
	}
	return nil
}
