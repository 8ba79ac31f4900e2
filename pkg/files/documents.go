// Package files reads and writes documents and the settings file.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/protext/protext-cli/pkg/models"
)

// OpenableExtensions lists the file extensions offered by the Open dialog.
var OpenableExtensions = []string{".txt", ".js", ".html", ".css", ".md"}

// DefaultExtension is appended to save names that have none.
const DefaultExtension = ".txt"

// ReadDocument loads the file at path into a saved document. A file whose
// lines all end in "\r\n" is loaded with "\n" and remembers CRLF for saving;
// any other content is kept as is.
func ReadDocument(path string) (*models.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	text, ending := splitLineEnding(string(content))
	return &models.Document{
		Text:       text,
		FileName:   filepath.Base(path),
		Path:       abs,
		IsSaved:    true,
		LineEnding: ending,
	}, nil
}

func splitLineEnding(text string) (string, string) {
	crlf := strings.Count(text, models.CRLF)
	if crlf == 0 || crlf != strings.Count(text, "\n") {
		return text, ""
	}
	return strings.ReplaceAll(text, models.CRLF, "\n"), models.CRLF
}

// WriteDocument writes the document to its Path, creating parent directories,
// and marks it saved.
func WriteDocument(doc *models.Document) error {
	if doc.Path == "" {
		return fmt.Errorf("failed to write document %s: no path set", doc.FileName)
	}

	if dir := filepath.Dir(doc.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory for document: %w", err)
		}
	}

	if err := os.WriteFile(doc.Path, []byte(doc.Encoded()), 0644); err != nil {
		return fmt.Errorf("failed to write document %s: %w", doc.Path, err)
	}

	doc.FileName = filepath.Base(doc.Path)
	doc.IsSaved = true
	return nil
}

// SaveAsName returns the file name used when saving a document called name.
// Untitled documents and names without an extension get DefaultExtension.
func SaveAsName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || name == models.UntitledName {
		return models.UntitledName + DefaultExtension
	}
	if !strings.Contains(filepath.Base(name), ".") {
		return name + DefaultExtension
	}
	return name
}

// IsOpenable reports whether path has one of the OpenableExtensions or no
// extension at all.
func IsOpenable(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return true
	}
	for _, allowed := range OpenableExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// SyntaxForPath guesses a syntax language from the file extension.
func SyntaxForPath(path string) models.SyntaxLanguage {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".mjs", ".cjs":
		return "javascript"
	case ".html", ".htm":
		return "html"
	case ".css":
		return "css"
	case ".py":
		return "python"
	case ".sh", ".bash":
		return "bash"
	default:
		return models.SyntaxNone
	}
}

// ImageFileName returns the download name for an image generated from prompt.
func ImageFileName(prompt string) string {
	name := strings.Join(strings.Fields(prompt), "_")
	if name == "" {
		return "generated-image.png"
	}
	return name + ".png"
}
