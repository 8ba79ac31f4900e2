package models

import "fmt"

const (
	DefaultFontSize = 14
	MinFontSize     = 4
	MaxFontSize     = 72
	zoomStep        = 2
)

// FontFamilies lists the families offered by the font dialog.
var FontFamilies = []string{"monospace", "Inter", "serif"}

// FontSettings is presentation-only configuration of the editor text.
type FontSettings struct {
	Family string `yaml:"family" toml:"family"`
	Size   int    `yaml:"size" toml:"size"`
	Weight string `yaml:"weight" toml:"weight"` // "normal" or "bold"
	Style  string `yaml:"style" toml:"style"`   // "normal" or "italic"
	Color  string `yaml:"color" toml:"color"`   // empty means theme default
}

// DefaultFontSettings returns the font used on first start.
func DefaultFontSettings() FontSettings {
	return FontSettings{
		Family: "monospace",
		Size:   DefaultFontSize,
		Weight: "normal",
		Style:  "normal",
	}
}

// ZoomIn grows the font by one step, capped at MaxFontSize.
func (f FontSettings) ZoomIn() FontSettings {
	f.Size = min(f.Size+zoomStep, MaxFontSize)
	return f
}

// ZoomOut shrinks the font by one step, floored at MinFontSize.
func (f FontSettings) ZoomOut() FontSettings {
	f.Size = max(f.Size-zoomStep, MinFontSize)
	return f
}

// RestoreZoom resets the size to the default.
func (f FontSettings) RestoreZoom() FontSettings {
	f.Size = DefaultFontSize
	return f
}

// ZoomPercent expresses the size relative to the default size.
func (f FontSettings) ZoomPercent() int {
	return f.Size * 100 / DefaultFontSize
}

// Validate checks enum membership of the settings.
func (f FontSettings) Validate() error {
	if !contains(FontFamilies, f.Family) {
		return fmt.Errorf("unknown font family %q", f.Family)
	}
	if f.Weight != "normal" && f.Weight != "bold" {
		return fmt.Errorf("unknown font weight %q", f.Weight)
	}
	if f.Style != "normal" && f.Style != "italic" {
		return fmt.Errorf("unknown font style %q", f.Style)
	}
	if f.Size < MinFontSize || f.Size > MaxFontSize {
		return fmt.Errorf("font size %d out of range [%d, %d]", f.Size, MinFontSize, MaxFontSize)
	}
	return nil
}

// SyntaxLanguage is the highlighter language of the editor, "none" for plain text.
type SyntaxLanguage string

const SyntaxNone SyntaxLanguage = "none"

// SyntaxLanguages lists the languages of the Syntax Highlighting menu, in menu order.
var SyntaxLanguages = []SyntaxLanguage{SyntaxNone, "javascript", "html", "css", "python", "bash"}

// CodeLanguages lists the languages offered by the Generate Code dialog.
var CodeLanguages = []string{"javascript", "python", "html", "css", "java", "typescript", "bash"}

// IsValid reports whether the language is one of SyntaxLanguages.
func (l SyntaxLanguage) IsValid() bool {
	for _, s := range SyntaxLanguages {
		if s == l {
			return true
		}
	}
	return false
}

// Label is the menu label of the language.
func (l SyntaxLanguage) Label() string {
	switch l {
	case SyntaxNone:
		return "Plain Text"
	case "javascript":
		return "JavaScript"
	case "html":
		return "HTML"
	case "css":
		return "CSS"
	case "python":
		return "Python"
	case "bash":
		return "Bash"
	}
	return string(l)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
