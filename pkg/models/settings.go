package models

import "time"

// Settings represents the application configuration
type Settings struct {
	AI     AISettings     `yaml:"ai" toml:"ai"`
	Editor EditorSettings `yaml:"editor" toml:"editor"`
	UI     UISettings     `yaml:"ui" toml:"ui"`
}

// AISettings configures the hosted model used by the AI flows
type AISettings struct {
	Provider   string        `yaml:"provider" toml:"provider"`
	BaseURL    string        `yaml:"base_url" toml:"base_url"`
	Model      string        `yaml:"model" toml:"model"`
	ImageModel string        `yaml:"image_model" toml:"image_model"`
	APIKey     string        `yaml:"api_key,omitempty" toml:"api_key"`
	Timeout    time.Duration `yaml:"timeout" toml:"timeout"`
}

// EditorSettings controls editor preferences
type EditorSettings struct {
	Font           FontSettings   `yaml:"font" toml:"font"`
	WordWrap       bool           `yaml:"word_wrap" toml:"word_wrap"`
	SyntaxLanguage SyntaxLanguage `yaml:"syntax_language" toml:"syntax_language"`
	UndoLevels     int            `yaml:"undo_levels" toml:"undo_levels"`
}

// UISettings controls UI preferences
type UISettings struct {
	ShowStatusBar bool   `yaml:"show_status_bar" toml:"show_status_bar"`
	Theme         string `yaml:"theme" toml:"theme"` // "system", "light" or "dark"
}

// Themes lists the accepted values of UISettings.Theme.
var Themes = []string{"system", "light", "dark"}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		AI: AISettings{
			Provider:   "gemini",
			BaseURL:    "https://generativelanguage.googleapis.com",
			Model:      "gemini-2.0-flash",
			ImageModel: "gemini-2.0-flash-preview-image-generation",
			Timeout:    2 * time.Minute,
		},
		Editor: EditorSettings{
			Font:           DefaultFontSettings(),
			WordWrap:       false,
			SyntaxLanguage: SyntaxNone,
			UndoLevels:     50,
		},
		UI: UISettings{
			ShowStatusBar: true,
			Theme:         "system",
		},
	}
}

// Normalize fills zero values left by a partial settings file with defaults.
func (s *Settings) Normalize() {
	d := DefaultSettings()
	if s.AI.Provider == "" {
		s.AI.Provider = d.AI.Provider
	}
	if s.AI.BaseURL == "" {
		s.AI.BaseURL = d.AI.BaseURL
	}
	if s.AI.Model == "" {
		s.AI.Model = d.AI.Model
	}
	if s.AI.ImageModel == "" {
		s.AI.ImageModel = d.AI.ImageModel
	}
	if s.AI.Timeout <= 0 {
		s.AI.Timeout = d.AI.Timeout
	}
	if s.Editor.Font.Family == "" {
		s.Editor.Font.Family = d.Editor.Font.Family
	}
	if s.Editor.Font.Size == 0 {
		s.Editor.Font.Size = d.Editor.Font.Size
	}
	if s.Editor.Font.Weight == "" {
		s.Editor.Font.Weight = d.Editor.Font.Weight
	}
	if s.Editor.Font.Style == "" {
		s.Editor.Font.Style = d.Editor.Font.Style
	}
	if !s.Editor.SyntaxLanguage.IsValid() {
		s.Editor.SyntaxLanguage = SyntaxNone
	}
	if s.Editor.UndoLevels <= 0 {
		s.Editor.UndoLevels = d.Editor.UndoLevels
	}
	if !contains(Themes, s.UI.Theme) {
		s.UI.Theme = d.UI.Theme
	}
}
