package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/protext/protext-cli/pkg/models"
)

const (
	AppDir           = "protext"
	SettingsFile     = "settings.yaml"
	SettingsFileTOML = "settings.toml"
)

// SettingsPathOverride, when set, replaces the default settings location.
// The --config flag sets it.
var SettingsPathOverride string

// SettingsPath returns the YAML settings path under the user config dir.
func SettingsPath() (string, error) {
	if SettingsPathOverride != "" {
		return SettingsPathOverride, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, AppDir, SettingsFile), nil
}

// ReadSettings loads the settings file. A settings.yaml is preferred; when it
// does not exist a settings.toml next to it is read instead. With neither
// present the defaults are returned. Environment variables override the API key.
func ReadSettings() (*models.Settings, error) {
	path, err := SettingsPath()
	if err != nil {
		return nil, err
	}

	settings, err := readSettingsFile(path)
	if err != nil {
		return nil, err
	}

	settings.Normalize()
	applyEnv(settings)
	return settings, nil
}

func readSettingsFile(path string) (*models.Settings, error) {
	settings := models.DefaultSettings()

	if filepath.Ext(path) == ".toml" {
		return decodeTOML(path, settings)
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		tomlPath := filepath.Join(filepath.Dir(path), SettingsFileTOML)
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			return decodeTOML(tomlPath, settings)
		}
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	if err := yaml.Unmarshal(content, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML %s: %w", path, err)
	}
	return settings, nil
}

func decodeTOML(path string, settings *models.Settings) (*models.Settings, error) {
	if _, err := toml.DecodeFile(path, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings TOML %s: %w", path, err)
	}
	return settings, nil
}

func applyEnv(settings *models.Settings) {
	if settings.AI.APIKey != "" {
		return
	}
	for _, name := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if key := os.Getenv(name); key != "" {
			settings.AI.APIKey = key
			return
		}
	}
}

// WriteSettings saves settings as YAML at SettingsPath.
func WriteSettings(settings *models.Settings) error {
	path, err := SettingsPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	content, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings to YAML: %w", err)
	}

	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", path, err)
	}
	return nil
}

// InitSettings writes the default settings unless a settings file already
// exists. It returns the settings path and whether a file was created.
func InitSettings() (string, bool, error) {
	path, err := SettingsPath()
	if err != nil {
		return "", false, err
	}
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}
	if err := WriteSettings(models.DefaultSettings()); err != nil {
		return "", false, err
	}
	return path, true, nil
}
