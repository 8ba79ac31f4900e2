package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protext/protext-cli/pkg/models"
)

func useSettingsPath(t *testing.T, path string) {
	t.Helper()
	old := SettingsPathOverride
	SettingsPathOverride = path
	t.Cleanup(func() { SettingsPathOverride = old })
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
}

func TestReadSettings_MissingFileGivesDefaults(t *testing.T) {
	useSettingsPath(t, filepath.Join(t.TempDir(), SettingsFile))

	settings, err := ReadSettings()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), settings)
}

func TestReadSettings_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFile)
	useSettingsPath(t, path)

	content := `ai:
  model: custom-model
  timeout: 30s
editor:
  word_wrap: true
  font:
    size: 20
ui:
  theme: dark
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	settings, err := ReadSettings()
	require.NoError(t, err)
	assert.Equal(t, "custom-model", settings.AI.Model)
	assert.Equal(t, 30*time.Second, settings.AI.Timeout)
	assert.True(t, settings.Editor.WordWrap)
	assert.Equal(t, 20, settings.Editor.Font.Size)
	assert.Equal(t, "monospace", settings.Editor.Font.Family)
	assert.Equal(t, "dark", settings.UI.Theme)
	assert.True(t, settings.UI.ShowStatusBar)
}

func TestReadSettings_TOMLFallback(t *testing.T) {
	dir := t.TempDir()
	useSettingsPath(t, filepath.Join(dir, SettingsFile))

	content := `[ai]
model = "toml-model"

[ui]
theme = "light"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, SettingsFileTOML), []byte(content), 0644))

	settings, err := ReadSettings()
	require.NoError(t, err)
	assert.Equal(t, "toml-model", settings.AI.Model)
	assert.Equal(t, "light", settings.UI.Theme)
}

func TestReadSettings_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFile)
	useSettingsPath(t, path)
	require.NoError(t, os.WriteFile(path, []byte("ai: [unclosed"), 0644))

	_, err := ReadSettings()
	assert.Error(t, err)
}

func TestReadSettings_EnvAPIKey(t *testing.T) {
	useSettingsPath(t, filepath.Join(t.TempDir(), SettingsFile))
	t.Setenv("GOOGLE_API_KEY", "from-env")

	settings, err := ReadSettings()
	require.NoError(t, err)
	assert.Equal(t, "from-env", settings.AI.APIKey)
}

func TestInitSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", SettingsFile)
	useSettingsPath(t, path)

	got, created, err := InitSettings()
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, path, got)

	_, created, err = InitSettings()
	require.NoError(t, err)
	assert.False(t, created)

	settings, err := ReadSettings()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings().AI.Model, settings.AI.Model)
}
