package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/protext/protext-cli/pkg/ai"
	"github.com/protext/protext-cli/pkg/files"
	"github.com/protext/protext-cli/pkg/models"
)

// LogFile is the name of the log written to the user cache directory.
const LogFile = "protext.log"

// CommandContext carries what every command needs: settings, a logger and
// a way to reach the model.
type CommandContext struct {
	Settings *models.Settings
	Logger   *slog.Logger
	LogLevel string

	// NewGenerator builds the model client. Tests replace it with a fake.
	NewGenerator func(models.AISettings) (ai.Generator, error)

	logFile io.Closer
}

// NewCommandContext creates a context that talks to the Gemini API.
func NewCommandContext() *CommandContext {
	return &CommandContext{
		LogLevel: "info",
		NewGenerator: func(s models.AISettings) (ai.Generator, error) {
			return ai.NewGeminiClient(s)
		},
	}
}

// LoadSettings reads the settings file once.
func (c *CommandContext) LoadSettings() (*models.Settings, error) {
	if c.Settings != nil {
		return c.Settings, nil
	}

	settings, err := files.ReadSettings()
	if err != nil {
		return nil, err
	}
	c.Settings = settings
	return settings, nil
}

// LoadSettingsWithDefault loads settings or returns default if error
func (c *CommandContext) LoadSettingsWithDefault() *models.Settings {
	settings, err := c.LoadSettings()
	if err != nil {
		c.logger().Warn("using default settings", "error", err)
		settings = models.DefaultSettings()
		c.Settings = settings
	}
	return settings
}

// OpenLog points Logger at protext.log in the user cache directory. When the
// file cannot be opened, logs are discarded.
func (c *CommandContext) OpenLog() {
	level, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		PrintWarning("%v", err)
	}

	w, closer, err := openLogFile()
	if err != nil {
		PrintWarning("logging disabled: %v", err)
		w = io.Discard
	}
	c.logFile = closer
	c.Logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Close releases the log file.
func (c *CommandContext) Close() error {
	if c.logFile == nil {
		return nil
	}
	err := c.logFile.Close()
	c.logFile = nil
	return err
}

func (c *CommandContext) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}

func openLogFile() (io.Writer, io.Closer, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to locate cache directory: %w", err)
	}
	dir = filepath.Join(dir, files.AppDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, LogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, f, nil
}

// ParseLogLevel maps debug, info, warn and error to slog levels.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q (must be: debug, info, warn, or error)", s)
	}
	return level, nil
}

// Dispatcher builds an AI dispatcher from the settings. The error explains
// why AI actions are unavailable, typically ai.ErrNoAPIKey.
func (c *CommandContext) Dispatcher() (*ai.Dispatcher, error) {
	settings := c.LoadSettingsWithDefault()
	gen, err := c.NewGenerator(settings.AI)
	if err != nil {
		if errors.Is(err, ai.ErrNoAPIKey) {
			return nil, fmt.Errorf("%w: set ai.api_key in %s or GEMINI_API_KEY", err, settingsLocation())
		}
		return nil, err
	}
	return ai.NewDispatcher(gen, c.logger(), settings.AI.Timeout), nil
}

func settingsLocation() string {
	path, err := files.SettingsPath()
	if err != nil {
		return "the settings file"
	}
	return path
}

// ReadInput returns the contents of path, or of stdin when path is empty
// or "-".
func ReadInput(stdin io.Reader, path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	if err := ValidateFilePath(path); err != nil {
		return "", err
	}
	doc, err := files.ReadDocument(path)
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}

// WriteOutput writes text to path, or to w when path is empty.
func WriteOutput(w io.Writer, path, text string) error {
	if path == "" {
		_, err := fmt.Fprint(w, text)
		return err
	}
	doc := &models.Document{Text: text, Path: path, FileName: filepath.Base(path)}
	return files.WriteDocument(doc)
}
