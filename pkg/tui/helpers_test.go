package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/protext/protext-cli/pkg/ai"
	"github.com/protext/protext-cli/pkg/models"
)

// fakeGenerator answers JSON requests by the first required field of the
// schema, e.g. "summary" -> `{"summary":"..."}`.
type fakeGenerator struct {
	mu      sync.Mutex
	json    map[string]string
	image   string
	err     error
	prompts []string
}

func (f *fakeGenerator) GenerateJSON(ctx context.Context, prompt string, schema ai.Schema) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return nil, f.err
	}
	for _, field := range schema.Required {
		if out, ok := f.json[field]; ok {
			return []byte(out), nil
		}
	}
	return nil, errors.New("no canned response")
}

func (f *fakeGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.image, nil
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) ReadAll() (string, error) { return c.text, c.err }

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestApp(t *testing.T, gen *fakeGenerator) (*App, *fakeClipboard) {
	t.Helper()
	if gen == nil {
		gen = &fakeGenerator{}
	}
	settings := models.DefaultSettings()
	settings.UI.Theme = ThemeDark

	clip := &fakeClipboard{}
	app := NewApp(AppConfig{
		Settings:   settings,
		Dispatcher: ai.NewDispatcher(gen, discardLogger(), time.Second),
		Clipboard:  clip,
		Logger:     discardLogger(),
		Version:    "test",
	})
	app.openHTML = func(string) (string, error) { return "", nil }
	app.print = func(string, string) error { return nil }
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return app, clip
}

// runCmd executes cmd and the commands of any batch it returns. Commands
// that do not finish quickly, such as toast timers, are dropped.
func runCmd(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}

	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, runCmd(t, c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(200 * time.Millisecond):
		return nil
	}
}

// send delivers msg to the app and feeds back the results of background
// work it starts.
func send(t *testing.T, app *App, msg tea.Msg) {
	t.Helper()
	_, cmd := app.Update(msg)
	for _, m := range runCmd(t, cmd) {
		switch m.(type) {
		case aiResultMsg, runCodeMsg, codeGeneratedMsg, imageGeneratedMsg, printDoneMsg:
			send(t, app, m)
		}
	}
}

func press(t *testing.T, app *App, keys ...string) {
	t.Helper()
	for _, k := range keys {
		send(t, app, keyMsg(k))
	}
}

func typeText(t *testing.T, app *App, text string) {
	t.Helper()
	for _, r := range text {
		if r == ' ' {
			send(t, app, keyMsg("space"))
			continue
		}
		if r == '\n' {
			send(t, app, keyMsg("enter"))
			continue
		}
		send(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func toastText(app *App) string {
	toast, ok := app.status.Active()
	if !ok {
		return ""
	}
	return toast.Text()
}

func stripANSI(s string) string {
	return ansi.Strip(s)
}
