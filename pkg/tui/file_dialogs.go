package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/protext/protext-cli/pkg/files"
)

// SaveAsDialog asks for the file name to save under.
type SaveAsDialog struct {
	name textinput.Model
}

// NewSaveAsDialog opens the prompt prefilled with name.
func NewSaveAsDialog(name string) *SaveAsDialog {
	d := &SaveAsDialog{name: newInput("Untitled.txt", 44)}
	d.name.SetValue(name)
	d.name.CursorEnd()
	d.name.Focus()
	return d
}

func (d *SaveAsDialog) Update(msg tea.Msg) (dialogEvent, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return closeDialogEvent{}, nil
		case "enter":
			name := strings.TrimSpace(d.name.Value())
			if name == "" {
				return nil, nil
			}
			return saveAsEvent{Name: name}, nil
		}
	}

	var cmd tea.Cmd
	d.name, cmd = d.name.Update(msg)
	return nil, cmd
}

func (d *SaveAsDialog) View(styles Styles) string {
	body := strings.Join([]string{
		renderField(styles, "File name:", d.name.View(), true),
		"",
		styles.Hint.Render("Names without an extension are saved as .txt"),
		styles.Hint.Render("enter save · esc cancel"),
	}, "\n")
	return dialogFrame(styles, "Save As", body)
}

// OpenDialog browses the file system for a document to open.
type OpenDialog struct {
	picker filepicker.Model
	err    string
}

// NewOpenDialog starts browsing in dir. Call Init to read the directory.
func NewOpenDialog(dir string) *OpenDialog {
	fp := filepicker.New()
	fp.CurrentDirectory = dir
	fp.AllowedTypes = files.OpenableExtensions
	fp.AutoHeight = false
	fp.Height = 14
	fp.ShowPermissions = false
	return &OpenDialog{picker: fp}
}

// Init reads the starting directory.
func (d *OpenDialog) Init() tea.Cmd {
	return d.picker.Init()
}

func (d *OpenDialog) Update(msg tea.Msg) (dialogEvent, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return closeDialogEvent{}, nil
	}

	var cmd tea.Cmd
	d.picker, cmd = d.picker.Update(msg)

	if ok, path := d.picker.DidSelectFile(msg); ok {
		return openFileEvent{Path: path}, cmd
	}
	// Extensionless text files are openable too.
	if ok, path := d.picker.DidSelectDisabledFile(msg); ok {
		if files.IsOpenable(path) {
			return openFileEvent{Path: path}, cmd
		}
		d.err = "Only " + strings.Join(files.OpenableExtensions, " ") + " files can be opened"
	}
	return nil, cmd
}

func (d *OpenDialog) View(styles Styles) string {
	rows := []string{
		styles.Hint.Render(d.picker.CurrentDirectory),
		"",
		d.picker.View(),
	}
	if d.err != "" {
		rows = append(rows, "", styles.Error.Render(d.err))
	}
	rows = append(rows, "", styles.Hint.Render("↑/↓ move · enter open · ← back · esc cancel"))
	return dialogFrame(styles, "Open", strings.Join(rows, "\n"))
}
