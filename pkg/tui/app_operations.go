package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/protext/protext-cli/pkg/files"
	"github.com/protext/protext-cli/pkg/highlight"
	"github.com/protext/protext-cli/pkg/models"
	"github.com/protext/protext-cli/pkg/search"
	"github.com/protext/protext-cli/pkg/utils"
)

// syncDocument copies the buffer into the document, marking it unsaved when
// the text changed.
func (a *App) syncDocument() {
	a.doc.SetText(a.editor.Value())
}

// insertText inserts s at the cursor, refusing text the editor cannot hold.
func (a *App) insertText(s, title string) tea.Cmd {
	if !a.editor.InsertAtCursor(s, title) {
		return a.tooManyLines(title)
	}
	a.syncDocument()
	return nil
}

// replaceText swaps the whole buffer, refusing text the editor cannot hold.
func (a *App) replaceText(text, title string) (tea.Cmd, bool) {
	if !a.editor.ReplaceAll(text, title) {
		return a.tooManyLines(title), false
	}
	a.syncDocument()
	return nil, true
}

func (a *App) tooManyLines(title string) tea.Cmd {
	return a.status.ShowWarning(title, fmt.Sprintf("The editor holds at most %d lines.", MaxLines))
}

// docDir is where Open starts and relative save names are resolved.
func (a *App) docDir() string {
	if a.doc.Path != "" {
		return filepath.Dir(a.doc.Path)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// File menu

func (a *App) newDocument() {
	a.doc = models.NewDocument()
	a.editor.SetValue("", 0)
	a.editor.UndoStack = a.editor.UndoStack[:0]
	a.search.LastMatch = nil
}

func (a *App) showOpenDialog() tea.Cmd {
	d := NewOpenDialog(a.docDir())
	a.showDialog(d)
	return d.Init()
}

func (a *App) openFile(path string) tea.Cmd {
	doc, err := files.ReadDocument(path)
	if err != nil {
		a.logger.Error("failed to open file", "path", path, "error", err)
		return a.status.ShowError("Error opening file", "Could not read the selected file.")
	}
	if !Fits(doc.Text) {
		a.logger.Warn("file too large to open", "path", path, "lines", utils.CountLines(doc.Text))
		return a.status.ShowWarning("Error opening file",
			fmt.Sprintf("%s has more than %d lines.", doc.FileName, MaxLines))
	}

	a.closeDialog()
	a.doc = doc
	a.editor.SetValue(doc.Text, 0)
	a.editor.UndoStack = a.editor.UndoStack[:0]
	a.search.LastMatch = nil
	a.setSyntax(files.SyntaxForPath(doc.Path))
	a.logger.Info("opened file", "path", doc.Path)
	return nil
}

func (a *App) save() tea.Cmd {
	if a.doc.Path == "" {
		a.showDialog(NewSaveAsDialog(a.saveAsSuggestion()))
		return nil
	}
	return a.writeDocument()
}

func (a *App) saveAsSuggestion() string {
	return files.SaveAsName(a.doc.FileName)
}

func (a *App) saveAs(name string) tea.Cmd {
	name = files.SaveAsName(name)
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.docDir(), name)
	}

	a.doc.Path = path
	a.doc.FileName = filepath.Base(path)
	a.closeDialog()
	return a.writeDocument()
}

func (a *App) writeDocument() tea.Cmd {
	a.syncDocument()
	if err := files.WriteDocument(a.doc); err != nil {
		a.logger.Error("failed to save file", "path", a.doc.Path, "error", err)
		return a.status.ShowError("Error saving file", err.Error())
	}
	a.logger.Info("saved file", "path", a.doc.Path)
	return a.status.ShowSuccess("File saved", a.doc.FileName)
}

func (a *App) printDocument() tea.Cmd {
	title, text, print := a.doc.FileName, a.editor.Value(), a.print
	return func() tea.Msg {
		return printDoneMsg{Err: print(title, text)}
	}
}

func (a *App) exit() tea.Cmd {
	if a.doc.IsSaved {
		return a.quit()
	}
	a.confirm.Show(ConfirmationConfig{
		Title:       "Unsaved changes",
		Message:     fmt.Sprintf("%s has unsaved changes.", a.doc.FileName),
		Warning:     "Exit without saving?",
		Destructive: true,
		YesLabel:    "Exit",
		NoLabel:     "Keep editing",
	}, a.quit, nil)
	return nil
}

func (a *App) quit() tea.Cmd {
	for _, path := range a.previewFiles {
		os.Remove(path)
	}
	return tea.Quit
}

// Edit menu

func (a *App) copySelection() tea.Cmd {
	text := a.editor.SelectedText()
	if text == "" {
		return nil
	}
	if err := a.clipboard.WriteAll(text); err != nil {
		a.logger.Warn("clipboard write failed", "error", err)
		return a.status.ShowError("Clipboard", "Could not copy the selection.")
	}
	return nil
}

func (a *App) cut() tea.Cmd {
	text := a.editor.SelectedText()
	if text == "" {
		return nil
	}
	if err := a.clipboard.WriteAll(text); err != nil {
		a.logger.Warn("clipboard write failed", "error", err)
		return a.status.ShowError("Clipboard", "Could not cut the selection.")
	}
	a.editor.DeleteSelection("Cut")
	a.syncDocument()
	return nil
}

func (a *App) paste() tea.Cmd {
	text, err := a.clipboard.ReadAll()
	if err != nil {
		a.logger.Warn("clipboard read failed", "error", err)
		return a.status.ShowError("Clipboard", "Could not read the clipboard.")
	}
	if text == "" {
		return nil
	}
	return a.insertText(normalizeNewlines(text), "Paste")
}

// normalizeNewlines turns pasted "\r\n" line breaks into "\n".
func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// deleteForward removes the selection, or the rune under the cursor.
func (a *App) deleteForward() {
	if !a.editor.DeleteSelection("Delete") {
		c := a.editor.Cursor()
		if c >= len([]rune(a.editor.Value())) {
			return
		}
		a.editor.ReplaceRange(c, c+1, "", "Delete")
	}
	a.syncDocument()
}

func (a *App) showFindDialog(replace bool) {
	a.showDialog(NewFindDialog(a.lastFind, replace))
	a.updateFindStatus(a.lastFind)
}

// selectionMatch returns the selection as a search match, or nil.
func (a *App) selectionMatch() *search.Match {
	if !a.editor.Selection.Active() {
		return nil
	}
	start, end := a.editor.Selection.Ordered()
	return &search.Match{Start: start, End: end}
}

func (a *App) searchCursor() int {
	if m := a.selectionMatch(); m != nil {
		return m.End
	}
	return a.editor.Cursor()
}

func (a *App) findNext(opts models.FindOptions) tea.Cmd {
	a.lastFind = opts
	m, ok := search.FindNext(a.editor.Value(), opts, &a.search, a.searchCursor())
	defer a.updateFindStatus(opts)
	if !ok {
		return a.cannotFind(opts)
	}
	a.editor.Select(m.Start, m.End)
	return nil
}

func (a *App) cannotFind(opts models.FindOptions) tea.Cmd {
	return a.status.ShowInfo("Find", fmt.Sprintf("Cannot find %q", opts.Find))
}

func (a *App) replaceOne(opts models.FindOptions) tea.Cmd {
	a.lastFind = opts
	sel := a.selectionMatch()
	res := search.ReplaceOne(a.editor.Value(), opts, sel, &a.search, a.searchCursor())
	defer a.updateFindStatus(opts)

	if res.Replaced {
		if !a.editor.ReplaceRange(sel.Start, sel.End, opts.Replace, "Replace") {
			a.search.LastMatch = nil
			return a.tooManyLines("Replace")
		}
		a.syncDocument()
	}
	if !res.Found {
		a.editor.ClearSelection()
		return a.cannotFind(opts)
	}
	a.editor.Select(res.Match.Start, res.Match.End)
	return nil
}

func (a *App) replaceAll(opts models.FindOptions) tea.Cmd {
	a.lastFind = opts
	text, changed := search.ReplaceAll(a.editor.Value(), opts)
	defer a.updateFindStatus(opts)
	a.search.LastMatch = nil

	if !changed {
		return a.status.ShowInfo("Replace All", "No instances found.")
	}
	if cmd, ok := a.replaceText(text, "Replace All"); !ok {
		return cmd
	}
	return a.status.ShowSuccess("Replace All", "All instances replaced.")
}

// updateFindStatus shows the match count in the open find dialog.
func (a *App) updateFindStatus(opts models.FindOptions) {
	d, ok := a.dialog.(*FindDialog)
	if !ok {
		return
	}
	if opts.Find == "" {
		d.Status = ""
		return
	}

	matches := search.Matches(a.editor.Value(), opts)
	switch {
	case len(matches) == 0:
		d.Status = "No matches"
	case a.selectionMatch() != nil:
		sel := a.selectionMatch()
		for i, start := range matches {
			if start == sel.Start {
				d.Status = fmt.Sprintf("%d of %d", i+1, len(matches))
				return
			}
		}
		fallthrough
	default:
		d.Status = fmt.Sprintf("%d matches", len(matches))
	}
}

// Format and View menus

func (a *App) setFont(font models.FontSettings) {
	if err := font.Validate(); err != nil {
		a.logger.Warn("ignoring invalid font", "error", err)
		return
	}
	a.settings.Editor.Font = font
	a.persistSettings()
}

func (a *App) setSyntax(lang models.SyntaxLanguage) {
	if !lang.IsValid() {
		lang = models.SyntaxNone
	}
	a.settings.Editor.SyntaxLanguage = lang
	a.highlighter = highlight.New(lang, a.dark)
}

func (a *App) applyTheme(theme string) {
	a.settings.UI.Theme = theme
	a.dark = IsDark(theme)
	a.styles = NewStyles(a.dark)
	a.output.SetDark(a.dark)
	a.setSyntax(a.settings.Editor.SyntaxLanguage)
}

func (a *App) persistSettings() {
	if a.saveSettings == nil {
		return
	}
	if err := a.saveSettings(a.settings); err != nil {
		a.logger.Warn("failed to save settings", "error", err)
	}
}

// Run menu

func (a *App) previewHTML() tea.Cmd {
	text := a.editor.Value()
	a.output.Show(models.OutputModeHTMLPreview, text)
	a.layout()

	path, err := a.openHTML(text)
	if path != "" {
		a.previewFiles = append(a.previewFiles, path)
	}
	if err != nil {
		a.logger.Error("html preview failed", "error", err)
		return a.status.ShowError("Preview HTML", err.Error())
	}
	return a.status.ShowInfo("Preview HTML", "Opened in the browser.")
}

func (a *App) downloadImage(prompt, uri string) tea.Cmd {
	path, err := files.SaveImage(a.docDir(), prompt, uri)
	if err != nil {
		a.logger.Error("failed to save image", "error", err)
		if errors.Is(err, files.ErrNotDataURI) {
			return a.status.ShowError("Download failed", "The image data is not valid.")
		}
		return a.status.ShowError("Download failed", err.Error())
	}
	return a.status.ShowSuccess("Image downloaded", path)
}
