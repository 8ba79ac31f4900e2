package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
)

const helpWidth = 56

// helpShortcuts lists the shortcuts shown in the help window.
var helpShortcuts = []struct {
	key   ShortcutKey
	label string
}{
	{Shortcuts.New, "New File"},
	{Shortcuts.Open, "Open File"},
	{Shortcuts.Save, "Save File"},
	{Shortcuts.Print, "Print File"},
	{Shortcuts.Find, "Find"},
	{Shortcuts.FindNext, "Find Next"},
	{Shortcuts.Replace, "Replace"},
	{Shortcuts.Undo, "Undo"},
	{Shortcuts.Cut, "Cut"},
	{Shortcuts.Copy, "Copy"},
	{Shortcuts.Paste, "Paste"},
	{Shortcuts.SelectAll, "Select All"},
	{Shortcuts.TimeDate, "Insert Time/Date"},
	{Shortcuts.ZoomIn, "Zoom In"},
	{Shortcuts.ZoomOut, "Zoom Out"},
	{Shortcuts.RestoreZoom, "Restore Default Zoom"},
	{Shortcuts.RunCode, "Run Code"},
	{Shortcuts.Menu, "Open the menu bar"},
	{Shortcuts.Exit, "Exit"},
}

// InfoDialog is a read-only window closed with enter or esc.
type InfoDialog struct {
	title    string
	viewport viewport.Model
}

// NewHelpDialog explains the editor and lists its shortcuts.
func NewHelpDialog(styles Styles) *InfoDialog {
	var b strings.Builder
	b.WriteString(styles.Label.Render("What is ProText AI?"))
	b.WriteString("\n")
	b.WriteString(wordwrap.String("ProText AI is a text editor with AI-powered features to help you write better and faster. "+
		"Open the AI menu to summarize, paraphrase, expand or proofread the document, or to generate code and images.", helpWidth))
	b.WriteString("\n\n")
	b.WriteString(styles.Label.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range helpShortcuts {
		fmt.Fprintf(&b, "  %s %s\n", styles.MenuShortcut.Render(padRight(FormatShortcutForHelp(s.key)+":", 10)), s.label)
	}
	b.WriteString("\n")
	b.WriteString(styles.Label.Render("Menus"))
	b.WriteString("\n")
	b.WriteString("  Alt+F File · Alt+E Edit · Alt+O Format · Alt+V View\n")
	b.WriteString("  Alt+R Run · Alt+I AI · Alt+H Help")

	vp := viewport.New(helpWidth, 16)
	vp.SetContent(b.String())
	return &InfoDialog{title: "Help", viewport: vp}
}

// NewAboutDialog shows the version.
func NewAboutDialog(styles Styles, version string) *InfoDialog {
	content := strings.Join([]string{
		styles.Hint.Render("Version " + version),
		"",
		"An advanced Notepad-like code editor with AI-powered features.",
		"Built with Bubble Tea, Lip Gloss and Gemini.",
	}, "\n")

	vp := viewport.New(helpWidth, strings.Count(content, "\n")+1)
	vp.SetContent(content)
	return &InfoDialog{title: "About ProText AI", viewport: vp}
}

func (d *InfoDialog) Update(msg tea.Msg) (dialogEvent, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "enter", "q":
			return closeDialogEvent{}, nil
		}
	}
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return nil, cmd
}

func (d *InfoDialog) View(styles Styles) string {
	body := d.viewport.View() + "\n\n" + renderButtons(styles, []string{"Close"}, 0)
	return dialogFrame(styles, d.title, body)
}
