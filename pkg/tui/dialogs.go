package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/protext/protext-cli/pkg/ai"
	"github.com/protext/protext-cli/pkg/models"
)

// dialog is a modal window drawn over the editor. Update returns an event
// for the app to act on, or nil.
type dialog interface {
	Update(msg tea.Msg) (dialogEvent, tea.Cmd)
	View(styles Styles) string
}

type dialogEvent any

// Events emitted by dialogs.
type (
	closeDialogEvent   struct{}
	findNextEvent      struct{ Options models.FindOptions }
	replaceEvent       struct{ Options models.FindOptions }
	replaceAllEvent    struct{ Options models.FindOptions }
	applyFontEvent     struct{ Font models.FontSettings }
	applyGrammarEvent  struct{ Text string }
	generateCodeEvent  struct{ Request ai.CodeRequest }
	generateImageEvent struct{ Request ai.ImageRequest }
	insertImageEvent   struct{ Prompt, URI string }
	downloadImageEvent struct{ Prompt, URI string }
	copyImageEvent     struct{ URI string }
	saveAsEvent        struct{ Name string }
	openFileEvent      struct{ Path string }
)

// focusRing tracks which of n controls has the keyboard.
type focusRing struct {
	index, n int
}

func (f *focusRing) next() { f.index = (f.index + 1) % f.n }
func (f *focusRing) prev() { f.index = (f.index + f.n - 1) % f.n }

func newInput(placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 0
	ti.Width = width
	return ti
}

// focusInputs focuses inputs[active] and blurs the rest. active may be out
// of range to blur all of them.
func focusInputs(active int, inputs ...*textinput.Model) {
	for i, in := range inputs {
		if i == active {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

func renderButtons(styles Styles, labels []string, focused int) string {
	rendered := make([]string, len(labels))
	for i, label := range labels {
		if i == focused {
			rendered[i] = styles.ButtonActive.Render(label)
		} else {
			rendered[i] = styles.Button.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func renderCheckbox(styles Styles, label string, checked, focused bool) string {
	box := "[ ] "
	if checked {
		box = "[x] "
	}
	if focused {
		return styles.MenuItemSelected.Render(box + label)
	}
	return styles.MenuItem.Render(box + label)
}

func renderField(styles Styles, label, value string, focused bool) string {
	l := styles.Label.Render(padRight(label, 14))
	if focused {
		l = styles.DialogTitle.Render(padRight(label, 14))
	}
	return l + value
}

// renderChoice draws an option cycled with left/right.
func renderChoice(styles Styles, value string, focused bool) string {
	if focused {
		return styles.MenuItemSelected.Render("‹ " + value + " ›")
	}
	return styles.MenuItem.Render("  " + value + "  ")
}

func dialogFrame(styles Styles, title, body string) string {
	var b strings.Builder
	b.WriteString(styles.DialogTitle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(body)
	return styles.Dialog.Render(b.String())
}
