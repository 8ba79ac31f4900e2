package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/protext/protext-cli/pkg/models"
)

const (
	findFocusFind = iota
	findFocusReplace
	findFocusMatchCase
	findFocusWholeWord
	findFocusButtons
)

// FindDialog is the Find / Replace window. It stays open while the user
// steps through matches.
type FindDialog struct {
	find        textinput.Model
	replace     textinput.Model
	matchCase   bool
	wholeWord   bool
	replaceMode bool
	focus       focusRing

	// Status is shown under the options, e.g. "2 of 5".
	Status string
}

// NewFindDialog opens the dialog with the previous options. replaceMode adds
// the "Replace with" field and the replace buttons.
func NewFindDialog(opts models.FindOptions, replaceMode bool) *FindDialog {
	d := &FindDialog{
		find:        newInput("text to find", 30),
		replace:     newInput("replacement", 30),
		matchCase:   opts.MatchCase,
		wholeWord:   opts.WholeWord,
		replaceMode: replaceMode,
	}
	d.find.SetValue(opts.Find)
	d.replace.SetValue(opts.Replace)
	d.focus.n = findFocusButtons + len(d.buttons())
	d.syncFocus()
	return d
}

func (d *FindDialog) buttons() []string {
	if d.replaceMode {
		return []string{"Find Next", "Replace", "Replace All", "Cancel"}
	}
	return []string{"Find Next", "Cancel"}
}

// Options returns the current dialog values.
func (d *FindDialog) Options() models.FindOptions {
	opts := models.FindOptions{
		Find:      d.find.Value(),
		MatchCase: d.matchCase,
		WholeWord: d.wholeWord,
	}
	if d.replaceMode {
		opts.Replace = d.replace.Value()
	}
	return opts
}

// ReplaceMode reports whether the replace controls are shown.
func (d *FindDialog) ReplaceMode() bool {
	return d.replaceMode
}

func (d *FindDialog) syncFocus() {
	focusInputs(d.focus.index, &d.find, &d.replace)
}

func (d *FindDialog) moveFocus(dir int) {
	for {
		if dir > 0 {
			d.focus.next()
		} else {
			d.focus.prev()
		}
		if d.focus.index != findFocusReplace || d.replaceMode {
			break
		}
	}
	d.syncFocus()
}

func (d *FindDialog) Update(msg tea.Msg) (dialogEvent, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, nil
	}

	switch key.String() {
	case "esc":
		return closeDialogEvent{}, nil
	case "tab", "down":
		d.moveFocus(1)
		return nil, nil
	case "shift+tab", "up":
		d.moveFocus(-1)
		return nil, nil
	case "alt+c":
		d.matchCase = !d.matchCase
		return nil, nil
	case "alt+w":
		d.wholeWord = !d.wholeWord
		return nil, nil
	case "enter":
		return d.activate(), nil
	case " ":
		switch d.focus.index {
		case findFocusMatchCase, findFocusWholeWord:
			return d.activate(), nil
		}
	}

	var cmd tea.Cmd
	switch d.focus.index {
	case findFocusFind:
		d.find, cmd = d.find.Update(msg)
	case findFocusReplace:
		d.replace, cmd = d.replace.Update(msg)
	}
	return nil, cmd
}

func (d *FindDialog) activate() dialogEvent {
	switch d.focus.index {
	case findFocusMatchCase:
		d.matchCase = !d.matchCase
		return nil
	case findFocusWholeWord:
		d.wholeWord = !d.wholeWord
		return nil
	}

	button := "Find Next"
	if d.focus.index >= findFocusButtons {
		button = d.buttons()[d.focus.index-findFocusButtons]
	}
	if button == "Cancel" {
		return closeDialogEvent{}
	}

	opts := d.Options()
	if opts.Find == "" {
		return nil
	}
	switch button {
	case "Replace":
		return replaceEvent{Options: opts}
	case "Replace All":
		return replaceAllEvent{Options: opts}
	}
	return findNextEvent{Options: opts}
}

func (d *FindDialog) View(styles Styles) string {
	var b strings.Builder
	b.WriteString(renderField(styles, "Find what:", d.find.View(), d.focus.index == findFocusFind))
	b.WriteString("\n")
	if d.replaceMode {
		b.WriteString(renderField(styles, "Replace with:", d.replace.View(), d.focus.index == findFocusReplace))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(renderCheckbox(styles, "Match case", d.matchCase, d.focus.index == findFocusMatchCase))
	b.WriteString("\n")
	b.WriteString(renderCheckbox(styles, "Match whole word", d.wholeWord, d.focus.index == findFocusWholeWord))
	b.WriteString("\n")
	if d.Status != "" {
		b.WriteString("\n")
		b.WriteString(styles.Hint.Render(d.Status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(renderButtons(styles, d.buttons(), d.focus.index-findFocusButtons))

	title := "Find"
	if d.replaceMode {
		title = "Replace"
	}
	return dialogFrame(styles, title, b.String())
}
