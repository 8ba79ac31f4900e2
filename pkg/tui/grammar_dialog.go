package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

const (
	grammarWidth  = 64
	grammarHeight = 12
)

// GrammarDialog shows the corrections proposed for the buffer as an inline
// diff. Apply replaces the buffer with the corrected text.
type GrammarDialog struct {
	original  string
	corrected string
	diffs     []dmp.Diff
	viewport  viewport.Model
	focus     focusRing
	rendered  bool
}

// NewGrammarDialog diffs original against corrected.
func NewGrammarDialog(original, corrected string) *GrammarDialog {
	d := dmp.New()
	diffs := d.DiffMain(original, corrected, false)
	diffs = d.DiffCleanupSemantic(diffs)

	return &GrammarDialog{
		original:  original,
		corrected: corrected,
		diffs:     diffs,
		viewport:  viewport.New(grammarWidth, grammarHeight),
		focus:     focusRing{n: 2},
	}
}

// Changes counts the inserted and deleted fragments.
func (g *GrammarDialog) Changes() (inserted, deleted int) {
	for _, d := range g.diffs {
		switch d.Type {
		case dmp.DiffInsert:
			inserted++
		case dmp.DiffDelete:
			deleted++
		}
	}
	return inserted, deleted
}

func (g *GrammarDialog) Update(msg tea.Msg) (dialogEvent, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, nil
	}

	switch key.String() {
	case "esc":
		return closeDialogEvent{}, nil
	case "tab", "right", "left", "shift+tab":
		g.focus.next()
		return nil, nil
	case "a":
		return applyGrammarEvent{Text: g.corrected}, nil
	case "enter":
		if g.focus.index == 0 {
			return applyGrammarEvent{Text: g.corrected}, nil
		}
		return closeDialogEvent{}, nil
	}

	var cmd tea.Cmd
	g.viewport, cmd = g.viewport.Update(msg)
	return nil, cmd
}

func (g *GrammarDialog) View(styles Styles) string {
	if !g.rendered {
		var b strings.Builder
		for _, d := range g.diffs {
			switch d.Type {
			case dmp.DiffInsert:
				b.WriteString(styles.DiffInsert.Render(d.Text))
			case dmp.DiffDelete:
				b.WriteString(styles.DiffDelete.Render(d.Text))
			default:
				b.WriteString(d.Text)
			}
		}
		g.viewport.SetContent(wordwrap.String(b.String(), grammarWidth))
		g.rendered = true
	}

	legend := styles.DiffDelete.Render("removed") + " " + styles.DiffInsert.Render("added") +
		styles.Hint.Render("   ↑/↓ scroll · a apply · esc cancel")
	body := strings.Join([]string{
		"Review the suggested corrections below.",
		"",
		g.viewport.View(),
		"",
		legend,
		"",
		renderButtons(styles, []string{"Apply Changes", "Cancel"}, g.focus.index),
	}, "\n")
	return dialogFrame(styles, "Grammar & Spelling Check", body)
}
