package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"

	"github.com/protext/protext-cli/pkg/highlight"
	"github.com/protext/protext-cli/pkg/utils"
)

// noWrapWidth is the textarea width used when word wrap is off, so that
// up and down move by whole lines.
const noWrapWidth = 1 << 14

// layout sizes the editor and the output panel to the window.
func (a *App) layout() {
	if a.width == 0 || a.height == 0 {
		return
	}
	_, textW, _ := a.editorSize()
	if !a.settings.Editor.WordWrap {
		textW = noWrapWidth
	}
	a.editor.SetSize(textW, max(a.editorHeight(), 1))
	a.output.SetSize(a.width, a.outputHeight())
}

func (a *App) outputHeight() int {
	if !a.output.Visible {
		return 0
	}
	return max(a.height/3, 6)
}

func (a *App) editorHeight() int {
	h := a.height - 1 - a.outputHeight()
	if a.settings.UI.ShowStatusBar {
		h--
	}
	return max(h, 1)
}

// editorSize returns the gutter width, the text width and the height of
// the editor pane.
func (a *App) editorSize() (gutter, text, height int) {
	lines := utils.CountLines(a.editor.Value())
	gutter = max(len(strconv.Itoa(lines)), 3) + 1
	return gutter, max(a.width-gutter-1, 1), a.editorHeight()
}

// scrollToCursor adjusts the scroll offsets so the cursor stays visible.
func (a *App) scrollToCursor() {
	if a.width == 0 {
		return
	}
	_, textW, height := a.editorSize()
	text := a.editor.Value()
	row, col := utils.LineColFromOffset(text, a.editor.Cursor())

	visualRow := row
	if a.settings.Editor.WordWrap {
		a.colOffset = 0
		lines := strings.Split(text, "\n")
		visualRow = 0
		for i := 0; i < row; i++ {
			visualRow += wrappedRows(lines[i], textW)
		}
		visualRow += col / textW
	} else {
		if col < a.colOffset {
			a.colOffset = col
		}
		if col >= a.colOffset+textW {
			a.colOffset = col - textW + 1
		}
	}

	if visualRow < a.scrollTop {
		a.scrollTop = visualRow
	}
	if visualRow >= a.scrollTop+height {
		a.scrollTop = visualRow - height + 1
	}
}

func wrappedRows(line string, width int) int {
	n := len([]rune(line))
	if n == 0 {
		return 1
	}
	return (n + width - 1) / width
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	parts := []string{a.menu.View(a.width, a.styles), a.editorView()}
	if a.output.Visible {
		parts = append(parts, a.output.View(a.styles, &a.spinner))
	}
	if a.settings.UI.ShowStatusBar {
		parts = append(parts, a.statusBarView())
	}
	view := strings.Join(parts, "\n")

	if dropdown, x := a.menu.DropdownView(a.styles, a.menuState()); dropdown != "" {
		view = overlayViews(view, dropdown, x, 1)
	}
	if a.dialog != nil {
		dv := a.dialog.View(a.styles)
		if _, ok := a.dialog.(*FindDialog); ok {
			// Keep the matches visible on the left.
			view = overlayViews(view, dv, a.width-lipgloss.Width(dv)-1, 1)
		} else {
			view = centerOverlay(view, dv, a.width, a.height)
		}
	}
	if a.confirm.Active() {
		view = centerOverlay(view, a.confirm.View(a.styles), a.width, a.height)
	}
	if toast, ok := a.status.Active(); ok {
		tv := a.toastView(toast)
		view = overlayViews(view, tv, a.width-lipgloss.Width(tv)-1, a.height-lipgloss.Height(tv)-1)
	}
	return view
}

// editorView draws the buffer with a line number gutter, the selection and
// the cursor, colored when a syntax language is chosen.
func (a *App) editorView() string {
	gutterW, textW, height := a.editorSize()
	text := a.editor.Value()
	h := a.highlighter
	if h == nil {
		h = highlight.Plain()
	}

	v := highlight.View{Cursor: a.editor.Cursor()}
	v.SelStart, v.SelEnd = a.editor.Selection.Ordered()
	if !a.settings.Editor.WordWrap {
		v.ColOffset, v.Width = a.colOffset, textW
	}

	cursorRow, _ := utils.LineColFromOffset(text, v.Cursor)
	var rows []string
	for i, line := range h.Render(text, v) {
		style := a.styles.Gutter
		if i == cursorRow {
			style = a.styles.GutterActive
		}
		num := style.Render(padLeft(strconv.Itoa(i+1), gutterW-1)) + " "
		blank := strings.Repeat(" ", gutterW)

		if !a.settings.Editor.WordWrap {
			rows = append(rows, num+line)
			continue
		}
		for j, part := range strings.Split(wrap.String(line, textW), "\n") {
			if j == 0 {
				rows = append(rows, num+part)
			} else {
				rows = append(rows, blank+part)
			}
		}
	}

	if text == "" {
		rows[0] += a.styles.Hint.Render("Start typing...")
	}

	start := min(a.scrollTop, max(len(rows)-1, 0))
	end := min(start+height, len(rows))
	rows = rows[start:end]
	for len(rows) < height {
		rows = append(rows, a.styles.Gutter.Render(padLeft("~", gutterW-1)))
	}
	return lipgloss.NewStyle().Width(a.width).MaxWidth(a.width).Render(strings.Join(rows, "\n"))
}

// statusBarView renders "Ln x, Col y | n words | m characters | UTF-8" with
// the language, zoom and save state on the right.
func (a *App) statusBarView() string {
	stats := utils.Stats(a.editor.Value(), a.editor.Cursor())
	left := fmt.Sprintf("Ln %d, Col %d | %d words | %d characters | UTF-8",
		stats.Line, stats.Column, stats.WordCount, stats.CharCount)

	right := []string{a.settings.Editor.SyntaxLanguage.Label(), fmt.Sprintf("%d%%", a.settings.Editor.Font.ZoomPercent())}
	if !a.doc.IsSaved {
		right = append(right, "Unsaved")
	}
	rightText := strings.Join(right, " | ")

	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(rightText)-2, 1)
	line := left + strings.Repeat(" ", gap) + rightText
	return a.styles.StatusBar.Width(a.width).MaxWidth(a.width).Render(line)
}

func (a *App) toastView(t Toast) string {
	color := ColorPrimary
	switch t.Type {
	case StatusTypeSuccess:
		color = ColorSuccess
	case StatusTypeWarning:
		color = ColorWarning
	case StatusTypeError:
		color = ColorDanger
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(color)).
		Padding(0, 1).
		MaxWidth(max(a.width/2, 30)).
		Render(t.Text())
}
