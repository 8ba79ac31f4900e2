package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/protext/protext-cli/pkg/models"
)

const (
	fontFocusFamily = iota
	fontFocusSize
	fontFocusWeight
	fontFocusStyle
	fontFocusColor
	fontFocusApply
	fontFocusCancel
	fontFocusCount
)

var (
	fontWeights = []string{"normal", "bold"}
	fontStyles  = []string{"normal", "italic"}
)

// FontDialog edits the editor font. The terminal cannot change the family or
// size, so those are kept for saved settings and the zoom indicator; weight,
// style and color are applied to the text.
type FontDialog struct {
	font  models.FontSettings
	size  textinput.Model
	color textinput.Model
	focus focusRing
}

// NewFontDialog opens the dialog on the current settings.
func NewFontDialog(font models.FontSettings) *FontDialog {
	d := &FontDialog{
		font:  font,
		size:  newInput("14", 4),
		color: newInput("default", 10),
		focus: focusRing{n: fontFocusCount},
	}
	d.size.SetValue(strconv.Itoa(font.Size))
	d.color.SetValue(font.Color)
	return d
}

// Settings returns the font as currently edited.
func (d *FontDialog) Settings() models.FontSettings {
	f := d.font
	size, err := strconv.Atoi(strings.TrimSpace(d.size.Value()))
	if err != nil {
		size = models.DefaultFontSize
	}
	f.Size = min(max(size, models.MinFontSize), models.MaxFontSize)
	f.Color = strings.TrimSpace(d.color.Value())
	return f
}

func (d *FontDialog) syncFocus() {
	var active int
	switch d.focus.index {
	case fontFocusSize:
		active = 0
	case fontFocusColor:
		active = 1
	default:
		active = -1
	}
	focusInputs(active, &d.size, &d.color)
}

func cycle(options []string, current string, dir int) string {
	for i, o := range options {
		if o == current {
			return options[(i+dir+len(options))%len(options)]
		}
	}
	return options[0]
}

func (d *FontDialog) Update(msg tea.Msg) (dialogEvent, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, nil
	}

	switch key.String() {
	case "esc":
		return closeDialogEvent{}, nil
	case "tab", "down":
		d.focus.next()
		d.syncFocus()
		return nil, nil
	case "shift+tab", "up":
		d.focus.prev()
		d.syncFocus()
		return nil, nil
	case "enter":
		if d.focus.index == fontFocusCancel {
			return closeDialogEvent{}, nil
		}
		return applyFontEvent{Font: d.Settings()}, nil
	case "left", "right":
		dir := 1
		if key.String() == "left" {
			dir = -1
		}
		switch d.focus.index {
		case fontFocusFamily:
			d.font.Family = cycle(models.FontFamilies, d.font.Family, dir)
			return nil, nil
		case fontFocusWeight:
			d.font.Weight = cycle(fontWeights, d.font.Weight, dir)
			return nil, nil
		case fontFocusStyle:
			d.font.Style = cycle(fontStyles, d.font.Style, dir)
			return nil, nil
		case fontFocusApply, fontFocusCancel:
			if dir > 0 {
				d.focus.index = fontFocusCancel
			} else {
				d.focus.index = fontFocusApply
			}
			return nil, nil
		}
	}

	var cmd tea.Cmd
	switch d.focus.index {
	case fontFocusSize:
		d.size, cmd = d.size.Update(msg)
	case fontFocusColor:
		d.color, cmd = d.color.Update(msg)
	}
	return nil, cmd
}

func (d *FontDialog) View(styles Styles) string {
	f := d.Settings()
	color := f.Color
	if color == "" {
		color = "default"
	}

	rows := []string{
		renderField(styles, "Font family:", renderChoice(styles, f.Family, d.focus.index == fontFocusFamily), d.focus.index == fontFocusFamily),
		renderField(styles, "Font size:", d.size.View(), d.focus.index == fontFocusSize),
		renderField(styles, "Font weight:", renderChoice(styles, f.Weight, d.focus.index == fontFocusWeight), d.focus.index == fontFocusWeight),
		renderField(styles, "Font style:", renderChoice(styles, f.Style, d.focus.index == fontFocusStyle), d.focus.index == fontFocusStyle),
		renderField(styles, "Text color:", d.color.View(), d.focus.index == fontFocusColor),
		"",
		styles.Hint.Render(fmt.Sprintf("Preview (%s, %dpt, color %s):", f.Family, f.Size, color)),
		fontStyle(f).Render("The quick brown fox jumps over the lazy dog."),
		"",
		renderButtons(styles, []string{"Apply", "Cancel"}, d.focus.index-fontFocusApply),
	}
	return dialogFrame(styles, "Font", strings.Join(rows, "\n"))
}

// fontStyle maps the font settings a terminal can show onto a style.
func fontStyle(f models.FontSettings) lipgloss.Style {
	s := lipgloss.NewStyle()
	if f.Weight == "bold" {
		s = s.Bold(true)
	}
	if f.Style == "italic" {
		s = s.Italic(true)
	}
	if f.Color != "" {
		s = s.Foreground(lipgloss.Color(f.Color))
	}
	return s
}
