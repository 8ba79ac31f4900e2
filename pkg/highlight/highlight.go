// Package highlight renders editor text with syntax colors.
package highlight

import (
	"strings"
	"unicode"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/protext/protext-cli/pkg/models"
)

const (
	lightStyle = "vs"
	darkStyle  = "github-dark"
)

var (
	cursorStyle    = lipgloss.NewStyle().Reverse(true)
	selectionStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("33")).
			Foreground(lipgloss.Color("255"))
)

// Highlighter colors text of one language with one chroma style.
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style
	cache map[chroma.TokenType]lipgloss.Style
}

// New returns a highlighter for lang, or nil when lang is "none" or unknown.
func New(lang models.SyntaxLanguage, dark bool) *Highlighter {
	if lang == "" || lang == models.SyntaxNone {
		return nil
	}
	lexer := lexers.Get(string(lang))
	if lexer == nil {
		return nil
	}

	name := lightStyle
	if dark {
		name = darkStyle
	}

	return &Highlighter{
		lexer: chroma.Coalesce(lexer),
		style: styles.Get(name),
		cache: make(map[chroma.TokenType]lipgloss.Style),
	}
}

// Plain returns a highlighter that draws text without colors.
func Plain() *Highlighter {
	return &Highlighter{cache: make(map[chroma.TokenType]lipgloss.Style)}
}

// Classify returns the token type of every rune of text.
func (h *Highlighter) Classify(text string) []chroma.TokenType {
	src := []rune(text)
	types := make([]chroma.TokenType, len(src))
	for i := range types {
		types[i] = chroma.Text
	}
	if h.lexer == nil {
		return types
	}

	// EnsureLF would rewrite "\r" and shift the tokens off their runes.
	it, err := h.lexer.Tokenise(&chroma.TokeniseOptions{State: "root"}, text)
	if err != nil {
		return types
	}

	i := 0
	for _, tok := range it.Tokens() {
		for range tok.Value {
			if i >= len(src) {
				return types
			}
			types[i] = tok.Type
			i++
		}
	}
	return types
}

// View selects what Render draws.
type View struct {
	// Cursor is the rune offset drawn reversed, or -1 for none. The end of
	// the text is a valid position.
	Cursor int
	// ColOffset and Width clip every line to the rune columns
	// [ColOffset, ColOffset+Width). A zero Width disables clipping.
	ColOffset int
	Width     int
	// SelStart and SelEnd mark the selected runes [SelStart, SelEnd).
	SelStart, SelEnd int
}

// Render returns the colored lines of text.
func (h *Highlighter) Render(text string, v View) []string {
	src := []rune(text)
	types := h.Classify(text)

	var lines []string
	lineStart := 0
	for i := 0; i <= len(src); i++ {
		if i < len(src) && src[i] != '\n' {
			continue
		}
		lines = append(lines, h.renderLine(src[lineStart:i], types[lineStart:i], lineStart, v))
		lineStart = i + 1
	}
	return lines
}

func (h *Highlighter) renderLine(line []rune, types []chroma.TokenType, start int, v View) string {
	from, to := 0, len(line)
	if v.Width > 0 {
		from = min(v.ColOffset, len(line))
		to = min(v.ColOffset+v.Width, len(line))
	}
	cursorCol := v.Cursor - start

	var (
		b      strings.Builder
		run    []rune
		cur    chroma.TokenType
		curSel bool
	)
	flush := func() {
		if len(run) > 0 {
			if curSel {
				b.WriteString(selectionStyle.Render(string(run)))
			} else {
				b.WriteString(h.styleFor(cur).Render(string(run)))
			}
			run = run[:0]
		}
	}

	for i := from; i < to; i++ {
		if i == cursorCol {
			flush()
			b.WriteString(cursorStyle.Render(string(glyph(line[i]))))
			continue
		}
		sel := start+i >= v.SelStart && start+i < v.SelEnd
		if types[i] != cur || sel != curSel {
			flush()
			cur, curSel = types[i], sel
		}
		run = append(run, glyph(line[i]))
	}
	flush()

	if cursorCol == len(line) && (v.Width == 0 || cursorCol < v.ColOffset+v.Width) && cursorCol >= v.ColOffset {
		b.WriteString(cursorStyle.Render(" "))
	}
	return b.String()
}

// glyph returns the single cell drawn for r. Tabs take one column so rune
// columns and screen columns stay the same.
func glyph(r rune) rune {
	switch {
	case r == '\t':
		return ' '
	case unicode.IsControl(r):
		return '·'
	}
	return r
}

func (h *Highlighter) styleFor(tt chroma.TokenType) lipgloss.Style {
	if s, ok := h.cache[tt]; ok {
		return s
	}

	s := lipgloss.NewStyle()
	if h.style == nil {
		h.cache[tt] = s
		return s
	}

	entry := h.style.Get(tt)
	if entry.Colour.IsSet() {
		s = s.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		s = s.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		s = s.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		s = s.Underline(true)
	}

	h.cache[tt] = s
	return s
}
