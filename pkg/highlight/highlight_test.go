package highlight

import (
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protext/protext-cli/pkg/models"
)

func TestNew(t *testing.T) {
	assert.Nil(t, New(models.SyntaxNone, false))
	assert.Nil(t, New("", true))
	assert.Nil(t, New("no-such-language", false))

	for _, lang := range models.SyntaxLanguages[1:] {
		assert.NotNil(t, New(lang, false), string(lang))
		assert.NotNil(t, New(lang, true), string(lang))
	}
}

func TestClassify(t *testing.T) {
	h := New("python", false)
	require.NotNil(t, h)

	types := h.Classify("def f():\n    return 1\n")
	require.Len(t, types, len([]rune("def f():\n    return 1\n")))
	assert.True(t, types[0].InCategory(chroma.Keyword), "got %s", types[0])
	assert.NotEqual(t, types[0], types[3])
}

func TestRenderKeepsText(t *testing.T) {
	h := New("javascript", true)
	require.NotNil(t, h)

	text := "const x = 1;\n\nconsole.log(x);"
	lines := h.Render(text, View{Cursor: -1})
	require.Len(t, lines, 3)

	plain := make([]string, len(lines))
	for i, l := range lines {
		plain[i] = stripANSI(l)
	}
	assert.Equal(t, text, strings.Join(plain, "\n"))
}

func TestRenderCursorAtEnd(t *testing.T) {
	h := New("bash", false)
	require.NotNil(t, h)

	lines := h.Render("echo hi", View{Cursor: len("echo hi")})
	require.Len(t, lines, 1)
	assert.Equal(t, "echo hi ", stripANSI(lines[0]))
}

func TestRenderCursorOnNewline(t *testing.T) {
	h := New("css", false)
	require.NotNil(t, h)

	lines := h.Render("a{}\nb{}", View{Cursor: 3})
	require.Len(t, lines, 2)
	assert.Equal(t, "a{} ", stripANSI(lines[0]))
	assert.Equal(t, "b{}", stripANSI(lines[1]))
}

func TestRenderClipsColumns(t *testing.T) {
	lines := Plain().Render("0123456789\nab", View{Cursor: -1, ColOffset: 2, Width: 4})
	require.Len(t, lines, 2)
	assert.Equal(t, "2345", stripANSI(lines[0]))
	assert.Equal(t, "", stripANSI(lines[1]))
}

func TestPlainCursor(t *testing.T) {
	lines := Plain().Render("ab\ncd", View{Cursor: 4})
	require.Len(t, lines, 2)
	assert.Equal(t, "ab", stripANSI(lines[0]))
	assert.Equal(t, "cd", stripANSI(lines[1]))
}

func TestRenderSelectionKeepsText(t *testing.T) {
	h := New("python", true)
	require.NotNil(t, h)

	lines := h.Render("x = 1\ny = 2", View{Cursor: -1, SelStart: 2, SelEnd: 8})
	require.Len(t, lines, 2)
	assert.Equal(t, "x = 1", stripANSI(lines[0]))
	assert.Equal(t, "y = 2", stripANSI(lines[1]))
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestRenderControlRunesTakeOneColumn(t *testing.T) {
	lines := Plain().Render("a\tb\x01", View{Cursor: -1})
	require.Len(t, lines, 1)
	assert.Equal(t, "a b·", stripANSI(lines[0]))

	h := New("javascript", false)
	require.NotNil(t, h)
	text := "\tlet x = 1;\r\nx;"
	assert.Len(t, h.Classify(text), len([]rune(text)))

	lines = h.Render(text, View{Cursor: -1})
	require.Len(t, lines, 2)
	assert.Equal(t, " let x = 1;·", stripANSI(lines[0]))
	assert.Equal(t, "x;", stripANSI(lines[1]))
}
