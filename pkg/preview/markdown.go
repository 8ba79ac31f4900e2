// Package preview renders the buffer for the Run menu previews and hands it
// to external programs (browser, printer).
package preview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/protext/protext-cli/pkg/highlight"
	"github.com/protext/protext-cli/pkg/models"
)

var (
	headingStyles = []lipgloss.Style{
		lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("212")),
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
		lipgloss.NewStyle().Bold(true),
	}
	codeSpanStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	linkStyle       = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("39"))
	quoteStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	ruleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	italicStyle     = lipgloss.NewStyle().Italic(true)
	boldStyle       = lipgloss.NewStyle().Bold(true)
	strikeStyle     = lipgloss.NewStyle().Strikethrough(true)
	tableHeadStyle  = lipgloss.NewStyle().Bold(true)
)

const (
	defaultMDWidth  = 80
	codeBlockIndent = "    "
)

// MarkdownRenderer turns markdown into styled terminal text.
type MarkdownRenderer struct {
	md   goldmark.Markdown
	dark bool
}

// NewMarkdownRenderer creates a renderer with GitHub flavored markdown enabled.
func NewMarkdownRenderer(dark bool) *MarkdownRenderer {
	return &MarkdownRenderer{
		md:   goldmark.New(goldmark.WithExtensions(extension.GFM)),
		dark: dark,
	}
}

// Render renders src wrapped to width columns.
func (r *MarkdownRenderer) Render(src string, width int) string {
	if width <= 0 {
		width = defaultMDWidth
	}
	source := []byte(src)
	doc := r.md.Parser().Parse(text.NewReader(source))

	w := &mdWriter{src: source, width: width, dark: r.dark}
	return strings.TrimRight(w.blocks(doc), "\n")
}

type mdWriter struct {
	src   []byte
	width int
	dark  bool
}

// blocks renders the block children of n separated by blank lines.
func (w *mdWriter) blocks(n ast.Node) string {
	return w.joinBlocks(n, "\n\n")
}

func (w *mdWriter) joinBlocks(n ast.Node, sep string) string {
	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if s := w.block(c); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}

func (w *mdWriter) block(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Heading:
		style := headingStyles[min(n.Level, len(headingStyles))-1]
		return style.Render(w.inlines(n))

	case *ast.Paragraph, *ast.TextBlock:
		return wordwrap.String(w.inlines(n), w.width)

	case *ast.FencedCodeBlock:
		return w.code(n, string(n.Language(w.src)))

	case *ast.CodeBlock:
		return w.code(n, "")

	case *ast.List:
		return w.list(n)

	case *ast.Blockquote:
		inner := wordwrap.String(w.blocks(n), w.width-2)
		return prefixLines(inner, quoteStyle.Render("│ "))

	case *ast.ThematicBreak:
		return ruleStyle.Render(strings.Repeat("─", w.width))

	case *ast.HTMLBlock:
		return strings.TrimRight(w.rawLines(n), "\n")

	case *extast.Table:
		return w.table(n)
	}

	if n.HasChildren() {
		return w.blocks(n)
	}
	return ""
}

func (w *mdWriter) code(n ast.Node, lang string) string {
	body := strings.TrimRight(w.rawLines(n), "\n")

	var lines []string
	if h := highlight.New(models.SyntaxLanguage(strings.ToLower(lang)), w.dark); h != nil {
		lines = h.Render(body, highlight.View{Cursor: -1})
	} else {
		lines = strings.Split(body, "\n")
	}
	return prefixLines(strings.Join(lines, "\n"), codeBlockIndent)
}

func (w *mdWriter) rawLines(n ast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(w.src))
	}
	return b.String()
}

func (w *mdWriter) list(n *ast.List) string {
	var items []string
	num := n.Start
	if num == 0 {
		num = 1
	}

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		marker := "• "
		if n.IsOrdered() {
			marker = strconv.Itoa(num) + ". "
			num++
		}

		var body string
		if n.IsTight {
			body = w.joinBlocks(c, "\n")
		} else {
			body = w.blocks(c) + "\n"
		}
		indent := strings.Repeat(" ", lipgloss.Width(marker))
		lines := strings.Split(body, "\n")
		for i := range lines {
			if i == 0 {
				lines[i] = marker + lines[i]
			} else if lines[i] != "" {
				lines[i] = indent + lines[i]
			}
		}
		items = append(items, strings.Join(lines, "\n"))
	}
	return strings.TrimRight(strings.Join(items, "\n"), "\n")
}

func (w *mdWriter) table(n *extast.Table) string {
	var rows [][]string
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, w.inlines(cell))
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return ""
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var out []string
	for r, row := range rows {
		padded := make([]string, len(row))
		for i, cell := range row {
			pad := 0
			if i < len(widths) {
				pad = widths[i] - lipgloss.Width(cell)
			}
			padded[i] = cell + strings.Repeat(" ", max(pad, 0))
		}
		line := strings.Join(padded, " │ ")
		if r == 0 {
			out = append(out, tableHeadStyle.Render(line))
			seps := make([]string, len(widths))
			for i, wd := range widths {
				seps[i] = strings.Repeat("─", wd)
			}
			out = append(out, ruleStyle.Render(strings.Join(seps, "─┼─")))
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func (w *mdWriter) inlines(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		b.WriteString(w.inline(c))
	}
	return b.String()
}

func (w *mdWriter) inline(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Text:
		s := string(n.Segment.Value(w.src))
		switch {
		case n.HardLineBreak():
			s += "\n"
		case n.SoftLineBreak():
			s += " "
		}
		return s

	case *ast.String:
		return string(n.Value)

	case *ast.CodeSpan:
		return codeSpanStyle.Render(w.plain(n))

	case *ast.Emphasis:
		if n.Level >= 2 {
			return boldStyle.Render(w.inlines(n))
		}
		return italicStyle.Render(w.inlines(n))

	case *ast.Link:
		label := w.inlines(n)
		dest := string(n.Destination)
		if label == "" || label == dest {
			return linkStyle.Render(dest)
		}
		return linkStyle.Render(label) + " (" + dest + ")"

	case *ast.AutoLink:
		return linkStyle.Render(string(n.URL(w.src)))

	case *ast.Image:
		return fmt.Sprintf("[image: %s]", w.plain(n))

	case *ast.RawHTML:
		var b strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(w.src))
		}
		return b.String()

	case *extast.Strikethrough:
		return strikeStyle.Render(w.inlines(n))

	case *extast.TaskCheckBox:
		if n.IsChecked {
			return "[x] "
		}
		return "[ ] "
	}
	return w.inlines(n)
}

// plain returns the unstyled text of the inline children of n.
func (w *mdWriter) plain(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(w.src))
		case *ast.String:
			b.Write(c.Value)
		default:
			b.WriteString(w.plain(c))
		}
	}
	return b.String()
}

func prefixLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}
