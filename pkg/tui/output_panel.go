package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"

	"github.com/protext/protext-cli/pkg/highlight"
	"github.com/protext/protext-cli/pkg/models"
	"github.com/protext/protext-cli/pkg/preview"
)

var outputModes = []models.OutputMode{
	models.OutputModeOutput,
	models.OutputModeHTMLPreview,
	models.OutputModeMarkdownPreview,
}

func outputModeTitle(mode models.OutputMode) string {
	switch mode {
	case models.OutputModeHTMLPreview:
		return "HTML Preview"
	case models.OutputModeMarkdownPreview:
		return "Markdown Preview"
	}
	return "Output"
}

// OutputPanel shows run results and previews below the editor. All tabs
// show the same content, rendered differently.
type OutputPanel struct {
	Mode    models.OutputMode
	Visible bool
	Busy    bool
	Content string

	viewport viewport.Model
	dark     bool
	width    int
}

// NewOutputPanel creates a hidden panel.
func NewOutputPanel() *OutputPanel {
	return &OutputPanel{
		Mode:     models.OutputModeOutput,
		viewport: viewport.New(80, 8),
		width:    80,
	}
}

// Show opens the panel on mode with content.
func (p *OutputPanel) Show(mode models.OutputMode, content string) {
	p.Mode = mode
	p.Content = content
	p.Visible = true
	p.Busy = false
	p.refresh()
	p.viewport.GotoTop()
}

// Close hides the panel.
func (p *OutputPanel) Close() {
	p.Visible = false
	p.Busy = false
}

// SwitchMode moves to the next (dir 1) or previous (dir -1) tab.
func (p *OutputPanel) SwitchMode(dir int) {
	for i, m := range outputModes {
		if m == p.Mode {
			p.Mode = outputModes[(i+dir+len(outputModes))%len(outputModes)]
			break
		}
	}
	p.refresh()
}

// SetSize sets the outer size of the panel, tab bar included.
func (p *OutputPanel) SetSize(width, height int) {
	p.width = width
	p.viewport.Width = width
	p.viewport.Height = max(height-2, 1)
	p.refresh()
}

// SetDark switches the palette of the previews.
func (p *OutputPanel) SetDark(dark bool) {
	p.dark = dark
	p.refresh()
}

func (p *OutputPanel) refresh() {
	var rendered string
	switch p.Mode {
	case models.OutputModeMarkdownPreview:
		rendered = preview.NewMarkdownRenderer(p.dark).Render(p.Content, p.width)
	case models.OutputModeHTMLPreview:
		h := highlight.New("html", p.dark)
		if h == nil {
			h = highlight.Plain()
		}
		rendered = strings.Join(h.Render(p.Content, highlight.View{Cursor: -1}), "\n")
		rendered = wrap.String(rendered, p.width)
	default:
		rendered = wrap.String(p.Content, p.width)
	}
	p.viewport.SetContent(rendered)
}

// Update scrolls the panel.
func (p *OutputPanel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

// ScrollDown and ScrollUp move the panel by half a page.
func (p *OutputPanel) ScrollDown() { p.viewport.HalfViewDown() }
func (p *OutputPanel) ScrollUp()   { p.viewport.HalfViewUp() }

// View renders the tab bar and the content.
func (p *OutputPanel) View(styles Styles, s *spinner.Model) string {
	tabs := make([]string, 0, len(outputModes))
	for _, m := range outputModes {
		if m == p.Mode {
			tabs = append(tabs, styles.MenuTitleActive.Render(outputModeTitle(m)))
		} else {
			tabs = append(tabs, styles.MenuTitle.Render(outputModeTitle(m)))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + styles.Hint.Render("  alt+t tab · alt+↑/↓ scroll · esc close")

	body := p.viewport.View()
	if p.Busy {
		body = busyLine(s, "Running...")
	}
	return styles.OutputBorder.Width(p.width).Render(bar + "\n" + body)
}
