package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationConfig holds the configuration for a confirmation prompt
type ConfirmationConfig struct {
	Title       string
	Message     string
	Warning     string // drawn in the warning color below the message
	Destructive bool   // focus starts on No
	YesLabel    string // default "Yes"
	NoLabel     string // default "No"
}

// ConfirmationModel is a modal yes/no question. It answers to y/n, or to
// enter on the focused button.
type ConfirmationModel struct {
	active    bool
	config    ConfirmationConfig
	yes       bool // Yes button focused
	onConfirm func() tea.Cmd
	onCancel  func() tea.Cmd
}

// NewConfirmation creates a new confirmation model
func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show asks the question. Either callback may be nil.
func (m *ConfirmationModel) Show(config ConfirmationConfig, onConfirm, onCancel func() tea.Cmd) {
	if config.YesLabel == "" {
		config.YesLabel = "Yes"
	}
	if config.NoLabel == "" {
		config.NoLabel = "No"
	}
	*m = ConfirmationModel{
		active:    true,
		config:    config,
		yes:       !config.Destructive,
		onConfirm: onConfirm,
		onCancel:  onCancel,
	}
}

// Active returns whether the confirmation is currently shown
func (m *ConfirmationModel) Active() bool {
	return m.active
}

func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	switch msg.String() {
	case "y", "Y":
		return m.answer(true)
	case "n", "N", "esc":
		return m.answer(false)
	case "enter":
		return m.answer(m.yes)
	case "left", "right", "tab", "shift+tab":
		m.yes = !m.yes
	}
	return nil
}

func (m *ConfirmationModel) answer(yes bool) tea.Cmd {
	m.active = false
	cb := m.onCancel
	if yes {
		cb = m.onConfirm
	}
	if cb == nil {
		return nil
	}
	return cb()
}

// View renders the question in a dialog frame.
func (m *ConfirmationModel) View(styles Styles) string {
	if !m.active {
		return ""
	}

	var body []string
	if m.config.Message != "" {
		body = append(body, m.config.Message)
	}
	if m.config.Warning != "" {
		warn := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)).Bold(m.config.Destructive)
		body = append(body, warn.Render(m.config.Warning))
	}

	focused := 1
	if m.yes {
		focused = 0
	}
	body = append(body, "", renderButtons(styles, []string{m.config.YesLabel, m.config.NoLabel}, focused))
	body = append(body, styles.Hint.Render("y / n"))

	title := m.config.Title
	if title == "" {
		title = "Confirm"
	}
	return dialogFrame(styles, title, strings.Join(body, "\n"))
}
