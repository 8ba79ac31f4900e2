package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color constants
const (
	ColorActive   = "170" // Purple/magenta for active elements
	ColorInactive = "240" // Gray for inactive elements
	ColorSelected = "236" // Dark gray for background selection
	ColorNormal   = "245" // Light gray for normal text
	ColorDim      = "241" // Dimmer gray
	ColorWarning  = "214" // Orange/yellow for warnings
	ColorDanger   = "196" // Red for dangerous actions
	ColorSuccess  = "28"  // Green for success
	ColorWhite    = "255" // White
	ColorDark     = "235" // Dark for contrast
	ColorBorder   = "243" // Border gray
	ColorPrimary  = "33"  // Blue for primary actions
	ColorLight    = "254" // Light background
)

// Theme names accepted by the View > Theme menu.
const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"
)

// IsDark resolves a theme name to a dark or light palette. "system" asks the
// terminal.
func IsDark(theme string) bool {
	switch theme {
	case ThemeLight:
		return false
	case ThemeDark:
		return true
	default:
		return lipgloss.HasDarkBackground()
	}
}

// Styles holds every style that depends on the active theme.
type Styles struct {
	MenuBar          lipgloss.Style
	MenuTitle        lipgloss.Style
	MenuTitleActive  lipgloss.Style
	MenuBox          lipgloss.Style
	MenuItem         lipgloss.Style
	MenuItemSelected lipgloss.Style
	MenuItemDisabled lipgloss.Style
	MenuShortcut     lipgloss.Style
	StatusBar        lipgloss.Style
	Gutter           lipgloss.Style
	GutterActive     lipgloss.Style
	Selection        lipgloss.Style
	Dialog           lipgloss.Style
	DialogTitle      lipgloss.Style
	Label            lipgloss.Style
	Hint             lipgloss.Style
	Button           lipgloss.Style
	ButtonActive     lipgloss.Style
	OutputBorder     lipgloss.Style
	DiffInsert       lipgloss.Style
	DiffDelete       lipgloss.Style
	Error            lipgloss.Style
}

// NewStyles builds the styles for a dark or light terminal.
func NewStyles(dark bool) Styles {
	bar, fg, selBg := ColorDark, ColorNormal, ColorSelected
	if !dark {
		bar, fg, selBg = ColorLight, ColorDark, "153"
	}

	return Styles{
		MenuBar: lipgloss.NewStyle().
			Background(lipgloss.Color(bar)).
			Foreground(lipgloss.Color(fg)),
		MenuTitle: lipgloss.NewStyle().
			Background(lipgloss.Color(bar)).
			Foreground(lipgloss.Color(fg)).
			Padding(0, 1),
		MenuTitleActive: lipgloss.NewStyle().
			Background(lipgloss.Color(ColorActive)).
			Foreground(lipgloss.Color(ColorWhite)).
			Bold(true).
			Padding(0, 1),
		MenuBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)),
		MenuItem: lipgloss.NewStyle().
			Padding(0, 1),
		MenuItemSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Background(lipgloss.Color(selBg)).
			Bold(true).
			Padding(0, 1),
		MenuItemDisabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorInactive)).
			Padding(0, 1),
		MenuShortcut: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDim)),
		StatusBar: lipgloss.NewStyle().
			Background(lipgloss.Color(bar)).
			Foreground(lipgloss.Color(fg)).
			Padding(0, 1),
		Gutter: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorInactive)),
		GutterActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)),
		Selection: lipgloss.NewStyle().
			Background(lipgloss.Color(ColorPrimary)).
			Foreground(lipgloss.Color(ColorWhite)),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorActive)).
			Padding(1, 2),
		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorActive)),
		Label: lipgloss.NewStyle().
			Bold(true),
		Hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDim)),
		Button: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(ColorInactive)).
			Padding(0, 1),
		ButtonActive: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(ColorActive)).
			Foreground(lipgloss.Color(ColorActive)).
			Bold(true).
			Padding(0, 1),
		OutputBorder: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color(ColorBorder)),
		DiffInsert: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWhite)).
			Background(lipgloss.Color(ColorSuccess)),
		DiffDelete: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWhite)).
			Background(lipgloss.Color(ColorDanger)).
			Strikethrough(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDanger)),
	}
}
