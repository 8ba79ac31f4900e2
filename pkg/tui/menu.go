package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/protext/protext-cli/pkg/ai"
	"github.com/protext/protext-cli/pkg/models"
)

// MenuAction identifies what a menu item does.
type MenuAction string

const (
	ActionNew    MenuAction = "file:new"
	ActionOpen   MenuAction = "file:open"
	ActionSave   MenuAction = "file:save"
	ActionSaveAs MenuAction = "file:saveAs"
	ActionPrint  MenuAction = "file:print"
	ActionExit   MenuAction = "file:exit"

	ActionUndo      MenuAction = "edit:undo"
	ActionCut       MenuAction = "edit:cut"
	ActionCopy      MenuAction = "edit:copy"
	ActionPaste     MenuAction = "edit:paste"
	ActionDelete    MenuAction = "edit:delete"
	ActionFind      MenuAction = "edit:find"
	ActionFindNext  MenuAction = "edit:findNext"
	ActionReplace   MenuAction = "edit:replace"
	ActionSelectAll MenuAction = "edit:selectAll"
	ActionTimeDate  MenuAction = "edit:timeDate"

	ActionWordWrap MenuAction = "format:wordWrap"
	ActionFont     MenuAction = "format:font"

	ActionZoomIn      MenuAction = "view:zoomIn"
	ActionZoomOut     MenuAction = "view:zoomOut"
	ActionRestoreZoom MenuAction = "view:restoreZoom"
	ActionStatusBar   MenuAction = "view:statusBar"

	ActionRunCode         MenuAction = "run:code"
	ActionPreviewHTML     MenuAction = "run:previewHTML"
	ActionPreviewMarkdown MenuAction = "run:previewMarkdown"

	ActionSummarize     MenuAction = "ai:summarize"
	ActionParaphrase    MenuAction = "ai:paraphrase"
	ActionExpand        MenuAction = "ai:expand"
	ActionGrammar       MenuAction = "ai:grammar"
	ActionGenerateCode  MenuAction = "ai:generate-code"
	ActionGenerateImage MenuAction = "ai:generate-image"

	ActionHelp  MenuAction = "help:viewHelp"
	ActionAbout MenuAction = "help:about"

	syntaxPrefix = "format:syntax:"
	themePrefix  = "view:theme:"
	aiPrefix     = "ai:"
)

// SyntaxAction is the Format menu item selecting lang.
func SyntaxAction(lang models.SyntaxLanguage) MenuAction {
	return MenuAction(syntaxPrefix + string(lang))
}

// ThemeAction is the View menu item selecting theme.
func ThemeAction(theme string) MenuAction {
	return MenuAction(themePrefix + theme)
}

// Syntax returns the language selected by a syntax action.
func (a MenuAction) Syntax() (models.SyntaxLanguage, bool) {
	lang, ok := strings.CutPrefix(string(a), syntaxPrefix)
	return models.SyntaxLanguage(lang), ok
}

// Theme returns the theme selected by a theme action.
func (a MenuAction) Theme() (string, bool) {
	return strings.CutPrefix(string(a), themePrefix)
}

// AIKind returns the AI action started by an AI menu item.
func (a MenuAction) AIKind() (ai.Kind, bool) {
	kind, ok := strings.CutPrefix(string(a), aiPrefix)
	return ai.Kind(kind), ok
}

// MenuItem is one row of a dropdown. A zero Action makes a separator.
type MenuItem struct {
	Label    string
	Action   MenuAction
	Shortcut ShortcutKey
	Radio    bool // shows a dot instead of a check mark when checked
}

func (i MenuItem) separator() bool {
	return i.Action == ""
}

// Menu is one title of the menu bar and its dropdown.
type Menu struct {
	Title  string
	Hotkey string
	Items  []MenuItem
}

// MenuState is the part of the menus that follows the editor: check marks,
// disabled items and labels replaced while an action runs.
type MenuState struct {
	Checked  map[MenuAction]bool
	Disabled map[MenuAction]bool
	Labels   map[MenuAction]string
}

func (s MenuState) label(item MenuItem) string {
	if l, ok := s.Labels[item.Action]; ok {
		return l
	}
	return item.Label
}

// MenuBar is the application menu. At most one dropdown is open.
type MenuBar struct {
	Menus    []Menu
	open     bool
	active   int
	selected int
}

// NewMenuBar returns the File, Edit, Format, View, Run, AI and Help menus.
func NewMenuBar() *MenuBar {
	syntax := make([]MenuItem, 0, len(models.SyntaxLanguages))
	for _, lang := range models.SyntaxLanguages {
		syntax = append(syntax, MenuItem{Label: "Syntax: " + lang.Label(), Action: SyntaxAction(lang), Radio: true})
	}
	themes := make([]MenuItem, 0, len(models.Themes))
	for _, theme := range models.Themes {
		themes = append(themes, MenuItem{Label: "Theme: " + strings.ToUpper(theme[:1]) + theme[1:], Action: ThemeAction(theme), Radio: true})
	}

	format := append([]MenuItem{
		{Label: "Word Wrap", Action: ActionWordWrap},
		{Label: "Font...", Action: ActionFont},
		{},
	}, syntax...)

	view := append([]MenuItem{
		{Label: "Zoom In", Action: ActionZoomIn, Shortcut: Shortcuts.ZoomIn},
		{Label: "Zoom Out", Action: ActionZoomOut, Shortcut: Shortcuts.ZoomOut},
		{Label: "Restore Default Zoom", Action: ActionRestoreZoom, Shortcut: Shortcuts.RestoreZoom},
		{},
		{Label: "Status Bar", Action: ActionStatusBar},
		{},
	}, themes...)

	return &MenuBar{Menus: []Menu{
		{Title: "File", Hotkey: "alt+f", Items: []MenuItem{
			{Label: "New", Action: ActionNew, Shortcut: Shortcuts.New},
			{Label: "Open...", Action: ActionOpen, Shortcut: Shortcuts.Open},
			{Label: "Save", Action: ActionSave, Shortcut: Shortcuts.Save},
			{Label: "Save As...", Action: ActionSaveAs},
			{},
			{Label: "Print...", Action: ActionPrint, Shortcut: Shortcuts.Print},
			{},
			{Label: "Exit", Action: ActionExit, Shortcut: Shortcuts.Exit},
		}},
		{Title: "Edit", Hotkey: "alt+e", Items: []MenuItem{
			{Label: "Undo", Action: ActionUndo, Shortcut: Shortcuts.Undo},
			{},
			{Label: "Cut", Action: ActionCut, Shortcut: Shortcuts.Cut},
			{Label: "Copy", Action: ActionCopy, Shortcut: Shortcuts.Copy},
			{Label: "Paste", Action: ActionPaste, Shortcut: Shortcuts.Paste},
			{Label: "Delete", Action: ActionDelete, Shortcut: Shortcuts.Delete},
			{},
			{Label: "Find...", Action: ActionFind, Shortcut: Shortcuts.Find},
			{Label: "Find Next", Action: ActionFindNext, Shortcut: Shortcuts.FindNext},
			{Label: "Replace...", Action: ActionReplace, Shortcut: Shortcuts.Replace},
			{},
			{Label: "Select All", Action: ActionSelectAll, Shortcut: Shortcuts.SelectAll},
			{Label: "Time/Date", Action: ActionTimeDate, Shortcut: Shortcuts.TimeDate},
		}},
		{Title: "Format", Hotkey: "alt+o", Items: format},
		{Title: "View", Hotkey: "alt+v", Items: view},
		{Title: "Run", Hotkey: "alt+r", Items: []MenuItem{
			{Label: "Run Code", Action: ActionRunCode, Shortcut: Shortcuts.RunCode},
			{Label: "Preview HTML", Action: ActionPreviewHTML},
			{Label: "Preview Markdown", Action: ActionPreviewMarkdown},
		}},
		{Title: "AI", Hotkey: "alt+i", Items: []MenuItem{
			{Label: "Summarize", Action: ActionSummarize},
			{Label: "Paraphrase", Action: ActionParaphrase},
			{Label: "Expand", Action: ActionExpand},
			{Label: "Grammar & Spell Check", Action: ActionGrammar},
			{},
			{Label: "Generate Code...", Action: ActionGenerateCode},
			{Label: "Generate Image...", Action: ActionGenerateImage},
		}},
		{Title: "Help", Hotkey: "alt+h", Items: []MenuItem{
			{Label: "View Help", Action: ActionHelp},
			{Label: "About ProText AI", Action: ActionAbout},
		}},
	}}
}

// IsOpen reports whether a dropdown is shown.
func (m *MenuBar) IsOpen() bool {
	return m.open
}

// Open shows the dropdown of menu i.
func (m *MenuBar) Open(i int) {
	if i < 0 || i >= len(m.Menus) {
		return
	}
	m.open = true
	m.active = i
	m.selected = m.nextItem(-1, 1)
}

// Close hides the dropdown.
func (m *MenuBar) Close() {
	m.open = false
}

// HotkeyMenu returns the menu opened by key, or -1.
func (m *MenuBar) HotkeyMenu(key string) int {
	for i, menu := range m.Menus {
		if menu.Hotkey == key {
			return i
		}
	}
	return -1
}

// Update moves through the open dropdown. It returns the chosen action when
// an enabled item is activated, which also closes the menu.
func (m *MenuBar) Update(msg tea.KeyMsg, state MenuState) (MenuAction, bool) {
	if !m.open {
		return "", false
	}

	key := msg.String()
	if i := m.HotkeyMenu(key); i >= 0 {
		m.Open(i)
		return "", false
	}

	switch key {
	case "esc", "f10":
		m.Close()
	case "left", "shift+tab":
		m.Open((m.active + len(m.Menus) - 1) % len(m.Menus))
	case "right", "tab":
		m.Open((m.active + 1) % len(m.Menus))
	case "up":
		m.selected = m.nextItem(m.selected, -1)
	case "down":
		m.selected = m.nextItem(m.selected, 1)
	case "home":
		m.selected = m.nextItem(-1, 1)
	case "end":
		m.selected = m.nextItem(len(m.Menus[m.active].Items), -1)
	case "enter", " ":
		item := m.Menus[m.active].Items[m.selected]
		if item.separator() || state.Disabled[item.Action] {
			return "", false
		}
		m.Close()
		return item.Action, true
	}
	return "", false
}

// nextItem walks from i in direction dir to the next non-separator item,
// wrapping around.
func (m *MenuBar) nextItem(i, dir int) int {
	items := m.Menus[m.active].Items
	n := len(items)
	for step := 0; step < n; step++ {
		i = ((i+dir)%n + n) % n
		if !items[i].separator() {
			return i
		}
	}
	return 0
}

// View renders the menu bar line.
func (m *MenuBar) View(width int, styles Styles) string {
	var b strings.Builder
	for i, menu := range m.Menus {
		if m.open && i == m.active {
			b.WriteString(styles.MenuTitleActive.Render(menu.Title))
		} else {
			b.WriteString(styles.MenuTitle.Render(menu.Title))
		}
	}
	return styles.MenuBar.Width(width).MaxWidth(width).Render(b.String())
}

// DropdownView renders the open dropdown and the column it starts at.
func (m *MenuBar) DropdownView(styles Styles, state MenuState) (string, int) {
	if !m.open {
		return "", 0
	}

	x := 0
	for i := 0; i < m.active; i++ {
		x += lipgloss.Width(styles.MenuTitle.Render(m.Menus[i].Title))
	}

	items := m.Menus[m.active].Items
	labelW, keyW := 0, 0
	for _, item := range items {
		labelW = max(labelW, lipgloss.Width(state.label(item)))
		keyW = max(keyW, lipgloss.Width(FormatShortcutForHelp(item.Shortcut)))
	}
	rowW := 2 + labelW
	if keyW > 0 {
		rowW += 3 + keyW
	}

	rows := make([]string, 0, len(items))
	for i, item := range items {
		if item.separator() {
			rows = append(rows, styles.MenuShortcut.Render(strings.Repeat("─", rowW+2)))
			continue
		}

		mark := "  "
		if state.Checked[item.Action] {
			mark = "✓ "
			if item.Radio {
				mark = "• "
			}
		}
		row := mark + padRight(state.label(item), labelW)
		if keyW > 0 {
			row += "   " + padLeft(FormatShortcutForHelp(item.Shortcut), keyW)
		}

		switch {
		case state.Disabled[item.Action]:
			rows = append(rows, styles.MenuItemDisabled.Render(row))
		case i == m.selected:
			rows = append(rows, styles.MenuItemSelected.Render(row))
		default:
			rows = append(rows, styles.MenuItem.Render(row))
		}
	}
	return styles.MenuBox.Render(strings.Join(rows, "\n")), x
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func padLeft(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}
