package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// StatusType represents the type of status message
type StatusType int

const (
	StatusTypeSuccess StatusType = iota
	StatusTypeWarning
	StatusTypeError
	StatusTypeInfo
)

// Icon returns the glyph shown before a toast of this type.
func (t StatusType) Icon() string {
	switch t {
	case StatusTypeSuccess:
		return "✓"
	case StatusTypeWarning:
		return "⚠"
	case StatusTypeError:
		return "×"
	default:
		return "ℹ"
	}
}

// Toast is a temporary notification with a title and a description.
type Toast struct {
	ID          int
	Title       string
	Description string
	Type        StatusType
	ShowUntil   time.Time
}

// Text renders the toast on one line.
func (t Toast) Text() string {
	s := t.Type.Icon() + " " + t.Title
	if t.Description != "" {
		s += ": " + t.Description
	}
	return s
}

// StatusManager manages temporary status messages
type StatusManager struct {
	Current         *Toast
	DefaultDuration time.Duration
	nextID          int
	now             func() time.Time
}

// NewStatusManager creates a new status manager
func NewStatusManager() *StatusManager {
	return &StatusManager{
		DefaultDuration: 3 * time.Second,
		now:             time.Now,
	}
}

// ClearStatusMsg is sent when the toast with ID expires.
type ClearStatusMsg struct {
	ID int
}

// Show displays a toast and returns the command that expires it.
func (sm *StatusManager) Show(title, description string, statusType StatusType) tea.Cmd {
	sm.nextID++
	id := sm.nextID
	sm.Current = &Toast{
		ID:          id,
		Title:       title,
		Description: description,
		Type:        statusType,
		ShowUntil:   sm.now().Add(sm.DefaultDuration),
	}

	return tea.Tick(sm.DefaultDuration, func(time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}

// ShowSuccess shows a success message
func (sm *StatusManager) ShowSuccess(title, description string) tea.Cmd {
	return sm.Show(title, description, StatusTypeSuccess)
}

// ShowWarning shows a warning message
func (sm *StatusManager) ShowWarning(title, description string) tea.Cmd {
	return sm.Show(title, description, StatusTypeWarning)
}

// ShowError shows an error message
func (sm *StatusManager) ShowError(title, description string) tea.Cmd {
	return sm.Show(title, description, StatusTypeError)
}

// ShowInfo shows an info message
func (sm *StatusManager) ShowInfo(title, description string) tea.Cmd {
	return sm.Show(title, description, StatusTypeInfo)
}

// HandleClear removes the toast when msg belongs to it. A newer toast stays.
func (sm *StatusManager) HandleClear(msg ClearStatusMsg) {
	if sm.Current != nil && sm.Current.ID == msg.ID {
		sm.Current = nil
	}
}

// Clear removes the current status
func (sm *StatusManager) Clear() {
	sm.Current = nil
}

// Active returns the current toast if it has not expired.
func (sm *StatusManager) Active() (Toast, bool) {
	if sm.Current == nil {
		return Toast{}, false
	}
	if sm.now().After(sm.Current.ShowUntil) {
		sm.Current = nil
		return Toast{}, false
	}
	return *sm.Current, true
}
