package tui

import (
	"runtime"
	"strings"
)

// OSType represents the operating system type
type OSType int

const (
	OSMac OSType = iota
	OSLinux
	OSWindows
	OSUnknown
)

// GetOS returns the current operating system type
func GetOS() OSType {
	return osFromGOOS(runtime.GOOS)
}

func osFromGOOS(goos string) OSType {
	switch goos {
	case "darwin":
		return OSMac
	case "linux":
		return OSLinux
	case "windows":
		return OSWindows
	default:
		return OSUnknown
	}
}

// ShortcutKey represents a keyboard shortcut with OS-specific variations
type ShortcutKey struct {
	Mac        string
	Linux      string
	Windows    string
	Default    string   // Fallback if OS-specific not defined
	Alternates []string // Extra keys accepted on every OS
}

// Get returns the appropriate shortcut for the current OS
func (s ShortcutKey) Get() string {
	return s.getFor(GetOS())
}

func (s ShortcutKey) getFor(os OSType) string {
	switch os {
	case OSMac:
		if s.Mac != "" {
			return s.Mac
		}
	case OSLinux:
		if s.Linux != "" {
			return s.Linux
		}
	case OSWindows:
		if s.Windows != "" {
			return s.Windows
		}
	}
	return s.Default
}

// Matches reports whether key (as produced by tea.KeyMsg.String) triggers
// the shortcut.
func (s ShortcutKey) Matches(key string) bool {
	if key == "" {
		return false
	}
	if key == s.Get() {
		return true
	}
	for _, alt := range s.Alternates {
		if key == alt {
			return true
		}
	}
	return false
}

// Shortcuts contains all keyboard shortcuts with OS-specific variations
var Shortcuts = struct {
	// File
	New   ShortcutKey
	Open  ShortcutKey
	Save  ShortcutKey
	Print ShortcutKey
	Exit  ShortcutKey

	// Edit
	Undo      ShortcutKey
	Cut       ShortcutKey
	Copy      ShortcutKey
	Paste     ShortcutKey
	Delete    ShortcutKey
	Find      ShortcutKey
	FindNext  ShortcutKey
	Replace   ShortcutKey
	SelectAll ShortcutKey
	TimeDate  ShortcutKey

	// View
	ZoomIn      ShortcutKey
	ZoomOut     ShortcutKey
	RestoreZoom ShortcutKey

	// Run
	RunCode ShortcutKey

	// System
	Menu    ShortcutKey
	Cancel  ShortcutKey
	Confirm ShortcutKey
}{
	New:   ShortcutKey{Default: "ctrl+n"},
	Open:  ShortcutKey{Default: "ctrl+o"},
	Save:  ShortcutKey{Default: "ctrl+s"},
	Print: ShortcutKey{Default: "ctrl+p"},
	Exit:  ShortcutKey{Default: "ctrl+q"},

	Undo: ShortcutKey{
		Default:    "ctrl+z",
		Alternates: []string{"alt+z"}, // ctrl+z suspends in some terminals
	},
	Cut:   ShortcutKey{Default: "ctrl+x"},
	Copy:  ShortcutKey{Default: "ctrl+c"},
	Paste: ShortcutKey{Default: "ctrl+v"},
	Delete: ShortcutKey{
		Default: "delete",
	},
	Find: ShortcutKey{Default: "ctrl+f"},
	FindNext: ShortcutKey{
		Default:    "f3",
		Alternates: []string{"ctrl+g"},
	},
	Replace:   ShortcutKey{Default: "ctrl+h"},
	SelectAll: ShortcutKey{Default: "ctrl+a"},
	TimeDate:  ShortcutKey{Default: "f5"},

	ZoomIn: ShortcutKey{
		Default:    "alt+=",
		Alternates: []string{"alt++"},
	},
	ZoomOut:     ShortcutKey{Default: "alt+-"},
	RestoreZoom: ShortcutKey{Default: "alt+0"},

	RunCode: ShortcutKey{Default: "ctrl+r"},

	Menu:    ShortcutKey{Default: "f10"},
	Cancel:  ShortcutKey{Default: "esc"},
	Confirm: ShortcutKey{Default: "enter"},
}

// GetOSName returns a friendly name for the current OS
func GetOSName() string {
	switch GetOS() {
	case OSMac:
		return "macOS"
	case OSLinux:
		return "Linux"
	case OSWindows:
		return "Windows"
	default:
		return "Unknown"
	}
}

// FormatShortcutForHelp formats a shortcut key for display in menus and help
func FormatShortcutForHelp(key ShortcutKey) string {
	return formatShortcut(key.Get(), GetOS())
}

func formatShortcut(shortcut string, os OSType) string {
	if shortcut == "" {
		return ""
	}
	if os == OSMac {
		shortcut = strings.ReplaceAll(shortcut, "alt+", "⌥")
	} else {
		shortcut = strings.ReplaceAll(shortcut, "alt+", "Alt+")
	}
	shortcut = strings.ReplaceAll(shortcut, "ctrl+", "Ctrl+")
	shortcut = strings.ReplaceAll(shortcut, "shift+", "Shift+")

	if strings.HasPrefix(shortcut, "f") && len(shortcut) <= 3 {
		return strings.ToUpper(shortcut)
	}
	if shortcut == "delete" {
		return "Del"
	}

	// Upper-case the final letter: Ctrl+n -> Ctrl+N
	if i := strings.LastIndex(shortcut, "+"); i >= 0 && i == len(shortcut)-2 {
		return shortcut[:i+1] + strings.ToUpper(shortcut[i+1:])
	}
	return shortcut
}
