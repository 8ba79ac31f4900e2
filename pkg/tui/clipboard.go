package tui

import "github.com/atotto/clipboard"

// Clipboard is the system clipboard used by cut, copy and paste.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// SystemClipboard returns the clipboard of the desktop session.
func SystemClipboard() Clipboard {
	return systemClipboard{}
}
