package models

import "strings"

// UntitledName is the file name of a document that was never saved or opened.
const UntitledName = "Untitled"

// Document is the buffer being edited plus where it came from.
type Document struct {
	Text     string
	FileName string
	Path     string // empty until the document is opened from or saved to disk
	IsSaved  bool
	// LineEnding is written in place of each "\n" on save. Empty means "\n".
	LineEnding string
}

// CRLF is the LineEnding of files read with Windows line endings.
const CRLF = "\r\n"

// Encoded returns the text as it is written to disk.
func (d *Document) Encoded() string {
	if d.LineEnding == "" || d.LineEnding == "\n" {
		return d.Text
	}
	return strings.ReplaceAll(d.Text, "\n", d.LineEnding)
}

// NewDocument returns the empty "Untitled" document shown on start and after New.
func NewDocument() *Document {
	return &Document{
		FileName: UntitledName,
		IsSaved:  true,
	}
}

// SetText replaces the buffer and marks the document unsaved when it changed.
func (d *Document) SetText(text string) {
	if text == d.Text {
		return
	}
	d.Text = text
	d.IsSaved = false
}

// Title returns the window title, e.g. "notes.txt - Unsaved | ProText AI".
func (d *Document) Title() string {
	name := d.FileName
	if name == "" {
		name = UntitledName
	}
	if !d.IsSaved {
		name += " - Unsaved"
	}
	return name + " | ProText AI"
}

// FindOptions are the inputs of the find/replace dialog.
type FindOptions struct {
	Find      string `yaml:"find"`
	Replace   string `yaml:"replace"`
	MatchCase bool   `yaml:"match_case"`
	WholeWord bool   `yaml:"whole_word"`
}

// SearchState carries a find session across Find Next invocations.
// LastMatch is nil until something was found with the current options.
type SearchState struct {
	Options   FindOptions
	LastMatch *int
}

// StatusBarData is what the status bar shows for the cursor and buffer.
type StatusBarData struct {
	Line      int
	Column    int
	WordCount int
	CharCount int
}

// OutputMode selects what the output panel displays.
type OutputMode string

const (
	OutputModeOutput          OutputMode = "output"
	OutputModeHTMLPreview     OutputMode = "html-preview"
	OutputModeMarkdownPreview OutputMode = "markdown-preview"
)
