package tui

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/protext/protext-cli/pkg/utils"
)

// UndoState represents a saved state for undo functionality
type UndoState struct {
	Content     string
	CursorPos   int
	Description string // What action created this state
}

// typingBurst is how long a pause ends one undo step of typing.
const typingBurst = time.Second

// MaxLines is the most lines the textarea holds. Text with more lines is
// refused instead of being cut short.
const MaxLines = 10000

// Fits reports whether text can be held by the editor.
func Fits(text string) bool {
	return strings.Count(text, "\n") < MaxLines
}

// The textarea expands tabs and drops other control runes and U+FFFD, so
// those are stored as runes of the Supplementary Private Use Area-A and
// restored on the way out. The mapping is one rune to one rune, which keeps
// cursor offsets valid on both sides.
const (
	placeholderBase        = 0xF0000
	replacementPlaceholder = placeholderBase + 0xA0
)

func needsPlaceholder(r rune) bool {
	return r != '\n' && (unicode.IsControl(r) || r == utf8.RuneError)
}

func isPlaceholder(r rune) bool {
	return r >= placeholderBase && r <= replacementPlaceholder
}

func encodeText(s string) string {
	if !strings.ContainsFunc(s, needsPlaceholder) {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == utf8.RuneError:
			return replacementPlaceholder
		case needsPlaceholder(r):
			return placeholderBase + r
		}
		return r
	}, s)
}

func decodeText(s string) string {
	if !strings.ContainsFunc(s, isPlaceholder) {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == replacementPlaceholder:
			return utf8.RuneError
		case isPlaceholder(r):
			return r - placeholderBase
		}
		return r
	}, s)
}

// EditorState owns the text area, the explicit selection and the undo stack.
// Offsets are rune offsets into the buffer.
type EditorState struct {
	Textarea      textarea.Model
	Selection     Selection
	UndoStack     []UndoState
	MaxUndoLevels int

	lastTyping time.Time
	typing     bool
	now        func() time.Time
}

// NewEditorState creates the editor with an unbounded textarea. The app
// draws the text itself, so the textarea has no prompt or line numbers.
func NewEditorState(undoLevels int) *EditorState {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.MaxWidth = 0
	ta.SetWidth(80)
	ta.SetHeight(20)
	ta.FocusedStyle.CursorLine = ta.FocusedStyle.CursorLine.UnsetBackground()

	// Keys the app binds to menu actions.
	ta.KeyMap.LineStart.SetKeys("home")
	ta.KeyMap.CharacterForward.SetKeys("right")
	ta.KeyMap.CharacterBackward.SetKeys("left")
	ta.KeyMap.LineNext.SetKeys("down")
	ta.KeyMap.LinePrevious.SetKeys("up")
	ta.KeyMap.DeleteCharacterBackward.SetKeys("backspace")
	ta.KeyMap.Paste.SetEnabled(false)
	ta.KeyMap.TransposeCharacterBackward.SetEnabled(false)
	ta.KeyMap.WordForward.SetKeys("alt+right")
	ta.KeyMap.InputBegin.SetKeys("ctrl+home")
	ta.KeyMap.InputEnd.SetKeys("ctrl+end")
	ta.Focus()

	if undoLevels <= 0 {
		undoLevels = 50
	}
	return &EditorState{
		Textarea:      ta,
		UndoStack:     make([]UndoState, 0, undoLevels),
		MaxUndoLevels: undoLevels,
		now:           time.Now,
	}
}

// Value returns the buffer.
func (e *EditorState) Value() string {
	return decodeText(e.Textarea.Value())
}

// SetValue replaces the buffer and puts the cursor at offset. Callers check
// Fits first; the textarea drops lines past MaxLines.
func (e *EditorState) SetValue(text string, offset int) {
	e.Textarea.SetValue(encodeText(text))
	e.SetCursor(offset)
	e.Selection = Selection{}
	e.typing = false
}

// Cursor returns the cursor as a rune offset.
func (e *EditorState) Cursor() int {
	li := e.Textarea.LineInfo()
	col := li.StartColumn + li.ColumnOffset
	return utils.OffsetFromLineCol(e.Value(), e.Textarea.Line(), col)
}

// SetCursor moves the cursor to a rune offset, clamped to the buffer.
func (e *EditorState) SetCursor(offset int) {
	row, col := utils.LineColFromOffset(e.Value(), max(offset, 0))

	// Each step moves at least one visual row; bound the walk by the
	// number of runes so a stuck textarea cannot spin.
	limit := utils.CountChars(e.Value()) + e.Textarea.LineCount() + 1
	for i := 0; e.Textarea.Line() > row && i < limit; i++ {
		e.Textarea.CursorUp()
	}
	for i := 0; e.Textarea.Line() < row && i < limit; i++ {
		e.Textarea.CursorDown()
	}
	e.Textarea.SetCursor(col)
}

// LineCol returns the 1-based cursor line and column.
func (e *EditorState) LineCol() (int, int) {
	return utils.CursorLineCol(e.Value(), e.Cursor())
}

// Select sets the selection to [start, end) and moves the cursor to end.
func (e *EditorState) Select(start, end int) {
	e.Selection = Selection{Anchor: start, Cursor: end}
	e.SetCursor(end)
	e.typing = false
}

// SelectAll selects the whole buffer.
func (e *EditorState) SelectAll() {
	e.Select(0, utils.CountChars(e.Value()))
}

// ClearSelection drops the selection without touching the text.
func (e *EditorState) ClearSelection() {
	e.Selection = Selection{}
}

// SelectedText returns the selected text, if any.
func (e *EditorState) SelectedText() string {
	if !e.Selection.Active() {
		return ""
	}
	return e.Selection.Text([]rune(e.Value()))
}

// ReplaceRange replaces the runes [start, end) with s and puts the cursor
// after the inserted text. The previous buffer is pushed on the undo stack.
// It reports false, leaving the buffer alone, when the result would not fit.
func (e *EditorState) ReplaceRange(start, end int, s, description string) bool {
	src := []rune(e.Value())
	start = min(max(start, 0), len(src))
	end = min(max(end, start), len(src))

	var b strings.Builder
	b.WriteString(string(src[:start]))
	b.WriteString(s)
	b.WriteString(string(src[end:]))
	text := b.String()
	if !Fits(text) {
		return false
	}

	e.SaveUndoState(description)
	e.SetValue(text, start+utils.CountChars(s))
	return true
}

// InsertAtCursor inserts s at the cursor, replacing the selection if any.
func (e *EditorState) InsertAtCursor(s, description string) bool {
	start, end := e.Cursor(), e.Cursor()
	if e.Selection.Active() {
		start, end = e.Selection.Ordered()
	}
	return e.ReplaceRange(start, end, s, description)
}

// DeleteSelection removes the selected text. It reports false when nothing
// was selected.
func (e *EditorState) DeleteSelection(description string) bool {
	if !e.Selection.Active() {
		return false
	}
	start, end := e.Selection.Ordered()
	e.ReplaceRange(start, end, "", description)
	return true
}

// ReplaceAll swaps the whole buffer for text, keeping the cursor in range.
// Like ReplaceRange it refuses text that does not fit.
func (e *EditorState) ReplaceAll(text, description string) bool {
	if !Fits(text) {
		return false
	}
	e.SaveUndoState(description)
	e.SetValue(text, min(e.Cursor(), utils.CountChars(text)))
	return true
}

// SaveUndoState pushes the current buffer, dropping the oldest entry when full.
func (e *EditorState) SaveUndoState(description string) {
	e.pushUndo(UndoState{Content: e.Value(), CursorPos: e.Cursor(), Description: description})
}

func (e *EditorState) pushUndo(state UndoState) {
	if n := len(e.UndoStack); n > 0 && e.UndoStack[n-1].Content == state.Content {
		return
	}
	if len(e.UndoStack) >= e.MaxUndoLevels {
		e.UndoStack = e.UndoStack[1:]
	}
	e.UndoStack = append(e.UndoStack, state)
}

// Undo restores the last saved state. It reports false when there is none.
func (e *EditorState) Undo() bool {
	n := len(e.UndoStack)
	if n == 0 {
		return false
	}
	state := e.UndoStack[n-1]
	e.UndoStack = e.UndoStack[:n-1]
	e.SetValue(state.Content, state.CursorPos)
	return true
}

// Update forwards a message to the textarea. A key that edits the text
// replaces the selection first, and typing is grouped into undo steps that
// end at a pause or at whitespace. Any other key drops the selection.
func (e *EditorState) Update(msg tea.Msg) tea.Cmd {
	key, isKey := msg.(tea.KeyMsg)
	if !isKey {
		var cmd tea.Cmd
		e.Textarea, cmd = e.Textarea.Update(msg)
		return cmd
	}

	before := e.Value()
	beforeCursor := e.Cursor()
	edits := isEditKey(key)

	if edits {
		now := e.now()
		if !e.typing || now.Sub(e.lastTyping) > typingBurst || key.Type == tea.KeyEnter || key.Type == tea.KeySpace {
			e.SaveUndoState("Typing")
		}
		e.typing = true
		e.lastTyping = now

		if e.Selection.Active() {
			start, end := e.Selection.Ordered()
			src := []rune(before)
			e.Textarea.SetValue(encodeText(string(src[:start]) + string(src[end:])))
			e.SetCursor(start)
			e.Selection = Selection{}
			if key.Type == tea.KeyBackspace || key.Type == tea.KeyDelete {
				return nil
			}
		}
		if key.Type == tea.KeyTab {
			e.Textarea.InsertRune(placeholderBase + '\t')
			return nil
		}
	} else {
		e.typing = false
		e.Selection = Selection{}
	}

	var cmd tea.Cmd
	e.Textarea, cmd = e.Textarea.Update(msg)
	if !edits && e.Value() != before {
		// Line kills and word deletes.
		e.pushUndo(UndoState{Content: before, CursorPos: beforeCursor, Description: "Delete"})
	}
	return cmd
}

func isEditKey(k tea.KeyMsg) bool {
	switch k.Type {
	case tea.KeyRunes, tea.KeySpace, tea.KeyEnter, tea.KeyBackspace, tea.KeyDelete, tea.KeyTab:
		return !k.Alt || k.Paste
	}
	return false
}

// SetSize updates the textarea dimensions
func (e *EditorState) SetSize(width, height int) {
	e.Textarea.SetWidth(width)
	e.Textarea.SetHeight(height)
}
