package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditorState_Undo(t *testing.T) {
	tests := []struct {
		name            string
		initialContent  string
		changes         []string
		undoCount       int
		expectedContent string
		expectSuccess   bool
	}{
		{
			name:            "undo single change",
			initialContent:  "original",
			changes:         []string{"modified"},
			undoCount:       1,
			expectedContent: "original",
			expectSuccess:   true,
		},
		{
			name:            "undo multiple changes",
			initialContent:  "start",
			changes:         []string{"first change", "second change", "third change"},
			undoCount:       2,
			expectedContent: "first change",
			expectSuccess:   true,
		},
		{
			name:            "undo with no history",
			initialContent:  "content",
			undoCount:       1,
			expectedContent: "content",
			expectSuccess:   false,
		},
		{
			name:            "undo more than history",
			initialContent:  "initial",
			changes:         []string{"change1", "change2"},
			undoCount:       5,
			expectedContent: "initial",
			expectSuccess:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEditorState(10)
			e.SetValue(tt.initialContent, 0)

			for _, change := range tt.changes {
				e.ReplaceAll(change, "test change")
			}

			var lastSuccess bool
			for i := 0; i < tt.undoCount; i++ {
				lastSuccess = e.Undo()
			}

			assert.Equal(t, tt.expectSuccess, lastSuccess)
			assert.Equal(t, tt.expectedContent, e.Value())
		})
	}
}

func TestEditorState_UndoBounded(t *testing.T) {
	e := NewEditorState(3)
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		e.ReplaceAll(s, "change")
	}
	assert.Len(t, e.UndoStack, 3)

	for e.Undo() {
	}
	assert.Equal(t, "b", e.Value())
}

func TestEditorState_Cursor(t *testing.T) {
	e := NewEditorState(10)
	e.SetValue("first line\nsecond\nthird", 0)

	tests := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{0, 1, 1},
		{5, 1, 6},
		{11, 2, 1},
		{17, 2, 7},
		{23, 3, 6},
		{100, 3, 6},
	}

	for _, tt := range tests {
		e.SetCursor(tt.offset)
		line, col := e.LineCol()
		assert.Equal(t, tt.wantLine, line, "line at offset %d", tt.offset)
		assert.Equal(t, tt.wantCol, col, "col at offset %d", tt.offset)
		assert.Equal(t, min(tt.offset, 23), e.Cursor())
	}
}

func TestEditorState_Selection(t *testing.T) {
	e := NewEditorState(10)
	e.SetValue("héllo world", 0)

	e.Select(6, 11)
	assert.Equal(t, "world", e.SelectedText())
	assert.Equal(t, 11, e.Cursor())

	e.InsertAtCursor("there", "Paste")
	assert.Equal(t, "héllo there", e.Value())
	assert.False(t, e.Selection.Active())
	assert.Equal(t, 11, e.Cursor())

	e.SelectAll()
	assert.Equal(t, "héllo there", e.SelectedText())
	require.True(t, e.DeleteSelection("Cut"))
	assert.Empty(t, e.Value())
	assert.False(t, e.DeleteSelection("Cut"))

	require.True(t, e.Undo())
	assert.Equal(t, "héllo there", e.Value())
}

func TestEditorState_TypingReplacesSelection(t *testing.T) {
	e := NewEditorState(10)
	e.SetValue("cat dog", 0)
	e.Select(4, 7)

	e.Update(keyMsg("x"))
	assert.Equal(t, "cat x", e.Value())

	require.True(t, e.Undo())
	assert.Equal(t, "cat dog", e.Value())
}

func TestEditorState_BackspaceDeletesSelection(t *testing.T) {
	e := NewEditorState(10)
	e.SetValue("cat dog", 0)
	e.Select(0, 4)

	e.Update(keyMsg("backspace"))
	assert.Equal(t, "dog", e.Value())
	assert.Equal(t, 0, e.Cursor())
}

func TestEditorState_MovementClearsSelection(t *testing.T) {
	e := NewEditorState(10)
	e.SetValue("cat dog", 0)
	e.Select(0, 3)

	e.Update(keyMsg("left"))
	assert.False(t, e.Selection.Active())
	assert.Equal(t, "cat dog", e.Value())
}

func TestEditorState_TypingGroupsUndo(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	e := NewEditorState(10)
	e.now = func() time.Time { return now }

	for _, k := range []string{"a", "b", "c"} {
		e.Update(keyMsg(k))
	}
	e.Update(keyMsg("space"))
	e.Update(keyMsg("d"))

	now = now.Add(2 * time.Second)
	e.Update(keyMsg("e"))
	assert.Equal(t, "abc de", e.Value())

	// Three steps: "abc", then " d" after the space, then "e" after the pause.
	require.True(t, e.Undo())
	assert.Equal(t, "abc d", e.Value())
	require.True(t, e.Undo())
	assert.Equal(t, "abc", e.Value())
	require.True(t, e.Undo())
	assert.Equal(t, "", e.Value())
	assert.False(t, e.Undo())
}

func TestEditorState_KeepsTextVerbatim(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"tabs", "func main() {\n\treturn\n}\n"},
		{"carriage returns", "a\r\nb\r"},
		{"control runes", "form\ffeed\x00nul\x7fdel\u0085nel"},
		{"replacement rune", "bad \uFFFD byte"},
		{"plain", "héllo wörld"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEditorState(10)
			e.SetValue(tt.text, 0)
			assert.Equal(t, tt.text, e.Value())

			// Offsets count each kept rune once.
			n := len([]rune(tt.text))
			e.SetCursor(n)
			assert.Equal(t, n, e.Cursor())

			require.True(t, e.InsertAtCursor("\t!", "test"))
			assert.Equal(t, tt.text+"\t!", e.Value())
		})
	}
}

func TestEditorState_TabKeyInsertsTab(t *testing.T) {
	e := NewEditorState(10)
	e.SetValue("x", 0)

	e.Update(keyMsg("tab"))
	assert.Equal(t, "\tx", e.Value())
	assert.Equal(t, 1, e.Cursor())

	require.True(t, e.Undo())
	assert.Equal(t, "x", e.Value())
}

func TestEditorState_RefusesTextOverLineLimit(t *testing.T) {
	largest := strings.Repeat("x\n", MaxLines-1) + "x"
	tooLarge := largest + "\n"
	assert.True(t, Fits(largest))
	assert.False(t, Fits(tooLarge))

	e := NewEditorState(10)
	e.SetValue("keep", 0)

	assert.False(t, e.ReplaceAll(tooLarge, "test"))
	assert.False(t, e.InsertAtCursor(tooLarge, "test"))
	assert.False(t, e.ReplaceRange(0, 4, tooLarge, "test"))
	assert.Equal(t, "keep", e.Value())
	assert.Empty(t, e.UndoStack)

	require.True(t, e.ReplaceAll(largest, "test"))
	assert.Equal(t, largest, e.Value())
}
