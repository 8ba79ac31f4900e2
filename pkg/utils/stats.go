// Package utils holds small text helpers shared by the editor and the CLI.
package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/protext/protext-cli/pkg/models"
)

// CountWords returns the number of whitespace separated words in text.
// Blank text has zero words.
func CountWords(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}
	return len(strings.Fields(trimmed))
}

// CountChars returns the number of characters (runes) in text.
func CountChars(text string) int {
	return utf8.RuneCountInString(text)
}

// CountLines returns the number of lines in text. Empty text has one line.
func CountLines(text string) int {
	return strings.Count(text, "\n") + 1
}

// CursorLineCol converts a rune offset into a 1-based line and column.
// Offsets past the end are clamped.
func CursorLineCol(text string, offset int) (line, col int) {
	line, col = 1, 1
	i := 0
	for _, r := range text {
		if i >= offset {
			break
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
		i++
	}
	return line, col
}

// OffsetFromLineCol converts a 0-based row and column into a rune offset.
// Rows and columns past the end are clamped.
func OffsetFromLineCol(text string, row, col int) int {
	lines := strings.Split(text, "\n")
	if row < 0 {
		row = 0
	}
	if row >= len(lines) {
		row = len(lines) - 1
		col = utf8.RuneCountInString(lines[row])
	}

	offset := 0
	for i := 0; i < row; i++ {
		offset += utf8.RuneCountInString(lines[i]) + 1
	}
	if n := utf8.RuneCountInString(lines[row]); col > n {
		col = n
	}
	if col < 0 {
		col = 0
	}
	return offset + col
}

// LineColFromOffset converts a rune offset into a 0-based row and column.
func LineColFromOffset(text string, offset int) (row, col int) {
	line, c := CursorLineCol(text, offset)
	return line - 1, c - 1
}

// Stats builds the status bar data for text with the cursor at offset.
func Stats(text string, offset int) models.StatusBarData {
	line, col := CursorLineCol(text, offset)
	return models.StatusBarData{
		Line:      line,
		Column:    col,
		WordCount: CountWords(text),
		CharCount: CountChars(text),
	}
}
