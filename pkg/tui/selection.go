package tui

// Selection is a range of rune offsets into the buffer. Anchor is where the
// selection started and Cursor where it extends to.
type Selection struct {
	Anchor, Cursor int
}

// Active reports whether the selection covers a non-empty range.
func (s Selection) Active() bool {
	return s.Anchor != s.Cursor
}

// Ordered returns the selection bounds in ascending order (start, end).
func (s Selection) Ordered() (start, end int) {
	if s.Anchor <= s.Cursor {
		return s.Anchor, s.Cursor
	}
	return s.Cursor, s.Anchor
}

// Text extracts the selected runes of content.
func (s Selection) Text(content []rune) string {
	start, end := s.Ordered()
	start = max(start, 0)
	end = min(end, len(content))
	if start >= end {
		return ""
	}
	return string(content[start:end])
}

// Contains reports whether offset lies inside the selection.
func (s Selection) Contains(offset int) bool {
	start, end := s.Ordered()
	return offset >= start && offset < end
}
