package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// overlayViews draws overlay on top of base with its top-left corner at
// column x, row y. Cells of base outside the overlay are kept, styles
// included.
func overlayViews(base, overlay string, x, y int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")
	x, y = max(x, 0), max(y, 0)

	for len(baseLines) < y+len(overlayLines) {
		baseLines = append(baseLines, "")
	}

	for i, line := range overlayLines {
		row := baseLines[y+i]
		w := ansi.StringWidth(line)

		left := ansi.Truncate(row, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ""
		if ansi.StringWidth(row) > x+w {
			right = ansi.TruncateLeft(row, x+w, "")
		}
		baseLines[y+i] = left + line + ansi.ResetStyle + right
	}
	return strings.Join(baseLines, "\n")
}

// centerOverlay draws overlay in the middle of a width x height base.
func centerOverlay(base, overlay string, width, height int) string {
	w, h := lipgloss.Size(overlay)
	return overlayViews(base, overlay, (width-w)/2, (height-h)/2)
}
