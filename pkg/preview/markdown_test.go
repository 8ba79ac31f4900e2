package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownRenderer(t *testing.T) {
	r := NewMarkdownRenderer(false)

	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "heading drops markers",
			input:    "# Title\n\nBody text.",
			contains: []string{"Title", "Body text."},
			excludes: []string{"# Title"},
		},
		{
			name:     "emphasis and code",
			input:    "Some *em* and **strong** and `code`.",
			contains: []string{"em", "strong", "code"},
			excludes: []string{"*", "`"},
		},
		{
			name:     "bullet list",
			input:    "- one\n- two",
			contains: []string{"• one\n• two"},
		},
		{
			name:     "ordered list keeps start",
			input:    "3. three\n4. four",
			contains: []string{"3. three\n4. four"},
		},
		{
			name:     "link shows destination",
			input:    "[site](https://example.com)",
			contains: []string{"site (https://example.com)"},
		},
		{
			name:     "fenced code is indented",
			input:    "```\nline1\nline2\n```",
			contains: []string{"    line1\n    line2"},
		},
		{
			name:     "blockquote",
			input:    "> quoted",
			contains: []string{"│ quoted"},
		},
		{
			name:     "task list",
			input:    "- [x] done\n- [ ] todo",
			contains: []string{"[x] done", "[ ] todo"},
		},
		{
			name:     "table",
			input:    "| a | bb |\n|---|----|\n| 1 | 2 |",
			contains: []string{"a │ bb", "1 │ 2"},
		},
		{
			name:     "image",
			input:    "![a fox](data:image/png;base64,AAAA)",
			contains: []string{"[image: a fox]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(r.Render(tt.input, 80))
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, got, s)
			}
		})
	}
}

func TestMarkdownRenderer_Wraps(t *testing.T) {
	r := NewMarkdownRenderer(true)
	got := stripANSI(r.Render(strings.Repeat("word ", 30), 20))
	for _, line := range strings.Split(got, "\n") {
		assert.LessOrEqual(t, len(line), 20)
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
