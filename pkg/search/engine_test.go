package search

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/protext/protext-cli/pkg/models"
)

func TestFind(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		opts     models.FindOptions
		from     int
		expected int
	}{
		{
			name:     "empty term never matches",
			text:     "anything",
			opts:     models.FindOptions{},
			expected: -1,
		},
		{
			name:     "case insensitive by default",
			text:     "Hello World",
			opts:     models.FindOptions{Find: "world"},
			expected: 6,
		},
		{
			name:     "match case rejects different case",
			text:     "Hello World",
			opts:     models.FindOptions{Find: "world", MatchCase: true},
			expected: -1,
		},
		{
			name:     "whole word skips prefix of longer word",
			text:     "Cat cats catalog",
			opts:     models.FindOptions{Find: "cat", WholeWord: true},
			expected: 0,
		},
		{
			name:     "whole word finds nothing after first",
			text:     "Cat cats catalog",
			opts:     models.FindOptions{Find: "cat", WholeWord: true},
			from:     1,
			expected: -1,
		},
		{
			name:     "whole word accepts punctuation boundary",
			text:     "see (cat), then",
			opts:     models.FindOptions{Find: "cat", WholeWord: true},
			expected: 5,
		},
		{
			name:     "without whole word matches inside words",
			text:     "concatenate",
			opts:     models.FindOptions{Find: "cat"},
			expected: 3,
		},
		{
			name:     "starts at from",
			text:     "ab ab ab",
			opts:     models.FindOptions{Find: "ab"},
			from:     1,
			expected: 3,
		},
		{
			name:     "negative from treated as zero",
			text:     "ab",
			opts:     models.FindOptions{Find: "ab"},
			from:     -4,
			expected: 0,
		},
		{
			name:     "rune offsets with multibyte text",
			text:     "héllo wörld",
			opts:     models.FindOptions{Find: "WÖRLD"},
			expected: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Find(tt.text, tt.opts, tt.from))
		})
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		opts     models.FindOptions
		expected []int
	}{
		{"none", "abc", models.FindOptions{Find: "x"}, nil},
		{"non overlapping", "aaaa", models.FindOptions{Find: "aa"}, []int{0, 2}},
		{"whole word", "Cat cats catalog cat.", models.FindOptions{Find: "cat", WholeWord: true}, []int{0, 17}},
		{"empty term", "abc", models.FindOptions{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Matches(tt.text, tt.opts))
		})
	}
}

func TestMatches_LargeBuffer(t *testing.T) {
	const n = 100_000
	text := strings.Repeat("Word ", n)

	for _, opts := range []models.FindOptions{
		{Find: "word"},
		{Find: "Word", MatchCase: true, WholeWord: true},
	} {
		start := time.Now()
		matches := Matches(text, opts)
		elapsed := time.Since(start)

		assert.Len(t, matches, n)
		assert.Equal(t, 5*(n-1), matches[n-1])
		assert.Less(t, elapsed, 2*time.Second, "counting %d matches took %s", n, elapsed)
	}
}

func BenchmarkMatches(b *testing.B) {
	text := strings.Repeat("word ", 50_000)
	opts := models.FindOptions{Find: "word", WholeWord: true}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Matches(text, opts)
	}
}

func TestIsWordBoundary(t *testing.T) {
	for _, r := range []rune{' ', '\n', '\t', '.', ',', '!', '(', '"', '¿'} {
		assert.True(t, IsWordBoundary(r), "%q", r)
	}
	for _, r := range []rune{'a', 'Z', '0', 'é'} {
		assert.False(t, IsWordBoundary(r), "%q", r)
	}
}

func TestEqualFold(t *testing.T) {
	assert.True(t, EqualFold("Cat", "cat", false))
	assert.False(t, EqualFold("Cat", "cat", true))
	assert.True(t, EqualFold("cat", "cat", true))
}
