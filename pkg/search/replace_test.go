package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/protext/protext-cli/pkg/models"
)

func TestReplaceAll(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		opts        models.FindOptions
		expected    string
		wantChanged bool
	}{
		{
			name:        "case insensitive",
			text:        "Cat cat CAT",
			opts:        models.FindOptions{Find: "cat", Replace: "dog"},
			expected:    "dog dog dog",
			wantChanged: true,
		},
		{
			name:        "match case",
			text:        "Cat cat CAT",
			opts:        models.FindOptions{Find: "cat", Replace: "dog", MatchCase: true},
			expected:    "Cat dog CAT",
			wantChanged: true,
		},
		{
			name:        "whole word",
			text:        "Cat cats catalog",
			opts:        models.FindOptions{Find: "cat", Replace: "dog", WholeWord: true},
			expected:    "dog cats catalog",
			wantChanged: true,
		},
		{
			name:        "regexp metacharacters are literal",
			text:        "a.b axb a.b",
			opts:        models.FindOptions{Find: "a.b", Replace: "c"},
			expected:    "c axb c",
			wantChanged: true,
		},
		{
			name:        "replacement is literal",
			text:        "price",
			opts:        models.FindOptions{Find: "price", Replace: "$1"},
			expected:    "$1",
			wantChanged: true,
		},
		{
			name:     "no instances",
			text:     "hello",
			opts:     models.FindOptions{Find: "xyz", Replace: "abc"},
			expected: "hello",
		},
		{
			name:     "empty term",
			text:     "hello",
			opts:     models.FindOptions{Replace: "abc"},
			expected: "hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := ReplaceAll(tt.text, tt.opts)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.wantChanged, changed)
		})
	}
}

func TestReplaceAll_IdempotentOnceTermIsGone(t *testing.T) {
	opts := models.FindOptions{Find: "foo", Replace: "bar"}

	first, changed := ReplaceAll("foo and foo", opts)
	assert.True(t, changed)

	second, changed := ReplaceAll(first, opts)
	assert.False(t, changed)
	assert.Equal(t, first, second)
}

func TestCountAll(t *testing.T) {
	assert.Equal(t, 2, CountAll("foo Foo", models.FindOptions{Find: "foo"}))
	assert.Equal(t, 1, CountAll("foo Foo", models.FindOptions{Find: "foo", MatchCase: true}))
	assert.Equal(t, 0, CountAll("foo", models.FindOptions{}))
}
