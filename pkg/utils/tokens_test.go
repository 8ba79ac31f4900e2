package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty", "", 0},
		{"whitespace only", "   \n\t", 0},
		{"single character", "a", 1},
		{"sentence", "The quick brown fox jumps over the lazy dog.", 11},
		{"multibyte counts bytes", "héllo wörld", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateTokens(tt.input))
		})
	}
}

func TestEstimateTokensWeighsCodeFences(t *testing.T) {
	code := "func main() {\n    fmt.Println(\"Hello, World!\")\n}"
	fenced := "```go\n" + code + "\n```"
	plain := "~~~go\n" + code + "\n~~~"

	assert.Greater(t, EstimateTokens(fenced), EstimateTokens(plain))
}

func TestEstimateTokensGrowsWithText(t *testing.T) {
	short := EstimateTokens("Summarize this paragraph.")
	long := EstimateTokens(strings.Repeat("Summarize this paragraph. ", 40))
	assert.Greater(t, long, short*30)
}

func TestFormatTokenCount(t *testing.T) {
	tests := []struct {
		tokens int
		want   string
	}{
		{0, "~0 tokens"},
		{999, "~999 tokens"},
		{1500, "~1.5K tokens"},
		{10000, "~10K tokens"},
		{123456, "~123K tokens"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTokenCount(tt.tokens))
		})
	}
}
