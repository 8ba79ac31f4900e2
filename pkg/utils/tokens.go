package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var codeFence = regexp.MustCompile("```[\\s\\S]*?```")

// EstimateTokens gives a rough token count for text sent to the model.
// It averages a characters/4 estimate with a words*1.3 estimate and adds a
// little extra for fenced code, which tokenizes more densely.
func EstimateTokens(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	byChars := len(text) / 4
	byWords := int(float64(CountWords(text)) * 1.3)
	estimate := (byChars + byWords) / 2

	for _, block := range codeFence.FindAllString(text, -1) {
		estimate += len(block)/3 - len(block)/4
	}

	if estimate < 1 {
		estimate = 1
	}
	return estimate
}

// FormatTokenCount formats the token count for display
func FormatTokenCount(tokens int) string {
	switch {
	case tokens < 1000:
		return fmt.Sprintf("~%d tokens", tokens)
	case tokens < 10000:
		return fmt.Sprintf("~%.1fK tokens", float64(tokens)/1000)
	default:
		return fmt.Sprintf("~%.0fK tokens", float64(tokens)/1000)
	}
}
