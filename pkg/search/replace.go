package search

import (
	"regexp"

	"github.com/protext/protext-cli/pkg/models"
)

// ReplaceAll substitutes every occurrence of opts.Find with opts.Replace in a
// single pass and reports whether the text changed.
//
// The term is matched literally, anchored with \b when WholeWord is set and
// case-insensitively unless MatchCase is set. The replacement is literal too.
func ReplaceAll(text string, opts models.FindOptions) (string, bool) {
	re, err := compile(opts)
	if err != nil {
		return text, false
	}
	out := re.ReplaceAllLiteralString(text, opts.Replace)
	return out, out != text
}

// CountAll returns how many replacements ReplaceAll would make.
func CountAll(text string, opts models.FindOptions) int {
	re, err := compile(opts)
	if err != nil {
		return 0
	}
	return len(re.FindAllStringIndex(text, -1))
}

func compile(opts models.FindOptions) (*regexp.Regexp, error) {
	if opts.Find == "" {
		return nil, errEmptyTerm
	}
	pattern := regexp.QuoteMeta(opts.Find)
	if opts.WholeWord {
		pattern = `\b` + pattern + `\b`
	}
	if !opts.MatchCase {
		pattern = `(?i)` + pattern
	}
	return regexp.Compile(pattern)
}
