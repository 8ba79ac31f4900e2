// Package search implements find, find-next and replace over an editor buffer.
//
// All offsets are rune offsets into the buffer text, which is what the editor
// uses for its cursor.
package search

import (
	"unicode"

	"github.com/protext/protext-cli/pkg/models"
)

// Match is a half-open rune range [Start, End) of the buffer.
type Match struct {
	Start int
	End   int
}

// Len returns the number of runes covered by the match.
func (m Match) Len() int {
	return m.End - m.Start
}

// Find returns the rune offset of the first match of opts.Find at or after
// from, or -1 when there is none. An empty term never matches.
func Find(text string, opts models.FindOptions, from int) int {
	return prepare([]rune(text), opts).next(from)
}

// Matches returns the offsets of all non-overlapping matches, in order.
func Matches(text string, opts models.FindOptions) []int {
	b := prepare([]rune(text), opts)
	step := len(b.term)
	if step == 0 {
		return nil
	}

	var out []int
	for i := b.next(0); i != -1; i = b.next(i + step) {
		out = append(out, i)
	}
	return out
}

// scanner holds a buffer and a term folded once for repeated searches.
type scanner struct {
	src       []rune
	hay       []rune
	term      []rune
	wholeWord bool
}

func prepare(src []rune, opts models.FindOptions) *scanner {
	s := &scanner{src: src, hay: src, term: []rune(opts.Find), wholeWord: opts.WholeWord}
	if !opts.MatchCase {
		s.hay = lowerRunes(src)
		s.term = lowerRunes(s.term)
	}
	return s
}

// next returns the first match at or after from, or -1.
func (s *scanner) next(from int) int {
	if len(s.term) == 0 {
		return -1
	}
	from = max(from, 0)

	for i := indexFrom(s.hay, s.term, from); i != -1; i = indexFrom(s.hay, s.term, i+1) {
		if !s.wholeWord || isWholeWord(s.src, i, len(s.term)) {
			return i
		}
	}
	return -1
}

// indexFrom is strings.Index over runes, starting at from.
func indexFrom(hay, term []rune, from int) int {
	n := len(term)
	first := term[0]
	for i := from; i+n <= len(hay); i++ {
		if hay[i] == first && equalRunes(hay[i:i+n], term) {
			return i
		}
	}
	return -1
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// lowerRunes lower-cases rune by rune so offsets stay aligned with the source.
func lowerRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

// isWholeWord reports whether the n runes at i are bounded on both sides by
// the buffer edge, whitespace or punctuation.
func isWholeWord(src []rune, i, n int) bool {
	if i > 0 && !IsWordBoundary(src[i-1]) {
		return false
	}
	if end := i + n; end < len(src) && !IsWordBoundary(src[end]) {
		return false
	}
	return true
}

// IsWordBoundary reports whether r may sit next to a whole-word match.
func IsWordBoundary(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r)
}

// EqualFold compares a and b the way a search with opts compares text.
func EqualFold(a, b string, matchCase bool) bool {
	if matchCase {
		return a == b
	}
	return equalRunes(lowerRunes([]rune(a)), lowerRunes([]rune(b)))
}
