package search

import (
	"github.com/protext/protext-cli/pkg/models"
)

// FindNext advances the search session in state and returns the next match.
//
// A search whose options differ from the session's (or a session without a
// previous match) starts at cursor; a repeated search starts one rune after
// the previous match. When nothing is found up to the end of the buffer a
// second pass from the start is accepted only if it lands strictly before the
// start offset. On failure the session forgets its previous match.
func FindNext(text string, opts models.FindOptions, state *models.SearchState, cursor int) (Match, bool) {
	if opts.Find == "" {
		return Match{}, false
	}
	b := prepare([]rune(text), opts)
	n := len(b.term)

	isNew := state.LastMatch == nil || state.Options != opts
	start := cursor
	from := cursor
	if !isNew {
		start = *state.LastMatch
		from = start + 1
	}

	idx := b.next(from)
	if idx == -1 {
		if wrapped := b.next(0); wrapped != -1 && wrapped < start {
			idx = wrapped
		}
	}

	state.Options = opts
	if idx == -1 {
		state.LastMatch = nil
		return Match{}, false
	}
	state.LastMatch = &idx
	return Match{Start: idx, End: idx + n}, true
}

// ReplaceResult describes the outcome of ReplaceOne.
type ReplaceResult struct {
	Text     string
	Replaced bool
	Match    Match // next match, valid when Found
	Found    bool
}

// ReplaceOne replaces the current selection when it equals the search term,
// then moves on to the next match. Without a matching selection it behaves as
// FindNext.
func ReplaceOne(text string, opts models.FindOptions, selection *Match, state *models.SearchState, cursor int) ReplaceResult {
	res := ReplaceResult{Text: text}
	if opts.Find == "" {
		return res
	}

	src := []rune(text)
	if selection != nil && selection.Len() > 0 && selection.End <= len(src) {
		selected := string(src[selection.Start:selection.End])
		if EqualFold(selected, opts.Find, opts.MatchCase) {
			repl := []rune(opts.Replace)
			out := make([]rune, 0, len(src)-selection.Len()+len(repl))
			out = append(out, src[:selection.Start]...)
			out = append(out, repl...)
			out = append(out, src[selection.End:]...)

			res.Text = string(out)
			res.Replaced = true
			// Continue as a fresh search after the inserted text.
			state.LastMatch = nil
			res.Match, res.Found = FindNext(res.Text, opts, state, selection.Start+len(repl))
			return res
		}
	}

	res.Match, res.Found = FindNext(text, opts, state, cursor)
	return res
}
