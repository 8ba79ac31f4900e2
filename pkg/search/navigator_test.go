package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protext/protext-cli/pkg/models"
)

func TestFindNext_NewSearchStartsAtCursor(t *testing.T) {
	state := &models.SearchState{}
	opts := models.FindOptions{Find: "ab"}

	m, ok := FindNext("ab ab ab", opts, state, 2)
	require.True(t, ok)
	assert.Equal(t, Match{Start: 3, End: 5}, m)
	require.NotNil(t, state.LastMatch)
	assert.Equal(t, 3, *state.LastMatch)
}

func TestFindNext_RepeatAdvancesAndWraps(t *testing.T) {
	state := &models.SearchState{}
	opts := models.FindOptions{Find: "ab"}
	text := "ab ab ab"

	var got []int
	for i := 0; i < 4; i++ {
		m, ok := FindNext(text, opts, state, 0)
		require.True(t, ok)
		got = append(got, m.Start)
	}
	assert.Equal(t, []int{0, 3, 6, 0}, got)
}

func TestFindNext_SingleMatchDoesNotWrapOntoItself(t *testing.T) {
	state := &models.SearchState{}
	opts := models.FindOptions{Find: "cat"}
	text := "one cat here"

	m, ok := FindNext(text, opts, state, 0)
	require.True(t, ok)
	assert.Equal(t, 4, m.Start)

	// The wrapped match is not strictly before the previous one.
	_, ok = FindNext(text, opts, state, 0)
	assert.False(t, ok)
	assert.Nil(t, state.LastMatch)

	// After a miss the next call is a new search again.
	m, ok = FindNext(text, opts, state, 0)
	require.True(t, ok)
	assert.Equal(t, 4, m.Start)
}

func TestFindNext_ChangedOptionsRestartAtCursor(t *testing.T) {
	state := &models.SearchState{}
	text := "ab AB ab"

	_, ok := FindNext(text, models.FindOptions{Find: "ab"}, state, 0)
	require.True(t, ok)
	_, ok = FindNext(text, models.FindOptions{Find: "ab"}, state, 0)
	require.True(t, ok)
	assert.Equal(t, 3, *state.LastMatch)

	m, ok := FindNext(text, models.FindOptions{Find: "ab", MatchCase: true}, state, 1)
	require.True(t, ok)
	assert.Equal(t, 6, m.Start)
}

func TestFindNext_NotFound(t *testing.T) {
	state := &models.SearchState{}
	_, ok := FindNext("hello", models.FindOptions{Find: "xyz"}, state, 0)
	assert.False(t, ok)
	assert.Nil(t, state.LastMatch)

	_, ok = FindNext("hello", models.FindOptions{}, state, 0)
	assert.False(t, ok)
}

func TestReplaceOne(t *testing.T) {
	opts := models.FindOptions{Find: "cat", Replace: "dog"}

	t.Run("replaces matching selection and moves on", func(t *testing.T) {
		state := &models.SearchState{}
		sel := &Match{Start: 0, End: 3}
		res := ReplaceOne("Cat and cat", opts, sel, state, 3)

		assert.True(t, res.Replaced)
		assert.Equal(t, "dog and cat", res.Text)
		require.True(t, res.Found)
		assert.Equal(t, Match{Start: 8, End: 11}, res.Match)
	})

	t.Run("match case rejects selection with different case", func(t *testing.T) {
		state := &models.SearchState{}
		sel := &Match{Start: 0, End: 3}
		o := opts
		o.MatchCase = true
		res := ReplaceOne("Cat and cat", o, sel, state, 3)

		assert.False(t, res.Replaced)
		assert.Equal(t, "Cat and cat", res.Text)
		require.True(t, res.Found)
		assert.Equal(t, 8, res.Match.Start)
	})

	t.Run("no selection behaves as find next", func(t *testing.T) {
		state := &models.SearchState{}
		res := ReplaceOne("a cat", opts, nil, state, 0)

		assert.False(t, res.Replaced)
		require.True(t, res.Found)
		assert.Equal(t, Match{Start: 2, End: 5}, res.Match)
	})

	t.Run("replacing last occurrence reports not found", func(t *testing.T) {
		state := &models.SearchState{}
		sel := &Match{Start: 2, End: 5}
		res := ReplaceOne("a cat", opts, sel, state, 5)

		assert.True(t, res.Replaced)
		assert.Equal(t, "a dog", res.Text)
		assert.False(t, res.Found)
	})
}
