package ai

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcher_EmptyBufferIssuesNoRequest(t *testing.T) {
	gen := &fakeGenerator{json: `{"summary":"s"}`}
	d := NewDispatcher(gen, quietLogger(), 0)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := d.Do(context.Background(), KindSummarize, text)
		assert.ErrorIs(t, err, ErrEmptyBuffer)
	}
	assert.Equal(t, 0, gen.calls())
	assert.False(t, d.AnyInFlight())
}

func TestDispatcher_Run(t *testing.T) {
	tests := []struct {
		kind     Kind
		json     string
		expected Result
	}{
		{KindSummarize, `{"summary":"short"}`, Result{Kind: KindSummarize, Text: "short"}},
		{KindParaphrase, `{"paraphrasedText":"other words"}`, Result{Kind: KindParaphrase, Text: "other words"}},
		{KindExpand, `{"expandedText":"longer"}`, Result{Kind: KindExpand, Text: "longer"}},
		{KindGrammar, `{"correctedText":"fixed","correctionsProposed":true}`, Result{Kind: KindGrammar, Text: "fixed", CorrectionsProposed: true}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			d := NewDispatcher(&fakeGenerator{json: tt.json}, quietLogger(), time.Minute)
			got, err := d.Do(context.Background(), tt.kind, "some text")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.False(t, d.InFlight(tt.kind))
		})
	}
}

func TestDispatcher_FailureClearsFlag(t *testing.T) {
	d := NewDispatcher(&fakeGenerator{err: errors.New("down")}, quietLogger(), 0)

	_, err := d.Do(context.Background(), KindExpand, "text")
	require.Error(t, err)
	assert.False(t, d.InFlight(KindExpand))
}

func TestDispatcher_RejectsSameKindInFlight(t *testing.T) {
	gen := &fakeGenerator{json: `{"summary":"s"}`}
	d := NewDispatcher(gen, quietLogger(), 0)

	require.NoError(t, d.Begin(KindSummarize, "text"))
	assert.True(t, d.InFlight(KindSummarize))
	assert.True(t, d.AnyInFlight())

	assert.ErrorIs(t, d.Begin(KindSummarize, "text"), ErrInFlight)

	// A different kind may overlap.
	require.NoError(t, d.Begin(KindParaphrase, "text"))
	d.Finish(KindParaphrase)

	_, err := d.Run(context.Background(), KindSummarize, "text")
	require.NoError(t, err)
	assert.False(t, d.AnyInFlight())
}

func TestDispatcher_ConcurrentRuns(t *testing.T) {
	block := make(chan struct{})
	gen := &fakeGenerator{json: `{"summary":"s","expandedText":"e"}`, block: block}
	d := NewDispatcher(gen, quietLogger(), 0)

	require.NoError(t, d.Begin(KindSummarize, "a"))
	require.NoError(t, d.Begin(KindExpand, "a"))

	done := make(chan Result, 2)
	go func() { r, _ := d.Run(context.Background(), KindSummarize, "a"); done <- r }()
	go func() { r, _ := d.Run(context.Background(), KindExpand, "a"); done <- r }()

	close(block)
	got := map[Kind]string{}
	for i := 0; i < 2; i++ {
		r := <-done
		got[r.Kind] = r.Text
	}
	assert.Equal(t, map[Kind]string{KindSummarize: "s", KindExpand: "e"}, got)
	assert.False(t, d.AnyInFlight())
}

func TestDispatcher_RunCodeDefaultsLanguage(t *testing.T) {
	gen := &fakeGenerator{json: `{"output":"1\n"}`}
	d := NewDispatcher(gen, quietLogger(), 0)

	require.NoError(t, d.Begin(KindRunCode, "print(1)"))
	out, err := d.RunCode(context.Background(), "print(1)", "none")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
	assert.Contains(t, gen.prompts[0], "plaintext")
	assert.False(t, d.InFlight(KindRunCode))
}

func TestDispatcher_GenerateCodeAndImage(t *testing.T) {
	gen := &fakeGenerator{json: `{"code":"console.log(1)"}`, image: "data:image/png;base64,QQ=="}
	d := NewDispatcher(gen, quietLogger(), 0)

	require.NoError(t, d.Begin(KindGenerateCode, "log one"))
	code, err := d.GenerateCode(context.Background(), CodeRequest{Prompt: "log one", Language: "javascript"})
	require.NoError(t, err)
	assert.Equal(t, "console.log(1)", code)

	require.NoError(t, d.Begin(KindGenerateImage, "fox"))
	uri, err := d.GenerateImage(context.Background(), ImageRequest{Prompt: "fox"})
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,QQ==", uri)
	assert.False(t, d.AnyInFlight())
}

func TestKindMessages(t *testing.T) {
	assert.Equal(t, "Failed to summarize text.", KindSummarize.FailureMessage())
	assert.Equal(t, "Failed to check grammar.", KindGrammar.FailureMessage())
	assert.Equal(t, "Nothing to paraphrase", KindParaphrase.EmptyMessage())
	assert.Equal(t, "Nothing to check", KindGrammar.EmptyMessage())
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Summarize ")
	require.NoError(t, err)
	assert.Equal(t, KindSummarize, k)

	_, err = ParseKind("translate")
	assert.Error(t, err)

	_, err = ParseKind("generate-image")
	assert.Error(t, err)
}
