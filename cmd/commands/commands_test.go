package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protext/protext-cli/internal/cli"
	"github.com/protext/protext-cli/pkg/ai"
	"github.com/protext/protext-cli/pkg/models"
)

// fakeGenerator answers by the first required field of the schema.
type fakeGenerator struct {
	mu      sync.Mutex
	json    map[string]string
	image   string
	err     error
	prompts []string
}

func (f *fakeGenerator) GenerateJSON(ctx context.Context, prompt string, schema ai.Schema) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return nil, f.err
	}
	for _, field := range schema.Required {
		if out, ok := f.json[field]; ok {
			return []byte(out), nil
		}
	}
	return nil, errors.New("no canned response")
}

func (f *fakeGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.image, f.err
}

func testContext(gen *fakeGenerator) *cli.CommandContext {
	cc := cli.NewCommandContext()
	cc.Settings = models.DefaultSettings()
	cc.NewGenerator = func(models.AISettings) (ai.Generator, error) {
		return gen, nil
	}
	return cc
}

// execute runs cmd under a root carrying the global --output flag.
func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "protext", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().StringP("output", "o", "text", "")
	root.AddCommand(cmd)

	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{cmd.Name()}, args...))
	err := root.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestFindCommand(t *testing.T) {
	path := writeFile(t, "story.txt", "Cat cats\ncatalog cat")

	tests := []struct {
		name     string
		args     []string
		contains []string
		excludes []string
		wantErr  string
	}{
		{
			name:     "case insensitive",
			args:     []string{path, "cat"},
			contains: []string{"1:1", "1:5", "2:1", "2:9", "Cat cats"},
		},
		{
			name:     "whole word",
			args:     []string{path, "cat", "--whole-word"},
			contains: []string{"1:1", "2:9"},
			excludes: []string{"1:5", "2:1"},
		},
		{
			name:     "match case and whole word",
			args:     []string{path, "Cat", "-c", "-w"},
			contains: []string{"1:1"},
			excludes: []string{"2:9"},
		},
		{
			name:     "no match",
			args:     []string{path, "dog"},
			contains: []string{`Cannot find "dog"`},
		},
		{
			name:     "json output",
			args:     []string{path, "cat", "-w", "-o", "json"},
			contains: []string{`"count": 2`, `"line": 2`, `"column": 9`, `"text": "catalog cat"`},
		},
		{
			name:    "missing file",
			args:    []string{filepath.Join(t.TempDir(), "nope.txt"), "cat"},
			wantErr: "path does not exist",
		},
		{
			name:    "empty term",
			args:    []string{path, ""},
			wantErr: "search term cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewFindCommand(), "", tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestReplaceCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		stdin    string
		wantFile string
		contains string
	}{
		{
			name:     "confirmed",
			args:     []string{"cat", "dog"},
			stdin:    "y\n",
			wantFile: "dog dogs dogalog",
			contains: "Replaced 3 occurrence(s)",
		},
		{
			name:     "declined",
			args:     []string{"cat", "dog"},
			stdin:    "n\n",
			wantFile: "Cat cats catalog",
			contains: "Replace cancelled",
		},
		{
			name:     "whole word",
			args:     []string{"cat", "dog", "--whole-word"},
			stdin:    "yes\n",
			wantFile: "dog cats catalog",
			contains: "Replaced 1 occurrence(s)",
		},
		{
			name:     "dry run leaves the file",
			args:     []string{"cat", "dog", "--match-case", "--dry-run"},
			wantFile: "Cat cats catalog",
			contains: "Cat dogs dogalog",
		},
		{
			name:     "nothing to replace",
			args:     []string{"bird", "dog"},
			wantFile: "Cat cats catalog",
			contains: "No instances found.",
		},
		{
			name:     "replacement is literal",
			args:     []string{"cat", "$1", "-w"},
			stdin:    "y\n",
			wantFile: "$1 cats catalog",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "story.txt", "Cat cats catalog")
			out, err := execute(t, NewReplaceCommand(), tt.stdin, append([]string{path}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFile, readFile(t, path))
			assert.Contains(t, out, tt.contains)
		})
	}
}

func TestStatsCommand(t *testing.T) {
	out, err := execute(t, NewStatsCommand(), "hello world\nbye")
	require.NoError(t, err)
	assert.Contains(t, out, "Lines:")
	assert.Contains(t, out, "15 B")

	path := writeFile(t, "notes.txt", "  one two  three ")
	out, err = execute(t, NewStatsCommand(), "", path, "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "lines: 1")
	assert.Contains(t, out, "words: 3")
	assert.Contains(t, out, "characters: 17")
}

func TestAICommand(t *testing.T) {
	t.Run("summarize file", func(t *testing.T) {
		gen := &fakeGenerator{json: map[string]string{"summary": `{"summary":"short"}`}}
		path := writeFile(t, "notes.txt", "a long text")

		out, err := execute(t, NewAICommand(testContext(gen)), "", "summarize", path)
		require.NoError(t, err)
		assert.Equal(t, "short\n", out)
		assert.Equal(t, "a long text", readFile(t, path))
		assert.Contains(t, gen.prompts[0], "a long text")
	})

	t.Run("paraphrase stdin", func(t *testing.T) {
		gen := &fakeGenerator{json: map[string]string{"paraphrasedText": `{"paraphrasedText":"reworded"}`}}
		out, err := execute(t, NewAICommand(testContext(gen)), "some words", "paraphrase")
		require.NoError(t, err)
		assert.Equal(t, "reworded\n", out)
	})

	t.Run("write replaces the file", func(t *testing.T) {
		gen := &fakeGenerator{json: map[string]string{"expandedText": `{"expandedText":"much longer"}`}}
		path := writeFile(t, "notes.txt", "short")

		out, err := execute(t, NewAICommand(testContext(gen)), "", "expand", path, "--write")
		require.NoError(t, err)
		assert.Equal(t, "much longer", readFile(t, path))
		assert.Contains(t, out, "AI Expand: notes.txt has been updated.")
	})

	t.Run("grammar without corrections", func(t *testing.T) {
		gen := &fakeGenerator{json: map[string]string{
			"correctedText": `{"correctedText":"Fine.","correctionsProposed":false}`,
		}}
		out, err := execute(t, NewAICommand(testContext(gen)), "Fine.\n", "grammar")
		require.NoError(t, err)
		assert.Contains(t, out, "No corrections found.")
		assert.Contains(t, out, "Fine.")
	})

	t.Run("run uses the file language", func(t *testing.T) {
		gen := &fakeGenerator{json: map[string]string{"output": `{"output":"hi"}`}}
		path := writeFile(t, "script.py", `print("hi")`)

		out, err := execute(t, NewAICommand(testContext(gen)), "", "run", path)
		require.NoError(t, err)
		assert.Equal(t, "hi\n", out)
		assert.Contains(t, gen.prompts[0], "python")
	})

	t.Run("empty input", func(t *testing.T) {
		gen := &fakeGenerator{}
		_, err := execute(t, NewAICommand(testContext(gen)), "  \n", "summarize")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Nothing to summarize")
		assert.Empty(t, gen.prompts)
	})

	t.Run("model failure", func(t *testing.T) {
		gen := &fakeGenerator{err: errors.New("boom")}
		_, err := execute(t, NewAICommand(testContext(gen)), "text", "paraphrase")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Failed to paraphrase text: ")
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("invalid usage", func(t *testing.T) {
		cc := testContext(&fakeGenerator{})
		_, err := execute(t, NewAICommand(cc), "", "translate")
		assert.ErrorContains(t, err, "unknown AI action")

		_, err = execute(t, NewAICommand(cc), "text", "summarize", "--write")
		assert.ErrorContains(t, err, "--write needs a file argument")

		path := writeFile(t, "a.js", "1")
		_, err = execute(t, NewAICommand(cc), "", "run", path, "--write")
		assert.ErrorContains(t, err, "--write cannot be used with run")
	})

	t.Run("no api key", func(t *testing.T) {
		cc := cli.NewCommandContext()
		cc.Settings = models.DefaultSettings()
		cc.Settings.AI.APIKey = ""

		_, err := execute(t, NewAICommand(cc), "text", "summarize")
		require.Error(t, err)
		assert.ErrorIs(t, err, ai.ErrNoAPIKey)
	})
}

func TestGenerateCommand(t *testing.T) {
	t.Run("code to stdout", func(t *testing.T) {
		gen := &fakeGenerator{json: map[string]string{"code": `{"code":"print(1)"}`}}
		out, err := execute(t, NewGenerateCommand(testContext(gen)), "", "code", "--prompt", "print one", "-l", "python")
		require.NoError(t, err)
		assert.Equal(t, "print(1)\n", out)
		assert.Contains(t, gen.prompts[0], "print one")
		assert.Contains(t, gen.prompts[0], "python")
	})

	t.Run("code to file", func(t *testing.T) {
		gen := &fakeGenerator{json: map[string]string{"code": `{"code":"let x = 1;"}`}}
		path := filepath.Join(t.TempDir(), "src", "x.js")
		out, err := execute(t, NewGenerateCommand(testContext(gen)), "", "code", "-p", "a variable", "--out", path)
		require.NoError(t, err)
		assert.Equal(t, "let x = 1;", readFile(t, path))
		assert.Contains(t, out, "Code written to")
	})

	t.Run("invalid language", func(t *testing.T) {
		_, err := execute(t, NewGenerateCommand(testContext(&fakeGenerator{})), "", "code", "-p", "x", "-l", "cobol")
		assert.ErrorContains(t, err, "invalid language: cobol")
	})

	t.Run("blank prompt", func(t *testing.T) {
		gen := &fakeGenerator{}
		_, err := execute(t, NewGenerateCommand(testContext(gen)), "", "code", "-p", "   ")
		assert.ErrorContains(t, err, "Enter a prompt first")
		assert.Empty(t, gen.prompts)
	})

	t.Run("image to file", func(t *testing.T) {
		gen := &fakeGenerator{image: "data:image/png;base64,aGVsbG8="}
		path := filepath.Join(t.TempDir(), "fox.png")
		out, err := execute(t, NewGenerateCommand(testContext(gen)), "", "image", "--prompt", "a red fox", "--out", path)
		require.NoError(t, err)
		assert.Equal(t, "hello", readFile(t, path))
		assert.Contains(t, out, "Image saved to")
	})

	t.Run("image with bad data", func(t *testing.T) {
		gen := &fakeGenerator{image: "https://example.com/fox.png"}
		_, err := execute(t, NewGenerateCommand(testContext(gen)), "", "image", "-p", "fox", "--out", filepath.Join(t.TempDir(), "fox.png"))
		require.Error(t, err)
	})
}
