package ai

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"text/template"
)

//go:embed prompts/*.tmpl
var promptsFS embed.FS

// Field is one property of a flow's structured output.
type Field struct {
	Name        string
	Type        string
	Description string
}

// Flow renders a fixed prompt from input I and decodes the model answer into O.
type Flow[I, O any] struct {
	Name   string
	tmpl   *template.Template
	fields []Field
}

// NewFlow builds a flow from an embedded prompt template and its output fields.
// It panics when the template cannot be parsed, which only happens at init.
func NewFlow[I, O any](name, templateFile string, fields ...Field) *Flow[I, O] {
	tmpl := template.Must(template.ParseFS(promptsFS, "prompts/"+templateFile))
	return &Flow[I, O]{Name: name, tmpl: tmpl, fields: fields}
}

// Prompt renders the prompt for in.
func (f *Flow[I, O]) Prompt(in I) (string, error) {
	var buf bytes.Buffer
	if err := f.tmpl.Execute(&buf, in); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", f.Name, err)
	}
	return buf.String(), nil
}

// Schema returns the response schema sent with the prompt. Every field is required.
func (f *Flow[I, O]) Schema() Schema {
	s := Schema{Type: TypeObject, Properties: make(map[string]Schema, len(f.fields))}
	for _, field := range f.fields {
		s.Properties[field.Name] = Schema{Type: field.Type, Description: field.Description}
		s.Required = append(s.Required, field.Name)
	}
	return s
}

// Run performs one request/response round trip.
func (f *Flow[I, O]) Run(ctx context.Context, g Generator, in I) (O, error) {
	var out O

	prompt, err := f.Prompt(in)
	if err != nil {
		return out, err
	}

	raw, err := g.GenerateJSON(ctx, prompt, f.Schema())
	if err != nil {
		return out, fmt.Errorf("%s: %w", f.Name, err)
	}

	if err := f.decode(raw, &out); err != nil {
		return out, fmt.Errorf("%s: %w", f.Name, err)
	}
	return out, nil
}

func (f *Flow[I, O]) decode(raw []byte, out *O) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	for _, field := range f.fields {
		v, ok := fields[field.Name]
		if !ok || string(v) == "null" {
			return fmt.Errorf("%w: %s", ErrMissingField, field.Name)
		}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// TextInput is the input of the buffer transformations.
type TextInput struct {
	Text string `json:"text"`
}

type GrammarOutput struct {
	CorrectedText       string `json:"correctedText"`
	CorrectionsProposed bool   `json:"correctionsProposed"`
}

type SummaryOutput struct {
	Summary string `json:"summary"`
}

type ParaphraseOutput struct {
	ParaphrasedText string `json:"paraphrasedText"`
}

type ExpandOutput struct {
	ExpandedText string `json:"expandedText"`
}

// CodeRequest asks for code in Language implementing Prompt.
type CodeRequest struct {
	Prompt   string `json:"prompt"`
	Language string `json:"language"`
}

type CodeOutput struct {
	Code string `json:"code"`
}

// ExecuteInput is source code whose output the model predicts.
type ExecuteInput struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

type ExecuteOutput struct {
	Output string `json:"output"`
}

type ImageRequest struct {
	Prompt string `json:"prompt"`
}

type ImageOutput struct {
	ImageDataURI string `json:"imageDataUri"`
}

var (
	GrammarCheck = NewFlow[TextInput, GrammarOutput]("grammarCheck", "grammar_check.tmpl",
		Field{"correctedText", TypeString, "The text with grammar and spelling corrections applied."},
		Field{"correctionsProposed", TypeBoolean, "Whether or not the AI proposes any corrections to the text."},
	)
	Summarize = NewFlow[TextInput, SummaryOutput]("summarize", "summarize.tmpl",
		Field{"summary", TypeString, "A concise summary of the text."},
	)
	Paraphrase = NewFlow[TextInput, ParaphraseOutput]("paraphrase", "paraphrase.tmpl",
		Field{"paraphrasedText", TypeString, "The paraphrased text."},
	)
	Expand = NewFlow[TextInput, ExpandOutput]("expand", "expand.tmpl",
		Field{"expandedText", TypeString, "The expanded text."},
	)
	GenerateCode = NewFlow[CodeRequest, CodeOutput]("generateCode", "generate_code.tmpl",
		Field{"code", TypeString, "The generated source code."},
	)
	ExecuteCode = NewFlow[ExecuteInput, ExecuteOutput]("executeCode", "execute_code.tmpl",
		Field{"output", TypeString, "The simulated output of the code execution."},
	)
)

var imagePrompt = template.Must(template.ParseFS(promptsFS, "prompts/generate_image.tmpl"))

// GenerateImage asks the model for an image described by req.Prompt.
func GenerateImage(ctx context.Context, g Generator, req ImageRequest) (ImageOutput, error) {
	var buf bytes.Buffer
	if err := imagePrompt.Execute(&buf, req); err != nil {
		return ImageOutput{}, fmt.Errorf("failed to render generateImage prompt: %w", err)
	}

	uri, err := g.GenerateImage(ctx, buf.String())
	if err != nil {
		return ImageOutput{}, fmt.Errorf("generateImage: %w", err)
	}
	if uri == "" {
		return ImageOutput{}, fmt.Errorf("generateImage: %w", ErrNoImage)
	}
	return ImageOutput{ImageDataURI: uri}, nil
}
