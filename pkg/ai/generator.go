// Package ai holds the prompt flows behind the AI menu, the dispatcher that
// gates them and the client for the hosted model.
package ai

import (
	"context"
	"errors"
)

var (
	// ErrEmptyBuffer is returned when an action is invoked on blank text.
	ErrEmptyBuffer = errors.New("editor is empty")
	// ErrInFlight is returned when the same action is already running.
	ErrInFlight = errors.New("action already in progress")
	// ErrMissingField is returned when a model response lacks a required field.
	ErrMissingField = errors.New("response missing required field")
	// ErrNoAPIKey is returned when no API key is configured.
	ErrNoAPIKey = errors.New("no API key configured")
	// ErrNoImage is returned when an image response carries no image data.
	ErrNoImage = errors.New("response contains no image")
)

// Schema type names understood by the model's structured output mode.
const (
	TypeObject  = "OBJECT"
	TypeString  = "STRING"
	TypeBoolean = "BOOLEAN"
)

// Schema describes the JSON shape a flow expects back.
type Schema struct {
	Type        string            `json:"type"`
	Description string            `json:"description,omitempty"`
	Properties  map[string]Schema `json:"properties,omitempty"`
	Required    []string          `json:"required,omitempty"`
}

// Generator is a hosted model able to answer prompts.
type Generator interface {
	// GenerateJSON sends prompt and returns a JSON document shaped by schema.
	GenerateJSON(ctx context.Context, prompt string, schema Schema) ([]byte, error)
	// GenerateImage sends prompt and returns the image as a data URI.
	GenerateImage(ctx context.Context, prompt string) (string, error)
}
