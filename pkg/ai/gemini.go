package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/protext/protext-cli/pkg/models"
)

const errorBodyLimit = 4096

// GeminiClient talks to the Generative Language REST API.
type GeminiClient struct {
	BaseURL    string
	Model      string
	ImageModel string
	APIKey     string
	HTTP       *http.Client
}

// NewGeminiClient builds a client from the AI settings.
func NewGeminiClient(s models.AISettings) (*GeminiClient, error) {
	if s.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	return &GeminiClient{
		BaseURL:    strings.TrimRight(s.BaseURL, "/"),
		Model:      s.Model,
		ImageModel: s.ImageModel,
		APIKey:     s.APIKey,
		HTTP:       &http.Client{Timeout: s.Timeout + 10*time.Second},
	}, nil
}

type geminiPart struct {
	Text       string        `json:"text,omitempty"`
	InlineData *geminiInline `json:"inlineData,omitempty"`
}

type geminiInline struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType   string   `json:"responseMimeType,omitempty"`
	ResponseSchema     *Schema  `json:"responseSchema,omitempty"`
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type generateRequest struct {
	Contents         []geminiContent   `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// GenerateJSON implements Generator.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, schema Schema) ([]byte, error) {
	req := generateRequest{
		Contents: userPrompt(prompt),
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   &schema,
		},
	}

	resp, err := c.generate(ctx, c.Model, req)
	if err != nil {
		return nil, err
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("model returned no text")
	}
	return []byte(text.String()), nil
}

// GenerateImage implements Generator.
func (c *GeminiClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{
		Contents: userPrompt(prompt),
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	}

	model := c.ImageModel
	if model == "" {
		model = c.Model
	}
	resp, err := c.generate(ctx, model, req)
	if err != nil {
		return "", err
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && part.InlineData.Data != "" {
			return "data:" + part.InlineData.MimeType + ";base64," + part.InlineData.Data, nil
		}
	}
	return "", ErrNoImage
}

func userPrompt(prompt string) []geminiContent {
	return []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}}
}

func (c *GeminiClient) generate(ctx context.Context, model string, body generateRequest) (*generateResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.BaseURL, url.PathEscape(model), url.QueryEscape(c.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generateContent %s: %w", model, redactKey(err, c.APIKey))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, fmt.Errorf("generateContent %s: %s (%d)", model, strings.TrimSpace(string(b)), resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(out.Candidates) == 0 {
		if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
			return nil, fmt.Errorf("prompt blocked: %s", out.PromptFeedback.BlockReason)
		}
		return nil, fmt.Errorf("model returned no candidates")
	}
	return &out, nil
}

// redactKey keeps the API key out of transport errors, which embed the URL.
func redactKey(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return fmt.Errorf("%s", strings.ReplaceAll(err.Error(), key, "REDACTED"))
}
