package tui

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"

	"github.com/protext/protext-cli/pkg/ai"
	"github.com/protext/protext-cli/pkg/models"
)

const (
	codeFocusPrompt = iota
	codeFocusLanguage
	codeFocusGenerate
	codeFocusCancel
	codeFocusCount
)

// GenerateCodeDialog asks for a prompt and a target language.
type GenerateCodeDialog struct {
	prompt   textinput.Model
	language string
	focus    focusRing

	// Busy is set while the request runs; Spinner is drawn next to it.
	Busy    bool
	Spinner *spinner.Model
}

// NewGenerateCodeDialog opens the dialog with language preselected when it
// is one of the offered languages.
func NewGenerateCodeDialog(language string) *GenerateCodeDialog {
	d := &GenerateCodeDialog{
		prompt:   newInput("e.g., a function that reverses a string", 44),
		language: models.CodeLanguages[0],
		focus:    focusRing{n: codeFocusCount},
	}
	for _, l := range models.CodeLanguages {
		if l == language {
			d.language = l
		}
	}
	d.prompt.Focus()
	return d
}

// Request returns the request the dialog would send.
func (d *GenerateCodeDialog) Request() ai.CodeRequest {
	return ai.CodeRequest{Prompt: strings.TrimSpace(d.prompt.Value()), Language: d.language}
}

func (d *GenerateCodeDialog) Update(msg tea.Msg) (dialogEvent, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, nil
	}

	switch key.String() {
	case "esc":
		return closeDialogEvent{}, nil
	case "tab", "down":
		d.focus.next()
		focusInputs(d.focus.index, &d.prompt)
		return nil, nil
	case "shift+tab", "up":
		d.focus.prev()
		focusInputs(d.focus.index, &d.prompt)
		return nil, nil
	case "left", "right":
		if d.focus.index == codeFocusLanguage {
			dir := 1
			if key.String() == "left" {
				dir = -1
			}
			d.language = cycle(models.CodeLanguages, d.language, dir)
			return nil, nil
		}
	case "enter":
		if d.focus.index == codeFocusCancel {
			return closeDialogEvent{}, nil
		}
		if d.Busy || d.Request().Prompt == "" {
			return nil, nil
		}
		return generateCodeEvent{Request: d.Request()}, nil
	}

	if d.focus.index != codeFocusPrompt {
		return nil, nil
	}
	var cmd tea.Cmd
	d.prompt, cmd = d.prompt.Update(msg)
	return nil, cmd
}

func (d *GenerateCodeDialog) View(styles Styles) string {
	rows := []string{
		"Describe the code you want to generate.",
		"",
		renderField(styles, "Prompt:", d.prompt.View(), d.focus.index == codeFocusPrompt),
		renderField(styles, "Language:", renderChoice(styles, d.language, d.focus.index == codeFocusLanguage), d.focus.index == codeFocusLanguage),
		"",
	}
	if d.Busy {
		rows = append(rows, busyLine(d.Spinner, "Generating code..."), "")
	}
	rows = append(rows, renderButtons(styles, []string{"Generate", "Cancel"}, d.focus.index-codeFocusGenerate))
	return dialogFrame(styles, "Generate Code", strings.Join(rows, "\n"))
}

func busyLine(s *spinner.Model, label string) string {
	if s == nil {
		return label
	}
	return s.View() + " " + label
}

// GenerateImageDialog asks for a prompt and, once an image arrives, offers
// to insert, save or copy it.
type GenerateImageDialog struct {
	prompt textinput.Model
	focus  int

	// ImageURI holds the generated image as a data URI.
	ImageURI string
	Busy     bool
	Spinner  *spinner.Model
}

var (
	imagePromptButtons = []string{"Generate", "Cancel"}
	imageResultButtons = []string{"Insert", "Download", "Copy", "Generate New"}
)

// NewGenerateImageDialog opens an empty dialog.
func NewGenerateImageDialog() *GenerateImageDialog {
	d := &GenerateImageDialog{
		prompt: newInput("e.g., a photorealistic cat wearing a wizard hat", 44),
	}
	d.prompt.Focus()
	return d
}

// Prompt returns the trimmed prompt.
func (d *GenerateImageDialog) Prompt() string {
	return strings.TrimSpace(d.prompt.Value())
}

// SetImage shows a generated image and moves focus to its actions.
func (d *GenerateImageDialog) SetImage(uri string) {
	d.ImageURI = uri
	d.Busy = false
	d.focus = 0
	d.prompt.Blur()
}

// ClearImage returns to the prompt, keeping its text.
func (d *GenerateImageDialog) ClearImage() {
	d.ImageURI = ""
	d.focus = 0
	d.prompt.Focus()
}

func (d *GenerateImageDialog) controls() int {
	if d.ImageURI != "" {
		return len(imageResultButtons)
	}
	return 1 + len(imagePromptButtons)
}

func (d *GenerateImageDialog) Update(msg tea.Msg) (dialogEvent, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, nil
	}

	switch key.String() {
	case "esc":
		return closeDialogEvent{}, nil
	case "tab", "right":
		d.focus = (d.focus + 1) % d.controls()
		d.syncFocus()
		return nil, nil
	case "shift+tab", "left":
		d.focus = (d.focus + d.controls() - 1) % d.controls()
		d.syncFocus()
		return nil, nil
	case "enter":
		return d.activate(), nil
	}

	if d.ImageURI != "" || d.focus != 0 {
		return nil, nil
	}
	var cmd tea.Cmd
	d.prompt, cmd = d.prompt.Update(msg)
	return nil, cmd
}

func (d *GenerateImageDialog) syncFocus() {
	if d.ImageURI == "" && d.focus == 0 {
		d.prompt.Focus()
	} else {
		d.prompt.Blur()
	}
}

func (d *GenerateImageDialog) activate() dialogEvent {
	if d.ImageURI != "" {
		switch imageResultButtons[d.focus] {
		case "Insert":
			return insertImageEvent{Prompt: d.Prompt(), URI: d.ImageURI}
		case "Download":
			return downloadImageEvent{Prompt: d.Prompt(), URI: d.ImageURI}
		case "Copy":
			return copyImageEvent{URI: d.ImageURI}
		default:
			d.ClearImage()
			return nil
		}
	}

	if d.focus > 0 && imagePromptButtons[d.focus-1] == "Cancel" {
		return closeDialogEvent{}
	}
	if d.Busy || d.Prompt() == "" {
		return nil
	}
	return generateImageEvent{Request: ai.ImageRequest{Prompt: d.Prompt()}}
}

func (d *GenerateImageDialog) View(styles Styles) string {
	var rows []string
	if d.ImageURI != "" {
		rows = []string{
			styles.Label.Render("Image ready"),
			styles.Hint.Render(describeDataURI(d.ImageURI)),
			"",
			truncate.StringWithTail(d.Prompt(), 56, "…"),
			"",
			renderButtons(styles, imageResultButtons, d.focus),
		}
	} else {
		rows = []string{
			"Describe the image you want to create with AI.",
			"",
			renderField(styles, "Prompt:", d.prompt.View(), d.focus == 0),
			"",
		}
		if d.Busy {
			rows = append(rows, busyLine(d.Spinner, "Generating your image..."), "")
		}
		rows = append(rows, renderButtons(styles, imagePromptButtons, d.focus-1))
	}
	return dialogFrame(styles, "Generate Image", strings.Join(rows, "\n"))
}

// describeDataURI summarizes a data URI as "image/png, 12.3 KB".
func describeDataURI(uri string) string {
	meta, data, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return "unknown image"
	}
	mime, _, _ := strings.Cut(meta, ";")
	size := base64.StdEncoding.DecodedLen(len(data))
	return fmt.Sprintf("%s, %.1f KB", mime, float64(size)/1024)
}
