package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/protext/protext-cli/pkg/ai"
	"github.com/protext/protext-cli/pkg/models"
)

// aiMenuActions pairs AI kinds with their menu items.
var aiMenuActions = map[ai.Kind]MenuAction{
	ai.KindSummarize:     ActionSummarize,
	ai.KindParaphrase:    ActionParaphrase,
	ai.KindExpand:        ActionExpand,
	ai.KindGrammar:       ActionGrammar,
	ai.KindGenerateCode:  ActionGenerateCode,
	ai.KindGenerateImage: ActionGenerateImage,
	ai.KindRunCode:       ActionRunCode,
}

// progressLabel replaces a menu label while its action runs.
func progressLabel(kind ai.Kind) string {
	switch kind {
	case ai.KindSummarize:
		return "Summarizing..."
	case ai.KindParaphrase:
		return "Paraphrasing..."
	case ai.KindExpand:
		return "Expanding..."
	case ai.KindGrammar:
		return "Checking..."
	case ai.KindRunCode:
		return "Running..."
	}
	return "Generating..."
}

// menuState reflects the editor settings and running AI actions in the menus.
// While any AI action runs, every AI item is disabled.
func (a *App) menuState() MenuState {
	s := MenuState{
		Checked: map[MenuAction]bool{
			ActionWordWrap:  a.settings.Editor.WordWrap,
			ActionStatusBar: a.settings.UI.ShowStatusBar,
			SyntaxAction(a.settings.Editor.SyntaxLanguage): true,
			ThemeAction(a.settings.UI.Theme):               true,
		},
		Disabled: map[MenuAction]bool{},
		Labels:   map[MenuAction]string{},
	}
	if len(a.editor.UndoStack) == 0 {
		s.Disabled[ActionUndo] = true
	}
	if a.dispatcher == nil || !a.dispatcher.AnyInFlight() {
		return s
	}

	for kind, action := range aiMenuActions {
		if kind != ai.KindRunCode {
			s.Disabled[action] = true
		}
		if a.dispatcher.InFlight(kind) {
			s.Disabled[action] = true
			s.Labels[action] = a.spinner.View() + " " + progressLabel(kind)
		}
	}
	return s
}

// begin reserves kind on the dispatcher, reporting why it cannot start.
func (a *App) begin(kind ai.Kind, input string) (tea.Cmd, bool) {
	if a.dispatcher == nil {
		msg := "AI is not configured."
		if a.aiErr != nil {
			msg = a.aiErr.Error()
		}
		return a.status.ShowError("AI Error", msg), false
	}

	err := a.dispatcher.Begin(kind, input)
	switch {
	case err == nil:
		return nil, true
	case errors.Is(err, ai.ErrEmptyBuffer):
		if kind == ai.KindGenerateCode || kind == ai.KindGenerateImage {
			return a.status.ShowInfo(kind.EmptyMessage(), ""), false
		}
		return a.status.ShowInfo(kind.EmptyMessage(), "Editor is empty."), false
	case errors.Is(err, ai.ErrInFlight):
		return a.status.ShowInfo(kind.Title(), "Already running."), false
	default:
		return a.status.ShowError("AI Error", err.Error()), false
	}
}

// startAI runs a buffer action, or opens the dialog of a generator.
func (a *App) startAI(kind ai.Kind) tea.Cmd {
	switch kind {
	case ai.KindGenerateCode:
		d := NewGenerateCodeDialog(string(a.settings.Editor.SyntaxLanguage))
		d.Spinner = &a.spinner
		a.showDialog(d)
		return nil
	case ai.KindGenerateImage:
		d := NewGenerateImageDialog()
		d.Spinner = &a.spinner
		a.showDialog(d)
		return nil
	case ai.KindRunCode:
		return a.runCode()
	}

	text := a.editor.Value()
	if cmd, ok := a.begin(kind, text); !ok {
		return cmd
	}

	d, ctx := a.dispatcher, a.ctx
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		res, err := d.Run(ctx, kind, text)
		return aiResultMsg{Kind: kind, Result: res, Err: err}
	})
}

func (a *App) handleAIResult(msg aiResultMsg) tea.Cmd {
	if msg.Err != nil {
		return a.status.ShowError("AI Error", msg.Kind.FailureMessage())
	}

	if msg.Kind == ai.KindGrammar {
		if !msg.Result.CorrectionsProposed {
			return a.status.ShowInfo(msg.Kind.Title(), "No corrections found.")
		}
		a.showDialog(NewGrammarDialog(a.editor.Value(), msg.Result.Text))
		return nil
	}

	if cmd, ok := a.replaceText(msg.Result.Text, "AI "+msg.Kind.Title()); !ok {
		return cmd
	}
	return a.status.ShowSuccess("AI "+msg.Kind.Title(), "Text has been updated.")
}

func (a *App) runCode() tea.Cmd {
	code := a.editor.Value()
	if cmd, ok := a.begin(ai.KindRunCode, code); !ok {
		return cmd
	}

	a.output.Show(models.OutputModeOutput, "")
	a.output.Busy = true
	a.layout()

	d, ctx, lang := a.dispatcher, a.ctx, string(a.settings.Editor.SyntaxLanguage)
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		out, err := d.RunCode(ctx, code, lang)
		return runCodeMsg{Output: out, Err: err}
	})
}

func (a *App) handleRunCode(msg runCodeMsg) tea.Cmd {
	if msg.Err != nil {
		a.output.Show(models.OutputModeOutput, "Error: "+ai.KindRunCode.FailureMessage())
		a.layout()
		return a.status.ShowError("AI Error", ai.KindRunCode.FailureMessage())
	}
	a.output.Show(models.OutputModeOutput, msg.Output)
	a.layout()
	return nil
}

func (a *App) generateCode(req ai.CodeRequest) tea.Cmd {
	if cmd, ok := a.begin(ai.KindGenerateCode, req.Prompt); !ok {
		return cmd
	}
	if d, ok := a.dialog.(*GenerateCodeDialog); ok {
		d.Busy = true
	}

	disp, ctx := a.dispatcher, a.ctx
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		code, err := disp.GenerateCode(ctx, req)
		return codeGeneratedMsg{Request: req, Code: code, Err: err}
	})
}

func (a *App) handleCodeGenerated(msg codeGeneratedMsg) tea.Cmd {
	d, open := a.dialog.(*GenerateCodeDialog)
	if open {
		d.Busy = false
	}
	if msg.Err != nil {
		return a.status.ShowError("AI Error", ai.KindGenerateCode.FailureMessage())
	}

	if cmd := a.insertText(msg.Code, "Generate Code"); cmd != nil {
		return cmd
	}
	if lang := models.SyntaxLanguage(msg.Request.Language); lang.IsValid() {
		a.setSyntax(lang)
	}
	if open {
		a.closeDialog()
	}
	return a.status.ShowSuccess("Code Generated", "The code has been inserted into the editor.")
}

func (a *App) generateImage(req ai.ImageRequest) tea.Cmd {
	if cmd, ok := a.begin(ai.KindGenerateImage, req.Prompt); !ok {
		return cmd
	}
	if d, ok := a.dialog.(*GenerateImageDialog); ok {
		d.Busy = true
	}

	disp, ctx := a.dispatcher, a.ctx
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		uri, err := disp.GenerateImage(ctx, req)
		return imageGeneratedMsg{Prompt: req.Prompt, URI: uri, Err: err}
	})
}

func (a *App) handleImageGenerated(msg imageGeneratedMsg) tea.Cmd {
	d, open := a.dialog.(*GenerateImageDialog)
	if msg.Err != nil {
		if open {
			d.Busy = false
		}
		return a.status.ShowError("AI Error", ai.KindGenerateImage.FailureMessage())
	}
	// Closing the dialog discards the image.
	if open {
		d.SetImage(msg.URI)
	}
	return nil
}
