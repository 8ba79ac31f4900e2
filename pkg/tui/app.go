package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/protext/protext-cli/pkg/ai"
	"github.com/protext/protext-cli/pkg/highlight"
	"github.com/protext/protext-cli/pkg/models"
	"github.com/protext/protext-cli/pkg/preview"
)

// AppConfig carries what the editor needs from the command line.
type AppConfig struct {
	Settings *models.Settings
	Document *models.Document // nil opens an empty Untitled document

	// Dispatcher runs AI actions. When nil, AI actions report AIError.
	Dispatcher *ai.Dispatcher
	AIError    error

	Clipboard Clipboard
	Logger    *slog.Logger
	Version   string

	// SaveSettings persists view preferences; nil keeps them in memory.
	SaveSettings func(*models.Settings) error
}

// App is the editor window: menu bar, text area, output panel and status bar.
type App struct {
	settings *models.Settings
	doc      *models.Document
	editor   *EditorState
	menu     *MenuBar
	status   *StatusManager
	confirm  *ConfirmationModel
	dialog   dialog
	output   *OutputPanel
	spinner  spinner.Model

	styles      Styles
	dark        bool
	highlighter *highlight.Highlighter

	search   models.SearchState
	lastFind models.FindOptions

	dispatcher   *ai.Dispatcher
	aiErr        error
	clipboard    Clipboard
	logger       *slog.Logger
	version      string
	saveSettings func(*models.Settings) error

	openHTML     func(html string) (string, error)
	print        func(title, text string) error
	previewFiles []string

	width, height int
	scrollTop     int
	colOffset     int
	title         string
	ctx           context.Context
	now           func() time.Time
}

// Messages delivering the results of background work.
type (
	aiResultMsg struct {
		Kind   ai.Kind
		Result ai.Result
		Err    error
	}
	runCodeMsg struct {
		Output string
		Err    error
	}
	codeGeneratedMsg struct {
		Request ai.CodeRequest
		Code    string
		Err     error
	}
	imageGeneratedMsg struct {
		Prompt string
		URI    string
		Err    error
	}
	printDoneMsg struct {
		Err error
	}
)

// NewApp creates the editor.
func NewApp(cfg AppConfig) *App {
	settings := cfg.Settings
	if settings == nil {
		settings = models.DefaultSettings()
	}
	doc := cfg.Document
	if doc == nil {
		doc = models.NewDocument()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clip := cfg.Clipboard
	if clip == nil {
		clip = SystemClipboard()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	a := &App{
		settings:     settings,
		doc:          doc,
		editor:       NewEditorState(settings.Editor.UndoLevels),
		menu:         NewMenuBar(),
		status:       NewStatusManager(),
		confirm:      NewConfirmation(),
		output:       NewOutputPanel(),
		spinner:      sp,
		dispatcher:   cfg.Dispatcher,
		aiErr:        cfg.AIError,
		clipboard:    clip,
		logger:       logger,
		version:      cfg.Version,
		saveSettings: cfg.SaveSettings,
		openHTML:     preview.OpenHTML,
		print:        preview.Print,
		ctx:          context.Background(),
		now:          time.Now,
	}
	a.editor.SetValue(doc.Text, 0)
	a.applyTheme(settings.UI.Theme)
	return a
}

// Document returns the document being edited.
func (a *App) Document() *models.Document {
	return a.doc
}

func (a *App) Init() tea.Cmd {
	a.title = a.doc.Title()
	return tea.SetWindowTitle(a.title)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	a.scrollToCursor()
	if title := a.doc.Title(); title != a.title {
		a.title = title
		cmd = tea.Batch(cmd, tea.SetWindowTitle(title))
	}
	return a, cmd
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.layout()
		return nil

	case ClearStatusMsg:
		a.status.HandleClear(msg)
		return nil

	case spinner.TickMsg:
		if !a.busy() {
			return nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return cmd

	case aiResultMsg:
		return a.handleAIResult(msg)
	case runCodeMsg:
		return a.handleRunCode(msg)
	case codeGeneratedMsg:
		return a.handleCodeGenerated(msg)
	case imageGeneratedMsg:
		return a.handleImageGenerated(msg)
	case printDoneMsg:
		if errors.Is(msg.Err, preview.ErrNoPrinter) {
			return a.status.ShowWarning("Print", "No printer available (lpr or lp not found).")
		}
		if msg.Err != nil {
			a.logger.Error("print failed", "error", msg.Err)
			return a.status.ShowError("Print", msg.Err.Error())
		}
		return a.status.ShowSuccess("Print", "Sent to the printer.")

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.dialog != nil {
		ev, cmd := a.dialog.Update(msg)
		return tea.Batch(cmd, a.handleDialogEvent(ev))
	}
	return a.editor.Update(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	if a.confirm.Active() {
		return a.confirm.Update(msg)
	}

	if a.menu.IsOpen() {
		if action, ok := a.menu.Update(msg, a.menuState()); ok {
			return a.perform(action)
		}
		return nil
	}

	if a.dialog != nil {
		ev, cmd := a.dialog.Update(msg)
		return tea.Batch(cmd, a.handleDialogEvent(ev))
	}

	if i := a.menu.HotkeyMenu(key); i >= 0 {
		a.menu.Open(i)
		return nil
	}
	if Shortcuts.Menu.Matches(key) {
		a.menu.Open(0)
		return nil
	}
	if action, ok := shortcutAction(key); ok {
		return a.perform(action)
	}

	switch key {
	case "esc":
		if a.output.Visible {
			a.output.Close()
			a.layout()
		}
		a.editor.ClearSelection()
		return nil
	case "alt+t":
		if a.output.Visible {
			a.output.SwitchMode(1)
		}
		return nil
	case "alt+up":
		a.output.ScrollUp()
		return nil
	case "alt+down":
		a.output.ScrollDown()
		return nil
	}

	if msg.Paste && msg.Type == tea.KeyRunes {
		return a.insertText(normalizeNewlines(string(msg.Runes)), "Paste")
	}

	cmd := a.editor.Update(msg)
	a.syncDocument()
	return cmd
}

// shortcutActions maps global shortcuts to the menu item they trigger.
var shortcutActions = []struct {
	key    ShortcutKey
	action MenuAction
}{
	{Shortcuts.New, ActionNew},
	{Shortcuts.Open, ActionOpen},
	{Shortcuts.Save, ActionSave},
	{Shortcuts.Print, ActionPrint},
	{Shortcuts.Exit, ActionExit},
	{Shortcuts.Undo, ActionUndo},
	{Shortcuts.Cut, ActionCut},
	{Shortcuts.Copy, ActionCopy},
	{Shortcuts.Paste, ActionPaste},
	{Shortcuts.Delete, ActionDelete},
	{Shortcuts.Find, ActionFind},
	{Shortcuts.FindNext, ActionFindNext},
	{Shortcuts.Replace, ActionReplace},
	{Shortcuts.SelectAll, ActionSelectAll},
	{Shortcuts.TimeDate, ActionTimeDate},
	{Shortcuts.ZoomIn, ActionZoomIn},
	{Shortcuts.ZoomOut, ActionZoomOut},
	{Shortcuts.RestoreZoom, ActionRestoreZoom},
	{Shortcuts.RunCode, ActionRunCode},
}

func shortcutAction(key string) (MenuAction, bool) {
	for _, s := range shortcutActions {
		if s.key.Matches(key) {
			return s.action, true
		}
	}
	return "", false
}

// perform runs a menu action.
func (a *App) perform(action MenuAction) tea.Cmd {
	switch action {
	case ActionNew:
		a.newDocument()
	case ActionOpen:
		return a.showOpenDialog()
	case ActionSave:
		return a.save()
	case ActionSaveAs:
		a.showDialog(NewSaveAsDialog(a.saveAsSuggestion()))
	case ActionPrint:
		return a.printDocument()
	case ActionExit:
		return a.exit()

	case ActionUndo:
		if !a.editor.Undo() {
			return a.status.ShowInfo("Undo", "Nothing to undo.")
		}
		a.syncDocument()
	case ActionCut:
		return a.cut()
	case ActionCopy:
		return a.copySelection()
	case ActionPaste:
		return a.paste()
	case ActionDelete:
		a.deleteForward()
	case ActionFind:
		a.showFindDialog(false)
	case ActionReplace:
		a.showFindDialog(true)
	case ActionFindNext:
		// A failed search ends the session, so F3 asks for a term again.
		if a.search.LastMatch == nil {
			a.showFindDialog(false)
			return nil
		}
		return a.findNext(a.search.Options)
	case ActionSelectAll:
		a.editor.SelectAll()
	case ActionTimeDate:
		return a.insertText(a.now().Format("1/2/2006, 3:04:05 PM"), "Insert Time/Date")

	case ActionWordWrap:
		a.settings.Editor.WordWrap = !a.settings.Editor.WordWrap
		a.persistSettings()
		a.layout()
	case ActionFont:
		a.showDialog(NewFontDialog(a.settings.Editor.Font))
	case ActionZoomIn:
		a.setFont(a.settings.Editor.Font.ZoomIn())
	case ActionZoomOut:
		a.setFont(a.settings.Editor.Font.ZoomOut())
	case ActionRestoreZoom:
		a.setFont(a.settings.Editor.Font.RestoreZoom())
	case ActionStatusBar:
		a.settings.UI.ShowStatusBar = !a.settings.UI.ShowStatusBar
		a.persistSettings()
		a.layout()

	case ActionRunCode:
		return a.runCode()
	case ActionPreviewHTML:
		return a.previewHTML()
	case ActionPreviewMarkdown:
		a.output.Show(models.OutputModeMarkdownPreview, a.editor.Value())
		a.layout()

	case ActionHelp:
		a.showDialog(NewHelpDialog(a.styles))
	case ActionAbout:
		a.showDialog(NewAboutDialog(a.styles, a.version))

	default:
		if lang, ok := action.Syntax(); ok {
			a.setSyntax(lang)
			a.persistSettings()
			return nil
		}
		if theme, ok := action.Theme(); ok {
			a.applyTheme(theme)
			a.persistSettings()
			return nil
		}
		if kind, ok := action.AIKind(); ok {
			return a.startAI(kind)
		}
		a.logger.Warn("unknown menu action", "action", action)
	}
	return nil
}

func (a *App) showDialog(d dialog) {
	a.dialog = d
}

func (a *App) closeDialog() {
	a.dialog = nil
}

// handleDialogEvent acts on what the open dialog asked for.
func (a *App) handleDialogEvent(ev dialogEvent) tea.Cmd {
	switch ev := ev.(type) {
	case nil:
		return nil
	case closeDialogEvent:
		a.closeDialog()
	case findNextEvent:
		return a.findNext(ev.Options)
	case replaceEvent:
		return a.replaceOne(ev.Options)
	case replaceAllEvent:
		return a.replaceAll(ev.Options)
	case applyFontEvent:
		a.setFont(ev.Font)
		a.closeDialog()
	case applyGrammarEvent:
		a.closeDialog()
		cmd, _ := a.replaceText(ev.Text, "Grammar correction")
		return cmd
	case generateCodeEvent:
		return a.generateCode(ev.Request)
	case generateImageEvent:
		return a.generateImage(ev.Request)
	case insertImageEvent:
		a.closeDialog()
		return a.insertText("!["+ev.Prompt+"]("+ev.URI+")", "Insert Image")
	case downloadImageEvent:
		return a.downloadImage(ev.Prompt, ev.URI)
	case copyImageEvent:
		if err := a.clipboard.WriteAll(ev.URI); err != nil {
			return a.status.ShowError("Clipboard", err.Error())
		}
		return a.status.ShowSuccess("Image copied", "The data URI is on the clipboard.")
	case saveAsEvent:
		return a.saveAs(ev.Name)
	case openFileEvent:
		return a.openFile(ev.Path)
	}
	return nil
}

// busy reports whether anything drawn with the spinner is running.
func (a *App) busy() bool {
	return a.dispatcher != nil && a.dispatcher.AnyInFlight()
}
