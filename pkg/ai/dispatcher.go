package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/protext/protext-cli/pkg/utils"
)

// Kind identifies an AI action.
type Kind string

const (
	KindSummarize     Kind = "summarize"
	KindParaphrase    Kind = "paraphrase"
	KindExpand        Kind = "expand"
	KindGrammar       Kind = "grammar"
	KindGenerateCode  Kind = "generate-code"
	KindGenerateImage Kind = "generate-image"
	KindRunCode       Kind = "run"
)

// BufferKinds are the actions that transform the whole buffer, in menu order.
var BufferKinds = []Kind{KindSummarize, KindParaphrase, KindExpand, KindGrammar}

// ParseKind maps a command line action name to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindSummarize, KindParaphrase, KindExpand, KindGrammar, KindRunCode:
		return k, nil
	}
	return "", fmt.Errorf("unknown AI action %q (expected summarize, paraphrase, expand, grammar or run)", s)
}

// Title is the name shown in menus and notifications.
func (k Kind) Title() string {
	switch k {
	case KindSummarize:
		return "Summarize"
	case KindParaphrase:
		return "Paraphrase"
	case KindExpand:
		return "Expand"
	case KindGrammar:
		return "Grammar & Spelling"
	case KindGenerateCode:
		return "Generate Code"
	case KindGenerateImage:
		return "Generate Image"
	case KindRunCode:
		return "Run Code"
	}
	return string(k)
}

// EmptyMessage is shown when the action is invoked on an empty editor.
func (k Kind) EmptyMessage() string {
	switch k {
	case KindGrammar:
		return "Nothing to check"
	case KindRunCode:
		return "Nothing to run"
	case KindGenerateCode, KindGenerateImage:
		return "Enter a prompt first"
	}
	return "Nothing to " + strings.ToLower(k.Title())
}

// FailureMessage is shown when the remote call fails.
func (k Kind) FailureMessage() string {
	switch k {
	case KindGrammar:
		return "Failed to check grammar."
	case KindRunCode:
		return "Failed to run code."
	case KindGenerateCode:
		return "Failed to generate code."
	case KindGenerateImage:
		return "Failed to generate image."
	}
	return fmt.Sprintf("Failed to %s text.", strings.ToLower(k.Title()))
}

// Result is the designated output of a buffer action.
type Result struct {
	Kind Kind
	Text string
	// CorrectionsProposed is only meaningful for KindGrammar.
	CorrectionsProposed bool
}

// Dispatcher runs AI actions, allowing at most one in-flight request per kind.
// Different kinds may overlap. Requests are never retried or cancelled.
type Dispatcher struct {
	gen     Generator
	logger  *slog.Logger
	timeout time.Duration

	mu       sync.Mutex
	inFlight map[Kind]bool
}

// NewDispatcher creates a dispatcher sending requests to gen. A zero timeout
// leaves requests bounded only by the caller's context.
func NewDispatcher(gen Generator, logger *slog.Logger, timeout time.Duration) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		gen:      gen,
		logger:   logger,
		timeout:  timeout,
		inFlight: make(map[Kind]bool),
	}
}

// Begin validates text and marks kind as in flight. It fails with
// ErrEmptyBuffer for blank text and ErrInFlight when kind is already running.
func (d *Dispatcher) Begin(kind Kind, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyBuffer
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.inFlight[kind] {
		return ErrInFlight
	}
	d.inFlight[kind] = true
	return nil
}

// Finish clears the in-flight flag of kind.
func (d *Dispatcher) Finish(kind Kind) {
	d.mu.Lock()
	delete(d.inFlight, kind)
	d.mu.Unlock()
}

// InFlight reports whether kind is running.
func (d *Dispatcher) InFlight(kind Kind) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inFlight[kind]
}

// AnyInFlight reports whether any action is running.
func (d *Dispatcher) AnyInFlight() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.inFlight) > 0
}

// Do is Begin followed by Run.
func (d *Dispatcher) Do(ctx context.Context, kind Kind, text string) (Result, error) {
	if err := d.Begin(kind, text); err != nil {
		return Result{Kind: kind}, err
	}
	return d.Run(ctx, kind, text)
}

// Run performs the round trip of a buffer action begun with Begin and
// returns its designated output. The in-flight flag is always cleared.
func (d *Dispatcher) Run(ctx context.Context, kind Kind, text string) (Result, error) {
	defer d.Finish(kind)
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	res := Result{Kind: kind}
	start := time.Now()
	d.logger.Info("ai action started", "kind", kind, "chars", utils.CountChars(text), "tokens", utils.EstimateTokens(text))

	var err error
	in := TextInput{Text: text}
	switch kind {
	case KindSummarize:
		var out SummaryOutput
		out, err = Summarize.Run(ctx, d.gen, in)
		res.Text = out.Summary
	case KindParaphrase:
		var out ParaphraseOutput
		out, err = Paraphrase.Run(ctx, d.gen, in)
		res.Text = out.ParaphrasedText
	case KindExpand:
		var out ExpandOutput
		out, err = Expand.Run(ctx, d.gen, in)
		res.Text = out.ExpandedText
	case KindGrammar:
		var out GrammarOutput
		out, err = GrammarCheck.Run(ctx, d.gen, in)
		res.Text = out.CorrectedText
		res.CorrectionsProposed = out.CorrectionsProposed
	default:
		err = fmt.Errorf("%q is not a buffer action", kind)
	}

	return res, d.done(kind, start, err)
}

// RunCode predicts the output of code written in language. It must be begun
// with Begin(KindRunCode, code).
func (d *Dispatcher) RunCode(ctx context.Context, code, language string) (string, error) {
	defer d.Finish(KindRunCode)
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	if language == "" || language == "none" {
		language = "plaintext"
	}
	start := time.Now()
	d.logger.Info("ai action started", "kind", KindRunCode, "language", language)

	out, err := ExecuteCode.Run(ctx, d.gen, ExecuteInput{Code: code, Language: language})
	return out.Output, d.done(KindRunCode, start, err)
}

// GenerateCode writes code for req. It must be begun with
// Begin(KindGenerateCode, req.Prompt).
func (d *Dispatcher) GenerateCode(ctx context.Context, req CodeRequest) (string, error) {
	defer d.Finish(KindGenerateCode)
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	d.logger.Info("ai action started", "kind", KindGenerateCode, "language", req.Language)

	out, err := GenerateCode.Run(ctx, d.gen, req)
	return out.Code, d.done(KindGenerateCode, start, err)
}

// GenerateImage draws req.Prompt and returns a data URI. It must be begun
// with Begin(KindGenerateImage, req.Prompt).
func (d *Dispatcher) GenerateImage(ctx context.Context, req ImageRequest) (string, error) {
	defer d.Finish(KindGenerateImage)
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	d.logger.Info("ai action started", "kind", KindGenerateImage)

	out, err := GenerateImage(ctx, d.gen, req)
	return out.ImageDataURI, d.done(KindGenerateImage, start, err)
}

func (d *Dispatcher) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d.timeout)
}

func (d *Dispatcher) done(kind Kind, start time.Time, err error) error {
	if err != nil {
		d.logger.Error("ai action failed", "kind", kind, "duration", time.Since(start), "error", err)
		return err
	}
	d.logger.Info("ai action finished", "kind", kind, "duration", time.Since(start))
	return nil
}
