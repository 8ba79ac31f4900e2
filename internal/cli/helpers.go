package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Global flags (will be set from cmd package)
var (
	quiet       bool
	noColor     bool
	skipConfirm bool
)

// SetGlobalFlags sets the global flag values from the cmd package
func SetGlobalFlags(q, nc, sc bool) {
	quiet = q
	noColor = nc
	skipConfirm = sc
}

// Confirm writes prompt to w and reads a yes/no answer from r. An empty
// answer or end of input picks the default. --yes answers every prompt.
func Confirm(r io.Reader, w io.Writer, prompt string, defaultYes bool) (bool, error) {
	if skipConfirm {
		return true, nil
	}

	choices := "[y/N]"
	if defaultYes {
		choices = "[Y/n]"
	}
	fmt.Fprintf(w, "%s %s: ", prompt, choices)

	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return defaultYes, scanner.Err()
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "":
		return defaultYes, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// marker pairs the symbol of a message with its --no-color spelling.
type marker struct{ symbol, plain string }

var (
	markSuccess = marker{"✓", "OK:"}
	markInfo    = marker{"ℹ", "INFO:"}
	markWarning = marker{"⚠", "WARNING:"}
)

func printMarked(w io.Writer, m marker, format string, args []interface{}) {
	prefix := m.symbol
	if noColor {
		prefix = m.plain
	}
	fmt.Fprintln(w, prefix, fmt.Sprintf(format, args...))
}

// PrintSuccess reports a completed action unless --quiet is set.
func PrintSuccess(w io.Writer, format string, args ...interface{}) {
	if !quiet {
		printMarked(w, markSuccess, format, args)
	}
}

// PrintInfo reports a neutral outcome unless --quiet is set.
func PrintInfo(w io.Writer, format string, args ...interface{}) {
	if !quiet {
		printMarked(w, markInfo, format, args)
	}
}

// PrintWarning always reports on stderr.
func PrintWarning(format string, args ...interface{}) {
	printMarked(os.Stderr, markWarning, format, args)
}
