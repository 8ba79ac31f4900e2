package preview

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoPrinter is returned when neither lpr nor lp is installed.
var ErrNoPrinter = errors.New("no print command found (lpr or lp)")

// execCommand and lookPath are replaced in tests.
var (
	execCommand = exec.Command
	lookPath    = exec.LookPath
)

// openerCommand returns the program that opens a file with the desktop's
// default application.
func openerCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	default:
		return "xdg-open", []string{path}
	}
}

// OpenHTML writes html to a temporary file and opens it in the default
// browser. It returns the file path, which the caller may remove later.
func OpenHTML(html string) (string, error) {
	tmp, err := os.CreateTemp("", "protext-preview-*.html")
	if err != nil {
		return "", fmt.Errorf("failed to create preview file: %w", err)
	}
	if _, err := tmp.WriteString(html); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write preview file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write preview file: %w", err)
	}

	name, args := openerCommand(runtime.GOOS, tmp.Name())
	if err := execCommand(name, args...).Start(); err != nil {
		return tmp.Name(), fmt.Errorf("failed to open browser: %w", err)
	}
	return tmp.Name(), nil
}

// Print sends text to the system print spooler under the given job title.
func Print(title, text string) error {
	name, args, err := printCommand(title)
	if err != nil {
		return err
	}

	cmd := execCommand(name, args...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to print: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

func printCommand(title string) (string, []string, error) {
	if _, err := lookPath("lpr"); err == nil {
		return "lpr", []string{"-T", title}, nil
	}
	if _, err := lookPath("lp"); err == nil {
		return "lp", []string{"-t", title}, nil
	}
	return "", nil, ErrNoPrinter
}
