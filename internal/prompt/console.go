package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"

	kerrors "github.com/fragmentid/fragment-cli/internal/errors"
)

// Console prompts on the controlling terminal.
type Console struct {
	// Stdin and Stdout override the streams used for text prompts.
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

// NewConsole returns a Console bound to the process's standard streams.
func NewConsole() *Console {
	return &Console{}
}

// GetPassword reads a line without echo. When stdin is not a terminal (for
// example a value is piped in) it falls back to /dev/tty.
func (c *Console) GetPassword(prompt string) (string, error) {
	var (
		secret []byte
		err    error
	)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		secret, err = readPassword(os.Stdin, prompt)
	} else {
		secret, err = readPasswordFromTTY(prompt)
	}
	if err != nil {
		return "", err
	}
	return string(secret), nil
}

// GetText reads a single line of visible input.
func (c *Console) GetText(prompt string) (string, error) {
	p := promptui.Prompt{
		Label:  prompt,
		Stdin:  c.Stdin,
		Stdout: c.Stdout,
	}
	result, err := p.Run()
	if err != nil {
		return "", mapPromptError(err)
	}
	return strings.TrimSpace(result), nil
}

// Confirm asks a y/N question. Anything but an explicit yes is false.
func (c *Console) Confirm(prompt string) (bool, error) {
	p := promptui.Prompt{
		Label:     prompt,
		IsConfirm: true,
		Stdin:     c.Stdin,
		Stdout:    c.Stdout,
	}
	if _, err := p.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, mapPromptError(err)
	}
	return true, nil
}

func mapPromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return kerrors.ErrCancelled
	}
	return fmt.Errorf("failed to read input: %w", err)
}

// passwordLabel ends prompt with exactly one ": ". Labels follow the promptui
// convention of carrying no separator, but callers that add one are tolerated.
func passwordLabel(prompt string) string {
	return strings.TrimRight(strings.TrimSpace(prompt), ":") + ": "
}

func readPassword(f *os.File, prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, passwordLabel(prompt))
	secret, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(os.Stderr)

	if errors.Is(err, io.EOF) {
		return nil, kerrors.ErrCancelled
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return secret, nil
}

func readPasswordFromTTY(prompt string) ([]byte, error) {
	ttyPath := "/dev/tty"
	if runtime.GOOS == "windows" {
		ttyPath = "CON"
	}

	tty, err := os.Open(ttyPath)
	if err != nil {
		return nil, fmt.Errorf("%w: no terminal available to read a password (%s: %v)", kerrors.ErrInvalidInput, ttyPath, err)
	}
	defer tty.Close()

	if !term.IsTerminal(int(tty.Fd())) {
		return nil, fmt.Errorf("%w: %s is not a terminal", kerrors.ErrInvalidInput, ttyPath)
	}

	return readPassword(tty, prompt)
}
