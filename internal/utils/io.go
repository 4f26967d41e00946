package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadStdin reads a value piped on stdin.
// Returns an error if stdin is a terminal (no piped data) or is empty.
func ReadStdin() (string, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat stdin: %w", err)
	}

	// ModeCharDevice is set when stdin is connected to a terminal.
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return "", fmt.Errorf("no data provided on stdin (hint: pipe the value to this command)")
	}

	return ReadValue(os.Stdin)
}

// ReadValue reads all of r and strips a single trailing line ending (LF or CRLF).
// Inner newlines are kept so multi-line values survive intact.
func ReadValue(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read from stdin: %w", err)
	}

	value := string(data)
	if trimmed, ok := strings.CutSuffix(value, "\n"); ok {
		// A CR only belongs to the line ending when it precedes the LF.
		value = strings.TrimSuffix(trimmed, "\r")
	}
	if value == "" {
		return "", fmt.Errorf("stdin is empty")
	}
	return value, nil
}
