package utils

import (
	"errors"
	"strings"
	"testing"
)

func TestReadValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "s3cret", "s3cret"},
		{"trailing newline", "s3cret\n", "s3cret"},
		{"crlf", "s3cret\r\n", "s3cret"},
		{"only one newline stripped", "s3cret\n\n", "s3cret\n"},
		{"multi-line", "line1\nline2\n", "line1\nline2"},
		{"leading space kept", "  padded", "  padded"},
		{"lone trailing cr kept", "s3cret\r", "s3cret\r"},
		{"cr kept before stripped lf only once", "s3cret\r\r\n", "s3cret\r"},
		{"inner cr kept", "a\rb", "a\rb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadValue(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadValue: %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadValue(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestReadValueEmpty(t *testing.T) {
	for _, input := range []string{"", "\n", "\r\n"} {
		if _, err := ReadValue(strings.NewReader(input)); err == nil {
			t.Errorf("ReadValue(%q) expected error", input)
		}
	}
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestReadValueReadError(t *testing.T) {
	_, err := ReadValue(brokenReader{})
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected wrapped read error, got %v", err)
	}
}
