package prompt

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/manifoldco/promptui"

	kerrors "github.com/fragmentid/fragment-cli/internal/errors"
)

func TestConsoleImplementsPrompter(t *testing.T) {
	var _ Prompter = NewConsole()
	var _ CredentialPrompter = NewConsole()
}

func TestMapPromptError(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantCancelled bool
	}{
		{"Interrupt", promptui.ErrInterrupt, true},
		{"EOF", promptui.ErrEOF, true},
		{"WrappedInterrupt", fmt.Errorf("prompt: %w", promptui.ErrInterrupt), true},
		{"Other", errors.New("terminal exploded"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := mapPromptError(tc.err)
			if errors.Is(got, kerrors.ErrCancelled) != tc.wantCancelled {
				t.Errorf("mapPromptError(%v) = %v, cancelled want %t", tc.err, got, tc.wantCancelled)
			}
		})
	}
}

func TestPasswordLabel(t *testing.T) {
	tests := []struct {
		prompt string
		want   string
	}{
		{"Value for api-token", "Value for api-token: "},
		{"Value for api-token: ", "Value for api-token: "},
		{"Value for api-token:", "Value for api-token: "},
		{"Passphrase for /home/ada/.ssh/id_ed25519 (leave empty for none)", "Passphrase for /home/ada/.ssh/id_ed25519 (leave empty for none): "},
		{"Enter passphrase to unlock \"/tmp/keyring\"", "Enter passphrase to unlock \"/tmp/keyring\": "},
	}

	for _, tc := range tests {
		if got := passwordLabel(tc.prompt); got != tc.want {
			t.Errorf("passwordLabel(%q) = %q, want %q", tc.prompt, got, tc.want)
		}
		if strings.Contains(passwordLabel(tc.prompt), ": :") {
			t.Errorf("passwordLabel(%q) doubled the separator", tc.prompt)
		}
	}
}
