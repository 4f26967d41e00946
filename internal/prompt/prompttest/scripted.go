// Package prompttest provides a scripted prompt.Prompter for tests.
package prompttest

import (
	"fmt"

	kerrors "github.com/fragmentid/fragment-cli/internal/errors"
)

// Scripted answers prompts from queues and records what was asked.
// An exhausted queue answers with errors.ErrCancelled.
type Scripted struct {
	Passwords []string
	Texts     []string
	Confirms  []bool

	Asked []string
}

func (s *Scripted) GetPassword(prompt string) (string, error) {
	s.Asked = append(s.Asked, prompt)
	if len(s.Passwords) == 0 {
		return "", kerrors.ErrCancelled
	}
	v := s.Passwords[0]
	s.Passwords = s.Passwords[1:]
	return v, nil
}

func (s *Scripted) GetText(prompt string) (string, error) {
	s.Asked = append(s.Asked, prompt)
	if len(s.Texts) == 0 {
		return "", kerrors.ErrCancelled
	}
	v := s.Texts[0]
	s.Texts = s.Texts[1:]
	return v, nil
}

func (s *Scripted) Confirm(prompt string) (bool, error) {
	s.Asked = append(s.Asked, prompt)
	if len(s.Confirms) == 0 {
		return false, kerrors.ErrCancelled
	}
	v := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return v, nil
}

// String summarises remaining answers, handy in failure messages.
func (s *Scripted) String() string {
	return fmt.Sprintf("Scripted{passwords:%d texts:%d confirms:%d asked:%q}",
		len(s.Passwords), len(s.Texts), len(s.Confirms), s.Asked)
}
