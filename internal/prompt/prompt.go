package prompt

// CredentialPrompter asks the user for a secret or a line of text.
// Both methods return errors.ErrCancelled when the user aborts.
type CredentialPrompter interface {
	GetPassword(prompt string) (string, error)
	GetText(prompt string) (string, error)
}

// Prompter adds yes/no confirmation for destructive operations.
type Prompter interface {
	CredentialPrompter
	Confirm(prompt string) (bool, error)
}
