// Package prompt asks the user for credentials and confirmations.
//
// CredentialPrompter is what the key providers and the identity SDK's
// password callback depend on; tests substitute a scripted fake. Console is
// the interactive implementation: passwords are read without echo through
// golang.org/x/term, text and y/N confirmations through promptui.
//
// Interrupting a prompt yields errors.ErrCancelled. Nothing in this package
// exits the process; the command layer decides what a cancellation means.
package prompt
