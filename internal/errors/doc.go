// Package errors provides typed error values for the fragment CLI.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Four broad categories exist, and every more specific error wraps one of them:
//
//   - ErrNotFound: a secret, device key or SSH key is absent. Callers may
//     recover by prompting or by trying another candidate.
//   - ErrBackendUnavailable: the secret backend could not be reached or
//     initialized. Fatal for the current command.
//   - ErrInvalidInput: malformed identifier, bad flag value, wrong passphrase.
//   - ErrCancelled: the user aborted an interactive prompt. This is a clean
//     early exit, not a failure.
//
// # Usage
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("%w: %s", errors.ErrDeviceKeyNotFound, keyID)
//
// Handle errors in the CLI layer:
//
//	if errors.Is(err, kerrors.ErrCancelled) {
//	    return nil
//	}
package errors
