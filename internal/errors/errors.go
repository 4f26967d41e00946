package errors

import (
	"errors"
	"fmt"
)

// Base categories.
var (
	// ErrNotFound indicates a secret or key is absent.
	ErrNotFound = errors.New("not found")

	// ErrBackendUnavailable indicates the secret backend cannot be reached or initialized.
	ErrBackendUnavailable = errors.New("secret backend unavailable")

	// ErrInvalidInput indicates a malformed identifier or value supplied by the user.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCancelled indicates the user aborted an interactive prompt.
	ErrCancelled = errors.New("cancelled by user")
)

// Key errors.
var (
	// ErrDeviceKeyNotFound indicates no device key is stored for the requested identifier.
	ErrDeviceKeyNotFound = fmt.Errorf("device key %w", ErrNotFound)

	// ErrSSHKeyNotFound indicates the resolved SSH private key path does not exist.
	ErrSSHKeyNotFound = fmt.Errorf("ssh key %w", ErrNotFound)

	// ErrDeviceKeyExists indicates a device key is already stored for this device.
	ErrDeviceKeyExists = errors.New("device key already exists for this device")

	// ErrIncorrectPassphrase indicates the passphrase does not decrypt the SSH key.
	ErrIncorrectPassphrase = fmt.Errorf("%w: incorrect passphrase", ErrInvalidInput)
)

// Configuration errors.
var (
	// ErrUnknownProvider indicates the configured secret provider is not supported.
	ErrUnknownProvider = fmt.Errorf("%w: unknown secret provider", ErrInvalidInput)

	// ErrUnknownConfigKey indicates the configuration key is not recognized.
	ErrUnknownConfigKey = fmt.Errorf("%w: unknown configuration key", ErrInvalidInput)
)
