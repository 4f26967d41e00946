package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/fragmentid/fragment-cli/internal/audit"
	kerrors "github.com/fragmentid/fragment-cli/internal/errors"
	logger "github.com/fragmentid/fragment-cli/internal/logging"
	"github.com/fragmentid/fragment-cli/internal/secrets"
)

// Keys with this prefix belong to device keys and cannot be edited as user secrets.
const reservedKeyPrefix = "device-key-"

// SecretOptions configures the user secret workflows.
type SecretOptions struct {
	Secrets secrets.Store
	Trail   *audit.Trail

	Key   string
	Value string // Only used by SetSecret.

	User string
	Log  logger.Logger
}

// SecretResult contains the outcome of a secret operation.
type SecretResult struct {
	Key      string
	Provider secrets.Provider

	// Value is only filled by GetSecret.
	Value string

	// Existed reports whether the key held a value before the operation.
	Existed bool

	AuditErr error
}

// SetSecret stores a user secret, replacing any previous value.
func SetSecret(ctx context.Context, opts SecretOptions) (*SecretResult, error) {
	if err := validateSecretKey(opts.Key); err != nil {
		return nil, err
	}

	_, existed, err := opts.Secrets.Get(ctx, secrets.ServiceName, opts.Key)
	if err != nil {
		return nil, err
	}

	opts.Log.Debugf("Writing %s to %s backend", opts.Key, opts.Secrets.Provider())
	if err := opts.Secrets.Set(ctx, secrets.ServiceName, opts.Key, opts.Value); err != nil {
		return nil, err
	}

	result := &SecretResult{Key: opts.Key, Provider: opts.Secrets.Provider(), Existed: existed}
	result.AuditErr = opts.Trail.Log(audit.Entry{
		Operation: audit.OpSecretSet,
		User:      opts.User,
		Key:       opts.Key,
		Provider:  string(result.Provider),
		Replaced:  existed,
	})
	return result, nil
}

// GetSecret reads a user secret.
//
// Returns ErrNotFound if the key holds no value.
func GetSecret(ctx context.Context, opts SecretOptions) (*SecretResult, error) {
	if err := validateSecretKey(opts.Key); err != nil {
		return nil, err
	}

	value, found, err := opts.Secrets.Get(ctx, secrets.ServiceName, opts.Key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("secret %q %w", opts.Key, kerrors.ErrNotFound)
	}

	return &SecretResult{Key: opts.Key, Provider: opts.Secrets.Provider(), Value: value, Existed: true}, nil
}

// DeleteSecret removes a user secret. Deleting a missing key succeeds with
// Existed=false and writes no audit entry.
func DeleteSecret(ctx context.Context, opts SecretOptions) (*SecretResult, error) {
	if err := validateSecretKey(opts.Key); err != nil {
		return nil, err
	}

	_, existed, err := opts.Secrets.Get(ctx, secrets.ServiceName, opts.Key)
	if err != nil {
		return nil, err
	}

	result := &SecretResult{Key: opts.Key, Provider: opts.Secrets.Provider(), Existed: existed}
	if !existed {
		return result, nil
	}

	if err := opts.Secrets.Delete(ctx, secrets.ServiceName, opts.Key); err != nil {
		return nil, err
	}

	result.AuditErr = opts.Trail.Log(audit.Entry{
		Operation: audit.OpSecretDelete,
		User:      opts.User,
		Key:       opts.Key,
		Provider:  string(result.Provider),
	})
	return result, nil
}

func validateSecretKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return fmt.Errorf("%w: secret key must not be empty", kerrors.ErrInvalidInput)
	case key != strings.TrimSpace(key):
		return fmt.Errorf("%w: secret key %q has leading or trailing whitespace", kerrors.ErrInvalidInput, key)
	case strings.HasPrefix(key, reservedKeyPrefix):
		return fmt.Errorf("%w: keys starting with %q are reserved for device keys", kerrors.ErrInvalidInput, reservedKeyPrefix)
	}
	return nil
}
