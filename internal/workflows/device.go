package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fragmentid/fragment-cli/internal/audit"
	"github.com/fragmentid/fragment-cli/internal/configs"
	"github.com/fragmentid/fragment-cli/internal/device"
	kerrors "github.com/fragmentid/fragment-cli/internal/errors"
	"github.com/fragmentid/fragment-cli/internal/identity"
	"github.com/fragmentid/fragment-cli/internal/keys"
	logger "github.com/fragmentid/fragment-cli/internal/logging"
	"github.com/fragmentid/fragment-cli/internal/secrets"
)

// RegisterDeviceOptions configures the device registration workflow.
type RegisterDeviceOptions struct {
	Secrets   secrets.Store
	Registrar identity.DeviceKeyRegistrar
	Trail     *audit.Trail

	// DeviceID overrides the derived device ID. Tests use it.
	DeviceID string

	// Force replaces an existing device key. Without it an existing key
	// yields ErrDeviceKeyExists so the caller can confirm first.
	Force bool

	// User is recorded in the audit trail.
	User string

	Now func() time.Time
	Log logger.Logger
}

// RegisterDeviceResult contains the outcome of a registration.
type RegisterDeviceResult struct {
	DeviceID string
	KeyID    string
	Provider secrets.Provider

	// Replaced is true when an existing device key was overwritten.
	Replaced bool

	// AuditErr is set when the audit entry could not be written.
	AuditErr error
}

// RegisterDevice generates a device key, stores it in the secret backend
// and hands it to the registrar under a freshly minted key ID. If the
// registrar fails the previously stored key (or its absence) is restored.
//
// Returns ErrDeviceKeyExists if a key is already stored and Force is false.
func RegisterDevice(ctx context.Context, opts RegisterDeviceOptions) (*RegisterDeviceResult, error) {
	deviceID, err := resolveDeviceID(opts.DeviceID)
	if err != nil {
		return nil, err
	}

	provider := keys.NewDeviceKeyProvider(opts.Secrets, opts.Log)

	previous, exists, err := provider.Snapshot(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("checking for existing device key: %w", err)
	}
	if exists && !opts.Force {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrDeviceKeyExists, deviceID)
	}

	key, err := keys.GenerateDeviceKey()
	if err != nil {
		return nil, err
	}

	opts.Log.Debugf("Storing device key for %s (replace=%t)", deviceID, exists)
	if err := provider.Save(ctx, deviceID, key); err != nil {
		return nil, fmt.Errorf("storing device key: %w", err)
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	keyID := device.NewKeyID(deviceID, now())

	if opts.Registrar != nil {
		if err := opts.Registrar.RegisterDeviceKey(ctx, keyID, key); err != nil {
			// The new key was never enrolled; the previous one must stay usable.
			if restoreErr := provider.Restore(ctx, deviceID, previous, exists); restoreErr != nil {
				opts.Log.Errorf("Could not restore the previous device key for %s: %v", deviceID, restoreErr)
				return nil, fmt.Errorf("registering device key %s: %w (restoring the previous key also failed: %v)", keyID, err, restoreErr)
			}
			opts.Log.Debugf("Registration failed, restored previous device key state for %s", deviceID)
			return nil, fmt.Errorf("registering device key %s: %w", keyID, err)
		}
	}

	result := &RegisterDeviceResult{
		DeviceID: deviceID,
		KeyID:    keyID,
		Provider: opts.Secrets.Provider(),
		Replaced: exists,
	}
	result.AuditErr = opts.Trail.Log(audit.Entry{
		Operation: audit.OpDeviceRegister,
		User:      opts.User,
		DeviceID:  deviceID,
		KeyID:     keyID,
		Provider:  string(result.Provider),
		Replaced:  exists,
	})

	return result, nil
}

// RemoveDeviceOptions configures the device removal workflow.
type RemoveDeviceOptions struct {
	Secrets secrets.Store
	Trail   *audit.Trail

	// Config, when set, has its recorded deviceKeyId cleared.
	Config *configs.Store

	DeviceID string
	User     string
	Log      logger.Logger
}

// RemoveDeviceResult contains the outcome of a removal.
type RemoveDeviceResult struct {
	DeviceID string
	Provider secrets.Provider

	// Removed is false when there was no key to remove.
	Removed  bool
	AuditErr error
}

// RemoveDevice deletes the stored device key. Removing a missing key is not
// an error; Removed reports whether anything was deleted.
func RemoveDevice(ctx context.Context, opts RemoveDeviceOptions) (*RemoveDeviceResult, error) {
	deviceID, err := resolveDeviceID(opts.DeviceID)
	if err != nil {
		return nil, err
	}

	provider := keys.NewDeviceKeyProvider(opts.Secrets, opts.Log)
	exists, err := provider.Exists(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("checking for device key: %w", err)
	}

	result := &RemoveDeviceResult{DeviceID: deviceID, Provider: opts.Secrets.Provider()}
	if !exists {
		return result, nil
	}

	if err := provider.Remove(ctx, deviceID); err != nil {
		return nil, fmt.Errorf("removing device key: %w", err)
	}
	result.Removed = true

	if opts.Config != nil {
		registrar := &identity.ConfigRegistrar{Config: opts.Config}
		if err := registrar.Forget(); err != nil {
			opts.Log.Warnf("Device key removed but %s could not be cleared: %v", configs.KeyDeviceKeyID, err)
		}
	}

	result.AuditErr = opts.Trail.Log(audit.Entry{
		Operation: audit.OpDeviceRemove,
		User:      opts.User,
		DeviceID:  deviceID,
		Provider:  string(result.Provider),
	})
	return result, nil
}

// DeviceStatusOptions configures the device status workflow.
type DeviceStatusOptions struct {
	Secrets secrets.Store

	// Client supplies the storage and device key callbacks handed to the
	// identity SDK. Unset callbacks are bound to Secrets.
	Client identity.ClientConfig

	Config   *configs.Store
	DeviceID string
	Log      logger.Logger
}

// DeviceStatusResult describes the local device key state.
type DeviceStatusResult struct {
	DeviceID  string
	Provider  secrets.Provider
	KeyStored bool

	// PendingKeyID is the recorded deviceKeyId, if any.
	PendingKeyID string

	// RegisteredAt is parsed from PendingKeyID when it belongs to this device.
	RegisteredAt time.Time

	// KeyResolves reports whether PendingKeyID resolves to a device key the
	// way the identity SDK would look it up. ResolveErr holds the reason
	// when it does not.
	KeyResolves bool
	ResolveErr  error
}

// DeviceStatus reports whether a device key is stored for this device and
// whether the recorded key ID resolves to it.
func DeviceStatus(ctx context.Context, opts DeviceStatusOptions) (*DeviceStatusResult, error) {
	deviceID, err := resolveDeviceID(opts.DeviceID)
	if err != nil {
		return nil, err
	}

	storage := opts.Client.DeviceKeyStorage
	if storage == nil {
		storage = secrets.NewStorageAdapter(opts.Secrets)
	}
	resolve := opts.Client.DeviceKeyProvider
	if resolve == nil {
		resolve = keys.NewDeviceKeyProvider(opts.Secrets, opts.Log).Resolve
	}

	_, stored, err := storage.Get(ctx, device.StorageKey(deviceID))
	if err != nil {
		return nil, fmt.Errorf("checking for device key: %w", err)
	}

	result := &DeviceStatusResult{
		DeviceID:  deviceID,
		Provider:  opts.Secrets.Provider(),
		KeyStored: stored,
	}

	if opts.Config == nil {
		return result, nil
	}
	keyID, ok := (&identity.ConfigRegistrar{Config: opts.Config}).PendingKeyID()
	if !ok {
		return result, nil
	}
	result.PendingKeyID = keyID
	if id, createdAt, ok := device.ParseKeyID(keyID); ok && id == deviceID {
		result.RegisteredAt = createdAt
	}

	if _, err := resolve(ctx, keyID); err != nil {
		if !errors.Is(err, kerrors.ErrNotFound) && !errors.Is(err, kerrors.ErrInvalidInput) {
			return nil, fmt.Errorf("resolving device key %s: %w", keyID, err)
		}
		result.ResolveErr = err
	} else {
		result.KeyResolves = true
	}

	return result, nil
}

func resolveDeviceID(id string) (string, error) {
	if id != "" {
		return id, nil
	}
	id, err := device.CurrentDeviceID()
	if err != nil {
		return "", fmt.Errorf("deriving device ID: %w", err)
	}
	return id, nil
}
