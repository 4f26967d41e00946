package keys

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/fragmentid/fragment-cli/internal/device"
	kerrors "github.com/fragmentid/fragment-cli/internal/errors"
	logger "github.com/fragmentid/fragment-cli/internal/logging"
	"github.com/fragmentid/fragment-cli/internal/secrets"
)

// DeviceKeySize is the length in bytes of a generated device key.
const DeviceKeySize = 32

// DeviceKeyProvider reads and writes device keys in the secret backend.
type DeviceKeyProvider struct {
	Secrets secrets.Store
	Log     logger.Logger
}

// NewDeviceKeyProvider binds a provider to store.
func NewDeviceKeyProvider(store secrets.Store, log logger.Logger) *DeviceKeyProvider {
	return &DeviceKeyProvider{Secrets: store, Log: log}
}

// Resolve returns the raw device key for a key ID or a bare device ID.
func (p *DeviceKeyProvider) Resolve(ctx context.Context, identifier string) ([]byte, error) {
	if identifier == "" {
		return nil, fmt.Errorf("%w: empty device key identifier", kerrors.ErrInvalidInput)
	}

	value, found, err := p.lookup(ctx, identifier)
	if err != nil {
		return nil, err
	}

	// Older releases stored keys under the bare device ID.
	if !found {
		if deviceID, _, ok := device.ParseKeyID(identifier); ok {
			p.Log.Debugf("No device key under %s, retrying with device ID %s", identifier, deviceID)
			value, found, err = p.lookup(ctx, deviceID)
			if err != nil {
				return nil, err
			}
		}
	}

	if !found {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrDeviceKeyNotFound, identifier)
	}

	key, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: stored device key for %s is not valid base64: %v", kerrors.ErrInvalidInput, identifier, err)
	}
	return key, nil
}

func (p *DeviceKeyProvider) lookup(ctx context.Context, id string) (string, bool, error) {
	storageKey := device.StorageKey(id)
	p.Log.Debugf("Looking up %s in %s backend", storageKey, p.Secrets.Provider())
	return p.Secrets.Get(ctx, secrets.ServiceName, storageKey)
}

// Exists reports whether a device key is stored for deviceID.
func (p *DeviceKeyProvider) Exists(ctx context.Context, deviceID string) (bool, error) {
	_, found, err := p.lookup(ctx, deviceID)
	return found, err
}

// Save stores key for deviceID, replacing any existing key.
func (p *DeviceKeyProvider) Save(ctx context.Context, deviceID string, key []byte) error {
	if deviceID == "" {
		return fmt.Errorf("%w: empty device ID", kerrors.ErrInvalidInput)
	}
	return p.Secrets.Set(ctx, secrets.ServiceName, device.StorageKey(deviceID), base64.StdEncoding.EncodeToString(key))
}

// Snapshot returns the encoded key currently stored for deviceID so that a
// replacement can be rolled back with Restore.
func (p *DeviceKeyProvider) Snapshot(ctx context.Context, deviceID string) (encoded string, found bool, err error) {
	return p.lookup(ctx, deviceID)
}

// Restore puts back a value taken by Snapshot. A snapshot of an absent key
// removes whatever is stored now.
func (p *DeviceKeyProvider) Restore(ctx context.Context, deviceID, encoded string, found bool) error {
	if !found {
		return p.Remove(ctx, deviceID)
	}
	return p.Secrets.Set(ctx, secrets.ServiceName, device.StorageKey(deviceID), encoded)
}

// Remove deletes the device key for deviceID. Removing an absent key succeeds.
func (p *DeviceKeyProvider) Remove(ctx context.Context, deviceID string) error {
	return p.Secrets.Delete(ctx, secrets.ServiceName, device.StorageKey(deviceID))
}

// GenerateDeviceKey returns DeviceKeySize bytes from crypto/rand.
func GenerateDeviceKey() ([]byte, error) {
	key := make([]byte, DeviceKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate device key: %w", err)
	}
	return key, nil
}
