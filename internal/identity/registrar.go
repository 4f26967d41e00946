package identity

import (
	"context"
	"fmt"

	"github.com/fragmentid/fragment-cli/internal/configs"
	kerrors "github.com/fragmentid/fragment-cli/internal/errors"
)

// DeviceKeyRegistrar enrols a freshly generated device key with the
// identity service under keyID.
type DeviceKeyRegistrar interface {
	RegisterDeviceKey(ctx context.Context, keyID string, key []byte) error
}

// ConfigRegistrar records the key ID in the config store. The next SDK
// session reads deviceKeyId and completes enrolment with the service.
type ConfigRegistrar struct {
	Config *configs.Store
}

func (r *ConfigRegistrar) RegisterDeviceKey(ctx context.Context, keyID string, key []byte) error {
	if keyID == "" || len(key) == 0 {
		return fmt.Errorf("%w: device key registration needs a key ID and key", kerrors.ErrInvalidInput)
	}
	if err := r.Config.Set(configs.KeyDeviceKeyID, keyID); err != nil {
		return fmt.Errorf("failed to record device key ID: %w", err)
	}
	return nil
}

// PendingKeyID returns the recorded key ID, if any.
func (r *ConfigRegistrar) PendingKeyID() (string, bool) {
	return r.Config.Get(configs.KeyDeviceKeyID)
}

// Forget drops the recorded key ID.
func (r *ConfigRegistrar) Forget() error {
	return r.Config.Delete(configs.KeyDeviceKeyID)
}
