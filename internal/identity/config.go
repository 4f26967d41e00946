package identity

import (
	"context"

	"github.com/fragmentid/fragment-cli/internal/keys"
	"github.com/fragmentid/fragment-cli/internal/prompt"
	"github.com/fragmentid/fragment-cli/internal/secrets"
)

// DefaultClientID identifies this CLI to the identity service.
const DefaultClientID = "fragment-cli"

// DefaultScopes are requested when no scopes are configured.
var DefaultScopes = []string{"openid", "profile", "fragments:read", "fragments:write"}

// PasswordProvider answers the SDK's password prompts.
type PasswordProvider interface {
	GetPassword(prompt string) (string, error)
}

// DeviceKeyFunc returns raw device key bytes for a key ID.
type DeviceKeyFunc func(ctx context.Context, keyID string) ([]byte, error)

// SSHKeyFunc returns SSH key material for a key ID.
type SSHKeyFunc func(ctx context.Context, keyID string) (*keys.SSHKeyMaterial, error)

// KeyStorage is the SDK's device key storage provider.
type KeyStorage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// ClientConfig is everything the identity SDK needs at construction time.
type ClientConfig struct {
	APIBaseURL        string
	ClientID          string
	Scopes            []string
	PasswordProvider  PasswordProvider
	DeviceKeyProvider DeviceKeyFunc
	SSHKeyProvider    SSHKeyFunc
	DeviceKeyStorage  KeyStorage
	Debug             bool
}

// Options are the inputs to NewClientConfig. Nil providers leave the
// matching callback unset.
type Options struct {
	APIBaseURL string
	ClientID   string
	Scopes     []string
	Debug      bool

	Prompter   prompt.CredentialPrompter
	DeviceKeys *keys.DeviceKeyProvider
	SSHKeys    *keys.SSHKeyProvider
	Secrets    secrets.Store
}

// NewClientConfig binds the providers and fills in client defaults.
func NewClientConfig(opts Options) ClientConfig {
	cfg := ClientConfig{
		APIBaseURL: opts.APIBaseURL,
		ClientID:   opts.ClientID,
		Scopes:     opts.Scopes,
		Debug:      opts.Debug,
	}
	if cfg.ClientID == "" {
		cfg.ClientID = DefaultClientID
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = append([]string(nil), DefaultScopes...)
	}

	if opts.Prompter != nil {
		cfg.PasswordProvider = opts.Prompter
	}
	if opts.DeviceKeys != nil {
		cfg.DeviceKeyProvider = opts.DeviceKeys.Resolve
	}
	if opts.SSHKeys != nil {
		cfg.SSHKeyProvider = opts.SSHKeys.Resolve
	}
	if opts.Secrets != nil {
		cfg.DeviceKeyStorage = secrets.NewStorageAdapter(opts.Secrets)
	}
	return cfg
}

// Providers lists which optional callbacks are bound, for diagnostics.
func (c ClientConfig) Providers() []string {
	var names []string
	if c.PasswordProvider != nil {
		names = append(names, "password")
	}
	if c.DeviceKeyProvider != nil {
		names = append(names, "deviceKey")
	}
	if c.SSHKeyProvider != nil {
		names = append(names, "sshKey")
	}
	if c.DeviceKeyStorage != nil {
		names = append(names, "deviceKeyStorage")
	}
	return names
}
