package workflows

import (
	"context"

	"github.com/fragmentid/fragment-cli/internal/configs"
	"github.com/fragmentid/fragment-cli/internal/identity"
	logger "github.com/fragmentid/fragment-cli/internal/logging"
	"github.com/fragmentid/fragment-cli/internal/secrets"
)

// ShowConfigOptions configures the config show workflow.
type ShowConfigOptions struct {
	Config     configs.ValueReader
	ConfigPath string
	APIURLFlag string

	// Client is the identity SDK configuration built for this invocation.
	// When unset only the client defaults are reported.
	Client identity.ClientConfig

	// DeviceID overrides the derived device ID.
	DeviceID string
	Log      logger.Logger
}

// ShowConfigResult is the effective configuration of this invocation.
type ShowConfigResult struct {
	ConfigPath string
	APIBaseURL string
	APISource  configs.URLSource
	Provider   secrets.Provider
	DeviceID   string
	LastUser   string

	ClientID string
	Scopes   []string

	// Providers names the SDK callbacks that are bound.
	Providers []string
}

// ShowConfig resolves every effective setting without reading from the
// secret backend. An invalid provider setting is returned as an error.
func ShowConfig(ctx context.Context, opts ShowConfigOptions) (*ShowConfigResult, error) {
	url, source := configs.ResolveAPIBaseURLSource(opts.Config, opts.APIURLFlag)

	var providerName, lastUser string
	if opts.Config != nil {
		providerName, _ = opts.Config.Get(configs.KeyProvider)
		lastUser, _ = opts.Config.Get(configs.KeyLastUser)
	}
	provider, err := secrets.ParseProvider(providerName)
	if err != nil {
		return nil, err
	}

	deviceID, err := resolveDeviceID(opts.DeviceID)
	if err != nil {
		return nil, err
	}

	client := opts.Client
	if client.ClientID == "" {
		client = identity.NewClientConfig(identity.Options{APIBaseURL: url})
	}

	return &ShowConfigResult{
		ConfigPath: opts.ConfigPath,
		APIBaseURL: url,
		APISource:  source,
		Provider:   provider,
		DeviceID:   deviceID,
		LastUser:   lastUser,
		ClientID:   client.ClientID,
		Scopes:     client.Scopes,
		Providers:  client.Providers(),
	}, nil
}
