package secrets

import (
	"context"
	"fmt"
	"strings"

	kerrors "github.com/fragmentid/fragment-cli/internal/errors"
)

// ServiceName is the namespace for every secret the CLI manages.
const ServiceName = "fragment-cli"

// Provider selects a secret backend.
type Provider string

const (
	// ProviderLocal stores secrets in the OS keychain.
	ProviderLocal Provider = "local"
	// ProviderGCP stores secrets in Google Cloud Secret Manager.
	ProviderGCP Provider = "gcp"
)

// DefaultProvider is used when no provider is configured.
const DefaultProvider = ProviderLocal

// Providers lists the supported backends.
var Providers = []Provider{ProviderLocal, ProviderGCP}

// ParseProvider validates a provider name. The empty string yields DefaultProvider.
func ParseProvider(name string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return DefaultProvider, nil
	case ProviderLocal, ProviderGCP:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q (expected %s or %s)", kerrors.ErrUnknownProvider, name, ProviderLocal, ProviderGCP)
	}
}

// Store is a key/value secret backend addressed by (service, key).
//
// Get reports absence through found=false with a nil error. Backend failures
// wrap errors.ErrBackendUnavailable and are never reported as absence.
// Set creates or replaces. Delete of an absent entry succeeds.
type Store interface {
	Get(ctx context.Context, service, key string) (value string, found bool, err error)
	Set(ctx context.Context, service, key, value string) error
	Delete(ctx context.Context, service, key string) error
	Provider() Provider
}

// Closer is implemented by backends holding network connections.
type Closer interface {
	Close() error
}

// Close releases backend resources when the store holds any.
func Close(s Store) error {
	if c, ok := s.(Closer); ok {
		return c.Close()
	}
	return nil
}

func unavailable(provider Provider, op string, err error) error {
	return fmt.Errorf("%w: %s %s: %v", kerrors.ErrBackendUnavailable, provider, op, err)
}
