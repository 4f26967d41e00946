package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/99designs/keyring"

	kerrors "github.com/fragmentid/fragment-cli/internal/errors"
	"github.com/fragmentid/fragment-cli/internal/prompt"
)

// KeyringPasswordEnv supplies the file keyring password non-interactively.
const KeyringPasswordEnv = "FRAGMENT_KEYRING_PASSWORD"

var keyringBackends = map[string]keyring.BackendType{
	"keychain":       keyring.KeychainBackend,
	"secret-service": keyring.SecretServiceBackend,
	"kwallet":        keyring.KWalletBackend,
	"wincred":        keyring.WinCredBackend,
	"pass":           keyring.PassBackend,
	"keyctl":         keyring.KeyCtlBackend,
	"file":           keyring.FileBackend,
}

// KeyringBackendNames lists the values accepted for the keyringBackend setting.
func KeyringBackendNames() []string {
	names := make([]string, 0, len(keyringBackends))
	for name := range keyringBackends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KeyringOptions configures the local backend.
type KeyringOptions struct {
	// Backend restricts the keyring implementation. Empty selects the first
	// available OS keychain and never the password-protected file backend.
	Backend string

	// FileDir holds the file backend's encrypted entries.
	FileDir string

	// Prompter supplies the file backend password.
	Prompter prompt.CredentialPrompter
}

// KeyringStore is the local backend on top of the OS keychain.
// One keyring is opened per service name and reused.
type KeyringStore struct {
	open  func(service string) (keyring.Keyring, error)
	rings map[string]keyring.Keyring
}

// NewKeyringStore validates opts and returns a store that opens keyrings lazily.
func NewKeyringStore(opts KeyringOptions) (*KeyringStore, error) {
	allowed, err := allowedBackends(opts.Backend)
	if err != nil {
		return nil, err
	}

	return newKeyringStore(func(service string) (keyring.Keyring, error) {
		return keyring.Open(keyring.Config{
			ServiceName:                    service,
			AllowedBackends:                allowed,
			KeychainTrustApplication:       true,
			KeychainAccessibleWhenUnlocked: true,
			KWalletAppID:                   service,
			KWalletFolder:                  service,
			WinCredPrefix:                  service,
			LibSecretCollectionName:        "login",
			FileDir:                        opts.FileDir,
			FilePasswordFunc:               filePasswordFunc(opts.Prompter),
		})
	}), nil
}

func newKeyringStore(open func(service string) (keyring.Keyring, error)) *KeyringStore {
	return &KeyringStore{
		open:  open,
		rings: make(map[string]keyring.Keyring),
	}
}

func (s *KeyringStore) Provider() Provider {
	return ProviderLocal
}

func (s *KeyringStore) Get(ctx context.Context, service, key string) (string, bool, error) {
	ring, err := s.ring(service)
	if err != nil {
		return "", false, err
	}

	item, err := ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, s.wrap("read", err)
	}

	return string(item.Data), true, nil
}

func (s *KeyringStore) Set(ctx context.Context, service, key, value string) error {
	ring, err := s.ring(service)
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:         key,
		Data:        []byte(value),
		Label:       service + ": " + key,
		Description: "fragment CLI secret",
	})
	if err != nil {
		return s.wrap("write", err)
	}
	return nil
}

func (s *KeyringStore) Delete(ctx context.Context, service, key string) error {
	ring, err := s.ring(service)
	if err != nil {
		return err
	}

	err = ring.Remove(key)
	if err == nil || errors.Is(err, keyring.ErrKeyNotFound) || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return s.wrap("delete", err)
}

func (s *KeyringStore) ring(service string) (keyring.Keyring, error) {
	if ring, ok := s.rings[service]; ok {
		return ring, nil
	}

	ring, err := s.open(service)
	if err != nil {
		return nil, s.wrap("open keyring", err)
	}
	s.rings[service] = ring
	return ring, nil
}

// wrap keeps user cancellation distinct from backend failure.
func (s *KeyringStore) wrap(op string, err error) error {
	if errors.Is(err, kerrors.ErrCancelled) {
		return err
	}
	return unavailable(ProviderLocal, op, err)
}

func allowedBackends(name string) ([]keyring.BackendType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name != "" {
		backend, ok := keyringBackends[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown keyring backend %q (expected one of %s)",
				kerrors.ErrInvalidInput, name, strings.Join(KeyringBackendNames(), ", "))
		}
		return []keyring.BackendType{backend}, nil
	}

	var allowed []keyring.BackendType
	for _, b := range keyring.AvailableBackends() {
		if b != keyring.FileBackend {
			allowed = append(allowed, b)
		}
	}
	if len(allowed) == 0 {
		return nil, fmt.Errorf("%w: no OS keychain found on this system (set keyringBackend to file to use an encrypted file instead)",
			kerrors.ErrBackendUnavailable)
	}
	return allowed, nil
}

func filePasswordFunc(p prompt.CredentialPrompter) keyring.PromptFunc {
	if pw, ok := os.LookupEnv(KeyringPasswordEnv); ok {
		return keyring.FixedStringPrompt(pw)
	}
	return func(message string) (string, error) {
		if p == nil {
			return "", fmt.Errorf("%w: keyring password required but no prompt is available (set %s)",
				kerrors.ErrInvalidInput, KeyringPasswordEnv)
		}
		return p.GetPassword(message)
	}
}
