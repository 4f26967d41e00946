package configs

import (
	"fmt"
	"os"
	"sort"

	kerrors "github.com/fragmentid/fragment-cli/internal/errors"
)

// Keys recognised in config.toml.
const (
	KeyAPIBaseURL     = "apiBaseUrl"
	KeyLastUser       = "lastUser"
	KeyProvider       = "provider"
	KeyGCPProject     = "gcpProject"
	KeyKeyringBackend = "keyringBackend"
	KeyDeviceKeyID    = "deviceKeyId"
)

// KnownKeys lists every key the CLI reads, in display order.
var KnownKeys = []string{
	KeyAPIBaseURL,
	KeyLastUser,
	KeyProvider,
	KeyGCPProject,
	KeyKeyringBackend,
	KeyDeviceKeyID,
}

// ValueReader is the read side of the config store.
type ValueReader interface {
	Get(key string) (string, bool)
}

// Store is a string-to-string mapping persisted in a single TOML file.
// Every mutation is written through to disk immediately.
type Store struct {
	path   string
	values map[string]string
}

// OpenStore loads the store at path. A missing file yields an empty store.
func OpenStore(path string) (*Store, error) {
	s := &Store{
		path:   path,
		values: make(map[string]string),
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, nil
	}

	if err := LoadTOML(path, &s.values); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	return s, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value for key and whether it is present.
func (s *Store) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Set stores value under key and saves the file.
func (s *Store) Set(key, value string) error {
	previous, existed := s.values[key]
	s.values[key] = value

	if err := s.save(); err != nil {
		if existed {
			s.values[key] = previous
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

// Delete removes key and saves the file. Deleting an absent key does nothing.
func (s *Store) Delete(key string) error {
	previous, existed := s.values[key]
	if !existed {
		return nil
	}
	delete(s.values, key)

	if err := s.save(); err != nil {
		s.values[key] = previous
		return err
	}
	return nil
}

// Keys returns the stored keys in sorted order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *Store) save() error {
	if err := SaveTOML(s.path, s.values); err != nil {
		return fmt.Errorf("failed to save config %s: %w", s.path, err)
	}
	return nil
}

// ValidateKey returns ErrUnknownConfigKey unless key is one of KnownKeys.
func ValidateKey(key string) error {
	for _, k := range KnownKeys {
		if k == key {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", kerrors.ErrUnknownConfigKey, key)
}
