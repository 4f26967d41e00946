package workflows

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/fragmentid/fragment-cli/internal/audit"
	kerrors "github.com/fragmentid/fragment-cli/internal/errors"
	logger "github.com/fragmentid/fragment-cli/internal/logging"
	"github.com/fragmentid/fragment-cli/internal/secrets"
)

const testDeviceID = "0123456789abcdef"

// memoryStore is a map-backed secrets.Store.
type memoryStore struct {
	values map[string]string
	// unavailable makes every call fail like an unreachable backend.
	unavailable bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: make(map[string]string)}
}

func (m *memoryStore) Get(ctx context.Context, service, key string) (string, bool, error) {
	if m.unavailable {
		return "", false, kerrors.ErrBackendUnavailable
	}
	v, ok := m.values[service+"/"+key]
	return v, ok, nil
}

func (m *memoryStore) Set(ctx context.Context, service, key, value string) error {
	if m.unavailable {
		return kerrors.ErrBackendUnavailable
	}
	m.values[service+"/"+key] = value
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, service, key string) error {
	if m.unavailable {
		return kerrors.ErrBackendUnavailable
	}
	delete(m.values, service+"/"+key)
	return nil
}

func (m *memoryStore) Provider() secrets.Provider {
	return secrets.ProviderLocal
}

func newTrail(t *testing.T) *audit.Trail {
	t.Helper()
	return audit.NewTrail(filepath.Join(t.TempDir(), "audit.jsonl"))
}

func quietLogger() logger.Logger {
	var buf bytes.Buffer
	return logger.Logger{Out: &buf, Err: &buf}
}

func readTrail(t *testing.T, trail *audit.Trail) []audit.Entry {
	t.Helper()
	entries, err := trail.ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	return entries
}
