package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/99designs/keyring"

	kerrors "github.com/fragmentid/fragment-cli/internal/errors"
)

func TestParseProvider(t *testing.T) {
	tests := []struct {
		in      string
		want    Provider
		wantErr bool
	}{
		{"", ProviderLocal, false},
		{"local", ProviderLocal, false},
		{"gcp", ProviderGCP, false},
		{" GCP ", ProviderGCP, false},
		{"aws", "", true},
		{"vault", "", true},
	}

	for _, tc := range tests {
		got, err := ParseProvider(tc.in)
		if tc.wantErr {
			if !errors.Is(err, kerrors.ErrUnknownProvider) {
				t.Errorf("ParseProvider(%q): expected ErrUnknownProvider, got %v", tc.in, err)
			}
			if !errors.Is(err, kerrors.ErrInvalidInput) {
				t.Errorf("ParseProvider(%q): expected ErrInvalidInput category, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseProvider(%q) failed: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseProvider(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCloseWithoutCloser(t *testing.T) {
	store := newKeyringStore(func(string) (keyring.Keyring, error) {
		return keyring.NewArrayKeyring(nil), nil
	})
	if err := Close(store); err != nil {
		t.Errorf("Close on a store without resources should succeed, got %v", err)
	}
}

func TestStorageAdapterUsesServiceName(t *testing.T) {
	ctx := context.Background()
	store := newKeyringStore(func(string) (keyring.Keyring, error) {
		return keyring.NewArrayKeyring(nil), nil
	})
	adapter := NewStorageAdapter(store)

	if err := adapter.Set(ctx, "device-key-abc", "material"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, found, err := store.Get(ctx, ServiceName, "device-key-abc")
	if err != nil || !found || got != "material" {
		t.Fatalf("expected value under %s, got %q found=%t err=%v", ServiceName, got, found, err)
	}

	got, found, err = adapter.Get(ctx, "device-key-abc")
	if err != nil || !found || got != "material" {
		t.Errorf("adapter Get = %q found=%t err=%v", got, found, err)
	}

	if err := adapter.Delete(ctx, "device-key-abc"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found, _ := adapter.Get(ctx, "device-key-abc"); found {
		t.Error("expected entry removed")
	}
}
