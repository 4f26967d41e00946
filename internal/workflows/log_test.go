package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/fragmentid/fragment-cli/internal/audit"
	kerrors "github.com/fragmentid/fragment-cli/internal/errors"
)

func seedTrail(t *testing.T) *audit.Trail {
	t.Helper()
	trail := newTrail(t)
	entries := []audit.Entry{
		{Timestamp: "2024-01-10T09:00:00.000000Z", Operation: audit.OpDeviceRegister, KeyID: "device:a:1"},
		{Timestamp: "2024-01-12T09:00:00.000000Z", Operation: audit.OpSecretSet, Key: "one"},
		{Timestamp: "2024-01-15T23:59:00.000000Z", Operation: audit.OpSecretSet, Key: "two", Replaced: true},
		{Timestamp: "2024-01-20T09:00:00.000000Z", Operation: audit.OpSecretDelete, Key: "one"},
	}
	for _, e := range entries {
		if err := trail.Log(e); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}
	return trail
}

func TestLogFilters(t *testing.T) {
	tests := []struct {
		name     string
		opts     LogOptions
		wantKeys []string
	}{
		{"All", LogOptions{}, []string{"", "one", "two", "one"}},
		{"Operations", LogOptions{Operations: "secret.set, SECRET.DELETE"}, []string{"one", "two", "one"}},
		{"Since", LogOptions{Since: "2024-01-12"}, []string{"one", "two", "one"}},
		{"UntilIncludesWholeDay", LogOptions{Until: "2024-01-15"}, []string{"", "one", "two"}},
		{"Limit", LogOptions{Limit: 2}, []string{"two", "one"}},
		{"ReverseLimit", LogOptions{Reverse: true, Limit: 2}, []string{"one", "two"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.opts.Trail = seedTrail(t)
			result, err := Log(context.Background(), tc.opts)
			if err != nil {
				t.Fatalf("Log failed: %v", err)
			}
			if result.TotalEntriesBeforeFilter != 4 {
				t.Errorf("TotalEntriesBeforeFilter = %d", result.TotalEntriesBeforeFilter)
			}
			if len(result.Entries) != len(tc.wantKeys) {
				t.Fatalf("got %d entries, want %d", len(result.Entries), len(tc.wantKeys))
			}
			for i, want := range tc.wantKeys {
				if result.Entries[i].Key != want {
					t.Errorf("entry %d key = %q, want %q", i, result.Entries[i].Key, want)
				}
			}
		})
	}
}

func TestLogInvalidDate(t *testing.T) {
	_, err := Log(context.Background(), LogOptions{Trail: newTrail(t), Since: "15/01/2024"})
	if !errors.Is(err, kerrors.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLogMissingTrail(t *testing.T) {
	result, err := Log(context.Background(), LogOptions{Trail: newTrail(t)})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if len(result.Entries) != 0 {
		t.Errorf("expected no entries, got %d", len(result.Entries))
	}
}

func TestFormatDetails(t *testing.T) {
	tests := []struct {
		entry audit.Entry
		want  string
	}{
		{audit.Entry{Operation: audit.OpSecretSet, Key: "k"}, "k"},
		{audit.Entry{Operation: audit.OpSecretSet, Key: "k", Replaced: true}, "k (replaced)"},
		{audit.Entry{Operation: audit.OpSecretDelete, Key: "k"}, "k"},
		{audit.Entry{Operation: audit.OpDeviceRegister, KeyID: "device:a:1"}, "device:a:1"},
		{audit.Entry{Operation: audit.OpDeviceRemove, DeviceID: "a"}, "a"},
		{audit.Entry{Operation: "unknown"}, ""},
	}
	for _, tc := range tests {
		if got := FormatDetails(tc.entry); got != tc.want {
			t.Errorf("FormatDetails(%+v) = %q, want %q", tc.entry, got, tc.want)
		}
	}
}

func TestFormatDateTime(t *testing.T) {
	if got := FormatDateTime("2024-01-15T10:30:00.123456Z"); got != "2024-01-15 10:30:00" {
		t.Errorf("got %q", got)
	}
	if got := FormatDateTime("garbage"); got != "garbage" {
		t.Errorf("got %q", got)
	}
}
