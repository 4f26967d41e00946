package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Operations recorded in the audit trail.
const (
	OpDeviceRegister = "device.register"
	OpDeviceRemove   = "device.remove"
	OpSecretSet      = "secret.set"
	OpSecretDelete   = "secret.delete"
)

const timestampLayout = "2006-01-02T15:04:05.000000Z"

// Entry represents a single audit log entry. Secret values and key material
// are never recorded.
type Entry struct {
	ID        string `json:"id"`
	Timestamp string `json:"ts"` // RFC3339 with microseconds.
	Operation string `json:"op"`
	User      string `json:"user,omitempty"` // lastUser at the time of the operation.

	Key      string `json:"key,omitempty"`      // For secret.*.
	DeviceID string `json:"device,omitempty"`   // For device.*.
	KeyID    string `json:"key_id,omitempty"`   // For device.register.
	Provider string `json:"provider,omitempty"` // Secret backend used.
	Replaced bool   `json:"replaced,omitempty"` // An existing value was overwritten.
}

// Trail is an append-only JSON Lines file.
type Trail struct {
	Path string

	now func() time.Time
}

// NewTrail returns a trail writing to path.
func NewTrail(path string) *Trail {
	return &Trail{Path: path, now: time.Now}
}

// Log appends an entry, filling in ID and Timestamp when empty.
// If logging fails it returns the error so callers can warn, but operations
// should not fail just because audit logging failed.
func (t *Trail) Log(entry Entry) error {
	if t == nil || t.Path == "" {
		return nil
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp == "" {
		now := time.Now
		if t.now != nil {
			now = t.now
		}
		entry.Timestamp = now().UTC().Format(timestampLayout)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(t.Path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(t.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(data, '\n'))
	return err
}

// ReadEntries reads all entries from the trail.
// Returns an empty slice if the log doesn't exist.
func (t *Trail) ReadEntries() ([]Entry, error) {
	if t == nil || t.Path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(t.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data), nil
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are skipped; a crash mid-write leaves at most one.
func ParseEntries(data []byte) []Entry {
	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i < len(data) && data[i] != '\n' {
			continue
		}
		line := data[start:i]
		start = i + 1

		if len(line) == 0 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return entries
}
