package device

import (
	"strconv"
	"strings"
	"time"
)

const (
	keyIDPrefix      = "device:"
	storageKeyPrefix = "device-key-"
)

// NewKeyID mints a device key ID of the form device:<deviceID>:<unix millis>.
// The timestamp keeps keys registered from the same machine distinct.
func NewKeyID(deviceID string, now time.Time) string {
	return keyIDPrefix + deviceID + ":" + strconv.FormatInt(now.UnixMilli(), 10)
}

// ParseKeyID extracts the device ID and creation time from a composite key ID.
// ok is false for anything not shaped like device:<id>:<digits>.
func ParseKeyID(keyID string) (deviceID string, createdAt time.Time, ok bool) {
	rest, found := strings.CutPrefix(keyID, keyIDPrefix)
	if !found {
		return "", time.Time{}, false
	}

	deviceID, millis, found := strings.Cut(rest, ":")
	if !found || deviceID == "" || millis == "" {
		return "", time.Time{}, false
	}

	ms, err := strconv.ParseInt(millis, 10, 64)
	if err != nil || ms < 0 {
		return "", time.Time{}, false
	}

	return deviceID, time.UnixMilli(ms), true
}

// StorageKey is the secret backend key holding the device key for id.
func StorageKey(id string) string {
	return storageKeyPrefix + id
}
