package device

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"os/user"
	"runtime"
)

// IDLength is the number of hex characters in a device ID.
const IDLength = 16

// HostInfo holds the host attributes a device ID is derived from.
type HostInfo struct {
	Platform string
	Hostname string
	Username string
}

// CurrentHost reads the platform, hostname and OS username of this process.
func CurrentHost() (HostInfo, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return HostInfo{}, fmt.Errorf("failed to get hostname: %w", err)
	}

	u, err := user.Current()
	if err != nil {
		return HostInfo{}, fmt.Errorf("failed to get current user: %w", err)
	}

	return HostInfo{
		Platform: runtime.GOOS,
		Hostname: hostname,
		Username: u.Username,
	}, nil
}

// DeriveDeviceID hashes "platform-hostname-username" with SHA-256 and keeps
// the first 16 hex characters. Identical hosts produce identical IDs.
func DeriveDeviceID(h HostInfo) string {
	sum := sha256.Sum256([]byte(h.Platform + "-" + h.Hostname + "-" + h.Username))
	return hex.EncodeToString(sum[:])[:IDLength]
}

// CurrentDeviceID derives the device ID of this machine and user account.
func CurrentDeviceID() (string, error) {
	h, err := CurrentHost()
	if err != nil {
		return "", err
	}
	return DeriveDeviceID(h), nil
}
