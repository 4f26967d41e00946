package configs

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigDirEnv overrides the directory holding config.toml and the audit log.
const ConfigDirEnv = "FRAGMENT_CONFIG_DIR"

// Settings holds the filesystem locations used by the CLI.
type Settings struct {
	ConfigDir    string
	ConfigPath   string
	AuditLogPath string
	KeyringDir   string
	SSHDir       string
}

// NewSettings derives all paths from a config directory and the user's home directory.
func NewSettings(configDir, homeDir string) *Settings {
	return &Settings{
		ConfigDir:    configDir,
		ConfigPath:   filepath.Join(configDir, "config.toml"),
		AuditLogPath: filepath.Join(configDir, "audit.jsonl"),
		KeyringDir:   filepath.Join(configDir, "keyring"),
		SSHDir:       filepath.Join(homeDir, ".ssh"),
	}
}

// DefaultSettings resolves settings for the current user.
// FRAGMENT_CONFIG_DIR takes precedence over the OS config directory.
func DefaultSettings() (*Settings, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("error getting home directory: %w", err)
	}

	configDir := os.Getenv(ConfigDirEnv)
	if configDir == "" {
		userConfigDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("error getting config directory: %w", err)
		}
		configDir = filepath.Join(userConfigDir, "fragment")
	}

	return NewSettings(configDir, homeDir), nil
}
