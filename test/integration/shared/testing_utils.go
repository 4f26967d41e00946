// Package shared contains testing utilities shared between integration tests.
// This file provides common functions for setting up an isolated config
// directory, capturing output and running the real root command.
package shared

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/fragmentid/fragment-cli/cmd"
	"github.com/fragmentid/fragment-cli/internal/audit"
	"github.com/fragmentid/fragment-cli/internal/configs"
	"github.com/fragmentid/fragment-cli/internal/secrets"
)

// TestDeviceID is the device ID every integration test runs as.
const TestDeviceID = "0123456789abcdef"

// TestKeyringPassword unlocks the file keyring used by integration tests.
const TestKeyringPassword = "integration-test-password"

// SetupTestEnvironment points the CLI at a fresh config directory backed by an
// encrypted file keyring and returns the directory.
func SetupTestEnvironment(t *testing.T) string {
	t.Helper()

	configDir := t.TempDir()
	t.Setenv(configs.ConfigDirEnv, configDir)
	t.Setenv(secrets.KeyringPasswordEnv, TestKeyringPassword)
	t.Setenv(secrets.GCPProjectEnv, "")

	store, err := configs.OpenStore(filepath.Join(configDir, "config.toml"))
	if err != nil {
		t.Fatalf("Failed to open config store: %v", err)
	}
	if err := store.Set(configs.KeyKeyringBackend, "file"); err != nil {
		t.Fatalf("Failed to select file keyring: %v", err)
	}

	cmd.ResetGlobalState()
	cmd.SetDeviceID(TestDeviceID)
	t.Cleanup(cmd.ResetGlobalState)

	return configDir
}

// ReadConfig loads the persisted settings from configDir.
func ReadConfig(t *testing.T, configDir string) *configs.Store {
	t.Helper()
	store, err := configs.OpenStore(filepath.Join(configDir, "config.toml"))
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}
	return store
}

// ReadAuditLog returns the entries written to configDir's audit log.
func ReadAuditLog(t *testing.T, configDir string) []audit.Entry {
	t.Helper()
	entries, err := audit.NewTrail(filepath.Join(configDir, "audit.jsonl")).ReadEntries()
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}
	return entries
}

// CaptureOutput captures both stdout and stderr during function execution.
func CaptureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	// Create pipes to capture output
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	// Replace stdout and stderr
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stdoutChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stderrChan <- buf.String()
	}()

	err := fn()

	// Close writers to signal EOF
	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}

// RunCLI executes the root command with args and returns everything it printed.
// Flag values from earlier invocations are cleared first.
func RunCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd.ResetFlags()
	return CaptureOutput(func() error {
		root := cmd.GetRootCmd()
		root.SetArgs(args)
		return root.Execute()
	})
}

// MustRunCLI is RunCLI that fails the test on error.
func MustRunCLI(t *testing.T, args ...string) string {
	t.Helper()
	output, err := RunCLI(t, args...)
	if err != nil {
		t.Fatalf("fragment %v failed: %v\nOutput: %s", args, err, output)
	}
	return output
}
