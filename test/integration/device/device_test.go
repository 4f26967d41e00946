package device_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/fragmentid/fragment-cli/cmd"
	"github.com/fragmentid/fragment-cli/internal/audit"
	"github.com/fragmentid/fragment-cli/internal/configs"
	kerrors "github.com/fragmentid/fragment-cli/internal/errors"
	"github.com/fragmentid/fragment-cli/internal/prompt/prompttest"
	"github.com/fragmentid/fragment-cli/test/integration/shared"
)

// TestDeviceIntegration contains integration tests for the `fragment device` commands.
func TestDeviceIntegration(t *testing.T) {
	t.Run("PrintID", testDevicePrintID)
	t.Run("StatusBeforeRegister", testDeviceStatusBeforeRegister)
	t.Run("Register", testDeviceRegister)
	t.Run("ReRegisterDeclined", testDeviceReRegisterDeclined)
	t.Run("ReRegisterConfirmed", testDeviceReRegisterConfirmed)
	t.Run("ReRegisterCancelled", testDeviceReRegisterCancelled)
	t.Run("ReRegisterWithYes", testDeviceReRegisterWithYes)
	t.Run("Remove", testDeviceRemove)
	t.Run("RemoveDeclined", testDeviceRemoveDeclined)
	t.Run("RemoveWhenMissing", testDeviceRemoveWhenMissing)
}

func registeredKeyID(t *testing.T, configDir string) string {
	t.Helper()
	keyID, ok := shared.ReadConfig(t, configDir).Get(configs.KeyDeviceKeyID)
	if !ok {
		t.Fatal("Expected deviceKeyId to be recorded")
	}
	return keyID
}

func testDevicePrintID(t *testing.T) {
	shared.SetupTestEnvironment(t)

	output := shared.MustRunCLI(t, "device", "id")
	if strings.TrimSpace(output) != shared.TestDeviceID {
		t.Errorf("Expected %s, got %q", shared.TestDeviceID, output)
	}
}

func testDeviceStatusBeforeRegister(t *testing.T) {
	shared.SetupTestEnvironment(t)

	output := shared.MustRunCLI(t, "device", "status")
	if !strings.Contains(output, shared.TestDeviceID) {
		t.Errorf("Expected device ID in status, got: %s", output)
	}
	if !strings.Contains(output, "not registered") {
		t.Errorf("Expected 'not registered' in status, got: %s", output)
	}
}

func testDeviceRegister(t *testing.T) {
	configDir := shared.SetupTestEnvironment(t)

	output := shared.MustRunCLI(t, "device", "register")
	if !strings.Contains(output, "Registered device key") {
		t.Errorf("Expected registration message, got: %s", output)
	}

	keyID := registeredKeyID(t, configDir)
	if !strings.HasPrefix(keyID, "device:"+shared.TestDeviceID+":") {
		t.Errorf("Unexpected key ID %q", keyID)
	}
	if !strings.Contains(output, keyID) {
		t.Errorf("Expected key ID %s in output, got: %s", keyID, output)
	}

	status := shared.MustRunCLI(t, "device", "status")
	if !strings.Contains(status, "stored") || strings.Contains(status, "not registered") {
		t.Errorf("Expected stored device key in status, got: %s", status)
	}
	if !strings.Contains(status, keyID) {
		t.Errorf("Expected key ID in status, got: %s", status)
	}
	if !strings.Contains(status, "Resolves") || !strings.Contains(status, "yes") {
		t.Errorf("Expected the recorded key ID to resolve, got: %s", status)
	}

	entries := shared.ReadAuditLog(t, configDir)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 audit entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Operation != audit.OpDeviceRegister || e.DeviceID != shared.TestDeviceID || e.KeyID != keyID {
		t.Errorf("Unexpected audit entry: %+v", e)
	}
	if e.Provider != "local" || e.Replaced {
		t.Errorf("Expected a fresh local registration, got %+v", e)
	}
}

func testDeviceReRegisterDeclined(t *testing.T) {
	configDir := shared.SetupTestEnvironment(t)
	shared.MustRunCLI(t, "device", "register")
	firstKeyID := registeredKeyID(t, configDir)

	script := &prompttest.Scripted{Confirms: []bool{false}}
	cmd.SetPrompter(script)

	output := shared.MustRunCLI(t, "device", "register")
	if !strings.Contains(output, "already exists") {
		t.Errorf("Expected overwrite warning, got: %s", output)
	}
	if !strings.Contains(output, "Kept the existing device key") {
		t.Errorf("Expected keep message, got: %s", output)
	}
	if len(script.Asked) != 1 {
		t.Errorf("Expected exactly one confirmation, got %v", script.Asked)
	}
	if got := registeredKeyID(t, configDir); got != firstKeyID {
		t.Errorf("Declined replacement changed key ID from %s to %s", firstKeyID, got)
	}
	if n := len(shared.ReadAuditLog(t, configDir)); n != 1 {
		t.Errorf("Declined replacement should not be audited, got %d entries", n)
	}
}

func testDeviceReRegisterConfirmed(t *testing.T) {
	configDir := shared.SetupTestEnvironment(t)
	shared.MustRunCLI(t, "device", "register")

	cmd.SetPrompter(&prompttest.Scripted{Confirms: []bool{true}})

	output := shared.MustRunCLI(t, "device", "register")
	if !strings.Contains(output, "Replaced device key") {
		t.Errorf("Expected replacement message, got: %s", output)
	}

	entries := shared.ReadAuditLog(t, configDir)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 audit entries, got %d", len(entries))
	}
	if !entries[1].Replaced {
		t.Errorf("Expected second registration to be marked replaced: %+v", entries[1])
	}
	if entries[1].KeyID != registeredKeyID(t, configDir) {
		t.Errorf("Recorded key ID should match the latest registration")
	}
}

func testDeviceReRegisterCancelled(t *testing.T) {
	configDir := shared.SetupTestEnvironment(t)
	shared.MustRunCLI(t, "device", "register")

	cmd.SetPrompter(&prompttest.Scripted{})

	_, err := shared.RunCLI(t, "device", "register")
	if !errors.Is(err, kerrors.ErrCancelled) {
		t.Errorf("Expected ErrCancelled, got %v", err)
	}
	if n := len(shared.ReadAuditLog(t, configDir)); n != 1 {
		t.Errorf("Cancelled replacement should not be audited, got %d entries", n)
	}
}

func testDeviceReRegisterWithYes(t *testing.T) {
	configDir := shared.SetupTestEnvironment(t)
	shared.MustRunCLI(t, "device", "register")

	script := &prompttest.Scripted{}
	cmd.SetPrompter(script)

	output := shared.MustRunCLI(t, "device", "register", "--yes")
	if !strings.Contains(output, "Replaced device key") {
		t.Errorf("Expected replacement message, got: %s", output)
	}
	if len(script.Asked) != 0 {
		t.Errorf("--yes should not prompt, asked %v", script.Asked)
	}
	if n := len(shared.ReadAuditLog(t, configDir)); n != 2 {
		t.Errorf("Expected 2 audit entries, got %d", n)
	}
}

func testDeviceRemove(t *testing.T) {
	configDir := shared.SetupTestEnvironment(t)
	shared.MustRunCLI(t, "device", "register")

	output := shared.MustRunCLI(t, "device", "remove", "-y")
	if !strings.Contains(output, "Removed the device key") {
		t.Errorf("Expected removal message, got: %s", output)
	}
	if shared.ReadConfig(t, configDir).Has(configs.KeyDeviceKeyID) {
		t.Error("Expected deviceKeyId to be cleared")
	}

	status := shared.MustRunCLI(t, "device", "status")
	if !strings.Contains(status, "not registered") {
		t.Errorf("Expected 'not registered' after removal, got: %s", status)
	}

	entries := shared.ReadAuditLog(t, configDir)
	if len(entries) != 2 || entries[1].Operation != audit.OpDeviceRemove {
		t.Errorf("Expected register then remove in audit log, got %+v", entries)
	}
}

func testDeviceRemoveDeclined(t *testing.T) {
	configDir := shared.SetupTestEnvironment(t)
	shared.MustRunCLI(t, "device", "register")

	cmd.SetPrompter(&prompttest.Scripted{Confirms: []bool{false}})

	output := shared.MustRunCLI(t, "device", "remove")
	if !strings.Contains(output, "Kept the device key") {
		t.Errorf("Expected keep message, got: %s", output)
	}
	status := shared.MustRunCLI(t, "device", "status")
	if strings.Contains(status, "not registered") {
		t.Errorf("Device key should survive a declined removal, got: %s", status)
	}
	if !shared.ReadConfig(t, configDir).Has(configs.KeyDeviceKeyID) {
		t.Error("deviceKeyId should survive a declined removal")
	}
}

func testDeviceRemoveWhenMissing(t *testing.T) {
	shared.SetupTestEnvironment(t)

	output := shared.MustRunCLI(t, "device", "remove", "--yes")
	if !strings.Contains(output, "No device key stored") {
		t.Errorf("Expected notice for missing key, got: %s", output)
	}
}
