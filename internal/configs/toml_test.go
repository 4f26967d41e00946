package configs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoadTOML(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "test.toml")

	original := map[string]string{
		"apiBaseUrl": "http://localhost:5173",
		"provider":   "gcp",
	}

	if err := SaveTOML(testFile, original); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	loaded := map[string]string{}
	if err := LoadTOML(testFile, &loaded); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}

	for k, v := range original {
		if loaded[k] != v {
			t.Errorf("Expected %s=%q, got %q", k, v, loaded[k])
		}
	}
}

func TestLoadTOMLNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "nonexistent.toml")

	data := map[string]string{}
	if err := LoadTOML(testFile, &data); err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}
}

func TestSaveTOMLCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "subdir", "test.toml")

	if err := SaveTOML(testFile, map[string]string{"lastUser": "alice"}); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	if _, err := os.Stat(testFile); os.IsNotExist(err) {
		t.Fatal("File was not created")
	}
}

func TestSaveTOMLReplacesExistingFile(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "config.toml")

	if err := SaveTOML(testFile, map[string]string{"provider": "local", "lastUser": "alice"}); err != nil {
		t.Fatalf("first SaveTOML failed: %v", err)
	}
	if err := SaveTOML(testFile, map[string]string{"provider": "gcp"}); err != nil {
		t.Fatalf("second SaveTOML failed: %v", err)
	}

	loaded := map[string]string{}
	if err := LoadTOML(testFile, &loaded); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}
	if len(loaded) != 1 || loaded["provider"] != "gcp" {
		t.Errorf("expected only provider=gcp after replace, got %v", loaded)
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected no temporary files left behind, found %d entries", len(entries))
	}
}
