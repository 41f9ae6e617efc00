package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	// Create a temporary config file
	configContent := `{
		"app_name": "TestApp",
		"listen_ip": "127.0.0.1",
		"listen_port": 9090,
		"session_key": "test-session-key",
		"auth_url": "http://localhost:9999/api/login",
		"export_path": "/export/data"
	}`
	tmpfile, err := os.CreateTemp("", "config.json")
	if err != nil {
		t.Fatalf("Failed to create temporary file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(configContent)); err != nil {
		t.Fatalf("Failed to write to temporary file: %v", err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatalf("Failed to close temporary file: %v", err)
	}

	// Test loading the config
	err = LoadConfig(tmpfile.Name())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if AppConfig.AppName != "TestApp" {
		t.Errorf("Expected AppName 'TestApp', got '%s'", AppConfig.AppName)
	}
	if AppConfig.ListenIP != "127.0.0.1" {
		t.Errorf("Expected ListenIP '127.0.0.1', got '%s'", AppConfig.ListenIP)
	}
	if AppConfig.ListenPort != 9090 {
		t.Errorf("Expected ListenPort 9090, got %d", AppConfig.ListenPort)
	}
	if AppConfig.SessionKey != "test-session-key" {
		t.Errorf("Expected SessionKey 'test-session-key', got '%s'", AppConfig.SessionKey)
	}
	if AppConfig.AuthURL != "http://localhost:9999/api/login" {
		t.Errorf("Expected AuthURL to round-trip, got '%s'", AppConfig.AuthURL)
	}
	if AppConfig.ExportPath != "/export/data" {
		t.Errorf("Expected ExportPath '/export/data', got '%s'", AppConfig.ExportPath)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	configContent := `{"app_name": "Defaults", "session_key": "k"}`
	tmpfile, err := os.CreateTemp("", "config.json")
	if err != nil {
		t.Fatalf("Failed to create temporary file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(configContent)); err != nil {
		t.Fatalf("Failed to write to temporary file: %v", err)
	}
	tmpfile.Close()

	if err := LoadConfig(tmpfile.Name()); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if AppConfig.ExportPath != "/export" {
		t.Errorf("Expected default export path '/export', got '%s'", AppConfig.ExportPath)
	}
	if AppConfig.AuthTimeoutSec != 15 {
		t.Errorf("Expected default auth timeout 15, got %d", AppConfig.AuthTimeoutSec)
	}
	if AppConfig.GraceWindowMs != 500 {
		t.Errorf("Expected default grace window 500, got %d", AppConfig.GraceWindowMs)
	}
}

func TestLoadConfigGeneratesSessionKey(t *testing.T) {
	configContent := `{"app_name": "NoKey"}`
	tmpfile, err := os.CreateTemp("", "config.json")
	if err != nil {
		t.Fatalf("Failed to create temporary file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(configContent)); err != nil {
		t.Fatalf("Failed to write to temporary file: %v", err)
	}
	tmpfile.Close()

	if err := LoadConfig(tmpfile.Name()); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if AppConfig.SessionKey == "" {
		t.Error("Expected a generated session key, got empty string")
	}
}
