package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/agentstation/syncnotes/pkg/constants"
	"github.com/agentstation/syncnotes/pkg/errors"
)

// isolate points the config search at empty directories.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

// TestLoadConfig verifies basic config loading.
func TestLoadConfig(t *testing.T) {
	isolate(t)

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if !config.Backup {
		t.Error("Backup should default to true")
	}
	if config.Timeout != constants.DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", config.Timeout, constants.DefaultTimeout)
	}
	if config.Concurrency != constants.DefaultConcurrency {
		t.Errorf("Concurrency = %d, want %d", config.Concurrency, constants.DefaultConcurrency)
	}
	if config.LogFormat == "" {
		t.Error("LogFormat not set to default")
	}
	if len(config.Accounts) != 0 {
		t.Errorf("Accounts = %v, want none", config.Accounts)
	}
}

// TestConfig_EnvironmentVariables verifies environment variable loading.
func TestConfig_EnvironmentVariables(t *testing.T) {
	isolate(t)
	t.Setenv("SYNCNOTES_SIMULATION", "true")
	t.Setenv("SYNCNOTES_BACKUP", "false")
	t.Setenv("SYNCNOTES_TIMEOUT", "30s")
	t.Setenv("SYNCNOTES_CONCURRENCY", "8")
	t.Setenv("SYNCNOTES_FORMAT", "yaml")
	t.Setenv("SYNCNOTES_NO_COLOR", "true")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if !config.Simulation {
		t.Error("SYNCNOTES_SIMULATION not loaded")
	}
	if config.Backup {
		t.Error("SYNCNOTES_BACKUP not loaded")
	}
	if config.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", config.Timeout)
	}
	if config.Concurrency != 8 {
		t.Errorf("Concurrency = %d, want 8", config.Concurrency)
	}
	if config.Format != "yaml" {
		t.Errorf("Format = %s, want yaml", config.Format)
	}
	if !config.NoColor {
		t.Error("SYNCNOTES_NO_COLOR not loaded")
	}
}

// TestConfig_File verifies an explicit config file.
func TestConfig_File(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "syncnotes.yaml")
	content := `accounts:
  - /games/wow/WTF/Account/MAIN
  - /games/wow/WTF/Account/ALT
confirm: true
backup: false
timeout: 45s
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if len(config.Accounts) != 2 || config.Accounts[1] != "/games/wow/WTF/Account/ALT" {
		t.Errorf("Accounts = %v", config.Accounts)
	}
	if !config.Confirm || config.Backup {
		t.Errorf("Confirm = %v, Backup = %v", config.Confirm, config.Backup)
	}
	if config.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v, want 45s", config.Timeout)
	}
	if config.ConfigFile != path {
		t.Errorf("ConfigFile = %s, want %s", config.ConfigFile, path)
	}

	defaults := config.Defaults()
	if len(defaults.Accounts) != 2 || !defaults.Confirm || defaults.Backup {
		t.Errorf("Defaults() = %+v", defaults)
	}
}

// TestConfig_SearchPath verifies the config file is found in the working directory.
func TestConfig_SearchPath(t *testing.T) {
	isolate(t)

	if err := os.WriteFile(constants.ConfigFileName+".yaml", []byte("simulation: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if !config.Simulation {
		t.Error("config in working directory not loaded")
	}
}

// TestConfig_Errors verifies bad configuration is rejected.
func TestConfig_Errors(t *testing.T) {
	isolate(t)

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("accounts: [unterminated\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Error("expected error for malformed config file")
	}

	t.Setenv("SYNCNOTES_CONCURRENCY", "-1")
	_, err := LoadConfig("")
	if !errors.IsValidationError(err) {
		t.Errorf("negative concurrency: got %v, want validation error", err)
	}
}

// TestConfig_UpdateFromFlags verifies flag values override loaded values.
func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{Format: "yaml", Quiet: true}
	config.UpdateFromFlags(GlobalFlags{Verbose: true, Format: "json", LogLevel: "trace"})

	if !config.Verbose || !config.Quiet {
		t.Errorf("Verbose = %v, Quiet = %v", config.Verbose, config.Quiet)
	}
	if config.Format != "json" {
		t.Errorf("Format = %s, want json", config.Format)
	}
	if config.LogLevel != "trace" {
		t.Errorf("LogLevel = %s, want trace", config.LogLevel)
	}

	config.UpdateFromFlags(GlobalFlags{})
	if config.Format != "json" {
		t.Error("empty flag format should keep the configured one")
	}
}
