package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/agentstation/syncnotes"
	"github.com/agentstation/syncnotes/pkg/constants"
	"github.com/agentstation/syncnotes/pkg/errors"
)

const accountNotes = `CharacterNotesDB = {
	["realm"] = {
		["Nightmare"] = {
			["notes"] = {
				["Thrall"] = "Good trader",
			},
		},
	},
}
`

func newTestApp(t *testing.T, opts ...Option) *App {
	t.Helper()
	isolate(t)
	logger := zerolog.Nop()
	opts = append([]Option{WithLogger(&logger)}, opts...)
	app, err := New("1.0.0", "abc123", "2024-01-01", "test", opts...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return app
}

func execute(t *testing.T, app *App, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := app.createRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeAccounts(t *testing.T) (mainRoot, altRoot string) {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"MAIN", "ALT"} {
		sv := filepath.Join(dir, name, constants.SavedVariablesDir)
		if err := os.MkdirAll(sv, 0o755); err != nil {
			t.Fatal(err)
		}
		content := accountNotes
		if name == "ALT" {
			content = "CharacterNotesDB = {\n\t[\"realm\"] = {},\n}\n"
		}
		if err := os.WriteFile(filepath.Join(sv, constants.NotesFileName), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return filepath.Join(dir, "MAIN"), filepath.Join(dir, "ALT")
}

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app := newTestApp(t)

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2024-01-01" {
		t.Errorf("Date() = %s, want 2024-01-01", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if app.Config() == nil {
		t.Error("Config() returned nil")
	}
	if !app.Defaults().Backup {
		t.Error("Defaults() should keep backups on")
	}
}

// TestApp_WithConfig verifies a nil config is rejected.
func TestApp_WithConfig(t *testing.T) {
	isolate(t)
	if _, err := New("1.0.0", "", "", "", WithConfig(nil)); !errors.IsValidationError(err) {
		t.Errorf("WithConfig(nil) error = %v, want validation error", err)
	}

	app, err := New("1.0.0", "", "", "", WithConfig(&Config{Format: "yaml", Quiet: true}))
	if err != nil {
		t.Fatal(err)
	}
	if app.OutputFormat() != "yaml" || !app.Quiet() {
		t.Errorf("OutputFormat() = %s, Quiet() = %v", app.OutputFormat(), app.Quiet())
	}
}

// TestApp_Client_ThreadSafe verifies concurrent Client() calls share one instance.
func TestApp_Client_ThreadSafe(t *testing.T) {
	app := newTestApp(t)

	const goroutines = 50
	var wg sync.WaitGroup
	results := make([]syncnotes.Client, goroutines)
	errs := make([]error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = app.Client()
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("Goroutine %d: Client() failed: %v", i, err)
		}
	}
	for i, c := range results[1:] {
		if c != results[0] {
			t.Errorf("Goroutine %d got a different client instance", i+1)
		}
	}

	custom, err := app.Client(syncnotes.WithReporter(nil))
	if err == nil {
		t.Error("Client() with a nil reporter should fail")
	}
	if custom != nil {
		t.Error("Client() returned a client alongside an error")
	}
}

// TestApp_Execute_Version verifies the version command and flag.
func TestApp_Execute_Version(t *testing.T) {
	app := newTestApp(t)

	out, _, err := execute(t, app, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if out != "syncnotes 1.0.0\n" {
		t.Errorf("version output = %q", out)
	}

	app = newTestApp(t)
	out, _, err = execute(t, app, "version", "-v")
	if err != nil {
		t.Fatalf("version -v failed: %v", err)
	}
	if !strings.Contains(out, "commit:     abc123") {
		t.Errorf("verbose version output = %q", out)
	}

	app = newTestApp(t)
	out, _, err = execute(t, app, "--version")
	if err != nil {
		t.Fatalf("--version failed: %v", err)
	}
	if out != "syncnotes 1.0.0\n" {
		t.Errorf("--version output = %q", out)
	}
}

// TestApp_Execute_Status verifies global flags reach the commands.
func TestApp_Execute_Status(t *testing.T) {
	mainRoot, altRoot := writeAccounts(t)

	app := newTestApp(t)
	out, errOut, err := execute(t, app, "status", "-o", "json", mainRoot, altRoot)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if errOut != "" {
		t.Errorf("machine output should not print the banner, got %q", errOut)
	}
	var result map[string]any
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("status output is not JSON: %v\n%s", err, out)
	}
	if _, ok := result["changesets"]; !ok {
		t.Error("JSON result has no changesets")
	}

	app = newTestApp(t)
	out, errOut, err = execute(t, app, "status", "--format", "table", mainRoot, altRoot)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(errOut, "syncnotes Version 1.0.0") {
		t.Errorf("banner missing from stderr: %q", errOut)
	}
	if !strings.Contains(out, "Pending changes (1)") {
		t.Errorf("status output = %q", out)
	}

	app = newTestApp(t)
	_, errOut, err = execute(t, app, "status", "--nologo", "-o", "table", mainRoot, altRoot)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if errOut != "" {
		t.Errorf("--nologo still printed %q", errOut)
	}
}

// TestApp_Execute_Sync verifies a full sync through the root command.
func TestApp_Execute_Sync(t *testing.T) {
	mainRoot, altRoot := writeAccounts(t)

	app := newTestApp(t)
	out, _, err := execute(t, app, "sync", "-q", "-o", "table", "-y", mainRoot, altRoot)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if !strings.Contains(out, "Updated 1 accounts") {
		t.Errorf("sync output = %q", out)
	}

	data, err := os.ReadFile(filepath.Join(altRoot, constants.SavedVariablesDir, constants.NotesFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Good trader") {
		t.Errorf("ALT was not updated:\n%s", data)
	}
}

// TestApp_Execute_ConfigFile verifies accounts can come from --config.
func TestApp_Execute_ConfigFile(t *testing.T) {
	mainRoot, altRoot := writeAccounts(t)

	path := filepath.Join(t.TempDir(), "syncnotes.yaml")
	content := "accounts:\n  - " + mainRoot + "\n  - " + altRoot + "\nconcurrency: 1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	app := newTestApp(t)
	out, _, err := execute(t, app, "status", "--config", path, "-o", "json")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(out, "Good trader") {
		t.Errorf("status output = %q", out)
	}
	if app.Defaults().Concurrency != 1 {
		t.Errorf("Concurrency = %d, want 1", app.Defaults().Concurrency)
	}
}

// TestApp_Execute_InvalidFormat verifies unknown formats are rejected.
func TestApp_Execute_InvalidFormat(t *testing.T) {
	app := newTestApp(t)
	_, _, err := execute(t, app, "status", "-o", "wide")
	if !errors.IsValidationError(err) {
		t.Errorf("error = %v, want validation error", err)
	}
}
