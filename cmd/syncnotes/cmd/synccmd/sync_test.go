package synccmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/syncnotes/cmd/application"
	"github.com/agentstation/syncnotes/pkg/constants"
	"github.com/agentstation/syncnotes/pkg/errors"
)

const mainNotes = `CharacterNotesDB = {
	["realm"] = {
		["Nightmare"] = {
			["notes"] = {
				["Thrall"] = "Good trader",
				["Jaina"] = "Healer",
				["Garrosh"] = "[Delete]",
			},
		},
	},
}
`

const altNotes = `CharacterNotesDB = {
	["realm"] = {
		["Nightmare"] = {
			["notes"] = {
				["Jaina"] = "Ninja looter",
				["Garrosh"] = "Tank",
			},
		},
	},
}
`

func writeAccount(t *testing.T, dir, name, content string) string {
	t.Helper()
	sv := filepath.Join(dir, name, constants.SavedVariablesDir)
	require.NoError(t, os.MkdirAll(sv, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sv, constants.NotesFileName), []byte(content), 0o644))
	return filepath.Join(dir, name)
}

func readNotes(t *testing.T, root string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, constants.SavedVariablesDir, constants.NotesFileName))
	require.NoError(t, err)
	return string(data)
}

func run(t *testing.T, format, stdin string, args ...string) (string, error) {
	t.Helper()
	mock := &application.Mock{
		OutputFormatFunc: func() string { return format },
	}
	cmd := NewCommand(mock)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSyncCommandAutoApprove(t *testing.T) {
	dir := t.TempDir()
	mainRoot := writeAccount(t, dir, "MAIN", mainNotes)
	altRoot := writeAccount(t, dir, "ALT", altNotes)

	out, err := run(t, "table", "", mainRoot, altRoot, "-y")
	require.NoError(t, err)

	assert.Contains(t, out, "Conflicts (2)")
	assert.Contains(t, out, "Ninja looter")
	assert.Contains(t, out, "Updated 2 accounts")
	assert.NotContains(t, out, "Apply these changes?")

	alt := readNotes(t, altRoot)
	assert.Contains(t, alt, `["Thrall"] = "Good trader"`)
	assert.NotContains(t, alt, "Garrosh")
	assert.Contains(t, alt, `["Jaina"] = "Ninja looter"`, "conflicts are left alone")
	assert.NotContains(t, readNotes(t, mainRoot), "Garrosh")
}

func TestSyncCommandSimulation(t *testing.T) {
	dir := t.TempDir()
	mainRoot := writeAccount(t, dir, "MAIN", mainNotes)
	altRoot := writeAccount(t, dir, "ALT", altNotes)

	out, err := run(t, "table", "", "-a", mainRoot, "-a", altRoot, "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, out, "Simulation mode - no files were changed")
	assert.Contains(t, out, altRoot, "reporter lists each account")
	assert.Contains(t, out, "(Simulation)")
	assert.Equal(t, altNotes, readNotes(t, altRoot))
	assert.Equal(t, mainNotes, readNotes(t, mainRoot))
}

func TestSyncCommandConfirmation(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		dir := t.TempDir()
		mainRoot := writeAccount(t, dir, "MAIN", mainNotes)
		altRoot := writeAccount(t, dir, "ALT", altNotes)

		out, err := run(t, "table", "n\n", mainRoot, altRoot)
		require.NoError(t, err)

		assert.Contains(t, out, "Pending changes (3)")
		assert.Contains(t, out, "Apply these changes? (y/N): ")
		assert.Contains(t, out, "Sync cancelled")
		assert.Equal(t, altNotes, readNotes(t, altRoot))
	})

	t.Run("no input declines", func(t *testing.T) {
		dir := t.TempDir()
		mainRoot := writeAccount(t, dir, "MAIN", mainNotes)
		altRoot := writeAccount(t, dir, "ALT", altNotes)

		out, err := run(t, "table", "", mainRoot, altRoot)
		require.NoError(t, err)
		assert.Contains(t, out, "Sync cancelled")
		assert.Equal(t, mainNotes, readNotes(t, mainRoot))
	})

	t.Run("accepted", func(t *testing.T) {
		dir := t.TempDir()
		mainRoot := writeAccount(t, dir, "MAIN", mainNotes)
		altRoot := writeAccount(t, dir, "ALT", altNotes)

		out, err := run(t, "table", "yes\n", mainRoot, altRoot)
		require.NoError(t, err)
		assert.Contains(t, out, "Updated 2 accounts")
		assert.Contains(t, readNotes(t, altRoot), "Thrall")
	})
}

func TestSyncCommandJSON(t *testing.T) {
	dir := t.TempDir()
	mainRoot := writeAccount(t, dir, "MAIN", mainNotes)
	altRoot := writeAccount(t, dir, "ALT", altNotes)

	out, err := run(t, "json", "", mainRoot, altRoot, "--confirm")
	require.NoError(t, err)

	var result struct {
		RunID   string   `json:"run_id"`
		Applied []string `json:"applied"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.NotEmpty(t, result.RunID)
	assert.Len(t, result.Applied, 2)
}

func TestSyncCommandInSync(t *testing.T) {
	dir := t.TempDir()
	mainRoot := writeAccount(t, dir, "MAIN", altNotes)
	altRoot := writeAccount(t, dir, "ALT", altNotes)

	out, err := run(t, "table", "", mainRoot, altRoot)
	require.NoError(t, err)
	assert.Contains(t, out, "All accounts are in sync")
	assert.NotContains(t, out, "Apply these changes?")
}

func TestSyncCommandErrors(t *testing.T) {
	dir := t.TempDir()
	mainRoot := writeAccount(t, dir, "MAIN", mainNotes)

	_, err := run(t, "table", "", mainRoot)
	assert.True(t, errors.IsValidationError(err), "one account is not enough: %v", err)

	_, err = run(t, "table", "", mainRoot, filepath.Join(dir, "missing"))
	assert.True(t, errors.IsNotFound(err), "missing account: %v", err)
}

func TestConfirmChanges(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			got, err := ConfirmChanges(strings.NewReader(tt.input), &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Apply these changes? (y/N): ")
		})
	}
}
