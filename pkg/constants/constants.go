// Package constants provides shared constants used throughout the syncnotes codebase.
// This includes the CharacterNotes file layout, timeouts, limits and file
// permissions that should be consistent across the application.
package constants

import "time"

// SavedVariables layout of the CharacterNotes addon
const (
	// SavedVariablesDir is the per-account directory holding addon data
	SavedVariablesDir = "SavedVariables"

	// NotesFileName is the addon's SavedVariables file
	NotesFileName = "CharacterNotes.lua"

	// NotesGlobal is the Lua global holding the addon database
	NotesGlobal = "CharacterNotesDB"

	// RealmTableKey is the key of the per-realm table inside NotesGlobal
	RealmTableKey = "realm"

	// NotesTableKey maps player name to note detail within a realm
	NotesTableKey = "notes"

	// RatingsTableKey maps player name to rating within a realm
	RatingsTableKey = "ratings"

	// BackupSuffix is appended to a notes file when keeping a backup copy
	BackupSuffix = ".bak"
)

// Timeout constants define various timeout durations used in the application
const (
	// DefaultTimeout is the standard timeout for a whole sync run
	DefaultTimeout = 2 * time.Minute

	// ShutdownTimeout bounds cleanup after a failed command
	ShutdownTimeout = 5 * time.Second
)

// Limit constants define various limits and capacities
const (
	// MinAccounts is the smallest number of accounts a sync can reconcile
	MinAccounts = 2

	// DefaultConcurrency is the default number of accounts loaded in parallel
	DefaultConcurrency = 4
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Path constants
const (
	// ConfigFileName is the config file looked up in the home and working directories
	ConfigFileName = ".syncnotes"

	// EnvPrefix prefixes every environment variable read by the CLI
	EnvPrefix = "SYNCNOTES"
)
