// Package accounts locates, loads and writes the CharacterNotes data of
// World of Warcraft accounts.
//
// An account is a WTF/Account/<NAME> directory. Its notes live in
// SavedVariables/CharacterNotes.lua, a Lua chunk assigning the
// CharacterNotesDB global:
//
//	CharacterNotesDB = {
//		["realm"] = {
//			["Nightmare"] = {
//				["notes"] = { ["Thrall"] = "Good trader" },
//				["ratings"] = { ["Thrall"] = 1 },
//			},
//		},
//	}
//
// A Loader turns that file into an Account carrying both the decoded
// document and its normalized snapshot. A Writer applies a changeset back
// to the account, either on disk (FileWriter) or as a report (Reporter).
package accounts

import (
	"github.com/agentstation/syncnotes/internal/savedvars"
	"github.com/agentstation/syncnotes/pkg/snapshot"
)

// Account is one loaded account.
type Account struct {
	// ID identifies the account; it is the cleaned account root path.
	ID string

	// Root is the account directory.
	Root string

	// File is the CharacterNotes SavedVariables file.
	File string

	// Document is the decoded file. Writers start from it so globals and
	// keys the engine does not own survive a write.
	Document *savedvars.Document

	// Snapshot is the normalized notes of the account.
	Snapshot *snapshot.Snapshot

	// Foreign holds the player entries whose note or rating is neither a
	// string nor a number. They are missing from Snapshot and writers
	// leave them alone.
	Foreign map[Slot]bool
}

// Slot names one player entry of one realm.
type Slot struct {
	Realm  string
	Player string
}

// IsForeign reports whether player on realm holds a value the engine does
// not own.
func (a *Account) IsForeign(realm, player string) bool {
	return a != nil && a.Foreign[Slot{Realm: realm, Player: player}]
}

// Warnings returns the recoverable problems found while loading.
func (a *Account) Warnings() []string {
	if a == nil || a.Snapshot == nil {
		return nil
	}
	return a.Snapshot.Warnings
}
