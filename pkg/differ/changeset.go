// Package differ derives per-account write instructions by comparing an
// account snapshot against the reconciled target state.
package differ

import (
	"fmt"
	"io"
	"strings"

	"github.com/agentstation/syncnotes/pkg/notes"
)

// Action is what a writer must do with one player's note.
type Action string

const (
	// ActionUpsert writes the instruction's note, creating or replacing.
	ActionUpsert Action = "upsert"
	// ActionRemove deletes the player's note and rating.
	ActionRemove Action = "remove"
)

// ChangeType classifies an instruction relative to what the account held.
type ChangeType string

const (
	// ChangeTypeAdd indicates a note the account did not have.
	ChangeTypeAdd ChangeType = "add"
	// ChangeTypeUpdate indicates a note that replaces a different one.
	ChangeTypeUpdate ChangeType = "update"
	// ChangeTypeRemove indicates a note that is deleted.
	ChangeTypeRemove ChangeType = "remove"
)

// Instruction is one write for one player on one realm.
type Instruction struct {
	Player string     `json:"player" yaml:"player"`
	Action Action     `json:"action" yaml:"action"`
	Change ChangeType `json:"change" yaml:"change"`

	// Note is the note to write. Nil for removals.
	Note *notes.Note `json:"note,omitempty" yaml:"note,omitempty"`

	// Previous is the note the account held before, when tracked.
	Previous *notes.Note `json:"previous,omitempty" yaml:"previous,omitempty"`
}

// Type returns how the instruction changes the account.
func (i Instruction) Type() ChangeType {
	if i.Change != "" {
		return i.Change
	}
	switch {
	case i.Action == ActionRemove:
		return ChangeTypeRemove
	case i.Previous != nil:
		return ChangeTypeUpdate
	default:
		return ChangeTypeAdd
	}
}

// RealmChanges groups the instructions for one realm, ordered by player.
type RealmChanges struct {
	Realm        string        `json:"realm" yaml:"realm"`
	Instructions []Instruction `json:"instructions" yaml:"instructions"`
}

// Changeset is every instruction for one account, ordered by realm.
type Changeset struct {
	Account string           `json:"account" yaml:"account"`
	Realms  []RealmChanges   `json:"realms" yaml:"realms"`
	Summary ChangesetSummary `json:"summary" yaml:"summary"`
}

// ChangesetSummary provides summary statistics for a changeset.
type ChangesetSummary struct {
	Added        int `json:"added" yaml:"added"`
	Updated      int `json:"updated" yaml:"updated"`
	Removed      int `json:"removed" yaml:"removed"`
	TotalChanges int `json:"total" yaml:"total"`
}

// HasChanges returns true if the changeset contains any changes.
func (c *Changeset) HasChanges() bool {
	return c != nil && c.Summary.TotalChanges > 0
}

// IsEmpty returns true if the changeset contains no changes.
func (c *Changeset) IsEmpty() bool {
	return !c.HasChanges()
}

// Realm returns the changes for realm, or nil.
func (c *Changeset) Realm(name string) *RealmChanges {
	if c == nil {
		return nil
	}
	for i := range c.Realms {
		if c.Realms[i].Realm == name {
			return &c.Realms[i]
		}
	}
	return nil
}

// Filter returns a copy of the changeset holding only the instructions
// keep accepts. Realms left without instructions are dropped and the
// summary is recomputed.
func (c *Changeset) Filter(keep func(realm string, inst Instruction) bool) *Changeset {
	if c == nil {
		return nil
	}
	out := &Changeset{Account: c.Account}
	for _, rc := range c.Realms {
		var kept []Instruction
		for _, inst := range rc.Instructions {
			if keep(rc.Realm, inst) {
				kept = append(kept, inst)
			}
		}
		if len(kept) > 0 {
			out.Realms = append(out.Realms, RealmChanges{Realm: rc.Realm, Instructions: kept})
		}
	}
	out.Summary = calculateSummary(out.Realms)
	return out
}

// calculateSummary computes the summary for a set of realm changes.
func calculateSummary(realms []RealmChanges) ChangesetSummary {
	var s ChangesetSummary
	for _, rc := range realms {
		for _, inst := range rc.Instructions {
			switch inst.Type() {
			case ChangeTypeAdd:
				s.Added++
			case ChangeTypeUpdate:
				s.Updated++
			case ChangeTypeRemove:
				s.Removed++
			}
		}
	}
	s.TotalChanges = s.Added + s.Updated + s.Removed
	return s
}

// String returns a human-readable summary of the changeset.
func (c *Changeset) String() string {
	if c.IsEmpty() {
		return "No changes detected"
	}

	var parts []string
	if c.Summary.Added > 0 {
		parts = append(parts, fmt.Sprintf("%d added", c.Summary.Added))
	}
	if c.Summary.Updated > 0 {
		parts = append(parts, fmt.Sprintf("%d updated", c.Summary.Updated))
	}
	if c.Summary.Removed > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", c.Summary.Removed))
	}

	return fmt.Sprintf("Changeset for %s: %s (Total: %d changes)",
		c.Account, strings.Join(parts, ", "), c.Summary.TotalChanges)
}

// Print writes a detailed, human-readable view of the changeset to w.
func (c *Changeset) Print(w io.Writer) {
	fmt.Fprintln(w, c.String())
	if c.IsEmpty() {
		return
	}
	fmt.Fprintln(w, strings.Repeat("─", 60))

	for _, rc := range c.Realms {
		fmt.Fprintf(w, "\n%s (%d):\n", rc.Realm, len(rc.Instructions))
		for _, inst := range rc.Instructions {
			switch inst.Type() {
			case ChangeTypeAdd:
				fmt.Fprintf(w, "  ➕ %s\n", inst.Note)
			case ChangeTypeUpdate:
				fmt.Fprintf(w, "  🔄 %s → %s\n", inst.Previous, inst.Note)
			case ChangeTypeRemove:
				fmt.Fprintf(w, "  ⚠️  %s removed\n", inst.Player)
			}
		}
	}
}
