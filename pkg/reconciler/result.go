package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/syncnotes/pkg/differ"
	"github.com/agentstation/syncnotes/pkg/notes"
)

// Result represents the outcome of a reconciliation. Every (realm, player)
// pair seen in any account appears in exactly one of Merged, Conflicts or
// Removals.
type Result struct {
	// Merged holds the agreed notes, ordered by realm then player.
	Merged []notes.Realm `json:"merged" yaml:"merged"`

	// Conflicts holds pairs the accounts disagree on. They receive no
	// instructions.
	Conflicts []Conflict `json:"conflicts" yaml:"conflicts"`

	// Removals holds pairs deleted through the deletion marker.
	Removals []Removal `json:"removals" yaml:"removals"`

	// Changesets holds the write instructions for each account.
	Changesets map[string]*differ.Changeset `json:"changesets" yaml:"changesets"`

	// Accounts lists the accounts that took part, ordered.
	Accounts []string `json:"accounts" yaml:"accounts"`

	// Skipped lists accounts left out because they had no notes section.
	Skipped []string `json:"skipped,omitempty" yaml:"skipped,omitempty"`

	Warnings []string       `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Metadata ResultMetadata `json:"metadata" yaml:"metadata"`
}

// Conflict is a pair whose non-deletion notes differ between accounts.
type Conflict struct {
	Realm   string          `json:"realm" yaml:"realm"`
	Player  string          `json:"player" yaml:"player"`
	Entries []ConflictEntry `json:"entries" yaml:"entries"`
}

// ConflictEntry is one account's side of a conflict.
type ConflictEntry struct {
	Account string     `json:"account" yaml:"account"`
	Note    notes.Note `json:"note" yaml:"note"`
}

// String renders the conflict on one line.
func (c Conflict) String() string {
	return fmt.Sprintf("%s/%s differs across %d accounts", c.Realm, c.Player, len(c.Entries))
}

// Removal is a pair deleted from every account.
type Removal struct {
	Realm  string `json:"realm" yaml:"realm"`
	Player string `json:"player" yaml:"player"`

	// Accounts lists the accounts that held any note for the pair.
	Accounts []string `json:"accounts" yaml:"accounts"`
}

// ResultMetadata contains metadata about the reconciliation process.
type ResultMetadata struct {
	// StartTime when reconciliation started
	StartTime time.Time `json:"start_time" yaml:"start_time"`

	// EndTime when reconciliation completed
	EndTime time.Time `json:"end_time" yaml:"end_time"`

	// Duration of the reconciliation
	Duration time.Duration `json:"duration" yaml:"duration"`

	// Statistics about the reconciliation
	Stats ResultStatistics `json:"stats" yaml:"stats"`
}

// ResultStatistics contains statistics about the reconciliation.
type ResultStatistics struct {
	Pairs        int   `json:"pairs" yaml:"pairs"`
	Merged       int   `json:"merged" yaml:"merged"`
	Conflicts    int   `json:"conflicts" yaml:"conflicts"`
	Removed      int   `json:"removed" yaml:"removed"`
	Instructions int   `json:"instructions" yaml:"instructions"`
	TotalTimeMs  int64 `json:"total_time_ms" yaml:"total_time_ms"`
}

// HasChanges returns true if any account has instructions.
func (r *Result) HasChanges() bool {
	if r == nil {
		return false
	}
	for _, cs := range r.Changesets {
		if cs.HasChanges() {
			return true
		}
	}
	return false
}

// HasConflicts returns true if any pair was left unresolved.
func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// Changeset returns the instructions for account. Accounts that took
// part but need nothing get an empty changeset.
func (r *Result) Changeset(account string) *differ.Changeset {
	if cs, ok := r.Changesets[account]; ok {
		return cs
	}
	return &differ.Changeset{Account: account, Realms: []differ.RealmChanges{}}
}

// MergedNote returns the agreed note for player on realm.
func (r *Result) MergedNote(realm, player string) (notes.Note, bool) {
	for i := range r.Merged {
		if r.Merged[i].Name == realm {
			return r.Merged[i].Find(player)
		}
	}
	return notes.Note{}, false
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	s := r.Metadata.Stats
	msg := fmt.Sprintf("Reconciled %d accounts: %d merged, %d conflicts, %d removed",
		len(r.Accounts), s.Merged, s.Conflicts, s.Removed)
	if !r.HasChanges() {
		return msg + ". No changes needed."
	}
	return fmt.Sprintf("%s. %d instructions pending.", msg, s.Instructions)
}

// NewResult creates a new result with defaults.
func NewResult() *Result {
	return &Result{
		Merged:     []notes.Realm{},
		Conflicts:  []Conflict{},
		Removals:   []Removal{},
		Changesets: make(map[string]*differ.Changeset),
		Accounts:   []string{},
		Warnings:   []string{},
		Metadata: ResultMetadata{
			StartTime: time.Now(),
		},
	}
}

// Finalize calculates duration and marks completion.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
	r.Metadata.Stats.TotalTimeMs = r.Metadata.Duration.Milliseconds()
}
