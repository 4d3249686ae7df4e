// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agentstation/syncnotes/internal/cmd/emoji"
	"github.com/agentstation/syncnotes/pkg/differ"
	"github.com/agentstation/syncnotes/pkg/notes"
	"github.com/agentstation/syncnotes/pkg/reconciler"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// StatsToTableData converts the reconciliation statistics to a one-row table.
func StatsToTableData(result *reconciler.Result) Data {
	s := result.Metadata.Stats
	return Data{
		Headers: []string{"Accounts", "Skipped", "Pairs", "Merged", "Conflicts", "Removed", "Instructions"},
		Rows: [][]string{{
			strconv.Itoa(len(result.Accounts)),
			strconv.Itoa(len(result.Skipped)),
			strconv.Itoa(s.Pairs),
			strconv.Itoa(s.Merged),
			strconv.Itoa(s.Conflicts),
			strconv.Itoa(s.Removed),
			strconv.Itoa(s.Instructions),
		}},
		ColumnAlignment: []Align{AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight},
	}
}

// ConflictsToTableData converts conflicts to table format, one row per
// account side.
func ConflictsToTableData(conflicts []reconciler.Conflict) Data {
	var rows [][]string
	for _, c := range conflicts {
		for _, e := range c.Entries {
			rows = append(rows, []string{
				c.Realm,
				c.Player,
				AccountLabel(e.Account),
				FormatDetail(e.Note.Detail),
				FormatRating(e.Note.Rating),
			})
		}
	}
	return Data{
		Headers: []string{"Realm", "Player", "Account", "Note", "Rating"},
		Rows:    rows,
	}
}

// RemovalsToTableData converts removals to table format.
func RemovalsToTableData(removals []reconciler.Removal) Data {
	rows := make([][]string, 0, len(removals))
	for _, r := range removals {
		labels := make([]string, len(r.Accounts))
		for i, a := range r.Accounts {
			labels[i] = AccountLabel(a)
		}
		rows = append(rows, []string{r.Realm, r.Player, strings.Join(labels, ", ")})
	}
	return Data{
		Headers: []string{"Realm", "Player", "Accounts"},
		Rows:    rows,
	}
}

// InstructionsToTableData lists every pending instruction, grouped by
// account in result order.
func InstructionsToTableData(result *reconciler.Result) Data {
	var rows [][]string
	for _, account := range result.Accounts {
		cs := result.Changeset(account)
		for _, rc := range cs.Realms {
			for _, inst := range rc.Instructions {
				note := "-"
				if inst.Note != nil {
					note = FormatDetail(inst.Note.Detail)
					if inst.Note.Rating.IsSet() {
						note += " (" + inst.Note.Rating.String() + ")"
					}
				}
				rows = append(rows, []string{
					AccountLabel(account),
					rc.Realm,
					inst.Player,
					FormatChange(inst.Type()),
					note,
				})
			}
		}
	}
	return Data{
		Headers: []string{"Account", "Realm", "Player", "Change", "Note"},
		Rows:    rows,
	}
}

// MergedToTableData converts the merged view to table format.
func MergedToTableData(merged []notes.Realm) Data {
	var rows [][]string
	for _, realm := range merged {
		for _, n := range realm.Notes {
			rows = append(rows, []string{realm.Name, n.Player, FormatDetail(n.Detail), FormatRating(n.Rating)})
		}
	}
	return Data{
		Headers: []string{"Realm", "Player", "Note", "Rating"},
		Rows:    rows,
	}
}

// AccountLabel shortens an account path to its directory name.
func AccountLabel(account string) string {
	base := filepath.Base(account)
	if base == "." || base == string(filepath.Separator) {
		return account
	}
	return base
}

// FormatChange renders a change type with its symbol.
func FormatChange(change differ.ChangeType) string {
	switch change {
	case differ.ChangeTypeAdd:
		return emoji.Add + " add"
	case differ.ChangeTypeUpdate:
		return emoji.Update + " update"
	case differ.ChangeTypeRemove:
		return emoji.Remove + " remove"
	default:
		return emoji.Unknown + " " + string(change)
	}
}

// FormatRating renders a rating, or "-" when none is set.
func FormatRating(r notes.Rating) string {
	if !r.IsSet() {
		return "-"
	}
	return r.String()
}

// FormatDetail keeps note text on one line.
func FormatDetail(detail string) string {
	if detail == "" {
		return `""`
	}
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\t", " ").Replace(detail)
}
