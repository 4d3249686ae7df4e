package differ

import (
	"sort"

	"github.com/agentstation/syncnotes/pkg/notes"
	"github.com/agentstation/syncnotes/pkg/snapshot"
)

// Target is the reconciled state every account should converge to.
// Pairs absent from both maps (conflicts) produce no instructions.
type Target struct {
	// Merged maps realm to player to the agreed note.
	Merged map[string]map[string]notes.Note

	// Removed maps realm to the players deleted everywhere.
	Removed map[string]map[string]bool
}

// NewTarget returns an empty Target.
func NewTarget() *Target {
	return &Target{
		Merged:  make(map[string]map[string]notes.Note),
		Removed: make(map[string]map[string]bool),
	}
}

// Merge records the agreed note for player on realm.
func (t *Target) Merge(realm string, n notes.Note) {
	if t.Merged[realm] == nil {
		t.Merged[realm] = make(map[string]notes.Note)
	}
	t.Merged[realm][n.Player] = n
}

// Remove records that player on realm is deleted everywhere.
func (t *Target) Remove(realm, player string) {
	if t.Removed[realm] == nil {
		t.Removed[realm] = make(map[string]bool)
	}
	t.Removed[realm][player] = true
}

// realms returns every realm the target mentions, in order.
func (t *Target) realms() []string {
	seen := make(map[string]bool, len(t.Merged)+len(t.Removed))
	for r := range t.Merged {
		seen[r] = true
	}
	for r := range t.Removed {
		seen[r] = true
	}
	names := make([]string, 0, len(seen))
	for r := range seen {
		names = append(names, r)
	}
	sort.Strings(names)
	return names
}

// Differ handles change detection between an account and the target.
type Differ interface {
	// Account returns the instructions that bring current in line with target.
	Account(current *snapshot.Snapshot, target *Target) *Changeset
}

// differ is the default implementation of Differ.
type differ struct {
	tracking bool
}

// New creates a Differ with default settings.
func New(opts ...Option) Differ {
	d := &differ{
		tracking: true,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Account compares one account snapshot against the target. An account
// already holding the agreed note gets nothing for that pair.
func (diff *differ) Account(current *snapshot.Snapshot, target *Target) *Changeset {
	changeset := &Changeset{
		Account: current.Account,
		Realms:  []RealmChanges{},
	}

	for _, realm := range target.realms() {
		var instructions []Instruction

		for player, merged := range target.Merged[realm] {
			existing, ok := current.Note(realm, player)
			if ok && existing.Equal(merged) {
				continue
			}
			note := merged
			inst := Instruction{
				Player: player,
				Action: ActionUpsert,
				Change: ChangeTypeAdd,
				Note:   &note,
			}
			if ok {
				inst.Change = ChangeTypeUpdate
				if diff.tracking {
					prev := existing
					inst.Previous = &prev
				}
			}
			instructions = append(instructions, inst)
		}

		for player := range target.Removed[realm] {
			existing, ok := current.Note(realm, player)
			if !ok {
				continue
			}
			inst := Instruction{
				Player: player,
				Action: ActionRemove,
				Change: ChangeTypeRemove,
			}
			if diff.tracking {
				prev := existing
				inst.Previous = &prev
			}
			instructions = append(instructions, inst)
		}

		if len(instructions) == 0 {
			continue
		}

		// Sort for consistent output
		sort.Slice(instructions, func(i, j int) bool {
			return instructions[i].Player < instructions[j].Player
		})

		changeset.Realms = append(changeset.Realms, RealmChanges{
			Realm:        realm,
			Instructions: instructions,
		})
	}

	changeset.Summary = calculateSummary(changeset.Realms)
	return changeset
}
