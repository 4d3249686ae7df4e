package differ

import (
	"github.com/agentstation/syncnotes/pkg/notes"
	"github.com/agentstation/syncnotes/pkg/snapshot"
)

// Apply returns a new snapshot with the changeset's instructions applied
// to current. current is not modified.
func Apply(current *snapshot.Snapshot, changeset *Changeset) *snapshot.Snapshot {
	next := &snapshot.Snapshot{
		Account: current.Account,
		Realms:  make(map[string]*notes.Realm, len(current.Realms)),
		Usable:  current.Usable || changeset.HasChanges(),
	}
	for name, realm := range current.Realms {
		next.Realms[name] = realm
	}

	if changeset == nil {
		return next
	}

	for _, rc := range changeset.Realms {
		byPlayer := make(map[string]notes.Note)
		for _, n := range current.Realms[rc.Realm].All() {
			byPlayer[n.Player] = n
		}

		for _, inst := range rc.Instructions {
			switch inst.Action {
			case ActionUpsert:
				if inst.Note != nil {
					byPlayer[inst.Player] = *inst.Note
				}
			case ActionRemove:
				delete(byPlayer, inst.Player)
			}
		}

		list := make([]notes.Note, 0, len(byPlayer))
		for _, n := range byPlayer {
			list = append(list, n)
		}
		next.Realms[rc.Realm] = notes.NewRealm(rc.Realm, list...)
	}

	return next
}
