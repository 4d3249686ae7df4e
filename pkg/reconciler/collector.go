package reconciler

import (
	"sort"

	"github.com/agentstation/syncnotes/pkg/notes"
	"github.com/agentstation/syncnotes/pkg/snapshot"
)

// pairKey identifies one player on one realm.
type pairKey struct {
	realm  string
	player string
}

// holding is one account's note for a pair.
type holding struct {
	account string
	note    notes.Note
}

// collector gathers, for every (realm, player) pair seen in any account,
// the note each account holds.
type collector struct {
	accounts []string
	pairs    map[pairKey][]holding
}

// newCollector indexes the given snapshots. Holdings are ordered by
// account so nothing downstream depends on input order.
func newCollector(snaps []*snapshot.Snapshot) *collector {
	c := &collector{
		pairs: make(map[pairKey][]holding),
	}

	for _, snap := range snaps {
		c.accounts = append(c.accounts, snap.Account)
		for realmName, realm := range snap.Realms {
			for _, n := range realm.All() {
				key := pairKey{realm: realmName, player: n.Player}
				c.pairs[key] = append(c.pairs[key], holding{account: snap.Account, note: n})
			}
		}
	}

	sort.Strings(c.accounts)
	for key := range c.pairs {
		h := c.pairs[key]
		sort.Slice(h, func(i, j int) bool { return h[i].account < h[j].account })
	}

	return c
}

// keys returns every pair ordered by realm then player.
func (c *collector) keys() []pairKey {
	keys := make([]pairKey, 0, len(c.pairs))
	for k := range c.pairs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].realm != keys[j].realm {
			return keys[i].realm < keys[j].realm
		}
		return keys[i].player < keys[j].player
	})
	return keys
}

// outcome is the classification of one pair.
type outcome int

const (
	outcomeMerged outcome = iota
	outcomeConflict
	outcomeRemoved
)

// classifyPair decides the outcome for one pair. A deletion marker in any
// account wins outright. Otherwise the pair merges when every holder
// agrees on detail and rating, and conflicts when they do not.
func classifyPair(holdings []holding) (outcome, notes.Note) {
	for _, h := range holdings {
		if h.note.IsDeletion() {
			return outcomeRemoved, notes.Note{}
		}
	}

	first := holdings[0].note
	for _, h := range holdings[1:] {
		if !h.note.Equal(first) {
			return outcomeConflict, notes.Note{}
		}
	}
	return outcomeMerged, first
}
