// Package notes defines the CharacterNotes data model: a note about one
// player, the notes kept for one realm, and the closed rating enumeration.
//
// Values in this package are treated as immutable. Reconciliation builds
// new notes and realms instead of editing ones owned by a snapshot.
package notes

import (
	"fmt"
	"sort"
)

// DeleteMarker is the note detail that requests deletion of a
// (realm, player) note from every account. It is matched exactly.
const DeleteMarker = "[Delete]"

// Note is what one account knows about one player.
type Note struct {
	Player string `json:"player" yaml:"player"`
	Detail string `json:"detail" yaml:"detail"`
	Rating Rating `json:"rating" yaml:"rating"`
}

// New returns a note for player.
func New(player, detail string, rating Rating) Note {
	return Note{Player: player, Detail: detail, Rating: rating}
}

// IsDeletion reports whether the note requests deletion.
func (n Note) IsDeletion() bool {
	return n.Detail == DeleteMarker
}

// Equal reports whether two notes carry the same content.
func (n Note) Equal(other Note) bool {
	return n.Player == other.Player && n.Detail == other.Detail && n.Rating == other.Rating
}

// String renders the note for logs and reports.
func (n Note) String() string {
	if n.Rating.IsSet() {
		return fmt.Sprintf("%s: %q (%s)", n.Player, n.Detail, n.Rating)
	}
	return fmt.Sprintf("%s: %q", n.Player, n.Detail)
}

// Realm is the set of notes one account holds for one realm, ordered by
// player name with at most one note per player.
type Realm struct {
	Name  string `json:"name" yaml:"name"`
	Notes []Note `json:"notes" yaml:"notes"`
}

// NewRealm builds a realm from notes in any order. When a player appears
// more than once the last note wins.
func NewRealm(name string, list ...Note) *Realm {
	byPlayer := make(map[string]Note, len(list))
	for _, n := range list {
		byPlayer[n.Player] = n
	}
	sorted := make([]Note, 0, len(byPlayer))
	for _, n := range byPlayer {
		sorted = append(sorted, n)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Player < sorted[j].Player
	})
	return &Realm{Name: name, Notes: sorted}
}

// Find returns the note for player.
func (r *Realm) Find(player string) (Note, bool) {
	if r == nil {
		return Note{}, false
	}
	i := sort.Search(len(r.Notes), func(i int) bool {
		return r.Notes[i].Player >= player
	})
	if i < len(r.Notes) && r.Notes[i].Player == player {
		return r.Notes[i], true
	}
	return Note{}, false
}

// All returns the realm's notes in player order.
func (r *Realm) All() []Note {
	if r == nil {
		return nil
	}
	return r.Notes
}

// Len returns the number of notes in the realm.
func (r *Realm) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Notes)
}

// Players returns the player names in order.
func (r *Realm) Players() []string {
	if r == nil {
		return nil
	}
	players := make([]string, len(r.Notes))
	for i, n := range r.Notes {
		players[i] = n.Player
	}
	return players
}
