// Package snapshot turns the raw notes and ratings tables of one account
// into a normalized, read-only view keyed by realm and player.
//
// Building a snapshot performs no I/O. The tables are produced by the
// loader in package accounts and handed over as an Input.
package snapshot

import (
	"context"
	"fmt"
	"sort"

	"github.com/agentstation/syncnotes/pkg/errors"
	"github.com/agentstation/syncnotes/pkg/logging"
	"github.com/agentstation/syncnotes/pkg/notes"
)

// Input is the decoded notes section of one account.
type Input struct {
	// Account identifies the account in results and errors.
	Account string

	// Realms maps realm name to its tables. A nil map means the account
	// has no notes section at all.
	Realms map[string]RealmData
}

// RealmData holds the raw tables stored for one realm.
type RealmData struct {
	// Notes maps player name to note detail. Nil when the realm has no
	// notes table.
	Notes map[string]string

	// Ratings maps player name to a rating token. Players without an
	// entry have no rating.
	Ratings map[string]string
}

// Snapshot is the normalized notes of one account.
type Snapshot struct {
	Account  string
	Realms   map[string]*notes.Realm
	Warnings []string

	// Usable is false when the account had no notes section and so
	// cannot take part in a reconciliation.
	Usable bool
}

// Build normalizes input into a Snapshot. A missing notes section is a
// warning, not an error. A rating token outside the rating enumeration
// fails the whole account with a *errors.RatingError.
func Build(ctx context.Context, input Input) (*Snapshot, error) {
	if input.Account == "" {
		return nil, &errors.ValidationError{
			Field:   "account",
			Message: "account identifier is required",
		}
	}

	ctx = logging.WithAccount(ctx, input.Account)
	logger := logging.FromContext(ctx)

	snap := &Snapshot{
		Account: input.Account,
		Realms:  make(map[string]*notes.Realm, len(input.Realms)),
		Usable:  input.Realms != nil,
	}

	if input.Realms == nil {
		msg := fmt.Sprintf("account %s has no notes section", input.Account)
		snap.Warnings = append(snap.Warnings, msg)
		logger.Warn().Msg("No notes section found")
		return snap, nil
	}

	total := 0
	for _, realmName := range sortedKeys(input.Realms) {
		data := input.Realms[realmName]
		realmLogger := logging.FromContext(logging.WithRealm(ctx, realmName))
		if data.Notes == nil {
			msg := fmt.Sprintf("account %s realm %s has no notes table", input.Account, realmName)
			snap.Warnings = append(snap.Warnings, msg)
			realmLogger.Warn().Msg("Realm has no notes table")
			continue
		}

		list := make([]notes.Note, 0, len(data.Notes))
		for player, detail := range data.Notes {
			rating := notes.RatingNone
			if token, ok := data.Ratings[player]; ok {
				r, err := notes.ParseRating(token)
				if err != nil {
					return nil, errors.NewRatingError(input.Account, realmName, player, token)
				}
				rating = r
			}
			list = append(list, notes.New(player, detail, rating))
		}

		snap.Realms[realmName] = notes.NewRealm(realmName, list...)
		total += len(list)

		realmLogger.Debug().
			Int("notes", len(list)).
			Msg("Realm loaded")
	}

	logger.Info().
		Int("realms", len(snap.Realms)).
		Int("notes", total).
		Msg("Snapshot built")

	return snap, nil
}

// Note returns the account's note for player on realm.
func (s *Snapshot) Note(realm, player string) (notes.Note, bool) {
	if s == nil {
		return notes.Note{}, false
	}
	return s.Realms[realm].Find(player)
}

// RealmNames returns the realm names in order.
func (s *Snapshot) RealmNames() []string {
	if s == nil {
		return nil
	}
	return sortedKeys(s.Realms)
}

// Count returns the total number of notes across realms.
func (s *Snapshot) Count() int {
	if s == nil {
		return 0
	}
	total := 0
	for _, r := range s.Realms {
		total += r.Len()
	}
	return total
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
