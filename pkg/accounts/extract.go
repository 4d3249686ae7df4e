package accounts

import (
	"fmt"
	"strconv"

	"github.com/agentstation/syncnotes/internal/savedvars"
	"github.com/agentstation/syncnotes/pkg/constants"
	"github.com/agentstation/syncnotes/pkg/snapshot"
)

// extract reads the realm tables of doc into a snapshot input. Entries the
// engine cannot interpret are skipped, reported as warnings and returned
// as foreign slots.
func extract(account string, doc *savedvars.Document) (snapshot.Input, map[Slot]bool, []string) {
	input := snapshot.Input{Account: account}
	foreign := make(map[Slot]bool)
	var warnings []string

	raw, ok := doc.Lookup(constants.NotesGlobal, constants.RealmTableKey)
	if !ok {
		return input, foreign, nil
	}
	realms, ok := raw.(savedvars.Table)
	if !ok {
		warnings = append(warnings, fmt.Sprintf("account %s: %s.%s is not a table",
			account, constants.NotesGlobal, constants.RealmTableKey))
		return input, foreign, warnings
	}

	input.Realms = make(map[string]snapshot.RealmData, len(realms))
	for key, value := range realms {
		name, ok := key.(string)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("account %s: skipped realm key %v", account, key))
			continue
		}
		realm, ok := value.(savedvars.Table)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("account %s realm %s: not a table", account, name))
			continue
		}

		var data snapshot.RealmData
		if t, ok := realm.Table(constants.NotesTableKey); ok {
			data.Notes = scalars(t, func(player string, v any) {
				foreign[Slot{Realm: name, Player: player}] = true
				warnings = append(warnings, fmt.Sprintf("account %s realm %s: skipped note for %s of type %s",
					account, name, player, kind(v)))
			})
		}
		if t, ok := realm.Table(constants.RatingsTableKey); ok {
			data.Ratings = scalars(t, func(player string, v any) {
				foreign[Slot{Realm: name, Player: player}] = true
				warnings = append(warnings, fmt.Sprintf("account %s realm %s: skipped rating for %s of type %s",
					account, name, player, kind(v)))
			})
		}
		input.Realms[name] = data
	}

	return input, foreign, warnings
}

// scalars flattens a player-keyed table into strings. Non-string keys are
// ignored; values that are not scalar are passed to skip.
func scalars(t savedvars.Table, skip func(player string, v any)) map[string]string {
	out := make(map[string]string, len(t))
	for key, value := range t {
		player, ok := key.(string)
		if !ok {
			continue
		}
		switch v := value.(type) {
		case string:
			out[player] = v
		case float64:
			out[player] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			skip(player, v)
		}
	}
	return out
}

// isScalar reports whether v is a value scalars keeps.
func isScalar(v any) bool {
	switch v.(type) {
	case string, float64:
		return true
	default:
		return false
	}
}

func kind(v any) string {
	switch v.(type) {
	case bool:
		return "boolean"
	case savedvars.Table:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}
