package reconciler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentstation/syncnotes/pkg/differ"
	"github.com/agentstation/syncnotes/pkg/notes"
	"github.com/agentstation/syncnotes/pkg/reconciler"
	"github.com/agentstation/syncnotes/pkg/snapshot"
)

// entry is one stored note in test fixtures. An empty rating means the
// player has no ratings entry.
type entry struct {
	realm, player, detail, rating string
}

// account builds a usable snapshot from entries.
func account(t testing.TB, id string, entries ...entry) *snapshot.Snapshot {
	t.Helper()

	realms := map[string]snapshot.RealmData{}
	for _, e := range entries {
		data, ok := realms[e.realm]
		if !ok {
			data = snapshot.RealmData{Notes: map[string]string{}, Ratings: map[string]string{}}
		}
		data.Notes[e.player] = e.detail
		if e.rating != "" {
			data.Ratings[e.player] = e.rating
		}
		realms[e.realm] = data
	}

	snap, err := snapshot.Build(context.Background(), snapshot.Input{Account: id, Realms: realms})
	require.NoError(t, err)
	return snap
}

// reconcile runs the default reconciler.
func reconcile(t testing.TB, snaps ...*snapshot.Snapshot) *reconciler.Result {
	t.Helper()

	r, err := reconciler.New()
	require.NoError(t, err)
	result, err := r.Reconcile(context.Background(), snaps)
	require.NoError(t, err)
	return result
}

// applyAll returns the snapshots after every account applied its instructions.
func applyAll(result *reconciler.Result, snaps []*snapshot.Snapshot) []*snapshot.Snapshot {
	next := make([]*snapshot.Snapshot, len(snaps))
	for i, s := range snaps {
		next[i] = differ.Apply(s, result.Changeset(s.Account))
	}
	return next
}

// instructionFor finds the instruction for player on realm in account's changeset.
func instructionFor(result *reconciler.Result, acct, realm, player string) (differ.Instruction, bool) {
	rc := result.Changeset(acct).Realm(realm)
	if rc == nil {
		return differ.Instruction{}, false
	}
	for _, inst := range rc.Instructions {
		if inst.Player == player {
			return inst, true
		}
	}
	return differ.Instruction{}, false
}

func note(player, detail string, r notes.Rating) notes.Note {
	return notes.New(player, detail, r)
}
