package reconciler_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/syncnotes/pkg/notes"
	"github.com/agentstation/syncnotes/pkg/reconciler"
	"github.com/agentstation/syncnotes/pkg/snapshot"
)

var (
	propRealms  = []string{"Nightmare", "Kazzak", "Silvermoon"}
	propPlayers = []string{"Thrall", "Jaina", "Anduin", "Sylvanas"}
	propDetails = []string{"Good trader", "Scammer", "", notes.DeleteMarker}
	propRatings = []string{"", "-1", "0", "1"}
)

// randomAccounts builds between two and four accounts with a sparse,
// overlapping set of notes.
func randomAccounts(t *testing.T, rng *rand.Rand) []*snapshot.Snapshot {
	t.Helper()

	n := 2 + rng.Intn(3)
	snaps := make([]*snapshot.Snapshot, n)
	for i := range snaps {
		var entries []entry
		for _, realm := range propRealms {
			for _, player := range propPlayers {
				if rng.Intn(3) != 0 {
					continue
				}
				// Bias towards agreement so merges are common.
				detail := propDetails[0]
				if rng.Intn(3) == 0 {
					detail = propDetails[rng.Intn(len(propDetails))]
				}
				rating := ""
				if rng.Intn(4) == 0 {
					rating = propRatings[rng.Intn(len(propRatings))]
				}
				entries = append(entries, entry{realm, player, detail, rating})
			}
		}
		snaps[i] = account(t, fmt.Sprintf("ACCOUNT%d", i), entries...)
	}
	return snaps
}

// pairsOf returns every (realm, player) pair held by any account.
func pairsOf(snaps []*snapshot.Snapshot) map[[2]string]bool {
	pairs := map[[2]string]bool{}
	for _, s := range snaps {
		for realm, r := range s.Realms {
			for _, n := range r.All() {
				pairs[[2]string{realm, n.Player}] = true
			}
		}
	}
	return pairs
}

func forEachSeed(t *testing.T, fn func(t *testing.T, snaps []*snapshot.Snapshot)) {
	for seed := int64(1); seed <= 50; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			rng := rand.New(rand.NewSource(seed))
			fn(t, randomAccounts(t, rng))
		})
	}
}

func TestCompleteness(t *testing.T) {
	forEachSeed(t, func(t *testing.T, snaps []*snapshot.Snapshot) {
		result := reconcile(t, snaps...)

		seen := map[[2]string]int{}
		for _, realm := range result.Merged {
			for _, n := range realm.Notes {
				seen[[2]string{realm.Name, n.Player}]++
			}
		}
		for _, c := range result.Conflicts {
			seen[[2]string{c.Realm, c.Player}]++
		}
		for _, r := range result.Removals {
			seen[[2]string{r.Realm, r.Player}]++
		}

		for pair := range pairsOf(snaps) {
			assert.Equal(t, 1, seen[pair], "pair %v must land in exactly one outcome", pair)
		}
		assert.Len(t, seen, len(pairsOf(snaps)), "no outcome for pairs nobody holds")
		assert.Equal(t, len(seen), result.Metadata.Stats.Pairs)
	})
}

func TestSymmetry(t *testing.T) {
	opts := cmp.Options{
		cmpopts.IgnoreFields(reconciler.Result{}, "Metadata"),
		cmpopts.EquateEmpty(),
	}

	forEachSeed(t, func(t *testing.T, snaps []*snapshot.Snapshot) {
		want := reconcile(t, snaps...)

		reversed := make([]*snapshot.Snapshot, len(snaps))
		for i, s := range snaps {
			reversed[len(snaps)-1-i] = s
		}
		got := reconcile(t, reversed...)

		if diff := cmp.Diff(want, got, opts); diff != "" {
			t.Errorf("result depends on account order (-want +got):\n%s", diff)
		}
		assert.Equal(t, want.Metadata.Stats.Instructions, got.Metadata.Stats.Instructions)
	})
}

func TestIdempotence(t *testing.T) {
	forEachSeed(t, func(t *testing.T, snaps []*snapshot.Snapshot) {
		first := reconcile(t, snaps...)
		second := reconcile(t, applyAll(first, snaps)...)

		assert.Zero(t, second.Metadata.Stats.Instructions)
		assert.False(t, second.HasChanges())
		assert.Empty(t, second.Removals, "removed pairs are gone after applying")

		for _, realm := range first.Merged {
			for _, n := range realm.Notes {
				got, ok := second.MergedNote(realm.Name, n.Player)
				require.True(t, ok, "%s/%s stays merged", realm.Name, n.Player)
				assert.Equal(t, n, got)
			}
		}
		if diff := cmp.Diff(first.Conflicts, second.Conflicts, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("conflicts changed after applying (-first +second):\n%s", diff)
		}
	})
}

func TestDeletionDominance(t *testing.T) {
	forEachSeed(t, func(t *testing.T, snaps []*snapshot.Snapshot) {
		result := reconcile(t, snaps...)

		for pair := range pairsOf(snaps) {
			realm, player := pair[0], pair[1]
			marked := false
			var holders []string
			for _, s := range snaps {
				if n, ok := s.Note(realm, player); ok {
					holders = append(holders, s.Account)
					marked = marked || n.IsDeletion()
				}
			}
			if !marked {
				continue
			}

			_, ok := result.MergedNote(realm, player)
			assert.False(t, ok, "%s/%s must not merge", realm, player)
			for _, acct := range holders {
				inst, ok := instructionFor(result, acct, realm, player)
				require.True(t, ok, "%s must remove %s/%s", acct, realm, player)
				assert.Equal(t, "remove", string(inst.Action))
			}
		}

		for _, realm := range result.Merged {
			for _, n := range realm.Notes {
				assert.False(t, n.IsDeletion(), "merged view never carries the marker")
			}
		}
	})
}

func TestConflictNonResolution(t *testing.T) {
	forEachSeed(t, func(t *testing.T, snaps []*snapshot.Snapshot) {
		result := reconcile(t, snaps...)

		for _, c := range result.Conflicts {
			_, ok := result.MergedNote(c.Realm, c.Player)
			assert.False(t, ok)
			assert.GreaterOrEqual(t, len(c.Entries), 2)
			for _, s := range snaps {
				_, ok := instructionFor(result, s.Account, c.Realm, c.Player)
				assert.False(t, ok, "%s got an instruction for conflicted %s/%s", s.Account, c.Realm, c.Player)
			}
		}
	})
}
