// Package reconciler merges the CharacterNotes of several accounts. It
// classifies every (realm, player) pair as merged, conflicting or removed
// and derives the write instructions that bring each account in line.
//
// Reconciliation is pure: it performs no I/O and never mutates the input
// snapshots. The outcome does not depend on the order snapshots are given.
package reconciler

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/syncnotes/pkg/differ"
	"github.com/agentstation/syncnotes/pkg/errors"
	"github.com/agentstation/syncnotes/pkg/logging"
	"github.com/agentstation/syncnotes/pkg/notes"
	"github.com/agentstation/syncnotes/pkg/snapshot"
)

// Reconciler is the main interface for reconciling notes from multiple accounts.
type Reconciler interface {
	// Reconcile merges the given account snapshots into one Result.
	Reconcile(ctx context.Context, snapshots []*snapshot.Snapshot) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	minSources int
	differ     differ.Differ
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &reconciler{
		minSources: options.minSources,
		differ:     options.differ,
	}, nil
}

// reconcileContext holds shared state for reconciliation.
type reconcileContext struct {
	usable    []*snapshot.Snapshot
	skipped   []string
	warnings  []string
	collector *collector
	logger    *zerolog.Logger
	startTime time.Time
}

// Reconcile performs reconciliation with clean step-by-step flow.
func (r *reconciler) Reconcile(ctx context.Context, snapshots []*snapshot.Snapshot) (*Result, error) {
	// Step 1: Validate input and drop unusable accounts
	rctx, err := r.initialize(ctx, snapshots)
	if err != nil {
		return nil, err
	}

	// Step 2: Classify every pair
	result := NewResult()
	result.Metadata.StartTime = rctx.startTime
	target := r.classify(rctx, result)

	// Step 3: Derive instructions for each account
	r.instructions(rctx, target, result)

	// Step 4: Finalize
	result.Accounts = rctx.collector.accounts
	result.Skipped = rctx.skipped
	result.Warnings = append(result.Warnings, rctx.warnings...)
	sort.Strings(result.Skipped)
	sort.Strings(result.Warnings)
	result.Finalize()

	rctx.logger.Info().
		Int("accounts", len(result.Accounts)).
		Int("merged", result.Metadata.Stats.Merged).
		Int("conflicts", result.Metadata.Stats.Conflicts).
		Int("removed", result.Metadata.Stats.Removed).
		Int("instructions", result.Metadata.Stats.Instructions).
		Dur("duration", result.Metadata.Duration).
		Msg("Reconciliation complete")

	return result, nil
}

// initialize validates the snapshots and sets up reconciliation context.
func (r *reconciler) initialize(ctx context.Context, snapshots []*snapshot.Snapshot) (*reconcileContext, error) {
	logger := logging.FromContext(ctx)
	rctx := &reconcileContext{
		logger:    logger,
		startTime: time.Now(),
	}

	seen := make(map[string]bool, len(snapshots))
	for i, snap := range snapshots {
		if snap == nil {
			return nil, &errors.ValidationError{
				Field:   "snapshots",
				Value:   i,
				Message: "snapshot cannot be nil",
			}
		}
		if seen[snap.Account] {
			return nil, &errors.ValidationError{
				Field:   "snapshots",
				Value:   snap.Account,
				Message: "duplicate account " + snap.Account,
			}
		}
		seen[snap.Account] = true

		rctx.warnings = append(rctx.warnings, snap.Warnings...)
		if !snap.Usable {
			rctx.skipped = append(rctx.skipped, snap.Account)
			logger.Warn().
				Str("account", snap.Account).
				Msg("Skipping account without notes section")
			continue
		}
		rctx.usable = append(rctx.usable, snap)
	}

	if len(rctx.usable) < r.minSources {
		return nil, errors.NewSourcesError(len(rctx.usable), r.minSources, rctx.skipped)
	}

	rctx.collector = newCollector(rctx.usable)
	logger.Debug().
		Strs("accounts", rctx.collector.accounts).
		Int("pairs", len(rctx.collector.pairs)).
		Msg("Collected notes from accounts")

	return rctx, nil
}

// classify sorts every pair into merged, conflicts or removals and
// returns the target state for the differ.
func (r *reconciler) classify(rctx *reconcileContext, result *Result) *differ.Target {
	target := differ.NewTarget()
	merged := make(map[string][]notes.Note)
	var realmOrder []string

	for _, key := range rctx.collector.keys() {
		holdings := rctx.collector.pairs[key]
		result.Metadata.Stats.Pairs++

		switch kind, note := classifyPair(holdings); kind {
		case outcomeRemoved:
			removal := Removal{Realm: key.realm, Player: key.player}
			for _, h := range holdings {
				removal.Accounts = append(removal.Accounts, h.account)
			}
			result.Removals = append(result.Removals, removal)
			target.Remove(key.realm, key.player)
			result.Metadata.Stats.Removed++

		case outcomeConflict:
			conflict := Conflict{Realm: key.realm, Player: key.player}
			for _, h := range holdings {
				conflict.Entries = append(conflict.Entries, ConflictEntry{Account: h.account, Note: h.note})
			}
			result.Conflicts = append(result.Conflicts, conflict)
			result.Metadata.Stats.Conflicts++
			rctx.logger.Info().
				Str("realm", key.realm).
				Str("player", key.player).
				Int("accounts", len(holdings)).
				Msg("Conflicting notes left untouched")

		default:
			if _, ok := merged[key.realm]; !ok {
				realmOrder = append(realmOrder, key.realm)
			}
			merged[key.realm] = append(merged[key.realm], note)
			target.Merge(key.realm, note)
			result.Metadata.Stats.Merged++
		}
	}

	for _, realm := range realmOrder {
		result.Merged = append(result.Merged, *notes.NewRealm(realm, merged[realm]...))
	}

	return target
}

// instructions derives the changeset of every usable account.
func (r *reconciler) instructions(rctx *reconcileContext, target *differ.Target, result *Result) {
	for _, snap := range rctx.usable {
		cs := r.differ.Account(snap, target)
		result.Changesets[snap.Account] = cs
		result.Metadata.Stats.Instructions += cs.Summary.TotalChanges

		if cs.HasChanges() {
			rctx.logger.Debug().
				Str("account", snap.Account).
				Int("added", cs.Summary.Added).
				Int("updated", cs.Summary.Updated).
				Int("removed", cs.Summary.Removed).
				Msg("Derived write instructions")
		}
	}
}
