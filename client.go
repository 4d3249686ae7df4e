// Package syncnotes provides the main entry point for synchronizing
// CharacterNotes addon data between World of Warcraft accounts.
//
// A Client loads every account given to it, reconciles their notes and
// writes the result back, so a note taken on one account shows up on the
// others. Notes that agree are propagated, notes marked "[Delete]" are
// removed everywhere and notes that disagree are reported and left alone.
//
// Example usage:
//
//	client, err := syncnotes.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client.OnConflict(func(c reconciler.Conflict) {
//	    log.Printf("conflict: %s", c)
//	})
//
//	result, err := client.Sync(ctx,
//	    sync.WithAccounts(`WTF/Account/MAIN`, `WTF/Account/ALT`),
//	    sync.WithAutoApprove(true),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Summary())
package syncnotes

import (
	"context"

	"github.com/agentstation/syncnotes/pkg/accounts"
	"github.com/agentstation/syncnotes/pkg/reconciler"
	"github.com/agentstation/syncnotes/pkg/sync"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Syncer runs reconciliations across accounts.
type Syncer interface {
	// Sync loads, reconciles and, unless simulating or declined, writes
	// the accounts.
	Sync(ctx context.Context, opts ...sync.Option) (*sync.Result, error)

	// Plan loads and reconciles the accounts without writing anything.
	Plan(ctx context.Context, opts ...sync.Option) (*reconciler.Result, error)
}

// Client synchronizes notes between accounts.
type Client interface {

	// Syncer handles reconciliation runs
	Syncer

	// Hooks provides access to event callback registration
	Hooks
}

// client is the internal implementation of the Client interface.
type client struct {
	loader     accounts.Loader
	reconciler reconciler.Reconciler

	// writer applies changes; nil means a FileWriter built per run.
	writer   accounts.Writer
	reporter accounts.Writer

	hooks *hooks
}

// New creates a new Client instance with the given options.
func New(opts ...Option) (Client, error) {
	cfg, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}

	if cfg.reconciler == nil {
		if cfg.reconciler, err = reconciler.New(); err != nil {
			return nil, err
		}
	}

	return &client{
		loader:     cfg.loader,
		reconciler: cfg.reconciler,
		writer:     cfg.writer,
		reporter:   cfg.reporter,
		hooks:      newHooks(),
	}, nil
}
