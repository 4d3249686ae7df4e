// Package cmdutil provides shared flags and configuration utilities for syncnotes commands.
package cmdutil

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/syncnotes/cmd/application"
	"github.com/agentstation/syncnotes/pkg/sync"
)

// AccountFlags holds the flags shared by commands that load accounts.
type AccountFlags struct {
	Accounts    []string
	Timeout     time.Duration
	Concurrency int
}

// AddAccountFlags adds account selection flags to a command, seeded from
// the configured defaults.
func AddAccountFlags(cmd *cobra.Command, defaults application.Defaults) *AccountFlags {
	flags := &AccountFlags{}

	cmd.Flags().StringArrayVarP(&flags.Accounts, "account", "a", nil,
		"Account directory or CharacterNotes.lua file (repeat for each account)")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", defaults.Timeout,
		"Limit loading and each file write to this long (0 for no limit)")
	cmd.Flags().IntVar(&flags.Concurrency, "concurrency", defaults.Concurrency,
		"Accounts loaded in parallel")

	return flags
}

// Resolve merges the flag accounts with positional ones. When neither is
// given the configured accounts are used.
func (f *AccountFlags) Resolve(defaults application.Defaults, args []string) []string {
	accounts := append([]string{}, f.Accounts...)
	accounts = append(accounts, args...)
	if len(accounts) == 0 {
		accounts = append(accounts, defaults.Accounts...)
	}
	return accounts
}

// Options converts the flags into sync options. Flags the user did not
// set fall back to defaults, which may have been reloaded after the
// flags were registered.
func (f *AccountFlags) Options(cmd *cobra.Command, defaults application.Defaults, args []string) []sync.Option {
	timeout, concurrency := f.Timeout, f.Concurrency
	if !cmd.Flags().Changed("timeout") {
		timeout = defaults.Timeout
	}
	if !cmd.Flags().Changed("concurrency") {
		concurrency = defaults.Concurrency
	}

	return []sync.Option{
		sync.WithAccounts(f.Resolve(defaults, args)...),
		sync.WithTimeout(timeout),
		sync.WithConcurrency(concurrency),
	}
}

// SyncFlags holds the flags of the sync command.
type SyncFlags struct {
	*AccountFlags
	Confirm    bool
	Simulation bool
	NoBackup   bool
}

// AddSyncFlags adds account and write flags to the sync command.
func AddSyncFlags(cmd *cobra.Command, defaults application.Defaults) *SyncFlags {
	flags := &SyncFlags{AccountFlags: AddAccountFlags(cmd, defaults)}

	cmd.Flags().BoolVarP(&flags.Confirm, "confirm", "y", defaults.Confirm,
		"Apply changes without asking")
	cmd.Flags().BoolVar(&flags.Simulation, "simulation", defaults.Simulation,
		"Show what would change without writing any file")
	cmd.Flags().BoolVar(&flags.Simulation, "dry-run", defaults.Simulation,
		"Alias for --simulation")
	cmd.Flags().BoolVar(&flags.NoBackup, "no-backup", !defaults.Backup,
		"Do not keep CharacterNotes.lua.bak copies")

	return flags
}

// Options converts the flags into sync options.
func (f *SyncFlags) Options(cmd *cobra.Command, defaults application.Defaults, args []string) []sync.Option {
	confirm, simulation, backup := f.Confirm, f.Simulation, !f.NoBackup
	if !cmd.Flags().Changed("confirm") {
		confirm = defaults.Confirm
	}
	if !cmd.Flags().Changed("simulation") && !cmd.Flags().Changed("dry-run") {
		simulation = defaults.Simulation
	}
	if !cmd.Flags().Changed("no-backup") {
		backup = defaults.Backup
	}

	return append(f.AccountFlags.Options(cmd, defaults, args),
		sync.WithAutoApprove(confirm),
		sync.WithSimulation(simulation),
		sync.WithBackup(backup),
	)
}
