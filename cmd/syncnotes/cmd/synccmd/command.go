// Package synccmd implements the sync command, which reconciles the notes
// of several accounts and writes the agreed result back.
package synccmd

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/syncnotes/cmd/application"
	"github.com/agentstation/syncnotes/internal/cmd/cmdutil"
)

// NewCommand creates the sync command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *cmdutil.SyncFlags

	cmd := &cobra.Command{
		Use:     "sync [account...]",
		GroupID: "core",
		Short:   "Synchronize notes between accounts",
		Long: `Sync loads CharacterNotes from every account, reconciles them and writes
the agreed notes back.

An account is a World of Warcraft account directory (the one holding
SavedVariables) or its CharacterNotes.lua file. At least two accounts are
required; they can be given as arguments, with -a, or in the config file.

The command will:
• Copy notes that are missing from an account
• Remove notes set to [Delete] in any account from all accounts
• Report notes that differ between accounts as conflicts and leave them alone
• Keep a CharacterNotes.lua.bak copy of every file it rewrites`,
		Example: `  syncnotes sync WTF/Account/MAIN WTF/Account/ALT     # Sync two accounts
  syncnotes sync -a MAIN -a ALT --simulation          # Preview changes
  syncnotes sync -a MAIN -a ALT -y                    # Apply without asking
  syncnotes sync -o json -y                           # Accounts from config, JSON result`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Execute(cmd, app, flags, args)
		},
	}

	flags = cmdutil.AddSyncFlags(cmd, app.Defaults())

	return cmd
}
