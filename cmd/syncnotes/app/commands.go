package app

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/syncnotes/cmd/syncnotes/cmd/status"
	"github.com/agentstation/syncnotes/cmd/syncnotes/cmd/synccmd"
)

// CreateSyncCommand creates the sync command with app dependencies.
func (a *App) CreateSyncCommand() *cobra.Command {
	return synccmd.NewCommand(a)
}

// CreateStatusCommand creates the status command with app dependencies.
func (a *App) CreateStatusCommand() *cobra.Command {
	return status.NewCommand(a)
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("syncnotes %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:     %s\n", a.commit)
				cmd.Printf("  built:      %s\n", a.date)
				cmd.Printf("  built by:   %s\n", a.builtBy)
				cmd.Printf("  go version: %s\n", runtime.Version())
				cmd.Printf("  platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
			}
		},
	}
}
