package app

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/syncnotes/internal/cmd/output"
	"github.com/agentstation/syncnotes/pkg/errors"
	"github.com/agentstation/syncnotes/pkg/logging"
)

// GlobalFlags holds the persistent flags shared by every command.
type GlobalFlags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
	Debug      bool
	NoColor    bool
	NoLogo     bool
	Format     string
	LogLevel   string
}

// Execute runs the syncnotes CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "syncnotes",
		Short:   "Synchronize CharacterNotes between World of Warcraft accounts",
		Version: a.version,
		Long: `syncnotes keeps the CharacterNotes addon data of several World of Warcraft
accounts in agreement.

Notes that are equal everywhere stay as they are, notes missing from an
account are copied to it, and a note set to [Delete] in any account is
removed from all of them. Notes that differ between accounts are reported
as conflicts and left untouched.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	rootCmd.PersistentFlags().StringVar(&a.flags.ConfigFile, "config", "", "config file (default is $HOME/.syncnotes.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.flags.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.flags.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.flags.Debug, "debug", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&a.flags.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&a.flags.NoLogo, "nologo", false, "do not print the banner")
	rootCmd.PersistentFlags().StringVarP(&a.flags.Format, "format", "o", "", "output format: table, json, yaml, markdown")
	rootCmd.PersistentFlags().StringVar(&a.flags.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("syncnotes {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// An explicit --config replaces whatever was loaded at startup
	if a.flags.ConfigFile != "" && a.flags.ConfigFile != a.config.ConfigFile {
		config, err := LoadConfig(a.flags.ConfigFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(a.flags)

	format, err := output.ParseFormat(a.config.Format)
	if err != nil {
		return &errors.ValidationError{Field: "format", Value: a.config.Format, Message: err.Error()}
	}
	a.config.Format = string(format)

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger
	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))

	a.printBanner(cmd)

	return nil
}

// printBanner writes the program header to stderr for interactive runs.
func (a *App) printBanner(cmd *cobra.Command) {
	switch cmd.Name() {
	case "version", "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return
	}
	if a.config.NoLogo || a.config.Quiet || output.Format(a.OutputFormat()).IsMachine() {
		return
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "syncnotes Version %s\n", a.version)
	fmt.Fprintln(cmd.ErrOrStderr(), "Synchronize CharacterNotes between World of Warcraft accounts")
	fmt.Fprintln(cmd.ErrOrStderr())
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(a.CreateSyncCommand())
	rootCmd.AddCommand(a.CreateStatusCommand())

	// Utility commands
	rootCmd.AddCommand(a.CreateVersionCommand())
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
