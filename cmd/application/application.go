// Package application provides the application interface for syncnotes commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Design Principles:
//   - Accept interfaces, return structs (Go proverb)
//   - Define interfaces where they're used, not where they're implemented
//   - Keep interfaces small and focused
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            client, err := app.Client()
//	            if err != nil {
//	                return err
//	            }
//	            result, err := client.Plan(cmd.Context(), sync.WithAccounts(args...))
//	            // ... render result
//	        },
//	    }
//	}
package application

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/syncnotes"
)

// Defaults are the sync settings read from the config file and
// environment. Command flags override them.
type Defaults struct {
	Accounts    []string
	Simulation  bool
	Confirm     bool
	Backup      bool
	Timeout     time.Duration
	Concurrency int
}

// Application provides the application interface that commands need.
// The App struct from cmd/syncnotes/app automatically implements this interface,
// providing dependency injection for commands while maintaining testability.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Client creates a syncnotes client with optional configuration.
	Client(opts ...syncnotes.Option) (syncnotes.Client, error)

	// Defaults returns the configured sync settings.
	Defaults() Defaults

	// Logger returns the configured logger instance.
	// Commands should use this for all logging operations.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml, markdown).
	OutputFormat() string

	// Quiet reports whether progress output is suppressed.
	Quiet() bool

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
