// Package sync provides options and results for one note synchronization
// run across accounts.
package sync

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/agentstation/syncnotes/pkg/constants"
	"github.com/agentstation/syncnotes/pkg/errors"
	"github.com/agentstation/syncnotes/pkg/reconciler"
)

// ConfirmFunc is asked before changes are written. Returning false
// declines the write without failing the run.
type ConfirmFunc func(ctx context.Context, result *reconciler.Result) (bool, error)

// Options controls the overall sync orchestration in Client.Sync().
type Options struct {
	// Account selection
	Accounts []string // Account directories or notes files, at least two

	// Orchestration control
	Simulation  bool          // Report the instructions without writing
	AutoApprove bool          // Skip the confirmation prompt
	Backup      bool          // Keep the previous notes file as <file>.bak
	Timeout     time.Duration // Bounds loading and each write, never the confirmation; zero means none
	Concurrency int           // Accounts loaded in parallel, zero means the default

	// Confirm is consulted before writing unless AutoApprove is set.
	// A nil Confirm with AutoApprove unset declines every write.
	Confirm ConfirmFunc
}

// Apply applies the given options to the sync options.
func (s *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Defaults returns the default sync options.
func Defaults() *Options {
	return &Options{
		Accounts:    nil,
		Simulation:  false,
		AutoApprove: false,
		Backup:      true,
		Timeout:     constants.DefaultTimeout,
		Concurrency: constants.DefaultConcurrency,
		Confirm:     nil,
	}
}

// Option is a function that configures sync Options.
type Option func(*Options)

// Validate checks if the sync options are valid.
func (s *Options) Validate() error {
	if len(s.Accounts) < constants.MinAccounts {
		return &errors.ValidationError{
			Field:   "Accounts",
			Value:   len(s.Accounts),
			Message: fmt.Sprintf("at least %d accounts are required", constants.MinAccounts),
		}
	}

	seen := make(map[string]bool, len(s.Accounts))
	for _, account := range s.Accounts {
		key := NormalizePath(account)
		if key == "" {
			return &errors.ValidationError{
				Field:   "Accounts",
				Value:   account,
				Message: "account path is empty",
			}
		}
		if seen[key] {
			return &errors.ValidationError{
				Field:   "Accounts",
				Value:   account,
				Message: fmt.Sprintf("account '%s' given more than once", account),
			}
		}
		seen[key] = true
	}

	if s.Timeout < 0 {
		return &errors.ValidationError{
			Field:   "Timeout",
			Value:   s.Timeout,
			Message: "timeout must be non-negative",
		}
	}

	if s.Concurrency < 0 {
		return &errors.ValidationError{
			Field:   "Concurrency",
			Value:   s.Concurrency,
			Message: "concurrency must be non-negative",
		}
	}

	return nil
}

// NormalizePath returns the comparable form of an account argument: the
// legacy ':' prefix removed and the path cleaned.
func NormalizePath(path string) string {
	path = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(path), ":"))
	if path == "" {
		return ""
	}
	return filepath.Clean(path)
}

// WithAccounts appends account paths to synchronize.
func WithAccounts(paths ...string) Option {
	return func(opts *Options) {
		opts.Accounts = append(opts.Accounts, paths...)
	}
}

// WithSimulation configures simulation mode.
func WithSimulation(simulation bool) Option {
	return func(opts *Options) {
		opts.Simulation = simulation
	}
}

// WithAutoApprove configures auto approval.
func WithAutoApprove(autoApprove bool) Option {
	return func(opts *Options) {
		opts.AutoApprove = autoApprove
	}
}

// WithBackup configures whether a backup of each written file is kept.
func WithBackup(backup bool) Option {
	return func(opts *Options) {
		opts.Backup = backup
	}
}

// WithTimeout configures the sync timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.Timeout = timeout
	}
}

// WithConcurrency configures how many accounts load in parallel.
func WithConcurrency(n int) Option {
	return func(opts *Options) {
		opts.Concurrency = n
	}
}

// WithConfirm configures the confirmation callback.
func WithConfirm(fn ConfirmFunc) Option {
	return func(opts *Options) {
		opts.Confirm = fn
	}
}
