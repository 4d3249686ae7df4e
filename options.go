package syncnotes

import (
	"github.com/agentstation/syncnotes/pkg/accounts"
	"github.com/agentstation/syncnotes/pkg/errors"
	"github.com/agentstation/syncnotes/pkg/reconciler"
)

// config holds the collaborators of a client.
type config struct {
	loader     accounts.Loader
	reconciler reconciler.Reconciler
	writer     accounts.Writer
	reporter   accounts.Writer
}

func defaults() *config {
	return &config{
		loader:   accounts.NewLoader(),
		reporter: accounts.NewReporter(nil),
	}
}

func (c *config) apply(opts ...Option) (*config, error) {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Option is a function that configures a Client instance
type Option func(*config) error

// WithLoader configures how accounts are read
func WithLoader(loader accounts.Loader) Option {
	return func(c *config) error {
		if loader == nil {
			return errors.NewValidationError("loader", nil, "loader cannot be nil")
		}
		c.loader = loader
		return nil
	}
}

// WithReconciler configures the reconciliation engine
func WithReconciler(r reconciler.Reconciler) Option {
	return func(c *config) error {
		if r == nil {
			return errors.NewValidationError("reconciler", nil, "reconciler cannot be nil")
		}
		c.reconciler = r
		return nil
	}
}

// WithWriter configures the writer used for approved changes. Without it
// every run writes files with an accounts.FileWriter honoring the run's
// backup setting.
func WithWriter(w accounts.Writer) Option {
	return func(c *config) error {
		if w == nil {
			return errors.NewValidationError("writer", nil, "writer cannot be nil")
		}
		c.writer = w
		return nil
	}
}

// WithReporter configures the writer used in simulation mode
func WithReporter(w accounts.Writer) Option {
	return func(c *config) error {
		if w == nil {
			return errors.NewValidationError("reporter", nil, "reporter cannot be nil")
		}
		c.reporter = w
		return nil
	}
}
