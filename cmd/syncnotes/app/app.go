// Package app provides the application context and dependency management
// for the syncnotes CLI. It centralizes configuration, logging and the
// syncnotes client so commands only depend on the application.Application
// interface.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/syncnotes"
	"github.com/agentstation/syncnotes/cmd/application"
	"github.com/agentstation/syncnotes/internal/cmd/output"
	"github.com/agentstation/syncnotes/pkg/errors"
)

// App represents the syncnotes application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config
	flags  GlobalFlags

	// Logger
	logger *zerolog.Logger

	// Client instance (lazy-initialized, singleton)
	mu         sync.RWMutex
	client     syncnotes.Client
	clientOpts []syncnotes.Option
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Defaults returns the configured sync settings.
func (a *App) Defaults() application.Defaults {
	return a.config.Defaults()
}

// OutputFormat returns the output format, detecting it from the terminal
// when none is configured.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Format))
}

// Quiet reports whether progress output is suppressed.
func (a *App) Quiet() bool {
	return a.config.Quiet
}

// Client returns the syncnotes client. Without options the shared
// instance is returned, created on first use.
func (a *App) Client(opts ...syncnotes.Option) (syncnotes.Client, error) {
	if len(opts) > 0 {
		return a.newClient(opts...)
	}

	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil {
		return a.client, nil
	}

	c, err := a.newClient()
	if err != nil {
		return nil, err
	}
	a.client = c
	return c, nil
}

func (a *App) newClient(opts ...syncnotes.Option) (syncnotes.Client, error) {
	all := a.buildClientOptions()
	all = append(all, opts...)
	c, err := syncnotes.New(all...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}
	return c, nil
}

// buildClientOptions constructs client options from the app configuration.
func (a *App) buildClientOptions() []syncnotes.Option {
	return append([]syncnotes.Option{}, a.clientOpts...)
}

// Shutdown performs graceful shutdown of the application.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	a.client = nil
	a.mu.Unlock()
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return &errors.ValidationError{Field: "config", Message: "config cannot be nil"}
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClientOptions adds options to every client the app creates
// (useful for testing).
func WithClientOptions(opts ...syncnotes.Option) Option {
	return func(a *App) error {
		a.clientOpts = append(a.clientOpts, opts...)
		return nil
	}
}
