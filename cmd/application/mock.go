package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/syncnotes"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
// Example Usage:
//
//	mock := &application.Mock{
//	    DefaultsFunc: func() application.Defaults {
//	        return application.Defaults{Backup: true}
//	    },
//	}
//	cmd := status.NewCommand(mock)
//	// ... test command
type Mock struct {
	ClientFunc       func(opts ...syncnotes.Option) (syncnotes.Client, error)
	DefaultsFunc     func() Defaults
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	QuietFunc        func() bool
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Client returns a client using the mock function or a default client.
func (m *Mock) Client(opts ...syncnotes.Option) (syncnotes.Client, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc(opts...)
	}
	return syncnotes.New(opts...)
}

// Defaults returns sync defaults using the mock function or backups on.
func (m *Mock) Defaults() Defaults {
	if m.DefaultsFunc != nil {
		return m.DefaultsFunc()
	}
	return Defaults{Backup: true}
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Quiet returns quiet using the mock function or false.
func (m *Mock) Quiet() bool {
	if m.QuietFunc != nil {
		return m.QuietFunc()
	}
	return false
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
