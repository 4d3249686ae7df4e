package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey int

const (
	// loggerKey is the context key for the logger.
	loggerKey contextKey = iota
	// runIDKey is the context key for the sync run ID.
	runIDKey
	// accountKey is the context key for the account being processed.
	accountKey
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from context, or returns the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}

	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}

	return Default()
}

// WithRunID tags the context and its logger with the ID of one sync run.
func WithRunID(ctx context.Context, runID string) context.Context {
	ctx = context.WithValue(ctx, runIDKey, runID)
	return withField(ctx, "run_id", runID)
}

// RunID extracts the sync run ID from context.
func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// withField adds a single string field to the logger in the context.
func withField(ctx context.Context, key, value string) context.Context {
	logger := FromContext(ctx).With().Str(key, value).Logger()
	return WithLogger(ctx, &logger)
}

// WithAccount tags the context and its logger with an account. Tagging a
// context with the account it already carries returns it unchanged, so
// nested calls never repeat the field.
func WithAccount(ctx context.Context, account string) context.Context {
	if Account(ctx) == account {
		return ctx
	}
	ctx = context.WithValue(ctx, accountKey, account)
	return withField(ctx, "account", account)
}

// Account extracts the account tag from context.
func Account(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if account, ok := ctx.Value(accountKey).(string); ok {
		return account
	}
	return ""
}

// WithRealm adds realm context to the logger.
func WithRealm(ctx context.Context, realm string) context.Context {
	return withField(ctx, "realm", realm)
}

// WithOperation adds operation context to the logger.
func WithOperation(ctx context.Context, operation string) context.Context {
	return withField(ctx, "operation", operation)
}
