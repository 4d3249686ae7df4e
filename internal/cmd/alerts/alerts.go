// Package alerts provides the one-line status messages commands print
// after their main output.
package alerts

import (
	"fmt"
	"strings"

	"github.com/agentstation/syncnotes/internal/cmd/emoji"
)

// Level represents the severity of an alert.
type Level int

const (
	// LevelError indicates a failure or error condition.
	LevelError Level = iota
	// LevelWarning indicates a potential issue or important notice.
	LevelWarning
	// LevelInfo indicates general informational messages.
	LevelInfo
	// LevelSuccess indicates successful completion of an operation.
	LevelSuccess
)

// String returns the string representation of the alert level.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	default:
		return fmt.Sprintf("unknown(%d)", int(l))
	}
}

// Icon returns the marker printed in front of the message.
func (l Level) Icon() string {
	switch l {
	case LevelError:
		return emoji.Error
	case LevelWarning:
		return emoji.Warning
	case LevelInfo:
		return emoji.Info
	case LevelSuccess:
		return emoji.Success
	default:
		return emoji.Unknown
	}
}

// Color returns ANSI color codes for terminal output.
func (l Level) Color() string {
	switch l {
	case LevelError:
		return "\033[31m" // Red
	case LevelWarning:
		return "\033[33m" // Yellow
	case LevelInfo:
		return "\033[36m" // Cyan
	case LevelSuccess:
		return "\033[32m" // Green
	default:
		return resetColor
	}
}

const resetColor = "\033[0m"

// Alert represents a status notification.
type Alert struct {
	Level   Level
	Message string
	Details []string
}

// New creates a new alert with the given level and message.
func New(level Level, format string, args ...any) *Alert {
	return &Alert{Level: level, Message: fmt.Sprintf(format, args...)}
}

// NewWarning creates a new warning alert.
func NewWarning(format string, args ...any) *Alert {
	return New(LevelWarning, format, args...)
}

// NewInfo creates a new info alert.
func NewInfo(format string, args ...any) *Alert {
	return New(LevelInfo, format, args...)
}

// NewSuccess creates a new success alert.
func NewSuccess(format string, args ...any) *Alert {
	return New(LevelSuccess, format, args...)
}

// WithDetails adds indented lines below the message.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String returns the alert without details.
func (a *Alert) String() string {
	return strings.TrimSpace(a.Level.Icon() + " " + a.Message)
}
