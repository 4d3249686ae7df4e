package reconciler

import (
	"github.com/agentstation/syncnotes/pkg/constants"
	"github.com/agentstation/syncnotes/pkg/differ"
	"github.com/agentstation/syncnotes/pkg/errors"
)

// Options configures a reconciler.
type options struct {
	minSources int
	differ     differ.Differ
}

func defaultOptions() *options {
	return &options{
		minSources: constants.MinAccounts,
		differ:     differ.New(),
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithMinSources sets how many usable accounts a reconciliation needs.
// Values below two are rejected.
func WithMinSources(n int) Option {
	return func(o *options) error {
		if n < constants.MinAccounts {
			return &errors.ValidationError{
				Field:   "min_sources",
				Value:   n,
				Message: "at least two sources are required to reconcile",
			}
		}
		o.minSources = n
		return nil
	}
}

// WithDiffer sets the differ used to derive per-account instructions.
func WithDiffer(d differ.Differ) Option {
	return func(o *options) error {
		if d == nil {
			return &errors.ValidationError{
				Field:   "differ",
				Message: "cannot be nil",
			}
		}
		o.differ = d
		return nil
	}
}
