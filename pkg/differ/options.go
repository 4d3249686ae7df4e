package differ

// Option is a functional option for configuring Differ
type Option func(*differ)

// WithTracking controls whether instructions carry the note the account
// held before the change.
func WithTracking(enabled bool) Option {
	return func(d *differ) {
		d.tracking = enabled
	}
}
