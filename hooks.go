package syncnotes

import (
	"sync"

	"github.com/agentstation/syncnotes/pkg/reconciler"
)

// Hook function types for reconciliation events
type (
	// ConflictHook is called for every pair the accounts disagree on
	ConflictHook func(conflict reconciler.Conflict)

	// RemovalHook is called for every pair deleted through the marker
	RemovalHook func(removal reconciler.Removal)
)

// Hooks registers callbacks fired after each reconciliation.
type Hooks interface {
	OnConflict(fn ConflictHook)
	OnRemoval(fn RemovalHook)
}

// hooks manages event callbacks for reconciliation outcomes
type hooks struct {
	mu         sync.RWMutex
	onConflict []ConflictHook
	onRemoval  []RemovalHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnConflict registers a callback for conflicting pairs
func (c *client) OnConflict(fn ConflictHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onConflict = append(c.hooks.onConflict, fn)
}

// OnRemoval registers a callback for removed pairs
func (c *client) OnRemoval(fn RemovalHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onRemoval = append(c.hooks.onRemoval, fn)
}

// trigger fires the registered hooks for result, in result order
func (h *hooks) trigger(result *reconciler.Result) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conflict := range result.Conflicts {
		for _, hook := range h.onConflict {
			hook(conflict)
		}
	}

	for _, removal := range result.Removals {
		for _, hook := range h.onRemoval {
			hook(removal)
		}
	}
}
