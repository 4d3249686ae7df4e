package sync

import (
	"fmt"
	"strings"

	"github.com/agentstation/syncnotes/pkg/reconciler"
)

// Result represents the complete result of a sync run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string `json:"run_id" yaml:"run_id"`

	// Reconciliation is the engine output the run acted on.
	Reconciliation *reconciler.Result `json:"reconciliation" yaml:"reconciliation"`

	// Operation metadata
	Simulation bool     `json:"simulation" yaml:"simulation"` // Whether instructions were only reported
	Applied    []string `json:"applied" yaml:"applied"`       // Accounts whose files were rewritten
	Declined   bool     `json:"declined" yaml:"declined"`     // Whether the confirmation was refused
}

// HasChanges returns true if the reconciliation produced any instruction.
func (sr *Result) HasChanges() bool {
	return sr != nil && sr.Reconciliation.HasChanges()
}

// TotalChanges returns the number of instructions across accounts.
func (sr *Result) TotalChanges() int {
	if sr == nil || sr.Reconciliation == nil {
		return 0
	}
	total := 0
	for _, cs := range sr.Reconciliation.Changesets {
		total += cs.Summary.TotalChanges
	}
	return total
}

// Summary returns a human-readable summary of the sync result.
func (sr *Result) Summary() string {
	if !sr.HasChanges() {
		return "No changes detected"
	}

	var parts []string
	switch {
	case sr.Simulation:
		parts = append(parts, "(Simulation)")
	case sr.Declined:
		parts = append(parts, "(Declined)")
	}

	summary := fmt.Sprintf("%d total changes across %d accounts, %d accounts written",
		sr.TotalChanges(), sr.changedAccounts(), len(sr.Applied))
	if len(parts) > 0 {
		summary += " " + strings.Join(parts, " ")
	}

	return summary
}

func (sr *Result) changedAccounts() int {
	n := 0
	for _, cs := range sr.Reconciliation.Changesets {
		if cs.HasChanges() {
			n++
		}
	}
	return n
}
