package synccmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/syncnotes"
	"github.com/agentstation/syncnotes/cmd/application"
	"github.com/agentstation/syncnotes/internal/cmd/alerts"
	"github.com/agentstation/syncnotes/internal/cmd/cmdutil"
	"github.com/agentstation/syncnotes/internal/cmd/output"
	"github.com/agentstation/syncnotes/internal/cmd/table"
	"github.com/agentstation/syncnotes/pkg/accounts"
	"github.com/agentstation/syncnotes/pkg/logging"
	"github.com/agentstation/syncnotes/pkg/reconciler"
	"github.com/agentstation/syncnotes/pkg/sync"
)

// Execute runs a sync with the command's flags and renders the result.
func Execute(cmd *cobra.Command, app application.Application, flags *cmdutil.SyncFlags, args []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	out := cmd.OutOrStdout()
	format := output.Format(app.OutputFormat())
	quiet := app.Quiet()

	// Simulated writes are printed for people and only logged for programs
	var clientOpts []syncnotes.Option
	if !format.IsMachine() && !quiet {
		clientOpts = append(clientOpts, syncnotes.WithReporter(accounts.NewReporter(out)))
	}
	client, err := app.Client(clientOpts...)
	if err != nil {
		return err
	}

	client.OnConflict(func(c reconciler.Conflict) {
		logger.Warn().
			Str("realm", c.Realm).
			Str("player", c.Player).
			Int("accounts", len(c.Entries)).
			Msg("Notes differ, leaving them unchanged")
	})

	// Prompts go to stderr when stdout carries machine output
	promptOut := out
	if format.IsMachine() {
		promptOut = cmd.ErrOrStderr()
	}

	opts := flags.Options(cmd, app.Defaults(), args)
	opts = append(opts, sync.WithConfirm(Confirmer(cmd.InOrStdin(), promptOut, format)))

	result, err := client.Sync(ctx, opts...)
	if err != nil {
		return err
	}

	if format.IsMachine() {
		return output.NewFormatter(format).Format(out, result)
	}

	return printResult(out, format, result, quiet)
}

// printResult renders a sync result for people.
func printResult(w io.Writer, format output.Format, result *sync.Result, quiet bool) error {
	rec := result.Reconciliation
	writer := alerts.NewWriter(w, format)

	if len(rec.Skipped) > 0 && !quiet {
		labels := make([]string, len(rec.Skipped))
		for i, id := range rec.Skipped {
			labels[i] = table.AccountLabel(id)
		}
		skipped := alerts.NewWarning("Skipped %d accounts without CharacterNotes data", len(labels)).WithDetails(labels...)
		if err := writer.Write(skipped); err != nil {
			return err
		}
	}

	if rec.HasConflicts() {
		sections := output.Sections{{
			Title: "Conflicts",
			Data:  output.Data(table.ConflictsToTableData(rec.Conflicts)),
		}}
		if err := output.NewFormatter(format).Format(w, sections); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	var status *alerts.Alert
	switch {
	case !result.HasChanges():
		status = alerts.NewSuccess("All accounts are in sync - no changes needed")
	case result.Simulation:
		status = alerts.NewInfo("Simulation mode - no files were changed")
	case result.Declined:
		status = alerts.NewInfo("Sync cancelled")
	default:
		status = alerts.NewSuccess("Updated %d accounts", len(result.Applied))
	}
	if !quiet {
		status.WithDetails("Total: " + result.Summary())
	}
	return writer.Write(status)
}
