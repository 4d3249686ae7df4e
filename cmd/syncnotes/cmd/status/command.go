// Package status implements the status command, which reconciles accounts
// without writing and reports what a sync would do.
package status

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/syncnotes/cmd/application"
	"github.com/agentstation/syncnotes/internal/cmd/alerts"
	"github.com/agentstation/syncnotes/internal/cmd/cmdutil"
	"github.com/agentstation/syncnotes/internal/cmd/output"
	"github.com/agentstation/syncnotes/internal/cmd/table"
	"github.com/agentstation/syncnotes/pkg/reconciler"
)

// Flags holds the status command flags.
type Flags struct {
	*cmdutil.AccountFlags
	Merged bool
}

// NewCommand creates the status command using app context.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "status [account...]",
		GroupID: "core",
		Short:   "Show how accounts differ without changing them",
		Long: `Status loads and reconciles the accounts exactly like sync, then reports
conflicts, removals and the pending changes for each account. No file is
written.`,
		Example: `  syncnotes status WTF/Account/MAIN WTF/Account/ALT
  syncnotes status --merged -o markdown > notes.md
  syncnotes status -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Execute(cmd, app, flags, args)
		},
	}

	flags.AccountFlags = cmdutil.AddAccountFlags(cmd, app.Defaults())
	cmd.Flags().BoolVar(&flags.Merged, "merged", false, "Include the merged notes")

	return cmd
}

// Execute plans a sync and renders the reconciliation.
func Execute(cmd *cobra.Command, app application.Application, flags *Flags, args []string) error {
	client, err := app.Client()
	if err != nil {
		return err
	}

	result, err := client.Plan(cmd.Context(), flags.Options(cmd, app.Defaults(), args)...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	format := output.Format(app.OutputFormat())
	if format.IsMachine() {
		return output.NewFormatter(format).Format(out, result)
	}

	if err := output.NewFormatter(format).Format(out, Sections(result, flags.Merged)); err != nil {
		return err
	}

	if app.Quiet() {
		return nil
	}
	return printSummary(out, format, result)
}

// Sections builds the report shown for human output formats.
func Sections(result *reconciler.Result, merged bool) output.Sections {
	sections := output.Sections{
		{Title: "Summary", Data: output.Data(table.StatsToTableData(result))},
		{Title: "Conflicts", Data: output.Data(table.ConflictsToTableData(result.Conflicts)), Empty: "No conflicts"},
		{Title: "Removals", Data: output.Data(table.RemovalsToTableData(result.Removals)), Empty: "Nothing to remove"},
		{Title: "Pending changes", Data: output.Data(table.InstructionsToTableData(result)), Empty: "All accounts are in sync"},
	}
	if merged {
		sections = append(sections, output.Section{
			Title: "Merged notes",
			Data:  output.Data(table.MergedToTableData(result.Merged)),
			Empty: "No notes",
		})
	}
	return sections
}

func printSummary(w io.Writer, format output.Format, result *reconciler.Result) error {
	fmt.Fprintln(w)
	writer := alerts.NewWriter(w, format)
	for _, warning := range result.Warnings {
		if err := writer.Write(alerts.NewWarning("%s", warning)); err != nil {
			return err
		}
	}
	if result.HasChanges() {
		return writer.Write(alerts.NewInfo("%s Run sync to apply.", result.Summary()))
	}
	return writer.Write(alerts.NewSuccess("%s", result.Summary()))
}
