package synccmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/agentstation/syncnotes/internal/cmd/output"
	"github.com/agentstation/syncnotes/internal/cmd/table"
	"github.com/agentstation/syncnotes/pkg/reconciler"
	"github.com/agentstation/syncnotes/pkg/sync"
)

// Confirmer returns a confirmation callback that lists the pending
// changes on out and reads the answer from in. Anything but y or yes
// declines, including end of input.
func Confirmer(in io.Reader, out io.Writer, format output.Format) sync.ConfirmFunc {
	return func(_ context.Context, result *reconciler.Result) (bool, error) {
		// Machine formats keep the prompt plain so stdout stays parseable
		display := format
		if display.IsMachine() {
			display = output.FormatTable
		}

		sections := output.Sections{{
			Title: "Pending changes",
			Data:  output.Data(table.InstructionsToTableData(result)),
		}}
		if err := output.NewFormatter(display).Format(out, sections); err != nil {
			return false, err
		}
		fmt.Fprintln(out)

		return ConfirmChanges(in, out)
	}
}

// ConfirmChanges asks the user to confirm applying changes.
// Returns true if the user confirms, false if cancelled.
func ConfirmChanges(in io.Reader, out io.Writer) (bool, error) {
	fmt.Fprintf(out, "Apply these changes? (y/N): ")
	var response string
	if _, err := fmt.Fscanln(in, &response); err != nil {
		response = "n"
	}
	response = strings.ToLower(strings.TrimSpace(response))

	if response != "y" && response != "yes" {
		return false, nil
	}

	fmt.Fprintln(out)
	return true, nil
}
