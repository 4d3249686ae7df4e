package alerts

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/agentstation/syncnotes/internal/cmd/output"
)

// Writer prints alerts next to human readable command output. Machine
// formats carry their status in the formatted result, so alerts are
// dropped for them.
type Writer struct {
	w      io.Writer
	format output.Format
	color  bool
}

// NewWriter creates a Writer for format. Color is used only on terminals
// and never when NO_COLOR is set.
func NewWriter(w io.Writer, format output.Format) *Writer {
	return &Writer{
		w:      w,
		format: format,
		color:  os.Getenv("NO_COLOR") == "" && isTerminal(w),
	}
}

// Write prints one alert.
func (fw *Writer) Write(alert *Alert) error {
	switch {
	case fw.format.IsMachine():
		return nil
	case fw.format == output.FormatMarkdown:
		return fw.writeMarkdown(alert)
	default:
		return fw.writePlain(alert)
	}
}

// WriteAll prints alerts in order, stopping at the first error.
func (fw *Writer) WriteAll(alerts ...*Alert) error {
	for _, a := range alerts {
		if err := fw.Write(a); err != nil {
			return err
		}
	}
	return nil
}

func (fw *Writer) writePlain(alert *Alert) error {
	message := alert.String()
	if fw.color {
		message = alert.Level.Color() + message + resetColor
	}
	if _, err := fmt.Fprintln(fw.w, message); err != nil {
		return err
	}
	for _, detail := range alert.Details {
		if _, err := fmt.Fprintf(fw.w, "   %s\n", detail); err != nil {
			return err
		}
	}
	return nil
}

func (fw *Writer) writeMarkdown(alert *Alert) error {
	if _, err := fmt.Fprintf(fw.w, "> **%s** %s\n", alert.Level, alert.Message); err != nil {
		return err
	}
	for _, detail := range alert.Details {
		if _, err := fmt.Fprintf(fw.w, "> - %s\n", detail); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(fw.w)
	return err
}

// isTerminal checks if the writer is a terminal (for color support).
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
