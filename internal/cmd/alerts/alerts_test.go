package alerts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/syncnotes/internal/cmd/output"
)

func TestAlertString(t *testing.T) {
	assert.Equal(t, "✓ Updated 2 accounts", NewSuccess("Updated %d accounts", 2).String())
	assert.Equal(t, "! careful", NewWarning("careful").String())
	assert.Equal(t, "warning", LevelWarning.String())
	assert.Equal(t, "unknown(9)", Level(9).String())
}

func TestWriterPlain(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, output.FormatTable)

	require.NoError(t, w.WriteAll(
		NewWarning("Skipped 1 accounts").WithDetails("ALT"),
		NewInfo("Simulation mode"),
	))

	assert.Equal(t, "! Skipped 1 accounts\n   ALT\ni Simulation mode\n", buf.String(), "buffers get no color")
}

func TestWriterMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf, output.FormatMarkdown).Write(NewSuccess("done").WithDetails("Total: 3")))
	assert.Equal(t, "> **success** done\n> - Total: 3\n\n", buf.String())
}

func TestWriterMachineFormats(t *testing.T) {
	for _, format := range []output.Format{output.FormatJSON, output.FormatYAML} {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(&buf, format).Write(NewSuccess("done")))
		assert.Empty(t, buf.String(), format)
	}
}
