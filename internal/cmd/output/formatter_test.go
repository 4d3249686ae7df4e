package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/syncnotes/internal/cmd/table"
)

var sample = Data{
	Headers: []string{"Realm", "Player", "Note"},
	Rows: [][]string{
		{"Nightmare", "Thrall", "Good trader"},
		{"Kazzak", "Jaina", "a|b"},
	},
}

type row struct {
	RunID   string `json:"run_id"`
	Applied int    `json:"applied,omitempty"`
	hidden  bool
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"markdown", FormatMarkdown, false},
		{"md", FormatMarkdown, false},
		{"", "", false},
		{"wide", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsMachine(t *testing.T) {
	assert.True(t, FormatJSON.IsMachine())
	assert.True(t, FormatYAML.IsMachine())
	assert.False(t, FormatTable.IsMachine())
	assert.False(t, FormatMarkdown.IsMachine())
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, map[string]int{"merged": 2}))
	assert.JSONEq(t, `{"merged": 2}`, buf.String())
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, map[string][]string{"accounts": {"MAIN", "ALT"}}))
	assert.Contains(t, buf.String(), "accounts:")
	assert.Contains(t, buf.String(), "- MAIN")
	assert.Contains(t, buf.String(), "- ALT")
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, sample))

	out := buf.String()
	assert.Contains(t, strings.ToUpper(out), "REALM")
	assert.Contains(t, out, "Thrall")
	assert.Contains(t, out, "Good trader")

	buf.Reset()
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, table.Data(sample)))
	assert.Contains(t, buf.String(), "Nightmare")
}

func TestTableFormatterSections(t *testing.T) {
	var buf bytes.Buffer
	sections := Sections{
		{Title: "Conflicts", Data: Data{Headers: []string{"Realm"}}, Empty: "No conflicts"},
		{Title: "Merged", Data: sample},
	}
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, sections))

	out := buf.String()
	assert.Contains(t, out, "Conflicts (0)\n  No conflicts\n")
	assert.Contains(t, out, "Merged (2)")
	assert.Contains(t, out, "Kazzak")
}

func TestTableFormatterReflection(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, []row{{RunID: "abc", Applied: 2}}))

	out := strings.ToUpper(buf.String())
	assert.Contains(t, out, "RUN ID")
	assert.Contains(t, out, "APPLIED")
	assert.NotContains(t, out, "HIDDEN")

	buf.Reset()
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, &row{RunID: "xyz"}))
	assert.Contains(t, strings.ToUpper(buf.String()), "PROPERTY")
	assert.Contains(t, buf.String(), "xyz")
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	sections := Sections{
		{Title: "Removals", Data: Data{Headers: []string{"Realm"}}, Empty: "Nothing removed"},
		{Title: "Merged", Data: sample},
	}
	require.NoError(t, NewFormatter(FormatMarkdown).Format(&buf, sections))

	out := buf.String()
	assert.Contains(t, out, "## Removals (0)")
	assert.Contains(t, out, "Nothing removed")
	assert.Contains(t, out, "## Merged (2)")
	assert.Contains(t, out, "| Realm")
	assert.Contains(t, out, "Thrall")
	assert.Contains(t, out, `a\|b`, "pipes are escaped")
}
