package savedvars

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Encode writes doc as a SavedVariables Lua chunk. Globals are written in
// name order; table entries are written one per line with tab indentation,
// numeric keys first in ascending order, then string keys, then booleans.
func Encode(w io.Writer, doc *Document) error {
	bw := bufio.NewWriter(w)

	names := make([]string, 0, len(doc.Globals))
	for name := range doc.Globals {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		bw.WriteString(name)
		bw.WriteString(" = ")
		if err := writeValue(bw, doc.Globals[name], 0); err != nil {
			return fmt.Errorf("global %s: %w", name, err)
		}
		bw.WriteString("\n")
	}

	return bw.Flush()
}

// Marshal returns the encoded form of doc.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeValue(w *bufio.Writer, v any, depth int) error {
	switch val := v.(type) {
	case nil:
		w.WriteString("nil")
	case string:
		w.WriteString(quote(val))
	case float64:
		w.WriteString(formatNumber(val))
	case int:
		w.WriteString(strconv.Itoa(val))
	case bool:
		w.WriteString(strconv.FormatBool(val))
	case Table:
		return writeTable(w, val, depth)
	default:
		return fmt.Errorf("unsupported value of type %T", v)
	}
	return nil
}

func writeTable(w *bufio.Writer, t Table, depth int) error {
	if depth >= maxDepth {
		return fmt.Errorf("tables nested deeper than %d levels", maxDepth)
	}

	w.WriteString("{\n")
	indent := strings.Repeat("\t", depth+1)
	for _, key := range sortedKeys(t) {
		w.WriteString(indent)
		w.WriteString("[")
		if err := writeKey(w, key); err != nil {
			return err
		}
		w.WriteString("] = ")
		if err := writeValue(w, t[key], depth+1); err != nil {
			return fmt.Errorf("key %v: %w", key, err)
		}
		w.WriteString(",\n")
	}
	w.WriteString(strings.Repeat("\t", depth))
	w.WriteString("}")
	return nil
}

func writeKey(w *bufio.Writer, key any) error {
	switch k := key.(type) {
	case string:
		w.WriteString(quote(k))
	case float64:
		w.WriteString(formatNumber(k))
	case int:
		w.WriteString(strconv.Itoa(k))
	case bool:
		w.WriteString(strconv.FormatBool(k))
	default:
		return fmt.Errorf("unsupported key of type %T", key)
	}
	return nil
}

// keyRank orders key kinds: numbers, then strings, then booleans.
func keyRank(k any) int {
	switch k.(type) {
	case float64, int:
		return 0
	case string:
		return 1
	default:
		return 2
	}
}

func sortedKeys(t Table) []any {
	keys := make([]any, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := keyRank(keys[i]), keyRank(keys[j])
		if ri != rj {
			return ri < rj
		}
		switch a := keys[i].(type) {
		case string:
			return a < keys[j].(string)
		case bool:
			return !a && keys[j].(bool)
		default:
			return toFloat(keys[i]) < toFloat(keys[j])
		}
	})
	return keys
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}

// formatNumber renders a Lua number. Integral values print without a
// fractional part.
func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "0/0"
	case math.IsInf(v, 1):
		return "1/0"
	case math.IsInf(v, -1):
		return "-1/0"
	case v == math.Trunc(v) && math.Abs(v) < 1e15:
		return strconv.FormatInt(int64(v), 10)
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}

// quote renders s as a double-quoted Lua string literal.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&b, `\%03d`, c)
				continue
			}
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
