// Package savedvars reads and writes World of Warcraft SavedVariables
// files. A SavedVariables file is a Lua chunk that assigns plain data to
// globals. Decoding executes the chunk in an empty Lua state and converts
// the resulting globals into Go values; encoding writes them back in the
// layout the game client produces.
//
// Values are one of string, float64, bool or Table. Table keys are one of
// string, float64 or bool, which keeps array-style tables intact across a
// round trip.
package savedvars

// Table is a decoded Lua table.
type Table map[any]any

// Document is the set of globals defined by one SavedVariables file.
type Document struct {
	// Name identifies the source in errors, usually the file path.
	Name string

	// Globals maps global variable name to its value.
	Globals map[string]any
}

// NewDocument returns an empty document.
func NewDocument(name string) *Document {
	return &Document{Name: name, Globals: make(map[string]any)}
}

// Lookup walks from a global through nested table keys and returns the
// value found, if any.
func (d *Document) Lookup(global string, keys ...any) (any, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.Globals[global]
	if !ok {
		return nil, false
	}
	for _, k := range keys {
		t, isTable := v.(Table)
		if !isTable {
			return nil, false
		}
		v, ok = t[k]
		if !ok {
			return nil, false
		}
	}
	return v, true
}

// Table returns the global as a table, creating it when absent or when it
// holds a non-table value.
func (d *Document) Table(global string) Table {
	if t, ok := d.Globals[global].(Table); ok {
		return t
	}
	t := Table{}
	d.Globals[global] = t
	return t
}

// Table returns the nested table at key.
func (t Table) Table(key any) (Table, bool) {
	child, ok := t[key].(Table)
	return child, ok
}

// Child returns the nested table at key, creating it when absent or when
// key holds a non-table value.
func (t Table) Child(key any) Table {
	if child, ok := t[key].(Table); ok {
		return child
	}
	child := Table{}
	t[key] = child
	return child
}

// Set stores value at key.
func (t Table) Set(key, value any) {
	t[key] = value
}

// Delete removes key.
func (t Table) Delete(key any) {
	delete(t, key)
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := NewDocument(d.Name)
	for name, v := range d.Globals {
		out.Globals[name] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	t, ok := v.(Table)
	if !ok {
		return v
	}
	out := make(Table, len(t))
	for k, child := range t {
		out[k] = cloneValue(child)
	}
	return out
}
