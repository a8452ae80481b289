package binding

// Table is an insertion-ordered name to value mapping holding the imported
// symbols of a run. It is filled once at startup and only read afterwards.
type Table struct {
	names  []string
	values map[string]any
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{values: make(map[string]any)}
}

// Set binds name to value. Rebinding an existing name replaces its value but
// keeps the position of the first binding.
func (t *Table) Set(name string, value any) {
	if _, ok := t.values[name]; !ok {
		t.names = append(t.names, name)
	}
	t.values[name] = value
}

// Get returns the value bound to name.
func (t *Table) Get(name string) (any, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := t.values[name]
	return v, ok
}

// Names returns the bound names in binding order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Len returns the number of bound names.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.names)
}
