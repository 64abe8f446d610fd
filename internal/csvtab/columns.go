package csvtab

// ColumnMap resolves header names to column positions. Names match exactly
// and are case-sensitive.
type ColumnMap struct {
	index map[string]int
	names []string
}

// NewColumnMap builds a lookup from a header row. When a name appears more
// than once the last occurrence wins.
func NewColumnMap(headers []string) ColumnMap {
	m := ColumnMap{
		index: make(map[string]int, len(headers)),
		names: append([]string(nil), headers...),
	}
	for i, h := range headers {
		m.index[h] = i
	}
	return m
}

// Has reports whether the header declares name, regardless of row values.
func (m ColumnMap) Has(name string) bool {
	_, ok := m.index[name]
	return ok
}

// Index returns the column position of name.
func (m ColumnMap) Index(name string) (int, bool) {
	i, ok := m.index[name]
	return i, ok
}

// Field returns the value of column name in row, or "" when the header does
// not declare the name or the row is too short.
func (m ColumnMap) Field(row []string, name string) string {
	i, ok := m.index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// Int parses column name with ParseNumber.
func (m ColumnMap) Int(row []string, name string) int {
	return ParseNumber(m.Field(row, name))
}

// Missing returns the names from want that the header does not declare.
func (m ColumnMap) Missing(want []string) []string {
	var missing []string
	for _, name := range want {
		if !m.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Headers returns the header row as read.
func (m ColumnMap) Headers() []string {
	return m.names
}
