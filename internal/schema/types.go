// Package schema declares the column layout of the club and player tables.
package schema

// FieldType describes how a column's value is interpreted.
type FieldType int

const (
	FieldText FieldType = iota
	FieldNumeric
	FieldEnum
)

func (t FieldType) String() string {
	switch t {
	case FieldNumeric:
		return "numeric"
	case FieldEnum:
		return "enum"
	default:
		return "text"
	}
}

// FieldSpec describes one expected column.
type FieldSpec struct {
	Name       string    // Column header name (must match CSV exactly)
	Type       FieldType // Expected data type
	Required   bool      // Rows cannot be accepted without this column
	EnumValues []string  // Recognised values for FieldEnum
}

// Table groups the columns of one input table.
type Table struct {
	Key    string
	Label  string
	Fields []FieldSpec
}

// Headers returns the column names in declaration order.
func (t Table) Headers() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	return names
}

// RequiredHeaders returns the names of required columns.
func (t Table) RequiredHeaders() []string {
	var names []string
	for _, f := range t.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Tables lists the input tables by key.
var Tables = map[string]Table{
	Clubs.Key:   Clubs,
	Players.Key: Players,
}
