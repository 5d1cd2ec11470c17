package family

// Required column names. Every table consumed by the engine carries these
// two columns first; everything after them is a dynamic attribute column.
const (
	ColumnChild  = "Child"
	ColumnParent = "Parent"
)

// Row is one record of the source table. Child and Parent are identifier
// strings (possibly empty). Attrs holds the row's dynamic column values,
// keyed by column name; missing cells are stored as empty strings.
type Row struct {
	Child  string
	Parent string
	Attrs  map[string]string
}

// Table is an ordered sequence of rows plus the column order of the source.
// Columns always starts with Child, Parent; the remainder are the dynamic
// attribute columns in original source order.
type Table struct {
	Columns []string
	Rows    []Row
}

// DynamicColumns returns the attribute column names, i.e. every column
// except Child and Parent, preserving source order.
func (t Table) DynamicColumns() []string {
	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c == ColumnChild || c == ColumnParent {
			continue
		}
		cols = append(cols, c)
	}
	return cols
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool { return len(t.Rows) == 0 }
