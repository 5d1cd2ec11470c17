package ledger

import (
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rdpishibashi/revision-management/pkg/errors"
	"github.com/rdpishibashi/revision-management/pkg/family"
)

// DefaultSheet is the sheet read when no sheet name is given.
const DefaultSheet = "Sheet1"

// Date-like columns normalized to fixed string patterns.
const (
	columnDate         = "Date"
	columnRecordedDate = "Recorded Date"

	dateLayout         = "2006/01/02"
	recordedDateLayout = "06-01-02 15:04:05"
)

// Options configures workbook loading.
type Options struct {
	// Sheet is the sheet name to read. Empty means [DefaultSheet].
	Sheet string
}

// LoadFile reads the ledger table from a workbook on disk.
func LoadFile(path string, opts Options) (family.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return family.Table{}, errors.Wrap(errors.ErrCodeInvalidWorkbook, err, "open workbook %s", path)
	}
	defer f.Close()
	return loadTable(f, opts)
}

// Load reads the ledger table from workbook bytes, e.g. an upload body.
func Load(r io.Reader, opts Options) (family.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return family.Table{}, errors.Wrap(errors.ErrCodeInvalidWorkbook, err, "read workbook")
	}
	defer f.Close()
	return loadTable(f, opts)
}

// SheetNames returns the sheet names of a workbook in file order.
func SheetNames(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidWorkbook, err, "open workbook %s", path)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

func loadTable(f *excelize.File, opts Options) (family.Table, error) {
	sheet := opts.Sheet
	if sheet == "" {
		sheet = DefaultSheet
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return family.Table{}, errors.Wrap(errors.ErrCodeSheetNotFound, err,
			"sheet %q not found (available: %s)", sheet, strings.Join(f.GetSheetList(), ", "))
	}
	if len(rows) == 0 {
		return family.Table{}, errors.New(errors.ErrCodeMissingColumns,
			"sheet %q is empty; required columns: %s, %s", sheet, family.ColumnChild, family.ColumnParent)
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	if missing := missingColumns(header); len(missing) > 0 {
		return family.Table{}, errors.New(errors.ErrCodeMissingColumns,
			"missing required columns: %s", strings.Join(missing, ", "))
	}

	columns := orderColumns(header)
	table := family.Table{Columns: columns}

	for _, raw := range rows[1:] {
		cells := make(map[string]string, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			v := ""
			if i < len(raw) {
				v = strings.TrimSpace(raw[i])
			}
			cells[col] = normalizeCell(col, v)
		}
		if allEmpty(cells) {
			continue
		}

		row := family.Row{
			Child:  cells[family.ColumnChild],
			Parent: cells[family.ColumnParent],
			Attrs:  make(map[string]string, len(columns)-2),
		}
		for _, col := range columns[2:] {
			row.Attrs[col] = cells[col]
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// missingColumns returns the required columns absent from the header.
func missingColumns(header []string) []string {
	present := map[string]bool{}
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, col := range []string{family.ColumnChild, family.ColumnParent} {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

// orderColumns places Child and Parent first, then the dynamic columns in
// their source order. Unnamed header cells are dropped.
func orderColumns(header []string) []string {
	columns := []string{family.ColumnChild, family.ColumnParent}
	for _, h := range header {
		if h == "" || h == family.ColumnChild || h == family.ColumnParent {
			continue
		}
		columns = append(columns, h)
	}
	return columns
}

// allEmpty reports whether every cell of a row is blank.
func allEmpty(cells map[string]string) bool {
	for _, v := range cells {
		if v != "" {
			return false
		}
	}
	return true
}

// normalizeCell reformats date-like columns to their fixed patterns. Cell
// values that do not parse as dates pass through unchanged; the engine
// treats them as plain strings either way.
func normalizeCell(col, v string) string {
	switch col {
	case columnDate:
		return reformatDate(v, dateLayout)
	case columnRecordedDate:
		return reformatDate(v, recordedDateLayout)
	default:
		return v
	}
}

// cellDateLayouts are the layouts Excel cell values commonly come back in,
// depending on the cell's number format.
var cellDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01-02-06",
	"1/2/06 15:04",
	"1/2/2006",
	time.RFC3339,
}

func reformatDate(v, layout string) string {
	if v == "" {
		return v
	}
	for _, in := range cellDateLayouts {
		if t, err := time.Parse(in, v); err == nil {
			return t.Format(layout)
		}
	}
	return v
}
