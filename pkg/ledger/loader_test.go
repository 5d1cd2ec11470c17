package ledger

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/rdpishibashi/revision-management/pkg/errors"
	"github.com/rdpishibashi/revision-management/pkg/family"
)

// workbook builds an in-memory xlsx with the given sheet contents, one
// string slice per row.
func workbook(t *testing.T, sheet string, rows [][]any) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, sheet); err != nil {
			t.Fatalf("rename sheet: %v", err)
		}
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestLoadBasic(t *testing.T) {
	r := workbook(t, DefaultSheet, [][]any{
		{"Child", "Parent", "Creator", "Relation"},
		{"B", "A", "田中", "流用"},
		{" C ", " A ", "", ""},
	})

	table, err := Load(r, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	wantCols := []string{"Child", "Parent", "Creator", "Relation"}
	if !reflect.DeepEqual(table.Columns, wantCols) {
		t.Errorf("Columns = %v, want %v", table.Columns, wantCols)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("row count = %d, want 2", len(table.Rows))
	}

	want := family.Row{Child: "B", Parent: "A", Attrs: map[string]string{"Creator": "田中", "Relation": "流用"}}
	if !reflect.DeepEqual(table.Rows[0], want) {
		t.Errorf("row 0 = %+v, want %+v", table.Rows[0], want)
	}
	// Cells are trimmed, missing cells come back as empty strings.
	if table.Rows[1].Child != "C" || table.Rows[1].Parent != "A" {
		t.Errorf("row 1 not trimmed: %+v", table.Rows[1])
	}
	if v, ok := table.Rows[1].Attrs["Relation"]; !ok || v != "" {
		t.Errorf("row 1 Relation = %q (present %v), want empty present", v, ok)
	}
}

func TestLoadReordersColumns(t *testing.T) {
	// Parent before Child in the source; loader restores the fixed order.
	r := workbook(t, DefaultSheet, [][]any{
		{"Creator", "Parent", "Child"},
		{"x", "A", "B"},
	})

	table, err := Load(r, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"Child", "Parent", "Creator"}
	if !reflect.DeepEqual(table.Columns, want) {
		t.Errorf("Columns = %v, want %v", table.Columns, want)
	}
	if table.Rows[0].Child != "B" || table.Rows[0].Parent != "A" {
		t.Errorf("row = %+v", table.Rows[0])
	}
}

func TestLoadMissingColumns(t *testing.T) {
	r := workbook(t, DefaultSheet, [][]any{
		{"Child", "Creator"},
		{"B", "x"},
	})

	_, err := Load(r, Options{})
	if !apperrors.Is(err, apperrors.ErrCodeMissingColumns) {
		t.Fatalf("err = %v, want MISSING_COLUMNS", err)
	}
	if msg := apperrors.UserMessage(err); !bytes.Contains([]byte(msg), []byte("Parent")) {
		t.Errorf("message %q does not name the missing column", msg)
	}
}

func TestLoadSheetNotFound(t *testing.T) {
	r := workbook(t, DefaultSheet, [][]any{
		{"Child", "Parent"},
	})

	_, err := Load(r, Options{Sheet: "Ledger"})
	if !apperrors.Is(err, apperrors.ErrCodeSheetNotFound) {
		t.Fatalf("err = %v, want SHEET_NOT_FOUND", err)
	}
}

func TestLoadNamedSheet(t *testing.T) {
	r := workbook(t, "Ledger", [][]any{
		{"Child", "Parent"},
		{"B", "A"},
	})

	table, err := Load(r, Options{Sheet: "Ledger"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(table.Rows) != 1 {
		t.Errorf("row count = %d, want 1", len(table.Rows))
	}
}

func TestLoadSkipsBlankRows(t *testing.T) {
	r := workbook(t, DefaultSheet, [][]any{
		{"Child", "Parent", "Creator"},
		{"B", "A", "x"},
		{"", "", ""},
		{"C", "A", "y"},
	})

	table, err := Load(r, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Errorf("row count = %d, want 2 (blank row dropped)", len(table.Rows))
	}
}

func TestReformatDate(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		layout string
		want   string
	}{
		{"iso date", "2024-03-05", dateLayout, "2024/03/05"},
		{"already normalized", "2024/03/05", dateLayout, "2024/03/05"},
		{"datetime to recorded", "2024-03-05 14:30:00", recordedDateLayout, "24-03-05 14:30:00"},
		{"unparseable passes through", "n/a", dateLayout, "n/a"},
		{"empty", "", dateLayout, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reformatDate(tt.in, tt.layout); got != tt.want {
				t.Errorf("reformatDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
