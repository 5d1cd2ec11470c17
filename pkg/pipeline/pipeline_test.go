package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/rdpishibashi/revision-management/pkg/cache"
	apperrors "github.com/rdpishibashi/revision-management/pkg/errors"
)

// testWorkbook builds a small ledger workbook in memory.
func testWorkbook(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	rows := [][]any{
		{"Child", "Parent", "Creator", "Relation"},
		{"B", "A", "田中", "流用"},
		{"C", "A", "佐藤", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "pdf", []string{"pdf"}},
		{"multiple formats", "svg,pdf,html", []string{"svg", "pdf", "html"}},
		{"spaces trimmed", "svg, pdf", []string{"svg", "pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("ParseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"valid svg", []string{"svg"}, false},
		{"valid all", []string{"json", "dot", "svg", "pdf", "png", "html"}, false},
		{"invalid format", []string{"gif"}, true},
		{"mixed valid invalid", []string{"svg", "gif"}, true},
		{"empty slice", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
			if err != nil && !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
				t.Errorf("error code = %v, want INVALID_FORMAT", apperrors.GetCode(err))
			}
		})
	}
}

func TestExecuteProducesArtifacts(t *testing.T) {
	r := NewRunner(cache.NewNullCache(), nil)
	defer r.Close()

	res, err := r.Execute(context.Background(), testWorkbook(t), Options{
		Formats: []string{FormatJSON, FormatDOT, FormatHTML},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Cached {
		t.Error("first run must not be cached")
	}
	if len(res.Graph.Nodes) != 3 {
		t.Errorf("node count = %d, want 3", len(res.Graph.Nodes))
	}
	if len(res.Graph.Edges) != 2 {
		t.Errorf("edge count = %d, want 2", len(res.Graph.Edges))
	}

	if !strings.Contains(string(res.Artifacts[FormatDOT]), "digraph FamilyTree") {
		t.Error("dot artifact malformed")
	}
	if !strings.Contains(string(res.Artifacts[FormatHTML]), "<!DOCTYPE html>") {
		t.Error("html artifact malformed")
	}
	if !strings.Contains(string(res.Artifacts[FormatJSON]), `"nodes"`) {
		t.Error("json artifact malformed")
	}
}

func TestExecuteUsesCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil)
	defer r.Close()

	wb := testWorkbook(t)
	opts := Options{Formats: []string{FormatJSON, FormatDOT}}

	first, err := r.Execute(context.Background(), wb, opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.Cached {
		t.Error("first run reported cached")
	}

	second, err := r.Execute(context.Background(), wb, opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.Cached {
		t.Error("second run should be served from cache")
	}
	if !bytes.Equal(first.Artifacts[FormatDOT], second.Artifacts[FormatDOT]) {
		t.Error("cached artifact differs from rendered one")
	}
}

func TestExecuteDifferentOptionsMissCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil)
	defer r.Close()

	wb := testWorkbook(t)
	if _, err := r.Execute(context.Background(), wb, Options{Formats: []string{FormatDOT}}); err != nil {
		t.Fatal(err)
	}

	res, err := r.Execute(context.Background(), wb, Options{Formats: []string{FormatDOT}, FontName: "Noto Sans"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Cached {
		t.Error("changed font must not reuse cached artifact")
	}
	if !strings.Contains(string(res.Artifacts[FormatDOT]), "Noto Sans") {
		t.Error("font option not reflected in artifact")
	}
}

func TestExecuteRejectsInvalidFormat(t *testing.T) {
	r := NewRunner(nil, nil)
	defer r.Close()

	_, err := r.Execute(context.Background(), testWorkbook(t), Options{Formats: []string{"gif"}})
	if !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestExecutePropagatesLoaderErrors(t *testing.T) {
	r := NewRunner(nil, nil)
	defer r.Close()

	_, err := r.Execute(context.Background(), []byte("not a workbook"), Options{Formats: []string{FormatJSON}})
	if !apperrors.Is(err, apperrors.ErrCodeInvalidWorkbook) {
		t.Errorf("err = %v, want INVALID_WORKBOOK", err)
	}
}

func TestRenderGraphFromResult(t *testing.T) {
	r := NewRunner(nil, nil)
	defer r.Close()

	res, err := r.Execute(context.Background(), testWorkbook(t), Options{Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatal(err)
	}

	artifacts, err := r.RenderGraph(context.Background(), res.Graph, Options{Formats: []string{FormatHTML}})
	if err != nil {
		t.Fatalf("RenderGraph: %v", err)
	}
	if !strings.Contains(string(artifacts[FormatHTML]), "vis-network") {
		t.Error("html artifact malformed")
	}
}
