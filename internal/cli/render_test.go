package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"empty output strips input extension", "", "ledger.xlsx", "ledger"},
		{"output with format extension", "tree.svg", "ledger.xlsx", "tree"},
		{"output with html extension", "out/tree.html", "ledger.xlsx", "out/tree"},
		{"output without extension", "tree", "ledger.xlsx", "tree"},
		{"output with unknown extension", "tree.xlsx", "ledger.xlsx", "tree.xlsx"},
		{"json input", "", "graph.json", "graph"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := basePath(tt.output, tt.input)
			if got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestWriteArtifactsMultipleFormats(t *testing.T) {
	dir := t.TempDir()

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{
			"dot":  []byte("digraph FamilyTree {}"),
			"html": []byte("<!DOCTYPE html>"),
		},
		formats: []string{"dot", "html"},
		input:   filepath.Join(dir, "ledger.xlsx"),
		nodes:   2,
		edges:   1,
	})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}

	for _, name := range []string{"ledger.dot", "ledger.html"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected output file %s: %v", name, err)
		}
	}
}

func TestWriteArtifactsSingleFormatExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "custom-name.dot")

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"dot": []byte("digraph FamilyTree {}")},
		formats:   []string{"dot"},
		input:     "ledger.xlsx",
		output:    out,
	})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}

	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected output at %s: %v", out, err)
	}
}

func TestWriteArtifactsSkipsMissingFormats(t *testing.T) {
	dir := t.TempDir()

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"dot": []byte("digraph FamilyTree {}")},
		formats:   []string{"dot", "svg"},
		input:     filepath.Join(dir, "ledger.xlsx"),
	})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "ledger.svg")); !os.IsNotExist(err) {
		t.Error("svg file should not exist when artifact is missing")
	}
}
