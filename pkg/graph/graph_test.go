package graph

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/rdpishibashi/revision-management/pkg/family"
)

func testTable() family.Table {
	return family.Table{
		Columns: []string{family.ColumnChild, family.ColumnParent, "X"},
		Rows: []family.Row{
			{Child: "B", Parent: "A", Attrs: map[string]string{"X": "1"}},
			{Child: "C", Parent: "A", Attrs: map[string]string{"X": "2"}},
			{Child: "C", Parent: "A", Attrs: map[string]string{"X": "3"}},
		},
	}
}

func TestBuildSortsNodes(t *testing.T) {
	g := Build(testTable())

	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	want := []string{"A", "B", "C"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("node order = %v, want %v", ids, want)
	}

	if !g.Nodes[0].Root {
		t.Error("A should be marked root")
	}
	if g.Nodes[1].Root || g.Nodes[2].Root {
		t.Error("B and C must not be roots")
	}
	if got := g.Nodes[0].Attrs; !reflect.DeepEqual(got, map[string]string{family.RelationKey: family.RelationRoot}) {
		t.Errorf("root attrs = %v", got)
	}
	if got := g.Nodes[2].Attrs["X"]; got != "3" {
		t.Errorf("C attrs X = %q, want last write 3", got)
	}
}

func TestBuildPreservesEdgeOrderAndDuplicates(t *testing.T) {
	g := Build(testTable())

	want := []Edge{{From: "A", To: "B"}, {From: "A", To: "C"}, {From: "A", To: "C"}}
	if !reflect.DeepEqual(g.Edges, want) {
		t.Errorf("edges = %v, want %v", g.Edges, want)
	}
}

func TestBuildEmptyTable(t *testing.T) {
	g := Build(family.Table{Columns: []string{family.ColumnChild, family.ColumnParent}})
	if !g.Empty() {
		t.Errorf("graph not empty: %+v", g)
	}
	if len(g.Edges) != 0 {
		t.Errorf("edges = %v, want none", g.Edges)
	}
}

func TestRoundTrip(t *testing.T) {
	g := Build(testTable())

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}

	back, err := UnmarshalGraph(data)
	if err != nil {
		t.Fatalf("UnmarshalGraph: %v", err)
	}
	if !reflect.DeepEqual(g, back) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, g)
	}
}

func TestWriteReadGraph(t *testing.T) {
	g := Build(testTable())

	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		t.Fatalf("WriteGraph: %v", err)
	}

	back, err := ReadGraph(&buf)
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}
	if !reflect.DeepEqual(g, back) {
		t.Error("write/read mismatch")
	}
}

func TestWriteReadGraphFile(t *testing.T) {
	g := Build(testTable())
	path := t.TempDir() + "/family.json"

	if err := WriteGraphFile(g, path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}
	back, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	if !reflect.DeepEqual(g, back) {
		t.Error("file round trip mismatch")
	}
}

func TestDeterministicSerialization(t *testing.T) {
	d1, err := MarshalGraph(Build(testTable()))
	if err != nil {
		t.Fatal(err)
	}
	d2, err := MarshalGraph(Build(testTable()))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(d1, d2) {
		t.Error("identical tables serialized differently")
	}
}
