package family

import "strings"

// Node fill colors suggested to renderers.
const (
	// DefaultFillColor is AliceBlue, used for ordinary nodes.
	DefaultFillColor = "#F0F8FF"
	// ReuseFillColor is LightYellow, used for nodes whose Relation marks
	// them as reused (流用) from another drawing.
	ReuseFillColor = "#FFFFE0"
)

// Attribute sentinels.
const (
	// RelationKey is the attribute inspected for color and root display.
	RelationKey = "Relation"
	// RelationRoot is the synthetic Relation value assigned to root nodes.
	RelationRoot = "ROOT"
	// RelationReuse marks a drawing reused from another (流用).
	RelationReuse = "流用"
)

// Details maps a node identifier to its attribute map.
type Details map[string]map[string]string

// Roots is the set of root node identifiers.
type Roots map[string]struct{}

// Edge is a directed parent→child relationship produced by one table row.
type Edge struct {
	Parent string
	Child  string
}

// Builder constructs the node/edge/root model from a row table.
// A Builder is single-use and not safe for concurrent use; each table gets
// its own Builder, which keeps concurrent invocations naturally isolated.
type Builder struct {
	table Table
	cols  []string

	details  Details
	children map[string]struct{}
	parents  map[string]struct{}
	roots    Roots
}

// NewBuilder creates a builder for the given table. The dynamic attribute
// columns are taken from the table's column order.
func NewBuilder(t Table) *Builder {
	return &Builder{
		table:    t,
		cols:     t.DynamicColumns(),
		details:  Details{},
		children: map[string]struct{}{},
		parents:  map[string]struct{}{},
		roots:    Roots{},
	}
}

// Build runs the full construction and returns the node attribute maps and
// the root set. Build never fails; an empty table yields empty results.
func (b *Builder) Build() (Details, Roots) {
	b.collect()
	b.identifyRoots()
	b.buildDetails()
	b.setRootDetails()
	return b.details, b.roots
}

// collect gathers the distinct non-empty child and parent identifiers.
// The two sets exist only to derive the root set and are never exposed.
func (b *Builder) collect() {
	for _, row := range b.table.Rows {
		if child := strings.TrimSpace(row.Child); child != "" {
			b.children[child] = struct{}{}
		}
		if parent := strings.TrimSpace(row.Parent); parent != "" {
			b.parents[parent] = struct{}{}
		}
	}
}

// identifyRoots computes roots = parents − children. A node appearing as
// both a parent and a child anywhere is never a root.
func (b *Builder) identifyRoots() {
	for p := range b.parents {
		if _, ok := b.children[p]; !ok {
			b.roots[p] = struct{}{}
		}
	}
}

// buildDetails merges each row's dynamic attributes into its child node.
// Later rows overwrite earlier values column by column. Parents are only
// registered for existence here; their real attributes come from rows
// where they appear as a child themselves.
func (b *Builder) buildDetails() {
	for _, row := range b.table.Rows {
		child := strings.TrimSpace(row.Child)
		parent := strings.TrimSpace(row.Parent)

		attrs := make(map[string]string, len(b.cols))
		for _, col := range b.cols {
			if v, ok := row.Attrs[col]; ok {
				attrs[col] = strings.TrimSpace(v)
			}
		}

		if child != "" {
			if _, ok := b.details[child]; !ok {
				b.details[child] = map[string]string{}
			}
			for k, v := range attrs {
				b.details[child][k] = v
			}
		}

		if parent != "" {
			if _, ok := b.details[parent]; !ok {
				b.details[parent] = map[string]string{}
			}
		}
	}
}

// setRootDetails replaces every root node's attribute map with the fixed
// synthetic ROOT marker, discarding anything it may have accumulated.
// Rootness wins over inherited child attributes.
func (b *Builder) setRootDetails() {
	for root := range b.roots {
		if _, ok := b.details[root]; ok {
			b.details[root] = map[string]string{RelationKey: RelationRoot}
		}
	}
}

// Edges returns one parent→child edge per row where both identifiers are
// non-empty after trimming, in row order. Duplicate rows produce duplicate
// edges; no cycle check is performed.
func (b *Builder) Edges() []Edge {
	var edges []Edge
	for _, row := range b.table.Rows {
		child := strings.TrimSpace(row.Child)
		parent := strings.TrimSpace(row.Parent)
		if parent != "" && child != "" {
			edges = append(edges, Edge{Parent: parent, Child: child})
		}
	}
	return edges
}

// NodeColor returns the suggested fill color for a node with the given
// attribute map: the highlight color when Relation marks the node as
// reused, the default fill otherwise. Pure function, callable by any
// renderer.
func NodeColor(details map[string]string) string {
	if details[RelationKey] == RelationReuse {
		return ReuseFillColor
	}
	return DefaultFillColor
}
