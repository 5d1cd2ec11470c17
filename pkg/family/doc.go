// Package family implements the graph construction engine for revision
// family trees.
//
// The engine consumes a row table of parent-child relationships between
// drawing identifiers and derives the node, edge, and root-node model that
// the renderers consume. Construction is a fixed sequence of full scans:
//
//  1. Collect: gather the distinct child and parent identifier sets.
//  2. Identify roots: parents that never appear as a child.
//  3. Build details: merge each row's dynamic attributes into its child
//     node (last write wins per column), then replace every root's
//     attribute map with the synthetic {"Relation": "ROOT"} marker.
//  4. Enumerate edges: one parent→child pair per row, duplicates kept.
//
// A node's authoritative attributes come only from rows where it appears
// as a child. Attributes seen on the parent side of a row are deliberately
// ignored: a non-root parent is expected to have its own definition row,
// and a true root has no definition row at all, so its attributes are
// purely synthetic.
//
// The engine is total. It returns no errors for any well-formed table,
// including the empty one, and produces identical output for identical
// input on every invocation.
//
// # Usage
//
//	b := family.NewBuilder(table)
//	details, roots := b.Build()
//	for _, e := range b.Edges() {
//	    // e.Parent → e.Child
//	}
//	color := family.NodeColor(details[id])
package family
