// Package pkg provides the core libraries for revision family tree visualization.
//
// # Overview
//
// Revtree turns a drawing revision ledger workbook into a family tree of
// drawing numbers, showing which drawings were derived from which. The
// pkg directory is organized into these areas:
//
//  1. [ledger] - Workbook loading (Excel sheet → row table)
//  2. [family] - Domain logic (graph construction, root discovery, labels)
//  3. [graph] - Serialization types for the constructed graph
//  4. [render] - Static (Graphviz) and interactive (network HTML) output
//  5. [pipeline] - Orchestration (load → build → render) with caching
//  6. [cache], [config], [errors], [observability] - Infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	Ledger Workbook (.xlsx)
//	         ↓
//	    [ledger] package (load sheet into a row table)
//	         ↓
//	    [family] package (build details, roots, edges)
//	         ↓
//	    [graph] package (serializable graph)
//	         ↓
//	    [render] package (DOT/SVG/PDF/PNG or interactive HTML)
//
// # Quick Start
//
//	table, err := ledger.LoadFile("ledger.xlsx", ledger.Options{})
//	if err != nil {
//	    return err
//	}
//	g := graph.Build(table)
//	html, err := network.Render(g, network.Options{})
package pkg
