// Package graph provides the serialization format for revision family graphs.
//
// This package defines the canonical wire format for the module's graph
// data, used for JSON files written by the CLI, API responses from the
// server, and cached artifacts.
//
// # Format
//
// Graphs use a simple node-link JSON format:
//
//	{
//	  "columns": ["Creator", "Date", "Relation"],
//	  "nodes": [
//	    {"id": "DE5313-008", "root": true, "attrs": {"Relation": "ROOT"}},
//	    {"id": "DE5313-009", "attrs": {"Creator": "田中", "Relation": "流用"}}
//	  ],
//	  "edges": [{"from": "DE5313-008", "to": "DE5313-009"}]
//	}
//
// Nodes are sorted lexicographically by identifier so that identical
// inputs always serialize identically. Edge order is the source row
// order, duplicates included.
//
// # Common operations
//
//	g := graph.FromFamily(details, roots, edges, cols)  // engine → Graph
//	graph.WriteGraphFile(g, "family.json")              // Graph → file
//	g, _ = graph.ReadGraphFile("family.json")           // file → Graph
//	data, _ := graph.MarshalGraph(g)                    // Graph → []byte
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
