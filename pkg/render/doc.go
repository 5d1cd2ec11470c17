// Package render provides shared rendering utilities for the family tree
// visualizations.
//
// The two renderer subpackages consume the serialized graph and this
// package's conversion helpers:
//
//   - dot: static diagram via Graphviz (SVG, with PDF/PNG conversion)
//   - network: interactive self-contained HTML network view
//
// SVG→PDF and SVG→PNG conversion shells out to rsvg-convert, so PDF and
// PNG output require librsvg on the host. A missing backend is reported
// as a coded error with an install hint rather than a crash.
package render
