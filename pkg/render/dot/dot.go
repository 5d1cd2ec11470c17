// Package dot renders family graphs as static diagrams via Graphviz.
//
// ToDOT produces the DOT source; RenderSVG runs the Graphviz layout
// engine (pure Go, via goccy/go-graphviz) and RenderPDF/RenderPNG convert
// the SVG with librsvg. PDF is the vector export format: it stays sharp
// at any zoom, which matters for large revision trees.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/rdpishibashi/revision-management/pkg/errors"
	"github.com/rdpishibashi/revision-management/pkg/family"
	"github.com/rdpishibashi/revision-management/pkg/graph"
	"github.com/rdpishibashi/revision-management/pkg/render"
)

// Options configures static diagram rendering.
type Options struct {
	// FontName overrides the diagram font. Empty uses the Graphviz
	// default. This is resolved configuration passed in by the caller;
	// the renderer keeps no global font state.
	FontName string
}

// ToDOT converts a family graph to Graphviz DOT format.
//
// Each node is drawn as a filled box with an HTML-like table label: the
// width-normalized identifier as a bold header, then one line per
// attribute field. Root nodes show only their Relation marker; other
// nodes show every dynamic column. The fill color follows the engine's
// color rule, so reused drawings stand out.
func ToDOT(g graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph FamilyTree {\n")
	buf.WriteString("  rankdir=TB;\n")
	if opts.FontName != "" {
		fmt.Fprintf(&buf, "  fontname=%q;\n", opts.FontName)
		fmt.Fprintf(&buf, "  node [fontname=%q];\n", opts.FontName)
	}
	buf.WriteString("  node [shape=box, style=filled];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "  %q [label=%s, fillcolor=%q];\n",
			n.ID, htmlLabel(n, g.Columns), family.NodeColor(n.Attrs))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// htmlLabel builds the HTML-like table label for one node.
func htmlLabel(n graph.Node, cols []string) string {
	var sb strings.Builder
	sb.WriteString("<<TABLE BORDER=\"0\" CELLBORDER=\"0\" CELLSPACING=\"0\">")
	sb.WriteString("<TR><TD ALIGN=\"CENTER\"><B><FONT POINT-SIZE=\"20\">")
	sb.WriteString(escape(family.DisplayID(n.ID)))
	sb.WriteString("</FONT></B></TD></TR>")

	for _, f := range family.Describe(n.Attrs, n.Root, cols) {
		sb.WriteString("<TR><TD ALIGN=\"CENTER\"><FONT POINT-SIZE=\"10\">")
		sb.WriteString(escape(f.Label))
		sb.WriteString(": ")
		sb.WriteString(escape(f.Value))
		sb.WriteString("</FONT></TD></TR>")
	}

	sb.WriteString("</TABLE>>")
	return sb.String()
}

// escape sanitizes text for use inside an HTML-like label.
var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escape(s string) string {
	return escaper.Replace(s)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// The SVG is ready for display or conversion with [render.ToPDF] or
// [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render SVG")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg element so the diagram scales
// cleanly when embedded in a page.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as vector PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
