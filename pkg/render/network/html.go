// Package network renders family graphs as interactive HTML documents.
//
// The output is a single self-contained page driving vis-network: a
// pannable, zoomable view with a hierarchical top-down layout (parents
// above children), physics simulation disabled so the tree stays put,
// navigation controls enabled, and hover tooltips carrying each node's
// attribute fields.
package network

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/rdpishibashi/revision-management/pkg/family"
	"github.com/rdpishibashi/revision-management/pkg/graph"
)

// DefaultTitle is the page title when none is configured (家系図, "family tree").
const DefaultTitle = "図番家系図"

// Options configures the interactive view.
type Options struct {
	// Title is the page heading. Empty means [DefaultTitle].
	Title string
}

// visNode is the vis-network node object.
type visNode struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Title string   `json:"title"`
	Shape string   `json:"shape"`
	Color visColor `json:"color"`
}

type visColor struct {
	Background string `json:"background"`
	Border     string `json:"border"`
}

// visEdge is the vis-network edge object, drawn parent→child.
type visEdge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Arrows string `json:"arrows"`
}

const borderColor = "#00008B" // DarkBlue

// Render returns the interactive view as HTML bytes.
func Render(g graph.Graph, opts Options) ([]byte, error) {
	var sb strings.Builder
	if err := WriteHTML(&sb, g, opts); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

// WriteHTML writes the interactive view to w.
func WriteHTML(w io.Writer, g graph.Graph, opts Options) error {
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}

	nodes := make([]visNode, len(g.Nodes))
	for i, n := range g.Nodes {
		nodes[i] = visNode{
			ID:    n.ID,
			Label: family.DisplayID(n.ID),
			Title: hoverText(n, g.Columns),
			Shape: "box",
			Color: visColor{Background: family.NodeColor(n.Attrs), Border: borderColor},
		}
	}

	edges := make([]visEdge, len(g.Edges))
	for i, e := range g.Edges {
		edges[i] = visEdge{From: e.From, To: e.To, Arrows: "to"}
	}

	// json.Marshal escapes <, > and & so the blobs are safe inside the
	// script element.
	nodesJSON, err := json.Marshal(nodes)
	if err != nil {
		return fmt.Errorf("marshal nodes: %w", err)
	}
	edgesJSON, err := json.Marshal(edges)
	if err != nil {
		return fmt.Errorf("marshal edges: %w", err)
	}

	return pageTemplate.Execute(w, pageData{
		Title: title,
		Nodes: template.JS(nodesJSON),
		Edges: template.JS(edgesJSON),
	})
}

// hoverText composes the tooltip for one node: a bold bracketed
// identifier, a blank line, then one line per attribute field.
func hoverText(n graph.Node, cols []string) string {
	lines := []string{"【" + family.Bold(family.DisplayID(n.ID)) + "】", ""}
	for _, f := range family.Describe(n.Attrs, n.Root, cols) {
		lines = append(lines, family.Bold(f.Label)+": "+f.Value)
	}
	return strings.Join(lines, "\n")
}

type pageData struct {
	Title string
	Nodes template.JS
	Edges template.JS
}

var pageTemplate = template.Must(template.New("network").Parse(`<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://unpkg.com/vis-network/standalone/umd/vis-network.min.js"></script>
<style>
  body { margin: 0; font-family: sans-serif; }
  h1 { font-size: 1.2rem; margin: 0.5rem 1rem; }
  #network { width: 100vw; height: calc(100vh - 3rem); border-top: 1px solid #ddd; }
  div.vis-tooltip { white-space: pre-line; font-family: sans-serif; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div id="network"></div>
<script>
  const nodes = new vis.DataSet({{.Nodes}});
  const edges = new vis.DataSet({{.Edges}});
  const container = document.getElementById("network");
  const options = {
    layout: {
      hierarchical: {
        enabled: true,
        direction: "UD",
        sortMethod: "directed",
        levelSeparation: 120,
        nodeSpacing: 150
      }
    },
    physics: { enabled: false },
    interaction: {
      hover: true,
      navigationButtons: true,
      keyboard: true,
      zoomView: true,
      dragView: true
    },
    edges: { color: "#888888", smooth: { type: "cubicBezier" } }
  };
  new vis.Network(container, { nodes: nodes, edges: edges }, options);
</script>
</body>
</html>
`))
