// Package pipeline provides the core load → build → render pipeline.
//
// This package implements the complete workbook-to-artifact flow shared
// by the CLI and the HTTP server. Centralizing it keeps behavior
// consistent across entry points and gives both the same artifact cache.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: parse the ledger workbook into a row table
//  2. Build: run the graph construction engine over the table
//  3. Render: produce the requested artifacts (JSON, DOT, SVG, PDF, PNG,
//     interactive HTML)
//
// Rendered artifacts are cached keyed by the workbook content hash plus
// the render options, so re-processing an unchanged ledger within the TTL
// is a cache lookup.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	defer runner.Close()
//
//	result, err := runner.Execute(ctx, workbookBytes, pipeline.Options{
//	    Formats: []string{"svg", "pdf"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/rdpishibashi/revision-management/pkg/cache"
	"github.com/rdpishibashi/revision-management/pkg/errors"
	"github.com/rdpishibashi/revision-management/pkg/graph"
)

// Output formats.
const (
	FormatJSON = "json" // serialized graph
	FormatDOT  = "dot"  // Graphviz source
	FormatSVG  = "svg"  // static diagram
	FormatPDF  = "pdf"  // static diagram, vector export
	FormatPNG  = "png"  // static diagram, raster export
	FormatHTML = "html" // interactive network view
)

// Defaults applied by [Options.withDefaults].
const (
	DefaultPNGScale = 2.0
	DefaultTTL      = cache.DefaultTTL
)

// Options controls one pipeline run.
type Options struct {
	// Sheet is the workbook sheet to read. Empty means the loader default.
	Sheet string
	// Formats are the artifacts to produce; see the Format constants.
	// Empty means ["svg"].
	Formats []string
	// Title is the heading for the interactive view.
	Title string
	// FontName is the resolved diagram font for static rendering.
	FontName string
	// PNGScale is the raster zoom factor. Zero means [DefaultPNGScale].
	PNGScale float64
	// TTL bounds cached artifact lifetime. Zero means [DefaultTTL].
	TTL time.Duration
}

func (o Options) withDefaults() Options {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	return o
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPDF:  true,
	FormatPNG:  true,
	FormatHTML: true,
}

// ValidateFormats checks that all requested formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat,
				"invalid format: %s (must be one of json, dot, svg, pdf, png, html)", f)
		}
	}
	return nil
}

// ParseFormats parses a comma-separated format list, defaulting to svg.
func ParseFormats(s string) []string {
	if s == "" {
		return []string{FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// Result is the outcome of one pipeline run.
type Result struct {
	// Graph is the constructed family graph.
	Graph graph.Graph
	// Artifacts maps format name to rendered bytes.
	Artifacts map[string][]byte
	// Cached reports whether every artifact came from the cache.
	Cached bool
}

// artifactKey builds the cache key for one rendered artifact.
func artifactKey(workbookHash, format string, o Options) string {
	return cache.Key("artifact", workbookHash, format, o.Sheet, o.Title, o.FontName, fmt.Sprintf("%g", o.PNGScale))
}

// graphKey builds the cache key for the serialized graph.
func graphKey(workbookHash string, o Options) string {
	return cache.Key("graph", workbookHash, o.Sheet)
}
