package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rdpishibashi/revision-management/pkg/graph"
	"github.com/rdpishibashi/revision-management/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file path (or base path for multiple formats)
	formats  []string // output formats: json, dot, svg, pdf, png, html
	sheet    string   // workbook sheet name
	title    string   // heading for the interactive view
	font     string   // diagram font for static rendering
	pngScale float64  // raster zoom factor
	noCache  bool     // disable artifact caching
}

// renderCommand creates the render command for generating family tree
// visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{pngScale: pipeline.DefaultPNGScale}

	cmd := &cobra.Command{
		Use:   "render <ledger.xlsx | graph.json>",
		Short: "Render a family tree to SVG, PDF, PNG, DOT, or HTML",
		Long: `Render a family tree visualization.

The input is either a ledger workbook (.xlsx), which is built into a
graph first, or a graph JSON file produced by 'build'. Results from
workbooks are cached locally for faster subsequent runs.

Examples:
  revtree render ledger.xlsx                       # ledger.svg
  revtree render ledger.xlsx -f svg,pdf,html
  revtree render graph.json -f html -o tree.html
  revtree render ledger.xlsx -f png --scale 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = pipeline.ParseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, dot, pdf, png, html (comma-separated)")
	cmd.Flags().StringVarP(&opts.sheet, "sheet", "s", "", "workbook sheet name (default: Sheet1)")
	cmd.Flags().StringVar(&opts.title, "title", "", "heading for the interactive HTML view")
	cmd.Flags().StringVar(&opts.font, "font", "", "diagram font for static output")
	cmd.Flags().Float64Var(&opts.pngScale, "scale", opts.pngScale, "PNG zoom factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender dispatches on the input type: graph JSON renders directly,
// anything else goes through the full workbook pipeline.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	pipeOpts := pipeline.Options{
		Sheet:    opts.sheet,
		Formats:  opts.formats,
		Title:    opts.title,
		FontName: opts.font,
		PNGScale: opts.pngScale,
	}

	if strings.EqualFold(filepath.Ext(input), ".json") {
		g, err := graph.ReadGraphFile(input)
		if err != nil {
			return err
		}
		logger.Infof("Loaded graph: %d nodes, %d edges", len(g.Nodes), len(g.Edges))

		spinner := newSpinnerWithContext(ctx, "Rendering family tree...")
		spinner.Start()
		artifacts, err := runner.RenderGraph(ctx, g, pipeOpts)
		if err != nil {
			spinner.StopWithError("Rendering failed")
			return err
		}
		spinner.Stop()

		return writeArtifacts(artifactWriteParams{
			artifacts: artifacts,
			formats:   opts.formats,
			input:     input,
			output:    opts.output,
			nodes:     len(g.Nodes),
			edges:     len(g.Edges),
		})
	}

	workbook, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	spinner := newSpinnerWithContext(ctx, "Building and rendering family tree...")
	spinner.Start()
	res, err := runner.Execute(ctx, workbook, pipeOpts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: res.Artifacts,
		formats:   opts.formats,
		input:     input,
		output:    opts.output,
		cacheHit:  res.Cached,
		nodes:     len(res.Graph.Nodes),
		edges:     len(res.Graph.Edges),
	})
}

// artifactWriteParams bundles the inputs for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	cacheHit  bool
	nodes     int
	edges     int
}

// writeArtifacts writes each rendered artifact to its derived path. A
// single format with an explicit output keeps that exact path; multiple
// formats share the base path with per-format extensions.
func writeArtifacts(p artifactWriteParams) error {
	base := basePath(p.output, p.input)

	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}

		path := base + "." + format
		if len(p.formats) == 1 && p.output != "" {
			path = p.output
		}

		out, err := openOutput(path)
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
		printFile(path)
	}

	printStats(p.nodes, p.edges, p.cacheHit)
	return nil
}

// formatExtensions is the set of extensions stripped when deriving the
// base output path.
var formatExtensions = map[string]bool{
	"json": true, "dot": true, "svg": true, "pdf": true, "png": true, "html": true,
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
// This is used when generating multiple files (e.g., ledger.svg, ledger.html).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if formatExtensions[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
