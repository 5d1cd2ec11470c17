package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rdpishibashi/revision-management/pkg/graph"
	"github.com/rdpishibashi/revision-management/pkg/ledger"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	sheet  string // workbook sheet name (empty means default or interactive pick)
	output string // output file path (stdout if empty)
}

// buildCommand creates the build command for extracting the graph from a
// ledger workbook.
func (c *CLI) buildCommand() *cobra.Command {
	opts := buildOpts{}

	cmd := &cobra.Command{
		Use:   "build <ledger.xlsx>",
		Short: "Build the family tree graph from a ledger workbook",
		Long: `Build the family tree graph from a revision ledger workbook.

The workbook must contain "Child" and "Parent" columns; any further
columns are carried along as revision attributes. The resulting graph is
written as JSON, ready for 'render'.

If the workbook has multiple sheets and --sheet is not given, an
interactive picker is shown on a terminal.

Examples:
  revtree build ledger.xlsx                    # graph JSON to stdout
  revtree build ledger.xlsx -o graph.json
  revtree build ledger.xlsx --sheet 2024年度`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.sheet, "sheet", "s", "", "workbook sheet name (default: Sheet1)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// runBuild loads the ledger sheet and writes the constructed graph as JSON.
func (c *CLI) runBuild(ctx context.Context, input string, opts buildOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Building family tree from %s", input)

	sheet, err := resolveSheet(input, opts.sheet)
	if err != nil {
		return err
	}
	if sheet != "" {
		logger.Debugf("Using sheet %s", sheet)
	}

	prog := newProgress(logger)
	table, err := ledger.LoadFile(input, ledger.Options{Sheet: sheet})
	if err != nil {
		return err
	}

	g := graph.Build(table)
	roots := 0
	for _, n := range g.Nodes {
		if n.Root {
			roots++
		}
	}
	prog.done(fmt.Sprintf("Built graph with %d nodes, %d edges, %d roots", len(g.Nodes), len(g.Edges), roots))

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := graph.WriteGraph(g, out); err != nil {
		return err
	}
	if opts.output != "" {
		printSuccess("Wrote graph to %s", opts.output)
		printStats(len(g.Nodes), len(g.Edges), false)
		printNextStep("Render it", fmt.Sprintf("%s render %s", appName, opts.output))
	}
	return nil
}

// resolveSheet picks the sheet to load. When the flag is empty and the
// workbook has multiple sheets, an interactive picker runs on a terminal;
// otherwise the loader default applies.
func resolveSheet(path, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	sheets, err := ledger.SheetNames(path)
	if err != nil {
		return "", err
	}
	if len(sheets) <= 1 || !stdinIsTerminal() {
		return "", nil
	}
	sheet, err := pickSheet(sheets)
	if err != nil {
		return "", err
	}
	if sheet == "" {
		printWarning("No sheet selected, falling back to %s", ledger.DefaultSheet)
	}
	return sheet, nil
}

// stdinIsTerminal reports whether stdin is attached to a terminal,
// gating the interactive picker.
func stdinIsTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
