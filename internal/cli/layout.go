package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mlenz/rosette/pkg/pipeline"
	"github.com/mlenz/rosette/pkg/rose"
)

// layoutCommand creates the layout command for computing wedge geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		legend  bool
	)
	opts := c.pipelineOptions()

	cmd := &cobra.Command{
		Use:   "layout [data.json]",
		Short: "Compute the wedge layout from a data file",
		Long: `Compute the wedge layout from a data file.

The layout command reads a JSON document and computes the rose geometry
in unit-circle coordinates: petal polygons, spokes, separators, and label
anchors. The output is a layout.json file (same format as 'render -f
json') that can be rendered with the 'visualize' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("legend") {
				opts.Legend = &legend
			}
			if err := pipeline.ValidateStyle(opts.Style); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	// Layout flags
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "radius of the largest wedge tip (0,1]")
	cmd.Flags().BoolVar(&opts.Counterclockwise, "ccw", false, "lay bins out counterclockwise")
	cmd.Flags().BoolVar(&opts.LengthMode, "length", false, "map values to radius instead of area")
	cmd.Flags().Float64Var(&opts.CenterInset, "inset", opts.CenterInset, "center inset radius")
	cmd.Flags().IntVar(&opts.Bins, "bins", 0, "override the number of angular divisions")
	cmd.Flags().BoolVar(&opts.Separators, "separators", false, "add bin separator lines")
	cmd.Flags().BoolVar(&opts.NoStats, "no-stats", false, "omit per-bin value annotations")
	cmd.Flags().IntVar(&opts.DP, "dp", opts.DP, "decimal places for value annotations")

	// Render metadata stored in the layout file
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "visual style: classic (default), ink")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "frame width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "frame height")
	cmd.Flags().BoolVar(&legend, "legend", false, "force the legend on or off (default: on for two series)")

	return cmd
}

// runLayout loads the document, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	doc, err := rose.ReadDocumentFile(input)
	if err != nil {
		return fmt.Errorf("load document %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	lf, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := rose.WriteLayoutFile(lf, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(lf.Layout.Bins, len(lf.Layout.Warnings), cacheHit)
	for _, w := range lf.Layout.Warnings {
		printWarning("%s", w)
	}
	printNewline()
	printNextStep("Render", "rosette visualize "+outputPath)

	return nil
}
