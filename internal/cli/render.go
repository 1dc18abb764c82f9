package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlenz/rosette/pkg/pipeline"
	"github.com/mlenz/rosette/pkg/rose"
)

// renderCommand creates the render command: the full document → artifact
// pipeline in one step.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		colorsStr  string
		output     string
		legend     bool
		noCache    bool
	)
	opts := c.pipelineOptions()

	cmd := &cobra.Command{
		Use:   "render [data.json]",
		Short: "Render a rose diagram from a data file",
		Long: `Render a rose diagram from a data file.

The render command reads a JSON document (values, optional secondary
series, spokes, and labels), computes the wedge layout, and renders it to
SVG, PNG, or PDF.

Results are cached locally for faster subsequent runs. Use 'layout' and
'visualize' to run the two stages separately.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if colors := parseColors(colorsStr); colors != nil {
				opts.Colors = colors
			}
			if cmd.Flags().Changed("legend") {
				opts.Legend = &legend
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateStyle(opts.Style); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	// Layout flags
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "radius of the largest wedge tip (0,1]")
	cmd.Flags().BoolVar(&opts.Counterclockwise, "ccw", false, "lay bins out counterclockwise")
	cmd.Flags().BoolVar(&opts.LengthMode, "length", false, "map values to radius instead of area")
	cmd.Flags().Float64Var(&opts.CenterInset, "inset", opts.CenterInset, "center inset radius")
	cmd.Flags().IntVar(&opts.Bins, "bins", 0, "override the number of angular divisions")
	cmd.Flags().BoolVar(&opts.Separators, "separators", false, "draw bin separator lines")
	cmd.Flags().BoolVar(&opts.NoStats, "no-stats", false, "omit per-bin value annotations")
	cmd.Flags().IntVar(&opts.DP, "dp", opts.DP, "decimal places for value annotations")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "visual style: classic (default), ink")
	cmd.Flags().StringVar(&colorsStr, "colors", "", "series fill colors (comma-separated hex)")
	cmd.Flags().BoolVar(&legend, "legend", false, "force the legend on or off (default: on for two series)")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "frame width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "frame height")
	cmd.Flags().Float64Var(&opts.PNGScale, "png-scale", opts.PNGScale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&opts.VectorPNG, "vector-png", false, "rasterize PNG via librsvg instead of the built-in renderer")

	return cmd
}

// runRender loads the document and runs the full pipeline.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
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

	spinner := newSpinnerWithContext(ctx, "Rendering rose diagram...")
	spinner.Start()

	result, err := runner.Execute(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
		bins:      result.Stats.Bins,
		warnings:  result.Stats.Warnings,
	})
}
