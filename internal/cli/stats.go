package cli

import (
	"context"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/mlenz/rosette/pkg/rose"
	"github.com/mlenz/rosette/pkg/series"
)

// statsCommand creates the stats command for circular summary statistics.
func (c *CLI) statsCommand() *cobra.Command {
	var ccw bool

	cmd := &cobra.Command{
		Use:   "stats [data.json]",
		Short: "Print circular statistics for a data file",
		Long: `Print circular statistics for a data file.

Each bin's bisector direction is weighted by its magnitude, yielding the
circular mean direction, the mean resultant length R, and the circular
variance. The Rayleigh test reports whether the distribution looks
uniform.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStats(cmd.Context(), args[0], ccw)
		},
	}

	cmd.Flags().BoolVar(&ccw, "ccw", false, "treat bins as laid out counterclockwise")

	return cmd
}

// runStats loads the document and prints the summary per series.
func (c *CLI) runStats(ctx context.Context, input string, ccw bool) error {
	logger := loggerFromContext(ctx)
	p := newProgress(logger)

	doc, err := rose.ReadDocumentFile(input)
	if err != nil {
		return fmt.Errorf("load document %s: %w", input, err)
	}

	names := doc.SeriesNames()
	printSeriesStats(names[0], series.Summarize(doc.Values, !ccw))
	if doc.HasSecondary() {
		printNewline()
		printSeriesStats(names[1], series.Summarize(doc.Secondary, !ccw))
	}

	p.done(fmt.Sprintf("Summarized %d series", len(names)))
	return nil
}

func printSeriesStats(name string, s series.Summary) {
	printInfo("%s", name)
	printKeyValue("bins", fmt.Sprintf("%d", s.Bins))
	printKeyValue("total", fmt.Sprintf("%.4g", s.Total))
	printKeyValue("mean direction", fmt.Sprintf("%.1f°", s.MeanDirectionDegrees()))
	printKeyValue("resultant R", fmt.Sprintf("%.4f", s.ResultantLength))
	printKeyValue("variance", fmt.Sprintf("%.4f", s.Variance))
	if !math.IsInf(s.StdDev, 1) {
		printKeyValue("std dev", fmt.Sprintf("%.4f rad", s.StdDev))
	}
	uniform := "no"
	if s.Uniform {
		uniform = "yes"
	}
	printKeyValue("uniform", uniform)
}
