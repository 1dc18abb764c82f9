package pipeline

import (
	"github.com/mlenz/rosette/pkg/rose"
	"github.com/mlenz/rosette/pkg/rose/layout"
)

// BuildLayout runs the layout stage without caching: it validates the
// document, computes the wedge geometry, and wraps the result with the
// render metadata the sinks need.
func BuildLayout(doc rose.Document, opts Options) (rose.LayoutFile, error) {
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()

	if err := doc.Validate(); err != nil {
		return rose.LayoutFile{}, err
	}

	l, err := layout.Build(doc.Data(), opts.LayoutOptions())
	if err != nil {
		return rose.LayoutFile{}, err
	}

	for _, w := range l.Warnings {
		opts.Logger.Warn(w)
	}

	colors := opts.Colors
	if len(colors) == 0 {
		colors = rose.DefaultColors
	}

	return rose.LayoutFile{
		Width:       opts.Width,
		Height:      opts.Height,
		Style:       opts.Style,
		Colors:      colors,
		Legend:      opts.WantLegend(doc),
		SeriesNames: doc.SeriesNames(),
		Layout:      l,
	}, nil
}
