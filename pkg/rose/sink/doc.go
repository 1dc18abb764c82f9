// Package sink provides output format renderers for rose diagrams.
//
// A sink transforms a computed [layout.Layout] into a final output format:
//
//   - SVG: scalable vector graphics, styled via [styles.Style]
//   - PNG: raster output, drawn directly or converted from SVG
//   - PDF: print-ready output (requires rsvg-convert)
//
// Basic usage:
//
//	svg := sink.RenderSVG(l,
//	    sink.WithStyle(styles.Classic{}),
//	    sink.WithColors("#ffffff", "#9e9e9e"),
//	    sink.WithLegend("2024", "2025"),
//	)
//
// The layout arrives in unit-circle coordinates with Y pointing up; sinks
// project it into the pixel frame, flipping Y for screen space.
//
// [layout.Layout]: github.com/mlenz/rosette/pkg/rose/layout.Layout
// [styles.Style]: github.com/mlenz/rosette/pkg/rose/styles.Style
package sink
