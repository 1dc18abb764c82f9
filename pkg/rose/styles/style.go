// Package styles defines the visual styles for rose diagram rendering.
//
// A Style turns projected shapes (wedges, spokes, separators, labels) into
// SVG fragments. The shapes arrive in pixel coordinates; projection from
// the unit circle happens in the sink package.
package styles

import "bytes"

// Style defines the visual appearance for rose rendering.
// Implementations control how wedges, spokes, separators, labels, and the
// legend are drawn.
type Style interface {
	// RenderDefs writes SVG <defs> content (filters, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderWedge writes the SVG for a single petal polygon.
	RenderWedge(buf *bytes.Buffer, w Wedge)
	// RenderSpoke writes the SVG for a radial spoke line.
	RenderSpoke(buf *bytes.Buffer, s Line)
	// RenderSeparator writes the SVG for a bin separator line.
	RenderSeparator(buf *bytes.Buffer, s Line)
	// RenderLabel writes the SVG for a bin label (and optional stat line).
	RenderLabel(buf *bytes.Buffer, l Label)
	// RenderLegend writes the SVG for the series legend box.
	RenderLegend(buf *bytes.Buffer, lg Legend)
}

// Point is a projected pixel coordinate.
type Point struct {
	X, Y float64
}

// Wedge contains all data needed to render a single petal.
type Wedge struct {
	Series int     // 0 primary, 1 secondary
	Points []Point // closed polygon outline in pixel coordinates
	Fill   string  // series fill color
}

// Line contains positioning data for spokes and separators.
type Line struct {
	X1, Y1, X2, Y2 float64
}

// Label contains a bin annotation and its anchor point.
type Label struct {
	X, Y     float64
	Text     string
	Stat     string // formatted magnitude, empty when stats are off
	FontSize float64
}

// Legend contains the legend box position and its entries.
type Legend struct {
	X, Y     float64 // top-left corner
	FontSize float64
	Entries  []LegendEntry
}

// LegendEntry is one swatch-plus-name row in the legend.
type LegendEntry struct {
	Name string
	Fill string
}

// ByName returns the style registered under the given name, or false when
// the name is unknown. An empty name selects Classic.
func ByName(name string) (Style, bool) {
	switch name {
	case "", "classic":
		return Classic{}, true
	case "ink":
		return Ink{}, true
	}
	return nil, false
}

// Names lists the available style names.
func Names() []string { return []string{"classic", "ink"} }
