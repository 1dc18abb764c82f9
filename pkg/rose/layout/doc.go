// Package layout computes the geometry of rose (petal) diagrams.
//
// The layout engine is a pure function from a magnitude series (plus
// optional secondary series, uncertainty spokes, and labels) to a set of
// 2-D polygons, line segments, and label anchors arranged radially around
// the unit circle. It performs no drawing: the resulting [Layout] is plain
// geometric data that any rendering backend (SVG, raster, PDF) can consume.
//
// # Coordinate system
//
// All coordinates are in unit-circle space: the diagram is centered on the
// origin, wedge tips reach at most radius Scale (1.0 fills the circle), and
// the Y axis points up in the standard mathematical convention. Renderers
// are responsible for mapping to device coordinates (and flipping Y where
// the device Y axis points down).
//
// Bin 0 starts at the 12 o'clock position; bins advance clockwise by
// default.
//
// # Usage
//
//	l, err := layout.Build(layout.Data{Primary: []float64{1, 2, 3, 4}}, layout.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	for _, p := range l.Primary {
//	    // p is the polygon outline of one wedge
//	}
//
// Magnitudes are displayed area-proportionally by default: each value is
// passed through a square-root transform so that the area of a wedge, not
// its radius, scales with the value. Set Options.LengthMode for a linear
// radius mapping instead.
package layout
