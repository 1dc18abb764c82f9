package layout

import "math"

// Point is a 2-D coordinate in unit-circle space (Y up).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polygon is a closed sequence of vertices. The closing edge from the last
// vertex back to the first is implicit.
type Polygon []Point

// Segment is a straight line between two points.
type Segment struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// Label is a text anchor near the outer edge of a bin's bisector.
// Text is the caller-supplied label; Stat is the formatted primary value
// (empty when statistics are disabled). Renderers decide how to compose
// the two.
type Label struct {
	At   Point  `json:"at"`
	Text string `json:"text"`
	Stat string `json:"stat,omitempty"`
}

// polar converts a radius and angle to a Point.
func polar(r, angle float64) Point {
	return Point{X: r * math.Cos(angle), Y: r * math.Sin(angle)}
}

// Centroid returns the arithmetic mean of the polygon's vertices.
// Useful for hit-testing and anchoring decorations on a wedge.
func (p Polygon) Centroid() Point {
	if len(p) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, pt := range p {
		sx += pt.X
		sy += pt.Y
	}
	n := float64(len(p))
	return Point{X: sx / n, Y: sy / n}
}

// MaxRadius returns the largest distance from the origin over the
// polygon's vertices.
func (p Polygon) MaxRadius() float64 {
	var max float64
	for _, pt := range p {
		if r := math.Hypot(pt.X, pt.Y); r > max {
			max = r
		}
	}
	return max
}
