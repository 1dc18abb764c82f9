package styles

// Params is a bundle of drawing attributes for stateful raster targets.
// Vector output carries attributes on each element, but a raster canvas
// has one global pen; Params scopes changes to a single element so state
// never leaks between draws.
type Params struct {
	Fill        string // hex color, empty means no fill
	Stroke      string // hex color, empty means no stroke
	StrokeWidth float64
	Dash        []float64 // empty means solid
	Opacity     float64   // 0 is treated as 1
}

// Target is a drawing surface whose pen state Params can manage.
type Target interface {
	// SetParams replaces the target's current pen state.
	SetParams(Params)
	// Params returns the target's current pen state.
	Params() Params
}

// Apply sets p on the target and returns a restore function that puts the
// previous state back. Callers pair the two around each element:
//
//	restore := p.Apply(canvas)
//	canvas.FillPolygon(pts)
//	restore()
func (p Params) Apply(t Target) (restore func()) {
	prev := t.Params()
	t.SetParams(p)
	return func() { t.SetParams(prev) }
}
