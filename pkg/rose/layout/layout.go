package layout

import (
	"fmt"
	"math"

	"github.com/mlenz/rosette/pkg/errors"
)

const (
	// DefaultScale is the default maximum wedge radius.
	DefaultScale = 0.8

	// DefaultCenterInset is the default radius below which wedge edges are
	// pulled in, so wedges do not all meet in a single degenerate point at
	// the origin.
	DefaultCenterInset = 0.03

	// DefaultDP is the default number of decimal places for label statistics.
	DefaultDP = 1

	// arcSamples is the number of boundary points sampled along a full
	// wedge's outer arc. A two-series bin splits these between the halves.
	arcSamples = 100

	// clockStart places bin 0 at the 12 o'clock position.
	clockStart = math.Pi / 2

	// Label anchor radii: labels sit slightly inside the unit circle, pulled
	// in a little further when a statistic is appended.
	labelRadius     = 0.92
	labelStatRadius = 0.86
)

// Data is the input to the layout engine.
type Data struct {
	// Primary is the required magnitude series; one wedge per value.
	Primary []float64

	// Secondary is an optional comparison series drawn as a second petal
	// layer. A length mismatch with Primary is tolerated: each series is
	// laid out against its own length and a warning is recorded.
	Secondary []float64

	// Spokes are optional per-bin uncertainty magnitudes, drawn as radial
	// line segments on the bin bisectors with their own normalization.
	Spokes []float64

	// Labels are optional per-bin text labels.
	Labels []string
}

// Options configures the layout computation.
// The zero value is not useful; start from DefaultOptions.
type Options struct {
	// Scale is the radius of the largest wedge tip, normally in (0,1].
	// Values outside that range are accepted unvalidated and simply change
	// visual size and overlap.
	Scale float64

	// Clockwise selects the angular direction of increasing bin index.
	Clockwise bool

	// LengthMode maps values linearly to radius. When false (the default)
	// values are square-root transformed so wedge area is proportional to
	// the value.
	LengthMode bool

	// CenterInset is the radius the innermost wedge edges are pulled in to.
	CenterInset float64

	// Bins overrides the number of angular divisions. Zero means one
	// division per primary value.
	Bins int

	// Separators adds a radial line at each bin boundary.
	Separators bool

	// Stats appends the formatted primary value to each label.
	Stats bool

	// DP is the number of decimal places used for label statistics.
	DP int
}

// DefaultOptions returns the standard layout configuration: area-proportional
// wedges, clockwise from 12 o'clock, scale 0.8, inset 0.03, one decimal
// place of statistics.
func DefaultOptions() Options {
	return Options{
		Scale:       DefaultScale,
		Clockwise:   true,
		CenterInset: DefaultCenterInset,
		Stats:       true,
		DP:          DefaultDP,
	}
}

// Layout is the geometric result of a Build call. It contains no drawing
// state; every entity is plain coordinate data.
type Layout struct {
	// Bins is the number of angular divisions used for the primary series.
	Bins int `json:"bins"`

	// Primary holds one wedge polygon per primary value.
	Primary []Polygon `json:"primary"`

	// Secondary holds one wedge polygon per secondary value, or nil.
	Secondary []Polygon `json:"secondary,omitempty"`

	// Spokes holds one radial uncertainty segment per spoke value, or nil.
	Spokes []Segment `json:"spokes,omitempty"`

	// Separators holds one boundary segment per bin when requested.
	Separators []Segment `json:"separators,omitempty"`

	// Labels holds the label anchors, at most one per bin.
	Labels []Label `json:"labels,omitempty"`

	// Warnings records non-fatal input conditions (length mismatches,
	// unusable spokes). An empty slice means a clean layout.
	Warnings []string `json:"warnings,omitempty"`
}

// Build computes the wedge layout for the given data. It is a pure
// function: no global state is read or written, and repeated calls with
// the same inputs produce identical output.
//
// Build rejects inputs that would produce non-finite geometry: an empty
// primary series, negative magnitudes, and series whose combined maximum
// is zero. Length mismatches between the primary and secondary series (or
// spokes) are tolerated with a recorded warning; each series is laid out
// against its own length.
func Build(d Data, opts Options) (Layout, error) {
	if opts.Scale == 0 {
		opts.Scale = DefaultScale
	}
	if opts.CenterInset == 0 {
		opts.CenterInset = DefaultCenterInset
	}
	if opts.DP == 0 {
		opts.DP = DefaultDP
	}

	if len(d.Primary) == 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidSeries, "primary series is empty")
	}
	series := []struct {
		name   string
		values []float64
	}{
		{"primary", d.Primary},
		{"secondary", d.Secondary},
		{"spokes", d.Spokes},
	}
	for _, s := range series {
		for i, v := range s.values {
			if v < 0 {
				return Layout{}, errors.New(errors.ErrCodeInvalidSeries, "%s[%d] is negative: %g", s.name, i, v)
			}
		}
	}

	l := Layout{Bins: binCount(len(d.Primary), opts.Bins)}

	binsSecondary := l.Bins
	if len(d.Secondary) > 0 && len(d.Secondary) != len(d.Primary) {
		if opts.Bins == 0 {
			binsSecondary = binCount(len(d.Secondary), 0)
		}
		l.warnf("secondary series length %d does not match primary length %d; laying out each independently",
			len(d.Secondary), len(d.Primary))
	}

	p := transform(d.Primary, opts.LengthMode)
	s := transform(d.Secondary, opts.LengthMode)
	maxVal := maxOf(append(append([]float64{}, p...), s...))
	if maxVal == 0 {
		return Layout{}, errors.New(errors.ErrCodeDegenerateSeries, "all magnitudes are zero; no wedge radius can be normalized")
	}

	dir := 1.0
	if opts.Clockwise {
		dir = -1.0
	}
	split := len(d.Secondary) > 0

	l.Primary = buildWedges(p, l.Bins, maxVal, dir, split, 0, opts)
	if split {
		l.Secondary = buildWedges(s, binsSecondary, maxVal, dir, true, 1, opts)
	}

	l.Spokes = buildSpokes(&l, d.Spokes, dir, opts)
	if opts.Separators {
		l.Separators = buildSeparators(l.Bins, dir, opts)
	}
	l.Labels = buildLabels(d, l.Bins, dir, opts)

	return l, nil
}

// warnf appends a formatted warning to the layout.
func (l *Layout) warnf(format string, args ...any) {
	l.Warnings = append(l.Warnings, fmt.Sprintf(format, args...))
}

// binCount resolves the number of angular divisions for a series.
func binCount(seriesLen, override int) int {
	if override > 0 {
		return override
	}
	return seriesLen
}

// transform applies the per-series magnitude transform. In area mode each
// value v becomes sqrt(v * 12/pi), equalizing polygon area with the value;
// in length mode values pass through unchanged.
func transform(values []float64, lengthMode bool) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if lengthMode {
			out[i] = v
		} else {
			out[i] = math.Sqrt(v * 12 / math.Pi)
		}
	}
	return out
}

func maxOf(values []float64) float64 {
	var max float64
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return max
}

// angle maps a data angle (measured from bin 0 going in the data
// direction) to a math angle, starting at 12 o'clock.
func angle(theta, dir float64) float64 {
	return clockStart + dir*theta
}

// buildWedges constructs the wedge polygons for one series. When split is
// true the bin's angular width is divided into two equal halves and this
// series occupies the half selected by the half index, sampling half of the
// full arc sample budget.
func buildWedges(transformed []float64, bins int, maxVal, dir float64, split bool, half int, opts Options) []Polygon {
	// With an explicit Bins override smaller than the series, only the
	// values that fit the circle are drawn.
	count := len(transformed)
	if count > bins {
		count = bins
	}

	wedges := make([]Polygon, 0, count)
	binWidth := 2 * math.Pi / float64(bins)

	for k := 0; k < count; k++ {
		radius := opts.Scale * transformed[k] / maxVal

		start := float64(k) * binWidth
		span := binWidth
		samples := arcSamples
		if split {
			span = binWidth / 2
			samples = arcSamples / 2
			if half == 1 {
				start += span
			}
		}

		wedges = append(wedges, wedge(start, span, samples, radius, dir, opts.CenterInset))
	}
	return wedges
}

// wedge samples one petal polygon: the inset point at the leading radial
// edge, the outer arc at the wedge radius, and the inset point at the
// trailing edge. Closing back through the inset points (rather than the
// origin) produces the rounded petal shape.
func wedge(start, span float64, samples int, radius, dir, inset float64) Polygon {
	poly := make(Polygon, 0, samples+2)
	poly = append(poly, polar(inset, angle(start, dir)))
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(samples-1)
		poly = append(poly, polar(radius, angle(start+t*span, dir)))
	}
	poly = append(poly, polar(inset, angle(start+span, dir)))
	return poly
}

// buildSpokes lays out the uncertainty spokes along bin bisectors. Spokes
// carry their own normalization, independent of the wedge series. A spoke
// series whose maximum is zero cannot be normalized; it is skipped with a
// warning rather than rejected, since spokes are an overlay.
func buildSpokes(l *Layout, spokes []float64, dir float64, opts Options) []Segment {
	if len(spokes) == 0 {
		return nil
	}

	bins := l.Bins
	if len(spokes) != bins {
		bins = len(spokes)
		l.warnf("spoke series length %d does not match bin count %d; laying out spokes independently", len(spokes), l.Bins)
	}

	maxSpoke := maxOf(spokes)
	if maxSpoke == 0 {
		l.warnf("all spoke values are zero; spokes omitted")
		return nil
	}

	half := math.Pi / float64(bins)
	out := make([]Segment, 0, len(spokes))
	for k, v := range spokes {
		bisector := angle(2*math.Pi*float64(k)/float64(bins)+half, dir)
		out = append(out, Segment{
			From: polar(opts.CenterInset, bisector),
			To:   polar(opts.Scale*v/maxSpoke, bisector),
		})
	}
	return out
}

// buildSeparators returns one radial segment per bin boundary, from the
// inset circle out to the unit circle.
func buildSeparators(bins int, dir float64, opts Options) []Segment {
	out := make([]Segment, 0, bins)
	for k := 0; k < bins; k++ {
		boundary := angle(2*math.Pi*float64(k)/float64(bins), dir)
		out = append(out, Segment{
			From: polar(opts.CenterInset, boundary),
			To:   polar(1, boundary),
		})
	}
	return out
}

// buildLabels anchors each label on its bin bisector, slightly inside the
// unit circle. When statistics are enabled the anchor is pulled in a bit
// further to leave room for the extra text.
func buildLabels(d Data, bins int, dir float64, opts Options) []Label {
	if len(d.Labels) == 0 {
		return nil
	}

	count := len(d.Labels)
	if count > bins {
		count = bins
	}

	half := math.Pi / float64(bins)
	out := make([]Label, 0, count)
	for k := 0; k < count; k++ {
		lbl := Label{Text: d.Labels[k]}
		r := labelRadius
		if opts.Stats && k < len(d.Primary) {
			lbl.Stat = fmt.Sprintf("%.*f", opts.DP, d.Primary[k])
			r = labelStatRadius
		}
		bisector := angle(2*math.Pi*float64(k)/float64(bins)+half, dir)
		lbl.At = polar(r, bisector)
		out = append(out, lbl)
	}
	return out
}
