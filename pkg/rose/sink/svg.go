package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/mlenz/rosette/pkg/errors"
	"github.com/mlenz/rosette/pkg/rose"
	"github.com/mlenz/rosette/pkg/rose/layout"
	"github.com/mlenz/rosette/pkg/rose/styles"
)

const (
	// DefaultSize is the default frame width and height in pixels.
	DefaultSize = 800.0

	// frameFill is the fraction of the half-frame the unit circle spans;
	// the rest is margin for labels near the rim.
	frameFill = 0.92

	labelFontRatio = 0.033
	legendInset    = 16.0
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style      styles.Style
	colors     []string
	legend     bool
	names      []string
	width      float64
	height     float64
	background string
}

// WithStyle selects the visual style (default [styles.Classic]).
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithColors sets the series fill colors (primary, secondary).
func WithColors(colors ...string) SVGOption { return func(r *svgRenderer) { r.colors = colors } }

// WithLegend enables the legend box with the given series names.
func WithLegend(names ...string) SVGOption {
	return func(r *svgRenderer) { r.legend = true; r.names = names }
}

// WithSize sets the frame dimensions in pixels (default 800x800).
func WithSize(w, h float64) SVGOption {
	return func(r *svgRenderer) {
		if w > 0 {
			r.width = w
		}
		if h > 0 {
			r.height = h
		}
	}
}

// WithBackground sets the background color; "none" disables the
// background rectangle entirely.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// FileOptions derives SVG options from a layout file's render metadata.
// Returns an INVALID_STYLE error when the file names an unknown style.
func FileOptions(lf rose.LayoutFile) ([]SVGOption, error) {
	style, ok := styles.ByName(lf.Style)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style %q (available: %v)", lf.Style, styles.Names())
	}
	opts := []SVGOption{
		WithStyle(style),
		WithSize(lf.Width, lf.Height),
	}
	if len(lf.Colors) > 0 {
		opts = append(opts, WithColors(lf.Colors...))
	}
	if lf.Legend {
		opts = append(opts, WithLegend(lf.SeriesNames...))
	}
	return opts, nil
}

// RenderSVG renders the layout as an SVG document.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	f := newFrame(r.width, r.height)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)

	if r.background != "none" {
		fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="%s"/>`+"\n", r.width, r.height, r.background)
	}
	r.style.RenderDefs(&buf)

	for _, s := range l.Separators {
		r.style.RenderSeparator(&buf, projectSegment(f, s))
	}
	for _, p := range l.Primary {
		r.style.RenderWedge(&buf, styles.Wedge{Series: 0, Points: projectPolygon(f, p), Fill: r.color(0)})
	}
	for _, p := range l.Secondary {
		r.style.RenderWedge(&buf, styles.Wedge{Series: 1, Points: projectPolygon(f, p), Fill: r.color(1)})
	}
	for _, s := range l.Spokes {
		r.style.RenderSpoke(&buf, projectSegment(f, s))
	}

	fontSize := math.Min(r.width, r.height) * labelFontRatio
	for _, lb := range l.Labels {
		at := f.project(lb.At)
		r.style.RenderLabel(&buf, styles.Label{X: at.X, Y: at.Y, Text: lb.Text, Stat: lb.Stat, FontSize: fontSize})
	}

	if r.legend && len(r.names) > 0 {
		r.style.RenderLegend(&buf, styles.Legend{
			X: legendInset, Y: legendInset,
			FontSize: fontSize * 0.9,
			Entries:  r.legendEntries(),
		})
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		style:      styles.Classic{},
		colors:     rose.DefaultColors,
		width:      DefaultSize,
		height:     DefaultSize,
		background: "#fafafa",
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *svgRenderer) color(series int) string {
	if series < len(r.colors) && r.colors[series] != "" {
		return r.colors[series]
	}
	if series < len(rose.DefaultColors) {
		return rose.DefaultColors[series]
	}
	return rose.DefaultColors[0]
}

func (r *svgRenderer) legendEntries() []styles.LegendEntry {
	entries := make([]styles.LegendEntry, len(r.names))
	for i, name := range r.names {
		entries[i] = styles.LegendEntry{Name: name, Fill: r.color(i)}
	}
	return entries
}

// frame maps unit-circle coordinates into the pixel frame.
type frame struct {
	cx, cy, r float64
}

func newFrame(w, h float64) frame {
	return frame{cx: w / 2, cy: h / 2, r: math.Min(w, h) / 2 * frameFill}
}

// project flips Y: the layout's Y axis points up, screen space points down.
func (f frame) project(p layout.Point) styles.Point {
	return styles.Point{X: f.cx + p.X*f.r, Y: f.cy - p.Y*f.r}
}

func projectPolygon(f frame, poly layout.Polygon) []styles.Point {
	out := make([]styles.Point, len(poly))
	for i, p := range poly {
		out[i] = f.project(p)
	}
	return out
}

func projectSegment(f frame, s layout.Segment) styles.Line {
	from, to := f.project(s.From), f.project(s.To)
	return styles.Line{X1: from.X, Y1: from.Y, X2: to.X, Y2: to.Y}
}
