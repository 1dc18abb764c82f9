package sink

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"

	"github.com/mlenz/rosette/pkg/render"
	"github.com/mlenz/rosette/pkg/rose/layout"
	"github.com/mlenz/rosette/pkg/rose/styles"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
	vector  bool
}

// WithPNGSVGOptions passes options through to the underlying renderer
// configuration (size, colors, legend, style).
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithVector routes PNG output through SVG and rsvg-convert instead of the
// built-in rasterizer. This preserves the exact SVG style rendering but
// requires librsvg to be installed.
func WithVector() PNGOption {
	return func(r *pngRenderer) { r.vector = true }
}

// RenderPNG renders the layout as PNG. The default path rasterizes
// directly and honors colors, size, and legend; custom vector styles only
// affect SVG-derived output, so pair [WithVector] with an ink or otherwise
// styled render.
func RenderPNG(l layout.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.vector {
		svg := RenderSVG(l, r.svgOpts...)
		return render.ToPNG(svg, r.scale)
	}
	return rasterize(l, newSVGRenderer(r.svgOpts...), r.scale)
}

var (
	wedgeParams = styles.Params{Stroke: "#2b2b2b", StrokeWidth: 1.5}
	spokeParams = styles.Params{Stroke: "#2b2b2b", StrokeWidth: 2.5}
	gridParams  = styles.Params{Stroke: "#c4c4c4", StrokeWidth: 1}
	textParams  = styles.Params{Fill: "#1a1a1a"}
)

func rasterize(l layout.Layout, cfg svgRenderer, scale float64) ([]byte, error) {
	dc := gg.NewContext(int(cfg.width*scale), int(cfg.height*scale))
	dc.Scale(scale, scale)

	if cfg.background != "none" {
		dc.SetHexColor(cfg.background)
		dc.Clear()
	}

	canvas := &ggCanvas{dc: dc}
	f := newFrame(cfg.width, cfg.height)

	restore := gridParams.Apply(canvas)
	for _, s := range l.Separators {
		canvas.line(projectSegment(f, s))
	}
	restore()

	for series, polys := range [][]layout.Polygon{l.Primary, l.Secondary} {
		p := wedgeParams
		p.Fill = cfg.color(series)
		restore := p.Apply(canvas)
		for _, poly := range polys {
			canvas.polygon(projectPolygon(f, poly))
		}
		restore()
	}

	restore = spokeParams.Apply(canvas)
	for _, s := range l.Spokes {
		canvas.line(projectSegment(f, s))
	}
	restore()

	fontSize := math.Min(cfg.width, cfg.height) * labelFontRatio
	restore = textParams.Apply(canvas)
	for _, lb := range l.Labels {
		at := f.project(lb.At)
		if lb.Text != "" {
			canvas.text(lb.Text, at.X, at.Y)
		}
		if lb.Stat != "" {
			canvas.text(lb.Stat, at.X, at.Y+fontSize*1.15)
		}
	}
	restore()

	if cfg.legend && len(cfg.names) > 0 {
		drawLegend(canvas, cfg)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawLegend(c *ggCanvas, cfg svgRenderer) {
	const swatch, rowGap, pad = 14.0, 8.0, 10.0
	rowH := swatch + rowGap
	x, y := legendInset, legendInset

	for i, name := range cfg.names {
		rowY := y + pad + float64(i)*rowH

		p := styles.Params{Fill: cfg.color(i), Stroke: "#2b2b2b", StrokeWidth: 1}
		restore := p.Apply(c)
		c.dc.DrawRectangle(x+pad, rowY, swatch, swatch)
		c.paint()
		restore()

		restore = textParams.Apply(c)
		c.dc.SetHexColor(c.cur.Fill)
		c.dc.DrawStringAnchored(name, x+pad+swatch+8, rowY+swatch/2, 0, 0.35)
		restore()
	}
}

// ggCanvas adapts a gg drawing context to the [styles.Target] pen-state
// discipline. gg keeps one global color register, so colors are set at
// paint time from the current params.
type ggCanvas struct {
	dc  *gg.Context
	cur styles.Params
}

func (c *ggCanvas) SetParams(p styles.Params) {
	c.cur = p
	c.dc.SetLineWidth(p.StrokeWidth)
	c.dc.SetDash(p.Dash...)
}

func (c *ggCanvas) Params() styles.Params { return c.cur }

func (c *ggCanvas) polygon(pts []styles.Point) {
	if len(pts) == 0 {
		return
	}
	c.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.ClosePath()
	c.paint()
}

func (c *ggCanvas) line(s styles.Line) {
	c.dc.MoveTo(s.X1, s.Y1)
	c.dc.LineTo(s.X2, s.Y2)
	c.paint()
}

func (c *ggCanvas) text(s string, x, y float64) {
	c.dc.SetHexColor(c.cur.Fill)
	c.dc.DrawStringAnchored(s, x, y, 0.5, 0.35)
}

// paint fills and strokes the current path per the current params, then
// clears it.
func (c *ggCanvas) paint() {
	if c.cur.Fill != "" {
		c.dc.SetHexColor(c.cur.Fill)
		c.dc.FillPreserve()
	}
	if c.cur.Stroke != "" {
		c.dc.SetHexColor(c.cur.Stroke)
		c.dc.Stroke()
	} else {
		c.dc.ClearPath()
	}
}
