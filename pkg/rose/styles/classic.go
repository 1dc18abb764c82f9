package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

const (
	classicStroke     = "#2b2b2b"
	classicGridStroke = "#c4c4c4"
	classicTextFill   = "#1a1a1a"
	legendSwatchSize  = 14.0
	legendRowGap      = 8.0
	legendPadding     = 10.0
)

// Classic is the default filled-petal style: petals in the series colors
// with a dark outline, light separator grid, solid spokes.
type Classic struct{}

func (Classic) RenderDefs(buf *bytes.Buffer) {}

func (Classic) RenderWedge(buf *bytes.Buffer, w Wedge) {
	opacity := 0.92
	if w.Series > 0 {
		opacity = 0.78
	}
	fmt.Fprintf(buf, `  <polygon points="%s" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-width="1.5" stroke-linejoin="round"/>`+"\n",
		pointsAttr(w.Points), w.Fill, opacity, classicStroke)
}

func (Classic) RenderSpoke(buf *bytes.Buffer, s Line) {
	fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="2.5" stroke-linecap="round"/>`+"\n",
		s.X1, s.Y1, s.X2, s.Y2, classicStroke)
}

func (Classic) RenderSeparator(buf *bytes.Buffer, s Line) {
	fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1"/>`+"\n",
		s.X1, s.Y1, s.X2, s.Y2, classicGridStroke)
}

func (Classic) RenderLabel(buf *bytes.Buffer, l Label) {
	renderLabelText(buf, l, classicTextFill)
}

func (Classic) RenderLegend(buf *bytes.Buffer, lg Legend) {
	renderLegendBox(buf, lg, classicStroke, classicTextFill)
}

func renderLabelText(buf *bytes.Buffer, l Label, fill string) {
	if l.Text != "" {
		fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			l.X, l.Y, l.FontSize, fill, EscapeXML(l.Text))
	}
	if l.Stat != "" {
		// Stat sits one line below the bin label, slightly smaller.
		fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			l.X, l.Y+l.FontSize*1.15, l.FontSize*0.85, fill, EscapeXML(l.Stat))
	}
}

func renderLegendBox(buf *bytes.Buffer, lg Legend, stroke, textFill string) {
	if len(lg.Entries) == 0 {
		return
	}
	rowH := legendSwatchSize + legendRowGap
	boxW := legendBoxWidth(lg)
	boxH := legendPadding*2 + rowH*float64(len(lg.Entries)) - legendRowGap

	fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="#ffffff" fill-opacity="0.85" stroke="%s" stroke-width="1"/>`+"\n",
		lg.X, lg.Y, boxW, boxH, stroke)

	for i, e := range lg.Entries {
		y := lg.Y + legendPadding + float64(i)*rowH
		fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
			lg.X+legendPadding, y, legendSwatchSize, legendSwatchSize, e.Fill, stroke)
		fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.1f" fill="%s" dominant-baseline="middle">%s</text>`+"\n",
			lg.X+legendPadding+legendSwatchSize+8, y+legendSwatchSize/2, lg.FontSize, textFill, EscapeXML(e.Name))
	}
}

func legendBoxWidth(lg Legend) float64 {
	longest := 0
	for _, e := range lg.Entries {
		if len(e.Name) > longest {
			longest = len(e.Name)
		}
	}
	return legendPadding*2 + legendSwatchSize + 8 + float64(longest)*lg.FontSize*0.6
}

func pointsAttr(pts []Point) string {
	var b bytes.Buffer
	for i, p := range pts {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.2f,%.2f", p.X, p.Y)
	}
	return b.String()
}

// EscapeXML escapes text for safe embedding in SVG attributes and content.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
