package styles

import (
	"bytes"
	"fmt"
)

const inkStroke = "#111111"

// Ink is a monochrome outline style: unfilled petals, dashed spokes, a
// faint separator grid. Fill colors from the layout are ignored.
type Ink struct{}

func (Ink) RenderDefs(buf *bytes.Buffer) {}

func (Ink) RenderWedge(buf *bytes.Buffer, w Wedge) {
	width := 2.0
	dash := ""
	if w.Series > 0 {
		// Secondary petals read as the comparison layer: thinner, dashed.
		width = 1.2
		dash = ` stroke-dasharray="6 3"`
	}
	fmt.Fprintf(buf, `  <polygon points="%s" fill="none" stroke="%s" stroke-width="%.1f" stroke-linejoin="round"%s/>`+"\n",
		pointsAttr(w.Points), inkStroke, width, dash)
}

func (Ink) RenderSpoke(buf *bytes.Buffer, s Line) {
	fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1.5" stroke-dasharray="2 3" stroke-linecap="round"/>`+"\n",
		s.X1, s.Y1, s.X2, s.Y2, inkStroke)
}

func (Ink) RenderSeparator(buf *bytes.Buffer, s Line) {
	fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#d9d9d9" stroke-width="0.8"/>`+"\n",
		s.X1, s.Y1, s.X2, s.Y2)
}

func (Ink) RenderLabel(buf *bytes.Buffer, l Label) {
	renderLabelText(buf, l, inkStroke)
}

func (Ink) RenderLegend(buf *bytes.Buffer, lg Legend) {
	// Legend swatches are meaningless without fills; show outline boxes so
	// the dashed/solid distinction still reads.
	entries := make([]LegendEntry, len(lg.Entries))
	for i, e := range lg.Entries {
		entries[i] = LegendEntry{Name: e.Name, Fill: "none"}
	}
	lg.Entries = entries
	renderLegendBox(buf, lg, inkStroke, inkStroke)
}
