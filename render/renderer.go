package render

import (
	"image/color"
	"math"

	"git.sr.ht/~whereswaldon/chartkit/chart"
	"git.sr.ht/~whereswaldon/chartkit/viewport"
)

// Renderer draws one kind of chart data in four passes. Hosts call them in
// the order data, highlighted, values, extras.
type Renderer interface {
	DrawData(s Surface)
	DrawValues(s Surface)
	DrawExtras(s Surface)
	// DrawHighlighted draws the selected entries and records the pixel
	// position each highlight was drawn at in its DrawX and DrawY.
	DrawHighlighted(s Surface, hs []chart.Highlight)
}

// Chart is the part of a cartesian chart host the renderers read.
type Chart interface {
	Handler() *viewport.Handler
	Transformer(axis chart.AxisDependency) *viewport.Transformer
	YAxis(axis chart.AxisDependency) *chart.Axis
	PhaseX() float64
	PhaseY() float64
	LowestVisibleX() float64
	HighestVisibleX() float64
	// ValuesAllowed reports whether value labels may be drawn at the
	// current zoom level.
	ValuesAllowed() bool
}

// XBounds is the index range of the entries of a set worth drawing.
type XBounds struct {
	Min, Max int
	// Range is the number of entries after Min to draw, shortened by the x
	// animation phase.
	Range int
}

// Set computes the bounds of s for the visible window and phase of c.
func (b *XBounds) Set(c Chart, s *chart.DataSet) {
	phaseX := min(max(c.PhaseX(), 0), 1)
	b.Min = max(s.EntryIndexForX(c.LowestVisibleX(), math.NaN(), chart.RoundDown), 0)
	b.Max = max(s.EntryIndexForX(c.HighestVisibleX(), math.NaN(), chart.RoundUp), 0)
	b.Range = int(float64(b.Max-b.Min) * phaseX)
}

// scan calls visit for each index in [0, n) whose horizontal pixel extent,
// as reported by span, reaches into the content rectangle. The entries must
// be sorted by ascending x: the scan skips entries ending left of the content
// and stops at the first one starting right of it.
func scan(h *viewport.Handler, n int, span func(i int) (left, right float64), visit func(i int)) {
	for i := 0; i < n; i++ {
		left, right := span(i)
		if !h.IsInBoundsRight(left) {
			break
		}
		if !h.IsInBoundsLeft(right) {
			continue
		}
		visit(i)
	}
}

// pointSpan returns a span func over x, y pixel pairs.
func pointSpan(buf []float64) func(int) (float64, float64) {
	return func(i int) (float64, float64) { return buf[2*i], buf[2*i] }
}

func shouldDrawValues(s *chart.DataSet) bool {
	return s.Visible && (s.DrawValues || s.DrawIcons) && s.EntryCount() > 0
}

type phases interface {
	PhaseX() float64
	PhaseY() float64
}

// valueAlpha returns the fade applied to value labels while animating, the
// phase still running or phaseY once x is fully revealed.
func valueAlpha(c phases) float64 {
	phaseX := min(max(c.PhaseX(), 0), 1)
	phaseY := min(max(c.PhaseY(), 0), 1)
	if phaseX == 1 {
		return phaseY
	}
	return phaseX
}

func fade(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(float64(c.A) * alpha)
	return c
}

// drawValue draws a label centered on x with its baseline at y.
func drawValue(s Surface, text string, x, y float64, c color.NRGBA, size float64) {
	s.DrawText(text, x, y, textPaint(c, size))
}

// drawIcon draws the icon of e, if any, offset by the set's icon offset.
func drawIcon(s Surface, set *chart.DataSet, e *chart.Entry, x, y float64) {
	if !set.DrawIcons || e.Icon == nil {
		return
	}
	s.DrawImage(e.Icon, x+set.IconsOffsetX, y+set.IconsOffsetY)
}

// drawHighlightLines draws the crosshair through x, y across the content
// rectangle.
func drawHighlightLines(s Surface, h *viewport.Handler, x, y float64, c color.NRGBA, o chart.HighlightLineOptions) {
	p := strokePaint(c, o.Width, o.Dash)
	if o.DrawVertical {
		s.DrawLine(x, h.ContentTop(), x, h.ContentBottom(), p)
	}
	if o.DrawHorizontal {
		s.DrawLine(h.ContentLeft(), y, h.ContentRight(), y, p)
	}
}

// highlightedEntry resolves a highlight against d, returning nil unless the
// entry is revealed by the x phase.
func highlightedEntry(d *chart.Data, h chart.Highlight, phaseX float64) (*chart.DataSet, *chart.Entry) {
	set := d.DataSet(h.DataSetIndex)
	if set == nil || !set.HighlightEnabled {
		return nil, nil
	}
	e := set.EntryForX(h.X, h.Y, chart.RoundClosest)
	if e == nil || float64(set.IndexOf(e)) >= float64(set.EntryCount())*phaseX {
		return nil, nil
	}
	return set, e
}

// clipContent restricts drawing to the content rectangle until the
// returned func is called.
func clipContent(s Surface, h *viewport.Handler) func() {
	s.Save()
	s.ClipRect(h.ContentLeft(), h.ContentTop(), h.ContentRight(), h.ContentBottom())
	return s.Restore
}
