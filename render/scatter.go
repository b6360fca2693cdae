package render

import (
	"image/color"

	"git.sr.ht/~whereswaldon/chartkit/chart"
)

// ScatterRenderer draws scatter data sets as shapes.
type ScatterRenderer struct {
	chart  Chart
	data   func() *chart.Data
	bounds XBounds
	buf    []float64
	path   Path
}

func NewScatterRenderer(c Chart, data func() *chart.Data) *ScatterRenderer {
	return &ScatterRenderer{chart: c, data: data}
}

func (r *ScatterRenderer) DrawData(s Surface) {
	d := r.data()
	if d == nil {
		return
	}
	h := r.chart.Handler()
	for _, set := range d.DataSets() {
		if !set.Visible || set.EntryCount() < 1 {
			continue
		}
		n := set.EntryCount()
		r.buf = r.chart.Transformer(set.Axis).GenerateTransformedValuesScatter(r.buf, set, r.chart.PhaseX(), r.chart.PhaseY(), 0, n-1)
		buf := r.buf
		scan(h, min(len(buf)/2, n), pointSpan(buf), func(i int) {
			x, y := buf[2*i], buf[2*i+1]
			if !h.IsInBoundsY(y) {
				return
			}
			r.drawShape(s, &set.Scatter, x, y, set.Color(i))
		})
	}
}

// drawShape draws the marker of a scatter set centered on x, y.
func (r *ScatterRenderer) drawShape(s Surface, o *chart.ScatterOptions, x, y float64, c color.NRGBA) {
	half := o.ShapeSize / 2
	hole := o.HoleRadius
	// Width of the ring around a hole.
	ring := (o.ShapeSize - 2*hole) / 2
	thin := strokePaint(c, 1, nil)
	switch o.Shape {
	case chart.ShapeSquare:
		if hole > 0 {
			d := hole + ring/2
			s.DrawRect(x-d, y-d, x+d, y+d, strokePaint(c, ring, nil))
			if o.HoleColor.A > 0 {
				s.DrawRect(x-hole, y-hole, x+hole, y+hole, fillPaint(o.HoleColor))
			}
			return
		}
		s.DrawRect(x-half, y-half, x+half, y+half, fillPaint(c))
	case chart.ShapeCircle:
		if hole > 0 {
			s.DrawCircle(x, y, hole+ring/2, strokePaint(c, ring, nil))
			if o.HoleColor.A > 0 {
				s.DrawCircle(x, y, hole, fillPaint(o.HoleColor))
			}
			return
		}
		s.DrawCircle(x, y, half, fillPaint(c))
	case chart.ShapeTriangle:
		r.path.Reset()
		r.path.MoveTo(x, y-half)
		r.path.LineTo(x+half, y+half)
		r.path.LineTo(x-half, y+half)
		if hole > 0 {
			// Cut the inner triangle out with the opposite winding.
			inset := min(ring, half)
			r.path.LineTo(x, y-half)
			r.path.LineTo(x-half+inset, y+half-inset)
			r.path.LineTo(x+half-inset, y+half-inset)
			r.path.LineTo(x, y-half+inset)
			r.path.LineTo(x, y-half)
		}
		r.path.Close()
		s.DrawPath(&r.path, fillPaint(c))
		if hole > 0 && o.HoleColor.A > 0 {
			inset := min(ring, half)
			r.path.Reset()
			r.path.MoveTo(x, y-half+inset)
			r.path.LineTo(x+half-inset, y+half-inset)
			r.path.LineTo(x-half+inset, y+half-inset)
			r.path.Close()
			s.DrawPath(&r.path, fillPaint(o.HoleColor))
		}
	case chart.ShapeCross:
		s.DrawLine(x-half, y, x+half, y, thin)
		s.DrawLine(x, y-half, x, y+half, thin)
	case chart.ShapeX:
		s.DrawLine(x-half, y-half, x+half, y+half, thin)
		s.DrawLine(x+half, y-half, x-half, y+half, thin)
	case chart.ShapeChevronUp:
		s.DrawLine(x, y-2*half, x+2*half, y, thin)
		s.DrawLine(x, y-2*half, x-2*half, y, thin)
	case chart.ShapeChevronDown:
		s.DrawLine(x, y+2*half, x+2*half, y, thin)
		s.DrawLine(x, y+2*half, x-2*half, y, thin)
	}
}

func (r *ScatterRenderer) DrawValues(s Surface) {
	d := r.data()
	if d == nil || !r.chart.ValuesAllowed() {
		return
	}
	h := r.chart.Handler()
	alpha := valueAlpha(r.chart)
	for _, set := range d.DataSets() {
		if !shouldDrawValues(set) {
			continue
		}
		r.bounds.Set(r.chart, set)
		r.buf = r.chart.Transformer(set.Axis).GenerateTransformedValuesScatter(r.buf, set, r.chart.PhaseX(), r.chart.PhaseY(), r.bounds.Min, r.bounds.Max)
		buf := r.buf
		f := set.ValueFormatter()
		scan(h, len(buf)/2, pointSpan(buf), func(i int) {
			x, y := buf[2*i], buf[2*i+1]
			if !h.IsInBoundsY(y) {
				return
			}
			e := set.Entry(r.bounds.Min + i)
			if e == nil {
				return
			}
			if set.DrawValues {
				c := fade(set.ValueTextColor(r.bounds.Min+i), alpha)
				drawValue(s, f.FormatValue(e.Y, e), x, y-set.Scatter.ShapeSize, c, set.ValueTextSize)
			}
			drawIcon(s, set, e, x, y)
		})
	}
}

func (r *ScatterRenderer) DrawExtras(Surface) {}

func (r *ScatterRenderer) DrawHighlighted(s Surface, hs []chart.Highlight) {
	d := r.data()
	if d == nil {
		return
	}
	h := r.chart.Handler()
	for i := range hs {
		set, e := highlightedEntry(d, hs[i], r.chart.PhaseX())
		if e == nil {
			continue
		}
		x, y := r.chart.Transformer(set.Axis).PixelForValues(e.X, e.Y*r.chart.PhaseY())
		hs[i].DrawX, hs[i].DrawY = x, y
		drawHighlightLines(s, h, x, y, set.HighlightColor, set.Scatter.Highlight)
	}
}
