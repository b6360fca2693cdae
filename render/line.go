package render

import (
	"image/color"

	"git.sr.ht/~whereswaldon/chartkit/chart"
)

// LineRenderer draws line data sets, their fills, circles and values.
type LineRenderer struct {
	chart  Chart
	data   func() *chart.Data
	bounds XBounds
	buf    []float64
	path   Path
	fill   Path
}

func NewLineRenderer(c Chart, data func() *chart.Data) *LineRenderer {
	return &LineRenderer{chart: c, data: data}
}

func (r *LineRenderer) DrawData(s Surface) {
	d := r.data()
	if d == nil {
		return
	}
	defer clipContent(s, r.chart.Handler())()
	for _, set := range d.DataSets() {
		if !set.Visible || set.EntryCount() < 1 {
			continue
		}
		r.drawDataSet(s, d, set)
	}
}

func (r *LineRenderer) drawDataSet(s Surface, d *chart.Data, set *chart.DataSet) {
	r.bounds.Set(r.chart, set)
	switch set.Line.Mode {
	case chart.LineCubicBezier:
		r.drawCurve(s, d, set, r.cubicPath)
	case chart.LineHorizontalBezier:
		r.drawCurve(s, d, set, r.horizontalPath)
	default:
		r.drawLinear(s, d, set)
	}
}

// drawCurve strokes a bezier path built in value space, after filling the
// area below it when enabled.
func (r *LineRenderer) drawCurve(s Surface, d *chart.Data, set *chart.DataSet, build func(*chart.DataSet)) {
	if r.bounds.Range < 1 {
		return
	}
	r.path.Reset()
	build(set)
	if r.path.Empty() {
		return
	}
	m := r.chart.Transformer(set.Axis).ValueToPixelMatrix()
	if set.Line.DrawFilled {
		r.fill.copyFrom(&r.path)
		fillY := r.fillLine(d, set)
		r.fill.LineTo(set.Entry(r.bounds.Min+r.bounds.Range).X, fillY)
		r.fill.LineTo(set.Entry(r.bounds.Min).X, fillY)
		r.fill.Close()
		r.fill.Transform(m)
		s.DrawPath(&r.fill, r.fillPaint(set))
	}
	r.path.Transform(m)
	s.DrawPath(&r.path, strokePaint(set.Color(0), set.Line.LineWidth, set.Line.Dash))
}

func (r *LineRenderer) cubicPath(set *chart.DataSet) {
	phaseY := r.chart.PhaseY()
	intensity := set.Line.CubicIntensity
	first := r.bounds.Min + 1
	last := r.bounds.Min + r.bounds.Range
	prev := set.Entry(max(first-2, 0))
	cur := set.Entry(max(first-1, 0))
	if cur == nil {
		return
	}
	next := cur
	nextIndex := -1
	r.path.MoveTo(cur.X, cur.Y*phaseY)
	for j := first; j <= last; j++ {
		prevPrev := prev
		prev = cur
		if nextIndex == j {
			cur = next
		} else {
			cur = set.Entry(j)
		}
		nextIndex = j
		if j+1 < set.EntryCount() {
			nextIndex = j + 1
		}
		next = set.Entry(nextIndex)

		prevDx := (cur.X - prevPrev.X) * intensity
		prevDy := (cur.Y - prevPrev.Y) * intensity
		curDx := (next.X - prev.X) * intensity
		curDy := (next.Y - prev.Y) * intensity
		r.path.CubicTo(
			prev.X+prevDx, (prev.Y+prevDy)*phaseY,
			cur.X-curDx, (cur.Y-curDy)*phaseY,
			cur.X, cur.Y*phaseY,
		)
	}
}

// horizontalPath joins entries with curves whose control points share the x
// midpoint, leaving every entry horizontally.
func (r *LineRenderer) horizontalPath(set *chart.DataSet) {
	phaseY := r.chart.PhaseY()
	cur := set.Entry(r.bounds.Min)
	if cur == nil {
		return
	}
	r.path.MoveTo(cur.X, cur.Y*phaseY)
	for j := r.bounds.Min + 1; j <= r.bounds.Min+r.bounds.Range; j++ {
		prev := cur
		cur = set.Entry(j)
		cx := prev.X + (cur.X-prev.X)/2
		r.path.CubicTo(cx, prev.Y*phaseY, cx, cur.Y*phaseY, cur.X, cur.Y*phaseY)
	}
}

// drawLinear draws linear and stepped sets segment by segment so segments
// outside the content are skipped. Sets with several colors draw each
// segment in the color of its start entry.
func (r *LineRenderer) drawLinear(s Surface, d *chart.Data, set *chart.DataSet) {
	stepped := set.Line.Mode == chart.LineStepped
	t := r.chart.Transformer(set.Axis)
	h := r.chart.Handler()

	if set.Line.DrawFilled && r.bounds.Range >= 0 {
		r.filledPath(d, set, stepped)
		r.fill.Transform(t.ValueToPixelMatrix())
		s.DrawPath(&r.fill, r.fillPaint(set))
	}

	r.buf = t.GenerateTransformedValuesLine(r.buf, set, r.chart.PhaseX(), r.chart.PhaseY(), r.bounds.Min, r.bounds.Max)
	n := len(r.buf)/2 - 1
	if n < 1 {
		return
	}
	buf := r.buf
	multi := len(set.Colors) > 1
	r.path.Reset()
	joined := false
	scan(h, n, func(i int) (float64, float64) {
		return min(buf[2*i], buf[2*i+2]), max(buf[2*i], buf[2*i+2])
	}, func(i int) {
		x1, y1, x2, y2 := buf[2*i], buf[2*i+1], buf[2*i+2], buf[2*i+3]
		if !h.IsInBoundsTop(max(y1, y2)) || !h.IsInBoundsBottom(min(y1, y2)) {
			joined = false
			return
		}
		if multi {
			p := strokePaint(set.Color(r.bounds.Min+i), set.Line.LineWidth, set.Line.Dash)
			if stepped {
				s.DrawLine(x1, y1, x2, y1, p)
				s.DrawLine(x2, y1, x2, y2, p)
			} else {
				s.DrawLine(x1, y1, x2, y2, p)
			}
			return
		}
		if !joined {
			r.path.MoveTo(x1, y1)
			joined = true
		}
		if stepped {
			r.path.LineTo(x2, y1)
		}
		r.path.LineTo(x2, y2)
	})
	if !multi && !r.path.Empty() {
		s.DrawPath(&r.path, strokePaint(set.Color(0), set.Line.LineWidth, set.Line.Dash))
	}
}

// filledPath outlines the area between the entries in bounds and the fill
// line, in value space.
func (r *LineRenderer) filledPath(d *chart.Data, set *chart.DataSet, stepped bool) {
	phaseY := r.chart.PhaseY()
	fillY := r.fillLine(d, set)
	r.fill.Reset()
	first := set.Entry(r.bounds.Min)
	if first == nil {
		return
	}
	r.fill.MoveTo(first.X, fillY)
	r.fill.LineTo(first.X, first.Y*phaseY)
	prev := first
	last := first
	for i := r.bounds.Min + 1; i <= r.bounds.Min+r.bounds.Range; i++ {
		e := set.Entry(i)
		if e == nil {
			break
		}
		if stepped {
			r.fill.LineTo(e.X, prev.Y*phaseY)
		}
		r.fill.LineTo(e.X, e.Y*phaseY)
		prev, last = e, e
	}
	r.fill.LineTo(last.X, fillY)
	r.fill.Close()
}

func (r *LineRenderer) fillLine(d *chart.Data, set *chart.DataSet) float64 {
	f := set.Line.FillFormatter
	if f == nil {
		f = chart.DefaultFillFormatter
	}
	a := r.chart.YAxis(set.Axis)
	return f(set, d, a.Min(), a.Max())
}

func (r *LineRenderer) fillPaint(set *chart.DataSet) Paint {
	return fillPaint(chart.WithAlpha(set.Line.FillColor, set.Line.FillAlpha))
}

func (r *LineRenderer) DrawValues(s Surface) {
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
		offset := float64(int(set.Line.CircleRadius * 1.75))
		if !set.Line.DrawCircles {
			offset /= 2
		}
		r.bounds.Set(r.chart, set)
		t := r.chart.Transformer(set.Axis)
		r.buf = t.GenerateTransformedValuesLine(r.buf, set, r.chart.PhaseX(), r.chart.PhaseY(), r.bounds.Min, r.bounds.Max)
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
				drawValue(s, f.FormatValue(e.Y, e), x, y-offset, c, set.ValueTextSize)
			}
			drawIcon(s, set, e, x, y)
		})
	}
}

// DrawExtras draws the entry circles.
func (r *LineRenderer) DrawExtras(s Surface) {
	d := r.data()
	if d == nil {
		return
	}
	h := r.chart.Handler()
	for _, set := range d.DataSets() {
		if !set.Visible || !set.Line.DrawCircles || set.EntryCount() < 1 {
			continue
		}
		r.bounds.Set(r.chart, set)
		t := r.chart.Transformer(set.Axis)
		r.buf = t.GenerateTransformedValuesLine(r.buf, set, r.chart.PhaseX(), r.chart.PhaseY(), r.bounds.Min, r.bounds.Max)
		buf := r.buf
		o := &set.Line
		scan(h, len(buf)/2, pointSpan(buf), func(i int) {
			x, y := buf[2*i], buf[2*i+1]
			if !h.IsInBoundsY(y) {
				return
			}
			drawCircle(s, x, y, o, o.CircleColor(r.bounds.Min+i))
		})
	}
}

// drawCircle draws a line entry circle with its optional hole. Transparent
// holes are drawn as a ring so the line shows through.
func drawCircle(s Surface, x, y float64, o *chart.LineOptions, c color.NRGBA) {
	radius, hole := o.CircleRadius, o.CircleHoleRadius
	if !o.DrawCircleHole || hole <= 0 || hole >= radius {
		s.DrawCircle(x, y, radius, fillPaint(c))
		return
	}
	if o.CircleHoleColor.A == 0 {
		s.DrawCircle(x, y, (radius+hole)/2, strokePaint(c, radius-hole, nil))
		return
	}
	s.DrawCircle(x, y, radius, fillPaint(c))
	s.DrawCircle(x, y, hole, fillPaint(o.CircleHoleColor))
}

func (r *LineRenderer) DrawHighlighted(s Surface, hs []chart.Highlight) {
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
		drawHighlightLines(s, h, x, y, set.HighlightColor, set.Line.Highlight)
	}
}
