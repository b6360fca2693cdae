package render

import (
	"image/color"

	"git.sr.ht/~whereswaldon/chartkit/chart"
)

// candleValueOffset lifts candle labels above the high value.
const candleValueOffset = 5

// CandleRenderer draws candle sticks, or open/close ticks when the candle
// bar is off.
type CandleRenderer struct {
	chart  Chart
	data   func() *chart.Data
	bounds XBounds
	buf    []float64
}

func NewCandleRenderer(c Chart, data func() *chart.Data) *CandleRenderer {
	return &CandleRenderer{chart: c, data: data}
}

// candleColor picks the increasing, decreasing or neutral color of e,
// falling back to the set color for unset ones.
func candleColor(set *chart.DataSet, e *chart.Entry, i int) color.NRGBA {
	o := &set.Candle
	c := o.NeutralColor
	switch {
	case e.Open > e.Close:
		c = o.DecreasingColor
	case e.Open < e.Close:
		c = o.IncreasingColor
	}
	if c.A == 0 {
		return set.Color(i)
	}
	return c
}

func (r *CandleRenderer) DrawData(s Surface) {
	d := r.data()
	if d == nil {
		return
	}
	for _, set := range d.DataSets() {
		if set.Visible && set.EntryCount() > 0 {
			r.drawDataSet(s, set)
		}
	}
}

func (r *CandleRenderer) drawDataSet(s Surface, set *chart.DataSet) {
	t := r.chart.Transformer(set.Axis)
	h := r.chart.Handler()
	phaseY := r.chart.PhaseY()
	o := &set.Candle
	r.bounds.Set(r.chart, set)

	n := r.bounds.Range + 1
	// Per entry: the body or tick edges, then high and low, then open and
	// close, all in pixels.
	if cap(r.buf) < n*6 {
		r.buf = make([]float64, n*6)
	}
	buf := r.buf[:n*6]
	for j := 0; j < n; j++ {
		e := set.Entry(r.bounds.Min + j)
		b := buf[6*j : 6*j+6]
		b[0], b[1] = e.X-0.5+o.BarSpace, e.High*phaseY
		b[2], b[3] = e.X+0.5-o.BarSpace, e.Low*phaseY
		b[4], b[5] = e.Open*phaseY, e.Close*phaseY
		t.PointValuesToPixel(b[:4])
		_, b[4] = t.PixelForValues(e.X, b[4])
		_, b[5] = t.PixelForValues(e.X, b[5])
	}

	scan(h, n, func(j int) (float64, float64) {
		return buf[6*j], buf[6*j+2]
	}, func(j int) {
		i := r.bounds.Min + j
		e := set.Entry(i)
		left, right := buf[6*j], buf[6*j+2]
		x, _ := t.PixelForValues(e.X, 0)
		high, low := buf[6*j+1], buf[6*j+3]
		open, closeY := buf[6*j+4], buf[6*j+5]
		c := candleColor(set, e, i)

		if !o.ShowCandleBar {
			p := strokePaint(c, o.ShadowWidth, nil)
			s.DrawLine(x, high, x, low, p)
			s.DrawLine(left, open, x, open, p)
			s.DrawLine(right, closeY, x, closeY, p)
			return
		}

		shadow := o.ShadowColor
		switch {
		case o.ShadowColorSameAsCandle:
			shadow = c
		case shadow.A == 0:
			shadow = set.Color(i)
		}
		s.DrawLine(x, high, x, low, strokePaint(shadow, o.ShadowWidth, nil))

		top, bottom := min(open, closeY), max(open, closeY)
		switch {
		case e.Open > e.Close:
			s.DrawRect(left, top, right, bottom, bodyPaint(c, o.DecreasingFilled, o.ShadowWidth))
		case e.Open < e.Close:
			s.DrawRect(left, top, right, bottom, bodyPaint(c, o.IncreasingFilled, o.ShadowWidth))
		default:
			s.DrawLine(left, open, right, open, strokePaint(c, o.ShadowWidth, nil))
		}
	})
}

func bodyPaint(c color.NRGBA, filled bool, width float64) Paint {
	if filled {
		return Paint{Style: FillAndStroke, Color: c, StrokeWidth: width}
	}
	return strokePaint(c, width, nil)
}

func (r *CandleRenderer) DrawValues(s Surface) {
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
		r.buf = r.chart.Transformer(set.Axis).GenerateTransformedValuesCandle(r.buf, set, r.chart.PhaseX(), r.chart.PhaseY(), r.bounds.Min, r.bounds.Max)
		buf := r.buf
		f := set.ValueFormatter()
		scan(h, len(buf)/2, pointSpan(buf), func(j int) {
			x, y := buf[2*j], buf[2*j+1]
			if !h.IsInBoundsY(y) {
				return
			}
			e := set.Entry(r.bounds.Min + j)
			if e == nil {
				return
			}
			if set.DrawValues {
				c := fade(set.ValueTextColor(r.bounds.Min+j), alpha)
				drawValue(s, f.FormatValue(e.High, e), x, y-candleValueOffset, c, set.ValueTextSize)
			}
			drawIcon(s, set, e, x, y)
		})
	}
}

func (r *CandleRenderer) DrawExtras(Surface) {}

func (r *CandleRenderer) DrawHighlighted(s Surface, hs []chart.Highlight) {
	d := r.data()
	if d == nil {
		return
	}
	h := r.chart.Handler()
	phaseY := r.chart.PhaseY()
	for i := range hs {
		set, e := highlightedEntry(d, hs[i], r.chart.PhaseX())
		if e == nil {
			continue
		}
		y := (e.Low*phaseY + e.High*phaseY) / 2
		x, py := r.chart.Transformer(set.Axis).PixelForValues(e.X, y)
		hs[i].DrawX, hs[i].DrawY = x, py
		drawHighlightLines(s, h, x, py, set.HighlightColor, set.Candle.Highlight)
	}
}
