package render

import (
	"math"

	"git.sr.ht/~whereswaldon/chartkit/chart"
	"git.sr.ht/~whereswaldon/chartkit/viewport"
)

// valueOffset is the gap between a bar and its value label.
const valueOffset = 4.5

// bar is one drawn rectangle of a set, a whole entry or one stack value.
type bar struct {
	rect  viewport.Rect
	entry int
	// value is the stack value of the rectangle, or the entry y.
	value float64
	top   float64
}

// BarRenderer draws bar data sets, stacked or not, with optional shadows
// and borders.
type BarRenderer struct {
	// DrawShadow fills the full content height behind each bar.
	DrawShadow bool
	// ValuesAboveBar draws value labels outside the bar end instead of
	// inside it.
	ValuesAboveBar bool
	// HighlightFullBar highlights whole stacked bars instead of the
	// selected stack value.
	HighlightFullBar bool

	chart Chart
	data  func() *chart.Data
	bars  [][]bar
}

func NewBarRenderer(c Chart, data func() *chart.Data) *BarRenderer {
	return &BarRenderer{
		ValuesAboveBar: true,
		chart:          c,
		data:           data,
	}
}

// feed lays out the bars of set in value space, scaled by the animation
// phases. Only the side of a bar away from zero grows with phaseY.
func (r *BarRenderer) feed(out []bar, set *chart.DataSet, barWidth float64) []bar {
	out = out[:0]
	phaseX := min(max(r.chart.PhaseX(), 0), 1)
	phaseY := r.chart.PhaseY()
	half := barWidth / 2
	size := float64(set.EntryCount()) * phaseX
	for i := 0; float64(i) < size; i++ {
		e := set.Entry(i)
		if e == nil {
			continue
		}
		left, right := e.X-half, e.X+half
		if !set.IsStacked() || !e.IsStacked() {
			top, bottom := max(e.Y, 0), min(e.Y, 0)
			if top > 0 {
				top *= phaseY
			} else {
				bottom *= phaseY
			}
			out = append(out, bar{
				rect:  viewport.Rect{Left: left, Top: top, Right: right, Bottom: bottom},
				entry: i,
				value: e.Y,
				top:   e.Y * phaseY,
			})
			continue
		}
		posY, negY := 0.0, -e.NegativeSum()
		for _, v := range e.Stack {
			var y, yStart float64
			switch {
			case v == 0 && (posY == 0 || negY == 0):
				y, yStart = v, v
			case v >= 0:
				y = posY
				yStart = posY + v
				posY = yStart
			default:
				y = negY
				yStart = negY + math.Abs(v)
				negY += math.Abs(v)
			}
			top, bottom := max(y, yStart), min(y, yStart)
			stackTop := yStart
			if v < 0 {
				stackTop = y
			}
			out = append(out, bar{
				rect:  viewport.Rect{Left: left, Top: top * phaseY, Right: right, Bottom: bottom * phaseY},
				entry: i,
				value: v,
				top:   stackTop * phaseY,
			})
		}
	}
	return out
}

func (r *BarRenderer) DrawData(s Surface) {
	d := r.data()
	if d == nil {
		return
	}
	if len(r.bars) < d.DataSetCount() {
		r.bars = append(r.bars, make([][]bar, d.DataSetCount()-len(r.bars))...)
	}
	for i, set := range d.DataSets() {
		r.bars[i] = r.feed(r.bars[i], set, d.BarWidth)
		if set.Visible {
			r.drawDataSet(s, d, set, r.bars[i])
		}
	}
}

func (r *BarRenderer) drawDataSet(s Surface, d *chart.Data, set *chart.DataSet, bars []bar) {
	t := r.chart.Transformer(set.Axis)
	h := r.chart.Handler()
	if r.DrawShadow {
		half := d.BarWidth / 2
		n := min(int(math.Ceil(float64(set.EntryCount())*min(max(r.chart.PhaseX(), 0), 1))), set.EntryCount())
		shadow := fillPaint(set.Bar.ShadowColor)
		rects := make([]viewport.Rect, n)
		for i := range rects {
			x := set.Entry(i).X
			rects[i] = t.RectValueToPixel(viewport.Rect{Left: x - half, Right: x + half})
		}
		scan(h, n, func(i int) (float64, float64) {
			return rects[i].Left, rects[i].Right
		}, func(i int) {
			s.DrawRect(rects[i].Left, h.ContentTop(), rects[i].Right, h.ContentBottom(), shadow)
		})
	}

	px := make([]viewport.Rect, len(bars))
	for i, b := range bars {
		px[i] = t.RectValueToPixel(b.rect)
	}
	border := strokePaint(set.Bar.BorderColor, set.Bar.BorderWidth, nil)
	scan(h, len(px), func(i int) (float64, float64) {
		return px[i].Left, px[i].Right
	}, func(i int) {
		rc := px[i]
		if !h.IsInBoundsTop(rc.Bottom) || !h.IsInBoundsBottom(rc.Top) {
			return
		}
		s.DrawRect(rc.Left, rc.Top, rc.Right, rc.Bottom, fillPaint(set.Color(bars[i].entry)))
		if set.Bar.BorderWidth > 0 {
			s.DrawRect(rc.Left, rc.Top, rc.Right, rc.Bottom, border)
		}
	})
}

func (r *BarRenderer) DrawValues(s Surface) {
	d := r.data()
	if d == nil || !r.chart.ValuesAllowed() {
		return
	}
	h := r.chart.Handler()
	alpha := valueAlpha(r.chart)
	for i, set := range d.DataSets() {
		if !shouldDrawValues(set) || i >= len(r.bars) {
			continue
		}
		_, textHeight := s.MeasureText("8", Paint{TextSize: set.ValueTextSize})
		posOffset, negOffset := -valueOffset, textHeight+valueOffset
		if !r.ValuesAboveBar {
			posOffset, negOffset = textHeight+valueOffset, -valueOffset
		}
		if r.chart.YAxis(set.Axis).Inverted {
			posOffset, negOffset = -posOffset-textHeight, -negOffset-textHeight
		}
		t := r.chart.Transformer(set.Axis)
		f := set.ValueFormatter()
		bars := r.bars[i]
		xs := make([]float64, len(bars))
		for j, b := range bars {
			xs[j], _ = t.PixelForValues((b.rect.Left+b.rect.Right)/2, 0)
		}
		scan(h, len(bars), func(j int) (float64, float64) {
			return xs[j], xs[j]
		}, func(j int) {
			b := bars[j]
			e := set.Entry(b.entry)
			_, top := t.PixelForValues(0, b.top)
			y := top + posOffset
			if b.value < 0 || (b.value == 0 && e.IsStacked() && e.PositiveSum() == 0) {
				y = top + negOffset
			}
			if !h.IsInBoundsY(y) {
				return
			}
			if set.DrawValues {
				c := fade(set.ValueTextColor(b.entry), alpha)
				drawValue(s, f.FormatValue(b.value, e), xs[j], y, c, set.ValueTextSize)
			}
			drawIcon(s, set, e, xs[j], y)
		})
	}
}

func (r *BarRenderer) DrawExtras(Surface) {}

func (r *BarRenderer) DrawHighlighted(s Surface, hs []chart.Highlight) {
	d := r.data()
	if d == nil {
		return
	}
	half := d.BarWidth / 2
	for i := range hs {
		high := hs[i]
		set, e := highlightedEntry(d, high, r.chart.PhaseX())
		if e == nil {
			continue
		}
		y1, y2 := e.Y, 0.0
		if high.IsStacked() && e.IsStacked() {
			if r.HighlightFullBar {
				y1, y2 = e.PositiveSum(), -e.NegativeSum()
			} else if ranges := e.StackRanges(); high.StackIndex < len(ranges) {
				y1, y2 = ranges[high.StackIndex][0], ranges[high.StackIndex][1]
			}
		}
		rc := r.chart.Transformer(set.Axis).RectToPixelPhase(viewport.Rect{
			Left:   e.X - half,
			Top:    max(y1, y2),
			Right:  e.X + half,
			Bottom: min(y1, y2),
		}, r.chart.PhaseY())
		hs[i].DrawX, hs[i].DrawY = rc.CenterX(), rc.Top
		c := chart.WithAlpha(set.HighlightColor, set.Bar.HighlightAlpha)
		s.DrawRect(rc.Left, rc.Top, rc.Right, rc.Bottom, fillPaint(c))
	}
}
