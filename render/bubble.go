package render

import (
	"math"

	"git.sr.ht/~whereswaldon/chartkit/chart"
	"git.sr.ht/~whereswaldon/chartkit/viewport"
)

// BubbleRenderer draws bubble data sets as circles sized by entry size.
type BubbleRenderer struct {
	chart  Chart
	data   func() *chart.Data
	bounds XBounds
	buf    []float64
}

func NewBubbleRenderer(c Chart, data func() *chart.Data) *BubbleRenderer {
	return &BubbleRenderer{chart: c, data: data}
}

// referenceSize is the diameter of a bubble of the largest size: the pixel
// width of one x unit, capped by the content height.
func referenceSize(h *viewport.Handler, t *viewport.Transformer) float64 {
	pts := [4]float64{0, 0, 1, 0}
	t.PointValuesToPixel(pts[:])
	return min(h.ContentHeight(), math.Abs(pts[2]-pts[0]))
}

// ShapeSize returns the bubble diameter for an entry size. Normalized sizes
// scale the area, not the diameter, with size.
func ShapeSize(size, maxSize, reference float64, normalize bool) float64 {
	factor := size
	if normalize {
		factor = 1
		if maxSize != 0 {
			factor = math.Sqrt(size / maxSize)
		}
	}
	return reference * factor
}

// visibleBubble reports whether a bubble of radius half centered at height y
// reaches into the content.
func visibleBubble(h *viewport.Handler, y, half float64) bool {
	return h.IsInBoundsTop(y+half) && h.IsInBoundsBottom(y-half)
}

func (r *BubbleRenderer) DrawData(s Surface) {
	d := r.data()
	if d == nil {
		return
	}
	h := r.chart.Handler()
	for _, set := range d.DataSets() {
		if !set.Visible || set.EntryCount() < 1 {
			continue
		}
		t := r.chart.Transformer(set.Axis)
		ref := referenceSize(h, t)
		r.bounds.Set(r.chart, set)
		r.buf = t.GenerateTransformedValuesBubble(r.buf, set, r.chart.PhaseY(), r.bounds.Min, r.bounds.Min+r.bounds.Range)
		buf := r.buf
		half := func(j int) float64 {
			return ShapeSize(set.Entry(r.bounds.Min+j).Size, set.MaxSize(), ref, set.Bubble.Normalize) / 2
		}
		scan(h, len(buf)/2, func(j int) (float64, float64) {
			hs := half(j)
			return buf[2*j] - hs, buf[2*j] + hs
		}, func(j int) {
			x, y := buf[2*j], buf[2*j+1]
			hs := half(j)
			if !visibleBubble(h, y, hs) {
				return
			}
			s.DrawCircle(x, y, hs, fillPaint(set.Color(r.bounds.Min+j)))
		})
	}
}

func (r *BubbleRenderer) DrawValues(s Surface) {
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
		_, lineHeight := s.MeasureText("1", Paint{TextSize: set.ValueTextSize})
		r.bounds.Set(r.chart, set)
		r.buf = r.chart.Transformer(set.Axis).GenerateTransformedValuesBubble(r.buf, set, r.chart.PhaseY(), r.bounds.Min, r.bounds.Max)
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
				drawValue(s, f.FormatValue(e.Size, e), x, y+lineHeight/2, c, set.ValueTextSize)
			}
			drawIcon(s, set, e, x, y)
		})
	}
}

func (r *BubbleRenderer) DrawExtras(Surface) {}

// DrawHighlighted outlines highlighted bubbles in a darkened series color.
func (r *BubbleRenderer) DrawHighlighted(s Surface, hs []chart.Highlight) {
	d := r.data()
	if d == nil {
		return
	}
	h := r.chart.Handler()
	for i := range hs {
		set, e := highlightedEntry(d, hs[i], r.chart.PhaseX())
		if e == nil || e.Y != hs[i].Y {
			continue
		}
		t := r.chart.Transformer(set.Axis)
		x, y := t.PixelForValues(e.X, e.Y*r.chart.PhaseY())
		half := ShapeSize(e.Size, set.MaxSize(), referenceSize(h, t), set.Bubble.Normalize) / 2
		if !visibleBubble(h, y, half) || !h.IsInBoundsLeft(x+half) || !h.IsInBoundsRight(x-half) {
			continue
		}
		c := chart.Darken(set.Color(set.IndexOf(e)), chart.HighlightDarkening)
		s.DrawCircle(x, y, half, strokePaint(c, set.Bubble.HighlightCircleWidth, nil))
		hs[i].DrawX, hs[i].DrawY = x, y
	}
}
