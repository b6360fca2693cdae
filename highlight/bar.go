package highlight

import (
	"math"

	"git.sr.ht/~whereswaldon/chartkit/chart"
)

// BarHighlighter selects bars by horizontal distance alone and resolves the
// stack value under the touch of stacked bars.
type BarHighlighter struct {
	ChartHighlighter
}

// NewBarHighlighter returns a highlighter over the bar data returned by
// data, which for a bar chart is the chart data itself.
func NewBarHighlighter(p Provider, data func() *chart.Data) *BarHighlighter {
	return &BarHighlighter{
		ChartHighlighter: ChartHighlighter{
			provider: p,
			data:     data,
			distance: func(x1, _, x2, _ float64) float64 { return math.Abs(x1 - x2) },
		},
	}
}

func (h *BarHighlighter) Highlight(x, y float64) *chart.Highlight {
	high := h.ChartHighlighter.Highlight(x, y)
	if high == nil {
		return nil
	}
	d := h.data()
	s := d.DataSet(high.DataSetIndex)
	if s == nil || !s.IsStacked() {
		return high
	}
	xVal, yVal := h.provider.Transformer(s.Axis).ValuesByTouchPoint(x, y)
	return h.stackedHighlight(high, s, xVal, yVal)
}

func (h *BarHighlighter) stackedHighlight(high *chart.Highlight, s *chart.DataSet, xVal, yVal float64) *chart.Highlight {
	e := s.EntryForX(xVal, yVal, chart.RoundClosest)
	if e == nil {
		return nil
	}
	if !e.IsStacked() {
		return high
	}
	ranges := e.StackRanges()
	idx := closestStackIndex(ranges, yVal)
	px, py := h.provider.Transformer(s.Axis).PixelForValues(high.X, ranges[idx][1])
	out := chart.NewHighlight(e.X, e.Y, high.DataSetIndex)
	out.XPx, out.YPx = px, py
	out.StackIndex = idx
	out.Axis = high.Axis
	out.Entry = e
	return &out
}

// closestStackIndex returns the stack range holding value. Values beyond the
// ranges select the last range when above it and the first otherwise.
func closestStackIndex(ranges [][2]float64, value float64) int {
	if len(ranges) == 0 {
		return 0
	}
	for i, r := range ranges {
		lo, hi := min(r[0], r[1]), max(r[0], r[1])
		if value > lo && value <= hi {
			return i
		}
	}
	last := len(ranges) - 1
	if value > ranges[last][1] {
		return last
	}
	return 0
}
