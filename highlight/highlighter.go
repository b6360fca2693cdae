// Package highlight resolves pixel positions to the chart entries under
// them.
package highlight

import (
	"math"

	"git.sr.ht/~whereswaldon/chartkit/chart"
	"git.sr.ht/~whereswaldon/chartkit/viewport"
)

// DefaultMaxDistance is the default largest pixel distance between a touch
// and the entry it selects.
const DefaultMaxDistance = 500

// Highlighter finds the highlight for a pixel position, or nil.
type Highlighter interface {
	Highlight(x, y float64) *chart.Highlight
}

// Provider is the part of a cartesian chart the highlighters read.
type Provider interface {
	Data() *chart.Data
	Transformer(axis chart.AxisDependency) *viewport.Transformer
	MaxHighlightDistance() float64
}

// ChartHighlighter selects the entry nearest to a touch among the visible
// data sets of line, scatter, candle and bubble charts.
type ChartHighlighter struct {
	provider Provider
	data     func() *chart.Data
	distance func(x1, y1, x2, y2 float64) float64
}

// NewChartHighlighter returns a highlighter over the data of p.
func NewChartHighlighter(p Provider) *ChartHighlighter {
	return &ChartHighlighter{
		provider: p,
		data:     p.Data,
		distance: pixelDistance,
	}
}

func pixelDistance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x1-x2, y1-y2)
}

// Highlight returns the highlight nearest to the pixel position.
func (h *ChartHighlighter) Highlight(x, y float64) *chart.Highlight {
	xVal := h.valueX(x, y)
	return h.closest(h.HighlightsAtX(xVal), x, y)
}

func (h *ChartHighlighter) valueX(x, y float64) float64 {
	xVal, _ := h.provider.Transformer(chart.AxisLeft).ValuesByTouchPoint(x, y)
	return xVal
}

// closest picks among candidates. A single candidate is returned as is;
// otherwise the axis with the candidate vertically nearest to y is chosen and
// the candidate nearest in pixels within the maximum distance wins.
func (h *ChartHighlighter) closest(candidates []chart.Highlight, x, y float64) *chart.Highlight {
	switch len(candidates) {
	case 0:
		return nil
	case 1:
		return &candidates[0]
	}
	axis := chart.AxisRight
	if minimumDistance(candidates, y, chart.AxisLeft) < minimumDistance(candidates, y, chart.AxisRight) {
		axis = chart.AxisLeft
	}
	var best *chart.Highlight
	dist := h.provider.MaxHighlightDistance()
	for i := range candidates {
		c := &candidates[i]
		if c.Axis != axis {
			continue
		}
		if d := h.distance(x, y, c.XPx, c.YPx); d < dist {
			best, dist = c, d
		}
	}
	return best
}

func minimumDistance(candidates []chart.Highlight, y float64, axis chart.AxisDependency) float64 {
	dist := math.Inf(1)
	for _, c := range candidates {
		if c.Axis == axis {
			dist = min(dist, math.Abs(c.YPx-y))
		}
	}
	return dist
}

// HighlightsAtX returns one candidate per entry at the x value closest to
// xVal, for every visible and highlightable data set.
func (h *ChartHighlighter) HighlightsAtX(xVal float64) []chart.Highlight {
	d := h.data()
	if d == nil {
		return nil
	}
	var out []chart.Highlight
	for i, s := range d.DataSets() {
		if !s.HighlightEnabled || !s.Visible {
			continue
		}
		out = h.appendHighlights(out, s, i, xVal)
	}
	return out
}

func (h *ChartHighlighter) appendHighlights(out []chart.Highlight, s *chart.DataSet, setIndex int, xVal float64) []chart.Highlight {
	entries := s.EntriesForX(xVal)
	if len(entries) == 0 {
		if e := s.EntryForX(xVal, math.NaN(), chart.RoundClosest); e != nil {
			entries = s.EntriesForX(e.X)
		}
	}
	t := h.provider.Transformer(s.Axis)
	for _, e := range entries {
		px, py := t.PixelForValues(e.X, e.Y)
		hl := chart.NewHighlight(e.X, e.Y, setIndex)
		hl.XPx, hl.YPx = px, py
		hl.Axis = s.Axis
		hl.Entry = e
		out = append(out, hl)
	}
	return out
}
