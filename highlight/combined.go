package highlight

import "git.sr.ht/~whereswaldon/chartkit/chart"

// CombinedProvider is a Provider whose data is combined.
type CombinedProvider interface {
	Provider
	CombinedData() *chart.CombinedData
}

// CombinedHighlighter searches every part of combined data. Bars are
// resolved with a BarHighlighter so stacked values are found as in a bar
// chart. Resulting highlights carry the part index in DataIndex.
type CombinedHighlighter struct {
	ChartHighlighter
	combined func() *chart.CombinedData
	bar      *BarHighlighter
}

func NewCombinedHighlighter(p CombinedProvider) *CombinedHighlighter {
	h := &CombinedHighlighter{
		ChartHighlighter: *NewChartHighlighter(p),
		combined:         p.CombinedData,
	}
	h.bar = NewBarHighlighter(p, func() *chart.Data {
		if c := h.combined(); c != nil {
			return c.BarData()
		}
		return nil
	})
	return h
}

func (h *CombinedHighlighter) Highlight(x, y float64) *chart.Highlight {
	xVal := h.valueX(x, y)
	return h.closest(h.highlightsAt(xVal, x, y), x, y)
}

func (h *CombinedHighlighter) highlightsAt(xVal, x, y float64) []chart.Highlight {
	c := h.combined()
	if c == nil {
		return nil
	}
	var out []chart.Highlight
	for i, d := range c.AllData() {
		if d == c.BarData() {
			if high := h.bar.Highlight(x, y); high != nil {
				high.DataIndex = i
				out = append(out, *high)
			}
			continue
		}
		for j, s := range d.DataSets() {
			if !s.HighlightEnabled || !s.Visible {
				continue
			}
			start := len(out)
			out = h.appendHighlights(out, s, j, xVal)
			for k := start; k < len(out); k++ {
				out[k].DataIndex = i
			}
		}
	}
	return out
}
