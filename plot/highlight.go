package plot

import (
	"math"

	"git.sr.ht/~whereswaldon/chartkit/chart"
)

// HighlightForPixel returns the highlight for the entry at pixel x, y, or
// nil when there is none close enough.
func (c *Chart) HighlightForPixel(x, y float64) *chart.Highlight {
	if c.highlighter == nil {
		chart.Logger().Error("can't select by touch, no data set")
		return nil
	}
	return c.highlighter.Highlight(x, y)
}

// entryFor resolves h against the chart data.
func (c *Chart) entryFor(h chart.Highlight) *chart.Entry {
	if c.combined != nil {
		return c.combined.EntryForHighlight(h)
	}
	if c.data == nil {
		return nil
	}
	return c.data.EntryForHighlight(h)
}

// HighlightValue selects h, or clears the selection when h is nil or does
// not resolve to an entry.
func (c *Chart) HighlightValue(h *chart.Highlight) {
	if h == nil || c.entryFor(*h) == nil {
		c.highlighted = nil
	} else {
		c.highlighted = []chart.Highlight{*h}
	}
	c.Invalidate()
}

// HighlightX selects the entry at x in the data set at dataSetIndex. An out
// of range index clears the selection.
func (c *Chart) HighlightX(x float64, dataSetIndex int) {
	d := c.Data()
	if d == nil || dataSetIndex < 0 || dataSetIndex >= d.DataSetCount() {
		c.HighlightValue(nil)
		return
	}
	h := chart.NewHighlight(x, math.NaN(), dataSetIndex)
	c.HighlightValue(&h)
}

// HighlightValues replaces the selection with hs. Nil clears it.
func (c *Chart) HighlightValues(hs []chart.Highlight) {
	c.highlighted = append(c.highlighted[:0], hs...)
	if len(c.highlighted) == 0 {
		c.highlighted = nil
	}
	c.Invalidate()
}

// Highlighted returns the current selection. The draw positions of its
// highlights are filled in by the last Draw.
func (c *Chart) Highlighted() []chart.Highlight { return c.highlighted }

// ToggleHighlightAt selects the entry under pixel x, y as a tap does:
// tapping the selected entry again, or empty space, clears the selection.
// It returns the new selection.
func (c *Chart) ToggleHighlightAt(x, y float64) *chart.Highlight {
	if !c.HighlightEnabled {
		return nil
	}
	h := c.HighlightForPixel(x, y)
	if h == nil || (c.lastTapped != nil && h.Equal(*c.lastTapped)) {
		c.lastTapped = nil
		c.HighlightValue(nil)
		return nil
	}
	c.lastTapped = h
	c.HighlightValue(h)
	return h
}
