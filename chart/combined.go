package chart

import "math"

// CombinedData joins line, bar, scatter, candle and bubble data on shared
// axes. The embedded Data is a flattened view over the sets of every part,
// in that order, used for bounds and rendering order. Operations addressing
// a set only by its flattened index are not supported; address the parts
// directly instead.
type CombinedData struct {
	Data

	parts [KindBubble + 1]*Data
}

// NewCombinedData returns empty combined data.
func NewCombinedData() *CombinedData {
	c := &CombinedData{}
	c.BarWidth = 0.85
	c.CalcMinMax()
	return c
}

// SetData installs d as the part for kind, replacing any previous one. A nil
// d removes the part. Pie and radar data cannot be combined.
func (c *CombinedData) SetData(kind Kind, d *Data) bool {
	if !kind.combinable() {
		Logger().Warn("data kind cannot be combined", "kind", kind)
		return false
	}
	c.parts[kind] = d
	c.NotifyDataChanged()
	return true
}

func (c *CombinedData) LineData() *Data    { return c.parts[KindLine] }
func (c *CombinedData) BarData() *Data     { return c.parts[KindBar] }
func (c *CombinedData) ScatterData() *Data { return c.parts[KindScatter] }
func (c *CombinedData) CandleData() *Data  { return c.parts[KindCandle] }
func (c *CombinedData) BubbleData() *Data  { return c.parts[KindBubble] }

// DataByKind returns the part for kind, or nil.
func (c *CombinedData) DataByKind(kind Kind) *Data {
	if !kind.combinable() {
		return nil
	}
	return c.parts[kind]
}

// AllData returns the present parts in drawing order. A highlight's
// DataIndex indexes this slice.
func (c *CombinedData) AllData() []*Data {
	var out []*Data
	for _, d := range c.parts {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}

// DataByIndex returns the part at index i of AllData, or nil.
func (c *CombinedData) DataByIndex(i int) *Data {
	all := c.AllData()
	if i < 0 || i >= len(all) {
		return nil
	}
	return all[i]
}

// DataIndex returns the index of d in AllData, or -1.
func (c *CombinedData) DataIndex(d *Data) int {
	for i, p := range c.AllData() {
		if p == d {
			return i
		}
	}
	return -1
}

// NotifyDataChanged recomputes every part and the combined bounds.
func (c *CombinedData) NotifyDataChanged() {
	for _, d := range c.AllData() {
		d.NotifyDataChanged()
	}
	c.CalcMinMax()
}

// CalcMinMax rebuilds the flattened set list and folds in the bounds of
// every part.
func (c *CombinedData) CalcMinMax() {
	c.Data.resetBounds()
	c.sets = c.sets[:0]
	for _, d := range c.AllData() {
		d.CalcMinMax()
		c.sets = append(c.sets, d.sets...)
		extend(&c.xMin, &c.xMax, d.xMin)
		extend(&c.xMin, &c.xMax, d.xMax)
		extend(&c.yMin, &c.yMax, d.yMin)
		extend(&c.yMin, &c.yMax, d.yMax)
		extend(&c.leftMin, &c.leftMax, d.leftMin)
		extend(&c.leftMin, &c.leftMax, d.leftMax)
		extend(&c.rightMin, &c.rightMax, d.rightMin)
		extend(&c.rightMin, &c.rightMax, d.rightMax)
	}
	if b := c.BarData(); b != nil {
		c.BarWidth = b.BarWidth
	}
}

// CalcMinMaxY narrows the y bounds of every part to the x window.
func (c *CombinedData) CalcMinMaxY(fromX, toX float64) {
	for _, d := range c.AllData() {
		for _, s := range d.sets {
			s.CalcMinMaxY(fromX, toX)
		}
	}
	c.CalcMinMax()
}

// EntryForHighlight resolves h through the part at h.DataIndex. Among the
// entries at h.X the one with y equal to h.Y is returned; a NaN h.Y matches
// the first.
func (c *CombinedData) EntryForHighlight(h Highlight) *Entry {
	if h.Entry != nil {
		return h.Entry
	}
	s := c.DataSetForHighlight(h)
	if s == nil {
		return nil
	}
	for _, e := range s.EntriesForX(h.X) {
		if e.Y == h.Y || math.IsNaN(h.Y) {
			return e
		}
	}
	return nil
}

// DataSetForHighlight returns the set h points at, or nil.
func (c *CombinedData) DataSetForHighlight(h Highlight) *DataSet {
	d := c.DataByIndex(h.DataIndex)
	if d == nil {
		return nil
	}
	return d.DataSet(h.DataSetIndex)
}

// AddDataSet is not supported; add the set to one of the parts.
func (c *CombinedData) AddDataSet(s *DataSet) {
	Logger().Warn("AddDataSet is not supported for combined data")
}

// RemoveDataSet removes s from whichever part holds it.
func (c *CombinedData) RemoveDataSet(s *DataSet) bool {
	for _, d := range c.AllData() {
		if d.RemoveDataSet(s) {
			c.CalcMinMax()
			return true
		}
	}
	return false
}

// RemoveDataSetAt is not supported for combined data.
func (c *CombinedData) RemoveDataSetAt(i int) bool {
	Logger().Warn("RemoveDataSetAt is not supported for combined data", "index", i)
	return false
}

// AddEntry is not supported for combined data.
func (c *CombinedData) AddEntry(e *Entry, set int) bool {
	Logger().Warn("AddEntry is not supported for combined data", "set", set)
	return false
}

// RemoveEntry is not supported for combined data.
func (c *CombinedData) RemoveEntry(e *Entry, set int) bool {
	Logger().Warn("RemoveEntry is not supported for combined data", "set", set)
	return false
}

// RemoveEntryForX is not supported for combined data.
func (c *CombinedData) RemoveEntryForX(x float64, set int) bool {
	Logger().Warn("RemoveEntryForX is not supported for combined data", "set", set)
	return false
}

// ClearValues empties every set of every part.
func (c *CombinedData) ClearValues() {
	for _, d := range c.AllData() {
		d.ClearValues()
	}
	c.CalcMinMax()
}

// GroupBars groups the bar part.
func (c *CombinedData) GroupBars(fromX, groupSpace, barSpace float64) bool {
	b := c.BarData()
	if b == nil {
		Logger().Warn("no bar data to group")
		return false
	}
	if !b.GroupBars(fromX, groupSpace, barSpace) {
		return false
	}
	c.CalcMinMax()
	return true
}
