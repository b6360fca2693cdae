package chart

import (
	"image/color"
	"math"
	"slices"
	"strings"
)

// Data aggregates the data sets of one chart. Its bounds cover visible data
// sets only and are kept current by the mutating methods; after changing
// entries or set properties directly, call NotifyDataChanged.
type Data struct {
	// BarWidth is the width of a bar in x units.
	BarWidth float64

	sets               []*DataSet
	xMin, xMax         float64
	yMin, yMax         float64
	leftMin, leftMax   float64
	rightMin, rightMax float64
}

// NewData returns data holding sets, with its bounds computed.
func NewData(sets ...*DataSet) *Data {
	d := &Data{
		BarWidth: 0.85,
		sets:     slices.DeleteFunc(slices.Clone(sets), func(s *DataSet) bool { return s == nil }),
	}
	d.CalcMinMax()
	return d
}

// Kind returns the kind of the first data set.
func (d *Data) Kind() (Kind, bool) {
	if len(d.sets) == 0 {
		return 0, false
	}
	return d.sets[0].Kind(), true
}

// NotifyDataChanged recomputes every bound after external mutation.
func (d *Data) NotifyDataChanged() {
	for _, s := range d.sets {
		s.CalcMinMax()
	}
	d.CalcMinMax()
}

func (d *Data) resetBounds() {
	inf, negInf := math.Inf(1), math.Inf(-1)
	d.xMin, d.xMax = inf, negInf
	d.yMin, d.yMax = inf, negInf
	d.leftMin, d.leftMax = inf, negInf
	d.rightMin, d.rightMax = inf, negInf
}

// CalcMinMax recomputes the aggregate bounds from the current set bounds.
// Each axis is seeded from its first visible set and then folded over the
// remaining visible sets depending on that axis.
func (d *Data) CalcMinMax() {
	d.resetBounds()
	for _, s := range d.sets {
		if s.Visible {
			d.fold(s)
		}
	}
	Logger().Debug("chart bounds recalculated",
		"sets", len(d.sets),
		"xMin", d.xMin, "xMax", d.xMax,
		"yMin", d.yMin, "yMax", d.yMax)
}

// fold includes one set's bounds into the aggregate without rescanning the
// other sets.
func (d *Data) fold(s *DataSet) {
	extend(&d.xMin, &d.xMax, s.XMin())
	extend(&d.xMin, &d.xMax, s.XMax())
	extend(&d.yMin, &d.yMax, s.YMin())
	extend(&d.yMin, &d.yMax, s.YMax())
	if s.Axis == AxisLeft {
		extend(&d.leftMin, &d.leftMax, s.YMin())
		extend(&d.leftMin, &d.leftMax, s.YMax())
	} else {
		extend(&d.rightMin, &d.rightMax, s.YMin())
		extend(&d.rightMin, &d.rightMax, s.YMax())
	}
}

// CalcMinMaxY narrows every set's y extrema to the x window and recomputes
// the aggregate. Used to auto scale the value axes to the visible range.
func (d *Data) CalcMinMaxY(fromX, toX float64) {
	for _, s := range d.sets {
		s.CalcMinMaxY(fromX, toX)
	}
	d.CalcMinMax()
}

func (d *Data) XMin() float64 { return d.xMin }
func (d *Data) XMax() float64 { return d.xMax }

// YMin returns the aggregate minimum y over both axes.
func (d *Data) YMin() float64 { return d.yMin }

// YMax returns the aggregate maximum y over both axes.
func (d *Data) YMax() float64 { return d.yMax }

// AxisYMin returns the minimum y of sets depending on axis. An axis without
// data borrows the other axis' value, and 0 is returned when neither has
// data.
func (d *Data) AxisYMin(axis AxisDependency) float64 {
	own, other := d.leftMin, d.rightMin
	if axis == AxisRight {
		own, other = other, own
	}
	return firstFinite(own, other)
}

// AxisYMax is the maximum counterpart of AxisYMin.
func (d *Data) AxisYMax(axis AxisDependency) float64 {
	own, other := d.leftMax, d.rightMax
	if axis == AxisRight {
		own, other = other, own
	}
	return firstFinite(own, other)
}

func firstFinite(vals ...float64) float64 {
	for _, v := range vals {
		if isFinite(v) {
			return v
		}
	}
	return 0
}

func (d *Data) DataSetCount() int { return len(d.sets) }

// DataSets returns the backing slice, which must not be modified.
func (d *Data) DataSets() []*DataSet { return d.sets }

// DataSet returns the set at index i, or nil.
func (d *Data) DataSet(i int) *DataSet {
	if i < 0 || i >= len(d.sets) {
		return nil
	}
	return d.sets[i]
}

// DataSetByLabel returns the first set with the label, or nil.
func (d *Data) DataSetByLabel(label string, ignoreCase bool) *DataSet {
	for _, s := range d.sets {
		if s.Label == label || (ignoreCase && strings.EqualFold(s.Label, label)) {
			return s
		}
	}
	return nil
}

// IndexOfDataSet returns the index of s, or -1.
func (d *Data) IndexOfDataSet(s *DataSet) int {
	return slices.Index(d.sets, s)
}

// DataSetForEntry returns the set holding e, or nil.
func (d *Data) DataSetForEntry(e *Entry) *DataSet {
	if e == nil {
		return nil
	}
	for _, s := range d.sets {
		if s.Contains(e) {
			return s
		}
	}
	return nil
}

// AddDataSet appends s and folds its bounds into the aggregate when it is
// visible.
func (d *Data) AddDataSet(s *DataSet) {
	if s == nil {
		return
	}
	if s.Visible {
		d.fold(s)
	}
	d.sets = append(d.sets, s)
}

// RemoveDataSet removes s and recalculates, reporting whether it was
// present.
func (d *Data) RemoveDataSet(s *DataSet) bool {
	return d.RemoveDataSetAt(d.IndexOfDataSet(s))
}

// RemoveDataSetAt removes the set at index i and recalculates.
func (d *Data) RemoveDataSetAt(i int) bool {
	if i < 0 || i >= len(d.sets) {
		return false
	}
	d.sets = slices.Delete(d.sets, i, i+1)
	d.CalcMinMax()
	return true
}

// AddEntry appends e to the set at index set.
func (d *Data) AddEntry(e *Entry, set int) bool {
	s := d.DataSet(set)
	if s == nil {
		Logger().Error("cannot add entry, data set index out of range", "index", set, "count", len(d.sets))
		return false
	}
	if !s.AddEntry(e) {
		return false
	}
	if s.Visible {
		d.fold(s)
	}
	return true
}

// RemoveEntry removes e from the set at index set.
func (d *Data) RemoveEntry(e *Entry, set int) bool {
	s := d.DataSet(set)
	if s == nil {
		return false
	}
	if !s.RemoveEntry(e) {
		return false
	}
	d.CalcMinMax()
	return true
}

// RemoveEntryForX removes the entry closest to x from the set at index set.
func (d *Data) RemoveEntryForX(x float64, set int) bool {
	s := d.DataSet(set)
	if s == nil {
		return false
	}
	return d.RemoveEntry(s.EntryForX(x, math.NaN(), RoundClosest), set)
}

// EntryForHighlight resolves h to an entry. A highlight already carrying an
// entry is returned as is.
func (d *Data) EntryForHighlight(h Highlight) *Entry {
	if h.Entry != nil {
		return h.Entry
	}
	s := d.DataSet(h.DataSetIndex)
	if s == nil {
		return nil
	}
	return s.EntryForX(h.X, h.Y, RoundClosest)
}

// EntryCount returns the number of entries over all sets.
func (d *Data) EntryCount() int {
	var n int
	for _, s := range d.sets {
		n += s.EntryCount()
	}
	return n
}

// MaxEntryCountSet returns the set with the most entries, or nil.
func (d *Data) MaxEntryCountSet() *DataSet {
	var best *DataSet
	for _, s := range d.sets {
		if best == nil || s.EntryCount() > best.EntryCount() {
			best = s
		}
	}
	return best
}

// Labels returns the label of every set.
func (d *Data) Labels() []string {
	labels := make([]string, len(d.sets))
	for i, s := range d.sets {
		labels[i] = s.Label
	}
	return labels
}

// Colors returns the colors of every set, in order.
func (d *Data) Colors() []color.NRGBA {
	var out []color.NRGBA
	for _, s := range d.sets {
		out = append(out, s.Colors...)
	}
	return out
}

// Contains reports whether s belongs to the data.
func (d *Data) Contains(s *DataSet) bool {
	return d.IndexOfDataSet(s) >= 0
}

func (d *Data) SetValueFormatter(f ValueFormatter) {
	for _, s := range d.sets {
		s.Formatter = f
	}
}

func (d *Data) SetValueTextColor(c color.NRGBA) {
	for _, s := range d.sets {
		s.ValueColors = []color.NRGBA{c}
	}
}

func (d *Data) SetValueTextSize(size float64) {
	for _, s := range d.sets {
		s.ValueTextSize = size
	}
}

func (d *Data) SetDrawValues(enabled bool) {
	for _, s := range d.sets {
		s.DrawValues = enabled
	}
}

func (d *Data) SetHighlightEnabled(enabled bool) {
	for _, s := range d.sets {
		s.HighlightEnabled = enabled
	}
}

// HighlightEnabled reports whether every set allows highlighting.
func (d *Data) HighlightEnabled() bool {
	for _, s := range d.sets {
		if !s.HighlightEnabled {
			return false
		}
	}
	return true
}

// ClearValues removes every entry of every set.
func (d *Data) ClearValues() {
	for _, s := range d.sets {
		s.Clear()
	}
	d.CalcMinMax()
}

// YValueSum returns the sum of every entry's y, the whole of a pie.
func (d *Data) YValueSum() float64 {
	var sum float64
	for _, s := range d.sets {
		for _, e := range s.entries {
			sum += e.Y
		}
	}
	return sum
}

// GroupWidth returns the x extent of one bar group.
func (d *Data) GroupWidth(groupSpace, barSpace float64) float64 {
	return float64(len(d.sets))*(d.BarWidth+barSpace) + groupSpace
}

// GroupBars lays the bars of every set side by side, starting at fromX,
// rewriting entry x values. It needs at least two sets.
func (d *Data) GroupBars(fromX, groupSpace, barSpace float64) bool {
	if len(d.sets) < 2 {
		Logger().Warn("grouping bars needs at least two data sets", "count", len(d.sets))
		return false
	}
	maxCount := d.MaxEntryCountSet().EntryCount()
	groupSpaceHalf := groupSpace / 2
	barSpaceHalf := barSpace / 2
	barWidthHalf := d.BarWidth / 2
	interval := d.GroupWidth(groupSpace, barSpace)
	for i := 0; i < maxCount; i++ {
		start := fromX
		fromX += groupSpaceHalf
		for _, s := range d.sets {
			fromX += barSpaceHalf + barWidthHalf
			if e := s.Entry(i); e != nil {
				e.X = fromX
			}
			fromX += barWidthHalf + barSpaceHalf
		}
		fromX += groupSpaceHalf
		// Correct accumulated rounding errors.
		fromX += interval - (fromX - start)
	}
	d.NotifyDataChanged()
	return true
}
