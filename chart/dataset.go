package chart

import (
	"image/color"
	"math"
	"slices"
)

// DataSet is an x-ascending series of entries of one chart kind. Kind
// specific presentation lives in the option payload matching the kind;
// the payloads of other kinds are ignored.
//
// After changing Visible or Axis, call NotifyDataChanged on the owning Data
// so its aggregate bounds follow.
type DataSet struct {
	Label            string
	Visible          bool
	Axis             AxisDependency
	HighlightEnabled bool
	DrawValues       bool
	DrawIcons        bool
	Colors           []color.NRGBA
	ValueColors      []color.NRGBA
	ValueTextSize    float64
	Formatter        ValueFormatter
	HighlightColor   color.NRGBA
	IconsOffsetX     float64
	IconsOffsetY     float64
	// LegendForm is the form of the set's legend entries.
	LegendForm       LegendForm

	Line    LineOptions
	Bar     BarOptions
	Scatter ScatterOptions
	Candle  CandleOptions
	Bubble  BubbleOptions
	Pie     PieOptions
	Radar   RadarOptions

	kind      Kind
	entries   []*Entry
	xMin      float64
	xMax      float64
	yMin      float64
	yMax      float64
	maxSize   float64
	stackSize int
}

// NewDataSet creates a data set of the given kind. The entries are sorted
// by x. Pie and radar entries are positioned by their index instead.
func NewDataSet(kind Kind, label string, entries []*Entry) *DataSet {
	d := &DataSet{
		kind:    kind,
		Label:   label,
		entries: slices.Clone(entries),
	}
	d.applyDefaults()
	d.entries = slices.DeleteFunc(d.entries, func(e *Entry) bool { return e == nil })
	if kind == KindPie || kind == KindRadar {
		for i, e := range d.entries {
			e.X = float64(i)
		}
	} else {
		d.sortEntries()
	}
	d.CalcMinMax()
	return d
}

func (d *DataSet) Kind() Kind {
	return d.kind
}

func (d *DataSet) sortEntries() {
	slices.SortStableFunc(d.entries, func(a, b *Entry) int {
		switch {
		case a.X < b.X:
			return -1
		case a.X > b.X:
			return 1
		}
		return 0
	})
}

// XMin returns the smallest x, or +Inf for an empty set.
func (d *DataSet) XMin() float64 { return d.xMin }

// XMax returns the largest x, or -Inf for an empty set.
func (d *DataSet) XMax() float64 { return d.xMax }

// YMin returns the smallest y, or +Inf for an empty set.
func (d *DataSet) YMin() float64 { return d.yMin }

// YMax returns the largest y, or -Inf for an empty set.
func (d *DataSet) YMax() float64 { return d.yMax }

// MaxSize returns the largest bubble size.
func (d *DataSet) MaxSize() float64 { return d.maxSize }

// StackSize returns the largest number of stack values of any entry, at
// least 1.
func (d *DataSet) StackSize() int { return max(d.stackSize, 1) }

// IsStacked reports whether any entry holds stack values.
func (d *DataSet) IsStacked() bool { return d.stackSize > 1 }

func (d *DataSet) EntryCount() int { return len(d.entries) }

// Entry returns the entry at index i, or nil when i is out of range.
func (d *DataSet) Entry(i int) *Entry {
	if i < 0 || i >= len(d.entries) {
		return nil
	}
	return d.entries[i]
}

// Entries returns the backing entries. The slice must not be modified.
func (d *DataSet) Entries() []*Entry { return d.entries }

// SetEntries replaces the entries, sorting them by x.
func (d *DataSet) SetEntries(entries []*Entry) {
	d.entries = slices.DeleteFunc(slices.Clone(entries), func(e *Entry) bool { return e == nil })
	d.sortEntries()
	d.CalcMinMax()
}

// IndexOf returns the index of e, or -1.
func (d *DataSet) IndexOf(e *Entry) int {
	return slices.Index(d.entries, e)
}

// Contains reports whether e belongs to the set.
func (d *DataSet) Contains(e *Entry) bool {
	return d.IndexOf(e) >= 0
}

func (d *DataSet) resetBounds() {
	d.xMin, d.xMax = math.Inf(1), math.Inf(-1)
	d.yMin, d.yMax = math.Inf(1), math.Inf(-1)
	d.maxSize = 0
	d.stackSize = 1
}

// CalcMinMax recomputes the set's extrema in one pass over its entries. An
// empty set ends up with min=+Inf and max=-Inf.
func (d *DataSet) CalcMinMax() {
	d.resetBounds()
	for _, e := range d.entries {
		d.includeEntry(e)
	}
}

// CalcMinMaxY recomputes only the y extrema, considering the entries between
// fromX and toX.
func (d *DataSet) CalcMinMaxY(fromX, toX float64) {
	d.yMin, d.yMax = math.Inf(1), math.Inf(-1)
	if len(d.entries) == 0 {
		return
	}
	from := d.EntryIndexForX(fromX, math.NaN(), RoundDown)
	to := d.EntryIndexForX(toX, math.NaN(), RoundUp)
	for i := from; i <= to; i++ {
		d.includeY(d.entries[i])
	}
}

func (d *DataSet) includeEntry(e *Entry) {
	extend(&d.xMin, &d.xMax, e.X)
	d.includeY(e)
	switch d.kind {
	case KindBubble:
		if e.Size > d.maxSize {
			d.maxSize = e.Size
		}
	case KindBar:
		d.stackSize = max(d.stackSize, len(e.Stack))
	}
}

func (d *DataSet) includeY(e *Entry) {
	switch {
	case d.kind == KindCandle:
		extend(&d.yMin, &d.yMax, e.Low)
		extend(&d.yMin, &d.yMax, e.High)
	case d.kind == KindBar && e.IsStacked():
		extend(&d.yMin, &d.yMax, -e.NegativeSum())
		extend(&d.yMin, &d.yMax, e.PositiveSum())
	default:
		extend(&d.yMin, &d.yMax, e.Y)
	}
}

// extend widens [lo, hi] to include v. NaN is skipped so gaps in the data
// leave the bounds alone.
func extend(lo, hi *float64, v float64) {
	if v < *lo {
		*lo = v
	}
	if v > *hi {
		*hi = v
	}
}

// AddEntry appends e. It fails when e is nil or when appending it would break
// the x-ascending order; use AddEntryOrdered to insert in place.
func (d *DataSet) AddEntry(e *Entry) bool {
	if e == nil || math.IsNaN(e.X) {
		return false
	}
	if d.kind == KindPie || d.kind == KindRadar {
		e.X = float64(len(d.entries))
	}
	if n := len(d.entries); n > 0 && d.entries[n-1].X > e.X {
		return false
	}
	d.entries = append(d.entries, e)
	d.includeEntry(e)
	return true
}

// AddEntryOrdered inserts e at its x-ascending position. Entries sharing its x
// stay ahead of it.
func (d *DataSet) AddEntryOrdered(e *Entry) bool {
	if e == nil || math.IsNaN(e.X) {
		return false
	}
	if d.kind == KindPie || d.kind == KindRadar {
		e.X = float64(len(d.entries))
	}
	idx, _ := slices.BinarySearchFunc(d.entries, e.X, func(el *Entry, x float64) int {
		if el.X <= x {
			return -1
		}
		return 1
	})
	d.entries = slices.Insert(d.entries, idx, e)
	d.includeEntry(e)
	return true
}

// RemoveEntry removes e, reporting whether it was present.
func (d *DataSet) RemoveEntry(e *Entry) bool {
	if e == nil {
		return false
	}
	return d.RemoveEntryAt(d.IndexOf(e))
}

// RemoveEntryAt removes the entry at index i, reporting whether i was valid.
func (d *DataSet) RemoveEntryAt(i int) bool {
	if i < 0 || i >= len(d.entries) {
		return false
	}
	d.entries = slices.Delete(d.entries, i, i+1)
	d.CalcMinMax()
	return true
}

// RemoveEntryByX removes the entry closest to x.
func (d *DataSet) RemoveEntryByX(x float64) bool {
	return d.RemoveEntry(d.EntryForX(x, math.NaN(), RoundClosest))
}

func (d *DataSet) RemoveFirst() bool {
	return d.RemoveEntryAt(0)
}

func (d *DataSet) RemoveLast() bool {
	return d.RemoveEntryAt(len(d.entries) - 1)
}

// Clear removes every entry.
func (d *DataSet) Clear() {
	d.entries = d.entries[:0]
	d.CalcMinMax()
}

// EntryForX returns the entry nearest to x under the rounding policy, or nil
// for an empty set. See EntryIndexForX.
func (d *DataSet) EntryForX(x, closestY float64, rounding Rounding) *Entry {
	return d.Entry(d.EntryIndexForX(x, closestY, rounding))
}

// EntryIndexForX returns the index of the entry nearest to x, or -1 for an
// empty set. RoundUp moves to the following entry when the nearest lies
// below x, RoundDown to the preceding one when it lies above, as long as
// such an entry exists. When closestY is not NaN and several entries share
// the resolved x, the one whose y is nearest closestY wins.
func (d *DataSet) EntryIndexForX(x, closestY float64, rounding Rounding) int {
	if len(d.entries) == 0 {
		return -1
	}
	low, high := 0, len(d.entries)-1
	closest := high
	for low < high {
		m := (low + high) / 2
		d1 := d.entries[m].X - x
		d2 := d.entries[m+1].X - x
		ad1, ad2 := math.Abs(d1), math.Abs(d2)
		switch {
		case ad2 < ad1:
			low = m + 1
		case ad1 < ad2:
			high = m
		case d1 >= 0:
			// Equal distance; the lower candidate is at or above x.
			high = m
		default:
			low = m + 1
		}
		closest = high
	}

	closestX := d.entries[closest].X
	switch rounding {
	case RoundUp:
		if closestX < x && closest < len(d.entries)-1 {
			closest++
		}
	case RoundDown:
		if closestX > x && closest > 0 {
			closest--
		}
	}
	closestX = d.entries[closest].X

	if !math.IsNaN(closestY) {
		for closest > 0 && d.entries[closest-1].X == closestX {
			closest--
		}
		best := closest
		bestDist := math.Abs(d.entries[closest].Y - closestY)
		for i := closest + 1; i < len(d.entries) && d.entries[i].X == closestX; i++ {
			if dist := math.Abs(d.entries[i].Y - closestY); dist < bestDist {
				best, bestDist = i, dist
			}
		}
		closest = best
	}
	return closest
}

// EntriesForX returns every entry whose x equals x exactly.
func (d *DataSet) EntriesForX(x float64) []*Entry {
	i, found := slices.BinarySearchFunc(d.entries, x, func(e *Entry, x float64) int {
		switch {
		case e.X < x:
			return -1
		case e.X > x:
			return 1
		}
		return 0
	})
	if !found {
		return nil
	}
	var out []*Entry
	for ; i < len(d.entries) && d.entries[i].X == x; i++ {
		out = append(out, d.entries[i])
	}
	return out
}

// Color returns the series color for entry index i, cycling through Colors.
func (d *DataSet) Color(i int) color.NRGBA {
	if len(d.Colors) == 0 {
		return DefaultColor
	}
	return d.Colors[((i%len(d.Colors))+len(d.Colors))%len(d.Colors)]
}

// ValueTextColor returns the label color for entry index i.
func (d *DataSet) ValueTextColor(i int) color.NRGBA {
	if len(d.ValueColors) == 0 {
		return black
	}
	return d.ValueColors[i%len(d.ValueColors)]
}

// ValueFormatter returns the set's formatter, falling back to one decimal.
func (d *DataSet) ValueFormatter() ValueFormatter {
	if d.Formatter == nil {
		return DecimalFormatter{Digits: 1}
	}
	return d.Formatter
}
