package chart

import (
	"image/color"
	"math"
)

// Axis holds the value range of one chart axis and the positions of its
// labels.
type Axis struct {
	Enabled bool
	// Vertical axes apply SpaceTop and SpaceBottom instead of SpaceMin and
	// SpaceMax.
	Vertical bool
	Inverted bool
	Side     AxisDependency

	// SpaceMin and SpaceMax widen a horizontal axis, in axis units.
	SpaceMin float64
	SpaceMax float64
	// SpaceTop and SpaceBottom widen a vertical axis, in percent of its range.
	SpaceTop    float64
	SpaceBottom float64

	LabelCount  int
	ForceLabels bool
	Granularity float64
	Formatter   ValueFormatter

	DrawGridLines bool
	DrawLabels    bool
	GridColor     color.NRGBA
	LabelColor    color.NRGBA
	TextSize      float64

	// DrawLimitLines gates the limit lines, which are drawn over the data
	// unless LimitLinesBehindData is set.
	DrawLimitLines       bool
	LimitLinesBehindData bool
	limitLines           []*LimitLine

	min, max  float64
	customMin bool
	customMax bool
	entries   []float64
	digits    int
}

// NewXAxis returns a horizontal axis with default settings.
func NewXAxis() *Axis {
	return &Axis{
		Enabled:       true,
		LabelCount:    6,
		DrawGridLines: true,
		DrawLabels:    true,
		GridColor:     gridGray,
		LabelColor:    black,
		TextSize:      10,

		DrawLimitLines: true,
	}
}

// NewYAxis returns a vertical axis on the given side with 10% spacing above
// and below the data.
func NewYAxis(side AxisDependency) *Axis {
	a := NewXAxis()
	a.Vertical = true
	a.Side = side
	a.SpaceTop = 10
	a.SpaceBottom = 10
	return a
}

func (a *Axis) Min() float64   { return a.min }
func (a *Axis) Max() float64   { return a.max }
func (a *Axis) Range() float64 { return math.Abs(a.max - a.min) }

// SetMin fixes the axis minimum instead of deriving it from the data.
func (a *Axis) SetMin(v float64) {
	a.min = v
	a.customMin = true
}

// SetMax fixes the axis maximum instead of deriving it from the data.
func (a *Axis) SetMax(v float64) {
	a.max = v
	a.customMax = true
}

// ResetMin returns the minimum to being derived from the data.
func (a *Axis) ResetMin() { a.customMin = false }

// ResetMax returns the maximum to being derived from the data.
func (a *Axis) ResetMax() { a.customMax = false }

// Calculate derives the axis range from the data extremes. A zero range is
// widened by one on each side and non-finite bounds collapse to 0.
func (a *Axis) Calculate(dataMin, dataMax float64) {
	if a.Vertical {
		a.calculateVertical(dataMin, dataMax)
		return
	}
	lo, hi := dataMin-a.SpaceMin, dataMax+a.SpaceMax
	if a.customMin {
		lo = a.min
	}
	if a.customMax {
		hi = a.max
	}
	if hi-lo == 0 {
		lo, hi = lo-1, hi+1
	}
	if !isFinite(lo) {
		lo = 0
	}
	if !isFinite(hi) {
		hi = 0
	}
	a.min, a.max = lo, hi
}

func (a *Axis) calculateVertical(dataMin, dataMax float64) {
	lo, hi := dataMin, dataMax
	if !isFinite(lo) || !isFinite(hi) {
		lo, hi = 0, 0
	}
	if hi-lo == 0 {
		lo, hi = lo-1, hi+1
	}
	r := math.Abs(hi - lo)
	if !a.customMin {
		a.min = lo - r/100*a.SpaceBottom
	}
	if !a.customMax {
		a.max = hi + r/100*a.SpaceTop
	}
}

// Entries computes up to about LabelCount label positions between the axis
// bounds, at a "nice" interval of 1, 2 or 5 times a power of ten. The
// positions are cached for Labels.
func (a *Axis) Entries() []float64 {
	return a.EntriesBetween(a.min, a.max)
}

// EntriesBetween is Entries for the window [lo, hi] of the axis, as shown
// while zoomed in.
func (a *Axis) EntriesBetween(lo, hi float64) []float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	a.entries = a.entries[:0]
	a.digits = 0
	r := hi - lo
	if a.LabelCount <= 0 || r <= 0 || !isFinite(r) {
		return a.entries
	}
	interval := roundToNextSignificant(r / float64(a.LabelCount))
	if a.Granularity > 0 {
		interval = max(interval, a.Granularity)
	}
	magnitude := roundToNextSignificant(math.Pow(10, floor(math.Log10(interval))))
	if interval/magnitude > 5 {
		interval = 10 * magnitude
	}

	if a.ForceLabels && a.LabelCount > 1 {
		interval = r / float64(a.LabelCount-1)
		for i := 0; i < a.LabelCount; i++ {
			a.entries = append(a.entries, lo+float64(i)*interval)
		}
	} else if interval > 0 {
		first := ceil(lo/interval) * interval
		last := math.Nextafter(floor(hi/interval)*interval, math.Inf(1))
		for f := first; f <= last; f += interval {
			// Adding 0 turns -0 into 0.
			a.entries = append(a.entries, f+0)
		}
	}
	if interval < 1 {
		a.digits = int(ceil(-math.Log10(interval)))
	}
	return a.entries
}

// Labels formats the entries last computed by Entries.
func (a *Axis) Labels() []string {
	f := a.Formatter
	if f == nil {
		f = DecimalFormatter{Digits: a.digits}
	}
	labels := make([]string, len(a.entries))
	for i, v := range a.entries {
		labels[i] = f.FormatValue(v, nil)
	}
	return labels
}
