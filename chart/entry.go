package chart

import "image"

// Entry is one data point of a series. Entries are identified by pointer, so
// two entries holding equal values are still distinct.
type Entry struct {
	X, Y float64
	// Size is the bubble size of the entry.
	Size float64
	// High, Low, Open and Close hold candle values.
	High, Low, Open, Close float64
	// Stack holds the individual values of a stacked bar. Y is their sum.
	Stack []float64
	// Label names a pie slice or radar axis.
	Label string
	Icon  image.Image
	// Data is arbitrary caller data carried along with the entry.
	Data any
}

// NewEntry returns a plain x/y entry.
func NewEntry(x, y float64) *Entry {
	return &Entry{X: x, Y: y}
}

// NewBubbleEntry returns an entry with a bubble size.
func NewBubbleEntry(x, y, size float64) *Entry {
	return &Entry{X: x, Y: y, Size: size}
}

// NewCandleEntry returns a candle entry. Its Y is the midpoint between high
// and low.
func NewCandleEntry(x, high, low, open, close float64) *Entry {
	return &Entry{
		X:     x,
		Y:     (high + low) / 2,
		High:  high,
		Low:   low,
		Open:  open,
		Close: close,
	}
}

// NewStackedEntry returns a stacked bar entry whose Y is the sum of vals.
func NewStackedEntry(x float64, vals ...float64) *Entry {
	e := &Entry{X: x, Stack: vals}
	for _, v := range vals {
		e.Y += v
	}
	return e
}

// NewPieEntry returns a slice value with a label. The x position is assigned
// from the slice index when the entry is placed in a pie data set.
func NewPieEntry(value float64, label string) *Entry {
	return &Entry{Y: value, Label: label}
}

// IsStacked reports whether the entry is a stacked bar.
func (e *Entry) IsStacked() bool {
	return len(e.Stack) > 0
}

// PositiveSum returns the sum of the positive stack values.
func (e *Entry) PositiveSum() float64 {
	if !e.IsStacked() {
		return max(e.Y, 0)
	}
	var sum float64
	for _, v := range e.Stack {
		if v > 0 {
			sum += v
		}
	}
	return sum
}

// NegativeSum returns the magnitude of the sum of the negative stack values.
func (e *Entry) NegativeSum() float64 {
	if !e.IsStacked() {
		return max(-e.Y, 0)
	}
	var sum float64
	for _, v := range e.Stack {
		if v <= 0 {
			sum -= v
		}
	}
	return sum
}

// StackRanges returns the [from, to] span each stack value occupies, in
// stack order. Negative values grow downwards from zero, positive values
// upwards.
func (e *Entry) StackRanges() [][2]float64 {
	if !e.IsStacked() {
		return nil
	}
	ranges := make([][2]float64, 0, len(e.Stack))
	negRemain := -e.NegativeSum()
	posRemain := 0.0
	for _, v := range e.Stack {
		if v < 0 {
			ranges = append(ranges, [2]float64{negRemain, negRemain - v})
			negRemain -= v
		} else {
			ranges = append(ranges, [2]float64{posRemain, posRemain + v})
			posRemain += v
		}
	}
	return ranges
}

// SumBelow returns the sum of the stack values stored after stackIndex, which
// are drawn below it.
func (e *Entry) SumBelow(stackIndex int) float64 {
	if !e.IsStacked() {
		return 0
	}
	var remainder float64
	for i := len(e.Stack) - 1; i > stackIndex && i >= 0; i-- {
		remainder += e.Stack[i]
	}
	return remainder
}
