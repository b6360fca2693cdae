package chart

import (
	"math"
	"strconv"
)

// ValueFormatter turns values into label text.
type ValueFormatter interface {
	FormatValue(value float64, e *Entry) string
}

// FormatterFunc adapts a function to the ValueFormatter interface.
type FormatterFunc func(value float64, e *Entry) string

func (f FormatterFunc) FormatValue(value float64, e *Entry) string {
	return f(value, e)
}

// DecimalFormatter prints values with a fixed number of decimal digits.
type DecimalFormatter struct {
	Digits int
}

func (d DecimalFormatter) FormatValue(value float64, _ *Entry) string {
	return strconv.FormatFloat(value, 'f', max(d.Digits, 0), 64)
}

// PercentFormatter prints values with one decimal and a percent sign.
type PercentFormatter struct{}

func (PercentFormatter) FormatValue(value float64, _ *Entry) string {
	return strconv.FormatFloat(value, 'f', 1, 64) + " %"
}

// DigitsFor returns the number of decimal digits needed to tell apart values
// spread over reference.
func DigitsFor(reference float64) int {
	i := roundToNextSignificant(reference)
	if !isFinite(i) || i == 0 {
		return 0
	}
	return int(ceil(-math.Log10(i))) + 2
}

func roundToNextSignificant(v float64) float64 {
	if !isFinite(v) || v == 0 {
		return 0
	}
	d := ceil(math.Log10(math.Abs(v)))
	pw := 1 - int(d)
	magnitude := math.Pow(10, float64(pw))
	shifted := math.Round(v * magnitude)
	return shifted / magnitude
}
