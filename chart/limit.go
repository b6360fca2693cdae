package chart

import (
	"image/color"
	"slices"
)

// LimitLabelPosition places the label of a limit line relative to it.
type LimitLabelPosition uint8

const (
	LimitRightTop LimitLabelPosition = iota
	LimitRightBottom
	LimitLeftTop
	LimitLeftBottom
)

// LimitLine marks a value on an axis: a horizontal line for y axes and a
// vertical one for the x axis.
type LimitLine struct {
	Limit   float64
	Label   string
	Enabled bool

	Width         float64
	Color         color.NRGBA
	Dash          []float64
	TextColor     color.NRGBA
	TextSize      float64
	LabelPosition LimitLabelPosition
	// XOffset and YOffset move the label away from the line.
	XOffset float64
	YOffset float64
}

var limitRed = color.NRGBA{R: 237, G: 91, B: 91, A: 0xff}

// NewLimitLine returns an enabled limit line at limit.
func NewLimitLine(limit float64, label string) *LimitLine {
	return &LimitLine{
		Limit:     limit,
		Label:     label,
		Enabled:   true,
		Width:     2,
		Color:     limitRed,
		TextColor: black,
		TextSize:  10,
		XOffset:   5,
		YOffset:   5,
	}
}

// SetWidth sets the line width, limited to [0.2, 12] pixels.
func (l *LimitLine) SetWidth(w float64) {
	l.Width = clamp(w, 0.2, 12)
}

func (a *Axis) LimitLines() []*LimitLine { return a.limitLines }

func (a *Axis) AddLimitLine(l *LimitLine) {
	if l != nil {
		a.limitLines = append(a.limitLines, l)
	}
}

// RemoveLimitLine removes l, reporting whether it was present.
func (a *Axis) RemoveLimitLine(l *LimitLine) bool {
	i := slices.Index(a.limitLines, l)
	if i < 0 {
		return false
	}
	a.limitLines = slices.Delete(a.limitLines, i, i+1)
	return true
}

func (a *Axis) RemoveAllLimitLines() { a.limitLines = nil }
