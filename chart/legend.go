package chart

import (
	"image/color"
	"math"
)

// LegendForm is the shape drawn beside a legend label.
type LegendForm uint8

const (
	// FormDefault uses the legend's form.
	FormDefault LegendForm = iota
	// FormNone draws nothing and takes no space.
	FormNone
	// FormEmpty draws nothing but keeps the space of a form.
	FormEmpty
	FormSquare
	FormCircle
	FormLine
)

type LegendOrientation uint8

const (
	LegendHorizontal LegendOrientation = iota
	LegendVertical
)

type LegendHorizontalAlignment uint8

const (
	LegendLeft LegendHorizontalAlignment = iota
	LegendCenter
	LegendRight
)

type LegendVerticalAlignment uint8

const (
	LegendBottom LegendVerticalAlignment = iota
	LegendMiddle
	LegendTop
)

type LegendDirection uint8

const (
	LeftToRight LegendDirection = iota
	RightToLeft
)

// LegendEntry is one form and label of a legend. Entries without a label
// are stacked onto the next labelled entry.
type LegendEntry struct {
	Label string
	Form  LegendForm
	// FormSize and FormLineWidth fall back to the legend's values when 0.
	FormSize      float64
	FormLineWidth float64
	FormLineDash  []float64
	Color         color.NRGBA
}

// Size is a width and height in pixels.
type Size struct {
	W, H float64
}

// Legend describes the legend of a chart. Its entries are derived from the
// data sets unless custom entries were set.
type Legend struct {
	Enabled     bool
	Orientation LegendOrientation
	Horizontal  LegendHorizontalAlignment
	Vertical    LegendVerticalAlignment
	Direction   LegendDirection
	// DrawInside draws the legend over the content instead of reserving
	// offsets for it.
	DrawInside  bool
	WordWrap    bool

	Form          LegendForm
	FormSize      float64
	FormLineWidth float64
	FormLineDash  []float64

	XEntrySpace     float64
	YEntrySpace     float64
	FormToTextSpace float64
	StackSpace      float64
	// MaxSizePercent limits the share of the chart the legend may take.
	MaxSizePercent  float64

	XOffset   float64
	YOffset   float64
	TextSize  float64
	TextColor color.NRGBA

	// Extra entries are appended to the computed ones.
	Extra []LegendEntry

	entries []LegendEntry
	custom  bool

	neededWidth  float64
	neededHeight float64
	lineHeight   float64
	lineSpacing  float64
	labelSizes   []Size
	lineSizes    []Size
	breakPoints  []bool
}

// NewLegend returns a disabled legend with default settings.
func NewLegend() *Legend {
	return &Legend{
		Form:            FormSquare,
		FormSize:        8,
		FormLineWidth:   3,
		XEntrySpace:     6,
		FormToTextSpace: 5,
		StackSpace:      3,
		MaxSizePercent:  0.95,
		XOffset:         5,
		YOffset:         5,
		TextSize:        10,
		TextColor:       black,
	}
}

func (l *Legend) Entries() []LegendEntry { return l.entries }

// SetCustom replaces the computed entries until ResetCustom is called.
func (l *Legend) SetCustom(entries []LegendEntry) {
	l.entries = entries
	l.custom = true
}

func (l *Legend) ResetCustom() { l.custom = false }

func (l *Legend) IsCustom() bool { return l.custom }

// FormSizeOf returns the form size of e.
func (l *Legend) FormSizeOf(e LegendEntry) float64 {
	if e.FormSize > 0 {
		return e.FormSize
	}
	return l.FormSize
}

// Compute derives the entries from the visible data sets of d, unless the
// legend is custom. Stacked bars list one entry per stack label, pies one
// per labelled slice and candles their decreasing and increasing colors.
func (l *Legend) Compute(d *Data) {
	if l.custom {
		return
	}
	var entries []LegendEntry
	if d != nil {
		for _, s := range d.DataSets() {
			if s.Visible {
				entries = s.appendLegendEntries(entries)
			}
		}
	}
	l.entries = append(entries, l.Extra...)
}

func (s *DataSet) appendLegendEntries(out []LegendEntry) []LegendEntry {
	entry := func(label string, c color.NRGBA) LegendEntry {
		return LegendEntry{Label: label, Form: s.LegendForm, Color: c}
	}
	colors := s.Colors
	if len(colors) == 0 {
		colors = []color.NRGBA{DefaultColor}
	}
	switch {
	case s.kind == KindBar && s.IsStacked():
		labels := s.Bar.StackLabels
		for j := 0; j < len(colors) && j < s.StackSize(); j++ {
			label := ""
			if len(labels) > 0 {
				label = labels[j%len(labels)]
			}
			out = append(out, entry(label, colors[j]))
		}
		if s.Label != "" {
			out = append(out, LegendEntry{Label: s.Label, Form: FormNone})
		}
	case s.kind == KindPie:
		for j := 0; j < len(colors) && j < len(s.entries); j++ {
			if label := s.entries[j].Label; label != "" {
				out = append(out, entry(label, colors[j]))
			}
		}
		if s.Label != "" {
			out = append(out, LegendEntry{Label: s.Label, Form: FormNone})
		}
	case s.kind == KindCandle:
		if s.Candle.DecreasingColor.A > 0 {
			out = append(out, entry("", s.Candle.DecreasingColor))
			out = append(out, entry(s.Label, s.Candle.IncreasingColor))
		}
	default:
		n := min(len(colors), len(s.entries))
		for j := 0; j < n; j++ {
			label := ""
			if j == n-1 {
				label = s.Label
			}
			out = append(out, entry(label, colors[j]))
		}
	}
	return out
}

// Layout measures the entries and lays them out in lines. contentWidth is
// the width horizontal legends may wrap in.
func (l *Legend) Layout(measure func(text string) (w, h float64), contentWidth float64) {
	_, l.lineHeight = measure("Q")
	l.lineSpacing = l.lineHeight*legendLeading + l.YEntrySpace
	l.labelSizes = l.labelSizes[:0]
	for _, e := range l.entries {
		var sz Size
		if e.Label != "" {
			sz.W, sz.H = measure(e.Label)
		}
		l.labelSizes = append(l.labelSizes, sz)
	}
	if l.Orientation == LegendVertical {
		l.layoutVertical()
	} else {
		l.layoutHorizontal(contentWidth * l.MaxSizePercent)
	}
}

// legendLeading is the gap between legend lines, in line heights.
const legendLeading = 0.2

func (l *Legend) layoutVertical() {
	var width, maxWidth float64
	lines := 0
	stacked := false
	for i, e := range l.entries {
		drawing := e.Form != FormNone
		size := l.FormSizeOf(e)
		if !stacked {
			width = 0
		}
		if drawing {
			if stacked {
				width += l.StackSpace
			}
			width += size
		}
		if e.Label != "" {
			if drawing && !stacked {
				width += l.FormToTextSpace
			} else if stacked {
				// A label after a stack goes on its own line.
				maxWidth = max(maxWidth, width)
				lines++
				width = 0
				stacked = false
			}
			width += l.labelSizes[i].W
			lines++
		} else {
			stacked = true
		}
		maxWidth = max(maxWidth, width)
	}
	if stacked {
		lines++
	}
	l.lineSizes = l.lineSizes[:0]
	l.breakPoints = l.breakPoints[:0]
	l.neededWidth = maxWidth
	l.neededHeight = l.linesHeight(lines)
}

func (l *Legend) layoutHorizontal(maxWidth float64) {
	l.breakPoints = l.breakPoints[:0]
	l.lineSizes = l.lineSizes[:0]
	var line, required, widest float64
	stackStart := -1
	for i, e := range l.entries {
		drawing := e.Form != FormNone
		size := l.FormSizeOf(e)
		l.breakPoints = append(l.breakPoints, false)
		if stackStart == -1 {
			required = 0
		} else {
			required += l.StackSpace
		}
		if e.Label != "" {
			if drawing {
				required += l.FormToTextSpace + size
			}
			required += l.labelSizes[i].W
		} else {
			if drawing {
				required += size
			}
			if stackStart == -1 {
				stackStart = i
			}
		}
		if e.Label == "" && i < len(l.entries)-1 {
			continue
		}
		spacing := 0.0
		if line > 0 {
			spacing = l.XEntrySpace
		}
		if !l.WordWrap || line == 0 || maxWidth-line >= spacing+required {
			line += spacing + required
		} else {
			l.lineSizes = append(l.lineSizes, Size{W: line, H: l.lineHeight})
			widest = max(widest, line)
			brk := i
			if stackStart > -1 {
				brk = stackStart
			}
			l.breakPoints[brk] = true
			line = required
		}
		stackStart = -1
	}
	if len(l.entries) > 0 {
		l.lineSizes = append(l.lineSizes, Size{W: line, H: l.lineHeight})
		widest = max(widest, line)
	}
	l.neededWidth = widest
	l.neededHeight = l.linesHeight(len(l.lineSizes))
}

func (l *Legend) linesHeight(lines int) float64 {
	if lines == 0 {
		return 0
	}
	return float64(lines)*l.lineHeight + float64(lines-1)*l.lineSpacing
}

// NeededSize returns the size of the laid out legend.
func (l *Legend) NeededSize() (w, h float64) { return l.neededWidth, l.neededHeight }

// LineHeight and LineSpacing return the metrics of the last layout.
func (l *Legend) LineHeight() float64  { return l.lineHeight }
func (l *Legend) LineSpacing() float64 { return l.lineSpacing }

// LabelSize returns the measured size of entry i's label.
func (l *Legend) LabelSize(i int) Size {
	if i < 0 || i >= len(l.labelSizes) {
		return Size{}
	}
	return l.labelSizes[i]
}

// LineSizes returns the size of each line of a horizontal legend.
func (l *Legend) LineSizes() []Size { return l.lineSizes }

// BreaksBefore reports whether a horizontal legend starts a new line at
// entry i.
func (l *Legend) BreaksBefore(i int) bool {
	return i >= 0 && i < len(l.breakPoints) && l.breakPoints[i]
}

// Offsets returns the margins a legend drawn outside the content needs on
// a chart of the given size.
func (l *Legend) Offsets(chartWidth, chartHeight float64) (left, top, right, bottom float64) {
	if !l.Enabled || l.DrawInside || len(l.entries) == 0 {
		return
	}
	w := math.Min(l.neededWidth, chartWidth*l.MaxSizePercent) + l.XOffset
	h := math.Min(l.neededHeight, chartHeight*l.MaxSizePercent) + l.YOffset
	if l.Orientation == LegendVertical {
		switch l.Horizontal {
		case LegendLeft:
			left = w
		case LegendRight:
			right = w
		default:
			switch l.Vertical {
			case LegendTop:
				top = h
			case LegendBottom:
				bottom = h
			}
		}
		return
	}
	switch l.Vertical {
	case LegendTop:
		top = h
	case LegendBottom:
		bottom = h
	}
	return
}
