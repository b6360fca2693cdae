package chart

import "image/color"

var (
	white          = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	black          = color.NRGBA{A: 0xff}
	highlightAmber = color.NRGBA{R: 0xff, G: 0xbb, B: 0x73, A: 0xff}
	gridGray       = color.NRGBA{R: 0xd7, G: 0xd7, B: 0xd7, A: 0xff}
)

// HighlightLineOptions configures the crosshair drawn over highlighted
// line, scatter, candle and radar entries.
type HighlightLineOptions struct {
	DrawVertical   bool
	DrawHorizontal bool
	Width          float64
	Dash           []float64
}

// LineMode selects how consecutive line entries are connected.
type LineMode uint8

const (
	LineLinear LineMode = iota
	LineStepped
	LineCubicBezier
	LineHorizontalBezier
)

// FillFormatter returns the y value a filled line closes its area against.
type FillFormatter func(set *DataSet, data *Data, axisMin, axisMax float64) float64

// DefaultFillFormatter fills towards zero when the set crosses it and
// otherwise towards the nearer axis bound.
func DefaultFillFormatter(set *DataSet, data *Data, axisMin, axisMax float64) float64 {
	if set.YMax() > 0 && set.YMin() < 0 {
		return 0
	}
	hi, lo := axisMax, axisMin
	if data.YMax() > 0 {
		hi = 0
	}
	if data.YMin() < 0 {
		lo = 0
	}
	if set.YMin() >= 0 {
		return lo
	}
	return hi
}

type LineOptions struct {
	Mode           LineMode
	LineWidth      float64
	CubicIntensity float64
	Dash           []float64

	DrawFilled    bool
	FillColor     color.NRGBA
	FillAlpha     uint8
	FillFormatter FillFormatter

	DrawCircles      bool
	DrawCircleHole   bool
	CircleRadius     float64
	CircleHoleRadius float64
	CircleHoleColor  color.NRGBA
	CircleColors     []color.NRGBA

	Highlight HighlightLineOptions
}

// CircleColor returns the circle color for the entry at index i.
func (o *LineOptions) CircleColor(i int) color.NRGBA {
	if len(o.CircleColors) == 0 {
		return DefaultColor
	}
	return o.CircleColors[i%len(o.CircleColors)]
}

// SetCubicIntensity sets the bezier intensity, limited to [0.05, 1].
func (o *LineOptions) SetCubicIntensity(v float64) {
	o.CubicIntensity = clamp(v, 0.05, 1)
}

type BarOptions struct {
	ShadowColor    color.NRGBA
	BorderWidth    float64
	BorderColor    color.NRGBA
	HighlightAlpha uint8
	StackLabels    []string
}

// ScatterShape is the marker drawn for scatter entries.
type ScatterShape uint8

const (
	ShapeSquare ScatterShape = iota
	ShapeCircle
	ShapeTriangle
	ShapeCross
	ShapeX
	ShapeChevronUp
	ShapeChevronDown
)

var shapeNames = map[string]ScatterShape{
	"square":      ShapeSquare,
	"circle":      ShapeCircle,
	"triangle":    ShapeTriangle,
	"cross":       ShapeCross,
	"x":           ShapeX,
	"chevronup":   ShapeChevronUp,
	"chevrondown": ShapeChevronDown,
}

// ParseScatterShape resolves a shape by name.
func ParseScatterShape(name string) (ScatterShape, bool) {
	s, ok := shapeNames[name]
	return s, ok
}

type ScatterOptions struct {
	Shape      ScatterShape
	ShapeSize  float64
	HoleRadius float64
	HoleColor  color.NRGBA
	Highlight  HighlightLineOptions
}

type CandleOptions struct {
	ShadowWidth   float64
	BarSpace      float64
	ShowCandleBar bool
	// ShadowColor is used for shadows unless ShadowColorSameAsCandle is set
	// or it is fully transparent.
	ShadowColor             color.NRGBA
	ShadowColorSameAsCandle bool
	IncreasingColor         color.NRGBA
	DecreasingColor         color.NRGBA
	NeutralColor            color.NRGBA
	IncreasingFilled        bool
	DecreasingFilled        bool
	Highlight               HighlightLineOptions
}

// SetBarSpace sets the space left on each side of a candle body, limited to
// [0, 0.45].
func (o *CandleOptions) SetBarSpace(v float64) {
	o.BarSpace = clamp(v, 0, 0.45)
}

type BubbleOptions struct {
	Normalize            bool
	HighlightCircleWidth float64
}

// ValuePosition places pie labels inside or outside their slice.
type ValuePosition uint8

const (
	InsideSlice ValuePosition = iota
	OutsideSlice
)

type PieOptions struct {
	SliceSpace     float64
	SelectionShift float64
	// AutoDisableSliceSpacing drops slice spacing when the smallest slice
	// would be swallowed by it.
	AutoDisableSliceSpacing bool
	ValuePosition           ValuePosition
	LabelPosition           ValuePosition
	ValueLineColor          color.NRGBA
	ValueLineWidth          float64
	ValueLinePart1Offset    float64
	ValueLinePart1Length    float64
	ValueLinePart2Length    float64
	ValueLineVariableLength bool
	UseSliceColorForLine    bool
}

type RadarOptions struct {
	LineWidth  float64
	DrawFilled bool
	FillColor  color.NRGBA
	FillAlpha  uint8
	Highlight  HighlightLineOptions

	DrawHighlightCircle        bool
	HighlightCircleFillColor   color.NRGBA
	HighlightCircleStrokeColor color.NRGBA
	HighlightCircleInnerRadius float64
	HighlightCircleOuterRadius float64
	HighlightCircleStrokeWidth float64
	HighlightCircleStrokeAlpha uint8
}

func defaultHighlightLines() HighlightLineOptions {
	return HighlightLineOptions{
		DrawVertical:   true,
		DrawHorizontal: true,
		Width:          0.5,
	}
}

func (d *DataSet) applyDefaults() {
	d.Visible = true
	d.HighlightEnabled = true
	d.ValueTextSize = 13
	d.Colors = []color.NRGBA{DefaultColor}
	d.ValueColors = []color.NRGBA{black}
	d.HighlightColor = highlightAmber
	switch d.kind {
	case KindLine:
		d.Line = LineOptions{
			LineWidth:        1,
			CubicIntensity:   0.2,
			FillColor:        DefaultColor,
			FillAlpha:        85,
			FillFormatter:    DefaultFillFormatter,
			DrawCircles:      true,
			DrawCircleHole:   true,
			CircleRadius:     4,
			CircleHoleRadius: 2,
			CircleHoleColor:  white,
			CircleColors:     []color.NRGBA{DefaultColor},
			Highlight:        defaultHighlightLines(),
		}
	case KindBar:
		d.HighlightColor = black
		d.Bar = BarOptions{
			ShadowColor:    color.NRGBA{R: 215, G: 215, B: 215, A: 0xff},
			BorderColor:    black,
			HighlightAlpha: 120,
			StackLabels:    []string{"Stack"},
		}
	case KindScatter:
		d.Scatter = ScatterOptions{
			ShapeSize: 15,
			HoleColor: white,
			Highlight: defaultHighlightLines(),
		}
	case KindCandle:
		d.Candle = CandleOptions{
			ShadowWidth:             3,
			BarSpace:                0.1,
			ShowCandleBar:           true,
			ShadowColorSameAsCandle: true,
			IncreasingColor:         color.NRGBA{G: 0x96, B: 0x88, A: 0xff},
			DecreasingColor:         color.NRGBA{R: 0xef, G: 0x53, B: 0x50, A: 0xff},
			NeutralColor:            DefaultColor,
			DecreasingFilled:        true,
			Highlight:               defaultHighlightLines(),
		}
	case KindBubble:
		d.Bubble = BubbleOptions{
			Normalize:            true,
			HighlightCircleWidth: 2.5,
		}
	case KindPie:
		d.ValueColors = []color.NRGBA{white}
		// Highlighted slices keep their own color.
		d.HighlightColor = color.NRGBA{}
		d.Pie = PieOptions{
			SelectionShift:          12,
			ValueLineColor:          black,
			ValueLineWidth:          1,
			ValueLinePart1Offset:    75,
			ValueLinePart1Length:    0.3,
			ValueLinePart2Length:    0.4,
			ValueLineVariableLength: true,
		}
	case KindRadar:
		d.Radar = RadarOptions{
			LineWidth:                  2.5,
			FillColor:                  DefaultColor,
			FillAlpha:                  85,
			Highlight:                  defaultHighlightLines(),
			HighlightCircleInnerRadius: 3,
			HighlightCircleOuterRadius: 4,
			HighlightCircleStrokeWidth: 2,
			HighlightCircleStrokeAlpha: 76,
			HighlightCircleFillColor:   white,
		}
	}
}
