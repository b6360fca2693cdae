// Package plot hosts a chart: it owns the data, the viewport, the axes and
// the animator, and wires the renderer and highlighter matching the kind of
// data it is given.
package plot

import (
	"image/color"
	"time"

	"git.sr.ht/~whereswaldon/chartkit/animation"
	"git.sr.ht/~whereswaldon/chartkit/chart"
	"git.sr.ht/~whereswaldon/chartkit/highlight"
	"git.sr.ht/~whereswaldon/chartkit/render"
	"git.sr.ht/~whereswaldon/chartkit/viewport"
)

const (
	// DefaultMinOffset is the smallest margin around cartesian content.
	DefaultMinOffset = 15
	// DefaultMaxVisibleCount is the entry count above which values are only
	// drawn when zoomed in.
	DefaultMaxVisibleCount = 100
	// labelGap separates axis labels from the content, on both sides.
	labelGap = 4
)

// TextMeasurer measures label text. Every render.Surface is one.
type TextMeasurer interface {
	MeasureText(text string, p render.Paint) (w, h float64)
}

// Offsets are margins in pixels.
type Offsets struct {
	Left, Top, Right, Bottom float64
}

// BarStyle holds the chart wide settings of bar data.
type BarStyle struct {
	DrawShadow       bool
	ValuesAboveBar   bool
	HighlightFullBar bool
}

// Chart is a chart host. It is not safe for concurrent use; hosts drive it
// from their render goroutine.
type Chart struct {
	XAxis     *chart.Axis
	LeftAxis  *chart.Axis
	RightAxis *chart.Axis
	// Legend is disabled by default.
	Legend    *chart.Legend

	Bar BarStyle
	Pie render.PieStyle
	Web render.WebStyle

	Background color.NRGBA
	// NoDataText is drawn centered while the chart has no data.
	NoDataText      string
	NoDataTextColor color.NRGBA
	// MaxAngle is the total sweep of a pie and MinAngle the smallest sweep of
	// a non-empty slice, both in degrees.
	MaxAngle float64
	MinAngle float64
	// HighlightEnabled gates ToggleHighlightAt.
	HighlightEnabled bool

	rotation float64
	kind     chart.Kind
	data     *chart.Data
	combined *chart.CombinedData

	handler     *viewport.Handler
	left, right *viewport.Transformer
	animator    *animation.Animator
	clock       animation.Clock
	// frames is the default clock, nil when the host supplied one.
	frames *animation.FrameClock
	move   *animation.Job
	angles chart.PieAngles

	renderer    render.Renderer
	bars        []*render.BarRenderer
	axes        *render.AxisRenderer
	legend      *render.LegendRenderer
	highlighter highlight.Highlighter
	highlighted []chart.Highlight
	// lastTapped is the highlight selected by the previous tap.
	lastTapped *chart.Highlight

	minOffset       float64
	extraOffsets    Offsets
	maxVisibleCount int
	maxDistance     float64
	autoScale       bool
	drawOrder       []chart.Kind
	onInvalidate    func()
	offsetsDirty    bool
}

// New returns an empty chart.
func New(opts ...Option) *Chart {
	c := &Chart{
		XAxis:            chart.NewXAxis(),
		LeftAxis:         chart.NewYAxis(chart.AxisLeft),
		RightAxis:        chart.NewYAxis(chart.AxisRight),
		Legend:           chart.NewLegend(),
		Pie:              render.DefaultPieStyle(),
		Web:              render.DefaultWebStyle(),
		NoDataText:       "No chart data available.",
		NoDataTextColor:  color.NRGBA{R: 247, G: 189, B: 51, A: 0xff},
		MaxAngle:         360,
		HighlightEnabled: true,
		handler:          viewport.NewHandler(),
		minOffset:        DefaultMinOffset,
		maxVisibleCount:  DefaultMaxVisibleCount,
		maxDistance:      highlight.DefaultMaxDistance,
		autoScale:        true,
		rotation:         270,
	}
	c.RightAxis.Enabled = false
	c.left = viewport.NewTransformer(c.handler)
	c.right = viewport.NewTransformer(c.handler)
	c.legend = render.NewLegendRenderer(c.handler, c.Legend)
	c.handler.OnChange = c.Invalidate
	for _, opt := range opts {
		opt(c)
	}
	if c.clock == nil {
		c.frames = animation.NewFrameClock(time.Now())
		c.frames.Invalidate = c.Invalidate
		c.clock = c.frames
	}
	c.animator = animation.NewAnimator(c.clock, c.Invalidate)
	return c
}

// SetData replaces the chart data. The data kind is taken from its first
// set and selects the renderer and highlighter. Passing nil clears the
// chart.
func (c *Chart) SetData(d *chart.Data) {
	if d == nil {
		c.Clear()
		return
	}
	kind, ok := d.Kind()
	if !ok {
		kind = chart.KindLine
	}
	c.kind = kind
	c.data = d
	c.combined = nil
	c.setup()
	c.NotifyDataSetChanged()
}

// SetCombinedData replaces the chart data with layered data of several
// cartesian kinds. Passing nil clears the chart.
func (c *Chart) SetCombinedData(d *chart.CombinedData) {
	if d == nil {
		c.Clear()
		return
	}
	c.data = nil
	c.combined = d
	c.setup()
	c.NotifyDataSetChanged()
}

// Clear drops the data and every highlight.
func (c *Chart) Clear() {
	c.data = nil
	c.combined = nil
	c.renderer = nil
	c.bars = nil
	c.axes = nil
	c.highlighter = nil
	c.highlighted = nil
	c.lastTapped = nil
	c.Invalidate()
}

func (c *Chart) setup() {
	c.highlighted = nil
	c.lastTapped = nil
	c.bars = nil
	c.axes = render.NewAxisRenderer(c, c.XAxis, c.LeftAxis, c.RightAxis)
	if c.combined != nil {
		r := render.NewCombinedRenderer(c, c.CombinedData, c.drawOrder...)
		if r.Bar != nil {
			c.bars = append(c.bars, r.Bar)
		}
		c.renderer = r
		c.highlighter = highlight.NewCombinedHighlighter(c)
		return
	}
	switch c.kind {
	case chart.KindBar:
		r := render.NewBarRenderer(c, c.Data)
		c.bars = append(c.bars, r)
		c.renderer = r
		c.highlighter = highlight.NewBarHighlighter(c, c.Data)
	case chart.KindScatter:
		c.renderer = render.NewScatterRenderer(c, c.Data)
		c.highlighter = highlight.NewChartHighlighter(c)
	case chart.KindCandle:
		c.renderer = render.NewCandleRenderer(c, c.Data)
		c.highlighter = highlight.NewChartHighlighter(c)
	case chart.KindBubble:
		c.renderer = render.NewBubbleRenderer(c, c.Data)
		c.highlighter = highlight.NewChartHighlighter(c)
	case chart.KindPie:
		c.axes = nil
		c.renderer = render.NewPieRenderer(c, &c.Pie)
		c.highlighter = highlight.NewPieHighlighter(c)
	case chart.KindRadar:
		c.axes = nil
		c.renderer = render.NewRadarRenderer(radarHost{c}, &c.Web)
		c.highlighter = highlight.NewRadarHighlighter(c)
	default:
		c.renderer = render.NewLineRenderer(c, c.Data)
		c.highlighter = highlight.NewChartHighlighter(c)
	}
}

// NotifyDataSetChanged recomputes bounds, axes and offsets after the data
// was mutated.
func (c *Chart) NotifyDataSetChanged() {
	d := c.Data()
	if d == nil {
		chart.Logger().Debug("data set changed without data")
		return
	}
	if c.combined != nil {
		c.combined.NotifyDataChanged()
	} else {
		d.NotifyDataChanged()
	}
	c.calcMinMax()
	c.offsetsDirty = true
	if c.handler.HasChartDimens() {
		c.CalculateOffsets(nil)
	}
	c.Invalidate()
}

func (c *Chart) calcMinMax() {
	d := c.Data()
	switch {
	case c.IsPie():
		c.angles = chart.CalcPieAngles(d, c.MaxAngle, c.MinAngle)
	case c.IsRadar():
		c.LeftAxis.Calculate(d.AxisYMin(chart.AxisLeft), d.AxisYMax(chart.AxisLeft))
		n := 0
		if s := d.MaxEntryCountSet(); s != nil {
			n = s.EntryCount()
		}
		c.XAxis.Calculate(0, float64(n))
	default:
		pad := c.xPadding()
		c.XAxis.Calculate(d.XMin()-pad, d.XMax()+pad)
		c.calcYAxes()
	}
}

func (c *Chart) calcYAxes() {
	d := c.Data()
	c.LeftAxis.Calculate(d.AxisYMin(chart.AxisLeft), d.AxisYMax(chart.AxisLeft))
	c.RightAxis.Calculate(d.AxisYMin(chart.AxisRight), d.AxisYMax(chart.AxisRight))
	if !c.RightAxis.Enabled && usesAxis(d, chart.AxisRight) {
		c.RightAxis.Enabled = true
	}
}

func usesAxis(d *chart.Data, axis chart.AxisDependency) bool {
	for _, s := range d.DataSets() {
		if s.Visible && s.Axis == axis {
			return true
		}
	}
	return false
}

// xPadding widens the x axis so bars and candle bodies at its ends are
// drawn whole.
func (c *Chart) xPadding() float64 {
	var pad float64
	if b := c.BarData(); b != nil {
		pad = b.BarWidth / 2
	}
	if c.CandleData() != nil {
		pad = max(pad, 0.5)
	}
	return pad
}

// SetSize sets the pixel size of the chart and lays it out again.
func (c *Chart) SetSize(width, height float64) {
	if width == c.handler.ChartWidth() && height == c.handler.ChartHeight() {
		return
	}
	c.handler.SetChartDimens(width, height)
	chart.Logger().Debug("chart resized", "width", width, "height", height)
	if c.Data() != nil {
		c.NotifyDataSetChanged()
		return
	}
	c.offsetsDirty = true
	c.Invalidate()
}

// Size returns the pixel size of the chart.
func (c *Chart) Size() (width, height float64) {
	return c.handler.ChartWidth(), c.handler.ChartHeight()
}

// CalculateOffsets restrains the content rectangle to leave room for the
// legend, axis labels and the extra offsets, then prepares the value
// matrices. A nil m estimates text sizes.
func (c *Chart) CalculateOffsets(m TextMeasurer) {
	if m == nil {
		m = render.NewRecorder()
	}
	o := c.extraOffsets
	if c.Legend.Enabled && c.Data() != nil {
		c.legend.Legend = c.Legend
		c.legend.ComputeLegend(c.Data(), m)
		l, t, r, b := c.Legend.Offsets(c.handler.ChartWidth(), c.handler.ChartHeight())
		o.Left += l
		o.Top += t
		o.Right += r
		o.Bottom += b
	}
	if !c.IsPolar() && c.Data() != nil {
		if w := labelWidth(m, c.LeftAxis); w > 0 {
			o.Left += w + 2*labelGap
		}
		if w := labelWidth(m, c.RightAxis); w > 0 {
			o.Right += w + 2*labelGap
		}
		if c.XAxis.Enabled && c.XAxis.DrawLabels {
			_, h := m.MeasureText("Q", render.Paint{TextSize: c.XAxis.TextSize})
			o.Bottom += h + 2*labelGap
		}
		o.Left = max(o.Left, c.minOffset)
		o.Top = max(o.Top, c.minOffset)
		o.Right = max(o.Right, c.minOffset)
		o.Bottom = max(o.Bottom, c.minOffset)
	}
	c.handler.RestrainViewPort(o.Left, o.Top, o.Right, o.Bottom)
	c.offsetsDirty = false
	chart.Logger().Debug("offsets calculated", "left", o.Left, "top", o.Top, "right", o.Right, "bottom", o.Bottom)
	c.PrepareValuePxMatrix()
}

// labelWidth returns the width of the widest label of a, or 0 when a draws
// no labels.
func labelWidth(m TextMeasurer, a *chart.Axis) float64 {
	if !a.Enabled || !a.DrawLabels {
		return 0
	}
	a.Entries()
	p := render.Paint{TextSize: a.TextSize}
	var widest float64
	for _, l := range a.Labels() {
		w, _ := m.MeasureText(l, p)
		widest = max(widest, w)
	}
	return widest
}

// PrepareValuePxMatrix maps the axis ranges onto the content rectangle.
func (c *Chart) PrepareValuePxMatrix() {
	c.right.PrepareMatrixValuePx(c.XAxis.Min(), c.XAxis.Range(), c.RightAxis.Range(), c.RightAxis.Min())
	c.left.PrepareMatrixValuePx(c.XAxis.Min(), c.XAxis.Range(), c.LeftAxis.Range(), c.LeftAxis.Min())
	c.right.PrepareMatrixOffset(c.RightAxis.Inverted)
	c.left.PrepareMatrixOffset(c.LeftAxis.Inverted)
}

// Invalidate asks the host for a new frame.
func (c *Chart) Invalidate() {
	if c.onInvalidate != nil {
		c.onInvalidate()
	}
}

// IsPolar reports whether the chart shows pie or radar data.
func (c *Chart) IsPolar() bool { return c.IsPie() || c.IsRadar() }

func (c *Chart) IsPie() bool   { return c.data != nil && c.kind == chart.KindPie }
func (c *Chart) IsRadar() bool { return c.data != nil && c.kind == chart.KindRadar }

// IsCombined reports whether the chart shows combined data.
func (c *Chart) IsCombined() bool { return c.combined != nil }

// Data returns the chart data. For combined data this is the aggregate
// over all parts.
func (c *Chart) Data() *chart.Data {
	if c.combined != nil {
		return &c.combined.Data
	}
	return c.data
}

func (c *Chart) CombinedData() *chart.CombinedData { return c.combined }

func (c *Chart) dataOf(kind chart.Kind) *chart.Data {
	if c.combined != nil {
		return c.combined.DataByKind(kind)
	}
	if c.data != nil && c.kind == kind {
		return c.data
	}
	return nil
}

func (c *Chart) LineData() *chart.Data    { return c.dataOf(chart.KindLine) }
func (c *Chart) BarData() *chart.Data     { return c.dataOf(chart.KindBar) }
func (c *Chart) ScatterData() *chart.Data { return c.dataOf(chart.KindScatter) }
func (c *Chart) CandleData() *chart.Data  { return c.dataOf(chart.KindCandle) }
func (c *Chart) BubbleData() *chart.Data  { return c.dataOf(chart.KindBubble) }
func (c *Chart) PieData() *chart.Data     { return c.dataOf(chart.KindPie) }
func (c *Chart) RadarData() *chart.Data   { return c.dataOf(chart.KindRadar) }

func (c *Chart) Handler() *viewport.Handler     { return c.handler }
func (c *Chart) MaxHighlightDistance() float64 { return c.maxDistance }

func (c *Chart) Transformer(axis chart.AxisDependency) *viewport.Transformer {
	if axis == chart.AxisRight {
		return c.right
	}
	return c.left
}

func (c *Chart) YAxis(axis chart.AxisDependency) *chart.Axis {
	if axis == chart.AxisRight {
		return c.RightAxis
	}
	return c.LeftAxis
}

// ValuesAllowed reports whether value labels may be drawn: the entry count
// must stay below the max visible count scaled by the x zoom.
func (c *Chart) ValuesAllowed() bool {
	d := c.Data()
	return d != nil && float64(d.EntryCount()) < float64(c.maxVisibleCount)*c.handler.ScaleX()
}

// SetMaxVisibleCount sets the entry count above which values are hidden
// until zoomed in.
func (c *Chart) SetMaxVisibleCount(n int) {
	c.maxVisibleCount = n
	c.Invalidate()
}

// SetAutoScale toggles fitting the y axes to the visible x window on every
// draw.
func (c *Chart) SetAutoScale(enabled bool) {
	c.autoScale = enabled
	if !enabled && c.Data() != nil {
		c.NotifyDataSetChanged()
	}
}

func (c *Chart) AutoScale() bool { return c.autoScale }

// SetExtraOffsets adds margins around the content on top of the ones
// needed by axis labels.
func (c *Chart) SetExtraOffsets(o Offsets) {
	c.extraOffsets = o
	c.offsetsDirty = true
	c.Invalidate()
}

// radarHost adapts a Chart to render.RadarChart, whose radial axis is the
// left axis.
type radarHost struct {
	*Chart
}

func (r radarHost) YAxis() *chart.Axis { return r.LeftAxis }
