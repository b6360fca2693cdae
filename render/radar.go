package render

import (
	"image/color"
	"math"

	"git.sr.ht/~whereswaldon/chartkit/chart"
	"git.sr.ht/~whereswaldon/chartkit/highlight"
	"git.sr.ht/~whereswaldon/chartkit/viewport"
)

// radarValueOffset lifts radar labels above their point.
const radarValueOffset = 5

// RadarChart is the part of a radar chart host the radar renderer reads.
type RadarChart interface {
	highlight.RadarProvider
	Handler() *viewport.Handler
	// YAxis is the radial axis whose label positions become inner web
	// rings.
	YAxis() *chart.Axis
}

// WebStyle configures the web behind radar data.
type WebStyle struct {
	Draw           bool
	LineWidth      float64
	InnerLineWidth float64
	Color          color.NRGBA
	InnerColor     color.NRGBA
	// Alpha applies to both line colors.
	Alpha uint8
	// SkipLines leaves out that many spokes between two drawn ones.
	SkipLines int
}

func DefaultWebStyle() WebStyle {
	gray := color.NRGBA{R: 122, G: 122, B: 122, A: 0xff}
	return WebStyle{
		Draw:           true,
		LineWidth:      2.5,
		InnerLineWidth: 1.5,
		Color:          gray,
		InnerColor:     gray,
		Alpha:          150,
	}
}

// RadarRenderer draws radar data sets as closed polygons over a web.
type RadarRenderer struct {
	chart RadarChart
	web   *WebStyle
	path  Path
}

func NewRadarRenderer(c RadarChart, web *WebStyle) *RadarRenderer {
	return &RadarRenderer{chart: c, web: web}
}

// position returns the pixel position of value v on spoke j.
func (r *RadarRenderer) position(v, j float64) (float64, float64) {
	c := r.chart
	cx, cy := c.Center()
	dist := (v - c.YChartMin()) * c.Factor() * c.PhaseY()
	return viewport.Position(cx, cy, dist, c.SliceAngle()*j*c.PhaseX()+c.RotationAngle())
}

func (r *RadarRenderer) DrawData(s Surface) {
	d := r.chart.Data()
	if d == nil {
		return
	}
	for _, set := range d.DataSets() {
		if !set.Visible || set.EntryCount() == 0 {
			continue
		}
		r.path.Reset()
		for j, e := range set.Entries() {
			x, y := r.position(e.Y, float64(j))
			if math.IsNaN(x) {
				continue
			}
			r.path.LineTo(x, y)
		}
		r.path.Close()
		o := &set.Radar
		if o.DrawFilled {
			s.DrawPath(&r.path, fillPaint(chart.WithAlpha(o.FillColor, o.FillAlpha)))
		}
		if !o.DrawFilled || o.FillAlpha < 255 {
			s.DrawPath(&r.path, strokePaint(set.Color(0), o.LineWidth, nil))
		}
	}
}

func (r *RadarRenderer) DrawValues(s Surface) {
	d := r.chart.Data()
	if d == nil {
		return
	}
	alpha := valueAlpha(r.chart)
	for _, set := range d.DataSets() {
		if !shouldDrawValues(set) {
			continue
		}
		f := set.ValueFormatter()
		for j, e := range set.Entries() {
			x, y := r.position(e.Y, float64(j))
			if set.DrawValues {
				c := fade(set.ValueTextColor(j), alpha)
				drawValue(s, f.FormatValue(e.Y, e), x, y-radarValueOffset, c, set.ValueTextSize)
			}
			drawIcon(s, set, e, x, y)
		}
	}
}

// DrawExtras draws the web: spokes from the center and one ring per label
// of the radial axis.
func (r *RadarRenderer) DrawExtras(s Surface) {
	d := r.chart.Data()
	if d == nil || !r.web.Draw {
		return
	}
	most := d.MaxEntryCountSet()
	if most == nil {
		return
	}
	c := r.chart
	cx, cy := c.Center()
	slice := c.SliceAngle()
	rotation := c.RotationAngle()
	axis := c.YAxis()

	spoke := strokePaint(chart.WithAlpha(r.web.Color, r.web.Alpha), r.web.LineWidth, nil)
	for i := 0; i < most.EntryCount(); i += 1 + r.web.SkipLines {
		x, y := viewport.Position(cx, cy, axis.Range()*c.Factor(), slice*float64(i)+rotation)
		s.DrawLine(cx, cy, x, y, spoke)
	}

	ring := strokePaint(chart.WithAlpha(r.web.InnerColor, r.web.Alpha), r.web.InnerLineWidth, nil)
	for _, v := range axis.Entries() {
		dist := (v - c.YChartMin()) * c.Factor()
		for i := 0; i < most.EntryCount(); i++ {
			x1, y1 := viewport.Position(cx, cy, dist, slice*float64(i)+rotation)
			x2, y2 := viewport.Position(cx, cy, dist, slice*float64(i+1)+rotation)
			s.DrawLine(x1, y1, x2, y2, ring)
		}
	}
}

func (r *RadarRenderer) DrawHighlighted(s Surface, hs []chart.Highlight) {
	d := r.chart.Data()
	if d == nil {
		return
	}
	h := r.chart.Handler()
	for i := range hs {
		set := d.DataSet(hs[i].DataSetIndex)
		if set == nil || !set.HighlightEnabled {
			continue
		}
		index := int(hs[i].X)
		e := set.Entry(index)
		if e == nil || float64(index) >= float64(set.EntryCount())*r.chart.PhaseX() {
			continue
		}
		x, y := r.position(e.Y, hs[i].X)
		hs[i].DrawX, hs[i].DrawY = x, y
		o := &set.Radar
		drawHighlightLines(s, h, x, y, set.HighlightColor, o.Highlight)
		if !o.DrawHighlightCircle || math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		stroke := o.HighlightCircleStrokeColor
		if stroke.A == 0 {
			stroke = set.Color(0)
		}
		if o.HighlightCircleStrokeAlpha < 255 {
			stroke = chart.WithAlpha(stroke, o.HighlightCircleStrokeAlpha)
		}
		r.drawHighlightCircle(s, x, y, o, stroke)
	}
}

func (r *RadarRenderer) drawHighlightCircle(s Surface, x, y float64, o *chart.RadarOptions, stroke color.NRGBA) {
	if o.HighlightCircleFillColor.A > 0 {
		r.path.Reset()
		r.path.Circle(x, y, o.HighlightCircleOuterRadius)
		if o.HighlightCircleInnerRadius > 0 {
			r.path.ArcTo(x, y, o.HighlightCircleInnerRadius, 0, -360, true)
			r.path.Close()
		}
		s.DrawPath(&r.path, fillPaint(o.HighlightCircleFillColor))
	}
	if stroke.A > 0 {
		s.DrawCircle(x, y, o.HighlightCircleOuterRadius, strokePaint(stroke, o.HighlightCircleStrokeWidth, nil))
	}
}
