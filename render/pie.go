package render

import (
	"image/color"
	"math"

	"git.sr.ht/~whereswaldon/chartkit/chart"
	"git.sr.ht/~whereswaldon/chartkit/highlight"
	"git.sr.ht/~whereswaldon/chartkit/viewport"
)

const (
	degToRad = math.Pi / 180
	// angleEpsilon is the tolerance for a sweep to count as a full circle.
	angleEpsilon = 1e-9
	// labelGap separates outside labels from the end of their value line.
	labelGap = 5
)

// PieChart is the part of a pie chart host the pie renderer reads.
type PieChart interface {
	highlight.PieProvider
	Handler() *viewport.Handler
	Highlighted() []chart.Highlight
}

// PieStyle holds the chart wide pie settings.
type PieStyle struct {
	DrawHole bool
	// HoleRadius and TransparentCircleRadius are percentages of the pie
	// radius.
	HoleRadius              float64
	TransparentCircleRadius float64
	HoleColor               color.NRGBA
	// TransparentCircleColor is faded in with both animation phases.
	TransparentCircleColor color.NRGBA

	DrawEntryLabels    bool
	EntryLabelColor    color.NRGBA
	EntryLabelTextSize float64
	// UsePercentValues draws each value as its share of the total.
	UsePercentValues bool

	CenterText      string
	CenterTextColor color.NRGBA
	CenterTextSize  float64
}

// DefaultPieStyle returns a donut with white hole and entry labels.
func DefaultPieStyle() PieStyle {
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	return PieStyle{
		DrawHole:                true,
		HoleRadius:              50,
		TransparentCircleRadius: 55,
		HoleColor:               white,
		TransparentCircleColor:  chart.WithAlpha(white, 105),
		DrawEntryLabels:         true,
		EntryLabelColor:         white,
		EntryLabelTextSize:      13,
		CenterTextColor:         color.NRGBA{A: 0xff},
		CenterTextSize:          12,
	}
}

// PieRenderer draws the slices, labels, hole and center text of a pie.
type PieRenderer struct {
	chart PieChart
	style *PieStyle
	path  Path
}

func NewPieRenderer(c PieChart, style *PieStyle) *PieRenderer {
	return &PieRenderer{chart: c, style: style}
}

func fullCircle(sweep float64) bool {
	return sweep >= 360 && math.Mod(sweep, 360) <= angleEpsilon
}

// pieSet returns the single data set of a pie, or nil.
func (r *PieRenderer) pieSet() (*chart.Data, *chart.DataSet) {
	d := r.chart.Data()
	if d == nil {
		return nil, nil
	}
	set := d.DataSet(0)
	if set == nil || !set.Visible || set.EntryCount() == 0 {
		return d, nil
	}
	return d, set
}

func visibleSlices(set *chart.DataSet) int {
	n := 0
	for _, e := range set.Entries() {
		if e.Y != 0 {
			n++
		}
	}
	return n
}

// sliceSpace returns the gap between slices, dropped when enabled and the
// smallest slice would vanish in it.
func (r *PieRenderer) sliceSpace(d *chart.Data, set *chart.DataSet) float64 {
	o := &set.Pie
	if !o.AutoDisableSliceSpacing {
		return o.SliceSpace
	}
	ratio := o.SliceSpace / r.chart.Handler().SmallestContentExtension()
	minRatio := d.YMin() / d.YValueSum() * 2
	if ratio > minRatio {
		return 0
	}
	return o.SliceSpace
}

func (r *PieRenderer) holeRadius() float64 {
	if !r.style.DrawHole {
		return 0
	}
	return r.chart.Radius() * r.style.HoleRadius / 100
}

// slice describes one slice to outline.
type slice struct {
	// start is the unrotated angle the slice begins at and sweep its draw
	// angle, both before animation.
	start, sweep float64
	// outer is the radius of the arc, larger than the pie radius for
	// highlighted slices.
	outer float64
	space float64
	// single is set when only one slice is visible, which then ignores the
	// slice space.
	single bool
}

// slicePath outlines sl into r.path: the outer arc, then either the inner
// arc along the hole or the point the slice narrows to.
func (r *PieRenderer) slicePath(sl slice) {
	p := &r.path
	p.Reset()
	cx, cy := r.chart.Center()
	radius := r.chart.Radius()
	rotation := r.chart.RotationAngle()
	phaseY := r.chart.PhaseY()
	spaceAngle := func(radius float64) float64 {
		if sl.single || radius == 0 {
			return 0
		}
		return sl.space / (degToRad * radius)
	}

	outerSpace := spaceAngle(radius)
	startOuter := rotation + (sl.start+outerSpace/2)*phaseY
	sweepOuter := max((sl.sweep-outerSpace)*phaseY, 0)
	shiftedSpace := spaceAngle(sl.outer)
	start := rotation + (sl.start+shiftedSpace/2)*phaseY
	sweep := max((sl.sweep-shiftedSpace)*phaseY, 0)

	if fullCircle(sweep) {
		p.Circle(cx, cy, sl.outer)
	} else {
		p.ArcTo(cx, cy, sl.outer, start, sweep, true)
	}

	spaced := sl.space > 0 && sl.sweep <= 180
	var spacedRadius float64
	if spaced {
		ax, ay := viewport.Position(cx, cy, radius, startOuter)
		spacedRadius = minimumSpacedRadius(cx, cy, radius, sl.sweep*phaseY, ax, ay, startOuter, sweepOuter)
	}

	inner := r.holeRadius()
	if r.style.DrawHole && (inner > 0 || spaced) {
		if spaced {
			inner = max(inner, math.Abs(spacedRadius))
		}
		innerSpace := spaceAngle(inner)
		startInner := rotation + (sl.start+innerSpace/2)*phaseY
		sweepInner := max((sl.sweep-innerSpace)*phaseY, 0)
		if fullCircle(sweep) {
			p.ArcTo(cx, cy, inner, 0, -360, true)
		} else {
			p.ArcTo(cx, cy, inner, startInner+sweepInner, -sweepInner, false)
		}
	} else if math.Mod(sweep, 360) > angleEpsilon {
		if spaced {
			x, y := viewport.Position(cx, cy, spacedRadius, start+sweep/2)
			p.LineTo(x, y)
		} else {
			p.LineTo(cx, cy)
		}
	}
	p.Close()
}

// minimumSpacedRadius returns the distance from the center at which the
// straight edges of a spaced slice meet.
func minimumSpacedRadius(cx, cy, radius, angle, arcStartX, arcStartY, startAngle, sweepAngle float64) float64 {
	middle := startAngle + sweepAngle/2
	endX, endY := viewport.Position(cx, cy, radius, startAngle+sweepAngle)
	midX, midY := viewport.Position(cx, cy, radius, middle)
	base := math.Hypot(endX-arcStartX, endY-arcStartY)
	height := base / 2 * math.Tan((180-angle)/2*degToRad)
	spaced := radius - height
	return spaced - math.Hypot(midX-(endX+arcStartX)/2, midY-(endY+arcStartY)/2)
}

func (r *PieRenderer) highlighted(index int) bool {
	for _, h := range r.chart.Highlighted() {
		if int(h.X) == index && h.DataSetIndex == 0 {
			return true
		}
	}
	return false
}

// DrawData draws every slice except the highlighted ones.
func (r *PieRenderer) DrawData(s Surface) {
	d, set := r.pieSet()
	if set == nil {
		return
	}
	angles := r.chart.Angles().Draw
	phaseX := r.chart.PhaseX()
	visible := visibleSlices(set)
	space := 0.0
	if visible > 1 {
		space = r.sliceSpace(d, set)
	}
	var angle float64
	for j, e := range set.Entries() {
		if j >= len(angles) {
			break
		}
		sweep := angles[j]
		if e.Y != 0 && !r.highlighted(j) {
			r.slicePath(slice{
				start:  angle,
				sweep:  sweep,
				outer:  r.chart.Radius(),
				space:  space,
				single: visible == 1,
			})
			s.DrawPath(&r.path, fillPaint(set.Color(j)))
		}
		angle += sweep * phaseX
	}
}

// DrawHighlighted draws highlighted slices pushed out by the selection
// shift of their set.
func (r *PieRenderer) DrawHighlighted(s Surface, hs []chart.Highlight) {
	d := r.chart.Data()
	if d == nil {
		return
	}
	a := r.chart.Angles()
	phaseX := r.chart.PhaseX()
	cx, cy := r.chart.Center()
	for i := range hs {
		index := int(hs[i].X)
		if index < 0 || index >= len(a.Draw) {
			continue
		}
		set := d.DataSet(hs[i].DataSetIndex)
		if set == nil || !set.HighlightEnabled {
			continue
		}
		visible := visibleSlices(set)
		space := 0.0
		if visible > 1 {
			space = set.Pie.SliceSpace
		}
		var angle float64
		if index > 0 {
			angle = a.Absolute[index-1] * phaseX
		}
		r.slicePath(slice{
			start:  angle,
			sweep:  a.Draw[index],
			outer:  r.chart.Radius() + set.Pie.SelectionShift,
			space:  space,
			single: visible == 1,
		})
		c := set.HighlightColor
		if c.A == 0 {
			c = set.Color(index)
		}
		s.DrawPath(&r.path, fillPaint(c))
		mid := r.chart.RotationAngle() + (angle+a.Draw[index]/2)*r.chart.PhaseY()
		hs[i].DrawX, hs[i].DrawY = viewport.Position(cx, cy, r.chart.Radius(), mid)
	}
}

// DrawValues draws the values and entry labels of the slices, inside them
// or outside with a value line.
func (r *PieRenderer) DrawValues(s Surface) {
	d, set := r.pieSet()
	if set == nil || (!set.DrawValues && !r.style.DrawEntryLabels) {
		return
	}
	a := r.chart.Angles()
	cx, cy := r.chart.Center()
	radius := r.chart.Radius()
	rotation := r.chart.RotationAngle()
	phaseX, phaseY := r.chart.PhaseX(), r.chart.PhaseY()
	alpha := valueAlpha(r.chart)
	holePercent := r.style.HoleRadius / 100

	labelOffset := radius / 10 * 3.6
	if r.style.DrawHole {
		labelOffset = (radius - radius*holePercent) / 2
	}
	labelRadius := radius - labelOffset
	sum := d.YValueSum()
	o := &set.Pie
	f := set.ValueFormatter()
	space := r.sliceSpace(d, set)
	_, textHeight := s.MeasureText("Q", Paint{TextSize: set.ValueTextSize})
	lineHeight := textHeight + 4

	for j, e := range set.Entries() {
		if j >= len(a.Draw) {
			break
		}
		var angle float64
		if j > 0 {
			angle = a.Absolute[j-1] * phaseX
		}
		sweep := a.Draw[j]
		spaceMiddle := space / (degToRad * labelRadius)
		angle += (sweep - spaceMiddle/2) / 2
		transformed := rotation + angle*phaseY

		value := e.Y
		if r.style.UsePercentValues && sum != 0 {
			value = e.Y / sum * 100
		}
		text := f.FormatValue(value, e)
		valueColor := fade(set.ValueTextColor(j), alpha)
		labelColor := fade(r.style.EntryLabelColor, alpha)
		cos, sin := math.Cos(transformed*degToRad), math.Sin(transformed*degToRad)

		drawXOutside := r.style.DrawEntryLabels && o.LabelPosition == chart.OutsideSlice
		drawYOutside := set.DrawValues && o.ValuePosition == chart.OutsideSlice
		drawXInside := r.style.DrawEntryLabels && o.LabelPosition == chart.InsideSlice
		drawYInside := set.DrawValues && o.ValuePosition == chart.InsideSlice

		if drawXOutside || drawYOutside {
			line1 := radius * o.ValueLinePart1Offset / 100
			if r.style.DrawHole {
				line1 = (radius-radius*holePercent)*o.ValueLinePart1Offset/100 + radius*holePercent
			}
			width := labelRadius * o.ValueLinePart2Length
			if o.ValueLineVariableLength {
				width *= math.Abs(sin)
			}
			x0, y0 := line1*cos+cx, line1*sin+cy
			x1 := labelRadius*(1+o.ValueLinePart1Length)*cos + cx
			y1 := labelRadius*(1+o.ValueLinePart1Length)*sin + cy
			x2, y2 := x1+width, y1
			labelX, align := x2+labelGap, AlignLeft
			if m := math.Mod(transformed, 360); m >= 90 && m <= 270 {
				x2 = x1 - width
				labelX, align = x2-labelGap, AlignRight
			}
			lineColor := o.ValueLineColor
			if o.UseSliceColorForLine {
				lineColor = set.Color(j)
			}
			if lineColor.A > 0 {
				p := strokePaint(lineColor, o.ValueLineWidth, nil)
				s.DrawLine(x0, y0, x1, y1, p)
				s.DrawLine(x1, y1, x2, y2, p)
			}
			valuePaint := Paint{Color: valueColor, TextSize: set.ValueTextSize, Align: align}
			labelPaint := Paint{Color: labelColor, TextSize: r.style.EntryLabelTextSize, Align: align}
			switch {
			case drawXOutside && drawYOutside:
				s.DrawText(text, labelX, y2, valuePaint)
				if e.Label != "" {
					s.DrawText(e.Label, labelX, y2+lineHeight, labelPaint)
				}
			case drawXOutside:
				if e.Label != "" {
					s.DrawText(e.Label, labelX, y2+lineHeight/2, labelPaint)
				}
			default:
				s.DrawText(text, labelX, y2+lineHeight/2, valuePaint)
			}
		}

		if drawXInside || drawYInside {
			x, y := labelRadius*cos+cx, labelRadius*sin+cy
			switch {
			case drawXInside && drawYInside:
				drawValue(s, text, x, y, valueColor, set.ValueTextSize)
				if e.Label != "" {
					drawValue(s, e.Label, x, y+lineHeight, labelColor, r.style.EntryLabelTextSize)
				}
			case drawXInside:
				if e.Label != "" {
					drawValue(s, e.Label, x, y+lineHeight/2, labelColor, r.style.EntryLabelTextSize)
				}
			default:
				drawValue(s, text, x, y+lineHeight/2, valueColor, set.ValueTextSize)
			}
		}

		if set.DrawIcons && e.Icon != nil {
			iconRadius := labelRadius + set.IconsOffsetY
			x, y := iconRadius*cos+cx, iconRadius*sin+cy
			s.DrawImage(e.Icon, x+set.IconsOffsetX, y)
		}
	}
}

// DrawExtras draws the hole, the transparent ring around it and the center
// text.
func (r *PieRenderer) DrawExtras(s Surface) {
	cx, cy := r.chart.Center()
	if r.style.DrawHole {
		radius := r.chart.Radius()
		hole := r.holeRadius()
		if r.style.HoleColor.A > 0 {
			s.DrawCircle(cx, cy, hole, fillPaint(r.style.HoleColor))
		}
		ring := radius * r.style.TransparentCircleRadius / 100
		if c := r.style.TransparentCircleColor; c.A > 0 && ring > hole {
			c = fade(c, min(max(r.chart.PhaseX()*r.chart.PhaseY(), 0), 1))
			r.path.Reset()
			r.path.Circle(cx, cy, ring)
			r.path.ArcTo(cx, cy, hole, 0, -360, true)
			r.path.Close()
			s.DrawPath(&r.path, fillPaint(c))
		}
	}
	if r.style.CenterText != "" {
		p := textPaint(r.style.CenterTextColor, r.style.CenterTextSize)
		_, h := s.MeasureText(r.style.CenterText, p)
		s.DrawText(r.style.CenterText, cx, cy+h/2, p)
	}
}
