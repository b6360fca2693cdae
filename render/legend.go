package render

import (
	"git.sr.ht/~whereswaldon/chartkit/chart"
	"git.sr.ht/~whereswaldon/chartkit/viewport"
)

// Measurer measures text. Every Surface is one.
type Measurer interface {
	MeasureText(text string, p Paint) (w, h float64)
}

// LegendRenderer lays out and draws a chart legend.
type LegendRenderer struct {
	h      *viewport.Handler
	Legend *chart.Legend
}

func NewLegendRenderer(h *viewport.Handler, l *chart.Legend) *LegendRenderer {
	return &LegendRenderer{h: h, Legend: l}
}

func (r *LegendRenderer) labelPaint() Paint {
	return Paint{Style: Fill, Color: r.Legend.TextColor, TextSize: r.Legend.TextSize, Align: AlignLeft}
}

// ComputeLegend derives the legend entries from d and measures them.
func (r *LegendRenderer) ComputeLegend(d *chart.Data, m Measurer) {
	l := r.Legend
	l.Compute(d)
	p := r.labelPaint()
	l.Layout(func(text string) (float64, float64) {
		return m.MeasureText(text, p)
	}, r.h.ContentWidth())
}

// originX returns the x where entries start, per alignment and direction.
func (r *LegendRenderer) originX() float64 {
	l := r.Legend
	w, _ := l.NeededSize()
	vertical := l.Orientation == chart.LegendVertical
	ltr := l.Direction == chart.LeftToRight
	var x float64
	switch l.Horizontal {
	case chart.LegendLeft:
		x = r.h.ContentLeft() + l.XOffset
		if vertical {
			x = l.XOffset
		}
		if !ltr {
			x += w
		}
	case chart.LegendRight:
		x = r.h.ContentRight() - l.XOffset
		if vertical {
			x = r.h.ChartWidth() - l.XOffset
		}
		if ltr {
			x -= w
		}
	default:
		if vertical {
			x = r.h.ChartWidth() / 2
			if ltr {
				x -= w / 2
			} else {
				x += w / 2
			}
		} else {
			x = r.h.ContentLeft() + r.h.ContentWidth()/2
		}
	}
	return x
}

// DrawLegend draws the laid out legend. Forms are centered on the middle of
// their label line.
func (r *LegendRenderer) DrawLegend(s Surface) {
	l := r.Legend
	entries := l.Entries()
	if !l.Enabled || len(entries) == 0 {
		return
	}
	if l.Orientation == chart.LegendVertical {
		r.drawVertical(s, entries)
		return
	}
	r.drawHorizontal(s, entries)
}

func (r *LegendRenderer) drawHorizontal(s Surface, entries []chart.LegendEntry) {
	l := r.Legend
	p := r.labelPaint()
	lineHeight, spacing := l.LineHeight(), l.LineSpacing()
	_, needed := l.NeededSize()
	rtl := l.Direction == chart.RightToLeft
	step := func(d float64) float64 {
		if rtl {
			return -d
		}
		return d
	}

	origin := r.originX()
	var y float64
	switch l.Vertical {
	case chart.LegendTop:
		y = l.YOffset
	case chart.LegendBottom:
		y = r.h.ChartHeight() - l.YOffset - needed
	default:
		y = (r.h.ChartHeight()-needed)/2 + l.YOffset
	}

	lines := l.LineSizes()
	line := 0
	x := origin
	center := func() {
		if l.Horizontal == chart.LegendCenter && line < len(lines) {
			x -= step(lines[line].W / 2)
			line++
		}
	}
	center()
	for i, e := range entries {
		if i > 0 && l.BreaksBefore(i) {
			x = origin
			y += lineHeight + spacing
			center()
		}
		size := l.FormSizeOf(e)
		if e.Form != chart.FormNone {
			if rtl {
				x -= size
			}
			r.drawForm(s, x, y+lineHeight/2, e)
			if !rtl {
				x += size
			}
		}
		if e.Label == "" {
			x += step(l.StackSpace)
			continue
		}
		if e.Form != chart.FormNone {
			x += step(l.FormToTextSpace)
		}
		w := l.LabelSize(i).W
		if rtl {
			x -= w
		}
		s.DrawText(e.Label, x, y+lineHeight, p)
		if !rtl {
			x += w
		}
		x += step(l.XEntrySpace)
	}
}

func (r *LegendRenderer) drawVertical(s Surface, entries []chart.LegendEntry) {
	l := r.Legend
	p := r.labelPaint()
	lineHeight, spacing := l.LineHeight(), l.LineSpacing()
	_, needed := l.NeededSize()
	ltr := l.Direction == chart.LeftToRight

	origin := r.originX()
	var y float64
	switch l.Vertical {
	case chart.LegendTop:
		y = r.h.ContentTop()
		if l.Horizontal == chart.LegendCenter {
			y = 0
		}
		y += l.YOffset
	case chart.LegendBottom:
		y = r.h.ContentBottom()
		if l.Horizontal == chart.LegendCenter {
			y = r.h.ChartHeight()
		}
		y -= needed + l.YOffset
	default:
		y = r.h.ChartHeight()/2 - needed/2 + l.YOffset
	}

	var stack float64
	stacked := false
	for i, e := range entries {
		size := l.FormSizeOf(e)
		x := origin
		if e.Form != chart.FormNone {
			if ltr {
				x += stack
			} else {
				x -= size + stack
			}
			r.drawForm(s, x, y+lineHeight/2, e)
			if ltr {
				x += size
			}
		}
		if e.Label == "" {
			stack += size + l.StackSpace
			stacked = true
			continue
		}
		if stacked {
			// The label goes below the stack of forms.
			x = origin
			y += lineHeight + spacing
		} else if e.Form != chart.FormNone {
			if ltr {
				x += l.FormToTextSpace
			} else {
				x -= l.FormToTextSpace
			}
		}
		if !ltr {
			x -= l.LabelSize(i).W
		}
		s.DrawText(e.Label, x, y+lineHeight, p)
		y += lineHeight + spacing
		stack = 0
		stacked = false
	}
}

// drawForm draws the form of e starting at x, centered vertically on y.
func (r *LegendRenderer) drawForm(s Surface, x, y float64, e chart.LegendEntry) {
	if e.Color.A == 0 {
		return
	}
	l := r.Legend
	form := e.Form
	if form == chart.FormDefault {
		form = l.Form
	}
	size := l.FormSizeOf(e)
	half := size / 2
	switch form {
	case chart.FormCircle, chart.FormDefault:
		s.DrawCircle(x+half, y, half, fillPaint(e.Color))
	case chart.FormSquare:
		s.DrawRect(x, y-half, x+size, y+half, fillPaint(e.Color))
	case chart.FormLine:
		width := e.FormLineWidth
		if width <= 0 {
			width = l.FormLineWidth
		}
		dash := e.FormLineDash
		if dash == nil {
			dash = l.FormLineDash
		}
		s.DrawLine(x, y, x+size, y, strokePaint(e.Color, width, dash))
	}
}
