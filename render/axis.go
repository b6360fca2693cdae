package render

import "git.sr.ht/~whereswaldon/chartkit/chart"

// axisLabelGap separates axis labels from the content rectangle.
const axisLabelGap = 4

// AxisRenderer draws the grid lines and labels of the x axis and the two y
// axes of a cartesian chart. Label positions follow the visible window, so
// zooming in yields finer labels.
type AxisRenderer struct {
	chart Chart
	// Any axis may be nil to skip it.
	X, Left, Right *chart.Axis
}

func NewAxisRenderer(c Chart, x, left, right *chart.Axis) *AxisRenderer {
	return &AxisRenderer{chart: c, X: x, Left: left, Right: right}
}

func (r *AxisRenderer) xEntries() []float64 {
	return r.X.EntriesBetween(r.chart.LowestVisibleX(), r.chart.HighestVisibleX())
}

func (r *AxisRenderer) yEntries(a *chart.Axis) []float64 {
	h := r.chart.Handler()
	t := r.chart.Transformer(a.Side)
	_, lo := t.ValuesByTouchPoint(h.ContentLeft(), h.ContentBottom())
	_, hi := t.ValuesByTouchPoint(h.ContentLeft(), h.ContentTop())
	return a.EntriesBetween(lo, hi)
}

func usable(a *chart.Axis) bool {
	return a != nil && a.Enabled
}

// DrawGrid draws the grid lines of every enabled axis inside the content
// rectangle.
func (r *AxisRenderer) DrawGrid(s Surface) {
	h := r.chart.Handler()
	defer clipContent(s, h)()
	if usable(r.X) && r.X.DrawGridLines {
		p := strokePaint(r.X.GridColor, 1, nil)
		t := r.chart.Transformer(chart.AxisLeft)
		for _, v := range r.xEntries() {
			x, _ := t.PixelForValues(v, 0)
			if h.IsInBoundsX(x) {
				s.DrawLine(x, h.ContentTop(), x, h.ContentBottom(), p)
			}
		}
	}
	for _, a := range []*chart.Axis{r.Left, r.Right} {
		if !usable(a) || !a.DrawGridLines {
			continue
		}
		p := strokePaint(a.GridColor, 1, nil)
		t := r.chart.Transformer(a.Side)
		for _, v := range r.yEntries(a) {
			_, y := t.PixelForValues(0, v)
			if h.IsInBoundsY(y) {
				s.DrawLine(h.ContentLeft(), y, h.ContentRight(), y, p)
			}
		}
	}
}

// DrawLabels draws the labels of every enabled axis outside the content
// rectangle: x labels below it, y labels beside it.
func (r *AxisRenderer) DrawLabels(s Surface) {
	h := r.chart.Handler()
	if usable(r.X) && r.X.DrawLabels {
		p := textPaint(r.X.LabelColor, r.X.TextSize)
		t := r.chart.Transformer(chart.AxisLeft)
		entries := r.xEntries()
		labels := r.X.Labels()
		for i, v := range entries {
			x, _ := t.PixelForValues(v, 0)
			if !h.IsInBoundsX(x) {
				continue
			}
			_, th := s.MeasureText(labels[i], p)
			s.DrawText(labels[i], x, h.ContentBottom()+axisLabelGap+th, p)
		}
	}
	for _, a := range []*chart.Axis{r.Left, r.Right} {
		if !usable(a) || !a.DrawLabels {
			continue
		}
		p := textPaint(a.LabelColor, a.TextSize)
		x := h.ContentLeft() - axisLabelGap
		p.Align = AlignRight
		if a.Side == chart.AxisRight {
			x = h.ContentRight() + axisLabelGap
			p.Align = AlignLeft
		}
		t := r.chart.Transformer(a.Side)
		entries := r.yEntries(a)
		labels := a.Labels()
		for i, v := range entries {
			_, y := t.PixelForValues(0, v)
			if !h.IsInBoundsY(y) {
				continue
			}
			_, th := s.MeasureText(labels[i], p)
			s.DrawText(labels[i], x, y+th/2, p)
		}
	}
}

// DrawLimitLines draws the limit lines of the axes whose
// LimitLinesBehindData matches behind. Lines are clipped to the content,
// widened by their width so lines on its edge stay whole.
func (r *AxisRenderer) DrawLimitLines(s Surface, behind bool) {
	h := r.chart.Handler()
	if a := r.X; usable(a) && a.DrawLimitLines && a.LimitLinesBehindData == behind {
		t := r.chart.Transformer(chart.AxisLeft)
		for _, l := range a.LimitLines() {
			if !l.Enabled {
				continue
			}
			x, _ := t.PixelForValues(l.Limit, 0)
			s.Save()
			s.ClipRect(h.ContentLeft()-l.Width, h.ContentTop(), h.ContentRight()+l.Width, h.ContentBottom())
			if l.Width > 0 {
				s.DrawLine(x, h.ContentTop(), x, h.ContentBottom(), strokePaint(l.Color, l.Width, l.Dash))
			}
			s.Restore()
			r.drawVerticalLimitLabel(s, l, x)
		}
	}
	for _, a := range []*chart.Axis{r.Left, r.Right} {
		if !usable(a) || !a.DrawLimitLines || a.LimitLinesBehindData != behind {
			continue
		}
		t := r.chart.Transformer(a.Side)
		for _, l := range a.LimitLines() {
			if !l.Enabled {
				continue
			}
			_, y := t.PixelForValues(0, l.Limit)
			s.Save()
			s.ClipRect(h.ContentLeft(), h.ContentTop()-l.Width, h.ContentRight(), h.ContentBottom()+l.Width)
			if l.Width > 0 {
				s.DrawLine(h.ContentLeft(), y, h.ContentRight(), y, strokePaint(l.Color, l.Width, l.Dash))
			}
			s.Restore()
			r.drawHorizontalLimitLabel(s, l, y)
		}
	}
}

// drawVerticalLimitLabel places the label of an x limit line beside it, at
// the top or bottom of the content.
func (r *AxisRenderer) drawVerticalLimitLabel(s Surface, l *chart.LimitLine, x float64) {
	if l.Label == "" {
		return
	}
	h := r.chart.Handler()
	p := textPaint(l.TextColor, l.TextSize)
	_, th := s.MeasureText(l.Label, p)
	xOff := l.Width + l.XOffset
	switch l.LabelPosition {
	case chart.LimitRightTop:
		p.Align = AlignLeft
		s.DrawText(l.Label, x+xOff, h.ContentTop()+l.YOffset+th, p)
	case chart.LimitRightBottom:
		p.Align = AlignLeft
		s.DrawText(l.Label, x+xOff, h.ContentBottom()-l.YOffset, p)
	case chart.LimitLeftTop:
		p.Align = AlignRight
		s.DrawText(l.Label, x-xOff, h.ContentTop()+l.YOffset+th, p)
	default:
		p.Align = AlignRight
		s.DrawText(l.Label, x-xOff, h.ContentBottom()-l.YOffset, p)
	}
}

// drawHorizontalLimitLabel places the label of a y limit line above or
// below it, at the left or right of the content.
func (r *AxisRenderer) drawHorizontalLimitLabel(s Surface, l *chart.LimitLine, y float64) {
	if l.Label == "" {
		return
	}
	h := r.chart.Handler()
	p := textPaint(l.TextColor, l.TextSize)
	_, th := s.MeasureText(l.Label, p)
	yOff := l.Width + l.YOffset
	switch l.LabelPosition {
	case chart.LimitRightTop:
		p.Align = AlignRight
		s.DrawText(l.Label, h.ContentRight()-l.XOffset, y-yOff, p)
	case chart.LimitRightBottom:
		p.Align = AlignRight
		s.DrawText(l.Label, h.ContentRight()-l.XOffset, y+yOff+th, p)
	case chart.LimitLeftTop:
		p.Align = AlignLeft
		s.DrawText(l.Label, h.ContentLeft()+l.XOffset, y-yOff, p)
	default:
		p.Align = AlignLeft
		s.DrawText(l.Label, h.ContentLeft()+l.XOffset, y+yOff+th, p)
	}
}
