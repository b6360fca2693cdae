package highlight

import (
	"git.sr.ht/~whereswaldon/chartkit/chart"
	"git.sr.ht/~whereswaldon/chartkit/viewport"
)

// PolarProvider is the part of a pie or radar chart the highlighters read.
type PolarProvider interface {
	Data() *chart.Data
	Center() (x, y float64)
	Radius() float64
	// RotationAngle is the angle of the first slice, in degrees.
	RotationAngle() float64
	PhaseX() float64
	PhaseY() float64
}

// PieProvider adds the slice angles of a pie chart.
type PieProvider interface {
	PolarProvider
	Angles() chart.PieAngles
}

// RadarProvider adds the web geometry of a radar chart.
type RadarProvider interface {
	PolarProvider
	// Factor converts values into distances from the center.
	Factor() float64
	SliceAngle() float64
	YChartMin() float64
}

// touchAngle returns the angle of a touch inside the chart radius, and
// false outside of it.
func touchAngle(p PolarProvider, x, y float64) (float64, bool) {
	cx, cy := p.Center()
	if viewport.DistanceToCenter(cx, cy, x, y) > p.Radius() {
		return 0, false
	}
	return viewport.AngleForPoint(cx, cy, x, y), true
}

func validIndex(d *chart.Data, index int) bool {
	if d == nil || index < 0 {
		return false
	}
	s := d.MaxEntryCountSet()
	return s != nil && index < s.EntryCount()
}

// PieHighlighter selects the slice under a touch.
type PieHighlighter struct {
	provider PieProvider
}

func NewPieHighlighter(p PieProvider) *PieHighlighter {
	return &PieHighlighter{provider: p}
}

func (h *PieHighlighter) Highlight(x, y float64) *chart.Highlight {
	angle, ok := touchAngle(h.provider, x, y)
	if !ok {
		return nil
	}
	if phase := h.provider.PhaseY(); phase > 0 {
		angle /= phase
	}
	a := viewport.NormalizedAngle(angle - h.provider.RotationAngle())
	index := h.provider.Angles().IndexForAngle(a)
	d := h.provider.Data()
	if !validIndex(d, index) {
		return nil
	}
	s := d.DataSet(0)
	e := s.Entry(index)
	if e == nil {
		return nil
	}
	out := chart.NewHighlight(float64(index), e.Y, 0)
	out.XPx, out.YPx = x, y
	out.Axis = s.Axis
	out.Entry = e
	return &out
}

// RadarHighlighter selects the web axis under a touch and then the data set
// whose value there is closest to the touch distance.
type RadarHighlighter struct {
	provider RadarProvider
}

func NewRadarHighlighter(p RadarProvider) *RadarHighlighter {
	return &RadarHighlighter{provider: p}
}

// IndexForAngle returns the web axis nearest to angle.
func (h *RadarHighlighter) IndexForAngle(angle float64) int {
	a := viewport.NormalizedAngle(angle - h.provider.RotationAngle())
	slice := h.provider.SliceAngle()
	s := h.provider.Data().MaxEntryCountSet()
	if s == nil {
		return 0
	}
	for i := 0; i < s.EntryCount(); i++ {
		if slice*float64(i+1)-slice/2 > a {
			return i
		}
	}
	return 0
}

func (h *RadarHighlighter) Highlight(x, y float64) *chart.Highlight {
	angle, ok := touchAngle(h.provider, x, y)
	if !ok {
		return nil
	}
	index := h.IndexForAngle(angle)
	if !validIndex(h.provider.Data(), index) {
		return nil
	}
	cx, cy := h.provider.Center()
	factor := h.provider.Factor()
	if factor == 0 {
		return nil
	}
	dist := viewport.DistanceToCenter(cx, cy, x, y) / factor

	var best *chart.Highlight
	bestDist := 0.0
	for _, c := range h.highlightsAt(index) {
		d := c.Y - h.provider.YChartMin() - dist
		if d < 0 {
			d = -d
		}
		if best == nil || d < bestDist {
			c := c
			best, bestDist = &c, d
		}
	}
	return best
}

func (h *RadarHighlighter) highlightsAt(index int) []chart.Highlight {
	p := h.provider
	cx, cy := p.Center()
	var out []chart.Highlight
	for i, s := range p.Data().DataSets() {
		e := s.Entry(index)
		if e == nil || !s.Visible || !s.HighlightEnabled {
			continue
		}
		r := (e.Y - p.YChartMin()) * p.Factor() * p.PhaseY()
		px, py := viewport.Position(cx, cy, r, p.SliceAngle()*float64(index)*p.PhaseX()+p.RotationAngle())
		hl := chart.NewHighlight(float64(index), e.Y, i)
		hl.XPx, hl.YPx = px, py
		hl.Axis = s.Axis
		hl.Entry = e
		out = append(out, hl)
	}
	return out
}
