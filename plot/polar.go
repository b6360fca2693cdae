package plot

import "git.sr.ht/~whereswaldon/chartkit/chart"

// Center returns the pixel center of a pie or radar chart.
func (c *Chart) Center() (x, y float64) {
	return c.handler.ContentCenter()
}

// Radius returns the pixel radius of a pie or radar chart. A pie leaves
// room for its first set's selection shift.
func (c *Chart) Radius() float64 {
	r := min(c.handler.ContentWidth(), c.handler.ContentHeight()) / 2
	if c.IsPie() {
		if s := c.data.DataSet(0); s != nil {
			r -= s.Pie.SelectionShift
		}
	}
	return max(r, 0)
}

// RotationAngle is the angle of the first pie slice or radar spoke, in
// degrees clockwise from three o'clock.
func (c *Chart) RotationAngle() float64 { return c.rotation }

func (c *Chart) SetRotationAngle(deg float64) {
	c.rotation = deg
	c.Invalidate()
}

func (c *Chart) Angles() chart.PieAngles { return c.angles }

// Factor converts radar values into distances from the center.
func (c *Chart) Factor() float64 {
	rng := c.LeftAxis.Range()
	if rng == 0 {
		return 0
	}
	return min(c.handler.ContentWidth(), c.handler.ContentHeight()) / 2 / rng
}

// SliceAngle is the angle between two radar spokes.
func (c *Chart) SliceAngle() float64 {
	d := c.Data()
	if d == nil {
		return 0
	}
	s := d.MaxEntryCountSet()
	if s == nil || s.EntryCount() == 0 {
		return 0
	}
	return 360 / float64(s.EntryCount())
}

func (c *Chart) YChartMin() float64 { return c.LeftAxis.Min() }
