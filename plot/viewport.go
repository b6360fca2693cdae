package plot

import (
	"time"

	"git.sr.ht/~whereswaldon/chartkit/animation"
	"git.sr.ht/~whereswaldon/chartkit/chart"
)

// LowestVisibleX returns the smallest x value inside the content.
func (c *Chart) LowestVisibleX() float64 {
	x, _ := c.left.ValuesByTouchPoint(c.handler.ContentLeft(), c.handler.ContentBottom())
	return max(c.XAxis.Min(), x)
}

// HighestVisibleX returns the largest x value inside the content.
func (c *Chart) HighestVisibleX() float64 {
	x, _ := c.left.ValuesByTouchPoint(c.handler.ContentRight(), c.handler.ContentBottom())
	return min(c.XAxis.Max(), x)
}

// VisibleXRange returns the width of the visible x window in x units.
func (c *Chart) VisibleXRange() float64 {
	return c.HighestVisibleX() - c.LowestVisibleX()
}

// ValuesByTouchPoint converts a pixel position to values of axis.
func (c *Chart) ValuesByTouchPoint(x, y float64, axis chart.AxisDependency) (float64, float64) {
	return c.Transformer(axis).ValuesByTouchPoint(x, y)
}

// PixelForValues converts values of axis to a pixel position.
func (c *Chart) PixelForValues(x, y float64, axis chart.AxisDependency) (float64, float64) {
	return c.Transformer(axis).PixelForValues(x, y)
}

// ZoomIn zooms in by a fixed step around the content center.
func (c *Chart) ZoomIn() {
	c.handler.ZoomIn(c.handler.ContentCenter())
}

// ZoomOut zooms out by a fixed step around the content center.
func (c *Chart) ZoomOut() {
	c.handler.ZoomOut(c.handler.ContentCenter())
}

// ZoomAt scales the view by sx, sy keeping pixel x, y in place.
func (c *Chart) ZoomAt(sx, sy, x, y float64) {
	c.handler.ZoomAt(sx, sy, x, y)
}

// ResetZoom shows the whole chart.
func (c *Chart) ResetZoom() {
	c.handler.FitScreen()
}

// Translate drags the view by dx, dy pixels.
func (c *Chart) Translate(dx, dy float64) {
	c.handler.Translate(dx, dy)
}

// CenterViewTo moves the view so the values x, y of axis are centered.
func (c *Chart) CenterViewTo(x, y float64, axis chart.AxisDependency) {
	xInView := c.XAxis.Range() / c.handler.ScaleX()
	yInView := c.YAxis(axis).Range() / c.handler.ScaleY()
	px, py := c.PixelForValues(x-xInView/2, y+yInView/2, axis)
	c.handler.CenterViewPort(px, py)
}

// MoveViewTo moves the view so x is at the left edge of the content and y
// of axis is centered vertically.
func (c *Chart) MoveViewTo(x, y float64, axis chart.AxisDependency) {
	yInView := c.YAxis(axis).Range() / c.handler.ScaleY()
	px, py := c.PixelForValues(x, y+yInView/2, axis)
	c.handler.CenterViewPort(px, py)
}

// MoveViewToAnimated glides the view to where MoveViewTo would put it over
// d. A move in progress is replaced.
func (c *Chart) MoveViewToAnimated(x, y float64, axis chart.AxisDependency, d time.Duration, easing animation.Easing) {
	if c.move != nil {
		c.move.Cancel()
	}
	ox, oy := c.ValuesByTouchPoint(c.handler.ContentLeft(), c.handler.ContentTop(), axis)
	ty := y + c.YAxis(axis).Range()/c.handler.ScaleY()/2
	c.move = animation.Run(c.clock, d, easing, func(p float64) {
		px, py := c.PixelForValues(ox+(x-ox)*p, oy+(ty-oy)*p, axis)
		c.handler.CenterViewPort(px, py)
	})
}

// SetVisibleXRangeMaximum limits zooming out to showing at most r x units.
func (c *Chart) SetVisibleXRangeMaximum(r float64) {
	c.handler.SetMinimumScaleX(c.XAxis.Range() / r)
}

// SetVisibleXRangeMinimum limits zooming in to showing at least r x units.
func (c *Chart) SetVisibleXRangeMinimum(r float64) {
	c.handler.SetMaximumScaleX(c.XAxis.Range() / r)
}

// SetVisibleYRangeMaximum limits zooming out on axis to r units.
func (c *Chart) SetVisibleYRangeMaximum(r float64, axis chart.AxisDependency) {
	c.handler.SetMinimumScaleY(c.YAxis(axis).Range() / r)
}

// SetVisibleYRangeMinimum limits zooming in on axis to r units.
func (c *Chart) SetVisibleYRangeMinimum(r float64, axis chart.AxisDependency) {
	c.handler.SetMaximumScaleY(c.YAxis(axis).Range() / r)
}
