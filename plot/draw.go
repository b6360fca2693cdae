package plot

import (
	"git.sr.ht/~whereswaldon/chartkit/chart"
	"git.sr.ht/~whereswaldon/chartkit/render"
)

// Draw paints the chart onto s. Cartesian charts draw the grid, the data
// clipped to the content between the limit lines behind and over it, then
// highlights, axis labels, values, extras and the legend, in that order.
// Radar charts draw their web before the data.
func (c *Chart) Draw(s render.Surface) {
	w, h := c.Size()
	if w <= 0 || h <= 0 {
		return
	}
	if c.Background.A > 0 {
		s.DrawRect(0, 0, w, h, render.Paint{Style: render.Fill, Color: c.Background})
	}
	if c.renderer == nil {
		if c.NoDataText != "" {
			p := render.Paint{Color: c.NoDataTextColor, TextSize: 12, Align: render.AlignCenter}
			_, th := s.MeasureText(c.NoDataText, p)
			s.DrawText(c.NoDataText, w/2, h/2+th/2, p)
		}
		return
	}
	if c.offsetsDirty {
		c.CalculateOffsets(s)
	}
	for _, b := range c.bars {
		b.DrawShadow = c.Bar.DrawShadow
		b.ValuesAboveBar = c.Bar.ValuesAboveBar
		b.HighlightFullBar = c.Bar.HighlightFullBar
	}
	if c.IsPolar() {
		c.drawPolar(s)
		return
	}
	if c.autoScale {
		c.autoScaleAxes(s)
	}
	c.axes.DrawGrid(s)
	c.axes.DrawLimitLines(s, true)
	s.Save()
	hd := c.handler
	s.ClipRect(hd.ContentLeft(), hd.ContentTop(), hd.ContentRight(), hd.ContentBottom())
	c.renderer.DrawData(s)
	s.Restore()
	c.axes.DrawLimitLines(s, false)
	if len(c.highlighted) > 0 {
		c.renderer.DrawHighlighted(s, c.highlighted)
	}
	c.axes.DrawLabels(s)
	c.renderer.DrawValues(s)
	c.renderer.DrawExtras(s)
	c.drawLegend(s)
}

// drawLegend lays the legend out again with s's text metrics and draws it.
func (c *Chart) drawLegend(s render.Surface) {
	if !c.Legend.Enabled {
		return
	}
	c.legend.Legend = c.Legend
	c.legend.ComputeLegend(c.Data(), s)
	c.legend.DrawLegend(s)
}

func (c *Chart) drawPolar(s render.Surface) {
	if c.IsRadar() {
		c.renderer.DrawExtras(s)
	}
	c.renderer.DrawData(s)
	if len(c.highlighted) > 0 {
		c.renderer.DrawHighlighted(s, c.highlighted)
	}
	c.renderer.DrawValues(s)
	if c.IsPie() {
		c.renderer.DrawExtras(s)
	}
	c.drawLegend(s)
}

// autoScaleAxes fits the y axes to the entries inside the visible x window.
func (c *Chart) autoScaleAxes(m TextMeasurer) {
	low, high := c.LowestVisibleX(), c.HighestVisibleX()
	if c.combined != nil {
		c.combined.CalcMinMaxY(low, high)
	} else {
		c.data.CalcMinMaxY(low, high)
	}
	c.calcYAxes()
	c.CalculateOffsets(m)
	chart.Logger().Debug("auto scaled", "low", low, "high", high, "min", c.LeftAxis.Min(), "max", c.LeftAxis.Max())
}
