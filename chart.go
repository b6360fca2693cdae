package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"gioui.org/f32"
	"gioui.org/gesture"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"git.sr.ht/~whereswaldon/chartkit/animation"
	"git.sr.ht/~whereswaldon/chartkit/backend"
	"git.sr.ht/~whereswaldon/chartkit/chart"
	"git.sr.ht/~whereswaldon/chartkit/plot"
	"git.sr.ht/~whereswaldon/chartkit/surface/giosurface"
)

var replayIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVReplay)
	return icon
}()

var resetIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.ActionZoomOut)
	return icon
}()

// ChartView lays out a chart document and routes pointer input to it.
type ChartView struct {
	chart *plot.Chart
	doc   *backend.Document
	sets  []*chart.DataSet

	Enabled   []*widget.Bool
	zoom      gesture.Scroll
	replayBtn widget.Clickable
	resetBtn  widget.Clickable
	keyTable  component.GridState

	// pointer gesture state
	pos       f32.Point
	last      f32.Point
	isHovered bool
	pressed   bool
	dragged   bool
	// pinned is set while a tapped highlight should survive hovering.
	pinned bool
}

func NewChartView() *ChartView {
	return &ChartView{chart: plot.New()}
}

// SetDocument replaces the displayed chart. On error the previous chart
// stays in place.
func (c *ChartView) SetDocument(doc *backend.Document) error {
	p := plot.New()
	if w, h := c.chart.Size(); w > 0 && h > 0 {
		p.SetSize(w, h)
	}
	if err := doc.Apply(p); err != nil {
		return err
	}
	if err := doc.Animate(p); err != nil && !errors.Is(err, backend.ErrNoAnimation) {
		chart.Logger().Warn("not animating chart", "title", doc.Title, "err", err)
	}
	c.chart = p
	c.doc = doc
	c.sets = dataSets(p)
	c.Enabled = c.Enabled[:0]
	for _, set := range c.sets {
		c.Enabled = append(c.Enabled, &widget.Bool{Value: set.Visible})
	}
	c.pinned = len(p.Highlighted()) > 0
	return nil
}

// dataSets flattens the data sets of plain and combined charts.
func dataSets(p *plot.Chart) []*chart.DataSet {
	if p.IsCombined() {
		var sets []*chart.DataSet
		for _, d := range p.CombinedData().AllData() {
			sets = append(sets, d.DataSets()...)
		}
		return sets
	}
	if d := p.Data(); d != nil {
		return d.DataSets()
	}
	return nil
}

func rec(gtx C, w layout.Widget) (D, op.CallOp) {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	return dims, call
}

func (c *ChartView) replay() {
	if c.doc != nil {
		if err := c.doc.Animate(c.chart); err == nil {
			return
		}
	}
	c.chart.AnimateXY(time.Second, time.Second, animation.EaseOutCubic, animation.EaseOutCubic)
}

func (c *ChartView) Update(gtx C) {
	if c.replayBtn.Clicked(gtx) {
		c.replay()
	}
	if c.resetBtn.Clicked(gtx) {
		c.chart.ResetZoom()
	}
	changed := false
	for i, b := range c.Enabled {
		if b.Update(gtx) {
			c.sets[i].Visible = b.Value
			changed = true
		}
	}
	if changed {
		c.chart.NotifyDataSetChanged()
	}
	slop := float32(gtx.Dp(4))
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: c,
			Kinds:  pointer.Enter | pointer.Leave | pointer.Move | pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch e.Kind {
		case pointer.Enter, pointer.Move:
			c.isHovered = true
			c.pos = e.Position
			if !c.pinned {
				c.chart.HighlightValue(c.chart.HighlightForPixel(float64(e.Position.X), float64(e.Position.Y)))
			}
		case pointer.Press:
			c.pressed = true
			c.dragged = false
			c.pos = e.Position
			c.last = e.Position
		case pointer.Drag:
			c.pos = e.Position
			delta := e.Position.Sub(c.last)
			if !c.dragged && abs(delta.X) < slop && abs(delta.Y) < slop {
				continue
			}
			c.dragged = true
			c.chart.Translate(float64(delta.X), float64(delta.Y))
			c.last = e.Position
		case pointer.Release:
			if c.pressed && !c.dragged {
				h := c.chart.ToggleHighlightAt(float64(e.Position.X), float64(e.Position.Y))
				c.pinned = h != nil
			}
			c.pressed = false
			c.dragged = false
		case pointer.Leave, pointer.Cancel:
			c.isHovered = false
			c.pressed = false
			c.dragged = false
			if !c.pinned {
				c.chart.HighlightValue(nil)
			}
		}
	}
}

func abs[T constraints.Integer | constraints.Float](a T) T {
	if a < 0 {
		return -a
	}
	return a
}

func (c *ChartView) Layout(gtx C, th *material.Theme) D {
	c.Update(gtx)
	origConstraints := gtx.Constraints
	gtx.Constraints.Min = image.Point{}

	// Determine the space occupied by the key.
	macro := op.Record(gtx.Ops)
	gtx.Constraints.Min.X = gtx.Constraints.Max.X
	keyDims := c.layoutControls(gtx, th)
	keyCall := macro.Stop()

	gtx.Constraints = origConstraints
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, func(gtx C) D {
			return c.layoutPlot(gtx, th)
		}),
		layout.Rigid(func(gtx C) D {
			keyCall.Add(gtx.Ops)
			return keyDims
		}),
	)
}

func (c *ChartView) layoutPlot(gtx C, th *material.Theme) D {
	size := gtx.Constraints.Max
	dist := c.zoom.Update(gtx.Metric, gtx.Source, gtx.Now, gesture.Vertical, image.Rect(0, -1e6, 0, 1e6))
	if dist != 0 && size.Y > 0 {
		proportion := 1 + float64(dist)/float64(size.Y)
		if proportion > 0 {
			c.chart.ZoomAt(1/proportion, 1, float64(c.pos.X), float64(c.pos.Y))
		}
	}
	c.chart.SetSize(float64(size.X), float64(size.Y))
	c.chart.Tick(gtx.Now)

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	c.zoom.Add(gtx.Ops)
	event.Op(gtx.Ops, c)

	s := giosurface.New(gtx, th)
	c.chart.Draw(s)
	s.Release()
	if c.chart.Animating() {
		gtx.Execute(op.InvalidateCmd{})
	}

	if hs := c.chart.Highlighted(); len(hs) > 0 && (c.isHovered || c.pinned) {
		c.layoutHoverInfo(gtx, th, hs[0], size)
	}
	return D{Size: size}
}

// highlightSet returns the data set and entry h resolves to.
func (c *ChartView) highlightSet(h chart.Highlight) (*chart.DataSet, *chart.Entry) {
	if cd := c.chart.CombinedData(); cd != nil {
		return cd.DataSetForHighlight(h), cd.EntryForHighlight(h)
	}
	d := c.chart.Data()
	if d == nil {
		return nil, nil
	}
	return d.DataSet(h.DataSetIndex), d.EntryForHighlight(h)
}

func (c *ChartView) layoutHoverInfo(gtx C, th *material.Theme, h chart.Highlight, size image.Point) {
	set, entry := c.highlightSet(h)
	if set == nil || entry == nil {
		return
	}
	title := set.Label
	if entry.Label != "" {
		title = entry.Label
	}
	swatch := color.NRGBA{A: 255}
	if len(set.Colors) > 0 {
		swatch = set.Colors[set.IndexOf(entry)%len(set.Colors)]
	}
	value := fmt.Sprintf("x %s  y %s", formatValue(entry.X), formatValue(entry.Y))

	gtx.Constraints.Min = image.Point{}
	infoDims, infoCall := rec(gtx, func(gtx C) D {
		return layout.Background{}.Layout(gtx,
			func(gtx C) D {
				paint.FillShape(gtx.Ops, color.NRGBA{R: 255, G: 255, B: 255, A: 200}, clip.Rect{Max: gtx.Constraints.Min}.Op())
				return D{Size: gtx.Constraints.Min}
			},
			func(gtx C) D {
				return layout.UniformInset(10).Layout(gtx, func(gtx C) D {
					return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
						layout.Rigid(func(gtx C) D {
							return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
								layout.Rigid(func(gtx C) D {
									sz := image.Pt(gtx.Dp(8), gtx.Dp(8))
									paint.FillShape(gtx.Ops, swatch, clip.Ellipse{Max: sz}.Op(gtx.Ops))
									return D{Size: sz}
								}),
								layout.Rigid(layout.Spacer{Width: 8}.Layout),
								layout.Rigid(material.Body1(th, title).Layout),
							)
						}),
						layout.Rigid(material.Body2(th, value).Layout),
					)
				})
			},
		)
	})

	x, y := int(h.DrawX), int(h.DrawY)
	pos := image.Point{}
	if x > size.X-x {
		pos.X = max(x-infoDims.Size.X, 0)
	} else {
		pos.X = min(x, size.X-infoDims.Size.X)
	}
	if offscreenY := size.Y - (y + infoDims.Size.Y); offscreenY < 0 {
		pos.Y = max(y+offscreenY, 0)
	} else {
		pos.Y = y
	}
	defer op.Offset(pos).Push(gtx.Ops).Pop()
	infoCall.Add(gtx.Ops)
}

func formatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.3f", v)
}

func (c *ChartView) layoutControls(gtx C, th *material.Theme) D {
	return layout.Flex{Alignment: layout.Start}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(c.iconButton(th, &c.replayBtn, replayIcon)),
				layout.Rigid(c.iconButton(th, &c.resetBtn, resetIcon)),
			)
		}),
		layout.Flexed(1, func(gtx C) D {
			return c.layoutKey(gtx, th)
		}),
	)
}

func (c *ChartView) iconButton(th *material.Theme, btn *widget.Clickable, icon *widget.Icon) layout.Widget {
	return func(gtx C) D {
		sz := gtx.Dp(32)
		gtx.Constraints = layout.Exact(image.Pt(sz, sz))
		return material.Clickable(gtx, btn, func(gtx C) D {
			return layout.Center.Layout(gtx, func(gtx C) D {
				return icon.Layout(gtx, th.Fg)
			})
		})
	}
}

func (c *ChartView) layoutKey(gtx C, th *material.Theme) D {
	table := component.Table(th, &c.keyTable)
	table.HScrollbarStyle.Indicator.MinorWidth = 0
	table.HScrollbarStyle.Track.MinorPadding = 0
	table.VScrollbarStyle.Indicator.MinorWidth = 0
	table.VScrollbarStyle.Track.MinorPadding = 0
	colorColWidth := gtx.Dp(50)
	valueColWidth := gtx.Dp(90)
	nameColWidth := max(gtx.Constraints.Max.X-colorColWidth-3*valueColWidth-gtx.Dp(table.VScrollbarStyle.Width()), 0)
	rowHeight := gtx.Sp(20)
	const (
		colorCol = iota
		labelCol
		entriesCol
		minCol
		maxCol
		numCols
	)
	// Cap the key to a few rows so the plot keeps most of the space.
	gtx.Constraints.Max.Y = min(gtx.Constraints.Max.Y, rowHeight*(min(len(c.sets), 5)+1))
	return table.Layout(gtx, len(c.sets), numCols,
		func(axis layout.Axis, index, constraint int) int {
			if axis == layout.Vertical {
				return min(constraint, rowHeight)
			}
			var size int
			switch index {
			case colorCol:
				size = colorColWidth
			case labelCol:
				size = nameColWidth
			default:
				size = valueColWidth
			}
			return min(size, constraint)
		},
		func(gtx C, index int) D {
			var l material.LabelStyle
			switch index {
			case colorCol:
				l = material.Body1(th, "Color")
			case labelCol:
				l = material.Body1(th, "Data Set")
				l.Alignment = text.Middle
			case entriesCol:
				l = material.Body1(th, "Entries")
				l.Alignment = text.End
			case minCol:
				l = material.Body1(th, "Min")
				l.Alignment = text.End
			case maxCol:
				l = material.Body1(th, "Max")
				l.Alignment = text.End
			}
			l.Color = th.ContrastFg
			return layout.Background{}.Layout(gtx,
				func(gtx C) D {
					paint.FillShape(gtx.Ops, th.ContrastBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					return D{Size: gtx.Constraints.Min}
				}, l.Layout,
			)
		},
		func(gtx C, row, col int) (dims D) {
			defer func() {
				dims.Size = gtx.Constraints.Constrain(dims.Size)
			}()
			set := c.sets[row]
			enabled := c.Enabled[row].Value
			disabledAlpha := uint8(100)
			swatch := color.NRGBA{A: 255}
			if len(set.Colors) > 0 {
				swatch = set.Colors[0]
			}
			dims = layout.UniformInset(2).Layout(gtx, func(gtx C) D {
				var l material.LabelStyle
				switch col {
				case colorCol:
					return c.Enabled[row].Layout(gtx, func(gtx C) D {
						return layout.Center.Layout(gtx, func(gtx C) D {
							sideLen := gtx.Dp(10)
							sz := image.Pt(sideLen, sideLen)
							if !enabled {
								swatch.A = disabledAlpha
							}
							paint.FillShape(gtx.Ops, swatch, clip.Rect{Max: sz}.Op())
							return D{Size: sz}
						})
					})
				case labelCol:
					l = material.Body2(th, set.Label)
				case entriesCol:
					l = material.Body2(th, fmt.Sprint(set.EntryCount()))
					l.Alignment = text.End
				case minCol:
					l = material.Body2(th, formatValue(set.YMin()))
					l.Alignment = text.End
				case maxCol:
					l = material.Body2(th, formatValue(set.YMax()))
					l.Alignment = text.End
				default:
					return D{Size: gtx.Constraints.Max}
				}
				if !enabled {
					l.Color.A = disabledAlpha
				}
				return l.Layout(gtx)
			})
			if row&1 != 0 {
				swatch.A = 50
				paint.FillShape(gtx.Ops, swatch, clip.Rect{Max: gtx.Constraints.Max}.Op())
			}
			return dims
		})
}
