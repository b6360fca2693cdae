// Package giosurface implements render.Surface on Gio operations, so charts
// can be drawn inside a Gio layout.
package giosurface

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"git.sr.ht/~whereswaldon/chartkit/render"
)

// Surface records drawing into the ops of a layout context. It is only
// valid for the frame of that context.
type Surface struct {
	gtx layout.Context
	th  *material.Theme
	// frames holds the clips pushed since each Save.
	frames [][]clip.Stack
	path   render.Path
}

// New returns a surface drawing into gtx with the text settings of th.
func New(gtx layout.Context, th *material.Theme) *Surface {
	return &Surface{gtx: gtx, th: th}
}

func pt(x, y float64) f32.Point {
	return f32.Pt(float32(x), float32(y))
}

// spec converts p into a Gio path.
func (s *Surface) spec(p *render.Path) clip.PathSpec {
	var gp clip.Path
	gp.Begin(s.gtx.Ops)
	for _, seg := range p.Segments() {
		switch seg.Op {
		case render.OpMoveTo:
			gp.MoveTo(pt(seg.Pts[0][0], seg.Pts[0][1]))
		case render.OpLineTo:
			gp.LineTo(pt(seg.Pts[0][0], seg.Pts[0][1]))
		case render.OpCubicTo:
			gp.CubeTo(pt(seg.Pts[0][0], seg.Pts[0][1]), pt(seg.Pts[1][0], seg.Pts[1][1]), pt(seg.Pts[2][0], seg.Pts[2][1]))
		case render.OpClose:
			gp.Close()
		}
	}
	return gp.End()
}

func strokeWidth(p render.Paint) float32 {
	return float32(max(p.StrokeWidth, 1))
}

func (s *Surface) fillPath(p *render.Path, c color.NRGBA) {
	paint.FillShape(s.gtx.Ops, c, clip.Outline{Path: s.spec(p)}.Op())
}

func (s *Surface) strokePath(p *render.Path, rp render.Paint) {
	paint.FillShape(s.gtx.Ops, rp.Color, clip.Stroke{Path: s.spec(p), Width: strokeWidth(rp)}.Op())
}

// draw fills and/or strokes p according to rp.
func (s *Surface) draw(p *render.Path, rp render.Paint) {
	switch rp.Style {
	case render.Stroke:
		s.strokePath(p, rp)
	case render.FillAndStroke:
		s.fillPath(p, rp.Color)
		s.strokePath(p, rp)
	default:
		s.fillPath(p, rp.Color)
	}
}

func (s *Surface) DrawLine(x1, y1, x2, y2 float64, p render.Paint) {
	s.path.Reset()
	for _, d := range Dashes(x1, y1, x2, y2, p.Dash) {
		s.path.MoveTo(d[0], d[1])
		s.path.LineTo(d[2], d[3])
	}
	s.strokePath(&s.path, p)
}

func (s *Surface) DrawPath(path *render.Path, p render.Paint) {
	s.draw(path, p)
}

func (s *Surface) DrawCircle(cx, cy, r float64, p render.Paint) {
	s.path.Reset()
	s.path.Circle(cx, cy, r)
	s.draw(&s.path, p)
}

func (s *Surface) DrawRect(left, top, right, bottom float64, p render.Paint) {
	s.path.Reset()
	s.path.MoveTo(left, top)
	s.path.LineTo(right, top)
	s.path.LineTo(right, bottom)
	s.path.LineTo(left, bottom)
	s.path.Close()
	s.draw(&s.path, p)
}

// label records txt as a label and returns the recording with its size and
// baseline.
func (s *Surface) label(txt string, p render.Paint) (op.CallOp, layout.Dimensions) {
	gtx := s.gtx
	gtx.Constraints.Min = image.Point{}
	gtx.Constraints.Max = image.Pt(math.MaxInt32/2, math.MaxInt32/2)
	macro := op.Record(gtx.Ops)
	size := p.TextSize
	if size <= 0 {
		size = 10
	}
	pxPerSp := gtx.Metric.PxPerSp
	if pxPerSp == 0 {
		pxPerSp = 1
	}
	lbl := material.Label(s.th, unit.Sp(float32(size)/pxPerSp), txt)
	lbl.Color = p.Color
	lbl.Alignment = text.Start
	lbl.MaxLines = 1
	dims := lbl.Layout(gtx)
	return macro.Stop(), dims
}

func (s *Surface) DrawText(txt string, x, y float64, p render.Paint) {
	call, dims := s.label(txt, p)
	w := float64(dims.Size.X)
	switch p.Align {
	case render.AlignCenter:
		x -= w / 2
	case render.AlignRight:
		x -= w
	}
	ascent := float64(dims.Size.Y - dims.Baseline)
	stack := op.Offset(image.Pt(int(math.Round(x)), int(math.Round(y-ascent)))).Push(s.gtx.Ops)
	call.Add(s.gtx.Ops)
	stack.Pop()
}

func (s *Surface) MeasureText(txt string, p render.Paint) (float64, float64) {
	_, dims := s.label(txt, p)
	return float64(dims.Size.X), float64(dims.Size.Y)
}

func (s *Surface) DrawImage(img image.Image, x, y float64) {
	b := img.Bounds()
	at := image.Pt(int(math.Round(x))-b.Dx()/2, int(math.Round(y))-b.Dy()/2)
	defer op.Offset(at).Push(s.gtx.Ops).Pop()
	defer clip.Rect{Max: b.Size()}.Push(s.gtx.Ops).Pop()
	paint.NewImageOp(img).Add(s.gtx.Ops)
	paint.PaintOp{}.Add(s.gtx.Ops)
}

func (s *Surface) Save() {
	s.frames = append(s.frames, nil)
}

func (s *Surface) Restore() {
	n := len(s.frames)
	if n == 0 {
		return
	}
	stacks := s.frames[n-1]
	for i := len(stacks) - 1; i >= 0; i-- {
		stacks[i].Pop()
	}
	s.frames = s.frames[:n-1]
}

// ClipRect restricts drawing until the matching Restore. Clips outside of
// a Save stay until Release.
func (s *Surface) ClipRect(left, top, right, bottom float64) {
	r := image.Rect(int(math.Floor(left)), int(math.Floor(top)), int(math.Ceil(right)), int(math.Ceil(bottom)))
	if len(s.frames) == 0 {
		s.frames = append(s.frames, nil)
	}
	n := len(s.frames) - 1
	s.frames[n] = append(s.frames[n], clip.Rect(r).Push(s.gtx.Ops))
}

// Release pops every clip still pushed.
func (s *Surface) Release() {
	for len(s.frames) > 0 {
		s.Restore()
	}
}

// Dashes splits the line from x1, y1 to x2, y2 into the on segments of the
// dash pattern, as x1, y1, x2, y2 quadruples. An empty or zero length
// pattern yields the whole line.
func Dashes(x1, y1, x2, y2 float64, pattern []float64) [][4]float64 {
	whole := [][4]float64{{x1, y1, x2, y2}}
	var period float64
	for _, d := range pattern {
		period += max(d, 0)
	}
	if len(pattern) == 0 || period <= 0 {
		return whole
	}
	length := math.Hypot(x2-x1, y2-y1)
	if length == 0 {
		return whole
	}
	dx, dy := (x2-x1)/length, (y2-y1)/length
	var out [][4]float64
	var pos float64
	for i := 0; pos < length; i++ {
		d := max(pattern[i%len(pattern)], 0)
		end := min(pos+d, length)
		if i%2 == 0 && end > pos {
			out = append(out, [4]float64{x1 + dx*pos, y1 + dy*pos, x1 + dx*end, y1 + dy*end})
		}
		pos = end
	}
	return out
}
