package render

import (
	"math"

	"git.sr.ht/~whereswaldon/chartkit/viewport"
)

// Op is a path command.
type Op uint8

const (
	OpMoveTo Op = iota
	OpLineTo
	OpCubicTo
	OpClose
)

// Segment is one path command. MoveTo and LineTo use Pts[0]; CubicTo uses
// two control points and the end point in order.
type Segment struct {
	Op  Op
	Pts [3][2]float64
}

// Path is a sequence of move, line, cubic and close commands. Arcs are
// decomposed into cubics so surfaces only need the four primitives.
type Path struct {
	segs   []Segment
	x, y   float64
	sx, sy float64
	open   bool
}

func (p *Path) Segments() []Segment { return p.segs }
func (p *Path) Empty() bool         { return len(p.segs) == 0 }

// Current returns the pen position.
func (p *Path) Current() (x, y float64) { return p.x, p.y }

// Reset clears the path, keeping its storage.
func (p *Path) Reset() {
	p.segs = p.segs[:0]
	p.open = false
}

func (p *Path) MoveTo(x, y float64) {
	p.segs = append(p.segs, Segment{Op: OpMoveTo, Pts: [3][2]float64{{x, y}}})
	p.x, p.y = x, y
	p.sx, p.sy = x, y
	p.open = true
}

// LineTo draws a line to x, y, starting a new subpath there if none is open.
func (p *Path) LineTo(x, y float64) {
	if !p.open {
		p.MoveTo(x, y)
		return
	}
	p.segs = append(p.segs, Segment{Op: OpLineTo, Pts: [3][2]float64{{x, y}}})
	p.x, p.y = x, y
}

func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !p.open {
		p.MoveTo(p.x, p.y)
	}
	p.segs = append(p.segs, Segment{Op: OpCubicTo, Pts: [3][2]float64{{c1x, c1y}, {c2x, c2y}, {x, y}}})
	p.x, p.y = x, y
}

// Close closes the current subpath, moving the pen to its start.
func (p *Path) Close() {
	if !p.open {
		return
	}
	p.segs = append(p.segs, Segment{Op: OpClose})
	p.x, p.y = p.sx, p.sy
	p.open = false
}

// ArcTo appends an arc of the circle at cx, cy with radius r, starting at
// start degrees and sweeping sweep degrees clockwise on screen (negative
// sweeps run counter clockwise). The arc is joined to the current subpath
// by a line, or starts a new one when moveTo is set or none is open.
func (p *Path) ArcTo(cx, cy, r, start, sweep float64, moveTo bool) {
	x0, y0 := viewport.Position(cx, cy, r, start)
	if moveTo || !p.open {
		p.MoveTo(x0, y0)
	} else {
		p.LineTo(x0, y0)
	}
	if sweep == 0 || r == 0 {
		return
	}
	n := int(math.Ceil(math.Abs(sweep) / 90))
	step := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step*math.Pi/180/4)
	a := start * math.Pi / 180
	for i := 0; i < n; i++ {
		b := a + step*math.Pi/180
		cosA, sinA := math.Cos(a), math.Sin(a)
		cosB, sinB := math.Cos(b), math.Sin(b)
		p.CubicTo(
			cx+r*(cosA-k*sinA), cy+r*(sinA+k*cosA),
			cx+r*(cosB+k*sinB), cy+r*(sinB-k*cosB),
			cx+r*cosB, cy+r*sinB,
		)
		a = b
	}
}

// Circle appends a closed circle.
func (p *Path) Circle(cx, cy, r float64) {
	p.ArcTo(cx, cy, r, 0, 360, true)
	p.Close()
}

// Bounds returns the box of all path points, control points included.
func (p *Path) Bounds() viewport.Rect {
	b := viewport.Rect{Left: math.Inf(1), Top: math.Inf(1), Right: math.Inf(-1), Bottom: math.Inf(-1)}
	for _, s := range p.segs {
		n := 1
		switch s.Op {
		case OpClose:
			continue
		case OpCubicTo:
			n = 3
		}
		for _, pt := range s.Pts[:n] {
			b.Left = min(b.Left, pt[0])
			b.Right = max(b.Right, pt[0])
			b.Top = min(b.Top, pt[1])
			b.Bottom = max(b.Bottom, pt[1])
		}
	}
	return b
}

// Transform maps every point of the path through m.
func (p *Path) Transform(m viewport.Matrix) {
	for i := range p.segs {
		for j := range p.segs[i].Pts {
			pt := &p.segs[i].Pts[j]
			pt[0], pt[1] = m.Apply(pt[0], pt[1])
		}
	}
	p.x, p.y = m.Apply(p.x, p.y)
	p.sx, p.sy = m.Apply(p.sx, p.sy)
}

func (p *Path) copyFrom(q *Path) {
	p.segs = append(p.segs[:0], q.segs...)
	p.x, p.y = q.x, q.y
	p.sx, p.sy = q.sx, q.sy
	p.open = q.open
}
