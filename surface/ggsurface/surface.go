// Package ggsurface implements render.Surface on a gg raster context, for
// drawing charts into images.
package ggsurface

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"git.sr.ht/~whereswaldon/chartkit/render"
)

// Surface draws onto an in-memory image.
type Surface struct {
	ctx    *gg.Context
	source *text.FontSource
	faces  map[float64]text.Face
	// err is the first raster error, reported by Err.
	err error
}

// New returns a surface of the given pixel size using the Go Regular font.
func New(width, height int) (*Surface, error) {
	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed loading font: %w", err)
	}
	return &Surface{
		ctx:    gg.NewContext(width, height),
		source: source,
		faces:  make(map[float64]text.Face),
	}, nil
}

// Close releases the raster context.
func (s *Surface) Close() error {
	return s.ctx.Close()
}

// Err returns the first error raised while rasterizing.
func (s *Surface) Err() error { return s.err }

func (s *Surface) Image() image.Image { return s.ctx.Image() }

// EncodePNG writes the surface contents as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	if s.err != nil {
		return s.err
	}
	return s.ctx.EncodePNG(w)
}

// Clear fills the whole surface with c.
func (s *Surface) Clear(c color.NRGBA) {
	s.ctx.ClearWithColor(gg.FromColor(c))
}

func (s *Surface) check(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}

func (s *Surface) face(size float64) text.Face {
	if size <= 0 {
		size = 10
	}
	f, ok := s.faces[size]
	if !ok {
		f = s.source.Face(size)
		s.faces[size] = f
	}
	return f
}

func (s *Surface) setStroke(p render.Paint) {
	s.ctx.SetColor(p.Color)
	s.ctx.SetLineWidth(max(p.StrokeWidth, 1))
	s.ctx.SetDash(p.Dash...)
}

// paint fills or strokes the current path according to p.
func (s *Surface) paint(p render.Paint) {
	switch p.Style {
	case render.Stroke:
		s.setStroke(p)
		s.check(s.ctx.Stroke())
	case render.FillAndStroke:
		s.ctx.SetColor(p.Color)
		s.check(s.ctx.FillPreserve())
		s.setStroke(p)
		s.check(s.ctx.Stroke())
	default:
		s.ctx.SetColor(p.Color)
		s.check(s.ctx.Fill())
	}
}

func (s *Surface) DrawLine(x1, y1, x2, y2 float64, p render.Paint) {
	s.ctx.MoveTo(x1, y1)
	s.ctx.LineTo(x2, y2)
	s.setStroke(p)
	s.check(s.ctx.Stroke())
}

func (s *Surface) DrawPath(path *render.Path, p render.Paint) {
	for _, seg := range path.Segments() {
		switch seg.Op {
		case render.OpMoveTo:
			s.ctx.MoveTo(seg.Pts[0][0], seg.Pts[0][1])
		case render.OpLineTo:
			s.ctx.LineTo(seg.Pts[0][0], seg.Pts[0][1])
		case render.OpCubicTo:
			s.ctx.CubicTo(seg.Pts[0][0], seg.Pts[0][1], seg.Pts[1][0], seg.Pts[1][1], seg.Pts[2][0], seg.Pts[2][1])
		case render.OpClose:
			s.ctx.ClosePath()
		}
	}
	s.paint(p)
}

func (s *Surface) DrawCircle(cx, cy, r float64, p render.Paint) {
	s.ctx.DrawCircle(cx, cy, r)
	s.paint(p)
}

func (s *Surface) DrawRect(left, top, right, bottom float64, p render.Paint) {
	s.ctx.DrawRectangle(left, top, right-left, bottom-top)
	s.paint(p)
}

func (s *Surface) DrawText(txt string, x, y float64, p render.Paint) {
	s.ctx.SetFont(s.face(p.TextSize))
	s.ctx.SetColor(p.Color)
	var ax float64
	switch p.Align {
	case render.AlignCenter:
		ax = 0.5
	case render.AlignRight:
		ax = 1
	}
	s.ctx.DrawStringAnchored(txt, x, y, ax, 0)
}

func (s *Surface) MeasureText(txt string, p render.Paint) (float64, float64) {
	s.ctx.SetFont(s.face(p.TextSize))
	return s.ctx.MeasureString(txt)
}

func (s *Surface) DrawImage(img image.Image, x, y float64) {
	b := img.Bounds()
	s.ctx.DrawImage(gg.ImageBufFromImage(img), x-float64(b.Dx())/2, y-float64(b.Dy())/2)
}

func (s *Surface) Save()    { s.ctx.Push() }
func (s *Surface) Restore() { s.ctx.Pop() }

func (s *Surface) ClipRect(left, top, right, bottom float64) {
	s.ctx.ClipRect(left, top, right-left, bottom-top)
}
