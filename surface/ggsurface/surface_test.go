package ggsurface

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"git.sr.ht/~whereswaldon/chartkit/render"
)

var (
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	red   = color.NRGBA{R: 0xff, A: 0xff}
)

func rgba(c color.Color) [4]uint32 {
	r, g, b, a := c.RGBA()
	return [4]uint32{r >> 8, g >> 8, b >> 8, a >> 8}
}

func newSurface(t *testing.T) *Surface {
	t.Helper()
	s, err := New(40, 40)
	if err != nil {
		t.Fatalf("failed creating surface: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	s.Clear(white)
	return s
}

func TestFillAndClip(t *testing.T) {
	s := newSurface(t)
	s.DrawRect(0, 0, 20, 20, render.Paint{Style: render.Fill, Color: red})
	s.Save()
	s.ClipRect(20, 20, 30, 30)
	s.DrawRect(20, 20, 40, 40, render.Paint{Style: render.Fill, Color: red})
	s.Restore()
	img := s.Image()
	for _, tc := range []struct {
		name string
		x, y int
		want color.NRGBA
	}{
		{name: "filled", x: 10, y: 10, want: red},
		{name: "clipped in", x: 25, y: 25, want: red},
		{name: "clipped out", x: 35, y: 35, want: white},
		{name: "untouched", x: 35, y: 5, want: white},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := rgba(img.At(tc.x, tc.y)); got != rgba(tc.want) {
				t.Errorf("expected %v at (%d, %d), got %v", rgba(tc.want), tc.x, tc.y, got)
			}
		})
	}
	if err := s.Err(); err != nil {
		t.Errorf("unexpected raster error: %v", err)
	}
}

func TestMeasureText(t *testing.T) {
	s := newSurface(t)
	w1, h1 := s.MeasureText("a", render.Paint{TextSize: 10})
	w2, h2 := s.MeasureText("aaaa", render.Paint{TextSize: 10})
	if w1 <= 0 || h1 <= 0 {
		t.Fatalf("expected positive text size, got %vx%v", w1, h1)
	}
	if w2 <= w1 || h2 != h1 {
		t.Errorf("expected longer text to be wider at the same height, got %vx%v and %vx%v", w1, h1, w2, h2)
	}
	_, big := s.MeasureText("a", render.Paint{TextSize: 20})
	if big <= h1 {
		t.Errorf("expected larger text to be taller, got %v and %v", h1, big)
	}
}

func TestEncodePNG(t *testing.T) {
	s := newSurface(t)
	s.DrawCircle(20, 20, 10, render.Paint{Style: render.FillAndStroke, Color: red, StrokeWidth: 2})
	var buf bytes.Buffer
	if err := s.EncodePNG(&buf); err != nil {
		t.Fatalf("failed encoding: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("failed decoding: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 40 {
		t.Errorf("expected a 40x40 image, got %v", b)
	}
	if got := rgba(img.At(20, 20)); got != rgba(red) {
		t.Errorf("expected the circle center red, got %v", got)
	}
}
