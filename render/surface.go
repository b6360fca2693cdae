// Package render draws chart data onto an abstract Surface. Renderers turn
// data sets into lines, paths, circles, rectangles and text; hosts supply a
// Surface backed by their graphics toolkit.
package render

import (
	"image"
	"image/color"
)

// Style selects whether a shape is filled or outlined.
type Style uint8

const (
	Fill Style = iota
	Stroke
	// FillAndStroke fills the shape and then outlines it in the same color.
	FillAndStroke
)

// Align positions text relative to its anchor on the x axis.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Paint describes how a shape or text is drawn.
type Paint struct {
	Style       Style
	Color       color.NRGBA
	StrokeWidth float64
	// Dash holds alternating on/off lengths in pixels. Empty draws solid.
	Dash     []float64
	TextSize float64
	Align    Align
}

// Surface is a drawing target. Coordinates are pixels with the origin at
// the top left and y growing downwards. Text is anchored at its baseline.
type Surface interface {
	DrawLine(x1, y1, x2, y2 float64, p Paint)
	DrawPath(path *Path, p Paint)
	DrawCircle(cx, cy, r float64, p Paint)
	DrawRect(left, top, right, bottom float64, p Paint)
	DrawText(text string, x, y float64, p Paint)
	// MeasureText returns the width and height of text drawn with p.
	MeasureText(text string, p Paint) (w, h float64)
	// DrawImage draws img centered at x, y.
	DrawImage(img image.Image, x, y float64)
	// Save pushes the clip state; Restore pops it.
	Save()
	Restore()
	ClipRect(left, top, right, bottom float64)
}

func fillPaint(c color.NRGBA) Paint {
	return Paint{Style: Fill, Color: c}
}

func strokePaint(c color.NRGBA, width float64, dash []float64) Paint {
	return Paint{Style: Stroke, Color: c, StrokeWidth: width, Dash: dash}
}

func textPaint(c color.NRGBA, size float64) Paint {
	return Paint{Style: Fill, Color: c, TextSize: size, Align: AlignCenter}
}
