// Package viewport maps chart values to pixels. A Handler owns the content
// rectangle and the zoom/pan state; Transformers combine it with the value
// range of an axis.
package viewport

import (
	"math"

	"git.sr.ht/~whereswaldon/chartkit/chart"
)

const (
	zoomInFactor  = 1.4
	zoomOutFactor = 0.7
)

// Handler tracks the chart size, the content rectangle inside it, and the
// touch matrix holding the user's zoom and pan. Touch space has its origin
// at the bottom left corner of the content rectangle.
//
// Every zoom and pan operation clamps the scale to [min, max] and the
// translation so that content cannot leave the viewport by more than the
// drag offsets. None of them fail.
type Handler struct {
	// OnChange is called after the touch matrix changed.
	OnChange func()

	touch   Matrix
	content Rect
	width   float64
	height  float64

	minScaleX, maxScaleX float64
	minScaleY, maxScaleY float64
	scaleX, scaleY       float64
	transX, transY       float64
	dragOffsetX          float64
	dragOffsetY          float64
}

// NewHandler returns a handler with no size and no zoom.
func NewHandler() *Handler {
	return &Handler{
		touch:     Identity(),
		minScaleX: 1,
		maxScaleX: math.Inf(1),
		minScaleY: 1,
		maxScaleY: math.Inf(1),
		scaleX:    1,
		scaleY:    1,
	}
}

// SetChartDimens resizes the chart, keeping the current offsets.
func (h *Handler) SetChartDimens(width, height float64) {
	l, t, r, b := h.OffsetLeft(), h.OffsetTop(), h.OffsetRight(), h.OffsetBottom()
	h.width = math.Round(width)
	h.height = math.Round(height)
	h.RestrainViewPort(l, t, r, b)
}

func (h *Handler) HasChartDimens() bool {
	return h.width > 0 && h.height > 0
}

// RestrainViewPort places the content rectangle at the given distances from
// the chart edges.
func (h *Handler) RestrainViewPort(left, top, right, bottom float64) {
	h.content = Rect{
		Left:   left,
		Top:    top,
		Right:  h.width - right,
		Bottom: h.height - bottom,
	}
}

func (h *Handler) OffsetLeft() float64   { return h.content.Left }
func (h *Handler) OffsetRight() float64  { return h.width - h.content.Right }
func (h *Handler) OffsetTop() float64    { return h.content.Top }
func (h *Handler) OffsetBottom() float64 { return h.height - h.content.Bottom }

func (h *Handler) ContentLeft() float64   { return h.content.Left }
func (h *Handler) ContentRight() float64  { return h.content.Right }
func (h *Handler) ContentTop() float64    { return h.content.Top }
func (h *Handler) ContentBottom() float64 { return h.content.Bottom }
func (h *Handler) ContentWidth() float64  { return h.content.Width() }
func (h *Handler) ContentHeight() float64 { return h.content.Height() }
func (h *Handler) ContentRect() Rect      { return h.content }
func (h *Handler) ChartWidth() float64    { return h.width }
func (h *Handler) ChartHeight() float64   { return h.height }

// ContentCenter returns the center of the content rectangle in pixels.
func (h *Handler) ContentCenter() (x, y float64) {
	return h.content.CenterX(), h.content.CenterY()
}

// SmallestContentExtension returns the smaller of the content width and
// height.
func (h *Handler) SmallestContentExtension() float64 {
	return min(h.content.Width(), h.content.Height())
}

// Touch returns the current zoom/pan matrix.
func (h *Handler) Touch() Matrix { return h.touch }

// touchPoint converts a pixel position into touch space.
func (h *Handler) touchPoint(px, py float64) (float64, float64) {
	return px - h.content.Left, py - h.content.Bottom
}

// ZoomIn zooms in by 1.4 around the pixel position.
func (h *Handler) ZoomIn(px, py float64) {
	h.ZoomAt(zoomInFactor, zoomInFactor, px, py)
}

// ZoomOut zooms out by 0.7 around the pixel position.
func (h *Handler) ZoomOut(px, py float64) {
	h.ZoomAt(zoomOutFactor, zoomOutFactor, px, py)
}

// Zoom scales the current zoom by the factors around the touch space origin.
func (h *Handler) Zoom(sx, sy float64) {
	h.Refresh(h.touch.PostScale(sx, sy, 0, 0))
}

// ZoomAt scales the current zoom by the factors around the pixel position.
func (h *Handler) ZoomAt(sx, sy, px, py float64) {
	tx, ty := h.touchPoint(px, py)
	h.Refresh(h.touch.PostScale(sx, sy, tx, ty))
}

// ZoomToCenter scales the current zoom around the content center.
func (h *Handler) ZoomToCenter(sx, sy float64) {
	cx, cy := h.ContentCenter()
	h.ZoomAt(sx, sy, cx, cy)
}

// SetZoom replaces the scale factors, keeping the translation.
func (h *Handler) SetZoom(sx, sy float64) {
	m := h.touch
	m.A, m.E = sx, sy
	h.Refresh(m)
}

// FitScreen resets zoom and pan and the minimum scales.
func (h *Handler) FitScreen() {
	h.minScaleX = 1
	h.minScaleY = 1
	m := h.touch
	m.A, m.E = 1, 1
	m.C, m.F = 0, 0
	h.Refresh(m)
}

// Translate pans by a pixel distance, as when dragging.
func (h *Handler) Translate(dx, dy float64) {
	h.Refresh(h.touch.PostTranslate(dx, dy))
}

// CenterViewPort pans so that the transformed pixel position ends up at the
// top left corner of the content rectangle. Callers center on a value by
// passing the pixel of the top left corner of the window around it.
func (h *Handler) CenterViewPort(px, py float64) {
	x := px - h.OffsetLeft()
	y := py - h.OffsetTop()
	h.Refresh(h.touch.PostTranslate(-x, -y))
}

// Refresh installs m as the touch matrix after limiting its scale and
// translation, and notifies OnChange.
func (h *Handler) Refresh(m Matrix) {
	h.touch = h.limitTransAndScale(m)
	h.logState("viewport refreshed")
	if h.OnChange != nil {
		h.OnChange()
	}
}

func (h *Handler) limitTransAndScale(m Matrix) Matrix {
	h.scaleX = min(max(h.minScaleX, m.A), h.maxScaleX)
	h.scaleY = min(max(h.minScaleY, m.E), h.maxScaleY)

	w, ht := h.content.Width(), h.content.Height()
	maxTransX := -w * (h.scaleX - 1)
	h.transX = min(max(m.C, maxTransX-h.dragOffsetX), h.dragOffsetX)
	maxTransY := ht * (h.scaleY - 1)
	h.transY = max(min(m.F, maxTransY+h.dragOffsetY), -h.dragOffsetY)

	m.A, m.E = h.scaleX, h.scaleY
	m.C, m.F = h.transX, h.transY
	return m
}

// SetMinMaxScaleX bounds the horizontal zoom. The minimum is at least 1 and
// a maximum of 0 removes the upper bound.
func (h *Handler) SetMinMaxScaleX(minScale, maxScale float64) {
	h.minScaleX = max(minScale, 1)
	if maxScale == 0 {
		maxScale = math.Inf(1)
	}
	h.maxScaleX = maxScale
	h.touch = h.limitTransAndScale(h.touch)
}

// SetMinMaxScaleY bounds the vertical zoom like SetMinMaxScaleX.
func (h *Handler) SetMinMaxScaleY(minScale, maxScale float64) {
	h.minScaleY = max(minScale, 1)
	if maxScale == 0 {
		maxScale = math.Inf(1)
	}
	h.maxScaleY = maxScale
	h.touch = h.limitTransAndScale(h.touch)
}

func (h *Handler) SetMinimumScaleX(s float64) { h.SetMinMaxScaleX(s, h.maxScaleX) }
func (h *Handler) SetMaximumScaleX(s float64) { h.SetMinMaxScaleX(h.minScaleX, s) }
func (h *Handler) SetMinimumScaleY(s float64) { h.SetMinMaxScaleY(s, h.maxScaleY) }
func (h *Handler) SetMaximumScaleY(s float64) { h.SetMinMaxScaleY(h.minScaleY, s) }

func (h *Handler) ScaleX() float64    { return h.scaleX }
func (h *Handler) ScaleY() float64    { return h.scaleY }
func (h *Handler) TransX() float64    { return h.transX }
func (h *Handler) TransY() float64    { return h.transY }
func (h *Handler) MinScaleX() float64 { return h.minScaleX }
func (h *Handler) MaxScaleX() float64 { return h.maxScaleX }
func (h *Handler) MinScaleY() float64 { return h.minScaleY }
func (h *Handler) MaxScaleY() float64 { return h.maxScaleY }

func (h *Handler) IsFullyZoomedOut() bool {
	return h.IsFullyZoomedOutX() && h.IsFullyZoomedOutY()
}

func (h *Handler) IsFullyZoomedOutX() bool {
	return !(h.scaleX > h.minScaleX || h.minScaleX > 1)
}

func (h *Handler) IsFullyZoomedOutY() bool {
	return !(h.scaleY > h.minScaleY || h.minScaleY > 1)
}

// SetDragOffsetX allows panning past the horizontal content bounds by px.
func (h *Handler) SetDragOffsetX(px float64) { h.dragOffsetX = px }

// SetDragOffsetY allows panning past the vertical content bounds by px.
func (h *Handler) SetDragOffsetY(px float64) { h.dragOffsetY = px }

func (h *Handler) HasNoDragOffset() bool {
	return h.dragOffsetX <= 0 && h.dragOffsetY <= 0
}

func (h *Handler) CanZoomOutMoreX() bool { return h.scaleX > h.minScaleX }
func (h *Handler) CanZoomInMoreX() bool  { return h.scaleX < h.maxScaleX }
func (h *Handler) CanZoomOutMoreY() bool { return h.scaleY > h.minScaleY }
func (h *Handler) CanZoomInMoreY() bool  { return h.scaleY < h.maxScaleY }

// IsInBoundsLeft reports whether x is right of the content's left edge,
// with one pixel of tolerance.
func (h *Handler) IsInBoundsLeft(x float64) bool { return h.content.Left <= x+1 }

// IsInBoundsRight reports whether x is left of the content's right edge,
// with one pixel of tolerance.
func (h *Handler) IsInBoundsRight(x float64) bool { return h.content.Right >= x-1 }

func (h *Handler) IsInBoundsTop(y float64) bool    { return h.content.Top <= y }
func (h *Handler) IsInBoundsBottom(y float64) bool { return h.content.Bottom >= y }

func (h *Handler) IsInBoundsX(x float64) bool {
	return h.IsInBoundsLeft(x) && h.IsInBoundsRight(x)
}

func (h *Handler) IsInBoundsY(y float64) bool {
	return h.IsInBoundsTop(y) && h.IsInBoundsBottom(y)
}

func (h *Handler) IsInBounds(x, y float64) bool {
	return h.IsInBoundsX(x) && h.IsInBoundsY(y)
}

func (h *Handler) logState(msg string) {
	chart.Logger().Debug(msg,
		"scaleX", h.scaleX, "scaleY", h.scaleY,
		"transX", h.transX, "transY", h.transY)
}
