package viewport

import (
	"math"

	"git.sr.ht/~whereswaldon/chartkit/chart"
)

// Transformer converts between the value space of one axis and pixels.
// A point goes through the value matrix, the handler's touch matrix and the
// offset matrix, in that order.
type Transformer struct {
	handler   *Handler
	valueToPx Matrix
	offset    Matrix
}

// NewTransformer returns a transformer following the zoom and pan of h.
func NewTransformer(h *Handler) *Transformer {
	return &Transformer{
		handler:   h,
		valueToPx: Identity(),
		offset:    Identity(),
	}
}

// PrepareMatrixValuePx maps the value window starting at (xMin, yMin) and
// spanning deltaX by deltaY onto the content rectangle. A zero delta yields
// a zero scale instead of an infinite one.
func (t *Transformer) PrepareMatrixValuePx(xMin, deltaX, deltaY, yMin float64) {
	scaleX := t.handler.ContentWidth() / deltaX
	scaleY := t.handler.ContentHeight() / deltaY
	if math.IsInf(scaleX, 0) || math.IsNaN(scaleX) {
		scaleX = 0
	}
	if math.IsInf(scaleY, 0) || math.IsNaN(scaleY) {
		scaleY = 0
	}
	t.valueToPx = Translation(-xMin, -yMin).Mul(Scaling(scaleX, -scaleY))
}

// PrepareMatrixOffset moves touch space onto the content rectangle. An
// inverted axis grows downwards from the content top.
func (t *Transformer) PrepareMatrixOffset(inverted bool) {
	h := t.handler
	if !inverted {
		t.offset = Translation(h.OffsetLeft(), h.ChartHeight()-h.OffsetBottom())
		return
	}
	t.offset = Translation(h.OffsetLeft(), -h.OffsetTop()).Mul(Scaling(1, -1))
}

// ValueMatrix returns the value to touch space matrix.
func (t *Transformer) ValueMatrix() Matrix { return t.valueToPx }

// OffsetMatrix returns the touch space to pixel matrix.
func (t *Transformer) OffsetMatrix() Matrix { return t.offset }

// ValueToPixelMatrix returns the full value to pixel transform.
func (t *Transformer) ValueToPixelMatrix() Matrix {
	return t.valueToPx.Mul(t.handler.Touch()).Mul(t.offset)
}

// PixelToValueMatrix returns the inverse of ValueToPixelMatrix.
func (t *Transformer) PixelToValueMatrix() (Matrix, bool) {
	return t.ValueToPixelMatrix().Invert()
}

// PointValuesToPixel transforms x, y value pairs to pixels in place.
func (t *Transformer) PointValuesToPixel(pts []float64) {
	t.valueToPx.MapPoints(pts)
	t.handler.Touch().MapPoints(pts)
	t.offset.MapPoints(pts)
}

// PixelsToValue transforms x, y pixel pairs back to values in place. Stages
// that cannot be inverted, as with an empty content rectangle, are skipped.
func (t *Transformer) PixelsToValue(pts []float64) {
	for _, m := range []Matrix{t.offset, t.handler.Touch(), t.valueToPx} {
		if inv, ok := m.Invert(); ok {
			inv.MapPoints(pts)
		}
	}
}

// RectValueToPixel transforms a rectangle in value space to pixels.
func (t *Transformer) RectValueToPixel(r Rect) Rect {
	return t.ValueToPixelMatrix().MapRect(r)
}

// RectToPixelPhase scales the vertical extent of r by phaseY before
// transforming it.
func (t *Transformer) RectToPixelPhase(r Rect, phaseY float64) Rect {
	r.Top *= phaseY
	r.Bottom *= phaseY
	return t.RectValueToPixel(r)
}

// ValuesByTouchPoint returns the values under a pixel position.
func (t *Transformer) ValuesByTouchPoint(x, y float64) (float64, float64) {
	pts := [2]float64{x, y}
	t.PixelsToValue(pts[:])
	return pts[0], pts[1]
}

// PixelForValues returns the pixel position of a value pair.
func (t *Transformer) PixelForValues(x, y float64) (float64, float64) {
	pts := [2]float64{x, y}
	t.PointValuesToPixel(pts[:])
	return pts[0], pts[1]
}

// valuePairs fills buf with one (x, y*phaseY) pair per entry from index
// from on, using yOf to read the y of an entry, and projects them in one
// pass. Missing entries become (0, 0). buf is reused when large enough.
func (t *Transformer) valuePairs(buf []float64, set *chart.DataSet, pairs, from int, phaseY float64, yOf func(*chart.Entry) float64) []float64 {
	pairs = max(pairs, 0)
	if cap(buf) < pairs*2 {
		buf = make([]float64, pairs*2)
	}
	buf = buf[:pairs*2]
	for j := 0; j < pairs; j++ {
		if e := set.Entry(from + j); e != nil {
			buf[2*j] = e.X
			buf[2*j+1] = yOf(e) * phaseY
		} else {
			buf[2*j] = 0
			buf[2*j+1] = 0
		}
	}
	t.ValueToPixelMatrix().MapPoints(buf)
	return buf
}

func entryY(e *chart.Entry) float64    { return e.Y }
func entryHigh(e *chart.Entry) float64 { return e.High }

func phasedPairs(from, to int, phaseX float64) int {
	return int(math.Ceil(float64(to-from)*phaseX)) + 1
}

// GenerateTransformedValuesLine projects the entries from..to of a line set,
// shortened by phaseX and scaled by phaseY, into buf.
func (t *Transformer) GenerateTransformedValuesLine(buf []float64, set *chart.DataSet, phaseX, phaseY float64, from, to int) []float64 {
	return t.valuePairs(buf, set, phasedPairs(from, to, phaseX), from, phaseY, entryY)
}

// GenerateTransformedValuesScatter is GenerateTransformedValuesLine for
// scatter sets.
func (t *Transformer) GenerateTransformedValuesScatter(buf []float64, set *chart.DataSet, phaseX, phaseY float64, from, to int) []float64 {
	return t.valuePairs(buf, set, phasedPairs(from, to, phaseX), from, phaseY, entryY)
}

// GenerateTransformedValuesCandle projects the high value of each candle.
func (t *Transformer) GenerateTransformedValuesCandle(buf []float64, set *chart.DataSet, phaseX, phaseY float64, from, to int) []float64 {
	return t.valuePairs(buf, set, phasedPairs(from, to, phaseX), from, phaseY, entryHigh)
}

// GenerateTransformedValuesBubble projects every entry from..to, ignoring
// phaseX.
func (t *Transformer) GenerateTransformedValuesBubble(buf []float64, set *chart.DataSet, phaseY float64, from, to int) []float64 {
	return t.valuePairs(buf, set, to-from+1, from, phaseY, entryY)
}
