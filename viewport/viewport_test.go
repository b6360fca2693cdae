package viewport

import (
	"math"
	"testing"

	"git.sr.ht/~whereswaldon/chartkit/chart"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func newTestHandler() *Handler {
	h := NewHandler()
	h.SetChartDimens(400, 300)
	h.RestrainViewPort(20, 10, 30, 40)
	return h
}

func TestHandlerContent(t *testing.T) {
	h := newTestHandler()
	r := h.ContentRect()
	if r != (Rect{Left: 20, Top: 10, Right: 370, Bottom: 260}) {
		t.Errorf("unexpected content rect %+v", r)
	}
	if h.OffsetRight() != 30 || h.OffsetBottom() != 40 {
		t.Errorf("unexpected offsets right %v bottom %v", h.OffsetRight(), h.OffsetBottom())
	}
	h.SetChartDimens(500, 300)
	if h.ContentRight() != 470 {
		t.Errorf("resizing should keep the right offset, content right is %v", h.ContentRight())
	}
}

func TestHandlerBounds(t *testing.T) {
	h := newTestHandler()
	type testcase struct {
		name string
		x, y float64
		in   bool
	}
	for _, tc := range []testcase{
		{name: "inside", x: 100, y: 100, in: true},
		{name: "left edge", x: 20, y: 100, in: true},
		{name: "left tolerance", x: 19.5, y: 100, in: true},
		{name: "left outside", x: 18, y: 100, in: false},
		{name: "right tolerance", x: 370.5, y: 100, in: true},
		{name: "right outside", x: 372, y: 100, in: false},
		{name: "top edge", x: 100, y: 10, in: true},
		{name: "above top", x: 100, y: 9.9, in: false},
		{name: "bottom edge", x: 100, y: 260, in: true},
		{name: "below bottom", x: 100, y: 260.1, in: false},
	} {
		if got := h.IsInBounds(tc.x, tc.y); got != tc.in {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.in, got)
		}
	}
}

func TestHandlerLimits(t *testing.T) {
	h := newTestHandler()
	var changes int
	h.OnChange = func() { changes++ }

	h.ZoomOut(100, 100)
	if h.ScaleX() != 1 || h.ScaleY() != 1 {
		t.Errorf("zooming out past the minimum should clamp to 1, got %v %v", h.ScaleX(), h.ScaleY())
	}
	h.SetMinMaxScaleX(0.5, 2)
	if h.MinScaleX() != 1 {
		t.Errorf("minimum scale below 1 should become 1, got %v", h.MinScaleX())
	}
	for i := 0; i < 5; i++ {
		h.ZoomIn(100, 100)
	}
	if h.ScaleX() != 2 {
		t.Errorf("expected x scale clamped to 2, got %v", h.ScaleX())
	}
	if !near(h.ScaleY(), math.Pow(zoomInFactor, 5)) {
		t.Errorf("expected unbounded y scale, got %v", h.ScaleY())
	}
	h.SetMaximumScaleY(0)
	if !math.IsInf(h.MaxScaleY(), 1) {
		t.Errorf("a maximum of 0 should mean unbounded, got %v", h.MaxScaleY())
	}

	h.Translate(1e6, -1e6)
	if h.TransX() != 0 || h.TransY() != 0 {
		t.Errorf("panning past the start should clamp to 0, got %v %v", h.TransX(), h.TransY())
	}
	h.Translate(-1e6, 1e6)
	if !near(h.TransX(), -h.ContentWidth()*(h.ScaleX()-1)) || !near(h.TransY(), h.ContentHeight()*(h.ScaleY()-1)) {
		t.Errorf("panning past the end should clamp to the content, got %v %v", h.TransX(), h.TransY())
	}

	h.SetDragOffsetX(15)
	h.Translate(1e6, 0)
	if h.TransX() != 15 {
		t.Errorf("drag offset should allow overscrolling by 15, got %v", h.TransX())
	}

	h.FitScreen()
	if !h.IsFullyZoomedOut() || h.TransX() != 0 {
		t.Errorf("fit screen should reset zoom and pan")
	}
	if changes == 0 {
		t.Errorf("change listener never called")
	}
}

func TestZoomKeepsPivot(t *testing.T) {
	h := newTestHandler()
	tr := NewTransformer(h)
	tr.PrepareMatrixValuePx(0, 10, 100, 0)
	tr.PrepareMatrixOffset(false)

	px, py := tr.PixelForValues(4, 40)
	h.ZoomIn(px, py)
	gotX, gotY := tr.ValuesByTouchPoint(px, py)
	if !near(gotX, 4) || !near(gotY, 40) {
		t.Errorf("zoom pivot moved: expected (4, 40), got (%v, %v)", gotX, gotY)
	}
}

func TestTransformerMapping(t *testing.T) {
	h := newTestHandler()
	tr := NewTransformer(h)
	tr.PrepareMatrixValuePx(0, 10, 100, 0)
	tr.PrepareMatrixOffset(false)

	x, y := tr.PixelForValues(0, 0)
	if !near(x, h.ContentLeft()) || !near(y, h.ContentBottom()) {
		t.Errorf("origin should map to the bottom left corner, got (%v, %v)", x, y)
	}
	x, y = tr.PixelForValues(10, 100)
	if !near(x, h.ContentRight()) || !near(y, h.ContentTop()) {
		t.Errorf("window end should map to the top right corner, got (%v, %v)", x, y)
	}

	tr.PrepareMatrixOffset(true)
	x, y = tr.PixelForValues(0, 0)
	if !near(x, h.ContentLeft()) || !near(y, h.ContentTop()) {
		t.Errorf("inverted origin should map to the top left corner, got (%v, %v)", x, y)
	}
	x, y = tr.PixelForValues(10, 100)
	if !near(y, h.ContentBottom()) {
		t.Errorf("inverted window end should map to the bottom, got y %v", y)
	}
}

func TestTransformerRoundTrip(t *testing.T) {
	type testcase struct {
		name   string
		zoom   [2]float64
		pan    [2]float64
		invert bool
	}
	for _, tc := range []testcase{
		{name: "identity", zoom: [2]float64{1, 1}},
		{name: "zoomed", zoom: [2]float64{3, 2}, pan: [2]float64{-120, 80}},
		{name: "inverted", zoom: [2]float64{1.5, 4}, pan: [2]float64{-30, 300}, invert: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandler()
			h.ZoomToCenter(tc.zoom[0], tc.zoom[1])
			h.Translate(tc.pan[0], tc.pan[1])
			tr := NewTransformer(h)
			tr.PrepareMatrixValuePx(-1000, 1e6, 0.002, 5)
			tr.PrepareMatrixOffset(tc.invert)

			pts := []float64{-1000, 5, 0, 5.001, 999000, 5.002, 123456.789, 5.0005}
			orig := append([]float64(nil), pts...)
			tr.PointValuesToPixel(pts)
			tr.PixelsToValue(pts)
			for i := range pts {
				if math.Abs(pts[i]-orig[i]) > 1e-9*max(1, math.Abs(orig[i])) {
					t.Errorf("component %d: expected %v, got %v", i, orig[i], pts[i])
				}
			}
		})
	}
}

func TestTransformerDegenerateRange(t *testing.T) {
	h := newTestHandler()
	tr := NewTransformer(h)
	tr.PrepareMatrixValuePx(0, 0, 0, 0)
	tr.PrepareMatrixOffset(false)
	x, y := tr.PixelForValues(5, 5)
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		t.Errorf("zero ranges should not produce non-finite pixels, got (%v, %v)", x, y)
	}
}

func TestGenerateTransformedValues(t *testing.T) {
	entries := make([]*chart.Entry, 10)
	for i := range entries {
		entries[i] = chart.NewEntry(float64(i), float64(i*i))
	}
	set := chart.NewDataSet(chart.KindLine, "squares", entries)

	h := newTestHandler()
	h.ZoomToCenter(2, 1.5)
	tr := NewTransformer(h)
	tr.PrepareMatrixValuePx(0, 9, 81, 0)
	tr.PrepareMatrixOffset(false)

	buf := make([]float64, 0, 64)
	out := tr.GenerateTransformedValuesLine(buf, set, 1, 0.5, 2, 7)
	if len(out) != 12 {
		t.Fatalf("expected 6 pairs, got %d values", len(out))
	}
	if &out[0] != &buf[:1][0] {
		t.Errorf("scratch buffer with enough capacity should be reused")
	}
	for j := 0; j < 6; j++ {
		e := set.Entry(2 + j)
		x, y := tr.PixelForValues(e.X, e.Y*0.5)
		if !near(out[2*j], x) || !near(out[2*j+1], y) {
			t.Errorf("pair %d: batch (%v, %v) differs from single (%v, %v)", j, out[2*j], out[2*j+1], x, y)
		}
	}

	half := tr.GenerateTransformedValuesLine(out, set, 0.5, 1, 2, 7)
	if len(half) != 8 {
		t.Errorf("expected 4 pairs at phase 0.5, got %d values", len(half))
	}
	bubbles := tr.GenerateTransformedValuesBubble(nil, set, 1, 8, 9)
	if len(bubbles) != 4 {
		t.Errorf("expected 2 bubble pairs, got %d values", len(bubbles))
	}
}

func TestAngleForPoint(t *testing.T) {
	type testcase struct {
		name  string
		x, y  float64
		angle float64
	}
	for _, tc := range []testcase{
		{name: "east", x: 10, y: 0, angle: 360},
		{name: "south", x: 0, y: 10, angle: 90},
		{name: "west", x: -10, y: 0, angle: 180},
		{name: "north", x: 0, y: -10, angle: 270},
		{name: "south east", x: 10, y: 10, angle: 45},
	} {
		if got := AngleForPoint(0, 0, tc.x, tc.y); !near(got, tc.angle) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.angle, got)
		}
	}
	x, y := Position(0, 0, 10, 90)
	if !near(x, 0) || !near(y, 10) {
		t.Errorf("expected (0, 10), got (%v, %v)", x, y)
	}
	if NormalizedAngle(-90) != 270 || NormalizedAngle(720) != 0 {
		t.Errorf("unexpected normalized angles")
	}
}

func TestMatrixInvert(t *testing.T) {
	m := Scaling(2, 4).Mul(Translation(10, -5))
	inv, ok := m.Invert()
	if !ok {
		t.Fatalf("expected %+v to be invertible", m)
	}
	x, y := inv.Apply(m.Apply(3, 7))
	if !near(x, 3) || !near(y, 7) {
		t.Errorf("expected the round trip to return (3, 7), got (%v, %v)", x, y)
	}
	if _, ok := Scaling(0, 1).Invert(); ok {
		t.Errorf("a singular matrix should not invert")
	}
}
