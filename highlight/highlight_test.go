package highlight

import (
	"math"
	"testing"

	"git.sr.ht/~whereswaldon/chartkit/chart"
	"git.sr.ht/~whereswaldon/chartkit/viewport"
)

// fakeChart maps x in [0, 4] onto 0..400 pixels and y in [0, 10] onto
// 300..0 pixels.
type fakeChart struct {
	data        *chart.Data
	combined    *chart.CombinedData
	left, right *viewport.Transformer
	maxDistance float64
}

func newFakeChart(d *chart.Data) *fakeChart {
	h := viewport.NewHandler()
	h.SetChartDimens(400, 300)
	f := &fakeChart{
		data:        d,
		left:        viewport.NewTransformer(h),
		right:       viewport.NewTransformer(h),
		maxDistance: DefaultMaxDistance,
	}
	for _, t := range []*viewport.Transformer{f.left, f.right} {
		t.PrepareMatrixValuePx(0, 4, 10, 0)
		t.PrepareMatrixOffset(false)
	}
	return f
}

func (f *fakeChart) Data() *chart.Data                 { return f.data }
func (f *fakeChart) CombinedData() *chart.CombinedData { return f.combined }
func (f *fakeChart) MaxHighlightDistance() float64     { return f.maxDistance }
func (f *fakeChart) Transformer(a chart.AxisDependency) *viewport.Transformer {
	if a == chart.AxisRight {
		return f.right
	}
	return f.left
}

func pixel(x, y float64) (float64, float64) {
	return x * 100, 300 - y*30
}

func lineSet(label string, ys ...float64) *chart.DataSet {
	entries := make([]*chart.Entry, len(ys))
	for i, y := range ys {
		entries[i] = chart.NewEntry(float64(i), y)
	}
	return chart.NewDataSet(chart.KindLine, label, entries)
}

func TestHighlightNearestX(t *testing.T) {
	f := newFakeChart(chart.NewData(lineSet("a", 1, 3, 5, 2, 7)))
	h := NewChartHighlighter(f)
	type testcase struct {
		name   string
		px, py float64
		x, y   float64
	}
	for _, tc := range []testcase{
		{name: "exact", px: 100, py: 210, x: 1, y: 3},
		{name: "between entries", px: 140, py: 0, x: 1, y: 3},
		{name: "past the end", px: 399, py: 150, x: 4, y: 7},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := h.Highlight(tc.px, tc.py)
			if got == nil {
				t.Fatalf("expected a highlight")
			}
			if got.X != tc.x || got.Y != tc.y || got.DataSetIndex != 0 {
				t.Errorf("expected (%v, %v) in set 0, got (%v, %v) in set %d", tc.x, tc.y, got.X, got.Y, got.DataSetIndex)
			}
			if got.Entry == nil || got.Entry.X != tc.x {
				t.Errorf("highlight should carry its entry, got %+v", got.Entry)
			}
		})
	}
}

func TestHighlightsAtXOnce(t *testing.T) {
	f := newFakeChart(chart.NewData(lineSet("a", 1, 3, 2)))
	h := NewChartHighlighter(f)
	px, py := pixel(1, 3)
	xVal, _ := f.left.ValuesByTouchPoint(px, py)
	hs := h.HighlightsAtX(xVal)
	if len(hs) != 1 {
		t.Fatalf("expected exactly one candidate, got %d", len(hs))
	}
	if hs[0].X != 1 || hs[0].Y != 3 {
		t.Errorf("expected (1, 3), got (%v, %v)", hs[0].X, hs[0].Y)
	}
	if math.Abs(hs[0].XPx-px) > 1e-9 || math.Abs(hs[0].YPx-py) > 1e-9 {
		t.Errorf("expected pixel (%v, %v), got (%v, %v)", px, py, hs[0].XPx, hs[0].YPx)
	}
}

func TestHighlightClosestSet(t *testing.T) {
	a := lineSet("a", 1, 3, 2)
	b := lineSet("b", 0, 8, 0)
	f := newFakeChart(chart.NewData(a, b))
	h := NewChartHighlighter(f)

	got := h.Highlight(pixel(1, 8))
	if got == nil || got.DataSetIndex != 1 {
		t.Fatalf("expected set 1, got %+v", got)
	}
	got = h.Highlight(pixel(1, 2.5))
	if got == nil || got.DataSetIndex != 0 {
		t.Fatalf("expected set 0, got %+v", got)
	}

	b.Visible = false
	got = h.Highlight(pixel(1, 8))
	if got == nil || got.DataSetIndex != 0 {
		t.Errorf("hidden sets must not be highlighted, got %+v", got)
	}
	b.Visible = true
	b.HighlightEnabled = false
	got = h.Highlight(pixel(1, 8))
	if got == nil || got.DataSetIndex != 0 {
		t.Errorf("sets with highlighting disabled must be skipped, got %+v", got)
	}
}

func TestHighlightMaxDistance(t *testing.T) {
	f := newFakeChart(chart.NewData(lineSet("a", 1, 3, 2), lineSet("b", 0, 8, 0)))
	f.maxDistance = 10
	h := NewChartHighlighter(f)
	if got := h.Highlight(100, 0); got != nil {
		t.Errorf("expected no highlight beyond the maximum distance, got %+v", got)
	}
	if got := h.Highlight(pixel(1, 7.9)); got == nil || got.DataSetIndex != 1 {
		t.Errorf("expected set 1 within the maximum distance, got %+v", got)
	}
}

func TestHighlightEmpty(t *testing.T) {
	f := newFakeChart(chart.NewData())
	if got := NewChartHighlighter(f).Highlight(10, 10); got != nil {
		t.Errorf("expected nil for empty data, got %+v", got)
	}
}

func TestBarHighlightStack(t *testing.T) {
	bars := chart.NewDataSet(chart.KindBar, "bars", []*chart.Entry{
		chart.NewStackedEntry(0, 1, 1),
		chart.NewStackedEntry(1, 2, 3),
		chart.NewStackedEntry(2, 4, 1),
	})
	f := newFakeChart(chart.NewData(bars))
	h := NewBarHighlighter(f, f.Data)
	type testcase struct {
		name  string
		value float64
		stack int
	}
	for _, tc := range []testcase{
		{name: "lower value", value: 1, stack: 0},
		{name: "upper value", value: 3.5, stack: 1},
		{name: "boundary", value: 2, stack: 0},
		{name: "above the stack", value: 6, stack: 1},
		{name: "below zero", value: -1, stack: 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := h.Highlight(pixel(1.1, tc.value))
			if got == nil {
				t.Fatalf("expected a highlight")
			}
			if got.X != 1 || got.Y != 5 {
				t.Errorf("expected the bar at x 1 with sum 5, got (%v, %v)", got.X, got.Y)
			}
			if got.StackIndex != tc.stack {
				t.Errorf("expected stack index %d, got %d", tc.stack, got.StackIndex)
			}
		})
	}
}

func TestBarHighlightDistanceIsHorizontal(t *testing.T) {
	f := newFakeChart(chart.NewData(
		chart.NewDataSet(chart.KindBar, "a", []*chart.Entry{chart.NewEntry(1, 1)}),
		chart.NewDataSet(chart.KindBar, "b", []*chart.Entry{chart.NewEntry(1, 9)}),
	))
	h := NewBarHighlighter(f, f.Data)
	got := h.Highlight(pixel(1, 9))
	if got == nil {
		t.Fatalf("expected a highlight")
	}
	// Both bars share the same x, so the first at the minimum distance wins.
	if got.DataSetIndex != 0 {
		t.Errorf("expected set 0, got %d", got.DataSetIndex)
	}
}

func TestCombinedHighlight(t *testing.T) {
	c := chart.NewCombinedData()
	c.SetData(chart.KindLine, chart.NewData(lineSet("line", 1, 3, 2)))
	c.SetData(chart.KindBar, chart.NewData(chart.NewDataSet(chart.KindBar, "bars", []*chart.Entry{
		chart.NewEntry(0, 6),
		chart.NewEntry(1, 8),
		chart.NewEntry(2, 7),
	})))
	f := newFakeChart(&c.Data)
	f.combined = c
	h := NewCombinedHighlighter(f)

	got := h.Highlight(pixel(1, 3))
	if got == nil || got.DataIndex != 0 || got.Y != 3 {
		t.Fatalf("expected the line entry, got %+v", got)
	}
	got = h.Highlight(pixel(1, 8))
	if got == nil || got.DataIndex != 1 || got.Y != 8 {
		t.Fatalf("expected the bar entry, got %+v", got)
	}
	if e := c.EntryForHighlight(*got); e == nil || e.Y != 8 {
		t.Errorf("combined data should resolve the highlight, got %+v", e)
	}
}

type fakePolar struct {
	data     *chart.Data
	rotation float64
	phaseY   float64
}

func (f *fakePolar) Data() *chart.Data          { return f.data }
func (f *fakePolar) Center() (float64, float64) { return 100, 100 }
func (f *fakePolar) Radius() float64            { return 100 }
func (f *fakePolar) RotationAngle() float64     { return f.rotation }
func (f *fakePolar) PhaseX() float64            { return 1 }
func (f *fakePolar) PhaseY() float64            { return f.phaseY }
func (f *fakePolar) Angles() chart.PieAngles    { return chart.CalcPieAngles(f.data, 360, 0) }

func (f *fakePolar) SliceAngle() float64 {
	return 360 / float64(f.data.MaxEntryCountSet().EntryCount())
}
func (f *fakePolar) Factor() float64    { return f.Radius() / (f.data.YMax() - f.YChartMin()) }
func (f *fakePolar) YChartMin() float64 { return 0 }

func TestPieHighlight(t *testing.T) {
	pie := chart.NewDataSet(chart.KindPie, "pie", []*chart.Entry{
		chart.NewPieEntry(1, "a"),
		chart.NewPieEntry(1, "b"),
		chart.NewPieEntry(2, "c"),
	})
	f := &fakePolar{data: chart.NewData(pie), rotation: 270, phaseY: 1}
	h := NewPieHighlighter(f)
	type testcase struct {
		name   string
		px, py float64
		index  int
	}
	for _, tc := range []testcase{
		{name: "north", px: 100, py: 60, index: 0},
		{name: "east", px: 140, py: 100, index: 1},
		{name: "south", px: 100, py: 140, index: 2},
		{name: "west", px: 60, py: 100, index: 2},
		{name: "outside", px: 100, py: 250, index: -1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := h.Highlight(tc.px, tc.py)
			if tc.index < 0 {
				if got != nil {
					t.Errorf("expected no highlight, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected slice %d", tc.index)
			}
			if int(got.X) != tc.index || got.Y != pie.Entry(tc.index).Y {
				t.Errorf("expected slice %d, got %+v", tc.index, got)
			}
		})
	}
}

func TestRadarHighlight(t *testing.T) {
	a := chart.NewDataSet(chart.KindRadar, "a", []*chart.Entry{
		chart.NewEntry(0, 2), chart.NewEntry(0, 4), chart.NewEntry(0, 6), chart.NewEntry(0, 10),
	})
	b := chart.NewDataSet(chart.KindRadar, "b", []*chart.Entry{
		chart.NewEntry(0, 5), chart.NewEntry(0, 5), chart.NewEntry(0, 5), chart.NewEntry(0, 5),
	})
	f := &fakePolar{data: chart.NewData(a, b), rotation: 270, phaseY: 1}
	h := NewRadarHighlighter(f)
	type testcase struct {
		name   string
		px, py float64
		x      float64
		set    int
	}
	for _, tc := range []testcase{
		{name: "north near", px: 100, py: 80, x: 0, set: 0},
		{name: "north far", px: 100, py: 50, x: 0, set: 1},
		{name: "east", px: 140, py: 100, x: 1, set: 0},
		{name: "south", px: 100, py: 150, x: 2, set: 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := h.Highlight(tc.px, tc.py)
			if got == nil {
				t.Fatalf("expected a highlight")
			}
			if got.X != tc.x || got.DataSetIndex != tc.set {
				t.Errorf("expected axis %v of set %d, got axis %v of set %d", tc.x, tc.set, got.X, got.DataSetIndex)
			}
		})
	}
	if got := h.Highlight(100, 250); got != nil {
		t.Errorf("expected no highlight outside the web, got %+v", got)
	}
}
