package render

import (
	"slices"
	"testing"

	"git.sr.ht/~whereswaldon/chartkit/chart"
	"git.sr.ht/~whereswaldon/chartkit/viewport"
)

// fakePolar is a pie or radar host centered at (100, 100).
type fakePolar struct {
	h              *viewport.Handler
	data           *chart.Data
	axis           *chart.Axis
	radius         float64
	rotation       float64
	phaseX, phaseY float64
	highlighted    []chart.Highlight
}

func newFakePolar(d *chart.Data, radius float64) *fakePolar {
	h := viewport.NewHandler()
	h.SetChartDimens(200, 200)
	axis := chart.NewYAxis(chart.AxisLeft)
	axis.SetMin(0)
	axis.SetMax(10)
	axis.LabelCount = 5
	return &fakePolar{
		h:        h,
		data:     d,
		axis:     axis,
		radius:   radius,
		rotation: 270,
		phaseX:   1,
		phaseY:   1,
	}
}

func (f *fakePolar) Handler() *viewport.Handler     { return f.h }
func (f *fakePolar) Data() *chart.Data              { return f.data }
func (f *fakePolar) Center() (float64, float64)     { return 100, 100 }
func (f *fakePolar) Radius() float64                { return f.radius }
func (f *fakePolar) RotationAngle() float64         { return f.rotation }
func (f *fakePolar) PhaseX() float64                { return f.phaseX }
func (f *fakePolar) PhaseY() float64                { return f.phaseY }
func (f *fakePolar) Highlighted() []chart.Highlight { return f.highlighted }
func (f *fakePolar) Angles() chart.PieAngles        { return chart.CalcPieAngles(f.data, 360, 0) }
func (f *fakePolar) YAxis() *chart.Axis             { return f.axis }
func (f *fakePolar) Factor() float64                { return f.radius / f.axis.Range() }
func (f *fakePolar) SliceAngle() float64            { return 360 / float64(f.data.MaxEntryCountSet().EntryCount()) }
func (f *fakePolar) YChartMin() float64             { return f.axis.Min() }

func pieData() *chart.Data {
	return chart.NewData(chart.NewDataSet(chart.KindPie, "pie", []*chart.Entry{
		chart.NewPieEntry(1, "a"),
		chart.NewPieEntry(1, "b"),
		chart.NewPieEntry(2, "c"),
	}))
}

func flatPie() *PieStyle {
	style := DefaultPieStyle()
	style.DrawHole = false
	return &style
}

func TestPieDrawData(t *testing.T) {
	f := newFakePolar(pieData(), 80)
	r := NewPieRenderer(f, flatPie())
	rec := NewRecorder()
	r.DrawData(rec)
	paths := rec.Filter(CallPath)
	if len(paths) != 3 {
		t.Fatalf("expected a path per slice, got %d", len(paths))
	}
	segs := paths[0].Segments
	var ops []Op
	for _, s := range segs {
		ops = append(ops, s.Op)
	}
	if !slices.Equal(ops, []Op{OpMoveTo, OpCubicTo, OpLineTo, OpClose}) {
		t.Errorf("expected arc, line to center and close, got %v", ops)
	}
	if p := segs[0].Pts[0]; !near(p[0], 100) || !near(p[1], 20) {
		t.Errorf("expected the first slice to start at the top, got %v", p)
	}
	if p := segs[1].Pts[2]; !near(p[0], 180) || !near(p[1], 100) {
		t.Errorf("expected a quarter slice to end at the right, got %v", p)
	}
	if p := segs[2].Pts[0]; p != [2]float64{100, 100} {
		t.Errorf("expected the slice to narrow to the center, got %v", p)
	}
	for i, p := range paths {
		if want := f.data.DataSet(0).Color(i); p.Paint.Color != want {
			t.Errorf("slice %d: expected color %v, got %v", i, want, p.Paint.Color)
		}
	}
}

func TestPieHole(t *testing.T) {
	f := newFakePolar(pieData(), 80)
	style := DefaultPieStyle()
	r := NewPieRenderer(f, &style)
	rec := NewRecorder()
	r.DrawData(rec)
	segs := rec.Filter(CallPath)[0].Segments
	// Outer arc, a line onto the hole, the inner arc back and close.
	if len(segs) != 5 || segs[2].Op != OpLineTo || segs[3].Op != OpCubicTo {
		t.Fatalf("unexpected donut slice %+v", segs)
	}
	if p := segs[2].Pts[0]; !near(p[0], 140) || !near(p[1], 100) {
		t.Errorf("expected the inner arc to start at the hole edge, got %v", p)
	}
	if p := segs[3].Pts[2]; !near(p[0], 100) || !near(p[1], 60) {
		t.Errorf("expected the inner arc to end below the start, got %v", p)
	}
}

func TestPieHighlight(t *testing.T) {
	f := newFakePolar(pieData(), 80)
	h := chart.NewHighlight(1, 1, 0)
	f.highlighted = []chart.Highlight{h}
	r := NewPieRenderer(f, flatPie())
	rec := NewRecorder()
	r.DrawData(rec)
	if n := rec.Count(CallPath); n != 2 {
		t.Errorf("expected the highlighted slice to be left out, got %d paths", n)
	}

	rec.Reset()
	hs := []chart.Highlight{h}
	r.DrawHighlighted(rec, hs)
	paths := rec.Filter(CallPath)
	if len(paths) != 1 {
		t.Fatalf("expected one highlighted slice, got %d", len(paths))
	}
	if p := paths[0].Segments[0].Pts[0]; !near(p[0], 192) || !near(p[1], 100) {
		t.Errorf("expected the slice pushed out by its selection shift, got %v", p)
	}
	if want := f.data.DataSet(0).Color(1); paths[0].Paint.Color != want {
		t.Errorf("expected the slice color %v, got %v", want, paths[0].Paint.Color)
	}
	if !near(hs[0].DrawX, 156.5685424949238) || !near(hs[0].DrawY, 156.5685424949238) {
		t.Errorf("expected the draw position at the slice middle, got (%v, %v)", hs[0].DrawX, hs[0].DrawY)
	}
}

func TestPieValues(t *testing.T) {
	d := pieData()
	d.DataSet(0).DrawValues = true
	f := newFakePolar(d, 80)
	style := flatPie()
	style.UsePercentValues = true
	r := NewPieRenderer(f, style)
	rec := NewRecorder()
	r.DrawValues(rec)
	want := []string{"25.0", "a", "25.0", "b", "50.0", "c"}
	if got := rec.Texts(); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	rec.Reset()
	d.DataSet(0).Pie.ValuePosition = chart.OutsideSlice
	style.DrawEntryLabels = false
	r.DrawValues(rec)
	if n := rec.Count(CallLine); n != 6 {
		t.Errorf("expected two value line parts per slice, got %d", n)
	}
	texts := rec.Filter(CallText)
	if len(texts) != 3 {
		t.Fatalf("expected a value per slice, got %d", len(texts))
	}
	// The first slice sits right of the center, the last one left of it.
	if texts[0].Paint.Align != AlignLeft || texts[2].Paint.Align != AlignRight {
		t.Errorf("expected outside labels aligned away from the pie, got %v and %v", texts[0].Paint.Align, texts[2].Paint.Align)
	}
}

func TestPieExtras(t *testing.T) {
	f := newFakePolar(pieData(), 80)
	style := DefaultPieStyle()
	style.CenterText = "total"
	r := NewPieRenderer(f, &style)
	rec := NewRecorder()
	r.DrawExtras(rec)
	circles, paths := rec.Filter(CallCircle), rec.Filter(CallPath)
	if len(circles) != 1 || len(paths) != 1 {
		t.Fatalf("expected the hole and the ring, got %d circles and %d paths", len(circles), len(paths))
	}
	if !nearAll(circles[0].Coords, []float64{100, 100, 40}) {
		t.Errorf("unexpected hole %v", circles[0].Coords)
	}
	if a := paths[0].Paint.Color.A; a != 105 {
		t.Errorf("expected ring alpha 105, got %d", a)
	}
	if got := rec.Texts(); !slices.Equal(got, []string{"total"}) {
		t.Errorf("expected the center text, got %v", got)
	}

	rec.Reset()
	f.phaseY = 0.5
	r.DrawExtras(rec)
	if a := rec.Filter(CallPath)[0].Paint.Color.A; a != 52 {
		t.Errorf("expected the ring to fade in, got alpha %d", a)
	}
}

func radarData() *chart.Data {
	var entries []*chart.Entry
	for i, v := range []float64{2, 4, 6, 10} {
		entries = append(entries, chart.NewEntry(float64(i), v))
	}
	return chart.NewData(chart.NewDataSet(chart.KindRadar, "radar", entries))
}

func TestRadarDrawData(t *testing.T) {
	f := newFakePolar(radarData(), 100)
	r := NewRadarRenderer(f, &WebStyle{})
	rec := NewRecorder()
	r.DrawData(rec)
	paths := rec.Filter(CallPath)
	if len(paths) != 1 {
		t.Fatalf("expected one outline, got %d paths", len(paths))
	}
	segs := paths[0].Segments
	if len(segs) != 5 || segs[4].Op != OpClose {
		t.Fatalf("expected a closed polygon through 4 points, got %+v", segs)
	}
	want := [][2]float64{{100, 80}, {140, 100}, {100, 160}, {0, 100}}
	for i, w := range want {
		if p := segs[i].Pts[0]; !near(p[0], w[0]) || !near(p[1], w[1]) {
			t.Errorf("point %d: expected %v, got %v", i, w, p)
		}
	}

	rec.Reset()
	f.data.DataSet(0).Radar.DrawFilled = true
	r.DrawData(rec)
	if paths := rec.Filter(CallPath); len(paths) != 2 || paths[0].Paint.Style != Fill || paths[1].Paint.Style != Stroke {
		t.Errorf("expected a translucent fill under the outline, got %+v", paths)
	}
}

func TestRadarWeb(t *testing.T) {
	f := newFakePolar(radarData(), 100)
	web := DefaultWebStyle()
	r := NewRadarRenderer(f, &web)
	rec := NewRecorder()
	r.DrawExtras(rec)
	lines := rec.Filter(CallLine)
	if len(lines) != 28 {
		t.Fatalf("expected 4 spokes and 6 rings of 4 lines, got %d lines", len(lines))
	}
	if !nearAll(lines[0].Coords, []float64{100, 100, 100, 0}) {
		t.Errorf("expected the first spoke to reach the top, got %v", lines[0].Coords)
	}
	if lines[0].Paint.Color.A != 150 || lines[0].Paint.StrokeWidth != 2.5 || lines[4].Paint.StrokeWidth != 1.5 {
		t.Errorf("unexpected web paints %+v %+v", lines[0].Paint, lines[4].Paint)
	}

	rec.Reset()
	web.SkipLines = 1
	r.DrawExtras(rec)
	if n := rec.Count(CallLine); n != 26 {
		t.Errorf("expected every other spoke, got %d lines", n)
	}
}

func TestRadarHighlight(t *testing.T) {
	f := newFakePolar(radarData(), 100)
	r := NewRadarRenderer(f, &WebStyle{})
	rec := NewRecorder()
	hs := []chart.Highlight{chart.NewHighlight(1, 4, 0)}
	r.DrawHighlighted(rec, hs)
	if !near(hs[0].DrawX, 140) || !near(hs[0].DrawY, 100) {
		t.Errorf("expected draw position (140, 100), got (%v, %v)", hs[0].DrawX, hs[0].DrawY)
	}
	if n := rec.Count(CallLine); n != 2 || len(rec.Calls) != 2 {
		t.Errorf("expected only a crosshair, got %v", rec.Stats())
	}

	rec.Reset()
	f.data.DataSet(0).Radar.DrawHighlightCircle = true
	r.DrawHighlighted(rec, hs)
	circles := rec.Filter(CallCircle)
	if rec.Count(CallPath) != 1 || len(circles) != 1 {
		t.Fatalf("expected a filled ring and its outline, got %v", rec.Stats())
	}
	if c := circles[0]; c.Paint.Color.A != 76 || !nearAll(c.Coords, []float64{140, 100, 4}) {
		t.Errorf("unexpected highlight circle %+v", c)
	}

	rec.Reset()
	f.phaseX = 0.25
	r.DrawHighlighted(rec, hs)
	if len(rec.Calls) != 0 {
		t.Errorf("expected entries not yet revealed to stay unhighlighted, got %d calls", len(rec.Calls))
	}
}
