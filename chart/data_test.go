package chart

import (
	"math"
	"testing"
)

func TestDataVisibleBounds(t *testing.T) {
	s := lineSet([2]float64{0, 1}, [2]float64{1, 3}, [2]float64{2, 2})
	d := NewData(s)
	if d.XMin() != 0 || d.XMax() != 2 || d.YMin() != 1 || d.YMax() != 3 {
		t.Errorf("expected aggregate x [0,2] y [1,3], got x [%v,%v] y [%v,%v]", d.XMin(), d.XMax(), d.YMin(), d.YMax())
	}

	s.Visible = false
	d.NotifyDataChanged()
	if !math.IsInf(d.XMin(), 1) || !math.IsInf(d.XMax(), -1) || !math.IsInf(d.YMin(), 1) || !math.IsInf(d.YMax(), -1) {
		t.Errorf("expected sentinel aggregate with no visible sets, got x [%v,%v] y [%v,%v]", d.XMin(), d.XMax(), d.YMin(), d.YMax())
	}
	for _, axis := range []AxisDependency{AxisLeft, AxisRight} {
		if d.AxisYMin(axis) != 0 || d.AxisYMax(axis) != 0 {
			t.Errorf("%v axis leaked sentinel bounds: [%v,%v]", axis, d.AxisYMin(axis), d.AxisYMax(axis))
		}
	}

	s.Visible = true
	d.NotifyDataChanged()
	if d.YMin() != 1 || d.YMax() != 3 {
		t.Errorf("expected bounds restored, got y [%v,%v]", d.YMin(), d.YMax())
	}
}

func TestDataAxisBounds(t *testing.T) {
	left := lineSet([2]float64{0, 1}, [2]float64{1, 5})
	right := lineSet([2]float64{0, -10}, [2]float64{4, 20})
	right.Axis = AxisRight
	hidden := lineSet([2]float64{0, -100}, [2]float64{10, 100})
	hidden.Visible = false
	d := NewData(hidden, left, right)

	type testcase struct {
		axis     AxisDependency
		min, max float64
	}
	for _, tc := range []testcase{
		{axis: AxisLeft, min: 1, max: 5},
		{axis: AxisRight, min: -10, max: 20},
	} {
		if d.AxisYMin(tc.axis) != tc.min || d.AxisYMax(tc.axis) != tc.max {
			t.Errorf("%v axis: expected [%v,%v], got [%v,%v]", tc.axis, tc.min, tc.max, d.AxisYMin(tc.axis), d.AxisYMax(tc.axis))
		}
	}
	if d.XMin() != 0 || d.XMax() != 4 {
		t.Errorf("expected x [0,4], got [%v,%v]", d.XMin(), d.XMax())
	}

	// An axis without data borrows the other one.
	only := NewData(lineSet([2]float64{0, 2}, [2]float64{1, 8}))
	if only.AxisYMin(AxisRight) != 2 || only.AxisYMax(AxisRight) != 8 {
		t.Errorf("expected right axis to fall back to [2,8], got [%v,%v]", only.AxisYMin(AxisRight), only.AxisYMax(AxisRight))
	}
}

func TestDataAxisBoundsWithGaps(t *testing.T) {
	left := lineSet([2]float64{0, 1}, [2]float64{1, math.NaN()}, [2]float64{2, 3})
	right := lineSet([2]float64{0, math.NaN()})
	right.Axis = AxisRight
	d := NewData(left, right)

	if d.AxisYMin(AxisLeft) != 1 || d.AxisYMax(AxisLeft) != 3 {
		t.Errorf("expected left axis [1,3], got [%v,%v]", d.AxisYMin(AxisLeft), d.AxisYMax(AxisLeft))
	}
	// The right axis only has gaps, so it borrows the left one.
	if d.AxisYMin(AxisRight) != 1 || d.AxisYMax(AxisRight) != 3 {
		t.Errorf("expected right axis [1,3], got [%v,%v]", d.AxisYMin(AxisRight), d.AxisYMax(AxisRight))
	}
	if d.YMin() != 1 || d.YMax() != 3 {
		t.Errorf("expected aggregate y [1,3], got [%v,%v]", d.YMin(), d.YMax())
	}

	a := NewYAxis(AxisLeft)
	a.Calculate(d.AxisYMin(AxisLeft), d.AxisYMax(AxisLeft))
	if a.Min() >= 1 || a.Max() <= 3 {
		t.Errorf("axis range [%v,%v] does not cover the data", a.Min(), a.Max())
	}
}

func TestDataMutation(t *testing.T) {
	a := lineSet([2]float64{0, 1}, [2]float64{1, 2})
	b := lineSet([2]float64{0, 5})
	b.Label = "Second"
	d := NewData(a)
	d.AddDataSet(b)
	if d.YMax() != 5 || d.DataSetCount() != 2 {
		t.Errorf("adding a set should fold its bounds, got y max %v", d.YMax())
	}
	if d.DataSetByLabel("second", true) != b || d.DataSetByLabel("second", false) != nil {
		t.Errorf("label lookup does not honor ignoreCase")
	}
	if !d.AddEntry(NewEntry(2, 9), 0) || d.YMax() != 9 || d.XMax() != 2 {
		t.Errorf("adding an entry should fold it, got y max %v x max %v", d.YMax(), d.XMax())
	}
	if d.AddEntry(NewEntry(3, 1), 7) {
		t.Errorf("adding to a missing set should fail")
	}
	if d.RemoveEntryForX(2, 9) {
		t.Errorf("removing from a missing set should fail")
	}
	if !d.RemoveEntryForX(2, 0) || d.YMax() != 5 {
		t.Errorf("removing x=2 should shrink y max to 5, got %v", d.YMax())
	}
	if d.DataSetForEntry(b.Entry(0)) != b {
		t.Errorf("entry lookup returned the wrong set")
	}
	if d.EntryCount() != 3 || d.MaxEntryCountSet() != a {
		t.Errorf("expected 3 entries with set a the largest, got %d", d.EntryCount())
	}
	if !d.RemoveDataSet(b) || d.YMax() != 2 || d.Contains(b) {
		t.Errorf("removing set b should shrink y max to 2, got %v", d.YMax())
	}
	if d.RemoveDataSetAt(4) {
		t.Errorf("removing a missing set should fail")
	}
}

func TestEntryForHighlight(t *testing.T) {
	s := lineSet([2]float64{0, 1}, [2]float64{1, 3}, [2]float64{2, 2})
	d := NewData(s)
	other := NewEntry(42, 42)

	h := NewHighlight(1, math.NaN(), 0)
	if e := d.EntryForHighlight(h); e != s.Entry(1) {
		t.Errorf("expected the entry at x=1, got %+v", e)
	}
	h.Entry = other
	if e := d.EntryForHighlight(h); e != other {
		t.Errorf("a direct entry reference should be returned as is")
	}
	if e := d.EntryForHighlight(NewHighlight(1, 3, 5)); e != nil {
		t.Errorf("expected nil for a missing set, got %+v", e)
	}
}

func TestGroupBars(t *testing.T) {
	a := NewDataSet(KindBar, "a", []*Entry{NewEntry(0, 1), NewEntry(1, 2)})
	b := NewDataSet(KindBar, "b", []*Entry{NewEntry(0, 3), NewEntry(1, 4)})
	d := NewData(a)
	if d.GroupBars(0, 0.1, 0.05) {
		t.Errorf("grouping a single set should fail")
	}
	d.AddDataSet(b)
	d.BarWidth = 0.4
	if !d.GroupBars(0, 0.1, 0.05) {
		t.Fatalf("grouping two sets should succeed")
	}
	interval := d.GroupWidth(0.1, 0.05)
	if math.Abs(interval-1) > 1e-9 {
		t.Errorf("expected a group width of 1, got %v", interval)
	}
	expected := [][]float64{{0.275, 1.275}, {0.725, 1.725}}
	for i, s := range []*DataSet{a, b} {
		for j, e := range s.Entries() {
			if math.Abs(e.X-expected[i][j]) > 1e-9 {
				t.Errorf("set %d entry %d: expected x %v, got %v", i, j, expected[i][j], e.X)
			}
		}
	}
	if math.Abs(d.XMin()-0.275) > 1e-9 {
		t.Errorf("bounds not recalculated after grouping, x min %v", d.XMin())
	}
}

func TestYValueSumAndPieAngles(t *testing.T) {
	s := NewDataSet(KindPie, "pie", []*Entry{NewPieEntry(1, "a"), NewPieEntry(1, "b"), NewPieEntry(2, "c")})
	d := NewData(s)
	if d.YValueSum() != 4 {
		t.Errorf("expected sum 4, got %v", d.YValueSum())
	}
	a := CalcPieAngles(d, 360, 0)
	expected := []float64{90, 90, 180}
	for i, v := range expected {
		if a.Draw[i] != v {
			t.Errorf("slice %d: expected %v degrees, got %v", i, v, a.Draw[i])
		}
	}
	if a.Absolute[2] != 360 {
		t.Errorf("absolute angles should end at 360, got %v", a.Absolute[2])
	}
	if a.IndexForAngle(100) != 1 || a.IndexForAngle(359) != 2 || a.IndexForAngle(0) != 0 {
		t.Errorf("angle lookup resolved the wrong slices")
	}

	tiny := NewData(NewDataSet(KindPie, "pie", []*Entry{NewPieEntry(1, "a"), NewPieEntry(99, "b")}))
	a = CalcPieAngles(tiny, 360, 36)
	if math.Abs(a.Draw[0]-36) > 1e-9 || math.Abs(a.Draw[0]+a.Draw[1]-360) > 1e-9 {
		t.Errorf("expected the small slice widened to 36 degrees out of 360, got %v", a.Draw)
	}
}
