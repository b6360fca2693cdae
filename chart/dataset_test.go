package chart

import (
	"math"
	"testing"
)

func lineSet(points ...[2]float64) *DataSet {
	entries := make([]*Entry, len(points))
	for i, p := range points {
		entries[i] = NewEntry(p[0], p[1])
	}
	return NewDataSet(KindLine, "test", entries)
}

func TestDataSetBounds(t *testing.T) {
	s := lineSet([2]float64{0, 1}, [2]float64{1, 3}, [2]float64{2, 2})
	if s.XMin() != 0 || s.XMax() != 2 || s.YMin() != 1 || s.YMax() != 3 {
		t.Errorf("expected bounds x [0,2] y [1,3], got x [%v,%v] y [%v,%v]", s.XMin(), s.XMax(), s.YMin(), s.YMax())
	}
	for _, e := range s.Entries() {
		if e.X < s.XMin() || e.X > s.XMax() {
			t.Errorf("entry x %v outside of [%v,%v]", e.X, s.XMin(), s.XMax())
		}
	}

	empty := NewDataSet(KindLine, "empty", nil)
	if !math.IsInf(empty.XMin(), 1) || !math.IsInf(empty.XMax(), -1) || !math.IsInf(empty.YMin(), 1) || !math.IsInf(empty.YMax(), -1) {
		t.Errorf("empty set should report +Inf/-Inf bounds, got x [%v,%v] y [%v,%v]", empty.XMin(), empty.XMax(), empty.YMin(), empty.YMax())
	}
}

func TestDataSetKindBounds(t *testing.T) {
	type testcase struct {
		name       string
		set        *DataSet
		yMin, yMax float64
	}
	for _, tc := range []testcase{
		{
			name: "candle uses low and high",
			set: NewDataSet(KindCandle, "c", []*Entry{
				NewCandleEntry(0, 10, 2, 4, 8),
				NewCandleEntry(1, 12, 5, 11, 6),
			}),
			yMin: 2,
			yMax: 12,
		},
		{
			name: "stacked bars use stack sums",
			set: NewDataSet(KindBar, "b", []*Entry{
				NewStackedEntry(0, 3, -2, 4),
				NewStackedEntry(1, -5, 1),
			}),
			yMin: -5,
			yMax: 7,
		},
		{
			name: "bubble",
			set: NewDataSet(KindBubble, "bb", []*Entry{
				NewBubbleEntry(0, 1, 3),
				NewBubbleEntry(1, -1, 9),
			}),
			yMin: -1,
			yMax: 1,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if tc.set.YMin() != tc.yMin || tc.set.YMax() != tc.yMax {
				t.Errorf("expected y [%v,%v], got [%v,%v]", tc.yMin, tc.yMax, tc.set.YMin(), tc.set.YMax())
			}
		})
	}

	bubbles := NewDataSet(KindBubble, "bb", []*Entry{NewBubbleEntry(0, 1, 3), NewBubbleEntry(1, -1, 9)})
	if bubbles.MaxSize() != 9 {
		t.Errorf("expected max size 9, got %v", bubbles.MaxSize())
	}
	bars := NewDataSet(KindBar, "b", []*Entry{NewStackedEntry(0, 1, 2, 3), NewEntry(1, 2)})
	if bars.StackSize() != 3 || !bars.IsStacked() {
		t.Errorf("expected stack size 3, got %d", bars.StackSize())
	}
}

func TestEntryIndexForX(t *testing.T) {
	s := lineSet([2]float64{1, 0}, [2]float64{3, 0}, [2]float64{5, 0}, [2]float64{7, 0})
	type testcase struct {
		name     string
		x        float64
		rounding Rounding
		expected float64
	}
	for _, tc := range []testcase{
		{name: "down between entries", x: 4, rounding: RoundDown, expected: 3},
		{name: "up between entries", x: 4, rounding: RoundUp, expected: 5},
		{name: "down exact", x: 5, rounding: RoundDown, expected: 5},
		{name: "up exact", x: 5, rounding: RoundUp, expected: 5},
		{name: "closest exact", x: 5, rounding: RoundClosest, expected: 5},
		{name: "closest below", x: 5.9, rounding: RoundClosest, expected: 5},
		{name: "closest above", x: 6.1, rounding: RoundClosest, expected: 7},
		{name: "up past the end", x: 100, rounding: RoundUp, expected: 7},
		{name: "down before the start", x: -100, rounding: RoundDown, expected: 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			e := s.EntryForX(tc.x, math.NaN(), tc.rounding)
			if e == nil {
				t.Fatalf("expected an entry")
			}
			if e.X != tc.expected {
				t.Errorf("expected x %v, got %v", tc.expected, e.X)
			}
		})
	}

	if idx := NewDataSet(KindLine, "", nil).EntryIndexForX(1, math.NaN(), RoundClosest); idx != -1 {
		t.Errorf("expected -1 for an empty set, got %d", idx)
	}
}

func TestEntryIndexForXClosestY(t *testing.T) {
	s := lineSet([2]float64{0, 0}, [2]float64{1, 10}, [2]float64{1, 20}, [2]float64{1, 30}, [2]float64{2, 0})
	for _, y := range []float64{10, 20, 30} {
		e := s.EntryForX(1, y+1, RoundClosest)
		if e == nil || e.Y != y {
			t.Errorf("expected the entry with y %v, got %+v", y, e)
		}
	}
	if got := len(s.EntriesForX(1)); got != 3 {
		t.Errorf("expected 3 entries at x=1, got %d", got)
	}
	if got := s.EntriesForX(1.5); got != nil {
		t.Errorf("expected no entries at x=1.5, got %v", got)
	}
}

func TestDataSetMutation(t *testing.T) {
	s := lineSet([2]float64{0, 1}, [2]float64{2, 2})
	if s.AddEntry(NewEntry(1, 5)) {
		t.Errorf("appending out of order should fail")
	}
	if s.AddEntry(nil) {
		t.Errorf("appending nil should fail")
	}
	if !s.AddEntryOrdered(NewEntry(1, 5)) {
		t.Errorf("ordered insert should succeed")
	}
	for i := 1; i < s.EntryCount(); i++ {
		if s.Entry(i-1).X > s.Entry(i).X {
			t.Errorf("entries out of order at %d", i)
		}
	}
	if s.YMax() != 5 {
		t.Errorf("expected y max 5 after insert, got %v", s.YMax())
	}
	if !s.AddEntry(NewEntry(3, -1)) || s.YMin() != -1 || s.XMax() != 3 {
		t.Errorf("append should extend bounds, got y min %v x max %v", s.YMin(), s.XMax())
	}
	if !s.RemoveEntryByX(1) || s.YMax() != 2 {
		t.Errorf("removing x=1 should shrink y max to 2, got %v", s.YMax())
	}
	if !s.RemoveFirst() || !s.RemoveLast() || s.EntryCount() != 1 {
		t.Errorf("expected one entry left, got %d", s.EntryCount())
	}
	if s.RemoveEntryAt(5) {
		t.Errorf("removing an invalid index should fail")
	}
	s.Clear()
	if s.EntryCount() != 0 || !math.IsInf(s.XMin(), 1) {
		t.Errorf("cleared set should be empty with sentinel bounds")
	}
}

func TestDataSetBoundsSkipNaN(t *testing.T) {
	type testcase struct {
		name       string
		set        *DataSet
		yMin, yMax float64
	}
	for _, tc := range []testcase{
		{
			name: "line gap",
			set:  lineSet([2]float64{0, 1}, [2]float64{1, math.NaN()}, [2]float64{2, 3}),
			yMin: 1,
			yMax: 3,
		},
		{
			name: "leading gap",
			set:  lineSet([2]float64{0, math.NaN()}, [2]float64{1, -2}, [2]float64{2, 4}),
			yMin: -2,
			yMax: 4,
		},
		{
			name: "candle without high",
			set: NewDataSet(KindCandle, "c", []*Entry{
				NewCandleEntry(0, math.NaN(), 2, 4, 3),
				NewCandleEntry(1, 9, 1, 5, 6),
			}),
			yMin: 1,
			yMax: 9,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if tc.set.YMin() != tc.yMin || tc.set.YMax() != tc.yMax {
				t.Errorf("expected y [%v,%v], got [%v,%v]", tc.yMin, tc.yMax, tc.set.YMin(), tc.set.YMax())
			}
			if tc.set.XMin() != 0 || tc.set.XMax() != float64(tc.set.EntryCount()-1) {
				t.Errorf("unexpected x bounds [%v,%v]", tc.set.XMin(), tc.set.XMax())
			}
		})
	}

	s := lineSet([2]float64{0, math.NaN()})
	if !math.IsInf(s.YMin(), 1) || !math.IsInf(s.YMax(), -1) {
		t.Errorf("set of gaps should keep sentinel y bounds, got [%v,%v]", s.YMin(), s.YMax())
	}
	s.AddEntry(NewEntry(1, 7))
	if s.YMin() != 7 || s.YMax() != 7 {
		t.Errorf("expected y [7,7] after append, got [%v,%v]", s.YMin(), s.YMax())
	}
}

func TestCalcMinMaxY(t *testing.T) {
	s := lineSet([2]float64{0, 10}, [2]float64{1, 3}, [2]float64{2, 5}, [2]float64{3, -4})
	s.CalcMinMaxY(0.5, 2.5)
	// The window is widened to the entries around it.
	if s.YMin() != -4 || s.YMax() != 10 {
		t.Errorf("expected y [-4,10], got [%v,%v]", s.YMin(), s.YMax())
	}
	s.CalcMinMaxY(1, 2)
	if s.YMin() != 3 || s.YMax() != 5 {
		t.Errorf("expected y [3,5], got [%v,%v]", s.YMin(), s.YMax())
	}
}

func TestPieSetPositions(t *testing.T) {
	s := NewDataSet(KindPie, "pie", []*Entry{NewPieEntry(3, "a"), NewPieEntry(1, "b")})
	s.AddEntry(NewPieEntry(2, "c"))
	s.AddEntryOrdered(NewPieEntry(4, "d"))
	if s.EntryCount() != 4 {
		t.Fatalf("expected 4 slices, got %d", s.EntryCount())
	}
	for i, e := range s.Entries() {
		if e.X != float64(i) {
			t.Errorf("slice %d positioned at %v", i, e.X)
		}
	}
}
