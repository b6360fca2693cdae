package chart

import (
	"image/color"
	"testing"
)

func TestDarken(t *testing.T) {
	type testcase struct {
		in, out color.NRGBA
	}
	for _, tc := range []testcase{
		{in: color.NRGBA{R: 200, G: 100, B: 50, A: 255}, out: color.NRGBA{R: 100, G: 50, B: 25, A: 255}},
		{in: color.NRGBA{R: 255, G: 255, B: 255, A: 128}, out: color.NRGBA{R: 128, G: 128, B: 128, A: 128}},
		{in: color.NRGBA{A: 255}, out: color.NRGBA{A: 255}},
	} {
		if got := Darken(tc.in, HighlightDarkening); got != tc.out {
			t.Errorf("darkening %v: expected %v, got %v", tc.in, tc.out, got)
		}
	}
}

func TestParseColor(t *testing.T) {
	type testcase struct {
		in  string
		out color.NRGBA
		ok  bool
	}
	for _, tc := range []testcase{
		{in: "#fff", out: color.NRGBA{R: 255, G: 255, B: 255, A: 255}, ok: true},
		{in: "#8ceaff", out: DefaultColor, ok: true},
		{in: "00000080", out: color.NRGBA{A: 0x80}, ok: true},
		{in: "#12345", ok: false},
		{in: "#zzzzzz", ok: false},
	} {
		got, err := ParseColor(tc.in)
		if (err == nil) != tc.ok {
			t.Errorf("parsing %q: unexpected error state %v", tc.in, err)
			continue
		}
		if tc.ok && got != tc.out {
			t.Errorf("parsing %q: expected %v, got %v", tc.in, tc.out, got)
		}
		if tc.ok && FormatColor(got) != FormatColor(tc.out) {
			t.Errorf("formatting %v changed the color", got)
		}
	}
}

func TestDigitsFor(t *testing.T) {
	for _, tc := range []struct {
		reference float64
		digits    int
	}{
		{reference: 100, digits: 0},
		{reference: 1, digits: 2},
		{reference: 0.05, digits: 4},
		{reference: 0, digits: 0},
	} {
		if got := DigitsFor(tc.reference); got != tc.digits {
			t.Errorf("DigitsFor(%v): expected %d, got %d", tc.reference, tc.digits, got)
		}
	}
}
