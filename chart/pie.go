package chart

import "math"

// PieAngles holds the sweep of each pie slice, in degrees, and the
// cumulative angle at which each slice ends.
type PieAngles struct {
	Draw     []float64
	Absolute []float64
}

// CalcPieAngles splits maxAngle over the entries of d in proportion to |y|.
// When minAngle is set and every slice can get it, small slices are widened
// to minAngle and the extra sweep is taken from the larger slices in
// proportion to their excess.
func CalcPieAngles(d *Data, maxAngle, minAngle float64) PieAngles {
	n := d.EntryCount()
	a := PieAngles{
		Draw:     make([]float64, 0, n),
		Absolute: make([]float64, 0, n),
	}
	sum := d.YValueSum()
	hasMin := minAngle != 0 && float64(n)*minAngle <= maxAngle
	var minAngles []float64
	var offset, diff float64
	for _, s := range d.DataSets() {
		for _, e := range s.Entries() {
			angle := math.Abs(e.Y) / sum * maxAngle
			if sum == 0 {
				angle = 0
			}
			if hasMin {
				if t := angle - minAngle; t <= 0 {
					minAngles = append(minAngles, minAngle)
					offset += -t
				} else {
					minAngles = append(minAngles, angle)
					diff += t
				}
			}
			a.Draw = append(a.Draw, angle)
		}
	}
	if hasMin && diff > 0 {
		for i := range minAngles {
			minAngles[i] -= (minAngles[i] - minAngle) / diff * offset
		}
		a.Draw = minAngles
	}
	var acc float64
	for _, v := range a.Draw {
		acc += v
		a.Absolute = append(a.Absolute, acc)
	}
	return a
}

// IndexForAngle returns the index of the slice covering angle, which must
// already be normalized to [0, 360) relative to the chart rotation, or -1.
func (a PieAngles) IndexForAngle(angle float64) int {
	for i, abs := range a.Absolute {
		if abs > angle {
			return i
		}
	}
	return -1
}
