package viewport

import "math"

// AngleForPoint returns the angle of (x, y) around the center (cx, cy) in
// degrees, measured clockwise from east, in (0, 360].
func AngleForPoint(cx, cy, x, y float64) float64 {
	tx, ty := x-cx, y-cy
	length := math.Hypot(tx, ty)
	if length == 0 {
		return 90
	}
	angle := math.Acos(ty/length) * 180 / math.Pi
	if x > cx {
		angle = 360 - angle
	}
	// Angles start east.
	angle += 90
	if angle > 360 {
		angle -= 360
	}
	return angle
}

// DistanceToCenter returns the distance of (x, y) from (cx, cy).
func DistanceToCenter(cx, cy, x, y float64) float64 {
	return math.Hypot(x-cx, y-cy)
}

// Position returns the point dist away from (cx, cy) at angle degrees.
func Position(cx, cy, dist, angle float64) (float64, float64) {
	rad := angle * math.Pi / 180
	return cx + dist*math.Cos(rad), cy + dist*math.Sin(rad)
}

// NormalizedAngle maps angle into [0, 360).
func NormalizedAngle(angle float64) float64 {
	angle = math.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}
	return angle
}
