package animation

import (
	"math"
	"strings"
)

// Easing maps the linear progress of a tween in [0, 1] to the eased phase.
type Easing func(t float64) float64

func Linear(t float64) float64 { return t }

func EaseInQuad(t float64) float64  { return t * t }
func EaseOutQuad(t float64) float64 { return -t * (t - 2) }
func EaseInOutQuad(t float64) float64 {
	t *= 2
	if t < 1 {
		return 0.5 * t * t
	}
	t--
	return -0.5 * (t*(t-2) - 1)
}

func EaseInCubic(t float64) float64 { return t * t * t }
func EaseOutCubic(t float64) float64 {
	t--
	return t*t*t + 1
}
func EaseInOutCubic(t float64) float64 {
	t *= 2
	if t < 1 {
		return 0.5 * t * t * t
	}
	t -= 2
	return 0.5 * (t*t*t + 2)
}

func EaseInQuart(t float64) float64 { return t * t * t * t }
func EaseOutQuart(t float64) float64 {
	t--
	return -(t*t*t*t - 1)
}
func EaseInOutQuart(t float64) float64 {
	t *= 2
	if t < 1 {
		return 0.5 * t * t * t * t
	}
	t -= 2
	return -0.5 * (t*t*t*t - 2)
}

func EaseInSine(t float64) float64    { return 1 - math.Cos(t*math.Pi/2) }
func EaseOutSine(t float64) float64   { return math.Sin(t * math.Pi / 2) }
func EaseInOutSine(t float64) float64 { return -0.5 * (math.Cos(math.Pi*t) - 1) }

func EaseInExpo(t float64) float64 {
	if t == 0 {
		return 0
	}
	return math.Pow(2, 10*(t-1))
}

func EaseOutExpo(t float64) float64 {
	if t == 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

func EaseInOutExpo(t float64) float64 {
	switch {
	case t == 0:
		return 0
	case t == 1:
		return 1
	}
	t *= 2
	if t < 1 {
		return 0.5 * math.Pow(2, 10*(t-1))
	}
	return 0.5 * (2 - math.Pow(2, -10*(t-1)))
}

func EaseInCirc(t float64) float64 { return 1 - math.Sqrt(1-t*t) }
func EaseOutCirc(t float64) float64 {
	t--
	return math.Sqrt(1 - t*t)
}

const backOvershoot = 1.70158

func EaseInBack(t float64) float64 {
	return t * t * ((backOvershoot+1)*t - backOvershoot)
}

func EaseOutBack(t float64) float64 {
	t--
	return t*t*((backOvershoot+1)*t+backOvershoot) + 1
}

func EaseOutBounce(t float64) float64 {
	const s = 7.5625
	switch {
	case t < 1/2.75:
		return s * t * t
	case t < 2/2.75:
		t -= 1.5 / 2.75
		return s*t*t + 0.75
	case t < 2.5/2.75:
		t -= 2.25 / 2.75
		return s*t*t + 0.9375
	}
	t -= 2.625 / 2.75
	return s*t*t + 0.984375
}

func EaseInBounce(t float64) float64 { return 1 - EaseOutBounce(1-t) }

func EaseInOutBounce(t float64) float64 {
	if t < 0.5 {
		return EaseInBounce(t*2) * 0.5
	}
	return EaseOutBounce(t*2-1)*0.5 + 0.5
}

var easings = map[string]Easing{
	"linear":          Linear,
	"easeinquad":      EaseInQuad,
	"easeoutquad":     EaseOutQuad,
	"easeinoutquad":   EaseInOutQuad,
	"easeincubic":     EaseInCubic,
	"easeoutcubic":    EaseOutCubic,
	"easeinoutcubic":  EaseInOutCubic,
	"easeinquart":     EaseInQuart,
	"easeoutquart":    EaseOutQuart,
	"easeinoutquart":  EaseInOutQuart,
	"easeinsine":      EaseInSine,
	"easeoutsine":     EaseOutSine,
	"easeinoutsine":   EaseInOutSine,
	"easeinexpo":      EaseInExpo,
	"easeoutexpo":     EaseOutExpo,
	"easeinoutexpo":   EaseInOutExpo,
	"easeincirc":      EaseInCirc,
	"easeoutcirc":     EaseOutCirc,
	"easeinback":      EaseInBack,
	"easeoutback":     EaseOutBack,
	"easeinbounce":    EaseInBounce,
	"easeoutbounce":   EaseOutBounce,
	"easeinoutbounce": EaseInOutBounce,
}

// EasingByName resolves an easing such as "easeOutCubic", ignoring case. An
// empty name resolves to Linear.
func EasingByName(name string) (Easing, bool) {
	if name == "" {
		return Linear, true
	}
	e, ok := easings[strings.ToLower(name)]
	return e, ok
}
