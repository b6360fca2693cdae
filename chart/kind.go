package chart

import "strings"

// Kind identifies the chart family a data set belongs to.
type Kind uint8

const (
	KindLine Kind = iota
	KindBar
	KindScatter
	KindCandle
	KindBubble
	KindPie
	KindRadar
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindBar:
		return "bar"
	case KindScatter:
		return "scatter"
	case KindCandle:
		return "candle"
	case KindBubble:
		return "bubble"
	case KindPie:
		return "pie"
	case KindRadar:
		return "radar"
	default:
		return "unknown"
	}
}

// ParseKind resolves a kind by its name, ignoring case.
func ParseKind(name string) (Kind, bool) {
	for k := KindLine; k <= KindRadar; k++ {
		if strings.EqualFold(k.String(), name) {
			return k, true
		}
	}
	return 0, false
}

// combinable reports whether data of this kind may take part in combined
// data.
func (k Kind) combinable() bool {
	return k <= KindBubble
}

// AxisDependency selects the value axis a data set is plotted against.
type AxisDependency uint8

const (
	AxisLeft AxisDependency = iota
	AxisRight
)

func (a AxisDependency) String() string {
	if a == AxisRight {
		return "right"
	}
	return "left"
}

// Rounding selects how an x lookup resolves values that fall between
// entries.
type Rounding uint8

const (
	// RoundUp picks the first entry with x >= the query.
	RoundUp Rounding = iota
	// RoundDown picks the last entry with x <= the query.
	RoundDown
	// RoundClosest picks the entry nearest to the query.
	RoundClosest
)
