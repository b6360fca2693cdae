package plot

import (
	"image/color"

	"git.sr.ht/~whereswaldon/chartkit/animation"
	"git.sr.ht/~whereswaldon/chartkit/chart"
)

// Option configures a Chart at construction.
type Option func(*Chart)

// WithClock drives animations from clock instead of the default frame
// clock.
func WithClock(clock animation.Clock) Option {
	return func(c *Chart) {
		c.clock = clock
	}
}

// WithInvalidate sets the func called whenever the chart needs a new frame.
func WithInvalidate(fn func()) Option {
	return func(c *Chart) {
		c.onInvalidate = fn
	}
}

func WithMaxVisibleCount(n int) Option {
	return func(c *Chart) {
		c.maxVisibleCount = n
	}
}

// WithMaxHighlightDistance limits how far from an entry, in pixels, a touch
// still selects it.
func WithMaxHighlightDistance(px float64) Option {
	return func(c *Chart) {
		c.maxDistance = px
	}
}

func WithMinOffset(px float64) Option {
	return func(c *Chart) {
		c.minOffset = px
	}
}

func WithExtraOffsets(left, top, right, bottom float64) Option {
	return func(c *Chart) {
		c.extraOffsets = Offsets{Left: left, Top: top, Right: right, Bottom: bottom}
	}
}

func WithAutoScale(enabled bool) Option {
	return func(c *Chart) {
		c.autoScale = enabled
	}
}

// WithDrawOrder sets the layering of combined data, bottom first.
func WithDrawOrder(kinds ...chart.Kind) Option {
	return func(c *Chart) {
		c.drawOrder = kinds
	}
}

func WithBackground(bg color.NRGBA) Option {
	return func(c *Chart) {
		c.Background = bg
	}
}
