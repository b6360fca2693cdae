package plot

import (
	"time"

	"git.sr.ht/~whereswaldon/chartkit/animation"
)

func (c *Chart) PhaseX() float64 { return c.animator.PhaseX() }
func (c *Chart) PhaseY() float64 { return c.animator.PhaseY() }

// SetPhase fixes both animation phases, for drawing a single frame of an
// animation.
func (c *Chart) SetPhase(x, y float64) {
	c.animator.Stop()
	c.animator.SetPhaseX(x)
	c.animator.SetPhaseY(y)
}

// AnimateX reveals the data from left to right over d.
func (c *Chart) AnimateX(d time.Duration, easing animation.Easing) {
	c.animator.AnimateX(d, easing)
}

// AnimateY grows the data from the bottom over d.
func (c *Chart) AnimateY(d time.Duration, easing animation.Easing) {
	c.animator.AnimateY(d, easing)
}

func (c *Chart) AnimateXY(dx, dy time.Duration, easingX, easingY animation.Easing) {
	c.animator.AnimateXY(dx, dy, easingX, easingY)
}

// StopAnimation stops running animations, leaving the phases where they
// are.
func (c *Chart) StopAnimation() { c.animator.Stop() }

// Animating reports whether an animation is running.
func (c *Chart) Animating() bool { return c.animator.Running() }

// Tick advances the default frame clock to now, running due animation
// frames. It does nothing when the chart was given its own clock.
func (c *Chart) Tick(now time.Time) {
	if c.frames != nil {
		c.frames.Tick(now)
	}
}
