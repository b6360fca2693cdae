package animation

import (
	"time"

	"git.sr.ht/~whereswaldon/chartkit/chart"
)

type tween struct {
	start    time.Time
	duration time.Duration
	easing   Easing
	active   bool
}

// progress returns the eased phase at now and whether the tween is done.
func (t *tween) progress(now time.Time) (float64, bool) {
	elapsed := now.Sub(t.start)
	if elapsed >= t.duration {
		return 1, true
	}
	p := max(float64(elapsed)/float64(t.duration), 0)
	return t.easing(p), false
}

// Animator tweens the x and y phases from 0 to 1 over wall time. Both phases
// start at 1, meaning fully revealed. It is not safe for concurrent use; all
// calls and clock callbacks are expected on the render goroutine.
type Animator struct {
	// OnUpdate is called once per frame in which a phase changed.
	OnUpdate func()

	clock          Clock
	phaseX, phaseY float64
	x, y           tween
	// generation invalidates frame callbacks of stopped animations.
	generation int
	scheduled  bool
}

// NewAnimator returns an animator driven by clock.
func NewAnimator(clock Clock, onUpdate func()) *Animator {
	return &Animator{
		OnUpdate: onUpdate,
		clock:    clock,
		phaseX:   1,
		phaseY:   1,
	}
}

func (a *Animator) PhaseX() float64 { return a.phaseX }
func (a *Animator) PhaseY() float64 { return a.phaseY }

// SetPhaseX sets the x phase, clamped to [0, 1], and notifies OnUpdate.
func (a *Animator) SetPhaseX(p float64) {
	a.phaseX = min(max(p, 0), 1)
	a.notify()
}

// SetPhaseY sets the y phase, clamped to [0, 1], and notifies OnUpdate.
func (a *Animator) SetPhaseY(p float64) {
	a.phaseY = min(max(p, 0), 1)
	a.notify()
}

// Running reports whether a tween is in progress.
func (a *Animator) Running() bool { return a.x.active || a.y.active }

// AnimateX reveals the chart along x over d.
func (a *Animator) AnimateX(d time.Duration, easing Easing) {
	a.start(&a.x, &a.phaseX, d, easing)
	a.kick()
}

// AnimateY reveals the chart along y over d.
func (a *Animator) AnimateY(d time.Duration, easing Easing) {
	a.start(&a.y, &a.phaseY, d, easing)
	a.kick()
}

// AnimateXY runs both reveals at once, each with its own duration and
// easing.
func (a *Animator) AnimateXY(dx, dy time.Duration, easingX, easingY Easing) {
	a.start(&a.x, &a.phaseX, dx, easingX)
	a.start(&a.y, &a.phaseY, dy, easingY)
	a.kick()
}

func (a *Animator) start(t *tween, phase *float64, d time.Duration, easing Easing) {
	if easing == nil {
		easing = Linear
	}
	if d <= 0 {
		*t = tween{}
		*phase = 1
		return
	}
	*t = tween{
		start:    a.clock.Now(),
		duration: d,
		easing:   easing,
		active:   true,
	}
	*phase = 0
}

// kick notifies the new phases and schedules the first frame.
func (a *Animator) kick() {
	a.notify()
	if !a.Running() || a.scheduled {
		return
	}
	a.schedule()
}

func (a *Animator) schedule() {
	gen := a.generation
	a.scheduled = true
	a.clock.Schedule(func() { a.frame(gen) })
}

func (a *Animator) frame(gen int) {
	if gen != a.generation {
		return
	}
	a.scheduled = false
	now := a.clock.Now()
	for _, s := range []struct {
		t     *tween
		phase *float64
	}{{&a.x, &a.phaseX}, {&a.y, &a.phaseY}} {
		if !s.t.active {
			continue
		}
		p, done := s.t.progress(now)
		*s.phase = min(max(p, 0), 1)
		if done {
			s.t.active = false
		}
	}
	a.notify()
	if a.Running() {
		a.schedule()
	} else {
		chart.Logger().Debug("animation finished")
	}
}

// Stop cancels running tweens, leaving the phases at their last value.
func (a *Animator) Stop() {
	a.x.active = false
	a.y.active = false
	a.generation++
	a.scheduled = false
}

func (a *Animator) notify() {
	if a.OnUpdate != nil {
		a.OnUpdate()
	}
}
