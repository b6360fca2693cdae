package animation

import "time"

// Job runs a single tween, handing its eased progress to a step func on
// every frame. Jobs drive one-off effects such as gliding the viewport.
type Job struct {
	clock Clock
	t     tween
	step  func(p float64)
}

// Run starts a job on clock. A non-positive d calls step(1) at once.
func Run(clock Clock, d time.Duration, easing Easing, step func(p float64)) *Job {
	if easing == nil {
		easing = Linear
	}
	j := &Job{clock: clock, step: step}
	if d <= 0 {
		step(1)
		return j
	}
	j.t = tween{start: clock.Now(), duration: d, easing: easing, active: true}
	clock.Schedule(j.frame)
	return j
}

func (j *Job) frame() {
	if !j.t.active {
		return
	}
	p, done := j.t.progress(j.clock.Now())
	if done {
		j.t.active = false
	}
	j.step(p)
	if j.t.active {
		j.clock.Schedule(j.frame)
	}
}

// Cancel stops the job before its next frame.
func (j *Job) Cancel() { j.t.active = false }

func (j *Job) Running() bool { return j.t.active }
