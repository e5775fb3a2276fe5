package turn

import "time"

// Displayer is the single in-flight phase animation.
type Displayer struct {
	phase    Phase
	duration time.Duration
	elapsed  time.Duration
}

// NewDisplayer returns a Displayer for phase lasting duration.
func NewDisplayer(phase Phase, duration time.Duration) *Displayer {
	return &Displayer{phase: phase, duration: duration}
}

// Phase returns the phase being animated.
func (d *Displayer) Phase() Phase { return d.phase }

// Advance adds dt to the elapsed time. Negative values are ignored.
func (d *Displayer) Advance(dt time.Duration) {
	if dt > 0 {
		d.elapsed += dt
	}
}

// Done reports whether the animation has run its full duration.
func (d *Displayer) Done() bool { return d.elapsed >= d.duration }

// Progress returns elapsed/duration clamped to [0, 1], for interpolating sprites.
func (d *Displayer) Progress() float64 {
	if d.duration <= 0 || d.elapsed >= d.duration {
		return 1
	}
	return float64(d.elapsed) / float64(d.duration)
}
