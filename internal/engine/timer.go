package engine

// Timer counts down the time left for the current move.
type Timer struct {
	total     int
	remaining int
	paused    bool
}

// NewTimer creates a timer with ms milliseconds on the clock.
func NewTimer(ms int) *Timer {
	return &Timer{total: ms, remaining: ms}
}

// Reset puts ms milliseconds back on the clock and unpauses it.
func (t *Timer) Reset(ms int) {
	t.total = ms
	t.remaining = ms
	t.paused = false
}

// Tick advances the timer and reports whether it ran out during this tick.
// An expired timer stays at zero until Reset.
func (t *Timer) Tick(deltaMs int) bool {
	if t.paused || t.remaining <= 0 {
		return false
	}
	t.remaining -= deltaMs
	if t.remaining <= 0 {
		t.remaining = 0
		return true
	}
	return false
}

func (t *Timer) Remaining() int { return t.remaining }
func (t *Timer) Total() int     { return t.total }
func (t *Timer) Paused() bool   { return t.paused }

// SetPaused stops or resumes the countdown.
func (t *Timer) SetPaused(p bool) { t.paused = p }

// Seconds returns the remaining time rounded up to whole seconds.
func (t *Timer) Seconds() int {
	return (t.remaining + 999) / 1000
}
