// Package anim is a tick-driven animation scheduler. Callers describe an
// animation declaratively (move, fade, zoom, wait), get a Handle back and
// poll IsFinished; nothing here ever blocks. The manager is advanced by the
// game loop with the simulated milliseconds of each tick.
package anim

import "math"

// Handle identifies a scheduled animation. The zero Handle is never issued.
type Handle uint64

// Entity is anything with a pixel position.
type Entity interface {
	Position() (x, y int)
	SetPosition(x, y int)
}

// Fader is anything with an opacity percentage.
type Fader interface {
	SetOpacity(o int)
}

// Scaler is anything that can be zoomed.
type Scaler interface {
	SetScale(s float64)
}

// Descriptor is a declarative animation request. The set of descriptors is
// closed: Move, Fade, Zoom and Wait.
type Descriptor interface {
	runner() runner
	target() any
}

// runner advances one animation. step returns true once finished.
type runner interface {
	step(deltaMs int) bool
}

// Bounds limits a move. A move finishes once the entity reaches the bound
// on every axis it travels along.
type Bounds struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Move translates an entity along the angle Theta (degrees, counter-clockwise
// from the positive x axis; screen y grows downward). Speed is in px/s and
// Gravity in px/s², applied along the direction of travel.
type Move struct {
	Entity  Entity
	Theta   float64
	Speed   float64
	Gravity float64
	Bounds  Bounds
	Wait    int // ms before the move starts
}

// Fade interpolates an opacity from From to To over Duration ms.
type Fade struct {
	Fader    Fader
	From, To int
	Duration int
	Wait     int
}

// Zoom interpolates a scale from From to To over Duration ms.
type Zoom struct {
	Scaler   Scaler
	From, To float64
	Duration int
	Wait     int
}

// Wait finishes after Duration ms and touches nothing.
type Wait struct {
	Duration int
}

func (m Move) target() any { return m.Entity }
func (f Fade) target() any { return f.Fader }
func (z Zoom) target() any { return z.Scaler }
func (w Wait) target() any { return nil }

func (m Move) runner() runner {
	x, y := m.Entity.Position()
	rad := m.Theta * math.Pi / 180
	return &moveRunner{
		Move:  m,
		wait:  m.Wait,
		initX: x,
		initY: y,
		cos:   snap(math.Cos(rad)),
		sin:   snap(math.Sin(rad)),
	}
}

func (f Fade) runner() runner {
	return &fadeRunner{Fade: f, wait: f.Wait}
}

func (z Zoom) runner() runner {
	return &zoomRunner{Zoom: z, wait: z.Wait}
}

func (w Wait) runner() runner {
	return &waitRunner{left: w.Duration}
}

// snap rounds away the float noise of cos(90°) and friends.
func snap(v float64) float64 {
	if math.Abs(v) < 1e-9 {
		return 0
	}
	return v
}

type moveRunner struct {
	Move
	wait         int
	elapsed      int
	initX, initY int
	cos, sin     float64
}

func (r *moveRunner) step(deltaMs int) bool {
	if r.wait > 0 {
		r.wait -= deltaMs
		if r.wait >= 0 {
			return false
		}
		deltaMs = -r.wait
		r.wait = 0
	}
	if r.cos == 0 && r.sin == 0 {
		return true
	}
	if r.Speed <= 0 && r.Gravity <= 0 {
		return r.bounded(r.Entity.Position())
	}

	r.elapsed += deltaMs
	t := float64(r.elapsed) / 1000
	d := r.Speed*t + 0.5*r.Gravity*t*t

	x := r.initX + int(math.Round(d*r.cos))
	y := r.initY - int(math.Round(d*r.sin))
	x = clamp(x, r.Bounds.MinX, r.Bounds.MaxX)
	y = clamp(y, r.Bounds.MinY, r.Bounds.MaxY)
	r.Entity.SetPosition(x, y)

	return r.bounded(x, y)
}

// bounded reports whether (x, y) sits on the bound of every travelled axis.
func (r *moveRunner) bounded(x, y int) bool {
	done := true
	switch {
	case r.cos > 0:
		done = done && x >= r.Bounds.MaxX
	case r.cos < 0:
		done = done && x <= r.Bounds.MinX
	}
	switch {
	case r.sin > 0:
		done = done && y <= r.Bounds.MinY
	case r.sin < 0:
		done = done && y >= r.Bounds.MaxY
	}
	return done
}

type fadeRunner struct {
	Fade
	wait    int
	elapsed int
}

func (r *fadeRunner) step(deltaMs int) bool {
	if r.wait > 0 {
		r.wait -= deltaMs
		if r.wait >= 0 {
			return false
		}
		deltaMs = -r.wait
		r.wait = 0
	}
	r.elapsed += deltaMs
	p := progress(r.elapsed, r.Duration)
	r.Fader.SetOpacity(r.From + int(math.Round(float64(r.To-r.From)*p)))
	return p >= 1
}

type zoomRunner struct {
	Zoom
	wait    int
	elapsed int
}

func (r *zoomRunner) step(deltaMs int) bool {
	if r.wait > 0 {
		r.wait -= deltaMs
		if r.wait >= 0 {
			return false
		}
		deltaMs = -r.wait
		r.wait = 0
	}
	r.elapsed += deltaMs
	p := progress(r.elapsed, r.Duration)
	r.Scaler.SetScale(r.From + (r.To-r.From)*easeOutQuad(p))
	return p >= 1
}

type waitRunner struct {
	left int
}

func (r *waitRunner) step(deltaMs int) bool {
	r.left -= deltaMs
	return r.left <= 0
}

func progress(elapsed, duration int) float64 {
	if duration <= 0 {
		return 1
	}
	p := float64(elapsed) / float64(duration)
	if p > 1 {
		p = 1
	}
	return p
}

// easeOutQuad provides smooth deceleration for zooms.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
