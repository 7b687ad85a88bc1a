package anim

type job struct {
	handle Handle
	target any
	run    runner
}

// Manager owns every running animation. Animations advance in the order
// they were scheduled so a replay with the same inputs is identical.
type Manager struct {
	next Handle
	jobs []*job
	live map[Handle]*job
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{live: make(map[Handle]*job)}
}

// Schedule starts an animation and returns its handle.
func (m *Manager) Schedule(d Descriptor) Handle {
	m.next++
	j := &job{handle: m.next, target: d.target(), run: d.runner()}
	m.jobs = append(m.jobs, j)
	m.live[j.handle] = j
	return j.handle
}

// IsFinished reports whether the animation has completed or been cancelled.
// Unknown handles count as finished.
func (m *Manager) IsFinished(h Handle) bool {
	_, ok := m.live[h]
	return !ok
}

// AllFinished reports whether every handle in hs is finished.
func (m *Manager) AllFinished(hs []Handle) bool {
	for _, h := range hs {
		if !m.IsFinished(h) {
			return false
		}
	}
	return true
}

// Cancel stops an animation where it is.
func (m *Manager) Cancel(h Handle) {
	delete(m.live, h)
}

// CancelFor stops every animation driving target and returns how many were
// stopped.
func (m *Manager) CancelFor(target any) int {
	if target == nil {
		return 0
	}
	n := 0
	for _, j := range m.jobs {
		if j.target == target {
			if _, ok := m.live[j.handle]; ok {
				delete(m.live, j.handle)
				n++
			}
		}
	}
	return n
}

// Tick advances every animation by deltaMs milliseconds.
func (m *Manager) Tick(deltaMs int) {
	kept := m.jobs[:0]
	for _, j := range m.jobs {
		if _, ok := m.live[j.handle]; !ok {
			continue
		}
		if j.run.step(deltaMs) {
			delete(m.live, j.handle)
			continue
		}
		kept = append(kept, j)
	}
	for i := len(kept); i < len(m.jobs); i++ {
		m.jobs[i] = nil
	}
	m.jobs = kept
}

// Busy reports whether any animation is still running.
func (m *Manager) Busy() bool {
	return len(m.live) > 0
}

// Len returns the number of running animations.
func (m *Manager) Len() int {
	return len(m.live)
}

// Clear drops every animation.
func (m *Manager) Clear() {
	m.jobs = nil
	m.live = make(map[Handle]*job)
}
