package engine

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wezzle/internal/anim"
	"github.com/vovakirdan/wezzle/internal/board"
	"github.com/vovakirdan/wezzle/internal/config"
)

// Animator schedules animations and reports when they are done.
type Animator interface {
	Schedule(d anim.Descriptor) anim.Handle
	IsFinished(h anim.Handle) bool
}

// RefactorPhase is the state of a Refactorer.
type RefactorPhase int

const (
	PhaseIdle RefactorPhase = iota
	PhaseVertical
	PhaseHorizontal
)

func (p RefactorPhase) String() string {
	switch p {
	case PhaseVertical:
		return "vertical"
	case PhaseHorizontal:
		return "horizontal"
	default:
		return "idle"
	}
}

// SpeedLookup reads refactor speed presets.
type SpeedLookup interface {
	Float(key string) float64
}

// Refactorer settles the board after tiles were removed or added: a
// vertical shift towards the vertical gravity wall, then a horizontal one.
// It polls the handles of each shift and synchronises the board when they
// have all finished.
type Refactorer struct {
	board  *board.Board
	anims  Animator
	speeds SpeedLookup
	logger *log.Logger

	speed    config.RefactorSpeed
	current  config.RefactorSpeed
	once     config.RefactorSpeed
	activate bool
	phase    RefactorPhase
	finished bool
	handles  []anim.Handle
}

// NewRefactorer creates an idle refactorer running at speed.
func NewRefactorer(b *board.Board, anims Animator, speeds SpeedLookup, speed config.RefactorSpeed, logger *log.Logger) *Refactorer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Refactorer{
		board:  b,
		anims:  anims,
		speeds: speeds,
		logger: logger,
		speed:  speed,
	}
}

// Reset stops any refactor in progress and sets the default speed.
func (r *Refactorer) Reset(speed config.RefactorSpeed) {
	r.speed = speed
	r.once = ""
	r.activate = false
	r.phase = PhaseIdle
	r.finished = false
	r.handles = nil
}

func (r *Refactorer) SetSpeed(s config.RefactorSpeed) {
	r.logger.Debug("refactor speed set", "speed", s)
	r.speed = s
}

func (r *Refactorer) Speed() config.RefactorSpeed { return r.speed }
func (r *Refactorer) Phase() RefactorPhase        { return r.phase }

// Start requests a refactor on the next Update.
func (r *Refactorer) Start() { r.activate = true }

// StartAt requests a refactor that runs at speed s instead of the default.
func (r *Refactorer) StartAt(s config.RefactorSpeed) {
	r.once = s
	r.activate = true
}

// Clear withdraws a requested refactor that has not started yet.
func (r *Refactorer) Clear() { r.activate = false }

// Refactoring reports whether a refactor is requested or running.
func (r *Refactorer) Refactoring() bool {
	return r.activate || r.phase != PhaseIdle
}

// Finished reports whether the last Update completed a refactor.
func (r *Refactorer) Finished() bool { return r.finished }

// Update advances the state machine. Both phases may complete in a single
// call when nothing has to move.
func (r *Refactorer) Update() error {
	r.finished = false

	if r.activate {
		r.activate = false
		r.current = r.speed
		if r.once != "" {
			r.current, r.once = r.once, ""
		}
		v := r.speeds.Float(config.RefactorKey(r.current, "vertical"))
		g := r.speeds.Float(config.RefactorKey(r.current, "gravity"))
		hs, err := r.board.StartVerticalShift(v, g)
		if err != nil {
			return fmt.Errorf("engine: refactor: %w", err)
		}
		r.handles = hs
		r.phase = PhaseVertical
	}

	if r.phase == PhaseVertical && r.done() {
		r.board.Synchronize()
		h := r.speeds.Float(config.RefactorKey(r.current, "horizontal"))
		hs, err := r.board.StartHorizontalShift(h)
		if err != nil {
			r.phase = PhaseIdle
			return fmt.Errorf("engine: refactor: %w", err)
		}
		r.handles = hs
		r.phase = PhaseHorizontal
	}

	if r.phase == PhaseHorizontal && r.done() {
		r.board.Synchronize()
		r.handles = nil
		r.phase = PhaseIdle
		r.finished = true
		r.logger.Debug("refactor finished", "speed", r.current)
	}
	return nil
}

func (r *Refactorer) done() bool {
	for _, h := range r.handles {
		if !r.anims.IsFinished(h) {
			return false
		}
	}
	return true
}
