package audio

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/wezzle/internal/config"
	"github.com/vovakirdan/wezzle/internal/engine"
)

// Output plays finished streamers.
type Output interface {
	Play(s beep.Streamer)
}

// speakerOutput mixes streamers into the system speaker.
type speakerOutput struct {
	mixer *beep.Mixer
}

func (o *speakerOutput) Play(s beep.Streamer) {
	speaker.Lock()
	o.mixer.Add(s)
	speaker.Unlock()
}

// Dispatcher synthesizes and plays sounds on a small worker pool so that the
// game loop never waits for audio.
type Dispatcher struct {
	out    Output
	rate   beep.SampleRate
	volume float64
	logger *log.Logger

	mu      sync.RWMutex
	closed  bool
	jobs    chan Sound
	wg      sync.WaitGroup
	dropped atomic.Int64
}

// Open initialises the speaker and returns a dispatcher playing into it.
func Open(cfg config.SoundConfig, logger *log.Logger) (*Dispatcher, error) {
	rate := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: cannot init speaker: %w", err)
	}
	mixer := &beep.Mixer{}
	speaker.Play(mixer)
	return NewDispatcher(&speakerOutput{mixer: mixer}, cfg, logger), nil
}

// NewDispatcher starts cfg.Workers workers feeding out.
func NewDispatcher(out Output, cfg config.SoundConfig, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	workers := max(cfg.Workers, 1)
	d := &Dispatcher{
		out:    out,
		rate:   beep.SampleRate(cfg.SampleRate),
		volume: cfg.Volume,
		logger: logger,
		jobs:   make(chan Sound, max(cfg.Queue, 1)),
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	logger.Debug("sound dispatcher started", "workers", workers, "rate", cfg.SampleRate)
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for s := range d.jobs {
		if st := Streamer(s, d.rate, d.volume); st != nil {
			d.out.Play(st)
		}
	}
}

// Play queues s. It never blocks: when the queue is full or the dispatcher
// is closed the sound is dropped and false is returned.
func (d *Dispatcher) Play(s Sound) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return false
	}
	select {
	case d.jobs <- s:
		return true
	default:
		d.dropped.Add(1)
		return false
	}
}

// Notify plays the sound of a game event.
func (d *Dispatcher) Notify(e engine.Event) {
	if s, ok := ForEvent(e.Kind); ok {
		d.Play(s)
	}
}

// Dropped is the number of sounds lost to a full queue.
func (d *Dispatcher) Dropped() int64 { return d.dropped.Load() }

// Close stops accepting sounds and waits for queued ones to be handed to
// the output.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	d.wg.Wait()
	if n := d.Dropped(); n > 0 {
		d.logger.Debug("sounds dropped", "count", n)
	}
}
