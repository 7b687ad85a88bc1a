package audio

import (
	"sync"
	"testing"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/wezzle/internal/config"
	"github.com/vovakirdan/wezzle/internal/engine"
)

type recordingOutput struct {
	mu     sync.Mutex
	played []beep.Streamer
	gate   chan struct{}
}

func (o *recordingOutput) Play(s beep.Streamer) {
	if o.gate != nil {
		<-o.gate
	}
	o.mu.Lock()
	o.played = append(o.played, s)
	o.mu.Unlock()
}

func (o *recordingOutput) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.played)
}

func testSoundConfig(workers, queue int) config.SoundConfig {
	return config.SoundConfig{Enabled: true, SampleRate: 8000, Volume: 0.5, Workers: workers, Queue: queue}
}

func TestStreamerEverySound(t *testing.T) {
	rate := beep.SampleRate(8000)
	buf := make([][2]float64, 256)
	for s := SoundClick; s < numSounds; s++ {
		t.Run(s.String(), func(t *testing.T) {
			st := Streamer(s, rate, 1)
			if st == nil {
				t.Fatal("no streamer")
			}
			total := 0
			for i := 0; i < 1000; i++ {
				n, ok := st.Stream(buf)
				for _, smp := range buf[:n] {
					if smp[0] < -2 || smp[0] > 2 {
						t.Fatalf("sample %v out of range", smp[0])
					}
				}
				total += n
				if !ok {
					break
				}
			}
			if total == 0 {
				t.Error("streamer produced no samples")
			}
			if total > rate.N(2e9) {
				t.Errorf("streamer ran for %d samples", total)
			}
		})
	}
}

func TestStreamerUnknownSound(t *testing.T) {
	if Streamer(numSounds, beep.SampleRate(8000), 1) != nil {
		t.Error("unknown sound produced a streamer")
	}
}

func TestForEvent(t *testing.T) {
	tests := []struct {
		kind engine.EventKind
		want Sound
	}{
		{engine.EventClick, SoundClick},
		{engine.EventLine, SoundLine},
		{engine.EventRocket, SoundRocket},
		{engine.EventStar, SoundStar},
		{engine.EventBomb, SoundBomb},
		{engine.EventGravity, SoundGravity},
		{engine.EventDrop, SoundDrop},
		{engine.EventLevelUp, SoundLevelUp},
		{engine.EventGameOver, SoundGameOver},
	}
	for _, tt := range tests {
		got, ok := ForEvent(tt.kind)
		if !ok || got != tt.want {
			t.Errorf("ForEvent(%s) = %s, %v; want %s", tt.kind, got, ok, tt.want)
		}
		if got.String() != tt.kind.String() {
			t.Errorf("sound %s and event %s are named differently", got, tt.kind)
		}
	}
}

func TestDispatcherPlaysQueuedSounds(t *testing.T) {
	out := &recordingOutput{}
	d := NewDispatcher(out, testSoundConfig(2, 16), nil)

	d.Notify(engine.Event{Kind: engine.EventLine})
	d.Notify(engine.Event{Kind: engine.EventBomb})
	for i := 0; i < 3; i++ {
		if !d.Play(SoundClick) {
			t.Fatal("Play dropped a sound with room in the queue")
		}
	}
	d.Close()

	if got := out.count(); got != 5 {
		t.Errorf("played %d sounds, want 5", got)
	}
	if d.Play(SoundClick) {
		t.Error("Play after Close succeeded")
	}
	d.Close()
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	out := &recordingOutput{gate: make(chan struct{})}
	d := NewDispatcher(out, testSoundConfig(1, 1), nil)

	for i := 0; i < 100 && d.Dropped() == 0; i++ {
		d.Play(SoundDrop)
	}
	if d.Dropped() == 0 {
		t.Fatal("a blocked output never caused a drop")
	}

	close(out.gate)
	d.Close()
	if out.count() == 0 {
		t.Error("nothing was played")
	}
}
