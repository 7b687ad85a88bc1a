package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

type wave int

const (
	waveSine wave = iota
	waveSquare
	waveSaw
	waveNoise
)

// tone is a fixed-length oscillator. sweep is added to the frequency per
// second of playback.
type tone struct {
	freq  float64
	sweep float64
	wave  wave
	rate  beep.SampleRate
	rng   *rand.Rand

	phase float64
	pos   int
	total int
}

func newTone(freq, sweep float64, w wave, d time.Duration, rate beep.SampleRate) *tone {
	return &tone{
		freq:  freq,
		sweep: sweep,
		wave:  w,
		rate:  rate,
		rng:   rand.New(rand.NewSource(int64(freq*1000) + int64(d))),
		total: rate.N(d),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		var v float64
		switch t.wave {
		case waveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case waveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case waveSaw:
			v = 2 * (t.phase - 0.5)
		case waveNoise:
			v = t.rng.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		f := t.freq + t.sweep*float64(t.pos)/float64(t.rate)
		t.phase += f / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// envelope fades a streamer in over attack and out over release.
type envelope struct {
	s       beep.Streamer
	attack  int
	release int
	total   int
	pos     int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{
		s:       s,
		attack:  rate.N(attack),
		release: rate.N(release),
		total:   rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.s.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; left < e.release {
			vol = math.Max(float64(left)/float64(e.release), 0)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// note is a shaped tone.
func note(freq, sweep float64, w wave, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return newEnvelope(newTone(freq, sweep, w, d, rate), d, 5*time.Millisecond, d/2, rate)
}

func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// Streamer synthesizes sound s at rate, scaled by vol in [0, 1].
func Streamer(s Sound, rate beep.SampleRate, vol float64) beep.Streamer {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }

	var out beep.Streamer
	switch s {
	case SoundClick:
		out = note(660, 0, waveSquare, ms(40), rate)
	case SoundLine:
		out = beep.Seq(
			note(523.25, 0, waveSine, ms(70), rate),
			note(659.25, 0, waveSine, ms(70), rate),
			note(783.99, 0, waveSine, ms(110), rate),
		)
	case SoundRocket:
		out = beep.Mix(
			note(200, 2400, waveSaw, ms(250), rate),
			volume(note(0, 0, waveNoise, ms(250), rate), 0.3),
		)
	case SoundStar:
		out = beep.Mix(
			note(1318.51, 0, waveSine, ms(300), rate),
			volume(note(1975.53, 0, waveSine, ms(300), rate), 0.4),
		)
	case SoundBomb:
		out = beep.Mix(
			note(0, 0, waveNoise, ms(400), rate),
			note(70, -40, waveSine, ms(400), rate),
		)
	case SoundGravity:
		out = note(400, -600, waveSine, ms(300), rate)
	case SoundDrop:
		out = note(300, -400, waveSine, ms(80), rate)
	case SoundLevelUp:
		out = beep.Seq(
			note(523.25, 0, waveSquare, ms(90), rate),
			note(659.25, 0, waveSquare, ms(90), rate),
			note(783.99, 0, waveSquare, ms(90), rate),
			note(1046.5, 0, waveSquare, ms(220), rate),
		)
	case SoundGameOver:
		out = beep.Seq(
			note(392, 0, waveSaw, ms(200), rate),
			note(311.13, 0, waveSaw, ms(200), rate),
			note(261.63, -60, waveSaw, ms(500), rate),
		)
	default:
		return nil
	}
	return volume(out, vol)
}
