package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/pizza-time/internal/games/pizza"
)

// SampleRate is the rate every cue is synthesized at.
const SampleRate = beep.SampleRate(44100)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator streams a fixed-length periodic wave.
type oscillator struct {
	freq  float64
	phase float64
	left  int
	wave  Wave
	rate  beep.SampleRate
	seed  uint32
}

// NewOscillator creates a streamer that plays freq for d, then ends.
func NewOscillator(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq: freq,
		left: rate.N(d),
		wave: wave,
		rate: rate,
		seed: 0x2545f491,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.left <= 0 {
			return i, i > 0
		}
		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		case WaveNoise:
			o.seed = o.seed*1664525 + 1013904223
			v = float64(o.seed)/float64(math.MaxUint32)*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.left--
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack and out over its last release.
type envelope struct {
	s       beep.Streamer
	pos     int
	total   int
	attack  int
	release int
}

// NewEnvelope shapes s, which is expected to last d.
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		s:       s,
		total:   rate.N(d),
		attack:  rate.N(attack),
		release: rate.N(release),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.s.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; e.release > 0 && left < e.release {
			vol = math.Max(float64(left)/float64(e.release), 0)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// newVolume scales s linearly; zero or less is silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

type note struct {
	freq float64
	d    time.Duration
}

// tone is one enveloped oscillator note.
func tone(n note, wave Wave, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(n.freq, n.d, wave, rate)
	return NewEnvelope(osc, n.d, 5*time.Millisecond, n.d/2, rate)
}

func melody(wave Wave, rate beep.SampleRate, notes ...note) beep.Streamer {
	parts := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		parts[i] = tone(n, wave, rate)
	}
	return beep.Seq(parts...)
}

// CueVolume is the playback volume of a cue. The noisy cues that fire
// often sit at a quarter.
func CueVolume(c pizza.Cue) float64 {
	switch c {
	case pizza.CueExplosion, pizza.CueEnemyBlaster:
		return 0.25
	default:
		return 0.6
	}
}

// CueDuration is how long a cue plays.
func CueDuration(c pizza.Cue) time.Duration {
	switch c {
	case pizza.CueExplosion:
		return 400 * time.Millisecond
	case pizza.CueBlaster:
		return 90 * time.Millisecond
	case pizza.CueEnemyBlaster:
		return 120 * time.Millisecond
	case pizza.CuePowerUp:
		return 160 * time.Millisecond
	case pizza.CueGameOver:
		return 540 * time.Millisecond
	case pizza.CueGameStart:
		return 300 * time.Millisecond
	default:
		return 0
	}
}

// NewCue synthesizes the streamer for a cue, or nil for an unknown cue.
func NewCue(c pizza.Cue, rate beep.SampleRate) beep.Streamer {
	var s beep.Streamer
	switch c {
	case pizza.CueExplosion:
		d := CueDuration(c)
		osc := NewOscillator(0, d, WaveNoise, rate)
		s = NewEnvelope(osc, d, 2*time.Millisecond, 350*time.Millisecond, rate)
	case pizza.CueBlaster:
		s = tone(note{880, CueDuration(c)}, WaveSaw, rate)
	case pizza.CueEnemyBlaster:
		s = tone(note{330, CueDuration(c)}, WaveSquare, rate)
	case pizza.CuePowerUp:
		s = melody(WaveSine, rate, note{660, 80 * time.Millisecond}, note{990, 80 * time.Millisecond})
	case pizza.CueGameOver:
		s = melody(WaveSaw, rate,
			note{440, 180 * time.Millisecond},
			note{330, 180 * time.Millisecond},
			note{220, 180 * time.Millisecond})
	case pizza.CueGameStart:
		s = melody(WaveSine, rate,
			note{523.25, 100 * time.Millisecond},
			note{659.25, 100 * time.Millisecond},
			note{783.99, 100 * time.Millisecond})
	default:
		return nil
	}
	return newVolume(s, CueVolume(c))
}
