// Package audio plays the game's sound cues through the system speaker.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/pizza-time/internal/games/pizza"
)

// Player implements pizza.Audio on top of the speaker.
// Until Init succeeds every cue is dropped.
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	rate   beep.SampleRate
	logger *log.Logger
	ready  bool
	failed bool
}

// New creates a player. A nil logger uses the default logger.
func New(logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		mixer:  &beep.Mixer{},
		rate:   SampleRate,
		logger: logger.WithPrefix("audio"),
	}
}

// Init opens the speaker. Calling it again is a no-op; a failed Init
// leaves the player silent for good.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready || p.failed {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(50*time.Millisecond)); err != nil {
		p.failed = true
		p.logger.Warn("speaker unavailable, running silent", "err", err)
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.ready = true
	p.logger.Debug("speaker ready", "rate", int(p.rate))
	return nil
}

// Ready reports whether cues reach the speaker.
func (p *Player) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready
}

// Play implements pizza.Audio. It queues the cue and returns at once.
func (p *Player) Play(c pizza.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	s := NewCue(c, p.rate)
	if s == nil {
		p.logger.Debug("unknown cue", "cue", c)
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close stops everything that is playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	speaker.Clear()
	p.ready = false
}

// Silent drops every cue.
type Silent struct{}

// Play implements pizza.Audio.
func (Silent) Play(pizza.Cue) {}

var (
	_ pizza.Audio = (*Player)(nil)
	_ pizza.Audio = Silent{}
)
