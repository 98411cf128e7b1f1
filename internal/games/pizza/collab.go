package pizza

import "github.com/vovakirdan/pizza-time/internal/core"

// Cue names a sound the game asks for.
type Cue string

const (
	CueExplosion    Cue = "explosion"
	CueBlaster      Cue = "blaster"
	CueEnemyBlaster Cue = "enemy_blaster"
	CuePowerUp      Cue = "power_up"
	CueGameOver     Cue = "game_over"
	CueGameStart    Cue = "game_start"
)

// Cues lists every cue, for collaborators that prepare them up front.
var Cues = []Cue{CueExplosion, CueBlaster, CueEnemyBlaster, CuePowerUp, CueGameOver, CueGameStart}

// Audio plays cues. Play must return immediately.
type Audio interface {
	Play(cue Cue)
}

// Overlay shows score, lives and the title and game-over screens.
type Overlay interface {
	UpdateScore(score, highScore int)
	UpdateLives(life int)
	ShowTitle()
	ShowGameOver()
	HideGameOver()
}

// Renderer receives entity lifecycle and position updates.
type Renderer interface {
	Create(h Handle, kind Kind, box core.Box)
	Update(h Handle, box core.Box, visible bool)
	Destroy(h Handle)
}

// NopAudio discards every cue.
type NopAudio struct{}

func (NopAudio) Play(Cue) {}

// NopOverlay ignores every update.
type NopOverlay struct{}

func (NopOverlay) UpdateScore(int, int) {}
func (NopOverlay) UpdateLives(int)      {}
func (NopOverlay) ShowTitle()           {}
func (NopOverlay) ShowGameOver()        {}
func (NopOverlay) HideGameOver()        {}

// NopRenderer ignores every update.
type NopRenderer struct{}

func (NopRenderer) Create(Handle, Kind, core.Box) {}
func (NopRenderer) Update(Handle, core.Box, bool) {}
func (NopRenderer) Destroy(Handle)                {}
