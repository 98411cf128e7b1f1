package pizza

import "time"

// Effect names a timed power-up effect.
type Effect int

const (
	EffectSalt   Effect = iota // Boosted fire rate
	EffectPepper               // Clone firing origins
)

// String returns the name of the effect.
func (e Effect) String() string {
	switch e {
	case EffectSalt:
		return "salt"
	case EffectPepper:
		return "pepper"
	default:
		return "unknown"
	}
}

// Effects tracks timed effects as deadlines on the session clock.
// Nothing here runs on its own: Expire is called once per tick.
type Effects struct {
	salt   bool
	pepper bool

	SaltUntil   time.Duration
	PepperUntil time.Duration
	FlashStart  time.Duration
	FlashUntil  time.Duration
}

// ApplySalt starts the Salt effect, or restarts its window when it is
// already active. Returns true if the effect was not active before.
func (e *Effects) ApplySalt(now, d time.Duration) bool {
	started := !e.salt
	e.salt = true
	e.SaltUntil = now + d
	return started
}

// ApplyPepper starts the Pepper effect. Collecting Pepper while it is
// active changes nothing, the window included. Returns true if it started.
func (e *Effects) ApplyPepper(now, d time.Duration) bool {
	if e.pepper {
		return false
	}
	e.pepper = true
	e.PepperUntil = now + d
	return true
}

// Flash makes the player blink for d.
func (e *Effects) Flash(now, d time.Duration) {
	e.FlashStart = now
	e.FlashUntil = now + d
}

// SaltActive reports whether the fire rate is boosted.
func (e *Effects) SaltActive() bool {
	return e.salt
}

// PepperActive reports whether the clones are out.
func (e *Effects) PepperActive() bool {
	return e.pepper
}

// Flashing reports whether the player is blinking at now.
func (e *Effects) Flashing(now time.Duration) bool {
	return now < e.FlashUntil
}

// Blink reports whether a flashing player is in the hidden half of a blink.
func (e *Effects) Blink(now time.Duration, period time.Duration) bool {
	if !e.Flashing(now) || period <= 0 {
		return false
	}
	return ((now-e.FlashStart)/period)%2 == 1
}

// Expire ends the effects whose deadline has passed and returns them.
func (e *Effects) Expire(now time.Duration) []Effect {
	var ended []Effect
	if e.salt && now >= e.SaltUntil {
		e.salt = false
		ended = append(ended, EffectSalt)
	}
	if e.pepper && now >= e.PepperUntil {
		e.pepper = false
		ended = append(ended, EffectPepper)
	}
	return ended
}

// Reset clears every effect.
func (e *Effects) Reset() {
	*e = Effects{}
}
