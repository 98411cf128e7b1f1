package tui

import (
	"time"

	"github.com/vovakirdan/pizza-time/internal/core"
)

// DefaultHoldWindow is how long a key counts as held after its last
// press. It has to bridge the terminal's auto-repeat gaps.
const DefaultHoldWindow = 180 * time.Millisecond

// KeyState turns key presses into per-tick input frames.
// Terminals report presses but no releases, so movement and fire stay
// held until hold window passes without a repeat. Every other action
// lasts exactly one frame.
type KeyState struct {
	window   time.Duration
	lastSeen map[core.Action]time.Duration
	pulses   []core.Action
	autoFire bool
}

// NewKeyState creates a key state. A non-positive window uses the default.
func NewKeyState(window time.Duration) *KeyState {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &KeyState{
		window:   window,
		lastSeen: make(map[core.Action]time.Duration),
	}
}

// opposite returns the direction cancelled by a.
func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionUp:
		return core.ActionDown
	case core.ActionDown:
		return core.ActionUp
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	default:
		return core.ActionNone
	}
}

func holdable(a core.Action) bool {
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight, core.ActionFire:
		return true
	default:
		return false
	}
}

// Press records a key press at now.
func (k *KeyState) Press(a core.Action, now time.Duration) {
	if a == core.ActionNone {
		return
	}
	if !holdable(a) {
		k.pulses = append(k.pulses, a)
		return
	}
	if o := opposite(a); o != core.ActionNone {
		delete(k.lastSeen, o)
	}
	k.lastSeen[a] = now
}

// ToggleAutoFire switches permanent fire on or off and reports the new state.
func (k *KeyState) ToggleAutoFire() bool {
	k.autoFire = !k.autoFire
	return k.autoFire
}

// AutoFire reports whether fire is held permanently.
func (k *KeyState) AutoFire() bool {
	return k.autoFire
}

// Frame returns the input for the tick at now and consumes one-shot actions.
func (k *KeyState) Frame(now time.Duration) core.InputFrame {
	f := core.NewInputFrame(k.pulses...)
	k.pulses = k.pulses[:0]

	for a, at := range k.lastSeen {
		if now-at < k.window {
			f.Set(a)
		} else {
			delete(k.lastSeen, a)
		}
	}
	if k.autoFire {
		f.Set(core.ActionFire)
	}
	return f
}

// Release forgets every held key.
func (k *KeyState) Release() {
	clear(k.lastSeen)
	k.pulses = k.pulses[:0]
}
