// Package audio plays short synthesized effects for game events.
package audio

import "github.com/vovakirdan/wezzle/internal/engine"

// Sound is one of the game's sound effects.
type Sound int

const (
	SoundClick Sound = iota
	SoundLine
	SoundRocket
	SoundStar
	SoundBomb
	SoundGravity
	SoundDrop
	SoundLevelUp
	SoundGameOver

	numSounds
)

var soundNames = [numSounds]string{
	SoundClick:    "click",
	SoundLine:     "line",
	SoundRocket:   "rocket",
	SoundStar:     "star",
	SoundBomb:     "bomb",
	SoundGravity:  "gravity",
	SoundDrop:     "drop",
	SoundLevelUp:  "level_up",
	SoundGameOver: "game_over",
}

func (s Sound) String() string {
	if s >= 0 && s < numSounds {
		return soundNames[s]
	}
	return "unknown"
}

// ForEvent returns the sound played for an engine event.
func ForEvent(k engine.EventKind) (Sound, bool) {
	switch k {
	case engine.EventClick:
		return SoundClick, true
	case engine.EventLine:
		return SoundLine, true
	case engine.EventRocket:
		return SoundRocket, true
	case engine.EventStar:
		return SoundStar, true
	case engine.EventBomb:
		return SoundBomb, true
	case engine.EventGravity:
		return SoundGravity, true
	case engine.EventDrop:
		return SoundDrop, true
	case engine.EventLevelUp:
		return SoundLevelUp, true
	case engine.EventGameOver:
		return SoundGameOver, true
	}
	return 0, false
}
