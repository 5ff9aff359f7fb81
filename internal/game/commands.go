package game

import "github.com/relabs-tech/starrun/internal/gesture"

// LEDColor is an RGB color for the status pixel.
type LEDColor struct {
	R, G, B uint8
}

// LED color presets.
var (
	LEDOff    = LEDColor{}
	LEDFlying = LEDColor{B: 20}
	LEDWarn   = LEDColor{R: 20, G: 10}
	LEDGood   = LEDColor{G: 25}
	LEDBad    = LEDColor{R: 25}
	LEDWin    = LEDColor{R: 10, B: 20}
)

// MoveColor is the LED color shown while a gesture is the level target.
func MoveColor(g gesture.Gesture) LEDColor {
	switch g {
	case gesture.BankLeft, gesture.BankRight:
		return LEDColor{B: 25}
	case gesture.NoseUp:
		return LEDColor{G: 25}
	case gesture.NoseDown:
		return LEDColor{R: 25, G: 25}
	default:
		return LEDOff
	}
}

// Sound identifies one buzzer cue. The sink owns frequencies and durations.
type Sound int

const (
	SoundMenuTick Sound = iota // cursor moved in the difficulty menu
	SoundRotate                // rotation acknowledged on an end screen
	SoundSuccess               // correct gesture
	SoundFail                  // wrong gesture or timeout
	SoundWin                   // celebratory jingle
)

// Sink consumes feedback commands from the state machine. Commands are
// issued on state entry and content change, never redundantly per tick.
type Sink interface {
	// ShowText replaces the display with up to four centered lines.
	ShowText(l1, l2, l3, l4 string)
	SetLED(c LEDColor)
	// PlayTone must not block the tick loop.
	PlayTone(s Sound)
}
