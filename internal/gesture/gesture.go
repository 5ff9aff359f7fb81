package gesture

// Gesture is one discrete tilt move the player can make.
type Gesture int

const (
	None Gesture = iota
	BankLeft
	BankRight
	NoseUp
	NoseDown
)

// Moves lists the four scoring gestures, used when picking level targets.
var Moves = [...]Gesture{BankLeft, BankRight, NoseUp, NoseDown}

// String returns the player-facing label shown on the display.
func (g Gesture) String() string {
	switch g {
	case BankLeft:
		return "BANK LEFT"
	case BankRight:
		return "BANK RIGHT"
	case NoseUp:
		return "NOSE UP"
	case NoseDown:
		return "NOSE DOWN"
	default:
		return "NONE"
	}
}
