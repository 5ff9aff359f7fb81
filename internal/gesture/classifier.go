package gesture

import (
	"math"

	"github.com/relabs-tech/starrun/internal/filter"
)

// Thresholds are the angle bands in degrees that shape classification.
type Thresholds struct {
	// DeadAngle is the neutral band: both angles inside it means "level".
	DeadAngle float64
	// Roll and Pitch are the minimum tilt for a bank / nose candidate.
	Roll  float64
	Pitch float64
	// CrossLimit is the lockout margin: a candidate on one axis is only
	// valid while the other axis stays inside this limit, so a diagonal
	// tilt never produces a candidate.
	CrossLimit float64
}

// Scaled returns thresholds with the roll and pitch bands widened by the
// difficulty tightness factor. Hard play demands a more decisive tilt; the
// neutral band and the lockout margin do not move.
func (t Thresholds) Scaled(tightness float64) Thresholds {
	t.Roll *= tightness
	t.Pitch *= tightness
	return t
}

// State is the classifier's debounce state.
type State int

const (
	// StateIdle: no candidate in progress.
	StateIdle State = iota
	// StateHolding: a candidate band is breached and being counted.
	StateHolding
	// StateWaitNeutral: an event was confirmed and consumed; nothing more
	// is reported until the device returns to the neutral band.
	StateWaitNeutral
)

// Classifier turns a stream of attitudes into at most one confirmed gesture
// event per physical move. A candidate must hold for holdTicks consecutive
// ticks before it is confirmed, and after each confirmed event the device
// must return to neutral before the next one can start.
type Classifier struct {
	base      Thresholds
	effective Thresholds
	holdTicks int

	state     State
	candidate Gesture
	holdCount int
	atNeutral bool
}

// NewClassifier creates a classifier with tightness 1.0 applied.
func NewClassifier(base Thresholds, holdTicks int) *Classifier {
	return &Classifier{
		base:      base,
		effective: base,
		holdTicks: holdTicks,
	}
}

// SetTightness rescales the roll/pitch bands for the locked-in difficulty.
// Idempotent; called freely every tick.
func (c *Classifier) SetTightness(tightness float64) {
	c.effective = c.base.Scaled(tightness)
}

// Neutral reports whether the device is level and the classifier re-armed.
// The game machine gates level starts on this.
func (c *Classifier) Neutral() bool {
	return c.state == StateIdle && c.atNeutral
}

// State exposes the debounce state for telemetry.
func (c *Classifier) State() State {
	return c.state
}

// Update consumes one attitude and returns a confirmed gesture event at
// most once per physical move. Returning the event is its consumption:
// the classifier moves straight to StateWaitNeutral and stays there until
// both angles re-enter the neutral band.
func (c *Classifier) Update(att filter.Attitude) (Gesture, bool) {
	c.atNeutral = math.Abs(att.Roll) < c.effective.DeadAngle &&
		math.Abs(att.Pitch) < c.effective.DeadAngle

	if c.atNeutral {
		// Any in-progress candidate dissolves, and a consumed event
		// re-arms here.
		c.state = StateIdle
		c.candidate = None
		c.holdCount = 0
		return None, false
	}

	if c.state == StateWaitNeutral {
		return None, false
	}

	candidate := c.classify(att)
	if candidate == None {
		c.state = StateIdle
		c.candidate = None
		c.holdCount = 0
		return None, false
	}

	if c.state == StateHolding && candidate == c.candidate {
		c.holdCount++
	} else {
		c.state = StateHolding
		c.candidate = candidate
		c.holdCount = 1
	}

	if c.holdCount >= c.holdTicks {
		c.state = StateWaitNeutral
		c.candidate = None
		c.holdCount = 0
		return candidate, true
	}
	return None, false
}

// classify maps one attitude to a single candidate. Tie-break rule: the
// roll bands are evaluated before the pitch bands, and each band requires
// the other axis to stay inside CrossLimit, so exactly one candidate (or
// none) results from any attitude.
func (c *Classifier) classify(att filter.Attitude) Gesture {
	absRoll := math.Abs(att.Roll)
	absPitch := math.Abs(att.Pitch)

	if absRoll >= c.effective.Roll && absPitch <= c.effective.CrossLimit {
		if att.Roll > 0 {
			return BankRight
		}
		return BankLeft
	}

	if absPitch >= c.effective.Pitch && absRoll <= c.effective.CrossLimit {
		if att.Pitch > 0 {
			return NoseUp
		}
		return NoseDown
	}

	return None
}
