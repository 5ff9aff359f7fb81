package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/relabs-tech/starrun/internal/gesture"
)

// StateID identifies one state of the game machine.
type StateID int

const (
	StateDifficultyMenu StateID = iota
	StateLevelIntro
	StateAwaitingNeutral
	StateGestureWindow
	StateLevelComplete
	StateGameOver
	StateWin
	StateRestart
)

func (s StateID) String() string {
	switch s {
	case StateDifficultyMenu:
		return "difficulty_menu"
	case StateLevelIntro:
		return "level_intro"
	case StateAwaitingNeutral:
		return "awaiting_neutral"
	case StateGestureWindow:
		return "gesture_window"
	case StateLevelComplete:
		return "level_complete"
	case StateGameOver:
		return "game_over"
	case StateWin:
		return "win"
	default:
		return "restart"
	}
}

// Input is everything the machine consumes on one tick.
type Input struct {
	// Event is a confirmed gesture; valid only when HasEvent is true.
	Event    gesture.Gesture
	HasEvent bool
	// Neutral reports that the device is level and the classifier re-armed.
	Neutral bool

	EncoderDelta   int
	EncoderPressed bool
}

// Params are the tick-counted timings of the machine. Everything is counted
// in loop ticks so the machine never consults a wall clock.
type Params struct {
	TickInterval time.Duration

	// MenuIdleTicks locks the highlighted difficulty after inactivity.
	MenuIdleTicks int
	// MenuStepTicks rate-limits cursor moves so one twist is one step.
	MenuStepTicks int
	// BlinkHalfTicks is half the period of the menu LED blink.
	BlinkHalfTicks int
	// NeutralTicks is how many consecutive level ticks re-arm a level start.
	NeutralTicks int
	// CompleteHoldTicks keeps the level-clear screen up before the next level.
	CompleteHoldTicks int
	// EndHoldTicks keeps a terminal screen up before rotary input restarts.
	EndHoldTicks int
}

// DefaultParams derives the standard timings from the loop cadence. Every
// derived count is clamped to one tick so a coarse cadence never yields a
// zero interval.
func DefaultParams(tickInterval time.Duration) Params {
	return Params{
		TickInterval:      tickInterval,
		MenuIdleTicks:     atLeastOneTick(6 * time.Second / tickInterval),
		MenuStepTicks:     atLeastOneTick(150 * time.Millisecond / tickInterval),
		BlinkHalfTicks:    atLeastOneTick(500 * time.Millisecond / tickInterval),
		NeutralTicks:      8,
		CompleteHoldTicks: atLeastOneTick(time.Second / tickInterval),
		EndHoldTicks:      atLeastOneTick(3 * time.Second / tickInterval),
	}
}

func atLeastOneTick(n time.Duration) int {
	if n < 1 {
		return 1
	}
	return int(n)
}

// Session is the volatile state of one run. Reset on restart, never
// persisted across power cycles.
type Session struct {
	Difficulty     Difficulty
	Level          int
	Score          int
	State          StateID
	RemainingTicks int
}

// Machine is the game state machine. It owns the session, consumes
// classifier and encoder input once per tick, and emits feedback commands
// to the sink on state entry and content change.
type Machine struct {
	params Params
	sink   Sink
	rng    *rand.Rand

	session Session
	spec    LevelSpec

	// difficulty menu
	cursor       Difficulty
	locked       bool
	idleTicks    int
	stepCooldown int
	blinkTick    int
	blinkOn      bool

	neutralStreak int
	completeHold  int
	endHold       int
	lastTimeLabel string
}

// NewMachine creates a machine in the difficulty menu. The rng picks level
// targets; pass a seeded source for play, a fixed one for tests.
func NewMachine(params Params, sink Sink, rng *rand.Rand) *Machine {
	m := &Machine{params: params, sink: sink, rng: rng}
	m.session = Session{Level: 1}
	m.enterMenu()
	return m
}

// Session returns a copy of the current session.
func (m *Machine) Session() Session {
	return m.session
}

// LevelSpec returns the spec of the level in progress.
func (m *Machine) LevelSpec() LevelSpec {
	return m.spec
}

// Tightness is the classifier threshold scale for the locked difficulty,
// 1.0 while no run is in progress.
func (m *Machine) Tightness() float64 {
	if !m.locked {
		return 1.0
	}
	return m.session.Difficulty.Tightness()
}

// Update advances the machine by one tick.
func (m *Machine) Update(in Input) {
	switch m.session.State {
	case StateDifficultyMenu:
		m.tickMenu(in)
	case StateLevelIntro:
		// Transient: the intro screen and countdown are armed on entry.
		m.enterAwaitingNeutral()
	case StateAwaitingNeutral:
		m.tickAwaitingNeutral(in)
	case StateGestureWindow:
		m.tickWindow(in)
	case StateLevelComplete:
		m.tickComplete()
	case StateGameOver, StateWin:
		m.tickEndScreen(in)
	case StateRestart:
		m.session = Session{Level: 1}
		m.enterMenu()
	}
}

// ---- difficulty menu ----

func (m *Machine) enterMenu() {
	m.session.State = StateDifficultyMenu
	m.locked = false
	m.idleTicks = 0
	m.stepCooldown = 0
	m.blinkTick = 0
	m.blinkOn = true
	m.sink.SetLED(LEDFlying)
	m.showMenu()
}

func (m *Machine) showMenu() {
	m.sink.ShowText(
		"STAR RUN",
		fmt.Sprintf("Mode: %s", m.cursor),
		fmt.Sprintf("Score: %d", m.session.Score),
		"Rotate encoder",
	)
}

func (m *Machine) tickMenu(in Input) {
	m.blinkTick++
	on := (m.blinkTick/m.params.BlinkHalfTicks)%2 == 0
	if on != m.blinkOn {
		m.blinkOn = on
		if on {
			m.sink.SetLED(LEDFlying)
		} else {
			m.sink.SetLED(LEDOff)
		}
	}

	if m.stepCooldown > 0 {
		m.stepCooldown--
	}

	if in.EncoderDelta != 0 && m.stepCooldown == 0 {
		if in.EncoderDelta > 0 {
			m.cursor = Difficulty((int(m.cursor) + 1) % DifficultyCount)
		} else {
			m.cursor = Difficulty((int(m.cursor) + DifficultyCount - 1) % DifficultyCount)
		}
		m.stepCooldown = m.params.MenuStepTicks
		m.idleTicks = 0
		m.sink.PlayTone(SoundMenuTick)
		m.showMenu()
		return
	}

	if in.EncoderPressed {
		m.lockDifficulty()
		return
	}

	// Inactivity locks whatever is highlighted, never a hidden default.
	m.idleTicks++
	if m.idleTicks >= m.params.MenuIdleTicks {
		m.lockDifficulty()
	}
}

func (m *Machine) lockDifficulty() {
	m.session.Difficulty = m.cursor
	m.session.Level = 1
	m.session.Score = 0
	m.locked = true
	m.enterLevelIntro()
}

// ---- levels ----

func (m *Machine) enterLevelIntro() {
	target := gesture.Moves[m.rng.Intn(len(gesture.Moves))]
	m.spec = NewLevelSpec(m.session.Difficulty, m.session.Level, target, m.params.TickInterval)
	m.session.RemainingTicks = m.spec.TimeLimitTicks
	m.session.State = StateLevelIntro
	m.neutralStreak = 0

	m.sink.SetLED(LEDWarn)
	m.sink.ShowText(
		fmt.Sprintf("LEVEL %d/%d", m.spec.Level, MaxLevels),
		fmt.Sprintf("DO: %s", m.spec.Target),
		"Center device",
		"Stay still",
	)
}

func (m *Machine) enterAwaitingNeutral() {
	m.session.State = StateAwaitingNeutral
	m.neutralStreak = 0
}

func (m *Machine) tickAwaitingNeutral(in Input) {
	if !in.Neutral {
		m.neutralStreak = 0
		return
	}
	m.neutralStreak++
	if m.neutralStreak >= m.params.NeutralTicks {
		m.enterWindow()
	}
}

func (m *Machine) enterWindow() {
	m.session.State = StateGestureWindow
	m.lastTimeLabel = ""
	m.sink.SetLED(MoveColor(m.spec.Target))
	m.showLevel()
}

func (m *Machine) showLevel() {
	remaining := time.Duration(m.session.RemainingTicks) * m.params.TickInterval
	m.lastTimeLabel = fmt.Sprintf("Time: %.1fs", remaining.Seconds())
	m.sink.ShowText(
		fmt.Sprintf("LEVEL %d/%d", m.spec.Level, MaxLevels),
		fmt.Sprintf("DO: %s", m.spec.Target),
		m.lastTimeLabel,
		fmt.Sprintf("Score: %d", m.session.Score),
	)
}

func (m *Machine) tickWindow(in Input) {
	m.session.RemainingTicks--
	if m.session.RemainingTicks <= 0 {
		m.enterGameOver()
		return
	}

	if in.HasEvent {
		if in.Event == m.spec.Target {
			m.session.Score += m.spec.Points
			m.enterLevelComplete()
		} else {
			// A wrong move ends the run immediately, regardless of the
			// time still on the clock.
			m.enterGameOver()
		}
		return
	}

	// Redraw only when the displayed tenths change.
	remaining := time.Duration(m.session.RemainingTicks) * m.params.TickInterval
	if label := fmt.Sprintf("Time: %.1fs", remaining.Seconds()); label != m.lastTimeLabel {
		m.showLevel()
	}
}

func (m *Machine) enterLevelComplete() {
	m.session.State = StateLevelComplete
	m.completeHold = m.params.CompleteHoldTicks
	m.sink.SetLED(LEDGood)
	m.sink.PlayTone(SoundSuccess)
	m.sink.ShowText(
		fmt.Sprintf("LEVEL %d CLEAR", m.spec.Level),
		fmt.Sprintf("+%d", m.spec.Points),
		"",
		fmt.Sprintf("Score: %d", m.session.Score),
	)
}

func (m *Machine) tickComplete() {
	if m.completeHold > 0 {
		m.completeHold--
		return
	}
	if m.session.Level >= MaxLevels {
		m.enterWin()
		return
	}
	m.session.Level++
	m.enterLevelIntro()
}

// ---- terminal screens ----

func (m *Machine) enterGameOver() {
	m.session.State = StateGameOver
	m.endHold = m.params.EndHoldTicks
	m.sink.SetLED(LEDBad)
	m.sink.PlayTone(SoundFail)
	m.sink.ShowText(
		"GAME OVER",
		fmt.Sprintf("Score: %d", m.session.Score),
		"",
		"Rotate to retry",
	)
}

func (m *Machine) enterWin() {
	m.session.State = StateWin
	m.endHold = m.params.EndHoldTicks
	m.sink.SetLED(LEDWin)
	m.sink.PlayTone(SoundWin)
	m.sink.ShowText(
		"YOU WIN!",
		fmt.Sprintf("Score: %d", m.session.Score),
		"",
		"Rotate to restart",
	)
}

func (m *Machine) tickEndScreen(in Input) {
	// Hold the screen briefly so a twist left over from play cannot skip it.
	if m.endHold > 0 {
		m.endHold--
		return
	}
	if in.EncoderDelta != 0 || in.EncoderPressed {
		m.sink.PlayTone(SoundRotate)
		m.session.State = StateRestart
	}
}

// ---- telemetry ----

// Snapshot is the machine's state as published on the game topic.
type Snapshot struct {
	State        string  `json:"state"`
	Difficulty   string  `json:"difficulty"`
	Level        int     `json:"level"`
	Score        int     `json:"score"`
	RemainingSec float64 `json:"remaining_sec"`
}

// Snapshot captures the current session for telemetry.
func (m *Machine) Snapshot() Snapshot {
	remaining := time.Duration(m.session.RemainingTicks) * m.params.TickInterval
	return Snapshot{
		State:        m.session.State.String(),
		Difficulty:   m.session.Difficulty.String(),
		Level:        m.session.Level,
		Score:        m.session.Score,
		RemainingSec: remaining.Seconds(),
	}
}
