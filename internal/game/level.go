package game

import (
	"time"

	"github.com/relabs-tech/starrun/internal/gesture"
)

// MaxLevels is the number of levels in one run.
const MaxLevels = 10

// BaseScorePerLevel is awarded for every cleared level, before the
// difficulty bonus.
const BaseScorePerLevel = 100

// minLevelTime is the floor the per-level time shrink never goes under.
const minLevelTime = 900 * time.Millisecond

// Difficulty selects the pace and the threshold tightness of a run.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// DifficultyCount is the number of selectable difficulties.
const DifficultyCount = 3

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "EASY"
	case Medium:
		return "MEDIUM"
	default:
		return "HARD"
	}
}

// difficultySpec is one row of the difficulty table: starting time budget,
// how much it shrinks per level, the score bonus for clearing a level, and
// how much wider the gesture bands get.
type difficultySpec struct {
	baseTime  time.Duration
	perLevel  time.Duration
	bonus     int
	tightness float64
}

var difficulties = [DifficultyCount]difficultySpec{
	Easy:   {baseTime: 6 * time.Second, perLevel: 250 * time.Millisecond, bonus: 0, tightness: 1.0},
	Medium: {baseTime: 4500 * time.Millisecond, perLevel: 200 * time.Millisecond, bonus: 50, tightness: 1.25},
	Hard:   {baseTime: 3200 * time.Millisecond, perLevel: 150 * time.Millisecond, bonus: 100, tightness: 1.5},
}

// Tightness is the threshold scale for this difficulty. Hard requires a
// more decisive tilt.
func (d Difficulty) Tightness() float64 {
	return difficulties[d].tightness
}

// LevelSpec is the target gesture, time budget and score value for one
// level of a run. Immutable once selected.
type LevelSpec struct {
	Level          int
	Target         gesture.Gesture
	TimeLimit      time.Duration
	TimeLimitTicks int
	Points         int
}

// NewLevelSpec derives the spec for the given level (1-based) under the
// given difficulty. The time budget shrinks linearly with the level index
// down to a fixed floor.
func NewLevelSpec(d Difficulty, level int, target gesture.Gesture, tickInterval time.Duration) LevelSpec {
	spec := difficulties[d]

	limit := spec.baseTime - time.Duration(level-1)*spec.perLevel
	if limit < minLevelTime {
		limit = minLevelTime
	}

	return LevelSpec{
		Level:          level,
		Target:         target,
		TimeLimit:      limit,
		TimeLimitTicks: int(limit / tickInterval),
		Points:         BaseScorePerLevel + spec.bonus,
	}
}
