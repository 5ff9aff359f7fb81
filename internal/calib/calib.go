package calib

import (
	"errors"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/starrun/internal/accel"
)

// ErrAmbiguousOrientation means no axis magnitude clearly dominated during
// calibration, so the resting orientation cannot be trusted. The caller must
// retry; a guessed baseline is never accepted.
var ErrAmbiguousOrientation = errors.New("calibration: no dominant gravity axis")

// dominanceRatio is how much larger the gravity-axis mean must be than the
// runner-up axis mean.
const dominanceRatio = 1.5

// Profile is the per-axis offset plus the gravity-aligned axis, computed
// once at startup and immutable for the rest of the power cycle.
type Profile struct {
	Offset      [3]float64
	GravityAxis int
	// GravitySign is +1 when the gravity axis reads positive at rest
	// (axis pointing down), -1 otherwise.
	GravitySign float64
}

// Correct subtracts the calibration offsets from a raw sample.
func (p Profile) Correct(s accel.RawSample) accel.RawSample {
	return accel.RawSample{
		X: s.X - p.Offset[accel.AxisX],
		Y: s.Y - p.Offset[accel.AxisY],
		Z: s.Z - p.Offset[accel.AxisZ],
	}
}

// Collect averages n consecutive samples captured while the device is held
// still and derives the calibration profile. The axis with the largest mean
// magnitude is the gravity axis; its offset is chosen so that, after
// subtraction, it reads exactly ±accel.Gravity at rest, while the two
// orthogonal axes read zero.
func Collect(src accel.Source, n int) (Profile, error) {
	if n <= 0 {
		return Profile{}, fmt.Errorf("calibration: sample count must be positive, got %d", n)
	}

	var sum [3]float64
	for i := 0; i < n; i++ {
		s, err := src.Next()
		if err != nil {
			return Profile{}, fmt.Errorf("calibration: sample read: %w", err)
		}
		sum[accel.AxisX] += s.X
		sum[accel.AxisY] += s.Y
		sum[accel.AxisZ] += s.Z
	}

	var mean [3]float64
	for axis := range mean {
		mean[axis] = sum[axis] / float64(n)
	}
	log.Printf("calibration: avg X=%.2f Y=%.2f Z=%.2f", mean[0], mean[1], mean[2])

	gravity, runnerUp := dominantAxes(mean)
	if math.Abs(mean[gravity]) < accel.Gravity/2 ||
		math.Abs(mean[gravity]) < dominanceRatio*math.Abs(mean[runnerUp]) {
		return Profile{}, ErrAmbiguousOrientation
	}

	p := Profile{GravityAxis: gravity, GravitySign: 1}
	if mean[gravity] < 0 {
		p.GravitySign = -1
	}
	for axis := range mean {
		if axis == gravity {
			p.Offset[axis] = mean[axis] - p.GravitySign*accel.Gravity
		} else {
			p.Offset[axis] = mean[axis]
		}
	}

	log.Printf("calibration: gravity axis %s (sign %+.0f), offsets X=%.3f Y=%.3f Z=%.3f",
		accel.AxisName(gravity), p.GravitySign, p.Offset[0], p.Offset[1], p.Offset[2])
	return p, nil
}

// dominantAxes returns the axis with the largest mean magnitude and the
// runner-up.
func dominantAxes(mean [3]float64) (first, second int) {
	for axis := 1; axis < 3; axis++ {
		if math.Abs(mean[axis]) > math.Abs(mean[first]) {
			first = axis
		}
	}
	second = (first + 1) % 3
	for axis := 0; axis < 3; axis++ {
		if axis != first && math.Abs(mean[axis]) > math.Abs(mean[second]) {
			second = axis
		}
	}
	return first, second
}
