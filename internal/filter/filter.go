package filter

import (
	"math"

	"github.com/relabs-tech/starrun/internal/accel"
	"github.com/relabs-tech/starrun/internal/calib"
)

// Attitude is the canonical tilt representation for the game: roll and
// pitch in degrees, relative to the calibrated resting orientation.
// Positive pitch is nose up.
type Attitude struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
}

// Filter applies exponential smoothing to offset-corrected samples and
// derives roll/pitch against the gravity axis identified at calibration.
// It retains no history beyond the previous smoothed vector.
type Filter struct {
	alpha    float64
	profile  calib.Profile
	smoothed [3]float64
	last     Attitude
}

// New creates a filter seeded with the calibrated resting vector, so the
// first ticks start from "level" rather than from zero.
func New(profile calib.Profile, alpha float64) *Filter {
	f := &Filter{alpha: alpha, profile: profile}
	f.smoothed[profile.GravityAxis] = profile.GravitySign * accel.Gravity
	return f
}

// Update consumes one raw sample: subtract offsets, smooth, derive angles.
func (f *Filter) Update(s accel.RawSample) Attitude {
	c := f.profile.Correct(s)

	a := f.alpha
	f.smoothed[accel.AxisX] = a*c.X + (1-a)*f.smoothed[accel.AxisX]
	f.smoothed[accel.AxisY] = a*c.Y + (1-a)*f.smoothed[accel.AxisY]
	f.smoothed[accel.AxisZ] = a*c.Z + (1-a)*f.smoothed[accel.AxisZ]

	f.last = f.attitude()
	return f.last
}

// Last returns the attitude from the previous tick. Used when a tick has no
// new sample: the device is treated as "no change", never as level-zero.
func (f *Filter) Last() Attitude {
	return f.last
}

// Smoothed returns the current smoothed acceleration vector.
func (f *Filter) Smoothed() accel.RawSample {
	return accel.RawSample{
		X: f.smoothed[accel.AxisX],
		Y: f.smoothed[accel.AxisY],
		Z: f.smoothed[accel.AxisZ],
	}
}

// attitude projects the smoothed vector onto the tilt planes selected by
// the gravity axis. The plane table mirrors the three possible resting
// orientations; angles stay continuous for tilts well under ±90°.
func (f *Filter) attitude() Attitude {
	x := f.smoothed[accel.AxisX]
	y := f.smoothed[accel.AxisY]
	z := f.smoothed[accel.AxisZ]

	var roll, pitch float64
	switch f.profile.GravityAxis {
	case accel.AxisZ:
		roll = degrees(math.Atan2(x, z))
		pitch = degrees(math.Atan2(y, z))
	case accel.AxisY:
		roll = degrees(math.Atan2(x, y))
		pitch = degrees(math.Atan2(z, y))
	default: // gravity on X
		roll = degrees(math.Atan2(y, x))
		pitch = degrees(math.Atan2(z, x))
	}
	return Attitude{Roll: roll, Pitch: pitch}
}

func degrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}
