package accel

// Gravity is the reference gravity magnitude in m/s². Samples from every
// source are normalized to these units.
const Gravity = 9.81

// Axis indexes into a RawSample the way the hardware labels them.
const (
	AxisX = 0
	AxisY = 1
	AxisZ = 2
)

// AxisName returns "X", "Y" or "Z" for logging.
func AxisName(axis int) string {
	return [...]string{"X", "Y", "Z"}[axis]
}

// RawSample is one raw 3-axis accelerometer reading in m/s². Produced every
// sampling tick and consumed immediately by the filter.
type RawSample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Axis returns the reading for the given axis index.
func (s RawSample) Axis(axis int) float64 {
	switch axis {
	case AxisX:
		return s.X
	case AxisY:
		return s.Y
	default:
		return s.Z
	}
}

// Source is anything that can provide raw samples over time: real MPU-9250,
// a serial-attached dev board, or the mock source.
type Source interface {
	Next() (RawSample, error)
}
