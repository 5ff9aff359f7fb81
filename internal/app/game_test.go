package app

import (
	"testing"

	"github.com/relabs-tech/starrun/internal/accel"
	"github.com/relabs-tech/starrun/internal/config"
	"github.com/relabs-tech/starrun/internal/output"
)

// settlingSource is ambiguous (diagonal) for the first batch of reads and
// flat afterwards, like a device being put down mid-calibration.
type settlingSource struct {
	reads    int
	settleAt int
}

func (s *settlingSource) Next() (accel.RawSample, error) {
	s.reads++
	if s.reads <= s.settleAt {
		return accel.RawSample{X: 6.9, Y: 0.1, Z: 6.9}, nil
	}
	return accel.RawSample{X: 0.1, Y: -0.1, Z: 9.8}, nil
}

func TestCalibrateRetriesUntilUnambiguous(t *testing.T) {
	config.InitGlobalDefaults()
	n := config.Get().Sampling.CalibrationSamples

	src := &settlingSource{settleAt: n} // first attempt fails, second is clean
	profile, err := calibrate(src, output.ConsoleSink{})
	if err != nil {
		t.Fatalf("calibrate: %v", err)
	}
	if profile.GravityAxis != accel.AxisZ {
		t.Fatalf("gravity axis = %s, want Z", accel.AxisName(profile.GravityAxis))
	}
}

func TestNewSource(t *testing.T) {
	config.InitGlobalDefaults()

	if _, err := NewSource("mock"); err != nil {
		t.Fatalf("mock source: %v", err)
	}
	if _, err := NewSource("ouija"); err == nil {
		t.Fatal("expected error for unknown source")
	}
}
