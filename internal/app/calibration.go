// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"errors"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/starrun/internal/accel"
	"github.com/relabs-tech/starrun/internal/calib"
	"github.com/relabs-tech/starrun/internal/config"
)

// sliceSource replays captured samples, so the same batch can be inspected
// and then fed to the calibrator.
type sliceSource struct {
	samples []accel.RawSample
	pos     int
}

func (s *sliceSource) Next() (accel.RawSample, error) {
	if s.pos >= len(s.samples) {
		return accel.RawSample{}, errors.New("sample batch exhausted")
	}
	sample := s.samples[s.pos]
	s.pos++
	return sample, nil
}

// RunCalibration is a bench check: capture one calibration batch from the
// configured source, print per-axis statistics and the resulting profile.
// Useful when mounting the board in a new enclosure.
func RunCalibration() error {
	cfg := config.Get()

	src, err := NewSource(cfg.Sampling.Source)
	if err != nil {
		return err
	}

	n := cfg.Sampling.CalibrationSamples
	log.Printf("capturing %d samples, hold the device still...", n)

	samples := make([]accel.RawSample, 0, n)
	for len(samples) < n {
		s, err := src.Next()
		if err != nil {
			return fmt.Errorf("sample read: %w", err)
		}
		samples = append(samples, s)
	}

	var mean, stddev [3]float64
	for _, s := range samples {
		for axis := 0; axis < 3; axis++ {
			mean[axis] += s.Axis(axis)
		}
	}
	for axis := range mean {
		mean[axis] /= float64(n)
	}
	for _, s := range samples {
		for axis := 0; axis < 3; axis++ {
			d := s.Axis(axis) - mean[axis]
			stddev[axis] += d * d
		}
	}
	for axis := range stddev {
		stddev[axis] = math.Sqrt(stddev[axis] / float64(n))
	}

	for axis := 0; axis < 3; axis++ {
		fmt.Printf("%s: mean %+8.3f m/s²  stddev %6.3f\n", accel.AxisName(axis), mean[axis], stddev[axis])
	}

	profile, err := calib.Collect(&sliceSource{samples: samples}, n)
	if errors.Is(err, calib.ErrAmbiguousOrientation) {
		fmt.Println("AMBIGUOUS: no dominant gravity axis; the device is tilted or moving")
		return err
	}
	if err != nil {
		return err
	}

	fmt.Printf("gravity axis: %s (sign %+.0f)\n", accel.AxisName(profile.GravityAxis), profile.GravitySign)
	fmt.Printf("offsets: X=%+.3f Y=%+.3f Z=%+.3f\n",
		profile.Offset[0], profile.Offset[1], profile.Offset[2])
	return nil
}
