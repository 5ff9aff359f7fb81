// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package accel

import (
	"math"
	"time"
)

type mockSource struct {
	start time.Time
}

// NewMockSource creates a mock accelerometer that rests gravity-down on Z
// and slowly sways through gentle bank and nose tilts, enough to drive the
// whole pipeline without hardware.
func NewMockSource() Source {
	return &mockSource{start: time.Now()}
}

func (m *mockSource) Next() (RawSample, error) {
	elapsed := time.Since(m.start).Seconds()

	roll := 20 * math.Sin(elapsed*0.4) * math.Pi / 180
	pitch := 15 * math.Cos(elapsed*0.27) * math.Pi / 180

	return RawSample{
		X: Gravity * math.Sin(roll),
		Y: Gravity * math.Sin(pitch),
		Z: Gravity * math.Cos(roll) * math.Cos(pitch),
	}, nil
}
