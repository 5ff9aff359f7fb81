// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package accel

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/devices/v3/mpu9250"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/starrun/internal/config"
)

type mpu9250Source struct {
	imu *mpu9250.MPU9250
	// counts → m/s² for the configured full-scale range
	scale float64
}

// NewMPU9250Source initializes the MPU-9250 over SPI and returns a Source
// that reads the accelerometer. Gyro and magnetometer are left untouched;
// the game only needs tilt.
func NewMPU9250Source() (Source, error) {
	cfg := config.Get()

	// Initialize periph host once.
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	cs := gpioreg.ByName(cfg.Sampling.CSPin)
	if cs == nil {
		return nil, fmt.Errorf("IMU CS pin %q not found", cfg.Sampling.CSPin)
	}

	tr, err := mpu9250.NewSpiTransport(cfg.Sampling.SPIDevice, cs)
	if err != nil {
		return nil, fmt.Errorf("IMU SPI transport (%s): %w", cfg.Sampling.SPIDevice, err)
	}

	imu, err := mpu9250.New(tr)
	if err != nil {
		return nil, fmt.Errorf("IMU device creation: %w", err)
	}

	if err := imu.Init(); err != nil {
		return nil, fmt.Errorf("IMU initialization: %w", err)
	}

	if err := imu.SetAccelRange(cfg.Sampling.AccelRange); err != nil {
		return nil, fmt.Errorf("IMU set accel range: %w", err)
	}
	fullScaleG := 2 << cfg.Sampling.AccelRange
	log.Printf("IMU: accelerometer range set to %d (±%dg)", cfg.Sampling.AccelRange, fullScaleG)

	return &mpu9250Source{
		imu:   imu,
		scale: float64(fullScaleG) * Gravity / 32768.0,
	}, nil
}

// Next reads one raw accelerometer sample and converts counts to m/s².
func (s *mpu9250Source) Next() (RawSample, error) {
	ax, err := s.imu.GetAccelerationX()
	if err != nil {
		return RawSample{}, fmt.Errorf("IMU acc X: %w", err)
	}
	ay, err := s.imu.GetAccelerationY()
	if err != nil {
		return RawSample{}, fmt.Errorf("IMU acc Y: %w", err)
	}
	az, err := s.imu.GetAccelerationZ()
	if err != nil {
		return RawSample{}, fmt.Errorf("IMU acc Z: %w", err)
	}

	return RawSample{
		X: float64(ax) * s.scale,
		Y: float64(ay) * s.scale,
		Z: float64(az) * s.scale,
	}, nil
}
