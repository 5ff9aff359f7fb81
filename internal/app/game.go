package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/starrun/internal/accel"
	"github.com/relabs-tech/starrun/internal/calib"
	"github.com/relabs-tech/starrun/internal/config"
	"github.com/relabs-tech/starrun/internal/filter"
	"github.com/relabs-tech/starrun/internal/game"
	"github.com/relabs-tech/starrun/internal/gesture"
	"github.com/relabs-tech/starrun/internal/input"
	"github.com/relabs-tech/starrun/internal/output"
	"github.com/relabs-tech/starrun/internal/telemetry"
)

// telemetryEveryTicks throttles publishes to roughly 10 Hz at the default
// 20 ms cadence.
const telemetryEveryTicks = 5

// RunGame wires the real peripherals and runs the tick loop until the
// process is killed. This is the handheld's main entry point.
func RunGame() error {
	cfg := config.Get()
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	src, err := NewSource(cfg.Sampling.Source)
	if err != nil {
		return err
	}

	encoder, err := input.NewGPIOEncoder()
	if err != nil {
		return err
	}

	display, err := output.NewDisplay()
	if err != nil {
		return err
	}
	led, err := output.NewLED()
	if err != nil {
		log.Printf("LED unavailable, continuing without it: %v", err)
	}
	buzzer, err := output.NewBuzzer()
	if err != nil {
		log.Printf("buzzer unavailable, continuing without it: %v", err)
	}

	sink := &output.HardwareSink{Display: display, LED: led, Buzzer: buzzer}
	return RunLoop(src, encoder, sink)
}

// NewSource builds the accelerometer backend selected by name.
func NewSource(name string) (accel.Source, error) {
	switch name {
	case "mpu9250":
		return accel.NewMPU9250Source()
	case "serial":
		return accel.NewSerialSource()
	case "mock":
		return accel.NewMockSource(), nil
	default:
		return nil, fmt.Errorf("unknown sampling source %q", name)
	}
}

// RunLoop runs calibration and then the fixed-cadence main loop: source
// read → filter → classifier → machine → sink, in that order, every tick.
func RunLoop(src accel.Source, encoder input.Encoder, sink game.Sink) error {
	cfg := config.Get()
	tick := time.Duration(cfg.Sampling.TickIntervalMS) * time.Millisecond

	profile, err := calibrate(src, sink)
	if err != nil {
		return err
	}

	flt := filter.New(profile, cfg.Sampling.SmoothingAlpha)
	classifier := gesture.NewClassifier(gesture.Thresholds{
		DeadAngle:  cfg.Gesture.DeadAngle,
		Roll:       cfg.Gesture.RollThreshold,
		Pitch:      cfg.Gesture.PitchThreshold,
		CrossLimit: cfg.Gesture.CrossLimit,
	}, cfg.Gesture.HoldTicks)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	machine := game.NewMachine(game.DefaultParams(tick), sink, rng)

	var pub *telemetry.Publisher
	if cfg.Telemetry.Enabled {
		pub, err = telemetry.Connect()
		if err != nil {
			log.Printf("telemetry unavailable, continuing without it: %v", err)
		} else {
			defer pub.Close()
		}
	}

	log.Println("starting game loop")
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	tickCount := 0
	for range ticker.C {
		tickCount++

		// A missed sample means "no new motion" for this tick; the
		// previous smoothed state carries over.
		att := flt.Last()
		if s, err := src.Next(); err != nil {
			log.Debugf("sensor read missing: %v", err)
		} else {
			att = flt.Update(s)
		}

		classifier.SetTightness(machine.Tightness())
		event, hasEvent := classifier.Update(att)
		if hasEvent {
			log.Debugf("gesture: %s", event)
		}

		delta, pressed := encoder.Poll()

		machine.Update(game.Input{
			Event:          event,
			HasEvent:       hasEvent,
			Neutral:        classifier.Neutral(),
			EncoderDelta:   delta,
			EncoderPressed: pressed,
		})

		if pub != nil && tickCount%telemetryEveryTicks == 0 {
			pub.PublishAttitude(att)
			pub.PublishGame(machine.Snapshot())
		}
	}
	return nil
}

// calibrate collects the startup profile, retrying for as long as the
// resting orientation stays ambiguous. It never proceeds on a guess.
func calibrate(src accel.Source, sink game.Sink) (calib.Profile, error) {
	cfg := config.Get()

	sink.ShowText("STAR RUN", "", "Calibrating", "Hold still")
	for {
		profile, err := calib.Collect(src, cfg.Sampling.CalibrationSamples)
		if err == nil {
			return profile, nil
		}
		if !errors.Is(err, calib.ErrAmbiguousOrientation) {
			return calib.Profile{}, err
		}
		log.Println("calibration ambiguous, retrying")
		sink.ShowText("STAR RUN", "", "Place flat", "and hold still")
		time.Sleep(500 * time.Millisecond)
	}
}
