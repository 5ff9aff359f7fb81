package output

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/starrun/internal/config"
	"github.com/relabs-tech/starrun/internal/game"
)

// toneStep is one note: square-wave frequency, duration and trailing gap.
type toneStep struct {
	freqHz int
	dur    time.Duration
	post   time.Duration
}

// tones maps each sound cue to its note sequence.
var tones = map[game.Sound][]toneStep{
	game.SoundMenuTick: {{800, 50 * time.Millisecond, 0}},
	game.SoundRotate:   {{700, 70 * time.Millisecond, 0}},
	game.SoundSuccess:  {{900, 100 * time.Millisecond, 0}},
	game.SoundFail:     {{200, 300 * time.Millisecond, 0}},
	game.SoundWin: {
		{523, 100 * time.Millisecond, 50 * time.Millisecond},
		{659, 100 * time.Millisecond, 50 * time.Millisecond},
		{784, 200 * time.Millisecond, 0},
	},
}

// Buzzer bit-bangs a square wave on a piezo pin. Tones play on a worker
// goroutine so PlayTone never blocks the tick loop; a cue arriving while
// another is still sounding is dropped rather than queued up.
type Buzzer struct {
	pin   gpio.PinOut
	queue chan []toneStep
}

// NewBuzzer opens the buzzer pin and starts the tone worker.
func NewBuzzer() (*Buzzer, error) {
	cfg := config.Get()

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	pin := gpioreg.ByName(cfg.Output.BuzzerPin)
	if pin == nil {
		return nil, fmt.Errorf("buzzer pin %q not found", cfg.Output.BuzzerPin)
	}
	if err := pin.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("buzzer pin %q: %w", cfg.Output.BuzzerPin, err)
	}

	b := &Buzzer{pin: pin, queue: make(chan []toneStep, 1)}
	go b.worker()
	return b, nil
}

// PlayTone schedules the cue's notes. Never blocks.
func (b *Buzzer) PlayTone(s game.Sound) {
	steps, ok := tones[s]
	if !ok {
		return
	}
	select {
	case b.queue <- steps:
	default:
		// still sounding the previous cue
	}
}

func (b *Buzzer) worker() {
	for steps := range b.queue {
		for _, step := range steps {
			b.tone(step.freqHz, step.dur)
			time.Sleep(step.post)
		}
	}
}

// tone toggles the pin at the note frequency for the duration.
func (b *Buzzer) tone(freqHz int, dur time.Duration) {
	halfPeriod := time.Second / time.Duration(2*freqHz)
	start := time.Now()

	for time.Since(start) < dur {
		if err := b.pin.Out(gpio.High); err != nil {
			log.Printf("buzzer: pin error: %v", err)
			return
		}
		time.Sleep(halfPeriod)
		if err := b.pin.Out(gpio.Low); err != nil {
			log.Printf("buzzer: pin error: %v", err)
			return
		}
		time.Sleep(halfPeriod)
	}
}
