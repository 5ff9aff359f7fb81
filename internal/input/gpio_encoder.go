package input

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/starrun/internal/config"
)

// quadTable maps (previous<<2 | current) A/B pin states to a pulse
// direction. Invalid transitions (contact bounce skipping a state) count
// as zero, which is what debounces the raw quadrature stream.
var quadTable = [16]int{
	0, -1, 1, 0,
	1, 0, 0, -1,
	-1, 0, 0, 1,
	0, 1, -1, 0,
}

// pressStableTicks is how many consecutive ticks the button level must
// hold before a press is reported, mirroring the gesture debounce.
const pressStableTicks = 2

type gpioEncoder struct {
	pinA, pinB, button gpio.PinIn

	prev            uint8
	pulses          int
	pulsesPerDetent int

	rawPressed    bool
	pressStreak   int
	pressedStable bool
}

// NewGPIOEncoder opens the configured encoder pins with pull-ups. The
// encoder is sampled per tick; no edge interrupts are used.
func NewGPIOEncoder() (Encoder, error) {
	cfg := config.Get()

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	pins := make([]gpio.PinIn, 3)
	for i, name := range []string{cfg.Encoder.PinA, cfg.Encoder.PinB, cfg.Encoder.ButtonPin} {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("encoder pin %q not found", name)
		}
		if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("encoder pin %q: %w", name, err)
		}
		pins[i] = p
	}

	e := &gpioEncoder{
		pinA:            pins[0],
		pinB:            pins[1],
		button:          pins[2],
		pulsesPerDetent: cfg.Encoder.PulsesPerDetent,
	}
	e.prev = e.readAB()
	return e, nil
}

func (e *gpioEncoder) readAB() uint8 {
	var state uint8
	if e.pinA.Read() == gpio.High {
		state |= 2
	}
	if e.pinB.Read() == gpio.High {
		state |= 1
	}
	return state
}

// Poll decodes the quadrature pair into detent steps and debounces the
// button. One call per tick.
func (e *gpioEncoder) Poll() (int, bool) {
	curr := e.readAB()
	e.pulses += quadTable[e.prev<<2|curr]
	e.prev = curr

	var delta int
	for e.pulses >= e.pulsesPerDetent {
		delta++
		e.pulses -= e.pulsesPerDetent
	}
	for e.pulses <= -e.pulsesPerDetent {
		delta--
		e.pulses += e.pulsesPerDetent
	}

	// Button is active-low. Require a stable level before reporting the
	// press edge so contact noise never doubles an event.
	raw := e.button.Read() == gpio.Low
	if raw == e.rawPressed {
		e.pressStreak++
	} else {
		e.rawPressed = raw
		e.pressStreak = 1
	}

	pressed := false
	if e.pressStreak >= pressStableTicks && raw != e.pressedStable {
		e.pressedStable = raw
		pressed = raw
	}

	return delta, pressed
}
