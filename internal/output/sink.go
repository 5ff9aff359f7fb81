package output

import (
	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/starrun/internal/game"
)

// HardwareSink bundles the real peripherals into a game.Sink. Any of them
// may be nil and is then skipped, so a rig without the LED strip still
// plays.
type HardwareSink struct {
	Display *Display
	LED     *LED
	Buzzer  *Buzzer
}

func (s *HardwareSink) ShowText(l1, l2, l3, l4 string) {
	if s.Display != nil {
		s.Display.ShowText(l1, l2, l3, l4)
	}
}

func (s *HardwareSink) SetLED(c game.LEDColor) {
	if s.LED != nil {
		s.LED.SetLED(c)
	}
}

func (s *HardwareSink) PlayTone(snd game.Sound) {
	if s.Buzzer != nil {
		s.Buzzer.PlayTone(snd)
	}
}

// ConsoleSink logs commands instead of driving peripherals. Used by the
// simulator.
type ConsoleSink struct{}

func (ConsoleSink) ShowText(l1, l2, l3, l4 string) {
	log.Printf("display | %-16s | %-16s | %-16s | %-16s", l1, l2, l3, l4)
}

func (ConsoleSink) SetLED(c game.LEDColor) {
	log.Printf("led     | #%02X%02X%02X", c.R, c.G, c.B)
}

func (ConsoleSink) PlayTone(s game.Sound) {
	log.Printf("tone    | %d", s)
}
