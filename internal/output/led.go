package output

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/apa102"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/starrun/internal/config"
	"github.com/relabs-tech/starrun/internal/game"
)

// LED drives the single APA102 status pixel.
type LED struct {
	dev  *apa102.Dev
	last game.LEDColor
	have bool
}

// NewLED opens the LED SPI port.
func NewLED() (*LED, error) {
	cfg := config.Get()

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	port, err := spireg.Open(cfg.Output.LEDSPIDevice)
	if err != nil {
		return nil, fmt.Errorf("failed to open LED SPI port: %w", err)
	}

	opts := apa102.DefaultOpts
	opts.NumPixels = 1
	opts.Intensity = cfg.Output.LEDIntensity

	dev, err := apa102.New(port, &opts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LED: %w", err)
	}

	return &LED{dev: dev}, nil
}

// SetLED writes the color, skipping writes that would not change it.
func (l *LED) SetLED(c game.LEDColor) {
	if l.have && c == l.last {
		return
	}
	l.last = c
	l.have = true

	if _, err := l.dev.Write([]byte{c.R, c.G, c.B}); err != nil {
		log.Printf("led: write error: %v", err)
	}
}
