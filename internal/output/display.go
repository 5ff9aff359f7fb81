// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package output

import (
	"fmt"
	"image"

	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"
)

const (
	displayWidth  = 128
	displayHeight = 64
	// basicfont.Face7x13 advance
	glyphWidth = 7
)

// lineBaselines are the four text baselines of the screen layout.
var lineBaselines = [4]int{14, 30, 46, 60}

// Display drives the 128×64 SSD1306 OLED with a four-line centered text
// layout.
type Display struct {
	dev *ssd1306.Dev
}

// NewDisplay opens the I2C bus and initializes the OLED.
func NewDisplay() (*Display, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	bus, err := i2creg.Open("")
	if err != nil {
		return nil, fmt.Errorf("failed to open I2C bus: %w", err)
	}

	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize display: %w", err)
	}
	log.Println("display initialized")

	return &Display{dev: dev}, nil
}

// ShowText renders up to four centered lines. Empty lines stay blank.
// Draw errors are logged, not propagated: a glitched frame is not a game
// event.
func (d *Display) ShowText(l1, l2, l3, l4 string) {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, displayWidth, displayHeight))

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}

	for i, text := range [4]string{l1, l2, l3, l4} {
		if text == "" {
			continue
		}
		x := (displayWidth - glyphWidth*len(text)) / 2
		if x < 0 {
			x = 0
		}
		drawer.Dot = fixed.P(x, lineBaselines[i])
		drawer.DrawBytes([]byte(text))
	}

	if err := d.dev.Draw(d.dev.Bounds(), img, image.Point{}); err != nil {
		log.Printf("display: draw error: %v", err)
	}
}
