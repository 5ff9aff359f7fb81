package accel

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	serial "github.com/jacobsa/go-serial/serial"
	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/starrun/internal/config"
)

// serialSource reads samples from a tethered dev board that streams one
// "ax,ay,az" line (m/s², decimal) per reading.
type serialSource struct {
	port   io.ReadCloser
	reader *bufio.Reader
}

// NewSerialSource opens the configured serial port.
func NewSerialSource() (Source, error) {
	cfg := config.Get()

	serialOpts := serial.OpenOptions{
		PortName:        cfg.Sampling.SerialPort,
		BaudRate:        cfg.Sampling.SerialBaud,
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
		ParityMode:      serial.PARITY_NONE,
	}

	port, err := serial.Open(serialOpts)
	if err != nil {
		return nil, fmt.Errorf("accel serial port: %w", err)
	}
	log.Printf("accel serial port opened on %s at %d baud", serialOpts.PortName, serialOpts.BaudRate)

	return &serialSource{port: port, reader: bufio.NewReader(port)}, nil
}

// Next reads lines until one parses as a sample. Partial or garbled lines
// from a freshly plugged board are skipped, not errors.
func (s *serialSource) Next() (RawSample, error) {
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return RawSample{}, fmt.Errorf("accel serial read: %w", err)
		}

		sample, ok := parseSampleLine(line)
		if !ok {
			continue
		}
		return sample, nil
	}
}

func parseSampleLine(line string) (RawSample, bool) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != 3 {
		return RawSample{}, false
	}

	var vals [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return RawSample{}, false
		}
		vals[i] = v
	}
	return RawSample{X: vals[0], Y: vals[1], Z: vals[2]}, true
}

// Close releases the serial port.
func (s *serialSource) Close() error {
	return s.port.Close()
}
