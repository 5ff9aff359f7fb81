package config

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// SamplingConfig controls the signal source and the main loop cadence.
type SamplingConfig struct {
	// Source selects the accelerometer backend: "mpu9250", "serial" or "mock".
	Source string `yaml:"source"`

	TickIntervalMS     int     `yaml:"tick_interval_ms"`
	CalibrationSamples int     `yaml:"calibration_samples"`
	SmoothingAlpha     float64 `yaml:"smoothing_alpha"`

	// MPU-9250 over SPI
	SPIDevice  string `yaml:"spi_device"`
	CSPin      string `yaml:"cs_pin"`
	AccelRange byte   `yaml:"accel_range"` // 0=±2g, 1=±4g, 2=±8g, 3=±16g

	// Serial-attached sensor streaming CSV samples
	SerialPort string `yaml:"serial_port"`
	SerialBaud uint   `yaml:"serial_baud"`
}

// GestureConfig holds the base threshold bands in degrees. Difficulty
// tightness is applied on top of these at runtime.
type GestureConfig struct {
	DeadAngle      float64 `yaml:"dead_angle"`
	RollThreshold  float64 `yaml:"roll_threshold"`
	PitchThreshold float64 `yaml:"pitch_threshold"`
	CrossLimit     float64 `yaml:"cross_limit"`
	HoldTicks      int     `yaml:"hold_ticks"`
}

// EncoderConfig describes the rotary encoder wiring and debounce.
type EncoderConfig struct {
	PinA            string `yaml:"pin_a"`
	PinB            string `yaml:"pin_b"`
	ButtonPin       string `yaml:"button_pin"`
	PulsesPerDetent int    `yaml:"pulses_per_detent"`
	StepIntervalMS  int    `yaml:"step_interval_ms"`
}

// OutputConfig describes the display, LED and buzzer peripherals. The OLED
// needs no address knob: the SSD1306 driver owns its bus address.
type OutputConfig struct {
	LEDSPIDevice string `yaml:"led_spi_device"`
	LEDIntensity uint8  `yaml:"led_intensity"`
	BuzzerPin    string `yaml:"buzzer_pin"`
}

// TelemetryConfig controls the optional MQTT side channel. The game loop
// runs identically with Enabled=false and no broker present.
type TelemetryConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Broker        string `yaml:"broker"`
	ClientID      string `yaml:"client_id"`
	ClientIDWeb   string `yaml:"client_id_web"`
	TopicAttitude string `yaml:"topic_attitude"`
	TopicGame     string `yaml:"topic_game"`
}

// WebConfig controls the dashboard server in cmd/web.
type WebConfig struct {
	Port int `yaml:"port"`
}

// Config holds all application configuration values.
type Config struct {
	Sampling  SamplingConfig  `yaml:"sampling"`
	Gesture   GestureConfig   `yaml:"gesture"`
	Encoder   EncoderConfig   `yaml:"encoder"`
	Output    OutputConfig    `yaml:"output"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Web       WebConfig       `yaml:"web"`
	Debug     bool            `yaml:"debug"`
}

// Default returns a Config populated with the values the game ships with.
// A config file only needs to override what differs.
func Default() *Config {
	return &Config{
		Sampling: SamplingConfig{
			Source:             "mpu9250",
			TickIntervalMS:     20,
			CalibrationSamples: 50,
			SmoothingAlpha:     0.2,
			SPIDevice:          "/dev/spidev0.0",
			CSPin:              "18",
			AccelRange:         0,
			SerialPort:         "/dev/ttyUSB0",
			SerialBaud:         115200,
		},
		Gesture: GestureConfig{
			DeadAngle:      10.0,
			RollThreshold:  12.0,
			PitchThreshold: 18.0,
			CrossLimit:     15.0,
			HoldTicks:      2,
		},
		Encoder: EncoderConfig{
			PinA:            "3",
			PinB:            "0",
			ButtonPin:       "2",
			PulsesPerDetent: 3,
			StepIntervalMS:  150,
		},
		Output: OutputConfig{
			LEDSPIDevice: "/dev/spidev0.1",
			LEDIntensity: 80,
			BuzzerPin:    "13",
		},
		Telemetry: TelemetryConfig{
			Enabled:       false,
			Broker:        "tcp://localhost:1883",
			ClientID:      "starrun-game",
			ClientIDWeb:   "starrun-web",
			TopicAttitude: "starrun/attitude",
			TopicGame:     "starrun/game",
		},
		Web: WebConfig{
			Port: 8080,
		},
	}
}

// Package-level unexported variables for the singleton: external code must
// use InitGlobal() to set and Get() to read, ensuring thread safety.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Load reads the YAML configuration file on top of the defaults and
// validates the result.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks that the values the tick loop depends on are sane.
func (c *Config) validate() error {
	switch c.Sampling.Source {
	case "mpu9250", "serial", "mock":
	default:
		return fmt.Errorf("sampling.source must be mpu9250, serial or mock, got %q", c.Sampling.Source)
	}
	if c.Sampling.TickIntervalMS <= 0 {
		return fmt.Errorf("sampling.tick_interval_ms must be positive, got %d", c.Sampling.TickIntervalMS)
	}
	if c.Sampling.CalibrationSamples <= 0 {
		return fmt.Errorf("sampling.calibration_samples must be positive, got %d", c.Sampling.CalibrationSamples)
	}
	if c.Sampling.SmoothingAlpha <= 0 || c.Sampling.SmoothingAlpha > 1 {
		return fmt.Errorf("sampling.smoothing_alpha must be in (0, 1], got %g", c.Sampling.SmoothingAlpha)
	}
	if c.Sampling.AccelRange > 3 {
		return fmt.Errorf("sampling.accel_range must be 0-3 (0=±2g, 1=±4g, 2=±8g, 3=±16g), got %d", c.Sampling.AccelRange)
	}
	if c.Gesture.HoldTicks < 1 {
		return fmt.Errorf("gesture.hold_ticks must be at least 1, got %d", c.Gesture.HoldTicks)
	}
	if c.Gesture.DeadAngle <= 0 || c.Gesture.RollThreshold <= 0 || c.Gesture.PitchThreshold <= 0 {
		return fmt.Errorf("gesture threshold angles must be positive")
	}
	if c.Encoder.PulsesPerDetent < 1 {
		return fmt.Errorf("encoder.pulses_per_detent must be at least 1, got %d", c.Encoder.PulsesPerDetent)
	}
	if c.Telemetry.Enabled && c.Telemetry.Broker == "" {
		return fmt.Errorf("telemetry.broker is required when telemetry is enabled")
	}
	return nil
}

// InitGlobal initializes the global configuration from file. Uses sync.Once
// so repeated calls are harmless.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// InitGlobalDefaults seeds the singleton with Default() when no config file
// is wanted (simulator, tests).
func InitGlobalDefaults() {
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig = Default()
	})
}

// Get returns the global configuration instance. InitGlobal must be called
// first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
