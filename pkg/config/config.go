package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the dashboard controller configuration.
type Config struct {
	Strip StripConfig `yaml:"strip"`
	Tach  TachConfig  `yaml:"tach"`
	Shift ShiftConfig `yaml:"shift"`
	Flash FlashConfig `yaml:"flash"`
	Mock  MockConfig  `yaml:"mock"`
}

// StripConfig contains indicator strip configuration.
type StripConfig struct {
	Brightness int    `yaml:"brightness"` // SK9822 global brightness, 0-31
	Green      int    `yaml:"green"`      // Leading green zone width
	Yellow     int    `yaml:"yellow"`     // Mid yellow zone width
	Red        int    `yaml:"red"`        // Trailing red zone width
	SPIPort    string `yaml:"spi_port"`
	SPIHz      int64  `yaml:"spi_hz"`
}

// Segments returns the total segment count across all zones.
func (s StripConfig) Segments() int {
	return s.Green + s.Yellow + s.Red
}

// TachConfig contains tachometer and speed estimation configuration.
type TachConfig struct {
	PulsesPerRev  int    `yaml:"pulses_per_rev"` // Tach pulses per engine revolution (ECU setting)
	TickRateHz    int    `yaml:"tick_rate_hz"`   // Capture timer tick rate used for interval arithmetic
	MaxRPM        int    `yaml:"max_rpm"`        // Redline threshold
	RedlineMargin int    `yaml:"redline_margin"` // RPM reserved below MaxRPM for the flashing regime
	Chip          string `yaml:"chip"`           // GPIO chip carrying the tach line
	Line          int    `yaml:"line"`           // Tach pulse line offset
}

// Ceiling returns the RPM at which the graduated display saturates.
func (t TachConfig) Ceiling() int {
	return t.MaxRPM - t.RedlineMargin
}

// ShiftConfig contains paddle, confirm sensor, relay and gear display wiring.
type ShiftConfig struct {
	Chip         string `yaml:"chip"`         // GPIO chip carrying the shift input lines
	PaddleUp     int    `yaml:"paddle_up"`    // Upshift paddle line offset
	PaddleDown   int    `yaml:"paddle_down"`  // Downshift paddle line offset
	ConfirmUp    int    `yaml:"confirm_up"`   // Upshift hall-effect sensor line offset
	ConfirmDown  int    `yaml:"confirm_down"` // Downshift hall-effect sensor line offset
	RelayUpPin   int    `yaml:"relay_up_pin"`
	RelayDownPin int    `yaml:"relay_down_pin"`
	SegmentPins  []int  `yaml:"segment_pins"` // 8 sysfs pins forming the 7-seg digit register, bit 0 first
}

// FlashConfig contains redline flash timing.
type FlashConfig struct {
	Period time.Duration `yaml:"period"` // Half-period of the redline blink
}

// MockConfig contains simulated engine configuration.
type MockConfig struct {
	IdleRPM        int           `yaml:"idle_rpm"`        // RPM floor of the sweep
	MaxRPM         int           `yaml:"max_rpm"`         // RPM peak of the sweep
	SweepPeriod    time.Duration `yaml:"sweep_period"`    // Full idle-max-idle sweep duration
	ConfirmLatency time.Duration `yaml:"confirm_latency"` // Paddle pull to gear-change sensor delay
	SampleRate     time.Duration `yaml:"sample_rate"`     // Interval between simulated capture samples
}

// Default returns a default configuration matching the dashboard board wiring.
func Default() *Config {
	return &Config{
		Strip: StripConfig{
			Brightness: 3,
			Green:      18,
			Yellow:     6,
			Red:        6,
			SPIPort:    "SPI0.0",
			SPIHz:      4_000_000,
		},
		Tach: TachConfig{
			PulsesPerRev:  8,      // Tach pulses per rev in PE3 Engine Setup
			TickRateHz:    750000, // 48 MHz source behind a 64x divider
			MaxRPM:        12000,
			RedlineMargin: 1500,
			Chip:          "gpiochip0",
			Line:          17,
		},
		Shift: ShiftConfig{
			Chip:         "gpiochip0",
			PaddleUp:     5,
			PaddleDown:   6,
			ConfirmUp:    13,
			ConfirmDown:  19,
			RelayUpPin:   23,
			RelayDownPin: 24,
			SegmentPins:  []int{2, 3, 4, 14, 15, 18, 7, 8},
		},
		Flash: FlashConfig{
			Period: 70 * time.Millisecond,
		},
		Mock: MockConfig{
			IdleRPM:        1100,
			MaxRPM:         12500,
			SweepPeriod:    8 * time.Second,
			ConfirmLatency: 150 * time.Millisecond,
			SampleRate:     20 * time.Millisecond,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Ensure minimum required fields are set (use defaults if missing)
	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Strip.Segments() == 0 {
		c.Strip.Green = def.Strip.Green
		c.Strip.Yellow = def.Strip.Yellow
		c.Strip.Red = def.Strip.Red
	}
	if c.Strip.SPIPort == "" {
		c.Strip.SPIPort = def.Strip.SPIPort
	}
	if c.Strip.SPIHz == 0 {
		c.Strip.SPIHz = def.Strip.SPIHz
	}

	if c.Tach.PulsesPerRev == 0 {
		c.Tach.PulsesPerRev = def.Tach.PulsesPerRev
	}
	if c.Tach.TickRateHz == 0 {
		c.Tach.TickRateHz = def.Tach.TickRateHz
	}
	if c.Tach.MaxRPM == 0 {
		c.Tach.MaxRPM = def.Tach.MaxRPM
	}
	if c.Tach.RedlineMargin == 0 {
		c.Tach.RedlineMargin = def.Tach.RedlineMargin
	}
	// The graduated ceiling is a divisor in the indicator scaling and must
	// stay positive; an inconsistent max/margin pair falls back to the
	// default pair.
	if c.Tach.Ceiling() <= 0 {
		c.Tach.MaxRPM = def.Tach.MaxRPM
		c.Tach.RedlineMargin = def.Tach.RedlineMargin
	}
	if c.Tach.Chip == "" {
		c.Tach.Chip = def.Tach.Chip
	}

	if c.Shift.Chip == "" {
		c.Shift.Chip = def.Shift.Chip
	}
	if len(c.Shift.SegmentPins) == 0 {
		c.Shift.SegmentPins = def.Shift.SegmentPins
	}

	if c.Flash.Period == 0 {
		c.Flash.Period = def.Flash.Period
	}

	if c.Mock.IdleRPM == 0 {
		c.Mock.IdleRPM = def.Mock.IdleRPM
	}
	if c.Mock.MaxRPM == 0 {
		c.Mock.MaxRPM = def.Mock.MaxRPM
	}
	if c.Mock.SweepPeriod == 0 {
		c.Mock.SweepPeriod = def.Mock.SweepPeriod
	}
	if c.Mock.ConfirmLatency == 0 {
		c.Mock.ConfirmLatency = def.Mock.ConfirmLatency
	}
	if c.Mock.SampleRate == 0 {
		c.Mock.SampleRate = def.Mock.SampleRate
	}
}
