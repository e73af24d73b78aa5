package sensors

import (
	"time"

	"envsense-go/drivers/aht20"
	"envsense-go/services/sensors/platform"
	"envsense-go/services/sensors/transport"
)

// Board defaults (RP2 GP numbering).
const (
	DefaultSDA         = 4
	DefaultSCL         = 5
	DefaultFrequencyHz = 100_000
)

// Config is fixed at construction.
type Config struct {
	SDA          uint8
	SCL          uint8
	FrequencyHz  uint32
	Device       string        // host bus device; "" = first available
	HumidityAddr uint16        // AHT20 address
	Timeout      time.Duration // per-transaction bound

	// Sleep is handed to the AHT20 driver for its settle periods. nil = time.Sleep.
	Sleep func(time.Duration)

	// Logf receives diagnostic lines. nil = println with a [sensors] prefix.
	Logf func(format string, args ...any)
}

// DefaultConfig returns the board defaults.
func DefaultConfig() Config {
	return Config{
		SDA:          DefaultSDA,
		SCL:          DefaultSCL,
		FrequencyHz:  DefaultFrequencyHz,
		HumidityAddr: aht20.Address,
		Timeout:      transport.DefaultTimeout,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SDA == 0 && c.SCL == 0 {
		c.SDA, c.SCL = d.SDA, d.SCL
	}
	if c.FrequencyHz == 0 {
		c.FrequencyHz = d.FrequencyHz
	}
	if c.HumidityAddr == 0 {
		c.HumidityAddr = d.HumidityAddr
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	return c
}

func (c Config) busConfig() platform.BusConfig {
	return platform.BusConfig{
		SDA:         c.SDA,
		SCL:         c.SCL,
		FrequencyHz: c.FrequencyHz,
		Device:      c.Device,
	}
}
