//go:build linux && !(rp2040 || rp2350)

package platform

import (
	"io"
	"os"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// Open initialises periph host drivers and opens the named /dev/i2c bus.
// periph's i2c.Bus already has the drivers.I2C Tx shape.
func Open(cfg BusConfig) (*Bus, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	b, err := i2creg.Open(cfg.Device)
	if err != nil {
		return nil, err
	}
	if cfg.FrequencyHz > 0 {
		// Not every adapter supports changing speed; keep the kernel's setting then.
		_ = b.SetSpeed(physic.Frequency(cfg.FrequencyHz) * physic.Hertz)
	}
	return &Bus{I2C: b, closer: b.Close}, nil
}

// Console is stdout on a host.
func Console() io.Writer { return os.Stdout }
