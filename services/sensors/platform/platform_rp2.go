//go:build rp2040 || rp2350

package platform

import (
	"io"
	"machine"
	"os"

	"github.com/jangala-dev/tinygo-uartx/uartx"
)

// Open configures I2C0 on the requested pins. The controller cannot be
// released, so the returned Bus has no closer.
func Open(cfg BusConfig) (*Bus, error) {
	sda := machine.Pin(cfg.SDA)
	scl := machine.Pin(cfg.SCL)
	sda.Configure(machine.PinConfig{Mode: machine.PinI2C})
	scl.Configure(machine.PinConfig{Mode: machine.PinI2C})
	if err := machine.I2C0.Configure(machine.I2CConfig{
		SCL:       scl,
		SDA:       sda,
		Frequency: cfg.FrequencyHz,
	}); err != nil {
		return nil, err
	}
	return &Bus{I2C: machine.I2C0}, nil
}

const (
	consoleBaud = 115200
	consoleTX   = 0 // GP0
	consoleRX   = 1 // GP1
)

// Console writes to the default serial (USB CDC) and mirrors onto UART0
// (GP0/GP1).
func Console() io.Writer {
	u := uartx.UART0
	_ = u.Configure(uartx.UARTConfig{
		BaudRate: consoleBaud,
		TX:       machine.Pin(consoleTX),
		RX:       machine.Pin(consoleRX),
	})
	return io.MultiWriter(os.Stdout, u)
}
