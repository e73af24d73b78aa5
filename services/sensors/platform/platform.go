// Package platform opens the physical I2C bus for the current build target
// and provides the console the reporter writes to.
package platform

import "tinygo.org/x/drivers"

// BusConfig selects pins and clock for the sensor bus. Pins are GP numbers
// and only meaningful on RP2; Device is only meaningful on a Linux host.
type BusConfig struct {
	SDA         uint8
	SCL         uint8
	FrequencyHz uint32
	Device      string // e.g. "/dev/i2c-1"; "" opens the first bus
}

// Bus is an opened controller. Close releases the host device, if any.
type Bus struct {
	drivers.I2C
	closer func() error
}

func (b *Bus) Close() error {
	if b == nil || b.closer == nil {
		return nil
	}
	return b.closer()
}

// Wrap adopts an already configured bus (fakes, shared controllers).
func Wrap(i2c drivers.I2C) *Bus { return &Bus{I2C: i2c} }
