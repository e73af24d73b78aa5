// Package aht20 provides a driver for the AHT20 temperature/humidity sensor.
// It exposes the device's fixed-timing measurement cycle:
//
//	d.Init()           // initialise + calibrate, then settle for 500 ms
//	r, err := d.Read() // trigger, settle for 100 ms, fetch 6 bytes
//
// NOTE: I2C.Tx with only r provided MUST perform a plain read with no register
// pointer; the AHT20 streams its measurement frame from the first byte.
//
// Decoding is split out (Decode, Sample) so it can be exercised without a bus.
package aht20

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

// I2C address.
const Address = 0x38

// Commands (per datasheet).
const (
	cmdInitialize = 0xBE
	cmdTrigger    = 0xAC
	argCalibrate  = 0x08
	argMeasure    = 0x33

	statusBusy       = 0x80
	statusCalibrated = 0x08
)

// Settle periods required by the hardware, not by the bus.
const (
	InitSettle    = 500 * time.Millisecond
	MeasureSettle = 100 * time.Millisecond
)

// FrameLen is the size of one measurement frame: status + 5 data bytes.
const FrameLen = 6

// Raw values are 20-bit fractions of full scale.
const fullScale = 1 << 20

// ErrInvalidArgument is returned when a decode buffer is the wrong size.
var ErrInvalidArgument = errors.New("aht20: invalid argument")

// Device wraps an I2C connection to an AHT20 device.
type Device struct {
	bus     drivers.I2C
	Address uint16

	// Sleep suspends the caller for a settle period. Defaults to time.Sleep.
	Sleep func(time.Duration)

	buf [FrameLen]byte // reuse buffer to avoid allocations
}

// New creates a new AHT20 connection. The I2C bus must already be configured.
// This function only creates the Device object; it does not touch the device.
func New(bus drivers.I2C) *Device {
	return &Device{
		bus:     bus,
		Address: Address,
		Sleep:   time.Sleep,
	}
}

// Init sends the initialise/calibrate command and waits for the calibration
// cycle to finish. Bus errors are returned as-is.
func (d *Device) Init() error {
	if err := d.bus.Tx(d.Address, []byte{cmdInitialize, argCalibrate, 0x00}, nil); err != nil {
		return err
	}
	d.sleep(InitSettle)
	return nil
}

// Read triggers one measurement, waits for conversion and decodes the frame.
// No partial reading is produced when either bus phase fails.
func (d *Device) Read() (Reading, error) {
	if err := d.bus.Tx(d.Address, []byte{cmdTrigger, argMeasure, 0x00}, nil); err != nil {
		return Reading{}, err
	}
	d.sleep(MeasureSettle)

	data := d.buf[:]
	if err := d.bus.Tx(d.Address, nil, data); err != nil {
		return Reading{}, err
	}
	s, err := Decode(data)
	if err != nil {
		return Reading{}, err
	}
	return s.Reading(), nil
}

func (d *Device) sleep(p time.Duration) {
	if d.Sleep != nil {
		d.Sleep(p)
		return
	}
	time.Sleep(p)
}

// Sample holds one decoded raw frame.
type Sample struct {
	Status      byte
	RawHumidity uint32
	RawTemp     uint32
}

// Decode splits a 6-byte frame into its two 20-bit fields. Humidity spans
// bytes 1..3 (upper nibble of byte 3); temperature takes the lower nibble of
// byte 3 plus bytes 4..5.
func Decode(frame []byte) (Sample, error) {
	if len(frame) != FrameLen {
		return Sample{}, ErrInvalidArgument
	}
	return Sample{
		Status:      frame[0],
		RawHumidity: (uint32(frame[1])<<16 | uint32(frame[2])<<8 | uint32(frame[3])) >> 4,
		RawTemp:     uint32(frame[3]&0x0F)<<16 | uint32(frame[4])<<8 | uint32(frame[5]),
	}, nil
}

// Busy reports the status busy bit. Read relies on MeasureSettle instead.
func (s Sample) Busy() bool { return s.Status&statusBusy != 0 }

// Calibrated reports the status calibration-enabled bit.
func (s Sample) Calibrated() bool { return s.Status&statusCalibrated != 0 }

// RelHumidity returns relative humidity in percent.
func (s Sample) RelHumidity() float32 {
	return float32(float64(s.RawHumidity) * 100 / fullScale)
}

// Celsius returns temperature in °C.
func (s Sample) Celsius() float32 {
	return float32(float64(s.RawTemp)*200/fullScale - 50)
}

// Fixed-point helpers, tenths of units.

func (s Sample) DeciRelHumidity() int32 {
	return int32((int64(s.RawHumidity) * 1000) / fullScale)
}

func (s Sample) DeciCelsius() int32 {
	return int32((int64(s.RawTemp)*2000)/fullScale) - 500
}

// Reading converts the raw fields to physical units.
func (s Sample) Reading() Reading {
	return Reading{Temperature: s.Celsius(), Humidity: s.RelHumidity()}
}

// Reading is a calibrated measurement.
type Reading struct {
	Temperature float32 // °C
	Humidity    float32 // %RH
}
