// Package bmp280 provides a driver for the BMP280 barometric pressure and
// temperature sensor, using the datasheet's integer compensation.
//
//	d := bmp280.New(bus)
//	if err := d.Init(); err != nil { ... } // probe, normal mode, calibration
//	r, err := d.Read()
//
// The compensation stages are exported as pure functions so they can be
// checked against datasheet vectors without a bus.
package bmp280

import (
	"errors"

	"tinygo.org/x/drivers"
)

var (
	// ErrNotFound is returned when no candidate address answers with ChipID.
	ErrNotFound = errors.New("bmp280: device not found")
	// ErrNoCalibration is returned by Read before a successful Init.
	ErrNoCalibration = errors.New("bmp280: calibration not loaded")
	// ErrInvalidArgument is returned when a decode buffer is the wrong size.
	ErrInvalidArgument = errors.New("bmp280: invalid argument")
)

// Reading is a calibrated measurement.
type Reading struct {
	Temperature float32 // °C
	Pressure    float32 // hPa
}

// Device wraps an I2C connection to a BMP280. Address and calibration are
// fixed for the session once Init succeeds.
type Device struct {
	bus  drivers.I2C
	addr uint16

	calib  Calibration
	loaded bool

	w [2]byte
	r [CalibLen]byte
}

// New creates a Device. The I2C bus must already be configured; the device is
// not touched until Init.
func New(bus drivers.I2C) *Device {
	return &Device{bus: bus}
}

// Probe reads the identity register at each candidate address in order and
// returns the first one that reports ChipID. A bus error on a candidate is
// treated as absence.
func Probe(bus drivers.I2C) (uint16, error) {
	w := []byte{regChipID}
	var id [1]byte
	for _, addr := range Candidates() {
		if err := bus.Tx(addr, w, id[:]); err != nil {
			continue
		}
		if id[0] == ChipID {
			return addr, nil
		}
	}
	return 0, ErrNotFound
}

// Init discovers the device, selects normal mode and loads calibration.
// Any failure leaves the device unconfigured.
func (d *Device) Init() error {
	d.loaded = false

	addr, err := Probe(d.bus)
	if err != nil {
		return err
	}

	d.w[0], d.w[1] = regCtrl, ctrlNormal
	if err := d.bus.Tx(addr, d.w[:2], nil); err != nil {
		return err
	}

	d.w[0] = regCalib
	if err := d.bus.Tx(addr, d.w[:1], d.r[:CalibLen]); err != nil {
		return err
	}
	c, err := ParseCalibration(d.r[:CalibLen])
	if err != nil {
		return err
	}

	d.addr = addr
	d.calib = c
	d.loaded = true
	return nil
}

// Address returns the discovered address, or 0 before Init.
func (d *Device) Address() uint16 { return d.addr }

// Calibration returns the loaded coefficients and whether Init has completed.
func (d *Device) Calibration() (Calibration, bool) { return d.calib, d.loaded }

// Read fetches one data block and decodes it.
func (d *Device) Read() (Reading, error) {
	if !d.loaded {
		return Reading{}, ErrNoCalibration
	}
	d.w[0] = regData
	if err := d.bus.Tx(d.addr, d.w[:1], d.r[:DataLen]); err != nil {
		return Reading{}, err
	}
	return Decode(d.r[:DataLen], d.calib)
}
