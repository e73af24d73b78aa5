// Package sensors aggregates the AHT20 and BMP280 behind one bus owner and
// holds the latest reading of each.
//
//	agg := sensors.NewFromFactory(platform.Open, sensors.DefaultConfig())
//	if err := agg.Init(); err != nil { ... }
//	err := agg.Update() // *UpdateError when one sensor failed
//	r := agg.Current()
package sensors

import (
	"errors"
	"sync"

	"tinygo.org/x/drivers"

	"envsense-go/bus"
	"envsense-go/drivers/aht20"
	"envsense-go/drivers/bmp280"
	"envsense-go/errcode"
	"envsense-go/services/sensors/platform"
	"envsense-go/services/sensors/transport"
	"envsense-go/x/fmtx"
	"envsense-go/x/timex"
)

// BusFactory opens the physical bus. platform.Open is the production factory.
type BusFactory func(platform.BusConfig) (*platform.Bus, error)

// AggregateReading is the latest value from each sensor. A TS of 0 means that
// sensor has not produced a reading yet.
type AggregateReading struct {
	Humidity   aht20.Reading
	HumidityTS int64 // ms

	Pressure   bmp280.Reading
	PressureTS int64 // ms
}

// Valid reports whether both sensors have produced at least one reading.
func (r AggregateReading) Valid() bool { return r.HumidityTS != 0 && r.PressureTS != 0 }

// Aggregator owns the bus and both driver sessions.
type Aggregator struct {
	cfg     Config
	factory BusFactory

	mu    sync.Mutex
	hw    *platform.Bus
	owner *transport.Owner
	hum   *aht20.Device
	press *bmp280.Device
	ready bool
	cur   AggregateReading

	conn *bus.Connection
}

// New uses defaults around an already configured bus.
func New(b drivers.I2C) *Aggregator { return NewWithConfig(b, DefaultConfig()) }

// NewWithConfig uses cfg around an already configured bus.
func NewWithConfig(b drivers.I2C, cfg Config) *Aggregator {
	return NewFromFactory(func(platform.BusConfig) (*platform.Bus, error) {
		return platform.Wrap(b), nil
	}, cfg)
}

// NewFromFactory defers bus setup to f, called once by the first Init or SetupBus.
func NewFromFactory(f BusFactory, cfg Config) *Aggregator {
	return &Aggregator{cfg: cfg.withDefaults(), factory: f}
}

// SetupBus opens the bus and starts its owner. Calling it again after a
// success is a no-op.
func (a *Aggregator) SetupBus() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.setupBusLocked()
}

func (a *Aggregator) setupBusLocked() error {
	if a.owner != nil {
		return nil
	}
	hw, err := a.factory(a.cfg.busConfig())
	if err != nil {
		return errcode.Wrap(errcode.Of(err), "bus setup", err)
	}
	a.hw = hw
	a.owner = transport.NewOwner(hw, a.cfg.Timeout)

	a.hum = aht20.New(a.owner)
	a.hum.Address = a.cfg.HumidityAddr
	if a.cfg.Sleep != nil {
		a.hum.Sleep = a.cfg.Sleep
	}
	a.press = bmp280.New(a.owner)
	a.logf("bus up (sda=%d scl=%d %d Hz)", a.cfg.SDA, a.cfg.SCL, a.cfg.FrequencyHz)
	return nil
}

// Init sets up the bus, then initialises the AHT20, then the BMP280. The
// first failure is returned and later steps are skipped.
func (a *Aggregator) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.ready = false
	if err := a.setupBusLocked(); err != nil {
		return err
	}
	if err := a.hum.Init(); err != nil {
		a.logf("aht20 init failed: %s", errcode.Of(err))
		return err
	}
	if err := a.press.Init(); err != nil {
		a.logf("bmp280 init failed: %s", errcode.Of(err))
		if errors.Is(err, bmp280.ErrNotFound) {
			return errcode.Wrap(errcode.DeviceNotFound, "bmp280 init", err)
		}
		return err
	}
	a.ready = true
	a.logf("bmp280 at 0x%x", a.press.Address())
	return nil
}

// Update reads both sensors in turn. A failing sensor keeps its previous
// reading while the other is still refreshed; the failure is reported as
// *UpdateError.
func (a *Aggregator) Update() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.ready {
		return errcode.NotConfigured
	}

	var ue UpdateError
	if r, err := a.hum.Read(); err != nil {
		ue.Humidity = err
	} else {
		a.cur.Humidity = r
		a.cur.HumidityTS = nowMs()
	}
	if r, err := a.press.Read(); err != nil {
		ue.Pressure = err
	} else {
		a.cur.Pressure = r
		a.cur.PressureTS = nowMs()
	}

	a.publishLocked(&ue)

	if ue.Humidity != nil || ue.Pressure != nil {
		return &ue
	}
	return nil
}

// Current returns a copy of the latest readings.
func (a *Aggregator) Current() AggregateReading {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cur
}

// Scan lists responding bus addresses. The bus must be set up.
func (a *Aggregator) Scan() ([]uint16, error) {
	a.mu.Lock()
	owner := a.owner
	a.mu.Unlock()
	if owner == nil {
		return nil, errcode.NotConfigured
	}
	return owner.Scan()
}

// PressureAddress is the discovered BMP280 address, 0 before a successful Init.
func (a *Aggregator) PressureAddress() uint16 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.press == nil {
		return 0
	}
	return a.press.Address()
}

// Close stops the bus owner and releases the bus. The aggregator can be set
// up again afterwards.
func (a *Aggregator) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.owner == nil {
		return nil
	}
	a.owner.Close()
	err := a.hw.Close()
	a.owner, a.hw, a.hum, a.press = nil, nil, nil, nil
	a.ready = false
	return err
}

func (a *Aggregator) logf(format string, args ...any) {
	if a.cfg.Logf != nil {
		a.cfg.Logf(format, args...)
		return
	}
	println("[sensors]", fmtx.Sprintf(format, args...))
}

// UpdateError reports which sensor(s) failed during one Update.
type UpdateError struct {
	Humidity error
	Pressure error
}

func (e *UpdateError) Error() string {
	s := string(errcode.PartialFailure)
	if e.Humidity != nil {
		s += ": aht20: " + e.Humidity.Error()
	}
	if e.Pressure != nil {
		s += ": bmp280: " + e.Pressure.Error()
	}
	return s
}

func (e *UpdateError) Code() errcode.Code { return errcode.PartialFailure }

func (e *UpdateError) Unwrap() []error {
	var out []error
	if e.Humidity != nil {
		out = append(out, e.Humidity)
	}
	if e.Pressure != nil {
		out = append(out, e.Pressure)
	}
	return out
}

// nowMs is replaceable in tests.
var nowMs = timex.NowMs
