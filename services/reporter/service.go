// Package reporter periodically refreshes the sensor aggregate and prints it.
package reporter

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"envsense-go/bus"
	"envsense-go/errcode"
	"envsense-go/services/sensors"
	"envsense-go/x/fmtx"
	"envsense-go/x/mathx"
)

var topicConfigReporter = bus.T("config", "reporter")

// Interval bounds accepted from config/reporter.
const (
	DefaultInterval = 5 * time.Second
	MinInterval     = time.Second
	MaxInterval     = time.Hour
)

// Updater is the aggregator surface the reporter needs.
type Updater interface {
	Update() error
	Current() sensors.AggregateReading
}

type Config struct {
	Interval time.Duration
	Out      io.Writer
}

type Service struct {
	agg      Updater
	out      io.Writer
	interval atomic.Int64 // time.Duration
}

// New builds a reporter. A zero Interval means DefaultInterval; a nil Out
// discards report lines (failures are still logged).
func New(agg Updater, cfg Config) *Service {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}
	s := &Service{agg: agg, out: cfg.Out}
	s.setInterval(cfg.Interval)
	return s
}

func (s *Service) setInterval(d time.Duration) time.Duration {
	d = mathx.Clamp(d, MinInterval, MaxInterval)
	s.interval.Store(int64(d))
	return d
}

// Interval returns the current reporting period.
func (s *Service) Interval() time.Duration { return time.Duration(s.interval.Load()) }

// Tick runs one update and prints every reading refreshed by it. Nothing is
// printed until both sensors have produced a first reading.
func (s *Service) Tick() error {
	err := s.agg.Update()
	humOK, pressOK := err == nil, err == nil
	if err != nil {
		println("[reporter] failed to update sensor data:", string(errcode.Of(err)))
		var ue *sensors.UpdateError
		if errors.As(err, &ue) {
			humOK, pressOK = ue.Humidity == nil, ue.Pressure == nil
		}
	}

	r := s.agg.Current()
	if !r.Valid() {
		println("[reporter] waiting for a first reading from both sensors")
		return err
	}
	if humOK {
		fmtx.Fprintf(s.out, "AHT20 - Temperature: %.2f°C, Humidity: %.2f%%\n",
			r.Humidity.Temperature, r.Humidity.Humidity)
	}
	if pressOK {
		fmtx.Fprintf(s.out, "BMP280 - Temperature: %.2f°C, Pressure: %.2f hPa\n",
			r.Pressure.Temperature, r.Pressure.Pressure)
	}
	return err
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigReporter)
	defer conn.Unsubscribe(cfgSub)

	s.Tick()
	tick := time.NewTicker(s.Interval())
	defer tick.Stop()

	// loop until context is cancelled, respond to tick and config changes
	for {
		select {
		case <-ctx.Done():
			println("[reporter] stopping")
			return
		case <-tick.C:
			s.Tick()
		case msg := <-cfgSub.Channel():
			if iv, ok := intervalFrom(msg.Payload); ok {
				d := s.setInterval(iv)
				tick.Reset(d)
				println("[reporter] interval set to", int(d/time.Second), "seconds")
			}
		}
	}
}

// intervalFrom accepts {"interval": seconds} as decoded JSON or a Go map.
func intervalFrom(p any) (time.Duration, bool) {
	m, ok := p.(map[string]any)
	if !ok {
		return 0, false
	}
	switch v := m["interval"].(type) {
	case float64:
		return time.Duration(v * float64(time.Second)), true
	case int:
		return time.Duration(v) * time.Second, true
	case time.Duration:
		return v, true
	}
	return 0, false
}

// Start runs the reporting loop until ctx is cancelled. The first report is
// produced immediately.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}
