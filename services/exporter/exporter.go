//go:build !(rp2040 || rp2350)

// Package exporter mirrors the retained env/ topics into Prometheus metrics
// on hosts.
package exporter

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"envsense-go/bus"
	"envsense-go/types"
)

type Exporter struct {
	Temperature *prometheus.GaugeVec
	Humidity    *prometheus.GaugeVec
	Pressure    *prometheus.GaugeVec
	Up          *prometheus.GaugeVec
	Readings    *prometheus.CounterVec
	Errors      *prometheus.CounterVec
	TempDist    *prometheus.HistogramVec
}

// New registers the collectors on reg (prometheus.DefaultRegisterer in the CLI).
func New(reg prometheus.Registerer) *Exporter {
	f := promauto.With(reg)
	return &Exporter{
		Temperature: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "envsense_temperature_celsius",
			Help: "Latest temperature reading",
		}, []string{"sensor"}),
		Humidity: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "envsense_humidity_percent",
			Help: "Latest relative humidity reading",
		}, []string{"sensor"}),
		Pressure: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "envsense_pressure_hpa",
			Help: "Latest barometric pressure reading",
		}, []string{"sensor"}),
		Up: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "envsense_sensor_up",
			Help: "1 when the last update of the sensor succeeded",
		}, []string{"sensor"}),
		Readings: f.NewCounterVec(prometheus.CounterOpts{
			Name: "envsense_readings_total",
			Help: "Readings published, by sensor and quantity",
		}, []string{"sensor", "kind"}),
		Errors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "envsense_sensor_errors_total",
			Help: "Failed updates, by sensor and error code",
		}, []string{"sensor", "code"}),
		TempDist: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "envsense_temperature_distribution_celsius",
			Help:    "Distribution of temperature readings",
			Buckets: []float64{-10, 0, 10, 20, 25, 30, 40, 60},
		}, []string{"sensor"}),
	}
}

// Run feeds every env/ message into Observe until ctx is cancelled.
func (e *Exporter) Run(ctx context.Context, conn *bus.Connection) {
	sub := conn.Subscribe(bus.T("env", bus.MultiWild))
	defer conn.Unsubscribe(sub)
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-sub.Channel():
			e.Observe(msg)
		}
	}
}

// Observe updates metrics from one message. Unknown topics and payloads are
// ignored.
func (e *Exporter) Observe(msg *bus.Message) {
	t := msg.Topic
	switch {
	case t.Len() == 3 && t.At(1) == "status":
		sensor, _ := t.At(2).(string)
		s, ok := msg.Payload.(types.SensorStatus)
		if !ok {
			return
		}
		if s.Link == types.LinkUp {
			e.Up.WithLabelValues(sensor).Set(1)
			return
		}
		e.Up.WithLabelValues(sensor).Set(0)
		e.Errors.WithLabelValues(sensor, s.Error).Inc()

	case t.Len() == 4 && t.At(3) == "value":
		sensor, _ := t.At(2).(string)
		switch v := msg.Payload.(type) {
		case types.TemperatureValue:
			e.Temperature.WithLabelValues(sensor).Set(v.Celsius())
			e.TempDist.WithLabelValues(sensor).Observe(v.Celsius())
			e.Readings.WithLabelValues(sensor, string(types.KindTemperature)).Inc()
		case types.HumidityValue:
			e.Humidity.WithLabelValues(sensor).Set(v.Percent())
			e.Readings.WithLabelValues(sensor, string(types.KindHumidity)).Inc()
		case types.PressureValue:
			e.Pressure.WithLabelValues(sensor).Set(v.HectoPascal())
			e.Readings.WithLabelValues(sensor, string(types.KindPressure)).Inc()
		}
	}
}
