//go:build !(rp2040 || rp2350)

package exporter

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"envsense-go/bus"
	"envsense-go/types"
)

func msg(payload any, tokens ...any) *bus.Message {
	return &bus.Message{Topic: bus.T(tokens...), Payload: payload, Retained: true}
}

func TestObserveValues(t *testing.T) {
	e := New(prometheus.NewRegistry())

	e.Observe(msg(types.TemperatureValue{CentiC: 2508}, "env", "temperature", "bmp280", "value"))
	e.Observe(msg(types.HumidityValue{RHx100: 4120}, "env", "humidity", "aht20", "value"))
	e.Observe(msg(types.PressureValue{Pa: 100653}, "env", "pressure", "bmp280", "value"))

	if got := testutil.ToFloat64(e.Temperature.WithLabelValues("bmp280")); got != 25.08 {
		t.Fatalf("temperature = %v", got)
	}
	if got := testutil.ToFloat64(e.Humidity.WithLabelValues("aht20")); got != 41.2 {
		t.Fatalf("humidity = %v", got)
	}
	if got := testutil.ToFloat64(e.Pressure.WithLabelValues("bmp280")); got != 1006.53 {
		t.Fatalf("pressure = %v", got)
	}
	if got := testutil.ToFloat64(e.Readings.WithLabelValues("bmp280", "pressure")); got != 1 {
		t.Fatalf("readings counter = %v", got)
	}
	if got := testutil.CollectAndCount(e.TempDist); got != 1 {
		t.Fatalf("histogram series = %d", got)
	}
}

func TestObserveStatus(t *testing.T) {
	e := New(prometheus.NewRegistry())

	e.Observe(msg(types.SensorStatus{Link: types.LinkUp}, "env", "status", "aht20"))
	e.Observe(msg(types.SensorStatus{Link: types.LinkDown, Error: "timeout"}, "env", "status", "bmp280"))
	e.Observe(msg(types.SensorStatus{Link: types.LinkDown, Error: "timeout"}, "env", "status", "bmp280"))

	if got := testutil.ToFloat64(e.Up.WithLabelValues("aht20")); got != 1 {
		t.Fatalf("aht20 up = %v", got)
	}
	if got := testutil.ToFloat64(e.Up.WithLabelValues("bmp280")); got != 0 {
		t.Fatalf("bmp280 up = %v", got)
	}
	if got := testutil.ToFloat64(e.Errors.WithLabelValues("bmp280", "timeout")); got != 2 {
		t.Fatalf("bmp280 errors = %v", got)
	}
}

func TestObserveIgnoresUnknown(t *testing.T) {
	e := New(prometheus.NewRegistry())
	e.Observe(msg("noise", "env", "temperature", "aht20", "value"))
	e.Observe(msg(types.SensorStatus{}, "env", "other"))
	if got := testutil.CollectAndCount(e.Readings); got != 0 {
		t.Fatalf("unexpected series: %d", got)
	}
}

func TestRunConsumesRetained(t *testing.T) {
	b := bus.NewBus(8)
	pub := b.NewConnection("sensors")
	pub.Publish(pub.NewMessage(bus.T("env", "humidity", "aht20", "value"), types.HumidityValue{RHx100: 5000}, true))

	e := New(prometheus.NewRegistry())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go e.Run(ctx, b.NewConnection("exporter"))

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if testutil.ToFloat64(e.Humidity.WithLabelValues("aht20")) == 50 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("retained humidity not exported")
}
