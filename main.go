// Firmware entry: bring up the sensor bus, initialise the AHT20 and BMP280,
// then report every few seconds.
package main

import (
	"context"
	"time"

	"envsense-go/bus"
	"envsense-go/errcode"
	"envsense-go/services/config"
	"envsense-go/services/reporter"
	"envsense-go/services/sensors"
	"envsense-go/services/sensors/platform"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("[main] boot")

	agg := sensors.NewFromFactory(platform.Open, sensors.DefaultConfig())
	if err := agg.Init(); err != nil {
		println("[main] failed to initialize sensors:", string(errcode.Of(err)), err.Error())
		return
	}

	ctx := context.Background()
	b := bus.NewBus(4)
	agg.Attach(b.NewConnection("sensors"))

	// Retained config/reporter reaches the reporter whenever it subscribes.
	config.New(config.DefaultBoard).Start(ctx, b.NewConnection("config"))

	rep := reporter.New(agg, reporter.Config{Out: platform.Console()})
	_ = rep.Start(ctx, b.NewConnection("reporter"))
	println("[main] application started")

	select {}
}
