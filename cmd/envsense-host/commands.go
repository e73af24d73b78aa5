//go:build !(rp2040 || rp2350)

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"envsense-go/bus"
	"envsense-go/errcode"
	"envsense-go/services/exporter"
	"envsense-go/services/reporter"
	"envsense-go/services/sensors"
	"envsense-go/services/sensors/platform"
)

var RootCmd = &cobra.Command{
	Use:           "envsense-host",
	Short:         "AHT20 + BMP280 environmental sensing on a Linux I2C bus",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func commonFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "configuration file path")
	cmd.Flags().StringP("device", "d", DefaultDevice, "I2C bus device")
	cmd.Flags().Bool("debug", false, "toggle debug logging")
}

var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "initialise both sensors and report periodically",
	Long: `run initialises the AHT20 and BMP280 and prints a report every interval.
Configuration is read, in order of precedence, from flags, ENVSENSE_* environment
variables, the file given by --config or ENVSENSE_CONFIG, and finally
$HOME/.config/envsense/config.yaml, /etc/envsense/config.yaml or ./config.yaml.
`,
	Example: `  envsense-host run --device /dev/i2c-1 --interval 10`,
	RunE:    runE,
}

var ScanCmd = &cobra.Command{
	Use:     "scan",
	Short:   "list addresses that acknowledge on the bus",
	Example: `  envsense-host scan -d /dev/i2c-0`,
	RunE:    scanE,
}

var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "write a configuration template",
	Example: `  envsense-host init --print
  envsense-host init -o /path/to/config.yaml`,
	RunE: initE,
}

func newAggregator(opt Options) *sensors.Aggregator {
	return sensors.NewFromFactory(platform.Open, opt.SensorsConfig())
}

func runE(cmd *cobra.Command, _ []string) error {
	opt, err := Parse(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	agg := newAggregator(opt)
	defer agg.Close()

	if err := agg.Init(); err != nil {
		log.WithField("code", errcode.Of(err)).Errorln("failed to initialize sensors:", err)
		return err
	}
	log.WithField("bmp280", fmt.Sprintf("0x%02X", agg.PressureAddress())).Infoln("sensors ready")

	b := bus.NewBus(8)
	agg.Attach(b.NewConnection("sensors"))

	if opt.Metrics.Listen != "" {
		exp := exporter.New(prometheus.DefaultRegisterer)
		go exp.Run(ctx, b.NewConnection("exporter"))

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: opt.Metrics.Listen, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			log.Infoln("metrics on", opt.Metrics.Listen)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorln("metrics server:", err)
			}
		}()
		defer srv.Close()
	}

	rep := reporter.New(agg, opt.ReporterConfig())
	if err := rep.Start(ctx, b.NewConnection("reporter")); err != nil {
		return err
	}
	log.Infoln("application started, interval", rep.Interval())

	<-ctx.Done()
	log.Infoln("shutting down")
	return nil
}

func scanE(cmd *cobra.Command, _ []string) error {
	opt, err := Parse(cmd)
	if err != nil {
		return err
	}
	agg := newAggregator(opt)
	defer agg.Close()

	if err := agg.SetupBus(); err != nil {
		return err
	}
	log.Infoln("scanning", opt.I2C.Device)
	found, err := agg.Scan()
	for _, addr := range found {
		log.Infof("device found at address 0x%02X", addr)
	}
	if err != nil {
		return err
	}
	if len(found) == 0 {
		log.Infoln("no devices found on I2C bus")
		return nil
	}
	log.Infof("found %d devices on I2C bus", len(found))
	return nil
}

func initE(cmd *cobra.Command, _ []string) error {
	opt, err := Parse(cmd)
	if err != nil {
		return err
	}
	buf, err := opt.YAML()
	if err != nil {
		return err
	}
	if p, _ := cmd.Flags().GetBool("print"); p {
		_, err = os.Stdout.Write(buf)
		return err
	}

	out, _ := cmd.Flags().GetString("output")
	overwrite, _ := cmd.Flags().GetBool("yes")
	if _, err := os.Stat(out); err == nil && !overwrite {
		return fmt.Errorf("configuration %s already exists, pass --yes to overwrite", out)
	}
	if err := os.MkdirAll(path.Dir(out), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(out, buf, 0o644); err != nil {
		return err
	}
	log.Infoln("configuration written to", out)
	return nil
}

func getRootCmd() *cobra.Command {
	commonFlags(RunCmd)
	RunCmd.Flags().Float64("interval", reporter.DefaultInterval.Seconds(), "report interval in seconds")
	RunCmd.Flags().String("metrics", DefaultMetricsListen, "Prometheus listen address, empty to disable")
	RootCmd.AddCommand(RunCmd)

	commonFlags(ScanCmd)
	RootCmd.AddCommand(ScanCmd)

	commonFlags(InitCmd)
	InitCmd.Flags().Bool("print", false, "print config to stdout")
	InitCmd.Flags().BoolP("yes", "y", false, "overwrite")
	InitCmd.Flags().StringP("output", "o", DefaultConfig, "output path")
	RootCmd.AddCommand(InitCmd)

	return RootCmd
}
