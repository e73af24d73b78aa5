//go:build !(rp2040 || rp2350)

package main

import (
	"os"
	"path"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"envsense-go/services/reporter"
	"envsense-go/services/sensors"
)

const DefaultAppName = "envsense"
const DefaultConfigName = "config"
const DefaultDevice = "/dev/i2c-1"
const DefaultMetricsListen = ":9108"

var userHomeDir, _ = os.UserHomeDir()
var DefaultConfig = path.Join(userHomeDir, ".config", DefaultAppName, DefaultConfigName+".yaml")
var DefaultConfigSearchPath0 = path.Join(userHomeDir, ".config", DefaultAppName)

const DefaultConfigSearchPath1 = "/etc/" + DefaultAppName
const DefaultConfigSearchPath2 = "./"

type I2COpt struct {
	Device    string `yaml:"device" mapstructure:"device"`
	FreqHz    uint32 `yaml:"freq_hz" mapstructure:"freq_hz"`
	TimeoutMs int    `yaml:"timeout_ms" mapstructure:"timeout_ms"`
}

type ReportOpt struct {
	IntervalS float64 `yaml:"interval_s" mapstructure:"interval_s"`
}

type MetricsOpt struct {
	Listen string `yaml:"listen" mapstructure:"listen"` // "" disables the exporter
}

type Options struct {
	I2C     I2COpt     `yaml:"i2c" mapstructure:"i2c"`
	Report  ReportOpt  `yaml:"report" mapstructure:"report"`
	Metrics MetricsOpt `yaml:"metrics" mapstructure:"metrics"`
	Debug   bool       `yaml:"debug" mapstructure:"debug"`
}

func NewOptions() Options {
	return Options{
		I2C: I2COpt{
			Device:    DefaultDevice,
			FreqHz:    sensors.DefaultFrequencyHz,
			TimeoutMs: 1000,
		},
		Report:  ReportOpt{IntervalS: reporter.DefaultInterval.Seconds()},
		Metrics: MetricsOpt{Listen: DefaultMetricsListen},
	}
}

// Parse layers defaults, the config file, ENVSENSE_* env vars and flags.
func Parse(cmd *cobra.Command) (Options, error) {
	opt := NewOptions()

	v := viper.New()
	v.SetDefault("i2c.device", opt.I2C.Device)
	v.SetDefault("i2c.freq_hz", opt.I2C.FreqHz)
	v.SetDefault("i2c.timeout_ms", opt.I2C.TimeoutMs)
	v.SetDefault("report.interval_s", opt.Report.IntervalS)
	v.SetDefault("metrics.listen", opt.Metrics.Listen)
	v.SetDefault("debug", false)

	if f, err := cmd.Flags().GetString("config"); err == nil && f != "" {
		v.SetConfigFile(f)
	} else if f := os.Getenv("ENVSENSE_CONFIG"); f != "" {
		v.SetConfigFile(f)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigSearchPath0)
		v.AddConfigPath(DefaultConfigSearchPath1)
		v.AddConfigPath(DefaultConfigSearchPath2)
	}

	v.SetEnvPrefix(DefaultAppName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, flag := range map[string]string{
		"i2c.device":        "device",
		"report.interval_s": "interval",
		"metrics.listen":    "metrics",
		"debug":             "debug",
	} {
		if fl := cmd.Flags().Lookup(flag); fl != nil {
			_ = v.BindPFlag(key, fl)
		}
	}

	if err := v.ReadInConfig(); err == nil {
		log.Debugln("using config file:", v.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		return opt, err
	}

	if err := v.Unmarshal(&opt); err != nil {
		return opt, err
	}

	if opt.Debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
	return opt, nil
}

// SensorsConfig maps options onto the aggregator config.
func (o Options) SensorsConfig() sensors.Config {
	cfg := sensors.DefaultConfig()
	cfg.Device = o.I2C.Device
	cfg.FrequencyHz = o.I2C.FreqHz
	cfg.Timeout = time.Duration(o.I2C.TimeoutMs) * time.Millisecond
	cfg.Logf = log.Debugf
	return cfg
}

func (o Options) ReporterConfig() reporter.Config {
	return reporter.Config{
		Interval: time.Duration(o.Report.IntervalS * float64(time.Second)),
		Out:      os.Stdout,
	}
}

func (o Options) YAML() ([]byte, error) { return yaml.Marshal(o) }
