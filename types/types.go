package types

// Link is the health reported for a sensor.
type Link string

const (
	LinkUp       Link = "up"
	LinkDown     Link = "down"
	LinkDegraded Link = "degraded"
)

// SensorStatus is retained on env/status/<sensor>.
type SensorStatus struct {
	Link  Link   `json:"link"`
	Addr  uint16 `json:"addr,omitempty"`
	TS    int64  `json:"ts_ms"`
	Error string `json:"error,omitempty"` // errcode string when not up
}

// Kind names the measured quantity in env/<kind>/<sensor>/value.
type Kind string

const (
	KindTemperature Kind = "temperature"
	KindHumidity    Kind = "humidity"
	KindPressure    Kind = "pressure"
)

// Sensor names.
const (
	SensorAHT20  = "aht20"
	SensorBMP280 = "bmp280"
)
