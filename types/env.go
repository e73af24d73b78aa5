package types

// ------------------------
// Environmental values
// ------------------------

type TemperatureValue struct {
	// Hundredths of °C (e.g. 2345 => 23.45°C).
	CentiC int32 `json:"centi_c"`
	TS     int64 `json:"ts_ms"`
}

type HumidityValue struct {
	// Hundredths of %RH (0..10000 for 0..100.00%).
	RHx100 uint16 `json:"rh_x100"`
	TS     int64  `json:"ts_ms"`
}

type PressureValue struct {
	// Pascals (e.g. 100653 => 1006.53 hPa).
	Pa uint32 `json:"pa"`
	TS int64  `json:"ts_ms"`
}

func (v TemperatureValue) Celsius() float64 { return float64(v.CentiC) / 100 }
func (v HumidityValue) Percent() float64    { return float64(v.RHx100) / 100 }
func (v PressureValue) HectoPascal() float64 { return float64(v.Pa) / 100 }
