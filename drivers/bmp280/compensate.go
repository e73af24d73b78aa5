package bmp280

// CompensateTemperature applies the 32-bit integer temperature formula.
// It returns hundredths of °C and the fine temperature carried into the
// pressure stage.
func CompensateTemperature(adcT int32, c Calibration) (centiC int32, fine int32) {
	t1 := int32(c.T1)
	t2 := int32(c.T2)
	t3 := int32(c.T3)

	var1 := (((adcT >> 3) - (t1 << 1)) * t2) >> 11
	d := (adcT >> 4) - t1
	var2 := (((d * d) >> 12) * t3) >> 14

	fine = var1 + var2
	centiC = (fine*5 + 128) >> 8
	return centiC, fine
}

// CompensatePressure applies the 64-bit integer pressure formula and returns
// pressure in Pa as unsigned Q24.8 (divide by 256 for Pa). A zero denominator
// yields 0.
func CompensatePressure(adcP int32, fine int32, c Calibration) uint32 {
	var1 := int64(fine) - 128000
	var2 := var1 * var1 * int64(c.P6)
	var2 += (var1 * int64(c.P5)) << 17
	var2 += int64(c.P4) << 35
	var1 = ((var1 * var1 * int64(c.P3)) >> 8) + ((var1 * int64(c.P2)) << 12)
	var1 = (((int64(1) << 47) + var1) * int64(c.P1)) >> 33
	if var1 == 0 {
		return 0
	}

	p := int64(1048576) - int64(adcP)
	p = (((p << 31) - var2) * 3125) / var1
	var1 = (int64(c.P9) * (p >> 13) * (p >> 13)) >> 25
	var2 = (int64(c.P8) * p) >> 19
	p = ((p + var1 + var2) >> 8) + (int64(c.P7) << 4)
	return uint32(p)
}

// HectoPascal converts a Q24.8 Pa value to hPa.
func HectoPascal(q uint32) float32 {
	return float32(float64(q) / 25600)
}

// raw20 assembles a 20-bit ADC value from msb, lsb and the top nibble of xlsb.
func raw20(msb, lsb, xlsb byte) int32 {
	return int32(msb)<<12 | int32(lsb)<<4 | int32(xlsb)>>4
}

// Decode turns a 6-byte data block into a calibrated Reading.
func Decode(b []byte, c Calibration) (Reading, error) {
	if len(b) != DataLen {
		return Reading{}, ErrInvalidArgument
	}
	adcP := raw20(b[0], b[1], b[2])
	adcT := raw20(b[3], b[4], b[5])

	centiC, fine := CompensateTemperature(adcT, c)
	q := CompensatePressure(adcP, fine, c)
	return Reading{
		Temperature: float32(centiC) / 100,
		Pressure:    HectoPascal(q),
	}, nil
}
