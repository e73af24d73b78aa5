package bmp280

// Calibration holds the factory trimming words read once at init.
type Calibration struct {
	T1 uint16
	T2 int16
	T3 int16

	P1 uint16
	P2 int16
	P3 int16
	P4 int16
	P5 int16
	P6 int16
	P7 int16
	P8 int16
	P9 int16
}

// Little-endian word helpers (LSB first, as stored on the device).

func u16le(b []byte, off int) uint16 { return uint16(b[off]) | uint16(b[off+1])<<8 }
func s16le(b []byte, off int) int16  { return int16(u16le(b, off)) }

// ParseCalibration decodes the 24-byte block starting at 0x88.
// Word order: T1 T2 T3 P1 P2 .. P9.
func ParseCalibration(b []byte) (Calibration, error) {
	if len(b) != CalibLen {
		return Calibration{}, ErrInvalidArgument
	}
	return Calibration{
		T1: u16le(b, 0),
		T2: s16le(b, 2),
		T3: s16le(b, 4),
		P1: u16le(b, 6),
		P2: s16le(b, 8),
		P3: s16le(b, 10),
		P4: s16le(b, 12),
		P5: s16le(b, 14),
		P6: s16le(b, 16),
		P7: s16le(b, 18),
		P8: s16le(b, 20),
		P9: s16le(b, 22),
	}, nil
}
