//go:build rp2040 || rp2350

package strconvx

// Allocation-light versions with strconv's signatures. Bases 2..36.
// FormatFloat only does fixed notation and is not IEEE-exact.

func Itoa(i int) string { return FormatInt(int64(i), 10) }

func FormatInt(i int64, base int) string {
	if i < 0 {
		return "-" + FormatUint(uint64(-i), base)
	}
	return FormatUint(uint64(i), base)
}

func FormatUint(u uint64, base int) string {
	if base < 2 || base > 36 {
		base = 10
	}
	if u == 0 {
		return "0"
	}
	const digits = "0123456789abcdefghijklmnopqrstuvwxyz"
	var buf [64]byte
	i := len(buf)
	b := uint64(base)
	for u > 0 {
		i--
		buf[i] = digits[u%b]
		u /= b
	}
	return string(buf[i:])
}

// FormatFloat renders f as [-]ddd.ddd with prec fractional digits, rounding
// half away from zero. fmt and bitSize are accepted for parity only.
func FormatFloat(f float64, _ byte, prec, _ int) string {
	if prec < 0 {
		prec = 6
	}
	neg := f < 0
	if neg {
		f = -f
	}
	scale := uint64(1)
	for i := 0; i < prec; i++ {
		scale *= 10
	}
	n := uint64(f*float64(scale) + 0.5)
	ip, fp := n/scale, n%scale

	s := FormatUint(ip, 10)
	if prec > 0 {
		fs := FormatUint(fp, 10)
		pad := make([]byte, 0, prec)
		for len(pad)+len(fs) < prec {
			pad = append(pad, '0')
		}
		s += "." + string(pad) + fs
	}
	if neg && n != 0 {
		return "-" + s
	}
	return s
}
