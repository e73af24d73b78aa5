package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi]. If lo > hi, the bounds are swapped.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RoundScaled returns round(v*scale) half away from zero, for fixed-point
// bus payloads (hundredths, pascals).
func RoundScaled[T ~int32 | ~int64 | ~uint16 | ~uint32](v float64, scale float64) T {
	x := v * scale
	if x < 0 {
		return T(x - 0.5)
	}
	return T(x + 0.5)
}
