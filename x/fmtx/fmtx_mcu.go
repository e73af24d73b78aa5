//go:build rp2040 || rp2350

package fmtx

import (
	"io"

	"envsense-go/x/strconvx"
)

// Sprintf and Fprintf mirror fmt for the subset used on target:
// %s %d %x %X %f %v %% with an optional precision (%.2f).

func Sprintf(format string, a ...any) string {
	var b builder
	b.format(format, a...)
	return string(b.buf)
}

func Fprintf(w io.Writer, format string, a ...any) (int, error) {
	return w.Write([]byte(Sprintf(format, a...)))
}

type builder struct{ buf []byte }

func (b *builder) str(s string) { b.buf = append(b.buf, s...) }

func (b *builder) format(format string, args ...any) {
	ai := 0
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			b.buf = append(b.buf, c)
			continue
		}
		i++
		if i < len(format) && format[i] == '%' {
			b.buf = append(b.buf, '%')
			continue
		}
		prec := -1
		if i < len(format) && format[i] == '.' {
			prec = 0
			for i++; i < len(format) && '0' <= format[i] && format[i] <= '9'; i++ {
				prec = prec*10 + int(format[i]-'0')
			}
		}
		if i >= len(format) || ai >= len(args) {
			return
		}
		verb, arg := format[i], args[ai]
		ai++

		switch verb {
		case 'f':
			if prec < 0 {
				prec = 6
			}
			b.str(strconvx.FormatFloat(toF64(arg), 'f', prec, 64))
		case 'x':
			b.str(strconvx.FormatUint(uint64(toI64(arg)), 16))
		case 'X':
			b.str(upper(strconvx.FormatUint(uint64(toI64(arg)), 16)))
		case 'd':
			b.str(strconvx.FormatInt(toI64(arg), 10))
		default: // s, v
			b.any(arg)
		}
	}
}

func (b *builder) any(v any) {
	switch x := v.(type) {
	case string:
		b.str(x)
	case error:
		b.str(x.Error())
	case bool:
		if x {
			b.str("true")
		} else {
			b.str("false")
		}
	case float32, float64:
		b.str(strconvx.FormatFloat(toF64(x), 'f', 6, 64))
	case uint, uint8, uint16, uint32, uint64:
		b.str(strconvx.FormatUint(uint64(toI64(x)), 10))
	default:
		b.str(strconvx.FormatInt(toI64(x), 10))
	}
}

func toI64(v any) int64 {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case int64:
		return t
	case uint:
		return int64(t)
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		return int64(t)
	}
	return 0
}

func toF64(v any) float64 {
	switch t := v.(type) {
	case float32:
		return float64(t)
	case float64:
		return t
	}
	return float64(toI64(v))
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'f' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}
