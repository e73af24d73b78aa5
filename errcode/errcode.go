package errcode

import "errors"

// Code is a stable, bus-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK              Code = "ok"
	BusError        Code = "bus_error"
	Timeout         Code = "timeout"
	Busy            Code = "busy"
	DeviceNotFound  Code = "device_not_found"
	InvalidArgument Code = "invalid_argument"
	PartialFailure  Code = "partial_failure"
	NotConfigured   Code = "not_configured"
	Unsupported     Code = "unsupported"

	Error Code = "error" // generic fallback
)

// E keeps an operation name and a cause alongside a Code.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	switch {
	case e.Msg != "":
		return s + ": " + e.Msg
	case e.Err != nil:
		return s + ": " + e.Err.Error()
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Is lets errors.Is(err, errcode.Timeout) match an *E carrying that code.
func (e *E) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.C
}

// Wrap attaches code and op to err. A nil err stays nil.
func Wrap(c Code, op string, err error) error {
	if err == nil {
		return nil
	}
	return &E{C: c, Op: op, Err: err}
}

// Of extracts a Code from an error chain, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	type coder interface{ Code() Code }
	var x coder
	if errors.As(err, &x) {
		return x.Code()
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	return Error
}

// IsTransport reports whether err came from the bus rather than from a device
// answering with unexpected data. Callers treat both kinds identically.
func IsTransport(err error) bool {
	switch Of(err) {
	case BusError, Timeout, Busy:
		return true
	}
	return false
}
