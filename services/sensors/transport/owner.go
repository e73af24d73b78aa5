// Package transport serializes access to one I2C bus behind a single worker
// goroutine and exposes it as a tinygo drivers.I2C.
package transport

import (
	"sync"
	"time"

	"tinygo.org/x/drivers"

	"envsense-go/errcode"
)

// DefaultTimeout bounds both enqueue and completion of a transaction.
const DefaultTimeout = 1000 * time.Millisecond

// 7-bit address range probed by Scan (reserved 0x00 and 0x7F excluded).
const (
	scanFirst = 0x01
	scanLast  = 0x7E
)

// request posted to the bus worker
type request struct {
	addr uint16
	w, r []byte
	done chan error // buffered(1); worker replies best-effort
}

// Owner is the single logical owner of a bus. All transactions run on one
// worker goroutine in submission order.
type Owner struct {
	hw      drivers.I2C
	timeout time.Duration

	reqs chan request
	quit chan struct{}
	once sync.Once
}

var _ drivers.I2C = (*Owner)(nil)

// NewOwner starts a worker for hw. timeout <= 0 disables deadlines.
func NewOwner(hw drivers.I2C, timeout time.Duration) *Owner {
	o := &Owner{
		hw:      hw,
		timeout: timeout,
		reqs:    make(chan request, 16),
		quit:    make(chan struct{}),
	}
	go o.loop()
	return o
}

func (o *Owner) loop() {
	for {
		select {
		case req := <-o.reqs:
			err := errcode.Wrap(errcode.BusError, "tx", o.hw.Tx(req.addr, req.w, req.r))
			// best-effort reply; do not block the worker
			select {
			case req.done <- err:
			default:
			}
		case <-o.quit:
			return
		}
	}
}

// Close stops the worker. Later transactions fail with errcode.NotConfigured.
func (o *Owner) Close() {
	o.once.Do(func() { close(o.quit) })
}

// Tx performs one write-then-read transaction. Either slice may be empty.
// Device failures are tagged errcode.BusError and keep the cause.
func (o *Owner) Tx(addr uint16, w, r []byte) error {
	req := request{addr: addr, w: w, r: r, done: make(chan error, 1)}

	// Enqueue
	if o.timeout <= 0 {
		select {
		case o.reqs <- req:
		case <-o.quit:
			return errcode.NotConfigured
		}
	} else {
		t := time.NewTimer(o.timeout)
		select {
		case o.reqs <- req:
			t.Stop()
		case <-o.quit:
			t.Stop()
			return errcode.NotConfigured
		case <-t.C:
			return errcode.Busy
		}
	}

	// Completion
	if o.timeout <= 0 {
		select {
		case err := <-req.done:
			return err
		case <-o.quit:
			return errcode.NotConfigured
		}
	}
	t := time.NewTimer(o.timeout)
	defer t.Stop()
	select {
	case err := <-req.done:
		return err
	case <-o.quit:
		return errcode.NotConfigured
	case <-t.C:
		return errcode.Timeout
	}
}

// Write sends bytes with no read phase.
func (o *Owner) Write(addr uint16, w []byte) error { return o.Tx(addr, w, nil) }

// WriteRead writes w then reads n bytes under a repeated start.
func (o *Owner) WriteRead(addr uint16, w []byte, n int) ([]byte, error) {
	r := make([]byte, n)
	if err := o.Tx(addr, w, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Scan probes every 7-bit address with a 1-byte read and returns those that
// acknowledged. Transport-level failures (Busy, Timeout) abort the scan.
func (o *Owner) Scan() ([]uint16, error) {
	var found []uint16
	var b [1]byte
	for addr := uint16(scanFirst); addr <= scanLast; addr++ {
		err := o.Tx(addr, nil, b[:])
		switch errcode.Of(err) {
		case errcode.OK:
			found = append(found, addr)
		case errcode.Busy, errcode.Timeout, errcode.NotConfigured:
			return found, err
		}
	}
	return found, nil
}
