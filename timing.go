package hd44780

import (
	"errors"
	"fmt"
	"time"
)

// Minimum timings from the HD44780U datasheet (Table 6, Figure 24 and the
// 4-bit initialization flowchart). A Timing below any of these is rejected.
const (
	MinEnablePulse = 450 * time.Nanosecond   // PWEH
	MinShort       = 37 * time.Microsecond   // execution time of most instructions
	MinLong        = 1520 * time.Microsecond // clear display, return home
	MinPowerOn     = 15 * time.Millisecond   // after VCC rises to 4.5V
	MinHandshake1  = 4100 * time.Microsecond
	MinHandshake2  = 100 * time.Microsecond
	MinHandshake3  = 100 * time.Microsecond
)

// ErrTiming is returned by New when a Timing is below the controller minima.
var ErrTiming = errors.New("hd44780: timing below controller minimum")

// Timing holds every delay the driver inserts on the bus.
//
// The bus is open loop: the driver never reads the busy flag, so a delay that
// is too short garbles the display without any error being reported.
type Timing struct {
	EnablePulse  time.Duration // E held high for each nibble
	NibbleSettle time.Duration // after E falls, before the next bus change
	Short        time.Duration // after every byte that is not clear/home
	Long         time.Duration // after clear (0x01) and return home (0x02)
	PowerOn      time.Duration // before the first handshake nibble
	Handshake1   time.Duration // after the first 0x3 nibble
	Handshake2   time.Duration // after the second 0x3 nibble
	Handshake3   time.Duration // after the third 0x3 and the 0x2 nibble
}

// DefaultTiming is conservative enough for slow clocks and long wires.
var DefaultTiming = Timing{
	EnablePulse:  1 * time.Microsecond,
	NibbleSettle: 100 * time.Microsecond,
	Short:        50 * time.Microsecond,
	Long:         5 * time.Millisecond,
	PowerOn:      50 * time.Millisecond,
	Handshake1:   5 * time.Millisecond,
	Handshake2:   150 * time.Microsecond,
	Handshake3:   150 * time.Microsecond,
}

func (t *Timing) validate() error {
	checks := []struct {
		name string
		got  time.Duration
		min  time.Duration
	}{
		{"enable pulse", t.EnablePulse, MinEnablePulse},
		{"short settle", t.Short, MinShort},
		{"long settle", t.Long, MinLong},
		{"power-on delay", t.PowerOn, MinPowerOn},
		{"first handshake delay", t.Handshake1, MinHandshake1},
		{"second handshake delay", t.Handshake2, MinHandshake2},
		{"third handshake delay", t.Handshake3, MinHandshake3},
	}
	for _, c := range checks {
		if c.got < c.min {
			return fmt.Errorf("%w: %s %v < %v", ErrTiming, c.name, c.got, c.min)
		}
	}
	if t.NibbleSettle < 0 {
		return fmt.Errorf("%w: negative nibble settle", ErrTiming)
	}
	return nil
}

// Delayer blocks the calling goroutine for at least the requested time.
type Delayer interface {
	WaitMicros(n uint32)
	WaitMillis(n uint32)
}

// BusyWait is the default Delayer.
//
// Microsecond waits spin on the monotonic clock since the scheduler cannot
// honour them; millisecond waits sleep.
type BusyWait struct{}

// WaitMicros spins for at least n microseconds.
func (BusyWait) WaitMicros(n uint32) {
	deadline := time.Now().Add(time.Duration(n) * time.Microsecond)
	for time.Now().Before(deadline) {
	}
}

// WaitMillis sleeps for at least n milliseconds.
func (BusyWait) WaitMillis(n uint32) {
	time.Sleep(time.Duration(n) * time.Millisecond)
}

// wait converts d to the coarsest unit that represents it without rounding
// down. Sub-microsecond remainders round up to the next microsecond.
func wait(dl Delayer, d time.Duration) {
	switch {
	case d <= 0:
		return
	case d%time.Millisecond == 0:
		dl.WaitMillis(uint32(d / time.Millisecond))
	default:
		us := (d + time.Microsecond - 1) / time.Microsecond
		dl.WaitMicros(uint32(us))
	}
}
