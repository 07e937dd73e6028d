// Package uart is a transmit-only serial port configured 8N1, the link the
// thermometer reports its voltage readings on.
package uart

import (
	"fmt"
	"sync"

	"go.bug.st/serial"
)

// DefaultBaud matches the 9600 8N1 link of the reference thermometers.
const DefaultBaud = 9600

// conn is the part of serial.Port used by Port.
type conn interface {
	Write(p []byte) (int, error)
	Drain() error
	Close() error
}

// Port is an open serial port.
type Port struct {
	mu   sync.Mutex
	c    conn
	name string
}

// Open opens name (e.g. /dev/ttyAMA0) at baud, 8 data bits, no parity and
// one stop bit.
func Open(name string, baud int) (*Port, error) {
	if baud <= 0 {
		return nil, fmt.Errorf("uart: invalid baud rate %d", baud)
	}
	c, err := serial.Open(name, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("uart: open %s: %w", name, err)
	}
	return &Port{c: c, name: name}, nil
}

// Write queues b for transmission, blocking until the driver has taken all
// of it.
func (p *Port) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var n int
	for n < len(b) {
		w, err := p.c.Write(b[n:])
		n += w
		if err != nil {
			return n, fmt.Errorf("uart: write %s: %w", p.name, err)
		}
		if w == 0 {
			return n, fmt.Errorf("uart: write %s: no progress", p.name)
		}
	}
	return n, nil
}

// Transmit sends one byte and waits until it has left the transmitter.
func (p *Port) Transmit(c byte) error {
	if _, err := p.Write([]byte{c}); err != nil {
		return err
	}
	return p.Drain()
}

// Drain blocks until all queued output has been transmitted.
func (p *Port) Drain() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.c.Drain(); err != nil {
		return fmt.Errorf("uart: drain %s: %w", p.name, err)
	}
	return nil
}

// String returns the device path.
func (p *Port) String() string {
	return p.name
}

// Close closes the port.
func (p *Port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.c.Close()
}
