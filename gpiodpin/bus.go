//go:build linux

package gpiodpin

import (
	"fmt"

	"github.com/flavioheleno/hd44780"
	"github.com/warthog618/gpiod"
)

// Bus is an hd44780.Bus whose lines are held on a GPIO chip.
type Bus struct {
	hd44780.Bus
	pins []*Pin
}

// OpenBus requests the six LCD lines on chip as outputs driven low.
func OpenBus(chip string, p Pins, consumer string) (*Bus, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	c, err := gpiod.NewChip(chip, gpiod.WithConsumer(consumer))
	if err != nil {
		return nil, fmt.Errorf("gpiodpin: %w", err)
	}
	// Requested lines outlive the chip handle.
	defer c.Close()

	b := &Bus{}
	names := []string{"RS", "E", "D4", "D5", "D6", "D7"}
	for i, o := range p.offsets() {
		l, err := c.RequestLine(o, gpiod.AsOutput(0))
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("gpiodpin: request %s (line %d): %w", names[i], o, err)
		}
		b.pins = append(b.pins, NewPin(names[i], o, l))
	}
	b.RS, b.E = b.pins[0], b.pins[1]
	for i := range b.Data {
		b.Data[i] = b.pins[2+i]
	}
	return b, nil
}

// Close releases every line held by the bus.
func (b *Bus) Close() error {
	var first error
	for _, p := range b.pins {
		if err := p.Close(); err != nil && first == nil {
			first = err
		}
	}
	b.pins = nil
	b.Bus = hd44780.Bus{}
	return first
}
