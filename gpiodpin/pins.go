package gpiodpin

import (
	"fmt"

	"github.com/warthog618/gpiod/device/rpi"
)

// Pins holds the line offsets of an LCD bus.
type Pins struct {
	RS   int
	E    int
	Data [4]int // D4..D7
}

// PinsByName resolves Raspberry Pi pin names (GPIO25, J8p22 or 25) to line
// offsets on gpiochip0.
func PinsByName(rs, e string, data [4]string) (Pins, error) {
	var p Pins
	var err error
	if p.RS, err = pinByName("rs", rs); err != nil {
		return p, err
	}
	if p.E, err = pinByName("e", e); err != nil {
		return p, err
	}
	for i, name := range data {
		if p.Data[i], err = pinByName(fmt.Sprintf("d%d", i+4), name); err != nil {
			return p, err
		}
	}
	return p, p.validate()
}

func pinByName(role, name string) (int, error) {
	o, err := rpi.Pin(name)
	if err != nil {
		return 0, fmt.Errorf("gpiodpin: %s pin %q: %w", role, name, err)
	}
	return o, nil
}

func (p Pins) offsets() []int {
	return []int{p.RS, p.E, p.Data[0], p.Data[1], p.Data[2], p.Data[3]}
}

// validate rejects a bus sharing a line between two roles.
func (p Pins) validate() error {
	seen := map[int]bool{}
	for _, o := range p.offsets() {
		if o < 0 {
			return fmt.Errorf("gpiodpin: negative offset %d", o)
		}
		if seen[o] {
			return fmt.Errorf("gpiodpin: line %d used twice", o)
		}
		seen[o] = true
	}
	return nil
}
