// Package gpiodpin adapts Linux GPIO character device lines to periph's
// gpio.PinOut so they can drive an hd44780.Dev.
package gpiodpin

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// ErrPWM is returned by Pin.PWM; cdev lines are plain digital outputs.
var ErrPWM = errors.New("gpiodpin: PWM is not supported")

// Line is the subset of *gpiod.Line used by Pin.
type Line interface {
	SetValue(value int) error
	Close() error
}

// Pin is a gpio.PinOut backed by a requested output line.
type Pin struct {
	name   string
	offset int
	line   Line
	level  gpio.Level
}

// NewPin wraps an already requested output line.
func NewPin(name string, offset int, l Line) *Pin {
	return &Pin{name: name, offset: offset, line: l}
}

// String implements conn.Resource.
func (p *Pin) String() string {
	return fmt.Sprintf("%s(%d)", p.name, p.offset)
}

// Name returns the name given at construction.
func (p *Pin) Name() string {
	return p.name
}

// Number returns the line offset on its chip.
func (p *Pin) Number() int {
	return p.offset
}

// Function implements pin.Pin.
func (p *Pin) Function() string {
	return "Out/" + p.level.String()
}

// Halt implements conn.Resource. The line keeps its level.
func (p *Pin) Halt() error {
	return nil
}

// Out drives the line. Lines are requested as outputs so no direction change
// is needed.
func (p *Pin) Out(l gpio.Level) error {
	v := 0
	if l == gpio.High {
		v = 1
	}
	if err := p.line.SetValue(v); err != nil {
		return fmt.Errorf("gpiodpin: %s: %w", p, err)
	}
	p.level = l
	return nil
}

// PWM implements gpio.PinOut.
func (p *Pin) PWM(gpio.Duty, physic.Frequency) error {
	return ErrPWM
}

// Close releases the line.
func (p *Pin) Close() error {
	return p.line.Close()
}

var _ gpio.PinOut = &Pin{}
