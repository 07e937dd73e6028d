// Package mcp3008 reads a Microchip MCP3008 10-bit ADC bit bashed over four
// GPIO lines.
//
// The SPI exchange is done by gpiod's mcp3w0c driver; Dev adds channel
// validation and error context on top of it.
package mcp3008

import (
	"errors"
	"fmt"
	"sync"
)

// Channels is the number of single ended inputs.
const Channels = 8

// Max is the largest conversion result.
const Max = 1<<10 - 1

var (
	// ErrClosed indicates the ADC is closed.
	ErrClosed = errors.New("mcp3008: closed")
	// ErrChannel indicates a channel outside 0..7.
	ErrChannel = errors.New("mcp3008: invalid channel")
	// ErrRange indicates a conversion wider than 10 bits, which points at a
	// 12-bit part or a miswired DO line.
	ErrRange = errors.New("mcp3008: conversion out of range")
)

// Converter performs single ended conversions, e.g. a *mcp3w0c.MCP3w0c.
type Converter interface {
	Read(ch int) (uint16, error)
	Close() error
}

// Dev reads conversions from a connected MCP3008.
type Dev struct {
	mu  sync.Mutex
	adc Converter
}

// New wraps a converter, typically created by mcp3w0c.NewMCP3008.
func New(adc Converter) *Dev {
	return &Dev{adc: adc}
}

// Close releases the converter.
func (d *Dev) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.adc == nil {
		return ErrClosed
	}
	err := d.adc.Close()
	d.adc = nil
	return err
}

// Read returns the single ended conversion of channel ch (0..Max).
func (d *Dev) Read(ch int) (uint16, error) {
	if ch < 0 || ch >= Channels {
		return 0, fmt.Errorf("%w: %d", ErrChannel, ch)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.adc == nil {
		return 0, ErrClosed
	}
	v, err := d.adc.Read(ch)
	if err != nil {
		return 0, fmt.Errorf("mcp3008: read ch%d: %w", ch, err)
	}
	if v > Max {
		return 0, fmt.Errorf("%w: ch%d = %d", ErrRange, ch, v)
	}
	return v, nil
}
