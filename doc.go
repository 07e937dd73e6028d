// Package hd44780 controls an HD44780 compatible character LCD through six
// GPIO lines.
//
// The HD44780 (and its clones: KS0066, SPLC780, ST7066) is the controller
// behind most 16x2 and 20x4 character modules. This driver uses the 4-bit
// parallel interface with the R/W line tied to ground, so the busy flag is
// never read and every instruction is followed by a fixed delay.
//
// # Hardware Connection
//
//	Display Pin → System Pin
//	VSS         → GND
//	VDD         → 5V
//	V0          → contrast potentiometer wiper
//	RS          → GPIO (Register-Select)
//	RW          → GND
//	E           → GPIO (Enable)
//	D0..D3      → not connected
//	D4..D7      → GPIO (four lines, D4 carries bit 0 of each nibble)
//	A / K       → backlight supply
//
// # Basic Usage
//
//	package main
//
//	import (
//		"github.com/flavioheleno/hd44780"
//		"periph.io/x/conn/v3/gpio"
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//
//		bus := hd44780.Bus{
//			RS: gpioreg.ByName("GPIO25"),
//			E:  gpioreg.ByName("GPIO24"),
//			Data: [4]gpio.PinOut{
//				gpioreg.ByName("GPIO23"),
//				gpioreg.ByName("GPIO17"),
//				gpioreg.ByName("GPIO18"),
//				gpioreg.ByName("GPIO22"),
//			},
//		}
//		dev, _ := hd44780.New(bus, &hd44780.Opts{Rows: 2, Cols: 16})
//		dev.Init()
//
//		dev.SetCursor(1, 0)
//		dev.WriteString("23.50")
//		dev.WriteChar(0xDF) // degree sign in ROM A00
//		dev.WriteChar('C')
//	}
//
// # Lifecycle
//
// New only validates the configuration. Init runs the power-on handshake
// (nibbles 0x3, 0x3, 0x3, 0x2) and the configuration commands; until it
// returns nil every other method fails with ErrNotInitialized without
// touching the bus. Init can be called again to recover a display whose
// state is unknown, for instance after a glitch on the supply.
//
// # Timing
//
// All delays live in a Timing value. DefaultTiming is deliberately slow;
// New refuses any Timing below the datasheet minima (ErrTiming). Clear and
// return home take up to 1.52ms to execute inside the controller and are
// followed by Timing.Long; every other byte is followed by Timing.Short.
//
// Delays go through a Delayer. The default BusyWait spins for microsecond
// waits; tests and simulators can pass their own.
//
// # Addressing
//
// SetCursor maps (row, col) to DDRAM address RowOffsets[row]+col, with
// RowOffsets defaulting to multiples of RowStride (0x40). Positions outside
// the configured geometry fail with ErrOutOfRange. Writes past the end of a
// row are not wrapped by the driver; the controller's address counter
// decides where they land.
//
// # Datasheet
//
// https://www.sparkfun.com/datasheets/LCD/HD44780.pdf
package hd44780
