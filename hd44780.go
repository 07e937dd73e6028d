package hd44780

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Instruction opcodes used by the driver.
const (
	cmdClear       byte = 0x01
	cmdHome        byte = 0x02
	cmdEntryMode   byte = 0x04
	cmdDisplay     byte = 0x08
	cmdFunctionSet byte = 0x20
	cmdSetDDRAM    byte = 0x80

	entryIncrement byte = 0x02

	displayOn     byte = 0x04
	displayCursor byte = 0x02
	displayBlink  byte = 0x01

	functionTwoLines byte = 0x08
	functionFont5x10 byte = 0x04

	nibbleEightBit byte = 0x3
	nibbleFourBit  byte = 0x2

	maxDDRAM = 0x7F
)

// Mode selects the level of the Register-Select line for a byte.
type Mode bool

const (
	Command Mode = false // RS low
	Data    Mode = true  // RS high
)

func (m Mode) String() string {
	if m == Data {
		return "data"
	}
	return "command"
}

// State is the driver lifecycle state.
type State uint8

const (
	Uninitialized State = iota
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

var (
	// ErrNotInitialized is returned by every operation but Init until Init
	// has completed.
	ErrNotInitialized = errors.New("hd44780: not initialized")
	// ErrOutOfRange is returned by SetCursor for a position outside the
	// configured geometry.
	ErrOutOfRange = errors.New("hd44780: cursor out of range")
)

// Bus names the GPIO line implementing each driver role.
type Bus struct {
	RS   gpio.PinOut    // Register-Select
	E    gpio.PinOut    // Enable
	Data [4]gpio.PinOut // D4..D7, index i carries bit i of each nibble
}

func (b *Bus) lines() []gpio.PinOut {
	return []gpio.PinOut{b.RS, b.E, b.Data[0], b.Data[1], b.Data[2], b.Data[3]}
}

// Opts is the configuration for the display.
type Opts struct {
	Rows int // visible rows (default: 2, 1..4)
	Cols int // visible columns (default: 16, 1..40)

	// RowStride is the DDRAM distance between consecutive rows (default 0x40).
	RowStride int
	// RowOffsets overrides RowStride with an explicit DDRAM base per row,
	// e.g. {0x00, 0x40, 0x14, 0x54} for 20x4 panels.
	RowOffsets []byte

	Font5x10 bool // only honoured on single row displays

	Timing *Timing // nil uses DefaultTiming
	Delay  Delayer // nil uses BusyWait
}

// Dev is a handle to an HD44780 on a 4-bit parallel bus.
type Dev struct {
	mu sync.Mutex

	bus    Bus
	timing Timing
	delay  Delayer

	rows, cols int
	offsets    []byte
	function   byte

	state State
}

// New validates opts and returns an uninitialized Dev. It does not touch the
// bus; call Init before any other operation.
//
// opts can be nil to use defaults (16x2 display).
func New(bus Bus, opts *Opts) (*Dev, error) {
	for i, l := range bus.lines() {
		if l == nil {
			return nil, fmt.Errorf("hd44780: bus line %d is nil", i)
		}
	}
	if opts == nil {
		opts = &Opts{}
	}
	rows, cols := opts.Rows, opts.Cols
	if rows == 0 {
		rows = 2
	}
	if cols == 0 {
		cols = 16
	}
	if rows < 1 || rows > 4 {
		return nil, errors.New("hd44780: rows must be between 1 and 4")
	}
	if cols < 1 || cols > 40 {
		return nil, errors.New("hd44780: cols must be between 1 and 40")
	}

	offsets := make([]byte, rows)
	if opts.RowOffsets != nil {
		if len(opts.RowOffsets) != rows {
			return nil, fmt.Errorf("hd44780: %d row offsets for %d rows", len(opts.RowOffsets), rows)
		}
		copy(offsets, opts.RowOffsets)
	} else {
		stride := opts.RowStride
		if stride == 0 {
			stride = 0x40
		}
		for r := range offsets {
			if r*stride > maxDDRAM {
				return nil, errors.New("hd44780: row stride exceeds DDRAM")
			}
			offsets[r] = byte(r * stride)
		}
	}
	for r, o := range offsets {
		if int(o)+cols-1 > maxDDRAM {
			return nil, fmt.Errorf("hd44780: row %d exceeds DDRAM", r)
		}
	}

	timing := DefaultTiming
	if opts.Timing != nil {
		timing = *opts.Timing
	}
	if err := timing.validate(); err != nil {
		return nil, err
	}
	delay := opts.Delay
	if delay == nil {
		delay = BusyWait{}
	}

	function := cmdFunctionSet
	if rows > 1 {
		function |= functionTwoLines
	} else if opts.Font5x10 {
		function |= functionFont5x10
	}

	return &Dev{
		bus:      bus,
		timing:   timing,
		delay:    delay,
		rows:     rows,
		cols:     cols,
		offsets:  offsets,
		function: function,
	}, nil
}

// Init forces the controller into 4-bit mode from any power-on state and
// configures it: two lines (or one), display cleared, cursor incrementing,
// display on with cursor and blink off.
//
// Init can be called again at any time to recover a display in an unknown
// state. The Dev is Uninitialized until the whole sequence has been sent.
func (d *Dev) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = Uninitialized

	for _, l := range d.bus.lines() {
		if err := l.Out(gpio.Low); err != nil {
			return fmt.Errorf("hd44780: failed to configure %s: %w", l, err)
		}
	}
	wait(d.delay, d.timing.PowerOn)

	handshake := []struct {
		nibble byte
		settle time.Duration
	}{
		{nibbleEightBit, d.timing.Handshake1},
		{nibbleEightBit, d.timing.Handshake2},
		{nibbleEightBit, d.timing.Handshake3},
		{nibbleFourBit, d.timing.Handshake3},
	}
	for _, h := range handshake {
		if err := d.sendNibble(h.nibble); err != nil {
			return err
		}
		wait(d.delay, h.settle)
	}

	cmds := []byte{
		d.function,                    // Function set
		cmdDisplay,                    // Display OFF
		cmdClear,                      // Clear display
		cmdEntryMode | entryIncrement, // Increment, no shift
		cmdDisplay | displayOn,        // Display ON, cursor and blink OFF
	}
	for _, c := range cmds {
		if err := d.sendByte(c, Command); err != nil {
			return err
		}
	}
	d.state = Ready
	return nil
}

// State returns the lifecycle state.
func (d *Dev) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Rows returns the number of visible rows.
func (d *Dev) Rows() int {
	return d.rows
}

// Cols returns the number of visible columns.
func (d *Dev) Cols() int {
	return d.cols
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("hd44780.Dev{%dx%d}", d.cols, d.rows)
}

// Command sends a raw instruction. Clear and return home (0x02 or 0x03) get
// the long settle delay automatically.
func (d *Dev) Command(cmd byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Ready {
		return ErrNotInitialized
	}
	return d.sendByte(cmd, Command)
}

// Clear blanks the display and returns the cursor to row 0, column 0.
func (d *Dev) Clear() error {
	return d.Command(cmdClear)
}

// Home returns the cursor to row 0, column 0 and undoes any display shift.
func (d *Dev) Home() error {
	return d.Command(cmdHome)
}

// Display switches the display, the underline cursor and the blinking block.
func (d *Dev) Display(on, cursor, blink bool) error {
	c := cmdDisplay
	if on {
		c |= displayOn
	}
	if cursor {
		c |= displayCursor
	}
	if blink {
		c |= displayBlink
	}
	return d.Command(c)
}

// Halt turns the display off. The contents are kept and the Dev stays Ready;
// Display(true, false, false) turns it back on.
func (d *Dev) Halt() error {
	return d.Command(cmdDisplay)
}

// SetCursor moves the cursor to row, col (both zero based).
func (d *Dev) SetCursor(row, col int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Ready {
		return ErrNotInitialized
	}
	if row < 0 || row >= d.rows || col < 0 || col >= d.cols {
		return fmt.Errorf("%w: (%d,%d) on %dx%d", ErrOutOfRange, row, col, d.cols, d.rows)
	}
	addr := d.offsets[row] + byte(col)
	return d.sendByte(cmdSetDDRAM|addr, Command)
}

// WriteChar writes one character code at the cursor.
func (d *Dev) WriteChar(c byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Ready {
		return ErrNotInitialized
	}
	return d.sendByte(c, Data)
}

// WriteString writes the bytes of s at the cursor, in order.
//
// There is no wrapping: past the end of a row the controller's own address
// counter decides where characters land.
func (d *Dev) WriteString(s string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Ready {
		return ErrNotInitialized
	}
	for i := 0; i < len(s); i++ {
		if err := d.sendByte(s[i], Data); err != nil {
			return err
		}
	}
	return nil
}

// Write writes p as character codes at the cursor.
func (d *Dev) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Ready {
		return 0, ErrNotInitialized
	}
	for i, c := range p {
		if err := d.sendByte(c, Data); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// sendByte sends v high nibble first, then waits for the instruction to
// execute.
func (d *Dev) sendByte(v byte, mode Mode) error {
	if err := d.bus.RS.Out(gpio.Level(mode)); err != nil {
		return fmt.Errorf("hd44780: failed to set RS: %w", err)
	}
	if err := d.sendNibble(v >> 4); err != nil {
		return err
	}
	if err := d.sendNibble(v & 0x0F); err != nil {
		return err
	}
	if mode == Command && isSlow(v) {
		wait(d.delay, d.timing.Long)
	} else {
		wait(d.delay, d.timing.Short)
	}
	return nil
}

// sendNibble presents n on D4..D7 and latches it with a pulse on E.
func (d *Dev) sendNibble(n byte) error {
	for i, l := range d.bus.Data {
		if err := l.Out(gpio.Level(n>>uint(i)&1 == 1)); err != nil {
			return fmt.Errorf("hd44780: failed to set D%d: %w", i+4, err)
		}
	}
	if err := d.bus.E.Out(gpio.High); err != nil {
		return fmt.Errorf("hd44780: failed to raise E: %w", err)
	}
	wait(d.delay, d.timing.EnablePulse)
	if err := d.bus.E.Out(gpio.Low); err != nil {
		return fmt.Errorf("hd44780: failed to lower E: %w", err)
	}
	wait(d.delay, d.timing.NibbleSettle)
	return nil
}

// isSlow reports whether cmd is clear display or return home (0000001x).
func isSlow(cmd byte) bool {
	return cmd == cmdClear || cmd&^0x01 == cmdHome
}
