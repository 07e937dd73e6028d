// Package thermometer samples a temperature proportional voltage and shows
// it on a character LCD and a serial line at a fixed cadence.
package thermometer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/flavioheleno/hd44780/lcdtext"
	"periph.io/x/conn/v3/physic"
)

// Sampler returns raw conversions, e.g. an *mcp3008.Dev.
type Sampler interface {
	Read(ch int) (uint16, error)
}

// Display is the part of *hd44780.Dev used by the Monitor.
type Display interface {
	Clear() error
	SetCursor(row, col int) error
	Write(p []byte) (int, error)
	Rows() int
	Cols() int
}

// Mode selects what the Monitor shows.
type Mode uint8

const (
	// ShowTemperature shows the header and the converted temperature.
	ShowTemperature Mode = iota
	// ShowRaw shows the raw conversion and the sensor voltage, for
	// calibrating Coeffs.
	ShowRaw
)

var modeNames = map[Mode]string{
	ShowTemperature: "temperature",
	ShowRaw:         "raw",
}

func (m Mode) String() string {
	if n, ok := modeNames[m]; ok {
		return n
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode returns the Mode named s ("temperature" or "raw").
func ParseMode(s string) (Mode, error) {
	for m, n := range modeNames {
		if n == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("thermometer: unknown mode %q", s)
}

// Config describes the sensor chain and the screen content.
type Config struct {
	Mode Mode

	Channel   int                      // ADC input
	FullScale uint16                   // conversion result at Vref
	Vref      physic.ElectricPotential // ADC reference

	// Coeffs maps volts to degrees Celsius as the polynomial
	// Coeffs[0] + Coeffs[1]*V + Coeffs[2]*V^2 + ...
	Coeffs []float64

	Period     time.Duration // between samples
	Splash     [2]string     // shown once at start, one string per row
	SplashTime time.Duration // 0 skips the splash
	Header     string        // row 0 while running on multi row displays
}

// DefaultConfig reads channel 0 of a 10-bit ADC with a 5V reference and
// assumes an LM35 style 10mV/°C sensor.
var DefaultConfig = Config{
	Mode:       ShowTemperature,
	Channel:    0,
	FullScale:  1023,
	Vref:       5 * physic.Volt,
	Coeffs:     []float64{0, 100},
	Period:     time.Second,
	Splash:     [2]string{"Digital", "Thermometer"},
	SplashTime: 1500 * time.Millisecond,
	Header:     "Temperature:",
}

// Reading is one converted sample.
type Reading struct {
	Raw         uint16
	Voltage     physic.ElectricPotential
	Temperature physic.Temperature
}

// Celsius returns the temperature in degrees Celsius.
func (r Reading) Celsius() float64 {
	return float64(r.Temperature-physic.ZeroCelsius) / float64(physic.Kelvin)
}

// Volts returns the voltage in volts.
func (r Reading) Volts() float64 {
	return float64(r.Voltage) / float64(physic.Volt)
}

// Monitor runs the sample/display loop.
type Monitor struct {
	cfg    Config
	adc    Sampler
	lcd    Display
	uart   io.Writer
	logger *slog.Logger
}

// New creates a Monitor. Either lcd or uart may be nil, not both.
func New(cfg Config, adc Sampler, lcd Display, uart io.Writer, logger *slog.Logger) (*Monitor, error) {
	if adc == nil {
		return nil, errors.New("thermometer: no sampler")
	}
	if lcd == nil && uart == nil {
		return nil, errors.New("thermometer: no display and no serial output")
	}
	if cfg.FullScale == 0 {
		return nil, errors.New("thermometer: full scale must be positive")
	}
	if cfg.Vref <= 0 {
		return nil, errors.New("thermometer: reference voltage must be positive")
	}
	if len(cfg.Coeffs) == 0 {
		return nil, errors.New("thermometer: no conversion coefficients")
	}
	if cfg.Period <= 0 {
		return nil, errors.New("thermometer: period must be positive")
	}
	if _, ok := modeNames[cfg.Mode]; !ok {
		return nil, fmt.Errorf("thermometer: invalid mode %d", cfg.Mode)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{cfg: cfg, adc: adc, lcd: lcd, uart: uart, logger: logger}, nil
}

// Convert turns a raw conversion into a Reading.
func (m *Monitor) Convert(raw uint16) Reading {
	v := physic.ElectricPotential(int64(raw) * int64(m.cfg.Vref) / int64(m.cfg.FullScale))
	volts := float64(v) / float64(physic.Volt)
	c := polynomial(m.cfg.Coeffs, volts)
	return Reading{
		Raw:         raw,
		Voltage:     v,
		Temperature: physic.Temperature(math.Round(c*1000))*physic.MilliCelsius + physic.ZeroCelsius,
	}
}

// Sample reads the configured channel once.
func (m *Monitor) Sample() (Reading, error) {
	raw, err := m.adc.Read(m.cfg.Channel)
	if err != nil {
		return Reading{}, fmt.Errorf("thermometer: sample: %w", err)
	}
	return m.Convert(raw), nil
}

func polynomial(coeffs []float64, x float64) float64 {
	// Horner's method.
	var y float64
	for i := len(coeffs) - 1; i >= 0; i-- {
		y = y*x + coeffs[i]
	}
	return y
}

// FormatVoltage renders the serial line for r: "Voltage: 0.7331V\r\n".
func FormatVoltage(r Reading) []byte {
	b := []byte("Voltage: ")
	b = strconv.AppendFloat(b, r.Volts(), 'f', 4, 64)
	return append(b, "V\r\n"...)
}

// FormatTemperature renders r for the LCD: "23.50" followed by the degree
// glyph and 'C'. Readings that round to zero never show a minus sign.
func FormatTemperature(r Reading) []byte {
	c := math.Round(r.Celsius()*100) / 100
	if c == 0 {
		c = 0 // -0
	}
	s := strconv.FormatFloat(c, 'f', 2, 64)
	return lcdtext.Encode(s + "°C")
}

// FormatRaw renders the serial line of ShowRaw mode:
// "ADC = 150, Voltage = 0.733 V\r\n".
func FormatRaw(r Reading) []byte {
	b := []byte("ADC = ")
	b = strconv.AppendUint(b, uint64(r.Raw), 10)
	b = append(b, ", Voltage = "...)
	b = strconv.AppendFloat(b, r.Volts(), 'f', 3, 64)
	return append(b, " V\r\n"...)
}

// FormatADC renders the raw conversion for the LCD: "ADC:150".
func FormatADC(r Reading) []byte {
	return strconv.AppendUint([]byte("ADC:"), uint64(r.Raw), 10)
}

// FormatVolts renders the voltage for the LCD: "V=0.733 V".
func FormatVolts(r Reading) []byte {
	b := strconv.AppendFloat([]byte("V="), r.Volts(), 'f', 3, 64)
	return append(b, " V"...)
}

type row struct {
	n    int
	text []byte
}

// rows returns the display rows rewritten for r.
func (m *Monitor) rows(r Reading) []row {
	multi := m.lcd.Rows() > 1
	switch {
	case m.cfg.Mode == ShowRaw && multi:
		return []row{{0, FormatADC(r)}, {1, FormatVolts(r)}}
	case m.cfg.Mode == ShowRaw:
		return []row{{0, FormatVolts(r)}}
	case multi:
		return []row{{1, FormatTemperature(r)}}
	default:
		return []row{{0, FormatTemperature(r)}}
	}
}

// Splash shows the start up banner and waits SplashTime. It returns early
// with the context error if ctx is done.
func (m *Monitor) Splash(ctx context.Context) error {
	if m.lcd == nil || m.cfg.SplashTime <= 0 {
		return nil
	}
	if err := m.lcd.Clear(); err != nil {
		return err
	}
	for row, s := range m.cfg.Splash {
		if row >= m.lcd.Rows() || s == "" {
			continue
		}
		if err := m.writeRow(row, s); err != nil {
			return err
		}
	}
	t := time.NewTimer(m.cfg.SplashTime)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Prepare clears the display and, in ShowTemperature mode, writes the
// header.
func (m *Monitor) Prepare() error {
	if m.lcd == nil {
		return nil
	}
	if err := m.lcd.Clear(); err != nil {
		return err
	}
	if m.cfg.Mode == ShowTemperature && m.lcd.Rows() > 1 && m.cfg.Header != "" {
		return m.writeRow(0, m.cfg.Header)
	}
	return nil
}

// Show sends r to the serial line and to the value rows of the display.
// Rows are rewritten in full so a shorter value leaves no stale characters.
func (m *Monitor) Show(r Reading) error {
	if m.uart != nil {
		line := FormatVoltage(r)
		if m.cfg.Mode == ShowRaw {
			line = FormatRaw(r)
		}
		if _, err := m.uart.Write(line); err != nil {
			return fmt.Errorf("thermometer: serial: %w", err)
		}
	}
	if m.lcd == nil {
		return nil
	}
	for _, rw := range m.rows(r) {
		if err := m.lcd.SetCursor(rw.n, 0); err != nil {
			return fmt.Errorf("thermometer: display: %w", err)
		}
		if _, err := m.lcd.Write(lcdtext.Fit(rw.text, m.lcd.Cols())); err != nil {
			return fmt.Errorf("thermometer: display: %w", err)
		}
	}
	return nil
}

func (m *Monitor) writeRow(row int, s string) error {
	if err := m.lcd.SetCursor(row, 0); err != nil {
		return err
	}
	_, err := m.lcd.Write(lcdtext.Fit(lcdtext.Encode(s), m.lcd.Cols()))
	return err
}

// Run shows the splash, then samples and shows a reading every Period until
// ctx is done. Sampling errors are logged and the sample skipped; output
// errors stop the loop.
func (m *Monitor) Run(ctx context.Context) error {
	if err := m.Splash(ctx); err != nil {
		return err
	}
	if err := m.Prepare(); err != nil {
		return fmt.Errorf("thermometer: display: %w", err)
	}
	m.logger.Info("thermometer running", "mode", m.cfg.Mode.String(), "channel", m.cfg.Channel, "period", m.cfg.Period)

	tick := time.NewTicker(m.cfg.Period)
	defer tick.Stop()
	for {
		r, err := m.Sample()
		if err != nil {
			m.logger.Warn("sample failed", "err", err)
		} else {
			m.logger.Debug("reading", "raw", r.Raw, "voltage", r.Voltage.String(), "temperature", r.Temperature.String())
			if err := m.Show(r); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			if err := ctx.Err(); err != nil {
				return err
			}
		}
	}
}
