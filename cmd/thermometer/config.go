package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/flavioheleno/hd44780/thermometer"
	"github.com/warthog618/config"
	"github.com/warthog618/config/blob"
	"github.com/warthog618/config/blob/decoder/json"
	"github.com/warthog618/config/dict"
	"github.com/warthog618/config/env"
	"github.com/warthog618/config/pflag"
	"github.com/warthog618/gpiod/device/rpi"
)

// defaults wire an LM35 on MCP3008 channel 0 and a 16x2 LCD to a Raspberry
// Pi. Every key can be overridden by a THERMO_ environment variable, a flag
// or thermometer.json.
var defaults = map[string]interface{}{
	"gpiochip": "gpiochip0",
	// LCD
	"rs":   "GPIO25",
	"e":    "GPIO24",
	"d4":   "GPIO23",
	"d5":   "GPIO17",
	"d6":   "GPIO18",
	"d7":   "GPIO22",
	"rows": 2,
	"cols": 16,
	// ADC
	"clk":       rpi.J8p23,
	"csz":       rpi.J8p24,
	"di":        rpi.J8p19,
	"do":        rpi.J8p21,
	"tclk":      "2us",
	"tset":      "2us",
	"channel":   0,
	"fullscale": 1023,
	"vref":      "5V",
	"coeffs":    "0,100",
	// UART, disabled when tty is empty
	"tty":  "",
	"baud": 9600,
	// Loop
	"mode":       "temperature",
	"period":     "1s",
	"splashtime": "1500ms",
	"loglevel":   "info",
}

func loadConfig() *config.Config {
	def := dict.New(dict.WithMap(defaults))
	flags := []pflag.Flag{
		{Short: 'c', Name: "config-file"},
	}
	cfg := config.New(
		pflag.New(pflag.WithFlags(flags)),
		env.New(env.WithEnvPrefix("THERMO_")),
		config.WithDefault(def))
	cfg.Append(
		blob.NewConfigFile(cfg, "config.file", "thermometer.json", json.NewDecoder()))
	cfg = cfg.GetConfig("", config.WithMust())
	return cfg
}

// monitorConfig builds the sampling loop configuration.
func monitorConfig(cfg *config.Config) (thermometer.Config, error) {
	mc := thermometer.DefaultConfig
	mode, err := thermometer.ParseMode(cfg.MustGet("mode").String())
	if err != nil {
		return mc, err
	}
	mc.Mode = mode
	mc.Channel = cfg.MustGet("channel").Int()
	fs := cfg.MustGet("fullscale").Int()
	if fs <= 0 || fs > 0xFFFF {
		return mc, fmt.Errorf("fullscale %d out of range", fs)
	}
	mc.FullScale = uint16(fs)
	if err := mc.Vref.Set(cfg.MustGet("vref").String()); err != nil {
		return mc, fmt.Errorf("vref: %w", err)
	}
	coeffs, err := parseCoeffs(cfg.MustGet("coeffs").String())
	if err != nil {
		return mc, err
	}
	mc.Coeffs = coeffs
	mc.Period = cfg.MustGet("period").Duration()
	mc.SplashTime = cfg.MustGet("splashtime").Duration()
	return mc, nil
}

// parseCoeffs parses a comma separated list of polynomial coefficients,
// lowest order first.
func parseCoeffs(s string) ([]float64, error) {
	var cc []float64
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		c, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("can't parse coefficient '%s'", f)
		}
		cc = append(cc, c)
	}
	if len(cc) == 0 {
		return nil, fmt.Errorf("no coefficients in '%s'", s)
	}
	return cc, nil
}

func logLevel(s string) (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(s))
	return l, err
}
