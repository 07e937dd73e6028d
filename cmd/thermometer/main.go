//go:build linux

// thermometer samples an LM35 style sensor through an MCP3008 and shows the
// temperature on an HD44780 LCD, echoing the sensor voltage on a UART.
//
// The default pin assignments are defined in config.go and can be altered
// via configuration (env, flag or config file). All lines other than the ADC
// DO are outputs so do not run this on a board where those pins serve other
// purposes.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/flavioheleno/hd44780"
	"github.com/flavioheleno/hd44780/gpiodpin"
	"github.com/flavioheleno/hd44780/mcp3008"
	"github.com/flavioheleno/hd44780/thermometer"
	"github.com/flavioheleno/hd44780/uart"
	"github.com/warthog618/config"
	"github.com/warthog618/gpiod"
	"github.com/warthog618/gpiod/spi/mcp3w0c"
)

func main() {
	cfg := loadConfig()
	if err := run(cfg); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "thermometer: %s\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	level, err := logLevel(cfg.MustGet("loglevel").String())
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	mc, err := monitorConfig(cfg)
	if err != nil {
		return err
	}
	chip := cfg.MustGet("gpiochip").String()

	pins, err := gpiodpin.PinsByName(
		cfg.MustGet("rs").String(),
		cfg.MustGet("e").String(),
		[4]string{
			cfg.MustGet("d4").String(),
			cfg.MustGet("d5").String(),
			cfg.MustGet("d6").String(),
			cfg.MustGet("d7").String(),
		})
	if err != nil {
		return err
	}
	bus, err := gpiodpin.OpenBus(chip, pins, "thermometer")
	if err != nil {
		return err
	}
	defer bus.Close()
	lcd, err := hd44780.New(bus.Bus, &hd44780.Opts{
		Rows: cfg.MustGet("rows").Int(),
		Cols: cfg.MustGet("cols").Int(),
	})
	if err != nil {
		return err
	}
	if err := lcd.Init(); err != nil {
		return err
	}
	defer lcd.Halt()
	logger.Debug("display ready", "lcd", lcd.String())

	c, err := gpiod.NewChip(chip, gpiod.WithConsumer("thermometer"))
	if err != nil {
		return err
	}
	a, err := mcp3w0c.NewMCP3008(
		c,
		cfg.MustGet("clk").Int(),
		cfg.MustGet("csz").Int(),
		cfg.MustGet("di").Int(),
		cfg.MustGet("do").Int(),
		mcp3w0c.WithTclk(cfg.MustGet("tclk").Duration()),
		mcp3w0c.WithTset(cfg.MustGet("tset").Duration()))
	c.Close()
	if err != nil {
		return err
	}
	adc := mcp3008.New(a)
	defer adc.Close()

	var tx io.Writer
	if tty := cfg.MustGet("tty").String(); tty != "" {
		p, err := uart.Open(tty, cfg.MustGet("baud").Int())
		if err != nil {
			return err
		}
		defer p.Close()
		tx = p
		logger.Debug("serial ready", "port", p.String())
	}

	m, err := thermometer.New(mc, adc, lcd, tx, logger)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return m.Run(ctx)
}
