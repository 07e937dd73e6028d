//go:build linux

package main

import (
	"fmt"
	"os"

	"github.com/flavioheleno/hd44780"
	"github.com/flavioheleno/hd44780/gpiodpin"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lcdctl",
	Short: "lcdctl drives an HD44780 character LCD on GPIO lines",
	Long: `lcdctl drives an HD44780 character LCD wired in 4-bit mode to GPIO lines.

Every command runs the power-on handshake before acting, as the state the
display was left in by a previous process is unknown.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
	Version: version,
}

var busOpts = struct {
	Chip string
	RS   string
	E    string
	Data [4]string
	Rows int
	Cols int
}{}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVarP(&busOpts.Chip, "chip", "c", "gpiochip0", "GPIO chip holding the LCD lines")
	f.StringVar(&busOpts.RS, "rs", "GPIO25", "Register-Select pin")
	f.StringVar(&busOpts.E, "e", "GPIO24", "Enable pin")
	f.StringVar(&busOpts.Data[0], "d4", "GPIO23", "D4 pin")
	f.StringVar(&busOpts.Data[1], "d5", "GPIO17", "D5 pin")
	f.StringVar(&busOpts.Data[2], "d6", "GPIO18", "D6 pin")
	f.StringVar(&busOpts.Data[3], "d7", "GPIO22", "D7 pin")
	f.IntVar(&busOpts.Rows, "rows", 2, "visible rows")
	f.IntVar(&busOpts.Cols, "cols", 16, "visible columns")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func logErr(cmd *cobra.Command, err error) {
	fmt.Fprintf(os.Stderr, "lcdctl %s: %s\n", cmd.Name(), err)
}

// openDisplay requests the bus lines and initializes the display.
// The caller must Close the returned bus.
func openDisplay() (*hd44780.Dev, *gpiodpin.Bus, error) {
	pins, err := gpiodpin.PinsByName(busOpts.RS, busOpts.E, busOpts.Data)
	if err != nil {
		return nil, nil, err
	}
	bus, err := gpiodpin.OpenBus(busOpts.Chip, pins, "lcdctl")
	if err != nil {
		return nil, nil, err
	}
	dev, err := hd44780.New(bus.Bus, &hd44780.Opts{Rows: busOpts.Rows, Cols: busOpts.Cols})
	if err != nil {
		bus.Close()
		return nil, nil, err
	}
	if err := dev.Init(); err != nil {
		bus.Close()
		return nil, nil, err
	}
	return dev, bus, nil
}
