//go:build linux

package main

import (
	"github.com/spf13/cobra"
)

func init() {
	initCmd.Flags().BoolVar(&initOpts.Cursor, "cursor", false, "show the underline cursor")
	initCmd.Flags().BoolVar(&initOpts.Blink, "blink", false, "blink the character at the cursor")
	initCmd.Flags().BoolVar(&initOpts.Off, "off", false, "leave the display switched off")
	rootCmd.AddCommand(initCmd)
}

var (
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Initialize the display",
		Long:  `Run the power-on handshake, clear the display and set the display mode.`,
		Args:  cobra.NoArgs,
		Run:   initDisplay,
	}
	initOpts = struct {
		Cursor bool
		Blink  bool
		Off    bool
	}{}
)

func initDisplay(cmd *cobra.Command, args []string) {
	dev, bus, err := openDisplay()
	if err != nil {
		logErr(cmd, err)
		return
	}
	defer bus.Close()
	if initOpts.Cursor || initOpts.Blink || initOpts.Off {
		if err := dev.Display(!initOpts.Off, initOpts.Cursor, initOpts.Blink); err != nil {
			logErr(cmd, err)
		}
	}
}
