//go:build linux

package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(clearCmd)
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the display",
	Args:  cobra.NoArgs,
	Run:   clearDisplay,
}

func clearDisplay(cmd *cobra.Command, args []string) {
	dev, bus, err := openDisplay()
	if err != nil {
		logErr(cmd, err)
		return
	}
	defer bus.Close()
	if err := dev.Clear(); err != nil {
		logErr(cmd, err)
	}
}
