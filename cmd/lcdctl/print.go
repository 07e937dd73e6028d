//go:build linux

package main

import (
	"github.com/flavioheleno/hd44780/lcdtext"
	"github.com/spf13/cobra"
)

func init() {
	printCmd.Flags().IntVarP(&printOpts.Row, "row", "r", 0, "row of the first line")
	printCmd.Flags().IntVar(&printOpts.Col, "col", 0, "column of the first line")
	printCmd.Flags().BoolVarP(&printOpts.Pad, "pad", "p", false, "blank the rest of each row")
	rootCmd.AddCommand(printCmd)
}

var (
	printCmd = &cobra.Command{
		Use:   "print [flags] <line>...",
		Short: "Print text on the display",
		Long: `Print each argument on its own row, starting at --row and --col.

Text is UTF-8; characters without a glyph in the display ROM are replaced
by '?'. Lines longer than the row are truncated.`,
		Args: cobra.MinimumNArgs(1),
		Run:  printLines,
	}
	printOpts = struct {
		Row int
		Col int
		Pad bool
	}{}
)

func printLines(cmd *cobra.Command, args []string) {
	dev, bus, err := openDisplay()
	if err != nil {
		logErr(cmd, err)
		return
	}
	defer bus.Close()
	col := printOpts.Col
	for i, line := range args {
		row := printOpts.Row + i
		if err := dev.SetCursor(row, col); err != nil {
			logErr(cmd, err)
			return
		}
		b := lcdtext.Encode(line)
		width := dev.Cols() - col
		if printOpts.Pad || len(b) > width {
			b = lcdtext.Fit(b, width)
		}
		if _, err := dev.Write(b); err != nil {
			logErr(cmd, err)
			return
		}
		col = 0
	}
}
