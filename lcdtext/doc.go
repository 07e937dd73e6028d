// Package lcdtext converts Go strings to HD44780 character codes.
//
// The HD44780 character generator ROM is not Unicode. The common A00 variant
// holds ASCII in 0x20-0x7D (with 0x5C showing ¥ and 0x7E/0x7F showing
// arrows), half-width katakana in 0xA1-0xDF, and a handful of Greek letters
// and symbols in 0xE0-0xFF. Codes 0x00-0x07 address the eight user defined
// CGRAM characters.
//
// Memory layout example for "23.5°C":
//
//	Runes: '2'  '3'  '.'  '5'  '°'  'C'
//	Codes: 0x32 0x33 0x2E 0x35 0xDF 0x43
//
// Runes with no glyph are decomposed (NFKD) and stripped of combining marks,
// so "café" becomes "cafe"; anything left without a glyph becomes '?'.
//
// Example usage:
//
//	line := lcdtext.Fit(lcdtext.Encode("Temp: 23.5°C"), 16)
//	dev.SetCursor(1, 0)
//	dev.Write(line)
package lcdtext
