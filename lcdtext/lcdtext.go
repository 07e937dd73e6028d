package lcdtext

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Codes with a fixed meaning in ROM A00.
const (
	Degree     byte = 0xDF
	Micro      byte = 0xE4
	Block      byte = 0xFF
	Unknown    byte = '?'
	Space      byte = ' '
	RightArrow byte = 0x7E
	LeftArrow  byte = 0x7F
)

// romA00 lists the non-ASCII glyphs of ROM A00 outside the katakana block.
var romA00 = map[rune]byte{
	'¥': 0x5C,
	'→': RightArrow,
	'←': LeftArrow,
	'°': Degree,
	'α': 0xE0,
	'ä': 0xE1,
	'β': 0xE2,
	'ß': 0xE2,
	'ε': 0xE3,
	'µ': Micro,
	'μ': Micro,
	'σ': 0xE5,
	'ρ': 0xE6,
	'√': 0xE8,
	'¢': 0xEC,
	'ñ': 0xEE,
	'ö': 0xEF,
	'θ': 0xF2,
	'∞': 0xF3,
	'Ω': 0xF4,
	'ü': 0xF5,
	'Σ': 0xF6,
	'π': 0xF7,
	'÷': 0xFD,
	'█': Block,
}

const (
	katakanaFirst rune = 0xFF61 // HALFWIDTH IDEOGRAPHIC FULL STOP
	katakanaLast  rune = 0xFF9F // HALFWIDTH KATAKANA SEMI-VOICED SOUND MARK
	katakanaCode  byte = 0xA1
)

// EncodeRune returns the ROM code for r and whether r has a glyph.
func EncodeRune(r rune) (byte, bool) {
	switch {
	case r >= 0 && r <= 0x07:
		return byte(r), true
	case r >= 0x20 && r <= 0x7D && r != '\\':
		return byte(r), true
	case r >= katakanaFirst && r <= katakanaLast:
		return katakanaCode + byte(r-katakanaFirst), true
	}
	c, ok := romA00[r]
	return c, ok
}

// Encode converts s to ROM codes, one code per glyph.
func Encode(s string) []byte {
	out := make([]byte, 0, len(s))
	fold := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	for _, r := range s {
		out = appendRune(out, fold, r)
	}
	return out
}

func appendRune(out []byte, fold transform.Transformer, r rune) []byte {
	if c, ok := EncodeRune(r); ok {
		return append(out, c)
	}
	if r == utf8.RuneError || r < utf8.RuneSelf {
		return append(out, Unknown)
	}
	if unicode.Is(unicode.Mn, r) {
		// Combining mark of an already decomposed string.
		return out
	}
	folded, _, err := transform.String(fold, string(r))
	if err != nil || folded == "" || folded == string(r) {
		return append(out, Unknown)
	}
	for _, f := range folded {
		c, ok := EncodeRune(f)
		if !ok {
			c = Unknown
		}
		out = append(out, c)
	}
	return out
}

// Fit returns b truncated or padded with spaces to exactly width codes.
// A new slice is always returned.
func Fit(b []byte, width int) []byte {
	if width <= 0 {
		return []byte{}
	}
	out := make([]byte, width)
	n := copy(out, b)
	for i := n; i < width; i++ {
		out[i] = Space
	}
	return out
}
