//go:build gofuzz
// +build gofuzz

package fuzz

import "github.com/tdewolff/u8g2"

// Fuzz is a fuzz test.
func Fuzz(data []byte) int {
	font, err := u8g2.Parse(data)
	if err != nil {
		return 0
	}
	for _, r := range []rune{' ', 'A', 'a', 'z', 0xFF, 0x20AC} {
		_, _ = font.Glyph(r)
		_, _ = font.ScanGlyph(r)
	}
	return 1
}
