package u8g2

import (
	"fmt"
	"unicode"
)

// ErrMalformedHeader is returned if the font blob is shorter than the header or declares unusable bit widths.
var ErrMalformedHeader = fmt.Errorf("malformed header")

// ErrTruncatedStream is returned if a record or jump table runs past the end of the font blob or past its own declared size.
var ErrTruncatedStream = fmt.Errorf("truncated stream")

// ErrNotFound is returned if a well-formed font has no glyph for the requested code point.
var ErrNotFound = fmt.Errorf("glyph not found")

func printableRune(r rune) string {
	if unicode.IsGraphic(r) && r != ' ' {
		return fmt.Sprintf("'%c' %U", r, r)
	}
	return fmt.Sprintf("%U", r)
}
