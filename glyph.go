package u8g2

import (
	"fmt"
	"image"
	"strings"
)

// Glyph is a decoded glyph. The bitmap's bottom-left corner is at (XOffset,YOffset) relative to the origin on the baseline, with y pointing up.
type Glyph struct {
	Rune    rune
	Width   int
	Height  int
	XOffset int
	YOffset int
	Advance int

	// Bitmap holds Width*Height bits in row-major order without row padding, most-significant bit first. Set bits are foreground pixels.
	Bitmap []byte
}

// At returns true if pixel (x,y) is set, with (0,0) the top-left pixel.
func (g *Glyph) At(x, y int) bool {
	if x < 0 || g.Width <= x || y < 0 || g.Height <= y {
		return false
	}
	i := y*g.Width + x
	return g.Bitmap[i/8]&(0x80>>(i%8)) != 0
}

func (g *Glyph) set(i int) {
	g.Bitmap[i/8] |= 0x80 >> (i % 8)
}

// Bounds returns the glyph's bitmap rectangle relative to the origin, in image coordinates with y pointing down.
func (g *Glyph) Bounds() image.Rectangle {
	return image.Rect(g.XOffset, -g.YOffset-g.Height, g.XOffset+g.Width, -g.YOffset)
}

// Mask returns the bitmap as an alpha mask with bounds (0,0)-(Width,Height).
func (g *Glyph) Mask() *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.At(x, y) {
				img.Pix[y*img.Stride+x] = 0xFF
			}
		}
	}
	return img
}

func (g *Glyph) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Glyph %v:\n", printableRune(g.Rune))
	fmt.Fprintf(&b, "  Size: %vx%v\n", g.Width, g.Height)
	fmt.Fprintf(&b, "  Offset: %v,%v\n", g.XOffset, g.YOffset)
	fmt.Fprintf(&b, "  Advance: %v\n", g.Advance)
	for y := 0; y < g.Height; y++ {
		b.WriteString("  ")
		for x := 0; x < g.Width; x++ {
			if g.At(x, y) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

////////////////////////////////////////////////////////////////

func (f *Font) decode(rec Record) (*Glyph, error) {
	g, _, err := f.decodeLen(rec)
	return g, err
}

// decodeLen unpacks the metrics and the run-length encoded bitmap of a record and returns the number of bytes used, which for a well-formed record equals its size. All reads are restricted to the record's declared size.
func (f *Font) decodeLen(rec Record) (*Glyph, uint32, error) {
	data := f.data[rec.Offset+rec.prefixSize() : rec.Offset+rec.Size]
	r := newBitReader(data)

	g := &Glyph{Rune: rec.Rune}
	for _, field := range f.layout {
		v := int(r.ReadField(field))
		switch field.ID {
		case FieldWidth:
			g.Width = v
		case FieldHeight:
			g.Height = v
		case FieldXOffset:
			g.XOffset = v
		case FieldYOffset:
			g.YOffset = v
		case FieldAdvance:
			g.Advance = v
		}
	}
	if r.EOF() {
		return nil, 0, fmt.Errorf("glyph %v: metrics exceed record size %d: %w", printableRune(rec.Rune), rec.Size, ErrTruncatedStream)
	}

	n := g.Width * g.Height
	g.Bitmap = make([]byte, (n+7)/8)
	if g.Width == 0 {
		return g, rec.prefixSize() + r.Len(), nil
	}

	// Each group holds a background and a foreground run that is repeated while the repeat bit is set. Runs wrap around at the end of a row, and groups continue until the last row has been reached.
	bg, fg, repeat := f.runs[0], f.runs[1], f.runs[2]
	i := 0
	for {
		n0 := int(r.ReadField(bg))
		n1 := int(r.ReadField(fg))
		for {
			i += n0
			for j := 0; j < n1; j++ {
				if i < n {
					g.set(i)
				}
				i++
			}
			if r.ReadField(repeat) == 0 || r.EOF() {
				break
			}
		}
		if r.EOF() {
			return nil, 0, fmt.Errorf("glyph %v: bitmap exceeds record size %d: %w", printableRune(rec.Rune), rec.Size, ErrTruncatedStream)
		} else if n <= i {
			break
		}
	}
	return g, rec.prefixSize() + r.Len(), nil
}
