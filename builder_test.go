package u8g2

import (
	"encoding/binary"
	"os"
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

// testGlyph describes a glyph by its metrics and rows of '#' (set) and '.' (unset) pixels.
type testGlyph struct {
	r          rune
	x, y, adv  int
	rows       []string
	emptyWidth int // width of a glyph without rows
}

func (g testGlyph) size() (int, int) {
	if len(g.rows) == 0 {
		return g.emptyWidth, 0
	}
	return len(g.rows[0]), len(g.rows)
}

func (g testGlyph) pixels() []bool {
	pixels := []bool{}
	for _, row := range g.rows {
		for _, c := range row {
			pixels = append(pixels, c == '#')
		}
	}
	return pixels
}

type bitWriter struct {
	buf []byte
	bit uint8
}

func (w *bitWriter) WriteBits(v uint32, n uint8) {
	for i := uint8(0); i < n; i++ {
		if w.bit == 0 {
			w.buf = append(w.buf, 0)
		}
		if v>>i&1 != 0 {
			w.buf[len(w.buf)-1] |= 1 << w.bit
		}
		w.bit = (w.bit + 1) % 8
	}
}

func (w *bitWriter) WriteSigned(v int, n uint8) {
	w.WriteBits(uint32(v+1<<(n-1)), n)
}

// encodeGlyph returns the bit stream of a record, without the code and size prefix.
func encodeGlyph(h Header, g testGlyph) []byte {
	width, height := g.size()
	w := &bitWriter{}
	w.WriteBits(uint32(width), h.BitsPerCharWidth)
	w.WriteBits(uint32(height), h.BitsPerCharHeight)
	w.WriteSigned(g.x, h.BitsPerCharX)
	w.WriteSigned(g.y, h.BitsPerCharY)
	w.WriteSigned(g.adv, h.BitsPerDeltaX)
	if width == 0 {
		return w.buf
	}

	pixels := g.pixels()
	max0, max1 := 1<<h.BitsPer0-1, 1<<h.BitsPer1-1
	i := 0
	for {
		n0 := 0
		for i < len(pixels) && !pixels[i] && n0 < max0 {
			n0++
			i++
		}
		n1 := 0
		for i < len(pixels) && pixels[i] && n1 < max1 {
			n1++
			i++
		}
		w.WriteBits(uint32(n0), h.BitsPer0)
		w.WriteBits(uint32(n1), h.BitsPer1)
		w.WriteBits(0, 1)
		if len(pixels) <= i {
			break
		}
	}
	return w.buf
}

var testHeader = Header{
	BitsPer0:          3,
	BitsPer1:          3,
	BitsPerCharWidth:  4,
	BitsPerCharHeight: 5,
	BitsPerCharX:      3,
	BitsPerCharY:      4,
	BitsPerDeltaX:     4,
	MaxCharWidth:      6,
	MaxCharHeight:     10,
	AscentA:           7,
	DescentG:          -2,
}

// buildFont encodes a font with 8-bit glyphs and Unicode glyphs split into blocks of the Unicode jump table. Glyphs must be sorted by code point.
func buildFont(h Header, glyphs []testGlyph, blocks ...[]testGlyph) []byte {
	b := make([]byte, HeaderSize)
	b[OffGlyphCount] = uint8(len(glyphs))
	for _, block := range blocks {
		b[OffGlyphCount] += uint8(len(block))
	}
	b[OffBBXMode] = h.BBXMode
	b[OffBitsPer0] = h.BitsPer0
	b[OffBitsPer1] = h.BitsPer1
	b[OffBitsPerCharWidth] = h.BitsPerCharWidth
	b[OffBitsPerCharHeight] = h.BitsPerCharHeight
	b[OffBitsPerCharX] = h.BitsPerCharX
	b[OffBitsPerCharY] = h.BitsPerCharY
	b[OffBitsPerDeltaX] = h.BitsPerDeltaX
	b[OffMaxCharWidth] = h.MaxCharWidth
	b[OffMaxCharHeight] = h.MaxCharHeight
	b[OffXOffset] = byte(h.XOffset)
	b[OffYOffset] = byte(h.YOffset)
	b[OffAscentA] = byte(h.AscentA)
	b[OffDescentG] = byte(h.DescentG)
	b[OffAscentPara] = byte(h.AscentPara)
	b[OffDescentPara] = byte(h.DescentPara)

	upperA, lowerA := -1, -1
	for _, g := range glyphs {
		if upperA == -1 && 'A' <= g.r {
			upperA = len(b) - HeaderSize
		}
		if lowerA == -1 && 'a' <= g.r {
			lowerA = len(b) - HeaderSize
		}
		data := encodeGlyph(h, g)
		b = append(b, byte(g.r), byte(recordPrefixSize+len(data)))
		b = append(b, data...)
	}
	if upperA == -1 {
		upperA = len(b) - HeaderSize
	}
	if lowerA == -1 {
		lowerA = len(b) - HeaderSize
	}
	b = append(b, 0, 0)
	binary.BigEndian.PutUint16(b[OffStartPosUpperA:], uint16(upperA))
	binary.BigEndian.PutUint16(b[OffStartPosLowerA:], uint16(lowerA))
	binary.BigEndian.PutUint16(b[OffStartPosUnicode:], uint16(len(b)-HeaderSize))

	if len(blocks) == 0 {
		blocks = [][]testGlyph{{}}
	}
	table := len(b)
	b = append(b, make([]byte, jumpEntrySize*len(blocks))...)
	prev := table
	for k, block := range blocks {
		start := len(b)
		last := uint16(0xFFFF)
		if k+1 < len(blocks) {
			last = uint16(block[len(block)-1].r)
		}
		binary.BigEndian.PutUint16(b[table+k*jumpEntrySize:], uint16(start-prev))
		binary.BigEndian.PutUint16(b[table+k*jumpEntrySize+2:], last)
		prev = start

		for _, g := range block {
			data := encodeGlyph(h, g)
			b = append(b, byte(g.r>>8), byte(g.r), byte(unicodeRecordPrefixSize+len(data)))
			b = append(b, data...)
		}
	}
	return append(b, 0, 0)
}

var testE = testGlyph{
	r: 'E', x: -1, y: 2, adv: 7,
	rows: []string{
		"######",
		"#.....",
		"#.....",
		"#####.",
		"#.....",
		"#.....",
		"######",
		"......",
		".#..#.",
		"#.##.#",
	},
}

func rowsString(g *Glyph) string {
	var b strings.Builder
	for y := 0; y < g.Height; y++ {
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

func loadTestFont(t *testing.T) *Font {
	t.Helper()
	b, err := os.ReadFile("testdata/u8g2_font_6x10_tf.bin")
	test.Error(t, err)
	font, err := Parse(b)
	test.Error(t, err)
	return font
}
