package u8g2

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tdewolff/test"
	"golang.org/x/text/encoding/charmap"
)

func TestFont6x10(t *testing.T) {
	font := loadTestFont(t)
	test.T(t, font.NumGlyphs(), 191)
	test.T(t, int(font.GlyphCount), 191)

	var tts = []struct {
		r               rune
		x, y, adv, w, h int
		rows            string
	}{
		{'A', 0, 0, 6, 5, 7, "..#..\n.#.#.\n#...#\n#...#\n#####\n#...#\n#...#\n"},
		{'!', 2, 0, 6, 1, 7, "#\n#\n#\n#\n#\n.\n#\n"},
		{'g', 0, -2, 6, 5, 7, ".####\n#...#\n#...#\n.####\n....#\n#...#\n.###.\n"},
		{'j', 1, -2, 6, 4, 9, "...#\n....\n..##\n...#\n...#\n...#\n#..#\n#..#\n.##.\n"},
		{'~', 0, 4, 6, 5, 3, ".#..#\n#.#.#\n#..#.\n"},
		{'é', 0, 0, 6, 5, 8, "...#.\n..#..\n.....\n.###.\n#...#\n#####\n#....\n.###.\n"},
	}
	for _, tt := range tts {
		t.Run(string(tt.r), func(t *testing.T) {
			g, err := font.Glyph(tt.r)
			test.Error(t, err)
			test.T(t, g.Rune, tt.r)
			test.T(t, g.XOffset, tt.x)
			test.T(t, g.YOffset, tt.y)
			test.T(t, g.Advance, tt.adv)
			test.T(t, g.Width, tt.w)
			test.T(t, g.Height, tt.h)
			test.T(t, rowsString(g), tt.rows)
		})
	}

	g, err := font.Glyph(' ')
	test.Error(t, err)
	test.T(t, g.Width, 0)
	test.T(t, g.Height, 0)
	test.T(t, g.Advance, 6)
	test.T(t, len(g.Bitmap), 0)
}

func TestFontBitmapPacking(t *testing.T) {
	font := loadTestFont(t)
	g, err := font.Glyph('A')
	test.Error(t, err)
	test.Bytes(t, g.Bitmap, []byte{0x22, 0xA3, 0x1F, 0xC6, 0x20})
}

func TestFontNotFound(t *testing.T) {
	font := loadTestFont(t)
	for _, r := range []rune{0x00, 0x1F, 0x7F, 0x80, 0x9F, 0x100, 0x20AC, 0xFFFF, 0x10000, -1} {
		t.Run(fmt.Sprintf("%U", r), func(t *testing.T) {
			_, err := font.Glyph(r)
			test.That(t, errors.Is(err, ErrNotFound), "expected ErrNotFound, got", err)
			_, err = font.ScanGlyph(r)
			test.That(t, errors.Is(err, ErrNotFound), "expected ErrNotFound, got", err)
			test.That(t, !font.HasGlyph(r))
		})
	}
}

func TestFontScanMatchesJump(t *testing.T) {
	font := loadTestFont(t)
	records, err := font.Records()
	test.Error(t, err)
	test.T(t, len(records), font.NumGlyphs())

	for _, rec := range records {
		jump, err := font.Glyph(rec.Rune)
		test.Error(t, err)
		scan, err := font.ScanGlyph(rec.Rune)
		test.Error(t, err)
		direct, err := font.GlyphAt(rec.Offset)
		test.Error(t, err)
		if diff := cmp.Diff(scan, jump); diff != "" {
			t.Errorf("glyph %U: jump lookup differs (-scan +jump):\n%s", rec.Rune, diff)
		}
		if diff := cmp.Diff(scan, direct); diff != "" {
			t.Errorf("glyph %U: direct decode differs (-scan +direct):\n%s", rec.Rune, diff)
		}
	}
}

func TestFontSkipConsistency(t *testing.T) {
	font := loadTestFont(t)
	records, err := font.Records()
	test.Error(t, err)

	for i, rec := range records {
		_, n, err := font.decodeLen(rec)
		test.Error(t, err)
		test.T(t, n, rec.Size, fmt.Sprintf("record %U", rec.Rune))
		if i+1 < len(records) && !records[i+1].unicode {
			test.T(t, records[i+1].Offset, rec.Offset+rec.Size)
		}
	}
}

func TestFontIdempotent(t *testing.T) {
	font := loadTestFont(t)
	for _, r := range []rune{'A', 'z', 0xFF} {
		g1, err := font.Glyph(r)
		test.Error(t, err)
		g2, err := font.Glyph(r)
		test.Error(t, err)
		if diff := cmp.Diff(g1, g2); diff != "" {
			t.Errorf("glyph %U differs between lookups:\n%s", r, diff)
		}
		g1.Bitmap[0] ^= 0xFF // glyphs do not share memory
		g3, err := font.Glyph(r)
		test.Error(t, err)
		test.Bytes(t, g3.Bitmap, g2.Bitmap)
	}
}

func TestFontTruncatedPrefix(t *testing.T) {
	font := loadTestFont(t)
	b := font.Bytes()
	for n := 0; n < len(b); n++ {
		_, err := Parse(b[:n])
		if n < HeaderSize {
			test.That(t, errors.Is(err, ErrMalformedHeader), fmt.Sprintf("prefix %d: expected ErrMalformedHeader, got %v", n, err))
		} else {
			test.That(t, errors.Is(err, ErrTruncatedStream), fmt.Sprintf("prefix %d: expected ErrTruncatedStream, got %v", n, err))
		}
	}
}

func TestFontTruncatedLookup(t *testing.T) {
	font := loadTestFont(t)
	b := font.Bytes()

	// bypass Parse to check that lookups are bounds checked on their own
	for n := HeaderSize; n < len(b); n += 7 {
		f := &Font{Header: font.Header, data: b[:n], layout: font.layout, runs: font.runs}
		for _, r := range []rune{' ', 'A', 'a', 0xFF, 0x20AC} {
			g, err := f.Glyph(r)
			if err == nil {
				test.That(t, g != nil)
				continue
			}
			test.That(t, errors.Is(err, ErrTruncatedStream) || errors.Is(err, ErrNotFound), fmt.Sprintf("prefix %d, %U: %v", n, r, err))
		}
	}
}

func TestFontCorruptedSize(t *testing.T) {
	font := loadTestFont(t)
	records, err := font.Records()
	test.Error(t, err)

	for _, rec := range records {
		for _, size := range []byte{0x00, 0x01, 0x02, 0x03, byte(rec.Size - 1), byte(rec.Size + 1), 0xFF} {
			b := append([]byte{}, font.Bytes()...)
			b[rec.Offset+1] = size

			f, err := Parse(b)
			if err != nil {
				test.That(t, errors.Is(err, ErrTruncatedStream) || errors.Is(err, ErrMalformedHeader), err)
				continue
			}
			for _, r := range []rune{rec.Rune, 'A', 'a', 0xFF} {
				if _, err := f.Glyph(r); err != nil {
					test.That(t, errors.Is(err, ErrTruncatedStream) || errors.Is(err, ErrNotFound), err)
				}
				if _, err := f.ScanGlyph(r); err != nil {
					test.That(t, errors.Is(err, ErrTruncatedStream) || errors.Is(err, ErrNotFound), err)
				}
			}
		}
	}
}

func TestFontGlyphByte(t *testing.T) {
	font := loadTestFont(t)

	g, err := font.GlyphByte(0xA4, nil)
	test.Error(t, err)
	test.T(t, g.Rune, '¤')

	_, err = font.GlyphByte(0xA4, charmap.ISO8859_15) // €
	test.That(t, errors.Is(err, ErrNotFound))

	g, err = font.GlyphByte(0xE9, charmap.Windows1252)
	test.Error(t, err)
	test.T(t, g.Rune, 'é')

	g, err = font.GlyphByte(0xE9, charmap.CodePage437) // Θ
	test.That(t, errors.Is(err, ErrNotFound))
	test.That(t, g == nil)
}

func TestFontGlyphAtTerminator(t *testing.T) {
	font := loadTestFont(t)
	records, err := font.Records()
	test.Error(t, err)
	last := records[len(records)-1]
	_, err = font.GlyphAt(last.Offset + last.Size)
	test.That(t, errors.Is(err, ErrNotFound))

	_, err = font.GlyphAt(uint32(len(font.Bytes())) + 1)
	test.That(t, errors.Is(err, ErrTruncatedStream))
}

func TestFontInkBounds(t *testing.T) {
	font := loadTestFont(t)
	bounds, err := font.InkBounds()
	test.Error(t, err)
	test.T(t, bounds, Bounds{XMin: 0, XMax: 6, YMin: -2, YMax: 8})
	test.That(t, bounds.XMax-bounds.XMin <= int(font.MaxCharWidth))
	test.That(t, bounds.YMax-bounds.YMin <= int(font.MaxCharHeight))
}

func FuzzGlyph(f *testing.F) {
	f.Add(buildFont(testHeader, []testGlyph{testE}), int32('E'))
	f.Add(buildFont(testHeader, nil, []testGlyph{{r: 0x20AC, rows: []string{"#"}}}), int32(0x20AC))
	f.Fuzz(func(t *testing.T, b []byte, r int32) {
		font, err := Parse(b)
		if err != nil {
			return
		}
		if _, err := font.Glyph(r); err != nil && !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrTruncatedStream) {
			t.Fatal(err)
		}
		if _, err := font.ScanGlyph(r); err != nil && !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrTruncatedStream) {
			t.Fatal(err)
		}
		if _, err := font.InkBounds(); err != nil && !errors.Is(err, ErrTruncatedStream) {
			t.Fatal(err)
		}
	})
}
