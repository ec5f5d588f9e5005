package u8g2

import (
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2"
)

// Format description:
// https://github.com/olikraus/u8g2/wiki/u8g2fontformat

// HeaderSize is the size of the fixed font header in bytes.
const HeaderSize = 23

// Byte offsets of the header fields.
const (
	OffGlyphCount        = 0
	OffBBXMode           = 1
	OffBitsPer0          = 2
	OffBitsPer1          = 3
	OffBitsPerCharWidth  = 4
	OffBitsPerCharHeight = 5
	OffBitsPerCharX      = 6
	OffBitsPerCharY      = 7
	OffBitsPerDeltaX     = 8
	OffMaxCharWidth      = 9
	OffMaxCharHeight     = 10
	OffXOffset           = 11
	OffYOffset           = 12
	OffAscentA           = 13
	OffDescentG          = 14
	OffAscentPara        = 15
	OffDescentPara       = 16
	OffStartPosUpperA    = 17
	OffStartPosLowerA    = 19
	OffStartPosUnicode   = 21
)

// MaxFieldBits is the largest bit width a header may declare for a record field.
const MaxFieldBits = 8

// record prefix sizes of the 8-bit and the Unicode section
const (
	recordPrefixSize        = 2 // code, size
	unicodeRecordPrefixSize = 3 // code (BE), size
	jumpEntrySize           = 4 // delta (BE), last code (BE)
)

// Header is the fixed-size header at the start of a font blob.
type Header struct {
	GlyphCount uint8 // informational, not used for iteration
	BBXMode    uint8

	BitsPer0          uint8
	BitsPer1          uint8
	BitsPerCharWidth  uint8
	BitsPerCharHeight uint8
	BitsPerCharX      uint8
	BitsPerCharY      uint8
	BitsPerDeltaX     uint8

	MaxCharWidth  uint8
	MaxCharHeight uint8
	XOffset       int8
	YOffset       int8

	AscentA     int8
	DescentG    int8
	AscentPara  int8
	DescentPara int8

	// relative to the end of the header
	StartPosUpperA  uint16
	StartPosLowerA  uint16
	StartPosUnicode uint16
}

// ParseHeader parses the font header from the start of b.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("header: %d bytes, need %d: %w", len(b), HeaderSize, ErrMalformedHeader)
	}

	r := parse.NewBinaryReader(b[:HeaderSize])
	h := Header{}
	h.GlyphCount = r.ReadUint8()
	h.BBXMode = r.ReadUint8()
	h.BitsPer0 = r.ReadUint8()
	h.BitsPer1 = r.ReadUint8()
	h.BitsPerCharWidth = r.ReadUint8()
	h.BitsPerCharHeight = r.ReadUint8()
	h.BitsPerCharX = r.ReadUint8()
	h.BitsPerCharY = r.ReadUint8()
	h.BitsPerDeltaX = r.ReadUint8()
	h.MaxCharWidth = r.ReadUint8()
	h.MaxCharHeight = r.ReadUint8()
	h.XOffset = int8(r.ReadUint8())
	h.YOffset = int8(r.ReadUint8())
	h.AscentA = int8(r.ReadUint8())
	h.DescentG = int8(r.ReadUint8())
	h.AscentPara = int8(r.ReadUint8())
	h.DescentPara = int8(r.ReadUint8())
	h.StartPosUpperA = r.ReadUint16()
	h.StartPosLowerA = r.ReadUint16()
	h.StartPosUnicode = r.ReadUint16()
	if r.EOF() {
		return Header{}, fmt.Errorf("header: %w", ErrMalformedHeader)
	}
	if err := h.Validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// Validate checks that every record of the font can be decoded with the declared bit widths.
func (h Header) Validate() error {
	if 3 < h.BBXMode {
		return fmt.Errorf("header: bad BBX mode %d: %w", h.BBXMode, ErrMalformedHeader)
	}
	for _, field := range append(h.RecordLayout(), h.RunLayout()...) {
		if field.Bits == 0 || MaxFieldBits < field.Bits {
			return fmt.Errorf("header: bad bit width %d for %v: %w", field.Bits, field.ID, ErrMalformedHeader)
		}
	}
	return nil
}

func (h Header) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Glyphs: %v\n", h.GlyphCount)
	fmt.Fprintf(&b, "BBX mode: %v\n", h.BBXMode)
	fmt.Fprintf(&b, "Bits per run: %v background, %v foreground\n", h.BitsPer0, h.BitsPer1)
	fmt.Fprintf(&b, "Bits per field: w=%v h=%v x=%v y=%v dx=%v\n", h.BitsPerCharWidth, h.BitsPerCharHeight, h.BitsPerCharX, h.BitsPerCharY, h.BitsPerDeltaX)
	fmt.Fprintf(&b, "Max size: %vx%v\n", h.MaxCharWidth, h.MaxCharHeight)
	fmt.Fprintf(&b, "Offset: %v,%v\n", h.XOffset, h.YOffset)
	fmt.Fprintf(&b, "Ascent: %v (A), %v (para)\n", h.AscentA, h.AscentPara)
	fmt.Fprintf(&b, "Descent: %v (g), %v (para)\n", h.DescentG, h.DescentPara)
	fmt.Fprintf(&b, "Start: A=%v a=%v unicode=%v", h.StartPosUpperA, h.StartPosLowerA, h.StartPosUnicode)
	return b.String()
}

////////////////////////////////////////////////////////////////

// FieldID identifies a bit field inside a glyph record.
type FieldID int

// see FieldID
const (
	FieldWidth FieldID = iota
	FieldHeight
	FieldXOffset
	FieldYOffset
	FieldAdvance
	FieldBackgroundRun
	FieldForegroundRun
	FieldRepeat
)

func (id FieldID) String() string {
	switch id {
	case FieldWidth:
		return "width"
	case FieldHeight:
		return "height"
	case FieldXOffset:
		return "x_offset"
	case FieldYOffset:
		return "y_offset"
	case FieldAdvance:
		return "advance"
	case FieldBackgroundRun:
		return "background_run"
	case FieldForegroundRun:
		return "foreground_run"
	case FieldRepeat:
		return "repeat"
	}
	return fmt.Sprintf("FieldID(%d)", int(id))
}

// Field is a bit field inside a glyph record. Signed fields are stored biased by 2^(Bits-1).
type Field struct {
	ID     FieldID
	Bits   uint8
	Signed bool
}

// RecordLayout returns the ordered metric fields at the start of every glyph record's bit stream.
func (h Header) RecordLayout() []Field {
	return []Field{
		{FieldWidth, h.BitsPerCharWidth, false},
		{FieldHeight, h.BitsPerCharHeight, false},
		{FieldXOffset, h.BitsPerCharX, true},
		{FieldYOffset, h.BitsPerCharY, true},
		{FieldAdvance, h.BitsPerDeltaX, true},
	}
}

// RunLayout returns the ordered fields of one run-length group of the bitmap. The repeat bit is read after each pair of runs and repeats the pair while set.
func (h Header) RunLayout() []Field {
	return []Field{
		{FieldBackgroundRun, h.BitsPer0, false},
		{FieldForegroundRun, h.BitsPer1, false},
		{FieldRepeat, 1, false},
	}
}
