package u8g2

import (
	"fmt"

	"github.com/tdewolff/parse/v2"
	"golang.org/x/text/encoding/charmap"
)

// Font is a parsed u8g2 font. It references the blob passed to Parse, which must not be modified afterwards. A Font is safe for concurrent use.
type Font struct {
	Header
	data   []byte
	layout []Field
	runs   []Field

	numRecords int
}

// Parse parses a u8g2 font blob. It validates the header and walks every record once to verify the stream is complete, but does not decode any bitmaps. The blob is not copied.
func Parse(b []byte) (*Font, error) {
	h, err := ParseHeader(b)
	if err != nil {
		return nil, err
	}
	f := &Font{
		Header: h,
		data:   b,
		layout: h.RecordLayout(),
		runs:   h.RunLayout(),
	}

	records, err := f.Records()
	if err != nil {
		return nil, err
	}
	f.numRecords = len(records)
	return f, nil
}

// NumGlyphs returns the number of glyph records in the font. Unlike GlyphCount from the header, this is the actual number of records.
func (f *Font) NumGlyphs() int {
	return f.numRecords
}

// Bytes returns the underlying font blob.
func (f *Font) Bytes() []byte {
	return f.data
}

// Glyph returns the decoded glyph for code point r. It uses the jump offsets of the header and the Unicode jump table to skip ahead, and then scans linearly. It returns ErrNotFound if the font has no such glyph.
func (f *Font) Glyph(r rune) (*Glyph, error) {
	rec, err := f.find(r, true)
	if err != nil {
		return nil, err
	}
	return f.decode(rec)
}

// ScanGlyph is like Glyph but ignores all jump offsets and scans from the start of the section containing r.
func (f *Font) ScanGlyph(r rune) (*Glyph, error) {
	rec, err := f.find(r, false)
	if err != nil {
		return nil, err
	}
	return f.decode(rec)
}

// GlyphByte returns the glyph for byte c of a single-byte encoding, such as charmap.ISO8859_15 or charmap.Windows1252. A nil charmap means ISO 8859-1, which coincides with the first 256 Unicode code points.
func (f *Font) GlyphByte(c byte, cm *charmap.Charmap) (*Glyph, error) {
	r := rune(c)
	if cm != nil {
		r = cm.DecodeByte(c)
	}
	return f.Glyph(r)
}

// GlyphAt decodes the record at the given byte offset into the blob, as returned by Records.
func (f *Font) GlyphAt(offset uint32) (*Glyph, error) {
	unicodeStart, ok := f.unicodeStart()
	rec, err := f.readRecord(offset, ok && unicodeStart <= offset)
	if err != nil {
		return nil, err
	} else if rec.Size == 0 {
		return nil, fmt.Errorf("offset %d: terminator record: %w", offset, ErrNotFound)
	}
	return f.decode(rec)
}

// HasGlyph returns true if the font contains a glyph for r.
func (f *Font) HasGlyph(r rune) bool {
	_, err := f.find(r, true)
	return err == nil
}

////////////////////////////////////////////////////////////////

// Record locates a glyph record in the font blob.
type Record struct {
	Rune   rune
	Offset uint32 // from the start of the blob
	Size   uint32 // including the code and size prefix

	unicode bool
}

func (rec Record) prefixSize() uint32 {
	if rec.unicode {
		return unicodeRecordPrefixSize
	}
	return recordPrefixSize
}

// Records returns the location of every glyph record of the font, in stream order. Only the record prefixes are read, each record is skipped by its declared size.
func (f *Font) Records() ([]Record, error) {
	records := []Record{}
	pos := uint32(HeaderSize)
	for {
		rec, err := f.readRecord(pos, false)
		if err != nil {
			return records, err
		} else if rec.Size == 0 {
			break
		}
		records = append(records, rec)
		pos += rec.Size
	}

	if _, ok := f.unicodeStart(); !ok {
		return records, nil
	}
	pos, err := f.unicodeRecordsStart()
	if err != nil {
		return records, err
	}
	for {
		rec, err := f.readRecord(pos, true)
		if err != nil {
			return records, err
		} else if rec.Size == 0 {
			break
		}
		records = append(records, rec)
		pos += rec.Size
	}
	return records, nil
}

// readRecord reads the prefix of the record at pos. A terminating record has a zero size.
func (f *Font) readRecord(pos uint32, unicode bool) (Record, error) {
	if uint32(len(f.data)) < pos {
		return Record{}, fmt.Errorf("record at %d: past end of font: %w", pos, ErrTruncatedStream)
	}

	r := parse.NewBinaryReader(f.data[pos:])
	rec := Record{Offset: pos, unicode: unicode}
	if unicode {
		rec.Rune = rune(r.ReadUint16())
		if rec.Rune == 0 {
			if r.EOF() {
				return Record{}, fmt.Errorf("record at %d: %w", pos, ErrTruncatedStream)
			}
			return rec, nil
		}
		rec.Size = uint32(r.ReadUint8())
	} else {
		rec.Rune = rune(r.ReadUint8())
		rec.Size = uint32(r.ReadUint8())
	}
	if r.EOF() {
		return Record{}, fmt.Errorf("record at %d: %w", pos, ErrTruncatedStream)
	} else if rec.Size == 0 {
		if unicode {
			return Record{}, fmt.Errorf("record %v at %d: zero size: %w", printableRune(rec.Rune), pos, ErrTruncatedStream)
		}
		return rec, nil
	} else if rec.Size < rec.prefixSize() || uint32(len(f.data))-pos < rec.Size {
		return Record{}, fmt.Errorf("record %v at %d: bad size %d: %w", printableRune(rec.Rune), pos, rec.Size, ErrTruncatedStream)
	}
	return rec, nil
}

// find locates the record for r, either using the jump offsets or scanning from the start of the section.
func (f *Font) find(r rune, jump bool) (Record, error) {
	if r < 0 || 0xFFFF < r {
		return Record{}, fmt.Errorf("%v: %w", printableRune(r), ErrNotFound)
	}

	var pos uint32
	unicode := 0xFF < r
	if !unicode {
		pos = HeaderSize
		if jump && 'a' <= r {
			pos += uint32(f.StartPosLowerA)
		} else if jump && 'A' <= r {
			pos += uint32(f.StartPosUpperA)
		}
	} else if _, ok := f.unicodeStart(); !ok {
		return Record{}, fmt.Errorf("%v: %w", printableRune(r), ErrNotFound)
	} else if jump {
		var err error
		if pos, err = f.unicodeJump(r); err != nil {
			return Record{}, err
		}
	} else {
		var err error
		if pos, err = f.unicodeRecordsStart(); err != nil {
			return Record{}, err
		}
	}

	for {
		rec, err := f.readRecord(pos, unicode)
		if err != nil {
			return Record{}, err
		} else if rec.Size == 0 {
			return Record{}, fmt.Errorf("%v: %w", printableRune(r), ErrNotFound)
		} else if rec.Rune == r {
			return rec, nil
		}
		pos += rec.Size
	}
}

// unicodeStart returns the offset of the Unicode jump table, or false if the font has no Unicode section.
func (f *Font) unicodeStart() (uint32, bool) {
	if f.StartPosUnicode == 0 {
		return 0, false
	}
	return HeaderSize + uint32(f.StartPosUnicode), true
}

// readJumpEntry reads the jump table entry at pos.
func (f *Font) readJumpEntry(pos uint32) (uint16, uint16, error) {
	if uint32(len(f.data)) < pos || uint32(len(f.data))-pos < jumpEntrySize {
		return 0, 0, fmt.Errorf("jump table entry at %d: %w", pos, ErrTruncatedStream)
	}
	r := parse.NewBinaryReader(f.data[pos : pos+jumpEntrySize])
	delta := r.ReadUint16()
	last := r.ReadUint16()
	return delta, last, nil
}

// unicodeJump returns the offset of the first record of the block of the jump table that may contain r. Each jump table entry holds the distance to the next block and the last code point before that block.
func (f *Font) unicodeJump(r rune) (uint32, error) {
	table, _ := f.unicodeStart()
	pos := table
	for {
		delta, last, err := f.readJumpEntry(table)
		if err != nil {
			return 0, err
		}
		pos += uint32(delta)
		table += jumpEntrySize
		if r <= rune(last) {
			return pos, nil
		}
	}
}

// unicodeRecordsStart returns the offset of the first Unicode record, directly after the jump table.
func (f *Font) unicodeRecordsStart() (uint32, error) {
	table, _ := f.unicodeStart()
	for {
		_, last, err := f.readJumpEntry(table)
		if err != nil {
			return 0, err
		}
		table += jumpEntrySize
		if last == 0xFFFF {
			return table, nil
		}
	}
}
