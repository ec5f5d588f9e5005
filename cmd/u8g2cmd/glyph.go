package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tdewolff/u8g2"
)

type Glyphs struct {
	Chars    []string `short:"c" name:"char" desc:"List of literal characters to show, eg. a-z."`
	Unicodes []string `short:"u" name:"unicode" desc:"List of unicode IDs to show, eg. 41-5a."`
	Bytes    []string `short:"b" name:"byte" desc:"List of byte values in the given charset, eg. 0xA4."`
	Charset  string   `desc:"Single-byte charset for byte values, eg. iso-8859-15. Defaults to ISO 8859-1."`
	All      bool     `short:"a" desc:"Show all glyphs."`
	Scan     bool     `desc:"Scan linearly instead of using the jump table."`
	Input    string   `index:"0" desc:"Input font file (raw blob or C source)"`
}

func (cmd *Glyphs) Run() error {
	font, _, _, err := readFont(cmd.Input)
	if err != nil {
		return fmt.Errorf("%v: %w", cmd.Input, err)
	}

	cm, err := lookupCharmap(cmd.Charset)
	if err != nil {
		return err
	}

	glyph := font.Glyph
	if cmd.Scan {
		glyph = font.ScanGlyph
	}
	show := func(r rune) error {
		g, err := glyph(r)
		if errors.Is(err, u8g2.ErrNotFound) {
			Warning.Println("glyph not found:", printableRune(r))
			return nil
		} else if err != nil {
			return err
		}
		fmt.Print(g.String())
		return nil
	}

	if cmd.All {
		records, err := font.Records()
		if err != nil {
			return err
		}
		for _, rec := range records {
			g, err := font.GlyphAt(rec.Offset)
			if err != nil {
				return err
			}
			fmt.Print(g.String())
		}
	}
	for _, s := range cmd.Chars {
		first, last, err := parseCharRange(s)
		if err != nil {
			return err
		}
		for r := first; r <= last; r++ {
			if err := show(r); err != nil {
				return err
			}
		}
	}
	for _, s := range cmd.Unicodes {
		first, last, err := parseRuneRange(s)
		if err != nil {
			return err
		}
		for r := first; r <= last; r++ {
			if err := show(r); err != nil {
				return err
			}
		}
	}
	for _, s := range cmd.Bytes {
		c, err := strconv.ParseUint(s, 0, 8)
		if err != nil {
			return fmt.Errorf("invalid byte: %v", err)
		}
		g, err := font.GlyphByte(byte(c), cm)
		if errors.Is(err, u8g2.ErrNotFound) {
			Warning.Printf("glyph not found for byte 0x%02X\n", c)
			continue
		} else if err != nil {
			return err
		}
		fmt.Print(g.String())
	}
	return nil
}
