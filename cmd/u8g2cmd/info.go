package main

import (
	"fmt"
)

type Info struct {
	Records bool   `short:"r" desc:"List all glyph records"`
	Input   string `index:"0" desc:"Input font file (raw blob or C source)"`
}

func (cmd *Info) Run() error {
	font, src, n, err := readFont(cmd.Input)
	if err != nil {
		return fmt.Errorf("%v: %w", cmd.Input, err)
	}

	fmt.Printf("File: %s (%s)\n", cmd.Input, formatBytes(uint64(n)))
	if src != nil {
		fmt.Printf("Name: %s\n", src.Name)
		if src.FontName != "" {
			fmt.Printf("Font name: %s\n", src.FontName)
		}
		if src.Copyright != "" {
			fmt.Printf("Copyright: %s\n", src.Copyright)
		}
	}
	fmt.Printf("Blob: %d bytes\n\n", len(font.Bytes()))
	fmt.Println(font.Header.String())

	records, err := font.Records()
	if err != nil {
		return err
	}
	fmt.Printf("\nRecords: %d\n", len(records))
	if len(records) != int(font.GlyphCount) {
		Warning.Printf("header declares %d glyphs, stream has %d\n", font.GlyphCount, len(records))
	}

	bounds, err := font.InkBounds()
	if err != nil {
		return err
	}
	fmt.Printf("Ink bounds: x=[%d,%d) y=[%d,%d)\n", bounds.XMin, bounds.XMax, bounds.YMin, bounds.YMax)
	if int(font.MaxCharWidth) < bounds.XMax-bounds.XMin || int(font.MaxCharHeight) < bounds.YMax-bounds.YMin {
		Warning.Printf("ink bounds exceed maximum glyph size %dx%d\n", font.MaxCharWidth, font.MaxCharHeight)
	}

	if cmd.Records {
		fmt.Printf("\nRecord table:\n")
		for i, rec := range records {
			fmt.Printf("  %3d  %-12s  offset=%5d  size=%3d\n", i, printableRune(rec.Rune), rec.Offset, rec.Size)
		}
	}
	return nil
}
