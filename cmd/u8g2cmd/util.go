package main

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/tdewolff/prompt"
	"github.com/tdewolff/u8g2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

func printableRune(r rune) string {
	if unicode.IsGraphic(r) && r != ' ' {
		return fmt.Sprintf("%c %U", r, r)
	} else if r < 128 {
		return fmt.Sprintf("0x%02X", r)
	}
	return fmt.Sprintf("%U", r)
}

func printASCII(img image.Image) {
	palette := []byte("#+. ")

	size := img.Bounds().Max
	for j := img.Bounds().Min.Y; j < size.Y; j++ {
		for i := img.Bounds().Min.X; i < size.X; i++ {
			y := color.GrayModel.Convert(img.At(i, j)).(color.Gray).Y
			idx := int(float64(y)/255.0*float64(len(palette)-1) + 0.5)
			fmt.Print(string(palette[idx]))
		}
		fmt.Print("\n")
	}
}

func formatBytes(size uint64) string {
	if size < 10 {
		return fmt.Sprintf("%d B", size)
	}

	units := []string{"B", "kB", "MB", "GB", "TB", "PB", "EB"}
	scale := int(math.Floor((math.Log10(float64(size)) + math.Log10(2.0)) / 3.0))
	value := float64(size) / math.Pow10(scale*3.0)
	format := "%.0f %s"
	if value < 10.0 {
		format = "%.1f %s"
	}
	return fmt.Sprintf(format, value, units[scale])
}

func readFile(filename string) ([]byte, error) {
	var err error
	var r *os.File
	if filename == "-" {
		r = os.Stdin
	} else if r, err = os.Open(filename); err != nil {
		return nil, err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		r.Close()
		return nil, err
	} else if err := r.Close(); err != nil {
		return nil, err
	}
	return b, nil
}

// readFont reads a raw font blob or a C source file. The C source is nil for raw blobs.
func readFont(filename string) (*u8g2.Font, *u8g2.CSource, int, error) {
	b, err := readFile(filename)
	if err != nil {
		return nil, nil, 0, err
	}

	n := len(b)
	var src *u8g2.CSource
	if u8g2.IsCSource(b) {
		if src, err = u8g2.ParseCSource(b); err != nil {
			return nil, nil, 0, err
		}
		b = src.Data
	}

	font, err := u8g2.Parse(b)
	if err != nil {
		return nil, nil, 0, err
	}
	return font, src, n, nil
}

func writeFile(filename string, force bool, b []byte) error {
	var err error
	var w io.WriteCloser
	if filename == "-" {
		w = os.Stdout
	} else {
		if _, err := os.Stat(filename); err == nil {
			if !force && !prompt.YesNo(fmt.Sprintf("%s already exists, overwrite?", filename), false) {
				return fmt.Errorf("file already exists")
			}
		}
		if w, err = os.Create(filename); err != nil {
			return err
		}
	}

	if _, err := w.Write(b); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// lookupCharmap returns the single-byte encoding by its WHATWG label, eg. iso-8859-15 or windows-1252. An empty name returns nil, which means ISO 8859-1.
func lookupCharmap(name string) (*charmap.Charmap, error) {
	if name == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, err
	}
	cm, ok := enc.(*charmap.Charmap)
	if !ok {
		return nil, fmt.Errorf("not a single-byte encoding: %v", name)
	}
	return cm, nil
}

// parseRuneRange parses a code point or a range of code points, eg. 41 or 41-5a, in hexadecimal.
func parseRuneRange(s string) (rune, rune, error) {
	dash := strings.IndexByte(s, '-')
	if dash == -1 {
		v, err := strconv.ParseUint(s, 16, 21)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid unicode: %v", err)
		}
		return rune(v), rune(v), nil
	}
	first, err := strconv.ParseUint(s[:dash], 16, 21)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid unicode: %v", err)
	}
	last, err := strconv.ParseUint(s[dash+1:], 16, 21)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid unicode: %v", err)
	} else if last < first {
		return 0, 0, fmt.Errorf("invalid unicode range: %v", s)
	}
	return rune(first), rune(last), nil
}

// parseCharRange parses a literal character or a range of literal characters, eg. a or a-z.
func parseCharRange(s string) (rune, rune, error) {
	rs := []rune(s)
	if len(rs) == 1 {
		return rs[0], rs[0], nil
	} else if len(rs) == 3 && rs[1] == '-' && rs[0] <= rs[2] {
		return rs[0], rs[2], nil
	}
	return 0, 0, fmt.Errorf("invalid character range: %v", s)
}
