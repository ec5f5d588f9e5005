package main

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/tdewolff/u8g2"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

type Draw struct {
	Force   bool   `short:"f" desc:"Force overwriting existing files."`
	Scale   int    `short:"s" default:"1" desc:"Integer scale factor for image output."`
	Charset string `desc:"Single-byte charset of the text file, eg. iso-8859-15. Defaults to UTF-8."`
	File    string `short:"t" name:"text-file" desc:"Read text from file instead."`
	Output  string `short:"o" desc:"Output PNG image, otherwise draw to the terminal."`
	Input   string `index:"0" desc:"Input font file (raw blob or C source)"`
	Text    string `index:"1" desc:"Text to draw"`
}

func (cmd *Draw) Run() error {
	f, _, _, err := readFont(cmd.Input)
	if err != nil {
		return fmt.Errorf("%v: %w", cmd.Input, err)
	} else if cmd.Scale < 1 {
		return fmt.Errorf("invalid scale: %v", cmd.Scale)
	}

	text := cmd.Text
	if cmd.File != "" {
		b, err := readFile(cmd.File)
		if err != nil {
			return err
		}
		if cmd.Charset != "" {
			cm, err := lookupCharmap(cmd.Charset)
			if err != nil {
				return err
			} else if b, err = cm.NewDecoder().Bytes(b); err != nil {
				return err
			}
		}
		text = string(bytes.TrimRight(b, "\n"))
	}

	face := u8g2.NewFace(f)
	for _, r := range text {
		if r != '\n' && !f.HasGlyph(r) {
			Warning.Println("glyph not found:", printableRune(r))
		}
	}

	lines := bytes.Split([]byte(text), []byte("\n"))
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	width := 0
	for _, line := range lines {
		width = max(width, font.MeasureBytes(face, line).Ceil())
	}
	img := image.NewGray(image.Rect(0, 0, width, lineHeight*len(lines)))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: face,
	}
	for i, line := range lines {
		drawer.Dot = fixed.P(0, i*lineHeight+metrics.Ascent.Ceil())
		drawer.DrawBytes(line)
	}

	if cmd.Output == "" {
		printASCII(img)
		return nil
	}

	var dst image.Image = img
	if 1 < cmd.Scale {
		dst = scale(img, cmd.Scale)
	}
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, dst); err != nil {
		return err
	}
	return writeFile(cmd.Output, cmd.Force, buf.Bytes())
}

// scale enlarges the image by an integer factor using nearest neighbour sampling.
func scale(src *image.Gray, n int) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()*n, b.Dy()*n))
	for y := 0; y < dst.Rect.Dy(); y++ {
		for x := 0; x < dst.Rect.Dx(); x++ {
			dst.Pix[y*dst.Stride+x] = src.Pix[(y/n)*src.Stride+x/n]
		}
	}
	return dst
}
