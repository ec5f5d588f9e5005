package main

import (
	"log"
	"os"

	"github.com/tdewolff/argp"
)

var (
	Error   *log.Logger
	Warning *log.Logger
)

func main() {
	Error = log.New(os.Stderr, "ERROR: ", 0)
	Warning = log.New(os.Stderr, "WARNING: ", 0)

	cmd := argp.New("Command line toolkit for u8g2 bitmap fonts")
	cmd.AddCmd(&Info{}, "info", "Get font info")
	cmd.AddCmd(&Glyphs{}, "glyph", "Show decoded glyphs")
	cmd.AddCmd(&Draw{}, "draw", "Draw text in terminal or output to image")
	cmd.AddCmd(&Extract{}, "extract", "Extract the font blob from a C source file")
	cmd.Parse()
}
