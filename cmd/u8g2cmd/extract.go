package main

import (
	"fmt"

	"github.com/tdewolff/u8g2"
)

type Extract struct {
	Force  bool   `short:"f" desc:"Force overwriting existing files."`
	Output string `short:"o" desc:"Output file for the raw font blob."`
	Input  string `index:"0" desc:"Input C source file"`
}

func (cmd *Extract) Run() error {
	b, err := readFile(cmd.Input)
	if err != nil {
		return err
	}
	src, err := u8g2.ParseCSource(b)
	if err != nil {
		return fmt.Errorf("%v: %w", cmd.Input, err)
	} else if _, err := u8g2.Parse(src.Data); err != nil {
		return fmt.Errorf("%v: %w", cmd.Input, err)
	}

	if cmd.Output == "" {
		cmd.Output = src.Name + ".bin"
	}
	return writeFile(cmd.Output, cmd.Force, src.Data)
}
