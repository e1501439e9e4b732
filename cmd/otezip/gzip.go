package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/nguyengg/otezip/codec/deflate"
)

// Gzip implements the `gzip` subcommand: wrap each file in a standalone
// RFC 1952 gzip member using the same DEFLATE codec the ZIP container
// uses, independent of any archive.
type Gzip struct {
	Level int `short:"l" long:"level" default:"-1" description:"compression level 0-9, or -1 for the codec's default"`
	Args  struct {
		Files []flags.Filename `positional-arg-name:"file" required:"yes"`
	} `positional-args:"yes"`
}

func (c *Gzip) Execute(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unknown positional arguments: %s", strings.Join(args, " "))
	}

	failures := 0
	for _, file := range c.Args.Files {
		if err := c.gzipOne(string(file)); err != nil {
			fmt.Fprintf(os.Stderr, "gzip %q error: %v\n", file, err)
			failures++
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d file(s) failed to compress", failures)
	}
	return nil
}

func (c *Gzip) gzipOne(name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}

	framed, err := deflate.EncodeGzip(data, c.Level)
	if err != nil {
		return fmt.Errorf("encode error: %w", err)
	}

	out, err := openExclFile(name, ".gz")
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = out.Write(framed)
	return err
}
