package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/nguyengg/otezip/codec/deflate"
)

// Gunzip implements the `gunzip` subcommand: decode a standalone RFC 1952
// gzip member using the same DEFLATE codec the ZIP container uses.
type Gunzip struct {
	Args struct {
		Files []flags.Filename `positional-arg-name:"file" required:"yes"`
	} `positional-args:"yes"`
}

func (c *Gunzip) Execute(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unknown positional arguments: %s", strings.Join(args, " "))
	}

	failures := 0
	for _, file := range c.Args.Files {
		if err := c.gunzipOne(string(file)); err != nil {
			fmt.Fprintf(os.Stderr, "gunzip %q error: %v\n", file, err)
			failures++
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d file(s) failed to decompress", failures)
	}
	return nil
}

func (c *Gunzip) gunzipOne(name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}

	decoded, err := deflate.DecodeGzip(data)
	if err != nil {
		return fmt.Errorf("decode error: %w", err)
	}

	stem, ext := splitStemAndExt(name)
	outStem, outExt := name, "-decoded"
	if ext == ".gz" {
		outStem, outExt = stem, ""
	}

	out, err := openExclFile(outStem, outExt)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = out.Write(decoded)
	return err
}
