package main

import (
	"fmt"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/nguyengg/otezip/zip"
)

// Append implements the `append` subcommand: add files to an archive that
// may already exist, creating it fresh if it does not.
type Append struct {
	Output    string `short:"o" long:"output" required:"yes" description:"path of the archive to append to"`
	Method    string `short:"m" long:"method" default:"deflate" description:"compression method: store, deflate, zstd, lzma, lz4, brotli, lzfse"`
	JunkPaths bool   `long:"junk-paths" description:"store only each file's own path under its input root, discarding the root's own directory component"`
	Args      struct {
		Files []flags.Filename `positional-arg-name:"file" required:"yes" description:"files or directories to add"`
	} `positional-args:"yes"`
}

func (c *Append) Execute(args []string) (err error) {
	if len(args) != 0 {
		return fmt.Errorf("unknown positional arguments: %s", strings.Join(args, " "))
	}

	method, err := parseMethod(c.Method)
	if err != nil {
		return err
	}

	a, err := zip.OpenFile(c.Output, zip.OpenFlag{Create: true}, zip.WithDefaultMethod(uint16(method)))
	if err != nil {
		return fmt.Errorf("open %q error: %w", c.Output, err)
	}
	defer func() {
		if cerr := a.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	for _, file := range c.Args.Files {
		if err = addPath(a, string(file), c.JunkPaths); err != nil {
			return fmt.Errorf("add %q error: %w", file, err)
		}
	}
	return nil
}
