package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jessevdk/go-flags"
	"github.com/nguyengg/otezip/codec"
	"github.com/nguyengg/otezip/zip"
)

// List implements the `list` subcommand: per-entry method name,
// human-readable sizes, modified time, and CRC-32 in hex.
type List struct {
	VerifyCRC bool `long:"verify-crc" description:"decode every entry and fail if its CRC-32 does not match"`
	Args      struct {
		Files []flags.Filename `positional-arg-name:"archive" required:"yes"`
	} `positional-args:"yes"`
}

func (c *List) Execute(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unknown positional arguments: %s", strings.Join(args, " "))
	}

	failed := false
	for _, file := range c.Args.Files {
		if err := c.listOne(string(file)); err != nil {
			fmt.Fprintf(os.Stderr, "list %q error: %v\n", file, err)
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("one or more archives could not be listed")
	}
	return nil
}

func (c *List) listOne(name string) error {
	var optFns []func(*zip.Options)
	if c.VerifyCRC {
		optFns = append(optFns, zip.WithStrictCRC())
	}

	a, err := zip.OpenFile(name, zip.OpenFlag{}, optFns...)
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Printf("Archive: %s\n", name)
	fmt.Printf("%10s  %10s  %-8s  %-16s  %-8s  %s\n", "Length", "Packed", "Method", "Modified", "CRC-32", "Name")

	for i, e := range a.Entries() {
		if c.VerifyCRC {
			f, err := a.Open(i)
			if err != nil {
				return fmt.Errorf("entry %q: %w", e.Name, err)
			}
			_ = f.Close()
		}

		fmt.Printf("%10s  %10s  %-8s  %-16s  %08x  %s\n",
			humanize.Bytes(uint64(e.UncompressedSize)),
			humanize.Bytes(uint64(e.CompressedSize)),
			codec.Method(e.Method).String(),
			e.Modified().Format("2006-01-02 15:04"),
			e.CRC32,
			e.Name)
	}

	return nil
}
