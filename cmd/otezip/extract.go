package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/nguyengg/otezip/zip"
)

// Extract implements the `extract` subcommand: entry names are sanitised
// before touching the filesystem, and symlinks at the destination are
// never followed.
type Extract struct {
	Dest           string `short:"d" long:"dest" default:"." description:"directory to extract into"`
	Policy         string `long:"policy" default:"reject" description:"unsafe entry name policy: reject, strip, allow"`
	ForceOverwrite bool   `long:"force-overwrite" description:"overwrite existing files at the destination"`
	VerifyCRC      bool   `long:"verify-crc" description:"fail extraction if an entry's CRC-32 does not match"`
	IgnoreZipbomb  bool   `long:"ignore-zipbomb" description:"disable the expansion-ratio guard"`
	Args           struct {
		Files []flags.Filename `positional-arg-name:"archive" required:"yes"`
	} `positional-args:"yes"`
}

func (c *Extract) Execute(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unknown positional arguments: %s", strings.Join(args, " "))
	}

	policy, err := zip.ParseNamePolicy(c.Policy)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	n := len(c.Args.Files)
	failures := 0
	for i, file := range c.Args.Files {
		fileCtx := withLogger(ctx, prefix(i+1, n, file))
		logger := loggerFrom(fileCtx)
		logger.Printf("extracting")

		if err = c.extractOne(fileCtx, string(file), policy); err != nil {
			logger.Printf("extract error: %v", err)
			failures++
			continue
		}
		logger.Printf("done")
	}

	if failures > 0 {
		return fmt.Errorf("%d/%d archives failed to extract", failures, n)
	}
	return nil
}

func (c *Extract) extractOne(ctx context.Context, name string, policy zip.NamePolicy) error {
	var optFns []func(*zip.Options)
	if c.VerifyCRC {
		optFns = append(optFns, zip.WithStrictCRC())
	}
	if c.IgnoreZipbomb {
		optFns = append(optFns, zip.WithoutExpansionGuard())
	}
	optFns = append(optFns, zip.WithWarnFunc(func(op, msg string) {
		loggerFrom(ctx).Printf("%s: %s", op, msg)
	}))

	a, err := zip.OpenFile(name, zip.OpenFlag{}, optFns...)
	if err != nil {
		return err
	}
	defer a.Close()

	logger := loggerFrom(ctx)
	entries := a.Entries()

	var total int64
	for _, e := range entries {
		total += int64(e.UncompressedSize)
	}
	bar := progressBar(total, "extracting")

	for i, e := range entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		safe, err := policy.Sanitize(e.Name)
		if err != nil {
			logger.Printf("skip %q: %v", e.Name, err)
			continue
		}
		if safe == "" {
			continue
		}

		dest := filepath.Join(c.Dest, filepath.FromSlash(safe))

		if fi, err := os.Lstat(dest); err == nil {
			if fi.Mode()&os.ModeSymlink != 0 {
				return fmt.Errorf("refusing to write through symlink at %q", dest)
			}
			if !c.ForceOverwrite {
				return fmt.Errorf("%q already exists (use --force-overwrite)", dest)
			}
		}

		if strings.HasSuffix(e.Name, "/") {
			if err = os.MkdirAll(dest, 0o755); err != nil {
				return fmt.Errorf("create directory %q error: %w", dest, err)
			}
			continue
		}

		if err = os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("create directory for %q error: %w", dest, err)
		}

		if err = c.extractEntry(a, i, dest, bar); err != nil {
			return err
		}
	}

	return nil
}

func (c *Extract) extractEntry(a *zip.Archive, index int, dest string, bar io.Writer) error {
	f, err := a.Open(index)
	if err != nil {
		return fmt.Errorf("open entry %q error: %w", a.Entries()[index].Name, err)
	}
	defer f.Close()

	flag := os.O_RDWR | os.O_CREATE | os.O_TRUNC
	if !c.ForceOverwrite {
		flag |= os.O_EXCL
	}
	out, err := os.OpenFile(dest, flag, 0o644)
	if err != nil {
		return fmt.Errorf("create %q error: %w", dest, err)
	}
	defer out.Close()

	if _, err = io.Copy(io.MultiWriter(out, bar), f); err != nil {
		return fmt.Errorf("write %q error: %w", dest, err)
	}
	return nil
}
