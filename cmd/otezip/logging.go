package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
)

// prefix builds a "[i/n] "name" - " log prefix for commands operating on
// more than one file.
func prefix(i, n int, name flags.Filename) string {
	return fmt.Sprintf(`[%d/%d] "%s" - `, i, n, filepath.Base(string(name)))
}

type loggerKey struct{}

// withLogger attaches a *log.Logger writing to stderr with prefix to ctx.
// The library itself never writes to stderr; only the CLI does, through
// loggers like this one.
func withLogger(ctx context.Context, prefix string) context.Context {
	return context.WithValue(ctx, loggerKey{}, log.New(os.Stderr, prefix, 0))
}

// loggerFrom returns the logger attached to ctx, or a prefix-less default
// if Execute was called without going through withLogger.
func loggerFrom(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.New(os.Stderr, "", 0)
}
