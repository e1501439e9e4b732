package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// openExclFile creates a new file for writing on the condition that the
// file did not exist prior to this call, appending a numeric suffix to
// the stem until one succeeds.
func openExclFile(stem, ext string) (*os.File, error) {
	name := stem + ext
	for i := 0; ; {
		f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
		switch {
		case err == nil:
			return f, nil
		case errors.Is(err, os.ErrExist):
			i++
			name = stem + "-" + strconv.Itoa(i) + ext
		default:
			return nil, fmt.Errorf("create file error: %w", err)
		}
	}
}

// splitStemAndExt splits name into its stem and final-dot extension.
func splitStemAndExt(name string) (stem, ext string) {
	ext = ""
	if idx := strings.LastIndexByte(name, '.'); idx > 0 {
		ext = name[idx:]
		name = name[:idx]
	}
	return name, ext
}
