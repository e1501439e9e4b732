package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nguyengg/otezip/zip"
)

// addPath adds root to a: a single file is added under its base name; a
// directory is walked recursively, joining each file's path under root's
// base name unless junkPaths discards it.
func addPath(a *zip.Archive, root string, junkPaths bool) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("stat %q error: %w", root, err)
	}

	if !info.IsDir() {
		return addFile(a, root, filepath.Base(root), info)
	}

	base := filepath.Base(root)
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !d.Type().IsRegular() {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if !junkPaths {
			name = filepath.ToSlash(filepath.Join(base, rel))
		}

		fi, err := d.Info()
		if err != nil {
			return err
		}
		return addFile(a, path, name, fi)
	})
}

func addFile(a *zip.Archive, path, name string, info os.FileInfo) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %q error: %w", path, err)
	}

	_, err = a.AddEntry(name, zip.NewOwnedSourceBuffer(data),
		zip.WithModTime(info.ModTime()),
		zip.WithExternalAttrs(uint32(info.Mode().Perm())<<16))
	return err
}
