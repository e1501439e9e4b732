package zip

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// readCentralDirectory reads exactly eo.cdSize bytes starting at
// eo.cdOffset and walks them into a slice of Entry.
func readCentralDirectory(rs io.ReadSeeker, eo eocdRecord) ([]Entry, error) {
	if _, err := rs.Seek(int64(eo.cdOffset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to central directory error: %w", err)
	}

	buf := make([]byte, eo.cdSize)
	if _, err := io.ReadFull(rs, buf); err != nil {
		return nil, fmt.Errorf("read central directory error: %w", err)
	}

	entries := make([]Entry, 0, eo.entryCount)
	remaining := buf

	for len(remaining) > 0 {
		if uint64(len(remaining)) < cdhFixedSize {
			return nil, fmt.Errorf("%w: truncated central directory header", ErrMalformed)
		}

		var fixed cdhFixed
		if err := binary.Read(bytes.NewReader(remaining[:cdhFixedSize]), binary.LittleEndian, &fixed); err != nil {
			return nil, fmt.Errorf("parse central directory header error: %w", err)
		}
		if fixed.Signature != sigCentralDirectoryFile {
			return nil, fmt.Errorf("%w: bad central directory header signature %#x", ErrMalformed, fixed.Signature)
		}

		// 64-bit arithmetic so name+extra+comment can't silently
		// overflow a 32-bit accumulator into fitting.
		variableLen := uint64(fixed.NameLength) + uint64(fixed.ExtraLength) + uint64(fixed.CommentLength)
		recordLen := uint64(cdhFixedSize) + variableLen
		if recordLen > uint64(len(remaining)) {
			return nil, fmt.Errorf("%w: central directory record overruns directory bytes", ErrMalformed)
		}

		if fixed.CompressedSize > maxEntrySize || fixed.UncompressedSize > maxEntrySize {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, ErrEntrySizeTooLarge)
		}

		nameStart := cdhFixedSize
		nameEnd := nameStart + int(fixed.NameLength)
		extraEnd := nameEnd + int(fixed.ExtraLength)
		commentEnd := extraEnd + int(fixed.CommentLength)

		name := make([]byte, fixed.NameLength)
		copy(name, remaining[nameStart:nameEnd])
		extra := make([]byte, fixed.ExtraLength)
		copy(extra, remaining[nameEnd:extraEnd])

		entries = append(entries, Entry{
			Name:              string(name),
			Method:            fixed.Method,
			ModTime:           fixed.ModTime,
			ModDate:           fixed.ModDate,
			CRC32:             fixed.CRC32,
			CompressedSize:    fixed.CompressedSize,
			UncompressedSize:  fixed.UncompressedSize,
			LocalHeaderOffset: fixed.LocalHeaderOffset,
			ExternalAttrs:     fixed.ExternalAttrs,
			InternalAttrs:     fixed.InternalAttrs,
			VersionMadeBy:     fixed.VersionMadeBy,
			VersionNeeded:     fixed.VersionNeeded,
			Flags:             fixed.Flags,
			Extra:             extra,
			Comment:           string(remaining[extraEnd:commentEnd]),
		})

		remaining = remaining[commentEnd:]
	}

	return entries, nil
}

// writeCentralDirectory writes one CDH per entry in insertion order,
// returning the accumulated size so the caller can write the EOCD. The
// accumulator is 64-bit so an overflow past 2^32-1 is caught before it
// silently truncates into a bogus EOCD.
func writeCentralDirectory(w io.Writer, entries []Entry) (uint64, error) {
	var total uint64

	for i := range entries {
		e := &entries[i]

		fixed := cdhFixed{
			Signature:         sigCentralDirectoryFile,
			VersionMadeBy:     e.VersionMadeBy,
			VersionNeeded:     e.VersionNeeded,
			Flags:             e.Flags,
			Method:            e.Method,
			ModTime:           e.ModTime,
			ModDate:           e.ModDate,
			CRC32:             e.CRC32,
			CompressedSize:    e.CompressedSize,
			UncompressedSize:  e.UncompressedSize,
			NameLength:        uint16(len(e.Name)),
			ExtraLength:       uint16(len(e.Extra)),
			CommentLength:     uint16(len(e.Comment)),
			InternalAttrs:     e.InternalAttrs,
			ExternalAttrs:     e.ExternalAttrs,
			LocalHeaderOffset: e.LocalHeaderOffset,
		}

		if err := binary.Write(w, binary.LittleEndian, &fixed); err != nil {
			return total, fmt.Errorf("write central directory header error: %w", err)
		}
		if _, err := io.WriteString(w, e.Name); err != nil {
			return total, fmt.Errorf("write central directory name error: %w", err)
		}
		if _, err := w.Write(e.Extra); err != nil {
			return total, fmt.Errorf("write central directory extra error: %w", err)
		}
		if _, err := io.WriteString(w, e.Comment); err != nil {
			return total, fmt.Errorf("write central directory comment error: %w", err)
		}

		recordLen := uint64(cdhFixedSize) + uint64(len(e.Name)) + uint64(len(e.Extra)) + uint64(len(e.Comment))
		total += recordLen
		if total > 0xffffffff {
			return total, fmt.Errorf("%w: central directory size overflows 32 bits", ErrMalformed)
		}
	}

	return total, nil
}
