package zip

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// readLocalHeader seeks to offset, reads and validates the Local File
// Header there, and returns the payload's absolute
// offset in the backing stream. The CDH's sizes remain authoritative; only
// the name/extra lengths are read here to locate the payload.
func readLocalHeader(rs io.ReadSeeker, offset int64) (payloadOffset int64, err error) {
	if _, err = rs.Seek(offset, io.SeekStart); err != nil {
		return 0, fmt.Errorf("seek to local header error: %w", err)
	}

	buf := make([]byte, lfhFixedSize)
	if _, err = io.ReadFull(rs, buf); err != nil {
		return 0, fmt.Errorf("read local header error: %w", err)
	}

	var fixed lfhFixed
	if err = binary.Read(bytes.NewReader(buf), binary.LittleEndian, &fixed); err != nil {
		return 0, fmt.Errorf("parse local header error: %w", err)
	}
	if fixed.Signature != sigLocalFileHeader {
		return 0, fmt.Errorf("%w: bad local file header signature %#x", ErrMalformed, fixed.Signature)
	}

	return offset + lfhFixedSize + int64(fixed.NameLength) + int64(fixed.ExtraLength), nil
}

// writeLocalHeader writes the 30-byte fixed LFH followed by name and
// extra, returning the number of bytes written.
func writeLocalHeader(w io.Writer, e *Entry) (int64, error) {
	fixed := lfhFixed{
		Signature:        sigLocalFileHeader,
		VersionNeeded:    e.VersionNeeded,
		Flags:            e.Flags,
		Method:           e.Method,
		ModTime:          e.ModTime,
		ModDate:          e.ModDate,
		CRC32:            e.CRC32,
		CompressedSize:   e.CompressedSize,
		UncompressedSize: e.UncompressedSize,
		NameLength:       uint16(len(e.Name)),
		ExtraLength:      uint16(len(e.Extra)),
	}

	if err := binary.Write(w, binary.LittleEndian, &fixed); err != nil {
		return 0, fmt.Errorf("write local header error: %w", err)
	}
	if _, err := io.WriteString(w, e.Name); err != nil {
		return 0, fmt.Errorf("write local header name error: %w", err)
	}
	if _, err := w.Write(e.Extra); err != nil {
		return 0, fmt.Errorf("write local header extra error: %w", err)
	}

	return int64(lfhFixedSize) + int64(len(e.Name)) + int64(len(e.Extra)), nil
}
