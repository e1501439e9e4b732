package zip

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/valyala/bytebufferpool"
)

// eocdRecord is the parsed End Of Central Directory record.
type eocdRecord struct {
	entryCount uint16
	cdSize     uint32
	cdOffset   uint32
	comment    string
}

var eocdSigBytes = []byte{0x50, 0x4b, 0x05, 0x06}

// findEOCD scans the last min(size, 65558) bytes from high to low for
// the EOCD signature; for each
// candidate, verify cd_offset/cd_size lie inside the file and that the
// first four bytes at cd_offset are the CDH signature. The first
// candidate to pass is accepted: scanning high to low means this is the
// right-most signature occurrence, which is the true EOCD even when the
// compressed payload coincidentally contains the same four bytes earlier
// in the file.
func findEOCD(rs io.ReadSeeker) (eocdRecord, error) {
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return eocdRecord{}, fmt.Errorf("seek to end error: %w", err)
	}
	if size < eocdFixedSize {
		return eocdRecord{}, ErrNoEOCDFound
	}

	searchLen := int64(maxEOCDSearch)
	if searchLen > size {
		searchLen = size
	}

	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)
	bb.Set(make([]byte, searchLen))
	if _, err = rs.Seek(size-searchLen, io.SeekStart); err != nil {
		return eocdRecord{}, fmt.Errorf("seek to tail window error: %w", err)
	}
	if _, err = io.ReadFull(rs, bb.B); err != nil {
		return eocdRecord{}, fmt.Errorf("read tail window error: %w", err)
	}

	windowBase := size - searchLen

	for i := len(bb.B) - eocdFixedSize; i >= 0; i-- {
		if !bytes.Equal(bb.B[i:i+4], eocdSigBytes) {
			continue
		}

		var fixed eocdFixed
		if err = binary.Read(bytes.NewReader(bb.B[i:i+eocdFixedSize]), binary.LittleEndian, &fixed); err != nil {
			continue
		}

		cdOffset := int64(fixed.CDOffset)
		cdSize := int64(fixed.CDSize)
		if cdOffset < 0 || cdSize < 0 || cdOffset+cdSize > size {
			continue
		}

		sig, err := readUint32At(rs, cdOffset)
		if err != nil || sig != sigCentralDirectoryFile {
			continue
		}

		commentStart := i + eocdFixedSize
		commentLen := int(fixed.CommentLength)
		var comment string
		if commentStart+commentLen <= len(bb.B) {
			comment = string(bb.B[commentStart : commentStart+commentLen])
		} else if windowBase == 0 {
			// the comment is claimed to extend past EOF; only an error
			// if we had the whole file in the window.
			continue
		}

		return eocdRecord{
			entryCount: fixed.TotalEntries,
			cdSize:     fixed.CDSize,
			cdOffset:   fixed.CDOffset,
			comment:    comment,
		}, nil
	}

	return eocdRecord{}, ErrNoEOCDFound
}

func readUint32At(rs io.ReadSeeker, offset int64) (uint32, error) {
	if _, err := rs.Seek(offset, io.SeekStart); err != nil {
		return 0, err
	}
	var buf [4]byte
	if _, err := io.ReadFull(rs, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func writeEOCD(w io.Writer, entryCount uint16, cdSize, cdOffset uint32) error {
	fixed := eocdFixed{
		Signature:     sigEndOfCentralDir,
		EntriesOnDisk: entryCount,
		TotalEntries:  entryCount,
		CDSize:        cdSize,
		CDOffset:      cdOffset,
	}
	return binary.Write(w, binary.LittleEndian, &fixed)
}
