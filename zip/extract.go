package zip

import (
	"fmt"
	"io"

	"github.com/nguyengg/otezip/codec"
)

// Open opens the entry at index for reading: verify the local header,
// apply the expansion
// guard before allocating the uncompressed buffer, decode the whole
// payload through the entry's codec, and optionally verify its CRC-32.
func (a *Archive) Open(index int) (*File, error) {
	if index < 0 || index >= len(a.entries) {
		return nil, newError(KindNotFound, "open", fmt.Errorf("entry index %d out of range", index))
	}
	e := &a.entries[index]

	payloadOffset, err := readLocalHeader(a.rs, int64(e.LocalHeaderOffset))
	if err != nil {
		return nil, newError(KindMalformedArchive, "open", err)
	}

	size, err := a.rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, newError(KindIORead, "open", err)
	}
	if payloadOffset+int64(e.CompressedSize) > size {
		return nil, newError(KindMalformedArchive, "open", fmt.Errorf("entry %q payload extends past end of archive", e.Name))
	}

	if !a.opts.DisableExpansionGuard {
		limit := int64(e.CompressedSize)*a.opts.ExpansionRatio + a.opts.ExpansionSlack
		if int64(e.UncompressedSize) > limit {
			return nil, newError(KindExpansionLimit, "open",
				fmt.Errorf("entry %q declared uncompressed size %d exceeds guard limit %d (compressed size %d)",
					e.Name, e.UncompressedSize, limit, e.CompressedSize))
		}
	}

	if _, err = a.rs.Seek(payloadOffset, io.SeekStart); err != nil {
		return nil, newError(KindIORead, "open", err)
	}
	compressed := make([]byte, e.CompressedSize)
	if _, err = io.ReadFull(a.rs, compressed); err != nil {
		return nil, newError(KindIORead, "open", err)
	}

	data, err := decodeEntry(codec.Method(e.Method), compressed, int(e.UncompressedSize), a.opts.BufferSize)
	if err != nil {
		return nil, err
	}
	if uint32(len(data)) != e.UncompressedSize {
		return nil, newError(KindMalformedArchive, "open",
			fmt.Errorf("entry %q decoded to %d bytes, expected %d", e.Name, len(data), e.UncompressedSize))
	}

	if sum := checksum(data); sum != e.CRC32 {
		if a.opts.StrictCRC {
			return nil, newError(KindCRCMismatch, "open",
				fmt.Errorf("entry %q: crc32 %#08x does not match stored %#08x", e.Name, sum, e.CRC32))
		}
		a.opts.Warn("open", fmt.Sprintf("entry %q: crc32 %#08x does not match stored %#08x", e.Name, sum, e.CRC32))
	}

	return &File{Entry: *e, data: data}, nil
}

// decodeEntry feeds compressed through method's decoder in one shot,
// returning the uncompressed bytes. uncompressedSize only sizes the
// output buffer's initial capacity; it is not trusted beyond that.
func decodeEntry(method codec.Method, compressed []byte, uncompressedSize, bufSize int) ([]byte, error) {
	c, err := codec.Lookup(method)
	if err != nil {
		return nil, newError(KindUnsupportedMethod, "open", err)
	}
	dec, err := c.NewDecoder(0)
	if err != nil {
		return nil, newError(KindResourceExhausted, "open", err)
	}
	defer dec.End()

	out := make([]byte, 0, uncompressedSize)
	buf := make([]byte, bufSize)
	in := compressed

	for {
		consumed, produced, status, err := dec.Process(in, buf, codec.FlushFinish)
		if err != nil {
			return nil, newError(KindCodecDataError, "open", err)
		}
		in = in[consumed:]
		out = append(out, buf[:produced]...)
		if status == codec.StatusStreamEnd {
			return out, nil
		}
		if consumed == 0 && produced == 0 {
			return nil, newError(KindCodecDataError, "open",
				fmt.Errorf("decoder made no progress with %d compressed bytes remaining", len(in)))
		}
	}
}
