package deflate

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/nguyengg/otezip/codec"
)

// EncodeGzip compresses data into one complete RFC 1952 gzip member: the
// fixed 10-byte header (no FEXTRA/FNAME/FCOMMENT/FHCRC), a raw DEFLATE
// stream at level, and the CRC-32/ISIZE trailer. This is the standalone codec's wrapper-emitting
// counterpart to the wrapper-peeling NewDecoder(gzip) side.
func EncodeGzip(data []byte, level int) ([]byte, error) {
	enc, err := NewEncoder(level)
	if err != nil {
		return nil, err
	}
	defer enc.End()

	out := []byte{gzipMagic0, gzipMagic1, 8, 0, 0, 0, 0, 0, 0, 0xff}
	buf := make([]byte, 32*1024)
	in := data

	for {
		consumed, produced, status, err := enc.Process(in, buf, codec.FlushFinish)
		if err != nil {
			return nil, fmt.Errorf("gzip encode error: %w", err)
		}
		in = in[consumed:]
		out = append(out, buf[:produced]...)
		if status == codec.StatusStreamEnd {
			break
		}
		if consumed == 0 && produced == 0 {
			return nil, fmt.Errorf("gzip encoder made no progress")
		}
	}

	var trailer [8]byte
	binary.LittleEndian.PutUint32(trailer[0:4], crc32.ChecksumIEEE(data))
	binary.LittleEndian.PutUint32(trailer[4:8], uint32(len(data)))
	return append(out, trailer[:]...), nil
}

// DecodeGzip decompresses a single RFC 1952 gzip member.
// The trailing CRC-32/ISIZE (and any bytes after it) are not validated,
// matching the decoder's documented "ignores trailing bytes beyond
// end-of-stream" behaviour.
func DecodeGzip(data []byte) ([]byte, error) {
	dec, err := NewDecoder(31) // windowBits 31: gzip wrapper, 32 KiB window
	if err != nil {
		return nil, err
	}
	defer dec.End()

	out := make([]byte, 0, len(data))
	buf := make([]byte, 32*1024)
	in := data

	for {
		consumed, produced, status, err := dec.Process(in, buf, codec.FlushFinish)
		if err != nil {
			return nil, fmt.Errorf("gzip decode error: %w", err)
		}
		in = in[consumed:]
		out = append(out, buf[:produced]...)
		if status == codec.StatusStreamEnd {
			return out, nil
		}
		if consumed == 0 && produced == 0 {
			return nil, fmt.Errorf("gzip decoder made no progress with %d bytes remaining", len(in))
		}
	}
}
