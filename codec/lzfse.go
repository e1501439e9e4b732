package codec

import (
	"encoding/binary"
	"fmt"
)

// lzfseMagic marks the opaque frame written by lzfseCodec. It is not the
// real Apple LZFSE bvx2 magic; this codec does not speak the real LZFSE
// bitstream.
const lzfseMagic = 0x4c5a4653 // "LZFS"

// lzfseCodec backs method id 100 (LZFSE). No package in this module's
// dependency graph implements the actual LZFSE bitstream, so entries
// written with this method are stored verbatim behind a small opaque
// frame (magic + length) rather than actually LZFSE-compressed. Round
// trips through this codec are correct; the bytes on disk are not
// interoperable with a real LZFSE decoder.
type lzfseCodec struct{}

func init() {
	Register(LZFSE, lzfseCodec{})
}

func (lzfseCodec) NewEncoder(int) (Encoder, error) {
	return newBufferedSession(func(in []byte) ([]byte, error) {
		out := make([]byte, 8+len(in))
		binary.LittleEndian.PutUint32(out[0:4], lzfseMagic)
		binary.LittleEndian.PutUint32(out[4:8], uint32(len(in)))
		copy(out[8:], in)
		return out, nil
	}), nil
}

func (lzfseCodec) NewDecoder(int) (Decoder, error) {
	return newBufferedSession(func(in []byte) ([]byte, error) {
		if len(in) < 8 {
			return nil, fmt.Errorf("truncated lzfse frame: %w", ErrDataError)
		}
		if magic := binary.LittleEndian.Uint32(in[0:4]); magic != lzfseMagic {
			return nil, fmt.Errorf("bad lzfse frame magic %#x: %w", magic, ErrDataError)
		}
		n := binary.LittleEndian.Uint32(in[4:8])
		if uint32(len(in)-8) != n {
			return nil, fmt.Errorf("lzfse frame length mismatch: %w", ErrDataError)
		}
		out := make([]byte, n)
		copy(out, in[8:])
		return out, nil
	}), nil
}
