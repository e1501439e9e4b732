package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ulikunitz/xz/lzma"
)

// lzmaCodec backs method id 14 (LZMA) with github.com/ulikunitz/xz/lzma.
// A conforming plug-in need not interoperate with any particular LZMA SDK
// on the wire; this repository's LZMA payloads are
// opaque to the container engine and only ever read back by this same
// codec.
type lzmaCodec struct{}

func init() {
	Register(LZMA, lzmaCodec{})
}

func (lzmaCodec) NewEncoder(level int) (Encoder, error) {
	return newBufferedSession(func(in []byte) ([]byte, error) {
		var buf bytes.Buffer
		w, err := lzma.NewWriter(&buf)
		if err != nil {
			return nil, fmt.Errorf("create lzma writer error: %w", err)
		}
		if _, err = w.Write(in); err != nil {
			return nil, fmt.Errorf("lzma write error: %w", err)
		}
		if err = w.Close(); err != nil {
			return nil, fmt.Errorf("lzma close error: %w", err)
		}
		return buf.Bytes(), nil
	}), nil
}

func (lzmaCodec) NewDecoder(int) (Decoder, error) {
	return newBufferedSession(func(in []byte) ([]byte, error) {
		r, err := lzma.NewReader(bytes.NewReader(in))
		if err != nil {
			return nil, fmt.Errorf("create lzma reader error: %w: %w", err, ErrDataError)
		}
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("lzma decode error: %w: %w", err, ErrDataError)
		}
		return out, nil
	}), nil
}
