package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
)

// brotliCodec backs method id 97 (Brotli) with github.com/andybalholm/brotli.
type brotliCodec struct{}

func init() {
	Register(Brotli, brotliCodec{})
}

func (brotliCodec) NewEncoder(level int) (Encoder, error) {
	if level <= 0 {
		level = brotli.DefaultCompression
	} else if level > brotli.BestCompression {
		level = brotli.BestCompression
	}

	return newBufferedSession(func(in []byte) ([]byte, error) {
		var buf bytes.Buffer
		w := brotli.NewWriterLevel(&buf, level)
		if _, err := w.Write(in); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("brotli write error: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("brotli close error: %w", err)
		}
		return buf.Bytes(), nil
	}), nil
}

func (brotliCodec) NewDecoder(int) (Decoder, error) {
	return newBufferedSession(func(in []byte) ([]byte, error) {
		r := brotli.NewReader(bytes.NewReader(in))
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("brotli decode error: %w: %w", err, ErrDataError)
		}
		return out, nil
	}), nil
}
