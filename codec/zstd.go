package codec

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// zstdCodec backs method id 93 (ZSTD) with github.com/klauspost/compress/zstd.
type zstdCodec struct{}

func init() {
	Register(ZSTD, zstdCodec{})
}

func (zstdCodec) NewEncoder(level int) (Encoder, error) {
	opts := []zstd.EOption{zstd.WithEncoderLevel(zstdLevel(level)), zstd.WithEncoderConcurrency(1)}

	return newBufferedSession(func(in []byte) ([]byte, error) {
		var buf bytes.Buffer
		w, err := zstd.NewWriter(&buf, opts...)
		if err != nil {
			return nil, fmt.Errorf("create zstd writer error: %w", err)
		}
		if _, err = w.Write(in); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("zstd write error: %w", err)
		}
		if err = w.Close(); err != nil {
			return nil, fmt.Errorf("zstd close error: %w", err)
		}
		return buf.Bytes(), nil
	}), nil
}

func (zstdCodec) NewDecoder(int) (Decoder, error) {
	return newBufferedSession(func(in []byte) ([]byte, error) {
		r, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("create zstd reader error: %w", err)
		}
		defer r.Close()

		out, err := r.DecodeAll(in, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decode error: %w: %w", err, ErrDataError)
		}
		return out, nil
	}), nil
}

// zstdLevel maps the NewEncoder compression level (1-9) onto zstd's coarser
// EncoderLevel enum; 0 and negative levels select SpeedDefault.
func zstdLevel(level int) zstd.EncoderLevel {
	switch {
	case level <= 0:
		return zstd.SpeedDefault
	case level <= 2:
		return zstd.SpeedFastest
	case level <= 6:
		return zstd.SpeedDefault
	case level <= 8:
		return zstd.SpeedBetterCompression
	default:
		return zstd.SpeedBestCompression
	}
}
