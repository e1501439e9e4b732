package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// lz4Codec backs method id 94 (LZ4), a vendor extension not assigned by
// PKWARE, with github.com/pierrec/lz4/v4.
type lz4Codec struct{}

func init() {
	Register(LZ4, lz4Codec{})
}

func (lz4Codec) NewEncoder(level int) (Encoder, error) {
	return newBufferedSession(func(in []byte) ([]byte, error) {
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if err := w.Apply(lz4.CompressionLevelOption(lz4Level(level))); err != nil {
			return nil, fmt.Errorf("configure lz4 writer error: %w", err)
		}
		if _, err := w.Write(in); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("lz4 write error: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("lz4 close error: %w", err)
		}
		return buf.Bytes(), nil
	}), nil
}

// lz4Level maps the NewEncoder compression level (0-9, negative for the
// default) onto lz4's named levels: anything below 3 is treated as Fast,
// 3-8 select Level3-Level8, and 9 or above selects Level9.
func lz4Level(level int) lz4.CompressionLevel {
	switch {
	case level <= 2:
		return lz4.Fast
	case level >= 9:
		return lz4.Level9
	default:
		return []lz4.CompressionLevel{lz4.Level3, lz4.Level4, lz4.Level5, lz4.Level6, lz4.Level7, lz4.Level8}[level-3]
	}
}

func (lz4Codec) NewDecoder(int) (Decoder, error) {
	return newBufferedSession(func(in []byte) ([]byte, error) {
		r := lz4.NewReader(bytes.NewReader(in))
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("lz4 decode error: %w: %w", err, ErrDataError)
		}
		return out, nil
	}), nil
}
