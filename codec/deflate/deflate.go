package deflate

import "github.com/nguyengg/otezip/codec"

// deflateCodec adapts Encoder/Decoder to codec.Codec and registers itself
// for method id 8 (DEFLATE).
type deflateCodec struct{}

func init() {
	codec.Register(codec.Deflate, deflateCodec{})
}

func (deflateCodec) NewEncoder(level int) (codec.Encoder, error) {
	return NewEncoder(level)
}

// NewRawDecoder creates a Decoder over a bare RFC 1951 stream with a
// 32 KiB window, the configuration ZIP entry payloads use (no zlib/gzip
// wrapper).
func NewRawDecoder() (*Decoder, error) {
	return NewDecoder(-15)
}

func (deflateCodec) NewDecoder(windowBits int) (codec.Decoder, error) {
	if windowBits == 0 {
		windowBits = -15
	}
	return NewDecoder(windowBits)
}
