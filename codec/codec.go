// Package codec defines the streaming contract shared by every
// compressor/decompressor used by the zip container engine, and keeps a
// registry of the codecs available for a given method id.
//
// A Codec is a factory for per-direction sessions. Encoder and Decoder
// sessions are created (init), stepped (Process), and released (End) as
// described by the method's docs; neither the container engine nor any
// Codec implementation spawns goroutines or blocks on anything other than
// the slices handed to Process.
package codec

import "fmt"

// Method is the 16-bit on-wire compression method id from the ZIP central
// directory / local file header.
type Method uint16

// Method ids from the ZIP method table, plus vendor extensions for the
// codecs that have no assigned id. A conforming plug-in need not
// interoperate with the eponymous public format; the container engine
// treats the payload as opaque bytes flowing through a Session.
const (
	Store   Method = 0
	Deflate Method = 8
	LZMA    Method = 14
	ZSTD    Method = 93
	LZ4     Method = 94
	Brotli  Method = 97
	LZFSE   Method = 100
)

// String returns the conventional short name for the method, or a numeric
// fallback for unregistered ids.
func (m Method) String() string {
	switch m {
	case Store:
		return "store"
	case Deflate:
		return "deflate"
	case LZMA:
		return "lzma"
	case ZSTD:
		return "zstd"
	case LZ4:
		return "lz4"
	case Brotli:
		return "brotli"
	case LZFSE:
		return "lzfse"
	default:
		return fmt.Sprintf("method(%d)", uint16(m))
	}
}

// Flush is the flush level passed to Process. FlushFinish is the only
// level Process implementations in this repository are required to treat
// specially: it signals no further input will arrive and the session must
// drain any buffered state before returning StatusStreamEnd.
type Flush int

const (
	FlushNone Flush = iota
	FlushSync
	FlushFull
	FlushFinish
)

// Status is the outcome of one Process call.
type Status int

const (
	// StatusOK means the session may be called again: the caller passes
	// whatever part of in was not consumed (plus any new input), and if
	// out was filled the caller must supply more output space before the
	// remaining input can be consumed.
	StatusOK Status = iota
	// StatusStreamEnd means the logical stream is complete. No further
	// bytes will be produced even if more input is supplied.
	StatusStreamEnd
)

// Session is the common shape of Encoder and Decoder: a stateful object
// that consumes a prefix of in, produces a prefix of out, and reports how
// many bytes of each it used.
//
// Cancellation is cooperative: dropping a Session via End at any point
// must release all resources without requiring a final Process call.
type Session interface {
	// Process consumes some prefix of in, produces some prefix of out,
	// and returns how many bytes of each were used along with the
	// resulting Status. No bytes may be dropped or duplicated across
	// calls.
	Process(in, out []byte, flush Flush) (consumed, produced int, status Status, err error)

	// End releases the session's resources. It is always safe to call
	// End early (before StatusStreamEnd), and End must be idempotent.
	End() error
}

// Encoder compresses bytes written through Process.
type Encoder interface {
	Session
}

// Decoder decompresses bytes written through Process.
type Decoder interface {
	Session
}

// Codec is implemented by every compressor/decompressor registered for a
// Method. NewEncoder and NewDecoder are the "init" operation of the
// encoder and decoder session trios.
type Codec interface {
	// NewEncoder creates a new Encoder session. For DEFLATE, level follows
	// the flate.DefaultCompression convention: 0 disables compression,
	// 1-9 trade speed for ratio, and a negative value means "use the
	// codec's own default". The other codecs map level onto their own
	// scales or ignore it; for them 0 does not disable compression.
	NewEncoder(level int) (Encoder, error)

	// NewDecoder creates a new Decoder session. windowBits follows the
	// zlib convention (raw/zlib/gzip/auto), except that DEFLATE maps 0 to
	// a raw stream with a 32 KiB window; codecs that have no notion of a
	// window simply ignore it.
	NewDecoder(windowBits int) (Decoder, error)
}
