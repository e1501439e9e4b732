package codec

import "errors"

// Sentinel errors a Codec implementation should wrap with fmt.Errorf and
// %w so callers can errors.Is against the stable kind while still reading
// a human-readable message.
var (
	// ErrUnsupportedMethod is returned by Lookup when no Codec is
	// registered for a method id.
	ErrUnsupportedMethod = errors.New("unsupported compression method")

	// ErrDataError means the compressed stream is invalid for its
	// method (bad signature, corrupt Huffman table, invalid back
	// reference, etc).
	ErrDataError = errors.New("codec data error")

	// ErrBufferError means the caller-provided output slice was too
	// small to make any forward progress.
	ErrBufferError = errors.New("codec buffer error")
)
