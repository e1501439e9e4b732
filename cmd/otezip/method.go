package main

import (
	"fmt"

	"github.com/nguyengg/otezip/codec"
)

// parseMethod maps a compression method token onto the codec package's
// Method ids.
func parseMethod(token string) (codec.Method, error) {
	switch token {
	case "store":
		return codec.Store, nil
	case "deflate", "":
		return codec.Deflate, nil
	case "zstd":
		return codec.ZSTD, nil
	case "lzma":
		return codec.LZMA, nil
	case "lz4":
		return codec.LZ4, nil
	case "brotli":
		return codec.Brotli, nil
	case "lzfse":
		return codec.LZFSE, nil
	default:
		return 0, fmt.Errorf("unknown compression method %q", token)
	}
}
