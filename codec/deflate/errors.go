package deflate

import (
	"errors"
	"fmt"

	"github.com/nguyengg/otezip/codec"
)

// ErrHeader means a zlib/gzip wrapper header failed validation (bad magic,
// unsupported method, bad checksum). It wraps codec.ErrDataError so callers
// doing a generic errors.Is(err, codec.ErrDataError) still match.
var ErrHeader = fmt.Errorf("deflate wrapper header error: %w", codec.ErrDataError)

// errBlockType3 is returned when a block header declares the reserved,
// invalid block type (3).
var errBlockType3 = errors.New("invalid block type 3")

// errClosed is the sticky error returned by Process after End has been
// called.
var errClosed = errors.New("deflate session closed")
