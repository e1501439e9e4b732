package deflate

import (
	"fmt"

	"github.com/nguyengg/otezip/codec"
)

// window is the decoder's circular buffer of recently emitted bytes used
// to resolve LZ77 back-references.
type window struct {
	buf     []byte
	pos     int  // next write position
	filled  bool // true once buf has wrapped at least once
	written int64
}

func newWindow(bits int) *window {
	return &window{buf: make([]byte, 1<<uint(bits))}
}

func (w *window) writeByte(b byte) {
	w.buf[w.pos] = b
	w.pos++
	if w.pos == len(w.buf) {
		w.pos = 0
		w.filled = true
	}
	w.written++
}

// available is how many bytes of history the window currently holds.
func (w *window) available() int {
	if w.filled {
		return len(w.buf)
	}
	return w.pos
}

// byteAt returns the byte `distance` positions behind the next write
// position (distance 1 is the most recently written byte).
func (w *window) byteAt(distance int) (byte, error) {
	if distance <= 0 || distance > w.available() {
		return 0, fmt.Errorf("distance %d exceeds window history %d: %w", distance, w.available(), codec.ErrDataError)
	}
	idx := w.pos - distance
	if idx < 0 {
		idx += len(w.buf)
	}
	return w.buf[idx], nil
}
