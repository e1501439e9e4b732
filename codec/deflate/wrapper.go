package deflate

import "fmt"

// wrapperMode is the framing (if any) surrounding the raw DEFLATE bitstream,
// decoded from the windowBits parameter.
type wrapperMode int

const (
	wrapperRaw wrapperMode = iota
	wrapperZlib
	wrapperGzip
	wrapperAuto
)

// decodeWindowBits splits the encoded windowBits parameter (raw, zlib, gzip
// or auto) into a wrapperMode and the actual log2 window size (8..15).
func decodeWindowBits(windowBits int) (wrapperMode, int, error) {
	switch {
	case windowBits < 0:
		w := -windowBits
		if w < 8 || w > 15 {
			return 0, 0, fmt.Errorf("raw windowBits magnitude %d out of range", w)
		}
		return wrapperRaw, w, nil
	case windowBits >= 8 && windowBits <= 15:
		return wrapperZlib, windowBits, nil
	case windowBits >= 24 && windowBits <= 31:
		return wrapperGzip, windowBits - 16, nil
	case windowBits >= 40 && windowBits <= 47:
		return wrapperAuto, windowBits - 32, nil
	default:
		return 0, 0, fmt.Errorf("windowBits %d out of range", windowBits)
	}
}

const gzipMagic0, gzipMagic1 = 0x1f, 0x8b

const (
	gzFlagText    = 1 << 0
	gzFlagHCRC    = 1 << 1
	gzFlagExtra   = 1 << 2
	gzFlagName    = 1 << 3
	gzFlagComment = 1 << 4
)

// peelHeader attempts to consume the wrapper's fixed framing from r. It
// returns false without consuming anything if the header is not yet fully
// buffered, so the caller can simply retry on the next Process call once
// more input arrives: a header whose optional fields run past the buffered
// bytes is rolled back wholesale and re-peeled from the start next time.
func peelHeader(r *bitReader, mode wrapperMode) (wrapperMode, bool, error) {
	pos, buf, nbit := r.pos, r.buf, r.nbit
	rollback := func() {
		r.pos, r.buf, r.nbit = pos, buf, nbit
	}

	switch mode {
	case wrapperRaw:
		return wrapperRaw, true, nil

	case wrapperZlib:
		m, ok, err := peelZlib(r)
		if !ok && err == nil {
			rollback()
		}
		return m, ok, err

	case wrapperGzip:
		m, ok, err := peelGzip(r)
		if !ok && err == nil {
			rollback()
		}
		return m, ok, err

	case wrapperAuto:
		if r.nbit%8 != 0 || int(r.nbit/8)+(len(r.src)-r.pos) < 2 {
			return 0, false, nil
		}
		b0, b1 := peekByte(r, 0), peekByte(r, 1)
		peel := peelZlib
		if b0 == gzipMagic0 && b1 == gzipMagic1 {
			peel = peelGzip
		}
		m, ok, err := peel(r)
		if !ok && err == nil {
			rollback()
		}
		return m, ok, err

	default:
		return 0, false, fmt.Errorf("unknown wrapper mode %d", mode)
	}
}

// peekByte reads the n-th not-yet-consumed byte without advancing r. Caller
// must have already verified that byte is available.
func peekByte(r *bitReader, n int) byte {
	bufBytes := int(r.nbit) / 8
	if n < bufBytes {
		return byte(r.buf >> (uint(n) * 8))
	}
	return r.src[r.pos+n-bufBytes]
}

func peelZlib(r *bitReader) (wrapperMode, bool, error) {
	hdr, ok := r.takeAlignedBytes(2)
	if !ok {
		return 0, false, nil
	}
	cmf, flg := hdr[0], hdr[1]
	if cmf&0x0f != 8 {
		return 0, false, fmt.Errorf("zlib CMF %#x is not DEFLATE: %w", cmf, ErrHeader)
	}
	if (int(cmf)*256+int(flg))%31 != 0 {
		return 0, false, fmt.Errorf("zlib header checksum failed: %w", ErrHeader)
	}
	if flg&0x20 != 0 {
		if _, ok = r.takeAlignedBytes(4); !ok {
			return 0, false, nil
		}
	}
	return wrapperZlib, true, nil
}

func peelGzip(r *bitReader) (wrapperMode, bool, error) {
	fixed, ok := r.takeAlignedBytes(10)
	if !ok {
		return 0, false, nil
	}
	if fixed[0] != gzipMagic0 || fixed[1] != gzipMagic1 {
		return 0, false, fmt.Errorf("bad gzip magic %#x %#x: %w", fixed[0], fixed[1], ErrHeader)
	}
	if fixed[2] != 8 {
		return 0, false, fmt.Errorf("gzip method %d is not DEFLATE: %w", fixed[2], ErrHeader)
	}
	flags := fixed[3]

	if flags&gzFlagExtra != 0 {
		lenBytes, ok := r.takeAlignedBytes(2)
		if !ok {
			return 0, false, nil
		}
		n := int(lenBytes[0]) | int(lenBytes[1])<<8
		if _, ok = r.takeAlignedBytes(n); !ok {
			return 0, false, nil
		}
	}
	if flags&gzFlagName != 0 {
		if !skipNulTerminated(r) {
			return 0, false, nil
		}
	}
	if flags&gzFlagComment != 0 {
		if !skipNulTerminated(r) {
			return 0, false, nil
		}
	}
	if flags&gzFlagHCRC != 0 {
		if _, ok = r.takeAlignedBytes(2); !ok {
			return 0, false, nil
		}
	}

	return wrapperGzip, true, nil
}

// skipNulTerminated consumes bytes up to and including the next NUL byte.
// It returns false, consuming nothing, if no NUL byte is buffered yet.
func skipNulTerminated(r *bitReader) bool {
	avail := int(r.nbit)/8 + (len(r.src) - r.pos)
	for i := 0; i < int(avail); i++ {
		if peekByte(r, i) == 0 {
			_, ok := r.takeAlignedBytes(i + 1)
			return ok
		}
	}
	return false
}
