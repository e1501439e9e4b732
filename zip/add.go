package zip

import (
	"fmt"
	"io"
	"time"

	"github.com/nguyengg/otezip/codec"
)

// AddOptions customizes a single AddEntry call.
type AddOptions struct {
	// Method overrides the archive's default codec method for this
	// entry only. Leave nil to use Options.DefaultMethod.
	Method *codec.Method

	// ModTime overrides the entry's recorded modification time.
	// Defaults to time.Now().
	ModTime time.Time

	// ExternalAttrs sets the entry's external attributes (the
	// front-end may pack a Unix mode into the upper 16 bits).
	ExternalAttrs uint32
}

// WithMethod overrides the codec method for one AddEntry call.
func WithMethod(method codec.Method) func(*AddOptions) {
	return func(o *AddOptions) { o.Method = &method }
}

// WithModTime overrides the entry's recorded modification time.
func WithModTime(t time.Time) func(*AddOptions) {
	return func(o *AddOptions) { o.ModTime = t }
}

// WithExternalAttrs sets the entry's external attributes.
func WithExternalAttrs(attrs uint32) func(*AddOptions) {
	return func(o *AddOptions) { o.ExternalAttrs = attrs }
}

// AddEntry compresses src's bytes with the selected codec method, writes
// the local file header and payload at the archive's current position,
// and records a new Entry, returning its stable index.
func (a *Archive) AddEntry(name string, src *SourceBuffer, optFns ...func(*AddOptions)) (int, error) {
	if a.rws == nil {
		return -1, newError(KindReadOnly, "add", ErrReadOnlyArchive)
	}
	if len(name) > 0xffff {
		return -1, newError(KindInvalidArgument, "add", ErrNameTooLong)
	}

	ao := AddOptions{ModTime: time.Now()}
	for _, fn := range optFns {
		fn(&ao)
	}

	method := codec.Method(a.opts.DefaultMethod)
	if ao.Method != nil {
		method = *ao.Method
	}

	data := src.consume()
	if uint64(len(data)) > maxEntrySize {
		return -1, newError(KindInvalidArgument, "add", ErrEntrySizeTooLarge)
	}
	crc := checksum(data)

	compressed, finalMethod, err := encodeEntry(method, data, a.opts.BufferSize)
	if err != nil {
		return -1, err
	}
	if uint64(len(compressed)) > maxEntrySize {
		return -1, newError(KindInvalidArgument, "add", ErrEntrySizeTooLarge)
	}

	date, dtime := timeToDOS(ao.ModTime)

	offset, err := a.rws.Seek(0, io.SeekCurrent)
	if err != nil {
		return -1, newError(KindIOWrite, "add", err)
	}

	e := Entry{
		Name:              name,
		Method:            uint16(finalMethod),
		ModTime:           dtime,
		ModDate:           date,
		CRC32:             crc,
		CompressedSize:    uint32(len(compressed)),
		UncompressedSize:  uint32(len(data)),
		LocalHeaderOffset: uint32(offset),
		ExternalAttrs:     ao.ExternalAttrs,
		VersionMadeBy:     versionMadeBy,
		VersionNeeded:     versionNeeded,
	}

	if _, err = writeLocalHeader(a.rws, &e); err != nil {
		return -1, newError(KindIOWrite, "add", err)
	}
	if _, err = a.rws.Write(compressed); err != nil {
		return -1, newError(KindIOWrite, "add", err)
	}

	idx := a.nextIndex
	a.entries = append(a.entries, e)
	a.nextIndex++
	return idx, nil
}

// encodeEntry runs data through method's encoder and applies the
// transparent STORE fallback: if the encoded output is not strictly
// smaller than the input, the entry is stored raw instead, except that a
// Brotli-style codec producing a non-empty frame for empty input may
// keep that frame.
func encodeEntry(method codec.Method, data []byte, bufSize int) ([]byte, codec.Method, error) {
	if method == codec.Store {
		return append([]byte(nil), data...), codec.Store, nil
	}

	c, err := codec.Lookup(method)
	if err != nil {
		return nil, 0, newError(KindUnsupportedMethod, "add", err)
	}
	enc, err := c.NewEncoder(-1)
	if err != nil {
		return nil, 0, newError(KindResourceExhausted, "add", err)
	}
	defer enc.End()

	out := make([]byte, 0, len(data))
	buf := make([]byte, bufSize)
	in := data

	for {
		consumed, produced, status, err := enc.Process(in, buf, codec.FlushFinish)
		if err != nil {
			return nil, 0, newError(KindCodecDataError, "add", err)
		}
		in = in[consumed:]
		out = append(out, buf[:produced]...)
		if status == codec.StatusStreamEnd {
			break
		}
		if consumed == 0 && produced == 0 {
			return nil, 0, newError(KindCodecDataError, "add", fmt.Errorf("encoder made no progress"))
		}
	}

	keepsEmptyFrame := method == codec.Brotli && len(data) == 0 && len(out) > 0
	if len(out) >= len(data) && !keepsEmptyFrame {
		return append([]byte(nil), data...), codec.Store, nil
	}
	return out, method, nil
}
