package zip

import (
	"fmt"
	"io"
	"os"
)

// Mode is the Archive's read/write mode.
type Mode int

const (
	ModeRead Mode = iota
	ModeWrite
)

// OpenFlag is the {create, exclusive, truncate} triple, the same shape as
// os.O_CREATE/os.O_EXCL/os.O_TRUNC.
type OpenFlag struct {
	Create    bool
	Exclusive bool
	Truncate  bool
}

// Archive is a handle over a seekable byte stream holding an ordered
// sequence of Entry records. Created by Open/Create/Append/OpenFile;
// destroyed by Close.
type Archive struct {
	rs   io.ReadSeeker
	rws  io.ReadWriteSeeker // non-nil only in write mode
	mode Mode
	opts *Options

	entries   []Entry
	nextIndex int

	closer io.Closer // set when the Archive opened its own backing file
}

// Open opens rs in read mode: it locates and loads the central
// directory but never mutates rs, not even on Close.
func Open(rs io.ReadSeeker, optFns ...func(*Options)) (*Archive, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(opts)
	}

	eo, err := findEOCD(rs)
	if err != nil {
		return nil, newError(KindMalformedArchive, "open", err)
	}
	entries, err := readCentralDirectory(rs, eo)
	if err != nil {
		return nil, newError(KindMalformedArchive, "open", err)
	}

	return &Archive{
		rs:        rs,
		mode:      ModeRead,
		opts:      opts,
		entries:   entries,
		nextIndex: len(entries),
	}, nil
}

// Create opens rws in write mode for a brand-new archive. rws's
// existing content, if any, is never read; new entries are written
// starting at rws's current position (expected to be 0).
func Create(rws io.ReadWriteSeeker, optFns ...func(*Options)) (*Archive, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(opts)
	}

	return &Archive{
		rs:   rws,
		rws:  rws,
		mode: ModeWrite,
		opts: opts,
	}, nil
}

// Append opens rws in write mode over an archive that already exists in
// rws: the existing central directory is
// loaded and rws is seeked to the old central directory's offset so new
// local headers and payloads overwrite it; Close rewrites the central
// directory afterward.
func Append(rws io.ReadWriteSeeker, optFns ...func(*Options)) (*Archive, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(opts)
	}

	eo, err := findEOCD(rws)
	if err != nil {
		return nil, newError(KindMalformedArchive, "append", err)
	}
	entries, err := readCentralDirectory(rws, eo)
	if err != nil {
		return nil, newError(KindMalformedArchive, "append", err)
	}
	if _, err = rws.Seek(int64(eo.cdOffset), io.SeekStart); err != nil {
		return nil, newError(KindIOWrite, "append", err)
	}

	return &Archive{
		rs:        rws,
		rws:       rws,
		mode:      ModeWrite,
		opts:      opts,
		entries:   entries,
		nextIndex: len(entries),
	}, nil
}

// OpenFile is the path-based convenience constructor over the {create,
// exclusive, truncate} combinations, choosing Open, Create, or Append as
// appropriate and closing the
// underlying *os.File when the returned Archive is closed.
func OpenFile(name string, flag OpenFlag, optFns ...func(*Options)) (*Archive, error) {
	if flag.Exclusive && flag.Truncate {
		return nil, newError(KindInvalidArgument, "open", ErrExclusiveTruncate)
	}

	if !flag.Create {
		f, err := os.Open(name)
		if err != nil {
			return nil, newError(KindCannotOpen, "open", err)
		}
		a, err := Open(f, optFns...)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		a.closer = f
		return a, nil
	}

	_, statErr := os.Stat(name)
	exists := statErr == nil

	if flag.Exclusive && exists {
		return nil, newError(KindAlreadyExists, "open", ErrExclusiveExists)
	}

	if flag.Truncate || !exists {
		f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o666)
		if err != nil {
			return nil, newError(KindCannotOpen, "open", err)
		}
		a, err := Create(f, optFns...)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		a.closer = f
		return a, nil
	}

	f, err := os.OpenFile(name, os.O_RDWR, 0o666)
	if err != nil {
		return nil, newError(KindCannotOpen, "open", err)
	}
	a, err := Append(f, optFns...)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	a.closer = f
	return a, nil
}

// Entries returns the archive's directory in on-disk/insertion order.
// The caller must not mutate the returned slice.
func (a *Archive) Entries() []Entry {
	return a.entries
}

// Len returns the number of entries currently in the archive.
func (a *Archive) Len() int {
	return len(a.entries)
}

// Stat returns a copy of the Entry at index.
func (a *Archive) Stat(index int) (Entry, error) {
	if index < 0 || index >= len(a.entries) {
		return Entry{}, newError(KindNotFound, "stat", fmt.Errorf("entry index %d out of range", index))
	}
	return a.entries[index], nil
}

// Close finalizes the archive. In write mode it writes the central
// directory and EOCD record at the current position; in read mode it only
// releases resources.
func (a *Archive) Close() error {
	if a.mode == ModeWrite {
		if len(a.entries) > 0xffff {
			return newError(KindMalformedArchive, "close",
				fmt.Errorf("%d entries exceeds the 16-bit EOCD entry count", len(a.entries)))
		}

		cdOffset, err := a.rws.Seek(0, io.SeekCurrent)
		if err != nil {
			return newError(KindIOWrite, "close", err)
		}
		cdSize, err := writeCentralDirectory(a.rws, a.entries)
		if err != nil {
			return newError(KindIOWrite, "close", err)
		}
		if cdOffset > 0xffffffff {
			return newError(KindMalformedArchive, "close", fmt.Errorf("central directory offset overflows 32 bits"))
		}
		if err = writeEOCD(a.rws, uint16(len(a.entries)), uint32(cdSize), uint32(cdOffset)); err != nil {
			return newError(KindIOWrite, "close", err)
		}
	}

	if a.closer != nil {
		if err := a.closer.Close(); err != nil {
			return newError(KindIOWrite, "close", err)
		}
	}
	return nil
}
