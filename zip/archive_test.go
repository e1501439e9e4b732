package zip

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyengg/otezip/codec"
	"github.com/stretchr/testify/require"
)

func tempArchivePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.zip")
}

func TestCreateSingleStoreEntry(t *testing.T) {
	path := tempArchivePath(t)

	a, err := OpenFile(path, OpenFlag{Create: true, Truncate: true})
	require.NoError(t, err)

	want := []byte("hello\n")
	idx, err := a.AddEntry("hello.txt", NewSourceBuffer(want), WithMethod(codec.Store))
	require.NoError(t, err)
	require.Equal(t, 0, idx)
	require.NoError(t, a.Close())

	r, err := OpenFile(path, OpenFlag{})
	require.NoError(t, err)
	defer r.Close()

	require.Len(t, r.Entries(), 1)
	e, err := r.Stat(0)
	require.NoError(t, err)
	require.Equal(t, "hello.txt", e.Name)
	require.EqualValues(t, len(want), e.UncompressedSize)
	require.Equal(t, uint32(0x363A3020), e.CRC32)

	f, err := r.Open(0)
	require.NoError(t, err)
	require.Equal(t, want, f.Bytes())
}

func TestCreateTwoDeflateEntries(t *testing.T) {
	path := tempArchivePath(t)

	a, err := OpenFile(path, OpenFlag{Create: true, Truncate: true})
	require.NoError(t, err)

	aData := bytes.Repeat([]byte{'A'}, 1000)
	bData := []byte("The quick brown fox jumps over the lazy dog.")

	_, err = a.AddEntry("a", NewSourceBuffer(aData), WithMethod(codec.Deflate))
	require.NoError(t, err)
	_, err = a.AddEntry("b", NewSourceBuffer(bData), WithMethod(codec.Deflate))
	require.NoError(t, err)
	require.NoError(t, a.Close())

	r, err := OpenFile(path, OpenFlag{})
	require.NoError(t, err)
	defer r.Close()

	require.Len(t, r.Entries(), 2)

	ea, err := r.Stat(0)
	require.NoError(t, err)
	require.Equal(t, uint16(codec.Deflate), ea.Method)
	require.Less(t, ea.CompressedSize, uint32(1000))

	eb, err := r.Stat(1)
	require.NoError(t, err)
	require.Equal(t, uint16(codec.Deflate), eb.Method)

	fa, err := r.Open(0)
	require.NoError(t, err)
	require.Equal(t, aData, fa.Bytes())

	fb, err := r.Open(1)
	require.NoError(t, err)
	require.Equal(t, bData, fb.Bytes())
}

func TestAppendEntryToExistingArchive(t *testing.T) {
	path := tempArchivePath(t)

	a, err := OpenFile(path, OpenFlag{Create: true, Truncate: true})
	require.NoError(t, err)
	_, err = a.AddEntry("hello.txt", NewSourceBuffer([]byte("hello\n")), WithMethod(codec.Store))
	require.NoError(t, err)
	require.NoError(t, a.Close())

	// create-without-truncate on an existing file reopens it for append.
	app, err := OpenFile(path, OpenFlag{Create: true})
	require.NoError(t, err)
	idx, err := app.AddEntry("world.txt", NewSourceBuffer([]byte("world\n")), WithMethod(codec.Store))
	require.NoError(t, err)
	require.Equal(t, 1, idx)
	require.NoError(t, app.Close())

	r, err := OpenFile(path, OpenFlag{})
	require.NoError(t, err)
	defer r.Close()

	require.Len(t, r.Entries(), 2)
	e0, _ := r.Stat(0)
	e1, _ := r.Stat(1)
	require.Equal(t, "hello.txt", e0.Name)
	require.Equal(t, "world.txt", e1.Name)

	f0, err := r.Open(0)
	require.NoError(t, err)
	require.Equal(t, []byte("hello\n"), f0.Bytes())
	f1, err := r.Open(1)
	require.NoError(t, err)
	require.Equal(t, []byte("world\n"), f1.Bytes())
}

// TestExpansionGuard loads a hand-built archive whose directory records
// one entry with an implausible declared uncompressed size.
func TestExpansionGuard(t *testing.T) {
	buf := buildBombArchive(t)

	r, err := Open(bytes.NewReader(buf))
	require.NoError(t, err)

	_, err = r.Open(0)
	var zerr *Error
	require.ErrorAs(t, err, &zerr)
	require.Equal(t, KindExpansionLimit, zerr.Kind)

	r2, err := Open(bytes.NewReader(buf), WithoutExpansionGuard())
	require.NoError(t, err)
	_, err = r2.Open(0)
	require.Error(t, err)
	require.ErrorAs(t, err, &zerr)
	require.Equal(t, KindMalformedArchive, zerr.Kind)
}

// buildBombArchive hand-assembles a one-entry STORE archive whose CDH/LFH
// declare a 10 MB uncompressed size against a real 64-byte payload: the
// compressed size matches the actual bytes on disk (so the "payload runs
// past EOF" check does not fire first), but the declared expansion ratio
// is implausible enough to trip the expansion guard.
func buildBombArchive(t *testing.T) []byte {
	t.Helper()

	payload := bytes.Repeat([]byte{0x42}, 64)
	name := "bomb.bin"
	const declaredUncompressedSize = 10_000_000

	var out bytes.Buffer

	lfh := lfhFixed{
		Signature:        sigLocalFileHeader,
		VersionNeeded:    versionNeeded,
		Method:           0,
		CompressedSize:   uint32(len(payload)),
		UncompressedSize: declaredUncompressedSize,
		NameLength:       uint16(len(name)),
	}
	lfhOffset := out.Len()
	require.NoError(t, binary.Write(&out, binary.LittleEndian, &lfh))
	out.WriteString(name)
	out.Write(payload)

	cdOffset := out.Len()
	cdh := cdhFixed{
		Signature:         sigCentralDirectoryFile,
		VersionMadeBy:     versionMadeBy,
		VersionNeeded:     versionNeeded,
		Method:            0,
		CompressedSize:    uint32(len(payload)),
		UncompressedSize:  declaredUncompressedSize,
		NameLength:        uint16(len(name)),
		LocalHeaderOffset: uint32(lfhOffset),
	}
	require.NoError(t, binary.Write(&out, binary.LittleEndian, &cdh))
	out.WriteString(name)
	cdSize := out.Len() - cdOffset

	require.NoError(t, writeEOCD(&out, 1, uint32(cdSize), uint32(cdOffset)))

	return out.Bytes()
}

// TestCoincidentalEOCD: a STORE entry's payload happens to embed the EOCD
// signature bytes, and
// the loader must still find the real (trailing) EOCD.
func TestCoincidentalEOCD(t *testing.T) {
	path := tempArchivePath(t)

	a, err := OpenFile(path, OpenFlag{Create: true, Truncate: true})
	require.NoError(t, err)

	payload := append([]byte("leading "), eocdSigBytes...)
	payload = append(payload, []byte(" trailing bytes that are not actually an EOCD record")...)

	_, err = a.AddEntry("decoy.bin", NewSourceBuffer(payload), WithMethod(codec.Store))
	require.NoError(t, err)
	require.NoError(t, a.Close())

	r, err := OpenFile(path, OpenFlag{})
	require.NoError(t, err)
	defer r.Close()

	require.Len(t, r.Entries(), 1)
	f, err := r.Open(0)
	require.NoError(t, err)
	require.Equal(t, payload, f.Bytes())
}

// TestDirectorySanity checks that every entry's payload lies inside the
// archive and that the central directory abuts the EOCD exactly.
func TestDirectorySanity(t *testing.T) {
	path := tempArchivePath(t)

	a, err := OpenFile(path, OpenFlag{Create: true, Truncate: true})
	require.NoError(t, err)
	_, err = a.AddEntry("one", NewSourceBuffer([]byte("111")), WithMethod(codec.Store))
	require.NoError(t, err)
	_, err = a.AddEntry("two", NewSourceBuffer([]byte("2222")), WithMethod(codec.Deflate))
	require.NoError(t, err)
	require.NoError(t, a.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	r, err := Open(bytes.NewReader(raw))
	require.NoError(t, err)

	eo, err := findEOCD(bytes.NewReader(raw))
	require.NoError(t, err)
	require.EqualValues(t, len(raw), int(eo.cdOffset)+int(eo.cdSize)+eocdFixedSize)

	for i, e := range r.Entries() {
		payloadOffset, err := readLocalHeader(bytes.NewReader(raw), int64(e.LocalHeaderOffset))
		require.NoError(t, err)
		require.LessOrEqual(t, payloadOffset+int64(e.CompressedSize), int64(len(raw)), "entry %d", i)
	}
}

// TestRoundTrip_AllMethods adds and re-extracts the same payload under
// every registered method, including the opaque plug-ins, with strict CRC
// checking on.
func TestRoundTrip_AllMethods(t *testing.T) {
	methods := []codec.Method{codec.Store, codec.Deflate, codec.LZMA, codec.ZSTD, codec.LZ4, codec.Brotli, codec.LZFSE}
	payload := bytes.Repeat([]byte("round trip me please "), 50)

	for _, m := range methods {
		m := m
		t.Run(m.String(), func(t *testing.T) {
			path := tempArchivePath(t)

			a, err := OpenFile(path, OpenFlag{Create: true, Truncate: true})
			require.NoError(t, err)
			_, err = a.AddEntry("f", NewSourceBuffer(payload), WithMethod(m))
			require.NoError(t, err)
			require.NoError(t, a.Close())

			r, err := OpenFile(path, OpenFlag{}, WithStrictCRC())
			require.NoError(t, err)
			defer r.Close()

			f, err := r.Open(0)
			require.NoError(t, err)
			require.Equal(t, payload, f.Bytes())
		})
	}
}

// TestAddEntry_StoreFallback: incompressible data is recorded as STORE
// even though DEFLATE was requested, with the CRC of the original bytes.
func TestAddEntry_StoreFallback(t *testing.T) {
	path := tempArchivePath(t)

	a, err := OpenFile(path, OpenFlag{Create: true, Truncate: true})
	require.NoError(t, err)

	// a single byte of input cannot shrink under a real Huffman-coded
	// DEFLATE block (block framing overhead alone exceeds it).
	data := []byte{0x07}
	_, err = a.AddEntry("x", NewSourceBuffer(data), WithMethod(codec.Deflate))
	require.NoError(t, err)
	require.NoError(t, a.Close())

	r, err := OpenFile(path, OpenFlag{})
	require.NoError(t, err)
	defer r.Close()

	e, err := r.Stat(0)
	require.NoError(t, err)
	require.Equal(t, uint16(codec.Store), e.Method)
	require.Equal(t, checksum(data), e.CRC32)
}

// TestMaxEntrySize: a CDH declaring a size over 2 GiB is rejected at
// load.
func TestMaxEntrySize(t *testing.T) {
	var out bytes.Buffer
	name := "big"
	cdh := cdhFixed{
		Signature:        sigCentralDirectoryFile,
		VersionMadeBy:    versionMadeBy,
		VersionNeeded:    versionNeeded,
		UncompressedSize: 1<<31 + 1,
		NameLength:       uint16(len(name)),
	}
	require.NoError(t, binary.Write(&out, binary.LittleEndian, &cdh))
	out.WriteString(name)
	cdSize := out.Len()

	require.NoError(t, writeEOCD(&out, 1, uint32(cdSize), 0))

	_, err := Open(bytes.NewReader(out.Bytes()))
	require.Error(t, err)
	var zerr *Error
	require.ErrorAs(t, err, &zerr)
	require.Equal(t, KindMalformedArchive, zerr.Kind)
}

func TestEmptyEntry(t *testing.T) {
	path := tempArchivePath(t)

	a, err := OpenFile(path, OpenFlag{Create: true, Truncate: true})
	require.NoError(t, err)
	_, err = a.AddEntry("empty", NewSourceBuffer(nil), WithMethod(codec.Deflate))
	require.NoError(t, err)
	require.NoError(t, a.Close())

	r, err := OpenFile(path, OpenFlag{})
	require.NoError(t, err)
	defer r.Close()

	e, err := r.Stat(0)
	require.NoError(t, err)
	require.Zero(t, e.CRC32)
	// an empty payload can never shrink under DEFLATE's own block framing,
	// so AddEntry's STORE fallback kicks in and records it as STORE.
	require.Equal(t, uint16(codec.Store), e.Method)
	require.Zero(t, e.CompressedSize)

	f, err := r.Open(0)
	require.NoError(t, err)
	require.Empty(t, f.Bytes())
}

func TestOpenFile_ExclusiveOnExisting(t *testing.T) {
	path := tempArchivePath(t)
	a, err := OpenFile(path, OpenFlag{Create: true, Truncate: true})
	require.NoError(t, err)
	require.NoError(t, a.Close())

	_, err = OpenFile(path, OpenFlag{Create: true, Exclusive: true})
	var zerr *Error
	require.ErrorAs(t, err, &zerr)
	require.Equal(t, KindAlreadyExists, zerr.Kind)
}

func TestOpenFile_ExclusiveAndTruncateRejected(t *testing.T) {
	path := tempArchivePath(t)
	_, err := OpenFile(path, OpenFlag{Create: true, Exclusive: true, Truncate: true})
	var zerr *Error
	require.ErrorAs(t, err, &zerr)
	require.Equal(t, KindInvalidArgument, zerr.Kind)
}
