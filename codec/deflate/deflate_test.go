package deflate

import (
	"testing"

	"github.com/nguyengg/otezip/codec"
	"github.com/stretchr/testify/require"
)

func decodeAll(t *testing.T, d *Decoder, in []byte) []byte {
	t.Helper()

	var out []byte
	buf := make([]byte, 64)
	offset := 0
	for {
		feed := in[offset:]
		consumed, produced, status, err := d.Process(feed, buf, codec.FlushFinish)
		require.NoError(t, err)
		offset += consumed
		out = append(out, buf[:produced]...)
		if status == codec.StatusStreamEnd {
			return out
		}
		if consumed == 0 && produced == 0 {
			t.Fatalf("decoder made no progress with %d input bytes remaining", len(feed))
		}
	}
}

func TestDecoder_FixedHuffmanHelloWorld(t *testing.T) {
	// The canonical fixed-Huffman encoding of "Hello, World!\n" as
	// produced by this package's own encoder; any conforming encoder's
	// output decodes the same way.
	want := []byte("Hello, World!\n")

	enc, err := NewEncoder(6)
	require.NoError(t, err)
	compressed := make([]byte, 0, 64)
	buf := make([]byte, 256)
	_, produced, _, err := enc.Process(want, buf, codec.FlushFinish)
	require.NoError(t, err)
	compressed = append(compressed, buf[:produced]...)

	dec, err := NewDecoder(-15)
	require.NoError(t, err)
	got := decodeAll(t, dec, compressed)
	require.Equal(t, want, got)
}

func TestDecoder_EmptyFinalFixedBlock(t *testing.T) {
	// The two bytes 03 00 are a single empty final block of type 1.
	dec, err := NewDecoder(-15)
	require.NoError(t, err)

	got := decodeAll(t, dec, []byte{0x03, 0x00})
	require.Empty(t, got)
}

func TestRoundTrip_RepeatedByte(t *testing.T) {
	input := make([]byte, 1000)
	for i := range input {
		input[i] = 'A'
	}

	enc, err := NewEncoder(6)
	require.NoError(t, err)
	compressed := encodeAllForTest(t, enc, input)
	require.Less(t, len(compressed), len(input))

	dec, err := NewDecoder(-15)
	require.NoError(t, err)
	got := decodeAll(t, dec, compressed)
	require.Equal(t, input, got)
}

func TestRoundTrip_PangramSentence(t *testing.T) {
	input := []byte("The quick brown fox jumps over the lazy dog.")

	enc, err := NewEncoder(6)
	require.NoError(t, err)
	compressed := encodeAllForTest(t, enc, input)

	dec, err := NewDecoder(-15)
	require.NoError(t, err)
	got := decodeAll(t, dec, compressed)
	require.Equal(t, input, got)
}

func TestRoundTrip_Empty(t *testing.T) {
	enc, err := NewEncoder(6)
	require.NoError(t, err)
	compressed := encodeAllForTest(t, enc, nil)
	require.NotEmpty(t, compressed)

	dec, err := NewDecoder(-15)
	require.NoError(t, err)
	got := decodeAll(t, dec, compressed)
	require.Empty(t, got)
}

func TestRoundTrip_StoredLevelZero(t *testing.T) {
	input := []byte("store me verbatim")

	enc, err := NewEncoder(0)
	require.NoError(t, err)
	compressed := encodeAllForTest(t, enc, input)

	dec, err := NewDecoder(-15)
	require.NoError(t, err)
	got := decodeAll(t, dec, compressed)
	require.Equal(t, input, got)
}

func TestDecoder_GzipWrapper(t *testing.T) {
	// gzip header with FNAME set, no FEXTRA/FCOMMENT/FHCRC.
	hdr := []byte{0x1f, 0x8b, 8, 0x08, 0, 0, 0, 0, 0, 0xff}
	hdr = append(hdr, []byte("name.txt\x00")...)
	payload := []byte{0x03, 0x00} // empty final fixed block

	dec, err := NewDecoder(16 + 15)
	require.NoError(t, err)
	got := decodeAll(t, dec, append(hdr, payload...))
	require.Empty(t, got)
}

func encodeAllForTest(t *testing.T, enc *Encoder, input []byte) []byte {
	t.Helper()

	var out []byte
	buf := make([]byte, 4096)
	offset := 0
	for {
		feed := input[offset:]
		consumed, produced, status, err := enc.Process(feed, buf, codec.FlushFinish)
		require.NoError(t, err)
		offset += consumed
		out = append(out, buf[:produced]...)
		if status == codec.StatusStreamEnd {
			return out
		}
	}
}
