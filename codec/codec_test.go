package codec_test

import (
	"bytes"
	"testing"

	"github.com/nguyengg/otezip/codec"
	_ "github.com/nguyengg/otezip/codec/deflate"
	"github.com/stretchr/testify/require"
)

// runSession drives a session to StatusStreamEnd through a deliberately
// small scratch buffer so the drain path across multiple Process calls is
// exercised, not just the single-shot happy path.
func runSession(t *testing.T, s codec.Session, in []byte) []byte {
	t.Helper()

	var out []byte
	buf := make([]byte, 64)
	offset := 0
	for {
		consumed, produced, status, err := s.Process(in[offset:], buf, codec.FlushFinish)
		require.NoError(t, err)
		offset += consumed
		out = append(out, buf[:produced]...)
		if status == codec.StatusStreamEnd {
			require.Equal(t, len(in), offset, "session ended with unconsumed input")
			return out
		}
		if consumed == 0 && produced == 0 {
			t.Fatalf("session made no progress with %d input bytes remaining", len(in)-offset)
		}
	}
}

func TestLookup_UnsupportedMethod(t *testing.T) {
	_, err := codec.Lookup(codec.Method(4711))
	require.ErrorIs(t, err, codec.ErrUnsupportedMethod)

	require.False(t, codec.Registered(codec.Method(4711)))
	require.True(t, codec.Registered(codec.Store))
	require.True(t, codec.Registered(codec.Deflate))
}

func TestStore_Identity(t *testing.T) {
	c, err := codec.Lookup(codec.Store)
	require.NoError(t, err)

	for _, data := range [][]byte{nil, []byte("x"), bytes.Repeat([]byte("abc"), 100)} {
		enc, err := c.NewEncoder(-1)
		require.NoError(t, err)
		encoded := runSession(t, enc, data)
		require.True(t, bytes.Equal(data, encoded))
		require.NoError(t, enc.End())

		dec, err := c.NewDecoder(0)
		require.NoError(t, err)
		decoded := runSession(t, dec, encoded)
		require.True(t, bytes.Equal(data, decoded))
		require.NoError(t, dec.End())
	}
}

func TestRoundTrip_EveryMethod(t *testing.T) {
	payload := bytes.Repeat([]byte("the same twenty bytes"), 64)

	for _, m := range []codec.Method{
		codec.Store, codec.Deflate, codec.LZMA, codec.ZSTD, codec.LZ4, codec.Brotli, codec.LZFSE,
	} {
		m := m
		t.Run(m.String(), func(t *testing.T) {
			c, err := codec.Lookup(m)
			require.NoError(t, err)

			enc, err := c.NewEncoder(-1)
			require.NoError(t, err)
			encoded := runSession(t, enc, payload)
			require.NoError(t, enc.End())

			dec, err := c.NewDecoder(0)
			require.NoError(t, err)
			decoded := runSession(t, dec, encoded)
			require.Equal(t, payload, decoded)
			require.NoError(t, dec.End())
		})
	}
}

// Brotli wraps even empty input in a frame; the decoder must unwrap it
// back to zero bytes.
func TestBrotli_EmptyInputFrame(t *testing.T) {
	c, err := codec.Lookup(codec.Brotli)
	require.NoError(t, err)

	enc, err := c.NewEncoder(-1)
	require.NoError(t, err)
	encoded := runSession(t, enc, nil)
	require.NotEmpty(t, encoded)
	require.NoError(t, enc.End())

	dec, err := c.NewDecoder(0)
	require.NoError(t, err)
	decoded := runSession(t, dec, encoded)
	require.Empty(t, decoded)
}

func TestDecoder_GarbageInput(t *testing.T) {
	// 0xff in every byte fails each method's header validation up front:
	// an invalid LZMA properties byte, and the wrong magic for the rest.
	in := bytes.Repeat([]byte{0xff}, 64)

	for _, m := range []codec.Method{codec.LZMA, codec.ZSTD, codec.LZ4, codec.LZFSE} {
		m := m
		t.Run(m.String(), func(t *testing.T) {
			c, err := codec.Lookup(m)
			require.NoError(t, err)

			dec, err := c.NewDecoder(0)
			require.NoError(t, err)
			defer dec.End()

			buf := make([]byte, 1024)
			_, _, _, err = dec.Process(in, buf, codec.FlushFinish)
			require.Error(t, err)
		})
	}
}

func TestEnd_Idempotent(t *testing.T) {
	c, err := codec.Lookup(codec.ZSTD)
	require.NoError(t, err)

	enc, err := c.NewEncoder(-1)
	require.NoError(t, err)
	require.NoError(t, enc.End())
	require.NoError(t, enc.End())
}
