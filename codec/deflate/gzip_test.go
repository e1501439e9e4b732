package deflate

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGzipRoundTrip(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte("hello, world!"),
		bytes.Repeat([]byte("otezip otezip otezip "), 200),
	}

	for _, data := range cases {
		framed, err := EncodeGzip(data, -1)
		require.NoError(t, err)
		require.True(t, len(framed) >= 18, "gzip member must carry header+trailer")
		require.Equal(t, byte(0x1f), framed[0])
		require.Equal(t, byte(0x8b), framed[1])

		got, err := DecodeGzip(framed)
		require.NoError(t, err)
		require.True(t, bytes.Equal(data, got))
	}
}
