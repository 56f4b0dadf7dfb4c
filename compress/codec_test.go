package compress

import (
	"bytes"
	"testing"

	"github.com/echemdata/galvani/format"
	"github.com/stretchr/testify/require"
)

func samplePayload() []byte {
	// Repetitive enough to compress under every codec.
	return bytes.Repeat([]byte("BIO-LOGIC MODULAR FILE sample record payload "), 64)
}

func TestCodecsRoundTrip(t *testing.T) {
	payload := samplePayload()

	cases := []struct {
		name        string
		archiveType format.ArchiveType
	}{
		{"gzip", format.ArchiveGzip},
		{"zstd", format.ArchiveZstd},
		{"lz4", format.ArchiveLZ4},
		{"s2", format.ArchiveS2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			codec, err := GetCodec(tc.archiveType)
			require.NoError(t, err)

			framed, err := codec.Compress(payload)
			require.NoError(t, err)
			require.NotEmpty(t, framed)

			// The frame must announce itself to the sniffer.
			require.Equal(t, tc.archiveType, Sniff(framed))

			raw, err := codec.Decompress(framed)
			require.NoError(t, err)
			require.Equal(t, payload, raw)
		})
	}
}

func TestSniffPlain(t *testing.T) {
	require.Equal(t, format.ArchiveNone, Sniff(samplePayload()))
	require.Equal(t, format.ArchiveNone, Sniff(nil))
	require.Equal(t, format.ArchiveNone, Sniff([]byte{0x1F}))
}

func TestUnwrap(t *testing.T) {
	payload := samplePayload()

	t.Run("plain passthrough", func(t *testing.T) {
		raw, archiveType, err := Unwrap(payload)
		require.NoError(t, err)
		require.Equal(t, format.ArchiveNone, archiveType)
		require.Equal(t, payload, raw)
	})

	t.Run("framed", func(t *testing.T) {
		framed, err := NewGzipCodec().Compress(payload)
		require.NoError(t, err)

		raw, archiveType, err := Unwrap(framed)
		require.NoError(t, err)
		require.Equal(t, format.ArchiveGzip, archiveType)
		require.Equal(t, payload, raw)
	})

	t.Run("corrupt frame", func(t *testing.T) {
		framed, err := NewGzipCodec().Compress(payload)
		require.NoError(t, err)
		framed = framed[:8]

		_, _, err = Unwrap(framed)
		require.Error(t, err)
	})
}

func TestNoOpCodec(t *testing.T) {
	payload := samplePayload()
	codec := NewNoOpCodec()

	out, err := codec.Compress(payload)
	require.NoError(t, err)
	require.Equal(t, payload, out)

	out, err = codec.Decompress(payload)
	require.NoError(t, err)
	require.Equal(t, payload, out)
}
