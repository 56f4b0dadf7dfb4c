// Package compress handles the optional compression frames found around
// captured instrument files.
//
// Acquisition stations frequently archive raw .mpr captures as gzip, zstd,
// lz4 or s2 framed streams. Sniff inspects the leading magic bytes and
// Unwrap decompresses a framed buffer back to the raw file contents; plain
// buffers pass through untouched.
package compress

import (
	"bytes"
	"fmt"

	"github.com/echemdata/galvani/format"
)

// Codec compresses and decompresses one framed archive format. Compress
// exists mainly for tests and tooling that produce framed fixtures; the
// decoder itself only decompresses.
type Codec interface {
	// Compress wraps data in the codec's framed format. The returned slice is
	// newly allocated; the input is not modified.
	Compress(data []byte) ([]byte, error)

	// Decompress unwraps a framed buffer back to the original bytes. The
	// returned slice is newly allocated; the input is not modified.
	Decompress(data []byte) ([]byte, error)
}

// Frame magics of the supported archive formats.
var (
	gzipMagic = []byte{0x1F, 0x8B}
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
	s2Magic   = []byte{0xFF, 0x06, 0x00, 0x00, 's', 'N', 'a', 'P', 'p', 'Y'}
)

// Sniff identifies the archive frame wrapping data, or ArchiveNone for a
// plain buffer.
func Sniff(data []byte) format.ArchiveType {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		return format.ArchiveGzip
	case bytes.HasPrefix(data, zstdMagic):
		return format.ArchiveZstd
	case bytes.HasPrefix(data, lz4Magic):
		return format.ArchiveLZ4
	case bytes.HasPrefix(data, s2Magic):
		return format.ArchiveS2
	default:
		return format.ArchiveNone
	}
}

var builtinCodecs = map[format.ArchiveType]Codec{
	format.ArchiveNone: NewNoOpCodec(),
	format.ArchiveGzip: NewGzipCodec(),
	format.ArchiveZstd: NewZstdCodec(),
	format.ArchiveLZ4:  NewLZ4Codec(),
	format.ArchiveS2:   NewS2Codec(),
}

// GetCodec retrieves the built-in codec for the given archive type.
func GetCodec(archiveType format.ArchiveType) (Codec, error) {
	if codec, ok := builtinCodecs[archiveType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported archive type: %s", archiveType)
}

// Unwrap sniffs data and decompresses it if framed. It returns the raw
// contents and the detected archive type.
func Unwrap(data []byte) ([]byte, format.ArchiveType, error) {
	archiveType := Sniff(data)
	if archiveType == format.ArchiveNone {
		return data, archiveType, nil
	}

	codec, err := GetCodec(archiveType)
	if err != nil {
		return nil, archiveType, err
	}

	raw, err := codec.Decompress(data)
	if err != nil {
		return nil, archiveType, fmt.Errorf("unwrap %s archive: %w", archiveType, err)
	}

	return raw, archiveType, nil
}
