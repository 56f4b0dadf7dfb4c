package compress

// ZstdCodec handles zstd framed archives. The implementation is selected at
// build time: pure Go (klauspost/compress/zstd) by default, libzstd via
// gozstd when cgo is available.
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a new zstd frame codec.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
