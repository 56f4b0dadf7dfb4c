package hash

import "github.com/cespare/xxhash/v2"

// Fingerprint computes the xxHash64 digest of a raw file buffer. Used to
// identify decoded files across repeated imports.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}
