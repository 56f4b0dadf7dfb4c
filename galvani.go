// Package galvani decodes Bio-Logic potentiostat files.
//
// EC-Lab and BT-Lab instruments record electrochemistry runs as binary .mpr
// container files and can export them as tab-separated .mpt text files. This
// module decodes both:
//
//   - mpr: the binary modular container (settings, data records, log, loop)
//   - mpt: the ASCII export format
//
// The root package re-exports the common entry points; the subpackages carry
// the full API. Decoding is pure in-memory work with no side effects, so any
// number of files may be decoded concurrently.
//
// # Quick start
//
//	buf, err := os.ReadFile("run42_GCPL.mpr")
//	if err != nil {
//	    return err
//	}
//	file, err := galvani.Decode(buf)
//	if err != nil {
//	    return err
//	}
//	for _, w := range file.Warnings() {
//	    log.Println(w)
//	}
//	for _, row := range file.Rows() {
//	    ewe, _ := row.Cell(file.Schema(), "Ewe/V")
//	    fmt.Println(ewe.Float())
//	}
//
// Decode failures wrap the sentinel errors in the errs package; match them
// with errors.Is.
package galvani

import (
	"io"

	"github.com/echemdata/galvani/mpr"
	"github.com/echemdata/galvani/mpt"
)

// Decode decodes a complete .mpr buffer. Gzip, zstd, lz4 and s2 framed
// buffers are unwrapped transparently. See mpr.Decode.
func Decode(data []byte, opts ...mpr.Option) (*mpr.File, error) {
	return mpr.Decode(data, opts...)
}

// DecodeReader reads r to EOF and decodes the contents as an .mpr file.
func DecodeReader(r io.Reader, opts ...mpr.Option) (*mpr.File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return mpr.Decode(data, opts...)
}

// ParseText parses a .mpt ASCII export. See mpt.Parse.
func ParseText(data []byte) (*mpt.Table, error) {
	return mpt.Parse(data)
}
