// Package mpr decodes Bio-Logic EC-Lab .mpr container files.
//
// An .mpr file is a sequence of named, versioned, length-bounded binary
// modules behind a fixed signature. The decoder scans the module index,
// decodes the settings module (technique and acquisition parameters),
// resolves the data module's column schema, and materializes every data
// record as a typed row. Ancillary modules (log, loop) enrich the result but
// never fail it; recoverable conditions surface as structured warnings on the
// decoded File.
//
// The sole entry point is Decode. Decoding is a single pass over an in-memory
// buffer; separate buffers may be decoded concurrently without coordination.
package mpr

import (
	"fmt"
	"time"

	"github.com/echemdata/galvani/format"
	"github.com/echemdata/galvani/schema"
	"github.com/echemdata/galvani/technique"
)

// ModuleDescriptor locates one module within the file.
type ModuleDescriptor struct {
	Name     string // trimmed short name, e.g. "VMP data"
	LongName string
	Version  uint32
	Offset   int // body offset within the raw buffer
	Length   int // body byte count
	Date     string
}

// ValueKind discriminates the members of Value.
type ValueKind uint8

const (
	ValueUint ValueKind = iota + 1
	ValueFloat
)

// Value is one decoded cell of a data row.
type Value struct {
	Kind ValueKind
	U    uint64
	F    float64
}

// Float returns the cell as a float64 regardless of kind.
func (v Value) Float() float64 {
	if v.Kind == ValueUint {
		return float64(v.U)
	}

	return v.F
}

// FlagValue is one unpacked sub-field of the packed flags column. Boolean
// flags decode to 0 or 1; the mode field carries its 2-bit value.
type FlagValue struct {
	Name  string
	Value uint8
}

// DataRow is one decoded data record. Cells follow the schema's column order;
// Flags follows the schema's flag order. Rows are immutable once produced.
type DataRow struct {
	Cells []Value
	Flags []FlagValue
}

// Cell returns the value of the named column.
func (r DataRow) Cell(s *schema.Schema, name string) (Value, bool) {
	for i, col := range s.Columns {
		if col.Name == name {
			return r.Cells[i], true
		}
	}

	return Value{}, false
}

// Flag returns the value of the named flag sub-field.
func (r DataRow) Flag(name string) (uint8, bool) {
	for _, f := range r.Flags {
		if f.Name == name {
			return f.Value, true
		}
	}

	return 0, false
}

// LogInfo is the decoded log module: acquisition start time, channel number
// and the operator comment, if any.
type LogInfo struct {
	StartTime time.Time
	Channel   uint8
	Comment   string
}

// LoopInfo is the decoded loop module: the record indexes at which each
// technique loop started.
type LoopInfo struct {
	Indexes []uint32
}

// Warning is a recoverable decode condition attached to a successfully
// decoded File. Err is the classifying sentinel from the errs package.
type Warning struct {
	Err    error
	Module string
	Offset int
	Detail string
}

func (w Warning) String() string {
	return fmt.Sprintf("%v: module %q at offset %d: %s", w.Err, w.Module, w.Offset, w.Detail)
}

// File is a fully decoded .mpr file. It owns all decoded state; accessors
// return internal slices that must not be modified.
type File struct {
	archive     format.ArchiveType
	fingerprint uint64
	startDate   time.Time
	modules     []ModuleDescriptor
	settings    *technique.Settings
	schema      *schema.Schema
	rows        []DataRow
	logInfo     *LogInfo
	loopInfo    *LoopInfo
	warnings    []Warning
}

// Modules returns the descriptors of every module found in the file, in file
// order, including skipped unknown modules.
func (f *File) Modules() []ModuleDescriptor {
	return f.modules
}

// Settings returns the decoded technique settings.
func (f *File) Settings() *technique.Settings {
	return f.settings
}

// Schema returns the resolved column schema of the data module.
func (f *File) Schema() *schema.Schema {
	return f.schema
}

// Rows returns the decoded data rows in acquisition order. The slice is
// re-iterable and never nil for a decoded file.
func (f *File) Rows() []DataRow {
	return f.rows
}

// LogInfo returns the decoded log metadata, or nil if the log module was
// absent or corrupt (see Warnings).
func (f *File) LogInfo() *LogInfo {
	return f.logInfo
}

// LoopInfo returns the decoded loop metadata, or nil if absent.
func (f *File) LoopInfo() *LoopInfo {
	return f.loopInfo
}

// Warnings returns the recoverable conditions encountered while decoding, in
// encounter order.
func (f *File) Warnings() []Warning {
	return f.warnings
}

// StartDate returns the acquisition date recorded in the settings module
// header, or the zero time if it could not be parsed.
func (f *File) StartDate() time.Time {
	return f.startDate
}

// Fingerprint returns the xxHash64 digest of the raw (unwrapped) buffer.
func (f *File) Fingerprint() uint64 {
	return f.fingerprint
}

// Archive returns the compression frame the buffer arrived in, or
// format.ArchiveNone for a plain capture.
func (f *File) Archive() format.ArchiveType {
	return f.archive
}
