// Package errs defines the sentinel errors returned by the galvani decoders.
//
// All decode failures wrap one of these sentinels with positional context, so
// callers can match with errors.Is while still seeing which module and offset
// failed:
//
//	file, err := galvani.Decode(buf)
//	if errors.Is(err, errs.ErrUnsupportedTechnique) {
//	    // the (technique, version) pair has no registered layout
//	}
package errs

import "errors"

var (
	// ErrOutOfBounds is returned when a cursor read runs past the end of the
	// buffer. It indicates either file truncation or a schema bug, and is
	// always fatal for the read that produced it.
	ErrOutOfBounds = errors.New("read out of bounds")

	// ErrBadMagic is returned when the buffer does not start with the
	// BIO-LOGIC MODULAR FILE signature.
	ErrBadMagic = errors.New("bad file magic")

	// ErrUnknownModule is returned in strict mode when a module tag is not in
	// the known set. In tolerant mode (the default) the module is skipped and
	// the condition is surfaced as a warning instead.
	ErrUnknownModule = errors.New("unknown module tag")

	// ErrDuplicateModule marks a repeated module name beyond the first
	// occurrence. Never fatal; surfaced as a warning.
	ErrDuplicateModule = errors.New("duplicate module")

	// ErrCorruptModule is returned when a module's declared length runs past
	// the end of the file, or a module header cannot be parsed at all.
	ErrCorruptModule = errors.New("corrupt module")

	// ErrUnsupportedVersion is returned when a module carries a version for
	// which no body layout is known. Guessing a layout is never attempted.
	ErrUnsupportedVersion = errors.New("unsupported module version")

	// ErrUnsupportedTechnique is returned when the settings module names a
	// (technique, version) pair with no registered parameter layout.
	ErrUnsupportedTechnique = errors.New("unsupported technique")

	// ErrUnknownColumn is returned when the data module declares a column ID
	// that is not in the column table.
	ErrUnknownColumn = errors.New("unknown column ID")

	// ErrSchemaStrideMismatch is returned when the resolved column widths do
	// not add up to the data module's record stride.
	ErrSchemaStrideMismatch = errors.New("schema stride mismatch")

	// ErrTruncatedRecord marks a data module whose final record is shorter
	// than the stride. Recoverable: the complete rows are still returned.
	ErrTruncatedRecord = errors.New("truncated record")

	// ErrCorruptLog marks a log module that could not be decoded.
	// Recoverable: the file is still produced without log info.
	ErrCorruptLog = errors.New("corrupt log module")

	// ErrCorruptLoop marks a loop module that could not be decoded.
	// Recoverable: the file is still produced without loop info.
	ErrCorruptLoop = errors.New("corrupt loop module")

	// ErrMissingModule is returned when a required module (settings or data)
	// is absent from the file.
	ErrMissingModule = errors.New("missing required module")

	// ErrBadDate is returned when a module header date matches none of the
	// known vendor date formats.
	ErrBadDate = errors.New("unparseable date")

	// ErrBadTextHeader is returned by the mpt reader when the ASCII export
	// header does not match the expected layout.
	ErrBadTextHeader = errors.New("bad text export header")

	// ErrUnknownColumnHeader is returned by the mpt reader for a column
	// header it cannot map to a known field.
	ErrUnknownColumnHeader = errors.New("unknown column header")

	// ErrBadTextRow is returned by the mpt reader for a data line whose cell
	// count or number format does not match the column headers.
	ErrBadTextRow = errors.New("bad text export row")
)
