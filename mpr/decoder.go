package mpr

import (
	"fmt"

	"github.com/echemdata/galvani/compress"
	"github.com/echemdata/galvani/cursor"
	"github.com/echemdata/galvani/errs"
	"github.com/echemdata/galvani/format"
	"github.com/echemdata/galvani/internal/hash"
	"github.com/echemdata/galvani/schema"
	"github.com/echemdata/galvani/section"
	"github.com/echemdata/galvani/technique"
)

// knownModules is the closed set of module tags this decoder understands, as
// stored on disk (space padded).
var knownModules = map[string]bool{
	section.ModuleSettings: true,
	section.ModuleData:     true,
	section.ModuleLog:      true,
	section.ModuleLoop:     true,
}

// Decoder decodes one .mpr buffer into a File.
//
// A Decoder is single use and not safe for concurrent use; decode separate
// buffers with separate decoders.
type Decoder struct {
	data    []byte
	archive format.ArchiveType
	opts    options

	modules  []ModuleDescriptor
	byName   map[string]ModuleDescriptor
	warnings []Warning
}

// NewDecoder validates the file signature and prepares a decoder. Compressed
// archive frames (gzip, zstd, lz4, s2) are unwrapped first unless disabled.
//
// Returns:
//   - *Decoder: Decoder ready for Decode
//   - error: ErrBadMagic when the signature is absent, or an unwrap error
func NewDecoder(data []byte, opts ...Option) (*Decoder, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	archive := format.ArchiveNone
	raw := data
	if o.sniffArchive {
		var err error
		raw, archive, err = compress.Unwrap(data)
		if err != nil {
			return nil, err
		}
	}

	if len(raw) < section.FileMagicSize || string(raw[:section.FileMagicSize]) != section.FileMagic {
		return nil, fmt.Errorf("%w: buffer does not start with the BIO-LOGIC MODULAR FILE signature",
			errs.ErrBadMagic)
	}

	return &Decoder{
		data:    raw,
		archive: archive,
		opts:    o,
		byName:  make(map[string]ModuleDescriptor),
	}, nil
}

// Decode decodes the whole file and returns the materialized File.
//
// Fatal conditions (corrupt module lengths, unsupported technique or data
// layout, schema/stride disagreement) return a typed error and no File.
// Recoverable conditions (unknown modules, truncated record tail, corrupt log
// or loop module) degrade to warnings attached to the returned File.
func (d *Decoder) Decode() (*File, error) {
	if err := d.scanModules(); err != nil {
		return nil, err
	}

	file := &File{
		archive:     d.archive,
		fingerprint: hash.Fingerprint(d.data),
		modules:     d.modules,
	}

	settingsDesc, ok := d.byName[trimmedName(section.ModuleSettings)]
	if !ok {
		return nil, fmt.Errorf("%w: settings module", errs.ErrMissingModule)
	}
	dataDesc, ok := d.byName[trimmedName(section.ModuleData)]
	if !ok {
		return nil, fmt.Errorf("%w: data module", errs.ErrMissingModule)
	}

	settings, err := technique.DecodeSettings(d.body(settingsDesc), settingsDesc.Version)
	if err != nil {
		return nil, fmt.Errorf("settings module at offset %d: %w", settingsDesc.Offset, err)
	}
	file.settings = settings

	if startDate, err := section.ParseDate(settingsDesc.Date); err != nil {
		d.warn(errs.ErrBadDate, settingsDesc.Name, settingsDesc.Offset, err.Error())
	} else {
		file.startDate = startDate
	}

	if err := d.decodeData(file, dataDesc, settings.Technique); err != nil {
		return nil, err
	}

	d.decodeLogModule(file)
	d.decodeLoopModule(file)

	file.warnings = d.warnings

	return file, nil
}

// scanModules walks the module sequence after the file signature, validating
// tags and lengths, and builds the descriptor list plus the first-wins name
// lookup.
func (d *Decoder) scanModules() error {
	cur, err := cursor.NewAt(d.data, section.FileMagicSize)
	if err != nil {
		return err
	}

	for cur.Remaining() > 0 {
		hdr, err := section.ParseModuleHeader(cur)
		if err != nil {
			return err
		}

		bodyOffset := cur.Pos()
		length := int(hdr.Length)
		if length > cur.Remaining() {
			return fmt.Errorf("%w: module %q at offset %d declares %d body bytes, %d remain",
				errs.ErrCorruptModule, hdr.Name(), bodyOffset, length, cur.Remaining())
		}

		desc := ModuleDescriptor{
			Name:     hdr.Name(),
			LongName: hdr.LongName,
			Version:  hdr.Version,
			Offset:   bodyOffset,
			Length:   length,
			Date:     hdr.Date,
		}
		d.modules = append(d.modules, desc)

		if !knownModules[hdr.ShortName] {
			if d.opts.strictModules {
				return fmt.Errorf("%w: %q at offset %d", errs.ErrUnknownModule, hdr.Name(), bodyOffset)
			}
			d.warn(errs.ErrUnknownModule, desc.Name, bodyOffset, "skipped")
		} else if _, dup := d.byName[desc.Name]; dup {
			d.warn(errs.ErrDuplicateModule, desc.Name, bodyOffset, "first occurrence wins")
		} else {
			d.byName[desc.Name] = desc
		}

		if err := cur.Skip(length); err != nil {
			return err
		}
	}

	return nil
}

func (d *Decoder) decodeData(file *File, desc ModuleDescriptor, tech format.TechniqueID) error {
	body := d.body(desc)

	pre, err := section.ParseDataPreamble(body, desc.Version)
	if err != nil {
		return fmt.Errorf("data module at offset %d: %w", desc.Offset, err)
	}

	sch, err := schema.Resolve(pre.ColumnIDs, tech)
	if err != nil {
		return fmt.Errorf("data module at offset %d: %w", desc.Offset, err)
	}
	file.schema = sch

	region := body[pre.RecordsOffset:]
	rows, warnings, err := decodeRecords(region, sch, pre.RecordCount, desc.Name, desc.Offset+pre.RecordsOffset)
	if err != nil {
		return err
	}
	file.rows = rows
	d.warnings = append(d.warnings, warnings...)

	return nil
}

func (d *Decoder) decodeLogModule(file *File) {
	desc, ok := d.byName[trimmedName(section.ModuleLog)]
	if !ok {
		return
	}

	info, err := decodeLog(d.body(desc))
	if err != nil {
		d.warn(errs.ErrCorruptLog, desc.Name, desc.Offset, err.Error())
		return
	}
	file.logInfo = info

	// The settings date and the log timestamp describe the same acquisition
	// start; a disagreement means one of them is unreliable.
	if !file.startDate.IsZero() {
		y1, m1, d1 := file.startDate.Date()
		y2, m2, d2 := info.StartTime.Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			d.warn(errs.ErrCorruptLog, desc.Name, desc.Offset,
				fmt.Sprintf("log timestamp %s disagrees with settings date %s",
					info.StartTime.Format("2006-01-02"), file.startDate.Format("2006-01-02")))
		}
	}
}

func (d *Decoder) decodeLoopModule(file *File) {
	desc, ok := d.byName[trimmedName(section.ModuleLoop)]
	if !ok {
		return
	}

	info, err := decodeLoop(d.body(desc), desc.Version)
	if err != nil {
		d.warn(errs.ErrCorruptLoop, desc.Name, desc.Offset, err.Error())
		return
	}
	file.loopInfo = info
}

func (d *Decoder) body(desc ModuleDescriptor) []byte {
	return d.data[desc.Offset : desc.Offset+desc.Length]
}

func (d *Decoder) warn(sentinel error, module string, offset int, detail string) {
	d.warnings = append(d.warnings, Warning{Err: sentinel, Module: module, Offset: offset, Detail: detail})
}

func trimmedName(shortName string) string {
	for len(shortName) > 0 && shortName[len(shortName)-1] == ' ' {
		shortName = shortName[:len(shortName)-1]
	}

	return shortName
}

// Decode is the package entry point: it decodes a complete .mpr buffer
// (optionally archive framed) into a File.
func Decode(data []byte, opts ...Option) (*File, error) {
	decoder, err := NewDecoder(data, opts...)
	if err != nil {
		return nil, err
	}

	return decoder.Decode()
}
