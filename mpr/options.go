package mpr

// Option configures a Decoder.
type Option func(*options)

type options struct {
	strictModules bool
	sniffArchive  bool
}

func defaultOptions() options {
	return options{sniffArchive: true}
}

// WithStrictModules makes unknown module tags fatal instead of skip-and-warn.
// Useful when validating files from a new firmware build, where an unknown
// module means the format table needs updating.
func WithStrictModules() Option {
	return func(o *options) {
		o.strictModules = true
	}
}

// WithoutArchiveSniffing disables compression frame detection; the buffer is
// decoded as a plain .mpr capture.
func WithoutArchiveSniffing() Option {
	return func(o *options) {
		o.sniffArchive = false
	}
}
