package zip

// Options holds an Archive handle's tunables, threaded through an explicit
// struct owned by the handle rather than through package-level mutable
// state.
type Options struct {
	// ExpansionRatio and ExpansionSlack parameterize the expansion
	// guard: an entry is rejected if its declared uncompressed size
	// exceeds compressed_size*ExpansionRatio + ExpansionSlack.
	ExpansionRatio int64
	ExpansionSlack int64
	// DisableExpansionGuard turns the guard off entirely.
	DisableExpansionGuard bool

	// StrictCRC makes a CRC-32 mismatch at extract time a hard error
	// (KindCRCMismatch) instead of a warning delivered through Warn.
	StrictCRC bool

	// DefaultMethod is the codec method used for newly added entries
	// when AddEntry's caller does not override it.
	DefaultMethod uint16

	// BufferSize sizes the scratch buffers used while streaming
	// payloads through a codec session.
	BufferSize int

	// Warn receives non-fatal diagnostics the library would otherwise
	// have to either swallow or write to stderr directly.
	Warn WarnFunc
}

// WarnFunc receives a non-fatal diagnostic. The only one this package
// delivers is a CRC-32 mismatch found by (*Archive).Open when StrictCRC is
// off; NamePolicy.Sanitize does not report suspicious names through it.
type WarnFunc func(op, msg string)

func defaultOptions() *Options {
	return &Options{
		ExpansionRatio: 1000,
		ExpansionSlack: 1 << 20,
		DefaultMethod:  8, // DEFLATE
		BufferSize:     32 * 1024,
		Warn:           func(string, string) {},
	}
}

// WithExpansionGuard overrides the default ratio=1000/slack=1MiB pair.
func WithExpansionGuard(ratio, slack int64) func(*Options) {
	return func(o *Options) {
		o.ExpansionRatio = ratio
		o.ExpansionSlack = slack
	}
}

// WithoutExpansionGuard disables the zipbomb defence entirely.
func WithoutExpansionGuard() func(*Options) {
	return func(o *Options) {
		o.DisableExpansionGuard = true
	}
}

// WithStrictCRC makes a CRC-32 mismatch at extract time a hard error.
func WithStrictCRC() func(*Options) {
	return func(o *Options) {
		o.StrictCRC = true
	}
}

// WithDefaultMethod sets the codec method used for entries added without
// an explicit override.
func WithDefaultMethod(method uint16) func(*Options) {
	return func(o *Options) {
		o.DefaultMethod = method
	}
}

// WithBufferSize overrides the scratch buffer size used to stream
// payloads through a codec session.
func WithBufferSize(n int) func(*Options) {
	return func(o *Options) {
		o.BufferSize = n
	}
}

// WithWarnFunc installs the channel non-fatal diagnostics are delivered
// through.
func WithWarnFunc(fn WarnFunc) func(*Options) {
	return func(o *Options) {
		o.Warn = fn
	}
}
