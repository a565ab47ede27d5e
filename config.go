package fitdecode

import "github.com/polyvertex/fitdecode/internal/options"

// CRCPolicy controls how aggressively a Reader verifies FIT CRC-16 values.
type CRCPolicy int

const (
	// CRCEnabled computes CRCs and fails decoding on a header or footer
	// mismatch. This is the default.
	CRCEnabled CRCPolicy = iota
	// CRCReadOnly computes CRCs but never fails on mismatch; Crc frames
	// still report whether they matched.
	CRCReadOnly
	// CRCDisabled never computes a CRC; emitted Crc frames carry
	// meaningless Value/Matched fields.
	CRCDisabled
)

// Option configures a Reader at construction time.
type Option = options.Option[*Reader]

// Config holds the resolved, applied configuration of a Reader. It has no
// existence independent of the Reader it configures; NewReader builds one
// from defaults and the supplied Options.
type Config struct {
	CRCPolicy   CRCPolicy
	RawChunks   bool
	Processor   Processor
	DataBag     any
	Codec       Codec
	RetryBudget int
}

func defaultConfig() Config {
	return Config{
		CRCPolicy:   CRCEnabled,
		RawChunks:   false,
		Processor:   NewDefaultProcessor(),
		DataBag:     make(map[string]any),
		Codec:       CodecAuto,
		RetryBudget: 0, // 0 means "use the byte source's own default"
	}
}

// WithCRCPolicy overrides the default CRCEnabled policy.
func WithCRCPolicy(p CRCPolicy) Option {
	return options.NoError(func(r *Reader) { r.cfg.CRCPolicy = p })
}

// WithRawChunks enables or disables Chunk echoes on every emitted Frame.
func WithRawChunks(keep bool) Option {
	return options.NoError(func(r *Reader) { r.cfg.RawChunks = keep })
}

// WithProcessor installs a custom Processor, or nil to disable post-decode
// hooks entirely.
func WithProcessor(p Processor) Option {
	return options.NoError(func(r *Reader) { r.cfg.Processor = p })
}

// WithDataBag installs the opaque per-reader scratch value returned by
// Reader.DataBag. The core never inspects it.
func WithDataBag(v any) Option {
	return options.NoError(func(r *Reader) { r.cfg.DataBag = v })
}

// WithCodec overrides auto-detection of the input stream's compression.
func WithCodec(c Codec) Option {
	return options.NoError(func(r *Reader) { r.cfg.Codec = c })
}

// WithRetryBudget overrides the byte source's transient-short-read retry
// budget.
func WithRetryBudget(n int) Option {
	return options.NoError(func(r *Reader) { r.cfg.RetryBudget = n })
}
