package coil

import "github.com/xyproto/env/v2"

// Config holds the environment-tunable knobs read at process start,
// deferring to env vars with sane fallbacks rather than requiring a config
// file for simple overrides.
type Config struct {
	// WordSize is the platform word size (bytes) read from COIL_WORD_SIZE.
	// Defaults to 4, matching the "assuming 32-bit" comment on the original
	// getTypeSize. Type.Size and Compatible do not consult it: platform
	// INT/UNT/FP are always 4 bytes and PTR 8.
	WordSize int

	// Verbose enables trace logging from GrowBuffer.Commit.
	Verbose bool

	// MaxErrors bounds how many ERROR-severity findings an ErrorCollector
	// accumulates before ShouldStop reports true.
	MaxErrors int
}

// LoadConfig reads COIL_WORD_SIZE, COIL_VERBOSE and COIL_MAX_ERRORS from the
// environment, falling back to defaults of 4, false, and 10 respectively.
func LoadConfig() Config {
	cfg := Config{
		WordSize:  env.Int("COIL_WORD_SIZE", 4),
		Verbose:   env.Bool("COIL_VERBOSE"),
		MaxErrors: env.Int("COIL_MAX_ERRORS", 10),
	}
	VerboseMode = cfg.Verbose
	return cfg
}
