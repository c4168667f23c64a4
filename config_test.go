package coil

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("COIL_WORD_SIZE", "")
	t.Setenv("COIL_VERBOSE", "")
	t.Setenv("COIL_MAX_ERRORS", "")

	cfg := LoadConfig()
	if cfg.WordSize != 4 {
		t.Fatalf("WordSize = %d, want default 4", cfg.WordSize)
	}
	if cfg.Verbose {
		t.Fatal("Verbose should default to false")
	}
	if cfg.MaxErrors != 10 {
		t.Fatalf("MaxErrors = %d, want default 10", cfg.MaxErrors)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("COIL_WORD_SIZE", "8")
	t.Setenv("COIL_VERBOSE", "true")
	t.Setenv("COIL_MAX_ERRORS", "3")

	cfg := LoadConfig()
	if cfg.WordSize != 8 {
		t.Fatalf("WordSize = %d, want 8", cfg.WordSize)
	}
	if !cfg.Verbose {
		t.Fatal("Verbose should be true when COIL_VERBOSE=true")
	}
	if cfg.MaxErrors != 3 {
		t.Fatalf("MaxErrors = %d, want 3", cfg.MaxErrors)
	}
	if !VerboseMode {
		t.Fatal("LoadConfig should set the package-level VerboseMode flag")
	}
}
