package config

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Search.MaxBacktracks != 0 {
		t.Errorf("MaxBacktracks = %d, want 0 (default)", cfg.Search.MaxBacktracks)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pimatch.yaml")
	cfg := &Config{Search: SearchConfig{MaxBacktracks: 42}, Logging: LoggingConfig{Verbose: true}}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got.Search.MaxBacktracks != 42 {
		t.Errorf("MaxBacktracks = %d, want 42", got.Search.MaxBacktracks)
	}
	if !got.Logging.Verbose {
		t.Error("Verbose = false, want true")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pimatch.yaml")
	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	t.Setenv("PIMATCH_VERBOSE", "true")
	t.Setenv("PIMATCH_MAX_BACKTRACKS", "7")

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !got.Logging.Verbose {
		t.Error("Verbose override not applied")
	}
	if got.Search.MaxBacktracks != 7 {
		t.Errorf("MaxBacktracks = %d, want 7 (env override)", got.Search.MaxBacktracks)
	}
}
