package transcode_test

import (
	"os"
	"testing"

	"github.com/JaimeStill/photo-fixer/internal/transcode"
)

var testEnv = &transcode.Env{
	StartQuality: "TEST_TRANSCODE_START_QUALITY",
	QualityStep:  "TEST_TRANSCODE_QUALITY_STEP",
	MinQuality:   "TEST_TRANSCODE_MIN_QUALITY",
	Parallel:     "TEST_TRANSCODE_PARALLEL",
	Workers:      "TEST_TRANSCODE_WORKERS",
	MaxPixels:    "TEST_TRANSCODE_MAX_PIXELS",
}

func TestConfig_Finalize_Defaults(t *testing.T) {
	cfg := transcode.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.StartQuality != 95 || cfg.QualityStep != 5 || cfg.MinQuality != 10 {
		t.Errorf("ladder = %d/%d/%d, want 95/5/10", cfg.StartQuality, cfg.QualityStep, cfg.MinQuality)
	}
	if cfg.ParallelEnabled() {
		t.Error("ParallelEnabled() = true, want false")
	}
	if cfg.MaxPixels != transcode.DefaultMaxPixels {
		t.Errorf("MaxPixels = %d, want %d", cfg.MaxPixels, transcode.DefaultMaxPixels)
	}
	if cfg.Workers < 1 {
		t.Errorf("Workers = %d, want >= 1", cfg.Workers)
	}
}

func TestConfig_Finalize_EnvOverrides(t *testing.T) {
	os.Setenv("TEST_TRANSCODE_PARALLEL", "true")
	os.Setenv("TEST_TRANSCODE_WORKERS", "3")
	os.Setenv("TEST_TRANSCODE_MIN_QUALITY", "20")
	os.Setenv("TEST_TRANSCODE_MAX_PIXELS", "1000000")
	defer os.Unsetenv("TEST_TRANSCODE_MAX_PIXELS")
	defer os.Unsetenv("TEST_TRANSCODE_PARALLEL")
	defer os.Unsetenv("TEST_TRANSCODE_WORKERS")
	defer os.Unsetenv("TEST_TRANSCODE_MIN_QUALITY")

	cfg := transcode.Config{}
	if err := cfg.Finalize(testEnv); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if !cfg.ParallelEnabled() || cfg.Workers != 3 || cfg.MinQuality != 20 || cfg.MaxPixels != 1_000_000 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestConfig_Finalize_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  transcode.Config
	}{
		{"start above 100", transcode.Config{StartQuality: 101}},
		{"floor above start", transcode.Config{StartQuality: 50, MinQuality: 60}},
		{"negative step", transcode.Config{QualityStep: -5}},
		{"negative workers", transcode.Config{Workers: -1}},
		{"negative max pixels", transcode.Config{MaxPixels: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(nil); err == nil {
				t.Error("Finalize() = nil, want error")
			}
		})
	}
}

func TestConfig_Merge(t *testing.T) {
	on, off := true, false

	tests := []struct {
		name         string
		base         *bool
		overlay      transcode.Config
		wantParallel bool
		wantMin      int
	}{
		{"overlay sets values", nil, transcode.Config{MinQuality: 30, Parallel: &on}, true, 30},
		{"overlay turns parallel off", &on, transcode.Config{Parallel: &off}, false, 10},
		{"unset overlay keeps base", &on, transcode.Config{}, true, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := transcode.DefaultConfig()
			cfg.Parallel = tt.base
			cfg.Merge(&tt.overlay)

			if cfg.ParallelEnabled() != tt.wantParallel {
				t.Errorf("ParallelEnabled() = %v, want %v", cfg.ParallelEnabled(), tt.wantParallel)
			}
			if cfg.StartQuality != 95 || cfg.MinQuality != tt.wantMin {
				t.Errorf("merged = %+v", cfg)
			}
		})
	}
}
